package storage

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

// checkpointMagic and checkpointVersion identify the binary checkpoint
// format. encoding/binary is used deliberately instead of encoding/gob:
// gob's self-describing wire format does not guarantee the fixed field
// order the persisted-state contract requires, while this format's
// layout is exactly: magic, version, scalar fields in a fixed order
// (T, Dt, G, ExitMaxDistance, ExitMinDistance), the integrator name
// NUL-padded to 32 bytes, a uint32 particle count N, then N packed
// (m, r, x, y, z, vx, vy, vz, h) particle records, all little-endian.
const (
	checkpointMagic   uint32 = 0x52424e44 // "RBND"
	checkpointVersion uint16 = 1
)

// SaveCheckpoint writes sim's full state to w in the fixed binary
// layout. String-named particles have already been resolved to their
// 64-bit FNV-1a hash by the time they reach the Store, so the hash
// function itself need not be re-derivable from the checkpoint: the
// hash is the identity.
func SaveCheckpoint(w io.Writer, sim *dynamo.Simulation) error {
	if err := binary.Write(w, binary.LittleEndian, checkpointMagic); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, checkpointVersion); err != nil {
		return err
	}

	scalars := []float64{sim.T, sim.Dt, sim.G, sim.ExitMaxDistance, sim.ExitMinDistance}
	for _, v := range scalars {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	name := padName(sim.IntegratorName)
	if _, err := w.Write(name[:]); err != nil {
		return err
	}

	particles := sim.Store.All()
	if err := binary.Write(w, binary.LittleEndian, uint32(len(particles))); err != nil {
		return err
	}

	for _, p := range particles {
		fields := []float64{
			p.Mass, p.Radius,
			p.Pos[0], p.Pos[1], p.Pos[2],
			p.Vel[0], p.Vel[1], p.Vel[2],
		}
		for _, v := range fields {
			if err := binary.Write(w, binary.LittleEndian, v); err != nil {
				return err
			}
		}
		if err := binary.Write(w, binary.LittleEndian, p.Hash); err != nil {
			return err
		}
	}

	return nil
}

// LoadCheckpoint reconstructs a Simulation from a reader produced by
// SaveCheckpoint. The caller must set sim.Force and re-register the
// named integrator (via config or internal/integrators' side-effect
// registration) before integrating further: the checkpoint format
// stores the integrator's symbolic name, not live scratch state.
func LoadCheckpoint(r io.Reader) (*dynamo.Simulation, error) {
	var magic uint32
	if err := binary.Read(r, binary.LittleEndian, &magic); err != nil {
		return nil, err
	}
	if magic != checkpointMagic {
		return nil, fmt.Errorf("storage: not a checkpoint file (bad magic %#x)", magic)
	}

	var version uint16
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return nil, err
	}
	if version != checkpointVersion {
		return nil, fmt.Errorf("storage: unsupported checkpoint version %d", version)
	}

	sim := dynamo.NewSimulation()

	scalars := make([]float64, 5)
	for i := range scalars {
		if err := binary.Read(r, binary.LittleEndian, &scalars[i]); err != nil {
			return nil, err
		}
	}
	sim.T, sim.Dt, sim.G, sim.ExitMaxDistance, sim.ExitMinDistance = scalars[0], scalars[1], scalars[2], scalars[3], scalars[4]

	var name [32]byte
	if _, err := io.ReadFull(r, name[:]); err != nil {
		return nil, err
	}
	integratorName := unpadName(name)
	if err := sim.SetIntegratorName(integratorName); err != nil {
		sim.IntegratorName = integratorName
	}

	var n uint32
	if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
		return nil, err
	}

	for i := uint32(0); i < n; i++ {
		fields := make([]float64, 8)
		for j := range fields {
			if err := binary.Read(r, binary.LittleEndian, &fields[j]); err != nil {
				return nil, err
			}
		}
		var hash uint64
		if err := binary.Read(r, binary.LittleEndian, &hash); err != nil {
			return nil, err
		}

		_, err := sim.Store.Add(dynamo.ParticleDescriptor{
			Mass: fields[0], Radius: fields[1],
			X: fields[2], Y: fields[3], Z: fields[4],
			VX: fields[5], VY: fields[6], VZ: fields[7],
			HasHash: true, Hash: hash,
		})
		if err != nil {
			return nil, err
		}
	}

	return sim, nil
}

func padName(name string) [32]byte {
	var out [32]byte
	copy(out[:], name)
	return out
}

func unpadName(name [32]byte) string {
	n := 0
	for n < len(name) && name[n] != 0 {
		n++
	}
	return string(name[:n])
}
