package dynamo

import "github.com/go-gl/mathgl/mgl64"

// Store owns a simulation's particles. Index views are valid only until
// the next mutation; hash views remain resolvable across removal of
// other particles. G is the gravitational constant used to interpret
// orbital-element descriptors passed to Add; it is not otherwise used
// by the Store.
type Store struct {
	G float64

	particles []Particle
	byHash    map[uint64]int
	autoSeq   uint64
}

// NewStore returns an empty Store with G = 1, matching the default used
// throughout the examples and presets.
func NewStore() *Store {
	return &Store{G: 1.0, byHash: make(map[uint64]int)}
}

// Len reports the current particle count.
func (s *Store) Len() int { return len(s.particles) }

// GetByIndex returns a copy of the particle at i. The view is invalidated
// by the next call to Add or any Remove.
func (s *Store) GetByIndex(i int) (Particle, error) {
	if i < 0 || i >= len(s.particles) {
		return Particle{}, ErrNotFound
	}
	return s.particles[i], nil
}

// GetByHash returns a copy of the particle with hash h via the internal
// hash-to-index map.
func (s *Store) GetByHash(h uint64) (Particle, error) {
	i, ok := s.byHash[h]
	if !ok {
		return Particle{}, ErrNotFound
	}
	return s.particles[i], nil
}

// GetByName is a convenience lookup for particles added with a Name,
// scanning linearly since names are not required to be unique.
func (s *Store) GetByName(name string) (Particle, error) {
	for _, p := range s.particles {
		if p.Name == name {
			return p, nil
		}
	}
	return Particle{}, ErrNotFound
}

// All returns a copy of the live particle slice, safe for the caller to
// retain across subsequent mutations.
func (s *Store) All() []Particle {
	out := make([]Particle, len(s.particles))
	copy(out, s.particles)
	return out
}

// Add appends a particle built from d and returns its resolved hash.
// Configuration errors (ErrDuplicateHash, ErrInvalidOrbit) leave the
// Store unchanged.
func (s *Store) Add(d ParticleDescriptor) (uint64, error) {
	hash, err := s.resolveHash(d)
	if err != nil {
		return 0, err
	}

	var pos, vel mgl64.Vec3
	if d.UseOrbit {
		primary, err := s.resolvePrimary(d)
		if err != nil {
			return 0, err
		}
		el := elementsFromDescriptor(d)
		pos, vel, err = elementsToCartesian(el, primary.Mass, d.Mass, s.G)
		if err != nil {
			return 0, err
		}
	} else {
		pos = mgl64.Vec3{d.X, d.Y, d.Z}
		vel = mgl64.Vec3{d.VX, d.VY, d.VZ}
	}

	p := Particle{
		Mass:   d.Mass,
		Radius: d.Radius,
		Pos:    pos,
		Vel:    vel,
		Hash:   hash,
		Name:   d.Name,
	}

	s.byHash[hash] = len(s.particles)
	s.particles = append(s.particles, p)
	return hash, nil
}

func (s *Store) resolveHash(d ParticleDescriptor) (uint64, error) {
	var hash uint64
	switch {
	case d.HasHash:
		hash = d.Hash
	case d.HashStr != "":
		hash = HashString(d.HashStr)
	default:
		for {
			s.autoSeq++
			hash = autoHash(s.autoSeq)
			if _, taken := s.byHash[hash]; !taken {
				break
			}
		}
		return hash, nil
	}
	if _, taken := s.byHash[hash]; taken {
		return 0, ErrDuplicateHash
	}
	return hash, nil
}

func (s *Store) resolvePrimary(d ParticleDescriptor) (Particle, error) {
	if d.HasPrimary {
		return s.GetByHash(d.Primary)
	}
	if len(s.particles) == 0 {
		return Particle{}, ErrInvalidOrbit
	}
	return s.particles[0], nil
}

// RemoveByIndex removes the particle currently at index i, compacting
// the store. Surviving particles keep their hashes; the hash-to-index
// map is updated for every particle shifted down by the removal.
func (s *Store) RemoveByIndex(i int) error {
	if i < 0 || i >= len(s.particles) {
		return ErrNotFound
	}
	return s.removeAt(i)
}

// RemoveByHash removes the particle with hash h.
func (s *Store) RemoveByHash(h uint64) error {
	i, ok := s.byHash[h]
	if !ok {
		return ErrNotFound
	}
	return s.removeAt(i)
}

func (s *Store) removeAt(idx int) error {
	delete(s.byHash, s.particles[idx].Hash)
	s.particles = append(s.particles[:idx], s.particles[idx+1:]...)
	for i := idx; i < len(s.particles); i++ {
		s.byHash[s.particles[i].Hash] = i
	}
	return nil
}

// clone deep-copies the Store for use by Simulation.Clone/Ensemble.
func (s *Store) clone() *Store {
	c := &Store{
		G:       s.G,
		autoSeq: s.autoSeq,
		byHash:  make(map[uint64]int, len(s.byHash)),
	}
	c.particles = make([]Particle, len(s.particles))
	copy(c.particles, s.particles)
	for h, i := range s.byHash {
		c.byHash[h] = i
	}
	return c
}
