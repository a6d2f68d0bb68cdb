package integrators

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
)

// Dormand-Prince (RK45) coefficients.
var (
	dpA2 = 1.0 / 5.0
	dpA3 = 3.0 / 10.0
	dpA4 = 4.0 / 5.0
	dpA5 = 8.0 / 9.0

	dpB21 = 1.0 / 5.0
	dpB31 = 3.0 / 40.0
	dpB32 = 9.0 / 40.0
	dpB41 = 44.0 / 45.0
	dpB42 = -56.0 / 15.0
	dpB43 = 32.0 / 9.0
	dpB51 = 19372.0 / 6561.0
	dpB52 = -25360.0 / 2187.0
	dpB53 = 64448.0 / 6561.0
	dpB54 = -212.0 / 729.0
	dpB61 = 9017.0 / 3168.0
	dpB62 = -355.0 / 33.0
	dpB63 = 46732.0 / 5247.0
	dpB64 = 49.0 / 176.0
	dpB65 = -5103.0 / 18656.0

	dpC1 = 35.0 / 384.0
	dpC3 = 500.0 / 1113.0
	dpC4 = 125.0 / 192.0
	dpC5 = -2187.0 / 6784.0
	dpC6 = 11.0 / 84.0

	dpDc1 = dpC1 - 5179.0/57600.0
	dpDc3 = dpC3 - 7571.0/16695.0
	dpDc4 = dpC4 - 393.0/640.0
	dpDc5 = dpC5 - -92097.0/339200.0
	dpDc6 = dpC6 - 187.0/2100.0
	dpDc7 = -1.0 / 40.0
)

// IAS15 is an adaptive embedded Runge-Kutta integrator (Dormand-Prince
// 5(4)) applied to the full N-body state. It stands in for REBOUND's
// true Gauss-Radau IAS15 — same role (a high-accuracy adaptive default
// for close encounters and eccentric orbits), different internals — and
// is not expected to be bit-identical to it.
//
// Unlike Leapfrog and WHFast it is not symplectic: its long-term energy
// error grows rather than oscillating, but its per-step local error is
// much smaller for a given dt, which is the usual tradeoff for
// close-encounter-heavy problems.
type IAS15 struct {
	suggestedDt float64
	tol         float64
	safety      float64
	minScale    float64
	maxScale    float64
}

func NewIAS15() *IAS15 {
	return &IAS15{
		tol:      1e-9,
		safety:   0.9,
		minScale: 0.2,
		maxScale: 5.0,
	}
}

func (a *IAS15) RequiresSplitting() bool { return false }

// SuggestedDt is the step size this integrator would like to take next,
// based on the local error estimate from its most recent Step call. It
// is zero before the first Step.
func (a *IAS15) SuggestedDt() float64 { return a.suggestedDt }

type ias15State struct {
	suggestedDt float64
}

func (a *IAS15) Checkpoint() dynamo.IntegratorState {
	return ias15State{suggestedDt: a.suggestedDt}
}

func (a *IAS15) Restore(st dynamo.IntegratorState) {
	if s, ok := st.(ias15State); ok {
		a.suggestedDt = s.suggestedDt
	}
}

func (a *IAS15) Step(force dynamo.Force, particles []dynamo.Particle, g, t, dt float64) (float64, error) {
	n := len(particles)
	if n == 0 {
		return dt, nil
	}

	pos := make([]mgl64.Vec3, n)
	vel := make([]mgl64.Vec3, n)
	for i, p := range particles {
		pos[i], vel[i] = p.Pos, p.Vel
	}

	stage := func(force dynamo.Force, p, v []mgl64.Vec3) []mgl64.Vec3 {
		tmp := make([]dynamo.Particle, n)
		copy(tmp, particles)
		for i := range tmp {
			tmp[i].Pos, tmp[i].Vel = p[i], v[i]
		}
		return force.Accelerations(tmp, g)
	}

	kv1 := stage(force, pos, vel) // acceleration at stage 1 = dv/dt
	kx1 := vel                    // dx/dt at stage 1

	advance := func(base []mgl64.Vec3, coeffs []float64, ks [][]mgl64.Vec3) []mgl64.Vec3 {
		out := make([]mgl64.Vec3, n)
		for i := range out {
			out[i] = base[i]
			for j, c := range coeffs {
				out[i] = out[i].Add(ks[j][i].Mul(dt * c))
			}
		}
		return out
	}

	pos2 := advance(pos, []float64{dpB21}, [][]mgl64.Vec3{kx1})
	vel2 := advance(vel, []float64{dpB21}, [][]mgl64.Vec3{kv1})
	kv2 := stage(force, pos2, vel2)
	kx2 := vel2

	pos3 := advance(pos, []float64{dpB31, dpB32}, [][]mgl64.Vec3{kx1, kx2})
	vel3 := advance(vel, []float64{dpB31, dpB32}, [][]mgl64.Vec3{kv1, kv2})
	kv3 := stage(force, pos3, vel3)
	kx3 := vel3

	pos4 := advance(pos, []float64{dpB41, dpB42, dpB43}, [][]mgl64.Vec3{kx1, kx2, kx3})
	vel4 := advance(vel, []float64{dpB41, dpB42, dpB43}, [][]mgl64.Vec3{kv1, kv2, kv3})
	kv4 := stage(force, pos4, vel4)
	kx4 := vel4

	pos5 := advance(pos, []float64{dpB51, dpB52, dpB53, dpB54}, [][]mgl64.Vec3{kx1, kx2, kx3, kx4})
	vel5 := advance(vel, []float64{dpB51, dpB52, dpB53, dpB54}, [][]mgl64.Vec3{kv1, kv2, kv3, kv4})
	kv5 := stage(force, pos5, vel5)
	kx5 := vel5

	pos6 := advance(pos, []float64{dpB61, dpB62, dpB63, dpB64, dpB65}, [][]mgl64.Vec3{kx1, kx2, kx3, kx4, kx5})
	vel6 := advance(vel, []float64{dpB61, dpB62, dpB63, dpB64, dpB65}, [][]mgl64.Vec3{kv1, kv2, kv3, kv4, kv5})
	kv6 := stage(force, pos6, vel6)
	kx6 := vel6

	newPos := advance(pos, []float64{dpC1, dpC3, dpC4, dpC5, dpC6}, [][]mgl64.Vec3{kx1, kx3, kx4, kx5, kx6})
	newVel := advance(vel, []float64{dpC1, dpC3, dpC4, dpC5, dpC6}, [][]mgl64.Vec3{kv1, kv3, kv4, kv5, kv6})
	kv7 := stage(force, newPos, newVel)
	kx7 := newVel

	errMax := 0.0
	for i := 0; i < n; i++ {
		for axis := 0; axis < 3; axis++ {
			errPos := dt * (dpDc1*kx1[i][axis] + dpDc3*kx3[i][axis] + dpDc4*kx4[i][axis] + dpDc5*kx5[i][axis] + dpDc6*kx6[i][axis] + dpDc7*kx7[i][axis])
			errVel := dt * (dpDc1*kv1[i][axis] + dpDc3*kv3[i][axis] + dpDc4*kv4[i][axis] + dpDc5*kv5[i][axis] + dpDc6*kv6[i][axis] + dpDc7*kv7[i][axis])
			scalePos := math.Abs(pos[i][axis]) + math.Abs(dt*kx1[i][axis]) + 1e-10
			scaleVel := math.Abs(vel[i][axis]) + math.Abs(dt*kv1[i][axis]) + 1e-10
			errMax = math.Max(errMax, math.Abs(errPos)/scalePos)
			errMax = math.Max(errMax, math.Abs(errVel)/scaleVel)
		}
	}

	errRatio := errMax / a.tol
	var dtNew float64
	switch {
	case errRatio > 1:
		scale := math.Max(a.minScale, a.safety*math.Pow(errRatio, -0.25))
		dtNew = dt * scale
	case errRatio > 0:
		scale := math.Min(a.maxScale, a.safety*math.Pow(errRatio, -0.2))
		dtNew = dt * scale
	default:
		dtNew = dt * a.maxScale
	}
	a.suggestedDt = dtNew

	for i := range particles {
		particles[i].Pos = newPos[i]
		particles[i].Vel = newVel[i]
	}

	return dt, nil
}

func init() {
	dynamo.RegisterIntegrator("ias15", func() dynamo.Integrator { return NewIAS15() })
}
