package dynamo

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

const orbitEpsilon = 1e-10

// Elements is the classical orbital element set plus the alternative
// angle set (mean anomaly, eccentric anomaly, longitude of periapsis,
// mean longitude), all relative to a primary. Converters read and write
// whichever subset of these is relevant; the rest are filled in for
// convenience on output.
type Elements struct {
	A, E, Inc, Omega, ArgPeri, F float64
	MeanAnomaly, EccAnomaly      float64
	Pomega, Lambda               float64
	HasAlt                       bool
}

func elementsFromDescriptor(d ParticleDescriptor) Elements {
	el := Elements{A: d.A, E: d.E, Inc: d.Inc, Omega: d.Omega, ArgPeri: d.ArgPeri, F: d.F}
	if d.HasAlt {
		el.HasAlt = true
		el.Pomega = d.Pomega
		el.Lambda = d.Lambda
		el.ArgPeri = normalizeAngle(d.Pomega - d.Omega)
		el.MeanAnomaly = normalizeAngle(d.Lambda - d.Pomega)
	}
	return el
}

// elementsToCartesian converts el (interpreted relative to a primary of
// mass primaryMass) to a position/velocity pair, using the two-body mu
// derived from G, primaryMass and the orbiting particle's own mass.
//
// The forward transform has no coordinate singularity: e=0 and i=0 are
// perfectly well defined positions in the rotated perifocal frame, they
// merely make ArgPeri/Omega physically meaningless, which is the
// caller's problem, not this function's.
func elementsToCartesian(el Elements, primaryMass, mass, g float64) (pos, vel mgl64.Vec3, err error) {
	return elementsToCartesianMu(el, g*(primaryMass+mass))
}

// elementsToCartesianMu is the mu-parameterized core of
// elementsToCartesian, exposed so internal/integrators can drift a
// particle along its exact two-body orbit without re-deriving mu from
// separate masses and G (WHFast's Kepler-drift sub-step).
func elementsToCartesianMu(el Elements, mu float64) (pos, vel mgl64.Vec3, err error) {
	if el.A <= 0 || el.E < 0 || el.E >= 1 {
		return pos, vel, ErrInvalidOrbit
	}

	f := el.F
	if el.HasAlt {
		f = eccentricToTrue(solveKepler(el.MeanAnomaly, el.E), el.E)
	}

	cosf, sinf := math.Cos(f), math.Sin(f)
	r := el.A * (1 - el.E*el.E) / (1 + el.E*cosf)

	// Perifocal-frame position and velocity.
	xp := r * cosf
	yp := r * sinf
	n := math.Sqrt(mu / (el.A * el.A * el.A))
	factor := n * el.A / math.Sqrt(1-el.E*el.E)
	vxp := -factor * sinf
	vyp := factor * (el.E + cosf)

	cO, sO := math.Cos(el.Omega), math.Sin(el.Omega)
	cw, sw := math.Cos(el.ArgPeri), math.Sin(el.ArgPeri)
	ci, si := math.Cos(el.Inc), math.Sin(el.Inc)

	px := mgl64.Vec3{cO*cw - sO*sw*ci, sO*cw + cO*sw*ci, sw * si}
	qx := mgl64.Vec3{-cO*sw - sO*cw*ci, -sO*sw + cO*cw*ci, cw * si}

	pos = px.Mul(xp).Add(qx.Mul(yp))
	vel = px.Mul(vxp).Add(qx.Mul(vyp))
	return pos, vel, nil
}

// CartesianToElements recovers orbital elements of a particle of mass
// `mass` at relative state (relPos, relVel) with respect to a primary of
// mass primaryMass. It derives a, e and i from rotation-invariant
// combinations (specific energy and angular momentum) that have no
// coordinate singularity, then derives the equinoctial-style pair (h,k)
// for the longitude of periapsis and (p,q) for the ascending node from
// the angular-momentum direction, so that nothing blows up at the
// singular loci: exactly at i=0 Omega is set to zero, and exactly at
// e=0 the longitude of periapsis is set to zero, which makes ArgPeri
// equal to -Omega modulo 2*pi.
func CartesianToElements(relPos, relVel mgl64.Vec3, mass, primaryMass, g float64) Elements {
	return cartesianToElementsMu(relPos, relVel, g*(primaryMass+mass))
}

// cartesianToElementsMu is the mu-parameterized core of
// CartesianToElements; see elementsToCartesianMu.
func cartesianToElementsMu(relPos, relVel mgl64.Vec3, mu float64) Elements {
	hvec := relPos.Cross(relVel)
	hmag := hvec.Len()

	rmag := relPos.Len()
	v2 := relVel.Dot(relVel)
	energy := v2/2 - mu/rmag
	a := -mu / (2 * energy)

	var i float64
	if hmag > orbitEpsilon {
		i = math.Acos(clamp(hvec[2]/hmag, -1, 1))
	}

	hhat := hvec
	if hmag > orbitEpsilon {
		hhat = hvec.Mul(1 / hmag)
	} else {
		hhat = mgl64.Vec3{0, 0, 1}
	}

	// Non-singular equinoctial (p,q) from the angular-momentum direction.
	denom := 1 + hhat[2]
	var p, q float64
	if denom > orbitEpsilon {
		p = hhat[0] / denom
		q = -hhat[1] / denom
	}
	omega := normalizeAngle(math.Atan2(p, q))
	if p == 0 && q == 0 {
		omega = 0
	}

	// Equinoctial in-plane basis, well defined even when p=q=0.
	pq2 := 1 + p*p + q*q
	fhat := mgl64.Vec3{1 - p*p + q*q, 2 * p * q, -2 * p}.Mul(1 / pq2)
	ghat := mgl64.Vec3{2 * p * q, 1 + p*p - q*q, 2 * q}.Mul(1 / pq2)

	// Eccentricity vector without dividing by e.
	evec := relVel.Cross(hvec).Mul(1 / mu).Sub(relPos.Mul(1 / rmag))
	k := evec.Dot(fhat)
	h := evec.Dot(ghat)
	e := math.Sqrt(h*h + k*k)
	pomega := normalizeAngle(math.Atan2(h, k))
	if e < orbitEpsilon {
		e = 0
		pomega = 0
	}
	argPeri := normalizeAngle(pomega - omega)

	x := relPos.Dot(fhat)
	y := relPos.Dot(ghat)

	var f float64
	if e > orbitEpsilon {
		cosf := clamp((a*(1-e*e)/rmag-1)/e, -1, 1)
		f = math.Acos(cosf)
		if relPos.Dot(relVel) < 0 {
			f = 2*math.Pi - f
		}
	} else {
		f = normalizeAngle(math.Atan2(y, x))
	}

	E := trueToEccentric(f, e)
	M := normalizeAngle(E - e*math.Sin(E))
	lambda := normalizeAngle(pomega + M)

	return Elements{
		A: a, E: e, Inc: i, Omega: omega, ArgPeri: argPeri, F: f,
		MeanAnomaly: M, EccAnomaly: E, Pomega: pomega, Lambda: lambda,
	}
}

// KeplerAdvance analytically advances a relative two-body state
// (relPos, relVel), with gravitational parameter mu, forward by dt along
// its exact Kepler orbit. Used by the whfast integrator's Kepler-drift
// sub-step. Unbound states (e>=1) fall back to a straight-line drift,
// since this engine's orbital-element machinery only supports e<1.
func KeplerAdvance(relPos, relVel mgl64.Vec3, mu, dt float64) (mgl64.Vec3, mgl64.Vec3, error) {
	el := cartesianToElementsMu(relPos, relVel, mu)
	if el.E >= 1 || el.A <= 0 {
		return relPos.Add(relVel.Mul(dt)), relVel, nil
	}

	n := math.Sqrt(mu / (el.A * el.A * el.A))
	el.HasAlt = true
	el.MeanAnomaly = normalizeAngle(el.MeanAnomaly + n*dt)
	el.Lambda = normalizeAngle(el.Pomega + el.MeanAnomaly)

	return elementsToCartesianMu(el, mu)
}

// solveKepler finds E in E - e*sin(E) = M by Newton's method, starting
// from M itself (a good starting guess for the e<1 range this engine
// supports).
func solveKepler(m, e float64) float64 {
	m = normalizeAngle(m)
	E := m
	if e > 0.8 {
		E = math.Pi
	}
	for i := 0; i < 50; i++ {
		d := E - e*math.Sin(E) - m
		if math.Abs(d) < 1e-14 {
			break
		}
		E -= d / (1 - e*math.Cos(E))
	}
	return E
}

func eccentricToTrue(E, e float64) float64 {
	return 2 * math.Atan2(math.Sqrt(1+e)*math.Sin(E/2), math.Sqrt(1-e)*math.Cos(E/2))
}

func trueToEccentric(f, e float64) float64 {
	return 2 * math.Atan2(math.Sqrt(1-e)*math.Sin(f/2), math.Sqrt(1+e)*math.Cos(f/2))
}

func normalizeAngle(a float64) float64 {
	const twoPi = 2 * math.Pi
	a = math.Mod(a, twoPi)
	if a < 0 {
		a += twoPi
	}
	return a
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
