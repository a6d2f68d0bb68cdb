package dynamo_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
	_ "github.com/Ruth-Huang6012/REBOUND-2planets/internal/integrators"
	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/physics"
)

// These specs exercise full orbital scenarios end to end, through the
// public Simulation API, rather than unit-testing individual
// components.

var _ = Describe("three-body Kepler scenario", func() {
	It("completes one full period and returns each planet close to its starting position", func() {
		sim := dynamo.NewSimulation()
		sim.G = 1.0
		sim.Dt = 0.001
		sim.Force = physics.DirectSum{}
		Expect(sim.SetIntegratorName("leapfrog")).To(Succeed())

		_, err := sim.Store.Add(dynamo.ParticleDescriptor{Mass: 1.0, HashStr: "sol"})
		Expect(err).NotTo(HaveOccurred())
		_, err = sim.Store.Add(dynamo.ParticleDescriptor{Mass: 0, UseOrbit: true, A: 1.0, HashStr: "earth"})
		Expect(err).NotTo(HaveOccurred())
		_, err = sim.Store.Add(dynamo.ParticleDescriptor{Mass: 0, UseOrbit: true, A: 1.52, HashStr: "mars"})
		Expect(err).NotTo(HaveOccurred())

		earthStart, err := sim.Store.GetByHash(dynamo.HashString("earth"))
		Expect(err).NotTo(HaveOccurred())

		period := 2.0 * 3.141592653589793
		Expect(sim.Integrate(context.Background(), period)).To(Succeed())
		Expect(sim.T).To(BeNumerically("~", period, 1e-9))

		earthEnd, err := sim.Store.GetByHash(dynamo.HashString("earth"))
		Expect(err).NotTo(HaveOccurred())
		Expect(earthEnd.Pos.Sub(earthStart.Pos).Len()).To(BeNumerically("<", 0.05))
	})
})

var _ = Describe("escape handling", func() {
	It("reports an escape error without removing the offending particle", func() {
		sim := dynamo.NewSimulation()
		sim.G = 1.0
		sim.Dt = 0.001
		sim.Force = physics.DirectSum{}
		sim.ExitMaxDistance = 50

		_, err := sim.Store.Add(dynamo.ParticleDescriptor{Mass: 1.0, HashStr: "sol"})
		Expect(err).NotTo(HaveOccurred())
		_, err = sim.Store.Add(dynamo.ParticleDescriptor{Mass: 0, X: 0.4, VX: 5.0, HashStr: "mercury"})
		Expect(err).NotTo(HaveOccurred())

		err = sim.Integrate(context.Background(), 200.0)
		Expect(dynamo.IsEscape(err)).To(BeTrue())
		Expect(sim.Store.Len()).To(Equal(2), "an escape must not auto-remove the particle")

		_, lookupErr := sim.Store.GetByHash(dynamo.HashString("mercury"))
		Expect(lookupErr).NotTo(HaveOccurred())
	})

	It("lets the caller remove the escapee and resume integration", func() {
		sim := dynamo.NewSimulation()
		sim.G = 1.0
		sim.Dt = 0.001
		sim.Force = physics.DirectSum{}
		sim.ExitMaxDistance = 50

		_, _ = sim.Store.Add(dynamo.ParticleDescriptor{Mass: 1.0, HashStr: "sol"})
		_, _ = sim.Store.Add(dynamo.ParticleDescriptor{Mass: 0, X: 0.4, VX: 5.0, HashStr: "mercury"})
		_, _ = sim.Store.Add(dynamo.ParticleDescriptor{Mass: 0, UseOrbit: true, A: 1.0, HashStr: "earth"})

		err := sim.Integrate(context.Background(), 200.0)
		Expect(dynamo.IsEscape(err)).To(BeTrue())

		Expect(sim.Store.RemoveByHash(dynamo.HashString("mercury"))).To(Succeed())
		Expect(sim.Integrate(context.Background(), sim.T+1.0)).To(Succeed())

		_, lookupErr := sim.Store.GetByHash(dynamo.HashString("earth"))
		Expect(lookupErr).NotTo(HaveOccurred())
	})
})

var _ = Describe("hash stability", func() {
	It("keeps resolving surviving particles by hash after a removal shifts indices", func() {
		sim := dynamo.NewSimulation()
		names := []string{"a", "b", "c", "d"}
		for i, name := range names {
			_, err := sim.Store.Add(dynamo.ParticleDescriptor{Mass: 0, X: float64(i + 1), HashStr: name})
			Expect(err).NotTo(HaveOccurred())
		}

		Expect(sim.Store.RemoveByHash(dynamo.HashString("b"))).To(Succeed())
		Expect(sim.Store.Len()).To(Equal(3))

		for _, name := range []string{"a", "c", "d"} {
			_, err := sim.Store.GetByHash(dynamo.HashString(name))
			Expect(err).NotTo(HaveOccurred())
		}
		_, err := sim.Store.GetByHash(dynamo.HashString("b"))
		Expect(err).To(MatchError(dynamo.ErrNotFound))
	})
})
