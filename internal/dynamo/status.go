package dynamo

// Version and BuildDate are purely informational build-time banners,
// overridable at link time via -ldflags "-X
// github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo.Version=...
// -X github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo.BuildDate=...".
var (
	Version   = "dev"
	BuildDate = "unknown"
)

// Status returns a read-only scalar snapshot of the simulation. Calling
// it has no side effects.
func (s *Simulation) Status() Status {
	return Status{
		Time:       s.T,
		N:          s.Store.Len(),
		Integrator: s.IntegratorName,
		Dt:         s.Dt,
		StepsTaken: s.StepsTaken,
		WallClock:  s.WallClock.Seconds(),
		Version:    s.Version,
		BuildDate:  s.BuildDate,
	}
}
