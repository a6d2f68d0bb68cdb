package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/config"
	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dashboard"
	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/dynamo"
	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/metrics"
	"github.com/Ruth-Huang6012/REBOUND-2planets/internal/storage"
)

var (
	dataDir    string
	scenario   string
	configFile string
	preset     string

	dt           float64
	duration     float64
	integrator   string
	seed         int64
	sampleEvery  float64
	checkpointTo string
	sqliteTo     string

	sweepRuns    int
	sweepSeed    int64
	sweepExitMax []float64
)

// main wires the cobra command tree: run, sweep, list, export, dashboard.
// There is no bare-invocation fallback mode — every run must name a
// scenario explicitly via --preset or --config.
func main() {
	rootCmd := &cobra.Command{
		Use:   "rebound",
		Short: "n-body gravitational dynamics engine",
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rebound", "run storage directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "integrate a scenario to its configured duration and save the run",
		RunE:  runScenario,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().Float64Var(&sampleEvery, "sample-every", 0, "trajectory sample interval in simulation time (0 = every step)")
	runCmd.Flags().StringVar(&checkpointTo, "checkpoint", "", "write a binary checkpoint to this path on completion")
	runCmd.Flags().StringVar(&sqliteTo, "sqlite", "", "append every step's particle states to a SQLite trajectory database at this path")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run an ensemble of a scenario across seeds or exit distances",
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&sweepRuns, "runs", 4, "number of ensemble members")
	sweepCmd.Flags().Int64Var(&sweepSeed, "seed-start", 0, "first member's seed; subsequent members increment by one")
	sweepCmd.Flags().Float64SliceVar(&sweepExitMax, "exit-max-distance", nil, "scan these exit_max_distance values instead of seeds, one run per value")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run-id]",
		Short: "print a run's metadata as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "integrate a scenario with a live terminal dashboard",
		RunE:  runDashboard,
	}
	addScenarioFlags(dashboardCmd)

	rootCmd.AddCommand(runCmd, sweepCmd, listCmd, exportCmd, dashboardCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use a built-in preset scenario")
	cmd.Flags().StringVar(&configFile, "config", "", "load a scenario from a YAML file")
	cmd.Flags().StringVar(&scenario, "name", "", "name used for saved run IDs (defaults to the scenario's own name)")
	cmd.Flags().Float64Var(&dt, "dt", 0, "override the scenario's timestep")
	cmd.Flags().Float64Var(&duration, "duration", 0, "override the scenario's integration duration")
	cmd.Flags().StringVar(&integrator, "integrator", "", "override the scenario's integrator")
	cmd.Flags().Int64Var(&seed, "seed", 0, "run seed, recorded in run metadata")
}

// loadScenario resolves --preset or --config (config wins if both are
// given) into a Scenario, then applies any flag overrides the caller
// explicitly set.
func loadScenario(cmd *cobra.Command) (*config.Scenario, error) {
	var cfg *config.Scenario
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = c
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %v)", preset, config.ListPresets())
		}
	default:
		return nil, fmt.Errorf("one of --preset or --config is required")
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("duration") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if scenario != "" {
		cfg.Name = scenario
	}
	return cfg, nil
}

// sampler is a dynamo.Observer that buffers trajectory samples at a
// minimum simulation-time interval, so long runs don't force one CSV
// row set per tiny integrator step.
type sampler struct {
	every   float64
	lastT   float64
	first   bool
	samples []storage.TrajectorySample
}

func newSampler(every float64) *sampler { return &sampler{every: every, first: true} }

func (s *sampler) OnStep(sim *dynamo.Simulation, t float64) {
	if s.first || s.every <= 0 || t-s.lastT >= s.every {
		s.samples = append(s.samples, storage.TrajectorySample{Time: t, Particles: sim.Store.All()})
		s.lastT, s.first = t, false
	}
}

// sqliteSink is a dynamo.Observer that appends every completed step's
// particle states to a SQLiteTrajectory, keyed by Simulation.StepsTaken.
// Unlike sampler it writes eagerly rather than buffering, since the
// underlying store is itself the durable target.
type sqliteSink struct {
	traj *storage.SQLiteTrajectory
	err  error
}

func (s *sqliteSink) OnStep(sim *dynamo.Simulation, t float64) {
	if s.err != nil {
		return
	}
	s.err = s.traj.AppendStep(sim.StepsTaken, sim.Store.All())
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	sim, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building scenario: %w", err)
	}

	drift := metrics.NewEnergyDrift()
	sim.AddObserver(drift)
	samp := newSampler(sampleEvery)
	sim.AddObserver(samp)

	var sink *sqliteSink
	if sqliteTo != "" {
		traj, err := storage.OpenSQLiteTrajectory(sqliteTo)
		if err != nil {
			return fmt.Errorf("opening sqlite trajectory: %w", err)
		}
		defer traj.Close()
		sink = &sqliteSink{traj: traj}
		sim.AddObserver(sink)
	}

	fmt.Printf("running %s (integrator=%s dt=%g duration=%g)...\n", cfg.Name, sim.IntegratorName, sim.Dt, cfg.Duration)
	start := time.Now()
	runErr := sim.Integrate(context.Background(), cfg.Duration)
	elapsed := time.Since(start)

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	metricsOut := map[string]float64{
		"energy_drift":    drift.Value(),
		"final_energy":    drift.Current(),
		"wall_clock_secs": elapsed.Seconds(),
	}
	runID, saveErr := st.Save(cfg.Name, seed, sim, samp.samples, metricsOut)
	if saveErr != nil {
		return saveErr
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("final t=%.6f steps=%d energy_drift=%.3e\n", sim.T, sim.StepsTaken, drift.Value())

	if checkpointTo != "" {
		f, err := os.Create(checkpointTo)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := storage.SaveCheckpoint(f, sim); err != nil {
			return err
		}
		fmt.Printf("checkpoint written to %s\n", checkpointTo)
	}

	if sink != nil {
		if sink.err != nil {
			return fmt.Errorf("writing sqlite trajectory: %w", sink.err)
		}
		fmt.Printf("sqlite trajectory written to %s\n", sqliteTo)
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "integration stopped early: %v\n", runErr)
		return nil
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}

	base, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building scenario: %w", err)
	}

	runs := sweepRuns
	if len(sweepExitMax) > 0 {
		runs = len(sweepExitMax)
	}
	ensemble := dynamo.NewEnsemble(base, runs, sweepSeed)

	build := func(r *dynamo.EnsembleRun) {
		if len(sweepExitMax) > 0 {
			r.Sim.ExitMaxDistance = sweepExitMax[int(r.Seed-sweepSeed)]
		}
	}

	fmt.Printf("sweeping %s across %d runs...\n", cfg.Name, runs)
	start := time.Now()
	results, runErr := ensemble.Run(context.Background(), cfg.Duration, build)
	elapsed := time.Since(start)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tEXIT_MAX\tFINAL_T\tSTEPS\tFINAL_ENERGY")
	for i, sim := range results {
		if sim == nil {
			fmt.Fprintf(w, "%d\t-\t-\t-\t(failed)\n", sweepSeed+int64(i))
			continue
		}
		fmt.Fprintf(w, "%d\t%.3g\t%.6f\t%d\t%.3e\n",
			sweepSeed+int64(i), sim.ExitMaxDistance, sim.T, sim.StepsTaken, metrics.TotalEnergy(sim))
	}
	w.Flush()

	fmt.Printf("\nsweep completed in %v\n", elapsed)
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "at least one run stopped early: %v\n", runErr)
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tN\tINTEG\tFINAL_T\tSTEPS")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\t%.6f\t%d\n",
			run.ID, run.Scenario, run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N, run.Integrator, run.FinalTime, run.StepsTaken)
	}
	return w.Flush()
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadScenario(cmd)
	if err != nil {
		return err
	}
	sim, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("building scenario: %w", err)
	}

	tickDt := sim.Dt * 10
	if tickDt <= 0 {
		tickDt = cfg.Duration / 300
	}
	m := dashboard.New(sim, cfg.Duration, tickDt)

	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(dashboard.Model); ok && fm.Err() != nil {
		fmt.Fprintf(os.Stderr, "integration stopped: %v\n", fm.Err())
	}
	return nil
}
