package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/askalov/cartpend/internal/config"
	"github.com/askalov/cartpend/internal/dynamo"
	"github.com/askalov/cartpend/internal/entity"
	"github.com/askalov/cartpend/internal/export"
	"github.com/askalov/cartpend/internal/integrators"
	"github.com/askalov/cartpend/internal/metrics"
	"github.com/askalov/cartpend/internal/sim"
	"github.com/askalov/cartpend/internal/signal"
	"github.com/askalov/cartpend/internal/storage"
	"github.com/askalov/cartpend/internal/tui"
)

var (
	dataDir   string
	dt        float64
	duration  float64
	theta     float64
	omega     float64
	pos       float64
	vel       float64
	force     float64
	pushSteps int

	cartMass   float64
	pendMass   float64
	pendLength float64
	viscosity  float64

	integrator string
	configFile string
	preset     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cartpend",
		Short: "inverted pendulum on a cart simulation",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".cartpend", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run simulation",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id] [dir]",
		Short: "export run trajectory to PNG plots",
		Args:  cobra.ExactArgs(2),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive live view",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range config.ListPresets() {
				fmt.Println(p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "initial angle from vertical")
	cmd.Flags().Float64Var(&omega, "omega", 0.0, "initial angular velocity")
	cmd.Flags().Float64Var(&pos, "pos", 0.0, "initial cart position")
	cmd.Flags().Float64Var(&vel, "vel", 0.0, "initial cart velocity")
	cmd.Flags().Float64Var(&force, "force", 0.0, "constant horizontal force on the cart")
	cmd.Flags().IntVar(&pushSteps, "push-steps", 0, "apply the force only for the first N steps (0 = whole run)")
	cmd.Flags().Float64Var(&cartMass, "cart-mass", config.DefaultCartMass, "cart mass")
	cmd.Flags().Float64Var(&pendMass, "pendulum-mass", config.DefaultPendulumMass, "pendulum mass")
	cmd.Flags().Float64Var(&pendLength, "pendulum-length", config.DefaultPendulumLength, "pendulum length")
	cmd.Flags().Float64Var(&viscosity, "viscosity", config.DefaultViscosity, "artificial viscosity")
	cmd.Flags().StringVar(&integrator, "integrator", "symplectic", "integrator (symplectic|euler)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig merges preset, config file, and flags. Flags win over
// the config file, which wins over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("force") {
		cfg.Force = force
	}
	if cmd.Flags().Changed("push-steps") {
		cfg.PushSteps = pushSteps
	}
	if cmd.Flags().Changed("theta") {
		cfg.InitState.Theta = theta
	}
	if cmd.Flags().Changed("omega") {
		cfg.InitState.Omega = omega
	}
	if cmd.Flags().Changed("pos") {
		cfg.InitState.Pos = pos
	}
	if cmd.Flags().Changed("vel") {
		cfg.InitState.Vel = vel
	}
	if cmd.Flags().Changed("cart-mass") {
		cfg.Params.CartMass = cartMass
	}
	if cmd.Flags().Changed("pendulum-mass") {
		cfg.Params.PendulumMass = pendMass
	}
	if cmd.Flags().Changed("pendulum-length") {
		cfg.Params.PendulumLength = pendLength
	}
	if cmd.Flags().Changed("viscosity") {
		cfg.Params.Viscosity = viscosity
	}

	return cfg, nil
}

func buildEntity(cfg *config.Config) (*entity.Pendulum, error) {
	pend := entity.New("pendulum", cfg.Dt)
	pend.SetCartMass(cfg.Params.CartMass)
	pend.SetPendulumMass(cfg.Params.PendulumMass)
	pend.SetPendulumLength(cfg.Params.PendulumLength)
	pend.SetViscosity(cfg.Params.Viscosity)
	pend.SetState(dynamo.State(cfg.GetInitState()))
	pend.ForceIn.Plug(forceSource(cfg))

	switch cfg.Integrator {
	case "symplectic", "":
		pend.SetIntegrator(integrators.NewSymplecticEuler())
	case "euler":
		pend.SetIntegrator(integrators.NewEuler())
	default:
		return nil, fmt.Errorf("unknown integrator: %s", cfg.Integrator)
	}

	return pend, nil
}

// forceSource builds the force input: constant for the whole run, or
// limited to the first PushSteps time indices.
func forceSource(cfg *config.Config) signal.Source {
	if cfg.PushSteps <= 0 {
		return signal.Constant{cfg.Force}
	}
	f, n := cfg.Force, cfg.PushSteps
	return signal.Func(func(t int) []float64 {
		if t < n {
			return []float64{f}
		}
		return []float64{0}
	})
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	pend, err := buildEntity(cfg)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := sim.New(pend)
	s.AddMetric(metrics.NewEnergy(pend.Model()))
	s.AddMetric(metrics.NewMaxExcursion())
	s.AddMetric(metrics.NewEffort())

	fmt.Println("running cart-pendulum simulation...")
	start := time.Now()

	result, err := s.Run(context.Background(), dynamo.State(cfg.GetInitState()),
		sim.Config{Dt: cfg.Dt, Duration: cfg.Duration, ValidateState: true})
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(storage.RunMetadata{
		Dt:             cfg.Dt,
		Duration:       cfg.Duration,
		Integrator:     cfg.Integrator,
		Force:          cfg.Force,
		CartMass:       cfg.Params.CartMass,
		PendulumMass:   cfg.Params.PendulumMass,
		PendulumLength: cfg.Params.PendulumLength,
		Viscosity:      cfg.Params.Viscosity,
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.StepsTaken)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Printf("energy drift: %.6f\n", result.EnergyDrift)

	var model dynamo.Configurable = pend.Model()
	fmt.Println("\nparameters:")
	for name, val := range model.GetParams() {
		fmt.Printf("  %s: %.3f\n", name, val)
	}

	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	fmt.Println()
	printGraph(result, 1, "theta vs time")

	return nil
}

func printGraph(result *sim.Result, idx int, caption string) {
	data := make([]float64, len(result.States))
	for i, s := range result.States {
		data[i] = s[idx]
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
	fmt.Println(graph)
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
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tDT\tINTEG\tFORCE\tM\tm\tl\tλ")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%s\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Force,
			run.CartMass,
			run.PendulumMass,
			run.PendulumLength,
			run.Viscosity,
		)
	}

	return w.Flush()
}

var stateCaptions = []string{
	"x (cart position)",
	"theta (angle from vertical)",
	"dx (cart velocity)",
	"dtheta (angular velocity)",
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(states))

	for idx, caption := range stateCaptions {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][idx]
		}
		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID, dir := args[0], args[1]

	st := storage.New(dataDir)
	states, times, err := st.LoadStates(runID)
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to export")
	}

	result := &sim.Result{
		States: make([]dynamo.State, len(states)),
		Times:  times,
	}
	for i, s := range states {
		result.States[i] = dynamo.State(s)
	}

	if err := export.TrajectoryPNG(dir, result); err != nil {
		return err
	}

	fmt.Printf("wrote %s/positions.png and %s/velocities.png\n", dir, dir)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	pend, err := buildEntity(cfg)
	if err != nil {
		return err
	}

	return tui.Run(pend, cfg.Dt)
}
