package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/automation"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/control"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/experiment"
	"github.com/san-kum/predprey/internal/export"
	"github.com/san-kum/predprey/internal/logging"
	"github.com/san-kum/predprey/internal/metrics"
	"github.com/san-kum/predprey/internal/optim"
	"github.com/san-kum/predprey/internal/physics"
	"github.com/san-kum/predprey/internal/storage"
	"github.com/san-kum/predprey/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logger   *slog.Logger

	// initial populations and rates
	prey     float64
	predator float64
	alpha    float64
	beta     float64
	delta    float64
	gamma    float64

	// solver
	integrator string
	adaptive   bool
	dt         float64
	samples    int
	stop       float64

	// harvesting
	controller      string
	harvestPrey     float64
	harvestPredator float64

	configFile string
	preset     string
	theme      string

	showPlot bool
	noSave   bool

	// sweep
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	// grid search
	searchAxes   []string
	searchMetric string
	searchTarget float64
	searchPeriod float64

	// svg export
	outFile  string
	phaseSVG bool
	braille  bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "predprey",
		Short: "Lotka-Volterra predator-prey explorer",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logger = logging.NewLogger(logLevel, os.Stderr)
			slog.SetDefault(logger)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, ok := viz.GetTheme(theme); !ok {
				return fmt.Errorf("unknown theme %q (want one of %s)", theme, strings.Join(viz.ThemeNames(), ", "))
			}
			cfg, err := buildConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunInteractive(cfg, theme)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".predprey", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (error, warn, info, debug, trace)")
	addModelFlags(rootCmd)
	rootCmd.Flags().StringVar(&theme, "theme", "meadow", "color theme ("+strings.Join(viz.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "solve the model and save the trajectory",
		RunE:  runSimulation,
	}
	addModelFlags(runCmd)
	runCmd.Flags().BoolVar(&showPlot, "plot", false, "plot both populations after the run")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not write the run to the data directory")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot prey and predator against time (latest run by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "draw the prey-predator phase portrait",
		Args:  cobra.MaximumNArgs(1),
		RunE:  phasePlot,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "estimate the oscillation period of a run",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "write a run as csv to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "write a run as json to stdout",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportJSON,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportSVGCmd.Flags().BoolVar(&phaseSVG, "phase", false, "draw the phase portrait instead of the time series")
	exportSVGCmd.Flags().BoolVar(&braille, "braille", false, "draw the phase portrait as braille dots")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE:  listPresets,
	}

	compareCmd := &cobra.Command{
		Use:   "compare [integrator...]",
		Short: "compare integrators on the same configuration",
		RunE:  compareIntegrators,
	}
	addModelFlags(compareCmd)

	equilibriumCmd := &cobra.Command{
		Use:   "equilibrium",
		Short: "print the fixed points and small-oscillation period",
		RunE:  showEquilibrium,
	}
	addModelFlags(equilibriumCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the model over a range of one slider value",
		RunE:  runSweep,
	}
	addModelFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "alpha", "slider to sweep (prey, predator, alpha, beta, delta, gamma)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 1, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 10, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")
	sweepCmd.Flags().BoolVar(&showPlot, "plot", false, "draw the prey peak diagram")

	searchCmd := &cobra.Command{
		Use:   "search",
		Short: "grid search slider values minimising a metric",
		RunE:  runSearch,
	}
	addModelFlags(searchCmd)
	searchCmd.Flags().StringArrayVar(&searchAxes, "axis", nil, "slider grid, key=min:max:step or key=v1,v2 (repeatable)")
	searchCmd.Flags().StringVar(&searchMetric, "metric", "extinction", "metric to minimise")
	searchCmd.Flags().Float64Var(&searchTarget, "target", 0, "minimise the distance of the metric to this value")
	searchCmd.Flags().Float64Var(&searchPeriod, "period", 0, "minimise the distance of the prey period to this value")
	_ = searchCmd.MarkFlagRequired("axis")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run every step of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, phaseCmd, analyzeCmd, exportCSVCmd, exportJSONCmd,
		exportSVGCmd, presetsCmd, compareCmd, equilibriumCmd, sweepCmd, searchCmd, scenarioCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = logging.NewLogger(logLevel, os.Stderr)
		}
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}

func addModelFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.Float64Var(&prey, "prey", config.DefaultPrey, "initial prey population")
	f.Float64Var(&predator, "predator", config.DefaultPredator, "initial predator population")
	f.Float64Var(&alpha, "alpha", config.DefaultRate, "birth rate of prey")
	f.Float64Var(&beta, "beta", config.DefaultRate, "rate of predators eating prey")
	f.Float64Var(&delta, "delta", config.DefaultRate, "birth rate of predators")
	f.Float64Var(&gamma, "gamma", config.DefaultRate, "death rate of predators")
	f.StringVar(&integrator, "integrator", "rk45", "integrator (euler, rk4, rk45)")
	f.BoolVar(&adaptive, "adaptive", true, "error-controlled stepping")
	f.Float64Var(&dt, "dt", config.DefaultDt, "initial or fixed step size")
	f.IntVar(&samples, "samples", config.DefaultSamples, "number of output samples")
	f.Float64Var(&stop, "stop", config.DefaultStop, "end of the time grid")
	f.StringVar(&controller, "controller", "none", "controller (none, harvest, pid)")
	f.Float64Var(&harvestPrey, "harvest-prey", 0, "prey harvesting effort")
	f.Float64Var(&harvestPredator, "harvest-predator", 0, "predator harvesting effort")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// buildConfig layers defaults, preset, config file and explicitly set flags,
// later sources winning.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
	}

	flags := cmd.Flags()
	if flags.Changed("prey") {
		cfg.InitState.Prey = prey
	}
	if flags.Changed("predator") {
		cfg.InitState.Predator = predator
	}
	if flags.Changed("alpha") {
		cfg.Params.Alpha = alpha
	}
	if flags.Changed("beta") {
		cfg.Params.Beta = beta
	}
	if flags.Changed("delta") {
		cfg.Params.Delta = delta
	}
	if flags.Changed("gamma") {
		cfg.Params.Gamma = gamma
	}
	if flags.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if flags.Changed("adaptive") {
		cfg.Adaptive = adaptive
	}
	if flags.Changed("dt") {
		cfg.Dt = dt
	}
	if flags.Changed("samples") {
		cfg.Grid.Samples = samples
	}
	if flags.Changed("stop") {
		cfg.Grid.Stop = stop
	}
	if flags.Changed("harvest-prey") {
		cfg.Harvest.Prey = harvestPrey
	}
	if flags.Changed("harvest-predator") {
		cfg.Harvest.Predator = harvestPredator
	}
	if flags.Changed("controller") {
		cfg.Controller = controller
	} else if cfg.Controller == "none" && (cfg.Harvest.Prey > 0 || cfg.Harvest.Predator > 0) {
		cfg.Controller = "harvest"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	exp, err := experiment.FromConfig(cfg, nil)
	if err != nil {
		return err
	}

	fmt.Printf("solving lotka-volterra on [%g, %g] with %d samples...\n", cfg.Grid.Start, cfg.Grid.Stop, cfg.Grid.Samples)
	start := time.Now()

	result, err := exp.WithLogger(logger).Run(context.Background())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.MetadataFromConfig(cfg), result)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("samples: %d\n", len(result.States))
	fmt.Printf("steps: %d\n", result.StepsTaken)
	printMetrics(result.Metrics)

	if showPlot {
		fmt.Println()
		fmt.Println(populationGraph(result))
	}

	return nil
}

func printMetrics(m map[string]float64) {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Println("\nmetrics:")
	for _, name := range names {
		fmt.Printf("  %s: %.6g\n", name, m[name])
	}
}

func populationGraph(result *dynamo.Result) string {
	return asciigraph.PlotMany([][]float64{result.Prey(), result.Predator()},
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Blue, asciigraph.Red),
		asciigraph.Caption("prey (blue) and predator (red) vs time"),
	)
}

func openStore() *storage.Store {
	return storage.New(dataDir)
}

// resolveRun picks the run named in args or the most recent one.
func resolveRun(st *storage.Store, args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	return st.Latest()
}

func loadRun(args []string) (*storage.RunMetadata, *dynamo.Result, error) {
	st := openStore()
	runID, err := resolveRun(st, args)
	if err != nil {
		return nil, nil, err
	}
	meta, result, err := st.LoadResult(runID)
	if err != nil {
		return nil, nil, err
	}
	if len(result.States) == 0 {
		return nil, nil, fmt.Errorf("run %s has no data", runID)
	}
	return meta, result, nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := openStore().List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPREY\tPRED\tα\tβ\tδ\tγ\tINTEG\tCTRL\tSAMPLES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%g\t%g\t%g\t%g\t%g\t%g\t%s\t%s\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.InitState.Prey,
			run.InitState.Predator,
			run.Params["alpha"],
			run.Params["beta"],
			run.Params["delta"],
			run.Params["gamma"],
			run.Integrator,
			run.Controller,
			run.Samples,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("t: [%g, %g], samples: %d\n\n", meta.Start, meta.Stop, len(result.States))

	fmt.Println(populationGraph(result))
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}

	portrait := analysis.PreyPredatorPortrait(result)
	minX, maxX, minY, maxY := portrait.Bounds()

	fmt.Printf("phase portrait: %s\n", meta.ID)
	fmt.Printf("prey [%.3g, %.3g], predator [%.3g, %.3g]\n\n", minX, maxX, minY, maxY)
	fmt.Print(analysis.PhasePortraitToASCII(portrait, 70, 20))
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}
	if len(result.Times) < 2 {
		return fmt.Errorf("run %s has too few samples to analyze", meta.ID)
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	prey := result.Prey()
	mean := 0.0
	for _, v := range prey {
		mean += v
	}
	mean /= float64(len(prey))
	centered := make([]float64, len(prey))
	for i, v := range prey {
		centered[i] = v - mean
	}

	ps := analysis.PowerSpectrum(centered)
	plotData := ps[:len(ps)/4]
	if len(plotData) > 1 {
		graph := asciigraph.Plot(plotData,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (prey)"),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	dtSample := result.Times[1] - result.Times[0]
	fmt.Printf("prey period (spectral): %.4g\n", analysis.DominantPeriod(prey, dtSample))
	fmt.Printf("predator period (spectral): %.4g\n", analysis.DominantPeriod(result.Predator(), dtSample))

	if meta.Params["delta"] > 0 {
		threshold := meta.Params["gamma"] / meta.Params["delta"]
		section := analysis.PoincareSection(result, metrics.Prey, threshold, metrics.Predator)
		fmt.Printf("prey crossings of %.3g: %d\n", threshold, len(section))
		if p := analysis.CrossingPeriod(section); p > 0 {
			fmt.Printf("period (crossings): %.4g\n", p)
		}
		if len(section) > 0 {
			fmt.Println("\npredator at prey crossings:")
			fmt.Println(analysis.PoincareSectionToASCII(section, 60, 10))
		}
	}

	if lv, ok := modelFromMeta(meta); ok {
		fmt.Printf("linearised period: %.4g\n", lv.Period())
	}
	if v, ok := result.Metrics["invariant_drift"]; ok {
		fmt.Printf("invariant drift: %.3e\n", v)
	}

	return nil
}

func modelFromMeta(meta *storage.RunMetadata) (*physics.LotkaVolterra, bool) {
	p := physics.Params{
		Alpha: meta.Params["alpha"],
		Beta:  meta.Params["beta"],
		Delta: meta.Params["delta"],
		Gamma: meta.Params["gamma"],
	}
	if p.Alpha <= 0 || p.Gamma <= 0 {
		return nil, false
	}
	return physics.NewLotkaVolterra(p), true
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, result, err := loadRun(args)
	if err != nil {
		return err
	}
	return storage.WriteCSV(os.Stdout, result)
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, result)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, result, err := loadRun(args)
	if err != nil {
		return err
	}

	var svg string
	switch {
	case braille:
		canvas := viz.NewCanvas(60, 20)
		viz.PlotPortrait(canvas, analysis.PreyPredatorPortrait(result))
		svg = export.CanvasToSVG(canvas, 4)
	case phaseSVG:
		svg = export.PhasePortraitSVG(analysis.PreyPredatorPortrait(result), 600, 600, export.PreyColor)
	default:
		svg = export.TimeSeriesSVG(result.Times, result.Prey(), result.Predator(), 800, 600)
	}

	if outFile == "" {
		fmt.Println(svg)
		return nil
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s for %s\n", outFile, meta.ID)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tPREY\tPRED\tα\tβ\tδ\tγ\tCTRL\tSTOP")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g\t%g\t%g\t%s\t%g\n",
			name,
			cfg.InitState.Prey,
			cfg.InitState.Predator,
			cfg.Params.Alpha,
			cfg.Params.Beta,
			cfg.Params.Delta,
			cfg.Params.Gamma,
			cfg.Controller,
			cfg.Grid.Stop,
		)
	}
	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = experiment.NewRegistry().ListIntegrators()
	}

	fmt.Printf("comparing integrators (dt=%g, adaptive=%v, t=[%g, %g])\n\n", base.Dt, base.Adaptive, base.Grid.Start, base.Grid.Stop)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEG\tSTEPS\tFINAL PREY\tFINAL PRED\tDRIFT\tTIME(ms)")

	for _, name := range names {
		cfg := *base
		cfg.Integrator = name

		start := time.Now()
		result, err := experiment.Simulate(context.Background(), &cfg)
		elapsed := time.Since(start)

		if err != nil {
			fmt.Fprintf(w, "%s\terror: %v\t\t\t\t\n", name, err)
			continue
		}

		final := result.Final()
		fmt.Fprintf(w, "%s\t%d\t%.6g\t%.6g\t%.2e\t%.2f\n",
			name,
			result.StepsTaken,
			final[metrics.Prey],
			final[metrics.Predator],
			result.Metrics["invariant_drift"],
			float64(elapsed.Microseconds())/1000,
		)
	}

	return w.Flush()
}

func showEquilibrium(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	p := physics.Params{Alpha: cfg.Params.Alpha, Beta: cfg.Params.Beta, Delta: cfg.Params.Delta, Gamma: cfg.Params.Gamma}
	lv := physics.NewLotkaVolterra(p)
	eq := lv.Equilibrium()

	fmt.Printf("α=%g β=%g δ=%g γ=%g\n\n", p.Alpha, p.Beta, p.Delta, p.Gamma)
	fmt.Printf("extinction:   (0, 0)\n")
	fmt.Printf("coexistence:  (%.4g, %.4g)\n", eq[metrics.Prey], eq[metrics.Predator])
	if cfg.Controller == "harvest" {
		h := control.NewHarvest(cfg.Harvest.Prey, cfg.Harvest.Predator)
		shifted := h.Equilibrium(p)
		fmt.Printf("harvested:    (%.4g, %.4g)\n", shifted[metrics.Prey], shifted[metrics.Predator])
		if shifted[metrics.Predator] <= 0 {
			fmt.Println("              prey effort exceeds α, predators cannot persist")
		}
	}
	fmt.Printf("small-oscillation period: %.4g\n", lv.Period())

	x0 := cfg.GetInitState()
	if v := lv.Energy(x0); !math.IsNaN(v) {
		fmt.Printf("invariant at (%g, %g): %.6g\n", x0[metrics.Prey], x0[metrics.Predator], v)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Param: sweepParam,
		Min:   sweepMin,
		Max:   sweepMax,
		Steps: sweepSteps,
		Base:  base,
	}

	results, err := automation.RunSweep(context.Background(), sweep, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tPREY MEAN\tPRED MEAN\tPREY PEAK\tPRED PEAK\tPERIOD\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%g\t%.4g\t%.4g\t%.4g\t%.4g\t%.4g\n",
			r.Value, r.PreyMean, r.PredatorMean, r.PreyPeak, r.PredatorPeak, r.Period)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if showPlot {
		fmt.Printf("\nprey peaks vs %s\n", sweepParam)
		fmt.Print(analysis.PeakDiagramToASCII(automation.PeakDiagram(results), 60, 15))
	}
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	base, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	axes := make([]optim.Axis, 0, len(searchAxes))
	for _, a := range searchAxes {
		axis, err := optim.ParseAxis(a)
		if err != nil {
			return err
		}
		axes = append(axes, axis)
	}

	objective := optim.MetricObjective(searchMetric)
	goal := "minimise " + searchMetric
	switch {
	case cmd.Flags().Changed("period"):
		objective = optim.PeriodObjective(searchPeriod)
		goal = fmt.Sprintf("prey period closest to %g", searchPeriod)
	case cmd.Flags().Changed("target"):
		objective = optim.TargetObjective(searchMetric, searchTarget)
		goal = fmt.Sprintf("%s closest to %g", searchMetric, searchTarget)
	}

	g := optim.NewGridSearch(axes)
	fmt.Printf("searching %d configurations: %s\n", g.Size(), goal)

	start := time.Now()
	best, err := g.Search(context.Background(), base, objective)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(best.Values))
	for k := range best.Values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("done in %v\n\nbest:\n", time.Since(start))
	for _, k := range keys {
		fmt.Printf("  %s: %g\n", k, best.Values[k])
	}
	fmt.Printf("  score: %.6g\n", best.Score)
	return nil
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("scenario: %s\n", scenario.Name)
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}
	fmt.Println()

	st := openStore()
	if err := st.Init(); err != nil {
		return err
	}

	results, err := automation.RunScenario(context.Background(), scenario, st, logger)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tSAMPLES\tPREY PEAK\tPRED PEAK\tRUN")
	for _, r := range results {
		runID := r.RunID
		if runID == "" {
			runID = "-"
		}
		fmt.Fprintf(w, "%s\t%d\t%.4g\t%.4g\t%s\n",
			r.Name, len(r.Result.States), r.Result.Metrics["prey_peak"], r.Result.Metrics["predator_peak"], runID)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}
