package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/pacce/ventilation/internal/analysis"
	"github.com/pacce/ventilation/internal/config"
	"github.com/pacce/ventilation/internal/experiment"
	"github.com/pacce/ventilation/internal/export"
	"github.com/pacce/ventilation/internal/logging"
	"github.com/pacce/ventilation/internal/sim"
	"github.com/pacce/ventilation/internal/storage"
	"github.com/pacce/ventilation/internal/tui"
	"github.com/pacce/ventilation/internal/viz"
)

var (
	dataDir  string
	logLevel string
	logJSON  bool

	// scenario
	configFile string
	preset     string
	mode       string
	integrator string
	dt         time.Duration
	duration   time.Duration
	resistance float64
	elastance  float64
	compliance float64
	peep       float64
	peak       float64
	tidal      float64
	rate       float64
	ratio      string
	kp         float64
	ki         float64

	// run
	save      bool
	watch     bool
	frameRate int
	speed     float64

	// inspection
	svgPath string
	csvPath string
	outPath string
	outDir  string
	format  string
	skip    int
	breath  string
)

// main registers the ventsim commands. With no subcommand it opens the
// interactive preset picker.
func main() {
	rootCmd := &cobra.Command{
		Use:          "ventsim",
		Short:        "mechanical ventilation simulator",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logging.Setup(logLevel, logJSON)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return viz.RunInteractive(speed)
		},
	}
	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".ventsim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "log as JSON")
	rootCmd.Flags().Float64Var(&speed, "speed", 1, "simulated seconds per wall second")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation and save it",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)
	runCmd.Flags().BoolVar(&save, "save", true, "save the run to the data directory")
	runCmd.Flags().BoolVar(&watch, "watch", false, "draw a strip chart while running")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "strip chart frame rate")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot pressure, flow and volume in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	chartCmd := &cobra.Command{
		Use:   "chart [run_id]",
		Short: "render waveform charts to image files",
		Args:  cobra.ExactArgs(1),
		RunE:  chartRun,
	}
	chartCmd.Flags().StringVar(&outDir, "out", ".", "output directory")
	chartCmd.Flags().StringVar(&format, "format", "svg", "image format (svg, png, pdf)")

	phaseCmd := &cobra.Command{
		Use:   "phase [run_id]",
		Short: "pressure-volume loop of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  phasePlot,
	}
	phaseCmd.Flags().StringVar(&breath, "breath", "last", "which breath: last or section")
	phaseCmd.Flags().StringVar(&svgPath, "svg", "", "also write the loop as SVG to this file")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "print run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run samples to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&csvPath, "out", "", "output file (default <run_id>.csv)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run metadata and samples to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outPath, "out", "-", "output file, - for stdout")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "breath statistics and spectrum of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&skip, "skip", 3, "breaths to skip before computing statistics")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "interactive ventilator monitor",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addScenarioFlags(liveCmd)
	liveCmd.Flags().Float64Var(&speed, "speed", 1, "simulated seconds per wall second")

	presetsCmd := &cobra.Command{
		Use:   "presets [mode]",
		Short: "list presets, optionally for one mode",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := ""
			if len(args) > 0 {
				m = args[0]
			}
			presets := experiment.NewRegistry().ListPresets(m)
			if len(presets) == 0 {
				fmt.Printf("no presets for mode: %s\n", m)
				return nil
			}
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	modesCmd := &cobra.Command{
		Use:   "modes",
		Short: "list ventilation modes and integrators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := experiment.NewRegistry()
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MODE\tSETPOINTS\tDESCRIPTION")
			for _, m := range reg.ListModes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, strings.Join(m.Setpoints, ","), m.Description)
			}
			if err := w.Flush(); err != nil {
				return err
			}
			fmt.Printf("\nintegrators: %s\n", strings.Join(reg.ListIntegrators(), ", "))
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, chartCmd, phaseCmd, exportCmd, exportCSVCmd,
		exportJSONCmd, analyzeCmd, liveCmd, presetsCmd, modesCmd)
	rootCmd.AddCommand(labCommands()...)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

// addScenarioFlags registers the flags that describe a scenario. Explicit
// flags override the preset or configuration file.
func addScenarioFlags(cmd *cobra.Command) {
	d := config.DefaultConfig()
	f := cmd.Flags()
	f.StringVar(&configFile, "config", "", "configuration file (yaml or ini)")
	f.StringVar(&preset, "preset", "", "start from a preset")
	f.StringVar(&mode, "mode", d.Mode, "ventilation mode (pcv, vcv)")
	f.StringVar(&integrator, "integrator", d.Integrator, "volume integrator (rectangle, trapezoid)")
	f.DurationVar(&dt, "dt", d.Dt, "timestep")
	f.DurationVar(&duration, "time", d.Duration, "simulated duration")
	f.Float64Var(&resistance, "resistance", d.Lung.Resistance, "airway resistance (cmH2O·s/L)")
	f.Float64Var(&elastance, "elastance", d.Lung.Elastance, "lung elastance (cmH2O/L)")
	f.Float64Var(&compliance, "compliance", 0, "lung compliance (L/cmH2O), instead of elastance")
	f.Float64Var(&peep, "peep", d.Settings.PEEP, "positive end-expiratory pressure (cmH2O)")
	f.Float64Var(&peak, "peak", d.Settings.Peak, "peak inspiratory pressure, pcv (cmH2O)")
	f.Float64Var(&tidal, "tidal", d.Settings.Tidal, "tidal volume, vcv (L)")
	f.Float64Var(&rate, "rate", 0, "breaths per minute, instead of explicit timing")
	f.StringVar(&ratio, "ratio", "1:2", "I:E ratio used with --rate")
	f.Float64Var(&kp, "kp", 0, "pressure controller proportional gain (0 keeps the default)")
	f.Float64Var(&ki, "ki", 0, "pressure controller integral gain (0 keeps the default)")
}

// resolveConfig loads the configuration file or preset and applies every
// flag the user set.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = experiment.NewRegistry().Resolve(preset, "")
	}
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("mode") {
		cfg.Mode = mode
	}
	if f.Changed("integrator") {
		cfg.Integrator = integrator
	}
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("time") {
		cfg.Duration = duration
	}
	if f.Changed("resistance") {
		cfg.Lung.Resistance = resistance
	}
	if f.Changed("elastance") {
		cfg.Lung.Elastance, cfg.Lung.Compliance = elastance, 0
	}
	if f.Changed("compliance") {
		cfg.Lung.Compliance, cfg.Lung.Elastance = compliance, 0
	}
	if f.Changed("peep") {
		cfg.Settings.PEEP = peep
	}
	if f.Changed("peak") {
		cfg.Settings.Peak = peak
	}
	if f.Changed("tidal") {
		cfg.Settings.Tidal = tidal
	}
	if f.Changed("rate") {
		cfg.Timing.Rate = rate
		cfg.Timing.Ratio = ratio
	}
	if f.Changed("kp") {
		cfg.Gains.Kp = kp
	}
	if f.Changed("ki") {
		cfg.Gains.Ki = ki
	}
	return cfg, cfg.Validate()
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	exp := experiment.New(cfg)
	var renderer *tui.LiveRenderer
	if watch {
		every := max(1, int(10*time.Millisecond/cfg.Dt))
		renderer = tui.NewLiveRenderer(title(cfg), os.Stdout, frameRate, every)
		err = exp.Setup(renderer)
	} else {
		err = exp.Setup()
	}
	if err != nil {
		return err
	}
	if renderer != nil {
		renderer.Start()
	}

	start := time.Now()
	result, err := exp.Run(cmd.Context())
	if renderer != nil {
		renderer.Stop()
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("%s: %d steps, %d breaths in %v\n", title(cfg), result.StepsTaken, result.Breaths, elapsed.Round(time.Millisecond))
	if err := printMetrics(result.Metrics); err != nil {
		return err
	}

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := exp.Metadata(result)
	meta.Preset = preset
	id, err := st.Save(meta, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved run %s\n", id)
	return nil
}

func title(cfg *config.Config) string {
	if preset != "" {
		return preset
	}
	return cfg.Mode
}

func printMetrics(m map[string]float64) error {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%.4f\n", name, m[name])
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tMODE\tTIME\tDURATION\tDT\tINTEG\tBREATHS\tPEEP")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%v\t%s\t%d\t%.1f\n",
			run.ID,
			run.Mode,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Integrator,
			run.Breaths,
			run.PEEP,
		)
	}

	return w.Flush()
}

// loadRun returns the metadata and samples of a saved run.
func loadRun(id string) (*storage.RunMetadata, []sim.Sample, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(id)
	if err != nil {
		return nil, nil, err
	}
	samples, err := st.LoadSamples(id)
	if err != nil {
		return nil, nil, err
	}
	if len(samples) == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", id)
	}
	if meta.Dt <= 0 {
		return nil, nil, fmt.Errorf("run %s has no timestep", id)
	}
	return meta, samples, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("mode: %s\n", meta.Mode)
	fmt.Printf("samples: %d\n\n", len(samples))

	// asciigraph interpolates to the width; a few thousand points are plenty
	shown := analysis.Decimate(samples, max(1, len(samples)/4000))
	for _, sig := range []struct {
		data    []float64
		caption string
	}{
		{analysis.Pressures(shown), "pressure (cmH2O)"},
		{analysis.Flows(shown), "flow (L/s)"},
		{analysis.Volumes(shown), "volume (L)"},
	} {
		graph := asciigraph.Plot(sig.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(sig.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func chartRun(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return err
	}
	paths, err := export.SaveWaveforms(samples, outDir, args[0], format, max(1, len(samples)/5000))
	if err != nil {
		return err
	}
	for _, p := range paths {
		fmt.Println(p)
	}
	return nil
}

func phasePlot(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	var loop *analysis.Loop
	switch breath {
	case "last":
		loop = analysis.LastBreath(samples)
	case "section":
		loop = analysis.BreathSection(samples)
	default:
		return fmt.Errorf("unknown breath selection %q (last, section)", breath)
	}
	if loop == nil {
		return fmt.Errorf("run %s has no complete breath", meta.ID)
	}

	minP, maxP, minV, maxV := loop.Bounds()
	fmt.Printf("pressure-volume loop: %s (%d points)\n", meta.ID, len(loop.Points))
	fmt.Printf("pressure: [%.2f, %.2f] cmH2O  volume: [%.3f, %.3f] L\n", minP, maxP, minV, maxV)
	fmt.Printf("dynamic compliance: %.4f L/cmH2O\n\n", loop.DynamicCompliance())
	fmt.Println(analysis.LoopToASCII(loop, 60, 20))

	if svgPath == "" {
		return nil
	}
	f, err := os.Create(svgPath)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := export.LoopToSVG(f, loop, 640, 480, "#0077cc"); err != nil {
		return err
	}
	log.WithField("path", svgPath).Info("loop written")
	return f.Close()
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	_, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path := csvPath
	if path == "" {
		path = args[0] + ".csv"
	}
	if err := storage.ExportCSV(path, &sim.Result{Samples: samples}); err != nil {
		return err
	}
	fmt.Printf("exported %d samples to %s\n", len(samples), path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(outPath, *meta, &sim.Result{Dt: meta.Dt, Samples: samples})
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, samples, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", meta.ID)
	fmt.Printf("mode: %s  peep: %.1f  peak: %.1f  tidal: %.3f\n\n", meta.Mode, meta.PEEP, meta.Peak, meta.Tidal)

	stats := analysis.Stats(analysis.Breaths(samples), skip)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "breaths analysed\t%d\n", stats.Count)
	fmt.Fprintf(w, "peak pressure\t%.2f ± %.2f cmH2O\n", stats.PeakPressure.Mean, stats.PeakPressure.StdDev)
	fmt.Fprintf(w, "end-expiratory pressure\t%.2f ± %.2f cmH2O\n", stats.EndPressure.Mean, stats.EndPressure.StdDev)
	fmt.Fprintf(w, "tidal volume\t%.3f ± %.3f L\n", stats.Tidal.Mean, stats.Tidal.StdDev)
	if loop := analysis.LastBreath(samples); loop != nil {
		fmt.Fprintf(w, "dynamic compliance\t%.4f L/cmH2O\n", loop.DynamicCompliance())
	}
	if bpm, err := analysis.BreathRate(samples, meta.Dt); err == nil {
		fmt.Fprintf(w, "breath rate (spectral)\t%.1f bpm\n", bpm)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	factor := max(1, int(10*time.Millisecond/meta.Dt))
	_, power, err := analysis.Spectrum(analysis.Pressures(analysis.Decimate(samples, factor)), time.Duration(factor)*meta.Dt)
	if err != nil {
		return err
	}
	// breathing lives in the lowest bins
	shown := power[:max(2, len(power)/20)]
	fmt.Println()
	fmt.Println(asciigraph.Plot(shown,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("pressure power spectrum"),
	))
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	m, err := viz.NewModel(cfg, title(cfg), speed)
	if err != nil {
		return err
	}
	return viz.Run(m)
}
