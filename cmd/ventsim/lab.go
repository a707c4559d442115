package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/pacce/ventilation/internal/automation"
	"github.com/pacce/ventilation/internal/experiment"
	"github.com/pacce/ventilation/internal/optim"
	"github.com/pacce/ventilation/internal/storage"
	"github.com/pacce/ventilation/internal/stream"
)

var (
	workers int

	// sweep
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	// monte carlo
	trials       int
	perturbation float64
	seed         int64
	tolerance    float64

	// tune
	kpValues     []float64
	kiValues     []float64
	inspKpValues []float64
	warmup       int

	// serve
	addr  string
	every int
)

// labCommands are the batch and service commands built on the scenario
// flags: protocols, sweeps, tuning, benchmarks and the websocket stream.
func labCommands() []*cobra.Command {
	protocolCmd := &cobra.Command{
		Use:   "protocol [file]",
		Short: "run a scripted protocol of setting changes",
		Args:  cobra.ExactArgs(1),
		RunE:  runProtocol,
	}
	addScenarioFlags(protocolCmd)
	protocolCmd.Flags().BoolVar(&save, "save", true, "save the run to the data directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "run the scenario across a range of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addScenarioFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 20, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 80, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 7, "number of values")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 for one per point)")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run the scenario against randomly perturbed lungs",
		Args:  cobra.NoArgs,
		RunE:  runMonteCarlo,
	}
	addScenarioFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&perturbation, "perturb", 0.3, "relative perturbation of resistance and elastance")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 for time based)")
	monteCarloCmd.Flags().Float64Var(&tolerance, "tol", 1, "allowed end-expiratory pressure error (cmH2O)")
	monteCarloCmd.Flags().IntVar(&workers, "workers", 0, "concurrent runs (0 for one per trial)")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search controller gains against setpoint tracking",
		Args:  cobra.NoArgs,
		RunE:  runTune,
	}
	addScenarioFlags(tuneCmd)
	tuneCmd.Flags().Float64SliceVar(&kpValues, "kp-values", []float64{2e-3, 5e-3, 1e-2}, "pressure kp candidates")
	tuneCmd.Flags().Float64SliceVar(&kiValues, "ki-values", []float64{0, 6e-5, 2e-4}, "pressure ki candidates")
	tuneCmd.Flags().Float64SliceVar(&inspKpValues, "insp-kp-values", nil, "vcv volume kp candidates")
	tuneCmd.Flags().IntVar(&warmup, "warmup", 3, "breaths ignored before scoring")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark the simulator across timesteps",
		Args:  cobra.NoArgs,
		RunE:  benchScenario,
	}
	addScenarioFlags(benchCmd)

	compareCmd := &cobra.Command{
		Use:   "compare [integrator1] [integrator2] ...",
		Short: "compare integrators on the same scenario",
		Args:  cobra.MinimumNArgs(2),
		RunE:  compareIntegrators,
	}
	addScenarioFlags(compareCmd)

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream a running simulation over websocket",
		Args:  cobra.NoArgs,
		RunE:  serveStream,
	}
	addScenarioFlags(serveCmd)
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	serveCmd.Flags().IntVar(&every, "every", 100, "send one frame per this many samples")
	serveCmd.Flags().Float64Var(&speed, "speed", 1, "simulated seconds per wall second, 0 for flat out")

	return []*cobra.Command{protocolCmd, sweepCmd, monteCarloCmd, tuneCmd, benchCmd, compareCmd, serveCmd}
}

func runProtocol(cmd *cobra.Command, args []string) error {
	p, err := automation.LoadProtocol(args[0])
	if err != nil {
		return err
	}
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	result, applied, err := automation.RunProtocol(cmd.Context(), p, base)
	if err != nil {
		return err
	}

	fmt.Printf("protocol %s: %d steps, %d breaths\n\n", p.Name, result.StepsTaken, result.Breaths)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "AT\tAPPLIED\tCHANGE")
	for _, a := range applied {
		fmt.Fprintf(w, "%v\t%v\t%s\n", a.Event.At, a.Time, describe(a.Event))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
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
	meta := storage.NewMetadata(result)
	meta.Preset = p.Preset
	id, err := st.Save(meta, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nsaved run %s\n", id)
	return nil
}

func describe(e automation.Event) string {
	var parts []string
	if e.PEEP != nil {
		parts = append(parts, fmt.Sprintf("peep=%g", *e.PEEP))
	}
	if e.Peak != nil {
		parts = append(parts, fmt.Sprintf("peak=%g", *e.Peak))
	}
	if e.Tidal != nil {
		parts = append(parts, fmt.Sprintf("tidal=%g", *e.Tidal))
	}
	if e.Rate != nil {
		parts = append(parts, fmt.Sprintf("rate=%g", *e.Rate))
	}
	if e.Ratio != "" {
		parts = append(parts, "ratio="+e.Ratio)
	}
	return strings.Join(parts, " ")
}

func runSweep(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      base,
		ParamName: args[0],
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
		Workers:   workers,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tBREATHS\tPEAK\tEEP\tTIDAL\tMINUTE\n", strings.ToUpper(args[0]))
	for _, r := range results {
		fmt.Fprintf(w, "%.4g\t%d\t%.2f\t%.2f\t%.3f\t%.2f\n",
			r.ParamValue,
			r.Breaths,
			r.Metrics["peak_pressure"],
			r.Metrics["end_expiratory_pressure"],
			r.Metrics["tidal_volume"],
			r.Metrics["minute_ventilation"],
		)
	}
	return w.Flush()
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Base:         base,
		Perturbation: perturbation,
		NumTrials:    trials,
		Seed:         seed,
		Workers:      workers,
		Tolerance:    tolerance,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TRIAL\tR\tE\tPEAK\tEEP\tTIDAL\tON TARGET")
	for _, r := range results {
		fmt.Fprintf(w, "%d\t%.1f\t%.1f\t%.2f\t%.2f\t%.3f\t%v\n",
			r.TrialID, r.Resistance, r.Elastance,
			r.Metrics["peak_pressure"], r.Metrics["end_expiratory_pressure"], r.Metrics["tidal_volume"],
			r.OnTarget)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	on, off := automation.MonteCarloStats(results)
	fmt.Printf("\non target: %d/%d (%.0f%%)\n", on, on+off, 100*float64(on)/float64(max(1, on+off)))
	return nil
}

func runTune(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	params := []string{"kp", "ki"}
	ranges := [][]float64{kpValues, kiValues}
	if len(inspKpValues) > 0 {
		params = append(params, "insp_kp")
		ranges = append(ranges, inspKpValues)
	}
	gs, err := optim.NewGridSearch(params, ranges)
	if err != nil {
		return err
	}

	best, score, err := gs.Search(cmd.Context(), base, optim.TrackingError(base, warmup))
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tSCORE\n", strings.ToUpper(strings.Join(params, "\t")))
	for _, p := range gs.Points() {
		for _, name := range params {
			fmt.Fprintf(w, "%.3g\t", p.Params[name])
		}
		if p.Err != nil {
			fmt.Fprintf(w, "error: %v\n", p.Err)
			continue
		}
		fmt.Fprintf(w, "%.4f\n", p.Score)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\nbest (score %.4f):", score)
	for _, name := range params {
		fmt.Printf(" %s=%g", name, best[name])
	}
	fmt.Println()
	return nil
}

func benchScenario(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	durations := []time.Duration{time.Second, 5 * time.Second, 10 * time.Second}
	dts := []time.Duration{time.Millisecond, 100 * time.Microsecond, 10 * time.Microsecond}

	fmt.Printf("benchmarking %s\n\n", title(base))
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, step := range dts {
			cfg := *base
			cfg.Duration, cfg.Dt = dur, step

			exp := experiment.New(&cfg)
			if err := exp.Setup(); err != nil {
				return err
			}

			start := time.Now()
			result, err := exp.Run(cmd.Context())
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			fmt.Fprintf(w, "%v\t%v\t%d\t%v\t%.0f\n",
				dur, step, result.StepsTaken, elapsed.Round(time.Microsecond),
				float64(result.StepsTaken)/elapsed.Seconds())
		}
	}

	return w.Flush()
}

func compareIntegrators(cmd *cobra.Command, args []string) error {
	base, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INTEGRATOR\tTIME\tPEAK\tEEP\tTIDAL\tWORK")

	for _, name := range args {
		cfg := *base
		cfg.Integrator = name

		exp := experiment.New(&cfg)
		if err := exp.Setup(); err != nil {
			return err
		}
		start := time.Now()
		result, err := exp.Run(cmd.Context())
		if err != nil {
			return err
		}
		m := result.Metrics
		fmt.Fprintf(w, "%s\t%v\t%.3f\t%.3f\t%.4f\t%.4f\n",
			name, time.Since(start).Round(time.Millisecond),
			m["peak_pressure"], m["end_expiratory_pressure"], m["tidal_volume"], m["work_of_breathing"])
	}
	return w.Flush()
}

// serveStream runs the scenario once, paced by --speed, while clients watch
// and adjust it. It keeps serving after the run until interrupted.
func serveStream(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return err
	}

	hub := stream.NewHub(every)
	server := stream.NewServer(addr, hub)

	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		hub.Run(ctx)
		return nil
	})
	g.Go(func() error { return server.Serve(ctx) })
	g.Go(func() error {
		err := stream.Drive(ctx, exp.GetSimulator(), exp.Scenario().Run, hub, speed)
		if err != nil && ctx.Err() == nil {
			return err
		}
		log.Info("run complete")
		return nil
	})

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	return nil
}
