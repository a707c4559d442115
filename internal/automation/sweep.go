package automation

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pacce/ventilation/internal/config"
	"github.com/pacce/ventilation/internal/metrics"
	"github.com/pacce/ventilation/internal/sim"
)

// Sweepable names the configuration fields a sweep can vary.
var Sweepable = map[string]func(*config.Config, float64){
	"resistance": func(c *config.Config, v float64) { c.Lung.Resistance = v },
	"elastance": func(c *config.Config, v float64) {
		c.Lung.Elastance = v
		c.Lung.Compliance = 0
	},
	"compliance": func(c *config.Config, v float64) {
		c.Lung.Compliance = v
		c.Lung.Elastance = 0
	},
	"peep":  func(c *config.Config, v float64) { c.Settings.PEEP = v },
	"peak":  func(c *config.Config, v float64) { c.Settings.Peak = v },
	"tidal": func(c *config.Config, v float64) { c.Settings.Tidal = v },
	"rate":  func(c *config.Config, v float64) { c.Timing.Rate = v },
}

// ParameterSweep runs the base configuration across a range of one
// parameter.
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
	Workers   int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Breaths    int
	Metrics    map[string]float64
}

func (s *ParameterSweep) values() []float64 {
	if s.NumSteps <= 1 {
		return []float64{s.ParamMin}
	}
	step := (s.ParamMax - s.ParamMin) / float64(s.NumSteps-1)
	out := make([]float64, s.NumSteps)
	for i := range out {
		out[i] = s.ParamMin + float64(i)*step
	}
	return out
}

// RunSweep executes the sweep points concurrently.
func RunSweep(ctx context.Context, sweep *ParameterSweep) ([]SweepResult, error) {
	set, ok := Sweepable[sweep.ParamName]
	if !ok {
		return nil, fmt.Errorf("parameter %s is not sweepable", sweep.ParamName)
	}

	values := sweep.values()
	cfgs := make([]*config.Config, len(values))
	for i, v := range values {
		c := *sweep.Base
		set(&c, v)
		cfgs[i] = &c
	}

	results, err := runAll(ctx, cfgs, sweep.Workers)
	if err != nil {
		return nil, err
	}

	out := make([]SweepResult, len(results))
	for i, r := range results {
		out[i] = SweepResult{ParamValue: values[i], Breaths: r.Breaths, Metrics: r.Metrics}
	}
	log.WithFields(log.Fields{"param": sweep.ParamName, "points": len(out)}).Info("sweep complete")
	return out, nil
}

// runAll builds every configuration into a batch job and runs them with the
// run settings of the first.
func runAll(ctx context.Context, cfgs []*config.Config, workers int) ([]*sim.Result, error) {
	if len(cfgs) == 0 {
		return nil, nil
	}
	jobs := make([]sim.Job, len(cfgs))
	var first *config.Scenario
	for i, c := range cfgs {
		sc, err := c.Build()
		if err != nil {
			return nil, fmt.Errorf("point %d: %w", i, err)
		}
		if first == nil {
			first = sc
		}
		jobs[i] = sim.Job{Name: fmt.Sprintf("point-%d", i), Mode: sc.Mode, Lung: sc.Lung}
	}

	ceiling := first.Ceiling
	batch := sim.NewBatch(func() []sim.Metric { return metrics.Standard(ceiling) }, workers)
	return batch.Run(ctx, jobs, first.Run)
}

// MonteCarloConfig perturbs the patient: resistance and elastance are drawn
// uniformly within ±Perturbation (a fraction) of the base values.
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
	Workers      int
	// Tolerance is how far the monitored value may stray from its setpoint:
	// cmH2O of end-expiratory pressure.
	Tolerance float64
}

// MonteCarloResult holds one trial.
type MonteCarloResult struct {
	TrialID    int
	Resistance float64
	Elastance  float64
	Metrics    map[string]float64
	// OnTarget is true when the end-expiratory pressure settled within
	// Tolerance of PEEP.
	OnTarget bool
}

// RunMonteCarlo executes the trials concurrently. Trials with the same seed
// see the same patients.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig) ([]MonteCarloResult, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	base := *cfg.Base
	if base.Lung.Elastance <= 0 && base.Lung.Compliance > 0 {
		base.Lung.Elastance = 1 / base.Lung.Compliance
	}

	cfgs := make([]*config.Config, cfg.NumTrials)
	for i := range cfgs {
		c := base
		c.Lung.Resistance = base.Lung.Resistance * (1 + (rng.Float64()-0.5)*2*cfg.Perturbation)
		c.Lung.Elastance = base.Lung.Elastance * (1 + (rng.Float64()-0.5)*2*cfg.Perturbation)
		c.Lung.Compliance = 0
		cfgs[i] = &c
	}

	results, err := runAll(ctx, cfgs, cfg.Workers)
	if err != nil {
		return nil, err
	}

	tol := cfg.Tolerance
	if tol <= 0 {
		tol = 1
	}
	out := make([]MonteCarloResult, len(results))
	for i, r := range results {
		eep := r.Metrics["end_expiratory_pressure"]
		out[i] = MonteCarloResult{
			TrialID:    i,
			Resistance: cfgs[i].Lung.Resistance,
			Elastance:  cfgs[i].Lung.Elastance,
			Metrics:    r.Metrics,
			OnTarget:   eep >= base.Settings.PEEP-tol && eep <= base.Settings.PEEP+tol,
		}
	}
	log.WithField("trials", len(out)).Info("monte carlo complete")
	return out, nil
}

// MonteCarloStats counts trials on and off target.
func MonteCarloStats(results []MonteCarloResult) (onTarget int, offTarget int) {
	for _, r := range results {
		if r.OnTarget {
			onTarget++
		} else {
			offTarget++
		}
	}
	return
}
