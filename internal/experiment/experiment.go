package experiment

import (
	"context"
	"fmt"

	"github.com/pacce/ventilation/internal/config"
	"github.com/pacce/ventilation/internal/metrics"
	"github.com/pacce/ventilation/internal/sim"
	"github.com/pacce/ventilation/internal/storage"
)

// Experiment is one configured run: a scenario, a simulator and the
// standard metric set.
type Experiment struct {
	cfg       *config.Config
	scenario  *config.Scenario
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the scenario and attaches metrics and observers. It may be
// called again to start over with a fresh mode.
func (e *Experiment) Setup(observers ...sim.Observer) error {
	scenario, err := e.cfg.Build()
	if err != nil {
		return err
	}
	e.scenario = scenario
	e.simulator = sim.New(scenario.Mode, scenario.Lung)
	for _, m := range metrics.Standard(scenario.Ceiling) {
		e.simulator.AddMetric(m)
	}
	for _, o := range observers {
		e.simulator.AddObserver(o)
	}
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.runConfig())
}

// RunWithCallback streams samples to callback until it returns false, the
// configured duration elapses or ctx is done.
func (e *Experiment) RunWithCallback(ctx context.Context, callback func(sim.Sample) bool) error {
	if e.simulator == nil {
		return fmt.Errorf("experiment not setup")
	}
	return e.simulator.RunWithCallback(ctx, e.runConfig(), callback)
}

func (e *Experiment) runConfig() sim.Config {
	cfg := e.scenario.Run
	cfg.ValidateSamples = true
	return cfg
}

func (e *Experiment) Config() *config.Config { return e.cfg }

func (e *Experiment) Scenario() *config.Scenario { return e.scenario }

// GetSimulator returns the underlying simulator for adding observers
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

// Job returns a batch job over a freshly built scenario.
func (e *Experiment) Job(name string) (sim.Job, error) {
	scenario, err := e.cfg.Build()
	if err != nil {
		return sim.Job{}, err
	}
	return sim.Job{Name: name, Mode: scenario.Mode, Lung: scenario.Lung}, nil
}

// Metadata describes result for storage.
func (e *Experiment) Metadata(result *sim.Result) storage.RunMetadata {
	meta := storage.NewMetadata(result)
	meta.Integrator = e.cfg.Integrator
	if e.scenario != nil {
		meta.Resistance = e.scenario.Lung.Resistance.Float64()
		meta.Elastance = e.scenario.Lung.Elastance.Float64()
	}
	return meta
}
