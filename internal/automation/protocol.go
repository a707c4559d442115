package automation

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/pacce/ventilation/internal/config"
	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/experiment"
	"github.com/pacce/ventilation/internal/metrics"
	"github.com/pacce/ventilation/internal/modes"
	"github.com/pacce/ventilation/internal/quantity"
	"github.com/pacce/ventilation/internal/sim"
)

// ErrProtocol is matched by every protocol validation failure.
var ErrProtocol = errors.New("automation: invalid protocol")

// Protocol is a scripted run: a base configuration and setting changes
// applied at given times.
type Protocol struct {
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Preset      string        `yaml:"preset"`
	Duration    time.Duration `yaml:"duration"`
	Events      []Event       `yaml:"events"`
}

// Event changes one or more settings at time At. Nil fields are left alone.
type Event struct {
	At    time.Duration `yaml:"at"`
	PEEP  *float64      `yaml:"peep,omitempty"`
	Peak  *float64      `yaml:"peak,omitempty"`
	Tidal *float64      `yaml:"tidal,omitempty"`
	Rate  *float64      `yaml:"rate,omitempty"`
	Ratio string        `yaml:"ratio,omitempty"`
}

// Applied records an event that took effect.
type Applied struct {
	Event Event
	Step  int
	Time  time.Duration
}

// LoadProtocol loads a protocol from a YAML file
func LoadProtocol(path string) (*Protocol, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Protocol
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("automation: parse %s: %w", path, err)
	}
	return &p, p.Validate()
}

func (p *Protocol) Validate() error {
	var errs []error
	for i, ev := range p.Events {
		if ev.At < 0 {
			errs = append(errs, fmt.Errorf("event %d: negative time %v", i, ev.At))
		}
		if ev.Ratio != "" && ev.Rate == nil {
			errs = append(errs, fmt.Errorf("event %d: ratio needs a rate", i))
		}
		if ev.PEEP == nil && ev.Peak == nil && ev.Tidal == nil && ev.Rate == nil {
			errs = append(errs, fmt.Errorf("event %d: changes nothing", i))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrProtocol, errors.Join(errs...))
}

// apply hands the event to the mode's setters. A rate change installs a new
// cycle, which restarts the breath at inspiration.
func (ev Event) apply(m modes.Mode) error {
	if ev.PEEP != nil {
		p, err := quantity.NewPressure(*ev.PEEP)
		if err != nil {
			return err
		}
		modes.SetPEEP(m, p)
	}
	if ev.Peak != nil {
		p, err := quantity.NewPressure(*ev.Peak)
		if err != nil {
			return err
		}
		modes.SetPeak(m, p)
	}
	if ev.Tidal != nil {
		v, err := quantity.NewVolume(*ev.Tidal)
		if err != nil {
			return err
		}
		modes.SetTidal(m, v)
	}
	if ev.Rate != nil {
		ratio, err := config.ParseRatio(ev.Ratio)
		if err != nil {
			return err
		}
		c, err := cycle.FromRate(*ev.Rate, ratio)
		if err != nil {
			return err
		}
		modes.SetCycle(m, c)
	}
	return nil
}

// RunProtocol runs base (or the protocol's preset) and applies each event
// once the simulated time reaches it.
func RunProtocol(ctx context.Context, p *Protocol, base *config.Config) (*sim.Result, []Applied, error) {
	if err := p.Validate(); err != nil {
		return nil, nil, err
	}

	cfg := base
	if p.Preset != "" {
		preset, err := experiment.NewRegistry().GetPreset(p.Preset)
		if err != nil {
			return nil, nil, err
		}
		cfg = preset
	}
	if p.Duration > 0 {
		c := *cfg
		c.Duration = p.Duration
		cfg = &c
	}

	exp := experiment.New(cfg)
	if err := exp.Setup(); err != nil {
		return nil, nil, err
	}
	scenario := exp.Scenario()

	events := append([]Event(nil), p.Events...)
	sort.SliceStable(events, func(i, j int) bool { return events[i].At < events[j].At })

	result := &sim.Result{
		Mode:     modes.Name(scenario.Mode),
		Settings: modes.Snapshot(scenario.Mode),
		Dt:       scenario.Run.Dt,
		Samples:  make([]sim.Sample, 0, scenario.Run.Steps()),
		Metrics:  make(map[string]float64),
	}
	ms := metrics.Standard(scenario.Ceiling)
	applied := make([]Applied, 0, len(events))

	logger := log.WithField("protocol", p.Name)
	logger.WithField("events", len(events)).Info("protocol started")

	var (
		applyErr error
		next     int
		prev     = cycle.Phase(-1)
	)
	err := exp.RunWithCallback(ctx, func(s sim.Sample) bool {
		if s.Phase == cycle.Inspiration && prev != cycle.Inspiration {
			result.Breaths++
		}
		prev = s.Phase
		for _, m := range ms {
			m.Observe(s)
		}
		result.Samples = append(result.Samples, s)
		result.StepsTaken++

		// Events take effect from the next step.
		for next < len(events) && events[next].At <= s.Time {
			ev := events[next]
			if applyErr = ev.apply(scenario.Mode); applyErr != nil {
				return false
			}
			applied = append(applied, Applied{Event: ev, Step: result.StepsTaken, Time: s.Time})
			logger.WithFields(log.Fields{"at": ev.At, "t": s.Time}).Info("event applied")
			next++
		}
		return true
	})
	if err != nil {
		return result, applied, err
	}
	if applyErr != nil {
		return result, applied, fmt.Errorf("event %d: %w", next, applyErr)
	}

	for _, m := range ms {
		result.Metrics[m.Name()] = m.Value()
	}
	logger.WithFields(log.Fields{"steps": result.StepsTaken, "applied": len(applied)}).Info("protocol complete")
	return result, applied, nil
}
