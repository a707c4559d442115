package sim

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/lung"
	"github.com/pacce/ventilation/internal/modes"
)

// Simulator drives one mode against one lung.
type Simulator struct {
	mode      modes.Mode
	lung      lung.Lung
	metrics   []Metric
	observers []Observer
}

func New(m modes.Mode, l lung.Lung) *Simulator {
	return &Simulator{
		mode:      m,
		lung:      l,
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Mode() modes.Mode { return s.mode }

func (s *Simulator) Lung() lung.Lung { return s.lung }

// Run steps the mode for cfg.Duration and collects every sample.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := cfg.Steps()
	result := &Result{
		Mode:     modes.Name(s.mode),
		Settings: modes.Snapshot(s.mode),
		Dt:       cfg.Dt,
		Samples:  make([]Sample, 0, steps),
		Metrics:  make(map[string]float64),
		Errors:   make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	logger := log.WithFields(log.Fields{
		"mode":     result.Mode,
		"dt":       cfg.Dt,
		"duration": cfg.Duration,
		"lung":     s.lung.String(),
	})
	logger.Info("run started")
	start := time.Now()

	prev := cycle.Phase(-1)
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
		default:
		}

		sample := s.step(i, cfg.Dt)
		if cfg.ValidateSamples && !sample.Valid() {
			result.Errors = append(result.Errors, &SimError{Step: i, Time: sample.Time, Wrapped: ErrInvalidSample})
			break
		}
		if sample.Phase == cycle.Inspiration && prev != cycle.Inspiration {
			result.Breaths++
			logger.WithFields(log.Fields{
				"breath":   result.Breaths,
				"t":        sample.Time,
				"pressure": sample.Packet.Pressure.Float64(),
				"volume":   sample.Packet.Volume.Float64(),
			}).Debug("breath started")
		}
		prev = sample.Phase

		for _, m := range s.metrics {
			m.Observe(sample)
		}
		for _, obs := range s.observers {
			obs.OnStep(sample)
		}

		result.Samples = append(result.Samples, sample)
		result.StepsTaken++
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	logger.WithFields(log.Fields{
		"steps":   result.StepsTaken,
		"breaths": result.Breaths,
		"elapsed": time.Since(start),
	}).Info("run complete")

	return result, nil
}

func (s *Simulator) step(i int, dt time.Duration) Sample {
	p := modes.Step(s.mode, s.lung, dt)
	return Sample{Time: time.Duration(i) * dt, Phase: modes.Phase(s.mode), Packet: p}
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", ErrInvalidConfig, cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("%w: duration must be positive, got %v", ErrInvalidConfig, cfg.Duration)
	}
	c := modes.Cycle(s.mode)
	if cfg.Dt > c.Shortest() {
		return fmt.Errorf("%w: dt %v > %v", ErrStepTooLarge, cfg.Dt, c.Shortest())
	}
	return nil
}

// RunWithCallback steps the mode and hands every sample to callback instead
// of collecting them. Returning false from callback ends the run. A zero
// Duration runs until the context is canceled.
func (s *Simulator) RunWithCallback(ctx context.Context, cfg Config, callback func(Sample) bool) error {
	if cfg.Duration == 0 {
		cfg.Duration = time.Duration(1<<63 - 1)
	}
	if err := s.validateConfig(cfg); err != nil {
		return err
	}

	steps := cfg.Steps()
	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", ErrCanceled, ctx.Err())
		default:
		}

		sample := s.step(i, cfg.Dt)
		if cfg.ValidateSamples && !sample.Valid() {
			return &SimError{Step: i, Time: sample.Time, Wrapped: ErrInvalidSample}
		}
		for _, obs := range s.observers {
			obs.OnStep(sample)
		}
		if !callback(sample) {
			return nil
		}
	}
	return nil
}
