package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/integrators"
	"github.com/pacce/ventilation/internal/lung"
	"github.com/pacce/ventilation/internal/modes"
	"github.com/pacce/ventilation/internal/quantity"
	"github.com/pacce/ventilation/internal/sim"
)

// Scenario is a configuration turned into live simulation objects.
type Scenario struct {
	Lung    lung.Lung
	Mode    modes.Mode
	Run     sim.Config
	Ceiling quantity.Flow
}

// Build validates c and constructs the lung, cycle and mode it describes.
// Every call returns a fresh mode.
func (c *Config) Build() (*Scenario, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	l, err := c.buildLung()
	if err != nil {
		return nil, err
	}
	cyc, err := c.BuildCycle()
	if err != nil {
		return nil, err
	}
	integ, err := integrators.ByName(c.Integrator)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	peep, err := quantity.NewPressure(c.Settings.PEEP)
	if err != nil {
		return nil, err
	}

	var (
		m       modes.Mode
		ceiling quantity.Flow
	)
	switch c.Mode {
	case "pcv":
		peak, err := quantity.NewPressure(c.Settings.Peak)
		if err != nil {
			return nil, err
		}
		pcv := modes.NewPCV(peep, peak, cyc)
		pcv.Integrator = integ
		pcv.Tune(c.gains(modes.PCVGains, c.Gains.Kp, c.Gains.Ki))
		if c.Settings.Ceiling > 0 {
			pcv.Ceiling = quantity.MustFlow(c.Settings.Ceiling)
		}
		m, ceiling = pcv, pcv.Ceiling
	case "vcv":
		tidal, err := quantity.NewVolume(c.Settings.Tidal)
		if err != nil {
			return nil, err
		}
		vcv := modes.NewVCV(peep, tidal, cyc)
		vcv.Integrator = integ
		vcv.Tune(
			c.gains(modes.VCVInspirationGains, c.Gains.InspKp, c.Gains.InspKi),
			c.gains(modes.VCVExpirationGains, c.Gains.Kp, c.Gains.Ki),
		)
		if c.Settings.Ceiling > 0 {
			vcv.Ceiling = quantity.MustFlow(c.Settings.Ceiling)
		}
		m, ceiling = vcv, vcv.Ceiling
	}

	return &Scenario{
		Lung:    l,
		Mode:    m,
		Run:     sim.Config{Dt: c.Dt, Duration: c.Duration},
		Ceiling: ceiling,
	}, nil
}

func (c *Config) buildLung() (lung.Lung, error) {
	r, err := quantity.NewResistance(c.Lung.Resistance)
	if err != nil {
		return lung.Lung{}, err
	}
	if c.Lung.Elastance > 0 {
		e, err := quantity.NewElastance(c.Lung.Elastance)
		if err != nil {
			return lung.Lung{}, err
		}
		return lung.New(r, e), nil
	}
	comp, err := quantity.NewCompliance(c.Lung.Compliance)
	if err != nil {
		return lung.Lung{}, err
	}
	return lung.FromCompliance(r, comp)
}

// BuildCycle returns the breath timer described by the timing section.
func (c *Config) BuildCycle() (cycle.Cycle, error) {
	t := c.Timing
	if t.Rate != 0 {
		ratio, err := ParseRatio(t.Ratio)
		if err != nil {
			return cycle.Cycle{}, err
		}
		return cycle.FromRate(t.Rate, ratio)
	}
	return cycle.New(cycle.Timing{
		Inspiration:      t.Inspiration,
		InspiratoryPause: t.InspiratoryPause,
		Expiration:       t.Expiration,
		ExpiratoryPause:  t.ExpiratoryPause,
	})
}

// ParseRatio reads an I:E ratio written as "1:2". An empty string is 1:2.
func ParseRatio(s string) (cycle.Ratio, error) {
	if s == "" {
		return cycle.NewRatio(1, 2)
	}
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return cycle.Ratio{}, fmt.Errorf("%w: ratio %q is not of the form I:E", ErrInvalid, s)
	}
	i, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return cycle.Ratio{}, fmt.Errorf("%w: ratio %q: %w", ErrInvalid, s, err)
	}
	e, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return cycle.Ratio{}, fmt.Errorf("%w: ratio %q: %w", ErrInvalid, s, err)
	}
	return cycle.NewRatio(i, e)
}

func (c *Config) gains(def modes.Gains, kp, ki float64) modes.Gains {
	g := def
	if kp != 0 {
		g.Kp = quantity.MustGain(kp)
	}
	if ki != 0 {
		g.Ki = quantity.MustGain(ki)
	}
	return g
}
