package modes

import (
	"time"

	"github.com/pacce/ventilation/internal/control"
	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/lung"
	"github.com/pacce/ventilation/internal/packet"
	"github.com/pacce/ventilation/internal/quantity"
)

// PCV is pressure-controlled ventilation: one PI controller tracks Peak
// during inspiration and PEEP during expiration.
type PCV struct {
	core
	Controller *control.PI[quantity.Pressure]

	peep quantity.Pressure
	peak quantity.Pressure
}

func NewPCV(peep, peak quantity.Pressure, c cycle.Cycle) *PCV {
	return &PCV{
		core:       newCore(c, PCVCeiling),
		Controller: control.NewPI(PCVGains.Kp, PCVGains.Ki, peak),
		peep:       peep,
		peak:       peak,
	}
}

func (m *PCV) mode() {}

// Step advances the mode by dt against lung l.
func (m *PCV) Step(l lung.Lung, dt time.Duration) packet.Packet {
	switch m.cycle.Step(dt) {
	case cycle.StartOfInspiration:
		m.Controller.Set(m.peak)
	case cycle.StartOfExpiration:
		m.Controller.Set(m.peep)
	}

	var f quantity.Flow
	if m.cycle.State().Active() {
		f = m.Controller.Evaluate(m.state.Pressure).Clamp(m.Ceiling)
	}
	return m.advance(l, f, dt)
}

func (m *PCV) PEEP() quantity.Pressure { return m.peep }

func (m *PCV) Peak() quantity.Pressure { return m.peak }

// SetPEEP stores p and retargets the controller if expiration is under way.
func (m *PCV) SetPEEP(p quantity.Pressure) {
	m.peep = p
	if !m.inspiring() {
		m.Controller.Set(p)
	}
}

// SetPeak stores p and retargets the controller if inspiration is under way.
func (m *PCV) SetPeak(p quantity.Pressure) {
	m.peak = p
	if m.inspiring() {
		m.Controller.Set(p)
	}
}

// SetCycle replaces the breath timer. The next Step starts a new
// inspiration.
func (m *PCV) SetCycle(c cycle.Cycle) {
	c.Reset()
	m.cycle = c
}

// Tune replaces the controller gains without touching its history.
func (m *PCV) Tune(g Gains) {
	m.Controller.P.Gain = g.Kp
	m.Controller.I.Gain = g.Ki
}
