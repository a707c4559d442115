package modes

import (
	"time"

	"github.com/pacce/ventilation/internal/control"
	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/lung"
	"github.com/pacce/ventilation/internal/packet"
	"github.com/pacce/ventilation/internal/quantity"
)

// VCV is volume-controlled ventilation. During inspiration a volume
// controller delivers Tidal, measured from the volume captured at the start
// of the breath; during expiration a pressure controller holds PEEP.
type VCV struct {
	core
	Inspiration *control.PI[quantity.Volume]
	Expiration  *control.PI[quantity.Pressure]

	peep   quantity.Pressure
	tidal  quantity.Volume
	offset quantity.Volume
}

func NewVCV(peep quantity.Pressure, tidal quantity.Volume, c cycle.Cycle) *VCV {
	return &VCV{
		core:        newCore(c, VCVCeiling),
		Inspiration: control.NewPI(VCVInspirationGains.Kp, VCVInspirationGains.Ki, tidal),
		Expiration:  control.NewPI(VCVExpirationGains.Kp, VCVExpirationGains.Ki, peep),
		peep:        peep,
		tidal:       tidal,
	}
}

func (m *VCV) mode() {}

// Step advances the mode by dt against lung l.
func (m *VCV) Step(l lung.Lung, dt time.Duration) packet.Packet {
	switch m.cycle.Step(dt) {
	case cycle.StartOfInspiration:
		m.offset = m.state.Volume
		m.Inspiration.Clear()
	case cycle.StartOfExpiration:
		m.Expiration.Clear()
	}

	var f quantity.Flow
	switch m.cycle.State() {
	case cycle.Inspiration:
		f = m.Inspiration.Evaluate(m.Delivered()).Clamp(m.Ceiling)
	case cycle.Expiration:
		f = m.Expiration.Evaluate(m.state.Pressure).Clamp(m.Ceiling)
	}
	return m.advance(l, f, dt)
}

// Delivered returns the volume delivered since the last start of
// inspiration.
func (m *VCV) Delivered() quantity.Volume {
	return m.state.Volume.Sub(m.offset)
}

func (m *VCV) PEEP() quantity.Pressure { return m.peep }

func (m *VCV) Tidal() quantity.Volume { return m.tidal }

// SetPEEP stores p and retargets the expiration controller.
func (m *VCV) SetPEEP(p quantity.Pressure) {
	m.peep = p
	m.Expiration.Set(p)
}

// SetTidal stores v and retargets the inspiration controller.
func (m *VCV) SetTidal(v quantity.Volume) {
	m.tidal = v
	m.Inspiration.Set(v)
}

// SetCycle replaces the breath timer. The next Step starts a new
// inspiration.
func (m *VCV) SetCycle(c cycle.Cycle) {
	c.Reset()
	m.cycle = c
}

// Tune replaces the gains of both controllers without touching their history.
func (m *VCV) Tune(insp, exp Gains) {
	m.Inspiration.P.Gain = insp.Kp
	m.Inspiration.I.Gain = insp.Ki
	m.Expiration.P.Gain = exp.Kp
	m.Expiration.I.Gain = exp.Ki
}
