package metrics

import (
	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/quantity"
	"github.com/pacce/ventilation/internal/sim"
)

// PeakPressure is the highest airway pressure seen, in cmH2O.
type PeakPressure struct {
	peak quantity.Pressure
	seen bool
}

func NewPeakPressure() *PeakPressure { return &PeakPressure{} }

func (p *PeakPressure) Name() string { return "peak_pressure" }

func (p *PeakPressure) Observe(s sim.Sample) {
	if !p.seen || s.Packet.Pressure.Raw() > p.peak.Raw() {
		p.peak = s.Packet.Pressure
		p.seen = true
	}
}

func (p *PeakPressure) Value() float64 { return p.peak.Float64() }

func (p *PeakPressure) Reset() { *p = PeakPressure{} }

// MeanPressure is the mean airway pressure over the run, in cmH2O.
type MeanPressure struct {
	samples []quantity.Pressure
}

func NewMeanPressure() *MeanPressure { return &MeanPressure{} }

func (m *MeanPressure) Name() string { return "mean_pressure" }

func (m *MeanPressure) Observe(s sim.Sample) {
	m.samples = append(m.samples, s.Packet.Pressure)
}

func (m *MeanPressure) Value() float64 {
	return quantity.Mean(m.samples).Float64()
}

func (m *MeanPressure) Reset() { m.samples = m.samples[:0] }

// EndExpiratoryPressure is the pressure of the last sample before the most
// recent start of inspiration, in cmH2O.
type EndExpiratoryPressure struct {
	last   quantity.Pressure
	ended  quantity.Pressure
	phase  cycle.Phase
	closed bool
}

func NewEndExpiratoryPressure() *EndExpiratoryPressure {
	return &EndExpiratoryPressure{phase: -1}
}

func (e *EndExpiratoryPressure) Name() string { return "end_expiratory_pressure" }

func (e *EndExpiratoryPressure) Observe(s sim.Sample) {
	if s.Phase == cycle.Inspiration && e.phase != cycle.Inspiration && e.phase >= 0 {
		e.ended = e.last
		e.closed = true
	}
	e.phase = s.Phase
	e.last = s.Packet.Pressure
}

// Value falls back to the latest sample while no breath has completed.
func (e *EndExpiratoryPressure) Value() float64 {
	if e.closed {
		return e.ended.Float64()
	}
	return e.last.Float64()
}

func (e *EndExpiratoryPressure) Reset() { *e = EndExpiratoryPressure{phase: -1} }
