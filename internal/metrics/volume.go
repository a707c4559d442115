package metrics

import (
	"time"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/quantity"
	"github.com/pacce/ventilation/internal/sim"
)

// breaths splits a run at each start of inspiration and records the volume
// each breath delivered above the level just before it began.
type breaths struct {
	start    quantity.Volume
	peak     quantity.Volume
	prev     quantity.Volume
	phase    cycle.Phase
	open     bool
	tidal    []quantity.Volume
	first    time.Duration
	last     time.Duration
	observed bool
}

func (b *breaths) observe(s sim.Sample) {
	if !b.observed {
		b.first = s.Time
		b.observed = true
		b.phase = -1
	}
	b.last = s.Time
	v := s.Packet.Volume
	if s.Phase == cycle.Inspiration && b.phase != cycle.Inspiration {
		if b.open {
			b.tidal = append(b.tidal, b.peak.Sub(b.start))
		}
		b.start, b.peak, b.open = b.prev, v, true
	}
	if v.Raw() > b.peak.Raw() {
		b.peak = v
	}
	b.phase = s.Phase
	b.prev = v
}

func (b *breaths) reset() { *b = breaths{} }

// TidalVolume is the mean volume delivered per completed breath, in L.
type TidalVolume struct {
	b breaths
}

func NewTidalVolume() *TidalVolume { return &TidalVolume{} }

func (t *TidalVolume) Name() string { return "tidal_volume" }

func (t *TidalVolume) Observe(s sim.Sample) { t.b.observe(s) }

func (t *TidalVolume) Value() float64 {
	return quantity.Mean(t.b.tidal).Float64()
}

func (t *TidalVolume) Reset() { t.b.reset() }

// MinuteVentilation is the volume delivered by completed breaths per minute
// of run time, in L/min.
type MinuteVentilation struct {
	b breaths
}

func NewMinuteVentilation() *MinuteVentilation { return &MinuteVentilation{} }

func (m *MinuteVentilation) Name() string { return "minute_ventilation" }

func (m *MinuteVentilation) Observe(s sim.Sample) { m.b.observe(s) }

func (m *MinuteVentilation) Value() float64 {
	span := m.b.last - m.b.first
	if span <= 0 {
		return 0
	}
	var total quantity.Volume
	for _, v := range m.b.tidal {
		total = total.Add(v)
	}
	return total.Float64() / span.Minutes()
}

func (m *MinuteVentilation) Reset() { m.b.reset() }

// Work is the mechanical work done on the lung, Σ p·ΔV, in joules.
type Work struct {
	prev   quantity.Volume
	joules float64
	seen   bool
}

// cmH2O·L in joules.
const cmH2OLitre = 0.0980665

func NewWork() *Work { return &Work{} }

func (w *Work) Name() string { return "work_of_breathing" }

func (w *Work) Observe(s sim.Sample) {
	v := s.Packet.Volume
	if w.seen {
		w.joules += s.Packet.Pressure.Float64() * v.Sub(w.prev).Float64() * cmH2OLitre
	}
	w.prev = v
	w.seen = true
}

func (w *Work) Value() float64 { return w.joules }

func (w *Work) Reset() { *w = Work{} }
