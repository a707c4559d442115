package sim

import (
	"math"
	"time"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/modes"
	"github.com/pacce/ventilation/internal/packet"
)

// Sample is one step of a run: the packet produced and the cycle time and
// phase it belongs to.
type Sample struct {
	Time   time.Duration
	Phase  cycle.Phase
	Packet packet.Packet
}

// Valid reports whether every component of the packet is finite.
func (s Sample) Valid() bool {
	for _, v := range []float64{
		s.Packet.Flow.Float64(),
		s.Packet.Pressure.Float64(),
		s.Packet.Volume.Float64(),
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

type Metric interface {
	Name() string
	Observe(s Sample)
	Value() float64
	Reset()
}

type Observer interface {
	OnStep(s Sample)
}

type Config struct {
	Dt       time.Duration
	Duration time.Duration
	// ValidateSamples stops the run at the first non-finite sample.
	ValidateSamples bool
}

// Steps returns the number of steps a run of cfg takes.
func (c Config) Steps() int {
	if c.Dt <= 0 {
		return 0
	}
	return int(c.Duration / c.Dt)
}

type Result struct {
	Mode       string
	Settings   modes.Settings
	Dt         time.Duration
	Samples    []Sample
	Metrics    map[string]float64
	Breaths    int
	StepsTaken int
	Errors     []error
}

// Packets returns the packet of every sample in order.
func (r *Result) Packets() []packet.Packet {
	out := make([]packet.Packet, len(r.Samples))
	for i, s := range r.Samples {
		out[i] = s.Packet
	}
	return out
}

// Elapsed returns the absolute time of sample i.
func (r *Result) Elapsed(i int) time.Duration {
	return time.Duration(i) * r.Dt
}
