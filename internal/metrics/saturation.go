package metrics

import (
	"github.com/pacce/ventilation/internal/quantity"
	"github.com/pacce/ventilation/internal/sim"
)

// Saturation is the fraction of samples whose flow sits at the ceiling.
type Saturation struct {
	name       string
	ceiling    quantity.Flow
	violations int
	samples    int
}

func NewSaturation(ceiling quantity.Flow) *Saturation {
	return &Saturation{
		name:    "ceiling_saturation",
		ceiling: ceiling.Abs(),
	}
}

func (s *Saturation) Name() string {
	return s.name
}

func (s *Saturation) Observe(x sim.Sample) {
	s.samples++
	if x.Packet.Flow.Abs().GreaterEq(s.ceiling) {
		s.violations++
	}
}

func (s *Saturation) Value() float64 {
	if s.samples == 0 {
		return 0
	}
	return float64(s.violations) / float64(s.samples)
}

func (s *Saturation) Reset() {
	s.violations = 0
	s.samples = 0
}
