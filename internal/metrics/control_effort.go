package metrics

import (
	"math"

	"github.com/pacce/ventilation/internal/sim"
)

// ControlEffort is the mean commanded flow magnitude in L/s over the active
// phases. Pauses hold zero flow and are left out.
type ControlEffort struct {
	sum    float64
	active int
}

func NewControlEffort() *ControlEffort { return &ControlEffort{} }

func (c *ControlEffort) Name() string { return "control_effort" }

func (c *ControlEffort) Observe(s sim.Sample) {
	if !s.Phase.Active() {
		return
	}
	c.sum += math.Abs(s.Packet.Flow.Float64())
	c.active++
}

func (c *ControlEffort) Value() float64 {
	if c.active == 0 {
		return 0
	}
	return c.sum / float64(c.active)
}

func (c *ControlEffort) Reset() { *c = ControlEffort{} }
