package modes

import (
	"time"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/integrators"
	"github.com/pacce/ventilation/internal/lung"
	"github.com/pacce/ventilation/internal/packet"
	"github.com/pacce/ventilation/internal/quantity"
)

// core is the state shared by both modes: the breath timer and the running
// sample.
type core struct {
	// Ceiling bounds the magnitude of the commanded flow.
	Ceiling quantity.Flow
	// Integrator turns flow into volume. Rectangle unless replaced.
	Integrator integrators.Integrator

	cycle cycle.Cycle
	state packet.Packet
}

func newCore(c cycle.Cycle, ceiling quantity.Flow) core {
	return core{
		Ceiling:    ceiling,
		Integrator: integrators.NewRectangle(),
		cycle:      c,
	}
}

// advance commits flow f for one step and returns the new sample.
func (c *core) advance(l lung.Lung, f quantity.Flow, dt time.Duration) packet.Packet {
	v := c.state.Volume.Add(c.Integrator.Integrate(c.state.Flow, f, dt))
	c.state = packet.Packet{
		Flow:     f,
		Pressure: l.Forward(f, v),
		Volume:   v,
	}
	return c.state
}

func (c *core) Phase() cycle.Phase { return c.cycle.State() }

// Current returns the last sample produced by Step.
func (c *core) Current() packet.Packet { return c.state }

// Cycle returns a copy of the breath timer.
func (c *core) Cycle() cycle.Cycle { return c.cycle }

// inspiring reports whether the inspiratory setpoint is the one in use.
func (c *core) inspiring() bool {
	p := c.cycle.State()
	return p == cycle.Inspiration || p == cycle.InspiratoryPause
}
