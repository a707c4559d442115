package integrators

import (
	"time"

	"github.com/pacce/ventilation/internal/quantity"
)

// Trapezoid averages the flow at both ends of the step.
type Trapezoid struct{}

func NewTrapezoid() *Trapezoid {
	return &Trapezoid{}
}

func (t *Trapezoid) Integrate(prev, cur quantity.Flow, dt time.Duration) quantity.Volume {
	return quantity.Half(prev, cur).Over(dt)
}

func (t *Trapezoid) Name() string { return "trapezoid" }
