package integrators

import (
	"time"

	"github.com/pacce/ventilation/internal/quantity"
)

// Rectangle holds the current flow for the whole step.
type Rectangle struct{}

func NewRectangle() *Rectangle {
	return &Rectangle{}
}

func (r *Rectangle) Integrate(_, cur quantity.Flow, dt time.Duration) quantity.Volume {
	return Square(cur, dt)
}

func (r *Rectangle) Name() string { return "rectangle" }

// Square returns the volume displaced by a constant flow f during dt.
func Square(f quantity.Flow, dt time.Duration) quantity.Volume {
	return f.Over(dt)
}

// Squares sums the rectangles of a flow series sampled every dt.
func Squares(flows []quantity.Flow, dt time.Duration) quantity.Volume {
	var v quantity.Volume
	for _, f := range flows {
		v = v.Add(Square(f, dt))
	}
	return v
}
