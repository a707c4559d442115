// Package lung implements the single-compartment lung model
//
//	pressure = flow × resistance + volume × elastance
package lung

import (
	"fmt"

	"github.com/pacce/ventilation/internal/quantity"
)

// Lung holds the mechanical properties of a single-compartment lung. It is
// never mutated once built.
type Lung struct {
	Resistance quantity.Resistance
	Elastance  quantity.Elastance
}

func New(r quantity.Resistance, e quantity.Elastance) Lung {
	return Lung{Resistance: r, Elastance: e}
}

// FromCompliance builds a lung from its compliance, the inverse of elastance.
func FromCompliance(r quantity.Resistance, c quantity.Compliance) (Lung, error) {
	e, err := c.Elastance()
	if err != nil {
		return Lung{}, fmt.Errorf("lung compliance: %w", err)
	}
	return Lung{Resistance: r, Elastance: e}, nil
}

// Forward returns the airway pressure produced by flow f at volume v.
func (l Lung) Forward(f quantity.Flow, v quantity.Volume) quantity.Pressure {
	return l.Resistance.MulFlow(f).Add(l.Elastance.MulVolume(v))
}

// Compliance returns 1/elastance.
func (l Lung) Compliance() (quantity.Compliance, error) {
	return l.Elastance.Compliance()
}

// TimeConstant returns resistance × compliance in seconds.
func (l Lung) TimeConstant() float64 {
	if l.Elastance.IsZero() {
		return 0
	}
	return l.Resistance.Float64() / l.Elastance.Float64()
}

func (l Lung) String() string {
	return fmt.Sprintf("R=%s E=%s", l.Resistance, l.Elastance)
}
