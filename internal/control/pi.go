package control

import "github.com/pacce/ventilation/internal/quantity"

// PI combines a proportional and an integral term sharing one target.
type PI[Q quantity.Airway[Q]] struct {
	P *Proportional[Q]
	I *Integral[Q]
}

func NewPI[Q quantity.Airway[Q]](kp, ki quantity.Gain, target Q) *PI[Q] {
	return &PI[Q]{
		P: NewProportional(kp, target),
		I: NewIntegral(ki, target),
	}
}

func (c *PI[Q]) Evaluate(current Q) quantity.Flow {
	return c.P.Evaluate(current).Add(c.I.Evaluate(current))
}

// Set retargets both terms and clears the integral history.
func (c *PI[Q]) Set(target Q) {
	c.P.Set(target)
	c.I.Set(target)
}

// Clear empties the integral history without touching the target.
func (c *PI[Q]) Clear() {
	c.I.Clear()
}

func (c *PI[Q]) Target() Q { return c.P.Target() }

// Params returns tunable parameters for live adjustment
func (c *PI[Q]) Params() map[string]float64 {
	return map[string]float64{
		"kp": c.P.Gain.Float64(),
		"ki": c.I.Gain.Float64(),
	}
}

// SetParam adjusts a gain by name. Unknown names are ignored, as are values
// NewGain refuses: non-finite ones and nonzero ones finer than the gain
// resolution, which would otherwise silently zero the term.
func (c *PI[Q]) SetParam(name string, value float64) {
	g, err := quantity.NewGain(value)
	if err != nil {
		return
	}
	switch name {
	case "kp":
		c.P.Gain = g
	case "ki":
		c.I.Gain = g
	}
}
