package control

import "github.com/pacce/ventilation/internal/quantity"

// Controller is a feedback law tracking a target of kind Q.
type Controller[Q quantity.Airway[Q]] interface {
	Evaluate(current Q) quantity.Flow
	Set(target Q)
	Clear()
	Target() Q
}

// Proportional commands a flow proportional to the current error.
type Proportional[Q quantity.Airway[Q]] struct {
	Gain   quantity.Gain
	target Q
}

func NewProportional[Q quantity.Airway[Q]](g quantity.Gain, target Q) *Proportional[Q] {
	return &Proportional[Q]{Gain: g, target: target}
}

func (p *Proportional[Q]) Evaluate(current Q) quantity.Flow {
	return quantity.Command(p.Gain, p.target.Sub(current))
}

func (p *Proportional[Q]) Set(target Q) { p.target = target }

// Clear is a no-op: a proportional term keeps no history.
func (p *Proportional[Q]) Clear() {}

func (p *Proportional[Q]) Target() Q { return p.target }

// Integral commands a flow proportional to the accumulated error. The
// accumulator is unbounded and only emptied by Set or Clear.
type Integral[Q quantity.Airway[Q]] struct {
	Gain   quantity.Gain
	target Q
	sum    Q
}

func NewIntegral[Q quantity.Airway[Q]](g quantity.Gain, target Q) *Integral[Q] {
	return &Integral[Q]{Gain: g, target: target}
}

func (i *Integral[Q]) Evaluate(current Q) quantity.Flow {
	i.sum = i.sum.Add(i.target.Sub(current))
	return quantity.Command(i.Gain, i.sum)
}

// Set changes the target and clears the history.
func (i *Integral[Q]) Set(target Q) {
	i.target = target
	i.Clear()
}

// Clear empties the history and keeps the target.
func (i *Integral[Q]) Clear() {
	var zero Q
	i.sum = zero
}

func (i *Integral[Q]) Target() Q { return i.target }

// Sum returns the accumulated error.
func (i *Integral[Q]) Sum() Q { return i.sum }

