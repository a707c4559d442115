package quantity

// Airway is the set of quantities a controller can track.
type Airway[Q any] interface {
	Flow | Pressure | Volume
	Add(Q) Q
	Sub(Q) Q
	Raw() Raw
}

// Command converts an error of any airway kind into a flow command g·e.
// The gain carries the unit conversion, so the product keeps e's magnitude
// and takes the Flow kind.
func Command[Q Airway[Q]](g Gain, e Q) Flow {
	return Flow{raw: mulRaw(g.raw, e.Raw())}
}

// Half returns the midpoint of a and b, used by trapezoidal integration.
func Half(a, b Flow) Flow {
	return Flow{raw: halfRaw(addRaw(a.raw, b.raw))}
}
