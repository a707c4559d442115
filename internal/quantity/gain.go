package quantity

import "strconv"

// Gain is a dimensionless factor. Multiplying a quantity by a Gain keeps its kind.
type Gain struct {
	raw Raw
}

// NewGain returns v as a Gain. Gains resolve 1e-6 in the fixed encoding; a
// value that is not finite, out of range or nonzero but rounding to zero
// yields a *DomainError.
func NewGain[P Real](v P) (Gain, error) {
	r, err := factor("gain", float64(v))
	if err != nil {
		return Gain{}, err
	}
	return Gain{raw: r}, nil
}

// MustGain is like NewGain but panics on error.
func MustGain[P Real](v P) Gain {
	g, err := NewGain(v)
	if err != nil {
		panic(err)
	}
	return g
}

func (g Gain) Raw() Raw { return g.raw }

func (g Gain) Float64() float64 { return decode(g.raw) }

func (g Gain) MulFlow(f Flow) Flow { return Flow{raw: mulRaw(g.raw, f.raw)} }

func (g Gain) MulPressure(p Pressure) Pressure { return Pressure{raw: mulRaw(g.raw, p.raw)} }

func (g Gain) MulVolume(v Volume) Volume { return Volume{raw: mulRaw(g.raw, v.raw)} }

func (g Gain) String() string {
	return strconv.FormatFloat(g.Float64(), 'g', -1, 64)
}
