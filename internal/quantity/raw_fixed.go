//go:build !floatquantity

package quantity

import (
	"math"
	"math/bits"
	"time"
)

// Raw is the stored representation: the value multiplied by 1e6.
type Raw = int64

// unit is the number of raw steps in one natural unit.
const unit = 1_000_000

// Fixed reports whether quantities use the scaled integer encoding.
const Fixed = true

// resolution is the smallest nonzero magnitude a quantity, gain or scale
// factor can hold.
const resolution = 1.0 / unit

// maxMagnitude is the largest value whose encoding fits in a Raw.
const maxMagnitude = math.MaxInt64 / unit

func representable(v float64) bool {
	return math.Abs(v) <= maxMagnitude
}

func encode(v float64) Raw {
	s := math.Round(v * unit)
	switch {
	case s >= math.MaxInt64:
		return math.MaxInt64
	case s <= -math.MaxInt64:
		return -math.MaxInt64
	}
	return Raw(s)
}

func decode(r Raw) float64 {
	return float64(r) / unit
}

// mulRaw multiplies two scaled values, truncating toward zero.
func mulRaw(a, b Raw) Raw {
	return mulDiv(a, b, unit)
}

// mulDuration multiplies a scaled rate by a duration in nanoseconds.
func mulDuration(a Raw, dt time.Duration) Raw {
	return mulDiv(a, int64(dt), uint64(time.Second))
}

// inverse returns 1/r in scaled form. r must not be zero.
func inverse(r Raw) Raw {
	return mulDiv(unit, unit, uint64(abs64(r))) * sign(r)
}

// addRaw adds two scaled values, saturating instead of wrapping.
func addRaw(a, b Raw) Raw {
	s := a + b
	if (a^s)&(b^s) < 0 {
		return saturate(a < 0)
	}
	if s == math.MinInt64 {
		return -math.MaxInt64
	}
	return s
}

func subRaw(a, b Raw) Raw {
	return addRaw(a, -b)
}

func divRaw(r Raw, n int) Raw {
	return r / Raw(n)
}

func halfRaw(r Raw) Raw {
	return r / 2
}

func mulDiv(a, b int64, d uint64) int64 {
	neg := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(abs64(a), abs64(b))
	if hi >= d {
		return saturate(neg)
	}
	q, _ := bits.Div64(hi, lo, d)
	if q > math.MaxInt64 {
		return saturate(neg)
	}
	if neg {
		return -int64(q)
	}
	return int64(q)
}

func abs64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

func sign(v int64) int64 {
	if v < 0 {
		return -1
	}
	return 1
}

func saturate(neg bool) int64 {
	if neg {
		return -math.MaxInt64
	}
	return math.MaxInt64
}
