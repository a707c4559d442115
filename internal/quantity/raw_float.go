//go:build floatquantity

package quantity

import "time"

// Raw is the stored representation: the value itself.
type Raw = float64

// Fixed reports whether quantities use the scaled integer encoding.
const Fixed = false

// resolution is the smallest nonzero magnitude a quantity, gain or scale
// factor can hold.
const resolution = 0.0

func representable(float64) bool { return true }

func encode(v float64) Raw { return v }

func decode(r Raw) float64 { return r }

func mulRaw(a, b Raw) Raw { return a * b }

func mulDuration(a Raw, dt time.Duration) Raw { return a * dt.Seconds() }

func inverse(r Raw) Raw { return 1 / r }

func addRaw(a, b Raw) Raw { return a + b }

func subRaw(a, b Raw) Raw { return a - b }

func divRaw(r Raw, n int) Raw { return r / Raw(n) }

func halfRaw(r Raw) Raw { return r / 2 }
