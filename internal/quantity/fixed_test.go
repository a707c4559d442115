//go:build !floatquantity

package quantity

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestFixedEncoding(t *testing.T) {
	tests := []struct {
		in   float64
		want Raw
	}{
		{1, 1_000_000},
		{0.7, 700_000},
		{-0.1, -100_000},
		{1.0000004, 1_000_000},
		{1.0000006, 1_000_001},
	}
	for _, tt := range tests {
		if got := MustFlow(tt.in).Raw(); got != tt.want {
			t.Errorf("raw(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFixedProductTruncates(t *testing.T) {
	// 0.000003 * 0.5 = 0.0000015 -> 1 unit, truncated toward zero.
	r := Resistance{raw: 3}
	if got := r.MulFlow(Flow{raw: 500_000}).Raw(); got != 1 {
		t.Errorf("positive product = %d, want 1", got)
	}
	if got := r.MulFlow(Flow{raw: -500_000}).Raw(); got != -1 {
		t.Errorf("negative product = %d, want -1", got)
	}
	if got := (Flow{raw: 3}).Over(500 * time.Millisecond).Raw(); got != 1 {
		t.Errorf("duration product = %d, want 1", got)
	}
}

func TestFixedProductSaturates(t *testing.T) {
	big := Resistance{raw: math.MaxInt64 / 2}
	if got := big.MulFlow(MustFlow(1e6)).Raw(); got != math.MaxInt64 {
		t.Errorf("overflow = %d, want saturation", got)
	}
	if got := big.MulFlow(MustFlow(-1e6)).Raw(); got != -math.MaxInt64 {
		t.Errorf("negative overflow = %d, want saturation", got)
	}
}

func TestFixedInverse(t *testing.T) {
	e, err := Compliance{raw: 30_000}.Elastance()
	if err != nil {
		t.Fatal(err)
	}
	if e.Raw() != 33_333_333 {
		t.Errorf("1/0.03 raw = %d, want 33333333", e.Raw())
	}
	neg, _ := Compliance{raw: -40_000}.Elastance()
	if neg.Raw() != -25_000_000 {
		t.Errorf("1/-0.04 raw = %d", neg.Raw())
	}
}

func TestFixedExactEquality(t *testing.T) {
	a := MustVolume(0.1).Add(MustVolume(0.2))
	if a.Raw() != MustVolume(0.3).Raw() {
		t.Errorf("0.1 + 0.2 = %d raw, want exactly 300000", a.Raw())
	}
}

func TestFixedSumsSaturate(t *testing.T) {
	big := MustVolume(9e12)
	if got := big.Add(big); got.Raw() != math.MaxInt64 {
		t.Errorf("9e12 + 9e12 = %v (raw %d), want saturation", got, got.Raw())
	}
	if got := big.Neg().Sub(big); got.Raw() != -math.MaxInt64 {
		t.Errorf("-9e12 - 9e12 = %v (raw %d), want negative saturation", got, got.Raw())
	}
	if got := big.Add(MustVolume(-1)); !got.Equal(MustVolume(9e12 - 1)) {
		t.Errorf("mixed signs = %v", got)
	}
	fast := MustFlow(9e12)
	if got := Half(fast, fast); !got.Greater(MustFlow(4e12)) {
		t.Errorf("midpoint of two large flows = %v", got)
	}
	if got := MustPressure(9e12); !got.Greater(got.Neg()) {
		t.Errorf("comparison across the range flipped sign")
	}
}

func TestFixedRangeRejected(t *testing.T) {
	for _, v := range []float64{1e13, -1e13, math.MaxFloat64} {
		_, err := NewVolume(v)
		var de *DomainError
		if !errors.As(err, &de) || de.Reason != reasonRange {
			t.Errorf("NewVolume(%g) = %v, want out of range", v, err)
		}
		if !errors.Is(err, ErrDomain) {
			t.Errorf("NewVolume(%g) error does not match ErrDomain", v)
		}
	}
	if _, err := NewVolume(9e12); err != nil {
		t.Errorf("representable value rejected: %v", err)
	}
}

func TestFixedFactorResolution(t *testing.T) {
	if _, err := NewGain(4e-7); !errors.Is(err, ErrDomain) {
		t.Errorf("gain below resolution accepted: %v", err)
	}
	if _, err := MustFlow(1).Scale(1e-7); !errors.Is(err, ErrDomain) {
		t.Errorf("scale below resolution accepted: %v", err)
	}
	if g, err := NewGain(resolution); err != nil || g.Raw() != 1 {
		t.Errorf("gain at resolution = %v, %v", g, err)
	}
	if g, err := NewGain(0); err != nil || g.Raw() != 0 {
		t.Errorf("zero gain = %v, %v", g, err)
	}
	if q, err := MustFlow(1).Scale(0); err != nil || !q.IsZero() {
		t.Errorf("scale by zero = %v, %v", q, err)
	}
}
