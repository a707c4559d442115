package quantity

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestConstructorsRejectNonFinite(t *testing.T) {
	cases := []struct {
		name string
		kind string
		fn   func(float64) error
	}{
		{"flow", "flow", func(v float64) error { _, err := NewFlow(v); return err }},
		{"pressure", "pressure", func(v float64) error { _, err := NewPressure(v); return err }},
		{"volume", "volume", func(v float64) error { _, err := NewVolume(v); return err }},
		{"resistance", "resistance", func(v float64) error { _, err := NewResistance(v); return err }},
		{"elastance", "elastance", func(v float64) error { _, err := NewElastance(v); return err }},
		{"compliance", "compliance", func(v float64) error { _, err := NewCompliance(v); return err }},
		{"gain", "gain", func(v float64) error { _, err := NewGain(v); return err }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
				err := tc.fn(v)
				if !errors.Is(err, ErrDomain) {
					t.Fatalf("value %v: expected ErrDomain, got %v", v, err)
				}
				var de *DomainError
				if !errors.As(err, &de) || de.Kind != tc.kind {
					t.Fatalf("value %v: expected DomainError for %s, got %v", v, tc.kind, err)
				}
				if want := tc.kind + " value must be finite"; err.Error() != want {
					t.Errorf("message %q, want %q", err.Error(), want)
				}
			}
			if err := tc.fn(1.5); err != nil {
				t.Errorf("finite value rejected: %v", err)
			}
		})
	}
}

func TestConstructorPrecision(t *testing.T) {
	a := MustPressure(float32(12.5))
	b := MustPressure(12.5)
	if !a.Equal(b) {
		t.Errorf("float32 and float64 construction differ: %v vs %v", a, b)
	}
	if _, err := NewFlow(float32(math.Inf(1))); !errors.Is(err, ErrDomain) {
		t.Errorf("float32 infinity accepted")
	}
}

func TestConstructorIntegers(t *testing.T) {
	type cmH2O int
	if got := MustPressure(20); !got.Equal(MustPressure(20.0)) {
		t.Errorf("untyped integer constant = %v", got)
	}
	n := 7
	if got := MustFlow(n); !got.Equal(MustFlow(7.0)) {
		t.Errorf("int variable = %v", got)
	}
	if got := MustVolume(int64(-3)); !got.Equal(MustVolume(-3.0)) {
		t.Errorf("int64 = %v", got)
	}
	if got := MustResistance(cmH2O(50)); !got.Equal(MustResistance(50.0)) {
		t.Errorf("named int = %v", got)
	}
	if _, err := NewElastance(int32(33)); err != nil {
		t.Errorf("int32 rejected: %v", err)
	}
	if got := MustGain(10).MulFlow(MustFlow(1)); !got.Equal(MustFlow(10)) {
		t.Errorf("integer gain product = %v", got)
	}
}

func TestMustPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustVolume did not panic on NaN")
		}
	}()
	MustVolume(math.NaN())
}

func TestToleranceEquality(t *testing.T) {
	tests := []struct {
		name  string
		a, b  float64
		equal bool
		cmp   func(a, b float64) int
	}{
		{"volume within", 1.0, 1.00009, true, func(a, b float64) int { return MustVolume(a).Cmp(MustVolume(b)) }},
		{"volume outside", 1.0, 1.0002, false, func(a, b float64) int { return MustVolume(a).Cmp(MustVolume(b)) }},
		{"pressure within", 20.0, 20.05, true, func(a, b float64) int { return MustPressure(a).Cmp(MustPressure(b)) }},
		{"pressure outside", 20.0, 20.2, false, func(a, b float64) int { return MustPressure(a).Cmp(MustPressure(b)) }},
		{"flow within", 0.5, 0.5005, true, func(a, b float64) int { return MustFlow(a).Cmp(MustFlow(b)) }},
		{"flow outside", 0.5, 0.502, false, func(a, b float64) int { return MustFlow(a).Cmp(MustFlow(b)) }},
		{"compliance within", 0.03, 0.030005, true, func(a, b float64) int { return MustCompliance(a).Cmp(MustCompliance(b)) }},
		{"compliance outside", 0.03, 0.03002, false, func(a, b float64) int { return MustCompliance(a).Cmp(MustCompliance(b)) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.cmp(tt.a, tt.b) == 0
			if got != tt.equal {
				t.Errorf("equal(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.equal)
			}
		})
	}
}

func TestOrdering(t *testing.T) {
	lo, hi := MustPressure(5), MustPressure(20)
	if !lo.Less(hi) || !lo.LessEq(hi) || lo.Greater(hi) || lo.GreaterEq(hi) {
		t.Error("5 cmH2O should order below 20 cmH2O")
	}
	if !hi.Greater(lo) || !hi.GreaterEq(hi) || !hi.LessEq(hi) {
		t.Error("ordering is inconsistent")
	}
}

func TestCrossProducts(t *testing.T) {
	r := MustResistance(50)
	f := MustFlow(0.4)
	if got := r.MulFlow(f); !got.Equal(MustPressure(20)) {
		t.Errorf("50 * 0.4 = %v, want 20 cmH2O", got)
	}
	e := MustElastance(25)
	v := MustVolume(0.6)
	if got := v.MulElastance(e); !got.Equal(MustPressure(15)) {
		t.Errorf("25 * 0.6 = %v, want 15 cmH2O", got)
	}
	if got := MustFlow(0.5).Over(100 * time.Millisecond); !got.Equal(MustVolume(0.05)) {
		t.Errorf("0.5 L/s over 100ms = %v, want 0.05 L", got)
	}
	if got := MustGain(2).MulPressure(MustPressure(7)); !got.Equal(MustPressure(14)) {
		t.Errorf("2 * 7 cmH2O = %v", got)
	}
}

func TestComplianceElastance(t *testing.T) {
	c := MustCompliance(0.04)
	e, err := c.Elastance()
	if err != nil {
		t.Fatal(err)
	}
	if !e.Equal(MustElastance(25)) {
		t.Errorf("1/0.04 = %v, want 25", e)
	}
	back, err := e.Compliance()
	if err != nil {
		t.Fatal(err)
	}
	if !back.Equal(c) {
		t.Errorf("round trip = %v, want %v", back, c)
	}

	if _, err := (Compliance{}).Elastance(); !errors.Is(err, ErrDomain) {
		t.Errorf("zero compliance: expected ErrDomain, got %v", err)
	}
	if _, err := (Elastance{}).Compliance(); !errors.Is(err, ErrDomain) {
		t.Errorf("zero elastance: expected ErrDomain, got %v", err)
	}
}

func TestClamp(t *testing.T) {
	limit := MustFlow(0.6)
	tests := []struct {
		in, want float64
	}{
		{0.3, 0.3},
		{0.9, 0.6},
		{-0.9, -0.6},
		{-0.6, -0.6},
	}
	for _, tt := range tests {
		if got := MustFlow(tt.in).Clamp(limit); !got.Equal(MustFlow(tt.want)) {
			t.Errorf("Clamp(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
	if got := MustFlow(0.9).Clamp(limit.Neg()); !got.Equal(limit) {
		t.Errorf("negative limit not treated as magnitude: %v", got)
	}
}

func TestCommand(t *testing.T) {
	g := MustGain(0.005)
	if got := Command(g, MustPressure(15)); !got.Equal(MustFlow(0.075)) {
		t.Errorf("command = %v, want 0.075 L/s", got)
	}
	if got := Command(g, Pressure{}); !got.IsZero() {
		t.Errorf("zero error gave %v", got)
	}
}

func TestMean(t *testing.T) {
	if got := Mean([]Pressure(nil)); !got.IsZero() {
		t.Errorf("mean of nothing = %v", got)
	}
	xs := []Volume{MustVolume(0.1), MustVolume(0.2), MustVolume(0.6)}
	if got := Mean(xs); !got.Equal(MustVolume(0.3)) {
		t.Errorf("mean = %v, want 0.3 L", got)
	}
	same := []Flow{MustFlow(100), MustFlow(100), MustFlow(100)}
	if got := Mean(same); got.Raw() != MustFlow(100).Raw() {
		t.Errorf("mean of equal values = %v", got)
	}
}

func TestString(t *testing.T) {
	if got := MustPressure(20).String(); got != "20 cmH2O" {
		t.Errorf("String() = %q", got)
	}
	if got := MustFlow(0.25).String(); got != "0.25 L/s" {
		t.Errorf("String() = %q", got)
	}
}
