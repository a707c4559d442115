package quantity

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func drawFlow(t *rapid.T, label string) Flow {
	return MustFlow(rapid.Float64Range(-100, 100).Draw(t, label))
}

func drawVolume(t *rapid.T, label string) Volume {
	return MustVolume(rapid.Float64Range(-10, 10).Draw(t, label))
}

func drawPressure(t *rapid.T, label string) Pressure {
	return MustPressure(rapid.Float64Range(-1000, 1000).Draw(t, label))
}

func TestAdditionLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b, c := drawPressure(t, "a"), drawPressure(t, "b"), drawPressure(t, "c")
		if !a.Add(b).Add(c).Equal(a.Add(b.Add(c))) {
			t.Fatalf("addition not associative")
		}
		if !a.Add(b).Equal(b.Add(a)) {
			t.Fatalf("addition not commutative")
		}
		if !a.Add(Pressure{}).Equal(a) {
			t.Fatalf("zero is not the identity")
		}
		if !a.Sub(a).IsZero() {
			t.Fatalf("a - a = %v", a.Sub(a))
		}
	})
}

func TestScalarLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := drawVolume(t, "v")
		one, err := v.Scale(1)
		if err != nil || !one.Equal(v) {
			t.Fatalf("v*1 = %v, %v", one, err)
		}
		zero, err := v.Scale(0)
		if err != nil || !zero.IsZero() {
			t.Fatalf("v*0 = %v, %v", zero, err)
		}
		k := rapid.Float64Range(-10, 10).Draw(t, "k")
		if math.Abs(k) < 1e-6 {
			k = 0
		}
		left, _ := v.Scale(k)
		right := MustGain(k).MulVolume(v)
		if !left.Equal(right) {
			t.Fatalf("scalar product depends on side: %v vs %v", left, right)
		}
		bad := rapid.SampledFrom([]float64{math.NaN(), math.Inf(1), math.Inf(-1)}).Draw(t, "bad")
		if _, err := v.Scale(bad); err == nil {
			t.Fatalf("scaling by %v succeeded", bad)
		}
	})
}

func TestCrossProductLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := MustResistance(rapid.Float64Range(0, 200).Draw(t, "r"))
		f := drawFlow(t, "f")
		if !r.MulFlow(f).Equal(f.MulResistance(r)) {
			t.Fatalf("r*f != f*r")
		}
		if !r.MulFlow(Flow{}).IsZero() {
			t.Fatalf("r*0 != 0")
		}
		e := MustElastance(rapid.Float64Range(0, 200).Draw(t, "e"))
		v := drawVolume(t, "v")
		if !e.MulVolume(v).Equal(v.MulElastance(e)) {
			t.Fatalf("e*v != v*e")
		}
		if !e.MulVolume(Volume{}).IsZero() {
			t.Fatalf("e*0 != 0")
		}
	})
}

func TestEqualityLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := drawVolume(t, "v")
		if v.Cmp(v) != 0 {
			t.Fatalf("v != v")
		}
		d := rapid.Float64Range(0, 0.9e-4).Draw(t, "inside")
		if !v.Equal(v.Add(MustVolume(d))) {
			t.Fatalf("volumes %v apart compare unequal", d)
		}
		d = rapid.Float64Range(1.1e-4, 1).Draw(t, "outside")
		if v.Equal(v.Add(MustVolume(d))) {
			t.Fatalf("volumes %v apart compare equal", d)
		}
	})
}
