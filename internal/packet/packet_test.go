package packet

import (
	"errors"
	"math"
	"testing"

	"github.com/pacce/ventilation/internal/quantity"
	"pgregory.net/rapid"
)

func drawPacket(t *rapid.T, label string) Packet {
	return Packet{
		Flow:     quantity.MustFlow(rapid.Float64Range(-5, 5).Draw(t, label+".flow")),
		Pressure: quantity.MustPressure(rapid.Float64Range(-50, 50).Draw(t, label+".pressure")),
		Volume:   quantity.MustVolume(rapid.Float64Range(-2, 2).Draw(t, label+".volume")),
	}
}

func TestPacketLaws(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a, b, c := drawPacket(t, "a"), drawPacket(t, "b"), drawPacket(t, "c")
		if !a.Add(b).Add(c).Equal(a.Add(b.Add(c))) {
			t.Fatalf("addition not associative")
		}
		if !a.Add(b).Equal(b.Add(a)) {
			t.Fatalf("addition not commutative")
		}
		if !a.Add(Packet{}).Equal(a) {
			t.Fatalf("zero packet is not the identity")
		}
		one, err := a.Scale(1)
		if err != nil || !one.Equal(a) {
			t.Fatalf("a*1 = %v, %v", one, err)
		}
		zero, err := a.Scale(0)
		if err != nil || !zero.Equal(Packet{}) {
			t.Fatalf("a*0 = %v, %v", zero, err)
		}
	})
}

func TestScaleRejectsNonFinite(t *testing.T) {
	p := Packet{Flow: quantity.MustFlow(1)}
	for _, k := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := p.Scale(k); !errors.Is(err, quantity.ErrDomain) {
			t.Errorf("Scale(%v): expected ErrDomain, got %v", k, err)
		}
	}
}

func TestString(t *testing.T) {
	p := Packet{
		Flow:     quantity.MustFlow(0.5),
		Pressure: quantity.MustPressure(20),
		Volume:   quantity.MustVolume(0.45),
	}
	if got, want := p.String(), "20.00 cmH2O, 30.00 L/min, 450.0 mL"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestRecordParse(t *testing.T) {
	p := Packet{
		Flow:     quantity.MustFlow(-0.125),
		Pressure: quantity.MustPressure(7.5),
		Volume:   quantity.MustVolume(0.3),
	}
	rec := p.Record()
	if len(rec) != len(Header) {
		t.Fatalf("record has %d fields", len(rec))
	}
	got, err := Parse(rec)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(p) {
		t.Errorf("Parse(Record()) = %v, want %v", got, p)
	}

	if _, err := Parse([]string{"1", "2"}); err == nil {
		t.Error("expected error for short record")
	}
	if _, err := Parse([]string{"x", "2", "3"}); err == nil {
		t.Error("expected error for bad number")
	}
}
