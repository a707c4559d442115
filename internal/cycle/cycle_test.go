package cycle

import (
	"errors"
	"math"
	"testing"
	"time"
)

func mustNew(t *testing.T, tm Timing) Cycle {
	t.Helper()
	c, err := New(tm)
	if err != nil {
		t.Fatalf("New(%+v): %v", tm, err)
	}
	return c
}

func TestDeterministicMarks(t *testing.T) {
	c := mustNew(t, Timing{Inspiration: time.Second, Expiration: 3 * time.Second})
	dt := 100 * time.Millisecond

	var soi, soe []int
	for step := 0; step < 40; step++ {
		switch c.Step(dt) {
		case StartOfInspiration:
			soi = append(soi, step)
		case StartOfExpiration:
			soe = append(soe, step)
		}

		want := Expiration
		if c.Elapsed() < time.Second {
			want = Inspiration
		}
		if got := c.State(); got != want {
			t.Fatalf("step %d (t=%v): state %v, want %v", step, c.Elapsed(), got, want)
		}
	}

	if len(soi) != 1 || soi[0] != 0 {
		t.Errorf("StartOfInspiration at %v, want [0]", soi)
	}
	if len(soe) != 1 || soe[0] != 10 {
		t.Errorf("StartOfExpiration at %v, want [10]", soe)
	}

	if m := c.Step(dt); m != StartOfInspiration {
		t.Errorf("wrap mark = %v, want StartOfInspiration", m)
	}
	if c.Elapsed() != 0 || c.State() != Inspiration {
		t.Errorf("after wrap: elapsed %v state %v", c.Elapsed(), c.State())
	}
}

func TestPauses(t *testing.T) {
	c := mustNew(t, Timing{
		Inspiration:      time.Second,
		InspiratoryPause: 500 * time.Millisecond,
		Expiration:       3 * time.Second,
		ExpiratoryPause:  500 * time.Millisecond,
	})
	if n := len(c.Intervals()); n != 4 {
		t.Fatalf("intervals = %d, want 4", n)
	}
	if c.Period() != 5*time.Second {
		t.Errorf("period = %v", c.Period())
	}
	if c.Shortest() != 500*time.Millisecond {
		t.Errorf("shortest = %v", c.Shortest())
	}

	type event struct {
		at    time.Duration
		mark  Mark
		phase Phase
	}
	var events []event
	prev := Phase(-1)
	for step := 0; step < 50; step++ {
		m := c.Step(100 * time.Millisecond)
		if s := c.State(); s != prev {
			events = append(events, event{c.Elapsed(), m, s})
			prev = s
		}
	}

	want := []event{
		{0, StartOfInspiration, Inspiration},
		{time.Second, None, InspiratoryPause},
		{1500 * time.Millisecond, StartOfExpiration, Expiration},
		{4500 * time.Millisecond, None, ExpiratoryPause},
	}
	if len(events) != len(want) {
		t.Fatalf("events = %+v, want %+v", events, want)
	}
	for i, w := range want {
		if events[i] != w {
			t.Errorf("event %d = %+v, want %+v", i, events[i], w)
		}
	}
}

func TestZeroPausesSkipped(t *testing.T) {
	c := mustNew(t, Timing{Inspiration: time.Second, Expiration: 2 * time.Second})
	ivs := c.Intervals()
	if len(ivs) != 2 || ivs[0].Phase != Inspiration || ivs[1].Phase != Expiration {
		t.Fatalf("intervals = %+v", ivs)
	}
	if ivs[1].Start != time.Second || ivs[1].End != 3*time.Second {
		t.Errorf("expiration interval = %+v", ivs[1])
	}
}

func TestLargeStepCrossesIntervals(t *testing.T) {
	c := mustNew(t, Timing{
		Inspiration:      time.Second,
		InspiratoryPause: 200 * time.Millisecond,
		Expiration:       2 * time.Second,
	})
	c.Step(0)
	if m := c.Step(1500 * time.Millisecond); m != StartOfExpiration {
		t.Errorf("mark = %v, want StartOfExpiration", m)
	}
	if c.State() != Expiration {
		t.Errorf("state = %v", c.State())
	}
	if m := c.Step(10 * time.Second); m != StartOfInspiration || c.Elapsed() != 0 {
		t.Errorf("wrap: mark %v elapsed %v", m, c.Elapsed())
	}
}

func TestReset(t *testing.T) {
	c := mustNew(t, Timing{Inspiration: time.Second, Expiration: time.Second})
	c.Step(0)
	c.Step(1200 * time.Millisecond)
	c.Reset()
	if c.State() != Inspiration || c.Elapsed() != 0 {
		t.Fatalf("reset left state %v elapsed %v", c.State(), c.Elapsed())
	}
	if m := c.Step(time.Millisecond); m != StartOfInspiration {
		t.Errorf("first step after reset = %v", m)
	}
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name string
		t    Timing
	}{
		{"zero inspiration", Timing{Expiration: time.Second}},
		{"zero expiration", Timing{Inspiration: time.Second}},
		{"negative inspiration", Timing{Inspiration: -time.Second, Expiration: time.Second}},
		{"negative pause", Timing{Inspiration: time.Second, Expiration: time.Second, InspiratoryPause: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.t)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("expected ErrInvalidArgument, got %v", err)
			}
			var ae *ArgumentError
			if !errors.As(err, &ae) {
				t.Fatalf("expected *ArgumentError, got %T", err)
			}
		})
	}
}

func TestFromRate(t *testing.T) {
	c, err := FromRate(15, Ratio{I: 1, E: 3})
	if err != nil {
		t.Fatal(err)
	}
	tm := c.Timing()
	if tm.Inspiration != time.Second || tm.Expiration != 3*time.Second {
		t.Errorf("timing = %+v, want 1s/3s", tm)
	}
	if r := tm.Rate(); math.Abs(r-15) > 1e-9 {
		t.Errorf("rate = %v", r)
	}

	tm, err = TimingFromRate(20, Ratio{I: 1, E: 2})
	if err != nil {
		t.Fatal(err)
	}
	if tm.Period() != 3*time.Second || tm.Inspiration != time.Second {
		t.Errorf("20 bpm 1:2 = %+v", tm)
	}
}

func TestFromRateRejects(t *testing.T) {
	bad := []float64{0, -12, math.NaN(), math.Inf(1), math.Inf(-1)}
	for _, v := range bad {
		if _, err := FromRate(v, Ratio{I: 1, E: 2}); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("rate %v: got %v", v, err)
		}
		if _, err := NewRatio(v, 1); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ratio I %v: got %v", v, err)
		}
		if _, err := NewRatio(1, v); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ratio E %v: got %v", v, err)
		}
		if _, err := FromRate(12, Ratio{I: 1, E: v}); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("FromRate ratio E %v: got %v", v, err)
		}
	}
}

func TestStrings(t *testing.T) {
	if Expiration.String() != "expiration" || StartOfInspiration.String() != "start-of-inspiration" {
		t.Error("unexpected names")
	}
	if r, _ := NewRatio(1, 2); r.String() != "1:2" {
		t.Errorf("ratio = %q", r.String())
	}
}
