package cycle

import (
	"fmt"
	"math"
	"time"
)

// Timing holds the four phase durations of one breath. Zero pauses are
// left out of the cycle.
type Timing struct {
	Inspiration      time.Duration
	InspiratoryPause time.Duration
	Expiration       time.Duration
	ExpiratoryPause  time.Duration
}

// Period is the sum of all phase durations.
func (t Timing) Period() time.Duration {
	return t.Inspiration + t.InspiratoryPause + t.Expiration + t.ExpiratoryPause
}

// Rate returns the breathing frequency in breaths per minute.
func (t Timing) Rate() float64 {
	p := t.Period()
	if p <= 0 {
		return 0
	}
	return float64(time.Minute) / float64(p)
}

func (t Timing) validate() error {
	if t.Inspiration <= 0 {
		return &ArgumentError{Name: "inspiration", Value: t.Inspiration, Reason: "must be positive"}
	}
	if t.Expiration <= 0 {
		return &ArgumentError{Name: "expiration", Value: t.Expiration, Reason: "must be positive"}
	}
	if t.InspiratoryPause < 0 {
		return &ArgumentError{Name: "inspiratory pause", Value: t.InspiratoryPause, Reason: "must not be negative"}
	}
	if t.ExpiratoryPause < 0 {
		return &ArgumentError{Name: "expiratory pause", Value: t.ExpiratoryPause, Reason: "must not be negative"}
	}
	return nil
}

func (t Timing) intervals() []Interval {
	phases := []struct {
		phase Phase
		d     time.Duration
	}{
		{Inspiration, t.Inspiration},
		{InspiratoryPause, t.InspiratoryPause},
		{Expiration, t.Expiration},
		{ExpiratoryPause, t.ExpiratoryPause},
	}

	out := make([]Interval, 0, len(phases))
	var start time.Duration
	for _, p := range phases {
		if p.d == 0 {
			continue
		}
		out = append(out, Interval{Phase: p.phase, Start: start, End: start + p.d})
		start += p.d
	}
	return out
}

// Ratio is an inspiratory:expiratory time ratio such as 1:2.
type Ratio struct {
	I float64
	E float64
}

// NewRatio validates both terms: they must be finite and positive.
func NewRatio(i, e float64) (Ratio, error) {
	if err := positive("ratio inspiratory term", i); err != nil {
		return Ratio{}, err
	}
	if err := positive("ratio expiratory term", e); err != nil {
		return Ratio{}, err
	}
	return Ratio{I: i, E: e}, nil
}

func (r Ratio) String() string {
	return fmt.Sprintf("%g:%g", r.I, r.E)
}

// TimingFromRate derives inspiration and expiration from a breathing rate in
// breaths per minute and an I:E ratio. Pauses are zero.
func TimingFromRate(bpm float64, r Ratio) (Timing, error) {
	if err := positive("rate", bpm); err != nil {
		return Timing{}, err
	}
	if _, err := NewRatio(r.I, r.E); err != nil {
		return Timing{}, err
	}

	period := 60 / bpm
	insp := seconds(period * r.I / (r.I + r.E))
	total := seconds(period)
	t := Timing{Inspiration: insp, Expiration: total - insp}
	if err := t.validate(); err != nil {
		return Timing{}, err
	}
	return t, nil
}

// FromRate builds a two-phase cycle from a breathing rate and an I:E ratio.
func FromRate(bpm float64, r Ratio) (Cycle, error) {
	t, err := TimingFromRate(bpm, r)
	if err != nil {
		return Cycle{}, err
	}
	return New(t)
}

func positive(name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return &ArgumentError{Name: name, Value: v, Reason: "must be finite"}
	}
	if v <= 0 {
		return &ArgumentError{Name: name, Value: v, Reason: "must be positive"}
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
