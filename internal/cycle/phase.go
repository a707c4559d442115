package cycle

import (
	"fmt"
	"time"
)

// Phase is the respiratory phase of an interval.
type Phase int

const (
	Inspiration Phase = iota
	InspiratoryPause
	Expiration
	ExpiratoryPause
)

func (p Phase) String() string {
	switch p {
	case Inspiration:
		return "inspiration"
	case InspiratoryPause:
		return "inspiratory-pause"
	case Expiration:
		return "expiration"
	case ExpiratoryPause:
		return "expiratory-pause"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Active reports whether the ventilator drives flow during p.
func (p Phase) Active() bool {
	return p == Inspiration || p == Expiration
}

// Mark is the edge event reported by Step.
type Mark int

const (
	None Mark = iota
	StartOfInspiration
	StartOfExpiration
)

func (m Mark) String() string {
	switch m {
	case StartOfInspiration:
		return "start-of-inspiration"
	case StartOfExpiration:
		return "start-of-expiration"
	}
	return "none"
}

func markOf(p Phase) Mark {
	switch p {
	case Inspiration:
		return StartOfInspiration
	case Expiration:
		return StartOfExpiration
	}
	return None
}

// Interval is one phase occupying [Start, End) within the period.
type Interval struct {
	Phase Phase
	Start time.Duration
	End   time.Duration
}

func (i Interval) Duration() time.Duration {
	return i.End - i.Start
}

func (i Interval) contains(t time.Duration) bool {
	return t >= i.Start && t < i.End
}
