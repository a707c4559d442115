package modes

import (
	"fmt"
	"time"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/lung"
	"github.com/pacce/ventilation/internal/packet"
	"github.com/pacce/ventilation/internal/quantity"
)

// Mode is either *PCV or *VCV. The set is closed: no other package can
// implement it.
type Mode interface {
	mode()
}

var (
	_ Mode = (*PCV)(nil)
	_ Mode = (*VCV)(nil)
)

// Settings is a snapshot of the clinician setpoints of a mode. Peak is zero
// for VCV and Tidal is zero for PCV.
type Settings struct {
	Mode   string
	PEEP   quantity.Pressure
	Peak   quantity.Pressure
	Tidal  quantity.Volume
	Timing cycle.Timing
}

func unknown(m Mode) string {
	return fmt.Sprintf("modes: unknown mode %T", m)
}

// Step advances m by dt against lung l.
func Step(m Mode, l lung.Lung, dt time.Duration) packet.Packet {
	switch m := m.(type) {
	case *PCV:
		return m.Step(l, dt)
	case *VCV:
		return m.Step(l, dt)
	}
	panic(unknown(m))
}

// SetPEEP applies to both modes.
func SetPEEP(m Mode, p quantity.Pressure) {
	switch m := m.(type) {
	case *PCV:
		m.SetPEEP(p)
	case *VCV:
		m.SetPEEP(p)
	default:
		panic(unknown(m))
	}
}

// SetPeak applies to PCV and is a no-op on VCV.
func SetPeak(m Mode, p quantity.Pressure) {
	switch m := m.(type) {
	case *PCV:
		m.SetPeak(p)
	case *VCV:
	default:
		panic(unknown(m))
	}
}

// SetTidal applies to VCV and is a no-op on PCV.
func SetTidal(m Mode, v quantity.Volume) {
	switch m := m.(type) {
	case *PCV:
	case *VCV:
		m.SetTidal(v)
	default:
		panic(unknown(m))
	}
}

// SetCycle applies to both modes.
func SetCycle(m Mode, c cycle.Cycle) {
	switch m := m.(type) {
	case *PCV:
		m.SetCycle(c)
	case *VCV:
		m.SetCycle(c)
	default:
		panic(unknown(m))
	}
}

func Name(m Mode) string {
	switch m.(type) {
	case *PCV:
		return "pcv"
	case *VCV:
		return "vcv"
	}
	panic(unknown(m))
}

// Phase returns the respiratory phase m is in.
func Phase(m Mode) cycle.Phase {
	switch m := m.(type) {
	case *PCV:
		return m.Phase()
	case *VCV:
		return m.Phase()
	}
	panic(unknown(m))
}

// Current returns the last sample m produced.
func Current(m Mode) packet.Packet {
	switch m := m.(type) {
	case *PCV:
		return m.Current()
	case *VCV:
		return m.Current()
	}
	panic(unknown(m))
}

// Cycle returns a copy of the breath timer of m.
func Cycle(m Mode) cycle.Cycle {
	switch m := m.(type) {
	case *PCV:
		return m.Cycle()
	case *VCV:
		return m.Cycle()
	}
	panic(unknown(m))
}

// Snapshot returns the setpoints of m.
func Snapshot(m Mode) Settings {
	switch m := m.(type) {
	case *PCV:
		return Settings{Mode: "pcv", PEEP: m.peep, Peak: m.peak, Timing: m.cycle.Timing()}
	case *VCV:
		return Settings{Mode: "vcv", PEEP: m.peep, Tidal: m.tidal, Timing: m.cycle.Timing()}
	}
	panic(unknown(m))
}

// Controllers returns the tunable controllers of m keyed by role, for live
// adjustment.
func Controllers(m Mode) map[string]Tunable {
	switch m := m.(type) {
	case *PCV:
		return map[string]Tunable{"pressure": m.Controller}
	case *VCV:
		return map[string]Tunable{"volume": m.Inspiration, "pressure": m.Expiration}
	}
	panic(unknown(m))
}

// Tunable is a controller with named parameters.
type Tunable interface {
	Params() map[string]float64
	SetParam(name string, value float64)
}
