package stream

import (
	"context"
	"time"

	"github.com/pacce/ventilation/internal/sim"
)

// Drive runs s with the hub attached, applying client requests between
// steps. A positive speed paces the run against the wall clock (1 is real
// time); zero runs flat out.
func Drive(ctx context.Context, s *sim.Simulator, cfg sim.Config, h *Hub, speed float64) error {
	s.AddObserver(h)

	start := time.Now()
	return s.RunWithCallback(ctx, cfg, func(sample sim.Sample) bool {
		h.Apply(s.Mode())
		if speed > 0 {
			due := time.Duration(float64(sample.Time) / speed)
			if wait := due - time.Since(start); wait > time.Millisecond {
				select {
				case <-ctx.Done():
					return false
				case <-time.After(wait):
				}
			}
		}
		return true
	})
}
