package modes_test

import (
	"math"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/lung"
	"github.com/pacce/ventilation/internal/modes"
	"github.com/pacce/ventilation/internal/quantity"
)

const dt = 100 * time.Microsecond

func adultLung() lung.Lung {
	return lung.New(quantity.MustResistance(50), quantity.MustElastance(33.3))
}

func mustCycle(insp, exp time.Duration) cycle.Cycle {
	c, err := cycle.New(cycle.Timing{Inspiration: insp, Expiration: exp})
	Expect(err).NotTo(HaveOccurred())
	return c
}

// breathEnds runs m for d and returns the pressure of the last sample of each
// inspiration and expiration, and the largest flow magnitude seen.
func breathEnds(m modes.Mode, l lung.Lung, d time.Duration) (insp, exp []float64, maxFlow float64) {
	prev := cycle.Inspiration
	var last float64
	for t := time.Duration(0); t < d; t += dt {
		p := modes.Step(m, l, dt)
		phase := modes.Phase(m)
		if phase != prev {
			if prev == cycle.Inspiration {
				insp = append(insp, last)
			} else {
				exp = append(exp, last)
			}
			prev = phase
		}
		last = p.Pressure.Float64()
		maxFlow = math.Max(maxFlow, math.Abs(p.Flow.Float64()))
	}
	return insp, exp, maxFlow
}

var _ = Describe("PCV", func() {
	var (
		l lung.Lung
		m *modes.PCV
	)

	BeforeEach(func() {
		l = adultLung()
		m = modes.NewPCV(quantity.MustPressure(5), quantity.MustPressure(20), mustCycle(time.Second, 3*time.Second))
	})

	It("converges to peak during inspiration and PEEP during expiration", func() {
		insp, exp, maxFlow := breathEnds(m, l, 50*time.Second)

		Expect(insp).To(HaveLen(13))
		Expect(exp).To(HaveLen(12))
		for i, p := range insp {
			Expect(p).To(BeNumerically("~", 20, 0.5), "inspiration %d", i)
		}
		for i, p := range exp {
			Expect(p).To(BeNumerically("~", 5, 0.5), "expiration %d", i)
		}
		first := math.Abs(insp[0] - 20)
		Expect(math.Abs(insp[len(insp)-1] - 20)).To(BeNumerically("<=", first+0.05))
		Expect(maxFlow).To(BeNumerically("<=", 0.6+1e-9))
	})

	It("never overshoots the peak by more than half a cmH2O", func() {
		for t := time.Duration(0); t < 10*time.Second; t += dt {
			p := m.Step(l, dt)
			if t > 5*time.Second && m.Phase() == cycle.Inspiration {
				Expect(p.Pressure.Float64()).To(BeNumerically("<", 20.5))
			}
		}
	})

	It("rings only at the inspiration edge and then tracks the peak smoothly", func() {
		// With Kp·R = 0.25 the resistive share of the command rings for a few
		// steps after each edge before the integral term takes over.
		const settle = 20
		var (
			prev     float64
			inspStep = -1
			edgeDrop float64
			lateDrop float64
			peak     float64
		)
		for t := time.Duration(0); t < 20*time.Second; t += dt {
			p := m.Step(l, dt).Pressure.Float64()
			if m.Phase() != cycle.Inspiration {
				inspStep = -1
				prev = p
				continue
			}
			inspStep++
			if inspStep > 0 {
				if inspStep < settle {
					edgeDrop = math.Max(edgeDrop, prev-p)
				} else {
					lateDrop = math.Max(lateDrop, prev-p)
				}
			}
			peak = math.Max(peak, p)
			prev = p
		}
		Expect(edgeDrop).To(BeNumerically("<=", 1.3))
		Expect(lateDrop).To(BeNumerically("<=", 1e-3))
		Expect(peak).To(BeNumerically("<", 20.5))
	})

	It("forces zero flow during pauses", func() {
		c, err := cycle.New(cycle.Timing{
			Inspiration:      time.Second,
			InspiratoryPause: 500 * time.Millisecond,
			Expiration:       2 * time.Second,
			ExpiratoryPause:  500 * time.Millisecond,
		})
		Expect(err).NotTo(HaveOccurred())
		m.SetCycle(c)

		paused := 0
		for t := time.Duration(0); t < 8*time.Second; t += dt {
			p := m.Step(l, dt)
			if !m.Phase().Active() {
				paused++
				Expect(p.Flow.IsZero()).To(BeTrue())
				Expect(p.Pressure).To(Equal(l.Forward(quantity.Flow{}, p.Volume)))
			}
		}
		Expect(paused).To(BeNumerically(">", 0))
	})

	It("is deterministic", func() {
		other := modes.NewPCV(quantity.MustPressure(5), quantity.MustPressure(20), mustCycle(time.Second, 3*time.Second))
		for i := 0; i < 50000; i++ {
			a, b := m.Step(l, dt), other.Step(l, dt)
			Expect(a.Pressure.Raw()).To(Equal(b.Pressure.Raw()))
			Expect(a.Volume.Raw()).To(Equal(b.Volume.Raw()))
		}
	})
})

var _ = Describe("VCV", func() {
	It("delivers the tidal volume by the end of inspiration", func() {
		l := adultLung()
		m := modes.NewVCV(quantity.MustPressure(10), quantity.MustVolume(0.5), mustCycle(600*time.Millisecond, 3200*time.Millisecond))

		var delivered []float64
		var last float64
		prev := cycle.Inspiration
		for t := time.Duration(0); t < 50*time.Second; t += dt {
			m.Step(l, dt)
			if m.Phase() == cycle.Inspiration {
				last = m.Delivered().Float64()
			} else if prev == cycle.Inspiration {
				delivered = append(delivered, last)
			}
			prev = m.Phase()
		}

		Expect(len(delivered)).To(BeNumerically(">=", 13))
		for i, v := range delivered[1:] {
			Expect(v).To(BeNumerically("~", 0.5, 0.01), "breath %d", i+1)
		}
	})

	It("holds PEEP during expiration", func() {
		l := adultLung()
		m := modes.NewVCV(quantity.MustPressure(10), quantity.MustVolume(0.5), mustCycle(600*time.Millisecond, 3200*time.Millisecond))
		_, exp, maxFlow := breathEnds(m, l, 40*time.Second)

		Expect(exp).NotTo(BeEmpty())
		Expect(exp[len(exp)-1]).To(BeNumerically("~", 10, 0.5))
		Expect(maxFlow).To(BeNumerically("<=", 10+1e-9))
	})
})
