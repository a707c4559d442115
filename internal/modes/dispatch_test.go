package modes_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/modes"
	"github.com/pacce/ventilation/internal/quantity"
)

func stepUntil(m modes.Mode, phase cycle.Phase) {
	l := adultLung()
	for i := 0; i < 100000; i++ {
		modes.Step(m, l, dt)
		if modes.Phase(m) == phase {
			return
		}
	}
	Fail("phase " + phase.String() + " never reached")
}

var _ = Describe("Mode dispatch", func() {
	var (
		pcv *modes.PCV
		vcv *modes.VCV
	)

	BeforeEach(func() {
		pcv = modes.NewPCV(quantity.MustPressure(5), quantity.MustPressure(20), mustCycle(time.Second, 3*time.Second))
		vcv = modes.NewVCV(quantity.MustPressure(10), quantity.MustVolume(0.5), mustCycle(600*time.Millisecond, 3200*time.Millisecond))
	})

	It("names both modes", func() {
		Expect(modes.Name(pcv)).To(Equal("pcv"))
		Expect(modes.Name(vcv)).To(Equal("vcv"))
	})

	Describe("SetPeak", func() {
		It("ignores VCV", func() {
			before := modes.Snapshot(vcv)
			modes.SetPeak(vcv, quantity.MustPressure(35))
			Expect(modes.Snapshot(vcv)).To(Equal(before))
		})

		It("retargets PCV during inspiration", func() {
			modes.Step(pcv, adultLung(), dt)
			modes.SetPeak(pcv, quantity.MustPressure(25))
			Expect(pcv.Peak()).To(Equal(quantity.MustPressure(25)))
			Expect(pcv.Controller.Target()).To(Equal(quantity.MustPressure(25)))
		})

		It("only stores the setpoint during expiration", func() {
			stepUntil(pcv, cycle.Expiration)
			modes.SetPeak(pcv, quantity.MustPressure(25))
			Expect(pcv.Controller.Target()).To(Equal(quantity.MustPressure(5)))

			stepUntil(pcv, cycle.Inspiration)
			Expect(pcv.Controller.Target()).To(Equal(quantity.MustPressure(25)))
		})
	})

	Describe("SetTidal", func() {
		It("ignores PCV", func() {
			before := modes.Snapshot(pcv)
			modes.SetTidal(pcv, quantity.MustVolume(0.8))
			Expect(modes.Snapshot(pcv)).To(Equal(before))
		})

		It("retargets VCV", func() {
			modes.SetTidal(vcv, quantity.MustVolume(0.4))
			Expect(vcv.Tidal()).To(Equal(quantity.MustVolume(0.4)))
			Expect(vcv.Inspiration.Target()).To(Equal(quantity.MustVolume(0.4)))
		})
	})

	Describe("SetPEEP", func() {
		It("retargets PCV during expiration", func() {
			stepUntil(pcv, cycle.Expiration)
			modes.SetPEEP(pcv, quantity.MustPressure(8))
			Expect(pcv.Controller.Target()).To(Equal(quantity.MustPressure(8)))
			Expect(pcv.Controller.I.Sum().IsZero()).To(BeTrue())
		})

		It("only stores the setpoint during inspiration", func() {
			modes.Step(pcv, adultLung(), dt)
			modes.SetPEEP(pcv, quantity.MustPressure(8))
			Expect(pcv.PEEP()).To(Equal(quantity.MustPressure(8)))
			Expect(pcv.Controller.Target()).To(Equal(quantity.MustPressure(20)))
		})

		It("applies to VCV", func() {
			modes.SetPEEP(vcv, quantity.MustPressure(12))
			Expect(vcv.PEEP()).To(Equal(quantity.MustPressure(12)))
			Expect(vcv.Expiration.Target()).To(Equal(quantity.MustPressure(12)))
		})
	})

	Describe("SetCycle", func() {
		It("restarts the breath with the new timing on both modes", func() {
			next := mustCycle(2*time.Second, 2*time.Second)
			for _, m := range []modes.Mode{pcv, vcv} {
				stepUntil(m, cycle.Expiration)
				modes.SetCycle(m, next)
				Expect(modes.Snapshot(m).Timing).To(Equal(next.Timing()))

				modes.Step(m, adultLung(), dt)
				Expect(modes.Phase(m)).To(Equal(cycle.Inspiration))
				c := modes.Cycle(m)
				Expect(c.Elapsed()).To(BeZero())
			}
			Expect(pcv.Controller.Target()).To(Equal(quantity.MustPressure(20)))
			Expect(vcv.Delivered().Float64()).To(BeNumerically("<", 0.001))
		})
	})

	It("exposes tunable controllers", func() {
		Expect(modes.Controllers(pcv)).To(HaveKey("pressure"))
		Expect(modes.Controllers(vcv)).To(HaveKey("volume"))

		modes.Controllers(pcv)["pressure"].SetParam("kp", 0.01)
		Expect(pcv.Controller.Params()["kp"]).To(Equal(0.01))
	})

	It("tracks the current sample", func() {
		p := modes.Step(vcv, adultLung(), dt)
		Expect(modes.Current(vcv)).To(Equal(p))
		Expect(p.Flow.Float64()).To(BeNumerically(">", 0))
	})
})
