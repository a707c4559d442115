package modes

import "github.com/pacce/ventilation/internal/quantity"

// Gains pairs the proportional and integral gains of a PI controller.
type Gains struct {
	Kp quantity.Gain
	Ki quantity.Gain
}

var (
	PCVGains = Gains{Kp: quantity.MustGain(5e-3), Ki: quantity.MustGain(6e-5)}

	// VCVInspirationGains track delivered volume against the tidal target.
	VCVInspirationGains = Gains{Kp: quantity.MustGain(10), Ki: quantity.MustGain(2e-5)}
	// VCVExpirationGains track airway pressure against PEEP.
	VCVExpirationGains = Gains{Kp: quantity.MustGain(5e-3), Ki: quantity.MustGain(6e-5)}

	PCVCeiling = quantity.MustFlow(0.6)
	VCVCeiling = quantity.MustFlow(10)
)
