package metrics

import (
	"github.com/pacce/ventilation/internal/quantity"
	"github.com/pacce/ventilation/internal/sim"
)

// Standard returns a fresh set of every ventilation metric. ceiling is the
// flow limit of the mode under test.
func Standard(ceiling quantity.Flow) []sim.Metric {
	return []sim.Metric{
		NewPeakPressure(),
		NewMeanPressure(),
		NewEndExpiratoryPressure(),
		NewTidalVolume(),
		NewMinuteVentilation(),
		NewControlEffort(),
		NewSaturation(ceiling),
		NewWork(),
	}
}
