package analysis

import (
	"gonum.org/v1/gonum/stat"

	"github.com/pacce/ventilation/internal/sim"
)

// Breath summarizes one breath between consecutive starts of inspiration.
type Breath struct {
	Start, End   int
	PeakPressure float64
	EndPressure  float64
	Tidal        float64
}

// Breaths splits samples at each start of inspiration. The trailing partial
// breath is dropped.
func Breaths(samples []sim.Sample) []Breath {
	starts := breathStarts(samples)
	if len(starts) < 2 {
		return nil
	}

	out := make([]Breath, 0, len(starts)-1)
	for k := 0; k+1 < len(starts); k++ {
		from, to := starts[k], starts[k+1]
		b := Breath{Start: from, End: to}

		base := samples[from].Packet.Volume.Float64()
		if from > 0 {
			base = samples[from-1].Packet.Volume.Float64()
		}
		peakV := base
		for _, s := range samples[from:to] {
			b.PeakPressure = max(b.PeakPressure, s.Packet.Pressure.Float64())
			peakV = max(peakV, s.Packet.Volume.Float64())
		}
		b.Tidal = peakV - base
		b.EndPressure = samples[to-1].Packet.Pressure.Float64()
		out = append(out, b)
	}
	return out
}

// Variability holds the mean and standard deviation of a per-breath value.
type Variability struct {
	Mean, StdDev float64
}

type BreathStats struct {
	Count        int
	PeakPressure Variability
	EndPressure  Variability
	Tidal        Variability
}

// Stats reports breath-to-breath variability, skipping the first skip
// breaths so the controller warm-up does not dominate.
func Stats(breaths []Breath, skip int) BreathStats {
	if skip >= len(breaths) {
		return BreathStats{}
	}
	breaths = breaths[skip:]

	peaks := make([]float64, len(breaths))
	ends := make([]float64, len(breaths))
	tidals := make([]float64, len(breaths))
	for i, b := range breaths {
		peaks[i] = b.PeakPressure
		ends[i] = b.EndPressure
		tidals[i] = b.Tidal
	}

	var st BreathStats
	st.Count = len(breaths)
	st.PeakPressure.Mean, st.PeakPressure.StdDev = meanStd(peaks)
	st.EndPressure.Mean, st.EndPressure.StdDev = meanStd(ends)
	st.Tidal.Mean, st.Tidal.StdDev = meanStd(tidals)
	return st
}

func meanStd(xs []float64) (float64, float64) {
	if len(xs) == 1 {
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}
