package analysis

import (
	"errors"
	"math"
	"math/cmplx"
	"time"

	"github.com/mjibson/go-dsp/fft"

	"github.com/pacce/ventilation/internal/sim"
)

// ErrTooShort is returned when a waveform cannot resolve any frequency.
var ErrTooShort = errors.New("analysis: waveform too short")

// Spectrum returns the one-sided magnitude spectrum of data sampled every
// dt, together with the frequency in Hz of each bin. The mean is removed
// and a Hann window applied before the transform.
func Spectrum(data []float64, dt time.Duration) (freqs, power []float64, err error) {
	n := len(data)
	if n < 4 || dt <= 0 {
		return nil, nil, ErrTooShort
	}

	mean := 0.0
	for _, v := range data {
		mean += v
	}
	mean /= float64(n)

	buf := make([]complex128, n)
	for i, v := range data {
		window := 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
		buf[i] = complex((v-mean)*window, 0)
	}
	spectrum := fft.FFT(buf)

	resolution := 1 / (float64(n) * dt.Seconds())
	freqs = make([]float64, n/2)
	power = make([]float64, n/2)
	for i := range power {
		freqs[i] = float64(i) * resolution
		power[i] = cmplx.Abs(spectrum[i])
	}
	return freqs, power, nil
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin.
func DominantFrequency(data []float64, dt time.Duration) (float64, error) {
	freqs, power, err := Spectrum(data, dt)
	if err != nil {
		return 0, err
	}
	best := 1
	for i := 2; i < len(power); i++ {
		if power[i] > power[best] {
			best = i
		}
	}
	return freqs[best], nil
}

// Decimate keeps every factor-th sample.
func Decimate(samples []sim.Sample, factor int) []sim.Sample {
	if factor <= 1 {
		return samples
	}
	out := make([]sim.Sample, 0, len(samples)/factor+1)
	for i := 0; i < len(samples); i += factor {
		out = append(out, samples[i])
	}
	return out
}

func Pressures(samples []sim.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Packet.Pressure.Float64()
	}
	return out
}

func Flows(samples []sim.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Packet.Flow.Float64()
	}
	return out
}

func Volumes(samples []sim.Sample) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = s.Packet.Volume.Float64()
	}
	return out
}

// BreathRate estimates the respiratory rate in breaths per minute from the
// pressure waveform. Long runs are decimated to about 10ms per point.
func BreathRate(samples []sim.Sample, dt time.Duration) (float64, error) {
	factor := 1
	if dt > 0 && dt < 10*time.Millisecond {
		factor = int(10 * time.Millisecond / dt)
	}
	hz, err := DominantFrequency(Pressures(Decimate(samples, factor)), dt*time.Duration(factor))
	if err != nil {
		return 0, err
	}
	return hz * 60, nil
}
