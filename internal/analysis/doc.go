// Package analysis inspects recorded runs.
//
//   - [Spectrum] and [DominantFrequency]: breathing rate from a waveform via FFT
//   - [PressureVolumeLoop]: pressure/volume trajectory of a time window
//   - [BreathSection]: one point per breath, sampled at the start of inspiration
//   - [LoopToASCII]: terminal rendering of a loop or section
//
// A run that settled to the configured cycle shows a dominant frequency
// equal to the respiratory rate:
//
//	hz, err := analysis.DominantFrequency(analysis.Pressures(samples), dt)
//	bpm := hz * 60
package analysis
