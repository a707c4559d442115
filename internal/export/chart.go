package export

import (
	"fmt"
	"image/color"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pacce/ventilation/internal/sim"
)

// Signal selects one component of the recorded packet.
type Signal int

const (
	Pressure Signal = iota
	Flow
	Volume
)

var signals = []Signal{Pressure, Flow, Volume}

func (s Signal) String() string {
	switch s {
	case Pressure:
		return "pressure"
	case Flow:
		return "flow"
	case Volume:
		return "volume"
	}
	return "unknown"
}

func (s Signal) label() string {
	switch s {
	case Pressure:
		return "pressure (cmH2O)"
	case Flow:
		return "flow (L/s)"
	}
	return "volume (L)"
}

func (s Signal) value(sample sim.Sample) float64 {
	switch s {
	case Pressure:
		return sample.Packet.Pressure.Float64()
	case Flow:
		return sample.Packet.Flow.Float64()
	}
	return sample.Packet.Volume.Float64()
}

var lineColors = map[Signal]color.Color{
	Pressure: color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff},
	Flow:     color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff},
	Volume:   color.RGBA{R: 0x2c, G: 0xa0, B: 0x2c, A: 0xff},
}

// Waveform builds a time plot of one signal. Every stride-th sample is used.
func Waveform(samples []sim.Sample, signal Signal, stride int, title string) (*plot.Plot, error) {
	if len(samples) == 0 {
		return nil, ErrEmpty
	}
	if stride < 1 {
		stride = 1
	}

	pts := make(plotter.XYs, 0, len(samples)/stride+1)
	for i := 0; i < len(samples); i += stride {
		pts = append(pts, plotter.XY{X: samples[i].Time.Seconds(), Y: signal.value(samples[i])})
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = signal.label()

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.Color = lineColors[signal]
	line.Width = vg.Points(1)

	p.Add(plotter.NewGrid(), line)
	return p, nil
}

// SaveWaveforms writes one chart per signal into dir as prefix_<signal>.ext,
// where ext is any format gonum/plot supports (png, svg, pdf). It returns the
// written paths.
func SaveWaveforms(samples []sim.Sample, dir, prefix, ext string, stride int) ([]string, error) {
	paths := make([]string, 0, len(signals))
	for _, s := range signals {
		p, err := Waveform(samples, s, stride, fmt.Sprintf("%s %s", prefix, s))
		if err != nil {
			return nil, err
		}
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.%s", prefix, s, ext))
		if err := p.Save(10*vg.Inch, 3*vg.Inch, path); err != nil {
			return nil, fmt.Errorf("export: %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
