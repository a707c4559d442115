package export

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/pacce/ventilation/internal/analysis"
	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/packet"
	"github.com/pacce/ventilation/internal/quantity"
	"github.com/pacce/ventilation/internal/sim"
)

func rampSamples(n int) []sim.Sample {
	out := make([]sim.Sample, n)
	for i := range out {
		x := float64(i) / float64(n)
		out[i] = sim.Sample{
			Time:  time.Duration(i) * time.Millisecond,
			Phase: cycle.Inspiration,
			Packet: packet.Packet{
				Flow:     quantity.MustFlow(0.3 * (1 - x)),
				Pressure: quantity.MustPressure(5 + 15*x),
				Volume:   quantity.MustVolume(0.45 * x),
			},
		}
	}
	return out
}

func TestLoopToSVG(t *testing.T) {
	loop := analysis.PressureVolumeLoop(rampSamples(50), 0, 50)

	var buf bytes.Buffer
	if err := LoopToSVG(&buf, loop, 400, 300, "#00ff00"); err != nil {
		t.Fatalf("svg failed: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "<polyline", "stroke:#00ff00", "pressure (cmH2O)", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in output", want)
		}
	}
}

func TestLoopToSVGEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := LoopToSVG(&buf, nil, 400, 300, "#fff"); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestWaveform(t *testing.T) {
	p, err := Waveform(rampSamples(100), Pressure, 10, "ramp")
	if err != nil {
		t.Fatalf("waveform failed: %v", err)
	}
	if p.Y.Label.Text != "pressure (cmH2O)" {
		t.Errorf("unexpected label %q", p.Y.Label.Text)
	}
	if _, err := Waveform(nil, Flow, 1, ""); !errors.Is(err, ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}

func TestSaveWaveforms(t *testing.T) {
	dir := t.TempDir()
	paths, err := SaveWaveforms(rampSamples(100), dir, "run", "svg", 1)
	if err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("expected 3 files, got %d", len(paths))
	}
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			t.Errorf("missing %s: %v", path, err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("%s is empty", path)
		}
	}
}

func TestSignalString(t *testing.T) {
	if Pressure.String() != "pressure" || Flow.String() != "flow" || Volume.String() != "volume" {
		t.Error("unexpected signal names")
	}
}
