package analysis

import (
	"strings"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/sim"
)

// Point is a pressure (cmH2O) and volume (L) pair.
type Point struct {
	Pressure, Volume float64
}

// Loop is a pressure/volume trajectory.
type Loop struct {
	Points []Point
}

// PressureVolumeLoop collects the samples in [from, to).
func PressureVolumeLoop(samples []sim.Sample, from, to int) *Loop {
	if from < 0 {
		from = 0
	}
	if to > len(samples) {
		to = len(samples)
	}
	if from >= to {
		return nil
	}

	loop := &Loop{Points: make([]Point, 0, to-from)}
	for _, s := range samples[from:to] {
		loop.Points = append(loop.Points, Point{
			Pressure: s.Packet.Pressure.Float64(),
			Volume:   s.Packet.Volume.Float64(),
		})
	}
	return loop
}

// LastBreath returns the loop of the last complete breath, from the final
// start of inspiration back to the one before it.
func LastBreath(samples []sim.Sample) *Loop {
	starts := breathStarts(samples)
	if len(starts) < 2 {
		return nil
	}
	return PressureVolumeLoop(samples, starts[len(starts)-2], starts[len(starts)-1])
}

// BreathSection records the state at each start of inspiration. A settled
// run collapses to a single point.
func BreathSection(samples []sim.Sample) *Loop {
	section := &Loop{Points: make([]Point, 0)}
	for _, i := range breathStarts(samples) {
		section.Points = append(section.Points, Point{
			Pressure: samples[i].Packet.Pressure.Float64(),
			Volume:   samples[i].Packet.Volume.Float64(),
		})
	}
	return section
}

func breathStarts(samples []sim.Sample) []int {
	var starts []int
	prev := cycle.Phase(-1)
	for i, s := range samples {
		if s.Phase == cycle.Inspiration && prev != cycle.Inspiration {
			starts = append(starts, i)
		}
		prev = s.Phase
	}
	return starts
}

// Bounds returns the extremes of the loop.
func (l *Loop) Bounds() (minP, maxP, minV, maxV float64) {
	minP, maxP = l.Points[0].Pressure, l.Points[0].Pressure
	minV, maxV = l.Points[0].Volume, l.Points[0].Volume
	for _, p := range l.Points {
		minP = min(minP, p.Pressure)
		maxP = max(maxP, p.Pressure)
		minV = min(minV, p.Volume)
		maxV = max(maxV, p.Volume)
	}
	return minP, maxP, minV, maxV
}

// DynamicCompliance is the volume swing over the pressure swing, in L/cmH2O.
func (l *Loop) DynamicCompliance() float64 {
	if l == nil || len(l.Points) == 0 {
		return 0
	}
	minP, maxP, minV, maxV := l.Bounds()
	if maxP == minP {
		return 0
	}
	return (maxV - minV) / (maxP - minP)
}

// LoopToASCII renders pressure on the x axis and volume on the y axis.
func LoopToASCII(loop *Loop, width, height int) string {
	if loop == nil || len(loop.Points) == 0 || width < 2 || height < 2 {
		return ""
	}

	minX, maxX, minY, maxY := loop.Bounds()

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range loop.Points {
		col := int((p.Pressure - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Volume-minY)/rangeY*float64(height-1))

		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
