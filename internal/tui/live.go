// Package tui draws a scrolling strip chart of a running simulation with
// plain ANSI escapes. It is the lightweight watcher behind run --watch; the
// interactive monitor lives in package viz.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pacce/ventilation/internal/sim"
)

const (
	width       = 70
	height      = 20
	clearScreen = "\033[2J\033[H"
	hideCursor  = "\033[?25l"
	showCursor  = "\033[?25h"
)

// LiveRenderer is a sim.Observer. Every sample out of every is pushed as
// one chart column; the chart is redrawn at most frameRate times a second,
// or on every column when frameRate is zero.
type LiveRenderer struct {
	title     string
	out       io.Writer
	frameRate int
	every     int
	lastFrame time.Time
	count     int
	canvas    [][]rune

	pressure []float64
	volume   []float64
	last     sim.Sample
}

func NewLiveRenderer(title string, out io.Writer, frameRate, every int) *LiveRenderer {
	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
	}
	return &LiveRenderer{
		title:     title,
		out:       out,
		frameRate: frameRate,
		every:     max(1, every),
		canvas:    canvas,
		pressure:  make([]float64, 0, width),
		volume:    make([]float64, 0, width),
	}
}

func (r *LiveRenderer) OnStep(s sim.Sample) {
	r.last = s
	r.count++
	if r.count%r.every != 0 {
		return
	}
	r.pressure = scroll(r.pressure, s.Packet.Pressure.Float64())
	r.volume = scroll(r.volume, s.Packet.Volume.Float64())

	if r.frameRate > 0 && time.Since(r.lastFrame) < time.Second/time.Duration(r.frameRate) {
		return
	}
	r.lastFrame = time.Now()
	r.clear()
	r.draw()
	r.render()
}

func scroll(xs []float64, v float64) []float64 {
	if len(xs) == width {
		copy(xs, xs[1:])
		xs = xs[:width-1]
	}
	return append(xs, v)
}

func (r *LiveRenderer) clear() {
	for y := range r.canvas {
		for x := range r.canvas[y] {
			r.canvas[y][x] = ' '
		}
	}
}

func (r *LiveRenderer) set(x, y int, c rune) {
	if x >= 0 && x < width && y >= 0 && y < height {
		r.canvas[y][x] = c
	}
}

// draw puts pressure in the upper half and volume in the lower half, each
// scaled to its own visible range.
func (r *LiveRenderer) draw() {
	half := height / 2
	for x := 0; x < width; x++ {
		r.set(x, half, '-')
	}
	r.trace(r.pressure, 0, half-1, '*')
	r.trace(r.volume, half+1, height-1, 'o')
}

func (r *LiveRenderer) trace(xs []float64, top, bottom int, c rune) {
	if len(xs) == 0 {
		return
	}
	lo, hi := xs[0], xs[0]
	for _, v := range xs {
		lo, hi = min(lo, v), max(hi, v)
	}
	if hi == lo {
		hi = lo + 1
	}
	rows := float64(bottom - top)
	for x, v := range xs {
		y := bottom - int((v-lo)/(hi-lo)*rows+0.5)
		r.set(x, y, c)
	}
}

func (r *LiveRenderer) render() {
	var b strings.Builder
	b.WriteString(clearScreen)
	b.WriteString(fmt.Sprintf("  %s  t=%.2fs  %s\n", r.title, r.last.Time.Seconds(), r.last.Phase))
	b.WriteString("  " + strings.Repeat("-", width) + "\n")

	for _, row := range r.canvas {
		b.WriteString("  ")
		b.WriteString(string(row))
		b.WriteString("\n")
	}

	b.WriteString("  " + strings.Repeat("-", width) + "\n")
	p := r.last.Packet
	b.WriteString(fmt.Sprintf("  * P=%.2f cmH2O   o V=%.3f L   Q=%.3f L/s\n",
		p.Pressure.Float64(), p.Volume.Float64(), p.Flow.Float64()))

	fmt.Fprint(r.out, b.String())
}

func (r *LiveRenderer) Start() { fmt.Fprint(r.out, hideCursor) }
func (r *LiveRenderer) Stop()  { fmt.Fprint(r.out, showCursor) }
