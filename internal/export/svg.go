package export

import (
	"errors"
	"fmt"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/pacce/ventilation/internal/analysis"
)

// ErrEmpty is returned when there is nothing to draw.
var ErrEmpty = errors.New("export: nothing to draw")

const margin = 40

// LoopToSVG draws a pressure/volume loop with pressure on the x axis.
func LoopToSVG(w io.Writer, loop *analysis.Loop, width, height int, strokeColor string) error {
	if loop == nil || len(loop.Points) < 2 {
		return ErrEmpty
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

	plotW := width - 2*margin
	plotH := height - 2*margin

	xs := make([]int, len(loop.Points))
	ys := make([]int, len(loop.Points))
	for i, p := range loop.Points {
		xs[i] = margin + int((p.Pressure-minX)/rangeX*float64(plotW))
		ys[i] = margin + plotH - int((p.Volume-minY)/rangeY*float64(plotH))
	}

	canvas := svg.New(w)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:#0a0a0a")
	canvas.Line(margin, margin+plotH, margin+plotW, margin+plotH, "stroke:#666;stroke-width:1")
	canvas.Line(margin, margin, margin, margin+plotH, "stroke:#666;stroke-width:1")
	canvas.Polyline(xs, ys, fmt.Sprintf("fill:none;stroke:%s;stroke-width:1.5", strokeColor))
	canvas.Text(width/2, height-10, "pressure (cmH2O)", "fill:#aaa;font-size:12px;text-anchor:middle")
	canvas.Text(12, height/2, "volume (L)", "fill:#aaa;font-size:12px")
	canvas.Text(margin, margin+plotH+14, fmt.Sprintf("%.1f", minX), "fill:#aaa;font-size:10px")
	canvas.Text(margin+plotW, margin+plotH+14, fmt.Sprintf("%.1f", maxX), "fill:#aaa;font-size:10px;text-anchor:end")
	canvas.Text(margin+4, margin+10, fmt.Sprintf("%.3f", maxY), "fill:#aaa;font-size:10px")
	canvas.End()
	return nil
}
