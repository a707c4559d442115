// Package packet defines the simulation sample shared by modes, drivers and
// exporters.
package packet

import (
	"fmt"
	"strconv"

	"github.com/pacce/ventilation/internal/quantity"
)

// Packet is one sample: instantaneous flow and pressure, accumulated volume.
type Packet struct {
	Flow     quantity.Flow
	Pressure quantity.Pressure
	Volume   quantity.Volume
}

// Add sums the packets component-wise.
func (p Packet) Add(o Packet) Packet {
	return Packet{
		Flow:     p.Flow.Add(o.Flow),
		Pressure: p.Pressure.Add(o.Pressure),
		Volume:   p.Volume.Add(o.Volume),
	}
}

// Scale multiplies every component by k.
func (p Packet) Scale(k float64) (Packet, error) {
	f, err := p.Flow.Scale(k)
	if err != nil {
		return Packet{}, err
	}
	pr, err := p.Pressure.Scale(k)
	if err != nil {
		return Packet{}, err
	}
	v, err := p.Volume.Scale(k)
	if err != nil {
		return Packet{}, err
	}
	return Packet{Flow: f, Pressure: pr, Volume: v}, nil
}

// Equal compares each component with its own tolerance.
func (p Packet) Equal(o Packet) bool {
	return p.Flow.Equal(o.Flow) && p.Pressure.Equal(o.Pressure) && p.Volume.Equal(o.Volume)
}

// String renders the packet in clinical units.
func (p Packet) String() string {
	return fmt.Sprintf("%.2f cmH2O, %.2f L/min, %.1f mL",
		p.Pressure.Float64(), p.Flow.Float64()*60, p.Volume.Float64()*1000)
}

// Header is the column order of Record.
var Header = []string{"flow_lps", "pressure_cmh2o", "volume_l"}

// Record formats the packet as CSV fields in natural units.
func (p Packet) Record() []string {
	return []string{
		strconv.FormatFloat(p.Flow.Float64(), 'f', 6, 64),
		strconv.FormatFloat(p.Pressure.Float64(), 'f', 6, 64),
		strconv.FormatFloat(p.Volume.Float64(), 'f', 6, 64),
	}
}

// Parse reads a record produced by Record.
func Parse(fields []string) (Packet, error) {
	if len(fields) != len(Header) {
		return Packet{}, fmt.Errorf("packet: expected %d fields, got %d", len(Header), len(fields))
	}
	var vals [3]float64
	for i, s := range fields {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Packet{}, fmt.Errorf("packet: field %s: %w", Header[i], err)
		}
		vals[i] = v
	}
	f, err := quantity.NewFlow(vals[0])
	if err != nil {
		return Packet{}, err
	}
	pr, err := quantity.NewPressure(vals[1])
	if err != nil {
		return Packet{}, err
	}
	v, err := quantity.NewVolume(vals[2])
	if err != nil {
		return Packet{}, err
	}
	return Packet{Flow: f, Pressure: pr, Volume: v}, nil
}
