package storage

import (
	"encoding/json"
	"io"
	"os"

	"github.com/pacce/ventilation/internal/sim"
)

// ExportData is the JSON document written by ExportJSON.
type ExportData struct {
	RunMetadata
	Times    []float64 `json:"times"`
	Phases   []string  `json:"phases"`
	Flow     []float64 `json:"flow"`
	Pressure []float64 `json:"pressure"`
	Volume   []float64 `json:"volume"`
}

func NewExportData(meta RunMetadata, result *sim.Result) ExportData {
	n := len(result.Samples)
	data := ExportData{
		RunMetadata: meta,
		Times:       make([]float64, n),
		Phases:      make([]string, n),
		Flow:        make([]float64, n),
		Pressure:    make([]float64, n),
		Volume:      make([]float64, n),
	}
	for i, s := range result.Samples {
		data.Times[i] = s.Time.Seconds()
		data.Phases[i] = s.Phase.String()
		data.Flow[i] = s.Packet.Flow.Float64()
		data.Pressure[i] = s.Packet.Pressure.Float64()
		data.Volume[i] = s.Packet.Volume.Float64()
	}
	return data
}

// WriteJSON encodes the run as indented JSON.
func WriteJSON(w io.Writer, meta RunMetadata, result *sim.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewExportData(meta, result))
}

// ExportJSON writes the run to path, or to stdout when path is "-".
func ExportJSON(path string, meta RunMetadata, result *sim.Result) error {
	if path == "-" {
		return WriteJSON(os.Stdout, meta, result)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteJSON(file, meta, result)
}

// ExportCSV writes the samples of result to path.
func ExportCSV(path string, result *sim.Result) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return WriteCSV(file, result.Samples)
}
