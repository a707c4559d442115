package storage

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/packet"
	"github.com/pacce/ventilation/internal/quantity"
	"github.com/pacce/ventilation/internal/sim"
)

const (
	metadataFile = "metadata.json"
	samplesFile  = "samples.csv"
)

// ErrNotFound is returned for an unknown run ID.
var ErrNotFound = errors.New("storage: run not found")

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// RunMetadata describes a stored run.
type RunMetadata struct {
	ID         string             `json:"id"`
	Mode       string             `json:"mode"`
	Preset     string             `json:"preset,omitempty"`
	Timestamp  time.Time          `json:"timestamp"`
	Dt         time.Duration      `json:"dt_ns"`
	Duration   time.Duration      `json:"duration_ns"`
	Integrator string             `json:"integrator"`
	Encoding   string             `json:"encoding"`
	Resistance float64            `json:"resistance"`
	Elastance  float64            `json:"elastance"`
	PEEP       float64            `json:"peep"`
	Peak       float64            `json:"peak,omitempty"`
	Tidal      float64            `json:"tidal,omitempty"`
	Timing     cycle.Timing       `json:"timing"`
	Breaths    int                `json:"breaths"`
	Samples    int                `json:"samples"`
	Metrics    map[string]float64 `json:"metrics"`
}

// NewMetadata fills the fields derived from a result. The caller sets
// Integrator, lung and Preset.
func NewMetadata(result *sim.Result) RunMetadata {
	return RunMetadata{
		Mode:     result.Mode,
		Dt:       result.Dt,
		Duration: result.Elapsed(result.StepsTaken),
		Encoding: encoding(),
		PEEP:     result.Settings.PEEP.Float64(),
		Peak:     result.Settings.Peak.Float64(),
		Tidal:    result.Settings.Tidal.Float64(),
		Timing:   result.Settings.Timing,
		Breaths:  result.Breaths,
		Samples:  len(result.Samples),
		Metrics:  result.Metrics,
	}
}

// encoding names the quantity representation this binary was built with.
func encoding() string {
	if quantity.Fixed {
		return "fixed"
	}
	return "float"
}

// Save writes meta and every sample of result under a new run directory and
// returns its ID.
func (s *Store) Save(meta RunMetadata, result *sim.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("%s_%s", meta.Mode, now.Format("20060102T150405.000000000"))
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta.ID = runID
	meta.Timestamp = now

	metaFile, err := os.Create(filepath.Join(runDir, metadataFile))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(runDir, samplesFile))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	if err := WriteCSV(csvFile, result.Samples); err != nil {
		return "", err
	}

	log.WithFields(log.Fields{"id": runID, "samples": len(result.Samples)}).Info("run saved")
	return runID, nil
}

// WriteCSV writes samples with a header row: time, phase, then the packet.
func WriteCSV(w io.Writer, samples []sim.Sample) error {
	cw := csv.NewWriter(w)

	header := append([]string{"time_s", "phase"}, packet.Header...)
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, s := range samples {
		row := append([]string{
			strconv.FormatFloat(s.Time.Seconds(), 'f', 6, 64),
			strconv.Itoa(int(s.Phase)),
		}, s.Packet.Record()...)
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses what WriteCSV wrote.
func ReadCSV(r io.Reader) ([]sim.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2 + len(packet.Header)

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []sim.Sample{}, nil
	}

	samples := make([]sim.Sample, 0, len(records)-1)
	for i, record := range records[1:] {
		secs, err := strconv.ParseFloat(record[0], 64)
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", i+1, err)
		}
		phase, err := strconv.Atoi(record[1])
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", i+1, err)
		}
		p, err := packet.Parse(record[2:])
		if err != nil {
			return nil, fmt.Errorf("storage: row %d: %w", i+1, err)
		}
		samples = append(samples, sim.Sample{
			Time:   time.Duration(secs*float64(time.Second) + 0.5),
			Phase:  cycle.Phase(phase),
			Packet: p,
		})
	}
	return samples, nil
}

// List returns every readable run, oldest first.
func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		meta, err := s.Load(entry.Name())
		if err != nil {
			log.WithError(err).WithField("dir", entry.Name()).Debug("skipping run")
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadSamples(runID string) ([]sim.Sample, error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, samplesFile))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, runID)
		}
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}
