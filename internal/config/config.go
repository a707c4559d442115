package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pacce/ventilation/internal/quantity"
)

const (
	DefaultDt         = 100 * time.Microsecond
	DefaultDuration   = 50 * time.Second
	DefaultMode       = "pcv"
	DefaultIntegrator = "rectangle"
	DefaultResistance = 50.0
	DefaultElastance  = 33.3
	DefaultPEEP       = 5.0
	DefaultPeak       = 20.0
	DefaultTidal      = 0.5
)

// ErrInvalid is matched by every validation failure.
var ErrInvalid = errors.New("config: invalid configuration")

type Config struct {
	Mode       string         `yaml:"mode"`
	Integrator string         `yaml:"integrator"`
	Dt         time.Duration  `yaml:"dt"`
	Duration   time.Duration  `yaml:"duration"`
	Lung       LungConfig     `yaml:"lung"`
	Settings   SettingsConfig `yaml:"settings"`
	Timing     TimingConfig   `yaml:"timing"`
	Gains      GainsConfig    `yaml:"gains,omitempty"`
}

// LungConfig takes either an elastance or a compliance. Elastance wins when
// both are set.
type LungConfig struct {
	Resistance float64 `yaml:"resistance"`
	Elastance  float64 `yaml:"elastance"`
	Compliance float64 `yaml:"compliance,omitempty"`
}

// SettingsConfig holds the clinician setpoints. Peak is read by PCV only,
// Tidal by VCV only. A zero Ceiling keeps the mode default.
type SettingsConfig struct {
	PEEP    float64 `yaml:"peep"`
	Peak    float64 `yaml:"peak"`
	Tidal   float64 `yaml:"tidal"`
	Ceiling float64 `yaml:"ceiling,omitempty"`
}

// TimingConfig gives the phase durations explicitly, or a rate in breaths
// per minute with an I:E ratio such as "1:2". A non-zero Rate takes
// precedence.
type TimingConfig struct {
	Inspiration      time.Duration `yaml:"inspiration"`
	InspiratoryPause time.Duration `yaml:"inspiratory_pause,omitempty"`
	Expiration       time.Duration `yaml:"expiration"`
	ExpiratoryPause  time.Duration `yaml:"expiratory_pause,omitempty"`
	Rate             float64       `yaml:"rate,omitempty"`
	Ratio            string        `yaml:"ratio,omitempty"`
}

// GainsConfig overrides controller gains. Zero keeps the default. Kp and Ki
// tune the pressure controller of either mode; InspKp and InspKi tune the
// VCV volume controller.
type GainsConfig struct {
	Kp     float64 `yaml:"kp,omitempty"`
	Ki     float64 `yaml:"ki,omitempty"`
	InspKp float64 `yaml:"insp_kp,omitempty"`
	InspKi float64 `yaml:"insp_ki,omitempty"`
}

func DefaultConfig() *Config {
	return &Config{
		Mode:       DefaultMode,
		Integrator: DefaultIntegrator,
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		Lung: LungConfig{
			Resistance: DefaultResistance,
			Elastance:  DefaultElastance,
		},
		Settings: SettingsConfig{
			PEEP:  DefaultPEEP,
			Peak:  DefaultPeak,
			Tidal: DefaultTidal,
		},
		Timing: TimingConfig{
			Inspiration: time.Second,
			Expiration:  3 * time.Second,
		},
	}
}

// Load reads a YAML or INI file, chosen by extension, over the defaults.
func Load(path string) (*Config, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ini":
		return LoadINI(path)
	case ".yaml", ".yml", "":
		return LoadYAML(path)
	default:
		return nil, fmt.Errorf("config: unsupported file type %q", filepath.Ext(path))
	}
}

func LoadYAML(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}

	var keys struct {
		Lung map[string]any `yaml:"lung"`
	}
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	_, hasE := keys.Lung["elastance"]
	_, hasC := keys.Lung["compliance"]
	if hasC && !hasE {
		cfg.Lung.Elastance = 0
	}
	return cfg, nil
}

// Save writes cfg as YAML, or as INI when path ends in .ini.
func Save(path string, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".ini") {
		return SaveINI(path, cfg)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate checks every field that Build would reject, without building.
func (c *Config) Validate() error {
	var errs []error
	for name, v := range c.numbers() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Errorf("%s must be finite, got %v", name, v))
		}
	}
	switch c.Mode {
	case "pcv":
		if c.Settings.Peak <= c.Settings.PEEP {
			errs = append(errs, fmt.Errorf("peak %.1f must exceed peep %.1f", c.Settings.Peak, c.Settings.PEEP))
		}
	case "vcv":
		if c.Settings.Tidal <= 0 {
			errs = append(errs, fmt.Errorf("tidal volume must be positive, got %g", c.Settings.Tidal))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown mode %q", c.Mode))
	}
	if c.Dt <= 0 {
		errs = append(errs, fmt.Errorf("dt must be positive, got %v", c.Dt))
	}
	if c.Duration <= 0 {
		errs = append(errs, fmt.Errorf("duration must be positive, got %v", c.Duration))
	}
	if c.Lung.Resistance < 0 {
		errs = append(errs, fmt.Errorf("resistance must not be negative, got %g", c.Lung.Resistance))
	}
	if c.Lung.Elastance <= 0 && c.Lung.Compliance <= 0 {
		errs = append(errs, errors.New("lung needs a positive elastance or compliance"))
	}
	if c.Settings.PEEP < 0 {
		errs = append(errs, fmt.Errorf("peep must not be negative, got %g", c.Settings.PEEP))
	}
	if c.Settings.Ceiling < 0 {
		errs = append(errs, fmt.Errorf("ceiling must not be negative, got %g", c.Settings.Ceiling))
	}
	for name, v := range c.gainValues() {
		if _, err := quantity.NewGain(v); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
}

func (c *Config) gainValues() map[string]float64 {
	return map[string]float64{
		"kp":      c.Gains.Kp,
		"ki":      c.Gains.Ki,
		"insp_kp": c.Gains.InspKp,
		"insp_ki": c.Gains.InspKi,
	}
}

func (c *Config) numbers() map[string]float64 {
	return map[string]float64{
		"resistance": c.Lung.Resistance,
		"elastance":  c.Lung.Elastance,
		"compliance": c.Lung.Compliance,
		"peep":       c.Settings.PEEP,
		"peak":       c.Settings.Peak,
		"tidal":      c.Settings.Tidal,
		"ceiling":    c.Settings.Ceiling,
		"rate":       c.Timing.Rate,
		"kp":         c.Gains.Kp,
		"ki":         c.Gains.Ki,
		"insp_kp":    c.Gains.InspKp,
		"insp_ki":    c.Gains.InspKi,
	}
}
