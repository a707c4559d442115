package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/modes"
	"github.com/pacce/ventilation/internal/quantity"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "pcv" {
		t.Errorf("expected mode pcv, got %s", cfg.Mode)
	}
	if cfg.Dt <= 0 {
		t.Error("dt should be positive")
	}
	if cfg.Duration <= 0 {
		t.Error("duration should be positive")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestGetPreset(t *testing.T) {
	cfg := GetPreset("vcv/adult")
	if cfg == nil {
		t.Fatal("expected preset, got nil")
	}
	if cfg.Settings.Tidal != 0.5 {
		t.Errorf("expected tidal 0.5, got %f", cfg.Settings.Tidal)
	}

	cfg.Settings.Tidal = 0.9
	if Presets["vcv/adult"].Settings.Tidal != 0.5 {
		t.Error("GetPreset returned a shared config")
	}
}

func TestGetPreset_NotFound(t *testing.T) {
	if cfg := GetPreset("pcv/nonexistent"); cfg != nil {
		t.Error("expected nil for nonexistent preset")
	}
}

func TestListPresets(t *testing.T) {
	all := ListPresets("")
	if len(all) != len(Presets) {
		t.Errorf("expected %d presets, got %d", len(Presets), len(all))
	}
	for _, name := range ListPresets("vcv") {
		if Presets[name].Mode != "vcv" {
			t.Errorf("preset %s listed under vcv", name)
		}
	}
	if got := ListPresets("hfov"); len(got) != 0 {
		t.Errorf("expected no presets, got %v", got)
	}
}

func TestPresetsBuild(t *testing.T) {
	for _, name := range ListPresets("") {
		t.Run(name, func(t *testing.T) {
			sc, err := GetPreset(name).Build()
			if err != nil {
				t.Fatalf("build: %v", err)
			}
			if modes.Name(sc.Mode) != Presets[name].Mode {
				t.Errorf("built %s mode", modes.Name(sc.Mode))
			}
			if c := modes.Cycle(sc.Mode); sc.Run.Dt > c.Shortest() {
				t.Errorf("dt %v exceeds shortest interval %v", sc.Run.Dt, c.Shortest())
			}
		})
	}
}

func TestBuildPCV(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Integrator = "trapezoid"
	cfg.Settings.Ceiling = 0.8
	cfg.Gains.Kp = 0.01

	sc, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	pcv, ok := sc.Mode.(*modes.PCV)
	if !ok {
		t.Fatalf("mode is %T", sc.Mode)
	}
	if pcv.Integrator.Name() != "trapezoid" {
		t.Errorf("integrator = %s", pcv.Integrator.Name())
	}
	if !pcv.Ceiling.Equal(quantity.MustFlow(0.8)) || !sc.Ceiling.Equal(pcv.Ceiling) {
		t.Errorf("ceiling = %v", pcv.Ceiling)
	}
	params := pcv.Controller.Params()
	if params["kp"] != 0.01 || params["ki"] != modes.PCVGains.Ki.Float64() {
		t.Errorf("gains = %v", params)
	}
	if sc.Run.Dt != DefaultDt || sc.Run.Duration != DefaultDuration {
		t.Errorf("run config = %+v", sc.Run)
	}
}

func TestBuildFromCompliance(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lung = LungConfig{Resistance: 10, Compliance: 0.05}
	sc, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !sc.Lung.Elastance.Equal(quantity.MustElastance(20)) {
		t.Errorf("elastance = %v", sc.Lung.Elastance)
	}
}

func TestBuildCycleFromRate(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Timing = TimingConfig{Rate: 15, Ratio: "1:3"}
	c, err := cfg.BuildCycle()
	if err != nil {
		t.Fatal(err)
	}
	if c.Timing().Inspiration != time.Second || c.Period() != 4*time.Second {
		t.Errorf("timing = %+v", c.Timing())
	}

	cfg.Timing.Ratio = "0:3"
	if _, err := cfg.BuildCycle(); !errors.Is(err, cycle.ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	cfg.Timing.Ratio = "one to three"
	if _, err := cfg.BuildCycle(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown mode", func(c *Config) { c.Mode = "hfov" }},
		{"peak below peep", func(c *Config) { c.Settings.Peak = 3 }},
		{"zero tidal", func(c *Config) { c.Mode = "vcv"; c.Settings.Tidal = 0 }},
		{"zero dt", func(c *Config) { c.Dt = 0 }},
		{"negative duration", func(c *Config) { c.Duration = -time.Second }},
		{"no elastance", func(c *Config) { c.Lung.Elastance = 0 }},
		{"nan peep", func(c *Config) { c.Settings.PEEP = math.NaN() }},
		{"infinite gain", func(c *Config) { c.Gains.Kp = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("expected ErrInvalid, got %v", err)
			}
			if _, err := cfg.Build(); err == nil {
				t.Error("Build accepted an invalid config")
			}
		})
	}
}

func TestValidateGainResolution(t *testing.T) {
	if !quantity.Fixed {
		t.Skip("float encoding has no gain resolution")
	}
	cfg := DefaultConfig()
	cfg.Gains.Ki = 4e-7
	if err := cfg.Validate(); !errors.Is(err, quantity.ErrDomain) {
		t.Errorf("expected ErrDomain for a gain below resolution, got %v", err)
	}
	if _, err := cfg.Build(); err == nil {
		t.Error("Build accepted a gain that rounds to zero")
	}
}

func TestBuildUnknownIntegrator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Integrator = "simpson"
	if _, err := cfg.Build(); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestSaveLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yaml")
	cfg := GetPreset("vcv/obstructive")
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoadYAMLDurations(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.yml")
	data := `
mode: vcv
dt: 200us
duration: 1m
lung:
  resistance: 12
  compliance: 0.04
settings:
  peep: 6
  tidal: 0.4
timing:
  inspiration: 800ms
  expiration: 2.2s
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Dt != 200*time.Microsecond || cfg.Duration != time.Minute {
		t.Errorf("durations = %v / %v", cfg.Dt, cfg.Duration)
	}
	if cfg.Timing.Expiration != 2200*time.Millisecond {
		t.Errorf("expiration = %v", cfg.Timing.Expiration)
	}
	if cfg.Integrator != DefaultIntegrator {
		t.Errorf("default integrator lost: %q", cfg.Integrator)
	}
	if cfg.Lung.Elastance != 0 || cfg.Lung.Compliance != 0.04 {
		t.Errorf("lung = %+v", cfg.Lung)
	}
}

func TestSaveLoadINI(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.ini")
	cfg := GetPreset("pcv/pauses")
	cfg.Gains = GainsConfig{Kp: 0.004, Ki: 5e-5}
	if err := Save(path, cfg); err != nil {
		t.Fatal(err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if *loaded != *cfg {
		t.Errorf("loaded %+v, want %+v", loaded, cfg)
	}
}

func TestLoadINICompliance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "patient.ini")
	data := `[run]
mode = pcv

[lung]
resistance = 15
compliance = 0.05

[settings]
peep = 8
peak = 25
`
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Lung.Elastance != 0 || cfg.Lung.Compliance != 0.05 {
		t.Errorf("lung = %+v", cfg.Lung)
	}
	sc, err := cfg.Build()
	if err != nil {
		t.Fatal(err)
	}
	if !sc.Lung.Elastance.Equal(quantity.MustElastance(20)) {
		t.Errorf("elastance = %v", sc.Lung.Elastance)
	}
}

func TestLoadUnsupported(t *testing.T) {
	if _, err := Load("run.toml"); err == nil {
		t.Error("expected error for .toml")
	}
}
