package config

import (
	"sort"
	"time"
)

// Presets are named starting points, keyed "<mode>/<patient>".
var Presets = map[string]*Config{
	"pcv/adult": {
		Mode: "pcv", Integrator: "rectangle", Dt: DefaultDt, Duration: 50 * time.Second,
		Lung:     LungConfig{Resistance: 50, Elastance: 33.3},
		Settings: SettingsConfig{PEEP: 5, Peak: 20},
		Timing:   TimingConfig{Inspiration: time.Second, Expiration: 3 * time.Second},
	},
	"pcv/pauses": {
		Mode: "pcv", Integrator: "rectangle", Dt: DefaultDt, Duration: 50 * time.Second,
		Lung:     LungConfig{Resistance: 50, Elastance: 33.3},
		Settings: SettingsConfig{PEEP: 5, Peak: 20},
		Timing: TimingConfig{
			Inspiration: time.Second, InspiratoryPause: 500 * time.Millisecond,
			Expiration: 3 * time.Second, ExpiratoryPause: 500 * time.Millisecond,
		},
	},
	"pcv/stiff": {
		Mode: "pcv", Integrator: "rectangle", Dt: DefaultDt, Duration: 30 * time.Second,
		Lung:     LungConfig{Resistance: 20, Compliance: 0.02},
		Settings: SettingsConfig{PEEP: 10, Peak: 28},
		Timing:   TimingConfig{Rate: 20, Ratio: "1:2"},
	},
	"vcv/adult": {
		Mode: "vcv", Integrator: "rectangle", Dt: DefaultDt, Duration: 50 * time.Second,
		Lung:     LungConfig{Resistance: 50, Elastance: 33.3},
		Settings: SettingsConfig{PEEP: 10, Tidal: 0.5},
		Timing:   TimingConfig{Inspiration: 600 * time.Millisecond, Expiration: 3200 * time.Millisecond},
	},
	"vcv/obstructive": {
		Mode: "vcv", Integrator: "trapezoid", Dt: DefaultDt, Duration: 50 * time.Second,
		Lung:     LungConfig{Resistance: 80, Elastance: 30},
		Settings: SettingsConfig{PEEP: 8, Tidal: 0.45},
		Timing:   TimingConfig{Rate: 12, Ratio: "1:4"},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	return &cfg
}

// ListPresets returns every preset name, optionally restricted to one mode.
func ListPresets(mode string) []string {
	names := make([]string, 0, len(Presets))
	for name, p := range Presets {
		if mode == "" || p.Mode == mode {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
