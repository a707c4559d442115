package experiment

import (
	"fmt"
	"sort"

	"github.com/pacce/ventilation/internal/config"
	"github.com/pacce/ventilation/internal/integrators"
)

// ModeInfo describes a ventilation mode for listings.
type ModeInfo struct {
	Name        string
	Description string
	// Setpoints are the settings the mode reads.
	Setpoints []string
}

type Registry struct {
	modes map[string]ModeInfo
}

func NewRegistry() *Registry {
	r := &Registry{modes: make(map[string]ModeInfo)}

	r.modes["pcv"] = ModeInfo{
		Name:        "pcv",
		Description: "pressure control: PI loop on airway pressure toward peak, then PEEP",
		Setpoints:   []string{"peep", "peak", "timing"},
	}
	r.modes["vcv"] = ModeInfo{
		Name:        "vcv",
		Description: "volume control: PI loop on delivered volume, then on pressure toward PEEP",
		Setpoints:   []string{"peep", "tidal", "timing"},
	}

	return r
}

func (r *Registry) GetMode(name string) (ModeInfo, error) {
	info, ok := r.modes[name]
	if !ok {
		return ModeInfo{}, fmt.Errorf("unknown mode: %s", name)
	}
	return info, nil
}

func (r *Registry) ListModes() []ModeInfo {
	out := make([]ModeInfo, 0, len(r.modes))
	for _, info := range r.modes {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func (r *Registry) ListIntegrators() []string {
	return integrators.Names()
}

// GetPreset returns a copy of a named preset.
func (r *Registry) GetPreset(name string) (*config.Config, error) {
	cfg := config.GetPreset(name)
	if cfg == nil {
		return nil, fmt.Errorf("unknown preset: %s", name)
	}
	return cfg, nil
}

// ListPresets lists presets of mode, or all presets when mode is empty.
func (r *Registry) ListPresets(mode string) []string {
	return config.ListPresets(mode)
}

// Resolve returns the configuration named by preset, or the defaults when
// preset is empty, with the mode forced when mode is non-empty.
func (r *Registry) Resolve(preset, mode string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		p, err := r.GetPreset(preset)
		if err != nil {
			return nil, err
		}
		cfg = p
	}
	if mode != "" {
		if _, err := r.GetMode(mode); err != nil {
			return nil, err
		}
		cfg.Mode = mode
	}
	return cfg, nil
}
