package config

import (
	"fmt"

	"gopkg.in/ini.v1"
)

// LoadINI reads the sections [run] [lung] [settings] [timing] [gains] over
// the defaults. Missing keys keep their default value.
func LoadINI(path string) (*Config, error) {
	f, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	cfg := DefaultConfig()

	run := f.Section("run")
	cfg.Mode = run.Key("mode").MustString(cfg.Mode)
	cfg.Integrator = run.Key("integrator").MustString(cfg.Integrator)
	cfg.Dt = run.Key("dt").MustDuration(cfg.Dt)
	cfg.Duration = run.Key("duration").MustDuration(cfg.Duration)

	lung := f.Section("lung")
	onlyCompliance := lung.HasKey("compliance") && !lung.HasKey("elastance")
	cfg.Lung.Resistance = lung.Key("resistance").MustFloat64(cfg.Lung.Resistance)
	cfg.Lung.Elastance = lung.Key("elastance").MustFloat64(cfg.Lung.Elastance)
	cfg.Lung.Compliance = lung.Key("compliance").MustFloat64(cfg.Lung.Compliance)
	if onlyCompliance {
		cfg.Lung.Elastance = 0
	}

	settings := f.Section("settings")
	cfg.Settings.PEEP = settings.Key("peep").MustFloat64(cfg.Settings.PEEP)
	cfg.Settings.Peak = settings.Key("peak").MustFloat64(cfg.Settings.Peak)
	cfg.Settings.Tidal = settings.Key("tidal").MustFloat64(cfg.Settings.Tidal)
	cfg.Settings.Ceiling = settings.Key("ceiling").MustFloat64(cfg.Settings.Ceiling)

	timing := f.Section("timing")
	cfg.Timing.Inspiration = timing.Key("inspiration").MustDuration(cfg.Timing.Inspiration)
	cfg.Timing.InspiratoryPause = timing.Key("inspiratory_pause").MustDuration(cfg.Timing.InspiratoryPause)
	cfg.Timing.Expiration = timing.Key("expiration").MustDuration(cfg.Timing.Expiration)
	cfg.Timing.ExpiratoryPause = timing.Key("expiratory_pause").MustDuration(cfg.Timing.ExpiratoryPause)
	cfg.Timing.Rate = timing.Key("rate").MustFloat64(cfg.Timing.Rate)
	cfg.Timing.Ratio = timing.Key("ratio").MustString(cfg.Timing.Ratio)

	gains := f.Section("gains")
	cfg.Gains.Kp = gains.Key("kp").MustFloat64(cfg.Gains.Kp)
	cfg.Gains.Ki = gains.Key("ki").MustFloat64(cfg.Gains.Ki)
	cfg.Gains.InspKp = gains.Key("insp_kp").MustFloat64(cfg.Gains.InspKp)
	cfg.Gains.InspKi = gains.Key("insp_ki").MustFloat64(cfg.Gains.InspKi)

	return cfg, nil
}

// SaveINI writes cfg in the layout LoadINI reads.
func SaveINI(path string, cfg *Config) error {
	f := ini.Empty()

	sections := []struct {
		name string
		keys [][2]string
	}{
		{"run", [][2]string{
			{"mode", cfg.Mode},
			{"integrator", cfg.Integrator},
			{"dt", cfg.Dt.String()},
			{"duration", cfg.Duration.String()},
		}},
		{"lung", [][2]string{
			{"resistance", fmt.Sprint(cfg.Lung.Resistance)},
			{"elastance", fmt.Sprint(cfg.Lung.Elastance)},
			{"compliance", fmt.Sprint(cfg.Lung.Compliance)},
		}},
		{"settings", [][2]string{
			{"peep", fmt.Sprint(cfg.Settings.PEEP)},
			{"peak", fmt.Sprint(cfg.Settings.Peak)},
			{"tidal", fmt.Sprint(cfg.Settings.Tidal)},
			{"ceiling", fmt.Sprint(cfg.Settings.Ceiling)},
		}},
		{"timing", [][2]string{
			{"inspiration", cfg.Timing.Inspiration.String()},
			{"inspiratory_pause", cfg.Timing.InspiratoryPause.String()},
			{"expiration", cfg.Timing.Expiration.String()},
			{"expiratory_pause", cfg.Timing.ExpiratoryPause.String()},
			{"rate", fmt.Sprint(cfg.Timing.Rate)},
			{"ratio", cfg.Timing.Ratio},
		}},
		{"gains", [][2]string{
			{"kp", fmt.Sprint(cfg.Gains.Kp)},
			{"ki", fmt.Sprint(cfg.Gains.Ki)},
			{"insp_kp", fmt.Sprint(cfg.Gains.InspKp)},
			{"insp_ki", fmt.Sprint(cfg.Gains.InspKi)},
		}},
	}

	for _, s := range sections {
		sec, err := f.NewSection(s.name)
		if err != nil {
			return err
		}
		for _, kv := range s.keys {
			if _, err := sec.NewKey(kv[0], kv[1]); err != nil {
				return err
			}
		}
	}
	return f.SaveTo(path)
}
