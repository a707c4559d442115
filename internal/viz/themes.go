package viz

import "github.com/charmbracelet/lipgloss"

// Theme defines the trace and text colors of the monitor.
type Theme struct {
	Name     string
	Pressure lipgloss.Color
	Flow     lipgloss.Color
	Volume   lipgloss.Color
	Accent   lipgloss.Color
	Text     lipgloss.Color
	Muted    lipgloss.Color
	Alarm    lipgloss.Color
}

// Available themes
var (
	ThemeMonitor = Theme{
		Name:     "monitor",
		Pressure: lipgloss.Color("#ffcc00"),
		Flow:     lipgloss.Color("#00ff88"),
		Volume:   lipgloss.Color("#00ccff"),
		Accent:   lipgloss.Color("#ff00ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#666688"),
		Alarm:    lipgloss.Color("#ff4444"),
	}

	ThemeRetroGreen = Theme{
		Name:     "retro",
		Pressure: lipgloss.Color("#00ff00"), // Green phosphor
		Flow:     lipgloss.Color("#00cc00"),
		Volume:   lipgloss.Color("#88ff88"),
		Accent:   lipgloss.Color("#88ff88"),
		Text:     lipgloss.Color("#00ff00"),
		Muted:    lipgloss.Color("#005500"),
		Alarm:    lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:     "minimal",
		Pressure: lipgloss.Color("#ffffff"),
		Flow:     lipgloss.Color("#cccccc"),
		Volume:   lipgloss.Color("#999999"),
		Accent:   lipgloss.Color("#0088ff"),
		Text:     lipgloss.Color("#ffffff"),
		Muted:    lipgloss.Color("#888888"),
		Alarm:    lipgloss.Color("#ff0000"),
	}

	// Default theme
	CurrentTheme = ThemeMonitor

	// All available themes
	Themes = []Theme{
		ThemeMonitor,
		ThemeRetroGreen,
		ThemeMinimal,
	}
)

// GetTheme returns a theme by name
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return ThemeMonitor
}

// SetTheme changes the current theme
func SetTheme(name string) {
	CurrentTheme = GetTheme(name)
}

// NextTheme switches to the theme after the current one.
func NextTheme() {
	for i, t := range Themes {
		if t.Name == CurrentTheme.Name {
			CurrentTheme = Themes[(i+1)%len(Themes)]
			return
		}
	}
	CurrentTheme = ThemeMonitor
}

// ThemeNames returns list of available theme names
func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
