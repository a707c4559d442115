package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/pacce/ventilation/internal/analysis"
	"github.com/pacce/ventilation/internal/config"
	"github.com/pacce/ventilation/internal/cycle"
	"github.com/pacce/ventilation/internal/lung"
	"github.com/pacce/ventilation/internal/modes"
	"github.com/pacce/ventilation/internal/quantity"
)

const (
	width           = 60
	height          = 18
	historyCapacity = 600
	frameRate       = 30
	// history spans historyCapacity * historyResolution of simulated time
	historyResolution = 20 * time.Millisecond
)

type TickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// setting is one adjustable setpoint.
type setting struct {
	name string
	unit string
	step float64
	get  func(modes.Settings) float64
	set  func(modes.Mode, float64) error
}

var (
	peepSetting = setting{
		name: "PEEP", unit: "cmH2O", step: 1,
		get: func(s modes.Settings) float64 { return s.PEEP.Float64() },
		set: func(m modes.Mode, v float64) error {
			if v < 0 {
				return fmt.Errorf("peep must not be negative")
			}
			if pcv, ok := m.(*modes.PCV); ok && v >= pcv.Peak().Float64() {
				return fmt.Errorf("peep must stay below peak")
			}
			p, err := quantity.NewPressure(v)
			if err != nil {
				return err
			}
			modes.SetPEEP(m, p)
			return nil
		},
	}
	peakSetting = setting{
		name: "Peak", unit: "cmH2O", step: 1,
		get: func(s modes.Settings) float64 { return s.Peak.Float64() },
		set: func(m modes.Mode, v float64) error {
			if v <= modes.Snapshot(m).PEEP.Float64() {
				return fmt.Errorf("peak must exceed peep")
			}
			p, err := quantity.NewPressure(v)
			if err != nil {
				return err
			}
			modes.SetPeak(m, p)
			return nil
		},
	}
	tidalSetting = setting{
		name: "Tidal", unit: "L", step: 0.05,
		get: func(s modes.Settings) float64 { return s.Tidal.Float64() },
		set: func(m modes.Mode, v float64) error {
			if v < 0.05 {
				return fmt.Errorf("tidal volume below 50 mL")
			}
			vol, err := quantity.NewVolume(v)
			if err != nil {
				return err
			}
			modes.SetTidal(m, vol)
			return nil
		},
	}
)

func settingsFor(m modes.Mode) []setting {
	if _, ok := m.(*modes.VCV); ok {
		return []setting{peepSetting, tidalSetting}
	}
	return []setting{peepSetting, peakSetting}
}

// Measured holds the values of the last complete breath.
type Measured struct {
	Breaths      int
	PeakPressure float64
	EndPressure  float64
	Tidal        float64
}

// Model is the live monitor. It owns its mode and steps it on every tick.
type Model struct {
	cfg   *config.Config
	title string

	mode         modes.Mode
	lung         lung.Lung
	dt           time.Duration
	stepsPerTick int
	decimate     int
	steps        int
	t            time.Duration

	pressure, flow, volume []float64
	peaks                  []float64

	prevPhase    cycle.Phase
	prevVolume   float64
	prevPressure float64
	breathStart  float64
	breathPeak   float64
	breathVPeak  float64
	loop         []analysis.Point
	lastLoop     []analysis.Point
	measured     Measured

	settings []setting
	selected int
	status   string

	canvas   *Canvas
	running  bool
	showLoop bool
	showHelp bool
	width    int
}

// NewModel builds the scenario of cfg. speed scales simulated time against
// the wall clock.
func NewModel(cfg *config.Config, title string, speed float64) (Model, error) {
	if speed <= 0 {
		speed = 1
	}
	m := Model{cfg: cfg, title: title, canvas: NewCanvas(width, height), width: width}
	if err := m.reset(); err != nil {
		return Model{}, err
	}
	m.stepsPerTick = max(1, int(float64(time.Second/frameRate)*speed/float64(m.dt)))
	m.decimate = max(1, int(historyResolution/m.dt))
	return m, nil
}

// reset rebuilds the mode from the configuration.
func (m *Model) reset() error {
	sc, err := m.cfg.Build()
	if err != nil {
		return err
	}
	m.mode, m.lung, m.dt = sc.Mode, sc.Lung, sc.Run.Dt
	m.settings = settingsFor(sc.Mode)
	m.selected = 0
	m.steps, m.t = 0, 0
	m.pressure = make([]float64, 0, historyCapacity)
	m.flow = make([]float64, 0, historyCapacity)
	m.volume = make([]float64, 0, historyCapacity)
	m.peaks = m.peaks[:0]
	m.loop, m.lastLoop = nil, nil
	m.measured = Measured{}
	m.prevPhase = cycle.Phase(-1)
	m.prevVolume, m.prevPressure = 0, 0
	m.running = true
	m.status = ""
	return nil
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// Update handles input events and steps the simulation.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			if err := m.reset(); err != nil {
				m.status = err.Error()
			}
		case "tab":
			m.selected = (m.selected + 1) % len(m.settings)
		case "up", "k":
			m.adjust(1)
		case "down", "j":
			m.adjust(-1)
		case "l":
			m.showLoop = !m.showLoop
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case TickMsg:
		if m.running {
			m.advance(m.stepsPerTick)
		}
		return m, tick()
	}
	return m, nil
}

// adjust moves the selected setting by one step in direction dir.
func (m *Model) adjust(dir int) {
	s := m.settings[m.selected]
	v := s.get(modes.Snapshot(m.mode)) + float64(dir)*s.step
	if err := s.set(m.mode, v); err != nil {
		m.status = err.Error()
		return
	}
	m.status = fmt.Sprintf("%s set to %.2f %s", s.name, v, s.unit)
}

// advance steps the mode n times and records what the monitor shows.
func (m *Model) advance(n int) {
	for i := 0; i < n; i++ {
		p := modes.Step(m.mode, m.lung, m.dt)
		phase := modes.Phase(m.mode)
		pressure, volume := p.Pressure.Float64(), p.Volume.Float64()

		if phase == cycle.Inspiration && m.prevPhase != cycle.Inspiration {
			m.closeBreath()
			m.breathStart = m.prevVolume
			m.breathPeak, m.breathVPeak = pressure, volume
		}
		m.prevPhase = phase
		m.breathPeak = max(m.breathPeak, pressure)
		m.breathVPeak = max(m.breathVPeak, volume)
		m.prevVolume, m.prevPressure = volume, pressure

		if m.steps%m.decimate == 0 {
			m.pressure = push(m.pressure, pressure)
			m.flow = push(m.flow, p.Flow.Float64())
			m.volume = push(m.volume, volume)
			m.loop = append(m.loop, analysis.Point{Pressure: pressure, Volume: volume})
		}
		m.steps++
		m.t += m.dt
	}
}

func (m *Model) closeBreath() {
	if m.prevPhase < 0 {
		return
	}
	m.measured.Breaths++
	m.measured.PeakPressure = m.breathPeak
	m.measured.Tidal = m.breathVPeak - m.breathStart
	m.measured.EndPressure = m.prevPressure
	m.peaks = push(m.peaks, m.breathPeak)
	m.lastLoop, m.loop = m.loop, nil
}

func push(xs []float64, v float64) []float64 {
	xs = append(xs, v)
	if len(xs) > historyCapacity {
		xs = xs[1:]
	}
	return xs
}

// Measured returns the values of the last complete breath, zero until one
// has closed.
func (m Model) Measured() Measured { return m.measured }

// Alarms lists the active alarm conditions of the last complete breath.
func (m Model) Alarms() []string {
	if m.measured.Breaths == 0 {
		return nil
	}
	s := modes.Snapshot(m.mode)
	var out []string
	limit := 40.0
	if s.Peak.Float64() > 0 {
		limit = s.Peak.Float64() + 5
	}
	if m.measured.PeakPressure > limit {
		out = append(out, fmt.Sprintf("HIGH PRESSURE %.1f > %.1f", m.measured.PeakPressure, limit))
	}
	if peep := s.PEEP.Float64(); m.measured.EndPressure < peep-2 {
		out = append(out, fmt.Sprintf("LOW PEEP %.1f < %.1f", m.measured.EndPressure, peep-2))
	}
	if tidal := s.Tidal.Float64(); tidal > 0 && m.measured.Tidal < 0.8*tidal {
		out = append(out, fmt.Sprintf("LOW TIDAL %.0f mL", m.measured.Tidal*1000))
	}
	return out
}

func (m Model) plot(data []float64, caption string, c lipgloss.Color) string {
	if len(data) < 2 {
		return ""
	}
	chart := asciigraph.Plot(data,
		asciigraph.Height(5),
		asciigraph.Width(width),
		asciigraph.Caption(caption))
	return traceStyle(c).Render(chart)
}

// View renders the monitor.
func (m Model) View() string {
	var left string
	if m.showLoop {
		loop := m.lastLoop
		if len(loop) < 2 {
			loop = m.loop
		}
		m.canvas.DrawLoop(loop)
		left = canvasStyle.Render("pressure / volume loop\n\n" + m.canvas.String())
	} else {
		left = lipgloss.JoinVertical(lipgloss.Left,
			m.plot(m.pressure, "pressure (cmH2O)", CurrentTheme.Pressure),
			m.plot(m.flow, "flow (L/s)", CurrentTheme.Flow),
			m.plot(m.volume, "volume (L)", CurrentTheme.Volume),
		)
	}

	snap := modes.Snapshot(m.mode)
	c := modes.Cycle(m.mode)

	var s strings.Builder
	s.WriteString(headerStyle.Render(strings.ToUpper(modes.Name(m.mode))+"  "+m.title) + "\n")
	if m.running {
		s.WriteString(StatusRunning.Render("VENTILATING") + "\n\n")
	} else {
		s.WriteString(StatusPaused.Render("PAUSED") + "\n\n")
	}

	s.WriteString(labelStyle.Render("Time") + valueStyle.Render(fmt.Sprintf("%.1fs", m.t.Seconds())) + "\n")
	s.WriteString(labelStyle.Render("Phase") + valueStyle.Render(modes.Phase(m.mode).String()) + "\n")
	progress := float64(c.Elapsed()) / float64(c.Period())
	s.WriteString(labelStyle.Render("Breath") + valueStyle.Render(ProgressBar(progress, 20)) + "\n")
	s.WriteString(labelStyle.Render("Rate") + valueStyle.Render(fmt.Sprintf("%.1f bpm", c.Timing().Rate())) + "\n")
	s.WriteString(labelStyle.Render("Lung") + valueStyle.Render(m.lung.String()) + "\n")

	s.WriteString("\nSETTINGS\n")
	for i, st := range m.settings {
		line := fmt.Sprintf("%-6s %7.2f %s", st.name, st.get(snap), st.unit)
		if i == m.selected {
			s.WriteString(activeParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + labelStyle.Render(line) + "\n")
		}
	}

	s.WriteString("\nMEASURED\n")
	s.WriteString(labelStyle.Render("Breaths") + valueStyle.Render(fmt.Sprintf("%d", m.measured.Breaths)) + "\n")
	s.WriteString(labelStyle.Render("Ppeak") + valueStyle.Render(fmt.Sprintf("%.1f cmH2O", m.measured.PeakPressure)) + "\n")
	s.WriteString(labelStyle.Render("PEEP") + valueStyle.Render(fmt.Sprintf("%.1f cmH2O", m.measured.EndPressure)) + "\n")
	s.WriteString(labelStyle.Render("Vt") + valueStyle.Render(fmt.Sprintf("%.0f mL", m.measured.Tidal*1000)) + "\n")
	s.WriteString(labelStyle.Render("Ppeak trend") + valueStyle.Render(SparklineChart(m.peaks, 20)) + "\n")

	for _, a := range m.Alarms() {
		s.WriteString("\n" + alarmStyle().Render("! "+a))
	}
	if m.status != "" {
		s.WriteString("\n" + labelStyle.Width(0).Render(m.status))
	}
	s.WriteString(helpStyle.Render("\n─────────────────────\nSP:Pause R:Restart Q:Quit\nTab:Select ↑↓:Adjust L:Loop\nT:Theme ?:Help"))

	mainView := lipgloss.JoinHorizontal(lipgloss.Top, left, statsStyle.Render(s.String()))
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║           KEYBOARD SHORTCUTS         ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume             ║
║  R        - Restart from settings    ║
║  Q        - Quit                     ║
║  Tab      - Select setting           ║
║  Up/K     - Raise setting            ║
║  Down/J   - Lower setting            ║
║  L        - Toggle P/V loop          ║
║  T        - Cycle themes             ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// Run starts the monitor full screen.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
