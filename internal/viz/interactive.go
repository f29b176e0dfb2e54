package viz

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/predprey/internal/analysis"
	"github.com/san-kum/predprey/internal/config"
	"github.com/san-kum/predprey/internal/dynamo"
	"github.com/san-kum/predprey/internal/experiment"
	"github.com/san-kum/predprey/internal/physics"
)

// slidersPerRow splits the sliders into the prey row and the predator row.
const slidersPerRow = 3

// SimulateFunc recomputes a trajectory from a configuration.
type SimulateFunc func(ctx context.Context, cfg *config.Config) (*dynamo.Result, error)

// App is the slider view: every slider change recomputes the whole
// trajectory before the next frame is drawn.
type App struct {
	cfg      *config.Config
	defaults *config.Config
	sliders  []config.Slider
	focus    int
	simulate SimulateFunc

	result *dynamo.Result
	err    error
	period float64
	runs   int

	showPhase bool
	player    player
	theme     int

	width, height int
}

func NewApp(cfg *config.Config) App {
	return NewAppWith(cfg, experiment.Simulate)
}

// NewAppWith uses simulate instead of the default experiment wiring.
func NewAppWith(cfg *config.Config, simulate SimulateFunc) App {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	defaults := *cfg
	current := defaults

	m := App{
		cfg:      &current,
		defaults: &defaults,
		sliders:  config.Sliders(),
		simulate: simulate,
		width:    100,
		height:   40,
	}
	m.recompute()
	return m
}

func (m App) Init() tea.Cmd { return nil }

func (m App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case TickMsg:
		return m.onTick()
	}
	return m, nil
}

func (m App) handleKey(msg tea.KeyMsg) (App, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.focus = (m.focus + 1) % len(m.sliders)
	case "shift+tab":
		m.focus = (m.focus + len(m.sliders) - 1) % len(m.sliders)
	case "up", "k":
		if m.focus >= slidersPerRow {
			m.focus -= slidersPerRow
		}
	case "down", "j":
		if m.focus+slidersPerRow < len(m.sliders) {
			m.focus += slidersPerRow
		}
	case "left", "h":
		if m.sliders[m.focus].Dec(m.cfg) {
			m.recompute()
		}
	case "right", "l":
		if m.sliders[m.focus].Inc(m.cfg) {
			m.recompute()
		}
	case "r":
		current := *m.defaults
		m.cfg = &current
		m.recompute()
	case "p":
		m.showPhase = !m.showPhase
		if m.showPhase {
			return m, m.player.start()
		}
		m.player.stop()
	case " ":
		if m.showPhase {
			return m, m.player.toggle()
		}
	case "[":
		m.player.scrub(-1, m.samples())
	case "]":
		m.player.scrub(1, m.samples())
	case "t":
		m.theme = (m.theme + 1) % len(Themes)
	}
	return m, nil
}

func (m *App) recompute() {
	m.runs++
	result, err := m.simulate(context.Background(), m.cfg)
	m.err = err
	if err != nil && m.result != nil {
		// keep the last good trajectory on screen
		return
	}
	m.result = result
	m.period = 0
	m.player.reset()
	if m.result != nil && len(m.result.Times) > 1 {
		m.period = analysis.DominantPeriod(m.result.Prey(), m.result.Times[1]-m.result.Times[0])
	}
}

func (m App) samples() int {
	if m.result == nil {
		return 0
	}
	return len(m.result.States)
}

// Config returns the configuration behind the current sliders.
func (m App) Config() *config.Config { return m.cfg }

// Result returns the most recent trajectory.
func (m App) Result() *dynamo.Result { return m.result }

func (m App) View() string {
	theme := Themes[m.theme]
	var b strings.Builder

	b.WriteString("\n  " + GradientText("LOTKA-VOLTERRA", theme.Secondary, theme.Primary) + "\n")
	b.WriteString("  " + Subtle.Render("dx/dt = αx − βxy    dy/dt = δxy − γy") + "\n\n")

	for row := 0; row*slidersPerRow < len(m.sliders); row++ {
		cells := make([]string, 0, slidersPerRow)
		for i := row * slidersPerRow; i < (row+1)*slidersPerRow && i < len(m.sliders); i++ {
			cells = append(cells, m.sliderCell(i, theme))
		}
		b.WriteString("  " + lipgloss.JoinHorizontal(lipgloss.Top, cells...) + "\n")
	}
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString("  " + lipgloss.NewStyle().Foreground(theme.Error).Render("simulation failed: "+m.err.Error()) + "\n")
	}

	if m.result != nil && len(m.result.States) > 1 {
		if m.showPhase {
			b.WriteString(m.phaseView(theme))
		} else {
			b.WriteString(m.chartView())
		}
		b.WriteString("\n" + m.metricsLine() + "\n")
	}

	b.WriteString("\n  " + m.help() + "\n")
	return b.String()
}

func (m App) sliderCell(i int, theme Theme) string {
	s := m.sliders[i]
	v := s.Get(m.cfg)

	label := MetricLabel.Render(s.Label)
	value := MetricValue.Render(fmt.Sprintf("%g", v))
	bar := SliderBar(v, s.Min, s.Max, 16)
	cell := label + "\n" + bar + " " + value

	style := lipgloss.NewStyle().Width(36).Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(theme.Muted)
	if i == m.focus {
		accent := theme.Prey
		if i >= slidersPerRow {
			accent = theme.Predator
		}
		style = style.BorderForeground(accent)
	}
	return style.Render(cell)
}

func (m App) chartWidth() int {
	w := m.width - 16
	if w < 20 {
		w = 20
	}
	if w > 110 {
		w = 110
	}
	return w
}

func (m App) chartView() string {
	w := m.chartWidth()
	h := (m.height - 22) / 2
	if h < 4 {
		h = 4
	}

	prey := asciigraph.Plot(m.result.Prey(),
		asciigraph.Height(h),
		asciigraph.Width(w),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Blue),
		asciigraph.Caption("Prey"))
	predator := asciigraph.Plot(m.result.Predator(),
		asciigraph.Height(h),
		asciigraph.Width(w),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(asciigraph.Red),
		asciigraph.Caption("Predator vs Time"))

	return indent(prey) + "\n\n" + indent(predator) + "\n"
}

func (m App) phaseView(theme Theme) string {
	cw := m.chartWidth() / 2
	ch := m.height - 20
	if ch < 8 {
		ch = 8
	}

	canvas := NewCanvas(cw, ch)
	portrait := analysis.PreyPredatorPortrait(m.result)
	frame := PlotPortrait(canvas, portrait)
	frame.Mark(m.player.index(m.samples()), portrait)

	style := lipgloss.NewStyle().Foreground(theme.Prey)
	status := StatusRunning.Render("PLAYING")
	if !m.player.running {
		status = StatusPaused.Render("PAUSED")
	}
	idx := m.player.index(m.samples())
	x := m.result.States[idx]
	caption := fmt.Sprintf("%s  t=%.2f  prey=%.3g  predator=%.3g", status, m.result.Times[idx], x[0], x[1])

	return indent(style.Render(canvas.String())) + "\n  " + Subtle.Render("predator ↑  prey →") + "\n  " + caption + "\n"
}

func (m App) metricsLine() string {
	lv := physics.NewLotkaVolterra(physics.Params{
		Alpha: m.cfg.Params.Alpha,
		Beta:  m.cfg.Params.Beta,
		Delta: m.cfg.Params.Delta,
		Gamma: m.cfg.Params.Gamma,
	})
	eq := lv.Equilibrium()

	parts := []string{
		metric("prey", fmt.Sprintf("%.3g–%.3g", m.result.Metrics["prey_trough"], m.result.Metrics["prey_peak"])),
		metric("predator", fmt.Sprintf("%.3g–%.3g", m.result.Metrics["predator_trough"], m.result.Metrics["predator_peak"])),
		metric("equilibrium", fmt.Sprintf("(%.3g, %.3g)", eq[0], eq[1])),
	}
	if m.period > 0 {
		parts = append(parts, metric("period", fmt.Sprintf("%.2f", m.period)))
	}
	if d, ok := m.result.Metrics["invariant_drift"]; ok && !math.IsNaN(d) {
		parts = append(parts, metric("drift", fmt.Sprintf("%.1e", d)))
	}
	parts = append(parts, metric("steps", fmt.Sprintf("%d", m.result.StepsTaken)))

	return "  " + strings.Join(parts, "  ")
}

func metric(label, value string) string {
	return MetricLabel.Render(label+" ") + MetricValue.Render(value)
}

type keyHelp struct{ key, desc string }

func (m App) help() string {
	keys := []keyHelp{
		{"tab/↑↓", "focus"},
		{"←→/h l", "adjust"},
		{"r", "reset"},
		{"p", "phase"},
	}
	if m.showPhase {
		keys = append(keys, keyHelp{"space", "play"}, keyHelp{"[ ]", "scrub"})
	}
	keys = append(keys, keyHelp{"t", "theme"}, keyHelp{"q", "quit"})

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = KeyName.Render(k.key) + KeyHint.Render(" "+k.desc)
	}
	return strings.Join(parts, "  ")
}

func indent(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "  " + l
	}
	return strings.Join(lines, "\n")
}

// RunInteractive starts the slider view on the alternate screen.
func RunInteractive(cfg *config.Config, theme string) error {
	_, err := tea.NewProgram(NewApp(cfg).WithTheme(theme), tea.WithAltScreen()).Run()
	return err
}
