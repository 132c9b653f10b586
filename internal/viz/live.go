package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/clothsim/internal/cloth"
	"github.com/san-kum/clothsim/internal/metrics"
)

const (
	canvasCols      = 80
	canvasRows      = 24
	canvasPadX      = 2
	canvasPadY      = 1
	historyCapacity = 300
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(canvasPadY, canvasPadX)
	statsStyle  = lipgloss.NewStyle().Border(lipgloss.NormalBorder(), false, false, false, true).Padding(1, 2).Width(45)
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(12)
	graphStyle  = lipgloss.NewStyle().Padding(1, 0)
)

type TickMsg time.Time

// WorldFactory builds the world shown by the live view. It is called again
// on every reset.
type WorldFactory func() (*cloth.World, error)

type Options struct {
	Title  string
	Bounds cloth.Bounds
	Forces []mgl64.Vec2
	FPS    int
	Theme  string
}

// Model hosts a cloth world in the terminal. Mouse presses over the canvas
// become pointer events for the next tick.
type Model struct {
	factory        WorldFactory
	world          *cloth.World
	opts           Options
	view           Viewport
	canvas         *Canvas
	theme          Theme
	pending        []cloth.PointerEvent
	running        bool
	torn           int
	stretch        *metrics.Stretch
	energy         *metrics.KineticEnergy
	stretchHistory []float64
	energyHistory  []float64
	err            error
}

func NewModel(factory WorldFactory, opts Options) (Model, error) {
	w, err := factory()
	if err != nil {
		return Model{}, err
	}
	if err := opts.Bounds.Validate(); err != nil {
		return Model{}, err
	}
	if opts.FPS <= 0 {
		opts.FPS = 60
	}

	return Model{
		factory:        factory,
		world:          w,
		opts:           opts,
		view:           NewViewport(canvasCols, canvasRows, opts.Bounds),
		canvas:         NewCanvas(canvasCols, canvasRows),
		theme:          GetTheme(opts.Theme),
		running:        true,
		stretch:        metrics.NewStretch(),
		energy:         metrics.NewKineticEnergy(),
		stretchHistory: make([]float64, 0, historyCapacity),
		energyHistory:  make([]float64, 0, historyCapacity),
	}, nil
}

// ClickRadius is how far a click on the live canvas can land from the
// point aimed at, in world units, for a world of the given bounds.
func ClickRadius(b cloth.Bounds) float64 {
	return NewViewport(canvasCols, canvasRows, b).CellRadius()
}

// Viewport is the mapping used for drawing and for mouse input.
func (m Model) Viewport() Viewport { return m.view }

func (m Model) World() *cloth.World { return m.world }

func (m Model) Init() tea.Cmd {
	return m.nextTick()
}

func (m Model) nextTick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.opts.FPS), func(t time.Time) tea.Msg { return TickMsg(t) })
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
			m.reset()
		case "t":
			m.theme = NextTheme(m.theme.Name)
		}
	case tea.MouseMsg:
		if ev, ok := m.pointerEvent(msg); ok {
			m.pending = append(m.pending, ev)
		}
	case TickMsg:
		if m.running {
			m.step()
		}
		return m, m.nextTick()
	}
	return m, nil
}

// pointerEvent converts a press over the canvas into world coordinates.
// Motion and release are ignored, so a held button tears once.
func (m Model) pointerEvent(msg tea.MouseMsg) (cloth.PointerEvent, bool) {
	if msg.Action != tea.MouseActionPress {
		return cloth.PointerEvent{}, false
	}

	var button cloth.Button
	switch msg.Button {
	case tea.MouseButtonLeft:
		button = cloth.ButtonPrimary
	case tea.MouseButtonRight:
		button = cloth.ButtonSecondary
	case tea.MouseButtonMiddle:
		button = cloth.ButtonMiddle
	default:
		return cloth.PointerEvent{}, false
	}

	col, row := msg.X-canvasPadX, msg.Y-canvasPadY
	if !m.view.Contains(col, row) {
		return cloth.PointerEvent{}, false
	}

	x, y := m.view.CellToWorld(col, row)
	return cloth.PointerEvent{Button: button, X: x, Y: y}, true
}

// step advances the world one tick and drains the queued pointer events.
func (m *Model) step() {
	events := m.pending
	m.pending = nil

	torn := m.world.Tick(cloth.TickInput{
		Forces: m.opts.Forces,
		Bounds: m.opts.Bounds,
		Events: events,
	})
	m.torn += len(torn)

	tick := m.world.Ticks()
	m.stretch.Observe(m.world, tick)
	m.energy.Observe(m.world, tick)
	m.stretchHistory = appendCapped(m.stretchHistory, m.stretch.Current()*100)
	m.energyHistory = appendCapped(m.energyHistory, m.energy.Current())
}

func appendCapped(values []float64, v float64) []float64 {
	values = append(values, v)
	if len(values) > historyCapacity {
		values = values[1:]
	}
	return values
}

// reset rebuilds the world and clears all history.
func (m *Model) reset() {
	w, err := m.factory()
	if err != nil {
		m.err = err
		return
	}
	m.world = w
	m.err = nil
	m.pending = nil
	m.torn = 0
	m.stretch.Reset()
	m.energy.Reset()
	m.stretchHistory = m.stretchHistory[:0]
	m.energyHistory = m.energyHistory[:0]
}

// View renders the canvas beside the status panel.
func (m Model) View() string {
	m.canvas.Clear()
	m.canvas.DrawCloth(m.view, m.world.Segments())
	m.canvas.DrawAnchors(m.view, m.world.Particles())
	canvasView := canvasStyle.Render(m.canvas.Render(m.theme.linkStyle(), m.theme.anchorStyle()))

	heading := lipgloss.NewStyle().Foreground(m.theme.Heading).Bold(true).MarginBottom(1)
	value := lipgloss.NewStyle().Foreground(m.theme.Text)
	muted := lipgloss.NewStyle().Foreground(m.theme.Muted)

	var s strings.Builder
	s.WriteString(heading.Render(strings.ToUpper(m.opts.Title)) + "\n")

	status := lipgloss.NewStyle().Bold(true).Foreground(m.theme.Running).Render("RUNNING")
	if !m.running {
		status = lipgloss.NewStyle().Bold(true).Foreground(m.theme.Paused).Render("PAUSED")
	}
	s.WriteString(status + "\n")

	if len(m.stretchHistory) > 1 {
		chart := asciigraph.Plot(m.stretchHistory, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Stretch %"))
		s.WriteString(graphStyle.Foreground(m.theme.Link).Render(chart) + "\n")
	}

	active, total := m.world.ActiveCount(), m.world.NumConstraints()
	ratio := 1.0
	if total > 0 {
		ratio = float64(active) / float64(total)
	}

	s.WriteString(labelStyle.Render("Tick") + value.Render(fmt.Sprintf("%d", m.world.Ticks())) + "\n")
	s.WriteString(labelStyle.Render("Links") + value.Render(fmt.Sprintf("%d/%d", active, total)) + "\n")
	s.WriteString(labelStyle.Render("") + IntegrityBar(ratio, 20, m.theme) + "\n")
	s.WriteString(labelStyle.Render("Torn") + lipgloss.NewStyle().Foreground(m.theme.Torn).Render(fmt.Sprintf("%d", m.torn)) + "\n")
	s.WriteString(labelStyle.Render("Stretch") + value.Render(fmt.Sprintf("%.2f%%", m.stretch.Current()*100)) + "\n")
	s.WriteString(labelStyle.Render("Energy") + Sparkline(m.energyHistory, 20, m.theme.Link) + "\n")
	s.WriteString(labelStyle.Render("Theme") + value.Render(m.theme.Name) + "\n")

	if m.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(m.theme.Error).Render(m.err.Error()) + "\n")
	}

	s.WriteString(muted.Render("\n─────────────────────\nClick: Tear  SP: Pause\nR: Reset  T: Theme  Q: Quit"))

	statsView := statsStyle.BorderForeground(m.theme.Muted).Render(s.String())
	return lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
}

// Run starts the live view in the alternate screen with mouse reporting.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run()
	return err
}
