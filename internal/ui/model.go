package ui

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/olivier-w/strumspace/internal/gate"
	"github.com/olivier-w/strumspace/internal/instrument"
	"github.com/olivier-w/strumspace/internal/util"
)

// Options tunes the terminal host.
type Options struct {
	FPS       int
	CellWidth float64 // pixel-equivalents per column, for layout classification
	Volume    float64
}

// Model is the Bubbletea host of the instrument rig. It forwards frame ticks
// and hit-tested mouse events to the rig and draws the result.
type Model struct {
	rig     *instrument.Rig
	opts    Options
	logger  *slog.Logger
	mounted time.Time
	colors  termenv.Profile

	width  int
	height int
	layout layout
	camera *cameraPan

	hovered  int
	pressed  int
	dragging bool
	dragX    int
	dragY    int

	spinner  spinner.Model
	progress progress.Model
	loading  bool
	quitting bool
}

// New creates a Model for a mounted rig.
func New(rig *instrument.Rig, opts Options, logger *slog.Logger) Model {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.CellWidth <= 0 {
		opts.CellWidth = 8
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#555555", Dark: "#AAAAAA"})

	return Model{
		rig:     rig,
		opts:    opts,
		logger:  logger,
		mounted: time.Now(),
		colors:  terminalProfile(),
		camera:  newCameraPan(opts.FPS),
		hovered: -1,
		pressed: -1,
		spinner: s,
		progress: progress.New(
			progress.WithScaledGradient("#FF8C00", "#FF5F1F"),
			progress.WithoutPercentage(),
			progress.WithWidth(24),
		),
		loading: true,
	}
}

func (m Model) frameInterval() time.Duration {
	return time.Second / time.Duration(m.opts.FPS)
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(frameCmd(m.frameInterval()), m.spinner.Tick, tea.SetWindowTitle("strumspace"))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg), nil

	case frameMsg:
		elapsed := time.Time(msg).Sub(m.mounted).Seconds()
		m.rig.Frame(max(elapsed, 0), m.viewportWidth())
		m.camera.step()
		m.relayout()
		ready, failed, total := m.rig.Preload()
		m.loading = ready+failed < total
		return m, frameCmd(m.frameInterval())

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.relayout()
		return m, nil
	}

	return m, nil
}

// viewportWidth converts the terminal width to the pixel units the layout
// classifier expects.
func (m Model) viewportWidth() float64 {
	return float64(m.width) * m.opts.CellWidth
}

func (m *Model) relayout() {
	x, y := m.camera.offset()
	m.layout = newLayout(m.rig.Strings(), m.width, m.height).withPan(x, y)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if isQuit(msg) {
		m.quitting = true
		return m, tea.Sequence(tea.SetWindowTitle(""), tea.Quit)
	}
	if !m.rig.Started() {
		if isStart(msg) {
			m.rig.Start()
		}
		return m, nil
	}

	switch msg.String() {
	case "c":
		m.toggleCamera()
		return m, nil
	}
	if !m.rig.CameraControls() {
		return m, nil
	}
	switch msg.String() {
	case "left", "h":
		m.camera.nudge(-4, 0)
	case "right", "l":
		m.camera.nudge(4, 0)
	case "up", "k":
		m.camera.nudge(0, -1)
	case "down", "j":
		m.camera.nudge(0, 1)
	case "0":
		m.camera.recenter()
	}
	return m, nil
}

func (m *Model) toggleCamera() {
	on := m.rig.ToggleCameraControls()
	m.dragging = false
	m.logger.Debug("camera controls", "enabled", on)
}

func (m Model) handleMouse(msg tea.MouseMsg) Model {
	press := msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft

	if !m.rig.Started() {
		if press {
			m.rig.Start()
		}
		return m
	}
	if press && m.onLockButton(msg.X, msg.Y) {
		m.toggleCamera()
		return m
	}

	idx := m.layout.hit(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionMotion:
		if m.dragging {
			m.camera.nudge(float64(msg.X-m.dragX), float64(msg.Y-m.dragY))
			m.dragX, m.dragY = msg.X, msg.Y
		}
		m.hover(idx)

	case tea.MouseActionPress:
		if !press {
			return m
		}
		if m.rig.CameraControls() {
			m.dragging = true
			m.dragX, m.dragY = msg.X, msg.Y
			return m
		}
		if idx >= 0 {
			m.rig.Dispatch(idx, gate.TouchStart)
			m.pressed = idx
		}

	case tea.MouseActionRelease:
		m.dragging = false
		if m.pressed >= 0 {
			m.rig.Dispatch(m.pressed, gate.TouchEnd)
			m.pressed = -1
		}
	}
	return m
}

// hover turns pointer movement between hit regions into leave/enter pairs.
func (m *Model) hover(idx int) {
	if idx == m.hovered {
		return
	}
	if m.hovered >= 0 {
		m.rig.Dispatch(m.hovered, gate.PointerLeave)
	}
	if idx >= 0 {
		m.rig.Dispatch(idx, gate.PointerEnter)
	}
	m.hovered = idx
}

func (m Model) lockButton() string {
	return buttonStyle.Render(lockButtonLabel(m.rig.CameraControls()))
}

func (m Model) onLockButton(x, y int) bool {
	w := lipgloss.Width(m.lockButton())
	return y == 0 && x >= m.width-w && x < m.width
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	w, h := m.width, m.height
	if w < 30 {
		w = 80
	}
	if !m.rig.Started() {
		return renderOverlay(w, max(h, 10))
	}

	header := joinEnds(headerStyle(string(m.rig.Scene().Background)).Render("strumspace"), m.lockButton(), w)

	elapsed := time.Duration(m.rig.Elapsed() * float64(time.Second))
	left := renderProfile(m.rig.Class(), m.rig.Profile())
	if m.rig.CameraControls() {
		left += "  ✥ adjusting"
	}
	right := fmt.Sprintf("%s  %s", util.FormatClock(elapsed), renderVolumePercent(m.opts.Volume))
	status := statusStyle.Render(joinEnds(left, right, w-2))

	lines := header + "\n\n"
	lines += renderStage(m.layout, m.rig, m.colors) + "\n"
	lines += "\n"
	lines += " " + status + "\n"
	lines += " " + m.loadingLine() + "\n"
	lines += " " + helpStyle.Render(helpText(m.rig.CameraControls()))
	return lines
}

func (m Model) loadingLine() string {
	ready, failed, total := m.rig.Preload()
	if m.loading {
		frac := float64(ready+failed) / float64(max(total, 1))
		return fmt.Sprintf("%s tuning strings %s %d/%d", m.spinner.View(), m.progress.ViewAs(frac), ready+failed, total)
	}
	if failed > 0 {
		return warnStyle.Render(fmt.Sprintf("%d of %d strings have no sound", failed, total))
	}
	return ""
}
