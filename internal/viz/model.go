package viz

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/theme"
)

// statusRows is the number of terminal rows reserved below the canvas.
const statusRows = 1

type frameMsg time.Time

// surface adapts a braille Canvas to field.Surface. One surface pixel is one
// braille dot.
type surface struct {
	canvas *Canvas
	fill   field.Paint
}

func newSurface() *surface { return &surface{canvas: NewCanvas(0, 0)} }

func (s *surface) Size() (int, int) { return s.canvas.Width * 2, s.canvas.Height * 4 }

func (s *surface) SetSize(w, h int) { s.canvas = NewCanvas((w+1)/2, (h+3)/4) }

func (s *surface) Clear()                     { s.canvas.Clear() }
func (s *surface) SetFill(p field.Paint)      { s.fill = p }
func (s *surface) FillCircle(x, y, r float64) { s.canvas.FillCircle(x, y, r) }

// Model hosts an animator inside a Bubble Tea program. Frame requests are
// served by tea.Tick and terminal resizes by tea.WindowSizeMsg.
type Model struct {
	anim     *field.Animator
	toggler  *theme.Toggler
	logger   *log.Logger
	surface  *surface
	pending  []func()
	resize   []func()
	cols     int
	rows     int
	interval time.Duration
	ticking  bool
	handle   *field.Handle
	quitting bool
}

func NewModel(anim *field.Animator, toggler *theme.Toggler, logger *log.Logger, fps int) *Model {
	if fps <= 0 {
		fps = 60
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Model{
		anim:     anim,
		toggler:  toggler,
		logger:   logger,
		surface:  newSurface(),
		pending:  make([]func(), 0, 1),
		resize:   make([]func(), 0, 1),
		interval: time.Second / time.Duration(fps),
	}
}

func (m *Model) Surface(name string) (field.Surface, bool) {
	if name != field.SurfaceName {
		return nil, false
	}
	return m.surface, true
}

func (m *Model) Viewport() (int, int) {
	rows := m.rows - statusRows
	if rows < 1 {
		rows = 1
	}
	return m.cols * 2, rows * 4
}

func (m *Model) OnResize(fn func())     { m.resize = append(m.resize, fn) }
func (m *Model) RequestFrame(fn func()) { m.pending = append(m.pending, fn) }

// Init waits for the first WindowSizeMsg; the animator cannot be sized
// before the terminal reports its dimensions.
func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.cols, m.rows = msg.Width, msg.Height
		if !m.anim.Activated() {
			handle, ok := m.anim.Activate(m)
			if !ok {
				m.logger.Warn("no drawing surface, nothing to animate", "surface", m.anim.Options().SurfaceName)
				return m, tea.Quit
			}
			m.handle = handle
			w, h := m.Viewport()
			m.logger.Debug("animator active", "width", w, "height", h, "particles", m.anim.Len())
		} else {
			for _, fn := range m.resize {
				fn()
			}
		}
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			m.handle.Stop()
			return m, tea.Quit
		case "t":
			if m.toggler == nil {
				break
			}
			dark, err := m.toggler.Toggle()
			if err != nil {
				m.logger.Error("persist theme", "err", err)
			}
			m.logger.Debug("theme toggled", "theme", theme.Name(dark))
		}
	case frameMsg:
		m.ticking = false
		batch := m.pending
		m.pending = make([]func(), 0, len(batch))
		for _, fn := range batch {
			fn()
		}
	}
	return m, m.schedule()
}

func (m *Model) schedule() tea.Cmd {
	if m.ticking || len(m.pending) == 0 {
		return nil
	}
	m.ticking = true
	return tea.Tick(m.interval, func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.anim.Activated() {
		return "waiting for terminal size..."
	}
	t := ThemeFor(m.anim.Theme().Dark())
	fg := ParticleColor(m.surface.fill, t)
	return canvasStyle(t, fg).Render(m.surface.canvas.String()) + "\n" +
		StatusBar(t, m.cols, m.anim.Len(), m.anim.Frame())
}

// Handle returns the animation handle once the animator is active.
func (m *Model) Handle() *field.Handle { return m.handle }

// Run hosts anim in the terminal until the user quits or ctx is done.
func Run(ctx context.Context, anim *field.Animator, toggler *theme.Toggler, logger *log.Logger, fps int) error {
	m := NewModel(anim, toggler, logger, fps)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	m.handle.Stop()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
