package gui

import (
	"context"
	"errors"
	"image/color"
	"io"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/theme"
)

const windowTitle = "driftfield"

// surface is an offscreen ebiten image the animator paints into. It is
// composited over the page background on every Draw.
type surface struct {
	img  *ebiten.Image
	w, h int
	fill color.NRGBA
}

func (s *surface) Size() (int, int) { return s.w, s.h }

func (s *surface) SetSize(w, h int) {
	if w == s.w && h == s.h && s.img != nil {
		return
	}
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	s.w, s.h = w, h
	if w > 0 && h > 0 {
		s.img = ebiten.NewImage(w, h)
	}
}

func (s *surface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *surface) SetFill(p field.Paint) { s.fill = p.NRGBA() }

func (s *surface) FillCircle(x, y, r float64) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(x), float32(y), float32(r), s.fill, true)
}

// App is an ebiten.Game hosting one animator. Frame requests are served on
// the next Draw and window resizes are reported on the next Update.
type App struct {
	*frameQueue

	ctx     context.Context
	anim    *field.Animator
	toggler *theme.Toggler
	logger  *log.Logger
	surface *surface
	handle  *field.Handle
}

func NewApp(ctx context.Context, anim *field.Animator, toggler *theme.Toggler, logger *log.Logger) *App {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &App{
		frameQueue: newFrameQueue(),
		ctx:        ctx,
		anim:       anim,
		toggler:    toggler,
		logger:     logger,
		surface:    &surface{},
	}
}

func (a *App) Surface(name string) (field.Surface, bool) {
	if name != field.SurfaceName {
		return nil, false
	}
	return a.surface, true
}

func (a *App) Update() error {
	if a.ctx.Err() != nil {
		a.handle.Stop()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		a.handle.Stop()
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyT) && a.toggler != nil {
		dark, err := a.toggler.Toggle()
		if err != nil {
			a.logger.Error("persist theme", "err", err)
		}
		a.logger.Debug("theme toggled", "theme", theme.Name(dark))
	}

	if !a.anim.Activated() {
		if !a.sized() {
			return nil
		}
		a.takeResize()
		handle, ok := a.anim.Activate(a)
		if !ok {
			a.logger.Warn("no drawing surface, nothing to animate", "surface", a.anim.Options().SurfaceName)
			return ebiten.Termination
		}
		a.handle = handle
		w, h := a.Viewport()
		a.logger.Debug("animator active", "width", w, "height", h, "particles", a.anim.Len())
		return nil
	}
	if a.takeResize() {
		a.notify()
	}
	return nil
}

func (a *App) Draw(screen *ebiten.Image) {
	a.flush()
	screen.Fill(background(a.anim.Theme().Dark()))
	if a.surface.img != nil {
		screen.DrawImage(a.surface.img, nil)
	}
}

func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.setViewport(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Handle returns the animation handle once the animator is active.
func (a *App) Handle() *field.Handle { return a.handle }

func background(dark bool) color.Color {
	c, err := colorful.Hex(theme.Background(dark))
	if err != nil {
		return color.Black
	}
	return c.Clamped()
}

// Run opens a resizable window and hosts anim until it is closed, the user
// quits, or ctx is done.
func Run(ctx context.Context, anim *field.Animator, toggler *theme.Toggler, logger *log.Logger, width, height, fps int) error {
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if fps > 0 {
		ebiten.SetTPS(fps)
	}

	app := NewApp(ctx, anim, toggler, logger)
	err := ebiten.RunGame(app)
	app.handle.Stop()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
