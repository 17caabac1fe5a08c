package field

import (
	"math/rand"
	"time"

	"github.com/san-kum/driftfield/internal/theme"
)

// Animator owns the particle set and its render loop.
type Animator struct {
	opts      Options
	theme     *theme.Cell
	rng       Rand
	host      Host
	surface   Surface
	particles []Particle
	w, h      int
	frame     int
	handle    *Handle
	tick      func()
	observers []Observer
}

// New builds an animator that reads cell every frame and seeds particles from
// rng. A nil cell is treated as permanently light; a nil rng is seeded from
// the clock.
func New(cell *theme.Cell, rng Rand, opts Options) (*Animator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if cell == nil {
		cell = theme.NewCell(false)
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	a := &Animator{
		opts:      opts,
		theme:     cell,
		rng:       rng,
		observers: make([]Observer, 0),
	}
	a.tick = a.loop
	return a, nil
}

func (a *Animator) AddObserver(o Observer) { a.observers = append(a.observers, o) }

// Activate sizes the host surface to the viewport, spawns the particles,
// subscribes to resizes and renders the first frame, which keeps requesting
// the next one until the handle is stopped.
//
// If the host has no surface under the configured name, Activate does
// nothing and returns false. Activating again returns the existing handle
// and true without restarting anything; once that handle is stopped the
// animator stays stopped, so check Handle.Active rather than ok.
func (a *Animator) Activate(host Host) (*Handle, bool) {
	if a.handle != nil {
		return a.handle, true
	}
	surface, ok := host.Surface(a.opts.SurfaceName)
	if !ok || surface == nil {
		return nil, false
	}

	a.host = host
	a.surface = surface
	a.w, a.h = host.Viewport()
	surface.SetSize(a.w, a.h)
	a.particles = a.spawn(a.opts.Count)
	a.handle = &Handle{}

	host.OnResize(a.Resize)
	a.loop()
	return a.handle, true
}

func (a *Animator) spawn(n int) []Particle {
	w, h := float64(a.w), float64(a.h)
	ps := make([]Particle, n)
	for i := range ps {
		ps[i] = Particle{
			X:      a.rng.Float64() * w,
			Y:      a.rng.Float64() * h,
			VX:     (a.rng.Float64() - 0.5) * a.opts.SpeedX,
			VY:     (a.rng.Float64() - 0.5) * a.opts.SpeedY,
			Radius: a.rng.Float64()*a.opts.RadiusSpread + a.opts.MinRadius,
		}
	}
	return ps
}

func (a *Animator) loop() {
	if !a.handle.Active() {
		return
	}
	a.Step()
	a.host.RequestFrame(a.tick)
}

// Step renders one frame and advances every particle. It does not schedule
// anything; the activation loop does that.
func (a *Animator) Step() {
	if a.surface == nil {
		return
	}
	a.surface.Clear()
	a.surface.SetFill(a.opts.Fill(a.theme.Dark()))

	w, h := float64(a.w), float64(a.h)
	for i := range a.particles {
		p := &a.particles[i]
		a.surface.FillCircle(p.X, p.Y, p.Radius)
		p.X = wrap(p.X+p.VX, w)
		p.Y = wrap(p.Y+p.VY, h)
	}
	a.frame++

	if len(a.observers) == 0 {
		return
	}
	snap := a.Particles()
	for _, o := range a.observers {
		o.OnFrame(a.frame, snap)
	}
}

// wrap resets a coordinate that left [0, max] to the opposite edge. It is a
// hard reset, not a modulo.
func wrap(v, max float64) float64 {
	if v < 0 {
		v = max
	}
	if v > max {
		v = 0
	}
	return v
}

// Resize re-reads the viewport and resizes the surface to match. Particles
// are left where they are; the next step wraps them against the new bounds.
func (a *Animator) Resize() {
	if a.surface == nil {
		return
	}
	a.w, a.h = a.host.Viewport()
	a.surface.SetSize(a.w, a.h)
}

// Particles returns a copy of the current particle set.
func (a *Animator) Particles() []Particle {
	out := make([]Particle, len(a.particles))
	copy(out, a.particles)
	return out
}

func (a *Animator) Len() int           { return len(a.particles) }
func (a *Animator) Bounds() (w, h int) { return a.w, a.h }
func (a *Animator) Frame() int         { return a.frame }
func (a *Animator) Options() Options   { return a.opts }
func (a *Animator) Handle() *Handle    { return a.handle }
func (a *Animator) Theme() *theme.Cell { return a.theme }
func (a *Animator) Activated() bool    { return a.handle != nil }
