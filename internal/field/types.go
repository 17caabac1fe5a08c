package field

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
)

// Particle is a point drifting at constant velocity. Only X and Y change
// after creation.
type Particle struct {
	X, Y   float64
	VX, VY float64
	Radius float64
}

// Snapshot is a copy of the particle set after a given frame.
type Snapshot struct {
	Frame     int
	Particles []Particle
}

// Paint is an RGB fill with a fractional alpha in [0, 1].
type Paint struct {
	R, G, B uint8
	A       float64
}

func (p Paint) WithAlpha(a float64) Paint {
	p.A = a
	return p
}

// NRGBA converts to a non-premultiplied color with 8-bit alpha.
func (p Paint) NRGBA() color.NRGBA {
	a := math.Round(math.Max(0, math.Min(1, p.A)) * 255)
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: uint8(a)}
}

// String renders the paint as a CSS rgba() value.
func (p Paint) String() string {
	return fmt.Sprintf("rgba(%d,%d,%d,%s)", p.R, p.G, p.B, strconv.FormatFloat(p.A, 'f', -1, 64))
}

// Surface is a 2D drawing target. Resizing discards its contents.
type Surface interface {
	Size() (w, h int)
	SetSize(w, h int)
	Clear()
	SetFill(p Paint)
	FillCircle(x, y, r float64)
}

// Scheduler runs fn once before the next repaint.
type Scheduler interface {
	RequestFrame(fn func())
}

// Host is the environment an Animator lives in.
type Host interface {
	Scheduler
	// Surface looks up a drawing surface by its well-known name.
	Surface(name string) (Surface, bool)
	Viewport() (w, h int)
	// OnResize registers fn to run whenever the viewport size changes.
	OnResize(fn func())
}

// Rand is the random source used to seed the particle field.
// *math/rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

type Observer interface {
	OnFrame(frame int, particles []Particle)
}
