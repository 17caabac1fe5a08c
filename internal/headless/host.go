// Package headless provides an in-memory host for the particle field: a
// surface that records draw calls and a frame queue pumped by the caller.
package headless

import (
	"context"

	"github.com/san-kum/driftfield/internal/field"
)

// Circle is one recorded FillCircle call together with the fill in effect.
type Circle struct {
	X, Y, R float64
	Fill    field.Paint
}

// Surface records the draw calls of the current frame. Clear and SetSize
// discard the recorded circles.
type Surface struct {
	w, h    int
	fill    field.Paint
	circles []Circle

	Clears  int
	Resizes int
	Fills   int
}

func NewSurface() *Surface {
	return &Surface{circles: make([]Circle, 0, field.DefaultCount)}
}

func (s *Surface) Size() (int, int) { return s.w, s.h }

func (s *Surface) SetSize(w, h int) {
	s.w, s.h = w, h
	s.circles = s.circles[:0]
	s.Resizes++
}

func (s *Surface) Clear() {
	s.circles = s.circles[:0]
	s.Clears++
}

func (s *Surface) SetFill(p field.Paint) {
	s.fill = p
	s.Fills++
}

func (s *Surface) FillCircle(x, y, r float64) {
	s.circles = append(s.circles, Circle{X: x, Y: y, R: r, Fill: s.fill})
}

func (s *Surface) Fill() field.Paint { return s.fill }

// Circles returns a copy of what has been drawn since the last clear.
func (s *Surface) Circles() []Circle {
	out := make([]Circle, len(s.circles))
	copy(out, s.circles)
	return out
}

// Host is a field.Host whose frames advance only when Pump is called.
type Host struct {
	w, h     int
	surfaces map[string]*Surface
	queue    []func()
	resize   []func()

	Requests int
}

// New returns a host with a w×h viewport and one recording surface per name.
func New(w, h int, names ...string) *Host {
	hst := &Host{
		w:        w,
		h:        h,
		surfaces: make(map[string]*Surface, len(names)),
		queue:    make([]func(), 0, 1),
		resize:   make([]func(), 0, 1),
	}
	for _, n := range names {
		hst.surfaces[n] = NewSurface()
	}
	return hst
}

func (h *Host) Surface(name string) (field.Surface, bool) {
	s, ok := h.surfaces[name]
	if !ok {
		return nil, false
	}
	return s, true
}

// Canvas returns the concrete recording surface registered under name.
func (h *Host) Canvas(name string) *Surface { return h.surfaces[name] }

func (h *Host) Viewport() (int, int) { return h.w, h.h }

func (h *Host) OnResize(fn func()) { h.resize = append(h.resize, fn) }

func (h *Host) RequestFrame(fn func()) {
	h.queue = append(h.queue, fn)
	h.Requests++
}

func (h *Host) Pending() int   { return len(h.queue) }
func (h *Host) Listeners() int { return len(h.resize) }

// Pump runs the callbacks that were queued before the call, as one repaint.
// It reports whether anything ran.
func (h *Host) Pump() bool {
	if len(h.queue) == 0 {
		return false
	}
	batch := h.queue
	h.queue = make([]func(), 0, len(batch))
	for _, fn := range batch {
		fn()
	}
	return true
}

// Run pumps up to frames repaints, stopping early when nothing is queued or
// ctx is done. It returns the number of repaints performed.
func (h *Host) Run(ctx context.Context, frames int) (int, error) {
	n := 0
	for n < frames {
		select {
		case <-ctx.Done():
			return n, ctx.Err()
		default:
		}
		if !h.Pump() {
			break
		}
		n++
	}
	return n, nil
}

// Resize changes the viewport and notifies every listener.
func (h *Host) Resize(w, hh int) {
	h.w, h.h = w, hh
	for _, fn := range h.resize {
		fn()
	}
}
