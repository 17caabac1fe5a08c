package metrics

import (
	"math"

	"github.com/san-kum/driftfield/internal/field"
)

// Metric summarises a run as it is observed frame by frame.
type Metric interface {
	field.Observer
	Name() string
	Value() float64
	Reset()
}

// Wraps counts edge wraparounds per frame. A wrap is any particle whose new
// position is not its previous position plus its velocity.
type Wraps struct {
	prev   []field.Particle
	wraps  int
	frames int
}

func NewWraps() *Wraps { return &Wraps{} }

func (w *Wraps) Name() string { return "wraps_per_frame" }

func (w *Wraps) OnFrame(frame int, particles []field.Particle) {
	if len(w.prev) == len(particles) {
		for i, p := range particles {
			q := w.prev[i]
			if !near(p.X, q.X+q.VX) || !near(p.Y, q.Y+q.VY) {
				w.wraps++
			}
		}
		w.frames++
	}
	w.prev = append(w.prev[:0], particles...)
}

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func (w *Wraps) Total() int { return w.wraps }

func (w *Wraps) Value() float64 {
	if w.frames == 0 {
		return 0
	}
	return float64(w.wraps) / float64(w.frames)
}

func (w *Wraps) Reset() {
	w.prev = w.prev[:0]
	w.wraps = 0
	w.frames = 0
}

// MeanSpeed is the average particle speed in pixels per frame.
type MeanSpeed struct {
	total   float64
	samples int
}

func NewMeanSpeed() *MeanSpeed { return &MeanSpeed{} }

func (m *MeanSpeed) Name() string { return "mean_speed" }

func (m *MeanSpeed) OnFrame(frame int, particles []field.Particle) {
	for _, p := range particles {
		m.total += math.Hypot(p.VX, p.VY)
		m.samples++
	}
}

func (m *MeanSpeed) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.total / float64(m.samples)
}

func (m *MeanSpeed) Reset() {
	m.total = 0
	m.samples = 0
}

// Default returns the metrics recorded with every run.
func Default() []Metric {
	return []Metric{NewWraps(), NewMeanSpeed()}
}

// Collect maps each metric's name to its current value.
func Collect(ms []Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		out[m.Name()] = m.Value()
	}
	return out
}
