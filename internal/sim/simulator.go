package sim

import (
	"context"
	"errors"
	"math/rand"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/headless"
	"github.com/san-kum/driftfield/internal/metrics"
	"github.com/san-kum/driftfield/internal/theme"
)

// ErrNoSurface is returned when Options.SurfaceName does not name the
// headless host's particle surface.
var ErrNoSurface = errors.New("headless host has no particle surface")

// Simulator runs a particle field on a headless host and records it.
type Simulator struct {
	theme     *theme.Cell
	metrics   []metrics.Metric
	observers []field.Observer
}

func New(cell *theme.Cell) *Simulator {
	return &Simulator{
		theme:     cell,
		metrics:   make([]metrics.Metric, 0),
		observers: make([]field.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m metrics.Metric)   { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o field.Observer) { s.observers = append(s.observers, o) }

// Run renders cfg.Frames frames. When ctx is cancelled the frames recorded
// so far are returned together with ctx's error.
func (s *Simulator) Run(ctx context.Context, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	anim, err := field.New(s.theme, rand.New(rand.NewSource(cfg.Seed)), cfg.Options)
	if err != nil {
		return nil, err
	}

	for _, m := range s.metrics {
		m.Reset()
		anim.AddObserver(m)
	}
	for _, o := range s.observers {
		anim.AddObserver(o)
	}
	rec := headless.NewRecorder(cfg.Every)
	anim.AddObserver(rec)

	host := headless.New(cfg.Width, cfg.Height, field.SurfaceName)
	handle, ok := anim.Activate(host)
	if !ok {
		return nil, ErrNoSurface
	}
	defer handle.Stop()

	_, runErr := host.Run(ctx, cfg.Frames-1)

	result := &Result{
		Seed:      cfg.Seed,
		Frames:    anim.Frame(),
		Count:     anim.Len(),
		Snapshots: rec.Snapshots,
		Metrics:   metrics.Collect(s.metrics),
	}
	return result, runErr
}
