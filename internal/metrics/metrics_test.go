package metrics

import (
	"context"
	"math"
	"math/rand"
	"testing"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/headless"
)

func TestWrapsCountsResets(t *testing.T) {
	m := NewWraps()
	m.OnFrame(1, []field.Particle{{X: 5, VX: 1}, {X: 10, VX: -1}})
	m.OnFrame(2, []field.Particle{{X: 6, VX: 1}, {X: 9, VX: -1}})
	m.OnFrame(3, []field.Particle{{X: 0, VX: 1}, {X: 8, VX: -1}})

	if m.Total() != 1 {
		t.Errorf("expected 1 wrap, got %d", m.Total())
	}
	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("expected 0.5 wraps per frame, got %f", m.Value())
	}

	m.Reset()
	if m.Value() != 0 || m.Total() != 0 {
		t.Error("reset did not clear wraps")
	}
}

func TestMeanSpeed(t *testing.T) {
	m := NewMeanSpeed()
	m.OnFrame(1, []field.Particle{{VX: 3, VY: 4}, {VX: 0, VY: 1}})
	if math.Abs(m.Value()-3) > 1e-12 {
		t.Errorf("expected mean speed 3, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("reset did not clear mean speed")
	}
}

func TestMetricsOnLiveField(t *testing.T) {
	opts := field.DefaultOptions()
	opts.SpeedX = 100
	h := headless.New(50, 50, field.SurfaceName)
	a, err := field.New(nil, rand.New(rand.NewSource(5)), opts)
	if err != nil {
		t.Fatal(err)
	}
	ms := Default()
	for _, m := range ms {
		a.AddObserver(m)
	}
	if _, ok := a.Activate(h); !ok {
		t.Fatal("activation failed")
	}
	if _, err := h.Run(context.Background(), 20); err != nil {
		t.Fatal(err)
	}

	got := Collect(ms)
	if got["wraps_per_frame"] <= 0 {
		t.Errorf("fast particles on a small surface should wrap, got %v", got)
	}
	if got["mean_speed"] <= 0 {
		t.Errorf("expected positive mean speed, got %v", got)
	}
}
