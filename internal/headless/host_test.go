package headless

import (
	"context"
	"testing"

	"github.com/san-kum/driftfield/internal/field"
)

func TestSurfaceLookup(t *testing.T) {
	h := New(100, 50, "a")
	if _, ok := h.Surface("a"); !ok {
		t.Error("expected surface a")
	}
	if s, ok := h.Surface("b"); ok || s != nil {
		t.Error("expected no surface b")
	}
}

func TestSurfaceRecordsFrame(t *testing.T) {
	s := NewSurface()
	s.SetSize(10, 10)
	s.SetFill(field.Paint{R: 1, A: 0.5})
	s.FillCircle(1, 2, 3)
	s.FillCircle(4, 5, 6)

	got := s.Circles()
	if len(got) != 2 {
		t.Fatalf("expected 2 circles, got %d", len(got))
	}
	if got[1].X != 4 || got[1].Fill.A != 0.5 {
		t.Errorf("unexpected circle %+v", got[1])
	}

	s.Clear()
	if len(s.Circles()) != 0 {
		t.Error("clear should discard circles")
	}
	s.FillCircle(1, 1, 1)
	s.SetSize(20, 20)
	if len(s.Circles()) != 0 {
		t.Error("resize should discard circles")
	}
	if w, h := s.Size(); w != 20 || h != 20 {
		t.Errorf("expected 20x20, got %dx%d", w, h)
	}
}

func TestPumpRunsOnlyQueuedBatch(t *testing.T) {
	h := New(10, 10)
	count := 0
	var again func()
	again = func() {
		count++
		h.RequestFrame(again)
	}
	h.RequestFrame(again)

	if !h.Pump() {
		t.Fatal("expected pump to run")
	}
	if count != 1 {
		t.Errorf("expected 1 call, got %d", count)
	}
	if h.Pending() != 1 {
		t.Errorf("expected re-armed callback, got %d pending", h.Pending())
	}
}

func TestRunStopsWhenIdle(t *testing.T) {
	h := New(10, 10)
	h.RequestFrame(func() {})
	n, err := h.Run(context.Background(), 5)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 frame, got %d", n)
	}
}

func TestRunHonoursContext(t *testing.T) {
	h := New(10, 10)
	var again func()
	again = func() { h.RequestFrame(again) }
	h.RequestFrame(again)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	n, err := h.Run(ctx, 10)
	if err == nil {
		t.Error("expected context error")
	}
	if n != 0 {
		t.Errorf("expected no frames, got %d", n)
	}
}

func TestResizeNotifies(t *testing.T) {
	h := New(10, 10)
	calls := 0
	h.OnResize(func() { calls++ })
	h.Resize(30, 40)
	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}
	if w, hh := h.Viewport(); w != 30 || hh != 40 {
		t.Errorf("expected 30x40, got %dx%d", w, hh)
	}
}

func TestRecorderEvery(t *testing.T) {
	r := NewRecorder(2)
	for f := 1; f <= 5; f++ {
		r.OnFrame(f, []field.Particle{{X: float64(f)}})
	}
	if len(r.Snapshots) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(r.Snapshots))
	}
	if r.Snapshots[0].Frame != 2 || r.Snapshots[1].Frame != 4 {
		t.Errorf("unexpected frames %d, %d", r.Snapshots[0].Frame, r.Snapshots[1].Frame)
	}
}
