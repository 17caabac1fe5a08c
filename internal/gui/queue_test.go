package gui

import "testing"

func TestFrameQueueFlushRunsOnlyQueuedBatch(t *testing.T) {
	q := newFrameQueue()
	runs := 0
	var tick func()
	tick = func() {
		runs++
		q.RequestFrame(tick)
	}
	q.RequestFrame(tick)

	if n := q.flush(); n != 1 {
		t.Fatalf("expected 1 callback flushed, got %d", n)
	}
	if runs != 1 {
		t.Fatalf("expected 1 run, got %d", runs)
	}
	if len(q.pending) != 1 {
		t.Fatalf("rescheduled callback should wait for next flush, pending=%d", len(q.pending))
	}
	q.flush()
	if runs != 2 {
		t.Errorf("expected 2 runs, got %d", runs)
	}
}

func TestFrameQueueViewport(t *testing.T) {
	q := newFrameQueue()
	if q.sized() {
		t.Fatal("new queue should not be sized")
	}

	q.setViewport(800, 600)
	if !q.sized() {
		t.Fatal("expected sized after layout")
	}
	if w, h := q.Viewport(); w != 800 || h != 600 {
		t.Errorf("viewport = %dx%d", w, h)
	}
	if !q.takeResize() {
		t.Error("first layout should be dirty")
	}
	if q.takeResize() {
		t.Error("dirty flag should clear after take")
	}

	q.setViewport(800, 600)
	if q.takeResize() {
		t.Error("same size should not mark dirty")
	}
	q.setViewport(400, 300)
	if !q.takeResize() {
		t.Error("new size should mark dirty")
	}
}

func TestFrameQueueNotify(t *testing.T) {
	q := newFrameQueue()
	calls := 0
	q.OnResize(func() { calls++ })
	q.OnResize(func() { calls += 10 })
	q.notify()
	if calls != 11 {
		t.Errorf("expected both listeners, calls=%d", calls)
	}
}
