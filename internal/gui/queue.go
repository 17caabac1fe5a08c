package gui

// frameQueue holds the host-side state the animator talks to: frame
// callbacks waiting for the next draw, resize listeners and the last
// reported window size. It is touched only from the ebiten game loop.
type frameQueue struct {
	pending []func()
	resize  []func()
	w, h    int
	dirty   bool
}

func newFrameQueue() *frameQueue {
	return &frameQueue{
		pending: make([]func(), 0, 1),
		resize:  make([]func(), 0, 1),
	}
}

func (q *frameQueue) RequestFrame(fn func()) { q.pending = append(q.pending, fn) }
func (q *frameQueue) OnResize(fn func())     { q.resize = append(q.resize, fn) }
func (q *frameQueue) Viewport() (int, int)   { return q.w, q.h }

// setViewport records a layout size and marks it dirty when it differs from
// the previous one.
func (q *frameQueue) setViewport(w, h int) {
	if w == q.w && h == q.h {
		return
	}
	q.w, q.h = w, h
	q.dirty = true
}

func (q *frameQueue) sized() bool { return q.w > 0 && q.h > 0 }

// takeResize reports whether the viewport changed since the last call.
func (q *frameQueue) takeResize() bool {
	d := q.dirty
	q.dirty = false
	return d
}

func (q *frameQueue) notify() {
	for _, fn := range q.resize {
		fn()
	}
}

// flush runs the callbacks queued before this call. Callbacks queued while
// flushing wait for the next draw.
func (q *frameQueue) flush() int {
	batch := q.pending
	q.pending = make([]func(), 0, len(batch))
	for _, fn := range batch {
		fn()
	}
	return len(batch)
}
