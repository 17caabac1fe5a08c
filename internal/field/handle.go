package field

import "sync/atomic"

// Handle controls an active animation loop. Once stopped, the pending frame
// callback returns without drawing and no further frames are requested.
type Handle struct {
	stopped atomic.Bool
}

func (h *Handle) Stop() {
	if h != nil {
		h.stopped.Store(true)
	}
}

func (h *Handle) Active() bool {
	return h != nil && !h.stopped.Load()
}
