package headless

import "github.com/san-kum/driftfield/internal/field"

// Recorder keeps a snapshot of every Every-th frame.
type Recorder struct {
	Every     int
	Snapshots []field.Snapshot
}

func NewRecorder(every int) *Recorder {
	if every < 1 {
		every = 1
	}
	return &Recorder{Every: every, Snapshots: make([]field.Snapshot, 0)}
}

func (r *Recorder) OnFrame(frame int, particles []field.Particle) {
	if frame%r.Every != 0 {
		return
	}
	r.Snapshots = append(r.Snapshots, field.Snapshot{Frame: frame, Particles: particles})
}
