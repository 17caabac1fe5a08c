package sim

import (
	"fmt"

	"github.com/san-kum/driftfield/internal/field"
)

// Config describes one headless recording.
type Config struct {
	Options field.Options
	Width   int
	Height  int
	// Frames counts every rendered frame, including the one drawn at activation.
	Frames int
	// Every keeps a snapshot of each Every-th frame.
	Every int
	Seed  int64
}

func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("viewport must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.Frames < 1 {
		return fmt.Errorf("frames must be at least 1, got %d", c.Frames)
	}
	if c.Every < 1 {
		return fmt.Errorf("every must be at least 1, got %d", c.Every)
	}
	return c.Options.Validate()
}

type Result struct {
	Seed      int64
	Frames    int
	Count     int
	Snapshots []field.Snapshot
	Metrics   map[string]float64
}
