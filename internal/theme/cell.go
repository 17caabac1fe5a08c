package theme

import "sync/atomic"

const (
	Dark  = "dark"
	Light = "light"
)

// Cell holds the dark-mode flag shared between the theme toggle and the
// renderers that read it. The zero value is light.
type Cell struct {
	dark atomic.Bool
}

func NewCell(dark bool) *Cell {
	c := &Cell{}
	c.dark.Store(dark)
	return c
}

func (c *Cell) Dark() bool        { return c.dark.Load() }
func (c *Cell) SetDark(dark bool) { c.dark.Store(dark) }

// Toggle flips the flag and returns the new value.
func (c *Cell) Toggle() bool {
	for {
		old := c.dark.Load()
		if c.dark.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Name returns "dark" or "light".
func (c *Cell) Name() string {
	return Name(c.Dark())
}

func Name(dark bool) string {
	if dark {
		return Dark
	}
	return Light
}
