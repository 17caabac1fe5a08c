package field

import (
	"errors"
	"fmt"
)

// SurfaceName is the well-known name of the drawing surface.
const SurfaceName = "particle-canvas"

const (
	DefaultCount        = 50
	DefaultSpeedX       = 0.2
	DefaultSpeedY       = 0.1
	DefaultMinRadius    = 1.0
	DefaultRadiusSpread = 2.5
	DefaultDarkAlpha    = 0.2
	DefaultLightAlpha   = 0.1
)

// DefaultColor is the particle blue, rgb(59,130,246).
var DefaultColor = Paint{R: 59, G: 130, B: 246}

var ErrInvalidOptions = errors.New("field: invalid options")

type Options struct {
	// Count is the fixed number of particles.
	Count int
	// SpeedX and SpeedY are the widths of the symmetric velocity ranges:
	// vx is uniform in [-SpeedX/2, SpeedX/2).
	SpeedX float64
	SpeedY float64
	// Radius is uniform in [MinRadius, MinRadius+RadiusSpread).
	MinRadius    float64
	RadiusSpread float64
	// Color supplies the RGB channels; its alpha is ignored.
	Color      Paint
	DarkAlpha  float64
	LightAlpha float64
	// SurfaceName selects the host surface to draw on.
	SurfaceName string
}

func DefaultOptions() Options {
	return Options{
		Count:        DefaultCount,
		SpeedX:       DefaultSpeedX,
		SpeedY:       DefaultSpeedY,
		MinRadius:    DefaultMinRadius,
		RadiusSpread: DefaultRadiusSpread,
		Color:        DefaultColor,
		DarkAlpha:    DefaultDarkAlpha,
		LightAlpha:   DefaultLightAlpha,
		SurfaceName:  SurfaceName,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Count <= 0:
		return fmt.Errorf("%w: count must be positive, got %d", ErrInvalidOptions, o.Count)
	case o.SpeedX < 0 || o.SpeedY < 0:
		return fmt.Errorf("%w: speed ranges must not be negative", ErrInvalidOptions)
	case o.MinRadius <= 0:
		return fmt.Errorf("%w: min radius must be positive, got %f", ErrInvalidOptions, o.MinRadius)
	case o.RadiusSpread < 0:
		return fmt.Errorf("%w: radius spread must not be negative", ErrInvalidOptions)
	case !unit(o.DarkAlpha) || !unit(o.LightAlpha):
		return fmt.Errorf("%w: alpha must be within [0, 1]", ErrInvalidOptions)
	case o.SurfaceName == "":
		return fmt.Errorf("%w: surface name is empty", ErrInvalidOptions)
	}
	return nil
}

// Fill returns the paint for a frame: same RGB, alpha chosen by theme.
func (o Options) Fill(dark bool) Paint {
	if dark {
		return o.Color.WithAlpha(o.DarkAlpha)
	}
	return o.Color.WithAlpha(o.LightAlpha)
}

func unit(v float64) bool { return v >= 0 && v <= 1 }
