package viz

import (
	"math"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/theme"
)

// Theme defines the terminal colors for one side of the light/dark toggle.
type Theme struct {
	Name       string
	Background lipgloss.Color
	Text       lipgloss.Color
	Muted      lipgloss.Color
	Accent     lipgloss.Color
}

var (
	ThemeDark = Theme{
		Name:       "dark",
		Background: lipgloss.Color(theme.DarkBackground),
		Text:       lipgloss.Color("#e2e8f0"),
		Muted:      lipgloss.Color("#64748b"),
		Accent:     lipgloss.Color("#60a5fa"),
	}

	ThemeLight = Theme{
		Name:       "light",
		Background: lipgloss.Color(theme.LightBackground),
		Text:       lipgloss.Color("#1e293b"),
		Muted:      lipgloss.Color("#94a3b8"),
		Accent:     lipgloss.Color("#2563eb"),
	}
)

func ThemeFor(dark bool) Theme {
	if dark {
		return ThemeDark
	}
	return ThemeLight
}

// alphaBoost scales canvas alpha up for terminal cells; at the raw 0.1 the
// dots would be indistinguishable from the background.
const alphaBoost = 4

// ParticleColor blends the paint over the theme background. Terminals have no
// alpha, so the translucency is baked into the foreground color.
func ParticleColor(p field.Paint, t Theme) lipgloss.Color {
	bg, err := colorful.Hex(string(t.Background))
	if err != nil {
		bg = colorful.Color{}
	}
	fg := colorful.Color{R: float64(p.R) / 255, G: float64(p.G) / 255, B: float64(p.B) / 255}
	return lipgloss.Color(bg.BlendRgb(fg, math.Min(1, p.A*alphaBoost)).Clamped().Hex())
}
