package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func canvasStyle(t Theme, fg lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(fg).Background(t.Background)
}

func titleStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(t.Accent).Background(t.Background)
}

func labelStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(t.Text).Background(t.Background)
}

func hintStyle(t Theme) lipgloss.Style {
	return lipgloss.NewStyle().Italic(true).Foreground(t.Muted).Background(t.Background)
}

// StatusBar renders the single status line under the canvas, padded to width.
func StatusBar(t Theme, width, particles, frame int) string {
	left := titleStyle(t).Render("driftfield") +
		labelStyle(t).Render(fmt.Sprintf("  %d particles · frame %d · %s", particles, frame, t.Name))
	right := hintStyle(t).Render("t theme · q quit")

	gap := width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		gap = 1
	}
	return left + labelStyle(t).Render(strings.Repeat(" ", gap)) + right
}
