package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/driftfield/internal/field"
	"github.com/san-kum/driftfield/internal/theme"
)

// SnapshotToSVG renders one recorded frame as an SVG document: a background
// rect and one circle per particle, all sharing fill.
func SnapshotToSVG(snap field.Snapshot, width, height int, fill field.Paint, dark bool) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="rgb(%d,%d,%d)" fill-opacity="%g">
`, width, height, width, height, theme.Background(dark), fill.R, fill.G, fill.B, fill.A))

	for _, p := range snap.Particles {
		sb.WriteString(fmt.Sprintf(`<circle cx="%.2f" cy="%.2f" r="%.2f"/>
`, p.X, p.Y, p.Radius))
	}

	sb.WriteString("</g>\n</svg>\n")
	return sb.String()
}
