// Package viz hosts the particle field in a terminal.
//
// The package implements a field.Host on top of the Bubble Tea framework:
//
//   - [Canvas]: Braille-based pixel canvas, 2x4 dots per cell
//   - [Model]: tea.Model serving frame requests with tea.Tick and resizes
//     with tea.WindowSizeMsg
//   - light and dark themes following the shared theme flag
//
// # Key Bindings
//
//	T     - Toggle light/dark theme (persisted)
//	Q/Esc - Quit
//
// Terminals have no alpha channel, so the translucent particle fill is
// blended over the theme background before it is handed to lipgloss.
package viz
