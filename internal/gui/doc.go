// Package gui hosts the particle field in a desktop window using ebiten.
//
// The window is the viewport; the animator paints into an offscreen image
// that is composited over the page background each frame. Keys:
//
//	T        toggle light/dark theme (persisted)
//	Esc, Q   quit
package gui
