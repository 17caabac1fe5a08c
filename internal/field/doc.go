// Package field animates a decorative particle background.
//
// An [Animator] owns a fixed set of particles that drift with constant
// velocity across a drawing surface and wrap around its edges. Every frame it
// clears the surface, picks a translucent fill from the shared theme flag and
// paints each particle as a filled circle.
//
// The animator knows nothing about windows or terminals. A [Host] supplies
// the named [Surface], the viewport size, resize notifications and a
// [Scheduler] that runs a callback before the next repaint:
//
//	cell := theme.NewCell(false)
//	anim, err := field.New(cell, rand.New(rand.NewSource(1)), field.DefaultOptions())
//	if err != nil {
//	    return err
//	}
//	handle, ok := anim.Activate(host)
//	if !ok {
//	    return nil // no surface, nothing to animate
//	}
//	defer handle.Stop()
//
// # Thread Safety
//
// Render steps and resize handling must run on the host's loop goroutine.
// Only [Handle.Stop] and the theme cell may be touched from elsewhere.
package field
