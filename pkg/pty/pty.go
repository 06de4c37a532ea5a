// Package pty allocates pseudo-terminal pairs and syncs terminal geometry.
// Master and slave are created with close-on-exec set atomically at open, so
// a concurrently forked process can never inherit them by accident.
package pty

// Size is the terminal geometry as reported by TIOCGWINSZ.
type Size struct {
	Rows uint16 // rows (height) in character cells
	Cols uint16 // columns (width) in character cells
	X    uint16 // width in pixels, usually 0
	Y    uint16 // height in pixels, usually 0
}
