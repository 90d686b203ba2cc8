// Package draw renders the logical game viewport onto a terminal.
//
// Game objects draw into a Canvas through the Surface interface. A Backend
// then presents the canvas, plus any text overlays, on a real terminal.
package draw

import (
	"fmt"
	"io"
)

// Color is the fill color of a canvas pixel. ColorNone marks an empty pixel.
type Color uint8

const (
	ColorNone Color = iota
	ColorWhite
	ColorRed
	ColorGreen
	ColorYellow
)

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI SGR sequences.
const (
	ansiReset = "\033[0m"
)

// Surface is the drawing capability the game loop needs.
// Coordinates are logical units with the origin in the top-left corner.
type Surface interface {
	Clear()
	FillRect(x, y, w, h float64, c Color)
}

// ansiForeground returns the SGR sequence selecting c as foreground color.
func ansiForeground(c Color) string {
	switch c {
	case ColorWhite:
		return "\033[97m"
	case ColorRed:
		return "\033[91m"
	case ColorGreen:
		return "\033[92m"
	case ColorYellow:
		return "\033[93m"
	default:
		return "\033[39m"
	}
}

// ansiBackground returns the SGR sequence selecting c as background color.
func ansiBackground(c Color) string {
	switch c {
	case ColorWhite:
		return "\033[107m"
	case ColorRed:
		return "\033[101m"
	case ColorGreen:
		return "\033[102m"
	case ColorYellow:
		return "\033[103m"
	default:
		return "\033[49m"
	}
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}
