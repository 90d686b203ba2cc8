package draw

import (
	"io"
	"math"
	"strconv"
	"strings"
)

// Canvas is a color pixel buffer with 2x vertical resolution using half-block characters.
// Supports scaling from logical coordinates to actual terminal pixels.
type Canvas struct {
	termWidth      int     // Render area columns
	termHeight     int     // Render area rows
	subPixelHeight int     // termHeight * 2
	pixels         []Color // Flat slice: [y * termWidth + x]

	// Logical coordinate space mapped onto the pixels
	logicalWidth  float64
	logicalHeight float64

	// Offset for centering the render area inside a larger terminal.
	// These are 0-based terminal offsets (columns/rows to skip).
	offsetCol int
	offsetRow int

	renderBuf strings.Builder
	numBuf    [20]byte
}

// Ensure Canvas satisfies Surface.
var _ Surface = (*Canvas)(nil)

// NewScaledCanvas creates a canvas that scales from logical coordinates to terminal pixels.
// logicalWidth/Height define the coordinate space used by game objects.
// termWidth/Height are the render area dimensions in terminal cells.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
// Pixel contents are discarded when the size changes.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	subPixelHeight := termHeight * 2

	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]Color, subPixelHeight*termWidth)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
	}
}

// SetOffset sets the column and row offset for centering the canvas.
// Offsets are 0-based terminal positions: the canvas starts at (offsetCol+1, offsetRow+1).
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int {
	return c.offsetCol
}

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int {
	return c.offsetRow
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// FillRect fills the logical rectangle (x, y, w, h) with color.
// Any rectangle that intersects the render area covers at least one pixel,
// so small objects stay visible on small terminals.
func (c *Canvas) FillRect(x, y, w, h float64, color Color) {
	if w <= 0 || h <= 0 {
		return
	}
	x0 := int(math.Floor(c.pixelX(x)))
	x1 := int(math.Ceil(c.pixelX(x + w)))
	y0 := int(math.Floor(c.pixelY(y)))
	y1 := int(math.Ceil(c.pixelY(y + h)))
	if x1 <= x0 {
		x1 = x0 + 1
	}
	if y1 <= y0 {
		y1 = y0 + 1
	}

	x0 = max(x0, 0)
	y0 = max(y0, 0)
	x1 = min(x1, c.termWidth)
	y1 = min(y1, c.subPixelHeight)

	for py := y0; py < y1; py++ {
		row := c.pixels[py*c.termWidth : (py+1)*c.termWidth]
		for px := x0; px < x1; px++ {
			row[px] = color
		}
	}
}

// pixelX maps a logical x to a pixel column. Dividing last keeps whole
// logical values exact, so edges do not spill into a neighbouring pixel.
func (c *Canvas) pixelX(x float64) float64 {
	return x * float64(c.termWidth) / c.logicalWidth
}

// pixelY maps a logical y to a sub-pixel row.
func (c *Canvas) pixelY(y float64) float64 {
	return y * float64(c.subPixelHeight) / c.logicalHeight
}

// At returns the color of the pixel at render-area coordinates (x, subY).
// Out-of-range coordinates return ColorNone.
func (c *Canvas) At(x, subY int) Color {
	if x < 0 || x >= c.termWidth || subY < 0 || subY >= c.subPixelHeight {
		return ColorNone
	}
	return c.pixels[subY*c.termWidth+x]
}

// Cell resolves the two sub-pixels of a terminal cell into a glyph with
// foreground and background colors. col and row are 0-based.
func (c *Canvas) Cell(col, row int) (ch rune, fg, bg Color) {
	top := c.At(col, row*2)
	bottom := c.At(col, row*2+1)

	switch {
	case top == ColorNone && bottom == ColorNone:
		return BlockEmpty, ColorNone, ColorNone
	case top == bottom:
		return BlockFull, top, ColorNone
	case bottom == ColorNone:
		return BlockUpperHalf, top, ColorNone
	case top == ColorNone:
		return BlockLowerHalf, bottom, ColorNone
	default:
		return BlockUpperHalf, top, bottom
	}
}

// maxChunkSize is the maximum bytes to write at once. It stays below a
// typical 1500 byte MTU, leaving room for SSH and TCP/IP headers.
const maxChunkSize = 1400

// Render outputs the canvas to the writer using half-block characters.
// Every row is repainted in full, so no screen clear is needed between frames.
func (c *Canvas) Render(w io.Writer) {
	c.renderBuf.Reset()
	c.renderBuf.Grow(c.termWidth * c.termHeight * 4)

	for row := 0; row < c.termHeight; row++ {
		c.moveCursor(c.offsetCol+1, c.offsetRow+row+1)

		curFg, curBg := ColorNone, ColorNone
		for col := 0; col < c.termWidth; col++ {
			ch, fg, bg := c.Cell(col, row)
			if fg != curFg {
				c.renderBuf.WriteString(ansiForeground(fg))
				curFg = fg
			}
			if bg != curBg {
				c.renderBuf.WriteString(ansiBackground(bg))
				curBg = bg
			}
			c.renderBuf.WriteRune(ch)
		}
		if curFg != ColorNone || curBg != ColorNone {
			c.renderBuf.WriteString(ansiReset)
		}
	}

	// Write output in chunks for optimal network flow
	data := c.renderBuf.String()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		io.WriteString(w, chunk)
		data = data[len(chunk):]
	}
}

func (c *Canvas) moveCursor(col, row int) {
	c.renderBuf.WriteString("\033[")
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(row), 10))
	c.renderBuf.WriteByte(';')
	c.renderBuf.Write(strconv.AppendInt(c.numBuf[:0], int64(col), 10))
	c.renderBuf.WriteByte('H')
}

// LogicalWidth returns the logical width (target resolution).
func (c *Canvas) LogicalWidth() float64 {
	return c.logicalWidth
}

// LogicalHeight returns the logical height (target resolution).
func (c *Canvas) LogicalHeight() float64 {
	return c.logicalHeight
}

// TerminalWidth returns the render area column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the render area row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
