package draw

import (
	"io"
)

// Backend presents a rendered canvas and its text overlays on a terminal.
type Backend interface {
	// Init prepares the terminal for drawing.
	Init() error
	// Size returns the terminal dimensions in cells.
	Size() (cols, rows int, err error)
	// Present draws the canvas and then the texts on top of it.
	Present(c *Canvas, texts []Text) error
	// Clear wipes the whole terminal, including cells outside the canvas.
	Clear() error
	// Close restores the terminal.
	Close()
}

// ANSIBackend writes raw escape sequences to an io.Writer.
// Used for local raw-mode terminals and SSH sessions.
type ANSIBackend struct {
	w        io.Writer
	cw       *ChunkWriter
	sizeFunc TermSizeFunc
}

// Ensure ANSIBackend satisfies Backend.
var _ Backend = (*ANSIBackend)(nil)

// NewANSIBackend creates a backend writing to w. A nil sizeFunc uses the
// size of os.Stdout.
func NewANSIBackend(w io.Writer, sizeFunc TermSizeFunc) *ANSIBackend {
	if sizeFunc == nil {
		sizeFunc = DefaultTermSizeFunc
	}
	return &ANSIBackend{
		w:        w,
		cw:       NewChunkWriter(w, 0, 0),
		sizeFunc: sizeFunc,
	}
}

// Init hides the cursor and clears the screen.
func (b *ANSIBackend) Init() error {
	HideCursor(b.cw)
	ClearScreen(b.cw)
	return b.cw.Flush()
}

// Size returns the terminal size reported by the size function.
func (b *ANSIBackend) Size() (int, int, error) {
	return TerminalSizeRawWith(b.sizeFunc)
}

// Present renders the canvas and overlays the texts in a single flush.
func (b *ANSIBackend) Present(c *Canvas, texts []Text) error {
	c.Render(b.cw)

	b.cw.SetOffset(c.OffsetCol(), c.OffsetRow())
	for _, t := range texts {
		t, ok := t.clip(c.TerminalWidth(), c.TerminalHeight())
		if !ok {
			continue
		}
		b.cw.WriteStyled(t.X, t.Y, t.Value, t.Color)
	}
	return b.cw.Flush()
}

// Clear wipes the whole terminal. Used after a resize so nothing is left
// outside the new render area.
func (b *ANSIBackend) Clear() error {
	ClearScreen(b.cw)
	return b.cw.Flush()
}

// Close clears the screen and shows the cursor again.
func (b *ANSIBackend) Close() {
	b.cw.WriteString(ansiReset)
	ClearScreen(b.cw)
	ShowCursor(b.cw)
	_ = b.cw.Flush()
}
