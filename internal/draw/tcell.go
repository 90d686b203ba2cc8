package draw

import (
	"github.com/gdamore/tcell/v2"
)

// TcellBackend presents frames through a tcell screen.
type TcellBackend struct {
	screen      tcell.Screen
	initialized bool
}

// Ensure TcellBackend satisfies Backend.
var _ Backend = (*TcellBackend)(nil)

// NewTcellBackend wraps an uninitialized tcell screen.
func NewTcellBackend(screen tcell.Screen) *TcellBackend {
	return &TcellBackend{screen: screen}
}

// Screen returns the underlying tcell screen (shared with the input source).
func (b *TcellBackend) Screen() tcell.Screen {
	return b.screen
}

// Init initializes the tcell screen. Calling it again is a no-op, so the
// screen can be initialized early for an input source.
func (b *TcellBackend) Init() error {
	if b.initialized {
		return nil
	}
	if err := b.screen.Init(); err != nil {
		return err
	}
	b.initialized = true
	b.screen.HideCursor()
	b.screen.Clear()
	return nil
}

// Size returns the screen size in cells.
func (b *TcellBackend) Size() (int, int, error) {
	w, h := b.screen.Size()
	return w, h, nil
}

// Present copies the canvas cells and texts to the screen and shows it.
func (b *TcellBackend) Present(c *Canvas, texts []Text) error {
	b.screen.Clear()

	offCol, offRow := c.OffsetCol(), c.OffsetRow()
	for row := 0; row < c.TerminalHeight(); row++ {
		for col := 0; col < c.TerminalWidth(); col++ {
			ch, fg, bg := c.Cell(col, row)
			if ch == BlockEmpty && bg == ColorNone {
				continue
			}
			style := tcell.StyleDefault.Foreground(tcellColor(fg)).Background(tcellColor(bg))
			b.screen.SetContent(offCol+col, offRow+row, ch, nil, style)
		}
	}

	for _, t := range texts {
		t, ok := t.clip(c.TerminalWidth(), c.TerminalHeight())
		if !ok {
			continue
		}
		style := tcell.StyleDefault.Foreground(tcellColor(t.Color))
		for i, r := range []rune(t.Value) {
			b.screen.SetContent(offCol+t.X-1+i, offRow+t.Y-1, r, nil, style)
		}
	}

	b.screen.Show()
	return nil
}

// Clear wipes the screen and forces a full repaint.
func (b *TcellBackend) Clear() error {
	b.screen.Clear()
	b.screen.Sync()
	return nil
}

// Close restores the terminal.
func (b *TcellBackend) Close() {
	b.screen.Fini()
}

func tcellColor(c Color) tcell.Color {
	switch c {
	case ColorWhite:
		return tcell.ColorWhite
	case ColorRed:
		return tcell.ColorRed
	case ColorGreen:
		return tcell.ColorGreen
	case ColorYellow:
		return tcell.ColorYellow
	default:
		return tcell.ColorDefault
	}
}
