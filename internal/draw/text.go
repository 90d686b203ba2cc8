package draw

import "unicode/utf8"

// Text is a line of overlay text drawn on top of the canvas.
// Coordinates are 1-based cells inside the render area.
type Text struct {
	X     int
	Y     int
	Value string
	Color Color // ColorNone uses the terminal default
}

// Centered returns a Text horizontally centered on centerX at row y.
func Centered(centerX, y int, value string, color Color) Text {
	return Text{
		X:     centerX - utf8.RuneCountInString(value)/2,
		Y:     y,
		Value: value,
		Color: color,
	}
}

// clip trims t so it fits in a render area of the given size.
// ok is false when nothing of t is visible.
func (t Text) clip(width, height int) (Text, bool) {
	if t.Value == "" || t.Y < 1 || t.Y > height {
		return t, false
	}
	runes := []rune(t.Value)
	if t.X < 1 {
		skip := 1 - t.X
		if skip >= len(runes) {
			return t, false
		}
		runes = runes[skip:]
		t.X = 1
	}
	if t.X > width {
		return t, false
	}
	if room := width - t.X + 1; len(runes) > room {
		runes = runes[:room]
	}
	t.Value = string(runes)
	return t, true
}
