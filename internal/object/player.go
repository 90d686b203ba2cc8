package object

import (
	"github.com/tomz197/shooter/internal/draw"
	"github.com/tomz197/shooter/internal/physics"
)

// Player ship dimensions and speed.
const (
	PlayerWidth  = 50.0
	PlayerHeight = 30.0
	PlayerSpeed  = 20.0 // Units per move command
	PlayerMargin = 10.0 // Gap between the ship and the bottom of the viewport
)

// Player is the ship controlled by the user. It only moves on explicit input.
type Player struct {
	X, Y float64 // Top-left corner
}

// NewPlayer creates a ship centered horizontally at the bottom of the screen.
func NewPlayer(screen Screen) *Player {
	return &Player{
		X: screen.Width/2 - PlayerWidth/2,
		Y: screen.Height - PlayerHeight - PlayerMargin,
	}
}

func (p *Player) sealed() {}

// Bounds returns the ship's bounding box.
func (p *Player) Bounds() physics.Rect {
	return physics.Rect{X: p.X, Y: p.Y, W: PlayerWidth, H: PlayerHeight}
}

// Draw renders the ship in white.
func (p *Player) Draw(s draw.Surface) {
	fill(s, p.Bounds(), draw.ColorWhite)
}

// Move shifts the ship one step left or right. The result is clamped to
// [0, screen.Width-PlayerWidth]; at the bound the call changes nothing.
func (p *Player) Move(dir Direction, screen Screen) {
	maxX := screen.Width - PlayerWidth
	switch dir {
	case DirLeft:
		p.X = physics.Clamp(p.X-PlayerSpeed, 0, maxX)
	case DirRight:
		p.X = physics.Clamp(p.X+PlayerSpeed, 0, maxX)
	}
}

// Fire creates a bullet centered on the ship's top edge.
func (p *Player) Fire() *Bullet {
	return NewBullet(p.X, p.Y)
}
