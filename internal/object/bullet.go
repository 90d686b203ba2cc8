package object

import (
	"github.com/tomz197/shooter/internal/draw"
	"github.com/tomz197/shooter/internal/physics"
)

// Bullet dimensions and speed.
const (
	BulletWidth  = 5.0
	BulletHeight = 10.0
	BulletSpeed  = 5.0 // Units per tick, upward

	// BulletOffsetX centers a bullet on a ship whose left edge is at x.
	BulletOffsetX = 22.5
)

// Bullet is a projectile fired by the player.
type Bullet struct {
	X, Y float64 // Top-left corner
}

// NewBullet creates a bullet for a ship whose top-left corner is at (x, y).
func NewBullet(x, y float64) *Bullet {
	return &Bullet{X: x + BulletOffsetX, Y: y}
}

func (b *Bullet) sealed() {}

// Bounds returns the bullet's bounding box.
func (b *Bullet) Bounds() physics.Rect {
	return physics.Rect{X: b.X, Y: b.Y, W: BulletWidth, H: BulletHeight}
}

// Draw renders the bullet in green.
func (b *Bullet) Draw(s draw.Surface) {
	fill(s, b.Bounds(), draw.ColorGreen)
}

// Move advances the bullet one tick upward.
func (b *Bullet) Move() {
	b.Y -= BulletSpeed
}

// OnScreen reports whether the bullet is still below the top edge.
func (b *Bullet) OnScreen() bool {
	return b.Y > 0
}
