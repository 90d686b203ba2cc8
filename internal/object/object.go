// Package object defines the game entities: the player ship, enemies and bullets.
package object

import (
	"github.com/tomz197/shooter/internal/draw"
	"github.com/tomz197/shooter/internal/physics"
)

// Object is a drawable game entity with a rectangular bounding box.
// The set of implementations is closed: Player, Enemy and Bullet.
type Object interface {
	// Bounds returns the current bounding box in logical coordinates.
	Bounds() physics.Rect

	// Draw fills the bounding box on the surface with the entity color.
	Draw(s draw.Surface)

	sealed()
}

// Screen represents the logical viewport dimensions.
type Screen struct {
	Width  float64
	Height float64
}

// Direction is a horizontal move direction for the player.
type Direction int

const (
	DirLeft Direction = iota
	DirRight
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}

// fill draws r on s with color c.
func fill(s draw.Surface, r physics.Rect, c draw.Color) {
	s.FillRect(r.X, r.Y, r.W, r.H, c)
}
