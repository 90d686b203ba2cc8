package object

import (
	"github.com/tomz197/shooter/internal/draw"
	"github.com/tomz197/shooter/internal/physics"
)

// Enemy dimensions and speed range.
const (
	EnemySize     = 30.0
	EnemyMinSpeed = 1.0
	EnemyMaxSpeed = 3.0 // Exclusive
)

// Enemy descends at a constant speed chosen when it is created.
type Enemy struct {
	X, Y  float64 // Top-left corner
	Speed float64 // Units per tick, in [EnemyMinSpeed, EnemyMaxSpeed)
}

// NewEnemy creates an enemy at (x, y) with the given speed.
func NewEnemy(x, y, speed float64) *Enemy {
	return &Enemy{X: x, Y: y, Speed: speed}
}

func (e *Enemy) sealed() {}

// Bounds returns the enemy's bounding box.
func (e *Enemy) Bounds() physics.Rect {
	return physics.Rect{X: e.X, Y: e.Y, W: EnemySize, H: EnemySize}
}

// Draw renders the enemy in red.
func (e *Enemy) Draw(s draw.Surface) {
	fill(s, e.Bounds(), draw.ColorRed)
}

// Move advances the enemy one tick downward.
func (e *Enemy) Move() {
	e.Y += e.Speed
}

// Below reports whether the enemy has fully left the bottom of the screen.
func (e *Enemy) Below(screen Screen) bool {
	return e.Y > screen.Height
}
