package object

import "math/rand/v2"

// DefaultSpawnChance is the per-tick probability of a new enemy.
const DefaultSpawnChance = 0.02

// EnemySpawner creates enemies just above the top of the screen.
type EnemySpawner struct {
	rng    *rand.Rand
	chance float64
}

// NewEnemySpawner creates a spawner drawing from rng. chance is the
// per-tick spawn probability used by MaybeSpawn and is clamped to [0, 1].
func NewEnemySpawner(rng *rand.Rand, chance float64) *EnemySpawner {
	if chance < 0 {
		chance = 0
	}
	if chance > 1 {
		chance = 1
	}
	return &EnemySpawner{
		rng:    rng,
		chance: chance,
	}
}

// Chance returns the per-tick spawn probability.
func (s *EnemySpawner) Chance() float64 {
	return s.chance
}

// Spawn creates an enemy at a random x in [0, screen.Width-EnemySize)
// with its bottom edge on the top of the screen.
func (s *EnemySpawner) Spawn(screen Screen) *Enemy {
	x := s.rng.Float64() * (screen.Width - EnemySize)
	speed := EnemyMinSpeed + s.rng.Float64()*(EnemyMaxSpeed-EnemyMinSpeed)
	return NewEnemy(x, -EnemySize, speed)
}

// MaybeSpawn returns a new enemy with the spawner's chance, or nil.
func (s *EnemySpawner) MaybeSpawn(screen Screen) *Enemy {
	if s.rng.Float64() >= s.chance {
		return nil
	}
	return s.Spawn(screen)
}
