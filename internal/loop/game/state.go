// Package game holds the per-session simulation: the tick state machine and
// the bridge that reflects it onto a user interface.
package game

import (
	"slices"

	"github.com/tomz197/shooter/internal/draw"
	"github.com/tomz197/shooter/internal/object"
	"github.com/tomz197/shooter/internal/physics"
)

// Mode represents the current phase of a session.
type Mode int

const (
	ModeNotStarted Mode = iota // Title screen, nothing simulated yet
	ModeRunning                // Active gameplay
	ModeGameOver               // Player was hit, waiting for restart
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeNotStarted:
		return "not-started"
	case ModeRunning:
		return "running"
	case ModeGameOver:
		return "game-over"
	default:
		return "unknown"
	}
}

// Step tells the driver whether to schedule another tick.
type Step int

const (
	StepContinue Step = iota
	StepHalt
)

// State is the complete simulation state of one session.
// It is not safe for concurrent use; the owning driver serializes Tick and
// the input methods.
type State struct {
	Mode    Mode
	Player  *object.Player // Non-nil iff Mode == ModeRunning
	Enemies []*object.Enemy
	Bullets []*object.Bullet
	Score   int

	// KeepOffscreenEnemies disables removal of enemies that have left the
	// bottom of the viewport. They then keep moving forever.
	KeepOffscreenEnemies bool

	screen  object.Screen
	spawner *object.EnemySpawner

	// Set when the player is hit; acted on at the start of the next tick.
	collided bool
}

// NewState creates a session state for the given viewport.
func NewState(screen object.Screen, spawner *object.EnemySpawner) *State {
	return &State{
		Mode:    ModeNotStarted,
		screen:  screen,
		spawner: spawner,
	}
}

// Screen returns the viewport the state simulates.
func (st *State) Screen() object.Screen {
	return st.screen
}

// Start begins a fresh run. Used for both the first start and restarts.
func (st *State) Start() {
	st.Mode = ModeRunning
	st.Score = 0
	clear(st.Enemies)
	st.Enemies = st.Enemies[:0]
	clear(st.Bullets)
	st.Bullets = st.Bullets[:0]
	st.Player = object.NewPlayer(st.screen)
	st.collided = false
	st.Enemies = append(st.Enemies, st.spawner.Spawn(st.screen))
}

// MoveLeft moves the player one step left. Ignored unless running.
func (st *State) MoveLeft() {
	if st.Mode != ModeRunning {
		return
	}
	st.Player.Move(object.DirLeft, st.screen)
}

// MoveRight moves the player one step right. Ignored unless running.
func (st *State) MoveRight() {
	if st.Mode != ModeRunning {
		return
	}
	st.Player.Move(object.DirRight, st.screen)
}

// Fire adds a bullet at the player's position. Reports whether a bullet
// was created.
func (st *State) Fire() bool {
	if st.Mode != ModeRunning {
		return false
	}
	st.Bullets = append(st.Bullets, st.Player.Fire())
	return true
}

// Tick advances the simulation by one frame and draws it onto s.
//
// A player hit detected during a tick ends the run at the start of the
// following tick, which returns StepHalt without drawing.
func (st *State) Tick(s draw.Surface) Step {
	if st.Mode != ModeRunning {
		return StepHalt
	}
	if st.collided {
		st.Mode = ModeGameOver
		st.Player = nil
		return StepHalt
	}

	s.Clear()
	st.Player.Draw(s)
	playerBounds := st.Player.Bounds()

	kept := st.Enemies[:0]
	for _, e := range st.Enemies {
		e.Draw(s)
		e.Move()

		bounds := e.Bounds()
		if physics.Overlaps(playerBounds, bounds) {
			st.collided = true
		}

		// First overlapping bullet wins; it is gone for later enemies.
		if i := st.firstHit(bounds); i >= 0 {
			st.Bullets = slices.Delete(st.Bullets, i, i+1)
			st.Score++
			continue
		}
		kept = append(kept, e)
	}
	clear(st.Enemies[len(kept):])
	st.Enemies = kept

	for _, b := range st.Bullets {
		b.Draw(s)
		b.Move()
	}
	st.Bullets = slices.DeleteFunc(st.Bullets, func(b *object.Bullet) bool {
		return !b.OnScreen()
	})

	if !st.KeepOffscreenEnemies {
		st.Enemies = slices.DeleteFunc(st.Enemies, func(e *object.Enemy) bool {
			return e.Below(st.screen)
		})
	}

	if e := st.spawner.MaybeSpawn(st.screen); e != nil {
		st.Enemies = append(st.Enemies, e)
	}

	return StepContinue
}

// GameOverPending reports whether the player has been hit and the run will
// end on the next tick.
func (st *State) GameOverPending() bool {
	return st.collided
}

// firstHit returns the index of the first bullet overlapping r, or -1.
func (st *State) firstHit(r physics.Rect) int {
	for i, b := range st.Bullets {
		if physics.Overlaps(b.Bounds(), r) {
			return i
		}
	}
	return -1
}
