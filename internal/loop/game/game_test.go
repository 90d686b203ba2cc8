package game

import (
	"math/rand/v2"
	"testing"

	"github.com/tomz197/shooter/internal/draw"
	"github.com/tomz197/shooter/internal/input"
	"github.com/tomz197/shooter/internal/object"
)

var testScreen = object.Screen{Width: 800, Height: 600}

type countingSurface struct {
	clears int
	fills  int
}

func (s *countingSurface) Clear()                                    { s.clears++ }
func (s *countingSurface) FillRect(x, y, w, h float64, c draw.Color) { s.fills++ }

// newTestState returns a state whose spawner never spawns during ticks.
func newTestState() *State {
	return NewState(testScreen, object.NewEnemySpawner(rand.New(rand.NewPCG(1, 2)), 0))
}

// startedState returns a running state with no enemies.
func startedState() *State {
	st := newTestState()
	st.Start()
	st.Enemies = nil
	return st
}

// collidingEnemy returns an enemy that overlaps the player after one move.
func collidingEnemy(p *object.Player) *object.Enemy {
	return object.NewEnemy(p.X, p.Y-20, 1)
}

func TestStart(t *testing.T) {
	st := newTestState()
	if st.Mode != ModeNotStarted || st.Player != nil {
		t.Fatalf("new state: mode %v player %v, want not-started with no player", st.Mode, st.Player)
	}

	st.Start()
	if st.Mode != ModeRunning {
		t.Fatalf("mode = %v, want running", st.Mode)
	}
	if st.Player == nil || st.Player.X != 375 || st.Player.Y != 560 {
		t.Fatalf("player = %+v, want at (375, 560)", st.Player)
	}
	if len(st.Enemies) != 1 || st.Enemies[0].Y != -30 {
		t.Fatalf("enemies = %d, want one at y=-30", len(st.Enemies))
	}
	if len(st.Bullets) != 0 || st.Score != 0 {
		t.Fatalf("bullets = %d score = %d, want 0 and 0", len(st.Bullets), st.Score)
	}
}

func TestStartResets(t *testing.T) {
	st := startedState()
	st.Score = 4
	st.Fire()
	st.Enemies = append(st.Enemies, collidingEnemy(st.Player))
	st.Tick(&countingSurface{})
	st.Tick(&countingSurface{})
	if st.Mode != ModeGameOver {
		t.Fatalf("mode = %v, want game-over", st.Mode)
	}

	st.Start()
	if st.Mode != ModeRunning || st.Score != 0 || len(st.Bullets) != 0 || len(st.Enemies) != 1 {
		t.Fatalf("after restart: mode %v score %d bullets %d enemies %d",
			st.Mode, st.Score, len(st.Bullets), len(st.Enemies))
	}
	if st.GameOverPending() {
		t.Fatal("restart kept the pending game over")
	}
}

func TestFireFromLeftEdge(t *testing.T) {
	st := newTestState()
	st.Start()
	for st.Player.X > 0 {
		st.MoveLeft()
	}
	if st.Player.X != 0 {
		t.Fatalf("player x = %v, want 0", st.Player.X)
	}

	st.Fire()
	b := st.Bullets[0]
	if b.X != 22.5 || b.Y != st.Player.Y {
		t.Fatalf("bullet at (%v, %v), want (22.5, %v)", b.X, b.Y, st.Player.Y)
	}

	y := b.Y
	if step := st.Tick(&countingSurface{}); step != StepContinue {
		t.Fatalf("step = %v, want continue", step)
	}
	if len(st.Bullets) != 1 || st.Bullets[0].Y != y-5 {
		t.Fatalf("bullet y = %v, want %v", st.Bullets[0].Y, y-5)
	}
}

func TestEnemyDescends(t *testing.T) {
	st := startedState()
	const speed = 2.25
	e := object.NewEnemy(100, -30, speed)
	st.Enemies = append(st.Enemies, e)

	for k := 1; k <= 50; k++ {
		st.Tick(&countingSurface{})
		if want := -30 + float64(k)*speed; e.Y != want {
			t.Fatalf("after %d ticks y = %v, want %v", k, e.Y, want)
		}
	}
}

func TestDelayedGameOver(t *testing.T) {
	st := startedState()
	st.Enemies = append(st.Enemies, collidingEnemy(st.Player))

	s := &countingSurface{}
	if step := st.Tick(s); step != StepContinue {
		t.Fatalf("collision tick step = %v, want continue", step)
	}
	if st.Mode != ModeRunning || !st.GameOverPending() {
		t.Fatalf("after collision tick: mode %v pending %v", st.Mode, st.GameOverPending())
	}

	if step := st.Tick(s); step != StepHalt {
		t.Fatalf("next tick step = %v, want halt", step)
	}
	if st.Mode != ModeGameOver || st.Player != nil {
		t.Fatalf("mode = %v player = %v, want game-over with no player", st.Mode, st.Player)
	}
	if s.clears != 1 {
		t.Fatalf("surface cleared %d times, want 1 (halting tick must not draw)", s.clears)
	}

	if step := st.Tick(s); step != StepHalt {
		t.Fatalf("tick after game over = %v, want halt", step)
	}
}

func TestInputIgnoredUnlessRunning(t *testing.T) {
	st := newTestState()
	st.MoveLeft()
	st.MoveRight()
	if st.Fire() {
		t.Fatal("fire before start created a bullet")
	}
	if st.Tick(&countingSurface{}) != StepHalt {
		t.Fatal("tick before start should halt")
	}
}

func TestBulletEnemyCollision(t *testing.T) {
	st := startedState()
	e := object.NewEnemy(100, 100, 1)
	st.Enemies = append(st.Enemies, e)
	st.Bullets = append(st.Bullets, &object.Bullet{X: 110, Y: 125}, &object.Bullet{X: 500, Y: 300})

	st.Tick(&countingSurface{})
	if st.Score != 1 {
		t.Fatalf("score = %d, want 1", st.Score)
	}
	if len(st.Enemies) != 0 {
		t.Fatalf("enemies = %d, want 0", len(st.Enemies))
	}
	if len(st.Bullets) != 1 || st.Bullets[0].X != 500 {
		t.Fatalf("bullets = %+v, want only the miss", st.Bullets)
	}
}

func TestFirstMatchWins(t *testing.T) {
	st := startedState()
	a := object.NewEnemy(100, 100, 1)
	b := object.NewEnemy(105, 100, 1)
	st.Enemies = append(st.Enemies, a, b)
	st.Bullets = append(st.Bullets, &object.Bullet{X: 110, Y: 125})

	st.Tick(&countingSurface{})
	if st.Score != 1 {
		t.Fatalf("score = %d, want 1", st.Score)
	}
	if len(st.Enemies) != 1 || st.Enemies[0] != b {
		t.Fatalf("remaining enemies = %v, want only the second", st.Enemies)
	}
	if len(st.Bullets) != 0 {
		t.Fatalf("bullets = %d, want 0", len(st.Bullets))
	}
}

func TestTwoBulletsTwoEnemies(t *testing.T) {
	st := startedState()
	st.Enemies = append(st.Enemies, object.NewEnemy(100, 100, 1), object.NewEnemy(105, 100, 1))
	st.Bullets = append(st.Bullets, &object.Bullet{X: 110, Y: 125}, &object.Bullet{X: 112, Y: 125})

	st.Tick(&countingSurface{})
	if st.Score != 2 || len(st.Enemies) != 0 || len(st.Bullets) != 0 {
		t.Fatalf("score %d enemies %d bullets %d, want 2, 0, 0", st.Score, len(st.Enemies), len(st.Bullets))
	}
}

func TestBulletsLeaveTop(t *testing.T) {
	st := startedState()
	for _, y := range []float64{3, 5, 6, 300} {
		st.Bullets = append(st.Bullets, &object.Bullet{X: 700, Y: y})
	}

	st.Tick(&countingSurface{})
	if len(st.Bullets) != 2 {
		t.Fatalf("bullets = %d, want 2", len(st.Bullets))
	}
	for _, b := range st.Bullets {
		if b.Y <= 0 {
			t.Fatalf("bullet at y=%v survived the tick", b.Y)
		}
	}
}

func TestOffscreenEnemies(t *testing.T) {
	st := startedState()
	st.Enemies = append(st.Enemies, object.NewEnemy(0, 600, 1))
	st.Tick(&countingSurface{})
	if len(st.Enemies) != 0 {
		t.Fatalf("enemies = %d, want 0 after leaving the bottom", len(st.Enemies))
	}

	st = startedState()
	st.KeepOffscreenEnemies = true
	st.Enemies = append(st.Enemies, object.NewEnemy(0, 600, 1))
	st.Tick(&countingSurface{})
	if len(st.Enemies) != 1 {
		t.Fatalf("enemies = %d, want 1 when kept", len(st.Enemies))
	}
}

func TestTickDrawsEntities(t *testing.T) {
	st := startedState()
	st.Enemies = append(st.Enemies, object.NewEnemy(0, 0, 1))
	st.Bullets = append(st.Bullets, &object.Bullet{X: 700, Y: 300})

	s := &countingSurface{}
	st.Tick(s)
	if s.clears != 1 || s.fills != 3 {
		t.Fatalf("clears %d fills %d, want 1 and 3", s.clears, s.fills)
	}
}

// TestRandomPlay checks tick invariants over a long randomized run.
func TestRandomPlay(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	st := NewState(testScreen, object.NewEnemySpawner(rand.New(rand.NewPCG(3, 4)), 0.05))
	st.KeepOffscreenEnemies = true
	st.Start()

	s := &countingSurface{}
	for tick := 0; tick < 5000 && st.Mode == ModeRunning; tick++ {
		switch rng.IntN(4) {
		case 0:
			st.MoveLeft()
		case 1:
			st.MoveRight()
		case 2:
			st.Fire()
		}
		if st.Player != nil {
			if x := st.Player.X; x < 0 || x > testScreen.Width-object.PlayerWidth {
				t.Fatalf("tick %d: player x = %v out of bounds", tick, x)
			}
		}

		score, enemies, bullets := st.Score, len(st.Enemies), len(st.Bullets)
		st.Tick(s)
		if st.Mode != ModeRunning {
			break
		}

		gained := st.Score - score
		if gained < 0 {
			t.Fatalf("tick %d: score decreased from %d to %d", tick, score, st.Score)
		}
		if spawned := len(st.Enemies) - (enemies - gained); spawned != 0 && spawned != 1 {
			t.Fatalf("tick %d: enemies %d -> %d with %d hits", tick, enemies, len(st.Enemies), gained)
		}
		if len(st.Bullets) > bullets-gained {
			t.Fatalf("tick %d: bullets %d -> %d with %d hits", tick, bullets, len(st.Bullets), gained)
		}
		for _, b := range st.Bullets {
			if b.Y <= 0 {
				t.Fatalf("tick %d: bullet at y=%v", tick, b.Y)
			}
		}
	}
}

type fakeUI struct {
	startScreens int
	gameOvers    []int
	score        int
	highScore    int
}

func (u *fakeUI) ShowStartScreen()                     { u.startScreens++ }
func (u *fakeUI) ShowGameOverScreen(finalScore int)    { u.gameOvers = append(u.gameOvers, finalScore) }
func (u *fakeUI) UpdateScoreDisplay(score int)         { u.score = score }
func (u *fakeUI) UpdateHighScoreDisplay(highScore int) { u.highScore = highScore }

type fakeScores struct {
	stored int
	saves  []int
}

func (f *fakeScores) LoadHighScore() int { return f.stored }
func (f *fakeScores) SaveHighScore(v int) {
	f.stored = v
	f.saves = append(f.saves, v)
}

type fakeEffects struct {
	fires, hits, gameOvers int
}

func (e *fakeEffects) Fire()     { e.fires++ }
func (e *fakeEffects) Hit()      { e.hits++ }
func (e *fakeEffects) GameOver() { e.gameOvers++ }

func newTestSession(stored int) (*Session, *fakeUI, *fakeScores, *fakeEffects) {
	ui := &fakeUI{}
	scores := &fakeScores{stored: stored}
	fx := &fakeEffects{}
	return NewSession(newTestState(), ui, scores, fx), ui, scores, fx
}

// endRun makes the running session end with the given score.
func endRun(t *testing.T, s *Session, score int) {
	t.Helper()
	st := s.State()
	st.Score = score
	st.Enemies = append(st.Enemies, collidingEnemy(st.Player))
	surface := &countingSurface{}
	if !s.Tick(surface) {
		t.Fatal("collision tick stopped the session early")
	}
	if s.Tick(surface) {
		t.Fatal("session kept running after game over")
	}
}

func TestNewSession(t *testing.T) {
	s, ui, _, _ := newTestSession(9)
	if ui.startScreens != 1 {
		t.Fatalf("start screens = %d, want 1", ui.startScreens)
	}
	if ui.highScore != 9 || s.HighScore() != 9 {
		t.Fatalf("high score display %d session %d, want 9", ui.highScore, s.HighScore())
	}
	if s.Mode() != ModeNotStarted {
		t.Fatalf("mode = %v, want not-started", s.Mode())
	}
}

func TestSessionNewHighScore(t *testing.T) {
	s, ui, scores, fx := newTestSession(5)
	s.Start()
	endRun(t, s, 7)

	if len(ui.gameOvers) != 1 || ui.gameOvers[0] != 7 {
		t.Fatalf("game over screens = %v, want [7]", ui.gameOvers)
	}
	if scores.stored != 7 || len(scores.saves) != 1 {
		t.Fatalf("stored = %d saves = %v, want 7 saved once", scores.stored, scores.saves)
	}
	if ui.highScore != 7 || s.HighScore() != 7 {
		t.Fatalf("high score display %d session %d, want 7", ui.highScore, s.HighScore())
	}
	if fx.gameOvers != 1 {
		t.Fatalf("game over effects = %d, want 1", fx.gameOvers)
	}
}

func TestSessionNewHighScoreFlag(t *testing.T) {
	s, _, scores, _ := newTestSession(5)
	s.Start()
	endRun(t, s, 5)
	if s.NewHighScore() {
		t.Fatal("tying run reported as a new high score")
	}
	if len(scores.saves) != 0 {
		t.Fatalf("tying run saved %v", scores.saves)
	}

	s.Start()
	endRun(t, s, 6)
	if !s.NewHighScore() {
		t.Fatal("run beating the high score not reported")
	}

	s.Start()
	if s.NewHighScore() {
		t.Fatal("flag survived a restart")
	}
}

func TestSessionLowerScoreNotSaved(t *testing.T) {
	s, ui, scores, _ := newTestSession(5)
	s.Start()
	endRun(t, s, 3)

	if len(scores.saves) != 0 {
		t.Fatalf("saves = %v, want none", scores.saves)
	}
	if ui.highScore != 5 {
		t.Fatalf("high score display = %d, want 5", ui.highScore)
	}
	if ui.gameOvers[0] != 3 {
		t.Fatalf("final score shown = %d, want 3", ui.gameOvers[0])
	}
}

func TestSessionScoreDisplay(t *testing.T) {
	s, ui, _, fx := newTestSession(0)
	s.Start()
	st := s.State()
	st.Enemies = []*object.Enemy{object.NewEnemy(100, 100, 1)}
	st.Bullets = append(st.Bullets, &object.Bullet{X: 110, Y: 125})

	s.Tick(&countingSurface{})
	if ui.score != 1 || fx.hits != 1 {
		t.Fatalf("score display %d hits %d, want 1 and 1", ui.score, fx.hits)
	}

	s.Start()
	if ui.score != 0 {
		t.Fatalf("score display after restart = %d, want 0", ui.score)
	}
}

func TestSessionCommands(t *testing.T) {
	s, _, _, fx := newTestSession(0)

	s.HandleCommand(input.CommandLeft)
	if s.Mode() != ModeNotStarted {
		t.Fatal("left started the session")
	}
	s.HandleCommand(input.CommandFire)
	if s.Mode() != ModeRunning {
		t.Fatalf("mode = %v after fire on start screen, want running", s.Mode())
	}
	if fx.fires != 0 {
		t.Fatal("starting with fire also fired a bullet")
	}

	x := s.State().Player.X
	s.HandleCommand(input.CommandRight)
	if s.State().Player.X != x+object.PlayerSpeed {
		t.Fatalf("x = %v, want %v", s.State().Player.X, x+object.PlayerSpeed)
	}
	s.HandleCommand(input.CommandLeft)
	if s.State().Player.X != x {
		t.Fatalf("x = %v, want %v", s.State().Player.X, x)
	}
	s.HandleCommand(input.CommandFire)
	if len(s.State().Bullets) != 1 || fx.fires != 1 {
		t.Fatalf("bullets %d fires %d, want 1 and 1", len(s.State().Bullets), fx.fires)
	}

	endRun(t, s, 0)
	s.HandleCommand(input.CommandFire)
	if s.Mode() != ModeGameOver {
		t.Fatal("fire restarted from the game over screen")
	}
	s.HandleCommand(input.CommandStart)
	if s.Mode() != ModeRunning {
		t.Fatalf("mode = %v after start, want running", s.Mode())
	}
}

func TestSessionSetHighScore(t *testing.T) {
	s, ui, _, _ := newTestSession(10)
	s.SetHighScore(4)
	if s.HighScore() != 10 || ui.highScore != 10 {
		t.Fatalf("lower push changed high score to %d/%d", s.HighScore(), ui.highScore)
	}
	s.SetHighScore(12)
	if s.HighScore() != 12 || ui.highScore != 12 {
		t.Fatalf("high score = %d/%d, want 12", s.HighScore(), ui.highScore)
	}
}

func TestSessionNilEffects(t *testing.T) {
	s := NewSession(newTestState(), &fakeUI{}, &fakeScores{}, nil)
	s.HandleCommand(input.CommandStart)
	s.HandleCommand(input.CommandFire)
	s.Tick(&countingSurface{})
}
