package game

import (
	"github.com/tomz197/shooter/internal/draw"
	"github.com/tomz197/shooter/internal/input"
)

// UI reflects session state to the player.
type UI interface {
	ShowStartScreen()
	ShowGameOverScreen(finalScore int)
	UpdateScoreDisplay(score int)
	UpdateHighScoreDisplay(highScore int)
}

// HighScores persists the best score. Implementations handle their own
// failures: LoadHighScore falls back to 0 and SaveHighScore is best effort.
type HighScores interface {
	LoadHighScore() int
	SaveHighScore(v int)
}

// Effects plays feedback for game events.
type Effects interface {
	Fire()
	Hit()
	GameOver()
}

// Session drives one State and mirrors its score and high score onto a UI.
type Session struct {
	state     *State
	ui        UI
	scores    HighScores
	effects   Effects
	highScore int
	newRecord bool // Last finished run beat the high score
}

// NewSession loads the high score and shows the start screen.
// effects may be nil.
func NewSession(state *State, ui UI, scores HighScores, effects Effects) *Session {
	if effects == nil {
		effects = nopEffects{}
	}
	s := &Session{
		state:   state,
		ui:      ui,
		scores:  scores,
		effects: effects,
	}
	s.highScore = max(scores.LoadHighScore(), 0)
	ui.UpdateHighScoreDisplay(s.highScore)
	ui.ShowStartScreen()
	return s
}

// State returns the underlying simulation state.
func (s *Session) State() *State {
	return s.state
}

// Mode returns the current session mode.
func (s *Session) Mode() Mode {
	return s.state.Mode
}

// HighScore returns the best score known to this session.
func (s *Session) HighScore() int {
	return s.highScore
}

// NewHighScore reports whether the last finished run set a new high score.
// A run that only ties the high score does not.
func (s *Session) NewHighScore() bool {
	return s.newRecord
}

// Start starts or restarts a run.
func (s *Session) Start() {
	s.newRecord = false
	s.state.Start()
	s.highScore = max(s.highScore, s.scores.LoadHighScore())
	s.ui.UpdateScoreDisplay(s.state.Score)
	s.ui.UpdateHighScoreDisplay(s.highScore)
}

// Tick advances a running session by one frame. It returns false once the
// session has stopped and no further ticks should be scheduled.
func (s *Session) Tick(surface draw.Surface) bool {
	if s.state.Mode != ModeRunning {
		return false
	}

	before := s.state.Score
	step := s.state.Tick(surface)
	if s.state.Score != before {
		s.effects.Hit()
		s.ui.UpdateScoreDisplay(s.state.Score)
	}

	if step == StepHalt {
		s.gameOver()
		return false
	}
	return true
}

// gameOver shows the final score and records a new high score.
func (s *Session) gameOver() {
	final := s.state.Score
	s.newRecord = final > s.highScore
	s.effects.GameOver()
	s.ui.ShowGameOverScreen(final)
	if s.newRecord {
		s.highScore = final
		s.scores.SaveHighScore(final)
		s.ui.UpdateHighScoreDisplay(final)
	}
}

// HandleCommand applies one input command. Quit is left to the driver.
//
// While running, Left/Right move the player and Fire shoots. On the start
// screen Start or Fire begins a run; after game over only Start restarts,
// so a held fire key does not skip the game over screen.
func (s *Session) HandleCommand(cmd input.Command) {
	switch s.state.Mode {
	case ModeRunning:
		switch cmd {
		case input.CommandLeft:
			s.state.MoveLeft()
		case input.CommandRight:
			s.state.MoveRight()
		case input.CommandFire:
			if s.state.Fire() {
				s.effects.Fire()
			}
		}
	case ModeNotStarted:
		if cmd == input.CommandStart || cmd == input.CommandFire {
			s.Start()
		}
	case ModeGameOver:
		if cmd == input.CommandStart {
			s.Start()
		}
	}
}

// SetHighScore raises the displayed high score to v, for scores set by
// other sessions. Lower values are ignored.
func (s *Session) SetHighScore(v int) {
	if v <= s.highScore {
		return
	}
	s.highScore = v
	s.ui.UpdateHighScoreDisplay(v)
}

type nopEffects struct{}

func (nopEffects) Fire()     {}
func (nopEffects) Hit()      {}
func (nopEffects) GameOver() {}
