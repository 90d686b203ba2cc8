package client

import (
	"time"

	"github.com/tomz197/shooter/internal/loop/server"
)

// ClientState holds what the UI shows for one player. The session writes
// it through the game.UI methods; the frame loop reads it when drawing.
type ClientState struct {
	Score         int  // Score of the current run
	HighScore     int  // Best score known to this client
	FinalScore    int  // Score of the last finished run
	StartShown    bool // Title screen requested
	Running       bool // Client loop running
	TopScores     []server.TopScoreEntry
	delta         time.Duration // Frame delta time
	shutdown      bool          // Server is shutting down
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
}

// NewClientState creates a new initialized client state.
func NewClientState() *ClientState {
	return &ClientState{
		Running: true,
	}
}

// ShowStartScreen requests the title screen.
func (s *ClientState) ShowStartScreen() {
	s.StartShown = true
}

// ShowGameOverScreen records the final score for the game over screen.
func (s *ClientState) ShowGameOverScreen(finalScore int) {
	s.FinalScore = finalScore
}

// UpdateScoreDisplay sets the HUD score.
func (s *ClientState) UpdateScoreDisplay(score int) {
	s.Score = score
}

// UpdateHighScoreDisplay sets the HUD high score.
func (s *ClientState) UpdateHighScoreDisplay(highScore int) {
	s.HighScore = highScore
}
