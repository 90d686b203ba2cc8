// Package client runs the frame loop of a single player: it reads input,
// ticks the session and presents the result on a terminal backend.
package client

import (
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tomz197/shooter/internal/draw"
	"github.com/tomz197/shooter/internal/input"
	"github.com/tomz197/shooter/internal/loop/config"
	"github.com/tomz197/shooter/internal/loop/game"
	"github.com/tomz197/shooter/internal/loop/server"
	"github.com/tomz197/shooter/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server    server.GameServer
	handle    *server.ClientHandle
	state     *ClientState
	session   *game.Session
	canvas    *draw.Canvas
	backend   draw.Backend
	source    input.Source
	logger    *log.Logger
	texts     []draw.Text
	lastInput time.Time
	idleLimit bool
	sessionID string
}

// ClientOptions configures the client.
type ClientOptions struct {
	Username string
	// SessionID correlates log lines; a random id is generated when empty.
	SessionID string
	// Screen is the logical viewport; zero uses config.ViewWidth x config.ViewHeight.
	Screen object.Screen
	// Effects plays sounds for game events; nil is silent.
	Effects game.Effects
	// Rand drives enemy spawning; nil seeds a new generator.
	Rand *rand.Rand
	// DisconnectIdle warns and then disconnects inactive players.
	DisconnectIdle bool
	// KeepOffscreenEnemies keeps enemies that left the bottom of the screen.
	KeepOffscreenEnemies bool
	Logger               *log.Logger
}

// Ensure Client satisfies game.UI.
var _ game.UI = (*Client)(nil)

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, backend draw.Backend, source input.Source, opts ClientOptions) *Client {
	screen := opts.Screen
	if screen.Width <= 0 || screen.Height <= 0 {
		screen = object.Screen{Width: config.ViewWidth, Height: config.ViewHeight}
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	sessionID := opts.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	logger = logger.With("session", sessionID)

	handle := gs.RegisterClient(opts.Username)
	c := &Client{
		server:    gs,
		handle:    handle,
		state:     NewClientState(),
		backend:   backend,
		source:    source,
		logger:    logger,
		lastInput: time.Now(),
		idleLimit: opts.DisconnectIdle,
		sessionID: sessionID,
	}

	st := game.NewState(screen, object.NewEnemySpawner(rng, config.SpawnChance))
	st.KeepOffscreenEnemies = opts.KeepOffscreenEnemies
	c.session = game.NewSession(st, c, serverScores{gs, handle.ID}, opts.Effects)

	// Canvas starts empty and takes its size from the backend on the first frame
	c.canvas = draw.NewScaledCanvas(0, 0, screen.Width, screen.Height)
	return c
}

// SessionID returns the id used to tag this client's log lines.
func (c *Client) SessionID() string {
	return c.sessionID
}

// Run starts the client loop. Blocks until the player quits, the input
// source closes or the server shutdown countdown ends.
func (c *Client) Run() error {
	defer c.server.UnregisterClient(c.handle.ID)
	if closer, ok := c.source.(io.Closer); ok {
		defer closer.Close()
	}

	if err := c.backend.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}
	defer c.backend.Close()

	c.logger.Info("client started", "client", c.handle.ID, "username", c.handle.Username)
	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		// Process input
		c.processInput()
		if !c.state.Running {
			break
		}

		// Check for server events
		c.processServerEvents()

		// Handle screen resize
		if err := c.updateScreen(); err != nil {
			return fmt.Errorf("resize: %w", err)
		}

		c.update()

		// Draw frame
		if err := c.drawFrame(); err != nil {
			return fmt.Errorf("draw frame: %w", err)
		}

		// Frame timing
		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.logger.Info("client stopped", "client", c.handle.ID, "highScore", c.state.HighScore)
	return nil
}

// processInput applies pending commands to the session in arrival order.
func (c *Client) processInput() {
	cmds := c.source.Poll()

	if len(cmds) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if c.idleLimit {
		idle := time.Since(c.lastInput).Seconds()
		if idle > config.InactivityDisconnectUser {
			c.logger.Info("disconnecting inactive client", "client", c.handle.ID)
			c.state.Running = false
		} else if idle > config.InactivityWarnUser {
			c.state.isInactive = true
		}
	}

	for _, cmd := range cmds {
		if cmd == input.CommandQuit {
			c.state.Running = false
			return
		}
		if c.state.shutdown {
			continue
		}
		c.session.HandleCommand(cmd)
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				// Server closed the channel
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventHighScore:
				c.session.SetHighScore(event.HighScore)
			case server.EventServerShutdown:
				c.state.shutdown = true
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
// On actual size changes, clears the terminal to remove residual pixels
// outside the new canvas area.
func (c *Client) updateScreen() error {
	termWidth, termHeight, err := c.backend.Size()
	if err != nil {
		return nil // Keep the previous size
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		if err := c.backend.Clear(); err != nil {
			return err
		}
		c.canvas.Resize(renderWidth, renderHeight)
		c.canvas.SetOffset(offsetCol, offsetRow)
		c.redraw()
	}
	return nil
}

// redraw repaints a frozen frame after a resize discarded the pixels.
func (c *Client) redraw() {
	st := c.session.State()
	if st.Mode == game.ModeRunning {
		return // The next tick repaints everything
	}
	c.canvas.Clear()
	for _, e := range st.Enemies {
		e.Draw(c.canvas)
	}
	for _, b := range st.Bullets {
		b.Draw(c.canvas)
	}
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

// update advances the session or the shutdown countdown.
func (c *Client) update() {
	if c.state.shutdown {
		c.state.shutdownTimer -= c.state.delta.Seconds()
		if c.state.shutdownTimer <= 0 {
			c.state.Running = false
		}
		return
	}
	if c.session.Mode() == game.ModeRunning {
		c.session.Tick(c.canvas)
	}
}

// ShowStartScreen implements game.UI.
func (c *Client) ShowStartScreen() {
	c.state.ShowStartScreen()
}

// ShowGameOverScreen implements game.UI and records the run on the leaderboard.
func (c *Client) ShowGameOverScreen(finalScore int) {
	c.state.ShowGameOverScreen(finalScore)
	c.server.RecordScore(c.handle.ID, finalScore)
	c.state.TopScores = c.server.TopScores()
	c.logger.Info("game over", "client", c.handle.ID, "score", finalScore)
}

// UpdateScoreDisplay implements game.UI.
func (c *Client) UpdateScoreDisplay(score int) {
	c.state.UpdateScoreDisplay(score)
}

// UpdateHighScoreDisplay implements game.UI.
func (c *Client) UpdateHighScoreDisplay(highScore int) {
	c.state.UpdateHighScoreDisplay(highScore)
}

// serverScores binds the session's high score to the shared server.
type serverScores struct {
	server   server.GameServer
	clientID int
}

func (s serverScores) LoadHighScore() int  { return s.server.LoadHighScore() }
func (s serverScores) SaveHighScore(v int) { s.server.SaveHighScore(s.clientID, v) }
