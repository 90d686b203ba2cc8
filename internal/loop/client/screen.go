package client

import (
	"fmt"
	"time"

	"github.com/tomz197/shooter/internal/draw"
	"github.com/tomz197/shooter/internal/loop/config"
	"github.com/tomz197/shooter/internal/loop/game"
)

// drawFrame presents the canvas with the UI overlay for the current state.
// The canvas only changes when the session ticks, so start and game over
// screens are drawn over the last frame.
func (c *Client) drawFrame() error {
	c.texts = c.texts[:0]
	c.drawUI()
	return c.backend.Present(c.canvas, c.texts)
}

// text queues a line centered on centerX.
func (c *Client) text(centerX, row int, value string, color draw.Color) {
	c.texts = append(c.texts, draw.Centered(centerX, row, value, color))
}

// drawUI draws the game UI overlay.
func (c *Client) drawUI() {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth/2 + 1
	centerY := termHeight / 2

	if c.state.shutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}

	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	c.drawHUD(termWidth)
	switch c.session.Mode() {
	case game.ModeNotStarted:
		c.drawStartScreen(centerX, centerY)
	case game.ModeGameOver:
		c.drawGameOverScreen(centerX, centerY)
	}
}

// drawHUD draws the score (top left) and high score (top right).
// Text fields use fixed-width formatting so shrinking values don't leave
// residual characters on screen.
func (c *Client) drawHUD(termWidth int) {
	scoreText := fmt.Sprintf("Score: %-6d", c.state.Score)
	c.texts = append(c.texts, draw.Text{X: 2, Y: 1, Value: scoreText, Color: draw.ColorYellow})

	highText := fmt.Sprintf("High Score: %-6d", c.state.HighScore)
	c.texts = append(c.texts, draw.Text{X: termWidth - len(highText), Y: 1, Value: highText, Color: draw.ColorYellow})
}

// drawInactivityScreen draws the inactivity warning screen.
func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.text(centerX, centerY-2, "INACTIVITY WARNING", draw.ColorYellow)

	remaining := int(config.InactivityDisconnectUser - time.Since(c.lastInput).Seconds())
	c.text(centerX, centerY, fmt.Sprintf("You will be disconnected in %d seconds.", max(remaining, 0)), draw.ColorNone)
	c.text(centerX, centerY+2, "Press any key to continue", draw.ColorNone)
}

// drawStartScreen draws the title screen.
func (c *Client) drawStartScreen(centerX, centerY int) {
	// ASCII art title (figlet "small" font)
	titleArt := []string{
		`  ___ _  _  ___   ___ _____ ___ ___  `,
		` / __| || |/ _ \ / _ \_   _| __| _ \ `,
		` \__ \ __ | (_) | (_) || | | _||   / `,
		` |___/_||_|\___/ \___/ |_| |___|_|_\ `,
	}

	titleStartY := centerY - 6
	for i, line := range titleArt {
		c.text(centerX, titleStartY+i, line, draw.ColorGreen)
	}

	// Controls section
	controlsY := titleStartY + len(titleArt) + 2
	c.text(centerX, controlsY, "Controls", draw.ColorNone)
	controlLines := []string{
		"A D / < > . . . Move",
		"SPACE . . . . . Shoot",
		"Q . . . . . . . Quit",
	}
	for i, line := range controlLines {
		c.text(centerX, controlsY+1+i, line, draw.ColorNone)
	}

	// Blinking start prompt
	if blinkOn() {
		c.text(centerX, controlsY+len(controlLines)+2, ">>  Press SPACE to Start  <<", draw.ColorWhite)
	}
}

// drawGameOverScreen draws the final score, the leaderboard and the restart prompt.
func (c *Client) drawGameOverScreen(centerX, centerY int) {
	titleArt := []string{
		`   ___   _   __  __ ___    _____   _____ ___  `,
		`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
		` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
		`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
	}

	titleStartY := centerY - 6
	for i, line := range titleArt {
		c.text(centerX, titleStartY+i, line, draw.ColorRed)
	}

	row := titleStartY + len(titleArt) + 1
	c.text(centerX, row, fmt.Sprintf("Score: %d", c.state.FinalScore), draw.ColorNone)
	if c.session.NewHighScore() {
		row++
		c.text(centerX, row, "New high score!", draw.ColorYellow)
	}

	if len(c.state.TopScores) > 0 {
		row += 2
		c.text(centerX, row, "Top scores", draw.ColorNone)
		for i, e := range c.state.TopScores {
			name := e.Username
			if name == "" {
				name = "anonymous"
			}
			row++
			c.text(centerX, row, fmt.Sprintf("%d. %-16s %6d", i+1, name, e.Score), draw.ColorNone)
		}
	}

	if blinkOn() {
		c.text(centerX, row+2, ">>  Press ENTER to Restart  <<", draw.ColorWhite)
	}
}

// drawShutdownScreen draws the server shutdown notification screen.
func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.text(centerX, centerY-3, "SERVER SHUTTING DOWN", draw.ColorYellow)
	c.text(centerX, centerY-1, "The server is restarting for maintenance.", draw.ColorNone)
	c.text(centerX, centerY, "Please reconnect in a moment.", draw.ColorNone)

	remaining := int(c.state.shutdownTimer) + 1
	c.text(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", remaining), draw.ColorNone)
	c.text(centerX, centerY+4, "Press Q to disconnect now", draw.ColorNone)
}

// blinkOn toggles prompts on and off every 600ms.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}
