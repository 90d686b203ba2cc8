// Package config centralizes all tunable game parameters.
package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 800 // Logical viewport width
	ViewHeight = 600 // Logical viewport height
)

// Max render resolution in terminal cells. Larger terminals get a centered
// render area so the 4:3 viewport keeps a sane aspect ratio.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 60
)

// Spawning
const (
	SpawnChance = 0.02 // Per-tick probability of a new enemy
)

// High score persistence
const (
	HighScoreKey = "highScore"
)

// Leaderboard
const (
	TopScoresSize     = 5
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
