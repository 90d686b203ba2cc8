package server

import (
	"cmp"
	"slices"

	"github.com/tomz197/shooter/internal/loop/config"
)

// TopScoreEntry represents a single entry on the leaderboard.
type TopScoreEntry struct {
	Username string `json:"username"`
	Score    int    `json:"score"`
	clientID int    // Client that finished the run
	seq      uint64 // Arrival order, breaks ties between equal scores
}

// Leaderboard keeps the best finished runs of the process, highest first.
type Leaderboard struct {
	size    int
	entries []TopScoreEntry
	nextSeq uint64
}

// NewLeaderboard creates a leaderboard holding at most size entries.
func NewLeaderboard(size int) *Leaderboard {
	if size <= 0 {
		size = config.TopScoresSize
	}
	return &Leaderboard{size: size}
}

// Record adds a finished run. Scores of zero are not recorded.
// Reports whether the run made it onto the board.
func (l *Leaderboard) Record(clientID int, username string, score int) bool {
	if score <= 0 {
		return false
	}
	l.nextSeq++
	entry := TopScoreEntry{Username: username, Score: score, clientID: clientID, seq: l.nextSeq}
	i, _ := slices.BinarySearchFunc(l.entries, entry, compareEntries)
	if i >= l.size {
		return false
	}
	l.entries = slices.Insert(l.entries, i, entry)
	if len(l.entries) > l.size {
		l.entries = l.entries[:l.size]
	}
	return true
}

// Entries returns a copy of the board.
func (l *Leaderboard) Entries() []TopScoreEntry {
	return slices.Clone(l.entries)
}

// compareEntries orders by score descending; on equal scores the earlier
// run ranks first.
func compareEntries(a, b TopScoreEntry) int {
	if a.Score != b.Score {
		return b.Score - a.Score
	}
	return cmp.Compare(a.seq, b.seq)
}
