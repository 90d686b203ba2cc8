// Package server holds the state shared by every client of the process:
// the persisted high score and the leaderboard of finished runs.
package server

import (
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/shooter/internal/loop/config"
	"github.com/tomz197/shooter/internal/store"
)

// GameServer is the interface clients use to communicate with the server.
// Decouples the Client from the concrete Server implementation, enabling
// testing.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	LoadHighScore() int
	SaveHighScore(clientID, score int)
	RecordScore(clientID, score int)
	TopScores() []TopScoreEntry
	Players() int
}

// Server manages the high score and notifies clients when it changes.
type Server struct {
	store        store.KV
	logger       *log.Logger
	highScore    int
	leaderboard  *Leaderboard
	clients      map[int]*ClientHandle
	nextClientID int
	mu           sync.RWMutex
}

// Compile-time check that Server implements GameServer.
var _ GameServer = (*Server)(nil)

// ClientHandle represents a client's connection to the server.
type ClientHandle struct {
	ID       int
	Username string           // Display name for this client
	EventsCh chan ClientEvent // Events sent to client (high score, shutdown)
}

// ClientEvent represents an event sent from server to client.
type ClientEvent struct {
	Type      ClientEventType
	HighScore int // For high score events
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventHighScore ClientEventType = iota
	EventServerShutdown
)

// NewServer creates a server persisting the high score in kv.
// A nil logger discards log output.
func NewServer(kv store.KV, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	s := &Server{
		store:        kv,
		logger:       logger,
		leaderboard:  NewLeaderboard(config.TopScoresSize),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
	}
	s.highScore = s.readStored()
	return s
}

// Shutdown gracefully shuts down the server by notifying all connected clients
// and waiting for them to disconnect (up to the given timeout).
func (s *Server) Shutdown(timeout time.Duration) {
	// Notify all connected clients about the shutdown
	s.mu.RLock()
	for _, handle := range s.clients {
		select {
		case handle.EventsCh <- ClientEvent{Type: EventServerShutdown}:
		default:
		}
	}
	s.mu.RUnlock()

	// Wait for all clients to disconnect, or timeout
	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			return
		case <-ticker.C:
			if s.Players() == 0 {
				return
			}
		}
	}
}

// RegisterClient registers a new client with the given username and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextClientID
	s.nextClientID++

	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}
	handle := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.clients[id] = handle
	s.logger.Debug("client registered", "client", id, "username", username)
	return handle
}

// UnregisterClient removes a client from the server and closes its events channel.
func (s *Server) UnregisterClient(clientID int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if handle, ok := s.clients[clientID]; ok {
		close(handle.EventsCh)
		delete(s.clients, clientID)
		s.logger.Debug("client unregistered", "client", clientID)
	}
}

// Players returns the number of connected clients.
func (s *Server) Players() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// LoadHighScore returns the best score, re-reading the store so values
// written by other processes are picked up. It never returns less than a
// value this server has already seen.
func (s *Server) LoadHighScore() int {
	stored := s.readStored()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.highScore = max(s.highScore, stored)
	return s.highScore
}

// SaveHighScore raises the high score to score and persists it. Lower
// scores are ignored. Other clients are notified of the new value.
// A failed write is logged and the in-memory value is kept.
func (s *Server) SaveHighScore(clientID, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if score <= s.highScore {
		return
	}
	s.highScore = score

	if err := s.store.Set(config.HighScoreKey, FormatHighScore(score)); err != nil {
		s.logger.Warn("failed to save high score", "score", score, "err", err)
	}
	s.logger.Info("new high score", "client", clientID, "score", score)

	for id, handle := range s.clients {
		if id == clientID {
			continue
		}
		select {
		case handle.EventsCh <- ClientEvent{Type: EventHighScore, HighScore: score}:
		default:
			// Events channel full, drop event
		}
	}
}

// RecordScore adds a finished run to the leaderboard.
func (s *Server) RecordScore(clientID, score int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username := ""
	if handle, ok := s.clients[clientID]; ok {
		username = handle.Username
	}
	s.leaderboard.Record(clientID, username, score)
}

// TopScores returns the leaderboard, highest first.
func (s *Server) TopScores() []TopScoreEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.leaderboard.Entries()
}

// readStored returns the persisted high score, or 0 when it is missing or
// unreadable.
func (s *Server) readStored() int {
	n, err := ReadHighScore(s.store)
	if err != nil {
		s.logger.Warn("ignoring stored high score", "err", err)
		return 0
	}
	return n
}
