// Package web serves the landing page and the read-only high score API.
package web

import (
	_ "embed"
	"encoding/json"
	"html/template"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/tomz197/shooter/internal/loop/server"
	"github.com/tomz197/shooter/internal/store"
)

//go:embed index.html
var indexHTML string

var indexTemplate = template.Must(template.New("index").Parse(indexHTML))

// HighScoreResponse is the JSON body of the high score endpoint and the
// messages of the live feed.
type HighScoreResponse struct {
	HighScore int `json:"highScore"`
}

// Handler serves the web routes.
type Handler struct {
	store        store.KV
	sshHost      string
	sshPort      string
	logger       *log.Logger
	pollInterval time.Duration
	upgrader     websocket.Upgrader
}

// Options configures the handler.
type Options struct {
	SSHHost string
	SSHPort string
	// PollInterval is how often the live feed re-reads the store.
	PollInterval time.Duration
	Logger       *log.Logger
}

// NewHandler creates a handler reading the high score from kv.
func NewHandler(kv store.KV, opts Options) *Handler {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Handler{
		store:        kv,
		sshHost:      opts.SSHHost,
		sshPort:      opts.SSHPort,
		logger:       opts.Logger,
		pollInterval: opts.PollInterval,
		upgrader: websocket.Upgrader{
			// The feed is read-only public data
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Router returns the routes of the web server.
func (h *Handler) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", h.index).Methods(http.MethodGet)
	r.HandleFunc("/api/highscore", h.highScore).Methods(http.MethodGet)
	r.HandleFunc("/ws", h.feed)
	return r
}

func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		SSHHost   string
		SSHPort   string
		HighScore int
	}{h.sshHost, h.sshPort, h.load()}
	if err := indexTemplate.Execute(w, data); err != nil {
		h.logger.Error("render index", "err", err)
	}
}

func (h *Handler) highScore(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	if err := json.NewEncoder(w).Encode(HighScoreResponse{HighScore: h.load()}); err != nil {
		h.logger.Error("encode high score", "err", err)
	}
}

// feed streams the high score over a websocket, sending the current value
// on connect and again whenever it changes.
func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("upgrade", "err", err)
		return
	}
	defer conn.Close()

	// Reader goroutine: handles pongs and notices when the peer goes away
	done := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	poll := time.NewTicker(h.pollInterval)
	defer poll.Stop()
	ping := time.NewTicker(25 * time.Second)
	defer ping.Stop()

	last := -1
	send := func() error {
		current := h.load()
		if current == last {
			return nil
		}
		last = current
		_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		return conn.WriteJSON(HighScoreResponse{HighScore: current})
	}

	if err := send(); err != nil {
		return
	}
	for {
		select {
		case <-done:
			return
		case <-poll.C:
			if err := send(); err != nil {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// load reads the stored high score, treating any failure as 0.
func (h *Handler) load() int {
	n, err := server.ReadHighScore(h.store)
	if err != nil {
		h.logger.Warn("ignoring stored high score", "err", err)
		return 0
	}
	return n
}
