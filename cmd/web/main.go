package main

import (
	"errors"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/shooter/internal/config"
	"github.com/tomz197/shooter/internal/store"
	"github.com/tomz197/shooter/internal/web"
)

const (
	defaultHost          = "0.0.0.0"
	defaultPort          = "8080"
	defaultHighScoreFile = "/app/data/highscore.yaml"
)

func main() {
	host := config.GetEnv("WEB_HOST", defaultHost)
	port := config.GetEnv("WEB_PORT", defaultPort)
	sshHost := config.GetEnv("SSH_DISPLAY_HOST", "your-server.com")
	sshPort := config.GetEnv("SSH_DISPLAY_PORT", "22")
	highScoreFile := config.GetEnv("SHOOTER_HIGHSCORE_FILE", defaultHighScoreFile)

	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "shooter-web",
	})

	h := web.NewHandler(store.NewFile(highScoreFile), web.Options{
		SSHHost: sshHost,
		SSHPort: sshPort,
		Logger:  logger,
	})

	addr := net.JoinHostPort(host, port)
	srv := &http.Server{
		Addr:              addr,
		Handler:           h.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("Starting web server", "url", "http://"+addr, "highScoreFile", highScoreFile)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("server error", "err", err)
	}
}
