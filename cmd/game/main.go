package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"golang.org/x/term"

	"github.com/tomz197/shooter/internal/audio"
	"github.com/tomz197/shooter/internal/config"
	"github.com/tomz197/shooter/internal/draw"
	"github.com/tomz197/shooter/internal/input"
	"github.com/tomz197/shooter/internal/loop/client"
	lconfig "github.com/tomz197/shooter/internal/loop/config"
	"github.com/tomz197/shooter/internal/loop/game"
	"github.com/tomz197/shooter/internal/loop/server"
	"github.com/tomz197/shooter/internal/object"
	"github.com/tomz197/shooter/internal/store"
)

const (
	defaultBackend       = "tcell"
	defaultHighScoreFile = ".shooter-highscore.yaml"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	backendName := strings.ToLower(config.GetEnv("SHOOTER_BACKEND", defaultBackend))
	soundEnabled := config.GetEnvBool("SHOOTER_SOUND", true)
	highScoreFile := config.GetEnv("SHOOTER_HIGHSCORE_FILE", defaultHighScoreFile)
	logFile := config.GetEnv("SHOOTER_LOG_FILE", "")
	screen := object.Screen{
		Width:  float64(config.GetEnvInt("SHOOTER_WIDTH", lconfig.ViewWidth)),
		Height: float64(config.GetEnvInt("SHOOTER_HEIGHT", lconfig.ViewHeight)),
	}

	// The terminal is the game screen, so logs go to a file or nowhere
	var logOut io.Writer = io.Discard
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := log.NewWithOptions(logOut, log.Options{
		ReportTimestamp: true,
		Prefix:          "shooter",
		Level:           log.DebugLevel,
	})

	var effects game.Effects = audio.Silent{}
	if soundEnabled {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			logger.Warn("sound disabled", "err", err)
		} else {
			defer sm.Cleanup()
			effects = sm
		}
	}

	gameServer := server.NewServer(store.NewFile(highScoreFile), logger)
	opts := client.ClientOptions{
		Username: os.Getenv("USER"),
		Screen:   screen,
		Effects:  effects,
		Logger:   logger,
	}

	var err error
	switch backendName {
	case "tcell":
		err = runTcell(gameServer, opts)
	case "ansi":
		err = runANSI(gameServer, opts)
	default:
		err = fmt.Errorf("unknown backend %q (want tcell or ansi)", backendName)
	}
	if err != nil {
		logger.Error("game error", "err", err)
	}
	return err
}

// runTcell plays using a tcell screen for both drawing and key events.
func runTcell(gs server.GameServer, opts client.ClientOptions) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	backend := draw.NewTcellBackend(screen)
	// The input source polls the screen, so it must be initialized first
	if err := backend.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	source := input.NewTcellSource(screen)

	return client.NewClient(gs, backend, source, opts).Run()
}

// runANSI plays in raw mode writing escape sequences to stdout.
func runANSI(gs server.GameServer, opts client.ClientOptions) error {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	backend := draw.NewANSIBackend(os.Stdout, draw.DefaultTermSizeFunc)
	source := input.StartStream(bufio.NewReader(os.Stdin))

	return client.NewClient(gs, backend, source, opts).Run()
}
