// Package audio plays the game's sound effects through the system speaker.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)
)

// Effect durations.
const (
	fireDuration     = 80 * time.Millisecond
	hitDuration      = 200 * time.Millisecond
	gameOverDuration = 900 * time.Millisecond
)

// Sweep endpoints in Hz. Fire rises, game over falls.
const (
	fireStartHz     = 880
	fireEndHz       = 1320
	gameOverStartHz = 440
	gameOverEndHz   = 110
)

// SoundManager mixes short effects onto a single speaker stream.
// All methods are no-ops until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	seed        int64
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
		seed:  time.Now().UnixNano(),
	}
}

// Initialize opens the speaker and starts the mixer.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// 100ms buffer keeps latency low enough for per-shot effects
	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// Fire plays the short rising blip of a shot.
func (sm *SoundManager) Fire() {
	sm.play(beep.Take(sampleRate.N(fireDuration), NewSweepGenerator(sampleRate, fireStartHz, fireEndHz, fireDuration, 0.15)))
}

// Hit plays the crackle of a destroyed enemy.
func (sm *SoundManager) Hit() {
	sm.mu.Lock()
	sm.seed++
	seed := sm.seed
	sm.mu.Unlock()

	sm.play(beep.Take(sampleRate.N(hitDuration), NewNoiseGenerator(sampleRate, seed, 0.3)))
}

// GameOver plays a long falling tone.
func (sm *SoundManager) GameOver() {
	sm.play(beep.Take(sampleRate.N(gameOverDuration), NewSweepGenerator(sampleRate, gameOverStartHz, gameOverEndHz, gameOverDuration, 0.3)))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Silent discards every effect. It is used when no audio device is available.
type Silent struct{}

func (Silent) Fire()     {}
func (Silent) Hit()      {}
func (Silent) GameOver() {}
