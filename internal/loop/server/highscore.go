package server

import (
	"fmt"
	"strconv"

	"github.com/tomz197/shooter/internal/loop/config"
	"github.com/tomz197/shooter/internal/store"
)

// ParseHighScore decodes a persisted high score. Values that are not
// non-negative base-10 integers are rejected.
func ParseHighScore(value string) (int, error) {
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("parse high score %q: %w", value, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("negative high score %d", n)
	}
	return n, nil
}

// FormatHighScore encodes a high score for persistence.
func FormatHighScore(score int) string {
	return strconv.Itoa(score)
}

// ReadHighScore returns the high score stored in kv. A missing key reads
// as 0 without error.
func ReadHighScore(kv store.KV) (int, error) {
	value, ok, err := kv.Get(config.HighScoreKey)
	if err != nil {
		return 0, fmt.Errorf("load high score: %w", err)
	}
	if !ok {
		return 0, nil
	}
	return ParseHighScore(value)
}
