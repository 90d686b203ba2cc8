package server

import (
	"testing"

	"github.com/tomz197/shooter/internal/loop/config"
	"github.com/tomz197/shooter/internal/store"
)

func TestParseHighScore(t *testing.T) {
	cases := []struct {
		value   string
		want    int
		wantErr bool
	}{
		{"0", 0, false},
		{"42", 42, false},
		{"-1", 0, true},
		{"", 0, true},
		{"12abc", 0, true},
		{"3.5", 0, true},
	}
	for _, tc := range cases {
		got, err := ParseHighScore(tc.value)
		if (err != nil) != tc.wantErr {
			t.Fatalf("ParseHighScore(%q) err = %v, wantErr %v", tc.value, err, tc.wantErr)
		}
		if got != tc.want {
			t.Fatalf("ParseHighScore(%q) = %d, want %d", tc.value, got, tc.want)
		}
	}
}

func TestFormatHighScoreRoundTrip(t *testing.T) {
	got, err := ParseHighScore(FormatHighScore(1234))
	if err != nil || got != 1234 {
		t.Fatalf("got %d, %v, want 1234", got, err)
	}
}

func TestReadHighScore(t *testing.T) {
	kv := store.NewMemory()
	if got, err := ReadHighScore(kv); err != nil || got != 0 {
		t.Fatalf("missing key = %d, %v, want 0 and no error", got, err)
	}

	kv.Set(config.HighScoreKey, "17")
	if got, err := ReadHighScore(kv); err != nil || got != 17 {
		t.Fatalf("got %d, %v, want 17", got, err)
	}

	kv.Set(config.HighScoreKey, "-3")
	if _, err := ReadHighScore(kv); err == nil {
		t.Fatal("negative stored value accepted")
	}

	if _, err := ReadHighScore(failingStore{}); err == nil {
		t.Fatal("store error swallowed")
	}
}
