package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// SweepGenerator generates a sine tone whose frequency moves linearly from
// one value to another over a fixed duration, with a decaying envelope.
type SweepGenerator struct {
	sr        beep.SampleRate
	from, to  float64
	samples   int
	amplitude float64
	pos       int
	phase     float64
}

// NewSweepGenerator creates a sweep from one frequency to another.
func NewSweepGenerator(sr beep.SampleRate, from, to float64, d time.Duration, amplitude float64) *SweepGenerator {
	return &SweepGenerator{
		sr:        sr,
		from:      from,
		to:        to,
		samples:   max(sr.N(d), 1),
		amplitude: amplitude,
	}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.samples), 1)
		freq := g.from + (g.to-g.from)*progress

		// Phase accumulation keeps the waveform continuous while the frequency moves
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		envelope := 1 - progress
		sample := g.amplitude * envelope * math.Sin(g.phase)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}

// NoiseGenerator generates a burst of white noise over a low rumble with a
// fast exponential decay.
type NoiseGenerator struct {
	sr        beep.SampleRate
	seed      int64
	amplitude float64
	pos       int
}

// NewNoiseGenerator creates a noise burst generator.
func NewNoiseGenerator(sr beep.SampleRate, seed int64, amplitude float64) *NoiseGenerator {
	return &NoiseGenerator{
		sr:        sr,
		seed:      seed,
		amplitude: amplitude,
	}
}

func (g *NoiseGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := math.Exp(-t * 15)

		g.seed = (g.seed*1103515245 + 12345) & 0x7fffffff
		noise := float64(g.seed)/float64(0x7fffffff)*2 - 1
		rumble := 0.5 * math.Sin(2*math.Pi*70*t)

		sample := g.amplitude * envelope * (0.6*noise + 0.4*rumble)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseGenerator) Err() error {
	return nil
}
