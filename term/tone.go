package term

import (
	"fmt"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const toneRate = beep.SampleRate(44100)

// Tone is a short sine blip played through the system speaker.
type Tone struct {
	freq   float64
	length int // samples
	live   bool
}

// NewTone opens the speaker and prepares a blip of freq Hz lasting d.
// Terminals without audio get an error; callers run silent.
func NewTone(freq float64, d time.Duration) (*Tone, error) {
	t := &Tone{freq: freq, length: toneRate.N(d)}
	if _, err := t.streamer(); err != nil {
		return nil, err
	}
	if err := speaker.Init(toneRate, toneRate.N(time.Second/10)); err != nil {
		return nil, fmt.Errorf("init speaker: %w", err)
	}
	t.live = true
	return t, nil
}

func (t *Tone) streamer() (beep.Streamer, error) {
	sine, err := generators.SineTone(toneRate, t.freq)
	if err != nil {
		return nil, fmt.Errorf("tone %.0f Hz: %w", t.freq, err)
	}
	return beep.Take(t.length, sine), nil
}

// Play queues one blip. It never blocks.
func (t *Tone) Play() {
	if t == nil || !t.live {
		return
	}
	s, err := t.streamer()
	if err != nil {
		return
	}
	speaker.Play(s)
}

// Close shuts the speaker down. Later Play calls are ignored.
func (t *Tone) Close() {
	if t == nil || !t.live {
		return
	}
	t.live = false
	speaker.Close()
}
