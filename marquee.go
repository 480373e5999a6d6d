package trail

import (
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Marquee is the narrow-viewport stand-in for the trail: a strip of images
// that scrolls left at constant speed forever. Progress runs from 0 to
// -Shift of the strip width and wraps.
type Marquee struct {
	seq   *gween.Sequence
	shift float64
	pos   float64 // fraction of the strip width, in [-shift, 0]
}

// NewMarquee creates a marquee that covers shift (a fraction of the strip
// width, 0 < shift <= 1) every period.
func NewMarquee(period time.Duration, shift float64) (*Marquee, error) {
	if period <= 0 {
		return nil, fmt.Errorf("new marquee: period %v: %w", period, ErrInvalidConfiguration)
	}
	if !(shift > 0) || shift > 1 {
		return nil, fmt.Errorf("new marquee: shift %v: %w", shift, ErrInvalidConfiguration)
	}
	seq := gween.NewSequence(gween.New(0, float32(-shift), float32(period.Seconds()), ease.Linear))
	seq.SetLoop(-1)
	return &Marquee{seq: seq, shift: shift}, nil
}

// NewMarqueeFromConfig builds the marquee described by cfg.
func NewMarqueeFromConfig(cfg Config) (*Marquee, error) {
	return NewMarquee(cfg.MarqueeDuration, cfg.MarqueeShift)
}

// Update advances the scroll by dt seconds.
func (m *Marquee) Update(dt float32) {
	v, _, _ := m.seq.Update(dt)
	m.pos = float64(v)
	// A loop boundary reports the end value; it is the same frame as 0.
	if m.pos <= -m.shift {
		m.pos = 0
	}
}

// Progress returns the current offset as a fraction of the strip width,
// in (-shift, 0].
func (m *Marquee) Progress() float64 {
	return m.pos
}

// Offset returns the x translation in pixels for a strip stripWidth wide.
func (m *Marquee) Offset(stripWidth float64) float64 {
	return m.pos * stripWidth
}

// Strip repeats images copies times, the layout the marquee scrolls. Three
// copies keep a -50% shift seamless.
func Strip(images []ImageRef, copies int) []ImageRef {
	copies = max(copies, 0)
	out := make([]ImageRef, 0, len(images)*copies)
	for i := 0; i < copies; i++ {
		out = append(out, images...)
	}
	return out
}
