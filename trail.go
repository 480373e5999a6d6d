package trail

import (
	"errors"
	"math"
)

// ErrInvalidConfiguration is returned when an Effect, Pool, or Gate is
// constructed with an empty image list or a non-positive size or distance.
var ErrInvalidConfiguration = errors.New("trail: invalid configuration")

// ErrInvalidState reports an internal contract violation, such as driving a
// slot index the pool does not own. It is never expected through the public
// Effect API.
var ErrInvalidState = errors.New("trail: invalid state")

// ImageRef identifies an image resource. The effect never looks inside it;
// hosts map refs to pixels.
type ImageRef string

// Vec2 is a 2D point in the hero container's local space. Y grows downward.
type Vec2 struct {
	X, Y float64
}

// Dist returns the Euclidean distance between v and o.
func (v Vec2) Dist(o Vec2) float64 {
	return math.Hypot(v.X-o.X, v.Y-o.Y)
}

// Rect is an axis-aligned rectangle with its origin at the top-left.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Range is a min/max range sampled uniformly.
type Range struct {
	Min, Max float64
}

// Sample maps u in [0, 1) onto the range.
func (r Range) Sample(u float64) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + u*(r.Max-r.Min)
}

// Rand is the random source used for cosmetic jitter. *math/rand/v2.Rand
// satisfies it.
type Rand interface {
	Float64() float64
}

// SlotState is the lifecycle phase of a slot.
type SlotState uint8

const (
	SlotIdle      SlotState = iota // hidden, eligible for reuse
	SlotAppearing                  // popping in toward full scale
	SlotVisible                    // holding at full scale
	SlotFadingOut                  // drifting down while opacity falls to zero
)

// String returns the phase name.
func (s SlotState) String() string {
	switch s {
	case SlotIdle:
		return "idle"
	case SlotAppearing:
		return "appearing"
	case SlotVisible:
		return "visible"
	case SlotFadingOut:
		return "fading-out"
	default:
		return "unknown"
	}
}

// BusyPolicy decides what happens when the round-robin cursor lands on a slot
// that is still animating.
type BusyPolicy uint8

const (
	BusyPreempt  BusyPolicy = iota // restart the slot at Appearing (default)
	BusySkipBusy                   // advance to the next idle slot, drop the stamp if none
)

// String returns the config name of the policy.
func (p BusyPolicy) String() string {
	switch p {
	case BusySkipBusy:
		return "skip-busy"
	default:
		return "preempt"
	}
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180
}
