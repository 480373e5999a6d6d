package trail

import "fmt"

// DefaultThreshold is the pointer displacement, in container units, that must
// be exceeded before a new stamp fires.
const DefaultThreshold = 100.0

// Gate filters a pointer-move stream by displacement. It fires at most once
// per move, and only when the pointer is more than Threshold away from the
// last accepted position.
type Gate struct {
	threshold float64
	last      Vec2
	armed     bool
}

// NewGate creates a disarmed gate. The first position it sees becomes the
// reference point without firing.
func NewGate(threshold float64) (*Gate, error) {
	if !(threshold > 0) {
		return nil, fmt.Errorf("new gate: threshold %v: %w", threshold, ErrInvalidConfiguration)
	}
	return &Gate{threshold: threshold}, nil
}

// Enter arms the gate at the pointer's entry position. The first stamp fires
// only once the pointer has moved past the threshold from here.
func (g *Gate) Enter(p Vec2) {
	g.last = p
	g.armed = true
}

// Leave disarms the gate. The next move or Enter re-arms it.
func (g *Gate) Leave() {
	g.armed = false
}

// OnPointerMove returns (p, true) when p is strictly farther than the
// threshold from the last accepted position, and records p as the new
// reference. A move on a disarmed gate arms it at p and never fires.
func (g *Gate) OnPointerMove(p Vec2) (Vec2, bool) {
	if !g.armed {
		g.Enter(p)
		return Vec2{}, false
	}
	if p.Dist(g.last) <= g.threshold {
		return Vec2{}, false
	}
	g.last = p
	return p, true
}

// Last returns the last accepted (or entry) position.
func (g *Gate) Last() Vec2 {
	return g.last
}

// Armed reports whether the gate has a reference position.
func (g *Gate) Armed() bool {
	return g.armed
}

// Threshold returns the firing distance.
func (g *Gate) Threshold() float64 {
	return g.threshold
}
