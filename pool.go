package trail

import "fmt"

// DefaultPoolSize is the number of slots in DefaultConfig.
const DefaultPoolSize = 10

// Slot is one reusable stamp. Ref is fixed at construction; everything else
// is rewritten each time the slot is stamped.
type Slot struct {
	Ref      ImageRef
	State    SlotState
	Position Vec2
	ZOrder   int
	Rotation float64 // radians

	// Animated render fields, written by the slot's tween groups.
	Scale   float64
	Opacity float64
	OffsetY float64
	Visible bool
}

// Pool owns a fixed arena of slots and a round-robin cursor. Slots are
// addressed by index; the pool never hands out pointers that outlive it.
type Pool struct {
	slots []Slot
	next  int
}

// NewPool builds size slots, binding slot i to images[i mod len(images)].
// All slots start idle and hidden.
func NewPool(images []ImageRef, size int) (*Pool, error) {
	if len(images) == 0 {
		return nil, fmt.Errorf("new pool: empty image list: %w", ErrInvalidConfiguration)
	}
	if size <= 0 {
		return nil, fmt.Errorf("new pool: size %d: %w", size, ErrInvalidConfiguration)
	}
	p := &Pool{slots: make([]Slot, size)}
	for i := range p.slots {
		p.slots[i].Ref = images[i%len(images)]
	}
	return p, nil
}

// NextSlot returns the index under the cursor and advances the cursor by one,
// wrapping at the pool size. It does not touch the slot itself.
func (p *Pool) NextSlot() int {
	i := p.next
	p.next++
	if p.next == len(p.slots) {
		p.next = 0
	}
	return i
}

// NextIdleSlot scans forward from the cursor for an idle slot. On success the
// cursor moves just past the returned slot. When every slot is busy the cursor
// is left alone and ok is false.
func (p *Pool) NextIdleSlot() (i int, ok bool) {
	n := len(p.slots)
	for k := 0; k < n; k++ {
		j := (p.next + k) % n
		if p.slots[j].State == SlotIdle {
			p.next = (j + 1) % n
			return j, true
		}
	}
	return -1, false
}

// Slot returns the slot at index i, or nil when i is out of range. The
// pointer stays valid until the pool is released.
func (p *Pool) Slot(i int) *Slot {
	if !p.Valid(i) {
		return nil
	}
	return &p.slots[i]
}

// Valid reports whether i addresses a slot in this pool.
func (p *Pool) Valid(i int) bool {
	return p != nil && i >= 0 && i < len(p.slots)
}

// Len returns the pool size.
func (p *Pool) Len() int {
	return len(p.slots)
}

// Cursor returns the index NextSlot will return next.
func (p *Pool) Cursor() int {
	return p.next
}

// Busy returns the number of slots not currently idle.
func (p *Pool) Busy() int {
	n := 0
	for i := range p.slots {
		if p.slots[i].State != SlotIdle {
			n++
		}
	}
	return n
}

// release drops the slot arena. The pool reads as empty afterwards: Len is
// 0 and Slot returns nil for every index.
func (p *Pool) release() {
	p.slots = nil
	p.next = 0
}
