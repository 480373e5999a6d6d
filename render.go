package trail

import (
	"cmp"
	"slices"
)

// RenderState is what a host needs to draw one slot: an image centered on
// (X, Y), rotated, scaled, and faded. X and Y already include the fade drift.
type RenderState struct {
	Slot     int
	Ref      ImageRef
	X, Y     float64
	Rotation float64 // radians
	ZOrder   int
	Opacity  float64
	Scale    float64
	Visible  bool
}

// SlotRenderState returns the render state of slot i. An index outside the
// pool, or any index after Unmount, gives the zero state, which is hidden.
func (e *Effect) SlotRenderState(i int) RenderState {
	if !e.mounted || !e.pool.Valid(i) {
		return RenderState{}
	}
	return renderState(i, e.pool.Slot(i))
}

// AppendRenderStates appends the visible slots to dst in paint order, lowest
// ZOrder first, and returns the extended slice. Passing a reused buffer
// (dst[:0]) keeps the call allocation-free.
func (e *Effect) AppendRenderStates(dst []RenderState) []RenderState {
	if !e.mounted {
		return dst
	}
	start := len(dst)
	for i := 0; i < e.pool.Len(); i++ {
		s := e.pool.Slot(i)
		if !s.Visible {
			continue
		}
		dst = append(dst, renderState(i, s))
	}
	slices.SortFunc(dst[start:], func(a, b RenderState) int {
		return cmp.Compare(a.ZOrder, b.ZOrder)
	})
	return dst
}

func renderState(i int, s *Slot) RenderState {
	return RenderState{
		Slot:     i,
		Ref:      s.Ref,
		X:        s.Position.X,
		Y:        s.Position.Y + s.OffsetY,
		Rotation: s.Rotation,
		ZOrder:   s.ZOrder,
		Opacity:  s.Opacity,
		Scale:    s.Scale,
		Visible:  s.Visible,
	}
}
