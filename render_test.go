package trail

import "testing"

// --- Render state ---

func TestAppendRenderStatesPaintOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PoolSize = 3
	e := newTestEffect(t, []ImageRef{"A", "B", "C"}, cfg)
	e.OnPointerEnter(Vec2{0, -150})
	for _, p := range []Vec2{{0, 0}, {150, 0}, {150, 150}, {0, 150}} {
		e.OnPointerMove(p)
	}

	states := e.AppendRenderStates(nil)
	if len(states) != 3 {
		t.Fatalf("len = %d, want 3", len(states))
	}
	wantZ := []int{2, 3, 4}
	wantSlot := []int{1, 2, 0}
	for i, st := range states {
		if st.ZOrder != wantZ[i] || st.Slot != wantSlot[i] {
			t.Errorf("state %d = slot %d z %d; want slot %d z %d",
				i, st.Slot, st.ZOrder, wantSlot[i], wantZ[i])
		}
		if !st.Visible || st.Opacity != 1 {
			t.Errorf("state %d should be fully visible", i)
		}
	}
	if states[2].Ref != "A" || states[2].X != 0 || states[2].Y != 150 {
		t.Errorf("newest stamp = %+v", states[2])
	}
}

func TestAppendRenderStatesHidesIdle(t *testing.T) {
	e := newTestEffect(t, []ImageRef{"A"}, DefaultConfig())
	if got := e.AppendRenderStates(nil); len(got) != 0 {
		t.Errorf("fresh effect rendered %d stamps", len(got))
	}
	e.OnPointerEnter(Vec2{0, 0})
	e.OnPointerMove(Vec2{200, 0})
	e.Update(1.5)
	if got := e.AppendRenderStates(nil); len(got) != 0 {
		t.Errorf("finished stamp still rendered: %+v", got)
	}
}

func TestRenderStateIncludesFadeOffset(t *testing.T) {
	e := newTestEffect(t, []ImageRef{"A"}, DefaultConfig())
	e.OnPointerEnter(Vec2{0, 0})
	e.OnPointerMove(Vec2{200, 50})
	e.Update(0.9) // 0.4s into the fade

	st := e.SlotRenderState(0)
	s := e.Pool().Slot(0)
	if s.OffsetY <= 0 {
		t.Fatalf("offset = %v, want drift", s.OffsetY)
	}
	if st.Y != 50+s.OffsetY || st.X != 200 {
		t.Errorf("render position (%v, %v), want (200, %v)", st.X, st.Y, 50+s.OffsetY)
	}
}

func TestAppendRenderStatesReusesBuffer(t *testing.T) {
	e := newTestEffect(t, []ImageRef{"A", "B"}, DefaultConfig())
	e.OnPointerEnter(Vec2{0, 0})
	for i := 1; i <= 5; i++ {
		e.OnPointerMove(Vec2{float64(i) * 150, 0})
	}
	buf := make([]RenderState, 0, 16)
	allocs := testing.AllocsPerRun(100, func() {
		buf = e.AppendRenderStates(buf[:0])
	})
	if allocs != 0 {
		t.Errorf("AppendRenderStates allocates %v times per call", allocs)
	}
	if len(buf) != 5 {
		t.Errorf("len = %d, want 5", len(buf))
	}
}
