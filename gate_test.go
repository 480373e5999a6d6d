package trail

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"
)

func TestNewGateInvalid(t *testing.T) {
	for _, th := range []float64{0, -1, math.NaN()} {
		if _, err := NewGate(th); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("NewGate(%v) err = %v, want ErrInvalidConfiguration", th, err)
		}
	}
}

func TestGateShortMoveNoTrigger(t *testing.T) {
	g, _ := NewGate(100)
	g.Enter(Vec2{0, 0})
	if _, fired := g.OnPointerMove(Vec2{50, 0}); fired {
		t.Error("a 50 unit move should not fire with threshold 100")
	}
	if g.Last() != (Vec2{0, 0}) {
		t.Errorf("Last = %v, want entry point", g.Last())
	}
}

func TestGateBoundary(t *testing.T) {
	g, _ := NewGate(100)
	g.Enter(Vec2{0, 0})
	if _, fired := g.OnPointerMove(Vec2{100, 0}); fired {
		t.Error("exactly the threshold should not fire")
	}
	at, fired := g.OnPointerMove(Vec2{100.5, 0})
	if !fired || at != (Vec2{100.5, 0}) {
		t.Errorf("OnPointerMove = %v, %v; want fire at (100.5, 0)", at, fired)
	}
	if g.Last() != at {
		t.Error("fired position should become the new reference")
	}
}

func TestGateMeasuresFromLastAccepted(t *testing.T) {
	g, _ := NewGate(100)
	g.Enter(Vec2{0, 0})
	// Small steps accumulate; the gate measures from the entry point, not the
	// previous sample.
	fired := 0
	for x := 10.0; x <= 250; x += 10 {
		if _, ok := g.OnPointerMove(Vec2{x, 0}); ok {
			fired++
		}
	}
	if fired != 2 {
		t.Errorf("fired %d times over 250 units, want 2", fired)
	}
	if g.Last() != (Vec2{220, 0}) {
		t.Errorf("Last = %v, want (220, 0)", g.Last())
	}
}

func TestGateUnarmedMoveArms(t *testing.T) {
	g, _ := NewGate(100)
	if _, fired := g.OnPointerMove(Vec2{500, 500}); fired {
		t.Error("first move on an unarmed gate must not fire")
	}
	if !g.Armed() || g.Last() != (Vec2{500, 500}) {
		t.Error("first move should arm the gate at its position")
	}
	g.Leave()
	if g.Armed() {
		t.Error("Leave should disarm")
	}
}

func TestGateIffProperty(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	g, _ := NewGate(100)
	g.Enter(Vec2{0, 0})
	for i := 0; i < 5000; i++ {
		p := Vec2{r.Float64()*800 - 400, r.Float64()*800 - 400}
		last := g.Last()
		dist := math.Hypot(p.X-last.X, p.Y-last.Y)
		_, fired := g.OnPointerMove(p)
		if fired != (dist > 100) {
			t.Fatalf("move %d: dist %.3f fired=%v", i, dist, fired)
		}
		if fired && g.Last() != p {
			t.Fatalf("move %d: reference not updated", i)
		}
	}
}

func TestGateZeroAlloc(t *testing.T) {
	g, _ := NewGate(100)
	g.Enter(Vec2{0, 0})
	x := 0.0
	allocs := testing.AllocsPerRun(1000, func() {
		x += 60
		g.OnPointerMove(Vec2{x, 0})
	})
	if allocs != 0 {
		t.Errorf("OnPointerMove allocates %v times per call", allocs)
	}
}
