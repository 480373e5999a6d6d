package trail

import (
	"errors"
	"testing"
)

func TestNewPool(t *testing.T) {
	p, err := NewPool([]ImageRef{"A", "B", "C"}, 7)
	if err != nil {
		t.Fatal(err)
	}
	if p.Len() != 7 {
		t.Fatalf("Len = %d, want 7", p.Len())
	}
	want := []ImageRef{"A", "B", "C", "A", "B", "C", "A"}
	for i, ref := range want {
		s := p.Slot(i)
		if s.Ref != ref {
			t.Errorf("slot %d ref = %q, want %q", i, s.Ref, ref)
		}
		if s.State != SlotIdle || s.Visible {
			t.Errorf("slot %d should start idle and hidden", i)
		}
	}
	if p.Cursor() != 0 {
		t.Errorf("Cursor = %d, want 0", p.Cursor())
	}
}

func TestNewPoolInvalid(t *testing.T) {
	tests := []struct {
		name   string
		images []ImageRef
		size   int
	}{
		{"empty images", nil, 10},
		{"zero size", []ImageRef{"A"}, 0},
		{"negative size", []ImageRef{"A"}, -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPool(tt.images, tt.size)
			if !errors.Is(err, ErrInvalidConfiguration) {
				t.Errorf("err = %v, want ErrInvalidConfiguration", err)
			}
		})
	}
}

func TestNextSlotRoundRobinCoverage(t *testing.T) {
	for n := 1; n <= 12; n++ {
		p, err := NewPool([]ImageRef{"A", "B"}, n)
		if err != nil {
			t.Fatal(err)
		}
		// Several laps, each covering every slot exactly once.
		for lap := 0; lap < 3; lap++ {
			seen := make([]bool, n)
			for k := 0; k < n; k++ {
				i := p.NextSlot()
				if i != k {
					t.Fatalf("n=%d lap %d: pick %d = %d, want %d", n, lap, k, i, k)
				}
				if seen[i] {
					t.Fatalf("n=%d: slot %d picked twice in one lap", n, i)
				}
				seen[i] = true
			}
		}
	}
}

func TestNextSlotLeavesSlotAlone(t *testing.T) {
	p, _ := NewPool([]ImageRef{"A"}, 2)
	before := *p.Slot(0)
	p.NextSlot()
	if *p.Slot(0) != before {
		t.Error("NextSlot should not modify the slot")
	}
}

func TestNextIdleSlot(t *testing.T) {
	p, _ := NewPool([]ImageRef{"A"}, 3)
	p.Slot(0).State = SlotFadingOut
	p.Slot(1).State = SlotVisible

	i, ok := p.NextIdleSlot()
	if !ok || i != 2 {
		t.Fatalf("NextIdleSlot = %d, %v; want 2, true", i, ok)
	}
	if p.Cursor() != 0 {
		t.Errorf("cursor = %d, want 0 after taking slot 2", p.Cursor())
	}

	p.Slot(2).State = SlotAppearing
	if _, ok := p.NextIdleSlot(); ok {
		t.Error("expected no idle slot")
	}
	if p.Cursor() != 0 {
		t.Error("cursor should not move when every slot is busy")
	}
	if p.Busy() != 3 {
		t.Errorf("Busy = %d, want 3", p.Busy())
	}
}

func TestPoolValid(t *testing.T) {
	p, _ := NewPool([]ImageRef{"A"}, 2)
	for _, tt := range []struct {
		i    int
		want bool
	}{{-1, false}, {0, true}, {1, true}, {2, false}} {
		if got := p.Valid(tt.i); got != tt.want {
			t.Errorf("Valid(%d) = %v, want %v", tt.i, got, tt.want)
		}
	}
	if p.Slot(2) != nil || p.Slot(-1) != nil {
		t.Error("out-of-range Slot should be nil")
	}
	p.release()
	if p.Valid(0) || p.Slot(0) != nil {
		t.Error("released pool should own no slots")
	}
}

func TestNextSlotZeroAlloc(t *testing.T) {
	p, _ := NewPool([]ImageRef{"A", "B", "C"}, 10)
	allocs := testing.AllocsPerRun(1000, func() {
		p.NextSlot()
	})
	if allocs != 0 {
		t.Errorf("NextSlot allocates %v times per call", allocs)
	}
}
