package trail

import (
	"fmt"
	"strings"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields of a Slot together. Create one
// with TweenScale or TweenFade and call Update(dt) each frame. Finished
// groups snap their fields to the exact targets.
//
// There is no global animation manager; the Driver owns every group.
type TweenGroup struct {
	tweens [2]*gween.Tween
	ends   [2]float64
	fields [2]*float64
	count  int
	Done   bool
}

// Update advances all tweens by dt seconds and writes the eased values to
// the target fields. A Done group is a no-op.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		if finished {
			*g.fields[i] = g.ends[i]
			continue
		}
		*g.fields[i] = float64(val)
		allDone = false
	}
	g.Done = allDone
}

// Stop marks the group done without touching its fields, leaving them at
// whatever value the last Update wrote.
func (g *TweenGroup) Stop() {
	g.Done = true
}

// Finish writes every target value and marks the group done.
func (g *TweenGroup) Finish() {
	if g.Done {
		return
	}
	for i := 0; i < g.count; i++ {
		*g.fields[i] = g.ends[i]
	}
	g.Done = true
}

func (g *TweenGroup) add(field *float64, to float64, duration float32, fn ease.TweenFunc) {
	g.tweens[g.count] = gween.New(float32(*field), float32(to), duration, fn)
	g.ends[g.count] = to
	g.fields[g.count] = field
	g.count++
}

// TweenScale animates s.Scale to the target over duration seconds.
func TweenScale(s *Slot, to float64, duration float32, fn ease.TweenFunc) TweenGroup {
	var g TweenGroup
	g.add(&s.Scale, to, duration, fn)
	return g
}

// TweenFade animates s.OffsetY to offset and s.Opacity to opacity together.
func TweenFade(s *Slot, offset, opacity float64, duration float32, fn ease.TweenFunc) TweenGroup {
	var g TweenGroup
	g.add(&s.OffsetY, offset, duration, fn)
	g.add(&s.Opacity, opacity, duration, fn)
	return g
}

var easings = map[string]ease.TweenFunc{
	"linear":        ease.Linear,
	"in-quad":       ease.InQuad,
	"out-quad":      ease.OutQuad,
	"in-out-quad":   ease.InOutQuad,
	"in-cubic":      ease.InCubic,
	"out-cubic":     ease.OutCubic,
	"in-out-cubic":  ease.InOutCubic,
	"in-sine":       ease.InSine,
	"out-sine":      ease.OutSine,
	"in-out-sine":   ease.InOutSine,
	"in-expo":       ease.InExpo,
	"out-expo":      ease.OutExpo,
	"in-back":       ease.InBack,
	"out-back":      ease.OutBack,
	"in-out-back":   ease.InOutBack,
	"out-elastic":   ease.OutElastic,
	"out-bounce":    ease.OutBounce,
	"in-out-bounce": ease.InOutBounce,
}

// EaseByName resolves a config easing name such as "out-back". Names are
// case-insensitive; GSAP-style aliases ("power2.in", "back.out") are accepted,
// where power1 is quad and power2 is cubic.
func EaseByName(name string) (ease.TweenFunc, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	switch key {
	case "power1.in":
		key = "in-quad"
	case "power1.out":
		key = "out-quad"
	case "power2.in":
		key = "in-cubic"
	case "power2.out":
		key = "out-cubic"
	case "back.out":
		key = "out-back"
	}
	fn, ok := easings[key]
	if !ok {
		return nil, fmt.Errorf("unknown easing %q: %w", name, ErrInvalidConfiguration)
	}
	return fn, nil
}
