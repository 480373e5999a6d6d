// Package trail is a pointer-triggered image trail for a hero section.
//
// As the pointer crosses the hero container, every time it travels more than
// a threshold distance from the last accepted position the effect "stamps" an
// image at the pointer: the image pops in, dwells, then drifts down and fades
// out. Images come from a fixed pool of slots reused round-robin, so the
// number of live stamps never exceeds the pool size and steady-state updates
// do not allocate.
//
// The package is host-agnostic. It never draws; hosts feed it pointer events
// and frame deltas and read back render states. Two hosts ship with the
// module: package hero renders into an Ebitengine window and package term
// renders into a terminal.
//
// # Quick start
//
//	effect, err := trail.NewEffect([]trail.ImageRef{"a.png", "b.png"}, trail.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer effect.Unmount()
//
//	effect.OnPointerEnter(trail.Vec2{X: 10, Y: 10})
//	effect.OnPointerMove(trail.Vec2{X: 200, Y: 40}) // stamps
//
//	// once per frame
//	effect.Update(dt)
//	states = effect.AppendRenderStates(states[:0])
//
// # Components
//
// The effect is built from three parts that can also be used alone:
//
//   - [Pool] owns the slots and the round-robin cursor.
//   - [Gate] decides which pointer moves are far enough to stamp.
//   - [Driver] runs each slot's pop, dwell, and fade timeline.
//
// # Configuration
//
// [DefaultConfig] returns the stock timings. [LoadConfig] reads a YAML file,
// [ApplyEnv] overlays TRAIL_* environment variables, and [Load] does both.
//
// # Testing and automation
//
// [Effect.InjectEnter], [Effect.InjectMove], and [Effect.InjectPath] queue
// synthetic pointer events consumed one per Update. A [TestRunner] loaded
// from a JSON script drives the same queue and can request screenshots.
package trail
