package trail

import "fmt"

// track is the per-slot animation bookkeeping, parallel to the pool arena.
type track struct {
	pop  TweenGroup
	fade TweenGroup
	left float32 // seconds remaining in the current phase
}

// Driver runs stamped slots through Appearing, Visible, and FadingOut and
// back to Idle. It only writes slot fields; drawing is the host's job.
type Driver struct {
	pool   *Pool
	t      timings
	tracks []track
}

// NewDriver binds a driver to pool and puts every slot at rest: idle,
// hidden, transparent, at the rest scale.
func NewDriver(pool *Pool, cfg Config) (*Driver, error) {
	if pool == nil || pool.Len() == 0 {
		return nil, fmt.Errorf("new driver: no pool: %w", ErrInvalidConfiguration)
	}
	t, err := cfg.resolve()
	if err != nil {
		return nil, fmt.Errorf("new driver: %w", err)
	}
	d := &Driver{pool: pool, t: t, tracks: make([]track, pool.Len())}
	for i := range d.tracks {
		d.rest(pool.Slot(i))
	}
	return d, nil
}

// Start stamps slot i at pos and enters Appearing. In-flight tweens on the
// slot are killed first, so a slot still fading out restarts immediately.
// preempted reports whether the slot was not idle.
func (d *Driver) Start(i int, pos Vec2, rotation float64, z int) (preempted bool, err error) {
	if !d.pool.Valid(i) || len(d.tracks) != d.pool.Len() {
		return false, fmt.Errorf("start slot %d: %w", i, ErrInvalidState)
	}
	s := d.pool.Slot(i)
	tr := &d.tracks[i]
	preempted = s.State != SlotIdle
	tr.pop.Stop()
	tr.fade.Stop()

	s.Position = pos
	s.Rotation = rotation
	s.ZOrder = z
	s.Scale = d.t.startScale
	s.Opacity = 1
	s.OffsetY = 0
	s.Visible = true
	s.State = SlotAppearing

	tr.pop = TweenScale(s, 1, d.t.pop, d.t.popEase)
	tr.left = d.t.appearFor()
	return preempted, nil
}

// Update advances every busy slot by dt seconds. Time left over at a phase
// boundary carries into the next phase.
func (d *Driver) Update(dt float32) {
	if dt < 0 {
		dt = 0
	}
	for i := range d.tracks {
		s := d.pool.Slot(i)
		if s == nil || s.State == SlotIdle {
			continue
		}
		d.advance(s, &d.tracks[i], dt)
	}
}

func (d *Driver) advance(s *Slot, tr *track, dt float32) {
	// With FadeFromStamp the pop runs on its own clock and may outlast
	// Appearing.
	if d.t.fromStamp {
		tr.pop.Update(dt)
	}
	for {
		switch s.State {
		case SlotAppearing:
			if dt < tr.left {
				if !d.t.fromStamp {
					tr.pop.Update(dt)
				}
				tr.left -= dt
				return
			}
			dt -= tr.left
			if !d.t.fromStamp {
				tr.pop.Finish()
			}
			s.State = SlotVisible
			tr.left = d.t.holdFor()
		case SlotVisible:
			if dt < tr.left {
				tr.left -= dt
				return
			}
			dt -= tr.left
			s.State = SlotFadingOut
			tr.fade = TweenFade(s, d.t.fadeOffset, 0, d.t.fade, d.t.fadeEase)
			tr.left = d.t.fade
		case SlotFadingOut:
			if dt < tr.left {
				tr.fade.Update(dt)
				tr.left -= dt
				return
			}
			tr.fade.Finish()
			tr.pop.Finish()
			s.State = SlotIdle
			s.Visible = false
			tr.left = 0
			return
		default:
			return
		}
	}
}

// StopAll kills every tween and returns all slots to rest. Used on unmount
// so no slot is left half-interpolated.
func (d *Driver) StopAll() {
	for i := range d.tracks {
		d.tracks[i].pop.Stop()
		d.tracks[i].fade.Stop()
		d.tracks[i].left = 0
		if s := d.pool.Slot(i); s != nil {
			d.rest(s)
		}
	}
}

// Active returns the number of slots in a non-idle phase.
func (d *Driver) Active() int {
	return d.pool.Busy()
}

// Remaining returns the seconds left in slot i's current phase.
func (d *Driver) Remaining(i int) float32 {
	if !d.pool.Valid(i) || i >= len(d.tracks) {
		return 0
	}
	return d.tracks[i].left
}

func (d *Driver) rest(s *Slot) {
	s.State = SlotIdle
	s.Visible = false
	s.Opacity = 0
	s.OffsetY = 0
	s.Scale = d.t.restScale
}
