package trail

import (
	"fmt"
	"log"
	"math/rand/v2"
	"os"
)

// StampEvent describes one stamp, delivered to OnStamp handlers after the
// slot has entered Appearing.
type StampEvent struct {
	Slot      int
	Ref       ImageRef
	Position  Vec2
	Rotation  float64
	ZOrder    int
	Preempted bool // the slot was still animating and was restarted
}

// Stats counts what the effect has done since mount.
type Stats struct {
	Moves       int // pointer moves seen
	Triggers    int // moves accepted by the gate
	Stamps      int // slots started
	Preemptions int // stamps that restarted a busy slot
	Dropped     int // accepted triggers with no slot (skip-busy only)
	Errors      int // internal contract violations
	Active      int // slots currently animating
}

type stampHandler struct {
	id uint32
	fn func(StampEvent)
}

// CallbackHandle removes a registered handler.
type CallbackHandle struct {
	id uint32
	e  *Effect
}

// Remove unregisters the handler so it no longer fires. Safe to call twice.
func (h CallbackHandle) Remove() {
	if h.e == nil {
		return
	}
	hs := h.e.handlers
	for i := range hs {
		if hs[i].id == h.id {
			copy(hs[i:], hs[i+1:])
			hs[len(hs)-1] = stampHandler{}
			h.e.handlers = hs[:len(hs)-1]
			return
		}
	}
}

// Option configures an Effect at mount time.
type Option func(*Effect)

// WithRand sets the random source for rotation jitter. Tests pass a fixed
// source to make stamps reproducible.
func WithRand(r Rand) Option {
	return func(e *Effect) { e.rng = r }
}

// WithLogger replaces the default stderr logger.
func WithLogger(l *log.Logger) Option {
	return func(e *Effect) { e.logger = l }
}

// WithDebug enables per-second stats logging and use-after-unmount warnings.
func WithDebug(enabled bool) Option {
	return func(e *Effect) { e.debug = enabled }
}

type defaultRand struct{}

func (defaultRand) Float64() float64 { return rand.Float64() }

// Effect is one mounted image trail: a pool of slots, a trigger gate, and the
// lifecycle driver, fed by pointer moves from the host. It is not safe for
// concurrent use; hosts call it from their update loop only.
type Effect struct {
	cfg    Config
	t      timings
	pool   *Pool
	gate   *Gate
	driver *Driver

	rng     Rand
	zOrder  int
	mounted bool

	handlers []stampHandler
	nextID   uint32

	logger     *log.Logger
	debug      bool
	stats      Stats
	debugAccum float32
	debugLast  Stats

	injectQueue []syntheticMove
	testRunner  *TestRunner
}

// NewEffect mounts an image trail over images. It fails with
// ErrInvalidConfiguration when images is empty or cfg is invalid, in which
// case the host should show no trail at all.
func NewEffect(images []ImageRef, cfg Config, opts ...Option) (*Effect, error) {
	t, err := cfg.resolve()
	if err != nil {
		return nil, fmt.Errorf("mount effect: %w", err)
	}
	pool, err := NewPool(images, cfg.PoolSize)
	if err != nil {
		return nil, fmt.Errorf("mount effect: %w", err)
	}
	gate, err := NewGate(cfg.Threshold)
	if err != nil {
		return nil, fmt.Errorf("mount effect: %w", err)
	}
	driver, err := NewDriver(pool, cfg)
	if err != nil {
		return nil, fmt.Errorf("mount effect: %w", err)
	}
	e := &Effect{
		cfg:     cfg,
		t:       t,
		pool:    pool,
		gate:    gate,
		driver:  driver,
		rng:     defaultRand{},
		mounted: true,
		debug:   cfg.Debug,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.New(os.Stderr, "[trail] ", log.LstdFlags)
	}
	return e, nil
}

// Mounted reports whether the effect is live. Unmounted effects ignore input.
func (e *Effect) Mounted() bool {
	return e.mounted
}

// Unmount stops every in-flight animation, returns all slots to rest, and
// releases the pool. The effect cannot be remounted; create a new one.
func (e *Effect) Unmount() {
	if !e.mounted {
		return
	}
	e.driver.StopAll()
	e.pool.release()
	e.handlers = nil
	e.injectQueue = e.injectQueue[:0]
	e.testRunner = nil
	e.mounted = false
	if e.debug {
		e.logger.Printf("unmounted after %d stamps", e.stats.Stamps)
	}
}

// OnPointerEnter arms the trigger gate at the pointer's entry position.
func (e *Effect) OnPointerEnter(p Vec2) {
	if !e.live("OnPointerEnter") {
		return
	}
	e.gate.Enter(p)
}

// OnPointerLeave disarms the gate. Stamps already running finish normally.
func (e *Effect) OnPointerLeave() {
	if !e.live("OnPointerLeave") {
		return
	}
	e.gate.Leave()
}

// OnPointerMove feeds one pointer position through the gate and stamps the
// next slot when the gate fires. It reports whether a stamp started.
func (e *Effect) OnPointerMove(p Vec2) bool {
	if !e.live("OnPointerMove") {
		return false
	}
	e.stats.Moves++
	at, fired := e.gate.OnPointerMove(p)
	if !fired {
		return false
	}
	e.stats.Triggers++
	return e.stamp(at)
}

func (e *Effect) stamp(at Vec2) bool {
	var i int
	if e.t.policy == BusySkipBusy {
		var ok bool
		if i, ok = e.pool.NextIdleSlot(); !ok {
			e.stats.Dropped++
			return false
		}
	} else {
		i = e.pool.NextSlot()
	}

	z := e.zOrder + 1
	rot := e.t.rotation.Sample(e.rng.Float64())
	preempted, err := e.driver.Start(i, at, rot, z)
	if err != nil {
		e.stats.Errors++
		e.logger.Printf("stamp dropped: %v", err)
		return false
	}
	e.zOrder = z
	e.stats.Stamps++
	if preempted {
		e.stats.Preemptions++
	}

	if len(e.handlers) > 0 {
		s := e.pool.Slot(i)
		evt := StampEvent{
			Slot:      i,
			Ref:       s.Ref,
			Position:  at,
			Rotation:  rot,
			ZOrder:    e.zOrder,
			Preempted: preempted,
		}
		for _, h := range e.handlers {
			h.fn(evt)
		}
	}
	return true
}

// Update advances the effect by dt seconds: one queued synthetic move is
// consumed, the test runner steps, and every busy slot animates.
func (e *Effect) Update(dt float32) {
	if !e.mounted {
		return
	}
	if e.testRunner != nil {
		e.testRunner.step(e)
	}
	e.processInjectedInput()
	e.driver.Update(dt)
	if e.debug {
		e.debugTick(dt)
	}
}

// OnStamp registers fn to run after every stamp.
func (e *Effect) OnStamp(fn func(StampEvent)) CallbackHandle {
	e.nextID++
	e.handlers = append(e.handlers, stampHandler{id: e.nextID, fn: fn})
	return CallbackHandle{id: e.nextID, e: e}
}

// Stats returns the counters since mount.
func (e *Effect) Stats() Stats {
	s := e.stats
	if e.mounted {
		s.Active = e.driver.Active()
	}
	return s
}

// ZOrder returns the most recently assigned paint order; 0 before any stamp.
func (e *Effect) ZOrder() int {
	return e.zOrder
}

// Pool returns the slot arena. It is empty after Unmount.
func (e *Effect) Pool() *Pool {
	return e.pool
}

// Gate returns the trigger gate.
func (e *Effect) Gate() *Gate {
	return e.gate
}

// Config returns the config the effect was mounted with.
func (e *Effect) Config() Config {
	return e.cfg
}

// SetDebugMode toggles stats logging at runtime.
func (e *Effect) SetDebugMode(enabled bool) {
	e.debug = enabled
}

func (e *Effect) live(op string) bool {
	if e.mounted {
		return true
	}
	if e.debug {
		e.logger.Printf("warning: %s after unmount", op)
	}
	return false
}
