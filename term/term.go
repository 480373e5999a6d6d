// Package term hosts a trail.Effect in a terminal. Mouse motion reported by
// tcell drives the trail and each stamp is painted as a rotated block of
// shaded cells. The whole terminal is the hero container.
package term

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/phanxgames/trail"
)

// Config sets how cells map to the effect's pixel space.
type Config struct {
	// CellW and CellH are the pixel size of one cell. Defaults are 8 and 16.
	CellW, CellH int
	// FPS is the update and redraw rate of Run. Default 60.
	FPS int
	// ShowStats prints live effect counters on the top row.
	ShowStats bool
}

func (c Config) withDefaults() Config {
	if c.CellW <= 0 {
		c.CellW = 8
	}
	if c.CellH <= 0 {
		c.CellH = 16
	}
	if c.FPS <= 0 {
		c.FPS = 60
	}
	return c
}

var (
	background = tcell.NewRGBColor(0xED, 0xE6, 0xD6)
	statsFg    = tcell.NewRGBColor(0x40, 0x3A, 0x30)
)

// shades are picked by opacity, densest first.
var shades = [...]rune{'█', '▓', '▒', '░'}

// Renderer feeds terminal events to an effect and paints its slots.
type Renderer struct {
	screen tcell.Screen
	effect *trail.Effect
	cfg    Config

	hovering bool
	states   []trail.RenderState

	tone       *Tone
	toneHandle trail.CallbackHandle
}

// NewRenderer binds effect to an initialized screen and turns on mouse
// motion and focus reporting.
func NewRenderer(screen tcell.Screen, effect *trail.Effect, cfg Config) *Renderer {
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	return &Renderer{
		screen: screen,
		effect: effect,
		cfg:    cfg.withDefaults(),
	}
}

// AttachTone plays t on every stamp until Close.
func (r *Renderer) AttachTone(t *Tone) {
	r.toneHandle.Remove()
	r.tone = t
	r.toneHandle = r.effect.OnStamp(func(trail.StampEvent) { t.Play() })
}

// Close detaches the tone and unmounts the effect. The screen is left to
// the caller.
func (r *Renderer) Close() {
	r.toneHandle.Remove()
	if r.tone != nil {
		r.tone.Close()
		r.tone = nil
	}
	r.effect.Unmount()
}

// CellToPixel returns the pixel-space center of cell (x, y).
func (r *Renderer) CellToPixel(x, y int) trail.Vec2 {
	return trail.Vec2{
		X: (float64(x) + 0.5) * float64(r.cfg.CellW),
		Y: (float64(y) + 0.5) * float64(r.cfg.CellH),
	}
}

// HandleEvent applies one terminal event. It returns false when the user
// asked to quit with Esc, Ctrl-C, or q.
func (r *Renderer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyRune:
			if ev.Rune() == 'q' {
				return false
			}
		}
	case *tcell.EventMouse:
		x, y := ev.Position()
		w, h := r.screen.Size()
		if x < 0 || y < 0 || x >= w || y >= h {
			r.pointerOut()
			return true
		}
		p := r.CellToPixel(x, y)
		if !r.hovering {
			r.hovering = true
			r.effect.OnPointerEnter(p)
			return true
		}
		r.effect.OnPointerMove(p)
	case *tcell.EventFocus:
		if !ev.Focused {
			r.pointerOut()
		}
	case *tcell.EventResize:
		r.screen.Sync()
	}
	return true
}

func (r *Renderer) pointerOut() {
	if !r.hovering {
		return
	}
	r.hovering = false
	r.effect.OnPointerLeave()
}

// Draw paints the visible slots in paint order and shows the frame.
func (r *Renderer) Draw() {
	r.paint()
	r.screen.Show()
}

func (r *Renderer) paint() {
	bg := tcell.StyleDefault.Background(background)
	r.screen.Fill(' ', bg)
	w, h := r.screen.Size()

	// Stamps fill the same 30% by 40% box the windowed host fits images to.
	boxW := float64(w*r.cfg.CellW) * 0.3
	boxH := float64(h*r.cfg.CellH) * 0.4

	r.states = r.effect.AppendRenderStates(r.states[:0])
	for i := range r.states {
		r.paintStamp(&r.states[i], boxW, boxH, w, h, bg)
	}
	if r.cfg.ShowStats {
		r.paintStats(w, bg.Foreground(statsFg))
	}
}

func (r *Renderer) paintStamp(st *trail.RenderState, boxW, boxH float64, w, h int, bg tcell.Style) {
	if st.Opacity <= 0 || st.Scale <= 0 {
		return
	}
	halfW := boxW * st.Scale / 2
	halfH := boxH * st.Scale / 2
	reach := math.Hypot(halfW, halfH)
	cw, ch := float64(r.cfg.CellW), float64(r.cfg.CellH)

	x0 := clamp(int(math.Floor((st.X-reach)/cw)), 0, w)
	x1 := clamp(int(math.Ceil((st.X+reach)/cw)), 0, w)
	y0 := clamp(int(math.Floor((st.Y-reach)/ch)), 0, h)
	y1 := clamp(int(math.Ceil((st.Y+reach)/ch)), 0, h)

	sin, cos := math.Sincos(-st.Rotation)
	glyph := shadeFor(st.Opacity)
	style := bg.Foreground(refColor(st.Ref))
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			p := r.CellToPixel(x, y)
			dx, dy := p.X-st.X, p.Y-st.Y
			// Undo the stamp's rotation to test against its upright box.
			lx := dx*cos - dy*sin
			ly := dx*sin + dy*cos
			if math.Abs(lx) > halfW || math.Abs(ly) > halfH {
				continue
			}
			r.screen.SetContent(x, y, glyph, nil, style)
		}
	}
}

func (r *Renderer) paintStats(w int, style tcell.Style) {
	st := r.effect.Stats()
	line := fmt.Sprintf(" stamps: %d  active: %d  triggers: %d/%d  preempted: %d ",
		st.Stamps, st.Active, st.Triggers, st.Moves, st.Preemptions)
	x := 0
	for _, c := range line {
		if x >= w {
			break
		}
		r.screen.SetContent(x, 0, c, nil, style)
		x++
	}
}

// shadeFor maps opacity onto a block glyph.
func shadeFor(opacity float64) rune {
	switch {
	case opacity >= 0.75:
		return shades[0]
	case opacity >= 0.5:
		return shades[1]
	case opacity >= 0.25:
		return shades[2]
	default:
		return shades[3]
	}
}

// refColor gives each image ref a stable mid-tone color.
func refColor(ref trail.ImageRef) tcell.Color {
	h := fnv.New32a()
	h.Write([]byte(ref))
	v := h.Sum32()
	return tcell.NewRGBColor(
		int32(0x30+v&0x7f),
		int32(0x30+(v>>8)&0x7f),
		int32(0x30+(v>>16)&0x7f),
	)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Run polls events and redraws at cfg.FPS until the user quits or ctx is
// done. Quitting returns nil; cancellation returns ctx.Err().
func (r *Renderer) Run(ctx context.Context) error {
	frame := time.Second / time.Duration(r.cfg.FPS)
	ticker := time.NewTicker(frame)
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)
	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	last := time.Now()
	r.Draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if !r.HandleEvent(ev) {
				return nil
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			r.effect.Update(float32(dt))
			r.Draw()
		}
	}
}
