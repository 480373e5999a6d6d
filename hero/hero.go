// Package hero hosts a trail.Effect in an Ebitengine window: the hero
// container spans the whole screen, cursor motion drives the trail, and below
// the narrow breakpoint the trail is replaced by a scrolling image strip.
package hero

import (
	"image/color"
	"log"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/trail"
)

// Background is the hero section's cream backdrop.
var Background = color.RGBA{R: 0xED, G: 0xE6, B: 0xD6, A: 0xFF}

const (
	stripGap        = 16.0 // px between marquee tiles
	stripMargin     = 16.0 // px between the strip and the bottom edge
	stripTileFactor = 0.25 // tile height as a fraction of the screen height
)

// RunConfig configures the window created by Run.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowHUD bool
}

// Hero is an ebiten.Game that mounts one trail.Effect over a Library of
// images. A failed mount leaves the hero drawing its static background.
type Hero struct {
	cfg  trail.Config
	lib  *Library
	opts []trail.Option

	effect  *trail.Effect
	marquee *trail.Marquee
	strip   []trail.ImageRef

	stripSizes []tileSize
	stripXs    []float64
	stripTotal float64
	stripTileH float64

	width, height int
	hovering      bool
	states        []trail.RenderState

	// ClearColor fills the screen before anything is drawn.
	ClearColor color.Color
	// ScreenshotDir receives PNGs queued with Screenshot.
	ScreenshotDir string
	// ShowHUD draws the stats overlay.
	ShowHUD bool

	screenshotQueue []string
	hud             hud
	logger          *log.Logger
}

// New creates a hero over lib and mounts its effect. Mount errors are logged
// and leave Effect() nil; the hero still runs.
func New(lib *Library, cfg trail.Config, opts ...trail.Option) *Hero {
	h := &Hero{
		cfg:           cfg,
		lib:           lib,
		opts:          opts,
		ClearColor:    Background,
		ScreenshotDir: "screenshots",
		logger:        log.New(os.Stderr, "[hero] ", log.LstdFlags),
	}
	h.mount()
	return h
}

func (h *Hero) mount() {
	h.effect = nil
	h.marquee = nil
	h.strip = nil
	h.stripXs = nil
	h.stripTileH = 0

	effect, err := trail.NewEffect(h.lib.Refs(), h.cfg, h.opts...)
	if err != nil {
		h.logger.Printf("trail disabled: %v", err)
	} else {
		h.effect = effect
	}
	marquee, err := trail.NewMarqueeFromConfig(h.cfg)
	if err != nil {
		h.logger.Printf("marquee disabled: %v", err)
	} else {
		h.marquee = marquee
		h.strip = trail.Strip(h.lib.Refs(), 3)
	}
}

// SetLibrary swaps the image set. The current effect is unmounted and a
// fresh one is mounted over the new images.
func (h *Hero) SetLibrary(lib *Library) {
	h.Close()
	h.lib = lib
	h.hovering = false
	h.mount()
}

// Close unmounts the effect, cancelling every running stamp.
func (h *Hero) Close() {
	if h.effect != nil {
		h.effect.Unmount()
	}
}

// Effect returns the mounted effect, or nil when mounting failed.
func (h *Hero) Effect() *trail.Effect {
	return h.effect
}

// Narrow reports whether the container is below the narrow breakpoint, where
// the marquee replaces the pointer trail.
func (h *Hero) Narrow() bool {
	return float64(h.width) < h.cfg.NarrowBreakpoint
}

// Bounds returns the hero container in screen space.
func (h *Hero) Bounds() trail.Rect {
	return trail.Rect{Width: float64(h.width), Height: float64(h.height)}
}

// Update implements ebiten.Game.
func (h *Hero) Update() error {
	dt := float32(1.0 / float64(ebiten.TPS()))
	if h.Narrow() {
		if h.marquee != nil {
			h.marquee.Update(dt)
		}
		h.pointerOut()
	} else {
		mx, my := ebiten.CursorPosition()
		h.handlePointer(float64(mx), float64(my))
	}
	if h.effect != nil {
		h.effect.Update(dt)
	}
	if h.ShowHUD {
		h.hud.update(float64(dt), h)
	}
	return nil
}

// handlePointer turns a cursor sample into enter, move, and leave calls on
// the effect, using the container bounds for hover.
func (h *Hero) handlePointer(x, y float64) {
	if h.effect == nil {
		return
	}
	if !h.Bounds().Contains(x, y) {
		h.pointerOut()
		return
	}
	p := trail.Vec2{X: x, Y: y}
	if !h.hovering {
		h.hovering = true
		h.effect.OnPointerEnter(p)
		return
	}
	h.effect.OnPointerMove(p)
}

func (h *Hero) pointerOut() {
	if !h.hovering {
		return
	}
	h.hovering = false
	if h.effect != nil {
		h.effect.OnPointerLeave()
	}
}

// Draw implements ebiten.Game.
func (h *Hero) Draw(screen *ebiten.Image) {
	screen.Fill(h.ClearColor)
	if h.Narrow() {
		h.drawStrip(screen)
	} else {
		h.drawTrail(screen)
	}
	if h.ShowHUD {
		h.hud.draw(screen)
	}
	h.flushScreenshots(screen)
}

// Layout implements ebiten.Game. The hero always fills the window.
func (h *Hero) Layout(outsideWidth, outsideHeight int) (int, int) {
	h.width, h.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (h *Hero) drawTrail(screen *ebiten.Image) {
	if h.effect == nil {
		return
	}
	h.states = h.effect.AppendRenderStates(h.states[:0])
	var op ebiten.DrawImageOptions
	for i := range h.states {
		st := &h.states[i]
		img := h.lib.Image(st.Ref)
		if img == nil {
			continue
		}
		b := img.Bounds()
		op.GeoM = stampGeoM(b.Dx(), b.Dy(), st)
		op.ColorScale.Reset()
		op.ColorScale.ScaleAlpha(float32(st.Opacity))
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, &op)
	}
}

// stampGeoM centers a w×h image on the stamp position, then scales and
// rotates it about that center.
func stampGeoM(w, h int, st *trail.RenderState) ebiten.GeoM {
	var g ebiten.GeoM
	g.Translate(-float64(w)/2, -float64(h)/2)
	g.Scale(st.Scale, st.Scale)
	g.Rotate(st.Rotation)
	g.Translate(st.X, st.Y)
	return g
}

func (h *Hero) drawStrip(screen *ebiten.Image) {
	if h.marquee == nil || len(h.strip) == 0 {
		return
	}
	tileH := float64(h.height) * stripTileFactor
	h.ensureStripLayout(tileH)
	shift := h.marquee.Offset(h.stripTotal)
	y := float64(h.height) - stripMargin - tileH

	var op ebiten.DrawImageOptions
	for i, ref := range h.strip {
		sz := h.stripSizes[i]
		img := h.lib.Image(ref)
		if img == nil || sz.H == 0 {
			continue
		}
		x := h.stripXs[i] + shift
		if x > float64(h.width) {
			break
		}
		s := tileH / float64(sz.H)
		if x+float64(sz.W)*s < 0 {
			continue
		}
		op.GeoM.Reset()
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(x, y)
		op.Filter = ebiten.FilterLinear
		screen.DrawImage(img, &op)
	}
}

// ensureStripLayout recomputes tile positions when the tile height changes.
func (h *Hero) ensureStripLayout(tileH float64) {
	if tileH == h.stripTileH && len(h.stripXs) == len(h.strip) {
		return
	}
	h.stripSizes = h.stripSizes[:0]
	for _, ref := range h.strip {
		var sz tileSize
		if img := h.lib.Image(ref); img != nil {
			b := img.Bounds()
			sz = tileSize{W: b.Dx(), H: b.Dy()}
		}
		h.stripSizes = append(h.stripSizes, sz)
	}
	h.stripXs, h.stripTotal = layoutStrip(h.stripSizes, tileH, stripGap)
	h.stripTileH = tileH
}

type tileSize struct {
	W, H int
}

// layoutStrip places tiles left to right at a common height separated by
// gap, returning each tile's x and the strip's total width. Tiles with no
// size take no space.
func layoutStrip(sizes []tileSize, tileH, gap float64) (xs []float64, total float64) {
	xs = make([]float64, len(sizes))
	x := 0.0
	placed := 0
	for i, sz := range sizes {
		if sz.H == 0 {
			xs[i] = x
			continue
		}
		if placed > 0 {
			x += gap
		}
		xs[i] = x
		x += float64(sz.W) * tileH / float64(sz.H)
		placed++
	}
	return xs, x
}

// Run opens a window and runs the hero until it is closed, then unmounts
// the effect.
func Run(h *Hero, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	h.ShowHUD = cfg.ShowHUD
	defer h.Close()
	return ebiten.RunGame(h)
}
