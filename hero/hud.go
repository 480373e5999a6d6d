package hero

import (
	"bytes"
	"fmt"
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/phanxgames/trail"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	hudRefresh  = 0.5 // seconds between text refreshes
	hudFontSize = 13
	hudPadding  = 6
	hudLineGap  = 1.4
)

var hudBackground = color.RGBA{0, 0, 0, 128}

// hud is the stats overlay: FPS/TPS plus the effect's counters, refreshed
// every half second.
type hud struct {
	lines   string
	elapsed float64
	dirty   bool
	img     *ebiten.Image
	face    *text.GoTextFace
	failed  bool
}

func (u *hud) update(dt float64, h *Hero) {
	u.elapsed += dt
	if u.elapsed < hudRefresh && u.lines != "" {
		return
	}
	u.elapsed = 0
	var st trail.Stats
	mounted := h.effect != nil && h.effect.Mounted()
	if mounted {
		st = h.effect.Stats()
	}
	u.lines = hudText(ebiten.ActualFPS(), ebiten.ActualTPS(), st, mounted, h.Narrow())
	u.dirty = true
}

// hudText formats the overlay. Kept free of ebiten state for tests.
func hudText(fps, tps float64, st trail.Stats, mounted, narrow bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f  TPS: %.1f\n", fps, tps)
	switch {
	case !mounted:
		b.WriteString("trail: off")
	case narrow:
		b.WriteString("mode: marquee")
	default:
		fmt.Fprintf(&b, "stamps: %d  active: %d\n", st.Stamps, st.Active)
		fmt.Fprintf(&b, "triggers: %d/%d moves  preempted: %d", st.Triggers, st.Moves, st.Preemptions)
		if st.Dropped > 0 {
			fmt.Fprintf(&b, "  dropped: %d", st.Dropped)
		}
	}
	return b.String()
}

func (u *hud) ensureFace() bool {
	if u.face != nil || u.failed {
		return u.face != nil
	}
	src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		u.failed = true
		return false
	}
	u.face = &text.GoTextFace{Source: src, Size: hudFontSize}
	return true
}

func (u *hud) draw(screen *ebiten.Image) {
	if u.lines == "" || !u.ensureFace() {
		return
	}
	if u.dirty {
		u.render()
		u.dirty = false
	}
	screen.DrawImage(u.img, nil)
}

// render redraws the overlay into its cached image, reallocating only when
// the text box changes size.
func (u *hud) render() {
	w, h := text.Measure(u.lines, u.face, hudFontSize*hudLineGap)
	iw, ih := int(w)+2*hudPadding, int(h)+2*hudPadding
	if u.img == nil || u.img.Bounds().Dx() != iw || u.img.Bounds().Dy() != ih {
		if u.img != nil {
			u.img.Deallocate()
		}
		u.img = ebiten.NewImage(iw, ih)
	}
	u.img.Fill(hudBackground)

	op := &text.DrawOptions{}
	op.GeoM.Translate(hudPadding, hudPadding)
	op.LineSpacing = hudFontSize * hudLineGap
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(u.img, u.lines, u.face, op)
}
