package hero

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Screenshot asks for the next frame to be saved as a PNG named after label.
// It can be passed directly as a trail.TestRunner OnScreenshot hook.
func (h *Hero) Screenshot(label string) {
	h.screenshotQueue = append(h.screenshotQueue, label)
}

// flushScreenshots runs at the end of Draw and writes one file per queued
// label, all sharing the same captured frame.
func (h *Hero) flushScreenshots(screen *ebiten.Image) {
	if len(h.screenshotQueue) == 0 {
		return
	}
	labels := h.screenshotQueue
	h.screenshotQueue = h.screenshotQueue[:0]

	if err := os.MkdirAll(h.ScreenshotDir, 0o755); err != nil {
		h.logger.Printf("screenshot dir %s: %v", h.ScreenshotDir, err)
		return
	}
	size := screen.Bounds().Size()
	pixels := make([]byte, 4*size.X*size.Y)
	screen.ReadPixels(pixels)
	frame := unpremultiply(pixels, size.X, size.Y)

	prefix := time.Now().Format("20060102_150405")
	for _, label := range labels {
		name := filepath.Join(h.ScreenshotDir, prefix+"_"+sanitizeLabel(label)+".png")
		if err := writePNG(name, frame); err != nil {
			h.logger.Printf("screenshot %q: %v", label, err)
		}
	}
}

// unpremultiply turns ReadPixels output, which is premultiplied, into a
// straight-alpha image that PNG viewers display correctly.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	n := min(len(pixels), len(img.Pix)) &^ 3
	for off := 0; off < n; off += 4 {
		px := pixels[off : off+4 : off+4]
		out := img.Pix[off : off+4 : off+4]
		a := px[3]
		out[3] = a
		for c := 0; c < 3; c++ {
			v := px[c]
			if a != 0 && a != 0xff {
				v = uint8(min(int(v)*0xff/int(a), 0xff))
			}
			out[c] = v
		}
	}
	return img
}

func writePNG(name string, img image.Image) (err error) {
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("write png: %w", cerr)
		}
	}()
	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', maps every other
// rune to '_', and names blank labels "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
