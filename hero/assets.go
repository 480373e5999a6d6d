package hero

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/trail"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

// Library maps image refs to GPU images, in load order. The order is the
// order the trail binds images to slots.
type Library struct {
	refs   []trail.ImageRef
	images map[trail.ImageRef]*ebiten.Image
}

// NewLibrary returns an empty library.
func NewLibrary() *Library {
	return &Library{images: make(map[trail.ImageRef]*ebiten.Image)}
}

// Put adds or replaces the image for ref. A new ref is appended to the order.
func (l *Library) Put(ref trail.ImageRef, img *ebiten.Image) {
	if _, ok := l.images[ref]; !ok {
		l.refs = append(l.refs, ref)
	}
	l.images[ref] = img
}

// Refs returns the refs in load order. The returned slice MUST NOT be mutated.
func (l *Library) Refs() []trail.ImageRef {
	return l.refs
}

// Image returns the image for ref, or nil.
func (l *Library) Image(ref trail.ImageRef) *ebiten.Image {
	return l.images[ref]
}

// Len returns the number of images.
func (l *Library) Len() int {
	return len(l.refs)
}

// imageExts lists the file extensions LoadDir decodes.
var imageExts = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true}

// LoadDir decodes every PNG, JPEG, and WebP file directly under dir in fsys,
// sorted by name, shrinking each to fit maxW×maxH. Refs are the file names.
// Zero or negative bounds disable fitting on that axis.
func LoadDir(fsys fs.FS, dir string, maxW, maxH int) (*Library, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("load images: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !imageExts[strings.ToLower(path.Ext(e.Name()))] {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)

	lib := NewLibrary()
	for _, name := range names {
		img, err := decodeFile(fsys, path.Join(dir, name), maxW, maxH)
		if err != nil {
			return nil, err
		}
		lib.Put(trail.ImageRef(name), ebiten.NewImageFromImage(img))
	}
	if lib.Len() == 0 {
		return nil, fmt.Errorf("load images: no images in %s", dir)
	}
	return lib, nil
}

func decodeFile(fsys fs.FS, name string, maxW, maxH int) (image.Image, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	img, err := Decode(f, maxW, maxH)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// Decode reads one image and shrinks it to fit maxW×maxH, keeping its
// aspect ratio. Images already inside the box are returned as decoded.
func Decode(r io.Reader, maxW, maxH int) (image.Image, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return fitImage(src, maxW, maxH), nil
}

func fitImage(src image.Image, maxW, maxH int) image.Image {
	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), maxW, maxH)
	if w == b.Dx() && h == b.Dy() {
		return src
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

// FitSize returns the largest w×h with the same aspect ratio that fits
// inside maxW×maxH without upscaling. Non-positive bounds are ignored.
func FitSize(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 {
		return w, h
	}
	scale := 1.0
	if maxW > 0 && w > maxW {
		scale = float64(maxW) / float64(w)
	}
	if maxH > 0 && h > maxH {
		if s := float64(maxH) / float64(h); s < scale {
			scale = s
		}
	}
	if scale == 1 {
		return w, h
	}
	fw := int(float64(w)*scale + 0.5)
	fh := int(float64(h)*scale + 0.5)
	return max(fw, 1), max(fh, 1)
}

// MaxStampSize is the stamp box for a container: 30% of its width and 40%
// of its height.
func MaxStampSize(containerW, containerH int) (int, int) {
	return containerW * 3 / 10, containerH * 4 / 10
}
