package raster

import (
	"image"
	"log"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Weight selects the font weight.
type Weight int

const (
	WeightNormal Weight = iota
	WeightBold
)

// Font describes the face used for decoration text.
type Font struct {
	Face   string
	Weight Weight
	Size   float64
}

type faceKey struct {
	weight Weight
	size   float64
}

var (
	facesMu sync.Mutex
	faces   = map[faceKey]font.Face{}
)

// face returns a cached font face for f. The Go fonts are always
// available; basicfont is used if parsing them fails.
func face(f Font) font.Face {
	size := f.Size
	if size <= 0 {
		size = 12
	}
	key := faceKey{weight: f.Weight, size: size}

	facesMu.Lock()
	defer facesMu.Unlock()
	if fc, ok := faces[key]; ok {
		return fc
	}

	src := goregular.TTF
	if f.Weight == WeightBold {
		src = gobold.TTF
	}
	var fc font.Face = basicfont.Face7x13
	parsed, err := opentype.Parse(src)
	if err == nil {
		fc, err = opentype.NewFace(parsed, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
	}
	if err != nil {
		log.Printf("Warning: failed to load font %q (size %.1f): %v", f.Face, size, err)
		fc = basicfont.Face7x13
	}
	faces[key] = fc
	return fc
}

// TextWidth returns the advance width of text in pixels.
func TextWidth(text string, f Font) int {
	return font.MeasureString(face(f), text).Ceil()
}

// DrawText draws text with its baseline-left at (x, y).
func DrawText(b *Buffer, x, y int, text string, f Font, argb uint32) {
	img := b.Image()
	if img == nil {
		return
	}
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(RGBA(argb)),
		Face: face(f),
		Dot:  fixed.P(x, y),
	}
	d.DrawString(text)
}

// DrawTextCentered draws text vertically centered in r, horizontally
// centered when it fits and left-aligned at r's left otherwise.
func DrawTextCentered(b *Buffer, r image.Rectangle, text string, f Font, argb uint32) {
	fc := face(f)
	m := fc.Metrics()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()
	y := r.Min.Y + (r.Dy()+ascent-descent)/2

	w := font.MeasureString(fc, text).Ceil()
	x := r.Min.X
	if w < r.Dx() {
		x += (r.Dx() - w) / 2
	}
	DrawText(b, x, y, text, f, argb)
}

// DrawTextLeft draws text vertically centered in r, left-aligned with the
// given padding.
func DrawTextLeft(b *Buffer, r image.Rectangle, padding int, text string, f Font, argb uint32) {
	m := face(f).Metrics()
	y := r.Min.Y + (r.Dy()+m.Ascent.Ceil()-m.Descent.Ceil())/2
	DrawText(b, r.Min.X+padding, y, text, f, argb)
}
