package raster

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// FillType selects how a Fill paints its area.
type FillType int

const (
	FillSolid FillType = iota
	FillHorizontalGradient
	FillVerticalGradient
	FillDiagonalGradient
)

// Fill describes a solid or gradient fill between two ARGB colors.
type Fill struct {
	Type FillType
	From uint32
	To   uint32
}

// Solid is a shorthand for a single color fill.
func Solid(argb uint32) Fill {
	return Fill{Type: FillSolid, From: argb, To: argb}
}

// FillRect paints r of the buffer with the fill. The gradient spans r.
func FillRect(b *Buffer, r image.Rectangle, f Fill) {
	img := b.Image()
	if img == nil {
		return
	}
	r = r.Intersect(img.Rect)
	if r.Empty() {
		return
	}
	if f.Type == FillSolid {
		draw.Draw(img, r, image.NewUniform(RGBA(f.From)), image.Point{}, draw.Src)
		return
	}

	w := float64(max(r.Dx()-1, 1))
	h := float64(max(r.Dy()-1, 1))
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			var t float64
			switch f.Type {
			case FillHorizontalGradient:
				t = float64(x-r.Min.X) / w
			case FillVerticalGradient:
				t = float64(y-r.Min.Y) / h
			case FillDiagonalGradient:
				t = (float64(x-r.Min.X)/w + float64(y-r.Min.Y)/h) / 2
			}
			img.SetRGBA(x, y, RGBA(Blend(f.From, f.To, t)))
		}
	}
}

// Bezel draws a bezel of the given width along the edges of r. A raised
// bezel is light at top/left and dark at bottom/right; a pressed bezel is
// the reverse.
func Bezel(b *Buffer, r image.Rectangle, width int, raised bool) {
	img := b.Image()
	if img == nil || width <= 0 {
		return
	}
	light := color.RGBA{R: 0x99, G: 0x99, B: 0x99, A: 0x99} // white @ 0.6
	dark := color.RGBA{A: 0x66}                             // black @ 0.4
	if !raised {
		light, dark = dark, light
	}
	top := image.NewUniform(light)
	bottom := image.NewUniform(dark)

	for i := 0; i < width; i++ {
		// Top and left edges shrink by one per step so the corners
		// split diagonally between the two shades.
		draw.Draw(img, image.Rect(r.Min.X, r.Min.Y+i, r.Max.X-i, r.Min.Y+i+1), top, image.Point{}, draw.Over)
		draw.Draw(img, image.Rect(r.Min.X+i, r.Min.Y+width, r.Min.X+i+1, r.Max.Y-i), top, image.Point{}, draw.Over)
		draw.Draw(img, image.Rect(r.Min.X+i+1, r.Max.Y-i-1, r.Max.X, r.Max.Y-i), bottom, image.Point{}, draw.Over)
		draw.Draw(img, image.Rect(r.Max.X-i-1, r.Min.Y+i+1, r.Max.X-i, r.Max.Y-width), bottom, image.Point{}, draw.Over)
	}
}

// CopyRegion copies src's sr region into dst at dp.
func CopyRegion(dst *Buffer, dp image.Point, src *Buffer, sr image.Rectangle) {
	if dst.Image() == nil || src.Image() == nil {
		return
	}
	draw.Copy(dst.Image(), dp, src.Image(), sr, draw.Src, nil)
}

// Crop returns a new buffer holding a copy of the region r of src.
func Crop(src *Buffer, r image.Rectangle) (*Buffer, error) {
	dst, err := New(r.Dx(), r.Dy())
	if err != nil {
		return nil, err
	}
	CopyRegion(dst, image.Point{}, src, r)
	return dst, nil
}

// CloseIcon draws an "X" of the given size centered in r.
func CloseIcon(b *Buffer, r image.Rectangle, size int, argb uint32) {
	img := b.Image()
	if img == nil {
		return
	}
	c := RGBA(argb)
	x0 := r.Min.X + (r.Dx()-size)/2
	y0 := r.Min.Y + (r.Dy()-size)/2
	thickness := max(size/8, 1)
	for i := 0; i < size; i++ {
		for t := 0; t < thickness; t++ {
			setClipped(img, x0+i+t, y0+i, c)
			setClipped(img, x0+size-1-i-t, y0+i, c)
		}
	}
}

// MinimizeIcon draws a hollow square of the given size centered in r.
func MinimizeIcon(b *Buffer, r image.Rectangle, size int, argb uint32) {
	img := b.Image()
	if img == nil {
		return
	}
	c := RGBA(argb)
	x0 := r.Min.X + (r.Dx()-size)/2
	y0 := r.Min.Y + (r.Dy()-size)/2
	for i := 0; i < size; i++ {
		setClipped(img, x0+i, y0, c)
		setClipped(img, x0+i, y0+size-1, c)
		setClipped(img, x0, y0+i, c)
		setClipped(img, x0+size-1, y0+i, c)
	}
	// Thicker top line, like a window title.
	for i := 0; i < size; i++ {
		setClipped(img, x0+i, y0+1, c)
	}
}

func setClipped(img *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{X: x, Y: y}).In(img.Rect) {
		img.SetRGBA(x, y, c)
	}
}
