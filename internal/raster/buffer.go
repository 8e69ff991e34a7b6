package raster

import (
	"errors"
	"fmt"
	"image"
)

// MaxDimension bounds the width and height of a buffer.
const MaxDimension = 16384

// ErrInvalidSize is returned when a buffer is requested with a
// non-positive or oversized dimension.
var ErrInvalidSize = errors.New("invalid buffer size")

// Buffer is a reference-counted ARGB pixel buffer.
//
// A new buffer carries one reference owned by its creator. Every holder
// that stores the buffer takes its own reference with Lock and returns it
// with Unlock. The pixels are released once the count drops to zero.
type Buffer struct {
	img       *image.RGBA
	refs      int
	onRelease []func()
}

// New allocates a transparent buffer of the given size.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 || width > MaxDimension || height > MaxDimension {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	return &Buffer{
		img:  image.NewRGBA(image.Rect(0, 0, width, height)),
		refs: 1,
	}, nil
}

// FromImage wraps an existing image. The buffer takes ownership of img.
func FromImage(img *image.RGBA) *Buffer {
	return &Buffer{img: img, refs: 1}
}

// Lock takes an additional reference and returns the buffer for chaining.
func (b *Buffer) Lock() *Buffer {
	if b.refs <= 0 {
		panic("raster: Lock on released buffer")
	}
	b.refs++
	return b
}

// Unlock drops a reference. The last Unlock releases the pixels.
func (b *Buffer) Unlock() {
	if b.refs <= 0 {
		panic("raster: Unlock on released buffer")
	}
	b.refs--
	if b.refs > 0 {
		return
	}
	b.img = nil
	for _, fn := range b.onRelease {
		fn()
	}
	b.onRelease = nil
}

// Refs returns the current reference count.
func (b *Buffer) Refs() int { return b.refs }

// Released reports whether the last reference was dropped.
func (b *Buffer) Released() bool { return b.refs <= 0 }

// OnRelease registers fn to run when the buffer is released.
func (b *Buffer) OnRelease(fn func()) {
	b.onRelease = append(b.onRelease, fn)
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int {
	if b.img == nil {
		return 0
	}
	return b.img.Rect.Dx()
}

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int {
	if b.img == nil {
		return 0
	}
	return b.img.Rect.Dy()
}

// Stride returns the number of bytes per row.
func (b *Buffer) Stride() int {
	if b.img == nil {
		return 0
	}
	return b.img.Stride
}

// Image returns the underlying image for drawing. Nil once released.
func (b *Buffer) Image() *image.RGBA { return b.img }

// ARGB returns the pixel at (x, y) as 0xAARRGGBB (premultiplied).
func (b *Buffer) ARGB(x, y int) uint32 {
	if b.img == nil || !(image.Point{X: x, Y: y}).In(b.img.Rect) {
		return 0
	}
	c := b.img.RGBAAt(x, y)
	return uint32(c.A)<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}
