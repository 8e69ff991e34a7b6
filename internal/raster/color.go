package raster

import (
	"image/color"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// RGBA converts a 0xAARRGGBB color to a premultiplied color.RGBA.
func RGBA(argb uint32) color.RGBA {
	a := uint32(argb >> 24 & 0xff)
	r := uint32(argb >> 16 & 0xff)
	g := uint32(argb >> 8 & 0xff)
	b := uint32(argb & 0xff)
	return color.RGBA{
		R: uint8(r * a / 0xff),
		G: uint8(g * a / 0xff),
		B: uint8(b * a / 0xff),
		A: uint8(a),
	}
}

// ARGB converts a color to 0xAARRGGBB (non-premultiplied).
func ARGB(c color.Color) uint32 {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return uint32(n.A)<<24 | uint32(n.R)<<16 | uint32(n.G)<<8 | uint32(n.B)
}

// Blend interpolates between two ARGB colors. The color channels are
// interpolated in Lab space, alpha linearly. t is clamped to [0, 1].
func Blend(from, to uint32, t float64) uint32 {
	t = min(max(t, 0), 1)
	c1 := toColorful(from)
	c2 := toColorful(to)
	r, g, b := c1.BlendLab(c2, t).Clamped().RGB255()
	a1 := float64(from >> 24 & 0xff)
	a2 := float64(to >> 24 & 0xff)
	a := uint32(a1 + (a2-a1)*t + 0.5)
	return a<<24 | uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Lighten returns the color blended towards white by t, keeping alpha.
func Lighten(argb uint32, t float64) uint32 {
	return Blend(argb, argb|0x00ffffff, t)
}

// Darken returns the color blended towards black by t, keeping alpha.
func Darken(argb uint32, t float64) uint32 {
	return Blend(argb, argb&0xff000000, t)
}

func toColorful(argb uint32) colorful.Color {
	return colorful.Color{
		R: float64(argb>>16&0xff) / 255,
		G: float64(argb>>8&0xff) / 255,
		B: float64(argb&0xff) / 255,
	}
}
