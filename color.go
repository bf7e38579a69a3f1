package forge

import "image/color"

// Color stores alpha premultiplied color components in the range [0, 1].
//
type Color struct {
	R, G, B, A float32
}

// RGBAf returns a Color from individual components.
//
func RGBAf(r, g, b, a float32) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// RGBf returns an opaque Color.
//
func RGBf(r, g, b float32) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// FromARGB unpacks a 0xAARRGGBB value.
//
func FromARGB(argb uint32) Color {
	return Color{
		A: float32(argb>>24) / 255,
		R: float32(argb>>16&0xff) / 255,
		G: float32(argb>>8&0xff) / 255,
		B: float32(argb&0xff) / 255,
	}
}

// ARGB packs c into a 0xAARRGGBB value.
//
func (c Color) ARGB() uint32 {
	r := uint32(c.R*255) & 0xff
	g := uint32(c.G*255) & 0xff
	b := uint32(c.B*255) & 0xff
	a := uint32(c.A*255) & 0xff
	return a<<24 | r<<16 | g<<8 | b
}

// Array returns the components as a 4 element array.
//
func (c Color) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// RGBA implements color.Color.
//
func (c Color) RGBA() (r, g, b, a uint32) {
	return uint32(c.R*0xffff) & 0xffff, uint32(c.G*0xffff) & 0xffff,
		uint32(c.B*0xffff) & 0xffff, uint32(c.A*0xffff) & 0xffff
}

// ColorModel converts any color.Color to a Color; i.e. the result can safely
// be casted to a Color.
//
var ColorModel = color.ModelFunc(colorModel)

func colorModel(c color.Color) color.Color {
	if _, ok := c.(Color); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	return Color{R: float32(r) / 0xffff, G: float32(g) / 0xffff, B: float32(b) / 0xffff, A: float32(a) / 0xffff}
}
