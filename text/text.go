// Package text rasterizes font glyphs on demand and packs them onto texture
// pages for rendering.
//
package text

import (
	"image"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/forgegl/forge"
	"github.com/forgegl/forge/pack"
	"github.com/forgegl/forge/texture"
)

const (
	// see subPixels() in github.com/golang/freetype/truetype/face.go
	SubPixelsX    = 8
	subPixelBiasX = 4
	subPixelMaskX = -8
	SubPixelsY    = 8
	subPixelBiasY = 4
	subPixelMaskY = -8
)

// PageSize is the size of font glyph pages. It should be adjusted to be no
// larger than the device's maximum texture size.
//
var PageSize int = 1024

// Glyph is a rasterized glyph placed on a texture page.
//
type Glyph struct {
	Texture *texture.Texture
	Bounds  image.Rectangle // placement on the page
	Origin  image.Point     // offset from the draw point to Bounds.Min
}

// UV returns the glyph's texture coordinates on its page.
//
func (g *Glyph) UV() (u0, v0, u1, v1 float32) {
	u0, v0 = g.Texture.GLCoords(g.Bounds.Min)
	u1, v1 = g.Texture.GLCoords(g.Bounds.Max)
	return u0, v0, u1, v1
}

type cacheKey struct {
	r  rune
	fx uint8
	fy uint8
}

type cacheValue struct {
	index int // glyph index, -1 for empty glyphs
	adv   fixed.Int26_6
}

// Hinting selects how to quantize a vector font's glyph nodes.
//
// Not all fonts support hinting.
//
// This is a convenience duplicate of golang.org/x/image/font#Hinting
//
type Hinting int

const (
	HintingNone     Hinting = Hinting(font.HintingNone)
	HintingVertical         = Hinting(font.HintingVertical)
	HintingFull             = Hinting(font.HintingFull)
)

// Drawer caches rasterized glyphs of a font face, keyed by rune and subpixel
// offset, on lazily allocated texture pages.
//
type Drawer struct {
	dev    forge.Device
	face   font.Face
	glyphs []Glyph
	cache  map[cacheKey]cacheValue
	pages  []*texture.Texture
	packer *pack.Packer
	mf     forge.MagFilter
}

func NewDrawer(dev forge.Device, f font.Face, magFilter forge.MagFilter) *Drawer {
	return &Drawer{
		dev:   dev,
		face:  f,
		cache: make(map[cacheKey]cacheValue),
		mf:    magFilter,
	}
}

func (d *Drawer) Face() font.Face {
	return d.face
}

// Pages returns the number of texture pages allocated so far.
//
func (d *Drawer) Pages() int {
	return len(d.pages)
}

// Layout walks s from the draw point (x, y), calling fn with each visible
// glyph and its position. It returns the total advance.
//
func (d *Drawer) Layout(x, y float32, s string, fn func(g *Glyph, x, y float32)) (advance float32) {
	dot := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	sp := dot.X
	prev := rune(-1)
	for _, r := range s {
		if prev >= 0 {
			dot.X += d.face.Kern(prev, r)
		}
		dp, g, adv := d.Glyph(dot, r)
		if g != nil {
			fn(g, float32(dp.X), float32(dp.Y))
		}
		dot.X += adv
		prev = r
	}
	return float32(dot.X-sp) / 64
}

// LayoutBytes is Layout for a byte slice.
//
func (d *Drawer) LayoutBytes(x, y float32, s []byte, fn func(g *Glyph, x, y float32)) (advance float32) {
	dot := fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
	sp := dot.X
	prev := rune(-1)
	for len(s) > 0 {
		r, sz := utf8.DecodeRune(s)
		s = s[sz:]
		if prev >= 0 {
			dot.X += d.face.Kern(prev, r)
		}
		dp, g, adv := d.Glyph(dot, r)
		if g != nil {
			fn(g, float32(dp.X), float32(dp.Y))
		}
		dot.X += adv
		prev = r
	}
	return float32(dot.X-sp) / 64
}

func (d *Drawer) currentPage() *texture.Texture {
	l := len(d.pages)
	if l == 0 {
		return nil
	}
	return d.pages[l-1]
}

func (d *Drawer) newPage() *texture.Texture {
	t := texture.New(d.dev, PageSize, PageSize,
		texture.Wrap(forge.ClampToBorder, forge.ClampToBorder),
		texture.Filter(forge.MinLinearMipmapLinear, d.mf))
	d.pages = append(d.pages, t)
	d.packer = pack.New(pack.Config{
		Width:            PageSize,
		Height:           PageSize,
		BorderPadding:    1,
		RectanglePadding: 1,
	})
	return t
}

// Glyph returns the placed glyph for r drawn at dot, rasterizing and
// uploading it on first use. The glyph is nil for empty or unknown runes.
//
func (d *Drawer) Glyph(dot fixed.Point26_6, r rune) (dp image.Point, g *Glyph, advance fixed.Int26_6) {
	dx, dy := (dot.X+subPixelBiasX)&subPixelMaskX, (dot.Y+subPixelBiasY)&subPixelMaskY
	ix, iy := int(dx>>6), int(dy>>6)

	key := cacheKey{r, uint8(dx & 0x3f), uint8(dy & 0x3f)}
	if v, ok := d.cache[key]; ok {
		if idx := v.index; idx >= 0 {
			return image.Point{X: ix, Y: iy}, &d.glyphs[idx], v.adv
		}
		return image.Point{}, nil, v.adv
	}

	dr, mask, maskp, advance, ok := d.face.Glyph(fixed.Point26_6{X: dot.X & 0x3f, Y: dot.Y & 0x3f}, r)
	if !ok {
		return image.Point{}, nil, 0
	}
	sz := dr.Size()
	if sz.X == 0 || sz.Y == 0 {
		// empty glyph
		d.cache[key] = cacheValue{-1, advance}
		return image.Point{}, nil, advance
	}
	// adjust point of origin to account for rounding when quantizing subPixels
	org := image.Pt(-dr.Min.X+(ix-dot.X.Floor()), -dr.Min.Y+(iy-dot.Y.Floor()))

	t := d.currentPage()
	if t == nil || !d.packer.CanPack(sz.X, sz.Y) {
		t = d.newPage()
	}
	tr, ok := d.packer.Pack(sz.X, sz.Y)
	if !ok {
		// glyph larger than a whole page
		d.cache[key] = cacheValue{-1, advance}
		return image.Point{}, nil, advance
	}
	t.SetSubImage(tr, mask, maskp)

	index := len(d.glyphs)
	d.glyphs = append(d.glyphs, Glyph{Texture: t, Bounds: tr, Origin: org})
	d.cache[key] = cacheValue{index, advance}
	return image.Point{X: ix, Y: iy}, &d.glyphs[index], advance
}

// Close deletes all texture pages and closes the font face.
//
func (d *Drawer) Close() error {
	for _, t := range d.pages {
		t.Delete()
	}
	d.pages = nil
	return d.face.Close()
}

// BoundBytes returns the bounding box of s, drawn at a dot equal to the origin, as well as the advance.
//
// It is equivalent to BoundString(string(s)) but may be more efficient.
//
func (d *Drawer) BoundBytes(s []byte) (bounds fixed.Rectangle26_6, advance fixed.Int26_6) {
	return font.BoundBytes(d.face, s)
}

// BoundString returns the bounding box of s, drawn at a dot equal to the origin, as well as the advance.
//
func (d *Drawer) BoundString(s string) (bounds fixed.Rectangle26_6, advance fixed.Int26_6) {
	return font.BoundString(d.face, s)
}

// MeasureBytes returns how far dot would advance by drawing s.
//
func (d *Drawer) MeasureBytes(s []byte) (advance fixed.Int26_6) {
	return font.MeasureBytes(d.face, s)
}

// MeasureString returns how far dot would advance by drawing s.
//
func (d *Drawer) MeasureString(s string) (advance fixed.Int26_6) {
	return font.MeasureString(d.face, s)
}
