// Package texture wraps device texture objects with the upload, filtering and
// wrapping configuration used throughout forge.
//
package texture

import (
	"image"
	"image/draw"

	"github.com/forgegl/forge"
)

// A Texture represents a device texture.
//
type Texture struct {
	dev    forge.Device
	width  int
	height int
	id     uint32
	mipmap bool
	dirty  bool
}

type tp struct {
	wrapS, wrapT forge.WrapMode
	hasWrap      bool
	minFilter    forge.MinFilter
	magFilter    forge.MagFilter
	hasFilter    bool
	border       forge.Color
}

// Parameter is implemented by functions setting texture parameters. See New.
//
type Parameter interface {
	set(*tp)
}

type optionFunc func(*tp)

func (f optionFunc) set(p *tp) {
	f(p)
}

// Wrap sets the wrap modes for the S and T texture coordinates.
//
func Wrap(wrapS, wrapT forge.WrapMode) Parameter {
	return optionFunc(func(p *tp) {
		p.wrapS = wrapS
		p.wrapT = wrapT
		p.hasWrap = true
	})
}

// Filter sets the minification and magnification filters. Selecting a
// mipmapped minification filter implies mipmap generation on upload.
//
func Filter(min forge.MinFilter, mag forge.MagFilter) Parameter {
	return optionFunc(func(p *tp) {
		p.minFilter = min
		p.magFilter = mag
		p.hasFilter = true
	})
}

// BorderColor sets the border color sampled by ClampToBorder wrapping.
//
func BorderColor(c forge.Color) Parameter {
	return optionFunc(func(p *tp) {
		p.border = c
	})
}

// New returns a new uninitialized texture of the given width and height.
//
func New(dev forge.Device, width, height int, params ...Parameter) *Texture {
	return newTexture(dev, width, height, forge.RGBA, nil, params...)
}

// FromImage creates a new texture of the same dimensions as the source image.
// Sources without an alpha channel upload as RGB, everything else as RGBA.
//
func FromImage(dev forge.Device, src image.Image, params ...Parameter) *Texture {
	var (
		pix    []uint8
		format forge.PixelFormat
		sr     = src.Bounds()
		dr     = image.Rectangle{Max: sr.Size()}
	)
	switch i := src.(type) {
	case *image.RGBA:
		pix = i.Pix
		format = forge.RGBA
	default:
		if opaque(src) {
			pix = toRGB(src)
			format = forge.RGB
		} else {
			dst := image.NewRGBA(dr)
			draw.Draw(dst, dr, src, sr.Min, draw.Src)
			pix = dst.Pix
			format = forge.RGBA
		}
	}
	return newTexture(dev, dr.Dx(), dr.Dy(), format, pix, params...)
}

func opaque(src image.Image) bool {
	type opaquer interface {
		Opaque() bool
	}
	if o, ok := src.(opaquer); ok {
		return o.Opaque()
	}
	return false
}

func toRGB(src image.Image) []uint8 {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	tmp := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(tmp, tmp.Bounds(), src, b.Min, draw.Src)
	pix := make([]uint8, w*h*3)
	for i, j := 0, 0; i < len(tmp.Pix); i, j = i+4, j+3 {
		pix[j] = tmp.Pix[i]
		pix[j+1] = tmp.Pix[i+1]
		pix[j+2] = tmp.Pix[i+2]
	}
	return pix
}

func newTexture(dev forge.Device, width, height int, format forge.PixelFormat, pix []uint8, params ...Parameter) *Texture {
	t := &Texture{dev: dev, width: width, height: height, id: dev.GenTexture()}
	dev.BindTexture(0, t.id)
	t.setParams(params...)
	dev.TexImage2D(int32(width), int32(height), format, pix)
	if t.dirty && pix != nil {
		dev.GenerateMipmap()
		t.dirty = false
	}
	return t
}

// Parameters sets the given texture parameters.
//
func (t *Texture) Parameters(params ...Parameter) {
	if len(params) == 0 {
		return
	}
	t.dev.BindTexture(0, t.id)
	t.setParams(params...)
}

func (t *Texture) setParams(params ...Parameter) {
	var tp tp
	for _, p := range params {
		p.set(&tp)
	}
	if tp.hasWrap {
		t.dev.TexWrap(tp.wrapS, tp.wrapT, tp.border)
	}
	if tp.hasFilter {
		t.dev.TexFilter(tp.minFilter, tp.magFilter)
		if tp.minFilter.Mipmapped() {
			t.mipmap = true
			t.dirty = true
		} else {
			t.mipmap = false
			t.dirty = false
		}
	}
}

// Bind binds the texture to the given texture unit and regenerates mipmaps if
// needed.
//
func (t *Texture) Bind(slot uint32) {
	t.dev.BindTexture(slot, t.id)
	if t.dirty {
		t.dev.GenerateMipmap()
		t.dirty = false
	}
}

// SetSubImage draws src to the texture. It works identically to draw.Draw
// with op set to draw.Src.
//
func (t *Texture) SetSubImage(dr image.Rectangle, src image.Image, sp image.Point) {
	var (
		pix []uint8
		sz  = dr.Size()
		sr  = image.Rectangle{Min: sp, Max: sp.Add(sz)}
	)
	if sz.X == 0 || sz.Y == 0 {
		return
	}
	if i, ok := src.(*image.RGBA); ok && sr == src.Bounds() {
		pix = i.Pix
	} else {
		r := image.Rectangle{Max: sz}
		dst := image.NewRGBA(r)
		draw.Draw(dst, r, src, sp, draw.Src)
		pix = dst.Pix
	}

	t.dev.BindTexture(0, t.id)
	t.dev.TexSubImage2D(int32(dr.Min.X), int32(dr.Min.Y), int32(sz.X), int32(sz.Y), pix)
	if t.mipmap {
		t.dirty = true
	}
}

// GLCoords return the coordinates of the point pt mapped to the range [0, 1].
//
func (t *Texture) GLCoords(pt image.Point) (glX float32, glY float32) {
	return float32(pt.X) / float32(t.width),
		float32(pt.Y) / float32(t.height)
}

// Size returns the size of the texture.
//
func (t *Texture) Size() image.Point {
	return image.Point{X: t.width, Y: t.height}
}

// NativeID returns the device identifier of the texture.
//
func (t *Texture) NativeID() uint32 {
	return t.id
}

// Delete deletes the texture.
//
func (t *Texture) Delete() {
	t.dev.DeleteTexture(t.id)
	t.id = 0
}
