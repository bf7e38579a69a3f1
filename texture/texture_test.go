package texture

import (
	"image"
	"image/color"
	"testing"

	"github.com/forgegl/forge"
)

type uploadDevice struct {
	forge.NopDevice
	format    forge.PixelFormat
	width     int32
	height    int32
	pixLen    int
	mipmaps   int
	subRects  []image.Rectangle
	minFilter forge.MinFilter
	deleted   []uint32
}

func (d *uploadDevice) TexImage2D(w, h int32, format forge.PixelFormat, pix []uint8) {
	d.width, d.height, d.format, d.pixLen = w, h, format, len(pix)
}

func (d *uploadDevice) TexSubImage2D(x, y, w, h int32, pix []uint8) {
	d.subRects = append(d.subRects, image.Rect(int(x), int(y), int(x+w), int(y+h)))
}

func (d *uploadDevice) TexFilter(min forge.MinFilter, mag forge.MagFilter) {
	d.minFilter = min
}

func (d *uploadDevice) GenerateMipmap() { d.mipmaps++ }

func (d *uploadDevice) DeleteTexture(tex uint32) { d.deleted = append(d.deleted, tex) }

func TestFromImageRGBA(t *testing.T) {
	dev := &uploadDevice{}
	img := image.NewRGBA(image.Rect(0, 0, 8, 4))
	img.Set(0, 0, color.RGBA{R: 255, A: 128})

	tx := FromImage(dev, img)
	if dev.format != forge.RGBA {
		t.Errorf("format = %v, want RGBA", dev.format)
	}
	if dev.width != 8 || dev.height != 4 {
		t.Errorf("upload size = %dx%d, want 8x4", dev.width, dev.height)
	}
	if dev.pixLen != 8*4*4 {
		t.Errorf("pixel length = %d, want %d", dev.pixLen, 8*4*4)
	}
	if got := tx.Size(); got != image.Pt(8, 4) {
		t.Errorf("Size() = %v, want (8,4)", got)
	}
}

func TestFromImageOpaqueUploadsRGB(t *testing.T) {
	dev := &uploadDevice{}
	// YCbCr images are always opaque.
	img := image.NewYCbCr(image.Rect(0, 0, 4, 4), image.YCbCrSubsampleRatio444)
	FromImage(dev, img)
	if dev.format != forge.RGB {
		t.Errorf("format = %v, want RGB", dev.format)
	}
	if dev.pixLen != 4*4*3 {
		t.Errorf("pixel length = %d, want %d", dev.pixLen, 4*4*3)
	}
}

func TestMipmapGeneration(t *testing.T) {
	dev := &uploadDevice{}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	tx := FromImage(dev, img, Filter(forge.MinLinearMipmapLinear, forge.MagLinear))
	if dev.mipmaps != 1 {
		t.Fatalf("mipmap generations after upload = %d, want 1", dev.mipmaps)
	}

	// A sub-image update marks the mipmaps stale; the next Bind regenerates.
	tx.SetSubImage(image.Rect(0, 0, 2, 2), img, image.Point{})
	tx.Bind(0)
	if dev.mipmaps != 2 {
		t.Errorf("mipmap generations after SetSubImage+Bind = %d, want 2", dev.mipmaps)
	}
	tx.Bind(0)
	if dev.mipmaps != 2 {
		t.Errorf("Bind without updates regenerated mipmaps")
	}
}

func TestNoMipmapForPlainFilters(t *testing.T) {
	dev := &uploadDevice{}
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	tx := FromImage(dev, img, Filter(forge.MinNearest, forge.MagNearest))
	tx.Bind(0)
	if dev.mipmaps != 0 {
		t.Errorf("mipmap generations = %d, want 0", dev.mipmaps)
	}
	if dev.minFilter != forge.MinNearest {
		t.Errorf("min filter = %v, want MinNearest", dev.minFilter)
	}
}

func TestSetSubImageBounds(t *testing.T) {
	dev := &uploadDevice{}
	tx := New(dev, 16, 16)
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	tx.SetSubImage(image.Rect(2, 3, 6, 7), src, image.Point{})
	if len(dev.subRects) != 1 || dev.subRects[0] != image.Rect(2, 3, 6, 7) {
		t.Errorf("sub-image rects = %v, want [(2,3)-(6,7)]", dev.subRects)
	}

	// Zero size updates are dropped before reaching the device.
	tx.SetSubImage(image.Rect(1, 1, 1, 5), src, image.Point{})
	if len(dev.subRects) != 1 {
		t.Errorf("zero-width sub-image reached the device")
	}
}

func TestDelete(t *testing.T) {
	dev := &uploadDevice{}
	tx := New(dev, 4, 4)
	id := tx.NativeID()
	tx.Delete()
	if len(dev.deleted) != 1 || dev.deleted[0] != id {
		t.Errorf("deleted = %v, want [%d]", dev.deleted, id)
	}
}

func TestGLCoords(t *testing.T) {
	tx := New(&uploadDevice{}, 32, 64)
	x, y := tx.GLCoords(image.Pt(8, 16))
	if x != 0.25 || y != 0.25 {
		t.Errorf("GLCoords = (%v, %v), want (0.25, 0.25)", x, y)
	}
}
