package atlas

import (
	"errors"
	"image"
	"testing"

	"github.com/forgegl/forge"
)

type countingDevice struct {
	forge.NopDevice
	uploads int
	deleted int
}

func (d *countingDevice) TexImage2D(w, h int32, format forge.PixelFormat, pix []uint8) {
	d.uploads++
}

func (d *countingDevice) DeleteTexture(tex uint32) { d.deleted++ }

func rgba(w, h int) *image.RGBA {
	return image.NewRGBA(image.Rect(0, 0, w, h))
}

func TestAddDuplicateIdentifier(t *testing.T) {
	b := NewBuilder(&countingDevice{}, 64, 64, 0, 0)
	if err := b.Add("grass", rgba(8, 8)); err != nil {
		t.Fatalf("first Add: %v", err)
	}
	err := b.Add("grass", rgba(4, 4))
	var dup *DuplicateIdentifierError
	if !errors.As(err, &dup) {
		t.Fatalf("second Add = %v, want DuplicateIdentifierError", err)
	}
	if dup.ID != "grass" {
		t.Errorf("duplicate id = %q, want %q", dup.ID, "grass")
	}
}

func TestAddZeroSizeImage(t *testing.T) {
	b := NewBuilder(&countingDevice{}, 64, 64, 0, 0)
	if err := b.Add("empty", rgba(0, 8)); err == nil {
		t.Error("Add accepted a zero width image")
	}
}

func TestBuildStrict(t *testing.T) {
	dev := &countingDevice{}
	b := NewBuilder(dev, 64, 64, 1, 1)
	ids := []Identifier{"a", "b", "c", "d"}
	for i, id := range ids {
		if err := b.Add(id, rgba(10+i, 10)); err != nil {
			t.Fatalf("Add %q: %v", id, err)
		}
	}

	a, err := b.BuildStrict()
	if err != nil {
		t.Fatalf("BuildStrict: %v", err)
	}
	if dev.uploads != 1 {
		t.Errorf("device uploads = %d, want 1", dev.uploads)
	}
	if a.Len() != len(ids) {
		t.Errorf("placed = %d, want %d", a.Len(), len(ids))
	}
	for _, id := range ids {
		if _, ok := a.Lookup(id); !ok {
			t.Errorf("id %q missing from atlas", id)
		}
	}
	if _, ok := a.Lookup("nope"); ok {
		t.Error("Lookup of unknown id reported presence")
	}
}

func TestBuildStrictOverflowNoUpload(t *testing.T) {
	dev := &countingDevice{}
	b := NewBuilder(dev, 32, 32, 2, 0)
	b.Add("fits", rgba(8, 8))
	b.Add("huge", rgba(40, 8)) // wider than the page
	_, err := b.BuildStrict()
	if !errors.Is(err, ErrTextureOverflow) {
		t.Fatalf("BuildStrict = %v, want ErrTextureOverflow", err)
	}
	if dev.uploads != 0 {
		t.Errorf("device uploads after aborted build = %d, want 0", dev.uploads)
	}
}

func TestBuildOverflow(t *testing.T) {
	dev := &countingDevice{}
	b := NewBuilder(dev, 32, 32, 0, 0)
	b.Add("big", rgba(30, 30))
	b.Add("small", rgba(8, 8)) // no room left beside big

	a, left, err := b.BuildOverflow()
	if err != nil {
		t.Fatalf("BuildOverflow: %v", err)
	}
	if dev.uploads != 1 {
		t.Errorf("device uploads = %d, want 1", dev.uploads)
	}
	if _, ok := a.Lookup("big"); !ok {
		t.Error("big not placed")
	}
	if len(left) != 1 || left[0].ID != "small" {
		t.Errorf("leftovers = %v, want [small]", left)
	}
}

func TestBuilderSingleUse(t *testing.T) {
	b := NewBuilder(&countingDevice{}, 16, 16, 0, 0)
	b.Add("x", rgba(4, 4))
	if _, _, err := b.BuildOverflow(); err != nil {
		t.Fatalf("first build: %v", err)
	}
	if _, _, err := b.BuildOverflow(); err == nil {
		t.Error("second build on a consumed builder succeeded")
	}
	if err := b.Add("y", rgba(4, 4)); err == nil {
		t.Error("Add on a consumed builder succeeded")
	}
}

func TestPlacementsDisjointAndInBounds(t *testing.T) {
	b := NewBuilder(&countingDevice{}, 64, 64, 2, 1)
	sizes := []image.Point{{20, 12}, {8, 30}, {16, 16}, {30, 6}, {5, 5}, {12, 20}}
	for i, s := range sizes {
		b.Add(Identifier(rune('a'+i)), rgba(s.X, s.Y))
	}
	a, left, err := b.BuildOverflow()
	if err != nil {
		t.Fatalf("BuildOverflow: %v", err)
	}
	if a.Len()+len(left) != len(sizes) {
		t.Fatalf("placed %d + leftover %d != queued %d", a.Len(), len(left), len(sizes))
	}

	var rects []image.Rectangle
	for i := range sizes {
		r, ok := a.Lookup(Identifier(rune('a' + i)))
		if !ok {
			continue
		}
		br := r.Bounds()
		if !br.In(image.Rect(2, 2, 62, 62)) {
			t.Errorf("placement %v intrudes into the border padding", br)
		}
		for _, q := range rects {
			if br.Overlaps(q) {
				t.Errorf("placements %v and %v overlap", br, q)
			}
		}
		rects = append(rects, br)

		u0, v0, u1, v1 := r.UV()
		if !(0 <= u0 && u0 < u1 && u1 <= 1) {
			t.Errorf("u coordinates (%v, %v) out of range", u0, u1)
		}
		if !(0 <= v0 && v0 < v1 && v1 <= 1) {
			t.Errorf("v coordinates (%v, %v) out of range", v0, v1)
		}
	}
	if len(rects) == 0 {
		t.Fatal("nothing placed")
	}
}

func TestLargestFirstOrder(t *testing.T) {
	b := NewBuilder(&countingDevice{}, 64, 64, 0, 0)
	b.Add("small", rgba(4, 4))
	b.Add("large", rgba(32, 32))

	a, err := b.BuildStrict()
	if err != nil {
		t.Fatalf("BuildStrict: %v", err)
	}
	lr, _ := a.Lookup("large")
	if lr.X != 0 || lr.Y != 0 {
		t.Errorf("largest image placed at (%d,%d), want (0,0)", lr.X, lr.Y)
	}
}

func TestSetBuilder(t *testing.T) {
	dev := &countingDevice{}
	sb := NewSetBuilder(dev, 32, 32, 0, 0)
	ids := []Identifier{"a", "b", "c", "d", "e"}
	for _, id := range ids {
		// Each image nearly fills a page, forcing one page per image.
		if err := sb.Add(id, rgba(30, 30)); err != nil {
			t.Fatalf("Add %q: %v", id, err)
		}
	}

	set, err := sb.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if set.Len() != len(ids) {
		t.Errorf("pages = %d, want %d", set.Len(), len(ids))
	}
	for _, id := range ids {
		pages := 0
		for i := 0; i < set.Len(); i++ {
			if _, ok := set.Page(i).Lookup(id); ok {
				pages++
			}
		}
		if pages != 1 {
			t.Errorf("id %q appears in %d pages, want 1", id, pages)
		}
	}
	if _, _, ok := set.Lookup("a"); !ok {
		t.Error("set Lookup failed for placed id")
	}
	if _, _, ok := set.Lookup("zzz"); ok {
		t.Error("set Lookup reported presence for unknown id")
	}

	set.Destroy()
	if dev.deleted != set.Len() {
		t.Errorf("deleted textures = %d, want %d", dev.deleted, set.Len())
	}
}

func TestSetBuilderManySmall(t *testing.T) {
	sb := NewSetBuilder(&countingDevice{}, 64, 64, 1, 1)
	n := 40
	for i := 0; i < n; i++ {
		id := Identifier(string(rune('A' + i%26)) + string(rune('a'+i/26)))
		if err := sb.Add(id, rgba(7+i%9, 5+i%11)); err != nil {
			t.Fatalf("Add %q: %v", id, err)
		}
	}
	set, err := sb.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	placed := 0
	for i := 0; i < set.Len(); i++ {
		placed += set.Page(i).Len()
	}
	if placed != n {
		t.Errorf("placed across set = %d, want %d", placed, n)
	}
}

func TestSetBuilderOversizedImage(t *testing.T) {
	sb := NewSetBuilder(&countingDevice{}, 32, 32, 0, 0)
	sb.Add("too-big", rgba(64, 64))
	_, err := sb.Build()
	if !errors.Is(err, ErrTextureOverflow) {
		t.Fatalf("Build = %v, want ErrTextureOverflow", err)
	}
}

func TestSetBuilderEmpty(t *testing.T) {
	sb := NewSetBuilder(&countingDevice{}, 32, 32, 0, 0)
	set, err := sb.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if set.Len() != 0 {
		t.Errorf("pages = %d, want 0", set.Len())
	}
}

func TestSetBuilderDuplicateAcrossSet(t *testing.T) {
	sb := NewSetBuilder(&countingDevice{}, 32, 32, 0, 0)
	sb.Add("dup", rgba(4, 4))
	err := sb.Add("dup", rgba(8, 8))
	var dupErr *DuplicateIdentifierError
	if !errors.As(err, &dupErr) {
		t.Fatalf("Add = %v, want DuplicateIdentifierError", err)
	}
}
