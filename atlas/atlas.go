// Package atlas builds texture atlases: fixed-size device textures holding
// many packed sub-images, keyed by caller supplied identifiers.
//
// A Builder packs one page; a SetBuilder keeps opening fresh pages until every
// queued image is placed. Built atlases are immutable.
//
package atlas

import (
	"fmt"
	"image"

	"golang.org/x/xerrors"

	"github.com/forgegl/forge/texture"
)

// Identifier names one source image. Identifiers are unique within a Builder
// or SetBuilder; registering a duplicate is an error, not a silent overwrite.
//
type Identifier string

// ErrTextureOverflow is returned by the strict build path when at least one
// queued image cannot be placed on the page.
//
var ErrTextureOverflow = xerrors.New("could not fit all textures on atlas")

// DuplicateIdentifierError reports an identifier registered twice.
//
type DuplicateIdentifierError struct {
	ID Identifier
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("cannot add texture with same id twice: %q", string(e.ID))
}

// Rect is an image's placement on its page: the absolute pixel rectangle plus
// the page dimensions it was placed against.
//
type Rect struct {
	X, Y          int
	Width, Height int

	pageW, pageH int
}

// Bounds returns the pixel rectangle within the page.
//
func (r Rect) Bounds() image.Rectangle {
	return image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
}

// UV returns the placement as fractions of the page dimensions, suitable for
// texture sampling. For any placement accepted by a Builder,
// 0 ≤ u0 < u1 ≤ 1 and 0 ≤ v0 < v1 ≤ 1.
//
func (r Rect) UV() (u0, v0, u1, v1 float32) {
	w, h := float32(r.pageW), float32(r.pageH)
	return float32(r.X) / w, float32(r.Y) / h,
		float32(r.X+r.Width) / w, float32(r.Y+r.Height) / h
}

// An Atlas is one built page: a device texture and the placements of every
// image accepted onto it. It cannot be modified; use a Builder.
//
type Atlas struct {
	tex    *texture.Texture
	rects  map[Identifier]Rect
	width  int
	height int
}

// Texture returns the page's device texture.
//
func (a *Atlas) Texture() *texture.Texture {
	return a.tex
}

// Size returns the page dimensions in pixels.
//
func (a *Atlas) Size() image.Point {
	return image.Pt(a.width, a.height)
}

// Len returns the number of images placed on the page.
//
func (a *Atlas) Len() int {
	return len(a.rects)
}

// Lookup returns the placement of id on this page. Absence is a normal result,
// not an error.
//
func (a *Atlas) Lookup(id Identifier) (Rect, bool) {
	r, ok := a.rects[id]
	return r, ok
}

// Destroy releases the page's device texture. The caller is responsible for
// sequencing this correctly relative to device use of the texture.
//
func (a *Atlas) Destroy() {
	a.tex.Delete()
}

// A Set is an immutable ordered collection of atlas pages. An identifier
// appears in at most one page of the set.
//
type Set struct {
	atlases []*Atlas
}

// Len returns the number of pages.
//
func (s *Set) Len() int {
	return len(s.atlases)
}

// Page returns the i-th page in creation order.
//
func (s *Set) Page(i int) *Atlas {
	return s.atlases[i]
}

// Contains reports whether id is placed anywhere in the set.
//
func (s *Set) Contains(id Identifier) bool {
	_, _, ok := s.Lookup(id)
	return ok
}

// Lookup resolves id by scanning pages in creation order and returns the
// owning page's texture and the placement. Absence is a normal result.
//
func (s *Set) Lookup(id Identifier) (*texture.Texture, Rect, bool) {
	for _, a := range s.atlases {
		if r, ok := a.Lookup(id); ok {
			return a.tex, r, true
		}
	}
	return nil, Rect{}, false
}

// Destroy releases every page's device texture. The Set is the sole releaser
// of its pages.
//
func (s *Set) Destroy() {
	for _, a := range s.atlases {
		a.Destroy()
	}
}
