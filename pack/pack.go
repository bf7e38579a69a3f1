// Package pack implements a deterministic shelf packer for placing
// rectangles on a fixed-size page without overlap.
//
// Placement walks left to right along the current shelf and opens a new shelf
// below when a rectangle does not fit. The result depends only on the request
// order, which keeps layouts reproducible.
//
package pack

import "image"

// Config describes the page to pack onto. BorderPadding is reserved once
// around the page edge; RectanglePadding is reserved after every placed
// rectangle, separating it from its right and bottom neighbors.
//
type Config struct {
	Width            int
	Height           int
	BorderPadding    int
	RectanglePadding int
}

// Packer places rectangles on a single page.
//
type Packer struct {
	cfg Config

	x, y    int // next placement position
	shelf   int // height of the tallest rectangle on the current shelf
	anyUsed bool
}

// New returns an empty Packer for the given page.
//
func New(cfg Config) *Packer {
	return &Packer{
		cfg: cfg,
		x:   cfg.BorderPadding,
		y:   cfg.BorderPadding,
	}
}

// place computes where a w×h rectangle would go. It does not mutate p.
//
func (p *Packer) place(w, h int) (image.Rectangle, bool) {
	if w <= 0 || h <= 0 {
		return image.Rectangle{}, false
	}
	right := p.cfg.Width - p.cfg.BorderPadding
	bottom := p.cfg.Height - p.cfg.BorderPadding

	x, y := p.x, p.y
	if x+w > right {
		// open a new shelf
		x = p.cfg.BorderPadding
		y += p.shelf + p.cfg.RectanglePadding
	}
	if x+w > right || y+h > bottom {
		return image.Rectangle{}, false
	}
	return image.Rect(x, y, x+w, y+h), true
}

// CanPack reports whether a w×h rectangle still fits on the page. It never
// mutates the packer.
//
func (p *Packer) CanPack(w, h int) bool {
	_, ok := p.place(w, h)
	return ok
}

// Pack places a w×h rectangle and returns its page rectangle. The second
// return value is false if the rectangle does not fit; the packer is left
// unchanged in that case.
//
func (p *Packer) Pack(w, h int) (image.Rectangle, bool) {
	r, ok := p.place(w, h)
	if !ok {
		return image.Rectangle{}, false
	}
	if r.Min.X < p.x {
		// the placement opened a new shelf
		p.y += p.shelf + p.cfg.RectanglePadding
		p.shelf = 0
	}
	p.x = r.Max.X + p.cfg.RectanglePadding
	p.y = r.Min.Y
	if h > p.shelf {
		p.shelf = h
	}
	p.anyUsed = true
	return r, true
}

// Empty reports whether nothing has been placed yet.
//
func (p *Packer) Empty() bool {
	return !p.anyUsed
}
