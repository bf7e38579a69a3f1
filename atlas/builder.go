package atlas

import (
	"image"
	"image/draw"
	"sort"

	"golang.org/x/xerrors"

	"github.com/forgegl/forge"
	"github.com/forgegl/forge/pack"
	"github.com/forgegl/forge/texture"
)

var (
	errConsumed  = xerrors.New("atlas builder already consumed")
	errZeroImage = xerrors.New("zero size image")
)

// Queued is an (identifier, decoded image) pair not yet placed.
//
type Queued struct {
	ID    Identifier
	Image image.Image
}

// A Builder accumulates images and packs them onto a single page. A Builder
// is single use: it is consumed by BuildStrict or BuildOverflow.
//
type Builder struct {
	dev       forge.Device
	width     int
	height    int
	borderPad int
	rectPad   int
	params    []texture.Parameter

	queue    []Queued
	ids      map[Identifier]struct{}
	consumed bool
}

// NewBuilder returns a Builder targeting a width×height page. borderPad pixels
// are reserved around the page edge and rectPad pixels around every placed
// rectangle. The texture parameters are applied on upload.
//
func NewBuilder(dev forge.Device, width, height, borderPad, rectPad int, params ...texture.Parameter) *Builder {
	return &Builder{
		dev:       dev,
		width:     width,
		height:    height,
		borderPad: borderPad,
		rectPad:   rectPad,
		params:    params,
		ids:       make(map[Identifier]struct{}),
	}
}

// Add queues an image for packing. It fails with a DuplicateIdentifierError
// if id is already queued, and rejects zero size images.
//
func (b *Builder) Add(id Identifier, img image.Image) error {
	if b.consumed {
		return errConsumed
	}
	sz := img.Bounds().Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return xerrors.Errorf("add %q: %w", string(id), errZeroImage)
	}
	if _, ok := b.ids[id]; ok {
		return &DuplicateIdentifierError{ID: id}
	}
	b.ids[id] = struct{}{}
	b.queue = append(b.queue, Queued{ID: id, Image: img})
	return nil
}

// BuildStrict packs every queued image onto the page and uploads it. If any
// image does not fit the whole build aborts with ErrTextureOverflow and no
// device upload occurs.
//
func (b *Builder) BuildStrict() (*Atlas, error) {
	a, _, err := b.build(true)
	return a, err
}

// BuildOverflow packs as many queued images as fit, uploads the page, and
// returns the images that did not fit for the caller to re-queue. A page is
// always produced; it is empty only if the queue was empty.
//
func (b *Builder) BuildOverflow() (*Atlas, []Queued, error) {
	return b.build(false)
}

func (b *Builder) build(strict bool) (*Atlas, []Queued, error) {
	if b.consumed {
		return nil, nil, errConsumed
	}
	b.consumed = true

	// Largest first packing materially improves the fill ratio of the greedy
	// packer. Ties keep insertion order.
	sorted := make([]Queued, len(b.queue))
	copy(sorted, b.queue)
	sort.SliceStable(sorted, func(i, j int) bool {
		si := sorted[i].Image.Bounds().Size()
		sj := sorted[j].Image.Bounds().Size()
		return si.X*si.Y > sj.X*sj.Y
	})

	p := pack.New(pack.Config{
		Width:            b.width,
		Height:           b.height,
		BorderPadding:    b.borderPad,
		RectanglePadding: b.rectPad,
	})

	var (
		page     = image.NewRGBA(image.Rect(0, 0, b.width, b.height))
		rects    = make(map[Identifier]Rect, len(sorted))
		overflow []Queued
	)
	for _, q := range sorted {
		if _, ok := rects[q.ID]; ok {
			// Add rejects duplicates already; re-check so that a duplicate can
			// never be placed twice even if the queue was mutated unexpectedly.
			return nil, nil, &DuplicateIdentifierError{ID: q.ID}
		}
		sz := q.Image.Bounds().Size()
		if !p.CanPack(sz.X, sz.Y) {
			if strict {
				return nil, nil, ErrTextureOverflow
			}
			overflow = append(overflow, q)
			continue
		}
		r, _ := p.Pack(sz.X, sz.Y)
		rects[q.ID] = Rect{
			X: r.Min.X, Y: r.Min.Y,
			Width: r.Dx(), Height: r.Dy(),
			pageW: b.width, pageH: b.height,
		}
		draw.Draw(page, r, q.Image, q.Image.Bounds().Min, draw.Src)
	}

	tex := texture.FromImage(b.dev, page, b.params...)
	return &Atlas{
		tex:    tex,
		rects:  rects,
		width:  b.width,
		height: b.height,
	}, overflow, nil
}

// A SetBuilder packs images onto as many pages as needed. It wraps repeated
// Builder use: each overflow seeds a fresh builder until everything fits.
//
// Precondition: no queued image may exceed the page dimensions minus padding,
// otherwise no page can ever accept it; Build fails with ErrTextureOverflow
// instead of looping.
//
type SetBuilder struct {
	dev       forge.Device
	width     int
	height    int
	borderPad int
	rectPad   int
	params    []texture.Parameter

	queue    []Queued
	ids      map[Identifier]struct{}
	consumed bool
}

// NewSetBuilder returns a SetBuilder; pages are configured exactly like
// NewBuilder.
//
func NewSetBuilder(dev forge.Device, width, height, borderPad, rectPad int, params ...texture.Parameter) *SetBuilder {
	return &SetBuilder{
		dev:       dev,
		width:     width,
		height:    height,
		borderPad: borderPad,
		rectPad:   rectPad,
		params:    params,
		ids:       make(map[Identifier]struct{}),
	}
}

// Add queues an image. Identifiers are unique across the whole set.
//
func (b *SetBuilder) Add(id Identifier, img image.Image) error {
	if b.consumed {
		return errConsumed
	}
	sz := img.Bounds().Size()
	if sz.X <= 0 || sz.Y <= 0 {
		return xerrors.Errorf("add %q: %w", string(id), errZeroImage)
	}
	if _, ok := b.ids[id]; ok {
		return &DuplicateIdentifierError{ID: id}
	}
	b.ids[id] = struct{}{}
	b.queue = append(b.queue, Queued{ID: id, Image: img})
	return nil
}

// Build drains the queue into successive pages until a build produces zero
// leftovers, then returns the ordered Set. Every queued identifier ends up in
// exactly one page. An empty queue yields an empty set.
//
func (b *SetBuilder) Build() (*Set, error) {
	if b.consumed {
		return nil, errConsumed
	}
	b.consumed = true

	set := &Set{}
	pending := b.queue
	for len(pending) > 0 {
		pb := NewBuilder(b.dev, b.width, b.height, b.borderPad, b.rectPad, b.params...)
		for _, q := range pending {
			if err := pb.Add(q.ID, q.Image); err != nil {
				set.Destroy()
				return nil, err
			}
		}
		a, left, err := pb.BuildOverflow()
		if err != nil {
			set.Destroy()
			return nil, err
		}
		if len(left) == len(pending) {
			// A fresh page accepted nothing: some image can never fit.
			a.Destroy()
			set.Destroy()
			return nil, xerrors.Errorf("image %q exceeds page size: %w", string(left[0].ID), ErrTextureOverflow)
		}
		set.atlases = append(set.atlases, a)
		pending = left
	}
	return set, nil
}
