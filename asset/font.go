package asset

import (
	"io"
	"io/ioutil"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/xerrors"

	"github.com/forgegl/forge"
	"github.com/forgegl/forge/text"
)

type fnt struct {
	name string
	f    *truetype.Font
	ds   map[fntOpts]*text.Drawer
}

func (f *fnt) Close() error {
	var errs errorList
	for opts, d := range f.ds {
		if err := d.Close(); err != nil {
			errs = append(errs, xerrors.Errorf("close face %v: %w", opts, err))
		}
	}
	f.ds = make(map[fntOpts]*text.Drawer)
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type fntOpts struct {
	sz float64
	h  text.Hinting
	mf forge.MagFilter
}

// FontPath returns an Option that sets the default font path.
//
func FontPath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.fontPath = name
	})
}

func loadFont(r io.Reader, name string) (interface{}, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	ttf, err := truetype.Parse(data)
	if err != nil {
		return nil, err
	}
	return &fnt{name, ttf, make(map[fntOpts]*text.Drawer)}, nil
}

// Font returns the named font asset.
//
func (m *Manager) Font(name string) (*truetype.Font, error) {
	m.m.Lock()
	defer m.m.Unlock()
	a, err := m.get(Font(name))
	if err != nil {
		return nil, err
	}
	f, ok := a.(*fnt)
	if !ok {
		return nil, xerrors.Errorf("asset %s is not a font", name)
	}
	return f.f, nil
}

// TextDrawer returns a text.Drawer on dev configured for the given font face
// (with a default DPI of 72).
//
// Note that this function caches any text.Drawer created. The only way to
// clean the cache is to Discard the corresponding font asset. If an
// application needs to be able to discard drawers individually, it should use
// Font instead and manage font.Face and text.Drawer creation and caching
// manually.
//
func (m *Manager) TextDrawer(dev forge.Device, name string, size float64, hinting text.Hinting, magFilter forge.MagFilter) (*text.Drawer, error) {
	m.m.Lock()
	defer m.m.Unlock()
	a, err := m.get(Font(name))
	if err != nil {
		return nil, err
	}
	f, ok := a.(*fnt)
	if !ok {
		return nil, xerrors.Errorf("asset %s is not a font", name)
	}
	opts := fntOpts{size, hinting, magFilter}
	if d := f.ds[opts]; d != nil {
		return d, nil
	}
	d := text.NewDrawer(dev, truetype.NewFace(f.f, &truetype.Options{
		Size:       size,
		Hinting:    font.Hinting(hinting),
		DPI:        72,
		SubPixelsX: text.SubPixelsX,
		SubPixelsY: text.SubPixelsY,
	}), magFilter)
	f.ds[opts] = d
	return d, nil
}
