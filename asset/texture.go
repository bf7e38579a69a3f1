package asset

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"golang.org/x/xerrors"

	"github.com/forgegl/forge"
	"github.com/forgegl/forge/texture"
)

type texImage struct {
	img image.Image
}

func (*texImage) Close() error { return nil }

type tex texture.Texture

func (t *tex) Close() error {
	(*texture.Texture)(t).Delete()
	return nil
}

// TexturePath returns an Option that sets the default texture path.
//
func TexturePath(name string) Option {
	return cfn(func(cfg *config) {
		cfg.texturePath = name
	})
}

func loadImage(r io.Reader, name string) (interface{}, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return nil, err
	}
	return &texImage{src}, nil
}

// Image returns the named texture asset as a decoded image, without uploading
// it to any device.
//
func (m *Manager) Image(name string) (image.Image, error) {
	m.m.Lock()
	defer m.m.Unlock()
	a, err := m.get(Texture(name))
	if err != nil {
		return nil, err
	}
	switch t := a.(type) {
	case *texImage:
		return t.img, nil
	default:
		return nil, xerrors.Errorf("asset %s is not an image", name)
	}
}

// Texture returns the named texture asset, uploading it to dev on first use.
// The cache keeps the device texture; the decoded image is dropped after the
// upload.
//
func (m *Manager) Texture(dev forge.Device, name string, params ...texture.Parameter) (*texture.Texture, error) {
	m.m.Lock()
	defer m.m.Unlock()
	a, err := m.get(Texture(name))
	if err != nil {
		return nil, err
	}
	switch t := a.(type) {
	case *tex:
		tx := (*texture.Texture)(t)
		tx.Parameters(params...)
		return tx, nil
	case *texImage:
		tx := texture.FromImage(dev, t.img, params...)
		m.assets[Texture(name)] = (*tex)(tx)
		return tx, nil
	default:
		return nil, xerrors.Errorf("asset %s is not a texture", name)
	}
}
