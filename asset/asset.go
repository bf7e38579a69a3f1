// Package asset provides caching and concurrent preloading of textures, fonts
// and raw files from an overlay filesystem.
//
package asset

import (
	"io"
	"path"
	"strings"

	"golang.org/x/xerrors"
)

var errMissingAsset = xerrors.New("asset not found")

type closer interface {
	Close() error
}

type errorList []error

func (e errorList) Error() string {
	var sb strings.Builder
	for i, err := range e {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}

// Type designates the type of an asset.
//
type Type int

const (
	TypeFont Type = iota
	TypeTexture
	TypeFile
	typeLast
)

// Asset uniquely describes an asset.
//
type Asset struct {
	Type
	Name string
}

func (a Asset) String() string {
	switch a.Type {
	case TypeFont:
		return "font asset " + a.Name
	case TypeTexture:
		return "texture asset " + a.Name
	case TypeFile:
		return "file asset " + a.Name
	}
	return "unknown asset " + a.Name
}

func Font(name string) Asset    { return Asset{TypeFont, name} }
func Texture(name string) Asset { return Asset{TypeTexture, name} }
func File(name string) Asset    { return Asset{TypeFile, name} }

// Result wraps the result from preloading an asset.
//
type Result struct {
	Asset
	Err error
}

var loaders = [typeLast]func(r io.Reader, name string) (interface{}, error){
	TypeFont:    loadFont,
	TypeTexture: loadImage,
	TypeFile:    loadFile,
}

type config struct {
	texturePath string
	fontPath    string
	filePath    string
}

func (cfg *config) assetPath(a Asset) string {
	switch a.Type {
	case TypeFont:
		return path.Join(cfg.fontPath, a.Name)
	case TypeTexture:
		return path.Join(cfg.texturePath, a.Name)
	case TypeFile:
		return path.Join(cfg.filePath, a.Name)
	}
	return a.Name
}

// Option is implemented by option functions passed as arguments to NewManager.
//
type Option interface {
	set(*config)
}

type cfn func(*config)

func (f cfn) set(cfg *config) {
	f(cfg)
}
