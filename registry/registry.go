// Package registry tracks named device resources so they can be looked up by
// identity and released together.
//
package registry

import (
	"golang.org/x/xerrors"

	"github.com/forgegl/forge"
)

// Kind partitions the registry namespace so that a mesh and a texture may
// share a name without colliding.
//
type Kind int

const (
	Texture Kind = iota
	Atlas
	Mesh
	Buffer
)

func (k Kind) String() string {
	switch k {
	case Texture:
		return "texture"
	case Atlas:
		return "atlas"
	case Mesh:
		return "mesh"
	case Buffer:
		return "buffer"
	}
	return "unknown"
}

// ID identifies a registered resource.
//
type ID struct {
	Kind Kind
	Name string
}

func (id ID) String() string { return id.Kind.String() + "/" + id.Name }

// Resource is anything the registry can release.
//
type Resource interface {
	Destroy(m *forge.Manager)
}

// Func adapts a plain function to the Resource interface.
//
type Func func(m *forge.Manager)

func (f Func) Destroy(m *forge.Manager) { f(m) }

// Registry is a flat map of named resources. It is not safe for concurrent
// use; callers own all device access from a single goroutine.
//
type Registry struct {
	resources map[ID]Resource
}

// New returns an empty Registry.
//
func New() *Registry {
	return &Registry{resources: make(map[ID]Resource)}
}

// Add registers r under id. Registering an id twice is an error; the previous
// entry is kept.
//
func (reg *Registry) Add(id ID, r Resource) error {
	if _, ok := reg.resources[id]; ok {
		return xerrors.Errorf("registry: duplicate resource %s", id)
	}
	reg.resources[id] = r
	return nil
}

// Get returns the resource registered under id, or false when absent.
//
func (reg *Registry) Get(id ID) (Resource, bool) {
	r, ok := reg.resources[id]
	return r, ok
}

// Len returns the number of registered resources.
//
func (reg *Registry) Len() int { return len(reg.resources) }

// Remove destroys the resource registered under id and forgets it. Removing
// an absent id is a no-op.
//
func (reg *Registry) Remove(m *forge.Manager, id ID) {
	r, ok := reg.resources[id]
	if !ok {
		return
	}
	delete(reg.resources, id)
	r.Destroy(m)
}

// DestroyAll destroys every registered resource and empties the registry.
//
func (reg *Registry) DestroyAll(m *forge.Manager) {
	for id, r := range reg.resources {
		delete(reg.resources, id)
		r.Destroy(m)
	}
}
