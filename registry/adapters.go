package registry

import (
	"github.com/forgegl/forge"
	"github.com/forgegl/forge/atlas"
	"github.com/forgegl/forge/mesh"
)

// AtlasSet wraps an atlas set for registration. The set owns its page
// textures outright; destruction does not go through the manager.
//
func AtlasSet(s *atlas.Set) Resource {
	return Func(func(*forge.Manager) { s.Destroy() })
}

// InstancedMesh wraps an instanced mesh for registration.
//
func InstancedMesh(im *mesh.InstancedMesh) Resource {
	return Func(func(m *forge.Manager) { im.Destroy(m) })
}
