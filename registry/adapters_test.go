package registry

import (
	"image"
	"testing"

	"github.com/forgegl/forge"
	"github.com/forgegl/forge/atlas"
	"github.com/forgegl/forge/mesh"
)

type countingDevice struct {
	forge.NopDevice
	deletedTextures int
	deletedBuffers  int
}

func (d *countingDevice) DeleteTexture(uint32)        { d.deletedTextures++ }
func (d *countingDevice) DeleteBuffers(bufs []uint32) { d.deletedBuffers += len(bufs) }

func TestAtlasSetAdapter(t *testing.T) {
	dev := &countingDevice{}
	m := forge.NewManager(dev)

	b := atlas.NewSetBuilder(dev, 32, 32, 1, 1)
	if err := b.Add("one", image.NewRGBA(image.Rect(0, 0, 8, 8))); err != nil {
		t.Fatal(err)
	}
	set, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}

	reg := New()
	id := ID{Kind: Atlas, Name: "sprites"}
	if err := reg.Add(id, AtlasSet(set)); err != nil {
		t.Fatal(err)
	}
	reg.Remove(m, id)
	if dev.deletedTextures != 1 {
		t.Errorf("deleted page textures = %d, want 1", dev.deletedTextures)
	}
}

func TestInstancedMeshAdapter(t *testing.T) {
	dev := &countingDevice{}
	m := forge.NewManager(dev)

	im := mesh.NewInstancedMesh(dev, 3,
		mesh.NewLayout(mesh.Attribute{Location: 0, Size: 3}),
		mesh.NewLayout(mesh.Attribute{Location: 1, Size: 4}),
		[]float32{0, 0, 0, 1, 0, 0, 0, 1, 0})

	reg := New()
	id := ID{Kind: Mesh, Name: "quad"}
	if err := reg.Add(id, InstancedMesh(im)); err != nil {
		t.Fatal(err)
	}
	reg.DestroyAll(m)
	if dev.deletedBuffers != 3 {
		t.Errorf("deleted buffers = %d, want 3", dev.deletedBuffers)
	}
}
