package mesh

import (
	"log"
	"runtime"

	"github.com/forgegl/forge"
)

// InstancedMesh draws one static mesh many times with per-instance attribute
// data.
//
// An InstancedMesh owns device objects that can only be released through a
// state manager, so it must be destroyed explicitly with Destroy before it
// goes out of scope. A mesh collected without Destroy logs a loud diagnostic:
// its device objects have leaked.
//
type InstancedMesh struct {
	vertexCount    int32
	meshLayout     Layout
	instanceLayout Layout

	vao         uint32
	vbo         uint32
	indicesVBO  uint32
	instanceVBO uint32

	instances []float32
	count     int32
	freed     bool
}

// NewInstancedMesh uploads the static vertex data for a mesh of vertexCount
// vertices laid out per meshLayout, and configures a per-instance buffer laid
// out per instanceLayout.
//
func NewInstancedMesh(dev forge.Device, vertexCount int32, meshLayout, instanceLayout Layout, vertices []float32) *InstancedMesh {
	vao := dev.GenVertexArray()
	dev.BindVertexArray(vao)

	vbos := dev.GenBuffers(3)
	im := &InstancedMesh{
		vertexCount:    vertexCount,
		meshLayout:     meshLayout,
		instanceLayout: instanceLayout,
		vao:            vao,
		vbo:            vbos[0],
		indicesVBO:     vbos[1],
		instanceVBO:    vbos[2],
	}

	dev.BindBuffer(forge.ArrayBuffer, im.vbo)
	dev.BufferDataFloats(forge.ArrayBuffer, vertices, forge.StaticDraw)
	setAttribPointers(dev, meshLayout, 0)

	indices := make([]uint32, vertexCount)
	for i := range indices {
		indices[i] = uint32(i)
	}
	dev.BindBuffer(forge.ElementArrayBuffer, im.indicesVBO)
	dev.BufferDataUints(forge.ElementArrayBuffer, indices, forge.StaticDraw)

	dev.BindBuffer(forge.ArrayBuffer, im.instanceVBO)
	setAttribPointers(dev, instanceLayout, 1)

	dev.BindVertexArray(0)

	runtime.SetFinalizer(im, func(im *InstancedMesh) {
		if !im.freed {
			log.Printf("mesh: InstancedMesh collected without Destroy; device objects leaked (vao %d)", im.vao)
		}
	})
	return im
}

func setAttribPointers(dev forge.Device, l Layout, divisor uint32) {
	var offset int32
	stride := l.Stride()
	for _, a := range l.Attributes() {
		dev.VertexAttribPointer(a.Location, a.Size, stride*4, offset*4)
		dev.EnableVertexAttribArray(a.Location)
		dev.VertexAttribDivisor(a.Location, divisor)
		offset += a.Size
	}
}

// Draw queues one instance. data must hold exactly one instance worth of
// attribute values.
//
func (im *InstancedMesh) Draw(data []float32) error {
	if int32(len(data)) != im.instanceLayout.Stride() {
		return ErrMalformedData
	}
	im.instances = append(im.instances, data...)
	im.count++
	return nil
}

// CancelDraws discards all queued instances.
//
func (im *InstancedMesh) CancelDraws() {
	im.instances = im.instances[:0]
	im.count = 0
}

// Render uploads the queued instance data and issues one instanced draw, then
// clears the queue. Rendering zero instances is a no-op.
//
func (im *InstancedMesh) Render(m *forge.Manager, program uint32) {
	if im.count == 0 {
		return
	}
	dev := m.Device()
	m.BindVertexArray(im.vao)
	m.UseProgram(program)
	dev.BindBuffer(forge.ArrayBuffer, im.instanceVBO)
	dev.BufferDataFloats(forge.ArrayBuffer, im.instances, forge.DynamicDraw)
	dev.DrawTrianglesInstanced(im.vertexCount, im.count)
	im.CancelDraws()
}

// Destroy releases the mesh's device objects. It must be called exactly once
// before the mesh is dropped.
//
func (im *InstancedMesh) Destroy(m *forge.Manager) {
	m.DestroyBuffers([]uint32{im.vbo, im.indicesVBO, im.instanceVBO})
	m.DestroyVertexArray(im.vao)
	im.freed = true
	runtime.SetFinalizer(im, nil)
}
