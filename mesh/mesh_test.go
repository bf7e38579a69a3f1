package mesh

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/forgegl/forge"
)

type drawDevice struct {
	forge.NopDevice
	draws          int
	instancedDraws int
	uploads        [][]float32
	deletedBuffers int
}

func (d *drawDevice) DrawTriangles(first, count int32) { d.draws++ }

func (d *drawDevice) DrawTrianglesInstanced(count, instances int32) { d.instancedDraws++ }

func (d *drawDevice) BufferDataFloats(target forge.BufferTarget, data []float32, usage forge.BufferUsage) {
	cp := make([]float32, len(data))
	copy(cp, data)
	d.uploads = append(d.uploads, cp)
}

func (d *drawDevice) DeleteBuffers(buffers []uint32) { d.deletedBuffers += len(buffers) }

func TestLayoutStride(t *testing.T) {
	l := NewLayout(Attribute{Location: 0, Size: 3}, Attribute{Location: 1, Size: 4}, Attribute{Location: 3, Size: 2})
	if got := l.Stride(); got != 9 {
		t.Errorf("Stride() = %d, want 9", got)
	}
}

func TestSetValueUnknownAttribute(t *testing.T) {
	b := NewBufferBuilder(1, ArbitraryFormat{Attributes: []NamedAttribute{
		{Name: "pos", Index: 0, Size: 3},
	}})
	err := b.SetValue("normal", []float32{0, 1, 0})
	var nameErr *AttributeNameError
	if !errors.As(err, &nameErr) {
		t.Fatalf("SetValue = %v, want AttributeNameError", err)
	}
	if nameErr.Name != "normal" {
		t.Errorf("error name = %q, want %q", nameErr.Name, "normal")
	}
}

func TestSetValueSizeMismatch(t *testing.T) {
	b := NewBufferBuilder(1, ArbitraryFormat{Attributes: []NamedAttribute{
		{Name: "pos", Index: 0, Size: 3},
	}})
	err := b.SetValue("pos", []float32{1, 2})
	var sizeErr *AttributeSizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("SetValue = %v, want AttributeSizeError", err)
	}
	if sizeErr.Expected != 3 || sizeErr.Got != 2 {
		t.Errorf("size error = %d/%d, want 3/2", sizeErr.Expected, sizeErr.Got)
	}
}

func TestBufferBuilderIncompleteTriangles(t *testing.T) {
	dev := &drawDevice{}
	m := forge.NewManager(dev)
	b := NewSimpleBuffer(1, false, false, false)

	// Two vertices are not a triangle.
	b.AddVertex(mgl32.Vec3{0, 0, 0})
	b.AddVertex(mgl32.Vec3{1, 0, 0})
	if err := b.Render(m); !errors.Is(err, ErrIncompleteTriangles) {
		t.Fatalf("Render = %v, want ErrIncompleteTriangles", err)
	}
	if dev.draws != 0 || len(dev.uploads) != 0 {
		t.Error("rejected submission reached the device")
	}
}

func TestBufferBuilderRender(t *testing.T) {
	dev := &drawDevice{}
	m := forge.NewManager(dev)
	b := NewSimpleBuffer(1, true, false, false)

	verts := []mgl32.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	for _, v := range verts {
		b.AddVertex(v).SetColor(forge.RGBf(1, 0, 0))
	}
	if err := b.Render(m); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if dev.draws != 1 {
		t.Errorf("draws = %d, want 1", dev.draws)
	}
	if len(dev.uploads) != 1 {
		t.Fatalf("uploads = %d, want 1", len(dev.uploads))
	}
	// 3 vertices of (pos3 + color4) floats.
	if got := len(dev.uploads[0]); got != 3*7 {
		t.Errorf("uploaded %d floats, want %d", got, 3*7)
	}
	// Position of the second vertex follows the first vertex's color.
	if dev.uploads[0][7] != 1 {
		t.Errorf("second vertex x = %v, want 1", dev.uploads[0][7])
	}
	if dev.deletedBuffers != 1 {
		t.Errorf("transient buffers deleted = %d, want 1", dev.deletedBuffers)
	}

	// The builder is reusable after Render.
	for _, v := range verts {
		b.AddVertex(v).SetColor(forge.RGBf(0, 1, 0))
	}
	if err := b.Render(m); err != nil {
		t.Fatalf("second Render: %v", err)
	}
	if dev.draws != 2 {
		t.Errorf("draws after reuse = %d, want 2", dev.draws)
	}
}

func TestBufferBuilderIncompleteVertexDropped(t *testing.T) {
	dev := &drawDevice{}
	m := forge.NewManager(dev)
	b := NewSimpleBuffer(1, true, false, false)

	// The first vertex never receives its color: it must not be committed,
	// leaving a clean triangle from the remaining three.
	b.AddVertex(mgl32.Vec3{9, 9, 9})
	b.AddVertex(mgl32.Vec3{0, 0, 0}).SetColor(forge.RGBf(1, 1, 1))
	b.AddVertex(mgl32.Vec3{1, 0, 0}).SetColor(forge.RGBf(1, 1, 1))
	b.AddVertex(mgl32.Vec3{0, 1, 0}).SetColor(forge.RGBf(1, 1, 1))
	if err := b.Render(m); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := len(dev.uploads[0]); got != 3*7 {
		t.Errorf("uploaded %d floats, want %d", got, 3*7)
	}
	if dev.uploads[0][0] != 0 {
		t.Errorf("first committed vertex x = %v, want 0", dev.uploads[0][0])
	}
}

func TestVertexRendererValidation(t *testing.T) {
	dev := &drawDevice{}
	m := forge.NewManager(dev)
	r := NewVertexRenderer(dev, NewLayout(Attribute{Location: 0, Size: 2}), 1)

	r.Put2(0, 0).Put2(1, 0).Put(0.5) // 5 floats, stride 2
	if err := r.Render(m); !errors.Is(err, ErrMalformedData) {
		t.Fatalf("Render = %v, want ErrMalformedData", err)
	}
	if dev.draws != 0 {
		t.Error("malformed submission reached the device")
	}

	r.Put2(0, 0).Put2(1, 0).Put2(0, 1)
	if err := r.Render(m); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if dev.draws != 1 {
		t.Errorf("draws = %d, want 1", dev.draws)
	}
}

func TestVertexRendererSetup(t *testing.T) {
	dev := &drawDevice{}
	m := forge.NewManager(dev)
	r := NewVertexRenderer(dev, NewLayout(Attribute{Location: 0, Size: 3}), 7)

	var setupProgram uint32
	r.Setup = func(m *forge.Manager) {
		setupProgram = m.State().Program
	}
	r.Put3(0, 0, 0).Put3(1, 0, 0).Put3(0, 1, 0)
	if err := r.Render(m); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if setupProgram != 7 {
		t.Errorf("program during Setup = %d, want 7", setupProgram)
	}
}

func TestInstancedMesh(t *testing.T) {
	dev := &drawDevice{}
	m := forge.NewManager(dev)
	meshLayout := NewLayout(Attribute{Location: 0, Size: 3})
	instLayout := NewLayout(Attribute{Location: 1, Size: 4})

	im := NewInstancedMesh(dev, 3, meshLayout, instLayout, []float32{
		0, 0, 0, 1, 0, 0, 0, 1, 0,
	})

	if err := im.Draw([]float32{1, 2}); !errors.Is(err, ErrMalformedData) {
		t.Errorf("Draw with wrong stride = %v, want ErrMalformedData", err)
	}
	if err := im.Draw([]float32{1, 2, 3, 4}); err != nil {
		t.Fatalf("Draw: %v", err)
	}
	im.Render(m, 1)
	if dev.instancedDraws != 1 {
		t.Errorf("instanced draws = %d, want 1", dev.instancedDraws)
	}
	// The queue is cleared after rendering.
	im.Render(m, 1)
	if dev.instancedDraws != 1 {
		t.Errorf("instanced draws after empty render = %d, want 1", dev.instancedDraws)
	}

	im.Destroy(m)
	if dev.deletedBuffers != 3 {
		t.Errorf("deleted buffers = %d, want 3", dev.deletedBuffers)
	}
}
