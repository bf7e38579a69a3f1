package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/forgegl/forge"
)

// VertexRenderer streams raw float32 vertex data through a persistent vertex
// array and buffer, avoiding object churn on hot paths.
//
type VertexRenderer struct {
	buf     []float32
	layout  Layout
	vao     uint32
	vbo     uint32
	program uint32

	// Setup, when non-nil, runs after the program is bound and before the
	// draw, typically to set per-draw uniforms.
	Setup func(m *forge.Manager)
}

// NewVertexRenderer allocates the renderer's vertex array and buffer.
//
func NewVertexRenderer(dev forge.Device, layout Layout, program uint32) *VertexRenderer {
	vao := dev.GenVertexArray()
	dev.BindVertexArray(vao)
	vbo := dev.GenBuffers(1)[0]
	return &VertexRenderer{
		layout:  layout,
		vao:     vao,
		vbo:     vbo,
		program: program,
	}
}

// SetProgram switches the shader program used by subsequent Render calls.
//
func (r *VertexRenderer) SetProgram(program uint32) {
	r.program = program
}

func (r *VertexRenderer) Put(v float32) *VertexRenderer {
	r.buf = append(r.buf, v)
	return r
}

func (r *VertexRenderer) Put2(v0, v1 float32) *VertexRenderer {
	r.buf = append(r.buf, v0, v1)
	return r
}

func (r *VertexRenderer) Put3(v0, v1, v2 float32) *VertexRenderer {
	r.buf = append(r.buf, v0, v1, v2)
	return r
}

func (r *VertexRenderer) Put4(v0, v1, v2, v3 float32) *VertexRenderer {
	r.buf = append(r.buf, v0, v1, v2, v3)
	return r
}

// PutMat4 appends the 16 elements of m in column major order.
//
func (r *VertexRenderer) PutMat4(m mgl32.Mat4) *VertexRenderer {
	r.buf = append(r.buf, m[:]...)
	return r
}

// Len returns the number of buffered float32 values.
//
func (r *VertexRenderer) Len() int {
	return len(r.buf)
}

// Render validates and draws the buffered data as triangles, then clears the
// buffer. Validation failures leave the device untouched and the buffer
// cleared, mirroring a successful submission.
//
func (r *VertexRenderer) Render(m *forge.Manager) error {
	buf := r.buf
	r.buf = r.buf[:0]

	stride := r.layout.Stride()
	if stride == 0 || int32(len(buf))%stride != 0 {
		return ErrMalformedData
	}
	count := int32(len(buf)) / stride
	if count%3 != 0 {
		return ErrIncompleteTriangles
	}

	m.BindVertexArray(r.vao)
	m.UseProgram(r.program)
	if r.Setup != nil {
		r.Setup(m)
	}

	dev := m.Device()
	dev.BindBuffer(forge.ArrayBuffer, r.vbo)
	dev.BufferDataFloats(forge.ArrayBuffer, buf, forge.StreamDraw)

	var offset int32
	for _, a := range r.layout.Attributes() {
		dev.EnableVertexAttribArray(a.Location)
		dev.VertexAttribPointer(a.Location, a.Size, stride*4, offset*4)
		offset += a.Size
	}

	dev.DrawTriangles(0, count)

	for _, a := range r.layout.Attributes() {
		dev.DisableVertexAttribArray(a.Location)
	}
	return nil
}

// Destroy releases the renderer's device objects.
//
func (r *VertexRenderer) Destroy(m *forge.Manager) {
	m.DestroyBuffers([]uint32{r.vbo})
	m.DestroyVertexArray(r.vao)
	r.vao, r.vbo = 0, 0
}
