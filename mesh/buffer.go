package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/forgegl/forge"
)

// Format describes how vertices are assembled for a BufferBuilder.
//
type Format interface {
	newVertex() vertex
	layout() Layout
}

// SimpleFormat is a position vertex with optional color, normal and UV
// attributes bound to the conventional locations 0..3.
//
type SimpleFormat struct {
	Color  bool
	Normal bool
	UV     bool
}

func (f SimpleFormat) newVertex() vertex {
	parts := []vertexPart{{index: 0, size: 3}}
	if f.Color {
		parts = append(parts, vertexPart{index: 1, size: 4})
	}
	if f.Normal {
		parts = append(parts, vertexPart{index: 2, size: 3})
	}
	if f.UV {
		parts = append(parts, vertexPart{index: 3, size: 2})
	}
	return vertex{parts: parts}
}

func (f SimpleFormat) layout() Layout {
	attrs := []Attribute{{Location: 0, Size: 3}}
	if f.Color {
		attrs = append(attrs, Attribute{Location: 1, Size: 4})
	}
	if f.Normal {
		attrs = append(attrs, Attribute{Location: 2, Size: 3})
	}
	if f.UV {
		attrs = append(attrs, Attribute{Location: 3, Size: 2})
	}
	return NewLayout(attrs...)
}

// NamedAttribute declares one attribute of an ArbitraryFormat.
//
type NamedAttribute struct {
	Name  string
	Index uint8
	Size  uint8
}

// ArbitraryFormat assembles vertices from caller named attributes.
//
type ArbitraryFormat struct {
	Attributes []NamedAttribute
}

func (f ArbitraryFormat) newVertex() vertex {
	parts := make([]vertexPart, len(f.Attributes))
	for i, a := range f.Attributes {
		parts[i] = vertexPart{index: a.Index, size: int(a.Size)}
	}
	return vertex{parts: parts}
}

func (f ArbitraryFormat) layout() Layout {
	attrs := make([]Attribute, len(f.Attributes))
	for i, a := range f.Attributes {
		attrs[i] = Attribute{Location: uint32(a.Index), Size: int32(a.Size)}
	}
	return NewLayout(attrs...)
}

type vertexPart struct {
	index  uint8
	size   int
	values []float32
}

type vertex struct {
	parts []vertexPart
}

func (v *vertex) set(index uint8, values []float32) bool {
	for i := range v.parts {
		p := &v.parts[i]
		if p.index == index && p.size == len(values) && p.values == nil {
			p.values = values
			return true
		}
	}
	return false
}

func (v *vertex) started() bool {
	for i := range v.parts {
		if v.parts[i].values != nil {
			return true
		}
	}
	return false
}

func (v *vertex) complete() bool {
	for i := range v.parts {
		if len(v.parts[i].values) != v.parts[i].size {
			return false
		}
	}
	return true
}

func (v *vertex) pack(buf []float32) []float32 {
	for i := range v.parts {
		buf = append(buf, v.parts[i].values...)
	}
	return buf
}

// BufferBuilder accumulates vertices in CPU memory and submits them in one
// transient draw. Uniform and sampler values queued on the builder are routed
// through the state manager so redundant uploads are dropped.
//
type BufferBuilder struct {
	format   Format
	current  vertex
	data     []float32
	program  uint32
	uniforms map[string]forge.Uniform
	samplers map[string]sampler
}

type sampler struct {
	slot uint32
	tex  uint32
}

// NewBufferBuilder returns a BufferBuilder over format, drawing with the
// given shader program.
//
func NewBufferBuilder(program uint32, format Format) *BufferBuilder {
	return &BufferBuilder{
		format:   format,
		current:  format.newVertex(),
		program:  program,
		uniforms: make(map[string]forge.Uniform),
		samplers: make(map[string]sampler),
	}
}

// NewSimpleBuffer returns a BufferBuilder over a SimpleFormat.
//
func NewSimpleBuffer(program uint32, color, normal, uv bool) *BufferBuilder {
	return NewBufferBuilder(program, SimpleFormat{Color: color, Normal: normal, UV: uv})
}

func (b *BufferBuilder) pushVertex() {
	if b.current.started() && b.current.complete() {
		b.data = b.current.pack(b.data)
	}
	b.current = b.format.newVertex()
}

// AddVertex starts a new vertex at the given position (SimpleFormat
// location 0), committing the previous one.
//
func (b *BufferBuilder) AddVertex(pos mgl32.Vec3) *BufferBuilder {
	b.pushVertex()
	b.current.set(0, []float32{pos[0], pos[1], pos[2]})
	return b
}

// SetColor sets the current vertex color (SimpleFormat location 1).
//
func (b *BufferBuilder) SetColor(c forge.Color) *BufferBuilder {
	b.current.set(1, []float32{c.R, c.G, c.B, c.A})
	return b
}

// SetNormal sets the current vertex normal (SimpleFormat location 2).
//
func (b *BufferBuilder) SetNormal(n mgl32.Vec3) *BufferBuilder {
	b.current.set(2, []float32{n[0], n[1], n[2]})
	return b
}

// SetUV sets the current vertex texture coordinates (SimpleFormat
// location 3).
//
func (b *BufferBuilder) SetUV(uv mgl32.Vec2) *BufferBuilder {
	b.current.set(3, []float32{uv[0], uv[1]})
	return b
}

// NextVertex starts a new vertex for an ArbitraryFormat, committing the
// previous one.
//
func (b *BufferBuilder) NextVertex() {
	b.pushVertex()
}

// SetValue sets a named attribute of the current vertex. The name must be
// declared by the format and the value must have exactly the declared number
// of elements; both are checked before any device call can be issued.
//
func (b *BufferBuilder) SetValue(name string, values []float32) error {
	f, ok := b.format.(ArbitraryFormat)
	if !ok {
		return &AttributeNameError{Name: name}
	}
	for _, a := range f.Attributes {
		if a.Name != name {
			continue
		}
		if len(values) != int(a.Size) {
			return &AttributeSizeError{Name: name, Expected: int(a.Size), Got: len(values)}
		}
		b.current.set(a.Index, values)
		return nil
	}
	return &AttributeNameError{Name: name}
}

// SetUniform queues a uniform value to set when the buffer is rendered.
//
func (b *BufferBuilder) SetUniform(name string, value forge.Uniform) {
	b.uniforms[name] = value
}

// SetSampler queues a texture binding and its sampler uniform.
//
func (b *BufferBuilder) SetSampler(name string, slot uint32, tex uint32) {
	b.samplers[name] = sampler{slot: slot, tex: tex}
}

// Render validates the accumulated data, uploads it into a transient vertex
// array and draws it as triangles, then resets the builder for reuse. Nothing
// reaches the device if validation fails.
//
func (b *BufferBuilder) Render(m *forge.Manager) error {
	b.pushVertex()

	l := b.format.layout()
	stride := l.Stride()
	if stride == 0 || int32(len(b.data))%stride != 0 {
		return ErrMalformedData
	}
	count := int32(len(b.data)) / stride
	if count%3 != 0 {
		return ErrIncompleteTriangles
	}

	dev := m.Device()
	vao := dev.GenVertexArray()
	vbo := dev.GenBuffers(1)[0]

	m.BindVertexArray(vao)
	dev.BindBuffer(forge.ArrayBuffer, vbo)
	dev.BufferDataFloats(forge.ArrayBuffer, b.data, forge.StreamDraw)

	var offset int32
	for _, a := range l.Attributes() {
		dev.EnableVertexAttribArray(a.Location)
		dev.VertexAttribPointer(a.Location, a.Size, stride*4, offset*4)
		offset += a.Size
	}

	m.UseProgram(b.program)
	for name, u := range b.uniforms {
		m.SetUniform(name, u)
	}
	for name, s := range b.samplers {
		m.SetUniform(name, forge.UniformInt(int32(s.slot)))
		m.BindTexture(s.slot, s.tex)
	}

	dev.DrawTriangles(0, count)

	m.BindVertexArray(0)
	m.DestroyBuffers([]uint32{vbo})
	m.DestroyVertexArray(vao)

	b.data = b.data[:0]
	b.current = b.format.newVertex()
	return nil
}
