// Package forge is the resource management core of a small rendering engine:
// texture atlas construction on top of a deterministic rectangle packer, and a
// cached mirror of the graphics device state that drops redundant device calls.
//
// The graphics device itself is abstracted behind the Device interface; the gl
// subpackage provides an OpenGL implementation. All device access is assumed to
// happen from a single thread, matching the underlying APIs.
//
package forge

// Device is the capability boundary to the graphics device. Implementations
// issue the corresponding device calls verbatim; all caching and diffing
// happens above this interface.
//
// A Device is not safe for concurrent use.
//
type Device interface {
	// Texture objects. TexImage2D, TexSubImage2D, filter, wrap and mipmap
	// calls apply to the texture bound by the last BindTexture call.
	GenTexture() uint32
	DeleteTexture(tex uint32)
	BindTexture(slot uint32, tex uint32)
	TexImage2D(width, height int32, format PixelFormat, pix []uint8)
	TexSubImage2D(x, y, width, height int32, pix []uint8)
	TexFilter(min MinFilter, mag MagFilter)
	TexWrap(s, t WrapMode, border Color)
	GenerateMipmap()

	// Fixed function state.
	SetDepthTest(enabled bool)
	DepthFunc(fn DepthFunc)
	DepthMask(mask bool)
	SetCulling(enabled bool)
	CullFace(face CullFace)
	FrontFace(winding Winding)
	SetBlending(enabled bool)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha BlendFactor)
	BlendEquationSeparate(rgb, alpha BlendEquation)
	SetStencilTest(enabled bool)
	StencilFunc(face StencilFace, fn StencilFunc, ref int32, mask uint32)
	StencilOp(face StencilFace, fail, zfail, zpass StencilOp)
	StencilMask(face StencilFace, mask uint32)
	SetScissorTest(enabled bool)
	Scissor(x, y, width, height int32)
	Viewport(x, y, width, height int32)

	// Object bindings.
	UseProgram(program uint32)
	BindVertexArray(vao uint32)
	BindFramebuffer(fbo uint32)
	BindSampler(slot uint32, sampler uint32)

	// Uniforms.
	UniformLocation(program uint32, name string) int32
	SetUniform(location int32, value Uniform)

	// Buffer and vertex array objects.
	GenVertexArray() uint32
	GenBuffers(n int) []uint32
	BindBuffer(target BufferTarget, buffer uint32)
	BufferDataFloats(target BufferTarget, data []float32, usage BufferUsage)
	BufferDataUints(target BufferTarget, data []uint32, usage BufferUsage)
	VertexAttribPointer(index uint32, size, stride, offset int32)
	VertexAttribDivisor(index, divisor uint32)
	EnableVertexAttribArray(index uint32)
	DisableVertexAttribArray(index uint32)
	DrawTriangles(first, count int32)
	DrawTrianglesInstanced(count, instances int32)

	// Object destruction.
	DeleteProgram(program uint32)
	DeleteBuffers(buffers []uint32)
	DeleteVertexArray(vao uint32)
}

// NopDevice implements Device with no-ops. Generated object names are unique
// non-zero values so that code exercising object lifecycles behaves sensibly
// without a live context. Useful for headless runs and as an embedding base
// for test doubles.
//
type NopDevice struct {
	next uint32
}

func (d *NopDevice) name() uint32 {
	d.next++
	return d.next
}

func (d *NopDevice) GenTexture() uint32                                            { return d.name() }
func (d *NopDevice) DeleteTexture(uint32)                                          {}
func (d *NopDevice) BindTexture(uint32, uint32)                                    {}
func (d *NopDevice) TexImage2D(int32, int32, PixelFormat, []uint8)                 {}
func (d *NopDevice) TexSubImage2D(int32, int32, int32, int32, []uint8)             {}
func (d *NopDevice) TexFilter(MinFilter, MagFilter)                                {}
func (d *NopDevice) TexWrap(WrapMode, WrapMode, Color)                             {}
func (d *NopDevice) GenerateMipmap()                                               {}
func (d *NopDevice) SetDepthTest(bool)                                             {}
func (d *NopDevice) DepthFunc(DepthFunc)                                           {}
func (d *NopDevice) DepthMask(bool)                                                {}
func (d *NopDevice) SetCulling(bool)                                               {}
func (d *NopDevice) CullFace(CullFace)                                             {}
func (d *NopDevice) FrontFace(Winding)                                             {}
func (d *NopDevice) SetBlending(bool)                                              {}
func (d *NopDevice) BlendFuncSeparate(BlendFactor, BlendFactor, BlendFactor, BlendFactor) {
}
func (d *NopDevice) BlendEquationSeparate(BlendEquation, BlendEquation)          {}
func (d *NopDevice) SetStencilTest(bool)                                         {}
func (d *NopDevice) StencilFunc(StencilFace, StencilFunc, int32, uint32)         {}
func (d *NopDevice) StencilOp(StencilFace, StencilOp, StencilOp, StencilOp)      {}
func (d *NopDevice) StencilMask(StencilFace, uint32)                             {}
func (d *NopDevice) SetScissorTest(bool)                                         {}
func (d *NopDevice) Scissor(int32, int32, int32, int32)                          {}
func (d *NopDevice) Viewport(int32, int32, int32, int32)                         {}
func (d *NopDevice) UseProgram(uint32)                                           {}
func (d *NopDevice) BindVertexArray(uint32)                                      {}
func (d *NopDevice) BindFramebuffer(uint32)                                      {}
func (d *NopDevice) BindSampler(uint32, uint32)                                  {}
func (d *NopDevice) UniformLocation(uint32, string) int32                        { return 0 }
func (d *NopDevice) SetUniform(int32, Uniform)                                   {}
func (d *NopDevice) GenVertexArray() uint32                                      { return d.name() }
func (d *NopDevice) BindBuffer(BufferTarget, uint32)                             {}
func (d *NopDevice) BufferDataFloats(BufferTarget, []float32, BufferUsage)       {}
func (d *NopDevice) BufferDataUints(BufferTarget, []uint32, BufferUsage)         {}
func (d *NopDevice) VertexAttribPointer(uint32, int32, int32, int32)             {}
func (d *NopDevice) VertexAttribDivisor(uint32, uint32)                          {}
func (d *NopDevice) EnableVertexAttribArray(uint32)                              {}
func (d *NopDevice) DisableVertexAttribArray(uint32)                             {}
func (d *NopDevice) DrawTriangles(int32, int32)                                  {}
func (d *NopDevice) DrawTrianglesInstanced(int32, int32)                         {}
func (d *NopDevice) DeleteProgram(uint32)                                        {}
func (d *NopDevice) DeleteBuffers([]uint32)                                      {}
func (d *NopDevice) DeleteVertexArray(uint32)                                    {}

func (d *NopDevice) GenBuffers(n int) []uint32 {
	bufs := make([]uint32, n)
	for i := range bufs {
		bufs[i] = d.name()
	}
	return bufs
}
