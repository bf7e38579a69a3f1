// Package gl implements the forge.Device interface on top of OpenGL 4.1 core
// profile bindings.
//
package gl

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"

	"github.com/forgegl/forge"
)

var depthFuncs = [...]uint32{
	forge.DepthNever:    gl.NEVER,
	forge.DepthLess:     gl.LESS,
	forge.DepthEqual:    gl.EQUAL,
	forge.DepthLEqual:   gl.LEQUAL,
	forge.DepthGreater:  gl.GREATER,
	forge.DepthGEqual:   gl.GEQUAL,
	forge.DepthNotEqual: gl.NOTEQUAL,
	forge.DepthAlways:   gl.ALWAYS,
}

var cullFaces = [...]uint32{
	forge.CullBack:         gl.BACK,
	forge.CullFront:        gl.FRONT,
	forge.CullFrontAndBack: gl.FRONT_AND_BACK,
}

var windings = [...]uint32{
	forge.CW:  gl.CW,
	forge.CCW: gl.CCW,
}

var blendFactors = [...]uint32{
	forge.BlendZero:                  gl.ZERO,
	forge.BlendOne:                   gl.ONE,
	forge.BlendSrcColor:              gl.SRC_COLOR,
	forge.BlendOneMinusSrcColor:      gl.ONE_MINUS_SRC_COLOR,
	forge.BlendDstColor:              gl.DST_COLOR,
	forge.BlendOneMinusDstColor:      gl.ONE_MINUS_DST_COLOR,
	forge.BlendSrcAlpha:              gl.SRC_ALPHA,
	forge.BlendOneMinusSrcAlpha:      gl.ONE_MINUS_SRC_ALPHA,
	forge.BlendDstAlpha:              gl.DST_ALPHA,
	forge.BlendOneMinusDstAlpha:      gl.ONE_MINUS_DST_ALPHA,
	forge.BlendConstantColor:         gl.CONSTANT_COLOR,
	forge.BlendOneMinusConstantColor: gl.ONE_MINUS_CONSTANT_COLOR,
	forge.BlendConstantAlpha:         gl.CONSTANT_ALPHA,
	forge.BlendOneMinusConstantAlpha: gl.ONE_MINUS_CONSTANT_ALPHA,
	forge.SrcAlphaSaturate:           gl.SRC_ALPHA_SATURATE,
}

var blendEquations = [...]uint32{
	forge.BlendAdd:             gl.FUNC_ADD,
	forge.BlendSubtract:        gl.FUNC_SUBTRACT,
	forge.BlendReverseSubtract: gl.FUNC_REVERSE_SUBTRACT,
	forge.BlendMin:             gl.MIN,
	forge.BlendMax:             gl.MAX,
}

var stencilFuncs = [...]uint32{
	forge.StencilNever:    gl.NEVER,
	forge.StencilLess:     gl.LESS,
	forge.StencilLEqual:   gl.LEQUAL,
	forge.StencilGreater:  gl.GREATER,
	forge.StencilGEqual:   gl.GEQUAL,
	forge.StencilEqual:    gl.EQUAL,
	forge.StencilNotEqual: gl.NOTEQUAL,
	forge.StencilAlways:   gl.ALWAYS,
}

var stencilOps = [...]uint32{
	forge.StencilKeep:     gl.KEEP,
	forge.StencilZero:     gl.ZERO,
	forge.StencilReplace:  gl.REPLACE,
	forge.StencilIncr:     gl.INCR,
	forge.StencilIncrWrap: gl.INCR_WRAP,
	forge.StencilDecr:     gl.DECR,
	forge.StencilDecrWrap: gl.DECR_WRAP,
	forge.StencilInvert:   gl.INVERT,
}

var stencilFaces = [...]uint32{
	forge.StencilFront:        gl.FRONT,
	forge.StencilBack:         gl.BACK,
	forge.StencilFrontAndBack: gl.FRONT_AND_BACK,
}

var minFilters = [...]int32{
	forge.MinNearest:              gl.NEAREST,
	forge.MinLinear:               gl.LINEAR,
	forge.MinNearestMipmapNearest: gl.NEAREST_MIPMAP_NEAREST,
	forge.MinNearestMipmapLinear:  gl.NEAREST_MIPMAP_LINEAR,
	forge.MinLinearMipmapNearest:  gl.LINEAR_MIPMAP_NEAREST,
	forge.MinLinearMipmapLinear:   gl.LINEAR_MIPMAP_LINEAR,
}

var magFilters = [...]int32{
	forge.MagNearest: gl.NEAREST,
	forge.MagLinear:  gl.LINEAR,
}

var wrapModes = [...]int32{
	forge.Repeat:         gl.REPEAT,
	forge.MirroredRepeat: gl.MIRRORED_REPEAT,
	forge.ClampToEdge:    gl.CLAMP_TO_EDGE,
	forge.ClampToBorder:  gl.CLAMP_TO_BORDER,
}

var pixelFormats = [...]uint32{
	forge.RGBA: gl.RGBA,
	forge.RGB:  gl.RGB,
}

var internalFormats = [...]int32{
	forge.RGBA: gl.RGBA8,
	forge.RGB:  gl.RGB8,
}

var bufferTargets = [...]uint32{
	forge.ArrayBuffer:        gl.ARRAY_BUFFER,
	forge.ElementArrayBuffer: gl.ELEMENT_ARRAY_BUFFER,
}

var bufferUsages = [...]uint32{
	forge.StaticDraw:  gl.STATIC_DRAW,
	forge.StreamDraw:  gl.STREAM_DRAW,
	forge.DynamicDraw: gl.DYNAMIC_DRAW,
}

// Device issues forge device calls to the current OpenGL context. All methods
// must be called from the thread that owns the context.
//
type Device struct{}

// NewDevice initializes the OpenGL bindings and returns a Device. A context
// must be current.
//
func NewDevice() (*Device, error) {
	if err := gl.Init(); err != nil {
		return nil, errors.Wrap(err, "initialize OpenGL")
	}
	return &Device{}, nil
}

func setCap(c uint32, on bool) {
	if on {
		gl.Enable(c)
	} else {
		gl.Disable(c)
	}
}

func (d *Device) GenTexture() uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	return id
}

func (d *Device) DeleteTexture(id uint32) {
	gl.DeleteTextures(1, &id)
}

func (d *Device) BindTexture(slot uint32, tex uint32) {
	gl.ActiveTexture(gl.TEXTURE0 + slot)
	gl.BindTexture(gl.TEXTURE_2D, tex)
}

func (d *Device) TexImage2D(w, h int32, format forge.PixelFormat, pix []uint8) {
	var ptr unsafe.Pointer
	if len(pix) > 0 {
		ptr = gl.Ptr(pix)
	}
	gl.TexImage2D(gl.TEXTURE_2D, 0, internalFormats[format], w, h, 0, pixelFormats[format], gl.UNSIGNED_BYTE, ptr)
}

func (d *Device) TexSubImage2D(x, y, w, h int32, pix []uint8) {
	gl.TexSubImage2D(gl.TEXTURE_2D, 0, x, y, w, h, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pix))
}

func (d *Device) TexFilter(min forge.MinFilter, mag forge.MagFilter) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, minFilters[min])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, magFilters[mag])
}

func (d *Device) TexWrap(s, t forge.WrapMode, border forge.Color) {
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, wrapModes[s])
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, wrapModes[t])
	if s == forge.ClampToBorder || t == forge.ClampToBorder {
		c := border.Array()
		gl.TexParameterfv(gl.TEXTURE_2D, gl.TEXTURE_BORDER_COLOR, &c[0])
	}
}

func (d *Device) GenerateMipmap() {
	gl.GenerateMipmap(gl.TEXTURE_2D)
}

func (d *Device) SetDepthTest(on bool) { setCap(gl.DEPTH_TEST, on) }

func (d *Device) DepthFunc(fn forge.DepthFunc) { gl.DepthFunc(depthFuncs[fn]) }

func (d *Device) DepthMask(write bool) { gl.DepthMask(write) }

func (d *Device) SetCulling(on bool) { setCap(gl.CULL_FACE, on) }

func (d *Device) CullFace(face forge.CullFace) { gl.CullFace(cullFaces[face]) }

func (d *Device) FrontFace(w forge.Winding) { gl.FrontFace(windings[w]) }

func (d *Device) SetBlending(on bool) { setCap(gl.BLEND, on) }

func (d *Device) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha forge.BlendFactor) {
	gl.BlendFuncSeparate(blendFactors[srcRGB], blendFactors[dstRGB], blendFactors[srcAlpha], blendFactors[dstAlpha])
}

func (d *Device) BlendEquationSeparate(rgb, alpha forge.BlendEquation) {
	gl.BlendEquationSeparate(blendEquations[rgb], blendEquations[alpha])
}

func (d *Device) SetStencilTest(on bool) { setCap(gl.STENCIL_TEST, on) }

func (d *Device) StencilFunc(face forge.StencilFace, fn forge.StencilFunc, ref int32, mask uint32) {
	gl.StencilFuncSeparate(stencilFaces[face], stencilFuncs[fn], ref, mask)
}

func (d *Device) StencilOp(face forge.StencilFace, fail, zfail, zpass forge.StencilOp) {
	gl.StencilOpSeparate(stencilFaces[face], stencilOps[fail], stencilOps[zfail], stencilOps[zpass])
}

func (d *Device) StencilMask(face forge.StencilFace, mask uint32) {
	gl.StencilMaskSeparate(stencilFaces[face], mask)
}

func (d *Device) SetScissorTest(on bool) { setCap(gl.SCISSOR_TEST, on) }

func (d *Device) Scissor(x, y, w, h int32) { gl.Scissor(x, y, w, h) }

func (d *Device) Viewport(x, y, w, h int32) { gl.Viewport(x, y, w, h) }

func (d *Device) UseProgram(p uint32) { gl.UseProgram(p) }

func (d *Device) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (d *Device) BindFramebuffer(fbo uint32) { gl.BindFramebuffer(gl.FRAMEBUFFER, fbo) }

func (d *Device) BindSampler(slot uint32, sampler uint32) { gl.BindSampler(slot, sampler) }

func (d *Device) UniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) SetUniform(location int32, u forge.Uniform) {
	switch u.Kind() {
	case forge.UniformKindFloat:
		f := u.Floats()
		gl.Uniform1f(location, f[0])
	case forge.UniformKindVec2:
		f := u.Floats()
		gl.Uniform2f(location, f[0], f[1])
	case forge.UniformKindVec3:
		f := u.Floats()
		gl.Uniform3f(location, f[0], f[1], f[2])
	case forge.UniformKindVec4:
		f := u.Floats()
		gl.Uniform4f(location, f[0], f[1], f[2], f[3])
	case forge.UniformKindInt:
		i := u.Ints()
		gl.Uniform1i(location, i[0])
	case forge.UniformKindIVec2:
		i := u.Ints()
		gl.Uniform2i(location, i[0], i[1])
	case forge.UniformKindIVec3:
		i := u.Ints()
		gl.Uniform3i(location, i[0], i[1], i[2])
	case forge.UniformKindIVec4:
		i := u.Ints()
		gl.Uniform4i(location, i[0], i[1], i[2], i[3])
	case forge.UniformKindMat4:
		m := u.Mat4()
		gl.UniformMatrix4fv(location, 1, false, &m[0])
	}
}

func (d *Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Device) GenBuffers(n int) []uint32 {
	bufs := make([]uint32, n)
	gl.GenBuffers(int32(n), &bufs[0])
	return bufs
}

func (d *Device) BindBuffer(target forge.BufferTarget, buf uint32) {
	gl.BindBuffer(bufferTargets[target], buf)
}

func (d *Device) BufferDataFloats(target forge.BufferTarget, data []float32, usage forge.BufferUsage) {
	gl.BufferData(bufferTargets[target], len(data)*4, gl.Ptr(data), bufferUsages[usage])
}

func (d *Device) BufferDataUints(target forge.BufferTarget, data []uint32, usage forge.BufferUsage) {
	gl.BufferData(bufferTargets[target], len(data)*4, gl.Ptr(data), bufferUsages[usage])
}

func (d *Device) VertexAttribPointer(index uint32, size int32, stride int32, offset int32) {
	gl.VertexAttribPointer(index, size, gl.FLOAT, false, stride, gl.PtrOffset(int(offset)))
}

func (d *Device) VertexAttribDivisor(index uint32, divisor uint32) {
	gl.VertexAttribDivisor(index, divisor)
}

func (d *Device) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (d *Device) DisableVertexAttribArray(index uint32) { gl.DisableVertexAttribArray(index) }

func (d *Device) DrawTriangles(first, count int32) {
	gl.DrawArrays(gl.TRIANGLES, first, count)
}

func (d *Device) DrawTrianglesInstanced(count, instances int32) {
	gl.DrawElementsInstanced(gl.TRIANGLES, count, gl.UNSIGNED_INT, nil, instances)
}

func (d *Device) DeleteProgram(p uint32) { gl.DeleteProgram(p) }

func (d *Device) DeleteBuffers(bufs []uint32) {
	if len(bufs) == 0 {
		return
	}
	gl.DeleteBuffers(int32(len(bufs)), &bufs[0])
}

func (d *Device) DeleteVertexArray(vao uint32) {
	gl.DeleteVertexArrays(1, &vao)
}
