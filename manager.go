package forge

// Manager is the single logical owner of the device state mirror. Every
// mutator first diffs against the cached value and only issues a device call
// on change; calling a mutator with the value already in effect performs no
// device interaction at all.
//
// At most one Manager should exist per device context, and it must only be
// used from the thread owning that context.
//
type Manager struct {
	dev Device
	s   State
}

// NewManager returns a Manager mirroring a fresh device context.
//
func NewManager(dev Device) *Manager {
	return &Manager{dev: dev, s: DefaultState()}
}

// Device returns the underlying device.
//
func (m *Manager) Device() Device {
	return m.dev
}

// State returns a copy of the current state mirror.
//
func (m *Manager) State() State {
	return m.s.Clone()
}

func (m *Manager) SetDepthTest(enabled bool) {
	if m.s.Depth.Enabled != enabled {
		m.s.Depth.Enabled = enabled
		m.dev.SetDepthTest(enabled)
	}
}

func (m *Manager) SetDepthFunc(fn DepthFunc) {
	if m.s.Depth.Func != fn {
		m.s.Depth.Func = fn
		m.dev.DepthFunc(fn)
	}
}

func (m *Manager) SetDepthMask(mask bool) {
	if m.s.Depth.Mask != mask {
		m.s.Depth.Mask = mask
		m.dev.DepthMask(mask)
	}
}

func (m *Manager) SetCulling(enabled bool) {
	if m.s.Cull.Enabled != enabled {
		m.s.Cull.Enabled = enabled
		m.dev.SetCulling(enabled)
	}
}

func (m *Manager) SetCullFace(face CullFace) {
	if m.s.Cull.Face != face {
		m.s.Cull.Face = face
		m.dev.CullFace(face)
	}
}

func (m *Manager) SetFrontFace(winding Winding) {
	if m.s.Cull.FrontFace != winding {
		m.s.Cull.FrontFace = winding
		m.dev.FrontFace(winding)
	}
}

func (m *Manager) SetBlending(enabled bool) {
	if m.s.Blend.Enabled != enabled {
		m.s.Blend.Enabled = enabled
		m.dev.SetBlending(enabled)
	}
}

// SetBlendFunc sets the same factors for the RGB and alpha channels.
//
func (m *Manager) SetBlendFunc(src, dst BlendFactor) {
	m.SetBlendFuncSeparate(src, dst, src, dst)
}

func (m *Manager) SetBlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha BlendFactor) {
	b := &m.s.Blend
	if b.SrcRGB != srcRGB || b.DstRGB != dstRGB || b.SrcAlpha != srcAlpha || b.DstAlpha != dstAlpha {
		b.SrcRGB, b.DstRGB, b.SrcAlpha, b.DstAlpha = srcRGB, dstRGB, srcAlpha, dstAlpha
		m.dev.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
	}
}

func (m *Manager) SetBlendEquation(rgb, alpha BlendEquation) {
	b := &m.s.Blend
	if b.RGBEquation != rgb || b.AlphaEquation != alpha {
		b.RGBEquation, b.AlphaEquation = rgb, alpha
		m.dev.BlendEquationSeparate(rgb, alpha)
	}
}

func (m *Manager) SetStencilTest(enabled bool) {
	if m.s.Stencil.Enabled != enabled {
		m.s.Stencil.Enabled = enabled
		m.dev.SetStencilTest(enabled)
	}
}

func (m *Manager) SetStencilFunc(face StencilFace, fn StencilFunc, ref int32, mask uint32) {
	s := &m.s.Stencil
	if s.Face != face || s.Func != fn || s.Reference != ref || s.Mask != mask {
		s.Face, s.Func, s.Reference, s.Mask = face, fn, ref, mask
		m.dev.StencilFunc(face, fn, ref, mask)
	}
}

func (m *Manager) SetStencilOp(face StencilFace, fail, zfail, zpass StencilOp) {
	s := &m.s.Stencil
	if s.Face != face || s.FailOp != fail || s.ZFailOp != zfail || s.ZPassOp != zpass {
		s.Face, s.FailOp, s.ZFailOp, s.ZPassOp = face, fail, zfail, zpass
		m.dev.StencilOp(face, fail, zfail, zpass)
	}
}

func (m *Manager) SetStencilMask(face StencilFace, mask uint32) {
	s := &m.s.Stencil
	if s.Face != face || s.WriteMask != mask {
		s.Face, s.WriteMask = face, mask
		m.dev.StencilMask(face, mask)
	}
}

func (m *Manager) SetScissorTest(enabled bool) {
	if m.s.Raster.ScissorTest != enabled {
		m.s.Raster.ScissorTest = enabled
		m.dev.SetScissorTest(enabled)
	}
}

func (m *Manager) SetScissorBox(b Box) {
	if m.s.Raster.ScissorBox != b {
		m.s.Raster.ScissorBox = b
		m.dev.Scissor(b[0], b[1], b[2], b[3])
	}
}

func (m *Manager) SetViewport(b Box) {
	if m.s.Raster.Viewport != b {
		m.s.Raster.Viewport = b
		m.dev.Viewport(b[0], b[1], b[2], b[3])
	}
}

func (m *Manager) UseProgram(program uint32) {
	if m.s.Program != program {
		m.s.Program = program
		m.dev.UseProgram(program)
	}
}

func (m *Manager) BindVertexArray(vao uint32) {
	if m.s.VAO != vao {
		m.s.VAO = vao
		m.dev.BindVertexArray(vao)
	}
}

func (m *Manager) BindFramebuffer(fbo uint32) {
	if m.s.Framebuffer != fbo {
		m.s.Framebuffer = fbo
		m.dev.BindFramebuffer(fbo)
	}
}

// SetUniform uploads value for name on the current program unless the cache
// already holds an equal value for that (program, name) pair. The cache is
// keyed per program: a value cached under another program never suppresses an
// upload, and a name never set on the current program always uploads.
//
func (m *Manager) SetUniform(name string, value Uniform) {
	program := m.s.Program
	pm, ok := m.s.uniforms[program]
	if !ok {
		pm = make(map[string]Uniform)
		m.s.uniforms[program] = pm
	}
	if v, ok := pm[name]; ok && v == value {
		return
	}
	pm[name] = value
	loc := m.dev.UniformLocation(program, name)
	m.dev.SetUniform(loc, value)
}

// BindTexture binds tex to the given texture unit. Texture bindings are not
// part of the cached state.
//
func (m *Manager) BindTexture(slot uint32, tex uint32) {
	m.dev.BindTexture(slot, tex)
}

// BindSampler binds a sampler object to the given texture unit.
//
func (m *Manager) BindSampler(slot uint32, sampler uint32) {
	m.dev.BindSampler(slot, sampler)
}

// DestroyProgram deletes program and purges its uniform cache. If program is
// currently bound it is unbound first.
//
func (m *Manager) DestroyProgram(program uint32) {
	if m.s.Program == program {
		m.UseProgram(0)
	}
	delete(m.s.uniforms, program)
	m.dev.DeleteProgram(program)
}

// DestroyBuffers deletes the given buffer objects.
//
func (m *Manager) DestroyBuffers(buffers []uint32) {
	m.dev.DeleteBuffers(buffers)
}

// DestroyVertexArray deletes vao. The device unbinds a deleted vertex array
// implicitly; the cache follows.
//
func (m *Manager) DestroyVertexArray(vao uint32) {
	if m.s.VAO == vao {
		m.s.VAO = 0
	}
	m.dev.DeleteVertexArray(vao)
}

// setState feeds every field of saved back through the diffing mutators,
// returning both the device and the cache to that configuration.
//
func (m *Manager) setState(saved *State) {
	// Uniform values cached now but unknown at save time cannot be restored;
	// drop them so the next SetUniform re-uploads.
	for p, lm := range m.s.uniforms {
		sm, ok := saved.uniforms[p]
		if !ok {
			delete(m.s.uniforms, p)
			continue
		}
		for name := range lm {
			if _, ok := sm[name]; !ok {
				delete(lm, name)
			}
		}
	}
	for p, sm := range saved.uniforms {
		if len(sm) == 0 {
			continue
		}
		m.UseProgram(p)
		for name, v := range sm {
			m.SetUniform(name, v)
		}
	}

	m.UseProgram(saved.Program)
	m.BindFramebuffer(saved.Framebuffer)
	m.BindVertexArray(saved.VAO)

	m.SetBlendFuncSeparate(saved.Blend.SrcRGB, saved.Blend.DstRGB, saved.Blend.SrcAlpha, saved.Blend.DstAlpha)
	m.SetBlendEquation(saved.Blend.RGBEquation, saved.Blend.AlphaEquation)
	m.SetBlending(saved.Blend.Enabled)

	m.SetDepthTest(saved.Depth.Enabled)
	m.SetDepthFunc(saved.Depth.Func)
	m.SetDepthMask(saved.Depth.Mask)

	m.SetCulling(saved.Cull.Enabled)
	m.SetCullFace(saved.Cull.Face)
	m.SetFrontFace(saved.Cull.FrontFace)

	m.SetStencilFunc(saved.Stencil.Face, saved.Stencil.Func, saved.Stencil.Reference, saved.Stencil.Mask)
	m.SetStencilOp(saved.Stencil.Face, saved.Stencil.FailOp, saved.Stencil.ZFailOp, saved.Stencil.ZPassOp)
	m.SetStencilMask(saved.Stencil.Face, saved.Stencil.WriteMask)
	m.SetStencilTest(saved.Stencil.Enabled)

	m.SetScissorBox(saved.Raster.ScissorBox)
	m.SetScissorTest(saved.Raster.ScissorTest)
	m.SetViewport(saved.Raster.Viewport)
}
