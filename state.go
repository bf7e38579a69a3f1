package forge

// DepthState mirrors the device's depth test configuration.
//
type DepthState struct {
	Enabled bool
	Func    DepthFunc
	Mask    bool
}

// CullState mirrors the device's face culling configuration.
//
type CullState struct {
	Enabled   bool
	Face      CullFace
	FrontFace Winding
}

// BlendState mirrors the device's blending configuration.
//
type BlendState struct {
	Enabled       bool
	SrcRGB        BlendFactor
	SrcAlpha      BlendFactor
	DstRGB        BlendFactor
	DstAlpha      BlendFactor
	RGBEquation   BlendEquation
	AlphaEquation BlendEquation
}

// StencilState mirrors the device's stencil test configuration.
//
type StencilState struct {
	Enabled   bool
	Face      StencilFace
	Func      StencilFunc
	Reference int32
	Mask      uint32
	WriteMask uint32
	FailOp    StencilOp
	ZFailOp   StencilOp
	ZPassOp   StencilOp
}

// Box is an (x, y, width, height) screen space rectangle.
//
type Box [4]int32

// RasterState mirrors the device's scissor and viewport configuration.
//
type RasterState struct {
	ScissorTest bool
	ScissorBox  Box
	Viewport    Box
}

// State is the authoritative mirror of the current device state plus a
// per-program cache of the last uniform values uploaded. Outside of a mutator
// call every field equals the live device state; that equality is maintained
// by the Manager rather than re-queried from the device.
//
// State is not meant to be hand constructed; use NewManager.
//
type State struct {
	Depth   DepthState
	Cull    CullState
	Blend   BlendState
	Stencil StencilState
	Raster  RasterState

	VAO         uint32
	Framebuffer uint32
	Program     uint32

	uniforms map[uint32]map[string]Uniform
}

// DefaultState returns the state of a fresh device context.
//
func DefaultState() State {
	return State{
		Depth: DepthState{Enabled: false, Func: DepthLess, Mask: true},
		Cull:  CullState{Enabled: false, Face: CullBack, FrontFace: CCW},
		Blend: BlendState{
			Enabled: false,
			SrcRGB:  BlendOne, SrcAlpha: BlendOne,
			DstRGB: BlendZero, DstAlpha: BlendZero,
			RGBEquation: BlendAdd, AlphaEquation: BlendAdd,
		},
		Stencil: StencilState{
			Enabled: false,
			Face:    StencilFrontAndBack,
			Func:    StencilAlways,
			Mask:      ^uint32(0),
			WriteMask: ^uint32(0),
			FailOp:    StencilKeep, ZFailOp: StencilKeep, ZPassOp: StencilKeep,
		},
		Raster: RasterState{
			ScissorBox: Box{0, 0, 8192, 8192},
			Viewport:   Box{0, 0, 8192, 8192},
		},
		uniforms: make(map[uint32]map[string]Uniform),
	}
}

// Clone returns a deep copy of s, including the uniform cache.
//
func (s *State) Clone() State {
	c := *s
	c.uniforms = make(map[uint32]map[string]Uniform, len(s.uniforms))
	for p, m := range s.uniforms {
		pm := make(map[string]Uniform, len(m))
		for n, v := range m {
			pm[n] = v
		}
		c.uniforms[p] = pm
	}
	return c
}

// Uniform returns the cached value last uploaded for name on program.
//
func (s *State) Uniform(program uint32, name string) (Uniform, bool) {
	m, ok := s.uniforms[program]
	if !ok {
		return Uniform{}, false
	}
	v, ok := m[name]
	return v, ok
}
