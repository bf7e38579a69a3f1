package forge

// DepthFunc selects the comparison used by the depth test.
//
type DepthFunc int32

const (
	DepthNever DepthFunc = iota
	DepthLess
	DepthEqual
	DepthLEqual
	DepthGreater
	DepthGEqual
	DepthNotEqual
	DepthAlways
)

// CullFace selects which triangle faces are culled when culling is enabled.
//
type CullFace int32

const (
	CullBack CullFace = iota
	CullFront
	CullFrontAndBack
)

// Winding selects which vertex ordering counts as front-facing.
//
type Winding int32

const (
	CW Winding = iota
	CCW
)

// BlendFactor is a source or destination blend weight.
//
// SrcAlphaSaturate is only valid as a source factor.
//
type BlendFactor int32

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColor
	BlendOneMinusSrcColor
	BlendDstColor
	BlendOneMinusDstColor
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendConstantColor
	BlendOneMinusConstantColor
	BlendConstantAlpha
	BlendOneMinusConstantAlpha
	SrcAlphaSaturate
)

// BlendEquation combines the weighted source and destination values.
//
type BlendEquation int32

const (
	BlendAdd BlendEquation = iota
	BlendSubtract
	BlendReverseSubtract
	BlendMin
	BlendMax
)

// StencilFunc selects the comparison used by the stencil test.
//
type StencilFunc int32

const (
	StencilNever StencilFunc = iota
	StencilLess
	StencilLEqual
	StencilGreater
	StencilGEqual
	StencilEqual
	StencilNotEqual
	StencilAlways
)

// StencilOp is the action taken on the stencil buffer after a test.
//
type StencilOp int32

const (
	StencilKeep StencilOp = iota
	StencilZero
	StencilReplace
	StencilIncr
	StencilIncrWrap
	StencilDecr
	StencilDecrWrap
	StencilInvert
)

// StencilFace selects which faces a stencil setting applies to.
//
type StencilFace int32

const (
	StencilFront StencilFace = iota
	StencilBack
	StencilFrontAndBack
)

// MinFilter selects how to filter textures when minifying. The four mipmapped
// variants imply mipmap generation on upload.
//
type MinFilter int32

const (
	MinNearest MinFilter = iota
	MinLinear
	MinNearestMipmapNearest
	MinNearestMipmapLinear
	MinLinearMipmapNearest
	MinLinearMipmapLinear
)

// Mipmapped reports whether the filter samples from mipmap levels.
//
func (f MinFilter) Mipmapped() bool {
	return f >= MinNearestMipmapNearest
}

// MagFilter selects how to filter textures when magnifying.
//
type MagFilter int32

const (
	MagNearest MagFilter = iota
	MagLinear
)

// WrapMode selects how textures wrap when texture coordinates get outside of
// the range [0, 1].
//
type WrapMode int32

const (
	Repeat WrapMode = iota
	MirroredRepeat
	ClampToEdge
	ClampToBorder
)

// PixelFormat describes the channel layout of uploaded pixel data.
//
type PixelFormat int32

const (
	RGBA PixelFormat = iota
	RGB
)

// BufferTarget selects the binding point of a buffer object.
//
type BufferTarget int32

const (
	ArrayBuffer BufferTarget = iota
	ElementArrayBuffer
)

// BufferUsage hints how buffer data will be accessed.
//
type BufferUsage int32

const (
	StaticDraw BufferUsage = iota
	StreamDraw
	DynamicDraw
)
