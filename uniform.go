package forge

import "github.com/go-gl/mathgl/mgl32"

// UniformKind discriminates the value held by a Uniform.
//
type UniformKind uint8

const (
	UniformInvalid UniformKind = iota
	UniformKindFloat
	UniformKindVec2
	UniformKindVec3
	UniformKindVec4
	UniformKindInt
	UniformKindIVec2
	UniformKindIVec3
	UniformKindIVec4
	UniformKindMat4
)

// Uniform is a shader uniform value. It is a plain comparable value so that
// the state manager can detect redundant uploads with ==.
//
type Uniform struct {
	kind UniformKind
	f    [4]float32
	i    [4]int32
	m    mgl32.Mat4
}

func UniformFloat(v float32) Uniform {
	return Uniform{kind: UniformKindFloat, f: [4]float32{v}}
}

func UniformVec2(v mgl32.Vec2) Uniform {
	return Uniform{kind: UniformKindVec2, f: [4]float32{v[0], v[1]}}
}

func UniformVec3(v mgl32.Vec3) Uniform {
	return Uniform{kind: UniformKindVec3, f: [4]float32{v[0], v[1], v[2]}}
}

func UniformVec4(v mgl32.Vec4) Uniform {
	return Uniform{kind: UniformKindVec4, f: [4]float32(v)}
}

func UniformInt(v int32) Uniform {
	return Uniform{kind: UniformKindInt, i: [4]int32{v}}
}

func UniformIVec2(x, y int32) Uniform {
	return Uniform{kind: UniformKindIVec2, i: [4]int32{x, y}}
}

func UniformIVec3(x, y, z int32) Uniform {
	return Uniform{kind: UniformKindIVec3, i: [4]int32{x, y, z}}
}

func UniformIVec4(x, y, z, w int32) Uniform {
	return Uniform{kind: UniformKindIVec4, i: [4]int32{x, y, z, w}}
}

func UniformMat4(m mgl32.Mat4) Uniform {
	return Uniform{kind: UniformKindMat4, m: m}
}

// Kind returns the discriminator of u.
//
func (u Uniform) Kind() UniformKind {
	return u.kind
}

// Floats returns the float payload of u. Only the first Kind-dependent number
// of elements is meaningful.
//
func (u Uniform) Floats() [4]float32 {
	return u.f
}

// Ints returns the integer payload of u.
//
func (u Uniform) Ints() [4]int32 {
	return u.i
}

// Mat4 returns the matrix payload of u.
//
func (u Uniform) Mat4() mgl32.Mat4 {
	return u.m
}
