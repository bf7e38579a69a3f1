package forge

import "github.com/go-gl/mathgl/mgl32"

// MatrixStack accumulates model transforms with push/pop scoping.
//
type MatrixStack struct {
	stack   []mgl32.Mat4
	current mgl32.Mat4
}

// NewMatrixStack returns a stack whose current transform is the identity.
//
func NewMatrixStack() *MatrixStack {
	return &MatrixStack{current: mgl32.Ident4()}
}

// Push saves the current transform.
//
func (s *MatrixStack) Push() {
	s.stack = append(s.stack, s.current)
}

// Pop restores the most recently pushed transform. It panics if the stack is
// empty; match every Push with a Pop.
//
func (s *MatrixStack) Pop() {
	l := len(s.stack)
	if l == 0 {
		panic("forge: MatrixStack underflow")
	}
	s.current = s.stack[l-1]
	s.stack = s.stack[:l-1]
}

func (s *MatrixStack) Translate(v mgl32.Vec3) {
	s.current = s.current.Mul4(mgl32.Translate3D(v[0], v[1], v[2]))
}

func (s *MatrixStack) Scale(v mgl32.Vec3) {
	s.current = s.current.Mul4(mgl32.Scale3D(v[0], v[1], v[2]))
}

func (s *MatrixStack) Rotate(q mgl32.Quat) {
	s.current = s.current.Mul4(q.Mat4())
}

// Mul multiplies the current transform by m.
//
func (s *MatrixStack) Mul(m mgl32.Mat4) {
	s.current = s.current.Mul4(m)
}

// Transform returns the current accumulated transform.
//
func (s *MatrixStack) Transform() mgl32.Mat4 {
	return s.current
}
