package gl

import (
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/pkg/errors"
)

type Shader uint32

// Shader type arguments for NewShader.
const (
	VertexShader   = gl.VERTEX_SHADER
	FragmentShader = gl.FRAGMENT_SHADER
	GeometryShader = gl.GEOMETRY_SHADER
)

// NewShader compiles a shader of the given type. On compilation failure the
// returned error carries the driver's info log.
//
func NewShader(typ uint32, source string) (Shader, error) {
	s := gl.CreateShader(typ)
	src, free := gl.Strs(source + "\x00")
	gl.ShaderSource(s, 1, src, nil)
	free()
	gl.CompileShader(s)

	var status int32
	gl.GetShaderiv(s, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var loglen int32
		gl.GetShaderiv(s, gl.INFO_LOG_LENGTH, &loglen)
		log := strings.Repeat("\x00", int(loglen+1))
		gl.GetShaderInfoLog(s, loglen, nil, gl.Str(log))
		gl.DeleteShader(s)
		return 0, errors.Errorf("compile shader: %s", strings.TrimRight(log, "\x00"))
	}
	return Shader(s), nil
}

func (s Shader) Delete() {
	gl.DeleteShader(uint32(s))
}

type Program uint32

// NewProgram links shaders into a program. On link failure the returned error
// carries the driver's info log.
//
func NewProgram(shaders ...Shader) (Program, error) {
	p := gl.CreateProgram()
	for _, s := range shaders {
		gl.AttachShader(p, uint32(s))
	}
	gl.LinkProgram(p)

	var status int32
	gl.GetProgramiv(p, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var loglen int32
		gl.GetProgramiv(p, gl.INFO_LOG_LENGTH, &loglen)
		log := strings.Repeat("\x00", int(loglen+1))
		gl.GetProgramInfoLog(p, loglen, nil, gl.Str(log))
		gl.DeleteProgram(p)
		return 0, errors.Errorf("link program: %s", strings.TrimRight(log, "\x00"))
	}
	return Program(p), nil
}

func (p Program) Delete() {
	gl.DeleteProgram(uint32(p))
}

func (p Program) Use() {
	gl.UseProgram(uint32(p))
}

func (p Program) NativeID() uint32 {
	return uint32(p)
}

func (p Program) AttribLocation(name string) (uint32, error) {
	r := gl.GetAttribLocation(uint32(p), gl.Str(name+"\x00"))
	if r < 0 {
		return ^uint32(0), errors.Errorf("unknown attribute %s", name)
	}
	return uint32(r), nil
}

func (p Program) UniformLocation(name string) int32 {
	return gl.GetUniformLocation(uint32(p), gl.Str(name+"\x00"))
}
