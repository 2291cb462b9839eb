package main

import (
	"os"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"
)

type Shader struct {
	id uint32
}

// NewShader reads, compiles and links a vertex/fragment program from disk.
func NewShader(vertexPath string, fragmentPath string) (*Shader, error) {
	vertexSource, err := os.ReadFile(vertexPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read vertex shader")
	}
	fragmentSource, err := os.ReadFile(fragmentPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read fragment shader")
	}

	vertexShader, err := compileShader(string(vertexSource), gl.VERTEX_SHADER)
	if err != nil {
		return nil, errors.Wrapf(err, "vertex shader %q", vertexPath)
	}
	defer gl.DeleteShader(vertexShader)
	fragmentShader, err := compileShader(string(fragmentSource), gl.FRAGMENT_SHADER)
	if err != nil {
		return nil, errors.Wrapf(err, "fragment shader %q", fragmentPath)
	}
	defer gl.DeleteShader(fragmentShader)

	// Link all shaders together to form a shader program, which is used during rendering.
	id := gl.CreateProgram()
	gl.AttachShader(id, vertexShader)
	gl.AttachShader(id, fragmentShader)
	gl.LinkProgram(id)

	var success int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &success)
	if success == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]uint8, logLength+1)
		gl.GetProgramInfoLog(id, logLength, nil, &infoLog[0])
		gl.DeleteProgram(id)
		return nil, errors.Errorf("failed to link shader program: %s", gl.GoStr(&infoLog[0]))
	}

	return &Shader{id: id}, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	// The source must be a null-terminated C string.
	sourceString, free := gl.Strs(source + "\x00")
	defer free()
	gl.ShaderSource(shader, 1, sourceString, nil)
	gl.CompileShader(shader)

	var success int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &success)
	if success == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		infoLog := make([]uint8, logLength+1)
		gl.GetShaderInfoLog(shader, logLength, nil, &infoLog[0])
		gl.DeleteShader(shader)
		return 0, errors.Errorf("failed to compile: %s", gl.GoStr(&infoLog[0]))
	}
	return shader, nil
}

func (s *Shader) use() {
	gl.UseProgram(s.id)
}

func (s *Shader) uniform(name string) int32 {
	return gl.GetUniformLocation(s.id, gl.Str(name+"\x00"))
}

func (s *Shader) setInt(name string, value int32) {
	gl.Uniform1i(s.uniform(name), value)
}

func (s *Shader) setBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	s.setInt(name, v)
}

func (s *Shader) setVec3(name string, value mgl32.Vec3) {
	gl.Uniform3fv(s.uniform(name), 1, &value[0])
}

func (s *Shader) setMat4(name string, value mgl32.Mat4) {
	gl.UniformMatrix4fv(s.uniform(name), 1, false, &value[0])
}
