package graphics

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/tinyrange/noe/internal/gl"
)

//go:embed shaders/default.vert
var DefaultVertexShader string

//go:embed shaders/default.frag
var DefaultFragmentShader string

// ShaderLoc indexes Shader.Locs.
type ShaderLoc int

const (
	LocPosition ShaderLoc = iota
	LocColor
	LocTexCoords
	LocTextureIndex
	LocTextures
	LocProjection
	LocView
	LocModel

	numShaderLocs
)

type shaderLocation struct {
	name      string
	attribute bool
	required  bool
}

var shaderLocations = [numShaderLocs]shaderLocation{
	LocPosition:     {"a_Position", true, true},
	LocColor:        {"a_Color", true, true},
	LocTexCoords:    {"a_TexCoords", true, true},
	LocTextureIndex: {"a_TextureIndex", true, true},
	LocTextures:     {"u_Textures", false, true},
	LocProjection:   {"u_Projection", false, false},
	LocView:         {"u_View", false, false},
	LocModel:        {"u_Model", false, false},
}

func (l ShaderLoc) String() string {
	if l < 0 || l >= numShaderLocs {
		return fmt.Sprintf("ShaderLoc(%d)", int(l))
	}
	return shaderLocations[l].name
}

// Shader is a linked program and the locations of the variables the batch
// renderer feeds. A location is -1 when the program does not use it.
type Shader struct {
	ID   uint32
	Locs [numShaderLocs]int32
}

// Location returns the location of one of the renderer's shader variables.
func (s *Shader) Location(l ShaderLoc) int32 {
	if l < 0 || l >= numShaderLocs {
		return -1
	}
	return s.Locs[l]
}

// ShaderError carries the compile or link log of a failed shader.
type ShaderError struct {
	Stage string // "vertex", "fragment" or "link"
	Log   string
}

func (e *ShaderError) Error() string {
	msg := strings.TrimSpace(e.Log)
	if msg == "" {
		msg = "no log"
	}
	return fmt.Sprintf("graphics: %s shader failed: %s", e.Stage, msg)
}

// UniformType selects how SetUniform uploads its data.
type UniformType int

const (
	UniformInvalid UniformType = iota
	UniformFloat
	UniformVec2
	UniformVec3
	UniformVec4
	UniformUint
	UniformUvec2
	UniformUvec3
	UniformUvec4
	UniformInt
	UniformIvec2
	UniformIvec3
	UniformIvec4
	UniformMat3
	UniformMat4
	UniformSampler
)

var ErrUniformType = errors.New("graphics: uniform type does not match data")

func (r *Renderer) compile(stage uint32, name, source string) (uint32, error) {
	id := r.gl.CreateShader(stage)
	r.gl.ShaderSource(id, source)
	r.gl.CompileShader(id)
	if r.gl.GetShaderiv(id, gl.CompileStatus) == 0 {
		log := r.gl.GetShaderInfoLog(id)
		r.gl.DeleteShader(id)
		return 0, &ShaderError{Stage: name, Log: log}
	}
	return id, nil
}

// LoadShader compiles and links a program and looks up the renderer's
// variables in it. Attributes and the sampler array are required; missing
// matrices are only logged. Nothing is left allocated on failure.
func (r *Renderer) LoadShader(vertexSource, fragmentSource string) (*Shader, error) {
	vs, err := r.compile(gl.VertexShader, "vertex", vertexSource)
	if err != nil {
		r.log.Error("compile shader", "stage", "vertex", "err", err)
		return nil, err
	}
	fs, err := r.compile(gl.FragmentShader, "fragment", fragmentSource)
	if err != nil {
		r.gl.DeleteShader(vs)
		r.log.Error("compile shader", "stage", "fragment", "err", err)
		return nil, err
	}

	program := r.gl.CreateProgram()
	r.gl.AttachShader(program, vs)
	r.gl.AttachShader(program, fs)
	r.gl.LinkProgram(program)
	// The program keeps what it needs once linked.
	r.gl.DeleteShader(vs)
	r.gl.DeleteShader(fs)

	if r.gl.GetProgramiv(program, gl.LinkStatus) == 0 {
		err := &ShaderError{Stage: "link", Log: r.gl.GetProgramInfoLog(program)}
		r.gl.DeleteProgram(program)
		r.log.Error("link shader", "err", err)
		return nil, err
	}

	s := &Shader{ID: program}
	var missing []string
	for i, loc := range shaderLocations {
		var l int32
		if loc.attribute {
			l = r.gl.GetAttribLocation(program, loc.name)
		} else {
			l = r.gl.GetUniformLocation(program, loc.name)
		}
		s.Locs[i] = l
		if l >= 0 {
			continue
		}
		if loc.required {
			missing = append(missing, loc.name)
		} else {
			r.log.Warn("shader variable not found", "name", loc.name, "program", program)
		}
	}
	if len(missing) > 0 {
		r.gl.DeleteProgram(program)
		return nil, fmt.Errorf("%w: %s", ErrMissingLocation, strings.Join(missing, ", "))
	}

	// GL zero-initialises uniforms; start the transforms as identity instead.
	identity := MatrixIdentity()
	r.gl.UseProgram(program)
	for _, l := range []ShaderLoc{LocProjection, LocView, LocModel} {
		if s.Locs[l] >= 0 {
			r.gl.UniformMatrix4fv(s.Locs[l], false, identity[:])
		}
	}
	r.gl.UseProgram(0)

	r.log.Info("shader loaded", "program", program)
	return s, nil
}

// UnloadShader deletes the program. The shader must not be used afterwards.
func (r *Renderer) UnloadShader(s *Shader) {
	if s == nil || s.ID == 0 {
		return
	}
	r.gl.DeleteProgram(s.ID)
	s.ID = 0
}

// UniformLocation looks up an arbitrary uniform of s.
func (r *Renderer) UniformLocation(s *Shader, name string) int32 {
	return r.gl.GetUniformLocation(s.ID, name)
}

// AttributeLocation looks up an arbitrary attribute of s.
func (r *Renderer) AttributeLocation(s *Shader, name string) int32 {
	return r.gl.GetAttribLocation(s.ID, name)
}

func (r *Renderer) SetProjectionMatrix(s *Shader, m Matrix) error {
	return r.SetUniform(s, s.Locs[LocProjection], UniformMat4, m[:], false)
}

func (r *Renderer) SetViewMatrix(s *Shader, m Matrix) error {
	return r.SetUniform(s, s.Locs[LocView], UniformMat4, m[:], false)
}

func (r *Renderer) SetModelMatrix(s *Shader, m Matrix) error {
	return r.SetUniform(s, s.Locs[LocModel], UniformMat4, m[:], false)
}

// SetUniform uploads data to the uniform at location of s. data must be a
// []float32 for float vectors and matrices, []int32 for int vectors and
// samplers, []uint32 for unsigned vectors. A negative location is ignored, as
// GL itself does.
func (r *Renderer) SetUniform(s *Shader, location int32, typ UniformType, data any, transpose bool) error {
	if location < 0 {
		return nil
	}

	g := r.gl
	g.UseProgram(s.ID)
	defer g.UseProgram(0)

	switch v := data.(type) {
	case []float32:
		switch typ {
		case UniformFloat:
			g.Uniform1fv(location, v)
		case UniformVec2:
			g.Uniform2fv(location, v)
		case UniformVec3:
			g.Uniform3fv(location, v)
		case UniformVec4:
			g.Uniform4fv(location, v)
		case UniformMat3:
			g.UniformMatrix3fv(location, transpose, v)
		case UniformMat4:
			g.UniformMatrix4fv(location, transpose, v)
		default:
			return fmt.Errorf("%w: %d with []float32", ErrUniformType, typ)
		}
	case []int32:
		switch typ {
		case UniformInt, UniformSampler:
			g.Uniform1iv(location, v)
		case UniformIvec2:
			g.Uniform2iv(location, v)
		case UniformIvec3:
			g.Uniform3iv(location, v)
		case UniformIvec4:
			g.Uniform4iv(location, v)
		default:
			return fmt.Errorf("%w: %d with []int32", ErrUniformType, typ)
		}
	case []uint32:
		switch typ {
		case UniformUint:
			g.Uniform1uiv(location, v)
		case UniformUvec2:
			g.Uniform2uiv(location, v)
		case UniformUvec3:
			g.Uniform3uiv(location, v)
		case UniformUvec4:
			g.Uniform4uiv(location, v)
		default:
			return fmt.Errorf("%w: %d with []uint32", ErrUniformType, typ)
		}
	default:
		return fmt.Errorf("%w: unsupported data %T", ErrUniformType, data)
	}
	return nil
}
