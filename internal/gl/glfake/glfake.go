// Package glfake provides a GPU-less gl.OpenGL that records every call and keeps
// just enough object state (buffers, textures, shaders, programs) to let tests
// inspect what a renderer uploaded and drew. It also backs the headless stub
// window.
package glfake

import (
	"fmt"
	"unsafe"

	"github.com/tinyrange/noe/internal/gl"
)

// Call is one recorded GL call.
type Call struct {
	Name string
	Args []any
}

func (c Call) String() string {
	return fmt.Sprintf("%s%v", c.Name, c.Args)
}

// Upload is a BufferSubData call with a copy of the uploaded bytes.
type Upload struct {
	Target uint32
	Buffer uint32
	Offset int
	Data   []byte
}

// Draw is a DrawArrays or DrawElements call.
type Draw struct {
	Indexed bool
	Mode    uint32
	First   int32
	Count   int32
	Program uint32
	// Textures bound to units 0..7 when the draw was issued.
	Units [8]uint32
}

// Uniform is one Uniform* call.
type Uniform struct {
	Func      string
	Program   uint32
	Location  int32
	Floats    []float32
	Ints      []int32
	Uints     []uint32
	Transpose bool
}

// Texture is the image last specified for a texture object.
type Texture struct {
	InternalFormat int32
	Format         uint32
	Width, Height  int32
	Pixels         []byte
	Params         map[uint32]int32
	Mipmapped      bool
}

// GL is the recording implementation. The zero value is not usable; call New.
type GL struct {
	// CompileFails makes CompileShader fail for the listed stages.
	CompileFails map[uint32]bool
	// LinkFails makes LinkProgram fail.
	LinkFails bool
	// InfoLog is returned by the info log queries of failed objects.
	InfoLog string
	// Missing lists attribute/uniform names whose location lookup returns -1.
	Missing map[string]bool
	// Pixel is the framebuffer content returned by ReadPixels.
	Pixel [4]byte

	Calls    []Call
	Uploads  []Upload
	Draws    []Draw
	Uniforms []Uniform

	Buffers      map[uint32][]byte
	Textures     map[uint32]*Texture
	Shaders      map[uint32]uint32 // name -> stage
	Programs     map[uint32]bool
	VertexArrays map[uint32]bool

	ClearColor4 [4]float32
	Viewport4   [4]int32
	Program     uint32

	nextName      uint32
	boundBuffer   map[uint32]uint32
	boundTexture  [32]uint32
	activeUnit    uint32
	compiled      map[uint32]bool
	linked        map[uint32]bool
	locations     map[string]int32
	attached      map[uint32][]uint32
	vertexArray   uint32
	deleteCounter map[string]int
}

// New returns a fake where every compile and link succeeds and every location
// lookup resolves.
func New() *GL {
	return &GL{
		CompileFails:  map[uint32]bool{},
		Missing:       map[string]bool{},
		Buffers:       map[uint32][]byte{},
		Textures:      map[uint32]*Texture{},
		Shaders:       map[uint32]uint32{},
		Programs:      map[uint32]bool{},
		VertexArrays:  map[uint32]bool{},
		boundBuffer:   map[uint32]uint32{},
		compiled:      map[uint32]bool{},
		linked:        map[uint32]bool{},
		locations:     map[string]int32{},
		attached:      map[uint32][]uint32{},
		deleteCounter: map[string]int{},
	}
}

var _ gl.OpenGL = (*GL)(nil)

func (f *GL) record(name string, args ...any) {
	f.Calls = append(f.Calls, Call{Name: name, Args: args})
}

func (f *GL) name() uint32 {
	f.nextName++
	return f.nextName
}

// Count returns how many times the named GL call was made.
func (f *GL) Count(name string) int {
	n := 0
	for _, c := range f.Calls {
		if c.Name == name {
			n++
		}
	}
	return n
}

// Names returns the sequence of recorded call names.
func (f *GL) Names() []string {
	out := make([]string, len(f.Calls))
	for i, c := range f.Calls {
		out[i] = c.Name
	}
	return out
}

// Deleted returns how many objects of a kind ("buffer", "texture", "shader",
// "program", "vertexArray") were deleted.
func (f *GL) Deleted(kind string) int {
	return f.deleteCounter[kind]
}

// Reset forgets recorded calls, uploads, draws and uniforms but keeps objects.
func (f *GL) Reset() {
	f.Calls = nil
	f.Uploads = nil
	f.Draws = nil
	f.Uniforms = nil
}

func (f *GL) ClearColor(r, g, b, a float32) {
	f.record("ClearColor", r, g, b, a)
	f.ClearColor4 = [4]float32{r, g, b, a}
}

func (f *GL) Clear(mask uint32) {
	f.record("Clear", mask)
}

func (f *GL) Viewport(x, y, width, height int32) {
	f.record("Viewport", x, y, width, height)
	f.Viewport4 = [4]int32{x, y, width, height}
}

func (f *GL) Enable(cap uint32)  { f.record("Enable", cap) }
func (f *GL) Disable(cap uint32) { f.record("Disable", cap) }

func (f *GL) BlendFunc(sfactor, dfactor uint32) {
	f.record("BlendFunc", sfactor, dfactor)
}

func (f *GL) GenBuffer() uint32 {
	id := f.name()
	f.record("GenBuffer", id)
	f.Buffers[id] = nil
	return id
}

func (f *GL) DeleteBuffer(buffer uint32) {
	f.record("DeleteBuffer", buffer)
	delete(f.Buffers, buffer)
	f.deleteCounter["buffer"]++
}

func (f *GL) BindBuffer(target, buffer uint32) {
	f.record("BindBuffer", target, buffer)
	f.boundBuffer[target] = buffer
}

// Bound returns the buffer bound to target.
func (f *GL) Bound(target uint32) uint32 {
	return f.boundBuffer[target]
}

func (f *GL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	f.record("BufferData", target, size, usage)
	store := make([]byte, size)
	if data != nil && size > 0 {
		copy(store, unsafe.Slice((*byte)(data), size))
	}
	f.Buffers[f.boundBuffer[target]] = store
}

func (f *GL) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	f.record("BufferSubData", target, offset, size)
	buf := f.boundBuffer[target]
	var src []byte
	if data != nil && size > 0 {
		src = append([]byte(nil), unsafe.Slice((*byte)(data), size)...)
	}
	store := f.Buffers[buf]
	if need := offset + size; need > len(store) {
		grown := make([]byte, need)
		copy(grown, store)
		store = grown
	}
	copy(store[offset:], src)
	f.Buffers[buf] = store
	f.Uploads = append(f.Uploads, Upload{Target: target, Buffer: buf, Offset: offset, Data: src})
}

func (f *GL) GenVertexArray() uint32 {
	id := f.name()
	f.record("GenVertexArray", id)
	f.VertexArrays[id] = true
	return id
}

func (f *GL) DeleteVertexArray(array uint32) {
	f.record("DeleteVertexArray", array)
	delete(f.VertexArrays, array)
	f.deleteCounter["vertexArray"]++
}

func (f *GL) BindVertexArray(array uint32) {
	f.record("BindVertexArray", array)
	f.vertexArray = array
}

func (f *GL) EnableVertexAttribArray(index uint32) {
	f.record("EnableVertexAttribArray", index)
}

func (f *GL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	f.record("VertexAttribPointer", index, size, xtype, normalized, stride, offset)
}

func (f *GL) CreateShader(xtype uint32) uint32 {
	id := f.name()
	f.record("CreateShader", xtype, id)
	f.Shaders[id] = xtype
	return id
}

func (f *GL) ShaderSource(shader uint32, source string) {
	f.record("ShaderSource", shader, len(source))
}

func (f *GL) CompileShader(shader uint32) {
	f.record("CompileShader", shader)
	f.compiled[shader] = !f.CompileFails[f.Shaders[shader]]
}

func (f *GL) GetShaderiv(shader, pname uint32) int32 {
	f.record("GetShaderiv", shader, pname)
	switch pname {
	case gl.CompileStatus:
		if f.compiled[shader] {
			return 1
		}
		return 0
	case gl.InfoLogLength:
		if f.compiled[shader] {
			return 0
		}
		return int32(len(f.InfoLog) + 1)
	}
	return 0
}

func (f *GL) GetShaderInfoLog(shader uint32) string {
	f.record("GetShaderInfoLog", shader)
	if f.compiled[shader] {
		return ""
	}
	return f.InfoLog
}

func (f *GL) DeleteShader(shader uint32) {
	f.record("DeleteShader", shader)
	delete(f.Shaders, shader)
	f.deleteCounter["shader"]++
}

func (f *GL) CreateProgram() uint32 {
	id := f.name()
	f.record("CreateProgram", id)
	f.Programs[id] = true
	return id
}

func (f *GL) AttachShader(program, shader uint32) {
	f.record("AttachShader", program, shader)
	f.attached[program] = append(f.attached[program], shader)
}

func (f *GL) LinkProgram(program uint32) {
	f.record("LinkProgram", program)
	ok := !f.LinkFails
	for _, s := range f.attached[program] {
		if !f.compiled[s] {
			ok = false
		}
	}
	f.linked[program] = ok
}

func (f *GL) GetProgramiv(program, pname uint32) int32 {
	f.record("GetProgramiv", program, pname)
	switch pname {
	case gl.LinkStatus:
		if f.linked[program] {
			return 1
		}
		return 0
	case gl.InfoLogLength:
		if f.linked[program] {
			return 0
		}
		return int32(len(f.InfoLog) + 1)
	}
	return 0
}

func (f *GL) GetProgramInfoLog(program uint32) string {
	f.record("GetProgramInfoLog", program)
	if f.linked[program] {
		return ""
	}
	return f.InfoLog
}

func (f *GL) DeleteProgram(program uint32) {
	f.record("DeleteProgram", program)
	delete(f.Programs, program)
	f.deleteCounter["program"]++
}

func (f *GL) UseProgram(program uint32) {
	f.record("UseProgram", program)
	f.Program = program
}

func (f *GL) location(name string) int32 {
	if f.Missing[name] {
		return -1
	}
	if loc, ok := f.locations[name]; ok {
		return loc
	}
	loc := int32(len(f.locations))
	f.locations[name] = loc
	return loc
}

// Location returns the location the fake hands out for name.
func (f *GL) Location(name string) int32 {
	return f.location(name)
}

func (f *GL) GetAttribLocation(program uint32, name string) int32 {
	f.record("GetAttribLocation", program, name)
	return f.location(name)
}

func (f *GL) GetUniformLocation(program uint32, name string) int32 {
	f.record("GetUniformLocation", program, name)
	return f.location(name)
}

func (f *GL) uniformF(fn string, location int32, v []float32, transpose bool) {
	f.record(fn, location, len(v))
	f.Uniforms = append(f.Uniforms, Uniform{Func: fn, Program: f.Program, Location: location, Floats: append([]float32(nil), v...), Transpose: transpose})
}

func (f *GL) uniformI(fn string, location int32, v []int32) {
	f.record(fn, location, len(v))
	f.Uniforms = append(f.Uniforms, Uniform{Func: fn, Program: f.Program, Location: location, Ints: append([]int32(nil), v...)})
}

func (f *GL) uniformU(fn string, location int32, v []uint32) {
	f.record(fn, location, len(v))
	f.Uniforms = append(f.Uniforms, Uniform{Func: fn, Program: f.Program, Location: location, Uints: append([]uint32(nil), v...)})
}

func (f *GL) Uniform1fv(location int32, v []float32) { f.uniformF("Uniform1fv", location, v, false) }
func (f *GL) Uniform2fv(location int32, v []float32) { f.uniformF("Uniform2fv", location, v, false) }
func (f *GL) Uniform3fv(location int32, v []float32) { f.uniformF("Uniform3fv", location, v, false) }
func (f *GL) Uniform4fv(location int32, v []float32) { f.uniformF("Uniform4fv", location, v, false) }
func (f *GL) Uniform1iv(location int32, v []int32)   { f.uniformI("Uniform1iv", location, v) }
func (f *GL) Uniform2iv(location int32, v []int32)   { f.uniformI("Uniform2iv", location, v) }
func (f *GL) Uniform3iv(location int32, v []int32)   { f.uniformI("Uniform3iv", location, v) }
func (f *GL) Uniform4iv(location int32, v []int32)   { f.uniformI("Uniform4iv", location, v) }
func (f *GL) Uniform1uiv(location int32, v []uint32) { f.uniformU("Uniform1uiv", location, v) }
func (f *GL) Uniform2uiv(location int32, v []uint32) { f.uniformU("Uniform2uiv", location, v) }
func (f *GL) Uniform3uiv(location int32, v []uint32) { f.uniformU("Uniform3uiv", location, v) }
func (f *GL) Uniform4uiv(location int32, v []uint32) { f.uniformU("Uniform4uiv", location, v) }

func (f *GL) UniformMatrix3fv(location int32, transpose bool, v []float32) {
	f.uniformF("UniformMatrix3fv", location, v, transpose)
}

func (f *GL) UniformMatrix4fv(location int32, transpose bool, v []float32) {
	f.uniformF("UniformMatrix4fv", location, v, transpose)
}

// LastUniform returns the most recent upload to location.
func (f *GL) LastUniform(location int32) (Uniform, bool) {
	for i := len(f.Uniforms) - 1; i >= 0; i-- {
		if f.Uniforms[i].Location == location {
			return f.Uniforms[i], true
		}
	}
	return Uniform{}, false
}

func (f *GL) ActiveTexture(texture uint32) {
	f.record("ActiveTexture", texture)
	f.activeUnit = texture - gl.Texture0
}

func (f *GL) GenTexture() uint32 {
	id := f.name()
	f.record("GenTexture", id)
	f.Textures[id] = &Texture{Params: map[uint32]int32{}}
	return id
}

func (f *GL) DeleteTexture(texture uint32) {
	f.record("DeleteTexture", texture)
	delete(f.Textures, texture)
	f.deleteCounter["texture"]++
}

func (f *GL) BindTexture(target, texture uint32) {
	f.record("BindTexture", target, texture)
	if int(f.activeUnit) < len(f.boundTexture) {
		f.boundTexture[f.activeUnit] = texture
	}
}

// BoundTexture returns the texture bound to a unit.
func (f *GL) BoundTexture(unit int) uint32 {
	return f.boundTexture[unit]
}

func (f *GL) currentTexture() *Texture {
	return f.Textures[f.boundTexture[f.activeUnit]]
}

func (f *GL) TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	f.record("TexImage2D", target, level, internalFormat, width, height, format, xtype)
	t := f.currentTexture()
	if t == nil {
		return
	}
	t.InternalFormat = internalFormat
	t.Format = format
	t.Width, t.Height = width, height
	t.Pixels = nil
	if pixels != nil {
		comps := int32(4)
		if format == gl.RGB {
			comps = 3
		}
		n := int(width * height * comps)
		t.Pixels = append([]byte(nil), unsafe.Slice((*byte)(pixels), n)...)
	}
}

func (f *GL) TexParameteri(target, pname uint32, param int32) {
	f.record("TexParameteri", target, pname, param)
	if t := f.currentTexture(); t != nil {
		t.Params[pname] = param
	}
}

func (f *GL) PixelStorei(pname uint32, param int32) {
	f.record("PixelStorei", pname, param)
}

func (f *GL) GenerateMipmap(target uint32) {
	f.record("GenerateMipmap", target)
	if t := f.currentTexture(); t != nil {
		t.Mipmapped = true
	}
}

func (f *GL) draw(d Draw) {
	d.Program = f.Program
	copy(d.Units[:], f.boundTexture[:8])
	f.Draws = append(f.Draws, d)
}

func (f *GL) DrawArrays(mode uint32, first, count int32) {
	f.record("DrawArrays", mode, first, count)
	f.draw(Draw{Mode: mode, First: first, Count: count})
}

func (f *GL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	f.record("DrawElements", mode, count, xtype, offset)
	f.draw(Draw{Indexed: true, Mode: mode, Count: count})
}

func (f *GL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	f.record("ReadPixels", x, y, width, height, format, xtype)
	if pixels == nil || width <= 0 || height <= 0 {
		return
	}
	dst := unsafe.Slice((*byte)(pixels), int(width*height*4))
	for i := 0; i+3 < len(dst); i += 4 {
		copy(dst[i:i+4], f.Pixel[:])
	}
}

func (f *GL) GetString(name uint32) string {
	f.record("GetString", name)
	switch name {
	case gl.Vendor:
		return "noe"
	case gl.Renderer:
		return "glfake"
	case gl.Version:
		return "3.3 glfake"
	case gl.ShadingLanguageVersion:
		return "3.30"
	}
	return ""
}

func (f *GL) GetError() uint32 {
	f.record("GetError")
	return gl.NoError
}
