package gl

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
)

// Resolver returns the address of a GL entry point, or 0 when the current
// platform/context does not provide it.
type Resolver func(name string) uintptr

// The purego-backed implementation shared by every platform. Only the way
// entry points are resolved differs between X11, Win32 and GLFW.
type openGL struct {
	clearColor              func(float32, float32, float32, float32)
	clear                   func(uint32)
	viewport                func(int32, int32, int32, int32)
	enable                  func(uint32)
	disable                 func(uint32)
	blendFunc               func(uint32, uint32)
	genBuffers              func(int32, *uint32)
	deleteBuffers           func(int32, *uint32)
	bindBuffer              func(uint32, uint32)
	bufferData              func(uint32, int, unsafe.Pointer, uint32)
	bufferSubData           func(uint32, int, int, unsafe.Pointer)
	genVertexArrays         func(int32, *uint32)
	deleteVertexArrays      func(int32, *uint32)
	bindVertexArray         func(uint32)
	enableVertexAttribArray func(uint32)
	vertexAttribPointer     func(uint32, int32, uint32, bool, int32, uintptr)
	createShader            func(uint32) uint32
	shaderSource            func(uint32, int32, **byte, *int32)
	compileShader           func(uint32)
	getShaderiv             func(uint32, uint32, *int32)
	getShaderInfoLog        func(uint32, int32, *int32, *byte)
	deleteShader            func(uint32)
	createProgram           func() uint32
	attachShader            func(uint32, uint32)
	linkProgram             func(uint32)
	getProgramiv            func(uint32, uint32, *int32)
	getProgramInfoLog       func(uint32, int32, *int32, *byte)
	deleteProgram           func(uint32)
	useProgram              func(uint32)
	getAttribLocation       func(uint32, string) int32
	getUniformLocation      func(uint32, string) int32
	uniform1fv              func(int32, int32, *float32)
	uniform2fv              func(int32, int32, *float32)
	uniform3fv              func(int32, int32, *float32)
	uniform4fv              func(int32, int32, *float32)
	uniform1iv              func(int32, int32, *int32)
	uniform2iv              func(int32, int32, *int32)
	uniform3iv              func(int32, int32, *int32)
	uniform4iv              func(int32, int32, *int32)
	uniform1uiv             func(int32, int32, *uint32)
	uniform2uiv             func(int32, int32, *uint32)
	uniform3uiv             func(int32, int32, *uint32)
	uniform4uiv             func(int32, int32, *uint32)
	uniformMatrix3fv        func(int32, int32, bool, *float32)
	uniformMatrix4fv        func(int32, int32, bool, *float32)
	activeTexture           func(uint32)
	genTextures             func(int32, *uint32)
	deleteTextures          func(int32, *uint32)
	bindTexture             func(uint32, uint32)
	texImage2D              func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
	texParameteri           func(uint32, uint32, int32)
	pixelStorei             func(uint32, int32)
	generateMipmap          func(uint32)
	drawArrays              func(uint32, int32, int32)
	drawElements            func(uint32, int32, uint32, uintptr)
	readPixels              func(int32, int32, int32, int32, uint32, uint32, unsafe.Pointer)
	getString               func(uint32) *byte
	getError                func() uint32
}

// Load binds every entry point of OpenGL through resolve. It fails listing all
// entry points the resolver could not find.
func Load(resolve Resolver) (OpenGL, error) {
	var missing []string
	register := func(dst interface{}, name string) {
		addr := resolve(name)
		if addr == 0 {
			missing = append(missing, name)
			return
		}
		purego.RegisterFunc(dst, addr)
	}

	gl := &openGL{}
	register(&gl.clearColor, "glClearColor")
	register(&gl.clear, "glClear")
	register(&gl.viewport, "glViewport")
	register(&gl.enable, "glEnable")
	register(&gl.disable, "glDisable")
	register(&gl.blendFunc, "glBlendFunc")
	register(&gl.genBuffers, "glGenBuffers")
	register(&gl.deleteBuffers, "glDeleteBuffers")
	register(&gl.bindBuffer, "glBindBuffer")
	register(&gl.bufferData, "glBufferData")
	register(&gl.bufferSubData, "glBufferSubData")
	register(&gl.genVertexArrays, "glGenVertexArrays")
	register(&gl.deleteVertexArrays, "glDeleteVertexArrays")
	register(&gl.bindVertexArray, "glBindVertexArray")
	register(&gl.enableVertexAttribArray, "glEnableVertexAttribArray")
	register(&gl.vertexAttribPointer, "glVertexAttribPointer")
	register(&gl.createShader, "glCreateShader")
	register(&gl.shaderSource, "glShaderSource")
	register(&gl.compileShader, "glCompileShader")
	register(&gl.getShaderiv, "glGetShaderiv")
	register(&gl.getShaderInfoLog, "glGetShaderInfoLog")
	register(&gl.deleteShader, "glDeleteShader")
	register(&gl.createProgram, "glCreateProgram")
	register(&gl.attachShader, "glAttachShader")
	register(&gl.linkProgram, "glLinkProgram")
	register(&gl.getProgramiv, "glGetProgramiv")
	register(&gl.getProgramInfoLog, "glGetProgramInfoLog")
	register(&gl.deleteProgram, "glDeleteProgram")
	register(&gl.useProgram, "glUseProgram")
	register(&gl.getAttribLocation, "glGetAttribLocation")
	register(&gl.getUniformLocation, "glGetUniformLocation")
	register(&gl.uniform1fv, "glUniform1fv")
	register(&gl.uniform2fv, "glUniform2fv")
	register(&gl.uniform3fv, "glUniform3fv")
	register(&gl.uniform4fv, "glUniform4fv")
	register(&gl.uniform1iv, "glUniform1iv")
	register(&gl.uniform2iv, "glUniform2iv")
	register(&gl.uniform3iv, "glUniform3iv")
	register(&gl.uniform4iv, "glUniform4iv")
	register(&gl.uniform1uiv, "glUniform1uiv")
	register(&gl.uniform2uiv, "glUniform2uiv")
	register(&gl.uniform3uiv, "glUniform3uiv")
	register(&gl.uniform4uiv, "glUniform4uiv")
	register(&gl.uniformMatrix3fv, "glUniformMatrix3fv")
	register(&gl.uniformMatrix4fv, "glUniformMatrix4fv")
	register(&gl.activeTexture, "glActiveTexture")
	register(&gl.genTextures, "glGenTextures")
	register(&gl.deleteTextures, "glDeleteTextures")
	register(&gl.bindTexture, "glBindTexture")
	register(&gl.texImage2D, "glTexImage2D")
	register(&gl.texParameteri, "glTexParameteri")
	register(&gl.pixelStorei, "glPixelStorei")
	register(&gl.generateMipmap, "glGenerateMipmap")
	register(&gl.drawArrays, "glDrawArrays")
	register(&gl.drawElements, "glDrawElements")
	register(&gl.readPixels, "glReadPixels")
	register(&gl.getString, "glGetString")
	register(&gl.getError, "glGetError")

	if len(missing) > 0 {
		return nil, fmt.Errorf("gl: unresolved entry points: %s", strings.Join(missing, ", "))
	}
	return gl, nil
}

func (gl *openGL) ClearColor(r, g, b, a float32) {
	gl.clearColor(r, g, b, a)
}

func (gl *openGL) Clear(mask uint32) {
	gl.clear(mask)
}

func (gl *openGL) Viewport(x, y, width, height int32) {
	gl.viewport(x, y, width, height)
}

func (gl *openGL) Enable(cap uint32) {
	gl.enable(cap)
}

func (gl *openGL) Disable(cap uint32) {
	gl.disable(cap)
}

func (gl *openGL) BlendFunc(sfactor, dfactor uint32) {
	gl.blendFunc(sfactor, dfactor)
}

func (gl *openGL) GenBuffer() uint32 {
	var id uint32
	gl.genBuffers(1, &id)
	return id
}

func (gl *openGL) DeleteBuffer(buffer uint32) {
	gl.deleteBuffers(1, &buffer)
}

func (gl *openGL) BindBuffer(target, buffer uint32) {
	gl.bindBuffer(target, buffer)
}

func (gl *openGL) BufferData(target uint32, size int, data unsafe.Pointer, usage uint32) {
	gl.bufferData(target, size, data, usage)
}

func (gl *openGL) BufferSubData(target uint32, offset, size int, data unsafe.Pointer) {
	gl.bufferSubData(target, offset, size, data)
}

func (gl *openGL) GenVertexArray() uint32 {
	var id uint32
	gl.genVertexArrays(1, &id)
	return id
}

func (gl *openGL) DeleteVertexArray(array uint32) {
	gl.deleteVertexArrays(1, &array)
}

func (gl *openGL) BindVertexArray(array uint32) {
	gl.bindVertexArray(array)
}

func (gl *openGL) EnableVertexAttribArray(index uint32) {
	gl.enableVertexAttribArray(index)
}

func (gl *openGL) VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr) {
	gl.vertexAttribPointer(index, size, xtype, normalized, stride, offset)
}

func (gl *openGL) CreateShader(xtype uint32) uint32 {
	return gl.createShader(xtype)
}

func (gl *openGL) ShaderSource(shader uint32, source string) {
	src := append([]byte(source), 0)
	ptr := &src[0]
	gl.shaderSource(shader, 1, &ptr, nil)
	runtime.KeepAlive(src)
}

func (gl *openGL) CompileShader(shader uint32) {
	gl.compileShader(shader)
}

func (gl *openGL) GetShaderiv(shader, pname uint32) int32 {
	var v int32
	gl.getShaderiv(shader, pname, &v)
	return v
}

func (gl *openGL) GetShaderInfoLog(shader uint32) string {
	n := gl.GetShaderiv(shader, InfoLogLength)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	gl.getShaderInfoLog(shader, n, nil, &buf[0])
	return gostring(&buf[0])
}

func (gl *openGL) DeleteShader(shader uint32) {
	gl.deleteShader(shader)
}

func (gl *openGL) CreateProgram() uint32 {
	return gl.createProgram()
}

func (gl *openGL) AttachShader(program, shader uint32) {
	gl.attachShader(program, shader)
}

func (gl *openGL) LinkProgram(program uint32) {
	gl.linkProgram(program)
}

func (gl *openGL) GetProgramiv(program, pname uint32) int32 {
	var v int32
	gl.getProgramiv(program, pname, &v)
	return v
}

func (gl *openGL) GetProgramInfoLog(program uint32) string {
	n := gl.GetProgramiv(program, InfoLogLength)
	if n <= 0 {
		return ""
	}
	buf := make([]byte, n)
	gl.getProgramInfoLog(program, n, nil, &buf[0])
	return gostring(&buf[0])
}

func (gl *openGL) DeleteProgram(program uint32) {
	gl.deleteProgram(program)
}

func (gl *openGL) UseProgram(program uint32) {
	gl.useProgram(program)
}

func (gl *openGL) GetAttribLocation(program uint32, name string) int32 {
	return gl.getAttribLocation(program, name)
}

func (gl *openGL) GetUniformLocation(program uint32, name string) int32 {
	return gl.getUniformLocation(program, name)
}

func (gl *openGL) Uniform1fv(location int32, v []float32) {
	if len(v) > 0 {
		gl.uniform1fv(location, int32(len(v)), &v[0])
	}
}

func (gl *openGL) Uniform2fv(location int32, v []float32) {
	if len(v) >= 2 {
		gl.uniform2fv(location, int32(len(v)/2), &v[0])
	}
}

func (gl *openGL) Uniform3fv(location int32, v []float32) {
	if len(v) >= 3 {
		gl.uniform3fv(location, int32(len(v)/3), &v[0])
	}
}

func (gl *openGL) Uniform4fv(location int32, v []float32) {
	if len(v) >= 4 {
		gl.uniform4fv(location, int32(len(v)/4), &v[0])
	}
}

func (gl *openGL) Uniform1iv(location int32, v []int32) {
	if len(v) > 0 {
		gl.uniform1iv(location, int32(len(v)), &v[0])
	}
}

func (gl *openGL) Uniform2iv(location int32, v []int32) {
	if len(v) >= 2 {
		gl.uniform2iv(location, int32(len(v)/2), &v[0])
	}
}

func (gl *openGL) Uniform3iv(location int32, v []int32) {
	if len(v) >= 3 {
		gl.uniform3iv(location, int32(len(v)/3), &v[0])
	}
}

func (gl *openGL) Uniform4iv(location int32, v []int32) {
	if len(v) >= 4 {
		gl.uniform4iv(location, int32(len(v)/4), &v[0])
	}
}

func (gl *openGL) Uniform1uiv(location int32, v []uint32) {
	if len(v) > 0 {
		gl.uniform1uiv(location, int32(len(v)), &v[0])
	}
}

func (gl *openGL) Uniform2uiv(location int32, v []uint32) {
	if len(v) >= 2 {
		gl.uniform2uiv(location, int32(len(v)/2), &v[0])
	}
}

func (gl *openGL) Uniform3uiv(location int32, v []uint32) {
	if len(v) >= 3 {
		gl.uniform3uiv(location, int32(len(v)/3), &v[0])
	}
}

func (gl *openGL) Uniform4uiv(location int32, v []uint32) {
	if len(v) >= 4 {
		gl.uniform4uiv(location, int32(len(v)/4), &v[0])
	}
}

func (gl *openGL) UniformMatrix3fv(location int32, transpose bool, v []float32) {
	if len(v) >= 9 {
		gl.uniformMatrix3fv(location, int32(len(v)/9), transpose, &v[0])
	}
}

func (gl *openGL) UniformMatrix4fv(location int32, transpose bool, v []float32) {
	if len(v) >= 16 {
		gl.uniformMatrix4fv(location, int32(len(v)/16), transpose, &v[0])
	}
}

func (gl *openGL) ActiveTexture(texture uint32) {
	gl.activeTexture(texture)
}

func (gl *openGL) GenTexture() uint32 {
	var id uint32
	gl.genTextures(1, &id)
	return id
}

func (gl *openGL) DeleteTexture(texture uint32) {
	gl.deleteTextures(1, &texture)
}

func (gl *openGL) BindTexture(target, texture uint32) {
	gl.bindTexture(target, texture)
}

func (gl *openGL) TexImage2D(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.texImage2D(target, level, internalFormat, width, height, border, format, xtype, pixels)
}

func (gl *openGL) TexParameteri(target, pname uint32, param int32) {
	gl.texParameteri(target, pname, param)
}

func (gl *openGL) PixelStorei(pname uint32, param int32) {
	gl.pixelStorei(pname, param)
}

func (gl *openGL) GenerateMipmap(target uint32) {
	gl.generateMipmap(target)
}

func (gl *openGL) DrawArrays(mode uint32, first, count int32) {
	gl.drawArrays(mode, first, count)
}

func (gl *openGL) DrawElements(mode uint32, count int32, xtype uint32, offset uintptr) {
	gl.drawElements(mode, count, xtype, offset)
}

func (gl *openGL) ReadPixels(x, y, width, height int32, format, xtype uint32, pixels unsafe.Pointer) {
	gl.readPixels(x, y, width, height, format, xtype, pixels)
}

func (gl *openGL) GetString(name uint32) string {
	return gostring(gl.getString(name))
}

func (gl *openGL) GetError() uint32 {
	return gl.getError()
}
