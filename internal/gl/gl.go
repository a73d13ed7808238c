package gl

import "unsafe"

const (
	// ColorBufferBit is a mask used with Clear to clear the color buffer.
	ColorBufferBit = 0x00004000
	// DepthBufferBit is a mask used with Clear to clear the depth buffer.
	DepthBufferBit = 0x00000100

	// Texture2D is the texture target for 2D textures.
	Texture2D = 0x0DE1
	// Texture0 is the first texture unit; unit i is Texture0+i.
	Texture0 = 0x84C0

	// UnpackAlignment specifies the alignment requirements for pixel data
	// when uploading textures (PixelStorei).
	UnpackAlignment = 0x0CF5

	// TextureWrapS selects the wrapping function for texture coordinate S.
	TextureWrapS = 0x2802
	// TextureWrapT selects the wrapping function for texture coordinate T.
	TextureWrapT = 0x2803

	// TextureMinFilter selects the texture minification filter.
	TextureMinFilter = 0x2801
	// TextureMagFilter selects the texture magnification filter.
	TextureMagFilter = 0x2800

	// Nearest selects nearest-neighbor filtering.
	Nearest = 0x2600
	// Linear selects linear filtering.
	Linear = 0x2601

	// Repeat tiles the texture when coordinates leave [0, 1].
	Repeat = 0x2901

	// RGB is a pixel format representing red/green/blue.
	RGB = 0x1907
	// RGBA is a pixel format representing red/green/blue/alpha.
	RGBA = 0x1908
	// RGBA8 is the sized internal format used for every texture.
	RGBA8 = 0x8058

	// UnsignedByte is a pixel data type indicating 8-bit unsigned values.
	UnsignedByte = 0x1401
	// UnsignedInt is the element type of the index buffer.
	UnsignedInt = 0x1405
	// Float is the component type of every vertex attribute.
	Float = 0x1406

	// Triangles is the only primitive topology the batch renderer emits.
	Triangles = 0x0004

	// Buffer targets and usage.
	ArrayBuffer        = 0x8892
	ElementArrayBuffer = 0x8893
	DynamicDraw        = 0x88E8

	// Shader stages and status queries.
	FragmentShader = 0x8B30
	VertexShader   = 0x8B31
	CompileStatus  = 0x8B81
	LinkStatus     = 0x8B82
	InfoLogLength  = 0x8B84

	// Blending capabilities and factors.
	Blend            = 0x0BE2
	SrcAlpha         = 0x0302
	OneMinusSrcAlpha = 0x0303

	// GetString parameters.
	//
	// Vendor returns the company responsible for the GL implementation.
	Vendor = 0x1F00
	// Renderer returns the name of the GL renderer.
	Renderer = 0x1F01
	// Version returns the GL version string of the current context.
	Version = 0x1F02
	// ShadingLanguageVersion returns the GLSL version string.
	ShadingLanguageVersion = 0x8B8C

	// NoError is returned by GetError when no error has been recorded.
	NoError = 0
)

// OpenGL describes the subset of OpenGL 3.3 entry points used by the batch
// renderer.
//
// Implementations typically wrap platform-specific GL bindings. All methods are
// expected to operate on the currently current GL context for the calling thread.
// Slice arguments are only read for the duration of the call.
type OpenGL interface {
	// ClearColor sets the clear color used by Clear when clearing the color buffer.
	ClearColor(r, g, b, a float32)

	// Clear clears buffers to preset values (e.g., ColorBufferBit).
	Clear(mask uint32)

	// Viewport sets the affine transformation of x and y from normalized device
	// coordinates to window coordinates.
	Viewport(x, y, width, height int32)

	// Enable enables a server-side GL capability (e.g., Blend).
	Enable(cap uint32)

	// Disable disables a server-side GL capability.
	Disable(cap uint32)

	// BlendFunc specifies the pixel arithmetic for blending (e.g., SrcAlpha and OneMinusSrcAlpha).
	BlendFunc(sfactor, dfactor uint32)

	// GenBuffer creates one buffer object name.
	GenBuffer() uint32

	// DeleteBuffer deletes a buffer object.
	DeleteBuffer(buffer uint32)

	// BindBuffer binds a buffer object to a target (ArrayBuffer or ElementArrayBuffer).
	BindBuffer(target, buffer uint32)

	// BufferData (re)allocates the store of the bound buffer. data may be nil.
	BufferData(target uint32, size int, data unsafe.Pointer, usage uint32)

	// BufferSubData uploads size bytes into the bound buffer starting at offset.
	BufferSubData(target uint32, offset, size int, data unsafe.Pointer)

	// GenVertexArray creates one vertex array object name.
	GenVertexArray() uint32

	// DeleteVertexArray deletes a vertex array object.
	DeleteVertexArray(array uint32)

	// BindVertexArray binds a vertex array object; 0 unbinds.
	BindVertexArray(array uint32)

	// EnableVertexAttribArray enables a generic vertex attribute.
	EnableVertexAttribArray(index uint32)

	// VertexAttribPointer describes the layout of a vertex attribute inside the
	// bound ArrayBuffer. offset is a byte offset into the buffer.
	VertexAttribPointer(index uint32, size int32, xtype uint32, normalized bool, stride int32, offset uintptr)

	// CreateShader creates an empty shader object of the given stage.
	CreateShader(xtype uint32) uint32

	// ShaderSource replaces the source code of a shader object.
	ShaderSource(shader uint32, source string)

	// CompileShader compiles a shader object.
	CompileShader(shader uint32)

	// GetShaderiv returns a parameter of a shader object (e.g., CompileStatus).
	GetShaderiv(shader, pname uint32) int32

	// GetShaderInfoLog returns the compile log of a shader object.
	GetShaderInfoLog(shader uint32) string

	// DeleteShader deletes a shader object.
	DeleteShader(shader uint32)

	// CreateProgram creates an empty program object.
	CreateProgram() uint32

	// AttachShader attaches a shader object to a program.
	AttachShader(program, shader uint32)

	// LinkProgram links a program object.
	LinkProgram(program uint32)

	// GetProgramiv returns a parameter of a program object (e.g., LinkStatus).
	GetProgramiv(program, pname uint32) int32

	// GetProgramInfoLog returns the link log of a program object.
	GetProgramInfoLog(program uint32) string

	// DeleteProgram deletes a program object.
	DeleteProgram(program uint32)

	// UseProgram installs a program as part of the current rendering state; 0 uninstalls.
	UseProgram(program uint32)

	// GetAttribLocation returns the location of an attribute variable, or -1.
	GetAttribLocation(program uint32, name string) int32

	// GetUniformLocation returns the location of a uniform variable, or -1.
	GetUniformLocation(program uint32, name string) int32

	// Uniform*fv, Uniform*iv and Uniform*uiv upload len(v)/N vectors of N
	// components to the uniform at location of the current program.
	Uniform1fv(location int32, v []float32)
	Uniform2fv(location int32, v []float32)
	Uniform3fv(location int32, v []float32)
	Uniform4fv(location int32, v []float32)
	Uniform1iv(location int32, v []int32)
	Uniform2iv(location int32, v []int32)
	Uniform3iv(location int32, v []int32)
	Uniform4iv(location int32, v []int32)
	Uniform1uiv(location int32, v []uint32)
	Uniform2uiv(location int32, v []uint32)
	Uniform3uiv(location int32, v []uint32)
	Uniform4uiv(location int32, v []uint32)

	// UniformMatrix3fv and UniformMatrix4fv upload len(v)/9 or len(v)/16
	// column-major matrices.
	UniformMatrix3fv(location int32, transpose bool, v []float32)
	UniformMatrix4fv(location int32, transpose bool, v []float32)

	// ActiveTexture selects the texture unit that BindTexture affects.
	ActiveTexture(texture uint32)

	// GenTexture creates one texture object name.
	GenTexture() uint32

	// DeleteTexture deletes a texture object.
	DeleteTexture(texture uint32)

	// BindTexture binds a named texture to a texturing target (e.g., Texture2D).
	BindTexture(target, texture uint32)

	// TexImage2D specifies a two-dimensional texture image.
	//
	// The pixels pointer may be nil to allocate storage without uploading data.
	TexImage2D(
		target uint32,
		level int32,
		internalformat int32,
		width int32,
		height int32,
		border int32,
		format uint32,
		xtype uint32,
		pixels unsafe.Pointer,
	)

	// TexParameteri sets texture parameters for the currently bound texture.
	TexParameteri(target, pname uint32, param int32)

	// PixelStorei sets pixel storage modes (e.g., UnpackAlignment).
	PixelStorei(pname uint32, param int32)

	// GenerateMipmap builds the mipmap chain of the bound texture.
	GenerateMipmap(target uint32)

	// DrawArrays renders count vertices starting at first.
	DrawArrays(mode uint32, first, count int32)

	// DrawElements renders count indices read from the bound ElementArrayBuffer
	// starting at byte offset.
	DrawElements(mode uint32, count int32, xtype uint32, offset uintptr)

	// ReadPixels reads a block of pixels from the framebuffer into client memory.
	ReadPixels(
		x int32,
		y int32,
		width int32,
		height int32,
		format uint32,
		xtype uint32,
		pixels unsafe.Pointer,
	)

	// GetString returns a string describing a GL property for the current context.
	//
	// Common names are Vendor and Version.
	// If the name is not recognized or no context is current, implementations may
	// return the empty string.
	GetString(name uint32) string

	// GetError returns and clears the oldest recorded error flag.
	GetError() uint32
}

func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var bytes []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}
