package graphics

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/tinyrange/noe/internal/containers"
	"github.com/tinyrange/noe/internal/gl"
)

// Options configures a Renderer. Zero capacities select the defaults.
type Options struct {
	MaxVertices int
	MaxElements int
	MaxTextures int

	// UseVertexArray records the attribute layout once in a vertex array
	// object (core profile). Without it the layout is re-specified from the
	// shader's attribute locations on every flush.
	UseVertexArray bool

	Logger *slog.Logger
}

func (o Options) withDefaults() Options {
	if o.MaxVertices == 0 {
		o.MaxVertices = DefaultMaxVertices
	}
	if o.MaxElements == 0 {
		o.MaxElements = DefaultMaxElements
	}
	if o.MaxTextures == 0 {
		o.MaxTextures = MaxTextureSlots
	}
	if o.Logger == nil {
		o.Logger = slog.Default()
	}
	return o
}

// Renderer accumulates vertices, elements and active textures between flushes
// and draws them with a single call per flush.
type Renderer struct {
	gl  gl.OpenGL
	log *slog.Logger

	vertices *containers.Bounded[Vertex]
	elements *containers.Bounded[uint32]
	textures *containers.Bounded[uint32]

	useVAO bool
	vbo    uint32
	ebo    uint32
	vao    uint32

	samplers      []int32
	defaultShader *Shader
	closed        bool
}

// NewRenderer allocates the GPU buffers for a batch and compiles the default
// shader. The GL context behind g must be current.
func NewRenderer(g gl.OpenGL, opts Options) (*Renderer, error) {
	opts = opts.withDefaults()
	if opts.MaxVertices < 0 || opts.MaxElements < 0 {
		return nil, fmt.Errorf("graphics: negative batch capacity (%d vertices, %d elements)", opts.MaxVertices, opts.MaxElements)
	}
	if opts.MaxTextures < 1 || opts.MaxTextures > MaxTextureSlots {
		return nil, fmt.Errorf("graphics: texture slots must be within [1, %d], got %d", MaxTextureSlots, opts.MaxTextures)
	}

	r := &Renderer{
		gl:       g,
		log:      opts.Logger,
		vertices: containers.NewBounded[Vertex](opts.MaxVertices),
		elements: containers.NewBounded[uint32](opts.MaxElements),
		textures: containers.NewBounded[uint32](opts.MaxTextures),
		useVAO:   opts.UseVertexArray,
		samplers: make([]int32, MaxTextureSlots),
	}
	for i := range r.samplers {
		r.samplers[i] = int32(i)
	}

	if r.useVAO {
		r.vao = g.GenVertexArray()
		g.BindVertexArray(r.vao)
	}

	r.vbo = g.GenBuffer()
	g.BindBuffer(gl.ArrayBuffer, r.vbo)
	g.BufferData(gl.ArrayBuffer, opts.MaxVertices*vertexSize, nil, gl.DynamicDraw)

	if r.useVAO {
		// Fixed locations 0..3, matching the layout qualifiers of the default shader.
		r.attribPointers([4]int32{0, 1, 2, 3})
	}

	r.ebo = g.GenBuffer()
	g.BindBuffer(gl.ElementArrayBuffer, r.ebo)
	g.BufferData(gl.ElementArrayBuffer, opts.MaxElements*4, nil, gl.DynamicDraw)

	if r.useVAO {
		g.BindVertexArray(0)
	}
	g.BindBuffer(gl.ArrayBuffer, 0)
	g.BindBuffer(gl.ElementArrayBuffer, 0)

	g.Enable(gl.Blend)
	g.BlendFunc(gl.SrcAlpha, gl.OneMinusSrcAlpha)

	shader, err := r.LoadShader(DefaultVertexShader, DefaultFragmentShader)
	if err != nil {
		r.release()
		return nil, fmt.Errorf("graphics: default shader: %w", err)
	}
	r.defaultShader = shader

	r.log.Debug("renderer ready",
		"vertices", opts.MaxVertices,
		"elements", opts.MaxElements,
		"textures", opts.MaxTextures,
		"vao", r.useVAO,
	)
	return r, nil
}

// GL returns the context the renderer draws with.
func (r *Renderer) GL() gl.OpenGL { return r.gl }

// DefaultShader is the shader Flush uses when given nil.
func (r *Renderer) DefaultShader() *Shader { return r.defaultShader }

// VertexCount, ElementCount and TextureCount report the current batch fill.
func (r *Renderer) VertexCount() int  { return r.vertices.Len() }
func (r *Renderer) ElementCount() int { return r.elements.Len() }
func (r *Renderer) TextureCount() int { return r.textures.Len() }

// Vertices returns the pending vertices. The slice is only valid until the
// next mutation of the batch.
func (r *Renderer) Vertices() []Vertex { return r.vertices.Items() }

// Elements returns the pending elements, with the same lifetime as Vertices.
func (r *Renderer) Elements() []uint32 { return r.elements.Items() }

// PutVertex appends one vertex and returns its index in the batch.
func (r *Renderer) PutVertex(v Vertex) (int, error) {
	if r.closed {
		return -1, ErrClosed
	}
	idx, err := r.vertices.Push(v)
	if err != nil {
		return -1, ErrVertexCapacity
	}
	return idx, nil
}

// PutElement appends an index referencing a vertex already in the batch.
func (r *Renderer) PutElement(idx int) error {
	if r.closed {
		return ErrClosed
	}
	if idx < 0 || idx >= r.vertices.Len() {
		return fmt.Errorf("%w: %d (batch has %d vertices)", ErrElementOutOfRange, idx, r.vertices.Len())
	}
	if _, err := r.elements.Push(uint32(idx)); err != nil {
		return ErrElementCapacity
	}
	return nil
}

// EnableTexture appends tex to the active slot table and returns its slot.
// Enabling the same texture twice uses two slots.
func (r *Renderer) EnableTexture(tex *Texture) (int, error) {
	if r.closed {
		return -1, ErrClosed
	}
	if err := tex.validate(); err != nil {
		return -1, err
	}
	slot, err := r.textures.Push(tex.ID)
	if err != nil {
		return -1, ErrTextureCapacity
	}
	return slot, nil
}

// Reserve fails unless the batch has room for the given footprint, so that a
// primitive is either emitted whole or not at all.
func (r *Renderer) Reserve(vertices, elements, textures int) error {
	switch {
	case r.closed:
		return ErrClosed
	case r.vertices.Remaining() < vertices:
		return ErrVertexCapacity
	case r.elements.Remaining() < elements:
		return ErrElementCapacity
	case r.textures.Remaining() < textures:
		return ErrTextureCapacity
	}
	return nil
}

func (r *Renderer) attribPointers(locs [4]int32) {
	sizes := [4]int32{3, 4, 2, 1}
	offsets := [4]uintptr{vertexPositionOffset, vertexColorOffset, vertexTexCoordsOffset, vertexTextureIndexOffset}
	for i, loc := range locs {
		if loc < 0 {
			continue
		}
		r.gl.EnableVertexAttribArray(uint32(loc))
		r.gl.VertexAttribPointer(uint32(loc), sizes[i], gl.Float, false, vertexSize, offsets[i])
	}
}

// Flush uploads the batch, binds its textures to units 0..n-1 in slot order,
// issues one draw call and resets the batch. A nil shader selects the default
// shader. An empty batch draws nothing and only resets.
func (r *Renderer) Flush(shader *Shader) error {
	defer r.reset()

	if r.closed {
		return ErrClosed
	}
	if shader == nil {
		shader = r.defaultShader
	}

	nv, ne := r.vertices.Len(), r.elements.Len()
	if nv == 0 {
		return nil
	}

	g := r.gl
	if r.useVAO {
		g.BindVertexArray(r.vao)
	}
	vertices := r.vertices.Items()
	g.BindBuffer(gl.ArrayBuffer, r.vbo)
	g.BufferSubData(gl.ArrayBuffer, 0, nv*vertexSize, unsafe.Pointer(&vertices[0]))
	if ne > 0 {
		elements := r.elements.Items()
		g.BindBuffer(gl.ElementArrayBuffer, r.ebo)
		g.BufferSubData(gl.ElementArrayBuffer, 0, ne*4, unsafe.Pointer(&elements[0]))
	}
	if r.useVAO {
		g.BindVertexArray(0)
	}

	g.UseProgram(shader.ID)
	if r.useVAO {
		g.BindVertexArray(r.vao)
	} else {
		g.BindBuffer(gl.ArrayBuffer, r.vbo)
		r.attribPointers([4]int32{
			shader.Locs[LocPosition],
			shader.Locs[LocColor],
			shader.Locs[LocTexCoords],
			shader.Locs[LocTextureIndex],
		})
		if ne > 0 {
			g.BindBuffer(gl.ElementArrayBuffer, r.ebo)
		}
	}

	for i, id := range r.textures.Items() {
		g.ActiveTexture(gl.Texture0 + uint32(i))
		g.BindTexture(gl.Texture2D, id)
	}
	g.Uniform1iv(shader.Locs[LocTextures], r.samplers)

	if ne > 0 {
		g.DrawElements(gl.Triangles, int32(ne), gl.UnsignedInt, 0)
	} else {
		g.DrawArrays(gl.Triangles, 0, int32(nv))
	}

	if r.useVAO {
		g.BindVertexArray(0)
	} else {
		if ne > 0 {
			g.BindBuffer(gl.ElementArrayBuffer, 0)
		}
		g.BindBuffer(gl.ArrayBuffer, 0)
	}
	g.UseProgram(0)
	return nil
}

func (r *Renderer) reset() {
	r.vertices.Reset()
	r.elements.Reset()
	r.textures.Reset()
}

// Clear clears the colour and depth buffers, the colour buffer to a
// normalised colour.
func (r *Renderer) Clear(red, green, blue, alpha float32) {
	r.gl.ClearColor(red, green, blue, alpha)
	r.gl.Clear(gl.ColorBufferBit | gl.DepthBufferBit)
}

// ClearBackground clears the framebuffer with c.
func (r *Renderer) ClearBackground(c Color) {
	n := c.Normalize()
	r.Clear(n[0], n[1], n[2], n[3])
}

// Viewport maps normalised device coordinates onto the given window region.
func (r *Renderer) Viewport(x, y, width, height int) {
	r.gl.Viewport(int32(x), int32(y), int32(width), int32(height))
}

// Close releases the buffers and the default shader. Later flushes and draws
// fail with ErrClosed.
func (r *Renderer) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	r.reset()
	if r.defaultShader != nil {
		r.UnloadShader(r.defaultShader)
		r.defaultShader = nil
	}
	r.release()
	return nil
}

func (r *Renderer) release() {
	if r.useVAO && r.vao != 0 {
		r.gl.DeleteVertexArray(r.vao)
		r.vao = 0
	}
	if r.ebo != 0 {
		r.gl.DeleteBuffer(r.ebo)
		r.ebo = 0
	}
	if r.vbo != 0 {
		r.gl.DeleteBuffer(r.vbo)
		r.vbo = 0
	}
}

// IsCapacityError reports whether err is a batch overflow.
func IsCapacityError(err error) bool {
	return errors.Is(err, containers.ErrFull)
}
