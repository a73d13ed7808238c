package graphics

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyrange/noe/internal/containers"
	"github.com/tinyrange/noe/internal/gl"
	"github.com/tinyrange/noe/internal/gl/glfake"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestRenderer(t *testing.T, opts Options) (*Renderer, *glfake.GL) {
	t.Helper()
	fake := glfake.New()
	opts.Logger = quietLogger()
	r, err := NewRenderer(fake, opts)
	require.NoError(t, err)
	fake.Reset()
	return r, fake
}

func newTestTexture(t *testing.T, r *Renderer, w, h int) *Texture {
	t.Helper()
	tex, err := r.LoadTexture(make([]byte, w*h*4), w, h, 4)
	require.NoError(t, err)
	return tex
}

func uploaded[T any](t *testing.T, fake *glfake.GL, target uint32) []T {
	t.Helper()
	for i := len(fake.Uploads) - 1; i >= 0; i-- {
		u := fake.Uploads[i]
		if u.Target != target {
			continue
		}
		var zero T
		out := make([]T, len(u.Data)/binary.Size(zero))
		require.NoError(t, binary.Read(bytes.NewReader(u.Data), binary.NativeEndian, out))
		return out
	}
	t.Fatalf("no upload to target %#x", target)
	return nil
}

func TestVertexLayout(t *testing.T) {
	assert.Equal(t, vertexSize, binary.Size(Vertex{}))
}

func TestDrawRectangleFlush(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})

	require.NoError(t, r.DrawRectangle(Color{255, 0, 0, 255}, 10, 20, 100, 50))
	require.NoError(t, r.Flush(nil))

	vertices := uploaded[Vertex](t, fake, gl.ArrayBuffer)
	require.Len(t, vertices, 4)
	wantPos := [][3]float32{{10, 20, 0}, {110, 20, 0}, {110, 70, 0}, {10, 70, 0}}
	for i, v := range vertices {
		assert.Equal(t, wantPos[i], v.Position, "vertex %d", i)
		assert.Equal(t, [4]float32{1, 0, 0, 1}, v.Color, "vertex %d", i)
		assert.Equal(t, float32(-1), v.TextureIndex, "vertex %d", i)
		assert.Equal(t, [2]float32{0, 0}, v.TexCoords, "vertex %d", i)
	}

	elements := uploaded[uint32](t, fake, gl.ElementArrayBuffer)
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0}, elements)

	require.Len(t, fake.Draws, 1)
	assert.True(t, fake.Draws[0].Indexed)
	assert.Equal(t, int32(6), fake.Draws[0].Count)
	assert.Equal(t, uint32(gl.Triangles), fake.Draws[0].Mode)
	assert.Equal(t, r.DefaultShader().ID, fake.Draws[0].Program)

	assert.Zero(t, r.VertexCount())
	assert.Zero(t, r.ElementCount())
	assert.Zero(t, r.TextureCount())
	assert.Equal(t, uint32(0), fake.Program)
}

func TestFlushOrder(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	require.NoError(t, r.DrawRectangle(White, 0, 0, 1, 1))
	require.NoError(t, r.Flush(nil))

	names := fake.Names()
	index := func(name string) int {
		for i, n := range names {
			if n == name {
				return i
			}
		}
		return -1
	}
	assert.Less(t, index("BufferSubData"), index("UseProgram"))
	assert.Less(t, index("UseProgram"), index("Uniform1iv"))
	assert.Less(t, index("Uniform1iv"), index("DrawElements"))
	assert.Equal(t, "UseProgram", names[len(names)-1])
}

func TestTextureSlots(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	a := newTestTexture(t, r, 4, 4)
	b := newTestTexture(t, r, 8, 8)

	slotA, err := r.EnableTexture(a)
	require.NoError(t, err)
	slotB, err := r.EnableTexture(b)
	require.NoError(t, err)
	assert.Equal(t, 0, slotA)
	assert.Equal(t, 1, slotB)

	require.NoError(t, r.DrawTextureRegionInSlot(slotB, b, Rectangle{0, 0, 8, 8}, Rectangle{0, 0, 16, 16}, Blank))
	for _, v := range r.Vertices() {
		assert.Equal(t, float32(1), v.TextureIndex)
	}

	require.NoError(t, r.Flush(nil))
	require.Len(t, fake.Draws, 1)
	assert.Equal(t, a.ID, fake.Draws[0].Units[0])
	assert.Equal(t, b.ID, fake.Draws[0].Units[1])

	samplers, ok := fake.LastUniform(r.DefaultShader().Locs[LocTextures])
	require.True(t, ok)
	assert.Equal(t, []int32{0, 1, 2, 3, 4, 5, 6, 7}, samplers.Ints)
}

func TestDrawTextureUsesNewSlot(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})
	a := newTestTexture(t, r, 4, 4)
	b := newTestTexture(t, r, 4, 4)

	require.NoError(t, r.DrawTexture(a, 0, 0, 10, 10))
	require.NoError(t, r.DrawTexture(b, 10, 0, 10, 10))

	vs := r.Vertices()
	require.Len(t, vs, 8)
	for i, v := range vs[:4] {
		assert.Equal(t, float32(0), v.TextureIndex, "vertex %d", i)
		assert.Equal(t, [4]float32{}, v.Color, "vertex %d", i)
	}
	for i, v := range vs[4:] {
		assert.Equal(t, float32(1), v.TextureIndex, "vertex %d", i+4)
	}
	uvs := [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i := 0; i < 4; i++ {
		assert.Equal(t, uvs[i], vs[i].TexCoords)
	}
	assert.Equal(t, []uint32{0, 1, 2, 2, 3, 0, 4, 5, 6, 6, 7, 4}, r.Elements())
}

func TestEnableTextureDoesNotDeduplicate(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})
	a := newTestTexture(t, r, 4, 4)

	first, err := r.EnableTexture(a)
	require.NoError(t, err)
	second, err := r.EnableTexture(a)
	require.NoError(t, err)

	assert.Equal(t, 0, first)
	assert.Equal(t, 1, second)
	assert.Equal(t, 2, r.TextureCount())
}

func TestEnableTextureInvalid(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})

	_, err := r.EnableTexture(nil)
	assert.ErrorIs(t, err, ErrNilTexture)

	_, err = r.EnableTexture(&Texture{ID: 0, Width: 4, Height: 4})
	assert.ErrorIs(t, err, ErrInvalidTexture)

	err = r.DrawTexture(&Texture{ID: 7, Width: 0, Height: 4}, 0, 0, 1, 1)
	assert.ErrorIs(t, err, ErrInvalidTexture)
	assert.Zero(t, r.VertexCount())
}

func TestFlushEmptyIsNoop(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})

	require.NoError(t, r.Flush(nil))
	assert.Empty(t, fake.Draws)
	assert.Empty(t, fake.Uploads)

	require.NoError(t, r.DrawRectangle(White, 0, 0, 1, 1))
	require.NoError(t, r.Flush(nil))
	require.Len(t, fake.Draws, 1)

	require.NoError(t, r.Flush(nil))
	assert.Len(t, fake.Draws, 1)
}

func TestFlushResetsSlotsWithoutVertices(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	_, err := r.EnableTexture(newTestTexture(t, r, 2, 2))
	require.NoError(t, err)

	require.NoError(t, r.Flush(nil))
	assert.Zero(t, r.TextureCount())
	assert.Empty(t, fake.Draws)
}

func TestFlushWithoutElementsDrawsArrays(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	for i := 0; i < 3; i++ {
		idx, err := r.PutVertex(Vertex{Position: [3]float32{float32(i), 0, 0}, TextureIndex: -1})
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}

	require.NoError(t, r.Flush(nil))
	require.Len(t, fake.Draws, 1)
	assert.False(t, fake.Draws[0].Indexed)
	assert.Equal(t, int32(3), fake.Draws[0].Count)
	assert.Zero(t, fake.Count("DrawElements"))
	assert.Equal(t, 1, fake.Count("BufferSubData"))
}

func TestPutElementOutOfRange(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})

	assert.ErrorIs(t, r.PutElement(0), ErrElementOutOfRange)

	idx, err := r.PutVertex(Vertex{})
	require.NoError(t, err)
	require.NoError(t, r.PutElement(idx))
	assert.ErrorIs(t, r.PutElement(1), ErrElementOutOfRange)
	assert.ErrorIs(t, r.PutElement(-1), ErrElementOutOfRange)
	assert.Equal(t, 1, r.ElementCount())
}

func TestVertexCapacity(t *testing.T) {
	r, _ := newTestRenderer(t, Options{MaxVertices: 6})

	require.NoError(t, r.DrawRectangle(White, 0, 0, 1, 1))
	err := r.DrawRectangle(White, 0, 0, 1, 1)
	assert.ErrorIs(t, err, ErrVertexCapacity)
	assert.ErrorIs(t, err, containers.ErrFull)
	assert.True(t, IsCapacityError(err))

	// Nothing of the failed rectangle was emitted.
	assert.Equal(t, 4, r.VertexCount())
	assert.Equal(t, 6, r.ElementCount())

	_, err = r.PutVertex(Vertex{})
	require.NoError(t, err)
	_, err = r.PutVertex(Vertex{})
	require.NoError(t, err)
	_, err = r.PutVertex(Vertex{})
	assert.ErrorIs(t, err, ErrVertexCapacity)

	require.NoError(t, r.Flush(nil))
	require.NoError(t, r.DrawRectangle(White, 0, 0, 1, 1))
}

func TestElementCapacity(t *testing.T) {
	r, _ := newTestRenderer(t, Options{MaxElements: 8})

	require.NoError(t, r.DrawRectangle(White, 0, 0, 1, 1))
	assert.ErrorIs(t, r.DrawTriangle(White, Vector2{}, Vector2{1, 0}, Vector2{0, 1}), ErrElementCapacity)
	assert.Equal(t, 4, r.VertexCount())

	require.NoError(t, r.PutElement(0))
	require.NoError(t, r.PutElement(1))
	assert.ErrorIs(t, r.PutElement(2), ErrElementCapacity)
}

func TestTextureCapacity(t *testing.T) {
	r, _ := newTestRenderer(t, Options{MaxTextures: 2})
	tex := newTestTexture(t, r, 2, 2)

	require.NoError(t, r.DrawTexture(tex, 0, 0, 1, 1))
	require.NoError(t, r.DrawTexture(tex, 0, 0, 1, 1))
	err := r.DrawTexture(tex, 0, 0, 1, 1)
	assert.ErrorIs(t, err, ErrTextureCapacity)
	assert.Equal(t, 8, r.VertexCount())

	_, err = r.EnableTexture(tex)
	assert.ErrorIs(t, err, ErrTextureCapacity)
}

func TestRendererOptionsValidation(t *testing.T) {
	_, err := NewRenderer(glfake.New(), Options{MaxTextures: MaxTextureSlots + 1, Logger: quietLogger()})
	assert.Error(t, err)

	_, err = NewRenderer(glfake.New(), Options{MaxVertices: -1, Logger: quietLogger()})
	assert.Error(t, err)
}

func TestDrawTextureRegionUV(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})
	tex := newTestTexture(t, r, 64, 32)

	require.NoError(t, r.DrawTextureRegion(tex, Rectangle{16, 8, 32, 16}, Rectangle{100, 100, 32, 16}))
	vs := r.Vertices()
	require.Len(t, vs, 4)
	assert.Equal(t, [2]float32{0.25, 0.25}, vs[0].TexCoords)
	assert.Equal(t, [2]float32{0.75, 0.25}, vs[1].TexCoords)
	assert.Equal(t, [2]float32{0.75, 0.75}, vs[2].TexCoords)
	assert.Equal(t, [2]float32{0.25, 0.75}, vs[3].TexCoords)
	assert.Equal(t, [3]float32{132, 116, 0}, vs[2].Position)
}

func TestDrawTextureRegionInSlotRequiresEnabledTexture(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})
	a := newTestTexture(t, r, 4, 4)
	b := newTestTexture(t, r, 4, 4)

	slot, err := r.EnableTexture(a)
	require.NoError(t, err)

	src := Rectangle{0, 0, 4, 4}
	assert.ErrorIs(t, r.DrawTextureRegionInSlot(slot, b, src, src, White), ErrInvalidTexture)
	assert.ErrorIs(t, r.DrawTextureRegionInSlot(3, a, src, src, White), ErrInvalidTexture)
	require.NoError(t, r.DrawTextureRegionInSlot(slot, a, src, src, Yellow))
	assert.Equal(t, [4]float32{1, 1, 0, 1}, r.Vertices()[0].Color)
}

func TestDrawTriangle(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})
	require.NoError(t, r.DrawRectangle(Blue, 0, 0, 1, 1))
	require.NoError(t, r.DrawTriangle(Green, Vector2{1, 2}, Vector2{3, 4}, Vector2{5, 6}))

	vs := r.Vertices()
	require.Len(t, vs, 7)
	assert.Equal(t, [3]float32{3, 4, 0}, vs[5].Position)
	assert.Equal(t, [4]float32{0, 1, 0, 1}, vs[5].Color)
	assert.Equal(t, []uint32{4, 5, 6}, r.Elements()[6:])
}

func TestDrawCircle(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})
	require.NoError(t, r.DrawCircle(Magenta, Vector2{50, 50}, 20))

	n := CircleSegments(20)
	assert.Equal(t, n+1, r.VertexCount())
	assert.Equal(t, 3*n, r.ElementCount())
	for _, e := range r.Elements() {
		assert.Less(t, int(e), r.VertexCount())
	}

	small, _ := newTestRenderer(t, Options{MaxVertices: 4})
	assert.ErrorIs(t, small.DrawCircle(Magenta, Vector2{}, 20), ErrVertexCapacity)
	assert.Zero(t, small.VertexCount())
}

func TestElementsReferenceEarlierVertices(t *testing.T) {
	r, _ := newTestRenderer(t, Options{})
	tex := newTestTexture(t, r, 8, 8)

	require.NoError(t, r.DrawRectangle(Red, 0, 0, 10, 10))
	require.NoError(t, r.DrawTriangle(Red, Vector2{}, Vector2{1, 0}, Vector2{0, 1}))
	require.NoError(t, r.DrawTexture(tex, 0, 0, 8, 8))
	require.NoError(t, r.DrawCircle(Red, Vector2{5, 5}, 3))
	require.NoError(t, r.DrawTextureRegion(tex, Rectangle{0, 0, 4, 4}, Rectangle{0, 0, 4, 4}))

	for i, e := range r.Elements() {
		assert.Less(t, int(e), r.VertexCount(), "element %d", i)
	}
}

func TestVertexArrayPath(t *testing.T) {
	fake := glfake.New()
	r, err := NewRenderer(fake, Options{UseVertexArray: true, Logger: quietLogger()})
	require.NoError(t, err)
	assert.Equal(t, 1, fake.Count("GenVertexArray"))
	assert.Equal(t, 4, fake.Count("VertexAttribPointer"))

	fake.Reset()
	require.NoError(t, r.DrawRectangle(White, 0, 0, 1, 1))
	require.NoError(t, r.Flush(nil))
	assert.Zero(t, fake.Count("VertexAttribPointer"))
	assert.Equal(t, 4, fake.Count("BindVertexArray"))

	require.NoError(t, r.Close())
	assert.Equal(t, 1, fake.Deleted("vertexArray"))
}

func TestLegacyAttributePath(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	require.NoError(t, r.DrawRectangle(White, 0, 0, 1, 1))
	require.NoError(t, r.Flush(nil))

	assert.Zero(t, fake.Count("BindVertexArray"))
	assert.Equal(t, 4, fake.Count("VertexAttribPointer"))

	var offsets []uintptr
	for _, c := range fake.Calls {
		if c.Name == "VertexAttribPointer" {
			assert.Equal(t, int32(vertexSize), c.Args[4])
			offsets = append(offsets, c.Args[5].(uintptr))
		}
	}
	assert.Equal(t, []uintptr{0, 12, 28, 36}, offsets)
}

func TestClose(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	program := r.DefaultShader().ID
	require.NoError(t, r.DrawRectangle(White, 0, 0, 1, 1))

	require.NoError(t, r.Close())
	assert.Equal(t, 2, fake.Deleted("buffer"))
	assert.NotContains(t, fake.Programs, program)
	assert.Zero(t, r.VertexCount())

	assert.ErrorIs(t, r.Flush(nil), ErrClosed)
	assert.ErrorIs(t, r.DrawRectangle(White, 0, 0, 1, 1), ErrClosed)
	_, err := r.PutVertex(Vertex{})
	assert.ErrorIs(t, err, ErrClosed)

	require.NoError(t, r.Close())
	assert.Equal(t, 2, fake.Deleted("buffer"))
}

func TestClearAndViewport(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})

	r.ClearBackground(Color{255, 0, 0, 255})
	assert.Equal(t, [4]float32{1, 0, 0, 1}, fake.ClearColor4)
	require.Equal(t, 1, fake.Count("Clear"))
	for _, c := range fake.Calls {
		if c.Name == "Clear" {
			assert.Equal(t, []any{uint32(gl.ColorBufferBit | gl.DepthBufferBit)}, c.Args)
		}
	}

	r.Viewport(0, 0, 320, 240)
	assert.Equal(t, [4]int32{0, 0, 320, 240}, fake.Viewport4)
}

func TestNewRendererCleansUpOnShaderFailure(t *testing.T) {
	fake := glfake.New()
	fake.CompileFails[gl.VertexShader] = true
	fake.InfoLog = "0:1: syntax error"

	_, err := NewRenderer(fake, Options{Logger: quietLogger()})
	var se *ShaderError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "vertex", se.Stage)
	assert.Empty(t, fake.Buffers)
	assert.Empty(t, fake.Shaders)
}
