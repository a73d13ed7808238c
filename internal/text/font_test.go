package text

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/tinyrange/noe/internal/gl/glfake"
	"github.com/tinyrange/noe/internal/graphics"
)

func newRenderer(t *testing.T, opts graphics.Options) (*graphics.Renderer, *glfake.GL) {
	t.Helper()
	fake := glfake.New()
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	r, err := graphics.NewRenderer(fake, opts)
	require.NoError(t, err)
	return r, fake
}

func TestDefaultAtlas(t *testing.T) {
	r, fake := newRenderer(t, graphics.Options{})
	f, err := Default(r)
	require.NoError(t, err)

	w, h := f.Atlas().Size()
	assert.Equal(t, 16*7, w)
	assert.Equal(t, 6*13, h)
	assert.Equal(t, float32(13), f.LineHeight())

	tex := fake.Textures[f.Atlas().ID]
	require.NotNil(t, tex)
	lit := 0
	for i := 3; i < len(tex.Pixels); i += 4 {
		if tex.Pixels[i] != 0 {
			lit++
		}
	}
	assert.Positive(t, lit, "glyphs are rasterised into the atlas")
}

func TestDrawUsesOneSlot(t *testing.T) {
	r, _ := newRenderer(t, graphics.Options{})
	f, err := Default(r)
	require.NoError(t, err)

	require.NoError(t, f.Draw(r, "Hi there", 10, 20, 1, graphics.Yellow))
	assert.Equal(t, 1, r.TextureCount())
	assert.Equal(t, 7*4, r.VertexCount(), "spaces emit no quads")
	assert.Equal(t, 7*6, r.ElementCount())

	v := r.Vertices()
	assert.Equal(t, [3]float32{10, 20, 0}, v[0].Position)
	assert.Equal(t, [3]float32{17, 20, 0}, v[4].Position)
	assert.Equal(t, float32(0), v[0].TextureIndex)
	assert.Equal(t, graphics.Yellow.Normalize(), v[0].Color)
}

func TestDrawNewlineAndScale(t *testing.T) {
	r, _ := newRenderer(t, graphics.Options{})
	f, err := Default(r)
	require.NoError(t, err)

	require.NoError(t, f.Draw(r, "a\nb", 0, 0, 2, graphics.White))
	v := r.Vertices()
	require.Len(t, v, 8)
	assert.Equal(t, [3]float32{0, 26, 0}, v[4].Position)
	assert.Equal(t, [3]float32{14, 52, 0}, v[6].Position)
}

func TestDrawAllOrNothing(t *testing.T) {
	r, _ := newRenderer(t, graphics.Options{MaxVertices: 8, MaxElements: 64})
	f, err := Default(r)
	require.NoError(t, err)

	err = f.Draw(r, "abc", 0, 0, 1, graphics.White)
	assert.ErrorIs(t, err, graphics.ErrVertexCapacity)
	assert.Zero(t, r.VertexCount())
	assert.Zero(t, r.TextureCount())

	assert.NoError(t, f.Draw(r, "ab", 0, 0, 1, graphics.White))
	assert.NoError(t, f.Draw(r, "   \n", 0, 0, 1, graphics.White), "blank text needs no room")
}

func TestMeasure(t *testing.T) {
	r, _ := newRenderer(t, graphics.Options{})
	f, err := Default(r)
	require.NoError(t, err)

	w, h := f.Measure("abcd\nef", 1)
	assert.Equal(t, float32(28), w)
	assert.Equal(t, float32(26), h)

	w, h = f.Measure("", 1)
	assert.Zero(t, w)
	assert.Zero(t, h)
}

func TestUnknownRuneFallsBack(t *testing.T) {
	r, _ := newRenderer(t, graphics.Options{})
	f, err := Default(r)
	require.NoError(t, err)

	require.NoError(t, f.Draw(r, "é", 0, 0, 1, graphics.White))
	assert.Equal(t, 4, r.VertexCount())
}

func TestParseFace(t *testing.T) {
	face, err := ParseFace(goregular.TTF, 16)
	require.NoError(t, err)

	r, _ := newRenderer(t, graphics.Options{})
	f, err := Load(r, face)
	require.NoError(t, err)
	assert.Positive(t, f.LineHeight())

	_, err = ParseFace([]byte("not a font"), 16)
	assert.Error(t, err)
}
