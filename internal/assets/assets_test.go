package assets

import (
	"image"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"

	"github.com/tinyrange/noe/internal/gl/glfake"
	"github.com/tinyrange/noe/internal/graphics"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newRenderer(t *testing.T) (*graphics.Renderer, *glfake.GL) {
	t.Helper()
	fake := glfake.New()
	r, err := graphics.NewRenderer(fake, graphics.Options{Logger: quietLogger()})
	require.NoError(t, err)
	return r, fake
}

// twoRows is a 2x2 image with a red top row and a blue bottom row.
func twoRows() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		img.Set(x, 0, color.NRGBA{255, 0, 0, 255})
		img.Set(x, 1, color.NRGBA{0, 0, 255, 255})
	}
	return img
}

func writeImage(t *testing.T, name string, encode func(io.Writer, image.Image) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, encode(f, twoRows()))
	require.NoError(t, f.Close())
	return path
}

func TestLoadFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	s, err := LoadFileText(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = LoadFileText(filepath.Join(t.TempDir(), "missing"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLoadImageFormats(t *testing.T) {
	for name, encode := range map[string]func(io.Writer, image.Image) error{
		"a.png": png.Encode,
		"a.bmp": bmp.Encode,
	} {
		t.Run(name, func(t *testing.T) {
			path := writeImage(t, name, encode)

			img, err := LoadImage(path, false)
			require.NoError(t, err)
			assert.Equal(t, color.NRGBA{255, 0, 0, 255}, img.NRGBAAt(0, 0))

			flipped, err := LoadImage(path, true)
			require.NoError(t, err)
			assert.Equal(t, color.NRGBA{0, 0, 255, 255}, flipped.NRGBAAt(0, 0))
			assert.Equal(t, color.NRGBA{255, 0, 0, 255}, flipped.NRGBAAt(1, 1))
		})
	}
}

func TestLoadImageRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(path, []byte("nope"), 0o644))
	_, err := LoadImage(path, false)
	assert.Error(t, err)
}

func TestLoadTextureFromFile(t *testing.T) {
	r, fake := newRenderer(t)
	path := writeImage(t, "t.png", png.Encode)

	tex, err := LoadTextureFromFile(r, path, false)
	require.NoError(t, err)
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 2, tex.Height)
	assert.Equal(t, 4, tex.Components)
	assert.Equal(t, []byte{255, 0, 0, 255}, fake.Textures[tex.ID].Pixels[:4])
}

func TestLoadShaderFromFile(t *testing.T) {
	r, _ := newRenderer(t)

	s, err := LoadShaderFromFile(r, "", "")
	require.NoError(t, err)
	assert.NotZero(t, s.ID)

	vert := filepath.Join(t.TempDir(), "v.glsl")
	require.NoError(t, os.WriteFile(vert, []byte(graphics.DefaultVertexShader), 0o644))
	s, err = LoadShaderFromFile(r, vert, "")
	require.NoError(t, err)
	assert.NotZero(t, s.ID)

	_, err = LoadShaderFromFile(r, "", filepath.Join(t.TempDir(), "missing.frag"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWatcherDispatchesOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shader.frag")
	other := filepath.Join(dir, "other.frag")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	w, err := NewWatcher(quietLogger())
	require.NoError(t, err)
	defer w.Close()

	var calls atomic.Int32
	require.NoError(t, w.Watch(path, func() { calls.Add(1) }))

	assert.Zero(t, w.Dispatch())

	require.NoError(t, os.WriteFile(other, []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))

	assert.Eventually(t, func() bool {
		w.Dispatch()
		return calls.Load() > 0
	}, 5*time.Second, 10*time.Millisecond)
}

func TestWatcherClosed(t *testing.T) {
	w, err := NewWatcher(quietLogger())
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	err = w.Watch(filepath.Join(t.TempDir(), "x"), func() {})
	assert.ErrorIs(t, err, ErrWatcherClosed)
}
