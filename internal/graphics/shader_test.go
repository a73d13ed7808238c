package graphics

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyrange/noe/internal/gl"
)

func TestLoadShaderLocations(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	deleted := fake.Deleted("shader")

	s, err := r.LoadShader("vs", "fs")
	require.NoError(t, err)
	for l := LocPosition; l < numShaderLocs; l++ {
		assert.Equal(t, fake.Location(l.String()), s.Location(l), l.String())
	}
	assert.Equal(t, int32(-1), s.Location(ShaderLoc(42)))

	// Matrices start as identity.
	identity := MatrixIdentity()
	for _, l := range []ShaderLoc{LocProjection, LocView, LocModel} {
		u, ok := fake.LastUniform(s.Locs[l])
		require.True(t, ok, l.String())
		assert.Equal(t, identity[:], u.Floats)
	}

	// Both stages are released once linked.
	assert.Equal(t, deleted+2, fake.Deleted("shader"))
	assert.Empty(t, fake.Shaders)
}

func TestLoadShaderCompileFailure(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	fake.CompileFails[gl.FragmentShader] = true
	fake.InfoLog = "0:3: 'o_Colour' undeclared"
	programs := len(fake.Programs)

	_, err := r.LoadShader("vs", "fs")
	var se *ShaderError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "fragment", se.Stage)
	assert.Contains(t, se.Error(), "o_Colour")

	assert.Empty(t, fake.Shaders)
	assert.Len(t, fake.Programs, programs)
}

func TestLoadShaderLinkFailure(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	fake.LinkFails = true
	fake.InfoLog = "varying mismatch"
	programs := len(fake.Programs)

	_, err := r.LoadShader("vs", "fs")
	var se *ShaderError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "link", se.Stage)
	assert.Empty(t, fake.Shaders)
	assert.Len(t, fake.Programs, programs)
}

func TestLoadShaderMissingLocations(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	programs := len(fake.Programs)

	fake.Missing["u_Model"] = true
	s, err := r.LoadShader("vs", "fs")
	require.NoError(t, err)
	assert.Equal(t, int32(-1), s.Locs[LocModel])
	r.UnloadShader(s)
	assert.Zero(t, s.ID)
	assert.Len(t, fake.Programs, programs)

	fake.Missing["u_Textures"] = true
	fake.Missing["a_Color"] = true
	_, err = r.LoadShader("vs", "fs")
	assert.ErrorIs(t, err, ErrMissingLocation)
	assert.Contains(t, err.Error(), "a_Color")
	assert.Contains(t, err.Error(), "u_Textures")
	assert.Len(t, fake.Programs, programs)
}

func TestSetUniform(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	s := r.DefaultShader()

	proj := MatrixOrthographic(0, 800, 600, 0, -1, 1)
	require.NoError(t, r.SetProjectionMatrix(s, proj))
	u, ok := fake.LastUniform(s.Locs[LocProjection])
	require.True(t, ok)
	assert.Equal(t, "UniformMatrix4fv", u.Func)
	assert.Equal(t, s.ID, u.Program)
	assert.Equal(t, proj[:], u.Floats)
	assert.Equal(t, uint32(0), fake.Program)

	require.NoError(t, r.SetUniform(s, 30, UniformMat3, make([]float32, 9), true))
	u, _ = fake.LastUniform(30)
	assert.True(t, u.Transpose)

	require.NoError(t, r.SetUniform(s, 31, UniformIvec2, []int32{1, 2}, false))
	u, _ = fake.LastUniform(31)
	assert.Equal(t, "Uniform2iv", u.Func)

	require.NoError(t, r.SetUniform(s, 32, UniformUvec4, []uint32{1, 2, 3, 4}, false))
	u, _ = fake.LastUniform(32)
	assert.Equal(t, "Uniform4uiv", u.Func)

	assert.ErrorIs(t, r.SetUniform(s, 33, UniformVec2, []int32{1, 2}, false), ErrUniformType)
	assert.ErrorIs(t, r.SetUniform(s, 33, UniformFloat, []float64{1}, false), ErrUniformType)

	// Negative locations are ignored.
	calls := len(fake.Calls)
	require.NoError(t, r.SetUniform(s, -1, UniformFloat, []float32{1}, false))
	assert.Len(t, fake.Calls, calls)
}

func TestFlushWithCustomShader(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	s, err := r.LoadShader("vs", "fs")
	require.NoError(t, err)

	require.NoError(t, r.DrawRectangle(White, 0, 0, 1, 1))
	require.NoError(t, r.Flush(s))
	require.Len(t, fake.Draws, 1)
	assert.Equal(t, s.ID, fake.Draws[0].Program)
}

func TestLoadTexture(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})

	tex, err := r.LoadTexture(make([]byte, 2*3*3), 2, 3, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, tex.Components)
	w, h := tex.Size()
	assert.Equal(t, 2, w)
	assert.Equal(t, 3, h)

	ft := fake.Textures[tex.ID]
	require.NotNil(t, ft)
	assert.Equal(t, int32(gl.RGBA8), ft.InternalFormat)
	assert.Equal(t, uint32(gl.RGB), ft.Format)
	assert.Len(t, ft.Pixels, 18)
	assert.True(t, ft.Mipmapped)
	assert.Equal(t, int32(gl.Repeat), ft.Params[gl.TextureWrapS])
	assert.Equal(t, int32(gl.Repeat), ft.Params[gl.TextureWrapT])
	assert.Equal(t, int32(gl.Linear), ft.Params[gl.TextureMinFilter])
	assert.Equal(t, int32(gl.Nearest), ft.Params[gl.TextureMagFilter])

	_, err = r.LoadTexture(make([]byte, 4), 2, 2, 4)
	assert.Error(t, err)
	_, err = r.LoadTexture(nil, 0, 2, 4)
	assert.ErrorIs(t, err, ErrInvalidTexture)

	r.UnloadTexture(tex)
	assert.Zero(t, tex.ID)
	assert.Equal(t, 1, fake.Deleted("texture"))
	r.UnloadTexture(tex)
	assert.Equal(t, 1, fake.Deleted("texture"))
}

func TestNewTextureFromSubImage(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(2, 2, color.RGBA{R: 255, A: 255})
	sub := img.SubImage(image.Rect(2, 2, 4, 4))

	tex, err := r.NewTexture(sub)
	require.NoError(t, err)
	assert.Equal(t, 2, tex.Width)
	assert.Equal(t, 4, tex.Components)

	pixels := fake.Textures[tex.ID].Pixels
	require.Len(t, pixels, 16)
	assert.Equal(t, []byte{255, 0, 0, 255}, pixels[:4])
}

func TestScreenshot(t *testing.T) {
	r, fake := newTestRenderer(t, Options{})
	fake.Pixel = [4]byte{10, 20, 30, 255}

	img, err := r.Screenshot(3, 2)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 3, 2), img.Bounds())
	assert.Equal(t, color.RGBA{10, 20, 30, 255}, img.RGBAAt(2, 1))

	_, err = r.Screenshot(0, 2)
	assert.Error(t, err)
}
