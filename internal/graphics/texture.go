package graphics

import (
	"fmt"
	"image"
	"image/draw"
	"unsafe"

	"github.com/tinyrange/noe/internal/gl"
)

// Texture is a GPU texture owned by the caller; release it with UnloadTexture.
type Texture struct {
	ID         uint32
	Width      int
	Height     int
	Components int
}

func (t *Texture) validate() error {
	if t == nil {
		return ErrNilTexture
	}
	if t.ID == 0 || t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: id=%d %dx%d", ErrInvalidTexture, t.ID, t.Width, t.Height)
	}
	return nil
}

// Size returns the texture dimensions in pixels.
func (t *Texture) Size() (int, int) {
	return t.Width, t.Height
}

// LoadTexture uploads tightly packed 8-bit pixels. components == 4 selects
// RGBA source data, anything else RGB. The texture repeats, minifies linearly
// with mipmaps and magnifies with nearest filtering.
func (r *Renderer) LoadTexture(pixels []byte, width, height, components int) (*Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTexture, width, height)
	}
	format := uint32(gl.RGB)
	bpp := 3
	if components == 4 {
		format = gl.RGBA
		bpp = 4
	}
	if want := width * height * bpp; len(pixels) < want {
		return nil, fmt.Errorf("graphics: texture data is %d bytes, %dx%d with %d components needs %d",
			len(pixels), width, height, bpp, want)
	}

	g := r.gl
	id := g.GenTexture()
	g.BindTexture(gl.Texture2D, id)
	g.TexParameteri(gl.Texture2D, gl.TextureWrapS, gl.Repeat)
	g.TexParameteri(gl.Texture2D, gl.TextureWrapT, gl.Repeat)
	g.TexParameteri(gl.Texture2D, gl.TextureMinFilter, gl.Linear)
	g.TexParameteri(gl.Texture2D, gl.TextureMagFilter, gl.Nearest)
	g.PixelStorei(gl.UnpackAlignment, 1)
	g.TexImage2D(
		gl.Texture2D,
		0,
		gl.RGBA8,
		int32(width),
		int32(height),
		0,
		format,
		gl.UnsignedByte,
		unsafe.Pointer(&pixels[0]),
	)
	g.GenerateMipmap(gl.Texture2D)
	g.BindTexture(gl.Texture2D, 0)

	r.log.Debug("texture loaded", "id", id, "width", width, "height", height, "components", bpp)
	return &Texture{ID: id, Width: width, Height: height, Components: bpp}, nil
}

// NewTexture uploads any image as RGBA.
func (r *Renderer) NewTexture(img image.Image) (*Texture, error) {
	b := img.Bounds()
	nrgba, ok := img.(*image.NRGBA)
	if !ok || nrgba.Stride != 4*b.Dx() || b.Min != (image.Point{}) {
		nrgba = image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(nrgba, nrgba.Bounds(), img, b.Min, draw.Src)
	}
	return r.LoadTexture(nrgba.Pix, b.Dx(), b.Dy(), 4)
}

// UnloadTexture deletes the GPU texture. It must not be referenced by a
// pending batch.
func (r *Renderer) UnloadTexture(t *Texture) {
	if t == nil || t.ID == 0 {
		return
	}
	r.gl.DeleteTexture(t.ID)
	t.ID = 0
}

// Screenshot reads back the lower-left width x height pixels of the
// framebuffer, flipped so that row 0 is the top of the window.
func (r *Renderer) Screenshot(width, height int) (*image.RGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("graphics: screenshot of %dx%d", width, height)
	}
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	r.gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UnsignedByte, unsafe.Pointer(&rgba.Pix[0]))

	flipped := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		src := rgba.Pix[y*rgba.Stride : (y+1)*rgba.Stride]
		dst := (height - 1 - y) * flipped.Stride
		copy(flipped.Pix[dst:dst+flipped.Stride], src)
	}
	return flipped, nil
}
