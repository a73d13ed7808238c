// Package assets loads text, images, textures and shaders from disk.
package assets

import (
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/tinyrange/noe/internal/graphics"
)

// LoadFileText reads a whole file as a string.
func LoadFileText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load %s: %w", path, err)
	}
	return string(data), nil
}

// LoadImage decodes a PNG, JPEG, GIF, BMP, TIFF or WebP file into tightly
// packed NRGBA. flip mirrors it vertically so row 0 is the bottom.
func LoadImage(path string, flip bool) (*image.NRGBA, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	b := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), img, b.Min, draw.Src)
	if flip {
		flipVertical(out)
	}
	return out, nil
}

func flipVertical(img *image.NRGBA) {
	h := img.Bounds().Dy()
	row := make([]byte, img.Stride)
	for y := 0; y < h/2; y++ {
		top := img.Pix[y*img.Stride : (y+1)*img.Stride]
		bottom := img.Pix[(h-1-y)*img.Stride : (h-y)*img.Stride]
		copy(row, top)
		copy(top, bottom)
		copy(bottom, row)
	}
}

// LoadTextureFromFile decodes an image file and uploads it as an RGBA texture.
func LoadTextureFromFile(r *graphics.Renderer, path string, flip bool) (*graphics.Texture, error) {
	img, err := LoadImage(path, flip)
	if err != nil {
		return nil, err
	}
	tex, err := r.LoadTexture(img.Pix, img.Bounds().Dx(), img.Bounds().Dy(), 4)
	if err != nil {
		return nil, fmt.Errorf("texture %s: %w", path, err)
	}
	return tex, nil
}

// LoadShaderFromFile compiles a program from two GLSL files. An empty path
// selects the built-in source for that stage.
func LoadShaderFromFile(r *graphics.Renderer, vertexPath, fragmentPath string) (*graphics.Shader, error) {
	vs, fs := graphics.DefaultVertexShader, graphics.DefaultFragmentShader
	var err error
	if vertexPath != "" {
		if vs, err = LoadFileText(vertexPath); err != nil {
			return nil, err
		}
	}
	if fragmentPath != "" {
		if fs, err = LoadFileText(fragmentPath); err != nil {
			return nil, err
		}
	}
	s, err := r.LoadShader(vs, fs)
	if err != nil {
		return nil, fmt.Errorf("shader %q %q: %w", vertexPath, fragmentPath, err)
	}
	return s, nil
}
