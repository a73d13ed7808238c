package text

import (
	"errors"
	"fmt"
	"image"

	"github.com/tinyrange/noe/internal/graphics"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Charset is the set of runes rasterised into the atlas: printable ASCII.
const Charset = " !\"#$%&'()*+,-./0123456789:;<=>?@ABCDEFGHIJKLMNOPQRSTUVWXYZ[\\]^_`abcdefghijklmnopqrstuvwxyz{|}~"

// Glyphs per atlas row.
const atlasColumns = 16

const tabWidth = 4

var ErrNoGlyphs = errors.New("text: face has no glyphs for the charset")

type glyph struct {
	src     graphics.Rectangle
	advance float32
}

// Font is a glyph atlas uploaded as a single texture. All glyphs of one Draw
// call share one texture slot.
type Font struct {
	atlas      *graphics.Texture
	glyphs     map[rune]glyph
	lineHeight float32
	fallback   glyph
}

// Default builds a font from the 7x13 fixed face bundled with x/image.
func Default(r *graphics.Renderer) (*Font, error) {
	return Load(r, basicfont.Face7x13)
}

// ParseFace opens a TrueType/OpenType face at size points.
func ParseFace(data []byte, size float64) (font.Face, error) {
	f, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("create face: %w", err)
	}
	return face, nil
}

// Load rasterises Charset from face into an atlas texture.
func Load(r *graphics.Renderer, face font.Face) (*Font, error) {
	img, glyphs, lineHeight, err := rasterize(face)
	if err != nil {
		return nil, err
	}
	tex, err := r.NewTexture(img)
	if err != nil {
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}

	f := &Font{atlas: tex, glyphs: glyphs, lineHeight: lineHeight}
	if g, ok := glyphs['?']; ok {
		f.fallback = g
	}
	return f, nil
}

// rasterize draws every glyph into a grid of equally sized cells.
func rasterize(face font.Face) (*image.NRGBA, map[rune]glyph, float32, error) {
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	cellH := ascent + metrics.Descent.Ceil()

	cellW := 0
	advances := make(map[rune]fixed.Int26_6, len(Charset))
	for _, c := range Charset {
		adv, ok := face.GlyphAdvance(c)
		if !ok {
			continue
		}
		advances[c] = adv
		cellW = max(cellW, adv.Ceil())
	}
	if len(advances) == 0 || cellW == 0 || cellH <= 0 {
		return nil, nil, 0, ErrNoGlyphs
	}

	rows := (len(Charset) + atlasColumns - 1) / atlasColumns
	img := image.NewNRGBA(image.Rect(0, 0, atlasColumns*cellW, rows*cellH))
	d := &font.Drawer{Dst: img, Src: image.White, Face: face}

	glyphs := make(map[rune]glyph, len(advances))
	for i, c := range Charset {
		adv, ok := advances[c]
		if !ok {
			continue
		}
		x, y := (i%atlasColumns)*cellW, (i/atlasColumns)*cellH
		d.Dot = fixed.P(x, y+ascent)
		d.DrawString(string(c))
		glyphs[c] = glyph{
			src:     graphics.Rectangle{X: float32(x), Y: float32(y), Width: float32(adv.Ceil()), Height: float32(cellH)},
			advance: float32(adv) / 64,
		}
	}
	return img, glyphs, float32(metrics.Height.Ceil()), nil
}

// Atlas is the glyph texture.
func (f *Font) Atlas() *graphics.Texture { return f.atlas }

// LineHeight is the unscaled distance between baselines.
func (f *Font) LineHeight() float32 { return f.lineHeight }

func (f *Font) lookup(c rune) glyph {
	if g, ok := f.glyphs[c]; ok {
		return g
	}
	return f.fallback
}

// visible counts the quads s needs.
func (f *Font) visible(s string) int {
	n := 0
	for _, c := range s {
		switch c {
		case '\n', '\r', '\t', ' ':
			continue
		}
		if f.lookup(c).src.Width > 0 {
			n++
		}
	}
	return n
}

// Draw queues s with its top-left corner at (x, y), scaled by scale and tinted
// by c. Newlines return to x on the next line. The string is queued whole or
// not at all.
func (f *Font) Draw(r *graphics.Renderer, s string, x, y, scale float32, c graphics.Color) error {
	n := f.visible(s)
	if n == 0 {
		return nil
	}
	if err := r.Reserve(4*n, 6*n, 1); err != nil {
		return err
	}
	slot, err := r.EnableTexture(f.atlas)
	if err != nil {
		return err
	}

	penX, penY := x, y
	space := f.lookup(' ').advance * scale
	for _, ch := range s {
		switch ch {
		case '\n':
			penX = x
			penY += f.lineHeight * scale
			continue
		case '\r':
			continue
		case '\t':
			penX += space * tabWidth
			continue
		}
		g := f.lookup(ch)
		if ch != ' ' && g.src.Width > 0 {
			dst := graphics.Rectangle{X: penX, Y: penY, Width: g.src.Width * scale, Height: g.src.Height * scale}
			if err := r.DrawTextureRegionInSlot(slot, f.atlas, g.src, dst, c); err != nil {
				return err
			}
		}
		penX += g.advance * scale
	}
	return nil
}

// Measure returns the size of the box Draw would fill.
func (f *Font) Measure(s string, scale float32) (width, height float32) {
	if s == "" {
		return 0, 0
	}
	line := float32(0)
	lines := 1
	space := f.lookup(' ').advance
	for _, ch := range s {
		switch ch {
		case '\n':
			width = max(width, line)
			line = 0
			lines++
			continue
		case '\r':
			continue
		case '\t':
			line += space * tabWidth
			continue
		}
		line += f.lookup(ch).advance
	}
	width = max(width, line)
	return width * scale, float32(lines) * f.lineHeight * scale
}

// Unload releases the atlas texture.
func (f *Font) Unload(r *graphics.Renderer) {
	r.UnloadTexture(f.atlas)
}
