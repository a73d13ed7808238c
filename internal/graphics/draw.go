package graphics

import "github.com/chewxy/math32"

// quad emits four vertices clockwise from the top-left corner and the two
// triangles TL,TR,BR and BR,BL,TL. The caller has reserved the room.
func (r *Renderer) quad(dst Rectangle, uv Rectangle, color [4]float32, slot float32) {
	corners := [4][4]float32{
		{dst.X, dst.Y, uv.X, uv.Y},
		{dst.X + dst.Width, dst.Y, uv.X + uv.Width, uv.Y},
		{dst.X + dst.Width, dst.Y + dst.Height, uv.X + uv.Width, uv.Y + uv.Height},
		{dst.X, dst.Y + dst.Height, uv.X, uv.Y + uv.Height},
	}
	var idx [4]int
	for i, c := range corners {
		idx[i], _ = r.PutVertex(Vertex{
			Position:     [3]float32{c[0], c[1], 0},
			Color:        color,
			TexCoords:    [2]float32{c[2], c[3]},
			TextureIndex: slot,
		})
	}
	for _, i := range [6]int{0, 1, 2, 2, 3, 0} {
		_ = r.PutElement(idx[i])
	}
}

// DrawRectangle fills a rectangle with a solid colour.
func (r *Renderer) DrawRectangle(c Color, x, y, width, height float32) error {
	if err := r.Reserve(4, 6, 0); err != nil {
		return err
	}
	r.quad(Rectangle{x, y, width, height}, Rectangle{}, c.Normalize(), -1)
	return nil
}

// DrawTriangle fills the triangle p1, p2, p3 with a solid colour.
func (r *Renderer) DrawTriangle(c Color, p1, p2, p3 Vector2) error {
	if err := r.Reserve(3, 3, 0); err != nil {
		return err
	}
	color := c.Normalize()
	for _, p := range [3]Vector2{p1, p2, p3} {
		idx, _ := r.PutVertex(Vertex{
			Position:     [3]float32{p.X, p.Y, 0},
			Color:        color,
			TextureIndex: -1,
		})
		_ = r.PutElement(idx)
	}
	return nil
}

// DrawTexture draws the whole texture stretched over a rectangle. It takes a
// texture slot of its own.
func (r *Renderer) DrawTexture(tex *Texture, x, y, width, height float32) error {
	if err := tex.validate(); err != nil {
		return err
	}
	if err := r.Reserve(4, 6, 1); err != nil {
		return err
	}
	slot, _ := r.EnableTexture(tex)
	r.quad(Rectangle{x, y, width, height}, Rectangle{0, 0, 1, 1}, [4]float32{}, float32(slot))
	return nil
}

// DrawTextureRegion draws the src pixel region of the texture over dst. It
// takes a texture slot of its own.
func (r *Renderer) DrawTextureRegion(tex *Texture, src, dst Rectangle) error {
	if err := tex.validate(); err != nil {
		return err
	}
	if err := r.Reserve(4, 6, 1); err != nil {
		return err
	}
	slot, _ := r.EnableTexture(tex)
	r.quad(dst, regionUV(tex, src), [4]float32{}, float32(slot))
	return nil
}

// DrawTextureRegionInSlot is DrawTextureRegion for a texture already enabled
// at slot, tinted by c. A Blank tint draws the texels unchanged.
func (r *Renderer) DrawTextureRegionInSlot(slot int, tex *Texture, src, dst Rectangle, c Color) error {
	if err := tex.validate(); err != nil {
		return err
	}
	if slot < 0 || slot >= r.textures.Len() || r.textures.At(slot) != tex.ID {
		return ErrInvalidTexture
	}
	if err := r.Reserve(4, 6, 0); err != nil {
		return err
	}
	r.quad(dst, regionUV(tex, src), c.Normalize(), float32(slot))
	return nil
}

func regionUV(tex *Texture, src Rectangle) Rectangle {
	w, h := float32(tex.Width), float32(tex.Height)
	return Rectangle{src.X / w, src.Y / h, src.Width / w, src.Height / h}
}

// CircleSegments is the number of triangles used for a circle of radius r.
func CircleSegments(radius float32) int {
	n := int(math32.Ceil(2 * math32.Pi * radius / 4))
	if n < 12 {
		n = 12
	}
	if n > 128 {
		n = 128
	}
	return n
}

// DrawCircle fills a circle with a triangle fan around its centre.
func (r *Renderer) DrawCircle(c Color, center Vector2, radius float32) error {
	n := CircleSegments(radius)
	if err := r.Reserve(n+1, 3*n, 0); err != nil {
		return err
	}
	color := c.Normalize()
	mid, _ := r.PutVertex(Vertex{
		Position:     [3]float32{center.X, center.Y, 0},
		Color:        color,
		TextureIndex: -1,
	})
	first := mid + 1
	for i := 0; i < n; i++ {
		a := 2 * math32.Pi * float32(i) / float32(n)
		_, _ = r.PutVertex(Vertex{
			Position:     [3]float32{center.X + radius*math32.Cos(a), center.Y + radius*math32.Sin(a), 0},
			Color:        color,
			TextureIndex: -1,
		})
	}
	for i := 0; i < n; i++ {
		_ = r.PutElement(mid)
		_ = r.PutElement(first + i)
		_ = r.PutElement(first + (i+1)%n)
	}
	return nil
}
