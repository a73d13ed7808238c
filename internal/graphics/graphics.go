package graphics

import (
	"errors"
	"fmt"

	"github.com/tinyrange/noe/internal/containers"
)

const (
	// DefaultMaxVertices is the default vertex capacity of a batch.
	DefaultMaxVertices = 32768
	// DefaultMaxElements is the default element capacity of a batch.
	DefaultMaxElements = 65536
	// MaxTextureSlots is the number of texture units a batch can bind. The
	// sampler array uploaded at flush always covers all of them.
	MaxTextureSlots = 8
)

var (
	ErrVertexCapacity  = fmt.Errorf("graphics: vertex batch: %w", containers.ErrFull)
	ErrElementCapacity = fmt.Errorf("graphics: element batch: %w", containers.ErrFull)
	ErrTextureCapacity = fmt.Errorf("graphics: texture slots: %w", containers.ErrFull)

	ErrElementOutOfRange = errors.New("graphics: element references a vertex outside the batch")
	ErrNilTexture        = errors.New("graphics: nil texture")
	ErrInvalidTexture    = errors.New("graphics: texture has no GPU name or zero size")
	ErrMissingLocation   = errors.New("graphics: shader location not found")
	ErrClosed            = errors.New("graphics: renderer closed")
)

// Color is an 8-bit per channel RGBA colour.
type Color struct {
	R, G, B, A uint8
}

var (
	White   = Color{255, 255, 255, 255}
	Black   = Color{0, 0, 0, 255}
	Red     = Color{255, 0, 0, 255}
	Green   = Color{0, 255, 0, 255}
	Blue    = Color{0, 0, 255, 255}
	Yellow  = Color{255, 255, 0, 255}
	Magenta = Color{255, 0, 255, 255}
	Blank   = Color{}
)

// Normalize returns the colour with every channel divided by 255.
func (c Color) Normalize() [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}

// Vector2 is a point in window coordinates.
type Vector2 struct {
	X, Y float32
}

// Rectangle is an axis-aligned box with its origin at the top-left corner.
type Rectangle struct {
	X, Y, Width, Height float32
}

// Vertex is the fixed layout uploaded to the vertex buffer. TextureIndex is the
// texture slot to sample, or -1 to use Color alone.
type Vertex struct {
	Position     [3]float32
	Color        [4]float32
	TexCoords    [2]float32
	TextureIndex float32
}

// Byte offsets of the vertex attributes, and the stride.
const (
	vertexPositionOffset     = 0
	vertexColorOffset        = 12
	vertexTexCoordsOffset    = 28
	vertexTextureIndexOffset = 36
	vertexSize               = 40
)
