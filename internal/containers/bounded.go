package containers

import "errors"

// ErrFull is returned when pushing into a container that has reached its capacity.
var ErrFull = errors.New("container is full")

// Bounded is a fixed-capacity array with a fill count. The backing storage is
// allocated once; Reset only rewinds the count.
type Bounded[T any] struct {
	data  []T
	count int
}

// NewBounded allocates a Bounded with room for exactly capacity items.
func NewBounded[T any](capacity int) *Bounded[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Bounded[T]{data: make([]T, capacity)}
}

// Push appends v and returns the index it was stored at.
func (b *Bounded[T]) Push(v T) (int, error) {
	if b.count >= len(b.data) {
		return -1, ErrFull
	}
	idx := b.count
	b.data[idx] = v
	b.count++
	return idx, nil
}

func (b *Bounded[T]) Len() int { return b.count }

func (b *Bounded[T]) Cap() int { return len(b.data) }

// Remaining reports how many more items fit.
func (b *Bounded[T]) Remaining() int { return len(b.data) - b.count }

func (b *Bounded[T]) Full() bool { return b.count >= len(b.data) }

// At returns the item at i. It panics when i is outside [0, Len()).
func (b *Bounded[T]) At(i int) T {
	if i < 0 || i >= b.count {
		panic("containers: index out of range")
	}
	return b.data[i]
}

// Items returns the filled prefix of the backing storage. The slice aliases the
// container and is only valid until the next Push or Reset.
func (b *Bounded[T]) Items() []T {
	return b.data[:b.count]
}

func (b *Bounded[T]) Reset() {
	b.count = 0
}
