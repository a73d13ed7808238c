package containers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBoundedPushUntilFull(t *testing.T) {
	b := NewBounded[int](3)
	assert.Equal(t, 3, b.Cap())

	for i := 0; i < 3; i++ {
		idx, err := b.Push(i * 10)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}
	assert.True(t, b.Full())
	assert.Equal(t, 0, b.Remaining())

	idx, err := b.Push(99)
	assert.ErrorIs(t, err, ErrFull)
	assert.Equal(t, -1, idx)
	assert.Equal(t, []int{0, 10, 20}, b.Items())
}

func TestBoundedResetKeepsCapacity(t *testing.T) {
	b := NewBounded[string](2)
	_, _ = b.Push("a")
	_, _ = b.Push("b")
	b.Reset()

	assert.Equal(t, 0, b.Len())
	assert.Equal(t, 2, b.Remaining())
	assert.Empty(t, b.Items())

	idx, err := b.Push("c")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)
	assert.Equal(t, "c", b.At(0))
}

func TestBoundedAtOutOfRangePanics(t *testing.T) {
	b := NewBounded[int](4)
	_, _ = b.Push(1)
	assert.Panics(t, func() { b.At(1) })
	assert.Panics(t, func() { b.At(-1) })
}

func TestBoundedZeroCapacity(t *testing.T) {
	b := NewBounded[int](-5)
	assert.Equal(t, 0, b.Cap())
	_, err := b.Push(1)
	assert.ErrorIs(t, err, ErrFull)
}

func TestRingQueueFIFOWraps(t *testing.T) {
	q := NewRingQueue[int](3)
	assert.True(t, q.Enqueue(1))
	assert.True(t, q.Enqueue(2))
	assert.True(t, q.Enqueue(3))
	assert.False(t, q.Enqueue(4))

	v, ok := q.Dequeue()
	require.True(t, ok)
	assert.Equal(t, 1, v)

	assert.True(t, q.Enqueue(5))

	var got []int
	for {
		v, ok := q.Dequeue()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.Equal(t, []int{2, 3, 5}, got)
	assert.Equal(t, 0, q.Len())
}

func TestRingQueuePeekAndReset(t *testing.T) {
	q := NewRingQueue[rune](2)
	_, ok := q.Peek()
	assert.False(t, ok)

	q.Enqueue('x')
	v, ok := q.Peek()
	require.True(t, ok)
	assert.Equal(t, 'x', v)
	assert.Equal(t, 1, q.Len())

	q.Reset()
	_, ok = q.Dequeue()
	assert.False(t, ok)
	assert.Equal(t, 2, q.Cap())
}
