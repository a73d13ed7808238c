package containers

// RingQueue is a bounded FIFO. Enqueue on a full queue drops the value.
type RingQueue[T any] struct {
	data  []T
	head  int
	count int
}

func NewRingQueue[T any](capacity int) *RingQueue[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &RingQueue[T]{data: make([]T, capacity)}
}

// Enqueue adds v at the tail and reports whether there was room for it.
func (q *RingQueue[T]) Enqueue(v T) bool {
	if q.count >= len(q.data) {
		return false
	}
	q.data[(q.head+q.count)%len(q.data)] = v
	q.count++
	return true
}

// Dequeue removes the value at the head.
func (q *RingQueue[T]) Dequeue() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	v := q.data[q.head]
	q.data[q.head] = zero
	q.head = (q.head + 1) % len(q.data)
	q.count--
	return v, true
}

// Peek returns the value at the head without removing it.
func (q *RingQueue[T]) Peek() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	return q.data[q.head], true
}

func (q *RingQueue[T]) Len() int { return q.count }

func (q *RingQueue[T]) Cap() int { return len(q.data) }

func (q *RingQueue[T]) Reset() {
	q.head = 0
	q.count = 0
}
