package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPressThenHold(t *testing.T) {
	s := NewState(0)
	var src Events

	assert.False(t, s.IsKeyDown(KeyK))
	assert.True(t, s.IsKeyUp(KeyK))

	src.Push(KeyPressed(KeyK))
	s.Poll(&src)

	assert.True(t, s.IsKeyPressed(KeyK))
	assert.True(t, s.IsKeyDown(KeyK))
	assert.False(t, s.IsKeyReleased(KeyK))
	assert.False(t, s.IsKeyUp(KeyK))

	s.Poll(&src)
	assert.False(t, s.IsKeyPressed(KeyK))
	assert.True(t, s.IsKeyDown(KeyK))

	s.Poll(&src)
	assert.False(t, s.IsKeyPressed(KeyK))
	assert.True(t, s.IsKeyDown(KeyK))
}

func TestRelease(t *testing.T) {
	s := NewState(0)
	var src Events

	src.Push(KeyPressed(KeySpace))
	s.Poll(&src)
	src.Push(KeyReleased(KeySpace))
	s.Poll(&src)

	assert.True(t, s.IsKeyReleased(KeySpace))
	assert.True(t, s.IsKeyUp(KeySpace))
	assert.False(t, s.IsKeyPressed(KeySpace))
	assert.False(t, s.IsKeyDown(KeySpace))

	s.Poll(&src)
	assert.False(t, s.IsKeyReleased(KeySpace))
	assert.True(t, s.IsKeyUp(KeySpace))
}

func TestPressAndReleaseInOneCycle(t *testing.T) {
	s := NewState(0)
	var src Events

	src.Push(KeyPressed(KeyA), KeyReleased(KeyA))
	s.Poll(&src)

	assert.False(t, s.IsKeyPressed(KeyA))
	assert.False(t, s.IsKeyDown(KeyA))
	assert.Equal(t, 1, s.KeyPressedCount())
	assert.Equal(t, KeyA, s.GetKeyPressed())
}

func TestInvalidKeysAreIgnored(t *testing.T) {
	s := NewState(0)
	var src Events

	src.Push(KeyPressed(KeyInvalid), KeyPressed(-3), KeyPressed(MaxKeys), KeyPressed(MaxKeys+100))
	s.Poll(&src)

	for _, k := range []Key{KeyInvalid, -3, MaxKeys, MaxKeys + 100} {
		assert.False(t, s.IsKeyPressed(k), "pressed %d", k)
		assert.False(t, s.IsKeyDown(k), "down %d", k)
		assert.False(t, s.IsKeyReleased(k), "released %d", k)
		assert.False(t, s.IsKeyUp(k), "up %d", k)
	}
	assert.Equal(t, 0, s.KeyPressedCount())
}

func TestKeyPressedQueueIsBounded(t *testing.T) {
	const q = DefaultKeyPressedQueueSize
	s := NewState(q)
	var src Events

	for i := 0; i < q+5; i++ {
		src.Push(KeyPressed(KeyA + Key(i%26)))
	}
	s.Poll(&src)
	assert.Equal(t, q, s.KeyPressedCount())

	assert.Equal(t, KeyA, s.GetKeyPressed())
	assert.Equal(t, KeyB, s.GetKeyPressed())
	assert.Equal(t, q-2, s.KeyPressedCount())
}

func TestKeyPressedQueueResetsEachCycle(t *testing.T) {
	s := NewState(4)
	var src Events

	src.Push(KeyPressed(KeyW), KeyPressed(KeyS))
	s.Poll(&src)
	assert.Equal(t, 2, s.KeyPressedCount())

	s.Poll(&src)
	assert.Equal(t, 0, s.KeyPressedCount())
	assert.Equal(t, KeyInvalid, s.GetKeyPressed())
}

func TestPollWithNilSourceStillSnapshots(t *testing.T) {
	s := NewState(0)
	var src Events

	src.Push(KeyPressed(KeyEnter))
	s.Poll(&src)
	s.Poll(nil)

	assert.False(t, s.IsKeyPressed(KeyEnter))
	assert.True(t, s.IsKeyDown(KeyEnter))
}

func TestMouseEdges(t *testing.T) {
	s := NewState(0)
	var src Events

	src.Push(Event{Type: EventMouseButtonPressed, Button: ButtonLeft, X: 4, Y: 8})
	s.Poll(&src)
	assert.True(t, s.IsMouseButtonPressed(ButtonLeft))
	assert.True(t, s.IsMouseButtonDown(ButtonLeft))
	assert.True(t, s.IsMouseButtonUp(ButtonRight))

	src.Push(Event{Type: EventMouseMoved, X: 10, Y: 20})
	s.Poll(&src)
	assert.False(t, s.IsMouseButtonPressed(ButtonLeft))
	x, y := s.MousePosition()
	assert.Equal(t, float32(10), x)
	assert.Equal(t, float32(20), y)
	dx, dy := s.MouseDelta()
	assert.Equal(t, float32(6), dx)
	assert.Equal(t, float32(12), dy)

	src.Push(Event{Type: EventMouseButtonReleased, Button: ButtonLeft, X: 10, Y: 20})
	s.Poll(&src)
	assert.True(t, s.IsMouseButtonReleased(ButtonLeft))

	assert.False(t, s.IsMouseButtonDown(Button(MaxMouseButtons)))
	assert.False(t, s.IsMouseButtonUp(Button(-1)))
}

func TestMouseWheelAccumulatesPerCycle(t *testing.T) {
	s := NewState(0)
	var src Events

	src.Push(Event{Type: EventMouseWheel, Y: 1}, Event{Type: EventMouseWheel, Y: 2})
	s.Poll(&src)
	_, wy := s.MouseWheel()
	assert.Equal(t, float32(3), wy)

	s.Poll(&src)
	_, wy = s.MouseWheel()
	assert.Zero(t, wy)
}

func TestWindowEvents(t *testing.T) {
	s := NewState(0)
	var src Events

	src.Push(Event{Type: EventWindowResized, Width: 640, Height: 480}, WindowClose())
	s.Poll(&src)
	assert.True(t, s.Resized())
	assert.True(t, s.CloseRequested())
	w, h := s.FrameSize()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	s.Poll(&src)
	assert.False(t, s.Resized())
	assert.False(t, s.CloseRequested())
	w, _ = s.FrameSize()
	assert.Equal(t, 640, w)
}

func TestModsHas(t *testing.T) {
	m := ModShift | ModControl
	assert.True(t, m.Has(ModShift))
	assert.True(t, m.Has(ModShift|ModControl))
	assert.False(t, m.Has(ModAlt))
}

func TestEventTypeString(t *testing.T) {
	assert.Equal(t, "KeyPressed", EventKeyPressed.String())
	assert.Equal(t, "EventType(99)", EventType(99).String())
}
