package input

import (
	"github.com/tinyrange/noe/internal/containers"
)

const (
	MaxKeys         = 512
	MaxMouseButtons = 8

	// DefaultKeyPressedQueueSize bounds how many key presses are remembered per
	// poll cycle.
	DefaultKeyPressedQueueSize = 16
)

type keyboardState struct {
	current  [MaxKeys]bool
	previous [MaxKeys]bool
	pressed  *containers.RingQueue[Key]
}

type mouseState struct {
	current  [MaxMouseButtons]bool
	previous [MaxMouseButtons]bool

	x, y         float32
	prevX, prevY float32
	wheelX       float32
	wheelY       float32
}

// State is the double-buffered input store. Platform events only reach it
// through Poll, so the snapshot taken at the start of a cycle always reflects
// the end of the previous one.
type State struct {
	keyboard keyboardState
	mouse    mouseState

	closeRequested bool
	resized        bool
	width, height  int

	pending []Event
}

// NewState creates an input store whose key-pressed queue holds queueSize
// entries. A non-positive size selects DefaultKeyPressedQueueSize.
func NewState(queueSize int) *State {
	if queueSize <= 0 {
		queueSize = DefaultKeyPressedQueueSize
	}
	return &State{
		keyboard: keyboardState{
			pressed: containers.NewRingQueue[Key](queueSize),
		},
		pending: make([]Event, 0, 64),
	}
}

// Poll runs one poll cycle: snapshot current state into previous, reset the
// per-cycle counters, then drain and apply every event src has pending.
func (s *State) Poll(src EventSource) {
	s.keyboard.previous = s.keyboard.current
	s.keyboard.pressed.Reset()

	s.mouse.previous = s.mouse.current
	s.mouse.prevX, s.mouse.prevY = s.mouse.x, s.mouse.y
	s.mouse.wheelX, s.mouse.wheelY = 0, 0

	s.closeRequested = false
	s.resized = false

	if src == nil {
		return
	}
	s.pending = src.PollEvents(s.pending[:0])
	for _, ev := range s.pending {
		s.apply(ev)
	}
}

func (s *State) apply(ev Event) {
	switch ev.Type {
	case EventKeyPressed:
		if !ev.Key.Valid() {
			return
		}
		s.keyboard.current[ev.Key] = true
		s.keyboard.pressed.Enqueue(ev.Key)
	case EventKeyReleased:
		if !ev.Key.Valid() {
			return
		}
		s.keyboard.current[ev.Key] = false
	case EventMouseButtonPressed:
		if ev.Button.Valid() {
			s.mouse.current[ev.Button] = true
		}
		s.mouse.x, s.mouse.y = ev.X, ev.Y
	case EventMouseButtonReleased:
		if ev.Button.Valid() {
			s.mouse.current[ev.Button] = false
		}
		s.mouse.x, s.mouse.y = ev.X, ev.Y
	case EventMouseMoved:
		s.mouse.x, s.mouse.y = ev.X, ev.Y
	case EventMouseWheel:
		s.mouse.wheelX += ev.X
		s.mouse.wheelY += ev.Y
	case EventWindowResized:
		s.resized = true
		s.width, s.height = ev.Width, ev.Height
	case EventWindowClose:
		s.closeRequested = true
	}
}

func (s *State) IsKeyPressed(k Key) bool {
	if !k.Valid() {
		return false
	}
	return !s.keyboard.previous[k] && s.keyboard.current[k]
}

func (s *State) IsKeyReleased(k Key) bool {
	if !k.Valid() {
		return false
	}
	return s.keyboard.previous[k] && !s.keyboard.current[k]
}

func (s *State) IsKeyDown(k Key) bool {
	if !k.Valid() {
		return false
	}
	return s.keyboard.current[k]
}

// IsKeyUp reports whether k is up. Codes outside the tracked range are never
// reported as up or down.
func (s *State) IsKeyUp(k Key) bool {
	if !k.Valid() {
		return false
	}
	return !s.keyboard.current[k]
}

// KeyPressedCount is the number of key presses still queued for this cycle.
func (s *State) KeyPressedCount() int {
	return s.keyboard.pressed.Len()
}

// GetKeyPressed dequeues the oldest key pressed during this cycle, or
// KeyInvalid when the queue is empty.
func (s *State) GetKeyPressed() Key {
	k, ok := s.keyboard.pressed.Dequeue()
	if !ok {
		return KeyInvalid
	}
	return k
}

func (s *State) IsMouseButtonPressed(b Button) bool {
	if !b.Valid() {
		return false
	}
	return !s.mouse.previous[b] && s.mouse.current[b]
}

func (s *State) IsMouseButtonReleased(b Button) bool {
	if !b.Valid() {
		return false
	}
	return s.mouse.previous[b] && !s.mouse.current[b]
}

func (s *State) IsMouseButtonDown(b Button) bool {
	if !b.Valid() {
		return false
	}
	return s.mouse.current[b]
}

func (s *State) IsMouseButtonUp(b Button) bool {
	if !b.Valid() {
		return false
	}
	return !s.mouse.current[b]
}

func (s *State) MousePosition() (x, y float32) {
	return s.mouse.x, s.mouse.y
}

// MouseDelta is the cursor movement since the previous poll cycle.
func (s *State) MouseDelta() (dx, dy float32) {
	return s.mouse.x - s.mouse.prevX, s.mouse.y - s.mouse.prevY
}

// MouseWheel is the accumulated wheel movement of this cycle.
func (s *State) MouseWheel() (x, y float32) {
	return s.mouse.wheelX, s.mouse.wheelY
}

// CloseRequested reports whether the platform asked to close the window during
// this cycle.
func (s *State) CloseRequested() bool {
	return s.closeRequested
}

// Resized reports whether the framebuffer changed size during this cycle.
func (s *State) Resized() bool {
	return s.resized
}

// FrameSize is the last size reported by a resize event.
func (s *State) FrameSize() (width, height int) {
	return s.width, s.height
}
