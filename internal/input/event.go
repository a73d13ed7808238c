package input

import "fmt"

type EventType int

const (
	EventNone EventType = iota
	EventWindowClose
	EventWindowResized
	EventKeyPressed
	EventKeyReleased
	EventMouseButtonPressed
	EventMouseButtonReleased
	EventMouseMoved
	EventMouseWheel
)

func (t EventType) String() string {
	switch t {
	case EventWindowClose:
		return "WindowClose"
	case EventWindowResized:
		return "WindowResized"
	case EventKeyPressed:
		return "KeyPressed"
	case EventKeyReleased:
		return "KeyReleased"
	case EventMouseButtonPressed:
		return "MouseButtonPressed"
	case EventMouseButtonReleased:
		return "MouseButtonReleased"
	case EventMouseMoved:
		return "MouseMoved"
	case EventMouseWheel:
		return "MouseWheel"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is a platform event already translated into engine terms. Only the
// fields relevant to Type are set.
type Event struct {
	Type   EventType
	Key    Key
	Mods   Mods
	Button Button

	// Cursor position for mouse events, wheel deltas for EventMouseWheel.
	X, Y float32

	// New framebuffer size for EventWindowResized.
	Width, Height int
}

func KeyPressed(k Key) Event  { return Event{Type: EventKeyPressed, Key: k} }
func KeyReleased(k Key) Event { return Event{Type: EventKeyReleased, Key: k} }
func WindowClose() Event      { return Event{Type: EventWindowClose} }

// EventSource is implemented by window backends. PollEvents appends every event
// the platform has pending to dst and returns the extended slice. It must not
// block waiting for new events.
type EventSource interface {
	PollEvents(dst []Event) []Event
}

// Events is an EventSource over a fixed list of synthetic events. Each call to
// PollEvents hands out the queued events once.
type Events []Event

func (e *Events) PollEvents(dst []Event) []Event {
	dst = append(dst, (*e)...)
	*e = (*e)[:0]
	return dst
}

// Push queues events for the next poll cycle.
func (e *Events) Push(evs ...Event) {
	*e = append(*e, evs...)
}
