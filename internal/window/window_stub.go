package window

import (
	"github.com/tinyrange/noe/internal/gl"
	"github.com/tinyrange/noe/internal/gl/glfake"
	"github.com/tinyrange/noe/internal/input"
)

func init() {
	Register("stub", func(cfg Config) (Window, error) {
		return NewStub(cfg), nil
	})
}

// Stub is a headless window. Its GL context is a glfake recorder and its
// events are whatever the caller pushes.
type Stub struct {
	Config Config
	Swaps  int
	Closed bool

	gl     *glfake.GL
	events input.Events
}

func NewStub(cfg Config) *Stub {
	return &Stub{Config: cfg, gl: glfake.New()}
}

// Push queues events for the next PollEvents.
func (s *Stub) Push(evs ...input.Event) {
	s.events.Push(evs...)
}

// Fake returns the recording GL context.
func (s *Stub) Fake() *glfake.GL { return s.gl }

func (s *Stub) PollEvents(dst []input.Event) []input.Event {
	if s.Closed {
		return dst
	}
	return s.events.PollEvents(dst)
}

func (s *Stub) GL() (gl.OpenGL, error) { return s.gl, nil }

func (s *Stub) Swap() { s.Swaps++ }

func (s *Stub) Close() { s.Closed = true }

func (s *Stub) BackingSize() (int, int) { return s.Config.Width, s.Config.Height }

func (s *Stub) Scale() float32 { return 1 }

func (s *Stub) SetTitle(title string) { s.Config.Title = title }

// SetSize resizes the stub and reports it like a window manager would.
func (s *Stub) SetSize(width, height int) {
	s.Config.Width, s.Config.Height = width, height
	s.events.Push(input.Event{Type: input.EventWindowResized, Width: width, Height: height})
}

func (s *Stub) SetVisible(visible bool) { s.Config.Visible = visible }

func (s *Stub) SetResizable(resizable bool) { s.Config.Resizable = resizable }

func (s *Stub) SetFullscreen(fullscreen bool) { s.Config.Fullscreen = fullscreen }
