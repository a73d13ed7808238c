package window

import (
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sort"

	"github.com/tinyrange/noe/internal/gl"
	"github.com/tinyrange/noe/internal/input"
)

var ErrUnknownBackend = errors.New("window: unknown backend")

// Config describes the window and GL context to create.
type Config struct {
	Title      string
	Width      int
	Height     int
	Visible    bool
	Resizable  bool
	Fullscreen bool

	GLMajor     int
	GLMinor     int
	CoreProfile bool

	Logger *slog.Logger
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Window is a native window with a current GL context. PollEvents drains the
// platform queue without blocking.
type Window interface {
	input.EventSource

	GL() (gl.OpenGL, error)
	Swap()
	Close()

	BackingSize() (width, height int)
	Scale() float32

	SetTitle(title string)
	SetSize(width, height int)
	SetVisible(visible bool)
	SetResizable(resizable bool)
	SetFullscreen(fullscreen bool)
}

// Factory creates a window for one backend.
type Factory func(Config) (Window, error)

var backends = map[string]Factory{}

// Register makes a backend available to New. It is called from init functions.
func Register(name string, f Factory) {
	if _, dup := backends[name]; dup {
		panic("window: backend registered twice: " + name)
	}
	backends[name] = f
}

// Backends lists the registered backend names.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultBackend is the native backend of the running platform.
func DefaultBackend() string {
	switch runtime.GOOS {
	case "linux":
		return "x11"
	case "windows":
		return "win32"
	}
	return "stub"
}

// New creates a window with the named backend, or the platform default when
// name is empty.
func New(name string, cfg Config) (Window, error) {
	if name == "" {
		name = DefaultBackend()
	}
	f, ok := backends[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownBackend, name, Backends())
	}
	cfg.logger().Info("creating window", "backend", name, "title", cfg.Title, "width", cfg.Width, "height", cfg.Height)
	return f(cfg)
}
