// Package app ties a window, a renderer and the input state into one
// application context.
package app

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tinyrange/noe/internal/assets"
	"github.com/tinyrange/noe/internal/graphics"
	"github.com/tinyrange/noe/internal/input"
	"github.com/tinyrange/noe/internal/logging"
	"github.com/tinyrange/noe/internal/window"
)

// App owns the window, its GL renderer and the input state. All methods must
// be called from the goroutine that created it.
type App struct {
	cfg Config
	log *slog.Logger

	win      window.Window
	renderer *graphics.Renderer
	input    *input.State

	// shader is the program used by EndDrawing; custom is set when it was
	// loaded from the asset config and must be unloaded by the app.
	shader  *graphics.Shader
	custom  bool
	watcher *assets.Watcher

	shouldClose bool
	start       time.Time
}

// Option customises New.
type Option func(*App)

// WithLogger replaces the logger built from Config.Log.
func WithLogger(l *slog.Logger) Option {
	return func(a *App) { a.log = l }
}

// New opens the window, creates the renderer and loads the configured shader.
func New(cfg Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, start: time.Now()}
	for _, opt := range opts {
		opt(a)
	}
	if a.log == nil {
		l, err := logging.New(logging.Options{Level: cfg.Log.Level, Prefix: "noe"})
		if err != nil {
			return nil, err
		}
		a.log = l
	}

	win, err := window.New(cfg.Window.Backend, window.Config{
		Title:       cfg.Window.Title,
		Width:       cfg.Window.Width,
		Height:      cfg.Window.Height,
		Visible:     cfg.Window.Visible,
		Resizable:   cfg.Window.Resizable,
		Fullscreen:  cfg.Window.Fullscreen,
		GLMajor:     cfg.OpenGL.Major,
		GLMinor:     cfg.OpenGL.Minor,
		CoreProfile: cfg.OpenGL.CoreProfile,
		Logger:      a.log,
	})
	if err != nil {
		return nil, fmt.Errorf("app: create window: %w", err)
	}
	a.win = win

	ctx, err := win.GL()
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("app: load OpenGL: %w", err)
	}

	a.renderer, err = graphics.NewRenderer(ctx, graphics.Options{
		MaxVertices:    cfg.Renderer.MaxVertices,
		MaxElements:    cfg.Renderer.MaxElements,
		MaxTextures:    cfg.Renderer.MaxTextures,
		UseVertexArray: cfg.OpenGL.CoreProfile,
		Logger:         a.log,
	})
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("app: create renderer: %w", err)
	}
	a.shader = a.renderer.DefaultShader()
	a.input = input.NewState(cfg.Input.KeyQueueSize)

	if err := a.loadAssets(); err != nil {
		a.Close()
		return nil, err
	}

	a.log.Info("application initialized",
		"backend", cfg.Window.Backend,
		"gl", fmt.Sprintf("%d.%d", cfg.OpenGL.Major, cfg.OpenGL.Minor),
		"core", cfg.OpenGL.CoreProfile)
	return a, nil
}

func (a *App) loadAssets() error {
	ac := a.cfg.Assets
	if ac.VertexShader == "" && ac.FragmentShader == "" {
		return nil
	}
	s, err := assets.LoadShaderFromFile(a.renderer, ac.VertexShader, ac.FragmentShader)
	if err != nil {
		return fmt.Errorf("app: %w", err)
	}
	a.shader, a.custom = s, true

	if !ac.HotReload {
		return nil
	}
	a.watcher, err = assets.NewWatcher(a.log)
	if err != nil {
		return err
	}
	for _, path := range []string{ac.VertexShader, ac.FragmentShader} {
		if path == "" {
			continue
		}
		if err := a.watcher.Watch(path, a.reloadShader); err != nil {
			return err
		}
	}
	return nil
}

// reloadShader swaps in the edited shader, keeping the old one when the new
// one does not build.
func (a *App) reloadShader() {
	ac := a.cfg.Assets
	s, err := assets.LoadShaderFromFile(a.renderer, ac.VertexShader, ac.FragmentShader)
	if err != nil {
		var se *graphics.ShaderError
		if errors.As(err, &se) {
			a.log.Warn("shader reload failed", "stage", se.Stage, "log", se.Log)
		} else {
			a.log.Warn("shader reload failed", "err", err)
		}
		return
	}
	if a.custom {
		a.renderer.UnloadShader(a.shader)
	}
	a.shader, a.custom = s, true
	a.log.Info("shader reloaded", "id", s.ID)
}

// Close releases everything New created. It is safe to call more than once.
func (a *App) Close() error {
	var errs []error
	if a.watcher != nil {
		errs = append(errs, a.watcher.Close())
		a.watcher = nil
	}
	if a.renderer != nil {
		if a.custom {
			a.renderer.UnloadShader(a.shader)
			a.custom = false
		}
		errs = append(errs, a.renderer.Close())
		a.renderer = nil
	}
	if a.win != nil {
		a.win.Close()
		a.win = nil
		a.log.Info("application closed")
	}
	return errors.Join(errs...)
}

func (a *App) Config() Config               { return a.cfg }
func (a *App) Logger() *slog.Logger         { return a.log }
func (a *App) Window() window.Window        { return a.win }
func (a *App) Renderer() *graphics.Renderer { return a.renderer }
func (a *App) Input() *input.State          { return a.input }
func (a *App) Shader() *graphics.Shader     { return a.shader }

// PollInputEvents runs one poll cycle. A close request from the platform or
// a held exit key makes WindowShouldClose true until it is reset with
// SetWindowShouldClose; starting a new cycle does not clear it.
func (a *App) PollInputEvents() {
	a.input.Poll(a.win)
	if a.input.CloseRequested() {
		a.shouldClose = true
	}
	if k := a.cfg.Input.ExitKey; k.Valid() && a.input.IsKeyDown(k) {
		a.shouldClose = true
	}
	if a.input.Resized() {
		w, h := a.input.FrameSize()
		a.log.Debug("frame resized", "width", w, "height", h)
	}
	if a.watcher != nil {
		a.watcher.Dispatch()
	}
}

func (a *App) WindowShouldClose() bool { return a.shouldClose }

func (a *App) SetWindowShouldClose(shouldClose bool) { a.shouldClose = shouldClose }

// IsFrameResized reports a resize during the last poll cycle.
func (a *App) IsFrameResized() bool { return a.input.Resized() }

// GetTimeMillis is the monotonic time since New, in milliseconds.
func (a *App) GetTimeMillis() uint64 {
	return uint64(time.Since(a.start).Milliseconds())
}

func (a *App) SetWindowTitle(title string) {
	a.cfg.Window.Title = title
	a.win.SetTitle(title)
}

func (a *App) SetWindowSize(width, height int) {
	a.cfg.Window.Width, a.cfg.Window.Height = width, height
	a.win.SetSize(width, height)
}

func (a *App) SetWindowVisible(visible bool) {
	a.cfg.Window.Visible = visible
	a.win.SetVisible(visible)
}

func (a *App) SetWindowResizable(resizable bool) {
	a.cfg.Window.Resizable = resizable
	a.win.SetResizable(resizable)
}

func (a *App) SetWindowFullscreen(fullscreen bool) {
	a.cfg.Window.Fullscreen = fullscreen
	a.win.SetFullscreen(fullscreen)
}

func (a *App) IsWindowVisible() bool    { return a.cfg.Window.Visible }
func (a *App) IsWindowResizable() bool  { return a.cfg.Window.Resizable }
func (a *App) IsWindowFullscreen() bool { return a.cfg.Window.Fullscreen }

// ClearBackground clears the framebuffer to c.
func (a *App) ClearBackground(c graphics.Color) {
	a.renderer.ClearBackground(c)
}

// BeginDrawing sets the viewport to the framebuffer and a pixel projection
// with the origin at the top-left corner.
func (a *App) BeginDrawing() error {
	w, h := a.win.BackingSize()
	a.renderer.Viewport(0, 0, w, h)
	proj := graphics.MatrixOrthographic(0, float32(w), float32(h), 0, -1, 1)
	return a.renderer.SetProjectionMatrix(a.shader, proj)
}

// EndDrawing flushes the batch with the current shader and presents the frame.
func (a *App) EndDrawing() error {
	err := a.renderer.Flush(a.shader)
	a.win.Swap()
	return err
}
