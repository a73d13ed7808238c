//go:build glfw

package window

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/tinyrange/noe/internal/gl"
	"github.com/tinyrange/noe/internal/input"
)

func init() {
	Register("glfw", newGLFW)
}

type glfwWindow struct {
	cfg    Config
	glw    *glfw.Window
	events input.Events

	// Windowed position and size restored when leaving fullscreen.
	restoreX, restoreY int
}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

func newGLFW(cfg Config) (Window, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw init: %w", err)
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ContextVersionMajor, cfg.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, cfg.GLMinor)
	if cfg.CoreProfile {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	}
	glfw.WindowHint(glfw.Resizable, glfwBool(cfg.Resizable))
	glfw.WindowHint(glfw.Visible, glfwBool(cfg.Visible))

	var monitor *glfw.Monitor
	if cfg.Fullscreen {
		monitor = glfw.GetPrimaryMonitor()
	}
	glw, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, monitor, nil)
	if err != nil {
		glfw.Terminate()
		runtime.UnlockOSThread()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}
	glw.MakeContextCurrent()

	w := &glfwWindow{cfg: cfg, glw: glw}
	w.restoreX, w.restoreY = glw.GetPos()

	glw.SetCloseCallback(w.closeRequested)
	glw.SetFramebufferSizeCallback(w.framebufferResized)
	glw.SetKeyCallback(w.keyEvent)
	glw.SetMouseButtonCallback(w.mouseButtonEvent)
	glw.SetScrollCallback(w.scrollEvent)
	glw.SetCursorPosCallback(w.cursorPosEvent)

	cfg.logger().Info("glfw window ready", "scale", w.Scale())
	return w, nil
}

func (w *glfwWindow) closeRequested(glw *glfw.Window) {
	// The application decides whether to close.
	glw.SetShouldClose(false)
	w.events.Push(input.WindowClose())
}

func (w *glfwWindow) framebufferResized(_ *glfw.Window, width, height int) {
	w.events.Push(input.Event{Type: input.EventWindowResized, Width: width, Height: height})
}

func (w *glfwWindow) keyEvent(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
	t := input.EventKeyPressed
	if action == glfw.Release {
		t = input.EventKeyReleased
	}
	// Key codes share GLFW's numbering.
	w.events.Push(input.Event{Type: t, Key: input.Key(key), Mods: input.Mods(mods)})
}

func (w *glfwWindow) mouseButtonEvent(glw *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
	t := input.EventMouseButtonPressed
	if action == glfw.Release {
		t = input.EventMouseButtonReleased
	}
	x, y := glw.GetCursorPos()
	w.events.Push(input.Event{
		Type:   t,
		Button: translateGLFWButton(button),
		Mods:   input.Mods(mods),
		X:      float32(x),
		Y:      float32(y),
	})
}

func (w *glfwWindow) scrollEvent(_ *glfw.Window, xoff, yoff float64) {
	w.events.Push(input.Event{Type: input.EventMouseWheel, X: float32(xoff), Y: float32(yoff)})
}

func (w *glfwWindow) cursorPosEvent(_ *glfw.Window, x, y float64) {
	w.events.Push(input.Event{Type: input.EventMouseMoved, X: float32(x), Y: float32(y)})
}

func translateGLFWButton(b glfw.MouseButton) input.Button {
	switch b {
	case glfw.MouseButtonLeft:
		return input.ButtonLeft
	case glfw.MouseButtonRight:
		return input.ButtonRight
	case glfw.MouseButtonMiddle:
		return input.ButtonMiddle
	case glfw.MouseButton4:
		return input.ButtonBack
	case glfw.MouseButton5:
		return input.ButtonForward
	}
	return input.Button(-1)
}

func (w *glfwWindow) PollEvents(dst []input.Event) []input.Event {
	if w.glw != nil {
		glfw.PollEvents()
	}
	return w.events.PollEvents(dst)
}

func (w *glfwWindow) GL() (gl.OpenGL, error) {
	return gl.Load(func(name string) uintptr {
		return uintptr(glfw.GetProcAddress(name))
	})
}

func (w *glfwWindow) Swap() {
	if w.glw != nil {
		w.glw.SwapBuffers()
	}
}

func (w *glfwWindow) Close() {
	if w.glw == nil {
		return
	}
	w.glw.Destroy()
	w.glw = nil
	glfw.Terminate()
	runtime.UnlockOSThread()
}

func (w *glfwWindow) BackingSize() (int, int) {
	return w.glw.GetFramebufferSize()
}

func (w *glfwWindow) Scale() float32 {
	sx, _ := w.glw.GetContentScale()
	if sx <= 0 {
		return 1
	}
	return sx
}

func (w *glfwWindow) SetTitle(title string) {
	w.cfg.Title = title
	w.glw.SetTitle(title)
}

func (w *glfwWindow) SetSize(width, height int) {
	w.cfg.Width, w.cfg.Height = width, height
	w.glw.SetSize(width, height)
}

func (w *glfwWindow) SetVisible(visible bool) {
	w.cfg.Visible = visible
	if visible {
		w.glw.Show()
	} else {
		w.glw.Hide()
	}
}

func (w *glfwWindow) SetResizable(resizable bool) {
	w.cfg.Resizable = resizable
	w.glw.SetAttrib(glfw.Resizable, glfwBool(resizable))
}

func (w *glfwWindow) SetFullscreen(fullscreen bool) {
	if fullscreen == w.cfg.Fullscreen {
		return
	}
	w.cfg.Fullscreen = fullscreen
	if fullscreen {
		w.restoreX, w.restoreY = w.glw.GetPos()
		monitor := glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		w.glw.SetMonitor(monitor, 0, 0, mode.Width, mode.Height, mode.RefreshRate)
		return
	}
	w.glw.SetMonitor(nil, w.restoreX, w.restoreY, w.cfg.Width, w.cfg.Height, glfw.DontCare)
}
