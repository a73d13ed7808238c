//go:build linux

package window

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/tinyrange/noe/internal/gl"
	"github.com/tinyrange/noe/internal/input"
)

func init() {
	Register("x11", newX11)
}

const (
	glxRGBA         = 4
	glxDoubleBuffer = 5
	glxRedSize      = 8
	glxGreenSize    = 9
	glxBlueSize     = 10
	glxAlphaSize    = 11
	glxDepthSize    = 12
	glxStencilSize  = 13
	glxNone         = 0

	glxXRenderable  = 0x8012
	glxDrawableType = 0x8010
	glxRenderType   = 0x8011
	glxWindowBit    = 0x1
	glxRGBABit      = 0x1

	glxContextMajorVersion = 0x2091
	glxContextMinorVersion = 0x2092
	glxContextProfileMask  = 0x9126
	glxContextCoreBit      = 0x1

	inputOutput = 1

	exposureMask            = 1 << 15
	structureNotifyMask     = 1 << 17
	substructureNotifyMask  = 1 << 19
	substructureRedirectMsk = 1 << 20
	keyPressMask            = 1 << 0
	keyReleaseMask          = 1 << 1
	buttonPressMask         = 1 << 2
	buttonReleaseMask       = 1 << 3
	pointerMotionMask       = 1 << 6

	keyPress        = 2
	keyRelease      = 3
	buttonPress     = 4
	buttonRelease   = 5
	motionNotify    = 6
	destroyNotify   = 17
	configureNotify = 22
	clientMessage   = 33

	pMinSize = 1 << 4
	pMaxSize = 1 << 5

	netWMStateRemove = 0
	netWMStateAdd    = 1
)

type XVisualInfo struct {
	Visual       uintptr
	VisualID     uint
	Screen       int32
	Depth        int32
	Class        int32
	RedMask      uint64
	GreenMask    uint64
	BlueMask     uint64
	ColormapSize int32
	BitsPerRGB   int32
	MapEntries   int32
	pad          int32
}

type xclientMessage struct {
	Type        int32
	Serial      uint64
	SendEvent   int32
	Display     uintptr
	Window      uintptr
	MessageType uintptr
	Format      int32
	Data        [5]uint64
}

// Shared prefix of XKeyEvent, XButtonEvent and XMotionEvent.
type xinputEvent struct {
	Type       int32
	Serial     uint64
	SendEvent  int32
	Display    uintptr
	Window     uintptr
	Root       uintptr
	Subwindow  uintptr
	Time       uint64
	X, Y       int32
	XRoot      int32
	YRoot      int32
	State      uint32
	Detail     uint32 // keycode or button
	SameScreen int32
}

type xconfigureEvent struct {
	Type          int32
	Serial        uint64
	SendEvent     int32
	Display       uintptr
	Event         uintptr
	Window        uintptr
	X, Y          int32
	Width, Height int32
}

type xsizeHints struct {
	Flags                 int64
	X, Y                  int32
	Width, Height         int32
	MinWidth, MinHeight   int32
	MaxWidth, MaxHeight   int32
	WidthInc, HeightInc   int32
	MinAspect, MaxAspect  [2]int32
	BaseWidth, BaseHeight int32
	WinGravity            int32
}

var (
	x11lib uintptr
	gllib  uintptr

	xOpenDisplay           func(*byte) uintptr
	xDefaultScreen         func(uintptr) int32
	xRootWindow            func(uintptr, int32) uintptr
	xCreateColormap        func(uintptr, uintptr, uintptr, int32) uintptr
	xFreeColormap          func(uintptr, uintptr) int32
	xCreateWindow          func(uintptr, uintptr, int32, int32, uint32, uint32, uint32, int32, uint32, uintptr, uint64, unsafe.Pointer) uintptr
	xMapWindow             func(uintptr, uintptr) int32
	xUnmapWindow           func(uintptr, uintptr) int32
	xStoreName             func(uintptr, uintptr, *byte) int32
	xInternAtom            func(uintptr, *byte, int32) uintptr
	xSetWMProtocols        func(uintptr, uintptr, *uintptr, int32) int32
	xSetWMNormalHints      func(uintptr, uintptr, *xsizeHints)
	xResizeWindow          func(uintptr, uintptr, uint32, uint32) int32
	xSendEvent             func(uintptr, uintptr, int32, int64, unsafe.Pointer) int32
	xSelectInput           func(uintptr, uintptr, int64)
	xPending               func(uintptr) int32
	xNextEvent             func(uintptr, unsafe.Pointer)
	xLookupKeysym          func(unsafe.Pointer, int32) uint64
	xFlush                 func(uintptr) int32
	xFree                  func(unsafe.Pointer) int32
	xGetGeometry           func(uintptr, uintptr, *uintptr, *int32, *int32, *uint32, *uint32, *uint32, *uint32) int32
	xDestroyWindow         func(uintptr, uintptr) int32
	xCloseDisplay          func(uintptr) int32
	xDisplayWidth          func(uintptr, int32) int32
	xDisplayWidthMM        func(uintptr, int32) int32
	xResourceManagerString func(uintptr) *byte
	xkbSetDetectableRepeat func(uintptr, int32, *int32) int32

	glxChooseVisual          func(uintptr, int32, *int32) *XVisualInfo
	glxChooseFBConfig        func(uintptr, int32, *int32, *int32) *uintptr
	glxGetVisualFromFBConfig func(uintptr, uintptr) *XVisualInfo
	glxCreateContext         func(uintptr, *XVisualInfo, uintptr, int32) uintptr
	glxMakeCurrent           func(uintptr, uintptr, uintptr) int32
	glxSwapBuffers           func(uintptr, uintptr)
	glxDestroyContext        func(uintptr, uintptr)
	glxGetProcAddressARB     func(string) uintptr
)

type x11Window struct {
	cfg      Config
	display  uintptr
	window   uintptr
	colormap uintptr
	ctx      uintptr
	wmDelete uintptr
	running  bool
	scale    float32
	width    int
	height   int
}

func newX11(cfg Config) (Window, error) {
	log := cfg.logger()

	runtime.LockOSThread()
	if err := ensureLibs(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	dpy := xOpenDisplay(nil)
	if dpy == 0 {
		runtime.UnlockOSThread()
		return nil, errors.New("XOpenDisplay failed")
	}

	screen := xDefaultScreen(dpy)
	root := xRootWindow(dpy, screen)

	var fbconfig uintptr
	var visual *XVisualInfo
	if cfg.CoreProfile {
		fbconfig, visual = chooseFBConfig(dpy, screen)
		if visual == nil {
			log.Warn("no GLX framebuffer config, falling back to a legacy visual")
		}
	}
	if visual == nil {
		attrs := []int32{glxRGBA, glxDoubleBuffer, glxDepthSize, 24, glxNone}
		visual = glxChooseVisual(dpy, screen, &attrs[0])
	}
	if visual == nil {
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("glXChooseVisual failed")
	}

	cmap := xCreateColormap(dpy, root, visual.Visual, 0)

	var swa xSetWindowAttributes
	swa.Colormap = cmap
	swa.EventMask = exposureMask | structureNotifyMask | keyPressMask | keyReleaseMask | buttonPressMask | buttonReleaseMask | pointerMotionMask

	const (
		cwColormap    = 1 << 13
		cwEventMask   = 1 << 11
		cwBorderPixel = 1 << 3
	)

	win := xCreateWindow(
		dpy, root,
		0, 0,
		uint32(cfg.Width), uint32(cfg.Height),
		0,
		visual.Depth,
		inputOutput,
		visual.Visual,
		cwBorderPixel|cwColormap|cwEventMask,
		unsafe.Pointer(&swa),
	)
	if win == 0 {
		xFreeColormap(dpy, cmap)
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("XCreateWindow failed")
	}
	xSelectInput(dpy, win, swa.EventMask)

	wmDelete := xInternAtom(dpy, cString("WM_DELETE_WINDOW"), 0)
	xSetWMProtocols(dpy, win, &wmDelete, 1)

	if xkbSetDetectableRepeat != nil {
		// Held keys then repeat as presses only, without synthetic releases.
		xkbSetDetectableRepeat(dpy, 1, nil)
	}

	ctx := createGLXContext(dpy, visual, fbconfig, cfg)
	if ctx == 0 {
		xDestroyWindow(dpy, win)
		xFreeColormap(dpy, cmap)
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("glXCreateContext failed")
	}
	if glxMakeCurrent(dpy, win, ctx) == 0 {
		glxDestroyContext(dpy, ctx)
		xDestroyWindow(dpy, win)
		xFreeColormap(dpy, cmap)
		xCloseDisplay(dpy)
		runtime.UnlockOSThread()
		return nil, errors.New("glXMakeCurrent failed")
	}

	w := &x11Window{
		cfg:      cfg,
		display:  dpy,
		window:   win,
		colormap: cmap,
		ctx:      ctx,
		wmDelete: wmDelete,
		running:  true,
		scale:    calculateScale(dpy, screen),
		width:    cfg.Width,
		height:   cfg.Height,
	}
	w.SetTitle(cfg.Title)
	w.SetResizable(cfg.Resizable)
	w.SetVisible(cfg.Visible)
	if cfg.Fullscreen {
		w.SetFullscreen(true)
	}

	log.Info("x11 window ready", "scale", w.scale, "core", cfg.CoreProfile && fbconfig != 0)
	return w, nil
}

func chooseFBConfig(dpy uintptr, screen int32) (uintptr, *XVisualInfo) {
	if glxChooseFBConfig == nil || glxGetVisualFromFBConfig == nil {
		return 0, nil
	}
	attrs := []int32{
		glxXRenderable, 1,
		glxDrawableType, glxWindowBit,
		glxRenderType, glxRGBABit,
		glxRedSize, 8,
		glxGreenSize, 8,
		glxBlueSize, 8,
		glxAlphaSize, 8,
		glxDepthSize, 24,
		glxStencilSize, 8,
		glxDoubleBuffer, 1,
		glxNone,
	}
	var count int32
	configs := glxChooseFBConfig(dpy, screen, &attrs[0], &count)
	if configs == nil || count == 0 {
		return 0, nil
	}
	defer xFree(unsafe.Pointer(configs))
	fb := *configs
	return fb, glxGetVisualFromFBConfig(dpy, fb)
}

func createGLXContext(dpy uintptr, visual *XVisualInfo, fbconfig uintptr, cfg Config) uintptr {
	if fbconfig != 0 && glxGetProcAddressARB != nil {
		if proc := glxGetProcAddressARB("glXCreateContextAttribsARB"); proc != 0 {
			var createContextAttribs func(uintptr, uintptr, uintptr, int32, *int32) uintptr
			purego.RegisterFunc(&createContextAttribs, proc)
			attrs := []int32{
				glxContextMajorVersion, int32(cfg.GLMajor),
				glxContextMinorVersion, int32(cfg.GLMinor),
				glxContextProfileMask, glxContextCoreBit,
				glxNone,
			}
			if ctx := createContextAttribs(dpy, fbconfig, 0, 1, &attrs[0]); ctx != 0 {
				return ctx
			}
			cfg.logger().Warn("glXCreateContextAttribsARB failed, using a legacy context",
				"major", cfg.GLMajor, "minor", cfg.GLMinor)
		}
	}
	return glxCreateContext(dpy, visual, 0, 1)
}

func (w *x11Window) GL() (gl.OpenGL, error) {
	resolve, err := gl.SystemResolver()
	if err != nil {
		return nil, err
	}
	return gl.Load(resolve)
}

func (w *x11Window) Close() {
	if w.ctx != 0 {
		glxMakeCurrent(w.display, 0, 0)
		glxDestroyContext(w.display, w.ctx)
		w.ctx = 0
	}
	if w.window != 0 {
		xDestroyWindow(w.display, w.window)
		w.window = 0
	}
	if w.colormap != 0 {
		xFreeColormap(w.display, w.colormap)
		w.colormap = 0
	}
	if w.display != 0 {
		xCloseDisplay(w.display)
		w.display = 0
	}
	w.running = false
	runtime.UnlockOSThread()
}

func (w *x11Window) PollEvents(dst []input.Event) []input.Event {
	if !w.running {
		return dst
	}

	for xPending(w.display) > 0 {
		var ev [192]byte
		xNextEvent(w.display, unsafe.Pointer(&ev[0]))
		etype := *(*int32)(unsafe.Pointer(&ev[0]))
		switch etype {
		case keyPress, keyRelease:
			ie := (*xinputEvent)(unsafe.Pointer(&ev[0]))
			key := translateKeysym(xLookupKeysym(unsafe.Pointer(&ev[0]), 0))
			t := input.EventKeyPressed
			if etype == keyRelease {
				t = input.EventKeyReleased
			}
			dst = append(dst, input.Event{Type: t, Key: key, Mods: translateX11State(ie.State)})
		case buttonPress, buttonRelease:
			ie := (*xinputEvent)(unsafe.Pointer(&ev[0]))
			button, wheel, isButton := translateX11Button(ie.Detail)
			if !isButton {
				if etype == buttonPress {
					dst = append(dst, input.Event{Type: input.EventMouseWheel, X: wheel[0], Y: wheel[1]})
				}
				continue
			}
			t := input.EventMouseButtonPressed
			if etype == buttonRelease {
				t = input.EventMouseButtonReleased
			}
			dst = append(dst, input.Event{
				Type:   t,
				Button: button,
				Mods:   translateX11State(ie.State),
				X:      float32(ie.X),
				Y:      float32(ie.Y),
			})
		case motionNotify:
			ie := (*xinputEvent)(unsafe.Pointer(&ev[0]))
			dst = append(dst, input.Event{Type: input.EventMouseMoved, X: float32(ie.X), Y: float32(ie.Y)})
		case configureNotify:
			ce := (*xconfigureEvent)(unsafe.Pointer(&ev[0]))
			if int(ce.Width) != w.width || int(ce.Height) != w.height {
				w.width, w.height = int(ce.Width), int(ce.Height)
				dst = append(dst, input.Event{Type: input.EventWindowResized, Width: w.width, Height: w.height})
			}
		case clientMessage:
			cm := (*xclientMessage)(unsafe.Pointer(&ev[0]))
			if cm.Format == 32 && cm.Data[0] == uint64(w.wmDelete) {
				dst = append(dst, input.WindowClose())
			}
		case destroyNotify:
			w.running = false
			dst = append(dst, input.WindowClose())
		}
	}
	return dst
}

func (w *x11Window) Swap() {
	if w.display != 0 && w.window != 0 {
		glxSwapBuffers(w.display, w.window)
	}
}

func (w *x11Window) BackingSize() (int, int) {
	var root uintptr
	var x, y int32
	var width, height uint32
	var border, depth uint32
	if xGetGeometry(w.display, w.window, &root, &x, &y, &width, &height, &border, &depth) == 0 {
		return 0, 0
	}
	return int(width), int(height)
}

func (w *x11Window) Scale() float32 {
	return w.scale
}

func (w *x11Window) SetTitle(title string) {
	w.cfg.Title = title
	xStoreName(w.display, w.window, cString(title))
	xFlush(w.display)
}

func (w *x11Window) SetSize(width, height int) {
	w.cfg.Width, w.cfg.Height = width, height
	xResizeWindow(w.display, w.window, uint32(width), uint32(height))
	if !w.cfg.Resizable {
		w.SetResizable(false)
	}
	xFlush(w.display)
}

func (w *x11Window) SetVisible(visible bool) {
	w.cfg.Visible = visible
	if visible {
		xMapWindow(w.display, w.window)
	} else {
		xUnmapWindow(w.display, w.window)
	}
	xFlush(w.display)
}

// SetResizable pins the minimum and maximum size hints to the current size
// when the window must not be resized.
func (w *x11Window) SetResizable(resizable bool) {
	w.cfg.Resizable = resizable
	var hints xsizeHints
	if !resizable {
		hints.Flags = pMinSize | pMaxSize
		hints.MinWidth, hints.MaxWidth = int32(w.cfg.Width), int32(w.cfg.Width)
		hints.MinHeight, hints.MaxHeight = int32(w.cfg.Height), int32(w.cfg.Height)
	}
	xSetWMNormalHints(w.display, w.window, &hints)
	xFlush(w.display)
}

// SetFullscreen asks the window manager through _NET_WM_STATE.
func (w *x11Window) SetFullscreen(fullscreen bool) {
	w.cfg.Fullscreen = fullscreen
	action := uint64(netWMStateRemove)
	if fullscreen {
		action = netWMStateAdd
	}
	ev := xclientMessage{
		Type:        clientMessage,
		SendEvent:   1,
		Display:     w.display,
		Window:      w.window,
		MessageType: xInternAtom(w.display, cString("_NET_WM_STATE"), 0),
		Format:      32,
		Data: [5]uint64{
			action,
			uint64(xInternAtom(w.display, cString("_NET_WM_STATE_FULLSCREEN"), 0)),
			0,
			1,
		},
	}
	var full [192]byte
	copy(full[:], unsafe.Slice((*byte)(unsafe.Pointer(&ev)), unsafe.Sizeof(ev)))
	root := xRootWindow(w.display, xDefaultScreen(w.display))
	xSendEvent(w.display, root, 0, substructureNotifyMask|substructureRedirectMsk, unsafe.Pointer(&full[0]))
	xFlush(w.display)
}

// calculateScale derives the display scale from, in order: GTK_SCALE,
// GDK_SCALE, QT_SCALE_FACTOR, Xft.dpi, and the physical screen size.
func calculateScale(dpy uintptr, screen int32) float32 {
	for _, env := range []string{"GTK_SCALE", "GDK_SCALE", "QT_SCALE_FACTOR"} {
		if scale := getEnvScale(env); scale > 0 {
			return roundScale(scale)
		}
	}

	if xResourceManagerString != nil {
		if rm := xResourceManagerString(dpy); rm != nil {
			if dpi := parseXftDPI(gostring(rm)); dpi > 0 {
				return roundScale(dpi / 96.0)
			}
		}
	}

	widthPx := xDisplayWidth(dpy, screen)
	widthMM := xDisplayWidthMM(dpy, screen)
	if widthMM > 0 && widthPx > 0 {
		dpi := (float32(widthPx) / float32(widthMM)) * 25.4
		if dpi >= 72 && dpi <= 300 {
			return roundScale(dpi / 96.0)
		}
	}
	return 1.0
}

// parseXftDPI extracts the Xft.dpi value from an X resource manager string.
func parseXftDPI(rm string) float32 {
	for _, line := range strings.Split(rm, "\n") {
		name, value, ok := strings.Cut(line, ":")
		if !ok || strings.TrimSpace(name) != "Xft.dpi" {
			continue
		}
		dpi, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
		if err != nil || dpi <= 0 {
			return 0
		}
		return float32(dpi)
	}
	return 0
}

// roundScale snaps to common scale factors when within 0.1 of one.
func roundScale(scale float32) float32 {
	best := float32(1.0)
	minDiff := float32(1000.0)
	for _, cs := range []float32{0.75, 1.0, 1.25, 1.5, 1.75, 2.0, 2.5, 3.0, 4.0} {
		diff := scale - cs
		if diff < 0 {
			diff = -diff
		}
		if diff < minDiff {
			minDiff, best = diff, cs
		}
	}
	if minDiff < 0.1 {
		return best
	}
	return min(max(scale, 0.5), 4.0)
}

func getEnvScale(name string) float32 {
	val := os.Getenv(name)
	if val == "" {
		return 0
	}
	scale, err := strconv.ParseFloat(val, 32)
	if err != nil || scale <= 0 {
		return 0
	}
	return float32(scale)
}

func gostring(ptr *byte) string {
	if ptr == nil {
		return ""
	}
	var bytes []byte
	for p := ptr; *p != 0; p = (*byte)(unsafe.Pointer(uintptr(unsafe.Pointer(p)) + 1)) {
		bytes = append(bytes, *p)
	}
	return string(bytes)
}

type xSetWindowAttributes struct {
	BackgroundPixmap uintptr
	BackgroundPixel  uint64
	BorderPixmap     uint64
	BorderPixel      uint64
	BitGravity       int32
	WinGravity       int32
	BackingStore     int32
	BackingPlanes    uint64
	BackingPixel     uint64
	SaveUnder        int32
	EventMask        int64
	DoNotPropagate   int64
	OverrideRedirect int32
	Colormap         uintptr
	Cursor           uintptr
}

func ensureLibs() error {
	var err error
	if x11lib == 0 {
		x11lib, err = purego.Dlopen("libX11.so.6", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return fmt.Errorf("load libX11: %w", err)
		}
		registerX11()
	}
	if gllib == 0 {
		gllib, err = purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return fmt.Errorf("load libGL: %w", err)
		}
		registerGLX()
	}
	return nil
}

// registerOptional binds fn only when the library exports name.
func registerOptional(fn any, lib uintptr, name string) {
	if _, err := purego.Dlsym(lib, name); err == nil {
		purego.RegisterLibFunc(fn, lib, name)
	}
}

func registerX11() {
	purego.RegisterLibFunc(&xOpenDisplay, x11lib, "XOpenDisplay")
	purego.RegisterLibFunc(&xDefaultScreen, x11lib, "XDefaultScreen")
	purego.RegisterLibFunc(&xRootWindow, x11lib, "XRootWindow")
	purego.RegisterLibFunc(&xCreateColormap, x11lib, "XCreateColormap")
	purego.RegisterLibFunc(&xFreeColormap, x11lib, "XFreeColormap")
	purego.RegisterLibFunc(&xCreateWindow, x11lib, "XCreateWindow")
	purego.RegisterLibFunc(&xMapWindow, x11lib, "XMapWindow")
	purego.RegisterLibFunc(&xUnmapWindow, x11lib, "XUnmapWindow")
	purego.RegisterLibFunc(&xStoreName, x11lib, "XStoreName")
	purego.RegisterLibFunc(&xInternAtom, x11lib, "XInternAtom")
	purego.RegisterLibFunc(&xSetWMProtocols, x11lib, "XSetWMProtocols")
	purego.RegisterLibFunc(&xSetWMNormalHints, x11lib, "XSetWMNormalHints")
	purego.RegisterLibFunc(&xResizeWindow, x11lib, "XResizeWindow")
	purego.RegisterLibFunc(&xSendEvent, x11lib, "XSendEvent")
	purego.RegisterLibFunc(&xSelectInput, x11lib, "XSelectInput")
	purego.RegisterLibFunc(&xPending, x11lib, "XPending")
	purego.RegisterLibFunc(&xNextEvent, x11lib, "XNextEvent")
	purego.RegisterLibFunc(&xLookupKeysym, x11lib, "XLookupKeysym")
	purego.RegisterLibFunc(&xFlush, x11lib, "XFlush")
	purego.RegisterLibFunc(&xFree, x11lib, "XFree")
	purego.RegisterLibFunc(&xGetGeometry, x11lib, "XGetGeometry")
	purego.RegisterLibFunc(&xDestroyWindow, x11lib, "XDestroyWindow")
	purego.RegisterLibFunc(&xCloseDisplay, x11lib, "XCloseDisplay")
	purego.RegisterLibFunc(&xDisplayWidth, x11lib, "XDisplayWidth")
	purego.RegisterLibFunc(&xDisplayWidthMM, x11lib, "XDisplayWidthMM")
	registerOptional(&xResourceManagerString, x11lib, "XResourceManagerString")
	registerOptional(&xkbSetDetectableRepeat, x11lib, "XkbSetDetectableAutoRepeat")
}

func registerGLX() {
	purego.RegisterLibFunc(&glxChooseVisual, gllib, "glXChooseVisual")
	purego.RegisterLibFunc(&glxCreateContext, gllib, "glXCreateContext")
	purego.RegisterLibFunc(&glxMakeCurrent, gllib, "glXMakeCurrent")
	purego.RegisterLibFunc(&glxSwapBuffers, gllib, "glXSwapBuffers")
	purego.RegisterLibFunc(&glxDestroyContext, gllib, "glXDestroyContext")
	registerOptional(&glxChooseFBConfig, gllib, "glXChooseFBConfig")
	registerOptional(&glxGetVisualFromFBConfig, gllib, "glXGetVisualFromFBConfig")
	registerOptional(&glxGetProcAddressARB, gllib, "glXGetProcAddressARB")
}

func cString(s string) *byte {
	b := append([]byte(s), 0)
	return &b[0]
}
