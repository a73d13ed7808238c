//go:build windows

package window

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"syscall"
	"unsafe"

	"github.com/tinyrange/noe/internal/gl"
	"github.com/tinyrange/noe/internal/input"
)

func init() {
	Register("win32", newWin32)
}

const (
	csOwnDC   = 0x0020
	csHRedraw = 0x0002
	csVRedraw = 0x0001

	wsOverlappedWindow = 0x00CF0000
	wsThickFrame       = 0x00040000
	wsMaximizeBox      = 0x00010000
	wsPopup            = 0x80000000
	wsVisible          = 0x10000000
	wsClipSiblings     = 0x04000000
	wsClipChildren     = 0x02000000
	swHide             = 0
	swShow             = 5

	swpNoZOrder     = 0x0004
	swpNoMove       = 0x0002
	swpFrameChanged = 0x0020
	swpNoActivate   = 0x0010

	gwlStyle = -16

	smCxScreen = 0
	smCyScreen = 1

	logPixelsX = 88

	wmClose   = 0x0010
	wmDestroy = 0x0002
	pmRemove  = 0x0001

	vkLShift   = 0xA0
	vkRShift   = 0xA1
	vkLControl = 0xA2
	vkRControl = 0xA3
	vkLMenu    = 0xA4
	vkRMenu    = 0xA5
	vkLWin     = 0x5B
	vkRWin     = 0x5C
	vkCapital  = 0x14
	vkNumLock  = 0x90

	pfdTypeRGBA      = 0
	pfdMainPlane     = 0
	pfdDrawToWindow  = 0x00000004
	pfdSupportOpenGL = 0x00000020
	pfdDoubleBuffer  = 0x00000001

	wglContextMajorVersion = 0x2091
	wglContextMinorVersion = 0x2092
	wglContextProfileMask  = 0x9126
	wglContextCoreBit      = 0x00000001

	cwUseDefault = 0x80000000

	errorClassAlreadyExists = 1410
)

type (
	hwnd  = syscall.Handle
	hdc   = syscall.Handle
	hglrc = syscall.Handle
)

type wndClassEx struct {
	cbSize        uint32
	style         uint32
	lpfnWndProc   uintptr
	cbClsExtra    int32
	cbWndExtra    int32
	hInstance     syscall.Handle
	hIcon         syscall.Handle
	hCursor       syscall.Handle
	hbrBackground syscall.Handle
	lpszMenuName  *uint16
	lpszClassName *uint16
	hIconSm       syscall.Handle
}

type msg struct {
	hwnd     hwnd
	message  uint32
	wParam   uintptr
	lParam   uintptr
	time     uint32
	pt       point
	lPrivate uint32
}

type point struct {
	x int32
	y int32
}

type rect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

// Mirrors PIXELFORMATDESCRIPTOR (must be 40 bytes).
type pixelFormatDescriptor struct {
	nSize           uint16
	nVersion        uint16
	dwFlags         uint32
	iPixelType      byte
	cColorBits      byte
	cRedBits        byte
	cRedShift       byte
	cGreenBits      byte
	cGreenShift     byte
	cBlueBits       byte
	cBlueShift      byte
	cAlphaBits      byte
	cAlphaShift     byte
	cAccumBits      byte
	cAccumRedBits   byte
	cAccumGreenBits byte
	cAccumBlueBits  byte
	cAccumAlphaBits byte
	cDepthBits      byte
	cStencilBits    byte
	cAuxBuffers     byte
	iLayerType      byte
	bReserved       byte
	dwLayerMask     uint32
	dwVisibleMask   uint32
	dwDamageMask    uint32
}

var (
	user32   = syscall.NewLazyDLL("user32.dll")
	gdi32    = syscall.NewLazyDLL("gdi32.dll")
	opengl32 = syscall.NewLazyDLL("opengl32.dll")
	kernel32 = syscall.NewLazyDLL("kernel32.dll")

	procRegisterClassEx   = user32.NewProc("RegisterClassExW")
	procCreateWindowEx    = user32.NewProc("CreateWindowExW")
	procDefWindowProc     = user32.NewProc("DefWindowProcW")
	procDestroyWindow     = user32.NewProc("DestroyWindow")
	procShowWindow        = user32.NewProc("ShowWindow")
	procGetClientRect     = user32.NewProc("GetClientRect")
	procGetWindowRect     = user32.NewProc("GetWindowRect")
	procAdjustWindowRect  = user32.NewProc("AdjustWindowRect")
	procPeekMessage       = user32.NewProc("PeekMessageW")
	procTranslateMessage  = user32.NewProc("TranslateMessage")
	procDispatchMessage   = user32.NewProc("DispatchMessageW")
	procGetDC             = user32.NewProc("GetDC")
	procReleaseDC         = user32.NewProc("ReleaseDC")
	procUpdateWindow      = user32.NewProc("UpdateWindow")
	procLoadCursor        = user32.NewProc("LoadCursorW")
	procGetKeyState       = user32.NewProc("GetKeyState")
	procSetWindowText     = user32.NewProc("SetWindowTextW")
	procSetWindowPos      = user32.NewProc("SetWindowPos")
	procSetWindowLongPtr  = user32.NewProc("SetWindowLongPtrW")
	procGetSystemMetrics  = user32.NewProc("GetSystemMetrics")
	procGetDpiForWindow   = user32.NewProc("GetDpiForWindow")
	procChoosePixelFormat = gdi32.NewProc("ChoosePixelFormat")

	procDescribePixelFormat = gdi32.NewProc("DescribePixelFormat")
	procSetPixelFormat      = gdi32.NewProc("SetPixelFormat")
	procSwapBuffers         = gdi32.NewProc("SwapBuffers")
	procGetDeviceCaps       = gdi32.NewProc("GetDeviceCaps")

	procWglCreateContext  = opengl32.NewProc("wglCreateContext")
	procWglMakeCurrent    = opengl32.NewProc("wglMakeCurrent")
	procWglDeleteContext  = opengl32.NewProc("wglDeleteContext")
	procWglGetProcAddress = opengl32.NewProc("wglGetProcAddress")

	procGetModuleHandle = kernel32.NewProc("GetModuleHandleW")
	procSetLastError    = kernel32.NewProc("SetLastError")
	procGetLastError    = kernel32.NewProc("GetLastError")
)

func validateProcs() error {
	procs := []*syscall.LazyProc{
		procRegisterClassEx,
		procCreateWindowEx,
		procGetDC,
		procReleaseDC,
		procDescribePixelFormat,
		procSetPixelFormat,
		procWglCreateContext,
		procWglMakeCurrent,
		procWglDeleteContext,
	}
	for _, p := range procs {
		if err := p.Find(); err != nil {
			return fmt.Errorf("missing procedure %q: %w", p.Name, err)
		}
	}
	return nil
}

var (
	// Unique per process so CS_OWNDC classes never collide.
	windowClassName = fmt.Sprintf("NoeWindow_%d", os.Getpid())
	windowClass     = syscall.StringToUTF16Ptr(windowClassName)

	// wndProc has no user pointer; only one window exists at a time.
	currentWin *winWindow
)

func lastError() syscall.Errno {
	e, _, _ := procGetLastError.Call()
	return syscall.Errno(e)
}

func clearLastError() {
	procSetLastError.Call(0)
}

func winErr(op string) error {
	e := lastError()
	if e == 0 {
		return fmt.Errorf("%s failed", op)
	}
	return fmt.Errorf("%s failed: %w", op, e)
}

type winWindow struct {
	cfg     Config
	hwnd    hwnd
	hdc     hdc
	ctx     hglrc
	running bool
	style   uint32

	// Window rectangle restored when leaving fullscreen.
	restore rect

	events input.Events
}

func newWin32(cfg Config) (Window, error) {
	runtime.LockOSThread()

	if err := validateProcs(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}
	if unsafe.Sizeof(pixelFormatDescriptor{}) != 40 {
		runtime.UnlockOSThread()
		return nil, fmt.Errorf(
			"PIXELFORMATDESCRIPTOR size mismatch: got %d, want 40",
			unsafe.Sizeof(pixelFormatDescriptor{}),
		)
	}

	if err := registerWindowClass(); err != nil {
		runtime.UnlockOSThread()
		return nil, err
	}

	w := &winWindow{cfg: cfg, running: true, style: windowStyle(cfg.Resizable)}
	currentWin = w

	hwd, dc, err := createWindow(cfg.Title, cfg.Width, cfg.Height, w.style)
	if err != nil {
		currentWin = nil
		runtime.UnlockOSThread()
		return nil, err
	}
	w.hwnd, w.hdc = hwd, dc

	if err := chooseAndSetPixelFormat(dc); err != nil {
		w.destroy()
		return nil, err
	}

	ctx, err := createGLContext(dc, cfg)
	if err != nil {
		w.destroy()
		return nil, err
	}
	w.ctx = ctx

	w.SetVisible(cfg.Visible)
	if cfg.Fullscreen {
		w.SetFullscreen(true)
	}

	cfg.logger().Info("win32 window ready", "scale", w.Scale())
	return w, nil
}

func windowStyle(resizable bool) uint32 {
	style := uint32(wsOverlappedWindow | wsClipSiblings | wsClipChildren)
	if !resizable {
		style &^= wsThickFrame | wsMaximizeBox
	}
	return style
}

func (w *winWindow) GL() (gl.OpenGL, error) {
	resolve, err := gl.SystemResolver()
	if err != nil {
		return nil, err
	}
	return gl.Load(resolve)
}

func (w *winWindow) Close() {
	w.destroy()
}

func (w *winWindow) destroy() {
	if w.ctx != 0 {
		procWglMakeCurrent.Call(uintptr(w.hdc), 0)
		procWglDeleteContext.Call(uintptr(w.ctx))
		w.ctx = 0
	}
	if w.hdc != 0 && w.hwnd != 0 {
		procReleaseDC.Call(uintptr(w.hwnd), uintptr(w.hdc))
		w.hdc = 0
	}
	if w.hwnd != 0 {
		procDestroyWindow.Call(uintptr(w.hwnd))
		w.hwnd = 0
	}
	if currentWin == w {
		currentWin = nil
	}
	w.running = false
	runtime.UnlockOSThread()
}

// PollEvents pumps the message queue. wndProc translates messages into the
// window's queue, which is then drained into dst.
func (w *winWindow) PollEvents(dst []input.Event) []input.Event {
	if !w.running {
		return w.events.PollEvents(dst)
	}

	var m msg
	for {
		ret, _, _ := procPeekMessage.Call(
			uintptr(unsafe.Pointer(&m)),
			0,
			0,
			0,
			pmRemove,
		)
		if ret == 0 {
			break
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessage.Call(uintptr(unsafe.Pointer(&m)))
	}
	return w.events.PollEvents(dst)
}

func (w *winWindow) Swap() {
	if w.hdc != 0 {
		procSwapBuffers.Call(uintptr(w.hdc))
	}
}

func (w *winWindow) BackingSize() (int, int) {
	var r rect
	procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r)))
	return int(r.right - r.left), int(r.bottom - r.top)
}

func (w *winWindow) Scale() float32 {
	if procGetDpiForWindow.Find() == nil && w.hwnd != 0 {
		if dpi, _, _ := procGetDpiForWindow.Call(uintptr(w.hwnd)); dpi != 0 {
			return float32(dpi) / 96
		}
	}
	if w.hdc != 0 {
		if dpi, _, _ := procGetDeviceCaps.Call(uintptr(w.hdc), logPixelsX); dpi != 0 {
			return float32(dpi) / 96
		}
	}
	return 1.0
}

func (w *winWindow) SetTitle(title string) {
	w.cfg.Title = title
	ptr, err := syscall.UTF16PtrFromString(title)
	if err != nil {
		return
	}
	procSetWindowText.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(ptr)))
}

// SetSize sets the client area size.
func (w *winWindow) SetSize(width, height int) {
	w.cfg.Width, w.cfg.Height = width, height
	r := rect{right: int32(width), bottom: int32(height)}
	procAdjustWindowRect.Call(uintptr(unsafe.Pointer(&r)), uintptr(w.style), 0)
	procSetWindowPos.Call(uintptr(w.hwnd), 0, 0, 0,
		uintptr(r.right-r.left), uintptr(r.bottom-r.top),
		swpNoZOrder|swpNoMove|swpNoActivate)
}

func (w *winWindow) SetVisible(visible bool) {
	w.cfg.Visible = visible
	if visible {
		procShowWindow.Call(uintptr(w.hwnd), swShow)
		procUpdateWindow.Call(uintptr(w.hwnd))
	} else {
		procShowWindow.Call(uintptr(w.hwnd), swHide)
	}
}

func (w *winWindow) SetResizable(resizable bool) {
	w.cfg.Resizable = resizable
	if w.cfg.Fullscreen {
		return
	}
	w.applyStyle(windowStyle(resizable))
}

func (w *winWindow) SetFullscreen(fullscreen bool) {
	if fullscreen == w.cfg.Fullscreen {
		return
	}
	w.cfg.Fullscreen = fullscreen
	if fullscreen {
		procGetWindowRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&w.restore)))
		w.applyStyle(wsPopup | wsClipSiblings | wsClipChildren)
		cx, _, _ := procGetSystemMetrics.Call(smCxScreen)
		cy, _, _ := procGetSystemMetrics.Call(smCyScreen)
		procSetWindowPos.Call(uintptr(w.hwnd), 0, 0, 0, cx, cy, swpNoZOrder|swpFrameChanged)
		return
	}
	w.applyStyle(windowStyle(w.cfg.Resizable))
	r := w.restore
	procSetWindowPos.Call(uintptr(w.hwnd), 0,
		uintptr(r.left), uintptr(r.top),
		uintptr(r.right-r.left), uintptr(r.bottom-r.top),
		swpNoZOrder|swpFrameChanged)
}

func (w *winWindow) applyStyle(style uint32) {
	w.style = style
	if w.cfg.Visible {
		style |= wsVisible
	}
	// GWL_STYLE is negative; pass it through as a two's complement uintptr.
	idx := int32(gwlStyle)
	procSetWindowLongPtr.Call(uintptr(w.hwnd), uintptr(idx), uintptr(style))
	procSetWindowPos.Call(uintptr(w.hwnd), 0, 0, 0, 0, 0,
		swpNoZOrder|swpNoMove|swpFrameChanged|0x0001 /* SWP_NOSIZE */)
}

// currentMods samples the keyboard state for the message being handled.
func currentMods() input.Mods {
	down := func(vk uintptr) bool {
		r, _, _ := procGetKeyState.Call(vk)
		return int16(r) < 0
	}
	toggled := func(vk uintptr) bool {
		r, _, _ := procGetKeyState.Call(vk)
		return r&1 != 0
	}
	var m input.Mods
	if down(vkLShift) || down(vkRShift) {
		m |= input.ModShift
	}
	if down(vkLControl) || down(vkRControl) {
		m |= input.ModControl
	}
	if down(vkLMenu) || down(vkRMenu) {
		m |= input.ModAlt
	}
	if down(vkLWin) || down(vkRWin) {
		m |= input.ModSuper
	}
	if toggled(vkCapital) {
		m |= input.ModCapsLock
	}
	if toggled(vkNumLock) {
		m |= input.ModNumLock
	}
	return m
}

func registerWindowClass() error {
	cb := syscall.NewCallback(wndProc)
	wc := wndClassEx{
		cbSize:        uint32(unsafe.Sizeof(wndClassEx{})),
		style:         csOwnDC | csHRedraw | csVRedraw,
		lpfnWndProc:   cb,
		hInstance:     moduleHandle(),
		hCursor:       loadCursor(),
		lpszClassName: windowClass,
	}

	clearLastError()
	ret, _, err := procRegisterClassEx.Call(uintptr(unsafe.Pointer(&wc)))
	if ret == 0 {
		if errno, ok := err.(syscall.Errno); ok && int(errno) == errorClassAlreadyExists {
			// A previous window in this process registered it already.
			return nil
		}
		return winErr("RegisterClassExW")
	}
	return nil
}

func createWindow(title string, width, height int, style uint32) (win hwnd, dc hdc, err error) {
	titlePtr, _ := syscall.UTF16PtrFromString(title)

	r := rect{right: int32(width), bottom: int32(height)}
	procAdjustWindowRect.Call(uintptr(unsafe.Pointer(&r)), uintptr(style), 0)

	clearLastError()
	ret, _, _ := procCreateWindowEx.Call(
		0,
		uintptr(unsafe.Pointer(windowClass)),
		uintptr(unsafe.Pointer(titlePtr)),
		uintptr(style),
		cwUseDefault,
		cwUseDefault,
		uintptr(r.right-r.left),
		uintptr(r.bottom-r.top),
		0,
		0,
		uintptr(moduleHandle()),
		0,
	)
	win = hwnd(ret)
	if win == 0 {
		return 0, 0, winErr("CreateWindowExW")
	}

	clearLastError()
	dcRet, _, _ := procGetDC.Call(uintptr(win))
	if dcRet == 0 {
		procDestroyWindow.Call(uintptr(win))
		return 0, 0, winErr("GetDC")
	}

	return win, hdc(dcRet), nil
}

func chooseAndSetPixelFormat(dc hdc) error {
	desired := pixelFormatDescriptor{
		nSize:        uint16(unsafe.Sizeof(pixelFormatDescriptor{})),
		nVersion:     1,
		dwFlags:      pfdDrawToWindow | pfdSupportOpenGL | pfdDoubleBuffer,
		iPixelType:   pfdTypeRGBA,
		cColorBits:   32,
		cAlphaBits:   8,
		cDepthBits:   24,
		cStencilBits: 8,
		iLayerType:   pfdMainPlane,
	}

	clearLastError()
	pf, _, _ := procChoosePixelFormat.Call(uintptr(dc), uintptr(unsafe.Pointer(&desired)))
	if pf == 0 {
		return winErr("ChoosePixelFormat")
	}

	var chosen pixelFormatDescriptor
	clearLastError()
	r, _, _ := procDescribePixelFormat.Call(
		uintptr(dc),
		pf,
		uintptr(unsafe.Sizeof(chosen)),
		uintptr(unsafe.Pointer(&chosen)),
	)
	if r == 0 {
		return winErr("DescribePixelFormat")
	}

	const requiredFlags = pfdDrawToWindow | pfdSupportOpenGL | pfdDoubleBuffer
	if chosen.dwFlags&requiredFlags != requiredFlags || chosen.iPixelType != pfdTypeRGBA {
		return errors.New("no double-buffered RGBA OpenGL pixel format")
	}

	clearLastError()
	ok, _, _ := procSetPixelFormat.Call(uintptr(dc), pf, uintptr(unsafe.Pointer(&chosen)))
	if ok == 0 {
		return fmt.Errorf("SetPixelFormat failed for index %d: %w", pf, winErr("SetPixelFormat"))
	}
	return nil
}

// createGLContext makes a legacy context current, then upgrades it to the
// requested core profile when wglCreateContextAttribsARB is available.
func createGLContext(dc hdc, cfg Config) (hglrc, error) {
	clearLastError()
	legacy, _, _ := procWglCreateContext.Call(uintptr(dc))
	if legacy == 0 {
		return 0, winErr("wglCreateContext")
	}

	clearLastError()
	if ret, _, _ := procWglMakeCurrent.Call(uintptr(dc), legacy); ret == 0 {
		procWglDeleteContext.Call(legacy)
		return 0, winErr("wglMakeCurrent")
	}

	if !cfg.CoreProfile {
		return hglrc(legacy), nil
	}

	name, _ := syscall.BytePtrFromString("wglCreateContextAttribsARB")
	addr, _, _ := procWglGetProcAddress.Call(uintptr(unsafe.Pointer(name)))
	if addr == 0 {
		cfg.logger().Warn("wglCreateContextAttribsARB unavailable, using a legacy context")
		return hglrc(legacy), nil
	}

	attrs := []int32{
		wglContextMajorVersion, int32(cfg.GLMajor),
		wglContextMinorVersion, int32(cfg.GLMinor),
		wglContextProfileMask, wglContextCoreBit,
		0,
	}
	core, _, _ := syscall.SyscallN(addr, uintptr(dc), 0, uintptr(unsafe.Pointer(&attrs[0])))
	if core == 0 {
		cfg.logger().Warn("core profile context creation failed, using a legacy context",
			"major", cfg.GLMajor, "minor", cfg.GLMinor)
		return hglrc(legacy), nil
	}

	procWglMakeCurrent.Call(uintptr(dc), 0)
	procWglDeleteContext.Call(legacy)
	if ret, _, _ := procWglMakeCurrent.Call(uintptr(dc), core); ret == 0 {
		procWglDeleteContext.Call(core)
		return 0, winErr("wglMakeCurrent(core)")
	}
	return hglrc(core), nil
}

func wndProc(hwnd, message, wParam, lParam uintptr) uintptr {
	current := currentWin
	if current == nil || current.hwnd != syscall.Handle(hwnd) {
		ret, _, _ := procDefWindowProc.Call(hwnd, message, wParam, lParam)
		return ret
	}

	switch message {
	case wmClose:
		// The application decides whether to close.
		current.events.Push(input.WindowClose())
		return 0
	case wmDestroy:
		current.running = false
		return 0
	}

	if ev, ok := translateWin32Message(uint32(message), wParam, lParam, currentMods()); ok {
		current.events.Push(ev)
	}
	ret, _, _ := procDefWindowProc.Call(hwnd, message, wParam, lParam)
	return ret
}

func loadCursor() syscall.Handle {
	const idcArrow = 32512
	clearLastError()
	ret, _, _ := procLoadCursor.Call(0, uintptr(idcArrow))
	return syscall.Handle(ret)
}

func moduleHandle() syscall.Handle {
	clearLastError()
	h, _, _ := procGetModuleHandle.Call(0)
	return syscall.Handle(h)
}
