//go:build windows

package gl

import (
	"syscall"
	"unsafe"
)

var (
	opengl32 = syscall.NewLazyDLL("opengl32.dll")

	procWglGetProcAddress = opengl32.NewProc("wglGetProcAddress")
)

// SystemResolver resolves entry points through wglGetProcAddress, falling back
// to the exports of opengl32.dll for the GL 1.1 functions WGL refuses to return.
// A WGL context must be current before the resolver is called.
func SystemResolver() (Resolver, error) {
	if err := opengl32.Load(); err != nil {
		return nil, err
	}
	if err := procWglGetProcAddress.Find(); err != nil {
		return nil, err
	}

	return func(name string) uintptr {
		cname, err := syscall.BytePtrFromString(name)
		if err != nil {
			return 0
		}
		addr, _, _ := procWglGetProcAddress.Call(uintptr(unsafe.Pointer(cname)))
		// wglGetProcAddress signals failure with 0, 1, 2, 3 or -1.
		switch addr {
		case 0, 1, 2, 3, ^uintptr(0):
		default:
			return addr
		}
		proc := opengl32.NewProc(name)
		if err := proc.Find(); err != nil {
			return 0
		}
		return proc.Addr()
	}, nil
}
