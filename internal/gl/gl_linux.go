//go:build linux

package gl

import (
	"github.com/ebitengine/purego"
)

var (
	libGL                uintptr
	glxGetProcAddressARB func(string) uintptr
)

// SystemResolver resolves entry points from libGL, falling back to
// glXGetProcAddressARB for functions the library does not export directly.
// A GLX context must be current before the returned functions are called.
func SystemResolver() (Resolver, error) {
	if libGL == 0 {
		handle, err := purego.Dlopen("libGL.so.1", purego.RTLD_LAZY|purego.RTLD_GLOBAL)
		if err != nil {
			return nil, err
		}
		libGL = handle
		if _, err := purego.Dlsym(libGL, "glXGetProcAddressARB"); err == nil {
			purego.RegisterLibFunc(&glxGetProcAddressARB, libGL, "glXGetProcAddressARB")
		}
	}

	return func(name string) uintptr {
		if addr, err := purego.Dlsym(libGL, name); err == nil && addr != 0 {
			return addr
		}
		if glxGetProcAddressARB != nil {
			return glxGetProcAddressARB(name)
		}
		return 0
	}, nil
}
