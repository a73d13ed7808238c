package window

import "github.com/tinyrange/noe/internal/input"

// X11 keysyms (X11/keysymdef.h) for the non-printable keys.
const (
	xkBackSpace   = 0xff08
	xkTab         = 0xff09
	xkReturn      = 0xff0d
	xkPause       = 0xff13
	xkScrollLock  = 0xff14
	xkEscape      = 0xff1b
	xkHome        = 0xff50
	xkLeft        = 0xff51
	xkUp          = 0xff52
	xkRight       = 0xff53
	xkDown        = 0xff54
	xkPageUp      = 0xff55
	xkPageDown    = 0xff56
	xkEnd         = 0xff57
	xkPrint       = 0xff61
	xkInsert      = 0xff63
	xkMenu        = 0xff67
	xkNumLock     = 0xff7f
	xkKPEnter     = 0xff8d
	xkKPMultiply  = 0xffaa
	xkKPAdd       = 0xffab
	xkKPSubtract  = 0xffad
	xkKPDecimal   = 0xffae
	xkKPDivide    = 0xffaf
	xkKP0         = 0xffb0
	xkKP9         = 0xffb9
	xkKPEqual     = 0xffbd
	xkF1          = 0xffbe
	xkF25         = 0xffd6
	xkShiftL      = 0xffe1
	xkShiftR      = 0xffe2
	xkControlL    = 0xffe3
	xkControlR    = 0xffe4
	xkCapsLock    = 0xffe5
	xkAltL        = 0xffe9
	xkAltR        = 0xffea
	xkSuperL      = 0xffeb
	xkSuperR      = 0xffec
	xkDelete      = 0xffff
	xkLessGreater = 0x3c // '<' on ISO keyboards
)

var x11Keys = map[uint64]input.Key{
	xkBackSpace:   input.KeyBackspace,
	xkTab:         input.KeyTab,
	xkReturn:      input.KeyEnter,
	xkPause:       input.KeyPause,
	xkScrollLock:  input.KeyScrollLock,
	xkEscape:      input.KeyEscape,
	xkHome:        input.KeyHome,
	xkLeft:        input.KeyLeft,
	xkUp:          input.KeyUp,
	xkRight:       input.KeyRight,
	xkDown:        input.KeyDown,
	xkPageUp:      input.KeyPageUp,
	xkPageDown:    input.KeyPageDown,
	xkEnd:         input.KeyEnd,
	xkPrint:       input.KeyPrintScreen,
	xkInsert:      input.KeyInsert,
	xkMenu:        input.KeyMenu,
	xkNumLock:     input.KeyNumLock,
	xkKPEnter:     input.KeyKPEnter,
	xkKPMultiply:  input.KeyKPMultiply,
	xkKPAdd:       input.KeyKPAdd,
	xkKPSubtract:  input.KeyKPSubtract,
	xkKPDecimal:   input.KeyKPDecimal,
	xkKPDivide:    input.KeyKPDivide,
	xkKPEqual:     input.KeyKPEqual,
	xkShiftL:      input.KeyLeftShift,
	xkShiftR:      input.KeyRightShift,
	xkControlL:    input.KeyLeftControl,
	xkControlR:    input.KeyRightControl,
	xkCapsLock:    input.KeyCapsLock,
	xkAltL:        input.KeyLeftAlt,
	xkAltR:        input.KeyRightAlt,
	xkSuperL:      input.KeyLeftSuper,
	xkSuperR:      input.KeyRightSuper,
	xkDelete:      input.KeyDelete,
	xkLessGreater: input.KeyWorld1,
}

// translateKeysym maps an unshifted X11 keysym to a Key, or KeyInvalid.
func translateKeysym(sym uint64) input.Key {
	switch {
	case sym >= 'a' && sym <= 'z':
		return input.Key(sym - 'a' + 'A')
	case sym >= 'A' && sym <= 'Z', sym >= '0' && sym <= '9':
		return input.Key(sym)
	case sym >= xkKP0 && sym <= xkKP9:
		return input.KeyKP0 + input.Key(sym-xkKP0)
	case sym >= xkF1 && sym <= xkF25:
		return input.KeyF1 + input.Key(sym-xkF1)
	}
	switch sym {
	case ' ', '\'', ',', '-', '.', '/', ';', '=', '[', '\\', ']', '`':
		return input.Key(sym)
	}
	return x11Keys[sym]
}

// X11 modifier state bits.
const (
	xShiftMask   = 1 << 0
	xLockMask    = 1 << 1
	xControlMask = 1 << 2
	xMod1Mask    = 1 << 3
	xMod2Mask    = 1 << 4
	xMod4Mask    = 1 << 6
)

func translateX11State(state uint32) input.Mods {
	var m input.Mods
	if state&xShiftMask != 0 {
		m |= input.ModShift
	}
	if state&xLockMask != 0 {
		m |= input.ModCapsLock
	}
	if state&xControlMask != 0 {
		m |= input.ModControl
	}
	if state&xMod1Mask != 0 {
		m |= input.ModAlt
	}
	if state&xMod2Mask != 0 {
		m |= input.ModNumLock
	}
	if state&xMod4Mask != 0 {
		m |= input.ModSuper
	}
	return m
}

// translateX11Button maps an X11 pointer button. Buttons 4 to 7 are scroll
// steps and are reported through the second result as (dx, dy).
func translateX11Button(b uint32) (input.Button, [2]float32, bool) {
	switch b {
	case 1:
		return input.ButtonLeft, [2]float32{}, true
	case 2:
		return input.ButtonMiddle, [2]float32{}, true
	case 3:
		return input.ButtonRight, [2]float32{}, true
	case 4:
		return 0, [2]float32{0, 1}, false
	case 5:
		return 0, [2]float32{0, -1}, false
	case 6:
		return 0, [2]float32{1, 0}, false
	case 7:
		return 0, [2]float32{-1, 0}, false
	case 8:
		return input.ButtonBack, [2]float32{}, true
	case 9:
		return input.ButtonForward, [2]float32{}, true
	}
	return input.Button(-1), [2]float32{}, true
}
