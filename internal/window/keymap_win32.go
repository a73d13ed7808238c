package window

import "github.com/tinyrange/noe/internal/input"

// Window messages translated into input events.
const (
	wmSize          = 0x0005
	wmKeyDown       = 0x0100
	wmKeyUp         = 0x0101
	wmSysKeyDown    = 0x0104
	wmSysKeyUp      = 0x0105
	wmMouseMove     = 0x0200
	wmLButtonDown   = 0x0201
	wmLButtonUp     = 0x0202
	wmRButtonDown   = 0x0204
	wmRButtonUp     = 0x0205
	wmMButtonDown   = 0x0207
	wmMButtonUp     = 0x0208
	wmMouseWheel    = 0x020A
	wmXButtonDown   = 0x020B
	wmXButtonUp     = 0x020C
	wmMouseHWheel   = 0x020E
	wheelDelta      = 120
	sizeMinimized   = 1
	scanRightShift  = 0x36
	extendedKeyFlag = 1 << 24
)

// Virtual key codes that need more than a table lookup.
const (
	vkShift   = 0x10
	vkControl = 0x11
	vkMenu    = 0x12
	vkReturn  = 0x0D
)

var win32Keys = map[uintptr]input.Key{
	0x08: input.KeyBackspace,
	0x09: input.KeyTab,
	0x13: input.KeyPause,
	0x14: input.KeyCapsLock,
	0x1B: input.KeyEscape,
	0x20: input.KeySpace,
	0x21: input.KeyPageUp,
	0x22: input.KeyPageDown,
	0x23: input.KeyEnd,
	0x24: input.KeyHome,
	0x25: input.KeyLeft,
	0x26: input.KeyUp,
	0x27: input.KeyRight,
	0x28: input.KeyDown,
	0x2C: input.KeyPrintScreen,
	0x2D: input.KeyInsert,
	0x2E: input.KeyDelete,
	0x5B: input.KeyLeftSuper,
	0x5C: input.KeyRightSuper,
	0x5D: input.KeyMenu,
	0x6A: input.KeyKPMultiply,
	0x6B: input.KeyKPAdd,
	0x6D: input.KeyKPSubtract,
	0x6E: input.KeyKPDecimal,
	0x6F: input.KeyKPDivide,
	0x90: input.KeyNumLock,
	0x91: input.KeyScrollLock,
	0xA0: input.KeyLeftShift,
	0xA1: input.KeyRightShift,
	0xA2: input.KeyLeftControl,
	0xA3: input.KeyRightControl,
	0xA4: input.KeyLeftAlt,
	0xA5: input.KeyRightAlt,
	0xBA: input.KeySemicolon,
	0xBB: input.KeyEqual,
	0xBC: input.KeyComma,
	0xBD: input.KeyMinus,
	0xBE: input.KeyPeriod,
	0xBF: input.KeySlash,
	0xC0: input.KeyGraveAccent,
	0xDB: input.KeyLeftBracket,
	0xDC: input.KeyBackslash,
	0xDD: input.KeyRightBracket,
	0xDE: input.KeyApostrophe,
	0xE2: input.KeyWorld2,
}

// translateVirtualKey maps a virtual key code and the lParam of its key
// message to a Key. lParam carries the scan code and extended-key flag used to
// tell left from right modifiers.
func translateVirtualKey(vk, lParam uintptr) input.Key {
	extended := lParam&extendedKeyFlag != 0
	switch {
	case vk >= '0' && vk <= '9', vk >= 'A' && vk <= 'Z':
		return input.Key(vk)
	case vk >= 0x60 && vk <= 0x69:
		return input.KeyKP0 + input.Key(vk-0x60)
	case vk >= 0x70 && vk <= 0x87: // F1..F24
		return input.KeyF1 + input.Key(vk-0x70)
	}
	switch vk {
	case vkShift:
		if (lParam>>16)&0xff == scanRightShift {
			return input.KeyRightShift
		}
		return input.KeyLeftShift
	case vkControl:
		if extended {
			return input.KeyRightControl
		}
		return input.KeyLeftControl
	case vkMenu:
		if extended {
			return input.KeyRightAlt
		}
		return input.KeyLeftAlt
	case vkReturn:
		if extended {
			return input.KeyKPEnter
		}
		return input.KeyEnter
	}
	return win32Keys[vk]
}

func lowWord(v uintptr) int16  { return int16(v & 0xffff) }
func highWord(v uintptr) int16 { return int16((v >> 16) & 0xffff) }

// translateWin32Message converts one window message. mods is the modifier
// state at the time the message was retrieved.
func translateWin32Message(msg uint32, wParam, lParam uintptr, mods input.Mods) (input.Event, bool) {
	pos := func(t input.EventType, b input.Button) input.Event {
		return input.Event{Type: t, Button: b, Mods: mods, X: float32(lowWord(lParam)), Y: float32(highWord(lParam))}
	}
	switch msg {
	case wmKeyDown, wmSysKeyDown:
		return input.Event{Type: input.EventKeyPressed, Key: translateVirtualKey(wParam, lParam), Mods: mods}, true
	case wmKeyUp, wmSysKeyUp:
		return input.Event{Type: input.EventKeyReleased, Key: translateVirtualKey(wParam, lParam), Mods: mods}, true
	case wmSize:
		if wParam == sizeMinimized {
			return input.Event{}, false
		}
		return input.Event{Type: input.EventWindowResized, Width: int(uint16(lParam)), Height: int(uint16(lParam >> 16))}, true
	case wmMouseMove:
		return pos(input.EventMouseMoved, 0), true
	case wmLButtonDown:
		return pos(input.EventMouseButtonPressed, input.ButtonLeft), true
	case wmLButtonUp:
		return pos(input.EventMouseButtonReleased, input.ButtonLeft), true
	case wmRButtonDown:
		return pos(input.EventMouseButtonPressed, input.ButtonRight), true
	case wmRButtonUp:
		return pos(input.EventMouseButtonReleased, input.ButtonRight), true
	case wmMButtonDown:
		return pos(input.EventMouseButtonPressed, input.ButtonMiddle), true
	case wmMButtonUp:
		return pos(input.EventMouseButtonReleased, input.ButtonMiddle), true
	case wmXButtonDown, wmXButtonUp:
		b := input.ButtonBack
		if highWord(wParam) == 2 {
			b = input.ButtonForward
		}
		t := input.EventMouseButtonPressed
		if msg == wmXButtonUp {
			t = input.EventMouseButtonReleased
		}
		return pos(t, b), true
	case wmMouseWheel:
		return input.Event{Type: input.EventMouseWheel, Y: float32(highWord(wParam)) / wheelDelta, Mods: mods}, true
	case wmMouseHWheel:
		return input.Event{Type: input.EventMouseWheel, X: float32(highWord(wParam)) / wheelDelta, Mods: mods}, true
	}
	return input.Event{}, false
}
