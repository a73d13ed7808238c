package input

import (
	"fmt"
	"strconv"
	"strings"
)

var keyNames = map[Key]string{
	KeySpace:        "space",
	KeyApostrophe:   "apostrophe",
	KeyComma:        "comma",
	KeyMinus:        "minus",
	KeyPeriod:       "period",
	KeySlash:        "slash",
	KeySemicolon:    "semicolon",
	KeyEqual:        "equal",
	KeyLeftBracket:  "left_bracket",
	KeyBackslash:    "backslash",
	KeyRightBracket: "right_bracket",
	KeyGraveAccent:  "grave",
	KeyWorld1:       "world1",
	KeyWorld2:       "world2",
	KeyEscape:       "escape",
	KeyEnter:        "enter",
	KeyTab:          "tab",
	KeyBackspace:    "backspace",
	KeyInsert:       "insert",
	KeyDelete:       "delete",
	KeyRight:        "right",
	KeyLeft:         "left",
	KeyDown:         "down",
	KeyUp:           "up",
	KeyPageUp:       "page_up",
	KeyPageDown:     "page_down",
	KeyHome:         "home",
	KeyEnd:          "end",
	KeyCapsLock:     "caps_lock",
	KeyScrollLock:   "scroll_lock",
	KeyNumLock:      "num_lock",
	KeyPrintScreen:  "print_screen",
	KeyPause:        "pause",
	KeyKPDecimal:    "kp_decimal",
	KeyKPDivide:     "kp_divide",
	KeyKPMultiply:   "kp_multiply",
	KeyKPSubtract:   "kp_subtract",
	KeyKPAdd:        "kp_add",
	KeyKPEnter:      "kp_enter",
	KeyKPEqual:      "kp_equal",
	KeyLeftShift:    "left_shift",
	KeyLeftControl:  "left_control",
	KeyLeftAlt:      "left_alt",
	KeyLeftSuper:    "left_super",
	KeyRightShift:   "right_shift",
	KeyRightControl: "right_control",
	KeyRightAlt:     "right_alt",
	KeyRightSuper:   "right_super",
	KeyMenu:         "menu",
}

var keysByName = func() map[string]Key {
	m := make(map[string]Key, len(keyNames))
	for k, name := range keyNames {
		m[name] = k
	}
	return m
}()

// String returns the lower-case name used in configuration files.
func (k Key) String() string {
	switch {
	case k == KeyInvalid:
		return "none"
	case k >= KeyA && k <= KeyZ:
		return string(rune('a' + k - KeyA))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + k - Key0))
	case k >= KeyF1 && k <= KeyF25:
		return "f" + strconv.Itoa(int(k-KeyF1)+1)
	case k >= KeyKP0 && k <= KeyKP9:
		return "kp_" + strconv.Itoa(int(k-KeyKP0))
	}
	if name, ok := keyNames[k]; ok {
		return name
	}
	return fmt.Sprintf("key(%d)", int(k))
}

// ParseKey is the inverse of Key.String. Matching ignores case, and "none"
// or an empty string is KeyInvalid.
func ParseKey(name string) (Key, error) {
	s := strings.ToLower(strings.TrimSpace(name))
	if s == "" || s == "none" {
		return KeyInvalid, nil
	}
	if len(s) == 1 {
		switch c := s[0]; {
		case c >= 'a' && c <= 'z':
			return KeyA + Key(c-'a'), nil
		case c >= '0' && c <= '9':
			return Key0 + Key(c-'0'), nil
		}
	}
	if k, ok := keysByName[s]; ok {
		return k, nil
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(s, "kp_")); err == nil && strings.HasPrefix(s, "kp_") && n >= 0 && n <= 9 {
		return KeyKP0 + Key(n), nil
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(s, "f")); err == nil && strings.HasPrefix(s, "f") && n >= 1 && n <= 25 {
		return KeyF1 + Key(n-1), nil
	}
	return KeyInvalid, fmt.Errorf("input: unknown key %q", name)
}

func (k Key) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Key) UnmarshalText(text []byte) error {
	parsed, err := ParseKey(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
