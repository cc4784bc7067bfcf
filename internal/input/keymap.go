// Package input maps host keyboard keys onto the CHIP-8 hex keypad and the
// interpreter controls.
//
// The keypad layout is placed on the left side of a QWERTY keyboard:
//
//	1 2 3 4      1 2 3 C
//	q w e r  ->  4 5 6 D
//	a s d f      7 8 9 E
//	z x c v      A 0 B F
package input

import "unicode"

// Control is an interpreter control bound to a host key.
type Control uint8

// Interpreter controls.
const (
	NoControl Control = iota
	TogglePause
	Step
	Quit
)

// Help describes the key bindings.
const Help = "keypad 1234/qwer/asdf/zxcv, space pause/resume, . step, esc quit"

// UnmappedKey is reported for host keys that are not bound to the keypad.
const UnmappedKey uint8 = 0xFF

var keypad = map[rune]uint8{
	'1': 0x1, '2': 0x2, '3': 0x3, '4': 0xC,
	'q': 0x4, 'w': 0x5, 'e': 0x6, 'r': 0xD,
	'a': 0x7, 's': 0x8, 'd': 0x9, 'f': 0xE,
	'z': 0xA, 'x': 0x0, 'c': 0xB, 'v': 0xF,
}

var controls = map[rune]Control{
	' ':    TogglePause,
	'.':    Step,
	'\x1b': Quit,
}

// Key returns the keypad key bound to the rune. Letters match case insensitive.
func Key(ch rune) (uint8, bool) {
	key, ok := keypad[unicode.ToLower(ch)]
	return key, ok
}

// ControlFor returns the interpreter control bound to the rune.
func ControlFor(ch rune) Control {
	return controls[ch]
}
