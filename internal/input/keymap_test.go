package input

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestKey(t *testing.T) {
	tests := []struct {
		ch    rune
		key   uint8
		valid bool
	}{
		{'1', 0x1, true},
		{'4', 0xC, true},
		{'q', 0x4, true},
		{'R', 0xD, true},
		{'s', 0x8, true},
		{'f', 0xE, true},
		{'z', 0xA, true},
		{'x', 0x0, true},
		{'V', 0xF, true},
		{'5', 0, false},
		{'p', 0, false},
		{' ', 0, false},
	}

	for _, tt := range tests {
		key, ok := Key(tt.ch)
		assert.Equal(t, tt.valid, ok)
		assert.Equal(t, tt.key, key)
	}
}

func TestKeypadCoversAllKeys(t *testing.T) {
	seen := map[uint8]bool{}
	for _, key := range keypad {
		seen[key] = true
	}
	assert.Len(t, seen, 16)
}

func TestControlFor(t *testing.T) {
	assert.Equal(t, TogglePause, ControlFor(' '))
	assert.Equal(t, Step, ControlFor('.'))
	assert.Equal(t, Quit, ControlFor('\x1b'))
	assert.Equal(t, NoControl, ControlFor('q'))
}
