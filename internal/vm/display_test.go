package vm

import (
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestDrawSpriteRow(t *testing.T) {
	v := New(Config{Seed: 1})
	v.index = 0x300
	v.memory[0x300] = 0xFF

	v.opDraw(0, 1, 1)

	display := v.Display()
	for x := range 8 {
		assert.True(t, display.Pixel(x, 0))
	}
	assert.False(t, display.Pixel(8, 0))
	assert.False(t, display.Pixel(0, 1))
	assert.Equal(t, uint8(0), v.registers[FlagRegister])
	assert.True(t, v.DrawFlag())
}

func TestDrawTwiceCollides(t *testing.T) {
	v := New(Config{Seed: 1})
	v.index = 0x300
	v.memory[0x300] = 0xFF

	v.opDraw(0, 1, 1)
	v.ClearDrawFlag()
	v.opDraw(0, 1, 1)

	display := v.Display()
	for x := range 8 {
		assert.False(t, display.Pixel(x, 0))
	}
	assert.Equal(t, uint8(1), v.registers[FlagRegister])
	assert.True(t, v.DrawFlag())
}

func TestDrawPartialCollision(t *testing.T) {
	v := New(Config{Seed: 1})
	v.index = 0x300
	v.memory[0x300] = 0xF0
	v.memory[0x301] = 0x3C

	v.opDraw(0, 1, 1)
	v.index = 0x301
	v.opDraw(0, 1, 1)

	display := v.Display()
	assert.True(t, display.Pixel(0, 0))
	assert.True(t, display.Pixel(1, 0))
	assert.False(t, display.Pixel(2, 0))
	assert.False(t, display.Pixel(3, 0))
	assert.True(t, display.Pixel(4, 0))
	assert.True(t, display.Pixel(5, 0))
	assert.Equal(t, uint8(1), v.registers[FlagRegister])
}

func TestDrawResetsCollisionFlag(t *testing.T) {
	v := New(Config{Seed: 1})
	v.index = 0x300
	v.memory[0x300] = 0x80
	v.registers[FlagRegister] = 1
	v.registers[1] = 10

	v.opDraw(1, 1, 1)
	assert.Equal(t, uint8(0), v.registers[FlagRegister])
}

func TestDrawPositionWraps(t *testing.T) {
	v := New(Config{Seed: 1})
	v.index = 0x300
	v.memory[0x300] = 0x80
	v.registers[1] = DisplayWidth + 3
	v.registers[2] = DisplayHeight*2 + 5

	v.opDraw(1, 2, 1)
	assert.True(t, v.Display().Pixel(3, 5))
}

func TestDrawClipsAtRightEdge(t *testing.T) {
	v := New(Config{Seed: 1})
	v.index = 0x300
	v.memory[0x300] = 0xFF
	v.memory[0x301] = 0xFF
	v.registers[1] = 60
	v.registers[2] = 0

	v.opDraw(1, 2, 2)

	display := v.Display()
	for y := range 2 {
		for x := 60; x < DisplayWidth; x++ {
			assert.True(t, display.Pixel(x, y))
		}
		for x := range 4 {
			assert.False(t, display.Pixel(x, y))
		}
	}
}

func TestDrawClipsAtBottomEdge(t *testing.T) {
	v := New(Config{Seed: 1})
	v.index = 0x300
	for i := range uint16(4) {
		v.memory[0x300+i] = 0x80
	}
	v.registers[1] = 0
	v.registers[2] = 30

	v.opDraw(1, 2, 4)

	display := v.Display()
	assert.True(t, display.Pixel(0, 30))
	assert.True(t, display.Pixel(0, 31))
	assert.False(t, display.Pixel(0, 0))
	assert.False(t, display.Pixel(0, 1))
}

func TestDrawEmptySpriteKeepsDrawFlag(t *testing.T) {
	v := New(Config{Seed: 1})
	v.index = 0x300

	v.opDraw(0, 0, 3)
	assert.False(t, v.DrawFlag())

	v.opDraw(0, 0, 0)
	assert.False(t, v.DrawFlag())
}

func TestDrawFontGlyph(t *testing.T) {
	v := newTestVM(t, Config{},
		0x6000, // LD V0, 0
		0xF029, // LD F, V0
		0xD005, // DRW V0, V0, 5
	)
	stepN(t, v, 3)

	display := v.Display()
	// glyph 0: F0 90 90 90 F0
	for x := range 4 {
		assert.True(t, display.Pixel(x, 0))
		assert.True(t, display.Pixel(x, 4))
	}
	assert.True(t, display.Pixel(0, 2))
	assert.False(t, display.Pixel(1, 2))
	assert.True(t, display.Pixel(3, 2))
	assert.False(t, display.Pixel(4, 0))
}

func TestClearScreen(t *testing.T) {
	v := newTestVM(t, Config{}, 0x00E0)
	v.display[3][7] = true

	stepN(t, v, 1)
	assert.False(t, v.Display().Pixel(7, 3))
	assert.True(t, v.DrawFlag())
}

func TestDisplayCopyIsDetached(t *testing.T) {
	v := New(Config{Seed: 1})
	display := v.Display()
	display[0][0] = true

	assert.False(t, v.Display().Pixel(0, 0))
}

func TestPixelOutOfRange(t *testing.T) {
	var display Display
	display[0][0] = true

	assert.False(t, display.Pixel(-1, 0))
	assert.False(t, display.Pixel(DisplayWidth, 0))
	assert.False(t, display.Pixel(0, DisplayHeight))
}
