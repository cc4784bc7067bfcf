package vm

import "github.com/retroenv/retrogolib/log"

// 00E0: CLS
func (v *VM) opClear() {
	v.display.clear()
	v.drawFlag = true
}

// 00EE: RET
func (v *VM) opReturn() error {
	if v.sp == 0 {
		return ErrStackUnderflow
	}
	v.sp--
	v.pc = v.stack[v.sp]
	return nil
}

// 1NNN: JP addr
func (v *VM) opJump(address uint16) {
	v.pc = address & MaxAddress
}

// BNNN: JP V0, addr
func (v *VM) opJumpOffset(address uint16) {
	v.pc = (address + uint16(v.registers[0])) & MaxAddress
}

// 2NNN: CALL addr
func (v *VM) opCall(address uint16) error {
	if v.sp >= StackSize {
		return ErrStackOverflow
	}
	v.stack[v.sp] = v.pc
	v.sp++
	v.pc = address & MaxAddress
	return nil
}

// 3XNN: SE Vx, byte
func (v *VM) opSkipEqualImmediate(x, value uint8) {
	if v.registers[x] == value {
		v.skip()
	}
}

// 4XNN: SNE Vx, byte
func (v *VM) opSkipNotEqualImmediate(x, value uint8) {
	if v.registers[x] != value {
		v.skip()
	}
}

// 5XY0: SE Vx, Vy
func (v *VM) opSkipEqualRegister(x, y uint8) {
	if v.registers[x] == v.registers[y] {
		v.skip()
	}
}

// 9XY0: SNE Vx, Vy
func (v *VM) opSkipNotEqualRegister(x, y uint8) {
	if v.registers[x] != v.registers[y] {
		v.skip()
	}
}

// 6XNN: LD Vx, byte
func (v *VM) opSetImmediate(x, value uint8) {
	v.registers[x] = value
}

// 7XNN: ADD Vx, byte, VF is not affected.
func (v *VM) opAddImmediate(x, value uint8) {
	v.registers[x] += value
}

// 8XY0: LD Vx, Vy
func (v *VM) opCopy(x, y uint8) {
	v.registers[x] = v.registers[y]
}

// 8XY1: OR Vx, Vy
func (v *VM) opOr(x, y uint8) {
	v.registers[x] |= v.registers[y]
}

// 8XY2: AND Vx, Vy
func (v *VM) opAnd(x, y uint8) {
	v.registers[x] &= v.registers[y]
}

// 8XY3: XOR Vx, Vy
func (v *VM) opXor(x, y uint8) {
	v.registers[x] ^= v.registers[y]
}

// The flag producing instructions read both operands first, then write VF and
// finally the result. With X = F the result replaces the flag.

// 8XY4: ADD Vx, Vy, VF = carry
func (v *VM) opAddReg(x, y uint8) {
	a, b := v.registers[x], v.registers[y]
	v.registers[FlagRegister] = boolToFlag(uint16(a)+uint16(b) > 0xFF)
	v.registers[x] = a + b
}

// 8XY5: SUB Vx, Vy, VF = not borrow
func (v *VM) opSubLR(x, y uint8) {
	a, b := v.registers[x], v.registers[y]
	v.registers[FlagRegister] = boolToFlag(a >= b)
	v.registers[x] = a - b
}

// 8XY7: SUBN Vx, Vy, VF = not borrow
func (v *VM) opSubRL(x, y uint8) {
	a, b := v.registers[x], v.registers[y]
	v.registers[FlagRegister] = boolToFlag(b >= a)
	v.registers[x] = b - a
}

// 8XY6: SHR Vx {, Vy}
func (v *VM) opRightShift(x, y uint8) {
	if v.shiftQuirk {
		v.registers[x] = v.registers[y]
	}
	value := v.registers[x]
	v.registers[FlagRegister] = value & 0x01
	v.registers[x] = value >> 1
}

// 8XYE: SHL Vx {, Vy}
func (v *VM) opLeftShift(x, y uint8) {
	if v.shiftQuirk {
		v.registers[x] = v.registers[y]
	}
	value := v.registers[x]
	v.registers[FlagRegister] = value >> 7
	v.registers[x] = value << 1
}

// ANNN: LD I, addr
func (v *VM) opSetIndex(address uint16) {
	v.index = address
}

// CXNN: RND Vx, byte
func (v *VM) opRandom(x, mask uint8) {
	v.registers[x] = v.random() & mask
}

// DXYN: DRW Vx, Vy, nibble
func (v *VM) opDraw(x, y, rows uint8) {
	sprite := make([]byte, rows)
	for i := range sprite {
		sprite[i] = v.read(v.index + uint16(i))
	}

	collision, toggled := v.display.drawSprite(v.registers[x], v.registers[y], sprite)
	v.registers[FlagRegister] = boolToFlag(collision)
	if toggled {
		v.drawFlag = true
	}
}

// EX9E: SKP Vx
func (v *VM) opSkipKeyPressed(x uint8) {
	if v.keys[v.registers[x]&0xF] {
		v.skip()
	}
}

// EXA1: SKNP Vx
func (v *VM) opSkipKeyNotPressed(x uint8) {
	if !v.keys[v.registers[x]&0xF] {
		v.skip()
	}
}

// FX07: LD Vx, DT
func (v *VM) opGetDelay(x uint8) {
	v.registers[x] = v.delayTimer
}

// FX15: LD DT, Vx
func (v *VM) opSetDelay(x uint8) {
	v.delayTimer = v.registers[x]
}

// FX18: LD ST, Vx
func (v *VM) opSetSound(x uint8) {
	v.soundTimer = v.registers[x]
}

// FX1E: ADD I, Vx
func (v *VM) opAddIndex(x uint8) {
	sum := v.index + uint16(v.registers[x])
	if v.indexOverflowQuirk {
		v.registers[FlagRegister] = boolToFlag(sum > MaxAddress)
	}
	v.index = sum
}

// FX0A: LD Vx, K
//
// The instruction repeats by rolling the program counter back until a key
// pressed while blocking has been released again.
func (v *VM) opWaitKey(x uint8) {
	if !v.block.blocking() {
		v.block.begin()
		v.pc = (v.pc - opcodeSize) & MaxAddress
		return
	}

	key, ok := v.block.poll(&v.keys)
	if !ok {
		v.pc = (v.pc - opcodeSize) & MaxAddress
		return
	}

	v.registers[x] = key
	if v.logger != nil {
		v.logger.Debug("Key wait completed", log.Hex("key", key))
	}
}

// FX29: LD F, Vx
func (v *VM) opFont(x uint8) {
	v.index = glyphAddress(v.registers[x])
}

// FX33: LD B, Vx
func (v *VM) opBCD(x uint8) {
	value := v.registers[x]
	v.write(v.index, value/100)
	v.write(v.index+1, value/10%10)
	v.write(v.index+2, value%10)
}

// FX55: LD [I], Vx
func (v *VM) opStore(x uint8) {
	for i := range uint16(x) + 1 {
		v.write(v.index+i, v.registers[i])
	}
}

// FX65: LD Vx, [I]
func (v *VM) opLoad(x uint8) {
	for i := range uint16(x) + 1 {
		v.registers[i] = v.read(v.index + i)
	}
}

func boolToFlag(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
