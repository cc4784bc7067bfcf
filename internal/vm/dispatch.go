package vm

// handler executes one decoded instruction.
type handler func(v *VM, in instruction) error

// primaryHandlers is indexed by the top nibble of the opcode.
var primaryHandlers = [16]handler{
	0x0: execSystem,
	0x1: func(v *VM, in instruction) error {
		v.opJump(in.nnn)
		return nil
	},
	0x2: func(v *VM, in instruction) error {
		return v.opCall(in.nnn)
	},
	0x3: func(v *VM, in instruction) error {
		v.opSkipEqualImmediate(in.x, in.nn)
		return nil
	},
	0x4: func(v *VM, in instruction) error {
		v.opSkipNotEqualImmediate(in.x, in.nn)
		return nil
	},
	0x5: func(v *VM, in instruction) error {
		if in.n != 0 {
			return ErrInvalidOpcode
		}
		v.opSkipEqualRegister(in.x, in.y)
		return nil
	},
	0x6: func(v *VM, in instruction) error {
		v.opSetImmediate(in.x, in.nn)
		return nil
	},
	0x7: func(v *VM, in instruction) error {
		v.opAddImmediate(in.x, in.nn)
		return nil
	},
	0x8: execArithmetic,
	0x9: func(v *VM, in instruction) error {
		if in.n != 0 {
			return ErrInvalidOpcode
		}
		v.opSkipNotEqualRegister(in.x, in.y)
		return nil
	},
	0xA: func(v *VM, in instruction) error {
		v.opSetIndex(in.nnn)
		return nil
	},
	0xB: func(v *VM, in instruction) error {
		v.opJumpOffset(in.nnn)
		return nil
	},
	0xC: func(v *VM, in instruction) error {
		v.opRandom(in.x, in.nn)
		return nil
	},
	0xD: func(v *VM, in instruction) error {
		v.opDraw(in.x, in.y, in.n)
		return nil
	},
	0xE: execKey,
	0xF: execMisc,
}

// execSystem handles the 0NNN family, only 00E0 and 00EE are supported.
func execSystem(v *VM, in instruction) error {
	switch in.opcode {
	case 0x00E0:
		v.opClear()
		return nil
	case 0x00EE:
		return v.opReturn()
	default:
		return ErrInvalidOpcode
	}
}

// arithmeticHandlers is indexed by the low nibble of 8XYN opcodes.
var arithmeticHandlers = map[uint8]func(v *VM, x, y uint8){
	0x0: (*VM).opCopy,
	0x1: (*VM).opOr,
	0x2: (*VM).opAnd,
	0x3: (*VM).opXor,
	0x4: (*VM).opAddReg,
	0x5: (*VM).opSubLR,
	0x6: (*VM).opRightShift,
	0x7: (*VM).opSubRL,
	0xE: (*VM).opLeftShift,
}

func execArithmetic(v *VM, in instruction) error {
	op, ok := arithmeticHandlers[in.n]
	if !ok {
		return ErrInvalidOpcode
	}
	op(v, in.x, in.y)
	return nil
}

// keyHandlers is indexed by the low byte of EXNN opcodes.
var keyHandlers = map[uint8]func(v *VM, x uint8){
	0x9E: (*VM).opSkipKeyPressed,
	0xA1: (*VM).opSkipKeyNotPressed,
}

func execKey(v *VM, in instruction) error {
	op, ok := keyHandlers[in.nn]
	if !ok {
		return ErrInvalidOpcode
	}
	op(v, in.x)
	return nil
}

// miscHandlers is indexed by the low byte of FXNN opcodes.
var miscHandlers = map[uint8]func(v *VM, x uint8){
	0x07: (*VM).opGetDelay,
	0x0A: (*VM).opWaitKey,
	0x15: (*VM).opSetDelay,
	0x18: (*VM).opSetSound,
	0x1E: (*VM).opAddIndex,
	0x29: (*VM).opFont,
	0x33: (*VM).opBCD,
	0x55: (*VM).opStore,
	0x65: (*VM).opLoad,
}

func execMisc(v *VM, in instruction) error {
	op, ok := miscHandlers[in.nn]
	if !ok {
		return ErrInvalidOpcode
	}
	op(v, in.x)
	return nil
}
