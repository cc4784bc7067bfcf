package vm

import (
	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrogolib/log"
)

// opcodeSize is the size of a CHIP-8 instruction in bytes.
const opcodeSize = 2

// instruction holds the operand fields of a fetched opcode.
type instruction struct {
	opcode uint16
	x      uint8  // bits 8-11
	y      uint8  // bits 4-7
	n      uint8  // bits 0-3
	nn     uint8  // bits 0-7
	nnn    uint16 // bits 0-11
}

func decode(opcode uint16) instruction {
	return instruction{
		opcode: opcode,
		x:      uint8(opcode>>8) & 0xF,
		y:      uint8(opcode>>4) & 0xF,
		n:      uint8(opcode) & 0xF,
		nn:     uint8(opcode),
		nnn:    opcode & 0x0FFF,
	}
}

// family returns the top nibble that selects the primary opcode family.
func (in instruction) family() uint8 {
	return uint8(in.opcode >> 12)
}

// Step fetches, decodes and executes the instruction at the program counter
// and ticks the timers once. The program counter is advanced before the
// instruction executes.
//
// On error the machine state is left as it was before the fetch and the
// returned *OpcodeError wraps ErrInvalidOpcode, ErrStackOverflow or
// ErrStackUnderflow.
func (v *VM) Step() error {
	address := v.pc & MaxAddress
	in := decode(v.readWord(address))
	v.pc = (address + opcodeSize) & MaxAddress

	if v.trace {
		v.logger.Debug("Executing instruction",
			log.Hex("pc", address),
			log.Hex("opcode", in.opcode),
			log.String("instruction", disasm.Format(in.opcode)))
	}

	if err := v.execute(in); err != nil {
		v.pc = address
		return &OpcodeError{
			Address: address,
			Opcode:  in.opcode,
			Err:     err,
		}
	}

	v.tickTimers()
	return nil
}

// execute dispatches the instruction to its handler.
func (v *VM) execute(in instruction) error {
	handler := primaryHandlers[in.family()]
	return handler(v, in)
}

// skip advances the program counter past the next instruction.
func (v *VM) skip() {
	v.pc = (v.pc + opcodeSize) & MaxAddress
}

// tickTimers decrements both timers once. The sound flag is raised on every
// tick that finds the sound timer nonzero and stays raised until cleared.
func (v *VM) tickTimers() {
	if v.delayTimer > 0 {
		v.delayTimer--
	}
	if v.soundTimer > 0 {
		v.soundFlag = true
		v.soundTimer--
	}
}
