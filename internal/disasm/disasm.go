// Package disasm formats CHIP-8 opcodes as assembly text.
// Instruction identification uses the retrogolib CHIP-8 opcode table.
package disasm

import (
	"fmt"

	"github.com/retroenv/retrogolib/arch/cpu/chip8"
)

// Instruction is a decoded CHIP-8 instruction.
type Instruction struct {
	Opcode uint16
	Name   string // mnemonic, empty for unknown opcodes
	Params string // formatted operands, empty if the instruction has none
}

// String returns the instruction in assembly syntax. Unknown opcodes are
// formatted as a data word.
func (i Instruction) String() string {
	switch {
	case i.Name == "":
		return fmt.Sprintf(".word $%04X", i.Opcode)
	case i.Params == "":
		return i.Name
	default:
		return fmt.Sprintf("%s %s", i.Name, i.Params)
	}
}

// Decode identifies the instruction of the opcode and formats its operands.
// It returns false if the opcode matches no CHIP-8 instruction.
func Decode(opcode uint16) (Instruction, bool) {
	op, ok := lookup(opcode)
	if !ok {
		return Instruction{Opcode: opcode}, false
	}

	name := op.Instruction.Name
	return Instruction{
		Opcode: opcode,
		Name:   name,
		Params: formatInstruction(name, opcode),
	}, true
}

// Format returns the assembly text of the opcode.
func Format(opcode uint16) string {
	ins, _ := Decode(opcode)
	return ins.String()
}

// lookup finds the opcode table entry whose mask and value match the word.
func lookup(opcode uint16) (chip8.Opcode, bool) {
	firstNibble := (opcode & 0xF000) >> 12
	opcodes := chip8.Opcodes[int(firstNibble)]
	for _, op := range opcodes {
		if op.Info.Mask&opcode == op.Info.Value && op.Instruction != nil {
			return op, true
		}
	}
	return chip8.Opcode{}, false
}
