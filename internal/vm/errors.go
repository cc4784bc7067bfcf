package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOpcode is returned when a fetched word matches no instruction.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrStackOverflow is returned by a call with a full stack.
	ErrStackOverflow = errors.New("stack overflow")
	// ErrStackUnderflow is returned by a return with an empty stack.
	ErrStackUnderflow = errors.New("stack underflow")
	// ErrROMTooLarge is returned when a ROM does not fit into program memory.
	ErrROMTooLarge = errors.New("rom too large")
)

// OpcodeError describes a fault while executing the instruction at Address.
// The machine state is left as it was before the instruction was fetched.
type OpcodeError struct {
	Address uint16
	Opcode  uint16
	Err     error
}

func (e *OpcodeError) Error() string {
	return fmt.Sprintf("executing opcode %04X at address %03X: %s", e.Opcode, e.Address, e.Err)
}

func (e *OpcodeError) Unwrap() error {
	return e.Err
}
