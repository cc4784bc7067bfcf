package vm

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/retroenv/retrogolib/log"
)

// CHIP-8 memory layout constants.
//
//	0x000-0x1FF: reserved for the interpreter, font glyphs at 0x050-0x09F
//	0x200-0xFFF: program code and data
const (
	// MemorySize is the number of addressable bytes.
	MemorySize = 0x1000
	// MaxAddress is the highest valid memory address, addresses wrap to 12 bits.
	MaxAddress = MemorySize - 1
	// ProgramStart is the address ROMs are loaded to and execution begins at.
	ProgramStart = 0x200
	// MaxROMSize is the largest ROM that fits into program memory.
	MaxROMSize = MemorySize - ProgramStart

	// RegisterCount is the number of general purpose registers.
	RegisterCount = 16
	// FlagRegister is the index of VF, overwritten by carry, borrow, shift and collision results.
	FlagRegister = 0xF
	// StackSize is the maximum call depth.
	StackSize = 16
	// KeyCount is the number of keys on the hex keypad.
	KeyCount = 16
)

// Config contains the construction time options of a VM.
type Config struct {
	// ShiftQuirk copies VY into VX before 8XY6 and 8XYE shift it.
	ShiftQuirk bool
	// IndexOverflowQuirk sets VF when FX1E moves I past MaxAddress.
	IndexOverflowQuirk bool

	// Random returns the random bytes used by CXNN. If nil, a PCG generator
	// seeded with Seed is used.
	Random func() uint8
	// Seed of the default random generator, 0 seeds from the current time.
	Seed uint64

	Logger *log.Logger
	// Trace logs every executed instruction at debug level.
	Trace bool
}

// VM is a CHIP-8 virtual machine. It is not safe for concurrent use.
type VM struct {
	memory    [MemorySize]byte
	registers [RegisterCount]uint8
	index     uint16
	pc        uint16

	stack [StackSize]uint16
	sp    uint8 // next free stack slot

	delayTimer uint8
	soundTimer uint8

	display Display
	keys    [KeyCount]bool
	block   keyBlock

	drawFlag  bool
	soundFlag bool

	shiftQuirk         bool
	indexOverflowQuirk bool
	random             func() uint8

	logger *log.Logger
	trace  bool
}

// New returns a reset machine using the given configuration.
func New(cfg Config) *VM {
	v := &VM{
		shiftQuirk:         cfg.ShiftQuirk,
		indexOverflowQuirk: cfg.IndexOverflowQuirk,
		random:             cfg.Random,
		logger:             cfg.Logger,
		trace:              cfg.Trace && cfg.Logger != nil,
	}

	if v.random == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = uint64(time.Now().UnixNano())
		}
		rng := rand.New(rand.NewPCG(seed, seed>>1|1))
		v.random = func() uint8 {
			return uint8(rng.Uint32())
		}
	}

	v.Reset()
	return v
}

// Reset clears memory, registers, stack, timers, display and input state,
// installs the font glyphs and points the program counter at ProgramStart.
// The configuration is kept.
func (v *VM) Reset() {
	v.memory = [MemorySize]byte{}
	copy(v.memory[FontAddress:], fontSet[:])

	v.registers = [RegisterCount]uint8{}
	v.index = 0
	v.pc = ProgramStart

	v.stack = [StackSize]uint16{}
	v.sp = 0

	v.delayTimer = 0
	v.soundTimer = 0

	v.display.clear()
	v.keys = [KeyCount]bool{}
	v.block.reset()

	v.drawFlag = false
	v.soundFlag = false
}

// Load copies the ROM image into memory starting at ProgramStart.
// A ROM larger than MaxROMSize is rejected and memory is left untouched.
func (v *VM) Load(rom []byte) error {
	if len(rom) > MaxROMSize {
		return fmt.Errorf("%w: %d bytes, maximum is %d", ErrROMTooLarge, len(rom), MaxROMSize)
	}
	copy(v.memory[ProgramStart:], rom)

	if v.logger != nil {
		v.logger.Debug("ROM loaded", log.Int("size", len(rom)))
	}
	return nil
}

// PC returns the program counter.
func (v *VM) PC() uint16 {
	return v.pc
}

// Opcode returns the instruction word at the program counter without executing it.
func (v *VM) Opcode() uint16 {
	return v.readWord(v.pc)
}

// Register returns the value of register Vx, x is masked to 0x0-0xF.
func (v *VM) Register(x uint8) uint8 {
	return v.registers[x&0xF]
}

// Index returns the index register I.
func (v *VM) Index() uint16 {
	return v.index
}

// StackDepth returns the number of return addresses on the stack.
func (v *VM) StackDepth() int {
	return int(v.sp)
}

// DelayTimer returns the delay timer value.
func (v *VM) DelayTimer() uint8 {
	return v.delayTimer
}

// SoundTimer returns the sound timer value.
func (v *VM) SoundTimer() uint8 {
	return v.soundTimer
}

// Display returns a copy of the display buffer.
func (v *VM) Display() Display {
	return v.display
}

// DrawFlag reports whether the display changed since the flag was last cleared.
func (v *VM) DrawFlag() bool {
	return v.drawFlag
}

// ClearDrawFlag acknowledges a presented display.
func (v *VM) ClearDrawFlag() {
	v.drawFlag = false
}

// SoundFlag reports whether a tone should be played.
func (v *VM) SoundFlag() bool {
	return v.soundFlag
}

// ClearSoundFlag acknowledges a played tone.
func (v *VM) ClearSoundFlag() {
	v.soundFlag = false
}

// read returns the byte at the address wrapped to the 12-bit address space.
func (v *VM) read(address uint16) byte {
	return v.memory[address&MaxAddress]
}

// write stores a byte at the address wrapped to the 12-bit address space.
func (v *VM) write(address uint16, value byte) {
	v.memory[address&MaxAddress] = value
}

// readWord returns the big-endian word at the address.
func (v *VM) readWord(address uint16) uint16 {
	return uint16(v.read(address))<<8 | uint16(v.read(address+1))
}
