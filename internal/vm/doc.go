// Package vm implements the CHIP-8 interpreter engine.
//
// # Machine State
//
// A VM owns the complete state of one CHIP-8 machine:
//   - 4KB of memory (0x000-MaxAddress), font glyphs at FontAddress
//   - 16 general purpose 8-bit registers V0-VF, VF doubles as flag register
//   - the 16-bit index register I and the program counter
//   - a 16 entry call stack
//   - delay and sound timers
//   - a 64x32 monochrome display and 16 key latches
//
// # Execution
//
// Step executes exactly one instruction and ticks both timers once. Pacing
// the calls is the caller's job; the original hardware ran at roughly 700
// instructions per second.
//
// # Collaborators
//
// The VM never touches a display, audio device or keyboard. After each step
// the caller checks DrawFlag and SoundFlag, presents the state and clears
// the flags. Input is fed through KeyDown and KeyUp.
//
// # Usage Example
//
//	machine := vm.New(vm.Config{ShiftQuirk: true})
//	if err := machine.Load(rom); err != nil {
//		return fmt.Errorf("loading rom: %w", err)
//	}
//	for {
//		if err := machine.Step(); err != nil {
//			return fmt.Errorf("executing instruction: %w", err)
//		}
//		if machine.DrawFlag() {
//			render(machine.Display())
//			machine.ClearDrawFlag()
//		}
//	}
package vm
