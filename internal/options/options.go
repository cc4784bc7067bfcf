// Package options contains the program options.
package options

import "time"

// Defaults of the behavior options.
const (
	DefaultSpeed      = 700 // instructions per second
	DefaultKeyRelease = 100 * time.Millisecond
)

// Parameters contains file path options.
type Parameters struct {
	Input  string // ROM file to run
	System string // system override, auto-detected from the file extension if empty
}

// Flags contains behavior options.
type Flags struct {
	Speed       int           // instructions per second
	Paused      bool          // start paused, waiting for a step or resume key
	Breakpoints []uint16      // addresses to pause at before executing
	KeyRelease  time.Duration // delay after which a pressed terminal key is released
	Seed        uint64        // random seed, 0 seeds from the current time
	Trace       bool          // log every executed instruction
	LogFile     string        // log output file, empty logs to stdout once the terminal is released
	Debug       bool
	Quiet       bool
}

// Quirks selects historically divergent instruction behaviors.
type Quirks struct {
	ShiftQuirk         bool // 8XY6/8XYE copy VY into VX before shifting
	IndexOverflowQuirk bool // FX1E sets VF when I passes 0xFFF
}

// Program options of the interpreter.
type Program struct {
	Parameters
	Flags
	Quirks
}
