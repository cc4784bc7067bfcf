// Package cli handles command line interface logic
package cli

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	var opts options.Program
	var breakpoints string
	readOptionFlags(flags, &opts, &breakpoints)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Input == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if opts.Input == "" {
		opts.Input = args[0]
	}

	if err := normalizeOptions(&opts, breakpoints); err != nil {
		return opts, err
	}

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the command usage and flag defaults.
func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: retrochip8 [options] <rom file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after rom file, please pass the rom file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program, breakpoints string) error {
	opts.System = strings.ToLower(opts.System)

	if opts.Speed <= 0 {
		return fmt.Errorf("invalid speed %d: must be a positive number of instructions per second", opts.Speed)
	}
	if opts.KeyRelease <= 0 {
		return fmt.Errorf("invalid key release delay %s: must be positive", opts.KeyRelease)
	}

	addresses, err := parseBreakpoints(breakpoints)
	if err != nil {
		return err
	}
	opts.Breakpoints = addresses
	return nil
}

// parseBreakpoints parses a comma separated list of hex addresses.
// Addresses may carry a 0x or $ prefix.
func parseBreakpoints(s string) ([]uint16, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}

	var addresses []uint16
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		field = strings.TrimPrefix(strings.TrimPrefix(strings.ToLower(field), "0x"), "$")

		address, err := strconv.ParseUint(field, 16, 16)
		if err != nil {
			return nil, fmt.Errorf("parsing breakpoint address '%s': %w", field, err)
		}
		if address > vm.MaxAddress {
			return nil, fmt.Errorf("breakpoint address %X exceeds memory size", address)
		}
		addresses = append(addresses, uint16(address))
	}
	return addresses, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program, breakpoints *string) {
	flags.StringVar(&opts.Input, "i", "", "name of the input ROM file")
	flags.StringVar(&opts.System, "s", "", "system of the ROM (chip8) - if not auto-detected from file extension")
	flags.IntVar(&opts.Speed, "speed", options.DefaultSpeed, "instructions executed per second")
	flags.BoolVar(&opts.Paused, "paused", false, "start paused, press space to resume or . to single step")
	flags.StringVar(breakpoints, "break", "", "comma separated list of hex addresses to pause at, for example 0x200,2a4")
	flags.DurationVar(&opts.KeyRelease, "key-release", options.DefaultKeyRelease, "delay after which a pressed key is released, terminals do not report key releases")
	flags.Uint64Var(&opts.Seed, "seed", 0, "seed of the random number generator, 0 seeds from the current time")
	flags.BoolVar(&opts.ShiftQuirk, "shift-quirk", false, "copy VY into VX before shifting (original COSMAC VIP behavior)")
	flags.BoolVar(&opts.IndexOverflowQuirk, "index-overflow", false, "set VF when adding to I moves it past address 0xFFF")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, requires -debug")
	flags.StringVar(&opts.LogFile, "log", "", "write log output to this file while running, by default it is shown after the terminal is released")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}
