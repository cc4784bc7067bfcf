// Package config handles application configuration and setup
package config

import (
	"io"

	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// CreateLogger creates a logger with appropriate settings.
// A nil output logs to stdout.
func CreateLogger(debug, quiet bool, output io.Writer) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = output
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// CreateMachineConfig returns the interpreter configuration for the program options.
func CreateMachineConfig(logger *log.Logger, opts options.Program) vm.Config {
	return vm.Config{
		ShiftQuirk:         opts.ShiftQuirk,
		IndexOverflowQuirk: opts.IndexOverflowQuirk,
		Seed:               opts.Seed,
		Logger:             logger,
		Trace:              opts.Trace,
	}
}
