// Package fileprocessor handles loading and running of ROM files
package fileprocessor

import (
	"context"
	"fmt"
	"strings"

	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/detector"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/loader"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/arch"
	"github.com/retroenv/retrogolib/log"
)

// Frontend is a runner front end that is closed after the run.
type Frontend interface {
	runner.Frontend
	Close()
}

// FrontendConstructor creates the front end for a run.
type FrontendConstructor func(logger *log.Logger, opts options.Program) (Frontend, error)

// ProcessFile handles the complete workflow of running a ROM file
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program,
	newFrontend FrontendConstructor) error {

	system, err := detector.New(logger).Detect(opts)
	if err != nil {
		return fmt.Errorf("detecting system: %w", err)
	}

	machine, size, err := loadMachine(logger, opts)
	if err != nil {
		return err
	}
	PrintInfo(logger, opts, system, size)

	frontend, err := newFrontend(logger, opts)
	if err != nil {
		return fmt.Errorf("creating front end: %w", err)
	}
	defer frontend.Close()

	run := runner.New(logger, machine, frontend, runner.Config{
		Speed:       opts.Speed,
		Paused:      opts.Paused,
		Breakpoints: opts.Breakpoints,
	})
	if err := run.Run(ctx); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

func loadMachine(logger *log.Logger, opts options.Program) (*vm.VM, int, error) {
	rom, err := loader.New().Load(opts.Input)
	if err != nil {
		return nil, 0, fmt.Errorf("loading rom: %w", err)
	}

	machine := vm.New(config.CreateMachineConfig(logger, opts))
	if err := machine.Load(rom); err != nil {
		return nil, 0, fmt.Errorf("loading rom into memory: %w", err)
	}
	return machine, len(rom), nil
}

// PrintInfo prints the information about the loaded ROM.
func PrintInfo(logger *log.Logger, opts options.Program, system arch.System, size int) {
	if opts.Quiet {
		return
	}

	logger.Info("Running Chip-8 ROM",
		log.String("file", opts.Input),
		log.Stringer("system", system),
		log.Int("size", size),
		log.Int("speed", opts.Speed),
	)
	logger.Info("Controls", log.String("keys", input.Help))
	if opts.ShiftQuirk || opts.IndexOverflowQuirk {
		logger.Info("Quirks enabled",
			log.String("shift", fmt.Sprint(opts.ShiftQuirk)),
			log.String("index_overflow", fmt.Sprint(opts.IndexOverflowQuirk)),
		)
	}
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	versionString := version
	if commit != "" {
		if len(commit) > 7 {
			commit = commit[:7]
		}
		versionString += fmt.Sprintf(" (%s)", commit)
	}

	logger.Info("retrochip8", log.String("version", versionString))

	if date != "" && !strings.Contains(date, "unknown") {
		logger.Info("Build", log.String("date", date))
	}
}
