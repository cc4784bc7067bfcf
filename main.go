// Package main implements the main entry point for a CHIP-8 interpreter
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/retrochip8/internal/cli"
	"github.com/retroenv/retrochip8/internal/config"
	"github.com/retroenv/retrochip8/internal/fileprocessor"
	"github.com/retroenv/retrochip8/internal/frontend/terminal"
	"github.com/retroenv/retrochip8/internal/options"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet, nil)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			if usageErr.Error() != "" {
				logger.Error(usageErr.Error())
			}
			usageErr.ShowUsage()
		} else {
			logger.Error("Invalid options", log.Err(err))
		}
		os.Exit(1)
	}

	output, err := config.NewLogOutput(opts.LogFile)
	if err != nil {
		config.CreateLogger(opts.Debug, opts.Quiet, nil).Error("Creating log output failed", log.Err(err))
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet, output)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	newFrontend := func(logger *log.Logger, opts options.Program) (fileprocessor.Frontend, error) {
		term, err := terminal.New(logger, terminal.Config{
			KeyRelease: opts.KeyRelease,
			Log:        output,
		})
		if err != nil {
			return nil, err
		}
		return term, nil
	}

	exitCode := 0
	if err := fileprocessor.ProcessFile(ctx, logger, opts, newFrontend); err != nil {
		// Handle context cancellation (Ctrl+C) gracefully
		if errors.Is(err, context.Canceled) {
			logger.Info("Operation cancelled")
		} else {
			logger.Error("Running failed", log.Err(err))
			exitCode = 1
		}
	}

	logger.Closer(output, "Closing log output")
	os.Exit(exitCode)
}
