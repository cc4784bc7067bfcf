package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sync"
)

// maxHeldOutput limits the log output buffered while the terminal is in use.
const maxHeldOutput = 1 << 20

// LogOutput is the log destination. Output for the console can be held back
// while a full screen front end owns the terminal and is written once it is
// released again. Output to a log file is never held.
type LogOutput struct {
	mu      sync.Mutex
	out     io.Writer
	file    *os.File
	held    bool
	buf     bytes.Buffer
	dropped int
}

// NewLogOutput returns the log destination for the given file path, an empty
// path writes to stdout.
func NewLogOutput(path string) (*LogOutput, error) {
	if path == "" {
		return &LogOutput{out: os.Stdout}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}
	return &LogOutput{out: file, file: file}, nil
}

// Write writes the log record or buffers it while the output is held.
func (o *LogOutput) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.held {
		n, err := o.out.Write(p)
		if err != nil {
			return n, fmt.Errorf("writing log output: %w", err)
		}
		return n, nil
	}

	if o.buf.Len()+len(p) > maxHeldOutput {
		o.dropped += len(p)
		return len(p), nil
	}
	o.buf.Write(p)
	return len(p), nil
}

// Hold buffers console output until Release is called.
func (o *LogOutput) Hold() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.file == nil {
		o.held = true
	}
}

// Release writes the buffered output and stops buffering.
func (o *LogOutput) Release() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !o.held {
		return nil
	}
	o.held = false

	if o.dropped > 0 {
		fmt.Fprintf(&o.buf, "%d bytes of log output dropped, use -log to keep all output\n", o.dropped)
		o.dropped = 0
	}
	_, err := o.out.Write(o.buf.Bytes())
	o.buf.Reset()
	if err != nil {
		return fmt.Errorf("writing held log output: %w", err)
	}
	return nil
}

// Close releases held output and closes the log file.
func (o *LogOutput) Close() error {
	if err := o.Release(); err != nil {
		return err
	}
	if o.file == nil {
		return nil
	}
	if err := o.file.Close(); err != nil {
		return fmt.Errorf("closing log file: %w", err)
	}
	return nil
}
