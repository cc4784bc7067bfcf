// Package runner drives an interpreter at a fixed instruction rate and
// connects it to a front end for presentation and input.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/retroenv/retrochip8/internal/disasm"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
)

// Machine is the interpreter driven by the runner.
type Machine interface {
	Step() error
	PC() uint16
	Opcode() uint16

	KeyDown(key uint8)
	KeyUp(key uint8)

	Display() vm.Display
	DrawFlag() bool
	ClearDrawFlag()
	SoundFlag() bool
	ClearSoundFlag()
}

// Frontend presents the machine output and delivers input events.
type Frontend interface {
	// Events returns the channel of input events, closing it ends the run.
	Events() <-chan Event
	Render(display vm.Display) error
	Beep() error
	// Status shows a line of text next to the display.
	Status(text string) error
}

// Config contains the runner options.
type Config struct {
	Speed       int // instructions per second
	Paused      bool
	Breakpoints []uint16
}

// Runner paces the machine and routes events between machine and front end.
type Runner struct {
	logger   *log.Logger
	machine  Machine
	frontend Frontend

	interval    time.Duration
	breakpoints set.Set[uint16]

	paused bool
	resume bool // execute the instruction at the current breakpoint once
}

// New returns a new runner.
func New(logger *log.Logger, machine Machine, frontend Frontend, cfg Config) *Runner {
	speed := cfg.Speed
	if speed <= 0 {
		speed = 1
	}

	breakpoints := set.New[uint16]()
	for _, address := range cfg.Breakpoints {
		breakpoints.Add(address)
	}

	return &Runner{
		logger:      logger,
		machine:     machine,
		frontend:    frontend,
		interval:    time.Second / time.Duration(speed),
		breakpoints: breakpoints,
		paused:      cfg.Paused,
	}
}

// Run executes instructions until the context is canceled, the front end
// requests to quit or closes its event channel, or the machine faults.
func (r *Runner) Run(ctx context.Context) error {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	events := r.frontend.Events()
	if r.paused {
		if err := r.notify("Paused"); err != nil {
			return err
		}
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev, ok := <-events:
			if !ok {
				return nil
			}
			quit, err := r.handleEvent(ev)
			if err != nil || quit {
				return err
			}

		case <-ticker.C:
			if r.paused {
				continue
			}
			if err := r.cycle(); err != nil {
				return err
			}
		}
	}
}

// Paused returns whether execution is paused.
func (r *Runner) Paused() bool {
	return r.paused
}

// handleEvent applies an input event and returns whether the run should end.
func (r *Runner) handleEvent(ev Event) (bool, error) {
	switch ev.Kind {
	case KeyDown:
		r.machine.KeyDown(ev.Key)

	case KeyUp:
		r.machine.KeyUp(ev.Key)

	case TogglePause:
		r.paused = !r.paused
		msg := "Paused"
		if !r.paused {
			r.resume = true
			msg = "Resumed"
		}
		if err := r.notify(msg); err != nil {
			return false, err
		}

	case Step:
		if !r.paused {
			return false, nil
		}
		if err := r.notify("Step"); err != nil {
			return false, err
		}
		r.resume = true
		if err := r.execute(); err != nil {
			return false, err
		}

	case Quit:
		return true, nil
	}
	return false, nil
}

// cycle executes the next instruction unless a breakpoint pauses execution.
func (r *Runner) cycle() error {
	if !r.resume && r.breakpoints.Contains(r.machine.PC()) {
		r.paused = true
		return r.notify("Breakpoint hit")
	}
	return r.execute()
}

// notify logs the message with the instruction at the program counter and
// shows it on the front end.
func (r *Runner) notify(msg string) error {
	pc := r.machine.PC()
	instruction := disasm.Format(r.machine.Opcode())
	r.logger.Info(msg,
		log.Hex("pc", pc),
		log.String("instruction", instruction))

	if err := r.frontend.Status(statusText(msg, pc, instruction)); err != nil {
		return fmt.Errorf("showing status: %w", err)
	}
	return nil
}

// statusText returns the status line text for an instruction.
func statusText(msg string, pc uint16, instruction string) string {
	return fmt.Sprintf("%s at $%03X: %s", msg, pc, instruction)
}

// execute steps the machine once and presents its output flags.
func (r *Runner) execute() error {
	r.resume = false
	if err := r.machine.Step(); err != nil {
		return fmt.Errorf("executing instruction: %w", err)
	}

	if r.machine.DrawFlag() {
		if err := r.frontend.Render(r.machine.Display()); err != nil {
			return fmt.Errorf("rendering display: %w", err)
		}
		r.machine.ClearDrawFlag()
	}

	if r.machine.SoundFlag() {
		if err := r.frontend.Beep(); err != nil {
			return fmt.Errorf("playing sound: %w", err)
		}
		r.machine.ClearSoundFlag()
	}
	return nil
}
