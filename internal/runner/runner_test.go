package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

var errFake = errors.New("fake error")

type fakeMachine struct {
	pc        uint16
	steps     int
	stepErr   error
	drawFlag  bool
	soundFlag bool
	drawOnce  bool
	soundOnce bool
	pressed   [16]bool
}

func (m *fakeMachine) Step() error {
	if m.stepErr != nil {
		return m.stepErr
	}
	m.steps++
	m.pc += 2
	if m.drawOnce {
		m.drawFlag = true
		m.drawOnce = false
	}
	if m.soundOnce {
		m.soundFlag = true
		m.soundOnce = false
	}
	return nil
}

func (m *fakeMachine) PC() uint16          { return m.pc }
func (m *fakeMachine) Opcode() uint16      { return 0x00E0 }
func (m *fakeMachine) KeyDown(key uint8)   { m.pressed[key&0xF] = true }
func (m *fakeMachine) KeyUp(key uint8)     { m.pressed[key&0xF] = false }
func (m *fakeMachine) Display() vm.Display { return vm.Display{} }
func (m *fakeMachine) DrawFlag() bool      { return m.drawFlag }
func (m *fakeMachine) ClearDrawFlag()      { m.drawFlag = false }
func (m *fakeMachine) SoundFlag() bool     { return m.soundFlag }
func (m *fakeMachine) ClearSoundFlag()     { m.soundFlag = false }

type fakeFrontend struct {
	events    chan Event
	renders   int
	beeps     int
	statuses  []string
	renderErr error
	statusErr error
}

func newFakeFrontend() *fakeFrontend {
	return &fakeFrontend{events: make(chan Event, 16)}
}

func (f *fakeFrontend) Events() <-chan Event { return f.events }

func (f *fakeFrontend) Render(vm.Display) error {
	f.renders++
	return f.renderErr
}

func (f *fakeFrontend) Beep() error {
	f.beeps++
	return nil
}

func (f *fakeFrontend) Status(text string) error {
	f.statuses = append(f.statuses, text)
	return f.statusErr
}

func TestRunnerExecutePresentsFlags(t *testing.T) {
	machine := &fakeMachine{pc: vm.ProgramStart, drawOnce: true, soundOnce: true}
	frontend := newFakeFrontend()
	r := New(log.NewTestLogger(t), machine, frontend, Config{Speed: 700})

	assert.NoError(t, r.cycle())
	assert.Equal(t, 1, machine.steps)
	assert.Equal(t, 1, frontend.renders)
	assert.Equal(t, 1, frontend.beeps)
	assert.False(t, machine.drawFlag)
	assert.False(t, machine.soundFlag)

	assert.NoError(t, r.cycle())
	assert.Equal(t, 1, frontend.renders)
	assert.Equal(t, 1, frontend.beeps)
}

func TestRunnerExecuteErrors(t *testing.T) {
	machine := &fakeMachine{stepErr: errFake}
	r := New(log.NewTestLogger(t), machine, newFakeFrontend(), Config{Speed: 700})
	err := r.cycle()
	assert.True(t, errors.Is(err, errFake))

	machine = &fakeMachine{drawOnce: true}
	frontend := newFakeFrontend()
	frontend.renderErr = errFake
	r = New(log.NewTestLogger(t), machine, frontend, Config{Speed: 700})
	err = r.cycle()
	assert.True(t, errors.Is(err, errFake))
	assert.True(t, machine.drawFlag)
}

func TestRunnerBreakpoint(t *testing.T) {
	machine := &fakeMachine{pc: 0x200}
	frontend := newFakeFrontend()
	r := New(log.NewTestLogger(t), machine, frontend, Config{
		Speed:       700,
		Breakpoints: []uint16{0x202},
	})

	assert.NoError(t, r.cycle())
	assert.Equal(t, uint16(0x202), machine.PC())
	assert.False(t, r.Paused())

	// reaching the breakpoint pauses before executing it
	assert.NoError(t, r.cycle())
	assert.True(t, r.Paused())
	assert.Equal(t, uint16(0x202), machine.PC())
	assert.Equal(t, 1, machine.steps)
	assert.Equal(t, []string{"Breakpoint hit at $202: cls"}, frontend.statuses)

	// resuming executes the breakpoint instruction once
	quit, err := r.handleEvent(Event{Kind: TogglePause})
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.False(t, r.Paused())
	assert.NoError(t, r.cycle())
	assert.Equal(t, uint16(0x204), machine.PC())
	assert.Equal(t, "Resumed at $202: cls", frontend.statuses[1])
}

func TestRunnerStep(t *testing.T) {
	machine := &fakeMachine{pc: 0x200}
	frontend := newFakeFrontend()
	r := New(log.NewTestLogger(t), machine, frontend, Config{
		Speed:       700,
		Paused:      true,
		Breakpoints: []uint16{0x200},
	})
	assert.True(t, r.Paused())

	quit, err := r.handleEvent(Event{Kind: Step})
	assert.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, 1, machine.steps)
	assert.True(t, r.Paused())
	assert.Equal(t, []string{"Step at $200: cls"}, frontend.statuses)

	// step is ignored while running
	_, err = r.handleEvent(Event{Kind: TogglePause})
	assert.NoError(t, err)
	_, err = r.handleEvent(Event{Kind: Step})
	assert.NoError(t, err)
	assert.Equal(t, 1, machine.steps)
}

func TestRunnerKeys(t *testing.T) {
	machine := &fakeMachine{}
	r := New(log.NewTestLogger(t), machine, newFakeFrontend(), Config{Speed: 700})

	_, err := r.handleEvent(Event{Kind: KeyDown, Key: 0xA})
	assert.NoError(t, err)
	assert.True(t, machine.pressed[0xA])

	_, err = r.handleEvent(Event{Kind: KeyUp, Key: 0xA})
	assert.NoError(t, err)
	assert.False(t, machine.pressed[0xA])

	quit, err := r.handleEvent(Event{Kind: Quit})
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestRunnerRun(t *testing.T) {
	t.Run("quit event", func(t *testing.T) {
		frontend := newFakeFrontend()
		frontend.events <- Event{Kind: Quit}
		r := New(log.NewTestLogger(t), &fakeMachine{}, frontend, Config{Speed: 1, Paused: true})
		assert.NoError(t, r.Run(context.Background()))
	})

	t.Run("closed events", func(t *testing.T) {
		frontend := newFakeFrontend()
		close(frontend.events)
		r := New(log.NewTestLogger(t), &fakeMachine{}, frontend, Config{Speed: 1, Paused: true})
		assert.NoError(t, r.Run(context.Background()))
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		r := New(log.NewTestLogger(t), &fakeMachine{}, newFakeFrontend(), Config{Speed: 1, Paused: true})
		err := r.Run(ctx)
		assert.True(t, errors.Is(err, context.Canceled))
	})

	t.Run("machine error", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		machine := &fakeMachine{stepErr: errFake}
		r := New(log.NewTestLogger(t), machine, newFakeFrontend(), Config{Speed: 1000})
		err := r.Run(ctx)
		assert.True(t, errors.Is(err, errFake))
	})
}

func TestRunnerStatusError(t *testing.T) {
	frontend := newFakeFrontend()
	frontend.statusErr = errFake
	r := New(log.NewTestLogger(t), &fakeMachine{}, frontend, Config{Speed: 700})

	_, err := r.handleEvent(Event{Kind: TogglePause})
	assert.True(t, errors.Is(err, errFake))
}

func TestRunnerStartPausedShowsStatus(t *testing.T) {
	frontend := newFakeFrontend()
	frontend.events <- Event{Kind: Quit}
	r := New(log.NewTestLogger(t), &fakeMachine{pc: 0x200}, frontend, Config{Speed: 1, Paused: true})

	assert.NoError(t, r.Run(context.Background()))
	assert.Equal(t, []string{"Paused at $200: cls"}, frontend.statuses)
}
