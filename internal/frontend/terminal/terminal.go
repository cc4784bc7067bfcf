// Package terminal implements a text mode front end using termbox-go.
package terminal

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/nsf/termbox-go"
	"github.com/retroenv/retrochip8/internal/input"
	"github.com/retroenv/retrochip8/internal/runner"
	"github.com/retroenv/retrochip8/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

const (
	cellsPerPixel = 2
	screenWidth   = vm.DisplayWidth * cellsPerPixel
	statusRow     = vm.DisplayHeight
	beepInterval  = 250 * time.Millisecond
	pixelColor    = termbox.ColorGreen
)

// LogHolder holds back console log output while the terminal is in use.
type LogHolder interface {
	Hold()
	Release() error
}

// Config contains the terminal front end options.
type Config struct {
	// KeyRelease is the delay after which a key press is released again,
	// terminals do not report key release events.
	KeyRelease time.Duration

	// Log is held while the terminal is in use, optional.
	Log LogHolder
}

// Terminal renders the display to the terminal and translates key presses
// into runner events.
type Terminal struct {
	logger     *log.Logger
	keyRelease time.Duration
	logHold    LogHolder
	status     string

	events chan runner.Event
	done   chan struct{} // closed when the terminal is closing
	exited chan struct{} // closed when the event loop returned

	mu       sync.Mutex
	releases [vm.KeyCount]*time.Timer

	sendMu sync.Mutex // guards sends from release timers against closing events
	closed bool

	bell     io.Writer
	lastBeep time.Time
	now      func() time.Time

	closeOnce sync.Once
}

// New initializes the terminal and starts the input event loop.
func New(logger *log.Logger, cfg Config) (*Terminal, error) {
	if err := termbox.Init(); err != nil {
		return nil, fmt.Errorf("initializing terminal: %w", err)
	}
	termbox.SetInputMode(termbox.InputEsc)
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		termbox.Close()
		return nil, fmt.Errorf("clearing terminal: %w", err)
	}

	t := newTerminal(logger, cfg, os.Stdout)
	if t.logHold != nil {
		t.logHold.Hold()
	}
	if err := t.Status(input.Help); err != nil {
		t.restore()
		return nil, err
	}

	go t.pollEvents()
	return t, nil
}

func newTerminal(logger *log.Logger, cfg Config, bell io.Writer) *Terminal {
	return &Terminal{
		logger:     logger,
		keyRelease: cfg.KeyRelease,
		logHold:    cfg.Log,
		events:     make(chan runner.Event, 64),
		done:       make(chan struct{}),
		exited:     make(chan struct{}),
		bell:       bell,
		now:        time.Now,
	}
}

// Events returns the channel of input events. It is closed when the
// terminal is closed.
func (t *Terminal) Events() <-chan runner.Event {
	return t.events
}

// Render draws the display, each pixel is drawn as two cells to keep the
// aspect ratio.
func (t *Terminal) Render(display vm.Display) error {
	if err := termbox.Clear(termbox.ColorDefault, termbox.ColorDefault); err != nil {
		return fmt.Errorf("clearing terminal: %w", err)
	}
	draw(display, termbox.SetCell)
	drawStatus(t.status, termbox.SetCell)
	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

// Status shows the text in the row below the display.
func (t *Terminal) Status(text string) error {
	t.status = text
	drawStatus(text, termbox.SetCell)
	if err := termbox.Flush(); err != nil {
		return fmt.Errorf("flushing terminal: %w", err)
	}
	return nil
}

// Beep rings the terminal bell. Beeps that follow each other closely are
// merged into one.
func (t *Terminal) Beep() error {
	now := t.now()
	if now.Sub(t.lastBeep) < beepInterval {
		return nil
	}
	t.lastBeep = now

	if _, err := io.WriteString(t.bell, "\a"); err != nil {
		return fmt.Errorf("writing bell: %w", err)
	}
	return nil
}

// Close stops the input event loop and restores the terminal.
func (t *Terminal) Close() {
	t.closeOnce.Do(func() {
		close(t.done)
		// Interrupt blocks until a PollEvent call picks it up, the event loop
		// may already have returned after a terminal error.
		go termbox.Interrupt()
		<-t.exited
		t.restore()
	})
}

// restore closes termbox and releases the held log output.
func (t *Terminal) restore() {
	termbox.Close()
	if t.logHold == nil {
		return
	}
	if err := t.logHold.Release(); err != nil {
		t.logger.Error("Releasing log output failed", log.Err(err))
	}
}

// pollEvents translates terminal events until the terminal is closed.
func (t *Terminal) pollEvents() {
	defer close(t.exited)
	defer t.closeEvents()

	for {
		ev := termbox.PollEvent()
		switch ev.Type {
		case termbox.EventInterrupt:
			return

		case termbox.EventError:
			t.logger.Error("Reading terminal event failed", log.Err(ev.Err))
			return

		case termbox.EventKey:
			event := translate(ev)
			if !t.send(event) {
				continue
			}
			if event.Kind == runner.KeyDown && event.Key < vm.KeyCount {
				t.scheduleRelease(event.Key)
			}

		default:
		}
	}
}

// send delivers an event unless the terminal is closing, events are
// dropped until the event loop is interrupted.
func (t *Terminal) send(event runner.Event) bool {
	select {
	case t.events <- event:
		return true
	case <-t.done:
		return false
	}
}

// scheduleRelease synthesizes the key release after the configured delay.
// Repeated presses of a held key extend the delay.
func (t *Terminal) scheduleRelease(key uint8) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if timer := t.releases[key]; timer != nil {
		timer.Reset(t.keyRelease)
		return
	}
	t.releases[key] = time.AfterFunc(t.keyRelease, func() {
		t.mu.Lock()
		t.releases[key] = nil
		t.mu.Unlock()

		t.emit(runner.Event{Kind: runner.KeyUp, Key: key})
	})
}

// emit delivers an event from outside the event loop. Events are dropped
// once the event channel is closed or the terminal is closing.
func (t *Terminal) emit(event runner.Event) {
	t.sendMu.Lock()
	defer t.sendMu.Unlock()

	if t.closed {
		return
	}
	select {
	case t.events <- event:
	case <-t.done:
	}
}

// closeEvents stops pending key releases and closes the event channel.
func (t *Terminal) closeEvents() {
	t.stopReleases()

	t.sendMu.Lock()
	defer t.sendMu.Unlock()

	t.closed = true
	close(t.events)
}

func (t *Terminal) stopReleases() {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, timer := range t.releases {
		if timer != nil {
			timer.Stop()
			t.releases[i] = nil
		}
	}
}

// translate converts a terminal key event to a runner event.
func translate(ev termbox.Event) runner.Event {
	switch ev.Key {
	case termbox.KeyEsc, termbox.KeyCtrlC:
		return runner.Event{Kind: runner.Quit}
	case termbox.KeySpace:
		return runner.Event{Kind: runner.TogglePause}
	}

	if ev.Ch == 0 {
		return runner.Event{Kind: runner.KeyDown, Key: input.UnmappedKey}
	}

	switch input.ControlFor(ev.Ch) {
	case input.TogglePause:
		return runner.Event{Kind: runner.TogglePause}
	case input.Step:
		return runner.Event{Kind: runner.Step}
	case input.Quit:
		return runner.Event{Kind: runner.Quit}
	default:
	}

	if key, ok := input.Key(ev.Ch); ok {
		return runner.Event{Kind: runner.KeyDown, Key: key}
	}
	return runner.Event{Kind: runner.KeyDown, Key: input.UnmappedKey}
}

// draw sets the cells of all lit pixels.
func draw(display vm.Display, setCell func(x, y int, ch rune, fg, bg termbox.Attribute)) {
	for y := range vm.DisplayHeight {
		for x := range vm.DisplayWidth {
			if !display[y][x] {
				continue
			}
			for i := range cellsPerPixel {
				setCell(x*cellsPerPixel+i, y, ' ', pixelColor, pixelColor)
			}
		}
	}
}

// drawStatus writes the text into the status row, clipped to the display width.
func drawStatus(text string, setCell func(x, y int, ch rune, fg, bg termbox.Attribute)) {
	x := 0
	for _, ch := range text {
		if x >= screenWidth {
			break
		}
		setCell(x, statusRow, ch, termbox.ColorDefault, termbox.ColorDefault)
		x++
	}
	for ; x < screenWidth; x++ {
		setCell(x, statusRow, ' ', termbox.ColorDefault, termbox.ColorDefault)
	}
}
