package runner

// EventKind is the type of a front end input event.
type EventKind uint8

// Event kinds.
const (
	KeyDown EventKind = iota + 1
	KeyUp
	TogglePause
	Step
	Quit
)

// Event is an input event delivered by the front end.
type Event struct {
	Kind EventKind
	Key  uint8 // keypad key for KeyDown and KeyUp, keys above 0xF are not on the keypad
}
