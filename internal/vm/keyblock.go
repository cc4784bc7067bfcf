package vm

// blockState is the state of the wait for key instruction FX0A.
type blockState uint8

const (
	blockIdle blockState = iota
	blockWaiting
)

// keyBlock tracks a pending FX0A. A key only satisfies the wait after a full
// press and release cycle that started while the machine was blocking.
type keyBlock struct {
	state     blockState
	lastKey   uint8
	fromBlock bool // lastKey was pressed while blocking
}

func (b *keyBlock) reset() {
	*b = keyBlock{}
}

// begin enters the blocking state, discarding any earlier key press.
func (b *keyBlock) begin() {
	b.state = blockWaiting
	b.fromBlock = false
}

// blocking returns whether a FX0A is waiting for a key.
func (b *keyBlock) blocking() bool {
	return b.state == blockWaiting
}

// press records a key down event. Keys outside the keypad cancel a pending
// capture.
func (b *keyBlock) press(key uint8) {
	if b.state != blockWaiting {
		return
	}
	if key >= KeyCount {
		b.fromBlock = false
		return
	}
	b.lastKey = key
	b.fromBlock = true
}

// poll returns the captured key and completes the wait once the key that
// was pressed while blocking has been released again.
func (b *keyBlock) poll(keys *[KeyCount]bool) (uint8, bool) {
	if b.state != blockWaiting || !b.fromBlock || keys[b.lastKey] {
		return 0, false
	}
	key := b.lastKey
	b.reset()
	return key, true
}

// KeyDown marks a keypad key as pressed. Keys above 0xF are not part of the
// keypad, pressing one while FX0A is waiting cancels the pending capture.
func (v *VM) KeyDown(key uint8) {
	v.block.press(key)
	if key < KeyCount {
		v.keys[key] = true
	}
}

// KeyUp marks a keypad key as released.
func (v *VM) KeyUp(key uint8) {
	if key < KeyCount {
		v.keys[key] = false
	}
}

// Pressed returns whether the keypad key is held down.
func (v *VM) Pressed(key uint8) bool {
	return key < KeyCount && v.keys[key]
}

// Blocking returns whether the machine is stalled on a wait for key instruction.
func (v *VM) Blocking() bool {
	return v.block.blocking()
}
