package recorder

import (
	"fmt"
	"sync"
	"time"

	"github.com/janwychowaniak/letstalk/log"
)

// State is the shared cell coordinating the interactive recorder's two
// activities. It is read and written only under the recorder's mutex.
type State int

const (
	Ready State = iota
	Recording
	Paused
	Stopped
)

func (s State) String() string {
	switch s {
	case Ready:
		return "ready"
	case Recording:
		return "recording"
	case Paused:
		return "paused"
	case Stopped:
		return "stopped"
	}
	return "unknown"
}

// KeyReader yields one key press at a time, blocking until input arrives.
// console.Stdin satisfies it; tests use scripted readers.
type KeyReader interface {
	ReadKey() (byte, error)
}

// StreamOpener defers device acquisition until the user actually starts
// recording, so a take cancelled from Ready never touches the device.
type StreamOpener func() (Stream, error)

const (
	keyEnter   = '\r'
	keyNewline = '\n'
	keyQuit    = 'q'

	// The listener is usually parked in a blocking read when the take ends,
	// so joining it waits at most this long.
	listenerJoinWait = 250 * time.Millisecond
)

// Interactive records under manual control: Enter toggles between Recording
// and Paused, q stops. While paused, blocks are still pulled from the device
// and discarded; the device buffer must be drained no matter what.
type Interactive struct {
	keys KeyReader
	open StreamOpener

	// Raw, when set, switches the terminal to unbuffered single-character
	// mode for the take and returns an idempotent restore function. Nil
	// skips the switch (tests, non-tty stdin).
	Raw func() (func(), error)

	// OnBlock receives per-block feedback; OnState announces transitions.
	OnBlock func(st State, peak int, c Classification)
	OnState func(st State)

	mu    sync.Mutex
	cond  *sync.Cond
	state State
}

func NewInteractive(keys KeyReader, open StreamOpener) *Interactive {
	r := &Interactive{keys: keys, open: open, state: Ready}
	r.cond = sync.NewCond(&r.mu)
	return r
}

func (r *Interactive) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// stop forces Stopped. Stopped is terminal; every other transition is
// refused once it is reached.
func (r *Interactive) stop() {
	r.mu.Lock()
	if r.state == Stopped {
		r.mu.Unlock()
		return
	}
	r.state = Stopped
	r.cond.Broadcast()
	cb := r.OnState
	r.mu.Unlock()
	if cb != nil {
		cb(Stopped)
	}
}

// toggle handles Enter: Ready or Paused resume Recording, Recording pauses.
func (r *Interactive) toggle() {
	r.mu.Lock()
	var next State
	switch r.state {
	case Ready, Paused:
		next = Recording
	case Recording:
		next = Paused
	default:
		r.mu.Unlock()
		return
	}
	r.state = next
	r.cond.Broadcast()
	cb := r.OnState
	r.mu.Unlock()
	if cb != nil {
		cb(next)
	}
}

// listen is the key-listener activity. Any read fault forces Stopped rather
// than leaving the machine in an ambiguous state.
func (r *Interactive) listen(done chan<- struct{}) {
	defer close(done)
	defer r.stop()
	for {
		k, err := r.keys.ReadKey()
		if err != nil {
			return
		}
		switch k {
		case keyEnter, keyNewline:
			r.toggle()
		case keyQuit, 'Q':
			return
		}
		if r.State() == Stopped {
			return
		}
	}
}

// Record runs the take. It returns an error only when the terminal or the
// device could not be set up; a device fault mid-take ends the take with the
// partial session, and a take cancelled from Ready returns an empty session.
// Empty means "nothing to do", not failure.
func (r *Interactive) Record() (*Session, error) {
	sess := NewSession()

	restore := func() {}
	if r.Raw != nil {
		var err error
		restore, err = r.Raw()
		if err != nil {
			r.stop()
			return sess, fmt.Errorf("terminal raw mode: %w", err)
		}
	}
	defer restore()

	done := make(chan struct{})
	go r.listen(done)
	defer r.join(done)

	// Block until the first key press moves the machine out of Ready.
	r.mu.Lock()
	for r.state == Ready {
		r.cond.Wait()
	}
	cancelled := r.state == Stopped
	r.mu.Unlock()

	if cancelled {
		return sess, nil
	}

	stream, err := r.open()
	if err != nil {
		r.stop()
		return sess, fmt.Errorf("opening capture stream: %w", err)
	}
	defer stream.Close()

	for {
		// Always pull the block, paused or not. Skipping reads lets the
		// device buffer overflow.
		block, err := stream.ReadBlock()
		if err != nil {
			log.Warnf("audio read failed, ending take: %v", err)
			r.stop()
			return sess, nil
		}
		sess.BlocksSeen++

		switch r.State() {
		case Stopped:
			return sess, nil
		case Recording:
			sess.Append(block)
			if r.OnBlock != nil {
				r.OnBlock(Recording, Peak(block), Classify(block))
			}
		case Paused:
			// Consumed from the device, then dropped.
			if r.OnBlock != nil {
				r.OnBlock(Paused, 0, Silent)
			}
		}
	}
}

// join signals Stopped and waits briefly for the listener, which exits
// within one key press of observing the stop. The wait is bounded so a
// parked read never blocks the caller.
func (r *Interactive) join(done <-chan struct{}) {
	r.stop()
	select {
	case <-done:
	case <-time.After(listenerJoinWait):
	}
}
