// Package recorder implements the capture core: amplitude-based silence
// classification, the silence-terminated auto-stop loop, and the
// interactively paused/resumed recording state machine.
package recorder

import (
	"time"

	"github.com/janwychowaniak/letstalk/encoder"
)

// Session is the ordered accumulation of blocks produced by one recording
// invocation. Blocks stay in device arrival order; it grows only while the
// recording loop runs and is handed to the encoder once finished.
type Session struct {
	Start      time.Time
	BlocksSeen int // every block pulled from the device, retained or not

	blocks [][]int16
}

func NewSession() *Session {
	return &Session{Start: time.Now()}
}

func (s *Session) Append(block []int16) {
	s.blocks = append(s.blocks, block)
}

// Blocks returns the retained blocks in arrival order.
func (s *Session) Blocks() [][]int16 {
	return s.blocks
}

func (s *Session) BlocksKept() int {
	return len(s.blocks)
}

func (s *Session) Empty() bool {
	return len(s.blocks) == 0
}

// Duration is the audio length of the retained blocks.
func (s *Session) Duration() time.Duration {
	frames := 0
	for _, b := range s.blocks {
		frames += len(b)
	}
	return time.Duration(frames) * time.Second / time.Duration(encoder.SampleRate)
}
