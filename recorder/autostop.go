package recorder

import (
	"github.com/janwychowaniak/letstalk/log"
)

// Stream delivers fixed-size sample blocks in arrival order.
// audio.BlockStream satisfies it; tests use scripted stand-ins.
type Stream interface {
	ReadBlock() ([]int16, error)
	Close()
}

// BlockFunc receives per-block feedback while a recording loop runs.
type BlockFunc func(peak int, c Classification)

// AutoStop records until speech has been heard and enough consecutive
// silence follows it. Every block is retained, leading silence included, so
// the encoded take keeps its natural lead-in.
type AutoStop struct {
	// MaxBlocks caps the take length; 0 means uncapped. The cap also stops
	// takes in which no speech ever arrives.
	MaxBlocks int

	OnBlock BlockFunc
}

// Record runs the capture loop and returns the accumulated session. The
// stream is closed before returning. A device read fault ends the take early
// with whatever was captured; it is logged, never surfaced.
func (r *AutoStop) Record(stream Stream) *Session {
	defer stream.Close()

	sess := NewSession()
	hasSpeech := false
	consecutiveSilent := 0
	stopAfter := silenceBlocks()

	for {
		block, err := stream.ReadBlock()
		if err != nil {
			log.Warnf("audio read failed, ending take: %v", err)
			return sess
		}

		sess.BlocksSeen++
		sess.Append(block)

		c := Classify(block)
		if c == Speech {
			consecutiveSilent = 0
			hasSpeech = true
		} else {
			consecutiveSilent++
		}

		if r.OnBlock != nil {
			r.OnBlock(Peak(block), c)
		}

		// Strictly greater than: the take ends one block after the silence
		// count reaches stopAfter, not at it. Users tune SilenceDuration
		// around this exact behavior.
		if hasSpeech && consecutiveSilent > stopAfter {
			return sess
		}
		if r.MaxBlocks > 0 && sess.BlocksSeen >= r.MaxBlocks {
			return sess
		}
	}
}
