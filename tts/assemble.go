package tts

import (
	"errors"
	"fmt"
)

// ErrMissingFragment reports a chunk whose synthesis call never produced
// audio. Assembly aborts rather than emitting a stream with a hole in it.
var ErrMissingFragment = errors.New("missing audio fragment")

// Assemble concatenates per-chunk audio fragments in chunk order. Fragments
// are opaque bytes in whatever encoding the provider returned; no
// re-encoding or boundary smoothing happens here.
func Assemble(fragments [][]byte) ([]byte, error) {
	total := 0
	for i, frag := range fragments {
		if frag == nil {
			return nil, fmt.Errorf("%w: chunk %d of %d", ErrMissingFragment, i+1, len(fragments))
		}
		total += len(frag)
	}

	out := make([]byte, 0, total)
	for _, frag := range fragments {
		out = append(out, frag...)
	}
	return out, nil
}
