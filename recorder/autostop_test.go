package recorder

import (
	"errors"
	"testing"

	"github.com/janwychowaniak/letstalk/encoder"
)

type scriptStream struct {
	blocks [][]int16
	next   int
	err    error // returned once the script is exhausted
	closed int
}

func (s *scriptStream) ReadBlock() ([]int16, error) {
	if s.next < len(s.blocks) {
		b := s.blocks[s.next]
		s.next++
		return b, nil
	}
	if s.err != nil {
		return nil, s.err
	}
	return nil, errors.New("script exhausted")
}

func (s *scriptStream) Close() { s.closed++ }

func silentBlock() []int16 {
	return make([]int16, encoder.BlockSize)
}

func speechBlock() []int16 {
	b := make([]int16, encoder.BlockSize)
	b[0] = 3000
	return b
}

func repeat(mk func() []int16, n int) [][]int16 {
	out := make([][]int16, n)
	for i := range out {
		out[i] = mk()
	}
	return out
}

func TestAutoStopSilenceTerminated(t *testing.T) {
	const leadIn, speech = 5, 3
	var blocks [][]int16
	blocks = append(blocks, repeat(silentBlock, leadIn)...)
	blocks = append(blocks, repeat(speechBlock, speech)...)
	blocks = append(blocks, repeat(silentBlock, 100)...)
	stream := &scriptStream{blocks: blocks}

	rec := &AutoStop{}
	sess := rec.Record(stream)

	// The stop fires one block after the silence count reaches the
	// threshold, so the take is leadIn + speech + silenceBlocks() + 1 long.
	want := leadIn + speech + silenceBlocks() + 1
	if sess.BlocksKept() != want {
		t.Errorf("BlocksKept = %d, want %d", sess.BlocksKept(), want)
	}
	if sess.BlocksSeen != want {
		t.Errorf("BlocksSeen = %d, want %d", sess.BlocksSeen, want)
	}
	if stream.closed != 1 {
		t.Errorf("stream closed %d times, want 1", stream.closed)
	}
}

func TestAutoStopAllSilentStopsAtCap(t *testing.T) {
	const maxBlocks = 50
	stream := &scriptStream{blocks: repeat(silentBlock, 200)}

	rec := &AutoStop{MaxBlocks: maxBlocks}
	sess := rec.Record(stream)

	// No speech ever arrived: only the cap may stop the take, and the
	// short silent session is a normal result, not an error.
	if sess.BlocksKept() != maxBlocks {
		t.Errorf("BlocksKept = %d, want %d", sess.BlocksKept(), maxBlocks)
	}
}

func TestAutoStopCapWinsOverSilenceRule(t *testing.T) {
	const maxBlocks = 10
	var blocks [][]int16
	blocks = append(blocks, repeat(speechBlock, 2)...)
	blocks = append(blocks, repeat(silentBlock, 100)...)
	stream := &scriptStream{blocks: blocks}

	rec := &AutoStop{MaxBlocks: maxBlocks}
	sess := rec.Record(stream)

	if sess.BlocksKept() != maxBlocks {
		t.Errorf("BlocksKept = %d, want %d", sess.BlocksKept(), maxBlocks)
	}
}

func TestAutoStopDeviceFaultReturnsPartial(t *testing.T) {
	stream := &scriptStream{
		blocks: repeat(speechBlock, 10),
		err:    errors.New("device unplugged"),
	}

	rec := &AutoStop{}
	sess := rec.Record(stream)

	if sess.BlocksKept() != 10 {
		t.Errorf("BlocksKept = %d, want 10", sess.BlocksKept())
	}
	if stream.closed != 1 {
		t.Errorf("stream closed %d times, want 1", stream.closed)
	}
}

func TestAutoStopFeedback(t *testing.T) {
	var blocks [][]int16
	blocks = append(blocks, silentBlock(), speechBlock())
	blocks = append(blocks, repeat(silentBlock, 100)...)
	stream := &scriptStream{blocks: blocks}

	var classes []Classification
	rec := &AutoStop{OnBlock: func(peak int, c Classification) {
		classes = append(classes, c)
	}}
	sess := rec.Record(stream)

	if len(classes) != sess.BlocksKept() {
		t.Fatalf("feedback for %d blocks, kept %d", len(classes), sess.BlocksKept())
	}
	if classes[0] != Silent || classes[1] != Speech {
		t.Errorf("classes[0:2] = %v, want [Silent Speech]", classes[:2])
	}
}
