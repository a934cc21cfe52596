// Package encoder wraps finished PCM blocks in a container the transcription
// providers accept. WAV is the default; FLAC trades encode time for a much
// smaller upload.
package encoder

import "fmt"

const (
	SampleRate    = 16000
	Channels      = 1
	BitsPerSample = 16
	BlockSize     = 1024 // samples per capture block
)

type Encoder interface {
	EncodeBlock(block []int16) error
	Close() error
	Bytes() []byte
	TotalFrames() uint64
}

func New(format string) (Encoder, error) {
	switch format {
	case "wav":
		return NewWav(), nil
	case "flac":
		return NewFlac()
	default:
		return nil, fmt.Errorf("unknown format %q (use wav or flac)", format)
	}
}

// Ext returns the file extension for an encoder format, which is also the
// format name the provider APIs expect.
func Ext(format string) string {
	return format
}
