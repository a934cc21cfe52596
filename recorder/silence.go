package recorder

import (
	"time"

	"github.com/janwychowaniak/letstalk/encoder"
)

const (
	// SilenceThreshold is calibrated for 16-bit signed PCM at 16 kHz. A
	// block whose peak is strictly below it classifies as silent; a peak
	// exactly at the threshold counts as speech.
	SilenceThreshold = 800

	// SilenceDuration is how much uninterrupted trailing silence ends an
	// auto-stop take. Lower is more responsive to speech endings.
	SilenceDuration = 2 * time.Second
)

type Classification int

const (
	Silent Classification = iota
	Speech
)

// Peak returns the maximum absolute sample value in the block.
func Peak(block []int16) int {
	peak := 0
	for _, s := range block {
		v := int(s)
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// Classify compares the block's peak amplitude against SilenceThreshold.
func Classify(block []int16) Classification {
	if Peak(block) < SilenceThreshold {
		return Silent
	}
	return Speech
}

// silenceBlocks converts SilenceDuration into a block count at the fixed
// capture parameters (31 blocks for 2 s at 16 kHz / 1024-sample blocks).
func silenceBlocks() int {
	return int(SilenceDuration.Seconds() * encoder.SampleRate / encoder.BlockSize)
}
