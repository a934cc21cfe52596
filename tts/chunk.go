// Package tts turns long text into speech: it partitions the text into
// synthesis-safe chunks, renders each chunk through a speech provider, and
// reassembles the returned audio fragments into one stream.
package tts

import (
	"strings"
	"unicode"
)

// MaxChunkLen is the per-request character limit of the speech API.
const MaxChunkLen = 4096

// Boundary characters tried in priority order: the first level with any hit
// inside the window wins, and the split lands on its last occurrence.
var boundaries = []byte{'.', '!', '?', '\n', ' '}

// Chunk splits text into pieces of at most maxLen bytes, cutting after
// sentence-ending punctuation where possible, then at newlines, then at
// spaces. A window with no boundary at all is cut hard at maxLen. The
// boundary character stays with the chunk it ends; whitespace between chunks
// is dropped.
func Chunk(text string, maxLen int) []string {
	var chunks []string
	for text != "" {
		if len(text) <= maxLen {
			chunks = append(chunks, text)
			break
		}

		window := text[:maxLen]
		split := -1
		for _, b := range boundaries {
			if idx := strings.LastIndexByte(window, b); idx != -1 {
				split = idx
				break
			}
		}
		if split == -1 {
			// No natural break anywhere in the window: force progress.
			split = maxLen - 1
		}

		chunks = append(chunks, text[:split+1])
		text = strings.TrimLeftFunc(text[split+1:], unicode.IsSpace)
	}
	return chunks
}
