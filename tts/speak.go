package tts

import (
	"context"
	"sync"
)

// maxInFlight bounds concurrent synthesis calls per Speak invocation.
const maxInFlight = 3

// ProgressFunc reports completed chunks: done out of total.
type ProgressFunc func(done, total int)

// Speak chunks text, renders every chunk through s, and returns the
// fragments concatenated in chunk order. Chunks are synthesized concurrently
// but the output order never depends on call latency. The first synthesis
// failure cancels the remaining calls and aborts the whole render; no
// partial audio is returned.
func Speak(ctx context.Context, s Synthesizer, text, model, voice string, progress ProgressFunc) ([]byte, error) {
	return speak(ctx, s, text, model, voice, MaxChunkLen, progress)
}

func speak(ctx context.Context, s Synthesizer, text, model, voice string, maxLen int, progress ProgressFunc) ([]byte, error) {
	chunks := Chunk(text, maxLen)
	fragments := make([][]byte, len(chunks))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
		done     int
	)
	sem := make(chan struct{}, maxInFlight)

	for i, chunk := range chunks {
		wg.Add(1)
		go func(i int, chunk string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return
			}
			defer func() { <-sem }()

			frag, err := s.Synthesize(ctx, chunk, model, voice)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
					cancel()
				}
				return
			}
			fragments[i] = frag
			done++
			if progress != nil {
				progress(done, len(chunks))
			}
		}(i, chunk)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return Assemble(fragments)
}
