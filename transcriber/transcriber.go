// Package transcriber sends finished audio takes to a speech-to-text
// provider. Providers share the multipart upload shape and the traced HTTP
// client; they differ only in endpoint, model, and response parsing.
package transcriber

import (
	"context"
	"fmt"
	"net/http"
)

type Result struct {
	Text      string
	RateLimit string // "remaining/limit" or "?/?"
	Metrics   *NetworkMetrics
}

type Transcriber interface {
	Name() string
	// Transcribe uploads one complete audio file. format is the container
	// name the API expects ("wav" or "flac").
	Transcribe(ctx context.Context, audio []byte, format string) (*Result, error)
}

// New picks a provider. An empty service selects by available key, Groq
// first (it is the fast path for short dictation takes).
func New(service, lang, groqKey, openaiKey string) (Transcriber, error) {
	switch service {
	case "groq":
		if groqKey == "" {
			return nil, fmt.Errorf("groq selected but GROQ_API_KEY_STT is not set")
		}
		return NewGroq(groqKey, lang), nil
	case "openai":
		if openaiKey == "" {
			return nil, fmt.Errorf("openai selected but OPENAI_API_KEY_STT is not set")
		}
		return NewOpenAI(openaiKey, lang), nil
	case "":
		if groqKey != "" {
			return NewGroq(groqKey, lang), nil
		}
		if openaiKey != "" {
			return NewOpenAI(openaiKey, lang), nil
		}
		return nil, fmt.Errorf("set GROQ_API_KEY_STT or OPENAI_API_KEY_STT")
	}
	return nil, fmt.Errorf("unknown transcription service %q (use groq or openai)", service)
}

func firstNonEmpty(h http.Header, keys ...string) string {
	for _, k := range keys {
		if v := h.Get(k); v != "" {
			return v
		}
	}
	return "?"
}
