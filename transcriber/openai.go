package transcriber

import "context"

const openaiURL = "https://api.openai.com/v1/audio/transcriptions"

type OpenAI struct {
	apiKey string
	apiURL string
	lang   string
	client *TracedClient
}

func NewOpenAI(apiKey, lang string) *OpenAI {
	return &OpenAI{
		apiKey: apiKey,
		apiURL: openaiURL,
		lang:   lang,
		client: NewTracedClient(openaiURL),
	}
}

func (o *OpenAI) Name() string { return "openai" }

// Warm pre-opens the TLS connection.
func (o *OpenAI) Warm() { go o.client.Warm() }

func (o *OpenAI) Transcribe(ctx context.Context, audio []byte, format string) (*Result, error) {
	return upload(ctx, o.client, o.apiURL, o.apiKey, "whisper-1", o.lang, audio, format)
}
