package transcriber

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
)

const groqURL = "https://api.groq.com/openai/v1/audio/transcriptions"

type Groq struct {
	apiKey string
	apiURL string
	lang   string
	client *TracedClient
}

func NewGroq(apiKey, lang string) *Groq {
	return &Groq{
		apiKey: apiKey,
		apiURL: groqURL,
		lang:   lang,
		client: NewTracedClient(groqURL),
	}
}

func (g *Groq) Name() string { return "groq" }

// Warm pre-opens the TLS connection.
func (g *Groq) Warm() { go g.client.Warm() }

func (g *Groq) Transcribe(ctx context.Context, audio []byte, format string) (*Result, error) {
	return upload(ctx, g.client, g.apiURL, g.apiKey, "whisper-large-v3", g.lang, audio, format)
}

// upload is the multipart request shape both providers share.
func upload(ctx context.Context, client *TracedClient, apiURL, apiKey, model, lang string, audio []byte, format string) (*Result, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "audio."+format)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(audio); err != nil {
		return nil, err
	}

	writer.WriteField("model", model)
	writer.WriteField("response_format", "json")
	if lang != "" {
		writer.WriteField("language", lang)
	}
	writer.Close()

	req, err := http.NewRequestWithContext(ctx, "POST", apiURL, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("transcription request: %w", err)
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("transcription API error %d: %s", resp.StatusCode, string(resp.Body))
	}

	var parsed struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(resp.Body, &parsed); err != nil {
		return nil, fmt.Errorf("transcription response parse error: %w", err)
	}

	remaining := firstNonEmpty(resp.Header, "x-ratelimit-remaining-requests")
	limit := firstNonEmpty(resp.Header, "x-ratelimit-limit-requests")

	return &Result{
		Text:      parsed.Text,
		RateLimit: remaining + "/" + limit,
		Metrics:   resp.Metrics,
	}, nil
}
