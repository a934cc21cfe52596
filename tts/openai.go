package tts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Synthesizer renders one bounded text chunk to audio bytes.
type Synthesizer interface {
	Name() string
	Synthesize(ctx context.Context, text, model, voice string) ([]byte, error)
}

// Models and voices the OpenAI speech endpoint accepts.
var (
	Models = []string{"tts-1", "tts-1-hd"}
	Voices = []string{"alloy", "echo", "fable", "onyx", "nova", "shimmer"}
)

type OpenAI struct {
	apiKey string
	apiURL string
	client *http.Client
}

func NewOpenAI(apiKey string) *OpenAI {
	return &OpenAI{
		apiKey: apiKey,
		apiURL: "https://api.openai.com/v1/audio/speech",
		client: &http.Client{
			Transport: &http.Transport{
				MaxIdleConns:        4,
				MaxIdleConnsPerHost: 4,
				IdleConnTimeout:     90 * time.Second,
				ForceAttemptHTTP2:   true,
			},
		},
	}
}

func (o *OpenAI) Name() string { return "openai" }

type speechRequest struct {
	Model string `json:"model"`
	Voice string `json:"voice"`
	Input string `json:"input"`
}

func (o *OpenAI) Synthesize(ctx context.Context, text, model, voice string) ([]byte, error) {
	payload, err := json.Marshal(speechRequest{Model: model, Voice: voice, Input: text})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", o.apiURL, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("openai speech API error %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}
