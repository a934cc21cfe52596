package transcriber

import (
	"context"
	"mime"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGroqTranscribe(t *testing.T) {
	var gotModel, gotLang, gotFile string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		mt, params, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
		if mt != "multipart/form-data" {
			t.Fatalf("Content-Type = %q", mt)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v (boundary %q)", err, params["boundary"])
		}
		gotModel = r.FormValue("model")
		gotLang = r.FormValue("language")
		if fhs := r.MultipartForm.File["file"]; len(fhs) == 1 {
			gotFile = fhs[0].Filename
		}
		w.Header().Set("x-ratelimit-remaining-requests", "41")
		w.Header().Set("x-ratelimit-limit-requests", "100")
		w.Write([]byte(`{"text": " hello world "}`))
	}))
	defer srv.Close()

	tr := NewGroq("test-key", "en")
	tr.apiURL = srv.URL

	res, err := tr.Transcribe(context.Background(), []byte{1, 2, 3}, "wav")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Text != " hello world " {
		t.Errorf("Text = %q", res.Text)
	}
	if res.RateLimit != "41/100" {
		t.Errorf("RateLimit = %q, want 41/100", res.RateLimit)
	}
	if gotModel != "whisper-large-v3" {
		t.Errorf("model = %q", gotModel)
	}
	if gotLang != "en" {
		t.Errorf("language = %q", gotLang)
	}
	if gotFile != "audio.wav" {
		t.Errorf("file name = %q", gotFile)
	}
	if res.Metrics == nil || res.Metrics.Total <= 0 {
		t.Error("expected populated network metrics")
	}
}

func TestOpenAITranscribeOmitsEmptyLanguage(t *testing.T) {
	var gotModel string
	var langPresent bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotModel = r.FormValue("model")
		_, langPresent = r.MultipartForm.Value["language"]
		w.Write([]byte(`{"text":"ok"}`))
	}))
	defer srv.Close()

	tr := NewOpenAI("k", "")
	tr.apiURL = srv.URL

	res, err := tr.Transcribe(context.Background(), []byte("pcm"), "flac")
	if err != nil {
		t.Fatalf("Transcribe: %v", err)
	}
	if res.Text != "ok" {
		t.Errorf("Text = %q", res.Text)
	}
	if gotModel != "whisper-1" {
		t.Errorf("model = %q", gotModel)
	}
	if langPresent {
		t.Error("language field sent despite being unset")
	}
	if res.RateLimit != "?/?" {
		t.Errorf("RateLimit = %q, want ?/? when headers absent", res.RateLimit)
	}
}

func TestTranscribeAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid api key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	tr := NewGroq("bad-key", "")
	tr.apiURL = srv.URL

	_, err := tr.Transcribe(context.Background(), []byte("pcm"), "wav")
	if err == nil {
		t.Fatal("expected error on 401")
	}
	if !strings.Contains(err.Error(), "401") || !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("err = %v, want status and body", err)
	}
}

func TestNewProviderSelection(t *testing.T) {
	tests := []struct {
		name      string
		service   string
		groqKey   string
		openaiKey string
		want      string // provider name, "" for error
	}{
		{"explicit groq", "groq", "gk", "", "groq"},
		{"explicit openai", "openai", "", "ok", "openai"},
		{"groq without key", "groq", "", "ok", ""},
		{"openai without key", "openai", "gk", "", ""},
		{"auto prefers groq", "", "gk", "ok", "groq"},
		{"auto falls back to openai", "", "", "ok", "openai"},
		{"auto with no keys", "", "", "", ""},
		{"unknown service", "whisperx", "gk", "ok", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tr, err := New(tt.service, "en", tt.groqKey, tt.openaiKey)
			if tt.want == "" {
				if err == nil {
					t.Fatalf("New(%q) succeeded, want error", tt.service)
				}
				return
			}
			if err != nil {
				t.Fatalf("New(%q): %v", tt.service, err)
			}
			if tr.Name() != tt.want {
				t.Errorf("provider = %q, want %q", tr.Name(), tt.want)
			}
		})
	}
}
