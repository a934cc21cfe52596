package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGatherTextStripsWhitespace(t *testing.T) {
	file := filepath.Join(t.TempDir(), "in.txt")
	if err := os.WriteFile(file, []byte("Hello there.\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		text  string
		input string
		piped string
		want  string
	}{
		{"flag text", "  spoken text\n", "", "", "spoken text"},
		{"file with trailing newline", "", file, "", "Hello there."},
		{"piped stdin", "", "", "\n piped words \n\n", "piped words"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := gatherText(tt.text, tt.input, tt.piped != "", strings.NewReader(tt.piped))
			if err != nil {
				t.Fatalf("gatherText: %v", err)
			}
			if got != tt.want {
				t.Errorf("gatherText = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGatherTextSourceValidation(t *testing.T) {
	if _, err := gatherText("", "", false, strings.NewReader("")); err == nil {
		t.Error("no source accepted")
	}
	if _, err := gatherText("hi", "file.txt", false, strings.NewReader("")); err == nil {
		t.Error("two sources accepted")
	}
	if _, err := gatherText("   \n\t ", "", false, strings.NewReader("")); err == nil {
		t.Error("whitespace-only text accepted")
	}
}
