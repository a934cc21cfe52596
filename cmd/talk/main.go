// Command talk turns text into speech: it chunks the input at sentence
// boundaries, synthesizes the chunks concurrently, concatenates the audio in
// text order, and writes one MP3, optionally playing it.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/janwychowaniak/letstalk/config"
	"github.com/janwychowaniak/letstalk/console"
	"github.com/janwychowaniak/letstalk/log"
	"github.com/janwychowaniak/letstalk/player"
	"github.com/janwychowaniak/letstalk/tts"
)

func main() {
	var (
		text    = flag.String("text", "", "text to speak")
		input   = flag.String("input", "", "read the text from this file")
		play    = flag.Bool("play", false, "play the result when synthesis finishes")
		model   = flag.String("model", "tts-1", "speech model: tts-1 or tts-1-hd")
		voice   = flag.String("voice", "nova", "voice: alloy, echo, fable, onyx, nova or shimmer")
		verbose = flag.Bool("verbose", false, "debug logging")
	)
	flag.Parse()

	log.SetVerbose(*verbose)

	if err := run(*text, *input, *model, *voice, *play); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

// gatherText resolves the one allowed text source and strips surrounding
// whitespace, so chunking never sees a leading or trailing newline.
func gatherText(text, input string, piped bool, stdin io.Reader) (string, error) {
	sources := 0
	for _, present := range []bool{text != "", input != "", piped} {
		if present {
			sources++
		}
	}
	if sources != 1 {
		return "", fmt.Errorf("give the text exactly one way: -text, -input, or piped stdin")
	}

	switch {
	case input != "":
		data, err := os.ReadFile(input)
		if err != nil {
			return "", err
		}
		text = string(data)
	case piped:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		text = string(data)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("nothing to say: the input text is empty")
	}
	return text, nil
}

func run(text, input, model, voice string, play bool) error {
	text, err := gatherText(text, input, !console.IsTerminal(os.Stdin), os.Stdin)
	if err != nil {
		return err
	}

	if !slices.Contains(tts.Models, model) {
		return fmt.Errorf("unknown model %q (use %s)", model, strings.Join(tts.Models, " or "))
	}
	if !slices.Contains(tts.Voices, voice) {
		return fmt.Errorf("unknown voice %q (use one of %s)", voice, strings.Join(tts.Voices, ", "))
	}

	// Resolve the player before spending money on synthesis.
	var playerPath string
	if play {
		playerPath, err = player.Lookup()
		if err != nil {
			return err
		}
	}

	cfg := config.Load()
	if cfg.OpenAITTSKey == "" {
		return fmt.Errorf("set OPENAI_API_KEY_TTS")
	}
	synth := tts.NewOpenAI(cfg.OpenAITTSKey)

	log.Infof("synthesizing %d characters via %s", len(text), synth.Name())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	audio, err := tts.Speak(ctx, synth, text, model, voice, func(done, total int) {
		fmt.Printf("\r\x1b[KSynthesized chunk %d/%d", done, total)
	})
	fmt.Print("\r\x1b[K")
	if err != nil {
		return err
	}

	out := filepath.Join(os.TempDir(), fmt.Sprintf("talk-out-%d.mp3", time.Now().Unix()))
	if err := os.WriteFile(out, audio, 0o600); err != nil {
		return fmt.Errorf("writing audio: %w", err)
	}
	fmt.Println(out)

	if play {
		return player.Play(playerPath, out)
	}
	fmt.Printf("replay with: %s\n", player.Command(out))
	return nil
}
