// Command listen records from the microphone, stops on trailing silence (or
// under manual pause/resume control), and sends the take to a transcription
// provider. The transcript is printed and copied to the clipboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/janwychowaniak/letstalk/audio"
	"github.com/janwychowaniak/letstalk/clipboard"
	"github.com/janwychowaniak/letstalk/config"
	"github.com/janwychowaniak/letstalk/console"
	"github.com/janwychowaniak/letstalk/encoder"
	"github.com/janwychowaniak/letstalk/log"
	"github.com/janwychowaniak/letstalk/recorder"
	"github.com/janwychowaniak/letstalk/transcriber"
)

var (
	speechStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	silentStyle = lipgloss.NewStyle().Faint(true)
	pausedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
)

type options struct {
	lang     string
	service  string
	duration float64
	backup   bool
	input    string
	manual   bool
	format   string
	setup    bool
	device   string
	verbose  bool
}

func main() {
	var opts options
	flag.StringVar(&opts.lang, "lang", "en", "language hint passed to the transcription API")
	flag.StringVar(&opts.service, "service", "", "transcription service: groq or openai (default: by available key)")
	flag.Float64Var(&opts.duration, "duration", 60, "maximum recording length in seconds")
	flag.BoolVar(&opts.backup, "backup", false, "keep the encoded file instead of transcribing it")
	flag.StringVar(&opts.input, "input", "", "transcribe an existing WAV file instead of recording")
	flag.BoolVar(&opts.manual, "manual", false, "pause/resume with Enter, stop with q, instead of auto-stop on silence")
	flag.StringVar(&opts.format, "format", "wav", "encoding for the recorded take: wav or flac")
	flag.BoolVar(&opts.setup, "setup", false, "pick the capture device interactively")
	flag.StringVar(&opts.device, "device", "", "capture device name (default: system default)")
	flag.BoolVar(&opts.verbose, "verbose", false, "debug logging")
	flag.Parse()

	log.SetVerbose(opts.verbose)

	if err := run(&opts); err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}

func run(opts *options) error {
	cfg := config.Load()

	if opts.input != "" {
		return transcribeFile(opts, cfg)
	}

	var tr transcriber.Transcriber
	if !opts.backup {
		var err error
		tr, err = transcriber.New(opts.service, opts.lang, cfg.GroqSTTKey, cfg.OpenAISTTKey)
		if err != nil {
			return err
		}
	}

	sess, err := record(opts, tr)
	if err != nil {
		return err
	}
	if sess.Empty() {
		log.Info("no audio recorded, nothing to do")
		return nil
	}
	log.Recording(sess.BlocksSeen, sess.BlocksKept(), sess.Duration().Seconds())

	enc, err := encoder.New(opts.format)
	if err != nil {
		return err
	}
	for _, block := range sess.Blocks() {
		if err := enc.EncodeBlock(block); err != nil {
			return fmt.Errorf("encoding take: %w", err)
		}
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding take: %w", err)
	}

	path := filepath.Join(os.TempDir(),
		fmt.Sprintf("listen-in-%d.%s", time.Now().Unix(), encoder.Ext(opts.format)))
	if err := os.WriteFile(path, enc.Bytes(), 0o600); err != nil {
		return fmt.Errorf("writing take: %w", err)
	}

	if opts.backup {
		fmt.Println(path)
		return nil
	}
	defer os.Remove(path)

	return transcribe(tr, enc.Bytes(), opts.format)
}

// record runs one take, auto or manual, with a live status line on stdout.
func record(opts *options, tr transcriber.Transcriber) (*recorder.Session, error) {
	actx, err := audio.NewContext()
	if err != nil {
		return nil, fmt.Errorf("audio backend: %w", err)
	}
	defer actx.Close()

	var dev *audio.DeviceInfo
	switch {
	case opts.setup:
		dev, err = audio.SelectDevice(actx)
	case opts.device != "":
		dev, err = audio.FindDevice(actx, opts.device)
	}
	if err != nil {
		return nil, err
	}
	if dev != nil && audio.IsBluetooth(dev.Name) {
		log.Warnf("%s looks like a Bluetooth headset; expect reduced audio quality", dev.Name)
	}

	// Open the provider's TLS connection while the user is still speaking.
	if w, ok := tr.(interface{ Warm() }); ok {
		w.Warm()
	}

	maxBlocks := int(opts.duration * encoder.SampleRate / encoder.BlockSize)

	if opts.manual {
		fmt.Println("Enter: record/pause, q: stop")
		r := recorder.NewInteractive(console.Stdin{}, func() (recorder.Stream, error) {
			return audio.OpenStream(actx, dev)
		})
		if console.IsTerminal(os.Stdin) {
			r.Raw = console.RawMode
		}
		r.OnBlock = func(st recorder.State, peak int, c recorder.Classification) {
			if st == recorder.Paused {
				fmt.Printf("\r\x1b[K%s", pausedStyle.Render("[paused] Enter to resume, q to stop"))
				return
			}
			printAmplitude(peak, c)
		}
		sess, err := r.Record()
		fmt.Print("\r\x1b[K")
		return sess, err
	}

	stream, err := audio.OpenStream(actx, dev)
	if err != nil {
		return nil, err
	}
	fmt.Println("Recording... stops after 2s of silence")
	r := &recorder.AutoStop{
		MaxBlocks: maxBlocks,
		OnBlock:   printAmplitude,
	}
	sess := r.Record(stream)
	fmt.Print("\r\x1b[K")
	return sess, nil
}

func printAmplitude(peak int, c recorder.Classification) {
	tag := silentStyle.Render("[silent]")
	if c == recorder.Speech {
		tag = speechStyle.Render("[SPEECH]")
	}
	fmt.Printf("\r\x1b[KAmplitude: %5d/%d %s", peak, recorder.SilenceThreshold, tag)
}

// ignoredInFileMode lists the recording flags that have no effect when
// transcribing an existing file.
func ignoredInFileMode(opts *options) []string {
	var names []string
	for _, f := range []struct {
		name string
		set  bool
	}{
		{"-duration", opts.duration != 60},
		{"-manual", opts.manual},
		{"-setup", opts.setup},
		{"-device", opts.device != ""},
		{"-backup", opts.backup},
	} {
		if f.set {
			names = append(names, f.name)
		}
	}
	return names
}

// transcribeFile handles -input: an already-recorded file, no capture.
func transcribeFile(opts *options, cfg *config.Config) error {
	for _, name := range ignoredInFileMode(opts) {
		log.Warnf("%s is ignored in file mode", name)
	}

	format := strings.TrimPrefix(filepath.Ext(opts.input), ".")
	if format != "wav" {
		log.Warnf("%s does not look like a WAV file; sending it anyway", opts.input)
		if format == "" {
			format = "wav"
		}
	}

	data, err := os.ReadFile(opts.input)
	if err != nil {
		return err
	}

	tr, err := transcriber.New(opts.service, opts.lang, cfg.GroqSTTKey, cfg.OpenAISTTKey)
	if err != nil {
		return err
	}
	return transcribe(tr, data, format)
}

func transcribe(tr transcriber.Transcriber, audioData []byte, format string) error {
	log.Infof("transcribing %d KiB via %s", len(audioData)/1024, tr.Name())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	res, err := tr.Transcribe(ctx, audioData, format)
	if err != nil {
		return err
	}
	if m := res.Metrics; m != nil {
		log.RequestMetrics(tr.Name(),
			m.DNS.Milliseconds(), m.TLS.Milliseconds(),
			m.TTFB.Milliseconds(), m.Total.Milliseconds(), m.ConnReused)
	}
	log.Debugf("rate limit: %s requests remaining", res.RateLimit)

	text := strings.TrimSpace(res.Text)
	fmt.Println(text)
	if err := clipboard.Copy(text); err != nil {
		log.Warnf("clipboard copy failed: %v", err)
	}
	return nil
}
