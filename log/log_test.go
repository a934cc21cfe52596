package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// capture swaps the package logger for one writing to a buffer, returning
// the buffer and a restore function.
func capture() (*bytes.Buffer, func()) {
	var buf bytes.Buffer
	mu.Lock()
	old := logger
	logger = zerolog.New(&buf).Level(zerolog.InfoLevel)
	mu.Unlock()
	return &buf, func() {
		mu.Lock()
		logger = old
		mu.Unlock()
	}
}

func TestEveryLevelEmits(t *testing.T) {
	buf, restore := capture()
	defer restore()

	Info("plain info")
	Infof("formatted %s", "info")
	Warnf("formatted %s", "warning")
	Errorf("formatted %s", "error")
	Recording(10, 8, 0.512)
	RequestMetrics("groq", 1, 2, 3, 4, true)

	out := buf.String()
	for _, want := range []string{
		"plain info", "formatted info", "formatted warning",
		"formatted error", "blocks_seen", "ttfb_ms",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestVerboseGatesDebug(t *testing.T) {
	buf, restore := capture()
	defer restore()

	Debugf("hidden")
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug line emitted at info level")
	}

	SetVerbose(true)
	defer SetVerbose(false)
	Debugf("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug line missing at debug level")
	}
}
