// Package log is a thin zerolog front end shared by both binaries.
// Diagnostics go to stderr so status lines on stdout stay clean.
package log

import (
	"fmt"
	"os"
	"sync"

	"github.com/rs/zerolog"
)

var (
	mu     sync.Mutex
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: "15:04:05",
	}).With().Timestamp().Logger().Level(zerolog.InfoLevel)
)

// SetVerbose lowers the level filter to debug.
func SetVerbose(on bool) {
	mu.Lock()
	defer mu.Unlock()
	if on {
		logger = logger.Level(zerolog.DebugLevel)
	} else {
		logger = logger.Level(zerolog.InfoLevel)
	}
}

func get() zerolog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

func Info(msg string) {
	l := get()
	l.Info().Msg(msg)
}

func Infof(format string, args ...any) {
	l := get()
	l.Info().Msg(fmt.Sprintf(format, args...))
}

func Warnf(format string, args ...any) {
	l := get()
	l.Warn().Msg(fmt.Sprintf(format, args...))
}

func Errorf(format string, args ...any) {
	l := get()
	l.Error().Msg(fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...any) {
	l := get()
	l.Debug().Msg(fmt.Sprintf(format, args...))
}

// Recording summarizes one finished capture.
func Recording(blocksSeen, blocksKept int, durationS float64) {
	l := get()
	l.Info().
		Int("blocks_seen", blocksSeen).
		Int("blocks_kept", blocksKept).
		Float64("audio_s", durationS).
		Msg("recording")
}

// RequestMetrics logs the network timings of one provider round trip.
func RequestMetrics(provider string, dnsMs, tlsMs, ttfbMs, totalMs int64, connReused bool) {
	conn := "new"
	if connReused {
		conn = "reused"
	}
	l := get()
	l.Info().
		Str("provider", provider).
		Str("conn", conn).
		Int64("dns_ms", dnsMs).
		Int64("tls_ms", tlsMs).
		Int64("ttfb_ms", ttfbMs).
		Int64("total_ms", totalMs).
		Msg("request")
}
