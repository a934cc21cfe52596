// Package console owns the controlling terminal: raw-mode switching with
// guaranteed restore, single-character reads, and tty detection.
package console

import (
	"fmt"
	"os"
	"sync"

	"golang.org/x/term"
)

// RawMode puts stdin into unbuffered single-character mode and returns a
// restore function. The restore function is idempotent, so it can sit in a
// defer and still be called early on specific exit paths.
func RawMode() (func(), error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}
	var once sync.Once
	return func() {
		once.Do(func() { term.Restore(fd, oldState) })
	}, nil
}

// Stdin reads key presses one byte at a time. Meaningful only while the
// terminal is in raw mode.
type Stdin struct{}

func (Stdin) ReadKey() (byte, error) {
	var buf [1]byte
	if _, err := os.Stdin.Read(buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

// IsTerminal reports whether f is attached to a terminal. Used to detect
// piped stdin.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
