// Package player plays synthesized audio through VLC's command-line binary.
package player

import (
	"fmt"
	"os/exec"
)

const (
	binary = "cvlc"
	rate   = "1.3"
)

// Lookup resolves the player binary. Call it before doing any expensive work
// so a missing VLC fails fast.
func Lookup() (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%s not found, install VLC to play audio: %w", binary, err)
	}
	return path, nil
}

// Play blocks until playback finishes.
func Play(path string, file string) error {
	cmd := exec.Command(path, "--rate="+rate, "--play-and-exit", file)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

// Command returns the shell line a user can run to replay the file.
func Command(file string) string {
	return fmt.Sprintf("%s --rate=%s --play-and-exit %s", binary, rate, file)
}
