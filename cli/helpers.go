// Package cli implements keyforge's terminal front end: a thin,
// synchronous layer over internal/session and the internal/vault
// store (spec §9's "thin async veneer" note — there is no asynchrony
// here at all, only sequential prompts and blocking I/O).
package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/term"
)

// ConfigDir returns the directory keyforge stores its vault and config
// under: $KEYFORGE_CONFIG_DIR if set, else $HOME/.keyforge (spec §6).
func ConfigDir() (string, error) {
	if dir := os.Getenv("KEYFORGE_CONFIG_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".keyforge"), nil
}

// VaultPath returns the path to the vault file, creating ConfigDir if
// it does not already exist.
func VaultPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", err
	}
	return filepath.Join(dir, "vault.kf"), nil
}

// ReadPasswordMasked prompts on stdout and reads a line from stdin
// without echoing it, via the terminal's raw password mode.
func ReadPasswordMasked(prompt string) ([]byte, error) {
	fmt.Print(prompt)
	pw, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	return pw, err
}

// ReadLine prompts on stdout and returns one trimmed line from r.
func ReadLine(r *bufio.Reader, prompt string) string {
	fmt.Print(prompt)
	line, _ := r.ReadString('\n')
	return strings.TrimSpace(line)
}
