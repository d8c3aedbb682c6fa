// Package userpath converts between ~-prefixed and absolute paths.
package userpath

import (
	"os"
	"path/filepath"
	"strings"
)

// Expand replaces a leading ~ with the current user's home directory.
// Paths without the prefix come back unchanged.
func Expand(path string) string {
	if path == "" || !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

// Shorten replaces the home directory prefix with ~ for display.
func Shorten(path string) string {
	if path == "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" || !strings.HasPrefix(path, home) {
		return path
	}
	return "~" + strings.TrimPrefix(path, home)
}
