//go:build !windows

package appdirs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/steferic/workbench/internal/identity"
)

// ConfigDir returns the directory holding config and persisted state,
// creating it on first use.
func ConfigDir() (string, error) {
	if override := os.Getenv(identity.EnvPrefix + "_CONFIG_DIR"); override != "" {
		return ensureDir(override)
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return ensureDir(filepath.Join(dir, identity.AppSlug))
}

// LogDir returns the directory for log files, creating it on first use.
func LogDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return ensureDir(filepath.Join(dir, "logs"))
}

func ensureDir(dir string) (string, error) {
	if dir == "" {
		return "", fmt.Errorf("appdirs: dir is empty")
	}
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("stat dir: %w", err)
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return "", fmt.Errorf("create dir: %w", err)
		}
		return dir, nil
	}
	if !info.IsDir() {
		return "", fmt.Errorf("appdirs: %q is not a directory", dir)
	}
	return dir, nil
}
