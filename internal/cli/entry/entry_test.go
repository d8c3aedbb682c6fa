package entry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg == nil || cfg.Logging.Level != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
}

func TestLoadConfigParses(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	data := "logging:\n  level: debug\n  sink: stderr\ndefaults:\n  agent: claude\n  skip_permissions: true\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error: %v", err)
	}
	if cfg.Logging.Level == nil || *cfg.Logging.Level != "debug" {
		t.Fatalf("level = %v", cfg.Logging.Level)
	}
	if cfg.Logging.Sink == nil || *cfg.Logging.Sink != "stderr" {
		t.Fatalf("sink = %v", cfg.Logging.Sink)
	}
	if cfg.Defaults.Agent != "claude" || !cfg.Defaults.SkipPermissions {
		t.Fatalf("defaults = %+v", cfg.Defaults)
	}
}

func TestLoadConfigRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestBuildCommandShape(t *testing.T) {
	cmd := buildCommand("1.2.3")
	if cmd.Name != "workbench" {
		t.Fatalf("name = %q", cmd.Name)
	}
	if cmd.Version != "1.2.3" {
		t.Fatalf("version = %q", cmd.Version)
	}
	names := make([]string, 0, len(cmd.Commands))
	for _, sub := range cmd.Commands {
		names = append(names, sub.Name)
	}
	joined := strings.Join(names, ",")
	for _, want := range []string{"add", "list"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("missing subcommand %q in %q", want, joined)
		}
	}
}
