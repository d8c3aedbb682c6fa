package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func withCapturedLogger(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: level})))
	t.Cleanup(func() { slog.SetDefault(prev) })
	return &buf
}

func TestLogEverySuppressesWithinInterval(t *testing.T) {
	buf := withCapturedLogger(t, slog.LevelInfo)

	ctx := context.Background()
	LogEvery(ctx, "test.key.suppress", time.Hour, slog.LevelInfo, "first")
	LogEvery(ctx, "test.key.suppress", time.Hour, slog.LevelInfo, "second")

	out := buf.String()
	if !strings.Contains(out, "first") {
		t.Fatalf("expected first entry, got %q", out)
	}
	if strings.Contains(out, "second") {
		t.Fatalf("expected second entry suppressed, got %q", out)
	}
}

func TestLogEveryEmptyKeyAlwaysLogs(t *testing.T) {
	buf := withCapturedLogger(t, slog.LevelInfo)

	ctx := context.Background()
	LogEvery(ctx, "", time.Hour, slog.LevelInfo, "one")
	LogEvery(ctx, "", time.Hour, slog.LevelInfo, "two")

	out := buf.String()
	if !strings.Contains(out, "one") || !strings.Contains(out, "two") {
		t.Fatalf("expected both entries, got %q", out)
	}
}

func TestLogEveryRespectsLevel(t *testing.T) {
	buf := withCapturedLogger(t, slog.LevelError)

	LogEvery(context.Background(), "test.key.level", 0, slog.LevelDebug, "hidden")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestDefaultConfigWithEnvOverride(t *testing.T) {
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogSink, "none")

	cfg := DefaultConfig().WithEnv()
	if cfg.Level == nil || *cfg.Level != "debug" {
		t.Fatalf("Level = %v", cfg.Level)
	}
	if cfg.Sink == nil || *cfg.Sink != "none" {
		t.Fatalf("Sink = %v", cfg.Sink)
	}
}
