package logging

import (
	"os"
	"strconv"
	"strings"

	"github.com/steferic/workbench/internal/identity"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

type Sink string

const (
	SinkStderr Sink = "stderr"
	SinkFile   Sink = "file"
	SinkNone   Sink = "none"
)

const (
	EnvLogLevel      = identity.EnvPrefix + "_LOG_LEVEL"
	EnvLogFormat     = identity.EnvPrefix + "_LOG_FORMAT"
	EnvLogSink       = identity.EnvPrefix + "_LOG_SINK"
	EnvLogFile       = identity.EnvPrefix + "_LOG_FILE"
	EnvLogAddSource  = identity.EnvPrefix + "_LOG_ADD_SOURCE"
	EnvLogMaxSizeMB  = identity.EnvPrefix + "_LOG_MAX_SIZE_MB"
	EnvLogMaxBackups = identity.EnvPrefix + "_LOG_MAX_BACKUPS"
	EnvLogMaxAgeDays = identity.EnvPrefix + "_LOG_MAX_AGE_DAYS"
	EnvLogCompress   = identity.EnvPrefix + "_LOG_COMPRESS"
)

type Config struct {
	Level     *string `yaml:"level,omitempty"`
	Format    *string `yaml:"format,omitempty"`
	Sink      *string `yaml:"sink,omitempty"`
	File      *string `yaml:"file,omitempty"`
	AddSource *bool   `yaml:"add_source,omitempty"`

	MaxSizeMB  *int  `yaml:"max_size_mb,omitempty"`
	MaxBackups *int  `yaml:"max_backups,omitempty"`
	MaxAgeDays *int  `yaml:"max_age_days,omitempty"`
	Compress   *bool `yaml:"compress,omitempty"`
}

// DefaultConfig is quiet and never writes to stderr: the TUI owns the
// terminal, so logs default to a rotated file.
func DefaultConfig() Config {
	level := "warn"
	sink := string(SinkFile)
	format := string(FormatText)
	return Config{
		Level:  &level,
		Sink:   &sink,
		Format: &format,
	}
}

// WithEnv overlays environment overrides on top of the config.
func (c Config) WithEnv() Config {
	out := c
	if v, ok := lookupEnv(EnvLogLevel); ok {
		out.Level = &v
	}
	if v, ok := lookupEnv(EnvLogFormat); ok {
		out.Format = &v
	}
	if v, ok := lookupEnv(EnvLogSink); ok {
		out.Sink = &v
	}
	if v, ok := lookupEnv(EnvLogFile); ok {
		out.File = &v
	}
	if v, ok := lookupEnvBool(EnvLogAddSource); ok {
		out.AddSource = &v
	}
	if v, ok := lookupEnvInt(EnvLogMaxSizeMB); ok {
		out.MaxSizeMB = &v
	}
	if v, ok := lookupEnvInt(EnvLogMaxBackups); ok {
		out.MaxBackups = &v
	}
	if v, ok := lookupEnvInt(EnvLogMaxAgeDays); ok {
		out.MaxAgeDays = &v
	}
	if v, ok := lookupEnvBool(EnvLogCompress); ok {
		out.Compress = &v
	}
	return out
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

func lookupEnvBool(key string) (bool, bool) {
	v, ok := lookupEnv(key)
	if !ok {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

func lookupEnvInt(key string) (int, bool) {
	v, ok := lookupEnv(key)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, false
	}
	return n, true
}
