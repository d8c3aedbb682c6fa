package entry

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/steferic/workbench/internal/appdirs"
	"github.com/steferic/workbench/internal/identity"
	"github.com/steferic/workbench/internal/logging"
)

// AppConfig is the optional YAML config file under the user config dir.
type AppConfig struct {
	Logging  logging.Config `yaml:"logging"`
	Defaults Defaults       `yaml:"defaults"`
}

// Defaults preselects launch options for new sessions.
type Defaults struct {
	Agent           string `yaml:"agent,omitempty"`
	SkipPermissions bool   `yaml:"skip_permissions,omitempty"`
}

// DefaultConfigPath resolves the config file location.
func DefaultConfigPath() (string, error) {
	dir, err := appdirs.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, identity.GlobalConfigFile), nil
}

// LoadConfig reads the config file. A missing file yields zero config.
func LoadConfig(path string) (*AppConfig, error) {
	cfg := &AppConfig{}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("entry: read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("entry: parse config: %w", err)
	}
	return cfg, nil
}
