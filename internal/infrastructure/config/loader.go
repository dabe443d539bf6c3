// Package config loads YAML configuration from
// ~/.local-warp/config.yaml (overridable via LOCAL_WARP_CONFIG).
package config

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sami-lachheb/local-warp/internal/domain"
	"github.com/sami-lachheb/local-warp/internal/ports"
)

// FileLoader loads the configuration file, writing defaults on first run.
type FileLoader struct {
	overridePath string
}

// NewFileLoader builds a new loader. An empty path resolves the default
// location.
func NewFileLoader(path string) *FileLoader {
	return &FileLoader{overridePath: path}
}

// Load implements ports.ConfigProvider.
func (l *FileLoader) Load(context.Context) (domain.Config, error) {
	path := l.resolvePath()
	if err := ensureConfigDir(path); err != nil {
		return domain.Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := defaultConfig()
			if err := writeDefault(path, cfg); err != nil {
				return domain.Config{}, err
			}
			return cfg, nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, err
	}

	return hydrateDefaults(cfg), nil
}

// Path returns the effective config file location.
func (l *FileLoader) Path() string {
	return l.resolvePath()
}

func (l *FileLoader) resolvePath() string {
	if l.overridePath != "" {
		return l.overridePath
	}
	if custom := os.Getenv("LOCAL_WARP_CONFIG"); custom != "" {
		return expandPath(custom)
	}
	return filepath.Join(userHomeDir(), ".local-warp", "config.yaml")
}

func ensureConfigDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), domain.DirectoryPermissions)
}

func writeDefault(path string, cfg domain.Config) error {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, domain.SecureFilePermissions)
}

func defaultConfig() domain.Config {
	return domain.Config{
		ConfigFormatVersion: "1",
		Preferences: domain.Preferences{
			MaxHistory: domain.DefaultMaxHistory,
		},
		Model: domain.ModelSettings{
			BaseURL:           domain.DefaultBaseURL,
			ModelID:           domain.DefaultModelID,
			AuthEnvVar:        domain.DefaultAuthEnvVar,
			TimeoutSeconds:    int(domain.DefaultRequestTimeout.Seconds()),
			MaxRetries:        domain.DefaultMaxRetries,
			RetryDelaySeconds: domain.DefaultRetryDelay.Seconds(),
			MaxTokens:         domain.DefaultMaxTokens,
			Temperature:       domain.DefaultTemperature,
		},
		Execution: domain.ExecutionSettings{
			Shell:                domain.DefaultShell,
			TimeoutSeconds:       int(domain.DefaultExecutionTimeout.Seconds()),
			ConfirmBeforeExecute: true,
		},
		Security: domain.SecuritySettings{
			Enabled: true,
		},
	}
}

func hydrateDefaults(cfg domain.Config) domain.Config {
	if cfg.Preferences.MaxHistory <= 0 {
		cfg.Preferences.MaxHistory = domain.DefaultMaxHistory
	}
	if cfg.Model.BaseURL == "" {
		cfg.Model.BaseURL = domain.DefaultBaseURL
	}
	if cfg.Model.ModelID == "" {
		cfg.Model.ModelID = domain.DefaultModelID
	}
	if cfg.Model.AuthEnvVar == "" {
		cfg.Model.AuthEnvVar = domain.DefaultAuthEnvVar
	}
	if cfg.Model.TimeoutSeconds <= 0 {
		cfg.Model.TimeoutSeconds = int(domain.DefaultRequestTimeout.Seconds())
	}
	if cfg.Model.MaxRetries <= 0 {
		cfg.Model.MaxRetries = domain.DefaultMaxRetries
	}
	if cfg.Model.RetryDelaySeconds <= 0 {
		cfg.Model.RetryDelaySeconds = domain.DefaultRetryDelay.Seconds()
	}
	if cfg.Execution.Shell == "" {
		cfg.Execution.Shell = domain.DefaultShell
	}
	if cfg.Execution.TimeoutSeconds <= 0 {
		cfg.Execution.TimeoutSeconds = int(domain.DefaultExecutionTimeout.Seconds())
	}
	return cfg
}

func expandPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(userHomeDir(), path[2:])
	}
	return filepath.Clean(path)
}

func userHomeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	return "."
}

var _ ports.ConfigProvider = (*FileLoader)(nil)
