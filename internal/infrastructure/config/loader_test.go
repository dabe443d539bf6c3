package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/sami-lachheb/local-warp/internal/domain"
)

func TestLoadWritesDefaultsOnFirstRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	loader := NewFileLoader(path)

	cfg, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default config not written: %v", err)
	}
	if cfg.Model.ModelID != domain.DefaultModelID {
		t.Fatalf("unexpected default model: %q", cfg.Model.ModelID)
	}
	if !cfg.Execution.ConfirmBeforeExecute {
		t.Fatal("confirmation must default to enabled")
	}

	// A second load reads back what was written.
	again, err := loader.Load(context.Background())
	if err != nil {
		t.Fatalf("second Load() error = %v", err)
	}
	if diff := cmp.Diff(cfg, again); diff != "" {
		t.Fatalf("config roundtrip mismatch (-first +second):\n%s", diff)
	}
}

func TestLoadHydratesPartialConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	partial := "model:\n  model_id: custom/model\n"
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatalf("write partial config: %v", err)
	}

	cfg, err := NewFileLoader(path).Load(context.Background())
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Model.ModelID != "custom/model" {
		t.Fatalf("explicit value lost: %q", cfg.Model.ModelID)
	}
	if cfg.Model.BaseURL != domain.DefaultBaseURL {
		t.Fatalf("base URL not hydrated: %q", cfg.Model.BaseURL)
	}
	if cfg.Model.MaxRetries != domain.DefaultMaxRetries {
		t.Fatalf("max retries not hydrated: %d", cfg.Model.MaxRetries)
	}
	if cfg.Preferences.MaxHistory != domain.DefaultMaxHistory {
		t.Fatalf("history cap not hydrated: %d", cfg.Preferences.MaxHistory)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("model: ["), 0o600); err != nil {
		t.Fatalf("write malformed config: %v", err)
	}

	if _, err := NewFileLoader(path).Load(context.Background()); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}
