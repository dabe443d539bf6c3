// Package app wires the infrastructure adapters into a ready-to-use
// application container.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sami-lachheb/local-warp/internal/domain"
	"github.com/sami-lachheb/local-warp/internal/infrastructure/config"
	"github.com/sami-lachheb/local-warp/internal/infrastructure/executor"
	"github.com/sami-lachheb/local-warp/internal/infrastructure/llm"
	"github.com/sami-lachheb/local-warp/internal/infrastructure/prompt"
	"github.com/sami-lachheb/local-warp/internal/infrastructure/security"
	"github.com/sami-lachheb/local-warp/internal/infrastructure/sysinfo"
	"github.com/sami-lachheb/local-warp/internal/pkg/logger"
	"github.com/sami-lachheb/local-warp/internal/ports"
	"github.com/sami-lachheb/local-warp/internal/services"
)

// Container holds the fully wired application graph.
type Container struct {
	Config   domain.Config
	Store    *domain.TerminalContext
	Session  *services.SessionService
	Executor *executor.LocalExecutor
	Loader   *config.FileLoader
	Logger   *logger.ZapLogger
}

// BuildContainer loads configuration, collects host identity and wires
// every adapter. The confirmation prompter is left for the CLI layer to
// install since it owns the terminal streams.
func BuildContainer(ctx context.Context, verbose bool) (*Container, error) {
	loader := config.NewFileLoader("")
	cfg, err := loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	log := logger.NewZap(verbose || cfg.Preferences.Verbose)

	apiKey := os.Getenv(cfg.Model.AuthEnvVar)
	if apiKey == "" {
		return nil, fmt.Errorf("API key not found: set %s in the environment", cfg.Model.AuthEnvVar)
	}

	store := sysinfo.NewTerminalContext(ctx, cfg.Preferences.MaxHistory)

	var guard ports.SecurityService
	if cfg.Security.Enabled {
		g, err := security.NewGuardrail(cfg.Security.RulesFile)
		if err != nil {
			log.Warn("guardrail rules rejected, using defaults", map[string]interface{}{
				"rules_file": cfg.Security.RulesFile,
				"error":      err.Error(),
			})
			g, err = security.NewGuardrail("")
			if err != nil {
				return nil, err
			}
		}
		guard = g
	}

	exec := executor.NewLocalExecutor(store, nil, cfg.Execution, log)

	session := &services.SessionService{
		Store:                store,
		Builder:              prompt.NewBuilder(),
		Generator:            llm.NewClient(cfg.Model, apiKey, log),
		Security:             guard,
		Executor:             exec,
		Logger:               log,
		ConfirmBeforeExecute: cfg.Execution.ConfirmBeforeExecute,
	}

	log.Debug("container ready", map[string]interface{}{
		"model":       cfg.Model.ModelID,
		"base_url":    cfg.Model.BaseURL,
		"shell":       cfg.Execution.Shell,
		"exec_limit":  (time.Duration(cfg.Execution.TimeoutSeconds) * time.Second).String(),
		"config_path": loader.Path(),
	})

	return &Container{
		Config:   cfg,
		Store:    store,
		Session:  session,
		Executor: exec,
		Loader:   loader,
		Logger:   log,
	}, nil
}

// Close flushes buffered log entries.
func (c *Container) Close() {
	if c != nil && c.Logger != nil {
		c.Logger.Sync()
	}
}
