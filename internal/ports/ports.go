// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and
// external adapters (infrastructure). The application depends on these
// abstractions, never on concrete HTTP clients, subprocess runners, or CLI
// frameworks.
package ports

import (
	"context"

	"github.com/sami-lachheb/local-warp/internal/domain"
)

// ConfigProvider loads the latest configuration from persistent storage.
// Implementations typically read from ~/.local-warp/config.yaml.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// PromptBuilder assembles the text blob sent to the model. Building
// refreshes the store's working directory; it causes no other side
// effects and performs no I/O beyond that.
type PromptBuilder interface {
	Build(query string, store *domain.TerminalContext) (string, error)
}

// CommandGenerator turns a prompt into a single shell command via the
// remote completion endpoint. Every expected failure mode is returned
// as a *domain.GenerateError, never raised past this boundary.
type CommandGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CommandExecutor runs a generated command through the shell, subject
// to confirmation and a timeout. Every failure path is converted into
// the returned CommandResult; no subprocess-level error escapes.
type CommandExecutor interface {
	Execute(ctx context.Context, command string, opts domain.ExecOptions) domain.CommandResult
}

// ConfirmationPrompter collects the explicit yes/no gate before any
// subprocess spawn.
type ConfirmationPrompter interface {
	Confirm(command string, warnings []string) (bool, error)
	Enabled() bool
}

// SecurityService evaluates commands against advisory guardrail rules.
type SecurityService interface {
	Evaluate(command string) (domain.RiskAssessment, error)
}

// Renderer presents query outcomes to the user. Injected so the
// executor and session stay renderer-agnostic.
type Renderer interface {
	RenderResult(result domain.CommandResult)
	RenderFailure(err error)
	RenderNotice(message string)
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
