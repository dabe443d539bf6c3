package domain

import "time"

// CommandResult captures the outcome of a single execution attempt.
// ReturnCode is the real process exit code, or -1 for cancellation,
// timeout, and internal failures.
type CommandResult struct {
	Success    bool
	Command    string
	Stdout     string
	Stderr     string
	ReturnCode int
}

// ExecOptions tunes a single Execute call.
type ExecOptions struct {
	// RequireConfirmation gates the subprocess behind a yes/no prompt.
	RequireConfirmation bool
	// Warnings are advisory guardrail notes shown alongside the
	// confirmation prompt.
	Warnings []string
	// Timeout overrides the executor's configured timeout when positive.
	Timeout time.Duration
}
