// Package executor runs generated commands through the host shell with
// confirmation, timeout, and output capture.
package executor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/sami-lachheb/local-warp/internal/domain"
	"github.com/sami-lachheb/local-warp/internal/ports"
)

const cancelledMessage = "Command execution cancelled by user."

// runOutcome is the raw subprocess result before it is mapped onto a
// CommandResult.
type runOutcome struct {
	stdout   string
	stderr   string
	exitCode int
	timedOut bool
	err      error
}

type commandRunner func(ctx context.Context, shell string, command string, timeout time.Duration) runOutcome

// LocalExecutor implements ports.CommandExecutor against the host
// shell. It is the only component besides the prompt builder that
// mutates the terminal context.
type LocalExecutor struct {
	shell    string
	timeout  time.Duration
	store    *domain.TerminalContext
	prompter ports.ConfirmationPrompter
	log      ports.Logger
	run      commandRunner
}

// NewLocalExecutor builds an executor bound to the session's context
// store.
func NewLocalExecutor(store *domain.TerminalContext, prompter ports.ConfirmationPrompter, settings domain.ExecutionSettings, log ports.Logger) *LocalExecutor {
	shell := settings.Shell
	if shell == "" || shell == "auto" {
		shell = domain.DefaultShell
	}
	timeout := domain.DefaultExecutionTimeout
	if settings.TimeoutSeconds > 0 {
		timeout = time.Duration(settings.TimeoutSeconds) * time.Second
	}
	return &LocalExecutor{
		shell:    shell,
		timeout:  timeout,
		store:    store,
		prompter: prompter,
		log:      log,
		run:      runShell,
	}
}

// SetPrompter installs the confirmation prompter. The CLI layer wires
// it after construction, mirroring how the renderer is injected.
func (e *LocalExecutor) SetPrompter(p ports.ConfirmationPrompter) {
	e.prompter = p
}

// SetTimeout overrides the configured execution timeout, used by the
// --timeout flag.
func (e *LocalExecutor) SetTimeout(d time.Duration) {
	if d > 0 {
		e.timeout = d
	}
}

// Execute implements ports.CommandExecutor. The command is recorded in
// history before any confirmation, so history reflects what was
// proposed, not just what ran. Every failure path is converted into
// the returned result; no subprocess error escapes.
func (e *LocalExecutor) Execute(ctx context.Context, command string, opts domain.ExecOptions) domain.CommandResult {
	result := domain.CommandResult{Command: command, ReturnCode: -1}

	e.store.AddCommand(command)

	if opts.RequireConfirmation {
		confirmed, err := e.confirm(command, opts.Warnings)
		if err != nil || !confirmed {
			// Cancellation is a user choice, not an error: last_error
			// stays untouched and no subprocess is spawned.
			result.Stderr = cancelledMessage
			return result
		}
	}

	timeout := e.timeout
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}

	if e.log != nil {
		e.log.Debug("executing command", map[string]interface{}{
			"shell":   e.shell,
			"timeout": timeout.String(),
		})
	}

	out := e.run(ctx, e.shell, command, timeout)

	switch {
	case out.timedOut:
		msg := fmt.Sprintf("Command timed out after %v.", timeout)
		e.store.SetLastError(msg)
		result.Stderr = msg
		return result

	case out.err != nil:
		msg := "Error executing command: " + out.err.Error()
		e.store.SetLastError(msg)
		result.Stderr = msg
		return result
	}

	result.Stdout = strings.TrimSpace(out.stdout)
	result.Stderr = strings.TrimSpace(out.stderr)
	result.ReturnCode = out.exitCode
	result.Success = out.exitCode == 0

	if out.exitCode != 0 {
		e.store.SetLastError(result.Stderr)
	} else {
		e.store.ClearLastError()
	}
	return result
}

func (e *LocalExecutor) confirm(command string, warnings []string) (bool, error) {
	if e.prompter == nil || !e.prompter.Enabled() {
		return false, nil
	}
	return e.prompter.Confirm(command, warnings)
}

// runShell spawns `<shell> -c <command>` with the caller's environment
// and working directory. The process is killed when the timeout
// expires; kill failures are swallowed by the runtime, not propagated.
func runShell(ctx context.Context, shell string, command string, timeout time.Duration) runOutcome {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, shell, "-c", command)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()

	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return runOutcome{timedOut: true, stdout: stdout.String(), stderr: stderr.String()}
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return runOutcome{
			stdout:   stdout.String(),
			stderr:   stderr.String(),
			exitCode: exitErr.ExitCode(),
		}
	}
	if err != nil {
		return runOutcome{err: err}
	}
	return runOutcome{stdout: stdout.String(), stderr: stderr.String()}
}

var _ ports.CommandExecutor = (*LocalExecutor)(nil)
