package domain

import "strings"

// TerminalContext is the rolling session state injected into prompts.
// It is owned by the session service and mutated only by the goroutine
// running the query cycle; no synchronization is required as long as a
// single session owns it.
type TerminalContext struct {
	// Identity fields are fixed after construction.
	Hostname     string
	OSName       string
	OSVersion    string
	ShellName    string
	ShellVersion string

	// WorkingDirectory is refreshed immediately before each prompt build.
	WorkingDirectory string

	// CommandHistory keeps the most recent MaxHistory commands in
	// submission order, oldest first.
	CommandHistory []string

	// LastError holds the trimmed stderr of the most recent executed
	// command that exited non-zero. Empty after a successful command.
	LastError string

	MaxHistory int
}

// ContextSnapshot is the immutable view of TerminalContext read at
// prompt-build time.
type ContextSnapshot struct {
	Hostname         string
	OSName           string
	OSVersion        string
	ShellName        string
	ShellVersion     string
	WorkingDirectory string
	CommandHistory   []string
	LastError        string
}

// AddCommand appends a command to the history, evicting the oldest
// entries beyond MaxHistory. Blank commands are ignored.
func (c *TerminalContext) AddCommand(command string) {
	command = strings.TrimSpace(command)
	if command == "" {
		return
	}
	c.CommandHistory = append(c.CommandHistory, command)
	max := c.MaxHistory
	if max <= 0 {
		max = DefaultMaxHistory
	}
	if len(c.CommandHistory) > max {
		c.CommandHistory = c.CommandHistory[len(c.CommandHistory)-max:]
	}
}

// SetWorkingDirectory records the process working directory.
func (c *TerminalContext) SetWorkingDirectory(dir string) {
	if dir != "" {
		c.WorkingDirectory = dir
	}
}

// SetLastError stores the error output of a failed execution.
func (c *TerminalContext) SetLastError(message string) {
	c.LastError = strings.TrimSpace(message)
}

// ClearLastError resets the error state after a successful execution.
func (c *TerminalContext) ClearLastError() {
	c.LastError = ""
}

// PreviousCommand returns the most recent history entry, if any.
func (c *TerminalContext) PreviousCommand() (string, bool) {
	if len(c.CommandHistory) == 0 {
		return "", false
	}
	return c.CommandHistory[len(c.CommandHistory)-1], true
}

// Snapshot copies the current state. The returned value shares nothing
// with the live context.
func (c *TerminalContext) Snapshot() ContextSnapshot {
	history := make([]string, len(c.CommandHistory))
	copy(history, c.CommandHistory)
	return ContextSnapshot{
		Hostname:         c.Hostname,
		OSName:           c.OSName,
		OSVersion:        c.OSVersion,
		ShellName:        c.ShellName,
		ShellVersion:     c.ShellVersion,
		WorkingDirectory: c.WorkingDirectory,
		CommandHistory:   history,
		LastError:        c.LastError,
	}
}
