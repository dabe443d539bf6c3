package domain

import "time"

// History constants
const (
	// DefaultMaxHistory caps the rolling command history.
	DefaultMaxHistory = 10
	// PromptHistoryWindow is how many recent commands a prompt carries.
	PromptHistoryWindow = 5
)

// Completion client constants
const (
	// DefaultBaseURL is the OpenRouter-compatible API root.
	DefaultBaseURL = "https://openrouter.ai/api/v1"
	// DefaultModelID is the model used when the config names none.
	DefaultModelID = "mistralai/mistral-small-3.1-24b-instruct:free"
	// DefaultAuthEnvVar names the environment variable holding the
	// bearer token.
	DefaultAuthEnvVar = "OPENROUTER_API_KEY"
	// DefaultRequestTimeout bounds a single completion request.
	DefaultRequestTimeout = 30 * time.Second
	// DefaultMaxRetries bounds the retry loop.
	DefaultMaxRetries = 3
	// DefaultRetryDelay is the base delay for exponential backoff.
	DefaultRetryDelay = time.Second
	// DefaultMaxTokens keeps responses short; a command needs few tokens.
	DefaultMaxTokens = 200
	// DefaultTemperature favors deterministic completions.
	DefaultTemperature = 0.2
)

// Execution constants
const (
	// DefaultExecutionTimeout bounds a confirmed subprocess.
	DefaultExecutionTimeout = 60 * time.Second
	// DefaultShell interprets generated commands.
	DefaultShell = "/bin/bash"
)

// File permissions constants
const (
	// DirectoryPermissions is the default permission for directories (rwxr-xr-x)
	DirectoryPermissions = 0o755
	// SecureFilePermissions is the permission for sensitive files (rw-------)
	SecureFilePermissions = 0o600
)
