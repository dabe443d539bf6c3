package domain

import "fmt"

// FailureKind classifies completion-client failures so callers can
// distinguish fatal misconfiguration from recoverable conditions.
type FailureKind string

const (
	// KindAuthentication is fatal: the server rejected the credential.
	// Never retried.
	KindAuthentication FailureKind = "authentication"
	// KindRateLimit marks an individual 429 rejection.
	KindRateLimit FailureKind = "rate_limit"
	// KindTimeout is returned when the last attempt timed out.
	KindTimeout FailureKind = "timeout"
	// KindTransport covers non-timeout transport failures.
	KindTransport FailureKind = "transport"
	// KindAPI covers deterministic server-side rejections (any HTTP
	// status other than 200/401/429).
	KindAPI FailureKind = "api"
	// KindParse means a 200 response carried no usable completion text.
	KindParse FailureKind = "parse"
	// KindMaxRetries means the retry budget was exhausted without a
	// success or a terminal error.
	KindMaxRetries FailureKind = "max_retries"
)

// GenerateError is the tagged failure returned by the completion
// client. Expected failure modes never escape the client as anything
// else.
type GenerateError struct {
	Kind       FailureKind
	Message    string
	StatusCode int
	Err        error
}

func (e *GenerateError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *GenerateError) Unwrap() error {
	return e.Err
}

// Fatal reports whether the failure should terminate the session
// instead of being reported and retried on the next query.
func (e *GenerateError) Fatal() bool {
	return e.Kind == KindAuthentication
}
