package llm

import (
	"time"

	"github.com/sami-lachheb/local-warp/internal/domain"
)

// The retry loop is modeled as an explicit state machine. Each network
// attempt is classified into an attemptOutcome, and nextStep maps
// (outcome, attempt number) to the follow-up action. Keeping the
// transition function pure makes the retry semantics testable without
// a network.

type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeUnauthorized
	outcomeRateLimited
	outcomeTimedOut
	outcomeTransport
	outcomeHTTPError
	outcomeParse
)

// attemptOutcome is the classified result of one HTTP attempt.
type attemptOutcome struct {
	kind       outcomeKind
	command    string
	retryAfter time.Duration
	status     int
	body       string
	err        error
}

type stepAction int

const (
	actionReturn stepAction = iota
	actionRetry
	actionFail
)

// step tells the loop what to do next. Retry steps carry the delay to
// sleep and a non-terminal classification for logging; fail steps carry
// the terminal error.
type step struct {
	action stepAction
	delay  time.Duration
	err    *domain.GenerateError
}

// nextStep is the transition table:
//
//	Success       -> return command
//	Unauthorized  -> fail (authentication, never retried)
//	RateLimited   -> retry after Retry-After, else 2^attempt seconds
//	TimedOut      -> retry after base*2^attempt, fail on last attempt
//	Transport     -> fail immediately
//	HTTPError     -> fail immediately (deterministic server rejection)
//	Parse         -> fail immediately (empty command never forwarded)
//
// A loop that drains all attempts without a terminal step ends in
// KindMaxRetries.
func nextStep(o attemptOutcome, attempt int, maxRetries int, baseDelay time.Duration) step {
	switch o.kind {
	case outcomeSuccess:
		return step{action: actionReturn}

	case outcomeUnauthorized:
		return step{action: actionFail, err: &domain.GenerateError{
			Kind:       domain.KindAuthentication,
			Message:    "invalid API key",
			StatusCode: o.status,
		}}

	case outcomeRateLimited:
		delay := o.retryAfter
		if delay <= 0 {
			delay = time.Duration(1<<attempt) * time.Second
		}
		return step{action: actionRetry, delay: delay, err: &domain.GenerateError{
			Kind:       domain.KindRateLimit,
			Message:    "rate limit exceeded",
			StatusCode: o.status,
		}}

	case outcomeTimedOut:
		if attempt >= maxRetries-1 {
			return step{action: actionFail, err: &domain.GenerateError{
				Kind:    domain.KindTimeout,
				Message: "request timed out",
				Err:     o.err,
			}}
		}
		return step{action: actionRetry, delay: baseDelay * time.Duration(1<<attempt), err: &domain.GenerateError{
			Kind:    domain.KindTimeout,
			Message: "request timed out",
			Err:     o.err,
		}}

	case outcomeTransport:
		return step{action: actionFail, err: &domain.GenerateError{
			Kind:    domain.KindTransport,
			Message: errMessage(o.err, "request failed"),
			Err:     o.err,
		}}

	case outcomeParse:
		return step{action: actionFail, err: &domain.GenerateError{
			Kind:    domain.KindParse,
			Message: errMessage(o.err, "failed to parse command from response"),
			Err:     o.err,
		}}

	case outcomeHTTPError:
		return step{action: actionFail, err: &domain.GenerateError{
			Kind:       domain.KindAPI,
			Message:    o.body,
			StatusCode: o.status,
		}}
	}

	return step{action: actionFail, err: &domain.GenerateError{
		Kind:    domain.KindTransport,
		Message: "unclassified attempt outcome",
	}}
}

func errMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	return err.Error()
}
