package amos

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies an API failure. It is the signal callers use to
// distinguish "my input was rejected" (retrying cannot help) from "the
// service or network was unavailable" (already retried internally).
type ErrorKind string

const (
	// KindValidation means a payload shape was rejected, locally or by the
	// service, including a 200 body the client could not understand.
	KindValidation ErrorKind = "VALIDATION"

	// KindRateLimit means the service returned 429 and the retry budget
	// was exhausted.
	KindRateLimit ErrorKind = "RATE_LIMIT"

	// KindAuth means the service rejected the license key or buyer email.
	KindAuth ErrorKind = "AUTH"

	// KindServer means the service answered a non-200 status with a
	// structured error body.
	KindServer ErrorKind = "SERVER"

	// KindNetwork means the transport failed after exhausting retries.
	KindNetwork ErrorKind = "NETWORK"

	// KindUnknown is a defensive fallback and should not occur.
	KindUnknown ErrorKind = "UNKNOWN"
)

// Kind sentinels for errors.Is checks. (*Error).Is matches the sentinel for
// its kind, so callers never need to unwrap by hand:
//
//	if errors.Is(err, amos.ErrRateLimited) { ... }
var (
	ErrValidation  = errors.New("validation rejected")
	ErrRateLimited = errors.New("rate limit exceeded")
	ErrAuthFailed  = errors.New("authentication failed")
	ErrServer      = errors.New("server error")
	ErrNetwork     = errors.New("network failure")
)

// kindSentinels maps each kind to its errors.Is sentinel.
var kindSentinels = map[ErrorKind]error{
	KindValidation: ErrValidation,
	KindRateLimit:  ErrRateLimited,
	KindAuth:       ErrAuthFailed,
	KindServer:     ErrServer,
	KindNetwork:    ErrNetwork,
}

// Error is the one failure value every client operation returns. All failure
// paths converge into it: local validation, server error envelopes, rate
// limiting, and transport failures.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind

	// Message is the server's error string, or a client-side description
	// for failures that never reached the service.
	Message string

	// Details carries the server's structured details value, if any.
	Details any

	// RequestID is the server-assigned request ID, when provided.
	RequestID string

	// cause holds the underlying transport error for KindNetwork, so
	// errors.Is(err, context.DeadlineExceeded) and friends keep working.
	cause error
}

func (e *Error) Error() string {
	if e.RequestID != "" {
		return fmt.Sprintf("amos: %s: %s (request %s)", e.Kind, e.Message, e.RequestID)
	}
	return fmt.Sprintf("amos: %s: %s", e.Kind, e.Message)
}

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error { return e.cause }

// Is reports whether target is the kind sentinel for this error's kind.
func (e *Error) Is(target error) bool {
	return target == kindSentinels[e.Kind]
}

// kindForStatus derives the error kind from an HTTP status code.
// 400/422 are the service's payload rejections; 401/403 are credential
// rejections; 429 only reaches here once the retry budget is spent.
func kindForStatus(status int) ErrorKind {
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return KindValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		return KindAuth
	case http.StatusTooManyRequests:
		return KindRateLimit
	default:
		return KindServer
	}
}

// errorFromBody maps a non-200 response body into an *Error. The decode is
// tolerant: fields of the wrong type or missing fields degrade to absent
// rather than failing, so the mapping is total over arbitrary bodies.
func errorFromBody(status int, body map[string]any) *Error {
	msg, _ := body["error"].(string)
	if msg == "" {
		msg = "unknown AMOS API error"
	}
	requestID, _ := body["request_id"].(string)
	return &Error{
		Kind:      kindForStatus(status),
		Message:   msg,
		Details:   body["details"],
		RequestID: requestID,
	}
}

// validationError wraps a local schema failure as the caller-visible Error,
// keeping the underlying error reachable through Unwrap.
func validationError(err error) *Error {
	return &Error{Kind: KindValidation, Message: err.Error(), cause: err}
}
