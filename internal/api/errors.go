package api

import (
	"errors"
	"fmt"
)

// Kind classifies every error that crosses the client boundary.
// The five kinds are mutually exclusive; classification precedence is
// timeout, transport, 404, other 4xx, everything else.
type Kind string

const (
	KindNetwork    Kind = "NETWORK_ERROR"
	KindTimeout    Kind = "TIMEOUT_ERROR"
	KindServer     Kind = "SERVER_ERROR"
	KindNotFound   Kind = "NOT_FOUND"
	KindValidation Kind = "VALIDATION_ERROR"
)

// Error is the uniform shape of every failure returned by the client.
// No raw transport exception escapes past this type.
type Error struct {
	Kind    Kind                   `json:"kind"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// newError builds an *Error with optional key/value detail pairs.
func newError(kind Kind, message string, kv ...interface{}) *Error {
	e := &Error{Kind: kind, Message: message}
	if len(kv) > 0 {
		e.Details = make(map[string]interface{}, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			if k, ok := kv[i].(string); ok {
				e.Details[k] = kv[i+1]
			}
		}
	}
	return e
}

// KindOf extracts the Kind from err, unwrapping as needed.
// Returns "" when err is nil or not an API error.
func KindOf(err error) Kind {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

// retryable reports whether an error kind may be retried.
// NOT_FOUND and VALIDATION_ERROR are never transient.
func retryable(kind Kind) bool {
	switch kind {
	case KindTimeout, KindNetwork, KindServer:
		return true
	default:
		return false
	}
}

// ─── Presentation ─────────────────────────────────────────────────────────────

// Severity grades how an error should be surfaced to the user.
type Severity string

const (
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// Presentation is the shared contract for rendering an error: a severity,
// a human title, a suggestion, and whether a retry action makes sense.
// Views consume this mapping instead of inventing their own.
type Presentation struct {
	Severity   Severity `json:"severity"`
	Title      string   `json:"title"`
	Suggestion string   `json:"suggestion"`
	Retryable  bool     `json:"retryable"`
}

// Describe maps err onto the presentation contract. Unclassified errors get
// the generic server-error treatment.
func Describe(err error) Presentation {
	switch KindOf(err) {
	case KindNetwork:
		return Presentation{
			Severity:   SeverityError,
			Title:      "Backend unreachable",
			Suggestion: "Check that the backend is running and the base URL is correct.",
			Retryable:  true,
		}
	case KindTimeout:
		return Presentation{
			Severity:   SeverityWarning,
			Title:      "Request timed out",
			Suggestion: "The backend took too long to respond. Try again.",
			Retryable:  true,
		}
	case KindNotFound:
		return Presentation{
			Severity:   SeverityWarning,
			Title:      "Not found",
			Suggestion: "Check the league, team or player identifier.",
			Retryable:  false,
		}
	case KindValidation:
		return Presentation{
			Severity:   SeverityWarning,
			Title:      "Invalid request",
			Suggestion: "Check the request parameters (season may be outside your plan).",
			Retryable:  false,
		}
	default:
		return Presentation{
			Severity:   SeverityError,
			Title:      "Server error",
			Suggestion: "The backend reported a problem. Try again later.",
			Retryable:  true,
		}
	}
}
