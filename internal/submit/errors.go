package submit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"
)

// Kind tags a classified error with its taxonomy bucket rather than leaving
// callers to pattern-match on strings.
type Kind string

const (
	KindValidation   Kind = "validation"
	KindStockLimit   Kind = "stock-limit"
	KindRateLimit    Kind = "rate-limit"
	KindTransient    Kind = "transient"
	KindNonRetryable Kind = "non-retryable"
	KindAuth         Kind = "auth"
)

// Error is a classified submission failure. RetryAfter is only set for
// rate-limit outcomes and is surfaced to the caller for display even when no
// further retry is attempted.
type Error struct {
	Kind       Kind
	Status     int
	Message    string
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("submit: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("submit: %s: %s", e.Kind, e.Message)
}

// Retryable reports whether the policy may re-send the request.
func (e *Error) Retryable() bool {
	return e.Kind == KindTransient || e.Kind == KindRateLimit
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// classifyStatus buckets a non-2xx response. 401 gets its own kind so the
// integrating application can decide whether to force re-authentication; the
// engine itself never invalidates a session on 401.
func classifyStatus(status int, body []byte, header http.Header) *Error {
	msg := serverMessage(body)

	switch {
	case status == http.StatusUnauthorized:
		if msg == "" {
			msg = "authentication required"
		}
		return &Error{Kind: KindAuth, Status: status, Message: msg}

	case status == http.StatusTooManyRequests:
		wait := retryAfter(header)
		return &Error{
			Kind:       KindRateLimit,
			Status:     status,
			Message:    "too many requests, try again shortly",
			RetryAfter: wait,
		}

	case status >= 500:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &Error{Kind: KindTransient, Status: status, Message: msg}

	default:
		if msg == "" {
			msg = http.StatusText(status)
		}
		return &Error{Kind: KindNonRetryable, Status: status, Message: msg}
	}
}

// classifyTransport buckets a transport-level failure. Timeouts and network
// errors are transient; context cancellation is passed through untouched so
// callers can distinguish their own abandonment.
func classifyTransport(err error) error {
	var already *Error
	if errors.As(err, &already) {
		return already
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &Error{Kind: KindTransient, Message: "request timed out"}
	}
	return &Error{Kind: KindTransient, Message: err.Error()}
}

// serverMessage extracts the server-provided message, surfaced verbatim when
// present.
func serverMessage(body []byte) string {
	if len(body) == 0 {
		return ""
	}
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return ""
	}
	if eb.Error != "" {
		return eb.Error
	}
	return eb.Message
}

// retryAfter parses the Retry-After hint in seconds. Zero means no hint.
func retryAfter(header http.Header) time.Duration {
	raw := header.Get("Retry-After")
	if raw == "" {
		return 0
	}
	secs, err := strconv.Atoi(raw)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
