package api

import (
	"errors"
	"fmt"
	"strings"
)

type ErrorKind int

const (
	// KindNetworkOrServer covers unreachable servers, 5xx, and anything
	// the client cannot classify more precisely.
	KindNetworkOrServer ErrorKind = iota
	// KindAuthRequired: no (or no longer valid) credential where one is
	// required. Raised client-side before dispatch by the controllers, or
	// from a 401 response.
	KindAuthRequired
	// KindForbidden: server-asserted ownership or self-application violation.
	KindForbidden
	// KindValidation: missing/empty required field (client-side or 400).
	KindValidation
	KindNotFound
)

// Error carries the taxonomy kind, the HTTP status (0 when the request never
// reached the server), and the server-provided message when there was one.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if strings.TrimSpace(e.Message) != "" {
		return e.Message
	}
	switch e.Kind {
	case KindAuthRequired:
		return "authentication required"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "invalid input"
	case KindNotFound:
		return "not found"
	}
	if e.Status > 0 {
		return fmt.Sprintf("request failed: status %d", e.Status)
	}
	return "request failed"
}

func kindOf(err error) (ErrorKind, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return 0, false
}

func IsAuthRequired(err error) bool { k, ok := kindOf(err); return ok && k == KindAuthRequired }
func IsForbidden(err error) bool    { k, ok := kindOf(err); return ok && k == KindForbidden }
func IsValidation(err error) bool   { k, ok := kindOf(err); return ok && k == KindValidation }
func IsNotFound(err error) bool     { k, ok := kindOf(err); return ok && k == KindNotFound }

// ServerMessage extracts the server-provided message from err, or "" when
// none was provided. Callers supply their own deterministic fallback.
func ServerMessage(err error) string {
	var ae *Error
	if errors.As(err, &ae) {
		return strings.TrimSpace(ae.Message)
	}
	return ""
}

// AuthRequired builds the pre-dispatch error the controllers raise when an
// operation needs a session and there is none. It never comes from the wire.
func AuthRequired(action string) error {
	return &Error{Kind: KindAuthRequired, Message: fmt.Sprintf("sign in to %s", action)}
}
