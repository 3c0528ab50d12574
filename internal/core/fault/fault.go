// Package fault defines the typed error taxonomy shared by the core
// subsystems. Callers match on Kind via errors.Is; the short diagnostic
// carries only the offending id or name, never a formatted user message.
package fault

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure.
type Kind string

const (
	// KindNotFound signals a referenced entity is absent.
	KindNotFound Kind = "not_found"
	// KindConflict signals a state collision such as a duplicate name,
	// an already-open shift, or a double finish.
	KindConflict Kind = "conflict"
	// KindInvalidCapability signals an employee lacking the required
	// type-work for an operation.
	KindInvalidCapability Kind = "invalid_capability"
	// KindInvalidState signals a structural violation such as deleting an
	// in-work operation.
	KindInvalidState Kind = "invalid_state"
)

// Error is a domain failure carrying its kind and a short diagnostic.
type Error struct {
	Kind    Kind
	Subject string
	Detail  string
}

func (e *Error) Error() string {
	if e.Subject == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Subject, e.Detail)
}

// Is reports kind equality so errors.Is(err, fault.NotFound("", "")) style
// sentinels work; matching ignores subject and detail.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// NotFound builds a not-found failure for the given subject.
func NotFound(subject, detail string) *Error {
	return &Error{Kind: KindNotFound, Subject: subject, Detail: detail}
}

// Conflict builds a conflict failure.
func Conflict(subject, detail string) *Error {
	return &Error{Kind: KindConflict, Subject: subject, Detail: detail}
}

// InvalidCapability builds a capability failure.
func InvalidCapability(subject, detail string) *Error {
	return &Error{Kind: KindInvalidCapability, Subject: subject, Detail: detail}
}

// InvalidState builds a structural violation failure.
func InvalidState(subject, detail string) *Error {
	return &Error{Kind: KindInvalidState, Subject: subject, Detail: detail}
}

// IsKind reports whether err is a fault of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
