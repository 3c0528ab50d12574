// Package shift contains the pure business logic for working-shift and
// attendance transitions. Guards are pure functions that evaluate
// preconditions without side effects.
package shift

import (
	"fmt"
	"time"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Kind    fault.Kind
	Reason  string
}

// Error converts the guard result to a typed fault if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return &fault.Error{Kind: r.Kind, Detail: r.Reason}
}

// OpenContext provides context for shift-open guards.
type OpenContext struct {
	OpenShiftID string // empty when no shift is open
}

// CheckInContext provides context for check-in guards.
type CheckInContext struct {
	EmployeeID     string
	OpenShiftID    string // empty when no shift is open
	AlreadyOnShift bool
}

// CanOpen evaluates whether a new working shift may be opened.
// Rules:
// - No shift may currently be open (single open shift system-wide)
func CanOpen(ctx OpenContext) GuardResult {
	if ctx.OpenShiftID != "" {
		return GuardResult{
			Kind:   fault.KindConflict,
			Reason: fmt.Sprintf("shift %s is still open", ctx.OpenShiftID),
		}
	}
	return GuardResult{Allowed: true}
}

// CanCheckIn evaluates whether an employee may be checked in.
// Rules:
// - An open shift must exist
// A repeat check-in is allowed here; the service treats it as a no-op
// instead of creating a duplicate record.
func CanCheckIn(ctx CheckInContext) GuardResult {
	if ctx.OpenShiftID == "" {
		return GuardResult{
			Kind:   fault.KindConflict,
			Reason: fmt.Sprintf("no open shift to check employee %s into", ctx.EmployeeID),
		}
	}
	return GuardResult{Allowed: true}
}

// TimeOfDay classifies a shift start timestamp. Shifts starting at 18:00 or
// later are night shifts.
func TimeOfDay(start time.Time) string {
	if start.Hour() >= 18 {
		return models.TimeOfDayNight
	}
	return models.TimeOfDayDay
}
