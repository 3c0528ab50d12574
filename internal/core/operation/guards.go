// Package operation contains the pure business logic for operation
// lifecycle transitions. Guards are pure functions that evaluate
// preconditions without side effects.
package operation

import (
	"fmt"

	"github.com/example/shopfloor/internal/core/fault"
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

// AcceptContext provides context for acceptance guards.
type AcceptContext struct {
	OperationID         string
	IsEnded             bool
	InWork              bool
	RequiredTypeWorkID  string
	EmployeeID          string
	EmployeeTypeWorkIDs []string
}

// FinishContext provides context for finish guards.
type FinishContext struct {
	OperationID          string
	IsEnded              bool
	InWork               bool
	AssignedEmployeeID   string
	ConfirmingEmployeeID string
}

// DeleteContext provides context for structural delete guards.
type DeleteContext struct {
	OperationID string
	IsEnded     bool
	InWork      bool
}

// CanAccept evaluates whether an employee may take an operation into work.
// Rules:
// - Operation must not be ended or already in work
// - Employee capability set must contain the operation's type-work
func CanAccept(ctx AcceptContext) GuardResult {
	if ctx.IsEnded {
		return GuardResult{
			Kind:   fault.KindConflict,
			Reason: fmt.Sprintf("operation %s is already ended", ctx.OperationID),
		}
	}
	if ctx.InWork {
		return GuardResult{
			Kind:   fault.KindConflict,
			Reason: fmt.Sprintf("operation %s is already in work", ctx.OperationID),
		}
	}
	for _, id := range ctx.EmployeeTypeWorkIDs {
		if id == ctx.RequiredTypeWorkID {
			return GuardResult{Allowed: true}
		}
	}
	return GuardResult{
		Kind: fault.KindInvalidCapability,
		Reason: fmt.Sprintf("employee %s lacks type-work %s required by operation %s",
			ctx.EmployeeID, ctx.RequiredTypeWorkID, ctx.OperationID),
	}
}

// CanFinish evaluates whether an operation may be marked ended.
// Rules:
// - Operation must be in work (double finish and never-accepted both fail)
// - Confirming employee must equal the assigned employee
func CanFinish(ctx FinishContext) GuardResult {
	if ctx.IsEnded {
		return GuardResult{
			Kind:   fault.KindConflict,
			Reason: fmt.Sprintf("operation %s is already ended", ctx.OperationID),
		}
	}
	if !ctx.InWork {
		return GuardResult{
			Kind:   fault.KindConflict,
			Reason: fmt.Sprintf("operation %s was never accepted into work", ctx.OperationID),
		}
	}
	if ctx.ConfirmingEmployeeID != ctx.AssignedEmployeeID {
		return GuardResult{
			Kind: fault.KindConflict,
			Reason: fmt.Sprintf("operation %s is assigned to employee %s, not %s",
				ctx.OperationID, ctx.AssignedEmployeeID, ctx.ConfirmingEmployeeID),
		}
	}
	return GuardResult{Allowed: true}
}

// CanDelete evaluates whether an operation may be removed from its project.
// Rules:
// - Operation must not be in work or ended
func CanDelete(ctx DeleteContext) GuardResult {
	if ctx.InWork {
		return GuardResult{
			Kind:   fault.KindInvalidState,
			Reason: fmt.Sprintf("operation %s is in work and cannot be deleted", ctx.OperationID),
		}
	}
	if ctx.IsEnded {
		return GuardResult{
			Kind:   fault.KindInvalidState,
			Reason: fmt.Sprintf("operation %s is ended and cannot be deleted", ctx.OperationID),
		}
	}
	return GuardResult{Allowed: true}
}
