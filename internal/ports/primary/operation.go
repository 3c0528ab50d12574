package primary

import (
	"context"
	"time"
)

// OperationService defines the primary port for operation lifecycle
// transitions.
type OperationService interface {
	// AcceptOperation moves an operation into work for an employee whose
	// capability set covers the operation's type-work. An explicit
	// priority re-ranks the operation among its siblings.
	AcceptOperation(ctx context.Context, req AcceptOperationRequest) error

	// FinishOperation ends an in-work operation, promotes the next
	// eligible operation to ready and closes the project once every
	// operation has ended.
	FinishOperation(ctx context.Context, req FinishOperationRequest) error

	// GetOperation retrieves an operation by ID.
	GetOperation(ctx context.Context, operationID string) (*Operation, error)

	// ListOperations lists a project's operations in chain order.
	ListOperations(ctx context.Context, projectID string) ([]*Operation, error)

	// ListOperationsByEmployee lists operations assigned to an employee.
	ListOperationsByEmployee(ctx context.Context, employeeID string) ([]*Operation, error)
}

// AcceptOperationRequest contains parameters for accepting an operation.
type AcceptOperationRequest struct {
	OperationID string
	EmployeeID  string
	// Priority re-ranks the operation when non-nil.
	Priority *int
}

// FinishOperationRequest contains parameters for finishing an operation.
type FinishOperationRequest struct {
	OperationID string
	EmployeeID  string
}

// Operation is the caller-facing view of an operation.
type Operation struct {
	ID                string
	ProjectID         string
	Priority          int
	Name              string
	Description       string
	StartDate         *time.Time
	AcceptanceDate    *time.Time
	PlannedEndDate    *time.Time
	RealEndDate       *time.Time
	PeriodHours       int
	ReadyToAcceptance bool
	InWork            bool
	IsEnded           bool
	State             string
	EmployeeID        string
	TypeWorkID        string
	CreatedAt         time.Time
}
