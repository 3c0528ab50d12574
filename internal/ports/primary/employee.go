package primary

import (
	"context"
	"time"
)

// EmployeeService defines the primary port for employees and their type-work
// capability sets.
type EmployeeService interface {
	// CreateEmployee registers a new employee.
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (*Employee, error)

	// GetEmployee retrieves an employee with its capability set.
	GetEmployee(ctx context.Context, employeeID string) (*Employee, error)

	// ListEmployees lists employees, optionally active only.
	ListEmployees(ctx context.Context, activeOnly bool) ([]*Employee, error)

	// AssignTypeWork adds a type-work capability to an employee.
	AssignTypeWork(ctx context.Context, employeeID, typeWorkID string) error

	// RevokeTypeWork removes a type-work capability from an employee.
	RevokeTypeWork(ctx context.Context, employeeID, typeWorkID string) error
}

// CreateEmployeeRequest contains parameters for registering an employee.
type CreateEmployeeRequest struct {
	FirstName string
	LastName  string
	Phone     string
}

// Employee is the caller-facing view of an employee.
type Employee struct {
	ID          string
	FirstName   string
	LastName    string
	Phone       string
	Active      bool
	TypeWorkIDs []string
	CreatedAt   time.Time
}
