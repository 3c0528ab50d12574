package primary

import (
	"context"
	"time"
)

// ProjectService defines the primary port for project intake and structural
// changes to a project's operation chain.
type ProjectService interface {
	// CreateProject builds a project from an order: derives the total and
	// per-operation periods, creates the listed operations and the
	// synthetic trailing shipment operation.
	CreateProject(ctx context.Context, req CreateProjectRequest) (*CreateProjectResponse, error)

	// GetProject retrieves a project by ID.
	GetProject(ctx context.Context, projectID string) (*Project, error)

	// ListProjects lists projects with optional filters.
	ListProjects(ctx context.Context, filters ProjectFilters) ([]*Project, error)

	// InsertOperations adds operations to a project, recomputes the
	// per-operation period and re-runs date propagation.
	InsertOperations(ctx context.Context, req InsertOperationsRequest) error

	// DeleteOperation removes an operation that is neither in work nor
	// ended, recomputes the per-operation period and re-runs propagation.
	DeleteOperation(ctx context.Context, operationID string) error

	// RecomputeDates re-runs date propagation over a project's chain,
	// applying the overdue re-baseline.
	RecomputeDates(ctx context.Context, projectID string) error

	// SetContractEndDate edits the frozen contract end date.
	SetContractEndDate(ctx context.Context, projectID string, endDate time.Time) error
}

// OperationInput describes one operation of an incoming order.
type OperationInput struct {
	Name        string
	Description string
	TypeWorkID  string
	Priority    int
}

// CreateProjectRequest contains parameters for project intake.
type CreateProjectRequest struct {
	Number          int
	Name            string
	Description     string
	StartDate       time.Time
	PlannedEndDate  time.Time
	CustomerName    string
	Comment         string
	ManagerUsername string
	Operations      []OperationInput
}

// CreateProjectResponse contains the result of project intake.
type CreateProjectResponse struct {
	ProjectID  string
	Project    *Project
	Operations []*Operation
}

// InsertOperationsRequest contains parameters for inserting operations into
// an existing project.
type InsertOperationsRequest struct {
	ProjectID  string
	Operations []OperationInput
}

// ProjectFilters contains filter options for listing projects.
type ProjectFilters struct {
	Ended *bool
	Limit int
}

// Project is the caller-facing view of a project.
type Project struct {
	ID                      string
	Number                  int
	Name                    string
	Description             string
	StartDate               time.Time
	PlannedEndDate          time.Time
	EndDateInContract       time.Time
	RealEndDate             *time.Time
	StartFirstOperationDate *time.Time
	Period                  int
	OperationPeriod         int
	Ended                   bool
	ManagerID               string
	CustomerID              string
	Comment                 string
	CreatedAt               time.Time
}
