// Package secondary defines the secondary ports (driven adapters) for the
// application. These are the interfaces through which the application drives
// external systems.
package secondary

import (
	"context"
	"time"
)

// TypeWorkRepository defines the secondary port for type-work persistence.
type TypeWorkRepository interface {
	// Create persists a new type-work.
	Create(ctx context.Context, typeWork *TypeWorkRecord) error

	// GetByID retrieves a type-work by its ID.
	GetByID(ctx context.Context, id string) (*TypeWorkRecord, error)

	// GetByName retrieves a type-work by name, matched case-insensitively.
	GetByName(ctx context.Context, name string) (*TypeWorkRecord, error)

	// Update updates an existing type-work.
	Update(ctx context.Context, typeWork *TypeWorkRecord) error

	// List retrieves type-works matching the given filters.
	List(ctx context.Context, filters TypeWorkFilters) ([]*TypeWorkRecord, error)

	// GetNextID returns the next available type-work ID.
	GetNextID(ctx context.Context) (string, error)
}

// TypeWorkRecord represents a type-work as stored in persistence.
type TypeWorkRecord struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TypeWorkFilters contains filter options for querying type-works.
type TypeWorkFilters struct {
	ActiveOnly bool
}

// ProjectRepository defines the secondary port for project persistence.
type ProjectRepository interface {
	// Create persists a new project.
	Create(ctx context.Context, project *ProjectRecord) error

	// GetByID retrieves a project by its ID.
	GetByID(ctx context.Context, id string) (*ProjectRecord, error)

	// Update updates an existing project.
	Update(ctx context.Context, project *ProjectRecord) error

	// List retrieves projects matching the given filters.
	List(ctx context.Context, filters ProjectFilters) ([]*ProjectRecord, error)

	// GetNextID returns the next available project ID.
	GetNextID(ctx context.Context) (string, error)
}

// ProjectRecord represents a project as stored in persistence.
type ProjectRecord struct {
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
	UpdatedAt               time.Time
}

// ProjectFilters contains filter options for querying projects.
type ProjectFilters struct {
	// Ended filters by lifecycle when non-nil.
	Ended *bool
	Limit int
}

// OperationRepository defines the secondary port for operation persistence.
type OperationRepository interface {
	// Create persists a new operation.
	Create(ctx context.Context, operation *OperationRecord) error

	// GetByID retrieves an operation by its ID.
	GetByID(ctx context.Context, id string) (*OperationRecord, error)

	// Update updates an existing operation.
	Update(ctx context.Context, operation *OperationRecord) error

	// Delete removes an operation from persistence.
	Delete(ctx context.Context, id string) error

	// ListByProject retrieves a project's operations ordered by priority
	// ascending, ties by creation order. The ordering is load-bearing for
	// date propagation and must be deterministic.
	ListByProject(ctx context.Context, projectID string) ([]*OperationRecord, error)

	// ListByEmployee retrieves operations assigned to an employee.
	ListByEmployee(ctx context.Context, employeeID string) ([]*OperationRecord, error)

	// GetNextID returns the next available operation ID.
	GetNextID(ctx context.Context) (string, error)
}

// OperationRecord represents an operation as stored in persistence.
type OperationRecord struct {
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
	EmployeeID        string
	TypeWorkID        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ShiftRepository defines the secondary port for working-shift persistence.
type ShiftRepository interface {
	// Create persists a new shift.
	Create(ctx context.Context, shift *ShiftRecord) error

	// GetByID retrieves a shift by its ID.
	GetByID(ctx context.Context, id string) (*ShiftRecord, error)

	// Update updates an existing shift.
	Update(ctx context.Context, shift *ShiftRecord) error

	// FindOpen returns the single open shift, or nil when none is open.
	FindOpen(ctx context.Context) (*ShiftRecord, error)

	// List retrieves shifts, most recent first.
	List(ctx context.Context, filters ShiftFilters) ([]*ShiftRecord, error)

	// GetNextID returns the next available shift ID.
	GetNextID(ctx context.Context) (string, error)
}

// ShiftRecord represents a working shift as stored in persistence.
type ShiftRecord struct {
	ID         string
	StartShift time.Time
	EndShift   *time.Time
	Ended      bool
	TimeOfDay  string
	CreatedAt  time.Time
}

// ShiftFilters contains filter options for querying shifts.
type ShiftFilters struct {
	Limit int
}

// TimeControlRepository defines the secondary port for attendance records.
type TimeControlRepository interface {
	// Create persists a new time control.
	Create(ctx context.Context, timeControl *TimeControlRecord) error

	// Update updates an existing time control.
	Update(ctx context.Context, timeControl *TimeControlRecord) error

	// ListByShift retrieves all time controls under a shift.
	ListByShift(ctx context.Context, shiftID string) ([]*TimeControlRecord, error)

	// FindOpenForEmployee returns the employee's open (on-shift) time
	// control under the given shift, or nil when none exists.
	FindOpenForEmployee(ctx context.Context, shiftID, employeeID string) (*TimeControlRecord, error)

	// GetNextID returns the next available time-control ID.
	GetNextID(ctx context.Context) (string, error)
}

// TimeControlRecord represents a time control as stored in persistence.
type TimeControlRecord struct {
	ID         string
	ShiftID    string
	EmployeeID string
	OnShift    bool
	AutoClosed bool
	Arrival    time.Time
	Departure  *time.Time
}

// EmployeeRepository defines the secondary port for employee persistence.
type EmployeeRepository interface {
	// Create persists a new employee.
	Create(ctx context.Context, employee *EmployeeRecord) error

	// GetByID retrieves an employee by its ID.
	GetByID(ctx context.Context, id string) (*EmployeeRecord, error)

	// List retrieves employees.
	List(ctx context.Context, filters EmployeeFilters) ([]*EmployeeRecord, error)

	// AssignTypeWork adds a type-work to the employee's capability set.
	// Re-assigning an already-held capability is a no-op.
	AssignTypeWork(ctx context.Context, employeeID, typeWorkID string) error

	// RevokeTypeWork removes a type-work from the employee's capability set.
	RevokeTypeWork(ctx context.Context, employeeID, typeWorkID string) error

	// GetTypeWorkIDs returns the employee's capability set.
	GetTypeWorkIDs(ctx context.Context, employeeID string) ([]string, error)

	// GetNextID returns the next available employee ID.
	GetNextID(ctx context.Context) (string, error)
}

// EmployeeRecord represents an employee as stored in persistence.
type EmployeeRecord struct {
	ID        string
	FirstName string
	LastName  string
	Phone     string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EmployeeFilters contains filter options for querying employees.
type EmployeeFilters struct {
	ActiveOnly bool
}

// ManagerRepository defines the secondary port for manager lookup.
type ManagerRepository interface {
	// Create persists a new manager.
	Create(ctx context.Context, manager *ManagerRecord) error

	// GetByID retrieves a manager by its ID.
	GetByID(ctx context.Context, id string) (*ManagerRecord, error)

	// GetByUsername retrieves a manager by username.
	GetByUsername(ctx context.Context, username string) (*ManagerRecord, error)

	// List retrieves all managers.
	List(ctx context.Context) ([]*ManagerRecord, error)

	// GetNextID returns the next available manager ID.
	GetNextID(ctx context.Context) (string, error)
}

// ManagerRecord represents a manager as stored in persistence.
type ManagerRecord struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Phone     string
	CreatedAt time.Time
}

// CustomerRepository defines the secondary port for customer persistence.
type CustomerRepository interface {
	// Create persists a new customer.
	Create(ctx context.Context, customer *CustomerRecord) error

	// GetByID retrieves a customer by its ID.
	GetByID(ctx context.Context, id string) (*CustomerRecord, error)

	// GetByName retrieves a customer by name, matched case-insensitively.
	GetByName(ctx context.Context, name string) (*CustomerRecord, error)

	// List retrieves all customers.
	List(ctx context.Context) ([]*CustomerRecord, error)

	// GetNextID returns the next available customer ID.
	GetNextID(ctx context.Context) (string, error)
}

// CustomerRecord represents a customer as stored in persistence.
type CustomerRecord struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
}
