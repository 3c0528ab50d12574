package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// EmployeeServiceImpl implements the EmployeeService interface.
type EmployeeServiceImpl struct {
	employeeRepo secondary.EmployeeRepository
	typeWorkRepo secondary.TypeWorkRepository
	logger       *logrus.Logger
}

// NewEmployeeService creates a new EmployeeService with injected dependencies.
func NewEmployeeService(
	employeeRepo secondary.EmployeeRepository,
	typeWorkRepo secondary.TypeWorkRepository,
	logger *logrus.Logger,
) *EmployeeServiceImpl {
	return &EmployeeServiceImpl{
		employeeRepo: employeeRepo,
		typeWorkRepo: typeWorkRepo,
		logger:       logger,
	}
}

// CreateEmployee registers a new employee.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req primary.CreateEmployeeRequest) (*primary.Employee, error) {
	nextID, err := s.employeeRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate employee ID: %w", err)
	}

	record := &secondary.EmployeeRecord{
		ID:        nextID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Active:    true,
	}
	if err := s.employeeRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create employee: %w", err)
	}

	s.logger.WithField("employee_id", nextID).Info("employee created")
	return s.GetEmployee(ctx, nextID)
}

// GetEmployee retrieves an employee with its capability set.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, employeeID string) (*primary.Employee, error) {
	record, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	typeWorkIDs, err := s.employeeRepo.GetTypeWorkIDs(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to load employee capabilities: %w", err)
	}
	employee := recordToEmployee(record)
	employee.TypeWorkIDs = typeWorkIDs
	return employee, nil
}

// ListEmployees lists employees, optionally active only.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, activeOnly bool) ([]*primary.Employee, error) {
	records, err := s.employeeRepo.List(ctx, secondary.EmployeeFilters{ActiveOnly: activeOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	employees := make([]*primary.Employee, len(records))
	for i, r := range records {
		employees[i] = recordToEmployee(r)
	}
	return employees, nil
}

// AssignTypeWork adds a type-work capability to an employee. Re-assigning an
// already-held capability is a no-op.
func (s *EmployeeServiceImpl) AssignTypeWork(ctx context.Context, employeeID, typeWorkID string) error {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return err
	}
	if _, err := s.typeWorkRepo.GetByID(ctx, typeWorkID); err != nil {
		return err
	}
	if err := s.employeeRepo.AssignTypeWork(ctx, employeeID, typeWorkID); err != nil {
		return fmt.Errorf("failed to assign type-work: %w", err)
	}
	s.logger.WithFields(logrus.Fields{
		"employee_id":  employeeID,
		"type_work_id": typeWorkID,
	}).Info("type-work assigned")
	return nil
}

// RevokeTypeWork removes a type-work capability from an employee.
func (s *EmployeeServiceImpl) RevokeTypeWork(ctx context.Context, employeeID, typeWorkID string) error {
	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return err
	}
	if err := s.employeeRepo.RevokeTypeWork(ctx, employeeID, typeWorkID); err != nil {
		return fmt.Errorf("failed to revoke type-work: %w", err)
	}
	return nil
}

func recordToEmployee(r *secondary.EmployeeRecord) *primary.Employee {
	return &primary.Employee{
		ID:        r.ID,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure EmployeeServiceImpl implements the interface
var _ primary.EmployeeService = (*EmployeeServiceImpl)(nil)
