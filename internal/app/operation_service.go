package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	opguard "github.com/example/shopfloor/internal/core/operation"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// OperationServiceImpl implements the OperationService interface.
type OperationServiceImpl struct {
	operationRepo secondary.OperationRepository
	projectRepo   secondary.ProjectRepository
	employeeRepo  secondary.EmployeeRepository
	clock         secondary.Clock
	logger        *logrus.Logger
}

// NewOperationService creates a new OperationService with injected dependencies.
func NewOperationService(
	operationRepo secondary.OperationRepository,
	projectRepo secondary.ProjectRepository,
	employeeRepo secondary.EmployeeRepository,
	clock secondary.Clock,
	logger *logrus.Logger,
) *OperationServiceImpl {
	return &OperationServiceImpl{
		operationRepo: operationRepo,
		projectRepo:   projectRepo,
		employeeRepo:  employeeRepo,
		clock:         clock,
		logger:        logger,
	}
}

// AcceptOperation moves an operation into work for an employee whose
// capability set covers the operation's type-work. The first acceptance in a
// project starts the date chain; an explicit priority re-ranks the operation
// before propagation re-runs.
func (s *OperationServiceImpl) AcceptOperation(ctx context.Context, req primary.AcceptOperationRequest) error {
	op, err := s.operationRepo.GetByID(ctx, req.OperationID)
	if err != nil {
		return err
	}
	employee, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
	if err != nil {
		return err
	}
	capabilities, err := s.employeeRepo.GetTypeWorkIDs(ctx, employee.ID)
	if err != nil {
		return fmt.Errorf("failed to load employee capabilities: %w", err)
	}

	if result := opguard.CanAccept(opguard.AcceptContext{
		OperationID:         op.ID,
		IsEnded:             op.IsEnded,
		InWork:              op.InWork,
		RequiredTypeWorkID:  op.TypeWorkID,
		EmployeeID:          employee.ID,
		EmployeeTypeWorkIDs: capabilities,
	}); !result.Allowed {
		return result.Error()
	}

	now := s.clock.Now()
	op.AcceptanceDate = &now
	op.InWork = true
	op.ReadyToAcceptance = false
	op.EmployeeID = employee.ID
	if req.Priority != nil {
		op.Priority = *req.Priority
	}

	project, err := s.projectRepo.GetByID(ctx, op.ProjectID)
	if err != nil {
		return err
	}
	if project.StartFirstOperationDate == nil {
		project.StartFirstOperationDate = &now
	}

	ops, err := s.loadChainWith(ctx, op)
	if err != nil {
		return err
	}
	recomputeReadiness(ops)
	propagateChain(project, ops, now)

	if err := s.persistChain(ctx, project, ops); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"operation_id": op.ID,
		"employee_id":  employee.ID,
		"project_id":   op.ProjectID,
	}).Info("operation accepted")
	return nil
}

// FinishOperation ends an in-work operation, promotes the next eligible
// operation to ready and closes the project once every operation has ended.
func (s *OperationServiceImpl) FinishOperation(ctx context.Context, req primary.FinishOperationRequest) error {
	op, err := s.operationRepo.GetByID(ctx, req.OperationID)
	if err != nil {
		return err
	}

	if result := opguard.CanFinish(opguard.FinishContext{
		OperationID:          op.ID,
		IsEnded:              op.IsEnded,
		InWork:               op.InWork,
		AssignedEmployeeID:   op.EmployeeID,
		ConfirmingEmployeeID: req.EmployeeID,
	}); !result.Allowed {
		return result.Error()
	}

	now := s.clock.Now()
	op.RealEndDate = &now
	op.IsEnded = true
	op.InWork = false

	project, err := s.projectRepo.GetByID(ctx, op.ProjectID)
	if err != nil {
		return err
	}

	ops, err := s.loadChainWith(ctx, op)
	if err != nil {
		return err
	}
	recomputeReadiness(ops)
	propagateChain(project, ops, now)

	allEnded := true
	for _, rec := range ops {
		if !rec.IsEnded {
			allEnded = false
			break
		}
	}
	if allEnded && !project.Ended {
		project.Ended = true
		project.RealEndDate = &now
		s.logger.WithField("project_id", project.ID).Info("project ended")
	}

	if err := s.persistChain(ctx, project, ops); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"operation_id": op.ID,
		"employee_id":  req.EmployeeID,
		"project_id":   op.ProjectID,
	}).Info("operation finished")
	return nil
}

// GetOperation retrieves an operation by ID.
func (s *OperationServiceImpl) GetOperation(ctx context.Context, operationID string) (*primary.Operation, error) {
	record, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return nil, err
	}
	return recordToOperation(record), nil
}

// ListOperations lists a project's operations in chain order.
func (s *OperationServiceImpl) ListOperations(ctx context.Context, projectID string) ([]*primary.Operation, error) {
	records, err := s.operationRepo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	operations := make([]*primary.Operation, len(records))
	for i, r := range records {
		operations[i] = recordToOperation(r)
	}
	return operations, nil
}

// ListOperationsByEmployee lists operations assigned to an employee.
func (s *OperationServiceImpl) ListOperationsByEmployee(ctx context.Context, employeeID string) ([]*primary.Operation, error) {
	records, err := s.operationRepo.ListByEmployee(ctx, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	operations := make([]*primary.Operation, len(records))
	for i, r := range records {
		operations[i] = recordToOperation(r)
	}
	return operations, nil
}

// Helper methods

// loadChainWith loads the operation's project chain, substituting the
// already-mutated record so the in-memory chain reflects the transition
// before anything is persisted.
func (s *OperationServiceImpl) loadChainWith(ctx context.Context, op *secondary.OperationRecord) ([]*secondary.OperationRecord, error) {
	ops, err := s.operationRepo.ListByProject(ctx, op.ProjectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	for i, rec := range ops {
		if rec.ID == op.ID {
			ops[i] = op
		}
	}
	return ops, nil
}

func (s *OperationServiceImpl) persistChain(ctx context.Context, project *secondary.ProjectRecord, ops []*secondary.OperationRecord) error {
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	for _, op := range ops {
		if err := s.operationRepo.Update(ctx, op); err != nil {
			return fmt.Errorf("failed to update operation %s: %w", op.ID, err)
		}
	}
	return nil
}

func recordToOperation(r *secondary.OperationRecord) *primary.Operation {
	return &primary.Operation{
		ID:                r.ID,
		ProjectID:         r.ProjectID,
		Priority:          r.Priority,
		Name:              r.Name,
		Description:       r.Description,
		StartDate:         r.StartDate,
		AcceptanceDate:    r.AcceptanceDate,
		PlannedEndDate:    r.PlannedEndDate,
		RealEndDate:       r.RealEndDate,
		PeriodHours:       r.PeriodHours,
		ReadyToAcceptance: r.ReadyToAcceptance,
		InWork:            r.InWork,
		IsEnded:           r.IsEnded,
		State:             models.OperationState(r.ReadyToAcceptance, r.InWork, r.IsEnded),
		EmployeeID:        r.EmployeeID,
		TypeWorkID:        r.TypeWorkID,
		CreatedAt:         r.CreatedAt,
	}
}

// Ensure OperationServiceImpl implements the interface
var _ primary.OperationService = (*OperationServiceImpl)(nil)
