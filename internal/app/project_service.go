package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/shopfloor/internal/core/fault"
	opguard "github.com/example/shopfloor/internal/core/operation"
	"github.com/example/shopfloor/internal/core/scheduling"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// ProjectServiceImpl implements the ProjectService interface.
type ProjectServiceImpl struct {
	projectRepo   secondary.ProjectRepository
	operationRepo secondary.OperationRepository
	typeWorkRepo  secondary.TypeWorkRepository
	managerRepo   secondary.ManagerRepository
	customerRepo  secondary.CustomerRepository
	clock         secondary.Clock
	logger        *logrus.Logger
}

// NewProjectService creates a new ProjectService with injected dependencies.
func NewProjectService(
	projectRepo secondary.ProjectRepository,
	operationRepo secondary.OperationRepository,
	typeWorkRepo secondary.TypeWorkRepository,
	managerRepo secondary.ManagerRepository,
	customerRepo secondary.CustomerRepository,
	clock secondary.Clock,
	logger *logrus.Logger,
) *ProjectServiceImpl {
	return &ProjectServiceImpl{
		projectRepo:   projectRepo,
		operationRepo: operationRepo,
		typeWorkRepo:  typeWorkRepo,
		managerRepo:   managerRepo,
		customerRepo:  customerRepo,
		clock:         clock,
		logger:        logger,
	}
}

// CreateProject builds a project from an order intake: derives the total and
// per-operation periods, creates the listed operations and the synthetic
// trailing shipment operation. Everything is validated before the first
// persistence write.
func (s *ProjectServiceImpl) CreateProject(ctx context.Context, req primary.CreateProjectRequest) (*primary.CreateProjectResponse, error) {
	period := scheduling.HoursBetween(req.StartDate, req.PlannedEndDate)
	if period <= scheduling.ShipmentPeriodHours {
		return nil, fault.InvalidState(req.Name,
			fmt.Sprintf("planned end must leave more than the %dh shipment window", scheduling.ShipmentPeriodHours))
	}

	manager, err := s.managerRepo.GetByUsername(ctx, req.ManagerUsername)
	if err != nil {
		return nil, err
	}

	// Resolve every referenced type-work up front so a bad reference
	// cannot leave a half-created project behind.
	typeWorks := make([]*secondary.TypeWorkRecord, len(req.Operations))
	for i, in := range req.Operations {
		tw, err := s.resolveTypeWork(ctx, in.TypeWorkID)
		if err != nil {
			return nil, err
		}
		typeWorks[i] = tw
	}
	shipmentTW, err := s.typeWorkRepo.GetByName(ctx, models.ShipmentTypeWorkName)
	if err != nil {
		return nil, fmt.Errorf("shipment type-work missing from catalog: %w", err)
	}

	customerID, err := s.resolveCustomer(ctx, req.CustomerName)
	if err != nil {
		return nil, err
	}

	operationPeriod := scheduling.OperationPeriod(period-scheduling.ShipmentPeriodHours, len(req.Operations))

	projectID, err := s.projectRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate project ID: %w", err)
	}

	project := &secondary.ProjectRecord{
		ID:                projectID,
		Number:            req.Number,
		Name:              req.Name,
		Description:       req.Description,
		StartDate:         req.StartDate,
		PlannedEndDate:    req.PlannedEndDate,
		EndDateInContract: req.PlannedEndDate,
		Period:            period,
		OperationPeriod:   operationPeriod,
		ManagerID:         manager.ID,
		CustomerID:        customerID,
		Comment:           req.Comment,
	}
	if err := s.projectRepo.Create(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	var created []*secondary.OperationRecord
	for i, in := range req.Operations {
		record, err := s.createOperation(ctx, projectID, in, operationPeriod, nil, false, typeWorks[i].ID)
		if err != nil {
			return nil, err
		}
		created = append(created, record)
	}

	shipment, err := s.createOperation(ctx, projectID, primary.OperationInput{
		Name:     models.ShipmentTypeWorkName,
		Priority: shipmentPriority,
	}, scheduling.ShipmentPeriodHours, nil, false, shipmentTW.ID)
	if err != nil {
		return nil, err
	}
	created = append(created, shipment)

	// Readiness belongs to the chain head by priority, not to whichever
	// operation the order happened to list first.
	recomputeReadiness(created)
	for _, op := range created {
		if !op.ReadyToAcceptance {
			continue
		}
		if err := s.operationRepo.Update(ctx, op); err != nil {
			return nil, fmt.Errorf("failed to update operation %s: %w", op.ID, err)
		}
	}

	s.logger.WithFields(logrus.Fields{
		"project_id":       projectID,
		"period_hours":     period,
		"operation_period": operationPeriod,
		"operations":       len(created),
	}).Info("project created")

	stored, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created project: %w", err)
	}

	operations := make([]*primary.Operation, len(created))
	for i, r := range created {
		operations[i] = recordToOperation(r)
	}
	return &primary.CreateProjectResponse{
		ProjectID:  projectID,
		Project:    recordToProject(stored),
		Operations: operations,
	}, nil
}

// GetProject retrieves a project by ID.
func (s *ProjectServiceImpl) GetProject(ctx context.Context, projectID string) (*primary.Project, error) {
	record, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	return recordToProject(record), nil
}

// ListProjects lists projects with optional filters.
func (s *ProjectServiceImpl) ListProjects(ctx context.Context, filters primary.ProjectFilters) ([]*primary.Project, error) {
	records, err := s.projectRepo.List(ctx, secondary.ProjectFilters{
		Ended: filters.Ended,
		Limit: filters.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	projects := make([]*primary.Project, len(records))
	for i, r := range records {
		projects[i] = recordToProject(r)
	}
	return projects, nil
}

// InsertOperations adds operations to a project, recomputes the
// per-operation period from the new count and re-runs date propagation.
func (s *ProjectServiceImpl) InsertOperations(ctx context.Context, req primary.InsertOperationsRequest) error {
	if len(req.Operations) == 0 {
		return nil
	}

	project, err := s.projectRepo.GetByID(ctx, req.ProjectID)
	if err != nil {
		return err
	}
	if project.Ended {
		return fault.Conflict(project.ID, "project is already ended")
	}

	typeWorkIDs := make([]string, len(req.Operations))
	for i, in := range req.Operations {
		tw, err := s.resolveTypeWork(ctx, in.TypeWorkID)
		if err != nil {
			return err
		}
		typeWorkIDs[i] = tw.ID
	}
	shipmentTW, err := s.typeWorkRepo.GetByName(ctx, models.ShipmentTypeWorkName)
	if err != nil {
		return fmt.Errorf("shipment type-work missing from catalog: %w", err)
	}

	existing, err := s.operationRepo.ListByProject(ctx, req.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to list operations: %w", err)
	}

	nonShipment := 0
	for _, op := range existing {
		if op.TypeWorkID != shipmentTW.ID {
			nonShipment++
		}
	}
	project.OperationPeriod = scheduling.OperationPeriod(
		project.Period-scheduling.ShipmentPeriodHours, nonShipment+len(req.Operations))

	var inserted []*secondary.OperationRecord
	for i, in := range req.Operations {
		record, err := s.createOperation(ctx, req.ProjectID, in, project.OperationPeriod, nil, false, typeWorkIDs[i])
		if err != nil {
			return err
		}
		inserted = append(inserted, record)
	}

	all := append(existing, inserted...)
	s.reflow(project, all, shipmentTW.ID)

	if err := s.persistChain(ctx, project, all); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"project_id":       project.ID,
		"inserted":         len(inserted),
		"operation_period": project.OperationPeriod,
	}).Info("operations inserted")
	return nil
}

// DeleteOperation removes an operation that is neither in work nor ended,
// recomputes the per-operation period and re-runs propagation.
func (s *ProjectServiceImpl) DeleteOperation(ctx context.Context, operationID string) error {
	op, err := s.operationRepo.GetByID(ctx, operationID)
	if err != nil {
		return err
	}
	if result := opguard.CanDelete(opguard.DeleteContext{
		OperationID: op.ID,
		IsEnded:     op.IsEnded,
		InWork:      op.InWork,
	}); !result.Allowed {
		return result.Error()
	}

	project, err := s.projectRepo.GetByID(ctx, op.ProjectID)
	if err != nil {
		return err
	}
	shipmentTW, err := s.typeWorkRepo.GetByName(ctx, models.ShipmentTypeWorkName)
	if err != nil {
		return fmt.Errorf("shipment type-work missing from catalog: %w", err)
	}
	if op.TypeWorkID == shipmentTW.ID {
		return fault.InvalidState(op.ID, "shipment operation cannot be deleted")
	}

	if err := s.operationRepo.Delete(ctx, operationID); err != nil {
		return fmt.Errorf("failed to delete operation: %w", err)
	}

	remaining, err := s.operationRepo.ListByProject(ctx, op.ProjectID)
	if err != nil {
		return fmt.Errorf("failed to list operations: %w", err)
	}

	nonShipment := 0
	for _, rec := range remaining {
		if rec.TypeWorkID != shipmentTW.ID {
			nonShipment++
		}
	}
	project.OperationPeriod = scheduling.OperationPeriod(
		project.Period-scheduling.ShipmentPeriodHours, nonShipment)

	s.reflow(project, remaining, shipmentTW.ID)

	if err := s.persistChain(ctx, project, remaining); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"project_id":   project.ID,
		"operation_id": operationID,
	}).Info("operation deleted")
	return nil
}

// RecomputeDates re-runs date propagation over a project's chain, applying
// the overdue re-baseline.
func (s *ProjectServiceImpl) RecomputeDates(ctx context.Context, projectID string) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	ops, err := s.operationRepo.ListByProject(ctx, projectID)
	if err != nil {
		return fmt.Errorf("failed to list operations: %w", err)
	}

	changed := propagateChain(project, ops, s.clock.Now())
	for _, op := range ops {
		if err := s.operationRepo.Update(ctx, op); err != nil {
			return fmt.Errorf("failed to update operation %s: %w", op.ID, err)
		}
	}

	if len(changed) > 0 {
		s.logger.WithFields(logrus.Fields{
			"project_id": projectID,
			"rescheduled": len(changed),
		}).Info("operation dates recomputed")
	}
	return nil
}

// SetContractEndDate edits the frozen contract end date.
func (s *ProjectServiceImpl) SetContractEndDate(ctx context.Context, projectID string, endDate time.Time) error {
	project, err := s.projectRepo.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	project.EndDateInContract = endDate
	if err := s.projectRepo.Update(ctx, project); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	return nil
}

// Helper methods

// createOperation is the operation factory: it computes the planned end from
// the start date and period, sets the initial state flags and persists the
// record. The type-work must already be resolved by the caller.
func (s *ProjectServiceImpl) createOperation(
	ctx context.Context,
	projectID string,
	in primary.OperationInput,
	periodHours int,
	startDate *time.Time,
	ready bool,
	typeWorkID string,
) (*secondary.OperationRecord, error) {
	nextID, err := s.operationRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate operation ID: %w", err)
	}

	var plannedEnd *time.Time
	if startDate != nil {
		end := startDate.Add(time.Duration(periodHours) * time.Hour)
		plannedEnd = &end
	}

	record := &secondary.OperationRecord{
		ID:                nextID,
		ProjectID:         projectID,
		Priority:          in.Priority,
		Name:              in.Name,
		Description:       in.Description,
		StartDate:         startDate,
		PlannedEndDate:    plannedEnd,
		PeriodHours:       periodHours,
		ReadyToAcceptance: ready,
		TypeWorkID:        typeWorkID,
		CreatedAt:         s.clock.Now(),
	}
	if err := s.operationRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create operation: %w", err)
	}
	return record, nil
}

// resolveTypeWork fetches a type-work and rejects inactive catalog entries.
func (s *ProjectServiceImpl) resolveTypeWork(ctx context.Context, typeWorkID string) (*secondary.TypeWorkRecord, error) {
	tw, err := s.typeWorkRepo.GetByID(ctx, typeWorkID)
	if err != nil {
		return nil, err
	}
	if !tw.Active {
		return nil, fault.Conflict(tw.ID, fmt.Sprintf("type-work %q is inactive", tw.Name))
	}
	return tw, nil
}

// resolveCustomer finds a customer by name or registers a new one.
func (s *ProjectServiceImpl) resolveCustomer(ctx context.Context, name string) (string, error) {
	customer, err := s.customerRepo.GetByName(ctx, name)
	if err == nil {
		return customer.ID, nil
	}
	if !fault.IsKind(err, fault.KindNotFound) {
		return "", fmt.Errorf("failed to look up customer: %w", err)
	}

	nextID, err := s.customerRepo.GetNextID(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to generate customer ID: %w", err)
	}
	record := &secondary.CustomerRecord{ID: nextID, Name: name}
	if err := s.customerRepo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("failed to create customer: %w", err)
	}
	return nextID, nil
}

// reflow applies the recomputed per-operation period to the chain, restores
// readiness of the chain head and re-runs date propagation.
func (s *ProjectServiceImpl) reflow(project *secondary.ProjectRecord, ops []*secondary.OperationRecord, shipmentTypeWorkID string) {
	for _, op := range ops {
		if op.TypeWorkID != shipmentTypeWorkID && !op.IsEnded {
			op.PeriodHours = project.OperationPeriod
		}
	}
	recomputeReadiness(ops)
	propagateChain(project, ops, s.clock.Now())
}

// persistChain writes the project and every operation of its chain back.
func (s *ProjectServiceImpl) persistChain(ctx context.Context, project *secondary.ProjectRecord, ops []*secondary.OperationRecord) error {
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

func recordToProject(r *secondary.ProjectRecord) *primary.Project {
	return &primary.Project{
		ID:                      r.ID,
		Number:                  r.Number,
		Name:                    r.Name,
		Description:             r.Description,
		StartDate:               r.StartDate,
		PlannedEndDate:          r.PlannedEndDate,
		EndDateInContract:       r.EndDateInContract,
		RealEndDate:             r.RealEndDate,
		StartFirstOperationDate: r.StartFirstOperationDate,
		Period:                  r.Period,
		OperationPeriod:         r.OperationPeriod,
		Ended:                   r.Ended,
		ManagerID:               r.ManagerID,
		CustomerID:              r.CustomerID,
		Comment:                 r.Comment,
		CreatedAt:               r.CreatedAt,
	}
}

// Ensure ProjectServiceImpl implements the interface
var _ primary.ProjectService = (*ProjectServiceImpl)(nil)
