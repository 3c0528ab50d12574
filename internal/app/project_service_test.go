package app

import (
	"context"
	"testing"
	"time"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/core/scheduling"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

var baseTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// fixture wires the project and operation services against shared mocks
// seeded with the shipment type-work, two trade type-works, a manager and
// three employees.
type fixture struct {
	projects     *mockProjectRepository
	operations   *mockOperationRepository
	typeWorks    *mockTypeWorkRepository
	managers     *mockManagerRepository
	customers    *mockCustomerRepository
	employees    *mockEmployeeRepository
	clock        *fixedClock
	projectSvc   *ProjectServiceImpl
	operationSvc *OperationServiceImpl
}

func newFixture() *fixture {
	f := &fixture{
		projects:   newMockProjectRepository(),
		operations: newMockOperationRepository(),
		typeWorks:  newMockTypeWorkRepository(),
		managers:   newMockManagerRepository(),
		customers:  newMockCustomerRepository(),
		employees:  newMockEmployeeRepository(),
		clock:      &fixedClock{now: baseTime},
	}

	f.typeWorks.typeWorks = []*secondary.TypeWorkRecord{
		{ID: "TW-001", Name: models.ShipmentTypeWorkName, Active: true},
		{ID: "TW-002", Name: "Welding", Active: true},
		{ID: "TW-003", Name: "Assembly", Active: true},
	}
	f.managers.managers = []*secondary.ManagerRecord{
		{ID: "MGR-001", Username: "ivanov", FirstName: "Ivan", LastName: "Ivanov"},
	}
	f.employees.employees = []*secondary.EmployeeRecord{
		{ID: "EMP-001", FirstName: "Pavel", LastName: "Welder", Active: true},
		{ID: "EMP-002", FirstName: "Anna", LastName: "Fitter", Active: true},
		{ID: "EMP-003", FirstName: "Oleg", LastName: "Shipper", Active: true},
	}
	f.employees.capabilities = map[string][]string{
		"EMP-001": {"TW-002"},
		"EMP-002": {"TW-002", "TW-003"},
		"EMP-003": {"TW-001"},
	}

	logger := newTestLogger()
	f.projectSvc = NewProjectService(f.projects, f.operations, f.typeWorks, f.managers, f.customers, f.clock, logger)
	f.operationSvc = NewOperationService(f.operations, f.projects, f.employees, f.clock, logger)
	return f
}

// createStandardProject creates a 240-hour project with five welding
// operations, yielding an operation period of (240-24)/5 = 43 hours.
func createStandardProject(t *testing.T, f *fixture) *primary.CreateProjectResponse {
	t.Helper()
	ops := []primary.OperationInput{
		{Name: "Cutting", TypeWorkID: "TW-002", Priority: 1},
		{Name: "Welding", TypeWorkID: "TW-002", Priority: 2},
		{Name: "Grinding", TypeWorkID: "TW-002", Priority: 3},
		{Name: "Assembly", TypeWorkID: "TW-003", Priority: 4},
		{Name: "Painting", TypeWorkID: "TW-003", Priority: 5},
	}
	resp, err := f.projectSvc.CreateProject(context.Background(), primary.CreateProjectRequest{
		Number:          17,
		Name:            "Frame batch",
		StartDate:       baseTime,
		PlannedEndDate:  baseTime.Add(240 * time.Hour),
		CustomerName:    "Acme Metals",
		ManagerUsername: "ivanov",
		Operations:      ops,
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}
	return resp
}

func TestCreateProject_DerivesPeriods(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	if resp.Project.Period != 240 {
		t.Errorf("expected period 240, got %d", resp.Project.Period)
	}
	if resp.Project.OperationPeriod != 43 {
		t.Errorf("expected operation period 43, got %d", resp.Project.OperationPeriod)
	}
	if !resp.Project.EndDateInContract.Equal(resp.Project.PlannedEndDate) {
		t.Errorf("expected contract end date copied from planned end date")
	}
	if resp.Project.Ended {
		t.Error("expected new project not ended")
	}
	if resp.Project.StartFirstOperationDate != nil {
		t.Error("expected start-first-operation date unset at intake")
	}
}

func TestCreateProject_SynthesizesShipmentOperation(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	if len(resp.Operations) != 6 {
		t.Fatalf("expected 5 operations plus shipment, got %d", len(resp.Operations))
	}
	shipment := resp.Operations[len(resp.Operations)-1]
	if shipment.TypeWorkID != "TW-001" {
		t.Errorf("expected shipment type-work, got %s", shipment.TypeWorkID)
	}
	if shipment.PeriodHours != scheduling.ShipmentPeriodHours {
		t.Errorf("expected shipment period %d, got %d", scheduling.ShipmentPeriodHours, shipment.PeriodHours)
	}
	if shipment.ReadyToAcceptance {
		t.Error("expected shipment operation not ready at intake")
	}
	for _, op := range resp.Operations {
		if op.StartDate != nil || op.PlannedEndDate != nil {
			t.Errorf("expected operation %s unscheduled before first acceptance", op.ID)
		}
	}
}

func TestCreateProject_FirstOperationReady(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	if !resp.Operations[0].ReadyToAcceptance {
		t.Error("expected first operation ready to acceptance")
	}
	for _, op := range resp.Operations[1:] {
		if op.ReadyToAcceptance {
			t.Errorf("expected operation %s pending, not ready", op.ID)
		}
	}
}

func TestCreateProject_ReadinessFollowsPriorityNotInputOrder(t *testing.T) {
	f := newFixture()
	resp, err := f.projectSvc.CreateProject(context.Background(), primary.CreateProjectRequest{
		Number:          18,
		Name:            "Out-of-order batch",
		StartDate:       baseTime,
		PlannedEndDate:  baseTime.Add(240 * time.Hour),
		CustomerName:    "Acme Metals",
		ManagerUsername: "ivanov",
		Operations: []primary.OperationInput{
			{Name: "Welding", TypeWorkID: "TW-002", Priority: 2},
			{Name: "Cutting", TypeWorkID: "TW-002", Priority: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	for _, op := range resp.Operations {
		ready := op.Priority == 1
		if op.ReadyToAcceptance != ready {
			t.Errorf("operation %s (priority %d): ready=%t, want %t",
				op.Name, op.Priority, op.ReadyToAcceptance, ready)
		}
	}

	// The persisted chain head must agree with the response.
	stored, err := f.operations.ListByProject(context.Background(), resp.ProjectID)
	if err != nil {
		t.Fatalf("ListByProject failed: %v", err)
	}
	for _, op := range stored {
		if op.Priority == 1 && !op.ReadyToAcceptance {
			t.Errorf("expected persisted priority-1 operation %s ready", op.Name)
		}
		if op.Priority != 1 && op.ReadyToAcceptance {
			t.Errorf("expected persisted operation %s (priority %d) pending", op.Name, op.Priority)
		}
	}
}

func TestCreateProject_ManagerNotFound(t *testing.T) {
	f := newFixture()
	_, err := f.projectSvc.CreateProject(context.Background(), primary.CreateProjectRequest{
		Name:            "Orphan",
		StartDate:       baseTime,
		PlannedEndDate:  baseTime.Add(240 * time.Hour),
		CustomerName:    "Acme Metals",
		ManagerUsername: "ghost",
	})
	if !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("expected not_found, got %v", err)
	}
	if len(f.projects.projects) != 0 {
		t.Error("expected no project persisted on failure")
	}
}

func TestCreateProject_TypeWorkNotFoundIsAtomic(t *testing.T) {
	f := newFixture()
	_, err := f.projectSvc.CreateProject(context.Background(), primary.CreateProjectRequest{
		Name:            "Bad reference",
		StartDate:       baseTime,
		PlannedEndDate:  baseTime.Add(240 * time.Hour),
		CustomerName:    "Acme Metals",
		ManagerUsername: "ivanov",
		Operations: []primary.OperationInput{
			{Name: "Cutting", TypeWorkID: "TW-002", Priority: 1},
			{Name: "Mystery", TypeWorkID: "TW-999", Priority: 2},
		},
	})
	if !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("expected not_found, got %v", err)
	}
	if len(f.projects.projects) != 0 || len(f.operations.operations) != 0 {
		t.Error("expected no partial state persisted on failure")
	}
}

func TestCreateProject_RejectsPeriodInsideShipmentWindow(t *testing.T) {
	f := newFixture()
	_, err := f.projectSvc.CreateProject(context.Background(), primary.CreateProjectRequest{
		Name:            "Rush order",
		StartDate:       baseTime,
		PlannedEndDate:  baseTime.Add(12 * time.Hour),
		CustomerName:    "Acme Metals",
		ManagerUsername: "ivanov",
	})
	if !fault.IsKind(err, fault.KindInvalidState) {
		t.Errorf("expected invalid_state, got %v", err)
	}
}

func TestCreateProject_ReusesExistingCustomer(t *testing.T) {
	f := newFixture()
	createStandardProject(t, f)
	if len(f.customers.customers) != 1 {
		t.Fatalf("expected one customer, got %d", len(f.customers.customers))
	}

	f.projectSvc.CreateProject(context.Background(), primary.CreateProjectRequest{
		Number:          18,
		Name:            "Second batch",
		StartDate:       baseTime,
		PlannedEndDate:  baseTime.Add(120 * time.Hour),
		CustomerName:    "acme metals",
		ManagerUsername: "ivanov",
	})
	if len(f.customers.customers) != 1 {
		t.Errorf("expected customer reused case-insensitively, got %d records", len(f.customers.customers))
	}
}

func TestInsertOperations_RecomputesPeriodAndReadiness(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	err := f.projectSvc.InsertOperations(context.Background(), primary.InsertOperationsRequest{
		ProjectID: resp.ProjectID,
		Operations: []primary.OperationInput{
			{Name: "Prep", TypeWorkID: "TW-002", Priority: 0},
		},
	})
	if err != nil {
		t.Fatalf("InsertOperations failed: %v", err)
	}

	project, _ := f.projects.GetByID(context.Background(), resp.ProjectID)
	// (240-24)/6 = 36
	if project.OperationPeriod != 36 {
		t.Errorf("expected operation period 36 after insert, got %d", project.OperationPeriod)
	}

	ops, _ := f.operations.ListByProject(context.Background(), resp.ProjectID)
	if len(ops) != 7 {
		t.Fatalf("expected 7 operations, got %d", len(ops))
	}
	if ops[0].Name != "Prep" || !ops[0].ReadyToAcceptance {
		t.Errorf("expected inserted head operation ready, got %s ready=%v", ops[0].Name, ops[0].ReadyToAcceptance)
	}
	if ops[1].ReadyToAcceptance {
		t.Error("expected previous head to lose readiness")
	}
	for _, op := range ops[:6] {
		if op.PeriodHours != 36 {
			t.Errorf("expected operation %s period 36, got %d", op.ID, op.PeriodHours)
		}
	}
	if ops[6].PeriodHours != scheduling.ShipmentPeriodHours {
		t.Errorf("expected shipment period untouched, got %d", ops[6].PeriodHours)
	}
}

func TestInsertOperations_EndedProjectRejected(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	stored, _ := f.projects.GetByID(context.Background(), resp.ProjectID)
	stored.Ended = true
	f.projects.Update(context.Background(), stored)

	err := f.projectSvc.InsertOperations(context.Background(), primary.InsertOperationsRequest{
		ProjectID:  resp.ProjectID,
		Operations: []primary.OperationInput{{Name: "Late", TypeWorkID: "TW-002", Priority: 9}},
	})
	if !fault.IsKind(err, fault.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestDeleteOperation_RecomputesPeriod(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	err := f.projectSvc.DeleteOperation(context.Background(), resp.Operations[1].ID)
	if err != nil {
		t.Fatalf("DeleteOperation failed: %v", err)
	}

	project, _ := f.projects.GetByID(context.Background(), resp.ProjectID)
	// (240-24)/4 = 54
	if project.OperationPeriod != 54 {
		t.Errorf("expected operation period 54 after delete, got %d", project.OperationPeriod)
	}
	ops, _ := f.operations.ListByProject(context.Background(), resp.ProjectID)
	if len(ops) != 5 {
		t.Errorf("expected 5 operations after delete, got %d", len(ops))
	}
}

func TestDeleteOperation_InWorkRejected(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	if err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-001",
	}); err != nil {
		t.Fatalf("AcceptOperation failed: %v", err)
	}

	err := f.projectSvc.DeleteOperation(context.Background(), resp.Operations[0].ID)
	if !fault.IsKind(err, fault.KindInvalidState) {
		t.Errorf("expected invalid_state, got %v", err)
	}
	ops, _ := f.operations.ListByProject(context.Background(), resp.ProjectID)
	if len(ops) != 6 {
		t.Errorf("expected operation kept, got %d operations", len(ops))
	}
}

func TestDeleteOperation_ShipmentRejected(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	shipment := resp.Operations[len(resp.Operations)-1]
	err := f.projectSvc.DeleteOperation(context.Background(), shipment.ID)
	if !fault.IsKind(err, fault.KindInvalidState) {
		t.Errorf("expected invalid_state, got %v", err)
	}
}

func TestRecomputeDates_RebaselinesOverdue(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	if err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-001",
	}); err != nil {
		t.Fatalf("AcceptOperation failed: %v", err)
	}

	f.clock.Advance(10 * 24 * time.Hour)
	if err := f.projectSvc.RecomputeDates(context.Background(), resp.ProjectID); err != nil {
		t.Fatalf("RecomputeDates failed: %v", err)
	}

	op, _ := f.operations.GetByID(context.Background(), resp.Operations[0].ID)
	wantEnd := f.clock.Now().Add(scheduling.ShipmentPeriodHours * time.Hour)
	if op.PlannedEndDate == nil || !op.PlannedEndDate.Equal(wantEnd) {
		t.Errorf("expected overdue planned end re-baselined to %v, got %v", wantEnd, op.PlannedEndDate)
	}
	if op.StartDate == nil || !op.StartDate.Equal(baseTime) {
		t.Errorf("expected start date untouched, got %v", op.StartDate)
	}
}

func TestSetContractEndDate(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	newEnd := baseTime.Add(300 * time.Hour)
	if err := f.projectSvc.SetContractEndDate(context.Background(), resp.ProjectID, newEnd); err != nil {
		t.Fatalf("SetContractEndDate failed: %v", err)
	}

	project, _ := f.projects.GetByID(context.Background(), resp.ProjectID)
	if !project.EndDateInContract.Equal(newEnd) {
		t.Errorf("expected contract end date %v, got %v", newEnd, project.EndDateInContract)
	}
	if !project.PlannedEndDate.Equal(baseTime.Add(240 * time.Hour)) {
		t.Error("expected planned end date unchanged by contract edit")
	}
}

func TestListProjects_FilterByEnded(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	stored, _ := f.projects.GetByID(context.Background(), resp.ProjectID)
	stored.Ended = true
	f.projects.Update(context.Background(), stored)

	ended := true
	projects, err := f.projectSvc.ListProjects(context.Background(), primary.ProjectFilters{Ended: &ended})
	if err != nil {
		t.Fatalf("ListProjects failed: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("expected 1 ended project, got %d", len(projects))
	}

	notEnded := false
	projects, _ = f.projectSvc.ListProjects(context.Background(), primary.ProjectFilters{Ended: &notEnded})
	if len(projects) != 0 {
		t.Errorf("expected no active projects, got %d", len(projects))
	}
}
