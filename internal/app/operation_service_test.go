package app

import (
	"context"
	"testing"
	"time"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/primary"
)

func TestAcceptOperation_StartsChain(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-001",
	})
	if err != nil {
		t.Fatalf("AcceptOperation failed: %v", err)
	}

	op, _ := f.operations.GetByID(context.Background(), resp.Operations[0].ID)
	if !op.InWork || op.ReadyToAcceptance || op.IsEnded {
		t.Errorf("expected in-work state, got ready=%v inWork=%v ended=%v", op.ReadyToAcceptance, op.InWork, op.IsEnded)
	}
	if op.AcceptanceDate == nil || !op.AcceptanceDate.Equal(baseTime) {
		t.Errorf("expected acceptance date %v, got %v", baseTime, op.AcceptanceDate)
	}
	if op.EmployeeID != "EMP-001" {
		t.Errorf("expected employee EMP-001, got %s", op.EmployeeID)
	}

	project, _ := f.projects.GetByID(context.Background(), resp.ProjectID)
	if project.StartFirstOperationDate == nil || !project.StartFirstOperationDate.Equal(baseTime) {
		t.Errorf("expected project chain started at %v, got %v", baseTime, project.StartFirstOperationDate)
	}

	// First acceptance schedules the whole chain: A starts at the project
	// start, each successor starts at its predecessor's planned end.
	ops, _ := f.operations.ListByProject(context.Background(), resp.ProjectID)
	if ops[0].StartDate == nil || !ops[0].StartDate.Equal(baseTime) {
		t.Fatalf("expected head start %v, got %v", baseTime, ops[0].StartDate)
	}
	wantEnd := baseTime.Add(43 * time.Hour)
	if !ops[0].PlannedEndDate.Equal(wantEnd) {
		t.Errorf("expected head planned end %v, got %v", wantEnd, ops[0].PlannedEndDate)
	}
	if !ops[1].StartDate.Equal(wantEnd) {
		t.Errorf("expected second operation to start at head's planned end, got %v", ops[1].StartDate)
	}
	shipment := ops[len(ops)-1]
	if !shipment.PlannedEndDate.Equal(shipment.StartDate.Add(24 * time.Hour)) {
		t.Errorf("expected shipment planned end 24h after start, got %v", shipment.PlannedEndDate)
	}
}

func TestAcceptOperation_InvalidCapabilityLeavesStateUntouched(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-003", // shipment capability only
	})
	if !fault.IsKind(err, fault.KindInvalidCapability) {
		t.Errorf("expected invalid_capability, got %v", err)
	}

	op, _ := f.operations.GetByID(context.Background(), resp.Operations[0].ID)
	if !op.ReadyToAcceptance || op.InWork || op.EmployeeID != "" || op.AcceptanceDate != nil {
		t.Error("expected operation unchanged after rejected acceptance")
	}
	project, _ := f.projects.GetByID(context.Background(), resp.ProjectID)
	if project.StartFirstOperationDate != nil {
		t.Error("expected project chain not started after rejected acceptance")
	}
}

func TestAcceptOperation_AlreadyInWork(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	if err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-001",
	}); err != nil {
		t.Fatalf("AcceptOperation failed: %v", err)
	}

	err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-002",
	})
	if !fault.IsKind(err, fault.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestAcceptOperation_NotFound(t *testing.T) {
	f := newFixture()
	err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: "OP-404",
		EmployeeID:  "EMP-001",
	})
	if !fault.IsKind(err, fault.KindNotFound) {
		t.Errorf("expected not_found, got %v", err)
	}
}

func TestAcceptOperation_PriorityRerank(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	newPriority := 0
	err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: resp.Operations[2].ID,
		EmployeeID:  "EMP-001",
		Priority:    &newPriority,
	})
	if err != nil {
		t.Fatalf("AcceptOperation failed: %v", err)
	}

	ops, _ := f.operations.ListByProject(context.Background(), resp.ProjectID)
	if ops[0].ID != resp.Operations[2].ID {
		t.Fatalf("expected re-ranked operation at chain head, got %s", ops[0].ID)
	}
	if ops[0].StartDate == nil || !ops[0].StartDate.Equal(baseTime) {
		t.Errorf("expected new head to start the chain, got %v", ops[0].StartDate)
	}
	// The former head loses readiness: only the chain head may be ready,
	// and the head is now in work.
	for _, op := range ops[1:] {
		if op.ReadyToAcceptance {
			t.Errorf("expected operation %s not ready after re-rank", op.ID)
		}
	}
}

func TestFinishOperation_PromotesNext(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	if err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-001",
	}); err != nil {
		t.Fatalf("AcceptOperation failed: %v", err)
	}

	f.clock.Advance(40 * time.Hour)
	err := f.operationSvc.FinishOperation(context.Background(), primary.FinishOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-001",
	})
	if err != nil {
		t.Fatalf("FinishOperation failed: %v", err)
	}

	op, _ := f.operations.GetByID(context.Background(), resp.Operations[0].ID)
	if !op.IsEnded || op.InWork {
		t.Errorf("expected ended state, got inWork=%v ended=%v", op.InWork, op.IsEnded)
	}
	if op.RealEndDate == nil || !op.RealEndDate.Equal(f.clock.Now()) {
		t.Errorf("expected real end date %v, got %v", f.clock.Now(), op.RealEndDate)
	}

	next, _ := f.operations.GetByID(context.Background(), resp.Operations[1].ID)
	if !next.ReadyToAcceptance {
		t.Error("expected next operation promoted to ready")
	}

	project, _ := f.projects.GetByID(context.Background(), resp.ProjectID)
	if project.Ended {
		t.Error("expected project still open with operations remaining")
	}
}

func TestFinishOperation_WrongEmployee(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	if err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-001",
	}); err != nil {
		t.Fatalf("AcceptOperation failed: %v", err)
	}

	err := f.operationSvc.FinishOperation(context.Background(), primary.FinishOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-002",
	})
	if !fault.IsKind(err, fault.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
	op, _ := f.operations.GetByID(context.Background(), resp.Operations[0].ID)
	if !op.InWork || op.IsEnded {
		t.Error("expected operation still in work after rejected finish")
	}
}

func TestFinishOperation_NeverAccepted(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	err := f.operationSvc.FinishOperation(context.Background(), primary.FinishOperationRequest{
		OperationID: resp.Operations[1].ID,
		EmployeeID:  "EMP-001",
	})
	if !fault.IsKind(err, fault.KindConflict) {
		t.Errorf("expected conflict, got %v", err)
	}
}

func TestFinishOperation_DoubleFinish(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	if err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-001",
	}); err != nil {
		t.Fatalf("AcceptOperation failed: %v", err)
	}
	if err := f.operationSvc.FinishOperation(context.Background(), primary.FinishOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-001",
	}); err != nil {
		t.Fatalf("FinishOperation failed: %v", err)
	}

	err := f.operationSvc.FinishOperation(context.Background(), primary.FinishOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-001",
	})
	if !fault.IsKind(err, fault.KindConflict) {
		t.Errorf("expected conflict on double finish, got %v", err)
	}
}

func TestFinishOperation_LastOperationEndsProject(t *testing.T) {
	f := newFixture()
	resp, err := f.projectSvc.CreateProject(context.Background(), primary.CreateProjectRequest{
		Number:          5,
		Name:            "Small order",
		StartDate:       baseTime,
		PlannedEndDate:  baseTime.Add(72 * time.Hour),
		CustomerName:    "Acme Metals",
		ManagerUsername: "ivanov",
		Operations: []primary.OperationInput{
			{Name: "Welding", TypeWorkID: "TW-002", Priority: 1},
		},
	})
	if err != nil {
		t.Fatalf("CreateProject failed: %v", err)
	}

	accept := func(opID, empID string) {
		t.Helper()
		if err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
			OperationID: opID, EmployeeID: empID,
		}); err != nil {
			t.Fatalf("AcceptOperation(%s) failed: %v", opID, err)
		}
	}
	finish := func(opID, empID string) {
		t.Helper()
		if err := f.operationSvc.FinishOperation(context.Background(), primary.FinishOperationRequest{
			OperationID: opID, EmployeeID: empID,
		}); err != nil {
			t.Fatalf("FinishOperation(%s) failed: %v", opID, err)
		}
	}

	accept(resp.Operations[0].ID, "EMP-001")
	f.clock.Advance(8 * time.Hour)
	finish(resp.Operations[0].ID, "EMP-001")

	project, _ := f.projects.GetByID(context.Background(), resp.ProjectID)
	if project.Ended {
		t.Fatal("expected project open while shipment remains")
	}

	shipment := resp.Operations[1]
	accept(shipment.ID, "EMP-003")
	f.clock.Advance(4 * time.Hour)
	finish(shipment.ID, "EMP-003")

	project, _ = f.projects.GetByID(context.Background(), resp.ProjectID)
	if !project.Ended {
		t.Fatal("expected project ended after last operation")
	}
	if project.RealEndDate == nil || !project.RealEndDate.Equal(f.clock.Now()) {
		t.Errorf("expected project real end date %v, got %v", f.clock.Now(), project.RealEndDate)
	}
}

func TestGetOperation_State(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	op, err := f.operationSvc.GetOperation(context.Background(), resp.Operations[0].ID)
	if err != nil {
		t.Fatalf("GetOperation failed: %v", err)
	}
	if op.State != models.OperationStateReady {
		t.Errorf("expected ready state, got %s", op.State)
	}

	pending, _ := f.operationSvc.GetOperation(context.Background(), resp.Operations[1].ID)
	if pending.State != models.OperationStatePending {
		t.Errorf("expected pending state, got %s", pending.State)
	}
}

func TestListOperationsByEmployee(t *testing.T) {
	f := newFixture()
	resp := createStandardProject(t, f)

	if err := f.operationSvc.AcceptOperation(context.Background(), primary.AcceptOperationRequest{
		OperationID: resp.Operations[0].ID,
		EmployeeID:  "EMP-001",
	}); err != nil {
		t.Fatalf("AcceptOperation failed: %v", err)
	}

	ops, err := f.operationSvc.ListOperationsByEmployee(context.Background(), "EMP-001")
	if err != nil {
		t.Fatalf("ListOperationsByEmployee failed: %v", err)
	}
	if len(ops) != 1 || ops[0].ID != resp.Operations[0].ID {
		t.Errorf("expected the accepted operation, got %d operations", len(ops))
	}
}
