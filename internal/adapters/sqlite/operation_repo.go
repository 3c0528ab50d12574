package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// OperationRepository implements secondary.OperationRepository with SQLite.
type OperationRepository struct {
	db *sql.DB
}

// NewOperationRepository creates a new SQLite operation repository.
func NewOperationRepository(db *sql.DB) *OperationRepository {
	return &OperationRepository{db: db}
}

const operationSelectCols = "id, project_id, priority, name, description, start_date, acceptance_date, planned_end_date, real_end_date, period_hours, ready_to_acceptance, in_work, is_ended, employee_id, type_work_id, created_at, updated_at"

// scanOperation scans an operation row into the models entity.
func scanOperation(scanner interface {
	Scan(dest ...any) error
}) (*models.Operation, error) {
	op := &models.Operation{}
	err := scanner.Scan(
		&op.ID, &op.ProjectID, &op.Priority, &op.Name, &op.Description,
		&op.StartDate, &op.AcceptanceDate, &op.PlannedEndDate, &op.RealEndDate,
		&op.PeriodHours, &op.ReadyToAcceptance, &op.InWork, &op.IsEnded,
		&op.EmployeeID, &op.TypeWorkID, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return op, nil
}

func operationToRecord(op *models.Operation) *secondary.OperationRecord {
	return &secondary.OperationRecord{
		ID:                op.ID,
		ProjectID:         op.ProjectID,
		Priority:          op.Priority,
		Name:              op.Name,
		Description:       op.Description.String,
		StartDate:         timePtr(op.StartDate),
		AcceptanceDate:    timePtr(op.AcceptanceDate),
		PlannedEndDate:    timePtr(op.PlannedEndDate),
		RealEndDate:       timePtr(op.RealEndDate),
		PeriodHours:       op.PeriodHours,
		ReadyToAcceptance: op.ReadyToAcceptance,
		InWork:            op.InWork,
		IsEnded:           op.IsEnded,
		EmployeeID:        op.EmployeeID.String,
		TypeWorkID:        op.TypeWorkID,
		CreatedAt:         op.CreatedAt,
		UpdatedAt:         op.UpdatedAt,
	}
}

func operationFromRecord(r *secondary.OperationRecord) *models.Operation {
	return &models.Operation{
		ID:                r.ID,
		ProjectID:         r.ProjectID,
		Priority:          r.Priority,
		Name:              r.Name,
		Description:       nullString(r.Description),
		StartDate:         nullTime(r.StartDate),
		AcceptanceDate:    nullTime(r.AcceptanceDate),
		PlannedEndDate:    nullTime(r.PlannedEndDate),
		RealEndDate:       nullTime(r.RealEndDate),
		PeriodHours:       r.PeriodHours,
		ReadyToAcceptance: r.ReadyToAcceptance,
		InWork:            r.InWork,
		IsEnded:           r.IsEnded,
		EmployeeID:        nullString(r.EmployeeID),
		TypeWorkID:        r.TypeWorkID,
	}
}

// Create persists a new operation.
func (r *OperationRepository) Create(ctx context.Context, operation *secondary.OperationRecord) error {
	op := operationFromRecord(operation)

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO operations (id, project_id, priority, name, description,
			start_date, acceptance_date, planned_end_date, real_end_date,
			period_hours, ready_to_acceptance, in_work, is_ended,
			employee_id, type_work_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		op.ID, op.ProjectID, op.Priority, op.Name, op.Description,
		op.StartDate, op.AcceptanceDate, op.PlannedEndDate, op.RealEndDate,
		op.PeriodHours, op.ReadyToAcceptance, op.InWork, op.IsEnded,
		op.EmployeeID, op.TypeWorkID,
	)
	if err != nil {
		return fmt.Errorf("failed to create operation: %w", err)
	}
	return nil
}

// GetByID retrieves an operation by its ID.
func (r *OperationRepository) GetByID(ctx context.Context, id string) (*secondary.OperationRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+operationSelectCols+" FROM operations WHERE id = ?",
		id,
	)

	op, err := scanOperation(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound(id, "operation not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get operation: %w", err)
	}
	return operationToRecord(op), nil
}

// Update updates an existing operation.
func (r *OperationRepository) Update(ctx context.Context, operation *secondary.OperationRecord) error {
	op := operationFromRecord(operation)

	result, err := r.db.ExecContext(ctx,
		`UPDATE operations SET priority = ?, name = ?, description = ?,
			start_date = ?, acceptance_date = ?, planned_end_date = ?, real_end_date = ?,
			period_hours = ?, ready_to_acceptance = ?, in_work = ?, is_ended = ?,
			employee_id = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		op.Priority, op.Name, op.Description,
		op.StartDate, op.AcceptanceDate, op.PlannedEndDate, op.RealEndDate,
		op.PeriodHours, op.ReadyToAcceptance, op.InWork, op.IsEnded,
		op.EmployeeID,
		op.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update operation: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFound(operation.ID, "operation not found")
	}
	return nil
}

// Delete removes an operation from persistence.
func (r *OperationRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM operations WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete operation: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFound(id, "operation not found")
	}
	return nil
}

// ListByProject retrieves a project's operations ordered by priority
// ascending, ties by creation order. This ordering feeds date propagation
// and must stay deterministic.
func (r *OperationRepository) ListByProject(ctx context.Context, projectID string) ([]*secondary.OperationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+operationSelectCols+" FROM operations WHERE project_id = ? ORDER BY priority ASC, created_at ASC, id ASC",
		projectID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations: %w", err)
	}
	defer rows.Close()

	var operations []*secondary.OperationRecord
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		operations = append(operations, operationToRecord(op))
	}
	return operations, nil
}

// ListByEmployee retrieves operations assigned to an employee.
func (r *OperationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*secondary.OperationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+operationSelectCols+" FROM operations WHERE employee_id = ? ORDER BY created_at ASC, id ASC",
		employeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list operations by employee: %w", err)
	}
	defer rows.Close()

	var operations []*secondary.OperationRecord
	for rows.Next() {
		op, err := scanOperation(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan operation: %w", err)
		}
		operations = append(operations, operationToRecord(op))
	}
	return operations, nil
}

// GetNextID returns the next available operation ID.
func (r *OperationRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM operations",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next operation ID: %w", err)
	}
	return fmt.Sprintf("OP-%03d", maxID+1), nil
}

// Ensure OperationRepository implements the interface
var _ secondary.OperationRepository = (*OperationRepository)(nil)
