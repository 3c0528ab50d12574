package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// TimeControlRepository implements secondary.TimeControlRepository with SQLite.
type TimeControlRepository struct {
	db *sql.DB
}

// NewTimeControlRepository creates a new SQLite time-control repository.
func NewTimeControlRepository(db *sql.DB) *TimeControlRepository {
	return &TimeControlRepository{db: db}
}

const timeControlSelectCols = "id, shift_id, employee_id, on_shift, auto_closed, arrival, departure"

// scanTimeControl scans a time-control row into the models entity.
func scanTimeControl(scanner interface {
	Scan(dest ...any) error
}) (*models.TimeControl, error) {
	tc := &models.TimeControl{}
	err := scanner.Scan(
		&tc.ID, &tc.ShiftID, &tc.EmployeeID,
		&tc.OnShift, &tc.AutoClosed, &tc.Arrival, &tc.Departure,
	)
	if err != nil {
		return nil, err
	}
	return tc, nil
}

func timeControlToRecord(tc *models.TimeControl) *secondary.TimeControlRecord {
	return &secondary.TimeControlRecord{
		ID:         tc.ID,
		ShiftID:    tc.ShiftID,
		EmployeeID: tc.EmployeeID,
		OnShift:    tc.OnShift,
		AutoClosed: tc.AutoClosed,
		Arrival:    tc.Arrival,
		Departure:  timePtr(tc.Departure),
	}
}

// Create persists a new time control.
func (r *TimeControlRepository) Create(ctx context.Context, timeControl *secondary.TimeControlRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO time_controls (id, shift_id, employee_id, on_shift, auto_closed, arrival, departure) VALUES (?, ?, ?, ?, ?, ?, ?)",
		timeControl.ID, timeControl.ShiftID, timeControl.EmployeeID,
		timeControl.OnShift, timeControl.AutoClosed, timeControl.Arrival,
		nullTime(timeControl.Departure),
	)
	if err != nil {
		return fmt.Errorf("failed to create time control: %w", err)
	}
	return nil
}

// Update updates an existing time control.
func (r *TimeControlRepository) Update(ctx context.Context, timeControl *secondary.TimeControlRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE time_controls SET on_shift = ?, auto_closed = ?, departure = ? WHERE id = ?",
		timeControl.OnShift, timeControl.AutoClosed, nullTime(timeControl.Departure),
		timeControl.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update time control: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFound(timeControl.ID, "time control not found")
	}
	return nil
}

// ListByShift retrieves all time controls under a shift.
func (r *TimeControlRepository) ListByShift(ctx context.Context, shiftID string) ([]*secondary.TimeControlRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+timeControlSelectCols+" FROM time_controls WHERE shift_id = ? ORDER BY arrival ASC, id ASC",
		shiftID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list time controls: %w", err)
	}
	defer rows.Close()

	var controls []*secondary.TimeControlRecord
	for rows.Next() {
		tc, err := scanTimeControl(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan time control: %w", err)
		}
		controls = append(controls, timeControlToRecord(tc))
	}
	return controls, nil
}

// FindOpenForEmployee returns the employee's open time control under the
// given shift, or nil when none exists.
func (r *TimeControlRepository) FindOpenForEmployee(ctx context.Context, shiftID, employeeID string) (*secondary.TimeControlRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+timeControlSelectCols+" FROM time_controls WHERE shift_id = ? AND employee_id = ? AND on_shift = 1 LIMIT 1",
		shiftID, employeeID,
	)

	tc, err := scanTimeControl(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find open time control: %w", err)
	}
	return timeControlToRecord(tc), nil
}

// GetNextID returns the next available time-control ID.
func (r *TimeControlRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM time_controls",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next time-control ID: %w", err)
	}
	return fmt.Sprintf("TC-%03d", maxID+1), nil
}

// Ensure TimeControlRepository implements the interface
var _ secondary.TimeControlRepository = (*TimeControlRepository)(nil)
