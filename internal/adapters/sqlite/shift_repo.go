package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// ShiftRepository implements secondary.ShiftRepository with SQLite.
type ShiftRepository struct {
	db *sql.DB
}

// NewShiftRepository creates a new SQLite shift repository.
func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

const shiftSelectCols = "id, start_shift, end_shift, ended, time_of_day, created_at"

// scanShift scans a shift row into the models entity.
func scanShift(scanner interface {
	Scan(dest ...any) error
}) (*models.WorkingShift, error) {
	s := &models.WorkingShift{}
	err := scanner.Scan(
		&s.ID, &s.StartShift, &s.EndShift, &s.Ended,
		&s.TimeOfDay, &s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func shiftToRecord(s *models.WorkingShift) *secondary.ShiftRecord {
	return &secondary.ShiftRecord{
		ID:         s.ID,
		StartShift: s.StartShift,
		EndShift:   timePtr(s.EndShift),
		Ended:      s.Ended,
		TimeOfDay:  s.TimeOfDay,
		CreatedAt:  s.CreatedAt,
	}
}

// Create persists a new shift.
func (r *ShiftRepository) Create(ctx context.Context, shift *secondary.ShiftRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO working_shifts (id, start_shift, ended, time_of_day) VALUES (?, ?, ?, ?)",
		shift.ID, shift.StartShift, shift.Ended, shift.TimeOfDay,
	)
	if err != nil {
		return fmt.Errorf("failed to create shift: %w", err)
	}
	return nil
}

// GetByID retrieves a shift by its ID.
func (r *ShiftRepository) GetByID(ctx context.Context, id string) (*secondary.ShiftRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+shiftSelectCols+" FROM working_shifts WHERE id = ?",
		id,
	)

	shift, err := scanShift(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound(id, "shift not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shift: %w", err)
	}
	return shiftToRecord(shift), nil
}

// Update updates an existing shift.
func (r *ShiftRepository) Update(ctx context.Context, shift *secondary.ShiftRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE working_shifts SET end_shift = ?, ended = ?, time_of_day = ? WHERE id = ?",
		nullTime(shift.EndShift), shift.Ended, shift.TimeOfDay, shift.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update shift: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFound(shift.ID, "shift not found")
	}
	return nil
}

// FindOpen returns the single open shift, or nil when none is open.
func (r *ShiftRepository) FindOpen(ctx context.Context) (*secondary.ShiftRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+shiftSelectCols+" FROM working_shifts WHERE ended = 0 LIMIT 1",
	)

	shift, err := scanShift(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find open shift: %w", err)
	}
	return shiftToRecord(shift), nil
}

// List retrieves shifts, most recent first.
func (r *ShiftRepository) List(ctx context.Context, filters secondary.ShiftFilters) ([]*secondary.ShiftRecord, error) {
	query := "SELECT " + shiftSelectCols + " FROM working_shifts ORDER BY start_shift DESC, id DESC"
	args := []any{}

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	defer rows.Close()

	var shifts []*secondary.ShiftRecord
	for rows.Next() {
		shift, err := scanShift(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan shift: %w", err)
		}
		shifts = append(shifts, shiftToRecord(shift))
	}
	return shifts, nil
}

// GetNextID returns the next available shift ID.
func (r *ShiftRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 7) AS INTEGER)), 0) FROM working_shifts",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next shift ID: %w", err)
	}
	return fmt.Sprintf("SHIFT-%03d", maxID+1), nil
}

// Ensure ShiftRepository implements the interface
var _ secondary.ShiftRepository = (*ShiftRepository)(nil)
