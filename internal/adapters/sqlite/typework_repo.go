// Package sqlite contains SQLite implementations of repository interfaces.
// Rows scan into the internal/models entities; the port-facing *Record
// structs are derived from them.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// TypeWorkRepository implements secondary.TypeWorkRepository with SQLite.
type TypeWorkRepository struct {
	db *sql.DB
}

// NewTypeWorkRepository creates a new SQLite type-work repository.
func NewTypeWorkRepository(db *sql.DB) *TypeWorkRepository {
	return &TypeWorkRepository{db: db}
}

const typeWorkSelectCols = "id, name, active, created_at, updated_at"

// scanTypeWork scans a type-work row into the models entity.
func scanTypeWork(scanner interface {
	Scan(dest ...any) error
}) (*models.TypeWork, error) {
	tw := &models.TypeWork{}
	err := scanner.Scan(&tw.ID, &tw.Name, &tw.Active, &tw.CreatedAt, &tw.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return tw, nil
}

func typeWorkToRecord(tw *models.TypeWork) *secondary.TypeWorkRecord {
	return &secondary.TypeWorkRecord{
		ID:        tw.ID,
		Name:      tw.Name,
		Active:    tw.Active,
		CreatedAt: tw.CreatedAt,
		UpdatedAt: tw.UpdatedAt,
	}
}

// Create persists a new type-work.
func (r *TypeWorkRepository) Create(ctx context.Context, typeWork *secondary.TypeWorkRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO type_works (id, name, active) VALUES (?, ?, ?)",
		typeWork.ID, typeWork.Name, typeWork.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to create type-work: %w", err)
	}
	return nil
}

// GetByID retrieves a type-work by its ID.
func (r *TypeWorkRepository) GetByID(ctx context.Context, id string) (*secondary.TypeWorkRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+typeWorkSelectCols+" FROM type_works WHERE id = ?",
		id,
	)

	tw, err := scanTypeWork(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound(id, "type-work not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get type-work: %w", err)
	}
	return typeWorkToRecord(tw), nil
}

// GetByName retrieves a type-work by name, matched case-insensitively.
func (r *TypeWorkRepository) GetByName(ctx context.Context, name string) (*secondary.TypeWorkRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+typeWorkSelectCols+" FROM type_works WHERE name = ? COLLATE NOCASE",
		name,
	)

	tw, err := scanTypeWork(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound(name, "type-work not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get type-work by name: %w", err)
	}
	return typeWorkToRecord(tw), nil
}

// Update updates an existing type-work.
func (r *TypeWorkRepository) Update(ctx context.Context, typeWork *secondary.TypeWorkRecord) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE type_works SET name = ?, active = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		typeWork.Name, typeWork.Active, typeWork.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update type-work: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFound(typeWork.ID, "type-work not found")
	}
	return nil
}

// List retrieves type-works matching the given filters.
func (r *TypeWorkRepository) List(ctx context.Context, filters secondary.TypeWorkFilters) ([]*secondary.TypeWorkRecord, error) {
	query := "SELECT " + typeWorkSelectCols + " FROM type_works WHERE 1=1"
	args := []any{}

	if filters.ActiveOnly {
		query += " AND active = 1"
	}

	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list type-works: %w", err)
	}
	defer rows.Close()

	var typeWorks []*secondary.TypeWorkRecord
	for rows.Next() {
		tw, err := scanTypeWork(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan type-work: %w", err)
		}
		typeWorks = append(typeWorks, typeWorkToRecord(tw))
	}
	return typeWorks, nil
}

// GetNextID returns the next available type-work ID.
func (r *TypeWorkRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 4) AS INTEGER)), 0) FROM type_works",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next type-work ID: %w", err)
	}
	return fmt.Sprintf("TW-%03d", maxID+1), nil
}

// Ensure TypeWorkRepository implements the interface
var _ secondary.TypeWorkRepository = (*TypeWorkRepository)(nil)
