package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// ManagerRepository implements secondary.ManagerRepository with SQLite.
type ManagerRepository struct {
	db *sql.DB
}

// NewManagerRepository creates a new SQLite manager repository.
func NewManagerRepository(db *sql.DB) *ManagerRepository {
	return &ManagerRepository{db: db}
}

const managerSelectCols = "id, username, first_name, last_name, phone, created_at"

// scanManager scans a manager row into the models entity.
func scanManager(scanner interface {
	Scan(dest ...any) error
}) (*models.Manager, error) {
	var firstName, lastName, phone sql.NullString

	mgr := &models.Manager{}
	err := scanner.Scan(
		&mgr.ID, &mgr.Username, &firstName, &lastName, &phone, &mgr.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	mgr.FirstName = firstName.String
	mgr.LastName = lastName.String
	mgr.Phone = phone.String
	return mgr, nil
}

func managerToRecord(mgr *models.Manager) *secondary.ManagerRecord {
	return &secondary.ManagerRecord{
		ID:        mgr.ID,
		Username:  mgr.Username,
		FirstName: mgr.FirstName,
		LastName:  mgr.LastName,
		Phone:     mgr.Phone,
		CreatedAt: mgr.CreatedAt,
	}
}

// Create persists a new manager.
func (r *ManagerRepository) Create(ctx context.Context, manager *secondary.ManagerRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO managers (id, username, first_name, last_name, phone) VALUES (?, ?, ?, ?, ?)",
		manager.ID, manager.Username,
		nullString(manager.FirstName), nullString(manager.LastName), nullString(manager.Phone),
	)
	if err != nil {
		return fmt.Errorf("failed to create manager: %w", err)
	}
	return nil
}

// GetByID retrieves a manager by its ID.
func (r *ManagerRepository) GetByID(ctx context.Context, id string) (*secondary.ManagerRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+managerSelectCols+" FROM managers WHERE id = ?",
		id,
	)

	mgr, err := scanManager(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound(id, "manager not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manager: %w", err)
	}
	return managerToRecord(mgr), nil
}

// GetByUsername retrieves a manager by username.
func (r *ManagerRepository) GetByUsername(ctx context.Context, username string) (*secondary.ManagerRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+managerSelectCols+" FROM managers WHERE username = ?",
		username,
	)

	mgr, err := scanManager(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound(username, "manager not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get manager by username: %w", err)
	}
	return managerToRecord(mgr), nil
}

// List retrieves all managers.
func (r *ManagerRepository) List(ctx context.Context) ([]*secondary.ManagerRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+managerSelectCols+" FROM managers ORDER BY id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	defer rows.Close()

	var managers []*secondary.ManagerRecord
	for rows.Next() {
		mgr, err := scanManager(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan manager: %w", err)
		}
		managers = append(managers, managerToRecord(mgr))
	}
	return managers, nil
}

// GetNextID returns the next available manager ID.
func (r *ManagerRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM managers",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next manager ID: %w", err)
	}
	return fmt.Sprintf("MGR-%03d", maxID+1), nil
}

// Ensure ManagerRepository implements the interface
var _ secondary.ManagerRepository = (*ManagerRepository)(nil)
