package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// EmployeeRepository implements secondary.EmployeeRepository with SQLite.
type EmployeeRepository struct {
	db *sql.DB
}

// NewEmployeeRepository creates a new SQLite employee repository.
func NewEmployeeRepository(db *sql.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

const employeeSelectCols = "id, first_name, last_name, phone, active, created_at, updated_at"

// scanEmployee scans an employee row into the models entity.
func scanEmployee(scanner interface {
	Scan(dest ...any) error
}) (*models.Employee, error) {
	var lastName, phone sql.NullString

	emp := &models.Employee{}
	err := scanner.Scan(
		&emp.ID, &emp.FirstName, &lastName, &phone,
		&emp.Active, &emp.CreatedAt, &emp.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	emp.LastName = lastName.String
	emp.Phone = phone.String
	return emp, nil
}

func employeeToRecord(emp *models.Employee) *secondary.EmployeeRecord {
	return &secondary.EmployeeRecord{
		ID:        emp.ID,
		FirstName: emp.FirstName,
		LastName:  emp.LastName,
		Phone:     emp.Phone,
		Active:    emp.Active,
		CreatedAt: emp.CreatedAt,
		UpdatedAt: emp.UpdatedAt,
	}
}

// Create persists a new employee.
func (r *EmployeeRepository) Create(ctx context.Context, employee *secondary.EmployeeRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO employees (id, first_name, last_name, phone, active) VALUES (?, ?, ?, ?, ?)",
		employee.ID, employee.FirstName, nullString(employee.LastName), nullString(employee.Phone), employee.Active,
	)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

// GetByID retrieves an employee by its ID.
func (r *EmployeeRepository) GetByID(ctx context.Context, id string) (*secondary.EmployeeRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+employeeSelectCols+" FROM employees WHERE id = ?",
		id,
	)

	emp, err := scanEmployee(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound(id, "employee not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	return employeeToRecord(emp), nil
}

// List retrieves employees.
func (r *EmployeeRepository) List(ctx context.Context, filters secondary.EmployeeFilters) ([]*secondary.EmployeeRecord, error) {
	query := "SELECT " + employeeSelectCols + " FROM employees WHERE 1=1"

	if filters.ActiveOnly {
		query += " AND active = 1"
	}

	query += " ORDER BY id ASC"

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []*secondary.EmployeeRecord
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employeeToRecord(emp))
	}
	return employees, nil
}

// AssignTypeWork adds a type-work to the employee's capability set.
// Re-assigning an already-held capability is a no-op.
func (r *EmployeeRepository) AssignTypeWork(ctx context.Context, employeeID, typeWorkID string) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT OR IGNORE INTO employee_type_works (employee_id, type_work_id) VALUES (?, ?)",
		employeeID, typeWorkID,
	)
	if err != nil {
		return fmt.Errorf("failed to assign type-work: %w", err)
	}
	return nil
}

// RevokeTypeWork removes a type-work from the employee's capability set.
func (r *EmployeeRepository) RevokeTypeWork(ctx context.Context, employeeID, typeWorkID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM employee_type_works WHERE employee_id = ? AND type_work_id = ?",
		employeeID, typeWorkID,
	)
	if err != nil {
		return fmt.Errorf("failed to revoke type-work: %w", err)
	}
	return nil
}

// GetTypeWorkIDs returns the employee's capability set.
func (r *EmployeeRepository) GetTypeWorkIDs(ctx context.Context, employeeID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT type_work_id FROM employee_type_works WHERE employee_id = ? ORDER BY type_work_id ASC",
		employeeID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get employee capabilities: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan capability: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// GetNextID returns the next available employee ID.
func (r *EmployeeRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 5) AS INTEGER)), 0) FROM employees",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next employee ID: %w", err)
	}
	return fmt.Sprintf("EMP-%03d", maxID+1), nil
}

// Ensure EmployeeRepository implements the interface
var _ secondary.EmployeeRepository = (*EmployeeRepository)(nil)
