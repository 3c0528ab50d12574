package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// ProjectRepository implements secondary.ProjectRepository with SQLite.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new SQLite project repository.
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

const projectSelectCols = "id, number, name, description, start_date, planned_end_date, end_date_in_contract, real_end_date, start_first_operation_date, period, operation_period, ended, manager_id, customer_id, comment, created_at, updated_at"

// scanProject scans a project row into the models entity.
func scanProject(scanner interface {
	Scan(dest ...any) error
}) (*models.Project, error) {
	p := &models.Project{}
	err := scanner.Scan(
		&p.ID, &p.Number, &p.Name, &p.Description,
		&p.StartDate, &p.PlannedEndDate, &p.EndDateInContract,
		&p.RealEndDate, &p.StartFirstOperationDate, &p.Period, &p.OperationPeriod,
		&p.Ended, &p.ManagerID, &p.CustomerID, &p.Comment,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func projectToRecord(p *models.Project) *secondary.ProjectRecord {
	return &secondary.ProjectRecord{
		ID:                      p.ID,
		Number:                  p.Number,
		Name:                    p.Name,
		Description:             p.Description.String,
		StartDate:               p.StartDate,
		PlannedEndDate:          p.PlannedEndDate,
		EndDateInContract:       p.EndDateInContract,
		RealEndDate:             timePtr(p.RealEndDate),
		StartFirstOperationDate: timePtr(p.StartFirstOperationDate),
		Period:                  p.Period,
		OperationPeriod:         p.OperationPeriod,
		Ended:                   p.Ended,
		ManagerID:               p.ManagerID,
		CustomerID:              p.CustomerID,
		Comment:                 p.Comment.String,
		CreatedAt:               p.CreatedAt,
		UpdatedAt:               p.UpdatedAt,
	}
}

func projectFromRecord(r *secondary.ProjectRecord) *models.Project {
	return &models.Project{
		ID:                      r.ID,
		Number:                  r.Number,
		Name:                    r.Name,
		Description:             nullString(r.Description),
		StartDate:               r.StartDate,
		PlannedEndDate:          r.PlannedEndDate,
		EndDateInContract:       r.EndDateInContract,
		RealEndDate:             nullTime(r.RealEndDate),
		StartFirstOperationDate: nullTime(r.StartFirstOperationDate),
		Period:                  r.Period,
		OperationPeriod:         r.OperationPeriod,
		Ended:                   r.Ended,
		ManagerID:               r.ManagerID,
		CustomerID:              r.CustomerID,
		Comment:                 nullString(r.Comment),
	}
}

// Create persists a new project.
func (r *ProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	p := projectFromRecord(project)

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO projects (id, number, name, description, start_date, planned_end_date, end_date_in_contract, period, operation_period, manager_id, customer_id, comment) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)",
		p.ID, p.Number, p.Name, p.Description,
		p.StartDate, p.PlannedEndDate, p.EndDateInContract,
		p.Period, p.OperationPeriod, p.ManagerID, p.CustomerID, p.Comment,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

// GetByID retrieves a project by its ID.
func (r *ProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+projectSelectCols+" FROM projects WHERE id = ?",
		id,
	)

	p, err := scanProject(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound(id, "project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return projectToRecord(p), nil
}

// Update updates an existing project.
func (r *ProjectRepository) Update(ctx context.Context, project *secondary.ProjectRecord) error {
	p := projectFromRecord(project)

	result, err := r.db.ExecContext(ctx,
		`UPDATE projects SET number = ?, name = ?, description = ?, start_date = ?,
			planned_end_date = ?, end_date_in_contract = ?, real_end_date = ?,
			start_first_operation_date = ?, period = ?, operation_period = ?,
			ended = ?, manager_id = ?, customer_id = ?, comment = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?`,
		p.Number, p.Name, p.Description, p.StartDate,
		p.PlannedEndDate, p.EndDateInContract, p.RealEndDate,
		p.StartFirstOperationDate, p.Period, p.OperationPeriod,
		p.Ended, p.ManagerID, p.CustomerID, p.Comment,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		return fault.NotFound(project.ID, "project not found")
	}
	return nil
}

// List retrieves projects matching the given filters.
func (r *ProjectRepository) List(ctx context.Context, filters secondary.ProjectFilters) ([]*secondary.ProjectRecord, error) {
	query := "SELECT " + projectSelectCols + " FROM projects WHERE 1=1"
	args := []any{}

	if filters.Ended != nil {
		query += " AND ended = ?"
		args = append(args, *filters.Ended)
	}

	query += " ORDER BY created_at DESC, id DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*secondary.ProjectRecord
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, projectToRecord(p))
	}
	return projects, nil
}

// GetNextID returns the next available project ID.
func (r *ProjectRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM projects",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next project ID: %w", err)
	}
	return fmt.Sprintf("PROJ-%03d", maxID+1), nil
}

// timePtr converts a nullable DATETIME column to a *time.Time.
func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}

// nullTime converts a *time.Time to a nullable DATETIME value.
func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// nullString converts an empty string to a NULL column value.
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// Ensure ProjectRepository implements the interface
var _ secondary.ProjectRepository = (*ProjectRepository)(nil)
