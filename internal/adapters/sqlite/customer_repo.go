package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/models"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// CustomerRepository implements secondary.CustomerRepository with SQLite.
type CustomerRepository struct {
	db *sql.DB
}

// NewCustomerRepository creates a new SQLite customer repository.
func NewCustomerRepository(db *sql.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

const customerSelectCols = "id, name, phone, created_at"

// scanCustomer scans a customer row into the models entity.
func scanCustomer(scanner interface {
	Scan(dest ...any) error
}) (*models.Customer, error) {
	var phone sql.NullString

	cust := &models.Customer{}
	err := scanner.Scan(&cust.ID, &cust.Name, &phone, &cust.CreatedAt)
	if err != nil {
		return nil, err
	}

	cust.Phone = phone.String
	return cust, nil
}

func customerToRecord(cust *models.Customer) *secondary.CustomerRecord {
	return &secondary.CustomerRecord{
		ID:        cust.ID,
		Name:      cust.Name,
		Phone:     cust.Phone,
		CreatedAt: cust.CreatedAt,
	}
}

// Create persists a new customer.
func (r *CustomerRepository) Create(ctx context.Context, customer *secondary.CustomerRecord) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO customers (id, name, phone) VALUES (?, ?, ?)",
		customer.ID, customer.Name, nullString(customer.Phone),
	)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}
	return nil
}

// GetByID retrieves a customer by its ID.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*secondary.CustomerRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+customerSelectCols+" FROM customers WHERE id = ?",
		id,
	)

	cust, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound(id, "customer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer: %w", err)
	}
	return customerToRecord(cust), nil
}

// GetByName retrieves a customer by name, matched case-insensitively.
func (r *CustomerRepository) GetByName(ctx context.Context, name string) (*secondary.CustomerRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+customerSelectCols+" FROM customers WHERE name = ? COLLATE NOCASE",
		name,
	)

	cust, err := scanCustomer(row)
	if err == sql.ErrNoRows {
		return nil, fault.NotFound(name, "customer not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get customer by name: %w", err)
	}
	return customerToRecord(cust), nil
}

// List retrieves all customers.
func (r *CustomerRepository) List(ctx context.Context) ([]*secondary.CustomerRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+customerSelectCols+" FROM customers ORDER BY id ASC",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []*secondary.CustomerRecord
	for rows.Next() {
		cust, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, customerToRecord(cust))
	}
	return customers, nil
}

// GetNextID returns the next available customer ID.
func (r *CustomerRepository) GetNextID(ctx context.Context) (string, error) {
	var maxID int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(CAST(SUBSTR(id, 6) AS INTEGER)), 0) FROM customers",
	).Scan(&maxID)
	if err != nil {
		return "", fmt.Errorf("failed to get next customer ID: %w", err)
	}
	return fmt.Sprintf("CUST-%03d", maxID+1), nil
}

// Ensure CustomerRepository implements the interface
var _ secondary.CustomerRepository = (*CustomerRepository)(nil)
