package primary

import (
	"context"
	"time"
)

// DirectoryService defines the primary port for the manager and customer
// directory consulted at project intake.
type DirectoryService interface {
	// CreateManager registers a manager. Usernames are unique.
	CreateManager(ctx context.Context, req CreateManagerRequest) (*Manager, error)

	// GetManagerByUsername retrieves a manager by username.
	GetManagerByUsername(ctx context.Context, username string) (*Manager, error)

	// ListManagers lists all managers.
	ListManagers(ctx context.Context) ([]*Manager, error)

	// CreateCustomer registers a customer.
	CreateCustomer(ctx context.Context, req CreateCustomerRequest) (*Customer, error)

	// ListCustomers lists all customers.
	ListCustomers(ctx context.Context) ([]*Customer, error)
}

// CreateManagerRequest contains parameters for registering a manager.
type CreateManagerRequest struct {
	Username  string
	FirstName string
	LastName  string
	Phone     string
}

// CreateCustomerRequest contains parameters for registering a customer.
type CreateCustomerRequest struct {
	Name  string
	Phone string
}

// Manager is the caller-facing view of a manager.
type Manager struct {
	ID        string
	Username  string
	FirstName string
	LastName  string
	Phone     string
	CreatedAt time.Time
}

// Customer is the caller-facing view of a customer.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	CreatedAt time.Time
}
