package models

import "time"

// Contact holds the person fields shared by employees, managers and
// customers.
type Contact struct {
	FirstName string
	LastName  string
	Phone     string
}

// Employee represents a shop-floor worker. Type-work capabilities are stored
// as a join table and resolved through the employee repository.
type Employee struct {
	ID        string
	Contact
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Manager represents a project owner, looked up by username at project
// creation.
type Manager struct {
	ID       string
	Username string
	Contact
	CreatedAt time.Time
}

// Customer represents the ordering party of a project.
type Customer struct {
	ID   string
	Name string
	Contact
	CreatedAt time.Time
}
