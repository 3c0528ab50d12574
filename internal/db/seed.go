package db

import (
	"database/sql"
	"fmt"
	"time"
)

// SeedFixtures populates the database with development fixtures. Uses
// realistic IDs and data that exercises the full operation chain.
func SeedFixtures(database *sql.DB) error {
	now := time.Now().Format(time.RFC3339)

	// Type-works. Shipment is the terminal category synthesized onto every
	// project; it must always exist.
	typeWorks := []struct{ id, name string }{
		{"TW-001", "Shipment"},
		{"TW-002", "Cutting"},
		{"TW-003", "Welding"},
		{"TW-004", "Assembly"},
		{"TW-005", "Painting"},
	}
	for _, tw := range typeWorks {
		if _, err := database.Exec(
			"INSERT INTO type_works (id, name, active, created_at) VALUES (?, ?, 1, ?)",
			tw.id, tw.name, now,
		); err != nil {
			return fmt.Errorf("seed type_works: %w", err)
		}
	}

	// Employees
	employees := []struct{ id, firstName, lastName, phone string }{
		{"EMP-001", "Pavel", "Sokolov", "+7-900-111-22-33"},
		{"EMP-002", "Anna", "Morozova", "+7-900-222-33-44"},
		{"EMP-003", "Oleg", "Belov", "+7-900-333-44-55"},
	}
	for _, e := range employees {
		if _, err := database.Exec(
			"INSERT INTO employees (id, first_name, last_name, phone, active, created_at) VALUES (?, ?, ?, ?, 1, ?)",
			e.id, e.firstName, e.lastName, e.phone, now,
		); err != nil {
			return fmt.Errorf("seed employees: %w", err)
		}
	}

	// Capability sets
	capabilities := []struct{ employeeID, typeWorkID string }{
		{"EMP-001", "TW-002"},
		{"EMP-001", "TW-003"},
		{"EMP-002", "TW-004"},
		{"EMP-002", "TW-005"},
		{"EMP-003", "TW-001"},
	}
	for _, c := range capabilities {
		if _, err := database.Exec(
			"INSERT INTO employee_type_works (employee_id, type_work_id, created_at) VALUES (?, ?, ?)",
			c.employeeID, c.typeWorkID, now,
		); err != nil {
			return fmt.Errorf("seed employee_type_works: %w", err)
		}
	}

	// Managers
	managers := []struct{ id, username, firstName, lastName string }{
		{"MGR-001", "ivanov", "Ivan", "Ivanov"},
		{"MGR-002", "petrova", "Elena", "Petrova"},
	}
	for _, m := range managers {
		if _, err := database.Exec(
			"INSERT INTO managers (id, username, first_name, last_name, created_at) VALUES (?, ?, ?, ?, ?)",
			m.id, m.username, m.firstName, m.lastName, now,
		); err != nil {
			return fmt.Errorf("seed managers: %w", err)
		}
	}

	// Customers
	customers := []struct{ id, name, phone string }{
		{"CUST-001", "Acme Metals", "+7-495-000-11-22"},
		{"CUST-002", "Northern Steel", "+7-812-000-33-44"},
	}
	for _, c := range customers {
		if _, err := database.Exec(
			"INSERT INTO customers (id, name, phone, created_at) VALUES (?, ?, ?, ?)",
			c.id, c.name, c.phone, now,
		); err != nil {
			return fmt.Errorf("seed customers: %w", err)
		}
	}

	return nil
}
