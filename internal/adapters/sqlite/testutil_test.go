// Package sqlite_test contains integration tests for SQLite repositories.
//
// # Schema Protection
//
// This file is the SINGLE POINT where the database schema is loaded for tests.
// All test setup functions use db.GetSchemaSQL() to ensure tests run against
// the authoritative schema, preventing drift between test and production.
//
// DO NOT hardcode CREATE TABLE statements in test files. Use setupTestDB()
// and the seed* helpers instead.
package sqlite_test

import (
	"database/sql"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/example/shopfloor/internal/db"
)

// setupTestDB creates an in-memory database with the authoritative schema.
// This is the single shared test database setup function for all repository tests.
// Uses db.GetSchemaSQL() to prevent test schemas from drifting.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	testDB, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	// Use the authoritative schema from schema.go
	_, err = testDB.Exec(db.GetSchemaSQL())
	if err != nil {
		t.Fatalf("failed to create schema: %v", err)
	}

	t.Cleanup(func() {
		testDB.Close()
	})

	return testDB
}

// seedTypeWork inserts a test type-work and returns its ID.
func seedTypeWork(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "TW-001"
	}
	if name == "" {
		name = "Welding"
	}
	_, err := db.Exec("INSERT INTO type_works (id, name, active) VALUES (?, ?, 1)", id, name)
	if err != nil {
		t.Fatalf("failed to seed type-work: %v", err)
	}
	return id
}

// seedEmployee inserts a test employee and returns its ID.
func seedEmployee(t *testing.T, db *sql.DB, id, firstName string) string {
	t.Helper()
	if id == "" {
		id = "EMP-001"
	}
	if firstName == "" {
		firstName = "Pavel"
	}
	_, err := db.Exec("INSERT INTO employees (id, first_name, active) VALUES (?, ?, 1)", id, firstName)
	if err != nil {
		t.Fatalf("failed to seed employee: %v", err)
	}
	return id
}

// seedManager inserts a test manager and returns its ID.
func seedManager(t *testing.T, db *sql.DB, id, username string) string {
	t.Helper()
	if id == "" {
		id = "MGR-001"
	}
	if username == "" {
		username = "ivanov"
	}
	_, err := db.Exec("INSERT INTO managers (id, username) VALUES (?, ?)", id, username)
	if err != nil {
		t.Fatalf("failed to seed manager: %v", err)
	}
	return id
}

// seedCustomer inserts a test customer and returns its ID.
func seedCustomer(t *testing.T, db *sql.DB, id, name string) string {
	t.Helper()
	if id == "" {
		id = "CUST-001"
	}
	if name == "" {
		name = "Acme Metals"
	}
	_, err := db.Exec("INSERT INTO customers (id, name) VALUES (?, ?)", id, name)
	if err != nil {
		t.Fatalf("failed to seed customer: %v", err)
	}
	return id
}

// seedProject inserts a minimal test project and returns its ID. The manager
// and customer must already exist.
func seedProject(t *testing.T, db *sql.DB, id, managerID, customerID string, start time.Time) string {
	t.Helper()
	if id == "" {
		id = "PROJ-001"
	}
	_, err := db.Exec(
		"INSERT INTO projects (id, number, name, start_date, planned_end_date, end_date_in_contract, period, operation_period, manager_id, customer_id) VALUES (?, 1, 'Test Project', ?, ?, ?, 240, 43, ?, ?)",
		id, start, start.Add(240*time.Hour), start.Add(240*time.Hour), managerID, customerID,
	)
	if err != nil {
		t.Fatalf("failed to seed project: %v", err)
	}
	return id
}

// seedShift inserts a test shift and returns its ID.
func seedShift(t *testing.T, db *sql.DB, id string, start time.Time, ended bool) string {
	t.Helper()
	if id == "" {
		id = "SHIFT-001"
	}
	_, err := db.Exec(
		"INSERT INTO working_shifts (id, start_shift, ended, time_of_day) VALUES (?, ?, ?, 'day')",
		id, start, ended,
	)
	if err != nil {
		t.Fatalf("failed to seed shift: %v", err)
	}
	return id
}
