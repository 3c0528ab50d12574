package db

import (
	"database/sql"
	"fmt"
)

// Migration represents a database migration. Up runs inside the transaction
// that also records the version, so a failed migration leaves no trace.
type Migration struct {
	Version int
	Name    string
	Up      func(*sql.Tx) error
}

// migrations is the list of all migrations in order
var migrations = []Migration{
	{
		Version: 1,
		Name:    "add_auto_closed_to_time_controls",
		Up:      migrationV1,
	},
	{
		Version: 2,
		Name:    "add_comment_to_projects",
		Up:      migrationV2,
	},
	{
		Version: 3,
		Name:    "add_operation_employee_index",
		Up:      migrationV3,
	},
}

// RunMigrations executes all pending migrations
func RunMigrations() error {
	db, err := GetDB()
	if err != nil {
		return fmt.Errorf("failed to get database: %w", err)
	}
	return applyMigrations(db, migrations)
}

// applyMigrations runs every migration newer than the recorded schema
// version, each inside its own transaction.
func applyMigrations(db *sql.DB, pending []Migration) error {
	// Create schema_version table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY,
			applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_version table: %w", err)
	}

	// Get current schema version
	var currentVersion int
	err = db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_version").Scan(&currentVersion)
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	// Run pending migrations
	for _, migration := range pending {
		if migration.Version <= currentVersion {
			continue
		}

		fmt.Printf("Running migration %d: %s\n", migration.Version, migration.Name)

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		if err := migration.Up(tx); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		_, err = tx.Exec("INSERT INTO schema_version (version) VALUES (?)", migration.Version)
		if err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		fmt.Printf("✓ Migration %d completed\n", migration.Version)
	}

	return nil
}

// migrationV1 distinguishes attendance records closed by a shift close from
// explicit check-outs.
func migrationV1(tx *sql.Tx) error {
	_, err := tx.Exec("ALTER TABLE time_controls ADD COLUMN auto_closed INTEGER NOT NULL DEFAULT 0")
	return err
}

// migrationV2 adds a free-form comment field to projects.
func migrationV2(tx *sql.Tx) error {
	_, err := tx.Exec("ALTER TABLE projects ADD COLUMN comment TEXT")
	return err
}

// migrationV3 speeds up per-employee operation listings.
func migrationV3(tx *sql.Tx) error {
	_, err := tx.Exec("CREATE INDEX IF NOT EXISTS idx_operations_employee ON operations(employee_id)")
	return err
}
