package db

// SchemaSQL is the complete modern schema for fresh shopfloor installs.
// This schema reflects the current state after all migrations.
//
// # Schema Drift Protection
//
// This is the SINGLE SOURCE OF TRUTH for the database schema. All tests use
// this schema via GetSchemaSQL(), which provides two layers of protection:
//
//  1. No hardcoded schemas: tests must use db.GetSchemaSQL() instead of
//     their own CREATE TABLE statements.
//
//  2. Immediate failure on drift: if repository code references a column that
//     doesn't exist in this schema, tests fail immediately with "no such
//     column". This catches drift at development time, not production.
//
// When adding new columns or tables:
//  1. Add a migration in internal/db/migrations.go
//  2. Update SchemaSQL here
const SchemaSQL = `
-- Type-works (work category catalog)
CREATE TABLE IF NOT EXISTS type_works (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL UNIQUE COLLATE NOCASE,
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Employees (shop-floor workers)
CREATE TABLE IF NOT EXISTS employees (
	id TEXT PRIMARY KEY,
	first_name TEXT NOT NULL,
	last_name TEXT,
	phone TEXT,
	active INTEGER NOT NULL DEFAULT 1,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Employee capability sets (which categories an employee may work)
CREATE TABLE IF NOT EXISTS employee_type_works (
	employee_id TEXT NOT NULL,
	type_work_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (employee_id, type_work_id),
	FOREIGN KEY (employee_id) REFERENCES employees(id) ON DELETE CASCADE,
	FOREIGN KEY (type_work_id) REFERENCES type_works(id) ON DELETE CASCADE
);

-- Managers (order intake)
CREATE TABLE IF NOT EXISTS managers (
	id TEXT PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	first_name TEXT,
	last_name TEXT,
	phone TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Customers
CREATE TABLE IF NOT EXISTS customers (
	id TEXT PRIMARY KEY,
	name TEXT NOT NULL COLLATE NOCASE,
	phone TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Projects (manufacturing orders)
CREATE TABLE IF NOT EXISTS projects (
	id TEXT PRIMARY KEY,
	number INTEGER NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	start_date DATETIME NOT NULL,
	planned_end_date DATETIME NOT NULL,
	end_date_in_contract DATETIME NOT NULL,
	real_end_date DATETIME,
	start_first_operation_date DATETIME,
	period INTEGER NOT NULL,
	operation_period INTEGER NOT NULL,
	ended INTEGER NOT NULL DEFAULT 0,
	manager_id TEXT NOT NULL,
	customer_id TEXT NOT NULL,
	comment TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (manager_id) REFERENCES managers(id),
	FOREIGN KEY (customer_id) REFERENCES customers(id)
);

-- Operations (units of work inside a project chain)
CREATE TABLE IF NOT EXISTS operations (
	id TEXT PRIMARY KEY,
	project_id TEXT NOT NULL,
	priority INTEGER NOT NULL,
	name TEXT NOT NULL,
	description TEXT,
	start_date DATETIME,
	acceptance_date DATETIME,
	planned_end_date DATETIME,
	real_end_date DATETIME,
	period_hours INTEGER NOT NULL DEFAULT 0,
	ready_to_acceptance INTEGER NOT NULL DEFAULT 0,
	in_work INTEGER NOT NULL DEFAULT 0,
	is_ended INTEGER NOT NULL DEFAULT 0,
	employee_id TEXT,
	type_work_id TEXT NOT NULL,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (project_id) REFERENCES projects(id) ON DELETE CASCADE,
	FOREIGN KEY (employee_id) REFERENCES employees(id),
	FOREIGN KEY (type_work_id) REFERENCES type_works(id)
);

CREATE INDEX IF NOT EXISTS idx_operations_project ON operations(project_id);
CREATE INDEX IF NOT EXISTS idx_operations_employee ON operations(employee_id);

-- Working shifts (at most one open at a time)
CREATE TABLE IF NOT EXISTS working_shifts (
	id TEXT PRIMARY KEY,
	start_shift DATETIME NOT NULL,
	end_shift DATETIME,
	ended INTEGER NOT NULL DEFAULT 0,
	time_of_day TEXT NOT NULL CHECK(time_of_day IN ('day', 'night')),
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Time controls (per-employee attendance under a shift)
CREATE TABLE IF NOT EXISTS time_controls (
	id TEXT PRIMARY KEY,
	shift_id TEXT NOT NULL,
	employee_id TEXT NOT NULL,
	on_shift INTEGER NOT NULL DEFAULT 1,
	auto_closed INTEGER NOT NULL DEFAULT 0,
	arrival DATETIME NOT NULL,
	departure DATETIME,
	FOREIGN KEY (shift_id) REFERENCES working_shifts(id) ON DELETE CASCADE,
	FOREIGN KEY (employee_id) REFERENCES employees(id)
);

CREATE INDEX IF NOT EXISTS idx_time_controls_shift ON time_controls(shift_id);
`

// InitSchema creates the database schema
func InitSchema() error {
	db, err := GetDB()
	if err != nil {
		return err
	}

	// Check if schema_version table exists to determine if this is a fresh install
	var tableCount int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'").Scan(&tableCount)
	if err != nil {
		return err
	}

	if tableCount == 0 {
		// Completely fresh install - create the modern schema directly and
		// mark all migrations as applied so they never run against it.
		if _, err = db.Exec(SchemaSQL); err != nil {
			return err
		}
		_, err = db.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (
				version INTEGER PRIMARY KEY,
				applied_at DATETIME DEFAULT CURRENT_TIMESTAMP
			)
		`)
		if err != nil {
			return err
		}
		for _, m := range migrations {
			if _, err = db.Exec("INSERT INTO schema_version (version) VALUES (?)", m.Version); err != nil {
				return err
			}
		}
		return nil
	}

	// schema_version table exists - run any pending migrations
	return RunMigrations()
}

// GetSchemaSQL returns the authoritative schema SQL for use by tests.
// Tests should use this instead of hardcoding their own schema to prevent drift.
func GetSchemaSQL() string {
	return SchemaSQL
}
