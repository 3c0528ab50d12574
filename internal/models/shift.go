package models

import (
	"database/sql"
	"time"
)

// WorkingShift represents a bounded attendance window. At most one shift may
// be open (Ended=false) system-wide; the shift service enforces this, not the
// database.
type WorkingShift struct {
	ID         string
	StartShift time.Time
	EndShift   sql.NullTime
	Ended      bool
	TimeOfDay  string
	CreatedAt  time.Time
}

// Time-of-day classification constants, derived from the shift start hour.
const (
	TimeOfDayDay   = "day"
	TimeOfDayNight = "night"
)

// TimeControl represents one employee's arrival/departure record within a
// single working shift. Once the owning shift closes, records are immutable
// history.
type TimeControl struct {
	ID         string
	ShiftID    string
	EmployeeID string
	OnShift    bool
	AutoClosed bool
	Arrival    time.Time
	Departure  sql.NullTime
}
