package primary

import (
	"context"
	"time"
)

// ShiftService defines the primary port for working shifts and attendance.
type ShiftService interface {
	// OpenShift opens a new working shift. Fails while another shift is
	// open.
	OpenShift(ctx context.Context) (*Shift, error)

	// CloseShift closes the open shift, auto-closing any attendance
	// records still on shift. Returns nil when no shift was open.
	CloseShift(ctx context.Context) (*Shift, error)

	// CheckIn records an employee's arrival under the open shift. A
	// repeat check-in without an intervening check-out is a no-op.
	CheckIn(ctx context.Context, employeeID string) (*TimeControl, error)

	// CheckOut records an employee's departure. A check-out while not on
	// shift is a no-op and returns nil.
	CheckOut(ctx context.Context, employeeID string) (*TimeControl, error)

	// GetOpenShift returns the open shift, or nil when none is open.
	GetOpenShift(ctx context.Context) (*Shift, error)

	// ListShifts lists shifts, most recent first.
	ListShifts(ctx context.Context, limit int) ([]*Shift, error)

	// GetShiftAttendance returns the attendance records of a shift.
	GetShiftAttendance(ctx context.Context, shiftID string) ([]*TimeControl, error)
}

// Shift is the caller-facing view of a working shift.
type Shift struct {
	ID         string
	StartShift time.Time
	EndShift   *time.Time
	Ended      bool
	TimeOfDay  string
}

// TimeControl is the caller-facing view of one attendance record.
type TimeControl struct {
	ID         string
	ShiftID    string
	EmployeeID string
	OnShift    bool
	AutoClosed bool
	Arrival    time.Time
	Departure  *time.Time
}

// HoursOnShift reports the whole hours between arrival and departure, zero
// while the employee is still on shift.
func (t *TimeControl) HoursOnShift() int {
	if t.Departure == nil {
		return 0
	}
	return int(t.Departure.Sub(t.Arrival).Hours())
}
