package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	shiftguard "github.com/example/shopfloor/internal/core/shift"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// ShiftServiceImpl implements the ShiftService interface. The single-open-
// shift invariant lives here, not in the database; concurrent callers must
// serialize access to the active shift.
type ShiftServiceImpl struct {
	shiftRepo       secondary.ShiftRepository
	timeControlRepo secondary.TimeControlRepository
	employeeRepo    secondary.EmployeeRepository
	clock           secondary.Clock
	logger          *logrus.Logger
}

// NewShiftService creates a new ShiftService with injected dependencies.
func NewShiftService(
	shiftRepo secondary.ShiftRepository,
	timeControlRepo secondary.TimeControlRepository,
	employeeRepo secondary.EmployeeRepository,
	clock secondary.Clock,
	logger *logrus.Logger,
) *ShiftServiceImpl {
	return &ShiftServiceImpl{
		shiftRepo:       shiftRepo,
		timeControlRepo: timeControlRepo,
		employeeRepo:    employeeRepo,
		clock:           clock,
		logger:          logger,
	}
}

// OpenShift opens a new working shift. Fails while another shift is open.
func (s *ShiftServiceImpl) OpenShift(ctx context.Context) (*primary.Shift, error) {
	open, err := s.shiftRepo.FindOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open shift: %w", err)
	}

	var openID string
	if open != nil {
		openID = open.ID
	}
	if result := shiftguard.CanOpen(shiftguard.OpenContext{OpenShiftID: openID}); !result.Allowed {
		return nil, result.Error()
	}

	nextID, err := s.shiftRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate shift ID: %w", err)
	}

	now := s.clock.Now()
	record := &secondary.ShiftRecord{
		ID:         nextID,
		StartShift: now,
		TimeOfDay:  shiftguard.TimeOfDay(now),
	}
	if err := s.shiftRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create shift: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"shift_id":    nextID,
		"time_of_day": record.TimeOfDay,
	}).Info("shift opened")
	return recordToShift(record), nil
}

// CloseShift closes the open shift, auto-closing every attendance record
// still on shift so no record ever straddles two shifts. Returns nil when no
// shift was open.
func (s *ShiftServiceImpl) CloseShift(ctx context.Context) (*primary.Shift, error) {
	open, err := s.shiftRepo.FindOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open shift: %w", err)
	}
	if open == nil {
		return nil, nil
	}

	now := s.clock.Now()
	records, err := s.timeControlRepo.ListByShift(ctx, open.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time controls: %w", err)
	}

	autoClosed := 0
	for _, tc := range records {
		if !tc.OnShift {
			continue
		}
		tc.OnShift = false
		tc.AutoClosed = true
		departure := now
		tc.Departure = &departure
		if err := s.timeControlRepo.Update(ctx, tc); err != nil {
			return nil, fmt.Errorf("failed to auto-close time control %s: %w", tc.ID, err)
		}
		autoClosed++
	}

	open.Ended = true
	end := now
	open.EndShift = &end
	if err := s.shiftRepo.Update(ctx, open); err != nil {
		return nil, fmt.Errorf("failed to close shift: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"shift_id":    open.ID,
		"auto_closed": autoClosed,
	}).Info("shift closed")
	return recordToShift(open), nil
}

// CheckIn records an employee's arrival under the open shift. A repeat
// check-in without an intervening check-out returns the existing record.
func (s *ShiftServiceImpl) CheckIn(ctx context.Context, employeeID string) (*primary.TimeControl, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	open, err := s.shiftRepo.FindOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open shift: %w", err)
	}

	var openID string
	if open != nil {
		openID = open.ID
	}
	existing := (*secondary.TimeControlRecord)(nil)
	if open != nil {
		existing, err = s.timeControlRepo.FindOpenForEmployee(ctx, open.ID, employee.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to look up time control: %w", err)
		}
	}

	if result := shiftguard.CanCheckIn(shiftguard.CheckInContext{
		EmployeeID:     employee.ID,
		OpenShiftID:    openID,
		AlreadyOnShift: existing != nil,
	}); !result.Allowed {
		return nil, result.Error()
	}

	if existing != nil {
		return recordToTimeControl(existing), nil
	}

	nextID, err := s.timeControlRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate time-control ID: %w", err)
	}
	record := &secondary.TimeControlRecord{
		ID:         nextID,
		ShiftID:    open.ID,
		EmployeeID: employee.ID,
		OnShift:    true,
		Arrival:    s.clock.Now(),
	}
	if err := s.timeControlRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create time control: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"shift_id":    open.ID,
		"employee_id": employee.ID,
	}).Info("employee checked in")
	return recordToTimeControl(record), nil
}

// CheckOut records an employee's departure. A check-out while not on shift
// is a no-op and returns nil.
func (s *ShiftServiceImpl) CheckOut(ctx context.Context, employeeID string) (*primary.TimeControl, error) {
	employee, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	open, err := s.shiftRepo.FindOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open shift: %w", err)
	}
	if open == nil {
		return nil, nil
	}

	record, err := s.timeControlRepo.FindOpenForEmployee(ctx, open.ID, employee.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up time control: %w", err)
	}
	if record == nil {
		return nil, nil
	}

	departure := s.clock.Now()
	record.OnShift = false
	record.Departure = &departure
	if err := s.timeControlRepo.Update(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to update time control: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"shift_id":    open.ID,
		"employee_id": employee.ID,
	}).Info("employee checked out")
	return recordToTimeControl(record), nil
}

// GetOpenShift returns the open shift, or nil when none is open.
func (s *ShiftServiceImpl) GetOpenShift(ctx context.Context) (*primary.Shift, error) {
	open, err := s.shiftRepo.FindOpen(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to look up open shift: %w", err)
	}
	if open == nil {
		return nil, nil
	}
	return recordToShift(open), nil
}

// ListShifts lists shifts, most recent first.
func (s *ShiftServiceImpl) ListShifts(ctx context.Context, limit int) ([]*primary.Shift, error) {
	records, err := s.shiftRepo.List(ctx, secondary.ShiftFilters{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("failed to list shifts: %w", err)
	}
	shifts := make([]*primary.Shift, len(records))
	for i, r := range records {
		shifts[i] = recordToShift(r)
	}
	return shifts, nil
}

// GetShiftAttendance returns the attendance records of a shift.
func (s *ShiftServiceImpl) GetShiftAttendance(ctx context.Context, shiftID string) ([]*primary.TimeControl, error) {
	if _, err := s.shiftRepo.GetByID(ctx, shiftID); err != nil {
		return nil, err
	}
	records, err := s.timeControlRepo.ListByShift(ctx, shiftID)
	if err != nil {
		return nil, fmt.Errorf("failed to list time controls: %w", err)
	}
	controls := make([]*primary.TimeControl, len(records))
	for i, r := range records {
		controls[i] = recordToTimeControl(r)
	}
	return controls, nil
}

func recordToShift(r *secondary.ShiftRecord) *primary.Shift {
	return &primary.Shift{
		ID:         r.ID,
		StartShift: r.StartShift,
		EndShift:   r.EndShift,
		Ended:      r.Ended,
		TimeOfDay:  r.TimeOfDay,
	}
}

func recordToTimeControl(r *secondary.TimeControlRecord) *primary.TimeControl {
	return &primary.TimeControl{
		ID:         r.ID,
		ShiftID:    r.ShiftID,
		EmployeeID: r.EmployeeID,
		OnShift:    r.OnShift,
		AutoClosed: r.AutoClosed,
		Arrival:    r.Arrival,
		Departure:  r.Departure,
	}
}

// Ensure ShiftServiceImpl implements the interface
var _ primary.ShiftService = (*ShiftServiceImpl)(nil)
