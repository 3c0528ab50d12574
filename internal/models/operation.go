package models

import (
	"database/sql"
	"time"
)

// Operation represents one unit of work within a project.
// The three booleans form the lifecycle state machine; at most one of
// InWork/IsEnded may be true at a time.
type Operation struct {
	ID                string
	ProjectID         string
	Priority          int
	Name              string
	Description       sql.NullString
	StartDate         sql.NullTime
	AcceptanceDate    sql.NullTime
	PlannedEndDate    sql.NullTime
	RealEndDate       sql.NullTime
	PeriodHours       int
	ReadyToAcceptance bool
	InWork            bool
	IsEnded           bool
	EmployeeID        sql.NullString
	TypeWorkID        string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// Operation state names derived from the flag combination.
const (
	OperationStatePending = "pending"
	OperationStateReady   = "ready"
	OperationStateInWork  = "in_work"
	OperationStateEnded   = "ended"
)

// State reports the lifecycle state implied by the boolean flags.
func (o *Operation) State() string {
	return OperationState(o.ReadyToAcceptance, o.InWork, o.IsEnded)
}

// OperationState derives the lifecycle state name from the three flags.
// Ended wins over in-work, in-work over readiness.
func OperationState(readyToAcceptance, inWork, isEnded bool) string {
	switch {
	case isEnded:
		return OperationStateEnded
	case inWork:
		return OperationStateInWork
	case readyToAcceptance:
		return OperationStateReady
	default:
		return OperationStatePending
	}
}
