package models

import (
	"database/sql"
	"time"
)

// Project represents a manufacturing order broken into ordered operations.
// Period and OperationPeriod are hour counts derived at creation time.
type Project struct {
	ID                      string
	Number                  int
	Name                    string
	Description             sql.NullString
	StartDate               time.Time
	PlannedEndDate          time.Time
	EndDateInContract       time.Time
	RealEndDate             sql.NullTime
	StartFirstOperationDate sql.NullTime
	Period                  int
	OperationPeriod         int
	Ended                   bool
	ManagerID               string
	CustomerID              string
	Comment                 sql.NullString
	CreatedAt               time.Time
	UpdatedAt               time.Time
}
