// Package models contains domain types for shopfloor entities.
// SQL persistence lives in internal/adapters/sqlite/*.go
package models

import "time"

// TypeWork represents a named work category from the catalog.
// Operations require exactly one; employees carry a capability set of them.
type TypeWork struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShipmentTypeWorkName is the fixed catalog entry backing the synthetic
// trailing shipment operation of every project.
const ShipmentTypeWorkName = "Shipment"
