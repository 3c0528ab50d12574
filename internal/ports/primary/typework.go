// Package primary defines the primary ports (driving adapters) for the
// application. These are the interfaces through which callers drive the
// domain services.
package primary

import (
	"context"
	"time"
)

// TypeWorkService defines the primary port for the work-category catalog.
type TypeWorkService interface {
	// CreateTypeWork adds a new work category. Names are unique
	// case-insensitively.
	CreateTypeWork(ctx context.Context, name string) (*TypeWork, error)

	// RenameTypeWork changes a category's name, keeping uniqueness.
	RenameTypeWork(ctx context.Context, typeWorkID, name string) error

	// SetTypeWorkActive toggles whether the category can be referenced.
	SetTypeWorkActive(ctx context.Context, typeWorkID string, active bool) error

	// GetTypeWork retrieves a category by ID.
	GetTypeWork(ctx context.Context, typeWorkID string) (*TypeWork, error)

	// GetTypeWorkByName retrieves a category by name, case-insensitively.
	GetTypeWorkByName(ctx context.Context, name string) (*TypeWork, error)

	// ListTypeWorks lists categories, optionally active only.
	ListTypeWorks(ctx context.Context, activeOnly bool) ([]*TypeWork, error)
}

// TypeWork is the caller-facing view of a work category.
type TypeWork struct {
	ID        string
	Name      string
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
