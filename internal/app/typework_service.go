// Package app contains the service implementations behind the primary
// ports. Services orchestrate repositories and the pure core logic; all
// invariants are validated before any persistence write so failures are
// atomic no-ops.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// TypeWorkServiceImpl implements the TypeWorkService interface.
type TypeWorkServiceImpl struct {
	typeWorkRepo secondary.TypeWorkRepository
	logger       *logrus.Logger
}

// NewTypeWorkService creates a new TypeWorkService with injected dependencies.
func NewTypeWorkService(typeWorkRepo secondary.TypeWorkRepository, logger *logrus.Logger) *TypeWorkServiceImpl {
	return &TypeWorkServiceImpl{
		typeWorkRepo: typeWorkRepo,
		logger:       logger,
	}
}

// CreateTypeWork adds a new work category. Names are unique
// case-insensitively.
func (s *TypeWorkServiceImpl) CreateTypeWork(ctx context.Context, name string) (*primary.TypeWork, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fault.InvalidState("type-work", "name must not be empty")
	}

	if existing, err := s.typeWorkRepo.GetByName(ctx, name); err == nil {
		return nil, fault.Conflict(existing.ID, fmt.Sprintf("type-work named %q already exists", existing.Name))
	} else if !fault.IsKind(err, fault.KindNotFound) {
		return nil, fmt.Errorf("failed to check type-work name: %w", err)
	}

	nextID, err := s.typeWorkRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate type-work ID: %w", err)
	}

	record := &secondary.TypeWorkRecord{
		ID:     nextID,
		Name:   name,
		Active: true,
	}
	if err := s.typeWorkRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create type-work: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"type_work_id": nextID,
		"name":         name,
	}).Info("type-work created")

	created, err := s.typeWorkRepo.GetByID(ctx, nextID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch created type-work: %w", err)
	}
	return recordToTypeWork(created), nil
}

// RenameTypeWork changes a category's name, keeping case-insensitive
// uniqueness.
func (s *TypeWorkServiceImpl) RenameTypeWork(ctx context.Context, typeWorkID, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fault.InvalidState(typeWorkID, "name must not be empty")
	}

	record, err := s.typeWorkRepo.GetByID(ctx, typeWorkID)
	if err != nil {
		return err
	}

	if existing, err := s.typeWorkRepo.GetByName(ctx, name); err == nil {
		if existing.ID != typeWorkID {
			return fault.Conflict(existing.ID, fmt.Sprintf("type-work named %q already exists", existing.Name))
		}
	} else if !fault.IsKind(err, fault.KindNotFound) {
		return fmt.Errorf("failed to check type-work name: %w", err)
	}

	record.Name = name
	if err := s.typeWorkRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to rename type-work: %w", err)
	}
	return nil
}

// SetTypeWorkActive toggles whether the category can be referenced.
func (s *TypeWorkServiceImpl) SetTypeWorkActive(ctx context.Context, typeWorkID string, active bool) error {
	record, err := s.typeWorkRepo.GetByID(ctx, typeWorkID)
	if err != nil {
		return err
	}
	record.Active = active
	if err := s.typeWorkRepo.Update(ctx, record); err != nil {
		return fmt.Errorf("failed to update type-work: %w", err)
	}
	return nil
}

// GetTypeWork retrieves a category by ID.
func (s *TypeWorkServiceImpl) GetTypeWork(ctx context.Context, typeWorkID string) (*primary.TypeWork, error) {
	record, err := s.typeWorkRepo.GetByID(ctx, typeWorkID)
	if err != nil {
		return nil, err
	}
	return recordToTypeWork(record), nil
}

// GetTypeWorkByName retrieves a category by name, case-insensitively.
func (s *TypeWorkServiceImpl) GetTypeWorkByName(ctx context.Context, name string) (*primary.TypeWork, error) {
	record, err := s.typeWorkRepo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	return recordToTypeWork(record), nil
}

// ListTypeWorks lists categories, optionally active only.
func (s *TypeWorkServiceImpl) ListTypeWorks(ctx context.Context, activeOnly bool) ([]*primary.TypeWork, error) {
	records, err := s.typeWorkRepo.List(ctx, secondary.TypeWorkFilters{ActiveOnly: activeOnly})
	if err != nil {
		return nil, fmt.Errorf("failed to list type-works: %w", err)
	}
	typeWorks := make([]*primary.TypeWork, len(records))
	for i, r := range records {
		typeWorks[i] = recordToTypeWork(r)
	}
	return typeWorks, nil
}

func recordToTypeWork(r *secondary.TypeWorkRecord) *primary.TypeWork {
	return &primary.TypeWork{
		ID:        r.ID,
		Name:      r.Name,
		Active:    r.Active,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// Ensure TypeWorkServiceImpl implements the interface
var _ primary.TypeWorkService = (*TypeWorkServiceImpl)(nil)
