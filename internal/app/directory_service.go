package app

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// DirectoryServiceImpl implements the DirectoryService interface.
type DirectoryServiceImpl struct {
	managerRepo  secondary.ManagerRepository
	customerRepo secondary.CustomerRepository
	logger       *logrus.Logger
}

// NewDirectoryService creates a new DirectoryService with injected dependencies.
func NewDirectoryService(
	managerRepo secondary.ManagerRepository,
	customerRepo secondary.CustomerRepository,
	logger *logrus.Logger,
) *DirectoryServiceImpl {
	return &DirectoryServiceImpl{
		managerRepo:  managerRepo,
		customerRepo: customerRepo,
		logger:       logger,
	}
}

// CreateManager registers a manager. Usernames are unique.
func (s *DirectoryServiceImpl) CreateManager(ctx context.Context, req primary.CreateManagerRequest) (*primary.Manager, error) {
	if existing, err := s.managerRepo.GetByUsername(ctx, req.Username); err == nil {
		return nil, fault.Conflict(existing.ID, fmt.Sprintf("manager %q already exists", req.Username))
	} else if !fault.IsKind(err, fault.KindNotFound) {
		return nil, fmt.Errorf("failed to check manager username: %w", err)
	}

	nextID, err := s.managerRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate manager ID: %w", err)
	}
	record := &secondary.ManagerRecord{
		ID:        nextID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	}
	if err := s.managerRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create manager: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"manager_id": nextID,
		"username":   req.Username,
	}).Info("manager created")
	return recordToManager(record), nil
}

// GetManagerByUsername retrieves a manager by username.
func (s *DirectoryServiceImpl) GetManagerByUsername(ctx context.Context, username string) (*primary.Manager, error) {
	record, err := s.managerRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	return recordToManager(record), nil
}

// ListManagers lists all managers.
func (s *DirectoryServiceImpl) ListManagers(ctx context.Context) ([]*primary.Manager, error) {
	records, err := s.managerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list managers: %w", err)
	}
	managers := make([]*primary.Manager, len(records))
	for i, r := range records {
		managers[i] = recordToManager(r)
	}
	return managers, nil
}

// CreateCustomer registers a customer.
func (s *DirectoryServiceImpl) CreateCustomer(ctx context.Context, req primary.CreateCustomerRequest) (*primary.Customer, error) {
	nextID, err := s.customerRepo.GetNextID(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to generate customer ID: %w", err)
	}
	record := &secondary.CustomerRecord{
		ID:    nextID,
		Name:  req.Name,
		Phone: req.Phone,
	}
	if err := s.customerRepo.Create(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to create customer: %w", err)
	}
	return recordToCustomer(record), nil
}

// ListCustomers lists all customers.
func (s *DirectoryServiceImpl) ListCustomers(ctx context.Context) ([]*primary.Customer, error) {
	records, err := s.customerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list customers: %w", err)
	}
	customers := make([]*primary.Customer, len(records))
	for i, r := range records {
		customers[i] = recordToCustomer(r)
	}
	return customers, nil
}

func recordToManager(r *secondary.ManagerRecord) *primary.Manager {
	return &primary.Manager{
		ID:        r.ID,
		Username:  r.Username,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt,
	}
}

func recordToCustomer(r *secondary.CustomerRecord) *primary.Customer {
	return &primary.Customer{
		ID:        r.ID,
		Name:      r.Name,
		Phone:     r.Phone,
		CreatedAt: r.CreatedAt,
	}
}

// Ensure DirectoryServiceImpl implements the interface
var _ primary.DirectoryService = (*DirectoryServiceImpl)(nil)
