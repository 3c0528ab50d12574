package app

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/example/shopfloor/internal/core/fault"
	"github.com/example/shopfloor/internal/ports/secondary"
)

// newTestLogger returns a logger that discards output so test logs stay
// readable.
func newTestLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

// fixedClock implements secondary.Clock with a controllable timestamp.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

var _ secondary.Clock = (*fixedClock)(nil)

// ============================================================================
// Mock Implementations
// ============================================================================
//
// Mocks keep records in insertion-order slices, not maps: the operation
// repository's ordering contract (priority, then creation order) must stay
// deterministic for date propagation. Reads hand out copies so a service
// mutation never reaches the store without an explicit Update.

// mockTypeWorkRepository implements secondary.TypeWorkRepository for testing.
type mockTypeWorkRepository struct {
	typeWorks []*secondary.TypeWorkRecord
	createErr error
	updateErr error
	listErr   error
}

func newMockTypeWorkRepository() *mockTypeWorkRepository {
	return &mockTypeWorkRepository{}
}

func (m *mockTypeWorkRepository) Create(ctx context.Context, typeWork *secondary.TypeWorkRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record := *typeWork
	m.typeWorks = append(m.typeWorks, &record)
	return nil
}

func (m *mockTypeWorkRepository) GetByID(ctx context.Context, id string) (*secondary.TypeWorkRecord, error) {
	for _, tw := range m.typeWorks {
		if tw.ID == id {
			record := *tw
			return &record, nil
		}
	}
	return nil, fault.NotFound(id, "type-work not found")
}

func (m *mockTypeWorkRepository) GetByName(ctx context.Context, name string) (*secondary.TypeWorkRecord, error) {
	for _, tw := range m.typeWorks {
		if strings.EqualFold(tw.Name, name) {
			record := *tw
			return &record, nil
		}
	}
	return nil, fault.NotFound(name, "type-work not found")
}

func (m *mockTypeWorkRepository) Update(ctx context.Context, typeWork *secondary.TypeWorkRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, tw := range m.typeWorks {
		if tw.ID == typeWork.ID {
			record := *typeWork
			m.typeWorks[i] = &record
			return nil
		}
	}
	return fault.NotFound(typeWork.ID, "type-work not found")
}

func (m *mockTypeWorkRepository) List(ctx context.Context, filters secondary.TypeWorkFilters) ([]*secondary.TypeWorkRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.TypeWorkRecord
	for _, tw := range m.typeWorks {
		if filters.ActiveOnly && !tw.Active {
			continue
		}
		record := *tw
		result = append(result, &record)
	}
	return result, nil
}

func (m *mockTypeWorkRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("TW-%03d", len(m.typeWorks)+1), nil
}

var _ secondary.TypeWorkRepository = (*mockTypeWorkRepository)(nil)

// mockProjectRepository implements secondary.ProjectRepository for testing.
type mockProjectRepository struct {
	projects  []*secondary.ProjectRecord
	createErr error
	updateErr error
}

func newMockProjectRepository() *mockProjectRepository {
	return &mockProjectRepository{}
}

func (m *mockProjectRepository) Create(ctx context.Context, project *secondary.ProjectRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record := *project
	m.projects = append(m.projects, &record)
	return nil
}

func (m *mockProjectRepository) GetByID(ctx context.Context, id string) (*secondary.ProjectRecord, error) {
	for _, p := range m.projects {
		if p.ID == id {
			record := *p
			return &record, nil
		}
	}
	return nil, fault.NotFound(id, "project not found")
}

func (m *mockProjectRepository) Update(ctx context.Context, project *secondary.ProjectRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, p := range m.projects {
		if p.ID == project.ID {
			record := *project
			m.projects[i] = &record
			return nil
		}
	}
	return fault.NotFound(project.ID, "project not found")
}

func (m *mockProjectRepository) List(ctx context.Context, filters secondary.ProjectFilters) ([]*secondary.ProjectRecord, error) {
	var result []*secondary.ProjectRecord
	for _, p := range m.projects {
		if filters.Ended != nil && p.Ended != *filters.Ended {
			continue
		}
		record := *p
		result = append(result, &record)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockProjectRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("PROJ-%03d", len(m.projects)+1), nil
}

var _ secondary.ProjectRepository = (*mockProjectRepository)(nil)

// mockOperationRepository implements secondary.OperationRepository for testing.
type mockOperationRepository struct {
	operations []*secondary.OperationRecord
	created    int
	createErr  error
	updateErr  error
	deleteErr  error
	listErr    error
}

func newMockOperationRepository() *mockOperationRepository {
	return &mockOperationRepository{}
}

func (m *mockOperationRepository) Create(ctx context.Context, operation *secondary.OperationRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record := *operation
	m.operations = append(m.operations, &record)
	m.created++
	return nil
}

func (m *mockOperationRepository) GetByID(ctx context.Context, id string) (*secondary.OperationRecord, error) {
	for _, op := range m.operations {
		if op.ID == id {
			record := *op
			return &record, nil
		}
	}
	return nil, fault.NotFound(id, "operation not found")
}

func (m *mockOperationRepository) Update(ctx context.Context, operation *secondary.OperationRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, op := range m.operations {
		if op.ID == operation.ID {
			record := *operation
			m.operations[i] = &record
			return nil
		}
	}
	return fault.NotFound(operation.ID, "operation not found")
}

func (m *mockOperationRepository) Delete(ctx context.Context, id string) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	for i, op := range m.operations {
		if op.ID == id {
			m.operations = append(m.operations[:i], m.operations[i+1:]...)
			return nil
		}
	}
	return fault.NotFound(id, "operation not found")
}

func (m *mockOperationRepository) ListByProject(ctx context.Context, projectID string) ([]*secondary.OperationRecord, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*secondary.OperationRecord
	for _, op := range m.operations {
		if op.ProjectID != projectID {
			continue
		}
		record := *op
		result = append(result, &record)
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Priority < result[j].Priority
	})
	return result, nil
}

func (m *mockOperationRepository) ListByEmployee(ctx context.Context, employeeID string) ([]*secondary.OperationRecord, error) {
	var result []*secondary.OperationRecord
	for _, op := range m.operations {
		if op.EmployeeID != employeeID {
			continue
		}
		record := *op
		result = append(result, &record)
	}
	return result, nil
}

func (m *mockOperationRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("OP-%03d", m.created+1), nil
}

var _ secondary.OperationRepository = (*mockOperationRepository)(nil)

// mockShiftRepository implements secondary.ShiftRepository for testing.
type mockShiftRepository struct {
	shifts    []*secondary.ShiftRecord
	createErr error
	updateErr error
	findErr   error
}

func newMockShiftRepository() *mockShiftRepository {
	return &mockShiftRepository{}
}

func (m *mockShiftRepository) Create(ctx context.Context, shift *secondary.ShiftRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record := *shift
	m.shifts = append(m.shifts, &record)
	return nil
}

func (m *mockShiftRepository) GetByID(ctx context.Context, id string) (*secondary.ShiftRecord, error) {
	for _, s := range m.shifts {
		if s.ID == id {
			record := *s
			return &record, nil
		}
	}
	return nil, fault.NotFound(id, "shift not found")
}

func (m *mockShiftRepository) Update(ctx context.Context, shift *secondary.ShiftRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, s := range m.shifts {
		if s.ID == shift.ID {
			record := *shift
			m.shifts[i] = &record
			return nil
		}
	}
	return fault.NotFound(shift.ID, "shift not found")
}

func (m *mockShiftRepository) FindOpen(ctx context.Context) (*secondary.ShiftRecord, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, s := range m.shifts {
		if !s.Ended {
			record := *s
			return &record, nil
		}
	}
	return nil, nil
}

func (m *mockShiftRepository) List(ctx context.Context, filters secondary.ShiftFilters) ([]*secondary.ShiftRecord, error) {
	var result []*secondary.ShiftRecord
	for i := len(m.shifts) - 1; i >= 0; i-- {
		record := *m.shifts[i]
		result = append(result, &record)
		if filters.Limit > 0 && len(result) == filters.Limit {
			break
		}
	}
	return result, nil
}

func (m *mockShiftRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("SHIFT-%03d", len(m.shifts)+1), nil
}

var _ secondary.ShiftRepository = (*mockShiftRepository)(nil)

// mockTimeControlRepository implements secondary.TimeControlRepository for testing.
type mockTimeControlRepository struct {
	timeControls []*secondary.TimeControlRecord
	createErr    error
	updateErr    error
}

func newMockTimeControlRepository() *mockTimeControlRepository {
	return &mockTimeControlRepository{}
}

func (m *mockTimeControlRepository) Create(ctx context.Context, timeControl *secondary.TimeControlRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record := *timeControl
	m.timeControls = append(m.timeControls, &record)
	return nil
}

func (m *mockTimeControlRepository) Update(ctx context.Context, timeControl *secondary.TimeControlRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	for i, tc := range m.timeControls {
		if tc.ID == timeControl.ID {
			record := *timeControl
			m.timeControls[i] = &record
			return nil
		}
	}
	return fault.NotFound(timeControl.ID, "time control not found")
}

func (m *mockTimeControlRepository) ListByShift(ctx context.Context, shiftID string) ([]*secondary.TimeControlRecord, error) {
	var result []*secondary.TimeControlRecord
	for _, tc := range m.timeControls {
		if tc.ShiftID != shiftID {
			continue
		}
		record := *tc
		result = append(result, &record)
	}
	return result, nil
}

func (m *mockTimeControlRepository) FindOpenForEmployee(ctx context.Context, shiftID, employeeID string) (*secondary.TimeControlRecord, error) {
	for _, tc := range m.timeControls {
		if tc.ShiftID == shiftID && tc.EmployeeID == employeeID && tc.OnShift {
			record := *tc
			return &record, nil
		}
	}
	return nil, nil
}

func (m *mockTimeControlRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("TC-%03d", len(m.timeControls)+1), nil
}

var _ secondary.TimeControlRepository = (*mockTimeControlRepository)(nil)

// mockEmployeeRepository implements secondary.EmployeeRepository for testing.
type mockEmployeeRepository struct {
	employees    []*secondary.EmployeeRecord
	capabilities map[string][]string
	createErr    error
}

func newMockEmployeeRepository() *mockEmployeeRepository {
	return &mockEmployeeRepository{capabilities: make(map[string][]string)}
}

func (m *mockEmployeeRepository) Create(ctx context.Context, employee *secondary.EmployeeRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record := *employee
	m.employees = append(m.employees, &record)
	return nil
}

func (m *mockEmployeeRepository) GetByID(ctx context.Context, id string) (*secondary.EmployeeRecord, error) {
	for _, e := range m.employees {
		if e.ID == id {
			record := *e
			return &record, nil
		}
	}
	return nil, fault.NotFound(id, "employee not found")
}

func (m *mockEmployeeRepository) List(ctx context.Context, filters secondary.EmployeeFilters) ([]*secondary.EmployeeRecord, error) {
	var result []*secondary.EmployeeRecord
	for _, e := range m.employees {
		if filters.ActiveOnly && !e.Active {
			continue
		}
		record := *e
		result = append(result, &record)
	}
	return result, nil
}

func (m *mockEmployeeRepository) AssignTypeWork(ctx context.Context, employeeID, typeWorkID string) error {
	for _, id := range m.capabilities[employeeID] {
		if id == typeWorkID {
			return nil
		}
	}
	m.capabilities[employeeID] = append(m.capabilities[employeeID], typeWorkID)
	return nil
}

func (m *mockEmployeeRepository) RevokeTypeWork(ctx context.Context, employeeID, typeWorkID string) error {
	caps := m.capabilities[employeeID]
	for i, id := range caps {
		if id == typeWorkID {
			m.capabilities[employeeID] = append(caps[:i], caps[i+1:]...)
			return nil
		}
	}
	return nil
}

func (m *mockEmployeeRepository) GetTypeWorkIDs(ctx context.Context, employeeID string) ([]string, error) {
	return append([]string(nil), m.capabilities[employeeID]...), nil
}

func (m *mockEmployeeRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("EMP-%03d", len(m.employees)+1), nil
}

var _ secondary.EmployeeRepository = (*mockEmployeeRepository)(nil)

// mockManagerRepository implements secondary.ManagerRepository for testing.
type mockManagerRepository struct {
	managers []*secondary.ManagerRecord
}

func newMockManagerRepository() *mockManagerRepository {
	return &mockManagerRepository{}
}

func (m *mockManagerRepository) Create(ctx context.Context, manager *secondary.ManagerRecord) error {
	record := *manager
	m.managers = append(m.managers, &record)
	return nil
}

func (m *mockManagerRepository) GetByID(ctx context.Context, id string) (*secondary.ManagerRecord, error) {
	for _, mgr := range m.managers {
		if mgr.ID == id {
			record := *mgr
			return &record, nil
		}
	}
	return nil, fault.NotFound(id, "manager not found")
}

func (m *mockManagerRepository) GetByUsername(ctx context.Context, username string) (*secondary.ManagerRecord, error) {
	for _, mgr := range m.managers {
		if mgr.Username == username {
			record := *mgr
			return &record, nil
		}
	}
	return nil, fault.NotFound(username, "manager not found")
}

func (m *mockManagerRepository) List(ctx context.Context) ([]*secondary.ManagerRecord, error) {
	var result []*secondary.ManagerRecord
	for _, mgr := range m.managers {
		record := *mgr
		result = append(result, &record)
	}
	return result, nil
}

func (m *mockManagerRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("MGR-%03d", len(m.managers)+1), nil
}

var _ secondary.ManagerRepository = (*mockManagerRepository)(nil)

// mockCustomerRepository implements secondary.CustomerRepository for testing.
type mockCustomerRepository struct {
	customers []*secondary.CustomerRecord
}

func newMockCustomerRepository() *mockCustomerRepository {
	return &mockCustomerRepository{}
}

func (m *mockCustomerRepository) Create(ctx context.Context, customer *secondary.CustomerRecord) error {
	record := *customer
	m.customers = append(m.customers, &record)
	return nil
}

func (m *mockCustomerRepository) GetByID(ctx context.Context, id string) (*secondary.CustomerRecord, error) {
	for _, c := range m.customers {
		if c.ID == id {
			record := *c
			return &record, nil
		}
	}
	return nil, fault.NotFound(id, "customer not found")
}

func (m *mockCustomerRepository) GetByName(ctx context.Context, name string) (*secondary.CustomerRecord, error) {
	for _, c := range m.customers {
		if strings.EqualFold(c.Name, name) {
			record := *c
			return &record, nil
		}
	}
	return nil, fault.NotFound(name, "customer not found")
}

func (m *mockCustomerRepository) List(ctx context.Context) ([]*secondary.CustomerRecord, error) {
	var result []*secondary.CustomerRecord
	for _, c := range m.customers {
		record := *c
		result = append(result, &record)
	}
	return result, nil
}

func (m *mockCustomerRepository) GetNextID(ctx context.Context) (string, error) {
	return fmt.Sprintf("CUST-%03d", len(m.customers)+1), nil
}

var _ secondary.CustomerRepository = (*mockCustomerRepository)(nil)
