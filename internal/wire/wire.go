// Package wire provides dependency injection for the shopfloor application.
// It creates singleton services with lazy initialization.
package wire

import (
	"log"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/example/shopfloor/internal/adapters/clock"
	"github.com/example/shopfloor/internal/adapters/sqlite"
	"github.com/example/shopfloor/internal/app"
	"github.com/example/shopfloor/internal/config"
	"github.com/example/shopfloor/internal/db"
	"github.com/example/shopfloor/internal/ports/primary"
	"github.com/example/shopfloor/internal/ports/secondary"
)

var (
	typeWorkService  primary.TypeWorkService
	projectService   primary.ProjectService
	operationService primary.OperationService
	shiftService     primary.ShiftService
	employeeService  primary.EmployeeService
	directoryService primary.DirectoryService
	appClock         secondary.Clock
	once             sync.Once
)

// TypeWorkService returns the singleton TypeWorkService instance.
func TypeWorkService() primary.TypeWorkService {
	once.Do(initServices)
	return typeWorkService
}

// ProjectService returns the singleton ProjectService instance.
func ProjectService() primary.ProjectService {
	once.Do(initServices)
	return projectService
}

// OperationService returns the singleton OperationService instance.
func OperationService() primary.OperationService {
	once.Do(initServices)
	return operationService
}

// ShiftService returns the singleton ShiftService instance.
func ShiftService() primary.ShiftService {
	once.Do(initServices)
	return shiftService
}

// EmployeeService returns the singleton EmployeeService instance.
func EmployeeService() primary.EmployeeService {
	once.Do(initServices)
	return employeeService
}

// DirectoryService returns the singleton DirectoryService instance.
func DirectoryService() primary.DirectoryService {
	once.Do(initServices)
	return directoryService
}

// Clock returns the singleton wall clock.
func Clock() secondary.Clock {
	once.Do(initServices)
	return appClock
}

// initServices initializes all services and their dependencies.
// This is called once via sync.Once.
func initServices() {
	database, err := db.GetDB()
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	logger := logrus.New()
	logger.SetLevel(config.ParseLogLevel(config.Get().LogLevel))

	// Repository adapters (secondary ports) with injected DB
	typeWorkRepo := sqlite.NewTypeWorkRepository(database)
	projectRepo := sqlite.NewProjectRepository(database)
	operationRepo := sqlite.NewOperationRepository(database)
	shiftRepo := sqlite.NewShiftRepository(database)
	timeControlRepo := sqlite.NewTimeControlRepository(database)
	employeeRepo := sqlite.NewEmployeeRepository(database)
	managerRepo := sqlite.NewManagerRepository(database)
	customerRepo := sqlite.NewCustomerRepository(database)
	systemClock := clock.New()
	appClock = systemClock

	// Services (primary port implementations)
	typeWorkService = app.NewTypeWorkService(typeWorkRepo, logger)
	projectService = app.NewProjectService(projectRepo, operationRepo, typeWorkRepo, managerRepo, customerRepo, systemClock, logger)
	operationService = app.NewOperationService(operationRepo, projectRepo, employeeRepo, systemClock, logger)
	shiftService = app.NewShiftService(shiftRepo, timeControlRepo, employeeRepo, systemClock, logger)
	employeeService = app.NewEmployeeService(employeeRepo, typeWorkRepo, logger)
	directoryService = app.NewDirectoryService(managerRepo, customerRepo, logger)
}
