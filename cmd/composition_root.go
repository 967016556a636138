package cmd

import (
	"errors"
	"fmt"
	"log/slog"

	httpadapter "automail/internal/adapters/in/http"
	"automail/internal/adapters/out/postgres"
	"automail/internal/adapters/out/report"
	"automail/internal/adapters/out/sqlite"
	"automail/internal/core/application/simulation"
	"automail/internal/core/application/usecases/commands"
	"automail/internal/core/application/usecases/queries"
	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/ports"
	"automail/internal/jobs"

	"github.com/labstack/echo/v4"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// CompositionRoot owns one simulation run and everything wired around it.
type CompositionRoot struct {
	config   Config
	scenario Scenario
	logger   *slog.Logger

	sim    *simulation.Simulation
	report *report.Report

	uowFactory ports.UnitOfWorkFactory
	reader     ports.DeliveryReader
	closers    []func() error
}

// NewCompositionRoot builds the run described by scenario and opens the configured ledger.
func NewCompositionRoot(config Config, scenario Scenario, logger *slog.Logger) (*CompositionRoot, error) {
	building, err := scenario.BuildingModel()
	if err != nil {
		return nil, fmt.Errorf("building: %w", err)
	}
	arrivals, err := scenario.Arrivals(building)
	if err != nil {
		return nil, fmt.Errorf("mail generation: %w", err)
	}

	runID := kernel.NewUUID()
	clock := kernel.NewClock()
	rep, err := report.New(runID, clock, scenario.Penalty)
	if err != nil {
		return nil, err
	}

	sim, err := simulation.New(runID, building, scenario.Robots, arrivals, clock, rep)
	if err != nil {
		return nil, fmt.Errorf("roster: %w", err)
	}

	c := &CompositionRoot{
		config:   config,
		scenario: scenario,
		logger:   logger,
		sim:      sim,
		report:   rep,
		reader:   rep,
	}
	if err := c.openLedger(); err != nil {
		return nil, err
	}

	logger.Info("run prepared",
		"run", runID.String(),
		"building", building.String(),
		"robots", sim.RobotIDs(),
		"mail", arrivals.Total(),
		"ledger", config.LedgerDriver,
	)
	return c, nil
}

func (c *CompositionRoot) openLedger() error {
	switch c.config.LedgerDriver {
	case LedgerPostgres:
		db, err := gorm.Open(gorm_postgres.Open(c.config.PostgresDSN()), &gorm.Config{})
		if err != nil {
			return fmt.Errorf("connect postgres ledger: %w", err)
		}
		if err := postgres.Migrate(db); err != nil {
			return fmt.Errorf("migrate postgres ledger: %w", err)
		}
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		factory := postgres.NewGormUnitOfWorkFactory(db)
		c.uowFactory = factory
		c.reader = factory.Create().DeliveryRepository()
		c.closers = append(c.closers, sqlDB.Close)
	case LedgerSQLite:
		ledger, err := sqlite.Open(c.config.SQLitePath)
		if err != nil {
			return fmt.Errorf("open sqlite ledger: %w", err)
		}
		c.uowFactory = ledger
		c.reader = ledger.Reader()
		c.closers = append(c.closers, ledger.Close)
	}
	return nil
}

func (c *CompositionRoot) Simulation() *simulation.Simulation {
	return c.sim
}

func (c *CompositionRoot) Report() *report.Report {
	return c.report
}

func (c *CompositionRoot) Scenario() Scenario {
	return c.scenario
}

func (c *CompositionRoot) CreateStepSimulationCommandHandler() commands.StepSimulationCommandHandler {
	return commands.NewStepSimulationCommandHandler(c.sim, c.logger)
}

func (c *CompositionRoot) CreateRunSimulationCommandHandler() commands.RunSimulationCommandHandler {
	return commands.NewRunSimulationCommandHandler(c.sim, c.logger)
}

func (c *CompositionRoot) CreateSubmitMailCommandHandler() commands.SubmitMailCommandHandler {
	return commands.NewSubmitMailCommandHandler(c.sim, c.logger)
}

func (c *CompositionRoot) CreateRecallRobotCommandHandler() commands.RecallRobotCommandHandler {
	return commands.NewRecallRobotCommandHandler(c.sim, c.logger)
}

// CreateFlushDeliveriesCommandHandler returns false when no ledger is configured.
func (c *CompositionRoot) CreateFlushDeliveriesCommandHandler() (commands.FlushDeliveriesCommandHandler, bool) {
	if c.uowFactory == nil {
		return commands.FlushDeliveriesCommandHandler{}, false
	}
	return commands.NewFlushDeliveriesCommandHandler(c.report, c.uowFactory), true
}

func (c *CompositionRoot) CreateGetRunStatusQueryHandler() queries.GetRunStatusQueryHandler {
	return queries.NewGetRunStatusQueryHandler(c.sim)
}

func (c *CompositionRoot) CreateGetAllRobotsQueryHandler() queries.GetAllRobotsQueryHandler {
	return queries.NewGetAllRobotsQueryHandler(c.sim)
}

func (c *CompositionRoot) CreateGetPendingMailQueryHandler() queries.GetPendingMailQueryHandler {
	return queries.NewGetPendingMailQueryHandler(c.sim)
}

func (c *CompositionRoot) CreateGetDeliveriesQueryHandler() queries.GetDeliveriesQueryHandler {
	return queries.NewGetDeliveriesQueryHandler(c.reader)
}

// CreateRouter wires the status API.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpadapter.NewServer(
		c.sim,
		c.CreateSubmitMailCommandHandler(),
		c.CreateRecallRobotCommandHandler(),
		c.CreateGetRunStatusQueryHandler(),
		c.CreateGetAllRobotsQueryHandler(),
		c.CreateGetPendingMailQueryHandler(),
		c.CreateGetDeliveriesQueryHandler(),
		c.logger,
	)
	return httpadapter.NewRouter(server, c.logger)
}

// CreateJobManager wires the live-mode jobs. The tick job keeps running after the
// generated mail is delivered, so mail submitted over the API is still served.
func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	tickJob := jobs.NewSimulationTickJob(
		c.CreateStepSimulationCommandHandler(),
		c.sim,
		c.config.TickSchedule,
		false,
		c.logger,
	)

	var flushJob *jobs.LedgerFlushJob
	if handler, ok := c.CreateFlushDeliveriesCommandHandler(); ok {
		flushJob = jobs.NewLedgerFlushJob(handler, c.config.FlushSchedule, c.logger)
	}
	return jobs.NewJobManager(tickJob, flushJob)
}

// Close releases the ledger connections.
func (c *CompositionRoot) Close() error {
	var problems []error
	for _, closeFn := range c.closers {
		problems = append(problems, closeFn())
	}
	return errors.Join(problems...)
}
