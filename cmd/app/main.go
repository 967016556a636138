package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"automail/cmd"
	"automail/internal/core/application/usecases/commands"
	"automail/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
)

func main() {
	configs := getConfigs()
	if err := configs.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if err := run(configs); err != nil {
		os.Exit(1)
	}
}

func run(configs cmd.Config) error {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: configs.SlogLevel()}))

	scenario := cmd.DefaultScenario()
	if configs.ScenarioPath != "" {
		loaded, err := cmd.LoadScenario(configs.ScenarioPath)
		if err != nil {
			logger.Error("loading scenario", "path", configs.ScenarioPath, "error", err)
			return fmt.Errorf("load scenario: %w", err)
		}
		scenario = loaded
	}

	app, err := cmd.NewCompositionRoot(configs, scenario, logger)
	if err != nil {
		logger.Error("preparing run", "error", err)
		return fmt.Errorf("prepare run: %w", err)
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Error("closing ledger", "error", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch configs.RunMode {
	case cmd.ModeLive:
		err = runLive(ctx, app, configs.HTTPPort, logger)
	default:
		err = runBatch(ctx, app, logger)
	}

	if writeErr := writeReport(app, configs.ReportPath); writeErr != nil {
		logger.Error("writing report", "error", writeErr)
		err = errors.Join(err, writeErr)
	}
	if err != nil {
		logger.Error("run failed", "error", err)
	}
	return err
}

func getConfigs() cmd.Config {
	loadDotEnv()
	return cmd.Config{
		RunMode:       envOr("RUN_MODE", cmd.ModeBatch),
		HTTPPort:      os.Getenv("HTTP_PORT"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBName:        os.Getenv("DB_NAME"),
		DBSslMode:     os.Getenv("DB_SSLMODE"),
		LedgerDriver:  os.Getenv("LEDGER_DRIVER"),
		SQLitePath:    os.Getenv("SQLITE_PATH"),
		ScenarioPath:  os.Getenv("SCENARIO_PATH"),
		TickSchedule:  os.Getenv("TICK_SCHEDULE"),
		FlushSchedule: os.Getenv("FLUSH_SCHEDULE"),
		ReportPath:    os.Getenv("REPORT_PATH"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
	}
}

// loadDotEnv reads .env when present; the process environment always wins.
func loadDotEnv() {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Fatalf("Error loading .env file: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func runBatch(ctx context.Context, app *cmd.CompositionRoot, logger *slog.Logger) error {
	runCmd, err := commands.NewRunSimulationCommand(app.Scenario().MaxTicks)
	if err != nil {
		return err
	}

	result, err := app.CreateRunSimulationCommandHandler().Handle(ctx, runCmd)
	if handler, ok := app.CreateFlushDeliveriesCommandHandler(); ok {
		n, flushErr := handler.Handle(ctx, commands.NewFlushDeliveriesCommand())
		if flushErr != nil {
			err = errors.Join(err, fmt.Errorf("ledger flush: %w", flushErr))
		} else {
			logger.Info("ledger flushed", "records", n)
		}
	}
	if reportErr := app.Report().Err(); reportErr != nil {
		err = errors.Join(err, reportErr)
	}

	fmt.Println(app.Report().Summary())
	logger.Info("batch run finished",
		"final_tick", int(result.FinalTick),
		"delivered", result.Stats.Delivered,
		"dropped", result.Stats.Dropped,
		"in_flight", result.Stats.InFlight,
	)
	return err
}

func runLive(ctx context.Context, app *cmd.CompositionRoot, port string, logger *slog.Logger) error {
	if err := app.Simulation().Start(); err != nil {
		return err
	}

	e, err := app.CreateRouter()
	if err != nil {
		return err
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	g.Go(func() error {
		defer jobManager.StopAll()
		err := jobManager.Wait(gctx)
		if errors.Is(err, jobs.ErrJobStopped) {
			return nil
		}
		return err
	})

	logger.Info("live run started", "port", port, "run", app.Simulation().RunID().String())
	return g.Wait()
}

func writeReport(app *cmd.CompositionRoot, path string) error {
	if path == "" {
		return nil
	}
	return app.Report().WriteFile(path)
}
