package cmd

import (
	"fmt"
	"log/slog"
	"strings"
)

// Run modes.
const (
	// ModeBatch runs the scenario to completion as fast as possible and exits.
	ModeBatch = "batch"
	// ModeLive ticks on a cron schedule and serves the status API until stopped.
	ModeLive = "live"
)

// Ledger drivers.
const (
	LedgerNone     = ""
	LedgerPostgres = "postgres"
	LedgerSQLite   = "sqlite"
)

type Config struct {
	RunMode       string
	HTTPPort      string
	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	LedgerDriver  string
	SQLitePath    string
	ScenarioPath  string
	TickSchedule  string
	FlushSchedule string
	ReportPath    string
	LogLevel      string
}

// Validate checks the values that select behaviour.
func (c Config) Validate() error {
	switch c.RunMode {
	case ModeBatch, ModeLive:
	default:
		return fmt.Errorf("RUN_MODE must be %q or %q, got %q", ModeBatch, ModeLive, c.RunMode)
	}

	switch c.LedgerDriver {
	case LedgerNone, LedgerPostgres:
	case LedgerSQLite:
		if c.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required with LEDGER_DRIVER=%s", LedgerSQLite)
		}
	default:
		return fmt.Errorf("unknown LEDGER_DRIVER %q", c.LedgerDriver)
	}

	if c.RunMode == ModeLive && c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT is required in %s mode", ModeLive)
	}
	return nil
}

// PostgresDSN builds the connection string of the postgres ledger.
func (c Config) PostgresDSN() string {
	sslMode := c.DBSslMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, sslMode)
}

// SlogLevel maps LOG_LEVEL to a slog level; anything unknown means info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
