// Package sqlite keeps the delivery ledger in a single-file SQLite database.
// It is the zero-infrastructure alternative to the postgres ledger and implements
// the same ports, so a run can be replayed and inspected with nothing but a file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"automail/internal/core/ports"

	_ "modernc.org/sqlite"
)

// Ledger owns the database handle and hands out units of work over it.
type Ledger struct {
	db *sql.DB
}

// Open creates the database file (and its directory) if needed and prepares the schema.
func Open(path string) (*Ledger, error) {
	if path == "" {
		return nil, fmt.Errorf("empty db path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer; SQLite serializes anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := initPragmas(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Ledger{db: db}, nil
}

func initPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return err
		}
	}
	return nil
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS deliveries (
			run_id TEXT NOT NULL,
			item_id TEXT NOT NULL,
			destination INTEGER NOT NULL,
			arrival INTEGER NOT NULL,
			delivered_at INTEGER NOT NULL,
			weight INTEGER NOT NULL,
			fragile INTEGER NOT NULL,
			priority INTEGER NOT NULL,
			score REAL NOT NULL,
			PRIMARY KEY (run_id, item_id)
		);`,
		`CREATE INDEX IF NOT EXISTS deliveries_run_tick ON deliveries(run_id, delivered_at);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// Create implements ports.UnitOfWorkFactory.
func (l *Ledger) Create() ports.UnitOfWork {
	return &UnitOfWork{db: l.db}
}

// Reader returns a repository reading outside any transaction, for the status API.
func (l *Ledger) Reader() ports.DeliveryReader {
	return &Repository{q: l.db}
}

// Ping checks the database is reachable.
func (l *Ledger) Ping(ctx context.Context) error {
	return l.db.PingContext(ctx)
}

func (l *Ledger) Close() error {
	return l.db.Close()
}
