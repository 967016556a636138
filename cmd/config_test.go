package cmd_test

import (
	"log/slog"
	"testing"

	"automail/cmd"

	"github.com/stretchr/testify/assert"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  cmd.Config
		wantErr string
	}{
		{
			name:   "batch run without a ledger",
			config: cmd.Config{RunMode: cmd.ModeBatch},
		},
		{
			name:   "live run with a port and postgres",
			config: cmd.Config{RunMode: cmd.ModeLive, HTTPPort: "8082", LedgerDriver: cmd.LedgerPostgres},
		},
		{
			name:   "sqlite ledger with a path",
			config: cmd.Config{RunMode: cmd.ModeBatch, LedgerDriver: cmd.LedgerSQLite, SQLitePath: "/tmp/ledger.db"},
		},
		{
			name:    "unknown run mode",
			config:  cmd.Config{RunMode: "turbo"},
			wantErr: "RUN_MODE",
		},
		{
			name:    "live run without a port",
			config:  cmd.Config{RunMode: cmd.ModeLive},
			wantErr: "HTTP_PORT",
		},
		{
			name:    "sqlite ledger without a path",
			config:  cmd.Config{RunMode: cmd.ModeBatch, LedgerDriver: cmd.LedgerSQLite},
			wantErr: "SQLITE_PATH",
		},
		{
			name:    "unknown ledger driver",
			config:  cmd.Config{RunMode: cmd.ModeBatch, LedgerDriver: "mongo"},
			wantErr: "LEDGER_DRIVER",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestConfig_PostgresDSN(t *testing.T) {
	t.Run("should default sslmode to disable", func(t *testing.T) {
		c := cmd.Config{DBHost: "localhost", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "automail"}

		assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=automail sslmode=disable", c.PostgresDSN())
	})

	t.Run("should keep an explicit sslmode", func(t *testing.T) {
		c := cmd.Config{DBHost: "db", DBPort: "5432", DBUser: "u", DBPassword: "p", DBName: "automail", DBSslMode: "require"}

		assert.Contains(t, c.PostgresDSN(), "sslmode=require")
	})
}

func TestConfig_SlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, cmd.Config{LogLevel: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, cmd.Config{LogLevel: "warning"}.SlogLevel())
	assert.Equal(t, slog.LevelError, cmd.Config{LogLevel: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, cmd.Config{}.SlogLevel())
}
