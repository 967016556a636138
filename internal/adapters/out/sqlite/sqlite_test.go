package sqlite_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"automail/internal/adapters/out/sqlite"
	"automail/internal/core/domain/model/delivery"
	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/model/mail"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openLedger(t *testing.T) (*sqlite.Ledger, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger", "deliveries.db")
	ledger, err := sqlite.Open(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = ledger.Close() })
	return ledger, path
}

func record(t *testing.T, runID kernel.UUID, id string, at kernel.Tick) *delivery.Record {
	t.Helper()
	item, err := mail.NewPriorityItem(id, 3, 1, 2100, false, 10)
	require.NoError(t, err)
	rec, err := delivery.NewRecord(runID, item, at, delivery.DefaultPenalty)
	require.NoError(t, err)
	return rec
}

func itemIDs(records []*delivery.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ItemID())
	}
	return out
}

func TestOpen(t *testing.T) {
	t.Run("should reject an empty path", func(t *testing.T) {
		ledger, err := sqlite.Open("")

		require.Error(t, err)
		assert.Nil(t, ledger)
	})

	t.Run("should create the file and schema", func(t *testing.T) {
		ledger, path := openLedger(t)
		require.NoError(t, ledger.Ping(context.Background()))

		db, err := sql.Open("sqlite", path)
		require.NoError(t, err)
		defer db.Close()

		var name string
		row := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name='deliveries'`)
		require.NoError(t, row.Scan(&name))
		assert.Equal(t, "deliveries", name)
	})
}

func TestUnitOfWork(t *testing.T) {
	ctx := context.Background()

	t.Run("should persist a committed batch", func(t *testing.T) {
		ledger, _ := openLedger(t)
		runID := kernel.NewUUID()
		uow := ledger.Create()

		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.DeliveryRepository().Add(ctx,
			record(t, runID, "P2", 8),
			record(t, runID, "P1", 5),
		))
		require.NoError(t, uow.Commit(ctx))
		require.NoError(t, uow.Rollback(ctx))

		n, err := ledger.Create().DeliveryRepository().Count(ctx, runID)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
	})

	t.Run("should discard a rolled back batch", func(t *testing.T) {
		ledger, _ := openLedger(t)
		runID := kernel.NewUUID()
		uow := ledger.Create()

		require.NoError(t, uow.Begin(ctx))
		require.NoError(t, uow.DeliveryRepository().Add(ctx, record(t, runID, "P1", 5)))
		require.NoError(t, uow.Rollback(ctx))

		n, err := ledger.Create().DeliveryRepository().Count(ctx, runID)
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("should fail to commit without a transaction", func(t *testing.T) {
		ledger, _ := openLedger(t)

		err := ledger.Create().Commit(ctx)

		require.ErrorIs(t, err, sqlite.ErrNoTransaction)
	})

	t.Run("should reject the same item twice in a run", func(t *testing.T) {
		ledger, _ := openLedger(t)
		runID := kernel.NewUUID()
		repo := ledger.Create().DeliveryRepository()
		require.NoError(t, repo.Add(ctx, record(t, runID, "P1", 5)))

		err := repo.Add(ctx, record(t, runID, "P1", 6))

		require.Error(t, err)
		require.NoError(t, repo.Add(ctx, record(t, kernel.NewUUID(), "P1", 6)))
	})
}

func TestRepository_List(t *testing.T) {
	ctx := context.Background()
	ledger, _ := openLedger(t)
	runID := kernel.NewUUID()
	repo := ledger.Create().DeliveryRepository()
	require.NoError(t, repo.Add(ctx,
		record(t, runID, "P3", 9),
		record(t, runID, "P1", 4),
		record(t, runID, "P2", 4),
		record(t, kernel.NewUUID(), "P4", 1),
	))

	t.Run("should order by delivery tick", func(t *testing.T) {
		got, err := ledger.Reader().List(ctx, runID, 0)

		require.NoError(t, err)
		assert.Equal(t, []string{"P1", "P2", "P3"}, itemIDs(got))
		assert.Equal(t, kernel.Tick(4), got[0].DeliveredAt())
		assert.Equal(t, 2100, got[0].Weight())
		assert.Equal(t, 10, got[0].Priority())
		assert.True(t, got[0].RunID().IsEqual(runID))
	})

	t.Run("should honour the limit", func(t *testing.T) {
		got, err := ledger.Reader().List(ctx, runID, 1)

		require.NoError(t, err)
		assert.Equal(t, []string{"P1"}, itemIDs(got))
	})

	t.Run("should return nothing for an unknown run", func(t *testing.T) {
		got, err := ledger.Reader().List(ctx, kernel.NewUUID(), 0)

		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("should reject an unconstructed run id", func(t *testing.T) {
		_, err := ledger.Reader().List(ctx, kernel.UUID{}, 0)

		require.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})
}
