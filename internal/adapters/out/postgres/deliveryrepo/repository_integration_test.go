package deliveryrepo_test

import (
	"context"
	"testing"

	"automail/internal/adapters/out/postgres/deliveryrepo"
	"automail/internal/core/domain/model/delivery"
	"automail/internal/core/domain/model/kernel"
	"automail/internal/core/domain/model/mail"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type nopTracker struct {
	records []*delivery.Record
}

func (t *nopTracker) TrackRecord(record *delivery.Record) {
	t.records = append(t.records, record)
}

// DeliveryRepositoryIntegrationTestSuite exercises the ledger table against a real PostgreSQL.
type DeliveryRepositoryIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	tracker   *nopTracker
	repo      *deliveryrepo.GormDeliveryRepository
	runID     kernel.UUID
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&deliveryrepo.DeliveryDTO{}))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE deliveries").Error)
	suite.tracker = &nopTracker{}
	suite.repo = deliveryrepo.NewGormDeliveryRepository(suite.db, suite.tracker)
	suite.runID = kernel.NewUUID()
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_RoundTripsEveryField() {
	ctx := context.Background()
	item, err := mail.NewPriorityItem("P7", 9, 3, 2400, true, 100)
	suite.Require().NoError(err)
	rec, err := delivery.NewRecord(suite.runID, item, 17, delivery.DefaultPenalty)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.repo.Add(ctx, rec))

	got, err := suite.repo.List(ctx, suite.runID, 0)
	suite.Require().NoError(err)
	suite.Require().Len(got, 1)
	suite.True(got[0].RunID().IsEqual(suite.runID))
	suite.Equal("P7", got[0].ItemID())
	suite.Equal(kernel.Floor(9), got[0].Destination())
	suite.Equal(kernel.Tick(3), got[0].Arrival())
	suite.Equal(kernel.Tick(17), got[0].DeliveredAt())
	suite.Equal(2400, got[0].Weight())
	suite.True(got[0].Fragile())
	suite.Equal(100, got[0].Priority())
	suite.InDelta(rec.Score(), got[0].Score(), 1e-9)
	suite.Len(suite.tracker.records, 1)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_EmptyBatchIsNoop() {
	suite.Require().NoError(suite.repo.Add(context.Background()))
	suite.Empty(suite.tracker.records)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_RejectsUnconstructedRecord() {
	err := suite.repo.Add(context.Background(), &delivery.Record{})
	suite.Require().ErrorIs(err, delivery.ErrRecordIsNotConstructed)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestAdd_SameItemInAnotherRun() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.Add(ctx, suite.record(suite.runID, "P1", 4)))

	other := kernel.NewUUID()
	suite.Require().NoError(suite.repo.Add(ctx, suite.record(other, "P1", 4)))

	n, err := suite.repo.Count(ctx, other)
	suite.Require().NoError(err)
	suite.Equal(1, n)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestList_OrderAndLimit() {
	ctx := context.Background()
	suite.Require().NoError(suite.repo.Add(ctx,
		suite.record(suite.runID, "P3", 9),
		suite.record(suite.runID, "P1", 4),
		suite.record(suite.runID, "P2", 6),
	))
	suite.Require().NoError(suite.repo.Add(ctx, suite.record(kernel.NewUUID(), "P9", 1)))

	all, err := suite.repo.List(ctx, suite.runID, 0)
	suite.Require().NoError(err)
	suite.Equal([]string{"P1", "P2", "P3"}, ids(all))

	two, err := suite.repo.List(ctx, suite.runID, 2)
	suite.Require().NoError(err)
	suite.Equal([]string{"P1", "P2"}, ids(two))
}

func (suite *DeliveryRepositoryIntegrationTestSuite) TestList_InvalidRunID() {
	_, err := suite.repo.List(context.Background(), kernel.UUID{}, 0)
	suite.Require().Error(err)

	_, err = suite.repo.Count(context.Background(), kernel.UUID{})
	suite.Require().Error(err)
}

func (suite *DeliveryRepositoryIntegrationTestSuite) record(runID kernel.UUID, id string, at kernel.Tick) *delivery.Record {
	item, err := mail.NewItem(id, 2, 0, 300, false)
	suite.Require().NoError(err)
	rec, err := delivery.NewRecord(runID, item, at, delivery.DefaultPenalty)
	suite.Require().NoError(err)
	return rec
}

func ids(records []*delivery.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ItemID())
	}
	return out
}

func TestDeliveryRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(DeliveryRepositoryIntegrationTestSuite))
}
