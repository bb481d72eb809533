package commissionrepo_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"marketplace/internal/adapters/out/postgres"
	"marketplace/internal/adapters/out/postgres/commissionrepo"
	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/commission"
	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/govalues/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// CommissionLedgerIntegrationTestSuite verifies the commission ledger against a real PostgreSQL.
type CommissionLedgerIntegrationTestSuite struct {
	suite.Suite
	container *tcpostgres.PostgresContainer
	db        *gorm.DB
	ledger    *commissionrepo.GormCommissionLedger
	tracker   *MockAggregateTracker
}

func (suite *CommissionLedgerIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("testdb"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	suite.Require().NoError(postgres.RunMigrations(connStr, slog.New(slog.NewTextHandler(io.Discard, nil))))

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db
}

func (suite *CommissionLedgerIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders CASCADE").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.ledger = commissionrepo.NewGormCommissionLedger(suite.db, suite.tracker)
}

func (suite *CommissionLedgerIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *CommissionLedgerIntegrationTestSuite) TestReverse_Success() {
	ctx := context.Background()
	o := suite.persistOrder()
	part := o.Parts()[0]
	reversal := suite.newReversal(o, part, "5.00")
	suite.tracker.On("TrackAggregate", reversal.ID(), reversal).Once()

	err := suite.ledger.Reverse(ctx, reversal)

	suite.Require().NoError(err)
	reversals, err := suite.ledger.ListByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(reversals, 1)
	suite.Equal(reversal.ID(), reversals[0].ID())
	suite.Equal(part.ID(), reversals[0].PartID())
	suite.Equal(*part.VendorID(), reversals[0].VendorID())
	suite.Equal("5.00", reversals[0].Amount().String())
	suite.Equal("customer changed mind", reversals[0].Reason())
	suite.WithinDuration(reversal.CreatedAt(), reversals[0].CreatedAt(), time.Millisecond)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CommissionLedgerIntegrationTestSuite) TestReverse_SamePartTwice_IsRejected() {
	ctx := context.Background()
	o := suite.persistOrder()
	part := o.Parts()[0]
	first := suite.newReversal(o, part, "5.00")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.ledger.Reverse(ctx, first))

	err := suite.ledger.Reverse(ctx, suite.newReversal(o, part, "5.00"))

	suite.Require().ErrorIs(err, errs.ErrValueIsInvalid)
	suite.Contains(err.Error(), commissionrepo.ErrAlreadyReversed.Error())
	suite.assertCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *CommissionLedgerIntegrationTestSuite) TestReverse_UnconstructedReversal_ReturnsError() {
	err := suite.ledger.Reverse(context.Background(), &commission.Reversal{})

	suite.Require().ErrorIs(err, commission.ErrReversalIsNotConstructed)
	suite.assertCount(0)
}

func (suite *CommissionLedgerIntegrationTestSuite) TestListByOrder_OnlyReturnsOwnEntries() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	first := suite.persistOrder()
	second := suite.persistOrder()
	suite.Require().NoError(suite.ledger.Reverse(ctx, suite.newReversal(first, first.Parts()[0], "1.00")))
	suite.Require().NoError(suite.ledger.Reverse(ctx, suite.newReversal(first, first.Parts()[1], "2.00")))
	suite.Require().NoError(suite.ledger.Reverse(ctx, suite.newReversal(second, second.Parts()[0], "3.00")))

	reversals, err := suite.ledger.ListByOrder(ctx, first.ID())

	suite.Require().NoError(err)
	suite.Require().Len(reversals, 2)
	for _, r := range reversals {
		suite.Equal(first.ID(), r.OrderID())
	}

	none, err := suite.ledger.ListByOrder(ctx, kernel.NewUUID())
	suite.Require().NoError(err)
	suite.Empty(none)
}

func (suite *CommissionLedgerIntegrationTestSuite) persistOrder() *order.Order {
	parts := make([]*order.Part, 0, 2)
	for range 2 {
		item, err := order.NewLineItem(kernel.NewUUID(), "SKU-1", 1, kernel.MustMoney("50.00"))
		suite.Require().NoError(err)
		part, err := order.NewVendorPart(kernel.NewUUID(), kernel.NewUUID(), decimal.MustParse("0.10"), []*order.LineItem{item})
		suite.Require().NoError(err)
		parts = append(parts, part)
	}

	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), parts)
	suite.Require().NoError(err)

	tracker := new(MockAggregateTracker)
	tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db, tracker).Add(context.Background(), o))
	return o
}

func (suite *CommissionLedgerIntegrationTestSuite) newReversal(o *order.Order, part *order.Part, amount string) *commission.Reversal {
	r, err := commission.NewReversal(
		kernel.NewUUID(), o.ID(), part.ID(), *part.VendorID(), kernel.MustMoney(amount), "customer changed mind",
	)
	suite.Require().NoError(err)
	return r
}

func (suite *CommissionLedgerIntegrationTestSuite) assertCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&commissionrepo.ReversalDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func TestCommissionLedgerIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CommissionLedgerIntegrationTestSuite))
}
