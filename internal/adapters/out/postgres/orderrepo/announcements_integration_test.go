package orderrepo_test

import (
	"context"

	"marketplace/internal/adapters/out/postgres/orderrepo"
	"marketplace/internal/core/domain/model/order"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

func (suite *OrderRepositoryIntegrationTestSuite) TestAnnouncements_NewOrderIsNotPending() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, suite.createSplitOrder()))

	pending, err := orderrepo.NewGormStatusAnnouncements(suite.db).ListPending(ctx, 10)

	suite.Require().NoError(err)
	suite.Empty(pending)
	suite.Equal(order.Placed.String(), suite.announcedStatus(suite.firstOrderID()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAnnouncements_ClaimIsTakenOnce() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	announcements := orderrepo.NewGormStatusAnnouncements(suite.db)

	testOrder := suite.createSplitOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Require().NoError(testOrder.AdvancePart(testOrder.Parts()[1].ID(), order.Processing))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	// Given the change is pending
	pending, err := announcements.ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(testOrder.ID(), pending[0].OrderID)
	suite.Equal(order.Placed, pending[0].Announced)
	suite.Equal(order.Processing, pending[0].Cached)
	suite.Equal([]order.Status{order.Placed, order.Processing}, pending[0].PartStatuses)

	// When two pollers claim it
	first, err := announcements.Claim(ctx, pending[0], order.Processing)
	suite.Require().NoError(err)
	second, err := announcements.Claim(ctx, pending[0], order.Processing)
	suite.Require().NoError(err)

	// Then
	suite.True(first)
	suite.False(second)

	pending, err = announcements.ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Empty(pending)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAnnouncements_ReleaseMakesChangePendingAgain() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	announcements := orderrepo.NewGormStatusAnnouncements(suite.db)

	testOrder := suite.createSplitOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Require().NoError(testOrder.AdvancePart(testOrder.Parts()[0].ID(), order.Processing))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	pending, err := announcements.ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	claimed, err := announcements.Claim(ctx, pending[0], order.Processing)
	suite.Require().NoError(err)
	suite.Require().True(claimed)

	// When
	suite.Require().NoError(announcements.Release(ctx, testOrder.ID(), order.Processing, order.Placed))

	// Then
	pending, err = announcements.ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)
	suite.Equal(order.Placed, pending[0].Announced)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAnnouncements_ClaimLosesToConcurrentUpdate() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)
	announcements := orderrepo.NewGormStatusAnnouncements(suite.db)

	testOrder := suite.createSplitOrder()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))
	suite.Require().NoError(testOrder.AdvancePart(testOrder.Parts()[0].ID(), order.Processing))
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))

	pending, err := announcements.ListPending(ctx, 10)
	suite.Require().NoError(err)
	suite.Require().Len(pending, 1)

	// Given the order moves on after it was listed
	reloaded, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	for _, status := range []order.Status{order.Processing, order.Shipped} {
		suite.Require().NoError(reloaded.AdvancePart(reloaded.Parts()[1].ID(), status))
	}
	suite.Require().NoError(suite.repository.Update(ctx, reloaded))

	// When
	claimed, err := announcements.Claim(ctx, pending[0], order.Processing)

	// Then
	suite.Require().NoError(err)
	suite.False(claimed)
	retrieved, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Shipped, retrieved.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAnnouncements_InvalidLimit_ReturnsError() {
	_, err := orderrepo.NewGormStatusAnnouncements(suite.db).ListPending(context.Background(), 0)

	suite.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func (suite *OrderRepositoryIntegrationTestSuite) firstOrderID() string {
	var id string
	suite.Require().NoError(suite.db.Raw("SELECT id::text FROM orders LIMIT 1").Scan(&id).Error)
	return id
}

func (suite *OrderRepositoryIntegrationTestSuite) announcedStatus(orderID string) string {
	var status string
	suite.Require().NoError(suite.db.Raw(
		"SELECT announced_status FROM orders WHERE id = ?", orderID,
	).Scan(&status).Error)
	return status
}
