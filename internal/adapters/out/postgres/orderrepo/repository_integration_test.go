package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for
// OrderRepository using PostgreSQL containers.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder() *order.Order {
	testOrder, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), "Milk", 2, "5th Ave")
	suite.Require().NoError(err)
	return testOrder
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_ReturnsOrder() {
	ctx := context.Background()

	originalOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", originalOrder.ID(), originalOrder).Once()
	suite.Require().NoError(suite.repository.Add(ctx, originalOrder))

	retrievedOrder, err := suite.repository.Get(ctx, originalOrder.ID())
	suite.Require().NoError(err)

	suite.True(retrievedOrder.ID().IsEqual(originalOrder.ID()))
	suite.True(retrievedOrder.CustomerID().IsEqual(originalOrder.CustomerID()))
	suite.Equal("Milk", retrievedOrder.Product())
	suite.Equal(2, retrievedOrder.Quantity())
	suite.Equal("5th Ave", retrievedOrder.Location())
	suite.Equal(order.Pending, retrievedOrder.Status())
	suite.Nil(retrievedOrder.Courier())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	retrievedOrder, err := suite.repository.Get(ctx, kernel.NewUUID())

	suite.Require().Error(err)
	suite.Nil(retrievedOrder)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_ExpectedMatches_PersistsAdvance() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	courierID := kernel.NewUUID()
	previous := testOrder.Status()
	suite.Require().NoError(testOrder.AdvanceTo(order.Accepted, courierID))

	err := suite.repository.UpdateStatus(ctx, testOrder, previous)
	suite.Require().NoError(err)

	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, retrievedOrder.Status())
	suite.Require().NotNil(retrievedOrder.Courier())
	suite.True(retrievedOrder.Courier().IsEqual(courierID))
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdateStatus_StaleExpected_ReturnsInvalidTransition() {
	ctx := context.Background()

	testOrder := suite.createTestOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	// First courier wins the race.
	winner, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Require().NoError(winner.AdvanceTo(order.Accepted, kernel.NewUUID()))
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, winner, order.Pending))

	// Second courier loaded the same Pending row and loses.
	loser, err := order.RestoreOrder(
		testOrder.ID(), testOrder.CustomerID(), nil,
		testOrder.Product(), testOrder.Quantity(), testOrder.Location(),
		order.Pending, testOrder.CreatedAt(), testOrder.UpdatedAt(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(loser.AdvanceTo(order.Accepted, kernel.NewUUID()))

	err = suite.repository.UpdateStatus(ctx, loser, order.Pending)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrInvalidTransition)

	// The winner's assignment is untouched.
	retrievedOrder, err := suite.repository.Get(ctx, testOrder.ID())
	suite.Require().NoError(err)
	suite.Equal(order.Accepted, retrievedOrder.Status())
	suite.True(retrievedOrder.Courier().IsEqual(*winner.Courier()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllPendingOlderThan_FiltersByStatusAndAge() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything)

	staleOrder, err := order.RestoreOrder(
		kernel.NewUUID(), kernel.NewUUID(), nil,
		"Milk", 1, "5th Ave", order.Pending,
		time.Now().UTC().Add(-2*time.Hour), time.Now().UTC().Add(-2*time.Hour),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, staleOrder))

	freshOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, freshOrder))

	acceptedOrder := suite.createTestOrder()
	suite.Require().NoError(suite.repository.Add(ctx, acceptedOrder))
	previous := acceptedOrder.Status()
	suite.Require().NoError(acceptedOrder.AdvanceTo(order.Accepted, kernel.NewUUID()))
	suite.Require().NoError(suite.repository.UpdateStatus(ctx, acceptedOrder, previous))

	stale, err := suite.repository.GetAllPendingOlderThan(ctx, time.Now().UTC().Add(-time.Hour))
	suite.Require().NoError(err)
	suite.Require().Len(stale, 1)
	suite.True(stale[0].ID().IsEqual(staleOrder.ID()))
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
