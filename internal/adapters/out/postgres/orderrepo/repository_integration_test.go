package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"evashoes/internal/adapters/out/postgres/orderrepo"
	"evashoes/internal/core/domain/model/kernel"
	"evashoes/internal/core/domain/model/order"
	"evashoes/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite runs the order repository against PostgreSQL.
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_items").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_PersistsOrderWithItems() {
	ctx := context.Background()
	testOrder := suite.newOrder()
	suite.tracker.On("TrackAggregate", testOrder.ID(), testOrder).Once()

	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	suite.assertCount("orders", 1)
	suite.assertCount("order_items", 2)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertCount("orders", 0)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_RoundTripsAllFields() {
	ctx := context.Background()
	original := suite.newOrder()
	suite.tracker.On("TrackAggregate", original.ID(), original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	restored, err := suite.repository.Get(ctx, original.ID())
	suite.Require().NoError(err)

	suite.Equal(original.ID(), restored.ID())
	suite.Equal(original.UserID(), restored.UserID())
	suite.Equal("240.00", restored.TotalPrice().String())
	suite.Equal(order.Pending, restored.Status())
	suite.Equal(order.Banking, restored.PaymentMethod())
	suite.Equal(order.PaymentPending, restored.PaymentStatus())
	suite.Equal(original.ShippingAddress(), restored.ShippingAddress())
	suite.Equal("leave at the door", restored.Notes())
	suite.Equal("ORD17600000000001", restored.CodeOrder())
	suite.Nil(restored.CancelAt())
	suite.Nil(restored.CancelReason())
	suite.Nil(restored.DeliveredAt())

	items := restored.Items()
	suite.Require().Len(items, 2)
	size, ok := items[0].Size()
	suite.True(ok)
	suite.Equal(38, size)
	suite.Equal("red", items[0].Color())
	suite.Equal(2, items[0].Quantity())
	suite.Equal("100.00", items[0].Price().String())
	_, ok = items[1].Size()
	suite.False(ok)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	restored, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Nil(restored)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_PersistsStatusConsequences() {
	testCases := []struct {
		name   string
		target order.Status
		reason *string
		verify func(*order.Order)
	}{
		{
			name:   "cancel with reason",
			target: order.Cancelled,
			reason: strPtr("changed my mind"),
			verify: func(o *order.Order) {
				suite.Equal(order.Cancelled, o.Status())
				suite.Equal(order.PaymentFailed, o.PaymentStatus())
				suite.NotNil(o.CancelAt())
				suite.Require().NotNil(o.CancelReason())
				suite.Equal("changed my mind", *o.CancelReason())
				suite.Nil(o.DeliveredAt())
			},
		},
		{
			name:   "deliver",
			target: order.Delivered,
			verify: func(o *order.Order) {
				suite.Equal(order.Delivered, o.Status())
				suite.Equal(order.PaymentPaid, o.PaymentStatus())
				suite.NotNil(o.DeliveredAt())
				suite.Nil(o.CancelAt())
			},
		},
		{
			name:   "confirm",
			target: order.Confirmed,
			verify: func(o *order.Order) {
				suite.Equal(order.Confirmed, o.Status())
				suite.Equal(order.PaymentPending, o.PaymentStatus())
			},
		},
	}

	ctx := context.Background()
	for _, tc := range testCases {
		suite.Run(tc.name, func() {
			o := suite.newOrder()
			suite.tracker.On("TrackAggregate", o.ID(), o).Twice()
			suite.Require().NoError(suite.repository.Add(ctx, o))

			_, err := o.ChangeStatus(tc.target, tc.reason, time.Now().UTC())
			suite.Require().NoError(err)
			suite.Require().NoError(suite.repository.Update(ctx, o))

			restored, err := suite.repository.Get(ctx, o.ID())
			suite.Require().NoError(err)
			tc.verify(restored)
			suite.Len(restored.Items(), 2)
		})
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsNotFoundError() {
	err := suite.repository.Update(context.Background(), suite.newOrder())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_InsideTransaction() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	err := suite.db.Transaction(func(tx *gorm.DB) error {
		locked, err := orderrepo.NewGormOrderRepository(tx, suite.tracker).GetForUpdate(ctx, o.ID())
		if err != nil {
			return err
		}
		suite.Equal(o.ID(), locked.ID())
		return nil
	})
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestDelete_CascadesItems() {
	ctx := context.Background()
	o := suite.newOrder()
	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	suite.Require().NoError(suite.repository.Delete(ctx, o.ID()))

	suite.assertCount("orders", 0)
	suite.assertCount("order_items", 0)

	err := suite.repository.Delete(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder() *order.Order {
	sized, err := order.NewLineItem(kernel.NewUUID(), 2, kernel.MustMoney(100), "red", intPtr(38))
	suite.Require().NoError(err)
	sizeless, err := order.NewLineItem(kernel.NewUUID(), 1, kernel.MustMoney(25), "", nil)
	suite.Require().NoError(err)
	address, err := order.NewShippingAddress("Tran B", "0922222222", "9 Hai Ba Trung", "Ha Noi", "Hoan Kiem", "Trang Tien")
	suite.Require().NoError(err)

	o, err := order.NewOrder(
		kernel.NewUUID(),
		kernel.NewUUID(),
		[]order.LineItem{sized, sizeless},
		kernel.MustMoney(240),
		order.Banking,
		address,
		"leave at the door",
		"ORD17600000000001",
		time.Now().UTC().Truncate(time.Microsecond),
	)
	suite.Require().NoError(err)
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertCount(table string, expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Table(table).Count(&count).Error)
	suite.Equal(expected, count)
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration tests in short mode")
	}
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
