package cmd

import (
	"errors"
	"log/slog"

	httpadapter "evashoes/internal/adapters/in/http"
	"evashoes/internal/adapters/out/kafka"
	"evashoes/internal/adapters/out/postgres"
	redisstore "evashoes/internal/adapters/out/redis"
	"evashoes/internal/core/application/usecases/commands"
	"evashoes/internal/core/application/usecases/queries"
	"evashoes/internal/core/ports"
	"evashoes/internal/jobs"
	"evashoes/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type statusChangedPublisher interface {
	ports.StatusChangedPublisher
	Close() error
}

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	publisher  statusChangedPublisher
	metrics    *metrics.Metrics
	redis      *goredis.Client
	logger     *slog.Logger
}

// NewCompositionRoot wires the adapters selected by configs. Kafka publishing is off
// without KAFKA_HOST, idempotency without REDIS_ADDR.
func NewCompositionRoot(configs Config, gormDB *gorm.DB, logger *slog.Logger) *CompositionRoot {
	c := &CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		publisher:  kafka.NoopPublisher{},
		metrics:    metrics.New(),
		logger:     logger,
	}
	if configs.KafkaHost != "" {
		c.publisher = kafka.NewStatusChangedPublisher(configs.KafkaHost, configs.KafkaOrderChangedTopic)
	}
	if configs.RedisAddr != "" {
		c.redis = goredis.NewClient(&goredis.Options{Addr: configs.RedisAddr})
	}
	return c
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderDetailsCommandHandler() commands.UpdateOrderDetailsCommandHandler {
	return commands.NewUpdateOrderDetailsCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateDeleteOrderCommandHandler() commands.DeleteOrderCommandHandler {
	return commands.NewDeleteOrderCommandHandler(c.orderUoWFactory())
}

func (c *CompositionRoot) CreateUpdateOrderStatusCommandHandler() commands.UpdateOrderStatusCommandHandler {
	var f commands.FulfillmentUoWFactory = FuncFulfillmentUoWFactory(func() commands.FulfillmentUoW {
		return c.uowFactory.Create()
	})
	return commands.NewUpdateOrderStatusCommandHandler(f, c.configs.Ledger(), c.metrics)
}

func (c *CompositionRoot) CreateRelayStatusChangesCommandHandler() commands.RelayStatusChangesCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayStatusChangesCommandHandler(f, c.publisher, c.logger)
}

func (c *CompositionRoot) CreateAddCartItemsCommandHandler() commands.AddCartItemsCommandHandler {
	return commands.NewAddCartItemsCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateRemoveCartItemCommandHandler() commands.RemoveCartItemCommandHandler {
	return commands.NewRemoveCartItemCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateClearCartCommandHandler() commands.ClearCartCommandHandler {
	return commands.NewClearCartCommandHandler(c.cartUoWFactory())
}

func (c *CompositionRoot) CreateCreateProductCommandHandler() commands.CreateProductCommandHandler {
	var f commands.ProductUoWFactory = FuncProductUoWFactory(func() commands.ProductUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateProductCommandHandler(f)
}

func (c *CompositionRoot) CreateGetOrderQueryHandler() queries.GetOrderQueryHandler {
	return queries.NewGetOrderQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListOrdersQueryHandler() queries.ListOrdersQueryHandler {
	return queries.NewListOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetUserOrdersQueryHandler() queries.GetUserOrdersQueryHandler {
	return queries.NewGetUserOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateSearchOrdersQueryHandler() queries.SearchOrdersQueryHandler {
	return queries.NewSearchOrdersQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetCartQueryHandler() queries.GetCartQueryHandler {
	return queries.NewGetCartQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateProductQueryHandler() queries.ProductQueryHandler {
	return queries.NewProductQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateListFinancialRecordsQueryHandler() queries.ListFinancialRecordsQueryHandler {
	return queries.NewListFinancialRecordsQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetAdminStatsQueryHandler() queries.GetAdminStatsQueryHandler {
	return queries.NewGetAdminStatsQueryHandler(c.gormDB)
}

// CreateRouter assembles the HTTP server with every use case.
func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	createOrder := c.CreateCreateOrderCommandHandler()
	updateDetails := c.CreateUpdateOrderDetailsCommandHandler()
	updateStatus := c.CreateUpdateOrderStatusCommandHandler()
	deleteOrder := c.CreateDeleteOrderCommandHandler()
	addCartItems := c.CreateAddCartItemsCommandHandler()
	removeCartItem := c.CreateRemoveCartItemCommandHandler()
	clearCart := c.CreateClearCartCommandHandler()
	createProduct := c.CreateCreateProductCommandHandler()

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateOrder:        &createOrder,
		UpdateOrderDetails: &updateDetails,
		UpdateOrderStatus:  &updateStatus,
		DeleteOrder:        &deleteOrder,
		AddCartItems:       &addCartItems,
		RemoveCartItem:     &removeCartItem,
		ClearCart:          &clearCart,
		CreateProduct:      &createProduct,
		GetOrder:           c.CreateGetOrderQueryHandler(),
		ListOrders:         c.CreateListOrdersQueryHandler(),
		GetUserOrders:      c.CreateGetUserOrdersQueryHandler(),
		SearchOrders:       c.CreateSearchOrdersQueryHandler(),
		GetCart:            c.CreateGetCartQueryHandler(),
		Products:           c.CreateProductQueryHandler(),
		ListFinancials:     c.CreateListFinancialRecordsQueryHandler(),
		GetAdminStats:      c.CreateGetAdminStatsQueryHandler(),
	})

	var store httpadapter.IdempotencyStore
	if c.redis != nil {
		store = redisstore.NewIdempotencyStore(c.redis, redisstore.DefaultTTL, redisstore.DefaultPendingTTL)
	}

	return httpadapter.NewRouter(httpadapter.RouterConfig{
		Server:      server,
		JWTSecret:   []byte(c.configs.JWTSecret),
		Metrics:     c.metrics,
		Idempotency: store,
		Logger:      c.logger,
	})
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	relayHandler := c.CreateRelayStatusChangesCommandHandler()
	return jobs.NewJobManager(
		c.CreateGetAdminStatsQueryHandler(),
		c.metrics,
		c.configs.StatsReportSchedule,
		&relayHandler,
		c.configs.OutboxRelaySchedule,
		c.logger,
	)
}

// Close releases the outbound connections.
func (c *CompositionRoot) Close() error {
	var errList []error
	if err := c.publisher.Close(); err != nil {
		errList = append(errList, err)
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.Join(errList...)
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) cartUoWFactory() commands.CartUoWFactory {
	return FuncCartUoWFactory(func() commands.CartUoW {
		return c.uowFactory.Create()
	})
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncFulfillmentUoWFactory func() commands.FulfillmentUoW

func (f FuncFulfillmentUoWFactory) Create() commands.FulfillmentUoW {
	return f()
}

type FuncCartUoWFactory func() commands.CartUoW

func (f FuncCartUoWFactory) Create() commands.CartUoW {
	return f()
}

type FuncProductUoWFactory func() commands.ProductUoW

func (f FuncProductUoWFactory) Create() commands.ProductUoW {
	return f()
}

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
