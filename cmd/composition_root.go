package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	httpadapter "fastfeet/internal/adapters/in/http"
	"fastfeet/internal/adapters/out/inmemory"
	"fastfeet/internal/adapters/out/logsender"
	"fastfeet/internal/adapters/out/postgres"
	"fastfeet/internal/adapters/out/postgres/orderrepo"
	"fastfeet/internal/adapters/out/postgres/recipientrepo"
	"fastfeet/internal/adapters/out/redis"
	"fastfeet/internal/core/application/subscribers"
	"fastfeet/internal/core/application/usecases/commands"
	"fastfeet/internal/core/application/usecases/queries"
	"fastfeet/internal/core/domain/events"
	"fastfeet/internal/core/ports"
	"fastfeet/internal/jobs"

	"github.com/labstack/echo/v4"
)

const readHeaderTimeout = 10 * time.Second

type CompositionRoot struct {
	config Config
	logger *slog.Logger
	bus    *events.Bus

	uowFactory    ports.UnitOfWorkFactory
	orderRepo     ports.OrderRepository
	recipientRepo ports.RecipientRepository

	outbox ports.NotificationOutbox
	sender ports.NotificationSender

	closers []func() error
}

// NewCompositionRoot opens the configured storage and notifier and registers
// the event subscribers.
func NewCompositionRoot(ctx context.Context, config Config, logger *slog.Logger) (*CompositionRoot, error) {
	c := &CompositionRoot{
		config: config,
		logger: logger,
		bus:    events.NewBus(logger),
	}

	if err := c.openStorage(); err != nil {
		return nil, err
	}
	if err := c.openNotifier(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}

	subscribers.NewOrderStatusChanged(c.outbox, logger).Register(c.bus)
	return c, nil
}

func (c *CompositionRoot) openStorage() error {
	readTracker := events.NewImmediateTracker(c.bus)

	switch c.config.Storage {
	case StoragePostgres:
		db, err := postgres.Open(postgres.ConnectionParams{
			Host:     c.config.DBHost,
			Port:     c.config.DBPort,
			User:     c.config.DBUser,
			Password: c.config.DBPassword,
			DBName:   c.config.DBName,
			SSLMode:  c.config.DBSslMode,
		}.DSN())
		if err != nil {
			return err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("get database handle: %w", err)
		}
		c.closers = append(c.closers, sqlDB.Close)

		c.uowFactory = postgres.NewGormUnitOfWorkFactory(db, c.bus)
		c.orderRepo = orderrepo.NewGormOrderRepository(db, readTracker)
		c.recipientRepo = recipientrepo.NewGormRecipientRepository(db)
	default:
		store := inmemory.NewStore()
		c.uowFactory = inmemory.NewUnitOfWorkFactory(store, c.bus)
		c.orderRepo = inmemory.NewOrderRepository(store, readTracker)
		c.recipientRepo = inmemory.NewRecipientRepository(store)
	}

	c.logger.Info("storage ready", "storage", c.config.Storage)
	return nil
}

func (c *CompositionRoot) openNotifier(ctx context.Context) error {
	switch c.config.Notifier {
	case NotifierRedis:
		client, err := redis.NewClient(ctx, c.config.RedisURL)
		if err != nil {
			return err
		}
		c.closers = append(c.closers, client.Close)

		c.outbox = redis.NewOutbox(client, c.config.RedisOutboxKey)
		c.sender = redis.NewSender(client, c.config.RedisChannel)
	default:
		c.outbox = inmemory.NewOutbox()
		c.sender = logsender.NewSender(c.logger)
	}

	c.logger.Info("notifier ready", "notifier", c.config.Notifier)
	return nil
}

// Close releases the connections opened by NewCompositionRoot.
func (c *CompositionRoot) Close() error {
	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		errs = append(errs, c.closers[i]())
	}
	c.closers = nil
	return errors.Join(errs...)
}

func (c *CompositionRoot) CreateCreateRecipientCommandHandler() commands.CreateRecipientCommandHandler {
	var f commands.RecipientUoWFactory = FuncRecipientUoWFactory(func() commands.RecipientUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateRecipientCommandHandler(f)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.UoWFactory = FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f)
}

func (c *CompositionRoot) CreatePickUpOrderCommandHandler() commands.PickUpOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewPickUpOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateDeliverOrderCommandHandler() commands.DeliverOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewDeliverOrderCommandHandler(f)
}

func (c *CompositionRoot) CreateSendPendingNotificationsCommandHandler() commands.SendPendingNotificationsCommandHandler {
	return commands.NewSendPendingNotificationsCommandHandler(c.outbox, c.sender)
}

func (c *CompositionRoot) CreateFetchAwaitingOrdersQueryHandler() queries.FetchAwaitingOrdersQueryHandler {
	return queries.NewFetchAwaitingOrdersQueryHandler(c.orderRepo)
}

func (c *CompositionRoot) CreateFetchCompletedOrdersQueryHandler() queries.FetchCompletedOrdersQueryHandler {
	return queries.NewFetchCompletedOrdersQueryHandler(c.orderRepo)
}

func (c *CompositionRoot) CreateGetOrderDetailsQueryHandler() queries.GetOrderDetailsQueryHandler {
	return queries.NewGetOrderDetailsQueryHandler(c.orderRepo, c.recipientRepo)
}

func (c *CompositionRoot) CreateTrackOrderQueryHandler() queries.TrackOrderQueryHandler {
	return queries.NewTrackOrderQueryHandler(c.orderRepo)
}

// NewEcho builds the HTTP application over every use case.
func (c *CompositionRoot) NewEcho(ctx context.Context) (*echo.Echo, error) {
	doc, err := httpadapter.LoadOpenAPI(ctx)
	if err != nil {
		return nil, err
	}

	server := httpadapter.NewServer(httpadapter.Handlers{
		CreateRecipient:      c.CreateCreateRecipientCommandHandler(),
		CreateOrder:          c.CreateCreateOrderCommandHandler(),
		PickUpOrder:          c.CreatePickUpOrderCommandHandler(),
		DeliverOrder:         c.CreateDeliverOrderCommandHandler(),
		FetchAwaitingOrders:  c.CreateFetchAwaitingOrdersQueryHandler(),
		FetchCompletedOrders: c.CreateFetchCompletedOrdersQueryHandler(),
		GetOrderDetails:      c.CreateGetOrderDetailsQueryHandler(),
		TrackOrder:           c.CreateTrackOrderQueryHandler(),
	})
	return httpadapter.NewEcho(server, doc, c.logger)
}

// NewHTTPServer wraps e in a server listening on the configured port.
func (c *CompositionRoot) NewHTTPServer(e *echo.Echo) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf("0.0.0.0:%d", c.config.HTTPPort),
		Handler:           e,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

func (c *CompositionRoot) NewJobManager() (*jobs.JobManager, error) {
	notificationJob, err := jobs.NewNotificationJob(
		c.CreateSendPendingNotificationsCommandHandler(),
		c.config.NotificationSchedule,
		c.config.NotificationBatchSize,
		c.logger,
	)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(notificationJob), nil
}

type FuncRecipientUoWFactory func() commands.RecipientUoW

func (f FuncRecipientUoWFactory) Create() commands.RecipientUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
