package cmd

import (
	"context"
	"log/slog"

	httpin "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/in/stream"
	"tracking/internal/adapters/out/broadcast"
	"tracking/internal/adapters/out/kafka"
	"tracking/internal/adapters/out/logging"
	"tracking/internal/adapters/out/memory"
	"tracking/internal/adapters/out/metrics"
	"tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/historyrepo"
	"tracking/internal/adapters/out/scheduler"
	"tracking/internal/core/application/tracking"
	"tracking/internal/core/application/usecases/commands"
	"tracking/internal/core/application/usecases/queries"
	"tracking/internal/core/domain/model/order"
	"tracking/internal/core/domain/services"
	"tracking/internal/core/ports"
	"tracking/internal/jobs"
	"tracking/internal/pkg/errs"

	"github.com/facebookgo/clock"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"gorm.io/gorm"
)

// Dependencies are the process-level resources handed to the root. GormDB
// is nil when the history is kept in memory; KafkaWriter is nil when Kafka
// is disabled.
type Dependencies struct {
	GormDB      *gorm.DB
	KafkaWriter kafka.MessageWriter
	Clock       clock.Clock
	Chooser     services.Chooser
	Logger      *slog.Logger
}

type CompositionRoot struct {
	configs    Config
	logger     *slog.Logger
	clock      clock.Clock
	uowFactory ports.UnitOfWorkFactory
	history    ports.OrderHistoryRepository
	registry   *prometheus.Registry
	hub        *stream.Hub
	kafka      *kafka.OrderChangedPublisher
	session    *tracking.Session
}

func NewCompositionRoot(configs Config, deps Dependencies) (*CompositionRoot, error) {
	if deps.Logger == nil {
		return nil, errs.NewValueIsRequiredError("logger")
	}
	if deps.Clock == nil {
		deps.Clock = clock.New()
	}

	c := &CompositionRoot{
		configs:  configs,
		logger:   deps.Logger,
		clock:    deps.Clock,
		registry: prometheus.NewRegistry(),
		hub:      stream.NewHub(deps.Logger),
	}

	if deps.GormDB != nil {
		c.uowFactory = postgres.NewGormUnitOfWorkFactory(deps.GormDB)
		c.history = historyrepo.NewGormOrderHistoryRepository(deps.GormDB, nil)
	} else {
		store := memory.NewHistoryStore()
		c.uowFactory = memory.NewUnitOfWorkFactory(store)
		c.history = memory.NewHistoryRepository(store)
	}

	if err := c.registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, err
	}
	trackingMetrics, err := metrics.NewTrackingMetrics(c.registry)
	if err != nil {
		return nil, err
	}

	notifiers := broadcast.Notifiers{logging.NewNotifier(deps.Logger), c.hub, trackingMetrics}
	publishers := broadcast.Publishers{logging.NewPublisher(deps.Logger), c.hub, trackingMetrics}
	if deps.KafkaWriter != nil {
		c.kafka, err = kafka.NewOrderChangedPublisher(deps.KafkaWriter, deps.Logger)
		if err != nil {
			return nil, err
		}
		publishers = append(publishers, c.kafka)
	}

	dispatcher, err := services.NewDriverDispatcher(services.DefaultDriverNames(), services.DefaultDriverPhone, deps.Chooser)
	if err != nil {
		return nil, err
	}

	recordHandler := c.CreateRecordDeliveredOrderCommandHandler()
	c.session, err = tracking.NewSession(tracking.Dependencies{
		Scheduler:  scheduler.New(deps.Clock),
		Dispatcher: dispatcher,
		Timings:    services.DefaultSimulationTimings().WithSpeed(configs.SimulationSpeed),
		Recorder: tracking.HistoryRecorderFunc(func(ctx context.Context, o *order.Order) error {
			cmd, cmdErr := commands.NewRecordDeliveredOrderCommand(o)
			if cmdErr != nil {
				return cmdErr
			}
			return recordHandler.Handle(ctx, cmd)
		}),
		Notifier:  notifiers,
		Publisher: publishers,
		Logger:    deps.Logger,
	})
	if err != nil {
		return nil, err
	}

	return c, nil
}

func (c *CompositionRoot) historyUoWFactory() commands.HistoryUoWFactory {
	return FuncHistoryUoWFactory(func() commands.HistoryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreatePlaceOrderCommandHandler() commands.PlaceOrderCommandHandler {
	return commands.NewPlaceOrderCommandHandler(c.session)
}

func (c *CompositionRoot) CreateClearActiveOrderCommandHandler() commands.ClearActiveOrderCommandHandler {
	return commands.NewClearActiveOrderCommandHandler(c.session)
}

func (c *CompositionRoot) CreateExpireDeliveredOrderCommandHandler() commands.ExpireDeliveredOrderCommandHandler {
	return commands.NewExpireDeliveredOrderCommandHandler(c.session)
}

func (c *CompositionRoot) CreateRecordDeliveredOrderCommandHandler() commands.RecordDeliveredOrderCommandHandler {
	return commands.NewRecordDeliveredOrderCommandHandler(c.historyUoWFactory())
}

func (c *CompositionRoot) CreatePurgeOrderHistoryCommandHandler() commands.PurgeOrderHistoryCommandHandler {
	return commands.NewPurgeOrderHistoryCommandHandler(c.historyUoWFactory(), c.clock.Now)
}

func (c *CompositionRoot) CreateGetActiveOrderQueryHandler() queries.GetActiveOrderQueryHandler {
	return queries.NewGetActiveOrderQueryHandler(c.session)
}

func (c *CompositionRoot) CreateGetOrderHistoryQueryHandler() queries.GetOrderHistoryQueryHandler {
	return queries.NewGetOrderHistoryQueryHandler(c.history)
}

func (c *CompositionRoot) CreateGetPastOrderQueryHandler() queries.GetPastOrderQueryHandler {
	return queries.NewGetPastOrderQueryHandler(c.history)
}

func (c *CompositionRoot) CreateJobManager() (*jobs.JobManager, error) {
	expiry, err := jobs.NewDeliveredOrderExpiryJob(
		c.CreateExpireDeliveredOrderCommandHandler(), c.configs.DeliveredOrderTTL, c.logger)
	if err != nil {
		return nil, err
	}
	purge, err := jobs.NewHistoryPurgeJob(
		c.CreatePurgeOrderHistoryCommandHandler(), c.configs.HistoryRetention, c.logger)
	if err != nil {
		return nil, err
	}
	return jobs.NewJobManager(expiry, purge), nil
}

func (c *CompositionRoot) CreateRouter() (*echo.Echo, error) {
	server := httpin.NewServer(
		c.CreatePlaceOrderCommandHandler(),
		c.CreateClearActiveOrderCommandHandler(),
		c.CreateGetActiveOrderQueryHandler(),
		c.CreateGetOrderHistoryQueryHandler(),
		c.CreateGetPastOrderQueryHandler(),
	)
	return httpin.NewRouter(httpin.RouterConfig{
		Server:   server,
		Stream:   c.hub,
		Gatherer: c.registry,
		Logger:   c.logger,
		Now:      c.clock.Now,
	})
}

// RunStream serves websocket clients until ctx is done.
func (c *CompositionRoot) RunStream(ctx context.Context) {
	c.hub.Run(ctx)
}

// Close stops the simulation timer and flushes the Kafka writer.
func (c *CompositionRoot) Close() error {
	c.session.Close()
	if c.kafka == nil {
		return nil
	}
	return c.kafka.Close()
}

type FuncHistoryUoWFactory func() commands.HistoryUoW

func (f FuncHistoryUoWFactory) Create() commands.HistoryUoW {
	return f()
}
