package cmd

import (
	httpin "parcel/internal/adapters/in/http"
	"parcel/internal/adapters/out/postgres"
	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"
	"parcel/internal/core/domain/services"
	"parcel/internal/core/ports"
	"parcel/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *postgres.GormUnitOfWorkFactory
	storage    ports.DocumentStorage
	pricing    *services.PricingEngine
	codes      *services.OrderCodeGenerator
	logger     *zap.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, storage ports.DocumentStorage, logger *zap.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: postgres.NewGormUnitOfWorkFactory(gormDB),
		storage:    storage,
		pricing:    services.NewPricingEngine(services.DefaultPricingRates()),
		codes:      services.NewOrderCodeGenerator(cfg.OrderNumberPrefix),
		logger:     logger,
	}
}

func (c *CompositionRoot) CreateRegisterUserCommandHandler() commands.RegisterUserCommandHandler {
	return commands.NewRegisterUserCommandHandler(c.accountUoWFactory())
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	var f commands.OrderUoWFactory = FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
	return commands.NewCreateOrderCommandHandler(f, c.pricing, c.codes)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.uowFactoryAll(), commands.TransitionPolicy{
		RequireVerifiedDriver: c.cfg.RequireVerifiedDriver,
		Currency:              c.cfg.PaymentCurrency,
	})
}

func (c *CompositionRoot) CreateSubmitRatingCommandHandler() commands.SubmitRatingCommandHandler {
	return commands.NewSubmitRatingCommandHandler(c.uowFactoryAll())
}

func (c *CompositionRoot) CreateUploadDocumentCommandHandler() commands.UploadDocumentCommandHandler {
	return commands.NewUploadDocumentCommandHandler(c.accountUoWFactory(), c.storage)
}

func (c *CompositionRoot) CreateReviewDocumentCommandHandler() commands.ReviewDocumentCommandHandler {
	return commands.NewReviewDocumentCommandHandler(c.accountUoWFactory())
}

func (c *CompositionRoot) CreateSetDriverAvailabilityCommandHandler() commands.SetDriverAvailabilityCommandHandler {
	return commands.NewSetDriverAvailabilityCommandHandler(c.accountUoWFactory())
}

func (c *CompositionRoot) CreateRelayOutboxCommandHandler(publisher ports.EventPublisher) commands.RelayOutboxCommandHandler {
	var f commands.OutboxUoWFactory = FuncOutboxUoWFactory(func() commands.OutboxUoW {
		return c.uowFactory.Create()
	})
	return commands.NewRelayOutboxCommandHandler(f, publisher)
}

func (c *CompositionRoot) CreateHTTPServer() *httpin.Server {
	handlers := httpin.Handlers{
		RegisterUser:          c.CreateRegisterUserCommandHandler(),
		CreateOrder:           c.CreateCreateOrderCommandHandler(),
		TransitionOrder:       c.CreateTransitionOrderCommandHandler(),
		SubmitRating:          c.CreateSubmitRatingCommandHandler(),
		UploadDocument:        c.CreateUploadDocumentCommandHandler(),
		ReviewDocument:        c.CreateReviewDocumentCommandHandler(),
		SetDriverAvailability: c.CreateSetDriverAvailabilityCommandHandler(),

		GetOrder:               queries.NewGetOrderQueryHandler(c.gormDB),
		ListOrdersForUser:      queries.NewListOrdersForUserQueryHandler(c.gormDB),
		ListAvailableOrders:    queries.NewListAvailableOrdersQueryHandler(c.gormDB),
		GetDocument:            queries.NewGetDocumentQueryHandler(c.gormDB),
		ListDriverDocuments:    queries.NewListDriverDocumentsQueryHandler(c.gormDB),
		ListDocumentsForReview: queries.NewListDocumentsForReviewQueryHandler(c.gormDB),
	}

	return httpin.NewServer(handlers, httpin.Options{
		JWTSecret:      []byte(c.cfg.JWTSecret),
		RequestTimeout: c.cfg.RequestTimeout,
		MaxUploadSize:  c.cfg.MaxUploadSize,
	}, c.logger)
}

// CreateJobManager wires the background jobs. The outbox relay only runs when a
// publisher is configured.
func (c *CompositionRoot) CreateJobManager(publisher ports.EventPublisher) *jobs.JobManager {
	if publisher == nil {
		return jobs.NewJobManager()
	}
	relay := jobs.NewOutboxRelayJob(
		c.CreateRelayOutboxCommandHandler(publisher),
		c.cfg.OutboxRelaySchedule,
		c.cfg.OutboxBatchSize,
		c.logger,
	)
	return jobs.NewJobManager(relay)
}

func (c *CompositionRoot) accountUoWFactory() commands.AccountUoWFactory {
	return FuncAccountUoWFactory(func() commands.AccountUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uowFactoryAll() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

type FuncAccountUoWFactory func() commands.AccountUoW

func (f FuncAccountUoWFactory) Create() commands.AccountUoW {
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

type FuncOutboxUoWFactory func() commands.OutboxUoW

func (f FuncOutboxUoWFactory) Create() commands.OutboxUoW {
	return f()
}
