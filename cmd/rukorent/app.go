package main

import (
	"log/slog"

	"rukorent/internal/app/commands"
	bookingapp "rukorent/internal/app/handlers/booking"
	catalogapp "rukorent/internal/app/handlers/catalog"
	paymentapp "rukorent/internal/app/handlers/payment"
	"rukorent/internal/app/middleware"
	"rukorent/internal/app/outbox"
	"rukorent/internal/app/policies"
	"rukorent/internal/app/queries"
	"rukorent/internal/domain/checkout"
	"rukorent/internal/infra/config"
	ginserver "rukorent/internal/infra/http/gin"
)

type dependencies struct {
	Catalog   policies.RukoCatalog
	Bookings  policies.BookingAPI
	Checkouts checkout.Store
	Outbox    outbox.Outbox
	Resolver  ginserver.SessionResolver
}

func buildHandlers(cfg config.Config, logger *slog.Logger, deps dependencies) ginserver.Handlers {
	encoder := outbox.JSONEventEncoder{}

	commandBus := commands.NewInMemoryBus()
	commands.RegisterHandler(commandBus, bookingapp.SubmitBookingCommand{}.Key(), &bookingapp.SubmitBookingHandler{
		Catalog:   deps.Catalog,
		Bookings:  deps.Bookings,
		Checkouts: deps.Checkouts,
		Outbox:    deps.Outbox,
		Encoder:   encoder,
		Logger:    logger,
	})
	commands.RegisterHandler(commandBus, paymentapp.ConfirmPaymentCommand{}.Key(), &paymentapp.ConfirmPaymentHandler{
		Checkouts: deps.Checkouts,
		Outbox:    deps.Outbox,
		Encoder:   encoder,
		Logger:    logger,
	})

	queryBus := queries.NewInMemoryBus()
	queries.RegisterHandler(queryBus, catalogapp.BrowseCatalogQuery{}.Key(), &catalogapp.BrowseCatalogHandler{
		Catalog:  deps.Catalog,
		PageSize: cfg.CatalogPageSize,
	})
	queries.RegisterHandler(queryBus, catalogapp.GetRukoQuery{}.Key(), &catalogapp.GetRukoHandler{Catalog: deps.Catalog})
	queries.RegisterHandler(queryBus, bookingapp.QuoteBookingQuery{}.Key(), &bookingapp.QuoteBookingHandler{Catalog: deps.Catalog})
	queries.RegisterHandler(queryBus, paymentapp.GetPaymentQuoteQuery{}.Key(), &paymentapp.GetPaymentQuoteHandler{Checkouts: deps.Checkouts})

	commandBusWithMiddleware := middleware.ChainCommands(
		commandBus,
		middleware.Logging(logger),
		middleware.Authentication(),
		middleware.SingleInFlight(),
	)
	queryBusWithMiddleware := middleware.ChainQueries(
		queryBus,
		middleware.QueryLogging(logger),
		middleware.QueryAuthentication(),
	)

	return ginserver.Handlers{
		Booking: ginserver.BookingHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
			Logger:   logger,
		},
		Catalog: ginserver.CatalogHandler{
			Queries: queryBusWithMiddleware,
			Logger:  logger,
		},
		Payment: ginserver.PaymentHandler{
			Commands: commandBusWithMiddleware,
			Queries:  queryBusWithMiddleware,
			Logger:   logger,
		},
		AuthMiddleware: ginserver.AuthMiddleware{Resolver: deps.Resolver, Logger: logger}.Handle,
		RateLimit:      ginserver.NewRateLimiter(cfg.RateLimitRPM, cfg.RateLimitBurst, logger).Handle,
	}
}
