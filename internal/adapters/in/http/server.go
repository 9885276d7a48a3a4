// Package http exposes the marketplace over a JSON API built on echo.
//
// Every route under /api/v1 except registration requires a bearer token (see
// Authenticate). Handlers translate requests into commands and queries; failures are
// rendered by ErrorHandler according to errs.KindOf.
package http

import (
	"net/http"
	"time"

	"parcel/internal/core/application/usecases/commands"
	"parcel/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// DefaultMaxUploadSize limits document upload bodies.
const DefaultMaxUploadSize = "10M"

// Handlers are the use cases the server dispatches to.
type Handlers struct {
	RegisterUser          commands.RegisterUserCommandHandler
	CreateOrder           commands.CreateOrderCommandHandler
	TransitionOrder       commands.TransitionOrderCommandHandler
	SubmitRating          commands.SubmitRatingCommandHandler
	UploadDocument        commands.UploadDocumentCommandHandler
	ReviewDocument        commands.ReviewDocumentCommandHandler
	SetDriverAvailability commands.SetDriverAvailabilityCommandHandler

	GetOrder               queries.GetOrderQueryHandler
	ListOrdersForUser      queries.ListOrdersForUserQueryHandler
	ListAvailableOrders    queries.ListAvailableOrdersQueryHandler
	GetDocument            queries.GetDocumentQueryHandler
	ListDriverDocuments    queries.ListDriverDocumentsQueryHandler
	ListDocumentsForReview queries.ListDocumentsForReviewQueryHandler
}

type Options struct {
	JWTSecret []byte
	// RequestTimeout bounds every request's context. Zero disables it.
	RequestTimeout time.Duration
	// MaxUploadSize uses echo's BodyLimit syntax, e.g. "10M".
	MaxUploadSize string
}

// Server coordinates between HTTP handlers and application use cases.
type Server struct {
	handlers Handlers
	opts     Options
	logger   *zap.Logger
}

func NewServer(handlers Handlers, opts Options, logger *zap.Logger) *Server {
	if opts.MaxUploadSize == "" {
		opts.MaxUploadSize = DefaultMaxUploadSize
	}
	return &Server{
		handlers: handlers,
		opts:     opts,
		logger:   logger.With(zap.String("component", "http")),
	}
}

// Echo builds an echo instance with the middleware chain and every route registered.
func (s *Server) Echo() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = ErrorHandler(s.logger)

	e.Use(middleware.RequestID())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			s.logger.Info("request",
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("requestId", v.RequestID),
			)
			return nil
		},
	}))
	if s.opts.RequestTimeout > 0 {
		e.Use(middleware.ContextTimeout(s.opts.RequestTimeout))
	}

	e.GET("/health", s.Health)

	api := e.Group("/api/v1")
	api.POST("/users", s.RegisterUser)

	authed := api.Group("", Authenticate(s.opts.JWTSecret))

	authed.POST("/orders", s.CreateOrder)
	authed.GET("/orders", s.ListOrders)
	authed.GET("/orders/available", s.ListAvailableOrders)
	authed.GET("/orders/:id", s.GetOrder)
	authed.GET("/orders/:id/qr", s.GetOrderQRCode)
	authed.POST("/orders/:id/rating", s.SubmitRating)
	authed.POST("/orders/:id/:action", s.TransitionOrder)

	authed.PUT("/drivers/me/availability", s.SetAvailability)
	authed.GET("/drivers/me/documents", s.ListMyDocuments)
	authed.POST("/drivers/me/documents", s.UploadDocument, middleware.BodyLimit(s.opts.MaxUploadSize))
	authed.GET("/documents/:id", s.GetDocument)

	authed.GET("/admin/documents", s.ListDocumentsForReview)
	authed.POST("/admin/documents/:id/:action", s.ReviewDocument)

	return e
}

// Health handles GET /health.
func (s *Server) Health(c echo.Context) error {
	return c.String(http.StatusOK, "Healthy")
}
