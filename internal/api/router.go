package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/orius/cartorio-api/docs"
	"github.com/orius/cartorio-api/internal/api/handler"
	"github.com/orius/cartorio-api/internal/api/middleware"
	"github.com/orius/cartorio-api/internal/core/ports"
	"github.com/orius/cartorio-api/internal/infrastructure/http/handlers"
)

const defaultPrefix = "/api/v1"

// Deps holds everything the router needs. Registerer and Gatherer default to
// the global Prometheus registry.
type Deps struct {
	Log       zerolog.Logger
	APIPrefix string

	Accounts  ports.AccountService
	CashItems ports.CashItemService
	Identity  ports.IdentityResolver

	// Checks are probed by /health/ready, keyed by dependency name.
	Checks map[string]handlers.Check

	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	if d.APIPrefix == "" {
		d.APIPrefix = defaultPrefix
	}
	if d.Registerer == nil {
		d.Registerer = prometheus.DefaultRegisterer
	}
	if d.Gatherer == nil {
		d.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(d.Log))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "cartorio",
		Registerer: d.Registerer,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Operational endpoints (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	e.GET("/health/ready", handlers.NewHealthDependenciesHandler(d.Checks).Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: d.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	accounts := handler.NewAccountHandler(d.Accounts)
	cashItems := handler.NewCashItemHandler(d.CashItems)
	auth := middleware.Auth(d.Identity)

	v1 := e.Group(d.APIPrefix)

	// --- Public account routes ---
	v1.POST("/users/signup", accounts.Signup)
	v1.POST("/users/login", accounts.Login)

	// --- Protected routes ---
	users := v1.Group("/users", auth)
	users.GET("/me", accounts.Me)
	users.GET("", accounts.List)
	users.GET("/:id", accounts.Get)
	users.PUT("/:id", accounts.Update)
	users.DELETE("/:id", accounts.Delete)

	items := v1.Group("/cash_items", auth)
	items.GET("", cashItems.List)
	items.GET("/:id", cashItems.Get)

	return e
}
