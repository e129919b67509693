package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/chirper/chirper-api/docs"
	"github.com/chirper/chirper-api/internal/api/handler"
	"github.com/chirper/chirper-api/internal/api/middleware"
	"github.com/chirper/chirper-api/internal/core/ports"
	"github.com/chirper/chirper-api/internal/pkg/metrics"
)

// Dependencies are the services the router exposes.
type Dependencies struct {
	Logger zerolog.Logger
	Users  ports.UserService
	Tweets ports.TweetService
	// Readiness lists the backends pinged by /health/ready, keyed by name.
	Readiness map[string]ports.Pinger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// HTTP metrics get their own registry so several routers can coexist in
	// one process; /metrics gathers it together with the default registry.
	reg := prometheus.NewRegistry()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(middleware.RequestLogger(deps.Logger))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  metrics.Namespace,
		Subsystem:  "http",
		Registerer: reg,
	}))

	// --- Users ---
	users := handler.NewUserHandler(deps.Users)
	e.POST("/signup", users.Signup)
	e.POST("/login", users.Login)
	e.GET("/users", users.List)
	e.GET("/users/:user_id", users.Get)
	e.DELETE("/users/:user_id/delete", users.Delete)
	e.PUT("/users/:user_id/update", users.Update)

	// --- Tweets ---
	tweets := handler.NewTweetHandler(deps.Tweets)
	e.GET("/", tweets.List)
	e.POST("/post", tweets.Post)
	e.GET("/tweets/:tweet_id", tweets.Get)
	e.DELETE("/tweets/:tweet_id/delete", tweets.Delete)
	e.PUT("/tweets/:tweet_id/update", tweets.Update)

	// --- Operational ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)            // liveness: is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness: are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
