package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/marketsquare/marketplace-api/internal/api/handler"
	"github.com/marketsquare/marketplace-api/internal/api/middleware"
	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
	"github.com/marketsquare/marketplace-api/internal/core/service"
)

// Dependencies carries everything the router needs. Repositories, cache, and
// audit sink are injected so storage backends can be swapped (and tests can
// run against the in-memory adapters). Mongo and Redis handles are optional
// and only consulted by the readiness probe.
type Dependencies struct {
	Users    ports.UserRepository
	Products ports.ProductRepository
	Cache    ports.CatalogCache
	Audit    ports.AuditSink
	Hasher   ports.PasswordHasher
	Codec    ports.TokenCodec

	Mongo *mongo.Database
	Redis *redis.Client

	Logger zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())

	// Request metrics get their own registry so building a second router
	// (tests do) never double-registers collectors; /metrics serves both this
	// registry and the default one holding the custom counters.
	registry := prometheus.NewRegistry()
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "marketplace",
		Registerer: registry,
	}))

	// --- Services and handlers ---
	authService := service.NewAuthService(deps.Users, deps.Hasher, deps.Codec, deps.Logger)
	catalogService := service.NewCatalogService(deps.Products, deps.Cache, deps.Audit, deps.Logger)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(catalogService)

	authenticated := middleware.Auth(deps.Codec)
	sellerOnly := middleware.RequireRole(domain.RoleSeller)

	// --- Auth routes (no token required) ---
	apiGroup := e.Group("/api")
	apiGroup.POST("/auth/register", authHandler.Register)
	apiGroup.POST("/auth/login", authHandler.Login)

	// --- Catalog routes ---
	apiGroup.GET("/products", productHandler.List)

	mutations := apiGroup.Group("/products", authenticated, sellerOnly)
	mutations.POST("", productHandler.Create)
	mutations.PUT("/:id", productHandler.Update)
	mutations.DELETE("/:id", productHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(
		prometheus.Gatherers{registry, prometheus.DefaultGatherer},
		promhttp.HandlerOpts{},
	)))

	return e
}
