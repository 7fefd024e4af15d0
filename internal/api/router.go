package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/trucklog/joblog-api/internal/api/handler"
	"github.com/trucklog/joblog-api/internal/api/middleware"
	"github.com/trucklog/joblog-api/internal/core/domain"
	"github.com/trucklog/joblog-api/internal/core/ports"
)

// Deps carries everything the router needs; services are constructed by the
// composition root.
type Deps struct {
	DB        *mongo.Database
	Redis     *redis.Client
	Auth      ports.AuthService
	Sessions  ports.SessionService
	Users     ports.UserService
	Jobs      ports.JobService
	Stats     ports.StatsService
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("joblog"))

	authMiddleware := middleware.Auth(d.JWTSecret)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth, d.Sessions)
	userHandler := handler.NewUserHandler(d.Users)
	jobHandler := handler.NewJobHandler(d.Jobs, d.Logger)
	statsHandler := handler.NewStatsHandler(d.Stats)

	// --- Auth routes ---
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/logout", authHandler.Logout, authMiddleware)
	e.GET("/auth/session", authHandler.Session, authMiddleware)

	// --- Job routes ---
	jobs := e.Group("/v1/jobs", authMiddleware)
	jobs.POST("", jobHandler.Create)
	jobs.GET("", jobHandler.List)
	jobs.PATCH("/:id/status", jobHandler.UpdateStatus)
	jobs.PUT("/:id", jobHandler.Update)
	jobs.POST("/cleanup", jobHandler.Cleanup,
		middleware.RBAC(domain.RoleAdmin, domain.RoleManager))

	// --- User registry (admin only; managers may list) ---
	users := e.Group("/v1/users", authMiddleware)
	users.POST("", userHandler.Create, middleware.RBAC(domain.RoleAdmin))
	users.GET("", userHandler.List, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))
	users.PUT("/:id", userHandler.Update, middleware.RBAC(domain.RoleAdmin))
	users.DELETE("/:id", userHandler.Delete, middleware.RBAC(domain.RoleAdmin))

	// --- Stats ---
	e.GET("/v1/stats", statsHandler.Overview,
		authMiddleware, middleware.RBAC(domain.RoleAdmin, domain.RoleManager))

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.DB, d.Redis)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
