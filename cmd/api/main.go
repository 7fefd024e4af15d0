package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/trucklog/joblog-api/docs"
	"github.com/trucklog/joblog-api/internal/api"
	"github.com/trucklog/joblog-api/internal/core/service"
	mongodb "github.com/trucklog/joblog-api/internal/infrastructure/db/mongo"
	redisdb "github.com/trucklog/joblog-api/internal/infrastructure/db/redis"
	"github.com/trucklog/joblog-api/internal/infrastructure/queue"
	"github.com/trucklog/joblog-api/internal/pkg/config"
	"github.com/trucklog/joblog-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title           JobLog API
// @version         1.0
// @description     Job logging backend for truck drivers: auth, job lifecycle, statistics.
// @BasePath        /
//
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("application error")
	}
}

func run(cfg *config.Config, log zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Storage ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return err
	}
	defer func() {
		disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(disconnectCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	jobRepo := mongodb.NewJobRepository(db)
	auditRepo := mongodb.NewAuditRepository(db)

	if err := userRepo.EnsureIndexes(ctx); err != nil {
		return err
	}
	if err := jobRepo.EnsureIndexes(ctx); err != nil {
		return err
	}

	// --- Audit pipeline ---
	auditService := service.NewAuditService(auditRepo, redisdb.NewDedupChecker(rdb), log)
	dispatcher := queue.NewDispatcher(cfg.AuditWorkers, auditService, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	sessionTTL := time.Duration(cfg.SessionTTLHours) * time.Hour
	sessionService := service.NewSessionService(redisdb.NewSessionStore(rdb), sessionTTL, log)
	authService := service.NewAuthService(userRepo, sessionService, cfg.JWTSecret, sessionTTL, cfg.AdminPassword, log)
	userService := service.NewUserService(userRepo, log)
	jobService := service.NewJobService(jobRepo, dispatcher, log)
	statsService := service.NewStatsService(jobRepo, userRepo)

	created, err := authService.Bootstrap(ctx)
	if err != nil {
		return err
	}
	if created {
		log.Warn().Msg("default admin created; change its password before exposing the service")
	}

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		DB:        db,
		Redis:     rdb,
		Auth:      authService,
		Sessions:  sessionService,
		Users:     userService,
		Jobs:      jobService,
		Stats:     statsService,
		JWTSecret: cfg.JWTSecret,
		Logger:    log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
