package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mmdatafocus/portal_backend/app"
	"github.com/mmdatafocus/portal_backend/config"
	"github.com/mmdatafocus/portal_backend/handlers"
	"github.com/mmdatafocus/portal_backend/middlewares"
	"github.com/mmdatafocus/portal_backend/models"
	"github.com/sirupsen/logrus"
)

const defaultPort = "8080"

// swapHandler serves the bootstrap router until the application router is
// installed. gin routers are not safe to extend while serving.
type swapHandler struct {
	current atomic.Value
}

func (s *swapHandler) Store(h http.Handler) { s.current.Store(&h) }

func (s *swapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h := s.current.Load().(*http.Handler)
	(*h).ServeHTTP(w, r)
}

// bootstrapRouter answers the health probe and 503 for everything else.
func bootstrapRouter() *gin.Engine {
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	r.Use(middlewares.ReadinessGate(func() bool { return false }))
	r.Use(gin.Recovery())
	return r
}

// applicationRouter builds the full HTTP surface on top of a.
func applicationRouter(a *app.App, logger *logrus.Logger) *gin.Engine {
	r := gin.New()
	r.Use(middlewares.CorrelationMiddleware())
	r.Use(middlewares.ReadinessGate(func() bool {
		return config.GetDB() != nil && config.GetRedisDB() != nil
	}))
	r.Use(middlewares.CORS())

	// Optional rate limiting (recommended for production).
	// Env:
	// - RATE_LIMIT_ENABLED=true
	// - RATE_LIMIT_WINDOW_SECONDS=60
	// - RATE_LIMIT_MAX_REQUESTS=600
	if config.BoolFromEnv("RATE_LIMIT_ENABLED") {
		limit := int64(config.IntFromEnv("RATE_LIMIT_MAX_REQUESTS", 600))
		window := time.Duration(config.IntFromEnv("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second
		r.Use(middlewares.NewRateLimiter(config.GetRedisDB(), limit, window).RateLimitMiddleware)
	}

	r.Use(middlewares.SessionMiddleware(a.Auth))
	r.Use(middlewares.CustomErrorLogger(logger))
	r.Use(gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) { c.Status(http.StatusNoContent) })
	handlers.RegisterRoutes(r, a.Handlers)
	r.NoRoute(handlers.NotFound)
	return r
}

func main() {
	port := os.Getenv("API_PORT")
	if port == "" {
		// Cloud Run standard env var.
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = defaultPort
	}

	logger := config.GetLogger()
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// Cloud Run sends SIGTERM on revision shutdown; handle it for graceful drain.
	sigCtx, stopSignals := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// Start listening immediately (Cloud Run startup probe is TCP based).
	// Until DB/Redis are ready every route but /healthz answers 503.
	handler := &swapHandler{}
	handler.Store(bootstrapRouter())
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	serverErrCh := make(chan error, 1)
	go func() {
		// ListenAndServe returns http.ErrServerClosed on graceful shutdown.
		serverErrCh <- srv.ListenAndServe()
	}()

	// Connect dependencies after the port is open.
	config.ConnectDatabaseWithRetry()
	config.ConnectRedisWithRetry()

	db := config.GetDB()
	sqlDB, _ := db.DB()
	defer func() {
		if sqlDB != nil {
			_ = sqlDB.Close()
		}
	}()
	// AutoMigrate can run DDL that blocks tables; allow running it as a
	// separate job (portalctl migrate) instead.
	if !config.BoolFromEnv("SKIP_MIGRATIONS") {
		if err := models.MigrateTable(db); err != nil {
			config.LogError(logger, "main", "main", "migrations", nil, err)
		}
	} else {
		logger.WithFields(logrus.Fields{"field": "migrations"}).Warn("SKIP_MIGRATIONS=true; skipping AutoMigrate on startup")
	}

	a := app.New(sigCtx, db, logger)
	defer a.Close()
	handler.Store(applicationRouter(a, logger))

	logger.WithFields(logrus.Fields{
		"info": "Connection Established",
		"port": port,
	}).Info("portal backend ready")
	log.Println("Server started successfully")

	// Block until shutdown or server error.
	select {
	case <-sigCtx.Done():
	case err := <-serverErrCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithFields(logrus.Fields{"field": "http"}).Error("server stopped unexpectedly: " + err.Error())
		}
	}

	// Drain HTTP requests.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithFields(logrus.Fields{"field": "http"}).Error("graceful shutdown failed: " + err.Error())
	}

	// Close Redis (best-effort).
	if rdb := config.GetRedisDB(); rdb != nil {
		_ = rdb.Close()
	}
}
