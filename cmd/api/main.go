package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/contrib/otelfiber"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"recruitapi/docs"
	"recruitapi/internal/config"
	"recruitapi/internal/database"
	"recruitapi/internal/database/migration"
	"recruitapi/internal/extract"
	handlers "recruitapi/internal/http/handler"
	"recruitapi/internal/http/middleware"
	"recruitapi/internal/logger"
	"recruitapi/internal/notify"
	"recruitapi/internal/otel"
	"recruitapi/internal/redact"
	"recruitapi/internal/repository/postgres"
	"recruitapi/internal/scoring"
	"recruitapi/internal/service"
	"recruitapi/internal/storage"
)

// @title Recruitment Intake API
// @version 1.0
// @BasePath /
func main() {
	// Load configuration from environment variables (.env auto-loaded if present)
	cfg := config.Load()

	zlog, err := logger.New(cfg.LogJSON, cfg.Debug)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer zlog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := otel.Init(ctx, zlog)
	if err != nil {
		zlog.Fatal("failed to initialize tracing", zap.Error(err))
	}

	// Initialize PostgreSQL connection (with pooling via database/sql)
	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		zlog.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	if err := migration.EnsureMigrated(ctx, db, zlog); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	// Initialize the S3-compatible resume archive (MinIO-supported)
	objStore, err := storage.NewMinIO(cfg.MinIO)
	if err != nil {
		zlog.Fatal("failed to initialize object storage", zap.Error(err))
	}

	jobRepo := postgres.NewJobPostgres(db)
	candidateRepo := postgres.NewCandidatePostgres(db)

	var redactor redact.Redactor
	if cfg.Redaction.URL != "" {
		redactor = redact.NewHTTP(cfg.Redaction, zlog)
	} else {
		redactor = redact.NewPassthrough(zlog)
	}

	scorer := scoring.NewHTTP(cfg.Scoring, zlog)

	dispatcher := notify.NewDispatcher(notify.NewBrevo(cfg.Email, zlog), cfg.Pipeline.NotifyQueueCap, zlog)
	defer dispatcher.Close()

	svc := service.NewApplication(
		jobRepo, candidateRepo, objStore,
		extract.New(), redactor, scorer, dispatcher,
		cfg.Pipeline, zlog,
	)

	app := fiber.New(fiber.Config{
		ErrorHandler: handlers.ErrorHandler(),
		BodyLimit:    int(cfg.Pipeline.MaxUploadBytes) + 1<<20,
	})

	// Register global middleware
	app.Use(middleware.RequestID())
	app.Use(middleware.Logger(zlog))
	app.Use(otelfiber.Middleware())

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	promMiddleware, err := middleware.NewPrometheusMiddleware(reg)
	if err != nil {
		zlog.Fatal("failed to register metrics", zap.Error(err))
	}
	app.Use(promMiddleware.Handler())
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// Register HTTP routes with injected service
	handlers.RegisterRoutes(app, db, svc, cfg.Pipeline.MaxUploadBytes)

	// Swagger UI with dynamic host and scheme
	app.Get("/swagger/*", func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.Split(proto, ",")[0]
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	})

	go func() {
		<-ctx.Done()
		zlog.Info("shutting down")
		if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
			zlog.Error("server shutdown failed", zap.Error(err))
		}
	}()

	addr := ":" + cfg.Port
	if err := app.Listen(addr); err != nil {
		zlog.Error("server stopped", zap.Error(err))
	}

	// Drain the notification queue, then flush traces.
	dispatcher.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(shutdownCtx); err != nil {
		zlog.Error("tracer shutdown failed", zap.Error(err))
	}
}
