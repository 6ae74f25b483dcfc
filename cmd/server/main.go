package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"

	membershipapp "github.com/vetcare/backend/internal/application/membership"
	reportapp "github.com/vetcare/backend/internal/application/report"
	staffingapp "github.com/vetcare/backend/internal/application/staffing"
	"github.com/vetcare/backend/internal/infrastructure/cache"
	"github.com/vetcare/backend/internal/infrastructure/config"
	"github.com/vetcare/backend/internal/infrastructure/logger"
	"github.com/vetcare/backend/internal/infrastructure/persistence"
	"github.com/vetcare/backend/internal/infrastructure/telemetry"
	"github.com/vetcare/backend/internal/interfaces/http/handler"
	"github.com/vetcare/backend/internal/interfaces/http/middleware"
	"github.com/vetcare/backend/internal/interfaces/http/router"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting VetCare Analytics Backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
	)

	// Tracing
	tracerProvider, err := telemetry.NewTracerProvider(context.Background(), telemetry.Config{
		Enabled:           cfg.Telemetry.Enabled,
		CollectorEndpoint: cfg.Telemetry.CollectorEndpoint,
		SamplingRatio:     cfg.Telemetry.SamplingRatio,
		ServiceName:       cfg.Telemetry.ServiceName,
		Insecure:          cfg.Telemetry.Insecure,
	}, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}

	// Database with zap-backed GORM logger
	gormLogLevel := logger.MapGormLogLevel(cfg.Log.Level)
	gormLog := logger.NewGormLogger(log, gormLogLevel)

	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected successfully")

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := db.DB.Use(otelgorm.NewPlugin(otelgorm.WithDBName(cfg.Database.DBName))); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	// Repositories
	branchRepo := persistence.NewGormBranchRepository(db.DB)
	practitionerRepo := persistence.NewGormPractitionerRepository(db.DB)
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	tierRepo := persistence.NewGormTierRepository(db.DB)
	ledgerReader := persistence.NewGormLedgerReader(db.DB)

	// Report cache is optional; the service recomputes when the cache is
	// absent or failing
	var resultCache reportapp.ResultCache
	if cfg.Redis.Enabled {
		redisCache, err := cache.NewRedisReportCache(cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("Redis unavailable, report caching disabled", zap.Error(err))
		} else {
			resultCache = redisCache
			defer func() {
				if err := redisCache.Close(); err != nil {
					log.Error("Error closing redis client", zap.Error(err))
				}
			}()
			log.Info("Report cache connected", zap.String("addr", cfg.Redis.Addr()))
		}
	}

	// Application services
	reportService := reportapp.NewReportService(ledgerReader, branchRepo, tierRepo,
		resultCache, cfg.Report.CacheTTL, log)
	policyService := membershipapp.NewPolicyService(tierRepo, customerRepo, log)
	transferService := staffingapp.NewTransferService(practitionerRepo, branchRepo, ledgerReader, log)

	// Handlers
	reportHandler := handler.NewReportHandler(reportService)
	membershipHandler := handler.NewMembershipHandler(policyService)
	transferHandler := handler.NewTransferHandler(transferService)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	middleware.SetupValidator()

	engine := gin.New()

	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))

	// Tracing runs before the request logger so log lines carry trace ids.
	if cfg.Telemetry.Enabled {
		engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
			ServiceName: cfg.Telemetry.ServiceName,
			Enabled:     true,
		}))
		engine.Use(middleware.SpanErrorMarker())
	}

	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.CORS())
	engine.Use(middleware.Deadline(cfg.Report.RequestTimeout))

	engine.GET("/healthz", healthHandler(db))

	r := router.NewRouter(engine, router.WithAPIVersion("v1"))
	r.Register(reportHandler).
		Register(membershipHandler).
		Register(transferHandler)
	r.Setup()

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	if err := tracerProvider.Shutdown(ctx); err != nil {
		log.Error("Error shutting down tracer provider", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// healthHandler reports liveness and database reachability
func healthHandler(db *persistence.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		reqLog := logger.GetGinLogger(c)
		if err := db.Ping(); err != nil {
			reqLog.Warn("Health check failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"time":     time.Now().Format(time.RFC3339),
				"database": "error",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "ok",
		})
	}
}
