package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/nedpals/supabase-go"
	"go.uber.org/zap"

	_ "github.com/noah-isme/bizops-api/api/swagger"
	"github.com/noah-isme/bizops-api/internal/handler"
	"github.com/noah-isme/bizops-api/internal/middleware"
	"github.com/noah-isme/bizops-api/internal/repository"
	"github.com/noah-isme/bizops-api/internal/service"
	"github.com/noah-isme/bizops-api/pkg/cache"
	"github.com/noah-isme/bizops-api/pkg/config"
	"github.com/noah-isme/bizops-api/pkg/database"
	"github.com/noah-isme/bizops-api/pkg/jobs"
	"github.com/noah-isme/bizops-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/bizops-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/bizops-api/pkg/middleware/requestid"
)

// @title BizOps API
// @version 1.0.0
// @description Back office API for submissions, orders and proofs with archive support
// @BasePath /api/v1
// @schemes http https

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logr, err := logger.New(cfg.Env, cfg.Log)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logr); err != nil {
		logr.Fatal("server stopped", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, logr *zap.Logger) error {
	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	var supabaseClient *supabase.Client
	if cfg.Archive.Transport == config.TransportSupabase {
		if supabaseClient, err = database.NewSupabase(cfg.Supabase); err != nil {
			return fmt.Errorf("create supabase client: %w", err)
		}
	}

	metricsSvc := service.NewMetricsService()
	caller, err := repository.NewProcedureCaller(cfg.Archive.Transport, db, supabaseClient)
	if err != nil {
		return err
	}
	caller = repository.WithObserver(caller, metricsSvc)

	cacheRepo, closeCache, err := newCacheRepository(ctx, cfg, logr)
	if err != nil {
		return err
	}
	defer closeCache()
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Cache.ListingTTL, logr, cacheRepo != nil)

	queue := jobs.NewQueue("cache-invalidation", service.CacheInvalidationHandler(cacheSvc), jobs.QueueConfig{
		Workers:    cfg.Jobs.Workers,
		MaxRetries: cfg.Jobs.MaxRetries,
		RetryDelay: cfg.Jobs.RetryDelay,
		Logger:     logr,
	})
	queue.Start(ctx)
	defer queue.Stop()

	listingRepo := repository.NewListingRepository(db, cfg.Archive.FilteredViews)
	archiveSvc := service.NewArchiveService(
		repository.NewArchiveRepository(caller),
		repository.NewAuditRepository(db),
		cacheSvc,
		queue,
		metricsSvc,
		validator.New(),
		logr,
	)
	listingSvc := service.NewListingService(listingRepo, cacheSvc, cfg.Cache.ListingTTL, logr)
	proofSvc := service.NewProofService(repository.NewProofRepository(caller), repository.NewOrderHistoryRepository(db))
	exportSvc := service.NewExportService(listingRepo, nil, nil, service.DefaultExportRowLimit, logr)
	authSvc := service.NewAuthService(service.AuthConfig{
		JWTSecret: cfg.Supabase.JWTSecret,
		Audience:  cfg.Supabase.JWTAudience,
	}, logr)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	registerRoutes(r, cfg.APIPrefix, cfg.Env != config.EnvProduction, authSvc, routeHandlers{
		metrics: handler.NewMetricsHandler(metricsSvc, db),
		listing: handler.NewListingHandler(listingSvc),
		archive: handler.NewArchiveHandler(archiveSvc),
		proof:   handler.NewProofHandler(proofSvc),
		export:  handler.NewExportHandler(exportSvc),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.String("transport", cfg.Archive.Transport),
			zap.String("cache", cfg.Cache.Driver),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func newCacheRepository(ctx context.Context, cfg *config.Config, logr *zap.Logger) (service.CacheRepository, func(), error) {
	switch cfg.Cache.Driver {
	case config.CacheDriverRedis:
		client, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		repo := repository.NewCacheRepository(client, logr)
		return repo, func() { _ = repo.Close() }, nil
	case config.CacheDriverMemory:
		return repository.NewMemoryCacheRepository(cache.NewMemory(cfg.Cache.ListingTTL)), func() {}, nil
	default:
		return nil, func() {}, nil
	}
}
