package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/nedpals/supabase-go"
	"go.uber.org/zap"

	"github.com/noah-isme/bizops-api/internal/models"
	"github.com/noah-isme/bizops-api/internal/repository"
	"github.com/noah-isme/bizops-api/internal/service"
	"github.com/noah-isme/bizops-api/pkg/cache"
	"github.com/noah-isme/bizops-api/pkg/config"
	"github.com/noah-isme/bizops-api/pkg/database"
	"github.com/noah-isme/bizops-api/pkg/logger"
)

type archiver interface {
	Archive(ctx context.Context, actor service.Actor, cmd service.ArchiveCommand) (*service.ArchiveResult, error)
	Unarchive(ctx context.Context, actor service.Actor, cmd service.ArchiveCommand) (*service.ArchiveResult, error)
}

type openFunc func(ctx context.Context, transport string) (archiver, func(), error)

type app struct {
	transport    string
	open         openFunc
	openCounters func(ctx context.Context) (views, predicate relationCounter, closeFn func(), err error)
}

func (a *app) withArchiver(ctx context.Context, fn func(archiver) error) error {
	svc, closeFn, err := a.open(ctx, a.transport)
	if err != nil {
		return err
	}
	defer closeFn()
	return fn(svc)
}

// openArchiveService wires the same dispatcher the API uses. Audit rows are written when a
// database connection is available and Redis listings are invalidated when Redis is the cache.
func openArchiveService(ctx context.Context, transport string) (archiver, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if transport != "" {
		cfg.Archive.Transport = strings.ToLower(transport)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logr, err := logger.New(cfg.Env, config.LogConfig{Level: "warn", Format: "console"})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
		_ = logr.Sync()
	}

	var (
		db     *sqlx.DB
		client *supabase.Client
	)
	switch cfg.Archive.Transport {
	case config.TransportPostgres:
		if db, err = database.NewPostgres(ctx, cfg.Database); err != nil {
			closeAll()
			return nil, nil, fmt.Errorf("connect database: %w", err)
		}
		closers = append(closers, func() { _ = db.Close() })
	case config.TransportSupabase:
		if client, err = database.NewSupabase(cfg.Supabase); err != nil {
			closeAll()
			return nil, nil, err
		}
	}

	caller, err := repository.NewProcedureCaller(cfg.Archive.Transport, db, client)
	if err != nil {
		closeAll()
		return nil, nil, err
	}

	var audit *repository.AuditRepository
	if db != nil {
		audit = repository.NewAuditRepository(db)
	}

	var invalidator *service.CacheService
	if cfg.Cache.Driver == config.CacheDriverRedis {
		redisClient, err := cache.NewRedis(ctx, cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, listings will refresh on expiry", zap.Error(err))
		} else {
			repo := repository.NewCacheRepository(redisClient, logr)
			closers = append(closers, func() { _ = repo.Close() })
			invalidator = service.NewCacheService(repo, nil, cfg.Cache.ListingTTL, logr, true)
		}
	}

	svc := service.NewArchiveService(
		repository.NewArchiveRepository(caller),
		optionalAudit(audit),
		optionalInvalidator(invalidator),
		nil,
		nil,
		validator.New(),
		logr,
	)
	return svc, closeAll, nil
}

// Typed nil pointers must not leak into the service's optional interfaces.
func optionalAudit(r *repository.AuditRepository) interface {
	CreateAuditLog(context.Context, *models.AuditLog) error
} {
	if r == nil {
		return nil
	}
	return r
}

func optionalInvalidator(s *service.CacheService) interface {
	Invalidate(context.Context, string) error
} {
	if s == nil {
		return nil
	}
	return s
}

func operatorActor() service.Actor {
	agent := "archivectl/" + version
	if host := hostname(); host != "" {
		agent += " (" + host + ")"
	}
	return service.Actor{UserAgent: agent}
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return ""
	}
	return name
}
