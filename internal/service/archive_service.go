package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/bizops-api/internal/models"
	appErrors "github.com/noah-isme/bizops-api/pkg/errors"
	"github.com/noah-isme/bizops-api/pkg/jobs"
)

// JobTypeCacheInvalidate is the job type retrying a failed listing invalidation.
const JobTypeCacheInvalidate = "cache.invalidate"

type archiveDispatcher interface {
	Archive(ctx context.Context, kind models.EntityKind, id string, reason, by *string) error
	Unarchive(ctx context.Context, kind models.EntityKind, id string) error
}

type auditLogger interface {
	CreateAuditLog(ctx context.Context, log *models.AuditLog) error
}

type listingInvalidator interface {
	Invalidate(ctx context.Context, pattern string) error
}

type jobEnqueuer interface {
	Enqueue(job jobs.Job) error
}

type archiveMetrics interface {
	RecordArchiveCommand(action, kind string, err error)
}

// Actor identifies who issued a command.
type Actor struct {
	UserID    string
	Role      models.UserRole
	IPAddress string
	UserAgent string
}

// ArchiveCommand carries the inputs of an archive or unarchive command.
type ArchiveCommand struct {
	Kind   string
	ID     string
	Reason *string `validate:"omitempty,max=500"`
	By     *string `validate:"omitempty,max=128"`
}

// ArchiveResult echoes what was sent to storage.
type ArchiveResult struct {
	Kind     models.EntityKind `json:"kind"`
	ID       string            `json:"id"`
	Archived bool              `json:"archived"`
	Reason   *string           `json:"reason,omitempty"`
	By       *string           `json:"by,omitempty"`
}

// ArchiveService issues archive commands against storage and keeps listings consistent afterwards.
type ArchiveService struct {
	dispatcher archiveDispatcher
	audit      auditLogger
	cache      listingInvalidator
	queue      jobEnqueuer
	metrics    archiveMetrics
	validator  *validator.Validate
	logger     *zap.Logger
}

// NewArchiveService constructs the service. audit, cache, queue and metrics may be nil.
func NewArchiveService(dispatcher archiveDispatcher, audit auditLogger, cache listingInvalidator, queue jobEnqueuer, metrics archiveMetrics, validate *validator.Validate, logger *zap.Logger) *ArchiveService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ArchiveService{
		dispatcher: dispatcher,
		audit:      audit,
		cache:      cache,
		queue:      queue,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
	}
}

// Archive marks one entity archived. The archiving actor defaults to the caller.
func (s *ArchiveService) Archive(ctx context.Context, actor Actor, cmd ArchiveCommand) (*ArchiveResult, error) {
	kind, id, err := s.prepare(&cmd)
	if err != nil {
		return nil, err
	}
	by := cmd.By
	if by == nil && actor.UserID != "" {
		by = lo.ToPtr(actor.UserID)
	}

	err = s.dispatcher.Archive(ctx, kind, id, cmd.Reason, by)
	s.recordMetric(models.AuditActionArchive, kind, err)
	if err != nil {
		s.logger.Warn("archive command failed", zap.String("kind", string(kind)), zap.String("id", id), zap.Error(err))
		return nil, procedureError(err, "archive failed")
	}

	result := &ArchiveResult{Kind: kind, ID: id, Archived: true, Reason: cmd.Reason, By: by}
	s.afterCommand(ctx, actor, models.AuditActionArchive, kind, result)
	return result, nil
}

// Unarchive restores one entity.
func (s *ArchiveService) Unarchive(ctx context.Context, actor Actor, cmd ArchiveCommand) (*ArchiveResult, error) {
	kind, id, err := s.prepare(&cmd)
	if err != nil {
		return nil, err
	}

	err = s.dispatcher.Unarchive(ctx, kind, id)
	s.recordMetric(models.AuditActionUnarchive, kind, err)
	if err != nil {
		s.logger.Warn("unarchive command failed", zap.String("kind", string(kind)), zap.String("id", id), zap.Error(err))
		return nil, procedureError(err, "unarchive failed")
	}

	result := &ArchiveResult{Kind: kind, ID: id, Archived: false}
	s.afterCommand(ctx, actor, models.AuditActionUnarchive, kind, result)
	return result, nil
}

func (s *ArchiveService) prepare(cmd *ArchiveCommand) (models.EntityKind, string, error) {
	kind, err := models.ParseEntityKind(cmd.Kind)
	if err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported entity kind")
	}
	id := strings.TrimSpace(cmd.ID)
	if id == "" {
		return "", "", appErrors.Clone(appErrors.ErrValidation, "id is required")
	}
	cmd.Reason = blankToNil(cmd.Reason)
	cmd.By = blankToNil(cmd.By)
	if err := s.validator.Struct(cmd); err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid archive payload")
	}
	return kind, id, nil
}

func (s *ArchiveService) afterCommand(ctx context.Context, actor Actor, action string, kind models.EntityKind, result *ArchiveResult) {
	table, err := kind.Table()
	if err != nil {
		return
	}

	if s.audit != nil {
		payload, _ := json.Marshal(result)
		log := &models.AuditLog{
			UserID:     nilIfEmpty(actor.UserID),
			Action:     action,
			Resource:   string(table),
			ResourceID: lo.ToPtr(result.ID),
			NewValues:  payload,
			IPAddress:  actor.IPAddress,
			UserAgent:  actor.UserAgent,
		}
		if err := s.audit.CreateAuditLog(ctx, log); err != nil {
			s.logger.Warn("failed to record archive audit log", zap.String("action", action), zap.Error(err))
		}
	}

	if s.cache == nil {
		return
	}
	pattern := ListingPattern(table)
	if err := s.cache.Invalidate(ctx, pattern); err != nil {
		s.retryInvalidation(pattern, err)
	}
}

func (s *ArchiveService) retryInvalidation(pattern string, cause error) {
	if s.queue == nil {
		s.logger.Warn("listing cache left stale", zap.String("pattern", pattern), zap.Error(cause))
		return
	}
	job := jobs.Job{ID: uuid.NewString(), Type: JobTypeCacheInvalidate, Key: pattern, Payload: pattern}
	if err := s.queue.Enqueue(job); err != nil {
		s.logger.Error("failed to schedule cache invalidation", zap.String("pattern", pattern), zap.Error(errors.Join(cause, err)))
	}
}

func (s *ArchiveService) recordMetric(action string, kind models.EntityKind, err error) {
	if s.metrics != nil {
		s.metrics.RecordArchiveCommand(strings.ToLower(action), string(kind), err)
	}
}

// CacheInvalidationHandler processes queued invalidation retries.
func CacheInvalidationHandler(cache listingInvalidator) jobs.Handler {
	return func(ctx context.Context, job jobs.Job) error {
		if job.Type != JobTypeCacheInvalidate {
			return nil
		}
		return cache.Invalidate(ctx, job.Payload)
	}
}

func blankToNil(v *string) *string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return nil
	}
	return v
}

func nilIfEmpty(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
