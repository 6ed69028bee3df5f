package service

import (
	"context"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/noah-isme/bizops-api/internal/models"
	"github.com/noah-isme/bizops-api/internal/repository"
	appErrors "github.com/noah-isme/bizops-api/pkg/errors"
)

type listingReader interface {
	ListSubmissions(ctx context.Context, filter models.FilterMode, opts models.ListOptions) ([]models.Submission, int, error)
	ListOrders(ctx context.Context, filter models.FilterMode, opts models.ListOptions) ([]models.Order, int, error)
	ListProofs(ctx context.Context, filter models.FilterMode, opts models.ListOptions) ([]models.Proof, int, error)
}

type listingCache interface {
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ListingQuery is the untyped listing request received from HTTP or the CLI.
type ListingQuery struct {
	Table    string
	Filter   string
	Page     int
	PageSize int
}

// SubmissionRow is a submission annotated with its archive badge.
type SubmissionRow struct {
	models.Submission
	Archived bool                `json:"archived"`
	Archive  *models.ArchiveInfo `json:"archive,omitempty"`
}

// OrderRow is an order annotated with its archive badge.
type OrderRow struct {
	models.Order
	Archived bool                `json:"archived"`
	Archive  *models.ArchiveInfo `json:"archive,omitempty"`
}

// ProofRow is a proof annotated with its archive badge.
type ProofRow struct {
	models.Proof
	Archived bool                `json:"archived"`
	Archive  *models.ArchiveInfo `json:"archive,omitempty"`
}

// ListingPage is one page of a listing. Only the slice matching Table is populated.
type ListingPage struct {
	Table       models.BaseTable  `json:"table"`
	Filter      models.FilterMode `json:"filter"`
	Relation    string            `json:"relation"`
	Submissions []SubmissionRow   `json:"submissions,omitempty"`
	Orders      []OrderRow        `json:"orders,omitempty"`
	Proofs      []ProofRow        `json:"proofs,omitempty"`
	Pagination  models.Pagination `json:"pagination"`
}

// Items returns the populated rows, never nil.
func (p *ListingPage) Items() interface{} {
	switch p.Table {
	case models.TableSubmissions:
		return lo.Ternary(p.Submissions == nil, []SubmissionRow{}, p.Submissions)
	case models.TableOrders:
		return lo.Ternary(p.Orders == nil, []OrderRow{}, p.Orders)
	default:
		return lo.Ternary(p.Proofs == nil, []ProofRow{}, p.Proofs)
	}
}

// ListingService serves archive-aware listings of the archivable tables.
type ListingService struct {
	reader listingReader
	cache  listingCache
	ttl    time.Duration
	logger *zap.Logger
}

// NewListingService constructs the service. cache may be nil.
func NewListingService(reader listingReader, cache listingCache, ttl time.Duration, logger *zap.Logger) *ListingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ListingService{reader: reader, cache: cache, ttl: ttl, logger: logger}
}

// List returns one page. The boolean reports a cache hit.
func (s *ListingService) List(ctx context.Context, query ListingQuery) (*ListingPage, bool, error) {
	table, filter, err := parseListingTarget(query.Table, query.Filter)
	if err != nil {
		return nil, false, err
	}
	relation, err := repository.TableNameByFilter(table, filter)
	if err != nil {
		return nil, false, procedureError(err, "resolve listing")
	}
	opts := models.ListOptions{Page: query.Page, PageSize: query.PageSize}.Normalize()
	key := ListingKey(table, filter, opts)

	if s.cache != nil {
		var cached ListingPage
		hit, err := s.cache.Get(ctx, key, &cached)
		if err != nil {
			s.logger.Debug("listing cache unavailable", zap.String("key", key), zap.Error(err))
		}
		if hit {
			return &cached, true, nil
		}
	}

	page := &ListingPage{Table: table, Filter: filter, Relation: relation}
	var total int
	switch table {
	case models.TableSubmissions:
		var rows []models.Submission
		rows, total, err = s.reader.ListSubmissions(ctx, filter, opts)
		page.Submissions = lo.Map(rows, func(item models.Submission, _ int) SubmissionRow {
			return SubmissionRow{Submission: item, Archived: models.IsArchived(&item), Archive: models.GetArchiveInfo(&item)}
		})
	case models.TableOrders:
		var rows []models.Order
		rows, total, err = s.reader.ListOrders(ctx, filter, opts)
		page.Orders = lo.Map(rows, func(item models.Order, _ int) OrderRow {
			return OrderRow{Order: item, Archived: models.IsArchived(&item), Archive: models.GetArchiveInfo(&item)}
		})
	case models.TableProofs:
		var rows []models.Proof
		rows, total, err = s.reader.ListProofs(ctx, filter, opts)
		page.Proofs = lo.Map(rows, func(item models.Proof, _ int) ProofRow {
			return ProofRow{Proof: item, Archived: models.IsArchived(&item), Archive: models.GetArchiveInfo(&item)}
		})
	}
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list "+string(table))
	}
	page.Pagination = models.Pagination{Page: opts.Page, PageSize: opts.PageSize, TotalCount: total}

	if s.cache != nil {
		_ = s.cache.Set(ctx, key, page, s.ttl)
	}
	return page, false, nil
}

func parseListingTarget(rawTable, rawFilter string) (models.BaseTable, models.FilterMode, error) {
	table, err := models.ParseBaseTable(rawTable)
	if err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "unsupported table")
	}
	filter, err := models.ParseFilterMode(rawFilter)
	if err != nil {
		return "", "", appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "filter must be actives, archived or all")
	}
	return table, filter, nil
}
