package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bizops-api/internal/models"
)

var listingPsql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

var archiveColumns = []string{"archived_at", "archived_by", "archive_reason"}

var (
	submissionColumns = append([]string{"id", "client_id", "title", "status", "amount", "submitted_at", "created_at"}, archiveColumns...)
	orderColumns      = append([]string{"id", "client_id", "submission_id", "order_number", "status", "total_amount", "due_date", "created_at"}, archiveColumns...)
	proofColumns      = append([]string{"id", "order_id", "version", "file_url", "status", "created_at"}, archiveColumns...)
)

// ListingRepository reads archivable tables through the relation resolved for a filter.
type ListingRepository struct {
	db            *sqlx.DB
	filteredViews bool
}

// NewListingRepository constructs the repository. With filteredViews false the base table
// is read with an archived_at predicate instead of the v_active_* / v_archived_* views.
func NewListingRepository(db *sqlx.DB, filteredViews bool) *ListingRepository {
	return &ListingRepository{db: db, filteredViews: filteredViews}
}

// ListSubmissions returns one page of submissions and the total row count.
func (r *ListingRepository) ListSubmissions(ctx context.Context, filter models.FilterMode, opts models.ListOptions) ([]models.Submission, int, error) {
	var rows []models.Submission
	total, err := r.list(ctx, models.TableSubmissions, filter, submissionColumns, opts, &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListOrders returns one page of orders and the total row count.
func (r *ListingRepository) ListOrders(ctx context.Context, filter models.FilterMode, opts models.ListOptions) ([]models.Order, int, error) {
	var rows []models.Order
	total, err := r.list(ctx, models.TableOrders, filter, orderColumns, opts, &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// ListProofs returns one page of proofs and the total row count.
func (r *ListingRepository) ListProofs(ctx context.Context, filter models.FilterMode, opts models.ListOptions) ([]models.Proof, int, error) {
	var rows []models.Proof
	total, err := r.list(ctx, models.TableProofs, filter, proofColumns, opts, &rows)
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *ListingRepository) list(ctx context.Context, base models.BaseTable, filter models.FilterMode, columns []string, opts models.ListOptions, dest interface{}) (int, error) {
	from, where, err := r.source(base, filter)
	if err != nil {
		return 0, err
	}
	opts = opts.Normalize()

	query := listingPsql.Select(columns...).
		From(from).
		OrderBy("created_at DESC", "id DESC").
		Limit(uint64(opts.PageSize)).
		Offset(uint64(opts.Offset()))
	if where != nil {
		query = query.Where(where)
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s listing: %w", from, err)
	}
	if err := r.db.SelectContext(ctx, dest, sqlStr, args...); err != nil {
		return 0, fmt.Errorf("list %s: %w", from, err)
	}

	return r.Count(ctx, base, filter)
}

func (r *ListingRepository) source(base models.BaseTable, filter models.FilterMode) (string, sq.Sqlizer, error) {
	name, err := TableNameByFilter(base, filter)
	if err != nil || r.filteredViews {
		return name, nil, err
	}
	switch filter {
	case models.FilterActives:
		return string(base), sq.Eq{"archived_at": nil}, nil
	case models.FilterArchived:
		return string(base), sq.NotEq{"archived_at": nil}, nil
	default:
		return string(base), nil, nil
	}
}

// Count returns how many rows the relation serving (base, filter) holds.
func (r *ListingRepository) Count(ctx context.Context, base models.BaseTable, filter models.FilterMode) (int, error) {
	from, where, err := r.source(base, filter)
	if err != nil {
		return 0, err
	}
	count := listingPsql.Select("COUNT(*)").From(from)
	if where != nil {
		count = count.Where(where)
	}
	query, args, err := count.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build %s count: %w", from, err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count %s: %w", from, err)
	}
	return total, nil
}
