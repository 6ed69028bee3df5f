package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/bizops-api/internal/models"
)

const orderHistoryView = "v_ordre_historique"

// OrderHistoryRepository reads status history from the order history view.
type OrderHistoryRepository struct {
	db *sqlx.DB
}

// NewOrderHistoryRepository constructs the repository.
func NewOrderHistoryRepository(db *sqlx.DB) *OrderHistoryRepository {
	return &OrderHistoryRepository{db: db}
}

// ListByOrder returns history entries of one order, newest first.
func (r *OrderHistoryRepository) ListByOrder(ctx context.Context, orderID string) ([]models.OrderHistoryEntry, error) {
	query, args, err := listingPsql.
		Select("id", "order_id", "status", "changed_at", "changed_by", "note").
		From(orderHistoryView).
		Where(sq.Eq{"order_id": orderID}).
		OrderBy("changed_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build order history query: %w", err)
	}
	var entries []models.OrderHistoryEntry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("list order history: %w", err)
	}
	return entries, nil
}
