package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bizops-api/internal/models"
)

func TestListingRepositoryReadsResolvedView(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewListingRepository(db, true)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "client_id", "submission_id", "order_number", "status", "total_amount", "due_date", "created_at", "archived_at", "archived_by", "archive_reason"}).
		AddRow("o-1", "c-1", nil, "ORD-1", "open", "125.50", nil, now, now, "u1", "duplicate")
	mock.ExpectQuery(regexp.QuoteMeta("FROM v_archived_orders ORDER BY created_at DESC, id DESC LIMIT 20 OFFSET 20")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM v_archived_orders")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

	orders, total, err := repo.ListOrders(context.Background(), models.FilterArchived, models.ListOptions{Page: 2, PageSize: 20})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 21, total)
	assert.True(t, orders[0].TotalAmount.Equal(decimal.RequireFromString("125.50")))
	assert.True(t, models.IsArchived(&orders[0]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepositoryAllReadsBaseTable(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewListingRepository(db, true)
	mock.ExpectQuery(regexp.QuoteMeta("FROM proofs ORDER BY")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM proofs")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	proofs, total, err := repo.ListProofs(context.Background(), models.FilterAll, models.ListOptions{})
	require.NoError(t, err)
	assert.Empty(t, proofs)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepositoryPredicateFallback(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewListingRepository(db, false)
	mock.ExpectQuery(regexp.QuoteMeta("FROM submissions WHERE archived_at IS NULL ORDER BY")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM submissions WHERE archived_at IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err := repo.ListSubmissions(context.Background(), models.FilterActives, models.ListOptions{})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM submissions WHERE archived_at IS NOT NULL ORDER BY")).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM submissions WHERE archived_at IS NOT NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	_, _, err = repo.ListSubmissions(context.Background(), models.FilterArchived, models.ListOptions{})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListingRepositoryRejectsUnknownFilter(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewListingRepository(db, true)
	_, _, err := repo.ListOrders(context.Background(), models.FilterMode("deleted"), models.ListOptions{})
	assert.True(t, errors.Is(err, models.ErrUnknownFilterMode))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOrderHistoryRepositoryListByOrder(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewOrderHistoryRepository(db)
	now := time.Now().UTC()
	mock.ExpectQuery(regexp.QuoteMeta("FROM v_ordre_historique WHERE order_id = $1 ORDER BY changed_at DESC")).
		WithArgs("o-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "order_id", "status", "changed_at", "changed_by", "note"}).
			AddRow("h-2", "o-1", "shipped", now, "u1", nil).
			AddRow("h-1", "o-1", "open", now.Add(-time.Hour), nil, "created"))

	entries, err := repo.ListByOrder(context.Background(), "o-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "shipped", entries[0].Status)
	assert.Nil(t, entries[0].Note)
	assert.Equal(t, "created", *entries[1].Note)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuditRepositoryCreateAuditLog(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	repo := NewAuditRepository(db)
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO audit_logs")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	log := &models.AuditLog{Action: models.AuditActionArchive, Resource: "orders", ResourceID: strPtr("o-1")}
	require.NoError(t, repo.CreateAuditLog(context.Background(), log))
	assert.NotEmpty(t, log.ID)
	assert.False(t, log.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProofRepositoryUsesProcedures(t *testing.T) {
	caller := &recordingCaller{}
	repo := NewProofRepository(caller)

	_, err := repo.LatestByOrder(context.Background())
	require.NoError(t, err)
	_, err = repo.All(context.Background())
	require.NoError(t, err)

	require.Len(t, caller.calls, 2)
	assert.Equal(t, "get_latest_proofs_by_order", caller.calls[0].name)
	assert.Empty(t, caller.calls[0].args)
	assert.Equal(t, "get_all_proofs", caller.calls[1].name)
}

func TestListingRepositoryCountPerSource(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM v_active_orders")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM orders WHERE archived_at IS NULL")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	views, err := NewListingRepository(db, true).Count(context.Background(), models.TableOrders, models.FilterActives)
	require.NoError(t, err)
	predicate, err := NewListingRepository(db, false).Count(context.Background(), models.TableOrders, models.FilterActives)
	require.NoError(t, err)
	assert.Equal(t, views, predicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
