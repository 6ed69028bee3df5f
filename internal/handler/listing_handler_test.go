package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/bizops-api/internal/models"
	"github.com/noah-isme/bizops-api/internal/service"
	appErrors "github.com/noah-isme/bizops-api/pkg/errors"
)

type fakeListingSrv struct {
	query service.ListingQuery
	page  *service.ListingPage
	hit   bool
	err   error
}

func (f *fakeListingSrv) List(_ context.Context, query service.ListingQuery) (*service.ListingPage, bool, error) {
	f.query = query
	return f.page, f.hit, f.err
}

func TestListingHandlerOrders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeListingSrv{
		hit: true,
		page: &service.ListingPage{
			Table:      models.TableOrders,
			Filter:     models.FilterArchived,
			Relation:   "v_archived_orders",
			Orders:     []service.OrderRow{{Order: models.Order{ID: "o-1"}, Archived: true}},
			Pagination: models.Pagination{Page: 2, PageSize: 10, TotalCount: 11},
		},
	}
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/orders?filter=archived&page=2&pageSize=10", nil)

	NewListingHandler(srv).Orders(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ListingQuery{Table: "orders", Filter: "archived", Page: 2, PageSize: 10}, srv.query)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, true, env.Meta["cache_hit"])
	assert.Equal(t, "v_archived_orders", env.Meta["relation"])
	require.NotNil(t, env.Pagination)
	assert.Equal(t, 11, env.Pagination.TotalCount)
	assert.Contains(t, string(env.Data), `"archived":true`)
}

func TestListingHandlerEmptyPageRendersArray(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeListingSrv{page: &service.ListingPage{Table: models.TableProofs, Filter: models.FilterActives}}
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/proofs", nil)

	NewListingHandler(srv).Proofs(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "proofs", srv.query.Table)
	assert.Equal(t, "[]", string(decodeEnvelope(t, rec).Data))
}

func TestListingHandlerBadFilter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeListingSrv{err: appErrors.Clone(appErrors.ErrValidation, "filter must be actives, archived or all")}
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/submissions?filter=deleted", nil)

	NewListingHandler(srv).Submissions(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
