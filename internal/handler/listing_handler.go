package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bizops-api/internal/middleware"
	"github.com/noah-isme/bizops-api/internal/models"
	"github.com/noah-isme/bizops-api/internal/service"
	"github.com/noah-isme/bizops-api/pkg/response"
)

type listingService interface {
	List(ctx context.Context, query service.ListingQuery) (*service.ListingPage, bool, error)
}

// ListingHandler serves archive-aware listings.
type ListingHandler struct {
	service listingService
}

// NewListingHandler constructs the handler.
func NewListingHandler(service listingService) *ListingHandler {
	return &ListingHandler{service: service}
}

// Submissions godoc
// @Summary List submissions
// @Tags Listings
// @Produce json
// @Param filter query string false "actives (default), archived or all"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /submissions [get]
func (h *ListingHandler) Submissions(c *gin.Context) {
	h.list(c, models.TableSubmissions)
}

// Orders godoc
// @Summary List orders
// @Tags Listings
// @Produce json
// @Param filter query string false "actives (default), archived or all"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /orders [get]
func (h *ListingHandler) Orders(c *gin.Context) {
	h.list(c, models.TableOrders)
}

// Proofs godoc
// @Summary List proofs
// @Tags Listings
// @Produce json
// @Param filter query string false "actives (default), archived or all"
// @Param page query int false "Page"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /proofs [get]
func (h *ListingHandler) Proofs(c *gin.Context) {
	h.list(c, models.TableProofs)
}

func (h *ListingHandler) list(c *gin.Context, table models.BaseTable) {
	page, hit, err := h.service.List(c.Request.Context(), service.ListingQuery{
		Table:    string(table),
		Filter:   c.Query("filter"),
		Page:     queryInt(c, "page"),
		PageSize: queryInt(c, "pageSize"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetListingMeta(c, hit, string(page.Filter), page.Relation)
	response.JSON(c, http.StatusOK, page.Items(), &page.Pagination, middleware.ExtractMeta(c))
}
