package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bizops-api/internal/models"
	"github.com/noah-isme/bizops-api/internal/service"
	"github.com/noah-isme/bizops-api/pkg/response"
)

type proofService interface {
	Latest(ctx context.Context, orderID string) ([]service.ProofDetailRow, error)
	Overview(ctx context.Context) ([]service.ProofDetailRow, error)
	OrderHistory(ctx context.Context, orderID string) ([]models.OrderHistoryEntry, error)
}

// ProofHandler serves proof overviews and order history.
type ProofHandler struct {
	service proofService
}

// NewProofHandler constructs the handler.
func NewProofHandler(service proofService) *ProofHandler {
	return &ProofHandler{service: service}
}

// Latest godoc
// @Summary Latest proof of each order
// @Tags Proofs
// @Produce json
// @Param orderId query string false "Restrict to one order"
// @Success 200 {object} response.Envelope
// @Router /proofs/latest [get]
func (h *ProofHandler) Latest(c *gin.Context) {
	rows, err := h.service.Latest(c.Request.Context(), c.Query("orderId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// Overview godoc
// @Summary All proof versions with order information
// @Tags Proofs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /proofs/overview [get]
func (h *ProofHandler) Overview(c *gin.Context) {
	rows, err := h.service.Overview(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, nil)
}

// OrderHistory godoc
// @Summary Status history of an order
// @Tags Orders
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} response.Envelope
// @Router /orders/{id}/history [get]
func (h *ProofHandler) OrderHistory(c *gin.Context) {
	entries, err := h.service.OrderHistory(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}
