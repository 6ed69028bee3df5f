package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bizops-api/internal/service"
	"github.com/noah-isme/bizops-api/pkg/response"
)

type exportService interface {
	Export(ctx context.Context, req service.ExportRequest) (*service.ExportResult, error)
}

// ExportHandler streams listing exports.
type ExportHandler struct {
	service exportService
}

// NewExportHandler constructs the handler.
func NewExportHandler(service exportService) *ExportHandler {
	return &ExportHandler{service: service}
}

// Export godoc
// @Summary Export a listing as CSV or PDF
// @Tags Exports
// @Produce text/csv,application/pdf
// @Param table path string true "submissions, orders or proofs"
// @Param filter query string false "actives (default), archived or all"
// @Param format query string false "csv (default) or pdf"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /exports/{table} [get]
func (h *ExportHandler) Export(c *gin.Context) {
	result, err := h.service.Export(c.Request.Context(), service.ExportRequest{
		Table:  c.Param("table"),
		Filter: c.Query("filter"),
		Format: c.Query("format"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, result.Filename, result.ContentType, result.Body)
}
