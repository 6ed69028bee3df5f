package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/bizops-api/internal/service"
	appErrors "github.com/noah-isme/bizops-api/pkg/errors"
	"github.com/noah-isme/bizops-api/pkg/response"
)

type archiveService interface {
	Archive(ctx context.Context, actor service.Actor, cmd service.ArchiveCommand) (*service.ArchiveResult, error)
	Unarchive(ctx context.Context, actor service.Actor, cmd service.ArchiveCommand) (*service.ArchiveResult, error)
}

// ArchiveRequest is the optional body of an archive call.
type ArchiveRequest struct {
	Reason *string `json:"reason"`
}

// ArchiveHandler exposes archive and restore commands.
type ArchiveHandler struct {
	service archiveService
}

// NewArchiveHandler constructs the handler.
func NewArchiveHandler(service archiveService) *ArchiveHandler {
	return &ArchiveHandler{service: service}
}

// Archive godoc
// @Summary Archive a submission, order or proof
// @Tags Archives
// @Accept json
// @Produce json
// @Param kind path string true "submission, order or proof"
// @Param id path string true "Entity ID"
// @Param payload body ArchiveRequest false "Archive reason"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /archives/{kind}/{id} [post]
func (h *ArchiveHandler) Archive(c *gin.Context) {
	var req ArchiveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid archive payload"))
		return
	}

	result, err := h.service.Archive(c.Request.Context(), actorFromContext(c), service.ArchiveCommand{
		Kind:   c.Param("kind"),
		ID:     c.Param("id"),
		Reason: req.Reason,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Unarchive godoc
// @Summary Restore an archived submission, order or proof
// @Tags Archives
// @Produce json
// @Param kind path string true "submission, order or proof"
// @Param id path string true "Entity ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /archives/{kind}/{id} [delete]
func (h *ArchiveHandler) Unarchive(c *gin.Context) {
	result, err := h.service.Unarchive(c.Request.Context(), actorFromContext(c), service.ArchiveCommand{
		Kind: c.Param("kind"),
		ID:   c.Param("id"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
