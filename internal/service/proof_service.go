package service

import (
	"context"
	"strings"

	"github.com/samber/lo"

	"github.com/noah-isme/bizops-api/internal/models"
	appErrors "github.com/noah-isme/bizops-api/pkg/errors"
)

type proofReader interface {
	LatestByOrder(ctx context.Context) ([]models.ProofDetail, error)
	All(ctx context.Context) ([]models.ProofDetail, error)
}

type orderHistoryReader interface {
	ListByOrder(ctx context.Context, orderID string) ([]models.OrderHistoryEntry, error)
}

// ProofDetailRow is a proof projection annotated with its archive badge.
type ProofDetailRow struct {
	models.ProofDetail
	Archived bool                `json:"archived"`
	Archive  *models.ArchiveInfo `json:"archive,omitempty"`
}

// ProofService serves proof overviews and order history.
type ProofService struct {
	proofs  proofReader
	history orderHistoryReader
}

// NewProofService constructs the service.
func NewProofService(proofs proofReader, history orderHistoryReader) *ProofService {
	return &ProofService{proofs: proofs, history: history}
}

// Latest returns the newest proof of each order, optionally narrowed to one order.
func (s *ProofService) Latest(ctx context.Context, orderID string) ([]ProofDetailRow, error) {
	rows, err := s.proofs.LatestByOrder(ctx)
	if err != nil {
		return nil, procedureError(err, "failed to load latest proofs")
	}
	if orderID = strings.TrimSpace(orderID); orderID != "" {
		rows = lo.Filter(rows, func(item models.ProofDetail, _ int) bool {
			return item.OrderID == orderID
		})
	}
	return annotateProofDetails(rows), nil
}

// Overview returns every proof version with its order information.
func (s *ProofService) Overview(ctx context.Context) ([]ProofDetailRow, error) {
	rows, err := s.proofs.All(ctx)
	if err != nil {
		return nil, procedureError(err, "failed to load proofs")
	}
	return annotateProofDetails(rows), nil
}

// OrderHistory returns status changes of one order, newest first.
func (s *ProofService) OrderHistory(ctx context.Context, orderID string) ([]models.OrderHistoryEntry, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "order id is required")
	}
	entries, err := s.history.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load order history")
	}
	if entries == nil {
		entries = []models.OrderHistoryEntry{}
	}
	return entries, nil
}

func annotateProofDetails(rows []models.ProofDetail) []ProofDetailRow {
	return lo.Map(rows, func(item models.ProofDetail, _ int) ProofDetailRow {
		return ProofDetailRow{ProofDetail: item, Archived: models.IsArchived(&item), Archive: models.GetArchiveInfo(&item)}
	})
}
