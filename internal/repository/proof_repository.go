package repository

import (
	"context"

	"github.com/noah-isme/bizops-api/internal/models"
)

const (
	procLatestProofsByOrder = "get_latest_proofs_by_order"
	procAllProofs           = "get_all_proofs"
)

// ProofRepository reads proof projections computed by storage procedures.
type ProofRepository struct {
	caller ProcedureCaller
}

// NewProofRepository constructs the repository.
func NewProofRepository(caller ProcedureCaller) *ProofRepository {
	return &ProofRepository{caller: caller}
}

// LatestByOrder returns the most recent proof version of every order.
func (r *ProofRepository) LatestByOrder(ctx context.Context) ([]models.ProofDetail, error) {
	var rows []models.ProofDetail
	if err := r.caller.Call(ctx, procLatestProofsByOrder, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// All returns every proof version joined with its order.
func (r *ProofRepository) All(ctx context.Context) ([]models.ProofDetail, error) {
	var rows []models.ProofDetail
	if err := r.caller.Call(ctx, procAllProofs, nil, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}
