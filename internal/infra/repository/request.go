package repository

import (
	"context"

	"lendshare/internal/domain/request"
	"lendshare/internal/infra"
	"lendshare/internal/infra/sqlstore"

	"github.com/google/uuid"
)

type RequestWriteQueries interface {
	CreateRequest(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateRequestParams) (uuid.UUID, error)
}

type RequestRepository struct {
	queries RequestWriteQueries
}

func NewRequestRepository(queries *sqlstore.Queries) *RequestRepository {
	return &RequestRepository{queries: queries}
}

func (r *RequestRepository) Create(ctx context.Context, tx sqlstore.DBTX, req *request.Request) (uuid.UUID, error) {
	params := sqlstore.CreateRequestParams{
		ID:          req.ID(),
		RequestorID: req.RequestorID(),
		Description: req.Description(),
		CreatedAt:   req.CreatedAt(),
	}

	resultID, err := r.queries.CreateRequest(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create request", err)
	}

	return resultID, nil
}
