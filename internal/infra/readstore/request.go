package readstore

import (
	"context"

	"lendshare/internal/infra"
	"lendshare/internal/infra/sqlstore"
	"lendshare/internal/pkg/pgconv"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type RequestViewQueries interface {
	GetRequestByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.RequestRow, error)
	ListRequestsByRequestor(ctx context.Context, db sqlstore.DBTX, requestorID uuid.UUID) ([]sqlstore.RequestRow, error)
	ListRequestsOfOthers(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ListRequestsOfOthersParams) ([]sqlstore.RequestRow, error)
	ListItemsByRequests(ctx context.Context, db sqlstore.DBTX, requestIDs []uuid.UUID) ([]sqlstore.GetItemByIDRow, error)
}

type RequestReadStore struct {
	queries RequestViewQueries
	db      sqlstore.DBTX
}

func NewRequestReadStore(queries *sqlstore.Queries, db sqlstore.DBTX) *RequestReadStore {
	return &RequestReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *RequestReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.RequestView, error) {
	row, err := r.queries.GetRequestByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find request by ID", err)
	}

	return rowToRequestView(row), nil
}

func (r *RequestReadStore) ListByRequestor(ctx context.Context, requestorID uuid.UUID) ([]*queries.RequestView, error) {
	rows, err := r.queries.ListRequestsByRequestor(ctx, r.db, requestorID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests by requestor", err)
	}

	return rowsToRequestViews(rows), nil
}

func (r *RequestReadStore) ListOfOthers(ctx context.Context, requestorID uuid.UUID, limit, offset int32) ([]*queries.RequestView, error) {
	rows, err := r.queries.ListRequestsOfOthers(ctx, r.db, sqlstore.ListRequestsOfOthersParams{
		RequestorID: requestorID,
		Limit:       limit,
		Offset:      offset,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list requests of others", err)
	}

	return rowsToRequestViews(rows), nil
}

func (r *RequestReadStore) ItemsForRequests(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]queries.RequestItemRef, error) {
	rows, err := r.queries.ListItemsByRequests(ctx, r.db, requestIDs)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items for requests", err)
	}

	result := make(map[uuid.UUID][]queries.RequestItemRef, len(requestIDs))
	for _, row := range rows {
		requestID := pgconv.UUIDPtrFromPgtype(row.RequestID)
		if requestID == nil {
			continue
		}
		result[*requestID] = append(result[*requestID], queries.RequestItemRef{
			ID:        row.ID,
			Name:      row.Name,
			OwnerID:   row.OwnerID,
			Available: row.Available,
		})
	}
	return result, nil
}

func rowToRequestView(row sqlstore.RequestRow) *queries.RequestView {
	return &queries.RequestView{
		ID:          row.ID,
		RequestorID: row.RequestorID,
		Description: row.Description,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

func rowsToRequestViews(rows []sqlstore.RequestRow) []*queries.RequestView {
	result := make([]*queries.RequestView, len(rows))
	for i, row := range rows {
		result[i] = rowToRequestView(row)
	}
	return result
}
