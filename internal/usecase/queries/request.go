package queries

import (
	"context"
	"time"

	"lendshare/internal/infra"
	"lendshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrRequestNotFound = errs.NotFound("request was not found")

// RequestItemRef lists an item offered in answer to a request.
type RequestItemRef struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Available bool      `json:"available"`
}

type RequestView struct {
	ID          uuid.UUID        `json:"id"`
	RequestorID uuid.UUID        `json:"requestor_id"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
	Items       []RequestItemRef `json:"items"`
}

type RequestReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*RequestView, error)
	ListByRequestor(ctx context.Context, requestorID uuid.UUID) ([]*RequestView, error)
	ListOfOthers(ctx context.Context, requestorID uuid.UUID, limit, offset int32) ([]*RequestView, error)
	// ItemsForRequests batches the item lookups for a page of requests.
	ItemsForRequests(ctx context.Context, requestIDs []uuid.UUID) (map[uuid.UUID][]RequestItemRef, error)
}

type RequestQueries interface {
	GetByID(ctx context.Context, id, actorID uuid.UUID) (*RequestView, error)
	ListOwn(ctx context.Context, actorID uuid.UUID) ([]*RequestView, error)
	ListOthers(ctx context.Context, actorID uuid.UUID, from, size int) ([]*RequestView, error)
}

type requestQueriesImpl struct {
	store RequestReadStore
	users UserReadStore
}

func NewRequestQueries(store RequestReadStore, users UserReadStore) RequestQueries {
	return &requestQueriesImpl{store: store, users: users}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, id, actorID uuid.UUID) (*RequestView, error) {
	if err := q.ensureUserExists(ctx, actorID); err != nil {
		return nil, err
	}
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	if err := q.attachItems(ctx, []*RequestView{view}); err != nil {
		return nil, err
	}
	return view, nil
}

func (q *requestQueriesImpl) ListOwn(ctx context.Context, actorID uuid.UUID) ([]*RequestView, error) {
	if err := q.ensureUserExists(ctx, actorID); err != nil {
		return nil, err
	}
	rows, err := q.store.ListByRequestor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := q.attachItems(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (q *requestQueriesImpl) ListOthers(ctx context.Context, actorID uuid.UUID, from, size int) ([]*RequestView, error) {
	limit, offset, err := PageOffset(from, size)
	if err != nil {
		return nil, err
	}
	if err := q.ensureUserExists(ctx, actorID); err != nil {
		return nil, err
	}
	rows, err := q.store.ListOfOthers(ctx, actorID, limit, offset)
	if err != nil {
		return nil, err
	}
	if err := q.attachItems(ctx, rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (q *requestQueriesImpl) attachItems(ctx context.Context, rows []*RequestView) error {
	if len(rows) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}
	byRequest, err := q.store.ItemsForRequests(ctx, ids)
	if err != nil {
		return err
	}
	for _, row := range rows {
		items := byRequest[row.ID]
		if items == nil {
			items = []RequestItemRef{}
		}
		row.Items = items
	}
	return nil
}

func (q *requestQueriesImpl) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	_, err := q.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
