package readstore

import (
	"context"
	"time"

	"lendshare/internal/infra"
	"lendshare/internal/infra/sqlstore"
	"lendshare/internal/pkg/pgconv"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemViewQueries interface {
	GetItemByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.GetItemByIDRow, error)
	ListItemsByOwner(ctx context.Context, db sqlstore.DBTX, arg sqlstore.ListItemsByOwnerParams) ([]sqlstore.GetItemByIDRow, error)
	SearchItems(ctx context.Context, db sqlstore.DBTX, arg sqlstore.SearchItemsParams) ([]sqlstore.GetItemByIDRow, error)
	CountItemsByOwner(ctx context.Context, db sqlstore.DBTX, ownerID uuid.UUID) (int64, error)
	GetLastBookingForItem(ctx context.Context, db sqlstore.DBTX, itemID uuid.UUID, now time.Time) (sqlstore.NeighborBookingRow, error)
	GetNextBookingForItem(ctx context.Context, db sqlstore.DBTX, itemID uuid.UUID, now time.Time) (sqlstore.NeighborBookingRow, error)
	ListCommentsByItem(ctx context.Context, db sqlstore.DBTX, itemID uuid.UUID) ([]sqlstore.CommentRow, error)
}

type ItemReadStore struct {
	queries ItemViewQueries
	db      sqlstore.DBTX
}

func NewItemReadStore(queries *sqlstore.Queries, db sqlstore.DBTX) *ItemReadStore {
	return &ItemReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *ItemReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ItemView, error) {
	row, err := r.queries.GetItemByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}

	return rowToItemView(row), nil
}

func (r *ItemReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*queries.ItemView, error) {
	rows, err := r.queries.ListItemsByOwner(ctx, r.db, sqlstore.ListItemsByOwnerParams{
		OwnerID: ownerID,
		Limit:   limit,
		Offset:  offset,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list items by owner", err)
	}

	return rowsToItemViews(rows), nil
}

func (r *ItemReadStore) Search(ctx context.Context, text string, limit, offset int32) ([]*queries.ItemView, error) {
	rows, err := r.queries.SearchItems(ctx, r.db, sqlstore.SearchItemsParams{
		Text:   text,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to search items", err)
	}

	return rowsToItemViews(rows), nil
}

func (r *ItemReadStore) CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error) {
	count, err := r.queries.CountItemsByOwner(ctx, r.db, ownerID)
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count items by owner", err)
	}
	return count, nil
}

func (r *ItemReadStore) LastBookingForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*queries.BookingRef, error) {
	row, err := r.queries.GetLastBookingForItem(ctx, r.db, itemID, now)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find last booking for item", err)
	}
	return rowToBookingRef(row), nil
}

func (r *ItemReadStore) NextBookingForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*queries.BookingRef, error) {
	row, err := r.queries.GetNextBookingForItem(ctx, r.db, itemID, now)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to find next booking for item", err)
	}
	return rowToBookingRef(row), nil
}

func (r *ItemReadStore) CommentsForItem(ctx context.Context, itemID uuid.UUID) ([]queries.CommentView, error) {
	rows, err := r.queries.ListCommentsByItem(ctx, r.db, itemID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list comments for item", err)
	}

	result := make([]queries.CommentView, len(rows))
	for i, row := range rows {
		result[i] = queries.CommentView{
			ID:         row.ID,
			AuthorName: row.AuthorName,
			Text:       row.Text,
			CreatedAt:  pgconv.TimeFromPgtype(row.CreatedAt),
		}
	}
	return result, nil
}

func rowToItemView(row sqlstore.GetItemByIDRow) *queries.ItemView {
	return &queries.ItemView{
		ID:          row.ID,
		OwnerID:     row.OwnerID,
		RequestID:   pgconv.UUIDPtrFromPgtype(row.RequestID),
		Name:        row.Name,
		Description: row.Description,
		Available:   row.Available,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:   pgconv.TimeFromPgtype(row.UpdatedAt),
	}
}

func rowsToItemViews(rows []sqlstore.GetItemByIDRow) []*queries.ItemView {
	result := make([]*queries.ItemView, len(rows))
	for i, row := range rows {
		result[i] = rowToItemView(row)
	}
	return result
}

func rowToBookingRef(row sqlstore.NeighborBookingRow) *queries.BookingRef {
	return &queries.BookingRef{
		ID:        row.ID,
		BookerID:  row.BookerID,
		StartTime: pgconv.TimeFromPgtype(row.StartTime),
		EndTime:   pgconv.TimeFromPgtype(row.EndTime),
	}
}
