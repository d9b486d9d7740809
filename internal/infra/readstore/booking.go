package readstore

import (
	"context"

	"lendshare/internal/infra"
	"lendshare/internal/infra/sqlstore"
	"lendshare/internal/pkg/pgconv"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingViewQueries interface {
	GetBookingByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.GetBookingByIDRow, error)
	ListBookingsByBooker(ctx context.Context, db sqlstore.DBTX, bookerID uuid.UUID) ([]sqlstore.GetBookingByIDRow, error)
	ListBookingsByOwner(ctx context.Context, db sqlstore.DBTX, ownerID uuid.UUID) ([]sqlstore.GetBookingByIDRow, error)
}

type BookingReadStore struct {
	queries BookingViewQueries
	db      sqlstore.DBTX
}

func NewBookingReadStore(queries *sqlstore.Queries, db sqlstore.DBTX) *BookingReadStore {
	return &BookingReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row, err := r.queries.GetBookingByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	return rowToBookingView(row), nil
}

func (r *BookingReadStore) ListByBooker(ctx context.Context, bookerID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByBooker(ctx, r.db, bookerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by booker", err)
	}

	return rowsToBookingViews(rows), nil
}

func (r *BookingReadStore) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*queries.BookingView, error) {
	rows, err := r.queries.ListBookingsByOwner(ctx, r.db, ownerID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings by owner", err)
	}

	return rowsToBookingViews(rows), nil
}

func rowToBookingView(row sqlstore.GetBookingByIDRow) *queries.BookingView {
	return &queries.BookingView{
		ID:          row.ID,
		ItemID:      row.ItemID,
		ItemName:    row.ItemName,
		ItemOwnerID: row.ItemOwnerID,
		BookerID:    row.BookerID,
		BookerName:  row.BookerName,
		StartTime:   pgconv.TimeFromPgtype(row.StartTime),
		EndTime:     pgconv.TimeFromPgtype(row.EndTime),
		Status:      row.Status,
		CreatedAt:   pgconv.TimeFromPgtype(row.CreatedAt),
	}
}

func rowsToBookingViews(rows []sqlstore.GetBookingByIDRow) []*queries.BookingView {
	result := make([]*queries.BookingView, len(rows))
	for i, row := range rows {
		result[i] = rowToBookingView(row)
	}
	return result
}
