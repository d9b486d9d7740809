package repository

import (
	"context"

	"lendshare/internal/domain/booking"
	"lendshare/internal/infra"
	"lendshare/internal/infra/sqlstore"

	"github.com/google/uuid"
)

type BookingWriteQueries interface {
	CreateBooking(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateBookingParams) (uuid.UUID, error)
	UpdateBookingStatus(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UpdateBookingStatusParams) (int64, error)
}

type BookingRepository struct {
	queries BookingWriteQueries
}

func NewBookingRepository(queries BookingWriteQueries) *BookingRepository {
	return &BookingRepository{queries: queries}
}

func (r *BookingRepository) Create(ctx context.Context, tx sqlstore.DBTX, b *booking.Booking) (uuid.UUID, error) {
	params := sqlstore.CreateBookingParams{
		ID:        b.ID(),
		ItemID:    b.ItemID(),
		BookerID:  b.BookerID(),
		StartTime: b.Window().Start(),
		EndTime:   b.Window().End(),
		Status:    b.Status().String(),
	}

	resultID, err := r.queries.CreateBooking(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create booking", err)
	}

	return resultID, nil
}

// UpdateStatus performs the WAITING to decided transition. Zero matched rows
// means another transaction decided the booking first.
func (r *BookingRepository) UpdateStatus(ctx context.Context, tx sqlstore.DBTX, bookingID uuid.UUID, status booking.Status) error {
	params := sqlstore.UpdateBookingStatusParams{
		ID:         bookingID,
		Status:     status.String(),
		FromStatus: booking.StatusWaiting.String(),
	}

	affected, err := r.queries.UpdateBookingStatus(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking status", err)
	}
	if affected == 0 {
		return booking.ErrAlreadyDecided
	}

	return nil
}
