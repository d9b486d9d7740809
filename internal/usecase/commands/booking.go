package commands

import (
	"context"
	"time"

	cr "github.com/cockroachdb/errors"

	dombooking "lendshare/internal/domain/booking"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrItemNotFound    = errs.NotFound("item was not found")
	ErrUserNotFound    = errs.NotFound("user was not found")
	ErrBookingNotFound = errs.NotFound("booking was not found")
	// Deciding is reserved to the item owner; everyone else is told the
	// booking does not exist.
	ErrNotItemOwner = errs.NotFound("only the item owner can decide the booking")
)

type CreateBookingRequest struct {
	ItemID    uuid.UUID
	StartTime time.Time
	EndTime   time.Time
}

type CreateBookingResult struct {
	BookingID uuid.UUID
}

type BookingCommands interface {
	CreateBooking(ctx context.Context, req CreateBookingRequest, actorID uuid.UUID) (*CreateBookingResult, error)
	DecideBooking(ctx context.Context, bookingID, actorID uuid.UUID, approved bool) error
}

type bookingUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{uow: uow, clock: clk}
}

// CreateBooking validates in a fixed order: item existence, actor existence,
// then the domain checks (owner self-booking, time window, availability).
// Reordering changes which failure a bad request reports.
func (uc *bookingUseCaseImpl) CreateBooking(ctx context.Context, req CreateBookingRequest, actorID uuid.UUID) (*CreateBookingResult, error) {
	now := uc.clock.Now()

	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, derr := tx.Reads().ItemByID(ctx, req.ItemID)
		if derr != nil {
			if infra.IsNotFound(derr) {
				return ErrItemNotFound
			}
			return derr
		}
		if _, derr = tx.Reads().UserByID(ctx, actorID); derr != nil {
			if infra.IsNotFound(derr) {
				return ErrUserNotFound
			}
			return derr
		}

		spec := dombooking.ItemSpec{ID: item.ID, OwnerID: item.OwnerID, Available: item.Available}
		b, derr := dombooking.NewBooking(spec, actorID, req.StartTime, req.EndTime, now)
		if derr != nil {
			return markBookingErr(derr)
		}

		id, derr := tx.Bookings().Create(ctx, tx.DB(), b)
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateBookingResult{BookingID: createdID}, nil
}

func (uc *bookingUseCaseImpl) DecideBooking(ctx context.Context, bookingID, actorID uuid.UUID, approved bool) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		snap, derr := tx.Reads().BookingByID(ctx, bookingID)
		if derr != nil {
			if infra.IsNotFound(derr) {
				return ErrBookingNotFound
			}
			return derr
		}
		if _, derr = tx.Reads().UserByID(ctx, actorID); derr != nil {
			if infra.IsNotFound(derr) {
				return ErrUserNotFound
			}
			return derr
		}
		if snap.ItemOwnerID != actorID {
			return ErrNotItemOwner
		}

		b := dombooking.ReconstructBooking(
			snap.ID, snap.ItemID, snap.BookerID,
			dombooking.ReconstructTimeWindow(snap.StartTime, snap.EndTime),
			dombooking.Status(snap.Status),
			time.Time{}, time.Time{},
		)
		if derr = b.Decide(approved); derr != nil {
			return markBookingErr(derr)
		}
		// The repository write is guarded on WAITING, so a decide that lost a
		// concurrent race surfaces here as already decided.
		if derr = tx.Bookings().UpdateStatus(ctx, tx.DB(), bookingID, b.Status()); derr != nil {
			return markBookingErr(derr)
		}
		return nil
	})
}

func markBookingErr(err error) error {
	switch {
	case cr.Is(err, dombooking.ErrOwnerCannotBook):
		return errs.MarkNotFound(err)
	case cr.Is(err, dombooking.ErrInvalidTimeWindow),
		cr.Is(err, dombooking.ErrItemUnavailable),
		cr.Is(err, dombooking.ErrAlreadyDecided):
		return errs.MarkValidation(err)
	default:
		return err
	}
}
