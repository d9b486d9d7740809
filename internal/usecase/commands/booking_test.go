//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/commands"
	"lendshare/internal/usecase/shared"
	sharedmock "lendshare/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingCommandsTestSuite struct {
	suite.Suite
	mockCtrl     *gomock.Controller
	mockUoW      *sharedmock.MockUnitOfWork
	mockTx       *sharedmock.MockTx
	mockReads    *sharedmock.MockCommandReads
	mockBookings *sharedmock.MockBookingRepository
	clk          *clock.MockClock
	uc           commands.BookingCommands
}

func (s *BookingCommandsTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockUoW = sharedmock.NewMockUnitOfWork(s.mockCtrl)
	s.mockTx = sharedmock.NewMockTx(s.mockCtrl)
	s.mockReads = sharedmock.NewMockCommandReads(s.mockCtrl)
	s.mockBookings = sharedmock.NewMockBookingRepository(s.mockCtrl)
	s.clk = clock.NewMockClock(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	s.uc = commands.NewBookingUseCase(s.mockUoW, s.clk)

	s.mockUoW.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.mockTx)
		}).AnyTimes()
	s.mockTx.EXPECT().Reads().Return(s.mockReads).AnyTimes()
	s.mockTx.EXPECT().Bookings().Return(s.mockBookings).AnyTimes()
	s.mockTx.EXPECT().DB().Return(nil).AnyTimes()
}

func (s *BookingCommandsTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingCommandsSuite(t *testing.T) {
	suite.Run(t, new(BookingCommandsTestSuite))
}

func notFoundErr(msg string) error {
	return infra.WrapRepoErr(msg, pgx.ErrNoRows, infra.KindNotFound)
}

func (s *BookingCommandsTestSuite) TestCreateBooking() {
	actorID := uuid.New()
	now := s.clk.Now()

	itemSnap := &shared.ItemSnapshot{
		ID:        uuid.New(),
		OwnerID:   uuid.New(),
		Name:      "Cordless Drill",
		Available: true,
	}
	userSnap := &shared.UserSnapshot{ID: actorID, Name: "Bob", Email: "bob@example.com"}

	req := commands.CreateBookingRequest{
		ItemID:    itemSnap.ID,
		StartTime: now.Add(24 * time.Hour),
		EndTime:   now.Add(48 * time.Hour),
	}

	s.Run("success: waiting booking is stored", func() {
		bookingID := uuid.New()
		s.mockReads.EXPECT().ItemByID(gomock.Any(), itemSnap.ID).Return(itemSnap, nil)
		s.mockReads.EXPECT().UserByID(gomock.Any(), actorID).Return(userSnap, nil)
		s.mockBookings.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ any, b *booking.Booking) (uuid.UUID, error) {
				s.Equal(itemSnap.ID, b.ItemID())
				s.Equal(actorID, b.BookerID())
				s.Equal(booking.StatusWaiting, b.Status())
				return bookingID, nil
			})

		result, err := s.uc.CreateBooking(context.Background(), req, actorID)
		s.NoError(err)
		s.Equal(bookingID, result.BookingID)
	})

	s.Run("missing item is checked before actor", func() {
		s.mockReads.EXPECT().ItemByID(gomock.Any(), itemSnap.ID).
			Return(nil, notFoundErr("item not found"))

		_, err := s.uc.CreateBooking(context.Background(), req, actorID)
		s.ErrorIs(err, commands.ErrItemNotFound)
	})

	s.Run("missing actor", func() {
		s.mockReads.EXPECT().ItemByID(gomock.Any(), itemSnap.ID).Return(itemSnap, nil)
		s.mockReads.EXPECT().UserByID(gomock.Any(), actorID).
			Return(nil, notFoundErr("user not found"))

		_, err := s.uc.CreateBooking(context.Background(), req, actorID)
		s.ErrorIs(err, commands.ErrUserNotFound)
	})

	s.Run("owner self-booking reads as not found", func() {
		ownerSnap := &shared.UserSnapshot{ID: itemSnap.OwnerID}
		s.mockReads.EXPECT().ItemByID(gomock.Any(), itemSnap.ID).Return(itemSnap, nil)
		s.mockReads.EXPECT().UserByID(gomock.Any(), itemSnap.OwnerID).Return(ownerSnap, nil)

		_, err := s.uc.CreateBooking(context.Background(), req, itemSnap.OwnerID)
		s.True(errs.IsNotFound(err))
		s.Contains(err.Error(), "the item owner cannot book it")
	})

	s.Run("bad window is a validation failure", func() {
		badReq := req
		badReq.EndTime = badReq.StartTime
		s.mockReads.EXPECT().ItemByID(gomock.Any(), itemSnap.ID).Return(itemSnap, nil)
		s.mockReads.EXPECT().UserByID(gomock.Any(), actorID).Return(userSnap, nil)

		_, err := s.uc.CreateBooking(context.Background(), badReq, actorID)
		s.True(errs.IsValidation(err))
	})

	s.Run("unavailable item is a validation failure", func() {
		unavailable := *itemSnap
		unavailable.Available = false
		s.mockReads.EXPECT().ItemByID(gomock.Any(), itemSnap.ID).Return(&unavailable, nil)
		s.mockReads.EXPECT().UserByID(gomock.Any(), actorID).Return(userSnap, nil)

		_, err := s.uc.CreateBooking(context.Background(), req, actorID)
		s.True(errs.IsValidation(err))
		s.Contains(err.Error(), "not available")
	})
}

func (s *BookingCommandsTestSuite) TestDecideBooking() {
	ownerID := uuid.New()
	bookingID := uuid.New()
	now := s.clk.Now()

	waitingSnap := &shared.BookingSnapshot{
		ID:          bookingID,
		ItemID:      uuid.New(),
		ItemOwnerID: ownerID,
		BookerID:    uuid.New(),
		Status:      string(booking.StatusWaiting),
		StartTime:   now.Add(24 * time.Hour),
		EndTime:     now.Add(48 * time.Hour),
	}
	ownerSnap := &shared.UserSnapshot{ID: ownerID, Name: "Alice", Email: "alice@example.com"}

	s.Run("owner approves", func() {
		s.mockReads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(waitingSnap, nil)
		s.mockReads.EXPECT().UserByID(gomock.Any(), ownerID).Return(ownerSnap, nil)
		s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), bookingID, booking.StatusApproved).
			Return(nil)

		s.NoError(s.uc.DecideBooking(context.Background(), bookingID, ownerID, true))
	})

	s.Run("owner rejects", func() {
		s.mockReads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(waitingSnap, nil)
		s.mockReads.EXPECT().UserByID(gomock.Any(), ownerID).Return(ownerSnap, nil)
		s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), bookingID, booking.StatusRejected).
			Return(nil)

		s.NoError(s.uc.DecideBooking(context.Background(), bookingID, ownerID, false))
	})

	s.Run("missing booking", func() {
		s.mockReads.EXPECT().BookingByID(gomock.Any(), bookingID).
			Return(nil, notFoundErr("booking not found"))

		err := s.uc.DecideBooking(context.Background(), bookingID, ownerID, true)
		s.ErrorIs(err, commands.ErrBookingNotFound)
	})

	s.Run("missing actor", func() {
		s.mockReads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(waitingSnap, nil)
		s.mockReads.EXPECT().UserByID(gomock.Any(), ownerID).
			Return(nil, notFoundErr("user not found"))

		err := s.uc.DecideBooking(context.Background(), bookingID, ownerID, true)
		s.ErrorIs(err, commands.ErrUserNotFound)
	})

	s.Run("non-owner cannot decide, including the booker", func() {
		bookerSnap := &shared.UserSnapshot{ID: waitingSnap.BookerID, Name: "Bob", Email: "bob@example.com"}
		s.mockReads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(waitingSnap, nil)
		s.mockReads.EXPECT().UserByID(gomock.Any(), waitingSnap.BookerID).Return(bookerSnap, nil)

		err := s.uc.DecideBooking(context.Background(), bookingID, waitingSnap.BookerID, true)
		s.ErrorIs(err, commands.ErrNotItemOwner)
		s.True(errs.IsNotFound(err))
	})

	s.Run("already decided booking", func() {
		decided := *waitingSnap
		decided.Status = string(booking.StatusApproved)
		s.mockReads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(&decided, nil)
		s.mockReads.EXPECT().UserByID(gomock.Any(), ownerID).Return(ownerSnap, nil)

		err := s.uc.DecideBooking(context.Background(), bookingID, ownerID, false)
		s.True(errs.IsValidation(err))
		s.Contains(err.Error(), "status already decided")
	})

	s.Run("concurrent decide loses to the first committed decision", func() {
		// Both transactions read WAITING; the guarded write lets only the
		// first one through and the second surfaces as already decided.
		s.mockReads.EXPECT().BookingByID(gomock.Any(), bookingID).Return(waitingSnap, nil)
		s.mockReads.EXPECT().UserByID(gomock.Any(), ownerID).Return(ownerSnap, nil)
		s.mockBookings.EXPECT().UpdateStatus(gomock.Any(), gomock.Any(), bookingID, booking.StatusRejected).
			Return(booking.ErrAlreadyDecided)

		err := s.uc.DecideBooking(context.Background(), bookingID, ownerID, false)
		s.True(errs.IsValidation(err))
		s.Contains(err.Error(), "status already decided")
	})
}
