//go:build unit

package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/infra"
	"lendshare/internal/infra/repository"
	"lendshare/internal/infra/sqlstore"
	"lendshare/tests/common/builder"
	repositorymock "lendshare/tests/mock/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// =============================================================================
// Create Booking Tests
// =============================================================================

func TestBookingRepository_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name          string
		setupMock     func(*repositorymock.MockBookingWriteQueries, *booking.Booking, sqlstore.DBTX)
		expectedError bool
		expectKind    infra.RepositoryErrorKind
	}{
		{
			name: "success: booking created successfully",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlstore.DBTX) {
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(b.ID(), nil)
			},
			expectedError: false,
		},
		{
			name: "error: database error occurs",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlstore.DBTX) {
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(uuid.Nil, errors.New("database connection error"))
			},
			expectedError: true,
			expectKind:    infra.KindDBFailure,
		},
		{
			name: "error: unknown item or booker",
			setupMock: func(mock *repositorymock.MockBookingWriteQueries, b *booking.Booking, tx sqlstore.DBTX) {
				fk := &pgconn.PgError{Code: "23503", Message: "insert or update violates foreign key constraint"}
				mock.EXPECT().CreateBooking(ctx, tx, gomock.Any()).Return(uuid.Nil, fk)
			},
			expectedError: true,
			expectKind:    infra.KindForeignKeyViolated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
			mockDB := &mockDBTX{}
			repo := repository.NewBookingRepository(mockQueries)

			domainBooking, err := builder.NewBookingBuilder().BuildDomain(time.Now())
			require.NoError(t, err)

			tc.setupMock(mockQueries, domainBooking, mockDB)

			bookingID, actualError := repo.Create(ctx, mockDB, domainBooking)

			if tc.expectedError {
				require.Error(t, actualError)
				if tc.expectKind != "" {
					assert.True(t, infra.IsKind(actualError, tc.expectKind), "expected kind [%v] but got [%T] (%v)", tc.expectKind, actualError, actualError)
				}
				assert.Equal(t, uuid.Nil, bookingID, "bookingID should be nil when error occurs")
			} else {
				assert.NoError(t, actualError)
				assert.NotEqual(t, uuid.Nil, bookingID)
			}
		})
	}
}

// =============================================================================
// UpdateStatus Tests
// =============================================================================

func TestBookingRepository_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()

	t.Run("success: waiting booking is flipped", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewBookingRepository(mockQueries)

		mockQueries.EXPECT().
			UpdateBookingStatus(ctx, mockDB, sqlstore.UpdateBookingStatusParams{
				ID:         bookingID,
				Status:     booking.StatusApproved.String(),
				FromStatus: booking.StatusWaiting.String(),
			}).
			Return(int64(1), nil)

		assert.NoError(t, repo.UpdateStatus(ctx, mockDB, bookingID, booking.StatusApproved))
	})

	t.Run("error: zero matched rows means a concurrent decision won", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewBookingRepository(mockQueries)

		mockQueries.EXPECT().
			UpdateBookingStatus(ctx, mockDB, gomock.Any()).
			Return(int64(0), nil)

		err := repo.UpdateStatus(ctx, mockDB, bookingID, booking.StatusRejected)
		assert.ErrorIs(t, err, booking.ErrAlreadyDecided)
	})

	t.Run("error: database error occurs", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		mockQueries := repositorymock.NewMockBookingWriteQueries(ctrl)
		mockDB := &mockDBTX{}
		repo := repository.NewBookingRepository(mockQueries)

		mockQueries.EXPECT().
			UpdateBookingStatus(ctx, mockDB, gomock.Any()).
			Return(int64(0), errors.New("database connection error"))

		err := repo.UpdateStatus(ctx, mockDB, bookingID, booking.StatusApproved)
		require.Error(t, err)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
	})
}

// mockDBTX is a mock implementation of sqlstore.DBTX interface
type mockDBTX struct{}

func (m *mockDBTX) Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockDBTX) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockDBTX) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	panic("mockDBTX.QueryRow was called unexpectedly. Use the queries mock instead.")
}
