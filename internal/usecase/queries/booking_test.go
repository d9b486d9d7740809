//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/queries"
	"lendshare/tests/common/builder"
	queriesmock "lendshare/tests/mock/queries"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingQueriesTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockStore *queriesmock.MockBookingReadStore
	mockUsers *queriesmock.MockUserReadStore
	mockItems *queriesmock.MockItemReadStore
	clk       *clock.MockClock
}

func (s *BookingQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = queriesmock.NewMockBookingReadStore(s.mockCtrl)
	s.mockUsers = queriesmock.NewMockUserReadStore(s.mockCtrl)
	s.mockItems = queriesmock.NewMockItemReadStore(s.mockCtrl)
	s.clk = clock.NewMockClock(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
}

func (s *BookingQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func (s *BookingQueriesTestSuite) newQueries(ownerListRequiresItems bool) queries.BookingQueries {
	return queries.NewBookingQueries(s.mockStore, s.mockUsers, s.mockItems, s.clk, ownerListRequiresItems)
}

func (s *BookingQueriesTestSuite) expectUserExists(userID uuid.UUID) {
	s.mockUsers.EXPECT().FindByID(gomock.Any(), userID).
		Return(builder.NewUserBuilder().With(func(b *builder.UserBuilder) { b.ID = userID }).BuildView(), nil)
}

func TestBookingQueriesSuite(t *testing.T) {
	suite.Run(t, new(BookingQueriesTestSuite))
}

func (s *BookingQueriesTestSuite) TestGetByID() {
	view := builder.NewBookingBuilder().BuildView()

	s.Run("booker can see the booking", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		actual, err := s.newQueries(true).GetByID(context.Background(), view.ID, view.BookerID)
		s.NoError(err)
		s.Equal(view, actual)
	})

	s.Run("item owner can see the booking", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		actual, err := s.newQueries(true).GetByID(context.Background(), view.ID, view.ItemOwnerID)
		s.NoError(err)
		s.Equal(view, actual)
	})

	s.Run("stranger is told the booking does not exist", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)

		_, err := s.newQueries(true).GetByID(context.Background(), view.ID, uuid.New())
		s.ErrorIs(err, queries.ErrBookingNotFound)
	})

	s.Run("missing booking", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), view.ID).
			Return(nil, infra.WrapRepoErr("booking not found", pgx.ErrNoRows, infra.KindNotFound))

		_, err := s.newQueries(true).GetByID(context.Background(), view.ID, view.BookerID)
		s.ErrorIs(err, queries.ErrBookingNotFound)
	})
}

func (s *BookingQueriesTestSuite) TestListForBooker() {
	bookerID := uuid.New()
	now := s.clk.Now()

	newView := func(status string, start, end time.Time) *queries.BookingView {
		return builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.BookerID = bookerID
			b.Status = status
			b.StartTime = start
			b.EndTime = end
		}).BuildView()
	}

	s.Run("unsupported state short-circuits before any lookup", func() {
		_, err := s.newQueries(true).ListForBooker(context.Background(), bookerID, "FINISHED", 0, 10)
		s.True(errs.IsValidation(err))
		s.Contains(err.Error(), "unsupported state: FINISHED")
	})

	s.Run("unknown actor", func() {
		s.mockUsers.EXPECT().FindByID(gomock.Any(), bookerID).
			Return(nil, infra.WrapRepoErr("user not found", pgx.ErrNoRows, infra.KindNotFound))

		_, err := s.newQueries(true).ListForBooker(context.Background(), bookerID, "ALL", 0, 10)
		s.ErrorIs(err, queries.ErrUserNotFound)
	})

	s.Run("page is cut before the state filter", func() {
		// Candidates newest first: WAITING, APPROVED, WAITING. A page of two
		// filtered for WAITING keeps only the first row even though the third
		// would have matched.
		rows := []*queries.BookingView{
			newView("WAITING", now.Add(72*time.Hour), now.Add(96*time.Hour)),
			newView("APPROVED", now.Add(24*time.Hour), now.Add(48*time.Hour)),
			newView("WAITING", now.Add(-48*time.Hour), now.Add(-24*time.Hour)),
		}
		s.expectUserExists(bookerID)
		s.mockStore.EXPECT().ListByBooker(gomock.Any(), bookerID).Return(rows, nil)

		actual, err := s.newQueries(true).ListForBooker(context.Background(), bookerID, "WAITING", 0, 2)
		s.NoError(err)
		if diff := cmp.Diff([]*queries.BookingView{rows[0]}, actual); diff != "" {
			s.T().Errorf("page mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("from snaps to the containing page", func() {
		rows := []*queries.BookingView{
			newView("WAITING", now.Add(72*time.Hour), now.Add(96*time.Hour)),
			newView("WAITING", now.Add(24*time.Hour), now.Add(48*time.Hour)),
			newView("WAITING", now.Add(-48*time.Hour), now.Add(-24*time.Hour)),
		}
		s.expectUserExists(bookerID)
		s.mockStore.EXPECT().ListByBooker(gomock.Any(), bookerID).Return(rows, nil)

		// from=3 size=2 reads the second page (rows 2..3).
		actual, err := s.newQueries(true).ListForBooker(context.Background(), bookerID, "ALL", 3, 2)
		s.NoError(err)
		if diff := cmp.Diff([]*queries.BookingView{rows[2]}, actual); diff != "" {
			s.T().Errorf("page mismatch (-want +got):\n%s", diff)
		}
	})

	s.Run("invalid paging", func() {
		s.expectUserExists(bookerID)
		s.mockStore.EXPECT().ListByBooker(gomock.Any(), bookerID).Return(nil, nil)

		_, err := s.newQueries(true).ListForBooker(context.Background(), bookerID, "ALL", -1, 10)
		s.ErrorIs(err, queries.ErrInvalidPaging)
	})
}

func (s *BookingQueriesTestSuite) TestListForOwner() {
	ownerID := uuid.New()

	s.Run("owner without items cannot list", func() {
		s.expectUserExists(ownerID)
		s.mockItems.EXPECT().CountByOwner(gomock.Any(), ownerID).Return(int64(0), nil)

		_, err := s.newQueries(true).ListForOwner(context.Background(), ownerID, "ALL", 0, 10)
		s.ErrorIs(err, queries.ErrNoItemsToList)
	})

	s.Run("owner with items lists bookings", func() {
		view := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
			b.ItemOwnerID = ownerID
		}).BuildView()

		s.expectUserExists(ownerID)
		s.mockItems.EXPECT().CountByOwner(gomock.Any(), ownerID).Return(int64(2), nil)
		s.mockStore.EXPECT().ListByOwner(gomock.Any(), ownerID).
			Return([]*queries.BookingView{view}, nil)

		actual, err := s.newQueries(true).ListForOwner(context.Background(), ownerID, "ALL", 0, 10)
		s.NoError(err)
		s.Len(actual, 1)
	})

	s.Run("item gate disabled by policy", func() {
		s.expectUserExists(ownerID)
		s.mockStore.EXPECT().ListByOwner(gomock.Any(), ownerID).Return(nil, nil)

		actual, err := s.newQueries(false).ListForOwner(context.Background(), ownerID, "ALL", 0, 10)
		s.NoError(err)
		s.Empty(actual)
	})
}

func TestParseStateFilter(t *testing.T) {
	valid := []string{"ALL", "WAITING", "REJECTED", "PAST", "FUTURE", "CURRENT"}
	for _, state := range valid {
		actual, err := queries.ParseStateFilter(state)
		if err != nil {
			t.Errorf("ParseStateFilter(%q) returned error: %v", state, err)
		}
		if string(actual) != state {
			t.Errorf("ParseStateFilter(%q) = %q", state, actual)
		}
	}

	invalid := []string{"", "all", "Waiting", " ALL", "APPROVED", "FINISHED"}
	for _, state := range invalid {
		if _, err := queries.ParseStateFilter(state); err == nil {
			t.Errorf("ParseStateFilter(%q) should fail", state)
		}
	}
}

func TestFilterByState(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	mk := func(status string, startOffset, endOffset time.Duration) *queries.BookingView {
		return &queries.BookingView{
			ID:        uuid.New(),
			Status:    status,
			StartTime: now.Add(startOffset),
			EndTime:   now.Add(endOffset),
		}
	}

	past := mk("APPROVED", -48*time.Hour, -24*time.Hour)
	current := mk("APPROVED", -time.Hour, time.Hour)
	future := mk("WAITING", 24*time.Hour, 48*time.Hour)
	rejected := mk("REJECTED", 24*time.Hour, 48*time.Hour)
	startsNow := mk("APPROVED", 0, time.Hour)
	endsNow := mk("APPROVED", -time.Hour, 0)

	rows := []*queries.BookingView{future, rejected, startsNow, current, endsNow, past}

	cases := []struct {
		name   string
		filter queries.StateFilter
		want   []*queries.BookingView
	}{
		{name: "ALL keeps everything", filter: queries.StateAll, want: rows},
		{name: "WAITING", filter: queries.StateWaiting, want: []*queries.BookingView{future}},
		{name: "REJECTED", filter: queries.StateRejected, want: []*queries.BookingView{rejected}},
		{name: "PAST excludes a window ending exactly now", filter: queries.StatePast, want: []*queries.BookingView{past}},
		{name: "FUTURE excludes a window starting exactly now", filter: queries.StateFuture, want: []*queries.BookingView{future, rejected}},
		{name: "CURRENT includes start, excludes end", filter: queries.StateCurrent, want: []*queries.BookingView{startsNow, current}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			actual := queries.FilterByState(rows, tc.filter, now)
			if diff := cmp.Diff(tc.want, actual); diff != "" {
				t.Errorf("FilterByState mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPageOffset(t *testing.T) {
	cases := []struct {
		name       string
		from, size int
		limit      int32
		offset     int32
		wantErr    bool
	}{
		{name: "first page", from: 0, size: 10, limit: 10, offset: 0},
		{name: "from inside a page snaps down", from: 7, size: 5, limit: 5, offset: 5},
		{name: "from on a page boundary", from: 10, size: 5, limit: 5, offset: 10},
		{name: "negative from", from: -1, size: 10, wantErr: true},
		{name: "zero size", from: 0, size: 0, wantErr: true},
		{name: "negative size", from: 0, size: -3, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			limit, offset, err := queries.PageOffset(tc.from, tc.size)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("PageOffset(%d, %d) should fail", tc.from, tc.size)
				}
				return
			}
			if err != nil {
				t.Fatalf("PageOffset(%d, %d) returned error: %v", tc.from, tc.size, err)
			}
			if limit != tc.limit || offset != tc.offset {
				t.Errorf("PageOffset(%d, %d) = (%d, %d), want (%d, %d)",
					tc.from, tc.size, limit, offset, tc.limit, tc.offset)
			}
		})
	}
}
