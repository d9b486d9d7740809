//go:build unit

package queries_test

import (
	"context"
	"testing"
	"time"

	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/usecase/queries"
	"lendshare/tests/common/builder"
	queriesmock "lendshare/tests/mock/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ItemQueriesTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockStore *queriesmock.MockItemReadStore
	clk       *clock.MockClock
	q         queries.ItemQueries
}

func (s *ItemQueriesTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockStore = queriesmock.NewMockItemReadStore(s.mockCtrl)
	s.clk = clock.NewMockClock(time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC))
	s.q = queries.NewItemQueries(s.mockStore, s.clk)
}

func (s *ItemQueriesTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestItemQueriesSuite(t *testing.T) {
	suite.Run(t, new(ItemQueriesTestSuite))
}

func (s *ItemQueriesTestSuite) TestGetByID() {
	now := s.clk.Now()
	view := builder.NewItemBuilder().BuildView()

	lastRef := &queries.BookingRef{
		ID:        uuid.New(),
		BookerID:  uuid.New(),
		StartTime: now.Add(-48 * time.Hour),
		EndTime:   now.Add(-24 * time.Hour),
	}
	nextRef := &queries.BookingRef{
		ID:        uuid.New(),
		BookerID:  uuid.New(),
		StartTime: now.Add(24 * time.Hour),
		EndTime:   now.Add(48 * time.Hour),
	}
	comments := []queries.CommentView{
		{ID: uuid.New(), AuthorName: "Bob Borrower", Text: "Worked great", CreatedAt: now.Add(-time.Hour)},
	}

	s.Run("owner sees neighbor bookings and comments", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		s.mockStore.EXPECT().LastBookingForItem(gomock.Any(), view.ID, now).Return(lastRef, nil)
		s.mockStore.EXPECT().NextBookingForItem(gomock.Any(), view.ID, now).Return(nextRef, nil)
		s.mockStore.EXPECT().CommentsForItem(gomock.Any(), view.ID).Return(comments, nil)

		actual, err := s.q.GetByID(context.Background(), view.ID, view.OwnerID)
		s.NoError(err)
		s.Equal(lastRef, actual.LastBooking)
		s.Equal(nextRef, actual.NextBooking)
		s.Equal(comments, actual.Comments)
	})

	s.Run("non-owner gets comments but no neighbors", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		s.mockStore.EXPECT().CommentsForItem(gomock.Any(), view.ID).Return(comments, nil)

		actual, err := s.q.GetByID(context.Background(), view.ID, uuid.New())
		s.NoError(err)
		s.Nil(actual.LastBooking)
		s.Nil(actual.NextBooking)
		s.Equal(comments, actual.Comments)
	})

	s.Run("owner of a never-booked item gets nil neighbors", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), view.ID).Return(view, nil)
		s.mockStore.EXPECT().LastBookingForItem(gomock.Any(), view.ID, now).Return(nil, nil)
		s.mockStore.EXPECT().NextBookingForItem(gomock.Any(), view.ID, now).Return(nil, nil)
		s.mockStore.EXPECT().CommentsForItem(gomock.Any(), view.ID).Return([]queries.CommentView{}, nil)

		actual, err := s.q.GetByID(context.Background(), view.ID, view.OwnerID)
		s.NoError(err)
		s.Nil(actual.LastBooking)
		s.Nil(actual.NextBooking)
		s.Empty(actual.Comments)
	})

	s.Run("missing item", func() {
		s.mockStore.EXPECT().FindByID(gomock.Any(), view.ID).
			Return(nil, infra.WrapRepoErr("item not found", pgx.ErrNoRows, infra.KindNotFound))

		_, err := s.q.GetByID(context.Background(), view.ID, view.OwnerID)
		s.ErrorIs(err, queries.ErrItemNotFound)
	})
}

func (s *ItemQueriesTestSuite) TestSearch() {
	s.Run("blank text returns empty page without touching storage", func() {
		actual, err := s.q.Search(context.Background(), "   ", 0, 10)
		s.NoError(err)
		s.NotNil(actual)
		s.Empty(actual)
	})

	s.Run("text is forwarded with snapped paging", func() {
		view := builder.NewItemBuilder().BuildView()
		s.mockStore.EXPECT().Search(gomock.Any(), "drill", int32(5), int32(5)).
			Return([]*queries.ItemView{view}, nil)

		actual, err := s.q.Search(context.Background(), "drill", 7, 5)
		s.NoError(err)
		s.Len(actual, 1)
	})

	s.Run("invalid paging", func() {
		_, err := s.q.Search(context.Background(), "drill", 0, 0)
		s.ErrorIs(err, queries.ErrInvalidPaging)
	})
}
