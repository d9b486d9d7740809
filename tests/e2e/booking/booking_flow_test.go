//go:build e2e

package booking_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"lendshare/internal/handler/dto/response"
	"lendshare/tests/common/builder"
	"lendshare/tests/common/dbtest"
	"lendshare/tests/common/httptest"
	"lendshare/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	bookingsURL      = "/bookings"
	ownerBookingsURL = "/bookings/owner"
	bookingURL       = "/bookings/%s"
	decideURL        = "/bookings/%s?approved=%t"
	commentURL       = "/items/%s/comment"
)

type BookingSuite struct {
	e2e.SharedSuite
}

func (s *BookingSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(BookingSuite))
}

// =============================================================================
// TestBookingLifecycle - Create / decide flow over HTTP
// =============================================================================

func (s *BookingSuite) TestBookingLifecycle() {
	s.Run("Normal case: booker creates a waiting booking and the owner approves it", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Bob Borrower", "bob@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)

		reqBody := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.ItemID = itemID }).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, bookerID.String())
		require.Equal(t, http.StatusCreated, w.Code, "Should create booking successfully")

		var created response.BookingResponse
		err := httptest.DecodeResponseBody(t, w.Body, &created)
		require.NoError(t, err)
		require.NotEqual(t, uuid.Nil, created.ID)

		expected := &response.BookingResponse{
			Item:   response.BookingItemRef{ID: itemID, Name: "Cordless Drill"},
			Booker: response.BookingUserRef{ID: bookerID, Name: "Bob Borrower"},
			Status: "WAITING",
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.BookingResponse{}, "ID", "StartTime", "EndTime", "CreatedAt"),
		}
		if diff := cmp.Diff(expected, &created, opts...); diff != "" {
			t.Errorf("Booking response mismatch (-want +got):\n%s", diff)
		}

		// The owner approves
		dw := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(decideURL, created.ID, true), nil, ownerID.String())
		require.Equal(t, http.StatusOK, dw.Code)

		var decided response.BookingResponse
		err = httptest.DecodeResponseBody(t, dw.Body, &decided)
		require.NoError(t, err)
		require.Equal(t, "APPROVED", decided.Status)

		// A decided booking cannot be decided again
		rw := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(decideURL, created.ID, false), nil, ownerID.String())
		httptest.AssertErrorResponse(t, rw, http.StatusBadRequest, "status already decided")
	})

	s.Run("Normal case: owner rejection is terminal too", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Bob Borrower", "bob@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Ladder", true)

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")

		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(decideURL, bookingID, false), nil, ownerID.String())
		require.Equal(t, http.StatusOK, w.Code)

		var decided response.BookingResponse
		err := httptest.DecodeResponseBody(t, w.Body, &decided)
		require.NoError(t, err)
		require.Equal(t, "REJECTED", decided.Status)

		rw := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(decideURL, bookingID, true), nil, ownerID.String())
		httptest.AssertErrorResponse(t, rw, http.StatusBadRequest, "status already decided")
	})

	s.Run("Error case: owner cannot book their own item", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)

		reqBody := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.ItemID = itemID }).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, ownerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "the item owner cannot book it")
	})

	s.Run("Error case: unavailable item cannot be booked", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Bob Borrower", "bob@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Broken Saw", false)

		reqBody := builder.NewBookingBuilder().
			With(func(b *builder.BookingBuilder) { b.ItemID = itemID }).
			BuildCreateRequestDTO()

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, bookerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "not available")
	})

	s.Run("Error case: non-owner cannot decide and is told nothing exists", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Bob Borrower", "bob@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")

		// The booker is not the item owner, so the decision is refused
		w := httptest.PerformRequest(t, s.Router, http.MethodPatch,
			fmt.Sprintf(decideURL, bookingID, true), nil, bookerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusNotFound, "only the item owner")
	})

	s.Run("Error case: identity header is required", func() {
		t := s.T()

		reqBody := builder.NewBookingBuilder().BuildCreateRequestDTO()
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, bookingsURL, reqBody, "")
		require.Equal(t, http.StatusBadRequest, w.Code, "Should reject requests without identity")
	})
}

// =============================================================================
// TestBookingVisibility - Only the booker and the item owner can see a booking
// =============================================================================

func (s *BookingSuite) TestBookingVisibility() {
	s.Run("Normal case: booker and owner both see the booking, a stranger gets 404", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Bob Borrower", "bob@example.com")
		strangerID := dbtest.CreateTestUser(t, s.DB, "Carol Stranger", "carol@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)

		now := time.Now().UTC()
		bookingID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")

		url := fmt.Sprintf(bookingURL, bookingID)

		for _, viewerID := range []uuid.UUID{bookerID, ownerID} {
			w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, viewerID.String())
			require.Equal(t, http.StatusOK, w.Code)

			var got response.BookingResponse
			err := httptest.DecodeResponseBody(t, w.Body, &got)
			require.NoError(t, err)
			require.Equal(t, bookingID, got.ID)
		}

		sw := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, strangerID.String())
		httptest.AssertErrorResponse(t, sw, http.StatusNotFound, "booking was not found")
	})

	s.Run("Error case: unknown booking ID returns 404", func() {
		t := s.T()

		viewerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		url := fmt.Sprintf(bookingURL, uuid.New())
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, viewerID.String())
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestBookingListings - State-filtered listings for bookers and item owners
// =============================================================================

func (s *BookingSuite) TestBookingListings() {
	s.Run("Normal case: booker listing filters by state", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Bob Borrower", "bob@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)

		now := time.Now().UTC()
		pastID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-48*time.Hour), now.Add(-24*time.Hour), "APPROVED")
		futureID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")

		all := s.listBookings(t, bookingsURL+"?state=ALL", bookerID)
		require.Len(t, all, 2)

		past := s.listBookings(t, bookingsURL+"?state=PAST", bookerID)
		require.Len(t, past, 1)
		require.Equal(t, pastID, past[0].ID)

		future := s.listBookings(t, bookingsURL+"?state=FUTURE", bookerID)
		require.Len(t, future, 1)
		require.Equal(t, futureID, future[0].ID)

		waiting := s.listBookings(t, bookingsURL+"?state=WAITING", bookerID)
		require.Len(t, waiting, 1)
		require.Equal(t, futureID, waiting[0].ID)

		rejected := s.listBookings(t, bookingsURL+"?state=REJECTED", bookerID)
		require.Empty(t, rejected)
	})

	s.Run("Normal case: a running booking is CURRENT", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Bob Borrower", "bob@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)

		now := time.Now().UTC()
		currentID := dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-time.Hour), now.Add(time.Hour), "APPROVED")

		current := s.listBookings(t, bookingsURL+"?state=CURRENT", bookerID)
		require.Len(t, current, 1)
		require.Equal(t, currentID, current[0].ID)
	})

	s.Run("Normal case: owner listing covers bookings of all owned items", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Bob Borrower", "bob@example.com")
		drillID := dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)
		ladderID := dbtest.CreateTestItem(t, s.DB, ownerID, "Ladder", true)

		now := time.Now().UTC()
		dbtest.CreateTestBooking(t, s.DB, drillID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "WAITING")
		dbtest.CreateTestBooking(t, s.DB, ladderID, bookerID,
			now.Add(72*time.Hour), now.Add(96*time.Hour), "WAITING")

		got := s.listBookings(t, ownerBookingsURL, ownerID)
		require.Len(t, got, 2)
	})

	s.Run("Error case: owner listing without any items is refused", func() {
		t := s.T()

		itemlessID := dbtest.CreateTestUser(t, s.DB, "Dan Empty", "dan@example.com")
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, ownerBookingsURL, nil, itemlessID.String())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "no items, nothing to list")
	})

	s.Run("Error case: unsupported state literal is refused", func() {
		t := s.T()

		bookerID := dbtest.CreateTestUser(t, s.DB, "Bob Borrower", "bob@example.com")
		w := httptest.PerformRequest(t, s.Router, http.MethodGet, bookingsURL+"?state=FINISHED", nil, bookerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "unsupported state: FINISHED")
	})
}

// =============================================================================
// TestCommentGate - Commenting requires a finished booking of the item
// =============================================================================

func (s *BookingSuite) TestCommentGate() {
	s.Run("Normal case: a past booking unlocks commenting", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Bob Borrower", "bob@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)

		now := time.Now().UTC()
		dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(-48*time.Hour), now.Add(-24*time.Hour), "APPROVED")

		body := map[string]string{"text": "Worked great, batteries last long"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(commentURL, itemID), body, bookerID.String())
		require.Equal(t, http.StatusCreated, w.Code, "Should create comment successfully")

		var got response.CommentResponse
		err := httptest.DecodeResponseBody(t, w.Body, &got)
		require.NoError(t, err)
		require.Equal(t, "Bob Borrower", got.AuthorName)
		require.Equal(t, "Worked great, batteries last long", got.Text)
	})

	s.Run("Error case: without a finished booking the comment is refused", func() {
		t := s.T()

		ownerID := dbtest.CreateTestUser(t, s.DB, "Alice Lender", "alice@example.com")
		bookerID := dbtest.CreateTestUser(t, s.DB, "Bob Borrower", "bob@example.com")
		itemID := dbtest.CreateTestItem(t, s.DB, ownerID, "Cordless Drill", true)

		// Only a future booking exists
		now := time.Now().UTC()
		dbtest.CreateTestBooking(t, s.DB, itemID, bookerID,
			now.Add(24*time.Hour), now.Add(48*time.Hour), "APPROVED")

		body := map[string]string{"text": "Trying to review early"}
		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			fmt.Sprintf(commentURL, itemID), body, bookerID.String())
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "no finished booking of this item")
	})
}

func (s *BookingSuite) listBookings(t *testing.T, url string, viewerID uuid.UUID) []*response.BookingResponse {
	t.Helper()
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, url, nil, viewerID.String())
	require.Equal(t, http.StatusOK, w.Code)

	var got []*response.BookingResponse
	err := httptest.DecodeResponseBody(t, w.Body, &got)
	require.NoError(t, err)
	return got
}
