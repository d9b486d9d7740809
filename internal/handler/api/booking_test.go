//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"lendshare/internal/handler/api"
	resdto "lendshare/internal/handler/dto/response"
	"lendshare/internal/handler/middleware"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/commands"
	"lendshare/internal/usecase/queries"
	"lendshare/tests/common/builder"
	"lendshare/tests/common/httptest"
	"lendshare/tests/common/testutil"
	commandsmock "lendshare/tests/mock/commands"
	queriesmock "lendshare/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type BookingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockBookingCommands
	mockQueries  *queriesmock.MockBookingQueries
	handler      *api.BookingHandler
	actorID      uuid.UUID
}

func (s *BookingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockBookingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockBookingQueries(s.mockCtrl)
	s.handler = api.NewBookingHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	identity := middleware.NewIdentityMiddleware().RequireIdentity()

	s.router.POST("/bookings", identity, s.handler.Create)
	s.router.GET("/bookings", identity, s.handler.ListOwn)
	s.router.GET("/bookings/owner", identity, s.handler.ListForOwnedItems)
	s.router.GET("/bookings/:id", identity, s.handler.Get)
	s.router.PATCH("/bookings/:id", identity, s.handler.Decide)
}

func (s *BookingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingHandlerSuite(t *testing.T) {
	suite.Run(t, new(BookingHandlerTestSuite))
}

type testCaseBooking struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *BookingHandlerTestSuite) TestCreate() {
	url := "/bookings"

	b := builder.NewBookingBuilder()
	reqBody := b.BuildCreateRequestDTO()
	returnView := b.BuildView()
	expectedResult := &commands.CreateBookingResult{BookingID: returnView.ID}

	s.Run("success: returns 201 Created with the stored view", func() {
		s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actorID).
			Return(expectedResult, nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), returnView.ID, s.actorID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.actorID.String())

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.ItemID, response.Item.ID)
		s.Equal(returnView.BookerID, response.Booker.ID)
		s.Equal("WAITING", response.Status)
	})

	s.Run("error: 400 Bad Request on binding failures", func() {
		cases := []testCaseBooking{
			{name: "missing field: item_id", mutate: testutil.Field("item_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: start_time", mutate: testutil.Field("start_time", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: end_time", mutate: testutil.Field("end_time", nil), expectCode: http.StatusBadRequest},
			{name: "malformed item_id", mutate: testutil.Field("item_id", "not-a-uuid"), expectCode: http.StatusBadRequest},
			{name: "malformed start_time", mutate: testutil.Field("start_time", "yesterday"), expectCode: http.StatusBadRequest},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, s.actorID.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 400 Bad Request without identity header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, middleware.SharerHeader)
	})

	s.Run("error: 400 Bad Request with malformed identity header", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "not-a-uuid")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, middleware.SharerHeader)
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		cases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "item not found",
				commandsError:  commands.ErrItemNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "item was not found",
			},
			{
				name:           "actor not found",
				commandsError:  commands.ErrUserNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "user was not found",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().CreateBooking(gomock.Any(), gomock.Any(), s.actorID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, s.actorID.String())
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestDecide
// ================================================================================

func (s *BookingHandlerTestSuite) TestDecide() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	returnView := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.ID = bookingID
		b.Status = "APPROVED"
	}).BuildView()

	s.Run("success: returns 200 OK with the decided view", func() {
		s.mockCommands.EXPECT().DecideBooking(gomock.Any(), bookingID, s.actorID, true).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID, s.actorID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=true", nil, s.actorID.String())

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal("APPROVED", response.Status)
	})

	s.Run("error: 400 Bad Request for missing approved parameter", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url, nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid approved parameter")
	})

	s.Run("error: 400 Bad Request for invalid booking id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/bookings/not-a-uuid?approved=true", nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("error: 400 Bad Request for repeated decision", func() {
		s.mockCommands.EXPECT().DecideBooking(gomock.Any(), bookingID, s.actorID, false).
			Return(errs.Validation("status already decided")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=false", nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "status already decided")
	})

	s.Run("error: 404 Not Found when a non-owner decides", func() {
		s.mockCommands.EXPECT().DecideBooking(gomock.Any(), bookingID, s.actorID, true).
			Return(commands.ErrNotItemOwner).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, url+"?approved=true", nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "only the item owner")
	})
}

// ================================================================================
// TestGet
// ================================================================================

func (s *BookingHandlerTestSuite) TestGet() {
	bookingID := uuid.New()
	url := "/bookings/" + bookingID.String()

	returnView := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.ID = bookingID
	}).BuildView()

	s.Run("success: returns 200 OK with BookingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID, s.actorID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.actorID.String())

		var response resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(bookingID, response.ID)
		s.Equal(returnView.ItemName, response.Item.Name)
		s.Equal(returnView.BookerName, response.Booker.Name)
	})

	s.Run("error: 404 Not Found for invisible booking", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), bookingID, s.actorID).
			Return(nil, queries.ErrBookingNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "booking was not found")
	})
}

// ================================================================================
// TestListOwn / TestListForOwnedItems
// ================================================================================

func (s *BookingHandlerTestSuite) TestListOwn() {
	url := "/bookings"

	views := []*queries.BookingView{
		builder.NewBookingBuilder().BuildView(),
		builder.NewBookingBuilder().BuildView(),
	}

	s.Run("success: defaults state=ALL from=0 size=10", func() {
		s.mockQueries.EXPECT().ListForBooker(gomock.Any(), s.actorID, "ALL", 0, 10).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.actorID.String())

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 2)
	})

	s.Run("success: forwards query parameters verbatim", func() {
		s.mockQueries.EXPECT().ListForBooker(gomock.Any(), s.actorID, "FUTURE", 5, 3).
			Return([]*queries.BookingView{}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?state=FUTURE&from=5&size=3", nil, s.actorID.String())
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 400 Bad Request for unsupported state", func() {
		s.mockQueries.EXPECT().ListForBooker(gomock.Any(), s.actorID, "FINISHED", 0, 10).
			Return(nil, errs.Validation("unsupported state: FINISHED")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?state=FINISHED", nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "unsupported state: FINISHED")
	})
}

func (s *BookingHandlerTestSuite) TestListForOwnedItems() {
	url := "/bookings/owner"

	s.Run("success: lists bookings of owned items", func() {
		views := []*queries.BookingView{builder.NewBookingBuilder().BuildView()}
		s.mockQueries.EXPECT().ListForOwner(gomock.Any(), s.actorID, "ALL", 0, 10).
			Return(views, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.actorID.String())

		var response []resdto.BookingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Len(response, 1)
	})

	s.Run("error: 400 Bad Request when the owner has no items", func() {
		s.mockQueries.EXPECT().ListForOwner(gomock.Any(), s.actorID, "ALL", 0, 10).
			Return(nil, queries.ErrNoItemsToList).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, s.actorID.String())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "no items, nothing to list")
	})
}
