package response

import (
	"time"

	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID         uuid.UUID      `json:"id"`
	Item       BookingItemRef `json:"item"`
	Booker     BookingUserRef `json:"booker"`
	StartTime  time.Time      `json:"start"`
	EndTime    time.Time      `json:"end"`
	Status     string         `json:"status"`
	CreatedAt  time.Time      `json:"createdAt"`
}

type BookingItemRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type BookingUserRef struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	return &BookingResponse{
		ID:        v.ID,
		Item:      BookingItemRef{ID: v.ItemID, Name: v.ItemName},
		Booker:    BookingUserRef{ID: v.BookerID, Name: v.BookerName},
		StartTime: v.StartTime,
		EndTime:   v.EndTime,
		Status:    v.Status,
		CreatedAt: v.CreatedAt,
	}
}

func FromBookingViews(views []*queries.BookingView) []*BookingResponse {
	result := make([]*BookingResponse, len(views))
	for i, v := range views {
		result[i] = FromBookingView(v)
	}
	return result
}
