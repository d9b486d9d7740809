//go:build unit || e2e

package builder

import (
	"time"

	dombooking "lendshare/internal/domain/booking"
	reqdto "lendshare/internal/handler/dto/request"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	ItemName    string
	ItemOwnerID uuid.UUID
	BookerID    uuid.UUID
	BookerName  string
	StartTime   time.Time
	EndTime     time.Time
	Status      string
	CreatedAt   time.Time
}

func NewBookingBuilder() *BookingBuilder {
	now := time.Now()
	return &BookingBuilder{
		ID:          uuid.New(),
		ItemID:      uuid.New(),
		ItemName:    "Cordless Drill",
		ItemOwnerID: uuid.New(),
		BookerID:    uuid.New(),
		BookerName:  "Bob Borrower",
		StartTime:   now.Add(24 * time.Hour),
		EndTime:     now.Add(48 * time.Hour),
		Status:      string(dombooking.StatusWaiting),
		CreatedAt:   now,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *BookingBuilder) BuildDomain(now time.Time) (*dombooking.Booking, error) {
	spec := dombooking.ItemSpec{ID: b.ItemID, OwnerID: b.ItemOwnerID, Available: true}
	return dombooking.NewBooking(spec, b.BookerID, b.StartTime, b.EndTime, now)
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ItemID:    b.ItemID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	return &queries.BookingView{
		ID:          b.ID,
		ItemID:      b.ItemID,
		ItemName:    b.ItemName,
		ItemOwnerID: b.ItemOwnerID,
		BookerID:    b.BookerID,
		BookerName:  b.BookerName,
		StartTime:   b.StartTime,
		EndTime:     b.EndTime,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
	}
}
