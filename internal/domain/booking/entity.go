package booking

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrOwnerCannotBook is surfaced as "not found" at the API boundary, a
	// quirk inherited from the source system that callers depend on.
	ErrOwnerCannotBook = errors.New("the item owner cannot book it")
	ErrItemUnavailable = errors.New("the item is not available")
	ErrAlreadyDecided  = errors.New("status already decided")
)

// ItemSpec is the slice of item state the booking rules need; the full item
// aggregate stays out of this package.
type ItemSpec struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Available bool
}

type Booking struct {
	id        uuid.UUID
	itemID    uuid.UUID
	bookerID  uuid.UUID
	window    TimeWindow
	status    Status
	createdAt time.Time
	updatedAt time.Time
}

// NewBooking runs the creation checks in their documented order: owner
// self-booking, time window sanity, item availability. The caller has already
// established that item and booker exist.
func NewBooking(item ItemSpec, bookerID uuid.UUID, start, end, now time.Time) (*Booking, error) {
	if item.OwnerID == bookerID {
		return nil, ErrOwnerCannotBook
	}
	window, err := NewTimeWindow(start, end, now)
	if err != nil {
		return nil, err
	}
	if !item.Available {
		return nil, ErrItemUnavailable
	}
	return &Booking{
		id:       uuid.New(),
		itemID:   item.ID,
		bookerID: bookerID,
		window:   window,
		status:   StatusWaiting,
	}, nil
}

func ReconstructBooking(
	id, itemID, bookerID uuid.UUID,
	window TimeWindow,
	status Status,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:        id,
		itemID:    itemID,
		bookerID:  bookerID,
		window:    window,
		status:    status,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Decide moves a WAITING booking to APPROVED or REJECTED. Both outcomes are
// terminal; deciding twice fails regardless of the grant value.
func (b *Booking) Decide(grant bool) error {
	if b.status != StatusWaiting {
		return ErrAlreadyDecided
	}
	if grant {
		b.status = StatusApproved
	} else {
		b.status = StatusRejected
	}
	return nil
}

func (b *Booking) IsWaiting() bool {
	return b.status == StatusWaiting
}

func (b *Booking) HasFinished(now time.Time) bool {
	return b.window.IsPast(now)
}

func (b *Booking) ID() uuid.UUID       { return b.id }
func (b *Booking) ItemID() uuid.UUID   { return b.itemID }
func (b *Booking) BookerID() uuid.UUID { return b.bookerID }
func (b *Booking) Window() TimeWindow  { return b.window }
func (b *Booking) Status() Status      { return b.status }
func (b *Booking) CreatedAt() time.Time {
	return b.createdAt
}
func (b *Booking) UpdatedAt() time.Time {
	return b.updatedAt
}
