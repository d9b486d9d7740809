package queries

import (
	"context"
	"time"

	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var (
	ErrBookingNotFound = errs.NotFound("booking was not found")
	ErrUserNotFound    = errs.NotFound("user was not found")
	ErrNoItemsToList   = errs.Validation("no items, nothing to list")
)

// StateFilter selects bookings by lifecycle status or by position of the
// rental window relative to now.
type StateFilter string

const (
	StateAll      StateFilter = "ALL"
	StateWaiting  StateFilter = "WAITING"
	StateRejected StateFilter = "REJECTED"
	StatePast     StateFilter = "PAST"
	StateFuture   StateFilter = "FUTURE"
	StateCurrent  StateFilter = "CURRENT"
)

// ParseStateFilter is strict: no trimming, no case folding. Anything outside
// the six literals is a validation failure carrying the offending input.
func ParseStateFilter(s string) (StateFilter, error) {
	switch StateFilter(s) {
	case StateAll, StateWaiting, StateRejected, StatePast, StateFuture, StateCurrent:
		return StateFilter(s), nil
	default:
		return "", errs.Validation("unsupported state: " + s)
	}
}

type BookingView struct {
	ID          uuid.UUID `json:"id"`
	ItemID      uuid.UUID `json:"item_id"`
	ItemName    string    `json:"item_name"`
	ItemOwnerID uuid.UUID `json:"item_owner_id"`
	BookerID    uuid.UUID `json:"booker_id"`
	BookerName  string    `json:"booker_name"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

type BookingReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*BookingView, error)
	// Candidate lists come back newest start time first; paging and state
	// filtering happen in this package.
	ListByBooker(ctx context.Context, bookerID uuid.UUID) ([]*BookingView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*BookingView, error)
}

type BookingQueries interface {
	GetByID(ctx context.Context, id, actorID uuid.UUID) (*BookingView, error)
	ListForBooker(ctx context.Context, actorID uuid.UUID, state string, from, size int) ([]*BookingView, error)
	ListForOwner(ctx context.Context, actorID uuid.UUID, state string, from, size int) ([]*BookingView, error)
}

type bookingQueriesImpl struct {
	store                  BookingReadStore
	users                  UserReadStore
	items                  ItemReadStore
	clk                    clock.Clock
	ownerListRequiresItems bool
}

func NewBookingQueries(
	store BookingReadStore,
	users UserReadStore,
	items ItemReadStore,
	clk clock.Clock,
	ownerListRequiresItems bool,
) BookingQueries {
	return &bookingQueriesImpl{
		store:                  store,
		users:                  users,
		items:                  items,
		clk:                    clk,
		ownerListRequiresItems: ownerListRequiresItems,
	}
}

// GetByID hides existence from everyone but the booker and the item owner.
func (q *bookingQueriesImpl) GetByID(ctx context.Context, id, actorID uuid.UUID) (*BookingView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	if view.BookerID != actorID && view.ItemOwnerID != actorID {
		return nil, ErrBookingNotFound
	}
	return view, nil
}

func (q *bookingQueriesImpl) ListForBooker(ctx context.Context, actorID uuid.UUID, state string, from, size int) ([]*BookingView, error) {
	filter, err := ParseStateFilter(state)
	if err != nil {
		return nil, err
	}
	if err := q.ensureUserExists(ctx, actorID); err != nil {
		return nil, err
	}
	rows, err := q.store.ListByBooker(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return q.pageAndFilter(rows, filter, from, size)
}

func (q *bookingQueriesImpl) ListForOwner(ctx context.Context, actorID uuid.UUID, state string, from, size int) ([]*BookingView, error) {
	filter, err := ParseStateFilter(state)
	if err != nil {
		return nil, err
	}
	if err := q.ensureUserExists(ctx, actorID); err != nil {
		return nil, err
	}
	if q.ownerListRequiresItems {
		count, err := q.items.CountByOwner(ctx, actorID)
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, ErrNoItemsToList
		}
	}
	rows, err := q.store.ListByOwner(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return q.pageAndFilter(rows, filter, from, size)
}

// pageAndFilter slices the page out of the full candidate list first and
// filters by state second, so a page can come back shorter than `size` even
// when later candidates would have matched.
func (q *bookingQueriesImpl) pageAndFilter(rows []*BookingView, filter StateFilter, from, size int) ([]*BookingView, error) {
	page, err := pageSlice(rows, from, size)
	if err != nil {
		return nil, err
	}
	return FilterByState(page, filter, q.clk.Now()), nil
}

// FilterByState keeps the bookings matching the filter, preserving order.
// Time states are exclusive on both window edges except CURRENT, which is
// start <= now < end.
func FilterByState(rows []*BookingView, filter StateFilter, now time.Time) []*BookingView {
	if filter == StateAll {
		return rows
	}
	out := make([]*BookingView, 0, len(rows))
	for _, row := range rows {
		var keep bool
		switch filter {
		case StateWaiting:
			keep = row.Status == "WAITING"
		case StateRejected:
			keep = row.Status == "REJECTED"
		case StatePast:
			keep = row.EndTime.Before(now)
		case StateFuture:
			keep = row.StartTime.After(now)
		case StateCurrent:
			keep = !row.StartTime.After(now) && now.Before(row.EndTime)
		}
		if keep {
			out = append(out, row)
		}
	}
	return out
}

func (q *bookingQueriesImpl) ensureUserExists(ctx context.Context, userID uuid.UUID) error {
	_, err := q.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
