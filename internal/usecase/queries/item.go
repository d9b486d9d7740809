package queries

import (
	"context"
	"strings"
	"time"

	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrItemNotFound = errs.NotFound("item was not found")

type ItemView struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"owner_id"`
	RequestID   *uuid.UUID `json:"request_id,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   bool       `json:"available"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// BookingRef is the projection of a neighboring booking shown on an item:
// the finished one closest behind now and the upcoming one closest ahead.
type BookingRef struct {
	ID        uuid.UUID `json:"id"`
	BookerID  uuid.UUID `json:"booker_id"`
	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`
}

type CommentView struct {
	ID         uuid.UUID `json:"id"`
	AuthorName string    `json:"author_name"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"created_at"`
}

type ItemDetailView struct {
	ItemView
	LastBooking *BookingRef   `json:"last_booking,omitempty"`
	NextBooking *BookingRef   `json:"next_booking,omitempty"`
	Comments    []CommentView `json:"comments"`
}

type ItemReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, limit, offset int32) ([]*ItemView, error)
	Search(ctx context.Context, text string, limit, offset int32) ([]*ItemView, error)
	CountByOwner(ctx context.Context, ownerID uuid.UUID) (int64, error)
	// Neighbor lookups return nil when no booking qualifies.
	LastBookingForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*BookingRef, error)
	NextBookingForItem(ctx context.Context, itemID uuid.UUID, now time.Time) (*BookingRef, error)
	CommentsForItem(ctx context.Context, itemID uuid.UUID) ([]CommentView, error)
}

type ItemQueries interface {
	GetByID(ctx context.Context, id, actorID uuid.UUID) (*ItemDetailView, error)
	ListForOwner(ctx context.Context, ownerID uuid.UUID, from, size int) ([]*ItemDetailView, error)
	Search(ctx context.Context, text string, from, size int) ([]*ItemView, error)
}

type itemQueriesImpl struct {
	store ItemReadStore
	clk   clock.Clock
}

func NewItemQueries(store ItemReadStore, clk clock.Clock) ItemQueries {
	return &itemQueriesImpl{store: store, clk: clk}
}

// GetByID projects neighbor bookings only for the owner; comments are public.
func (q *itemQueriesImpl) GetByID(ctx context.Context, id, actorID uuid.UUID) (*ItemDetailView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	detail := &ItemDetailView{ItemView: *view}
	if view.OwnerID == actorID {
		if err := q.attachNeighbors(ctx, detail); err != nil {
			return nil, err
		}
	}
	comments, err := q.store.CommentsForItem(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Comments = comments
	return detail, nil
}

func (q *itemQueriesImpl) ListForOwner(ctx context.Context, ownerID uuid.UUID, from, size int) ([]*ItemDetailView, error) {
	limit, offset, err := PageOffset(from, size)
	if err != nil {
		return nil, err
	}
	rows, err := q.store.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*ItemDetailView, 0, len(rows))
	for _, row := range rows {
		detail := &ItemDetailView{ItemView: *row}
		if err := q.attachNeighbors(ctx, detail); err != nil {
			return nil, err
		}
		comments, err := q.store.CommentsForItem(ctx, row.ID)
		if err != nil {
			return nil, err
		}
		detail.Comments = comments
		out = append(out, detail)
	}
	return out, nil
}

// Search returns an empty page for blank text without touching storage.
func (q *itemQueriesImpl) Search(ctx context.Context, text string, from, size int) ([]*ItemView, error) {
	limit, offset, err := PageOffset(from, size)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(text) == "" {
		return []*ItemView{}, nil
	}
	return q.store.Search(ctx, text, limit, offset)
}

func (q *itemQueriesImpl) attachNeighbors(ctx context.Context, detail *ItemDetailView) error {
	now := q.clk.Now()
	last, err := q.store.LastBookingForItem(ctx, detail.ID, now)
	if err != nil {
		return err
	}
	next, err := q.store.NextBookingForItem(ctx, detail.ID, now)
	if err != nil {
		return err
	}
	detail.LastBooking = last
	detail.NextBooking = next
	return nil
}
