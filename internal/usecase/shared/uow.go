package shared

import (
	"context"
	"time"

	"lendshare/internal/domain/booking"
	"lendshare/internal/domain/comment"
	"lendshare/internal/domain/item"
	"lendshare/internal/domain/request"
	"lendshare/internal/domain/user"
	"lendshare/internal/infra/sqlstore"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// WithinReadOnly: Read-only transaction for multi-table consistent reads
	WithinReadOnly(ctx context.Context, fn func(ctx context.Context, db sqlstore.DBTX) error) error
	// WithDB: Single query operations using implicit transactions
	WithDB(ctx context.Context, fn func(ctx context.Context, db sqlstore.DBTX) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Items() ItemRepository
	Users() UserRepository
	Comments() CommentRepository
	Requests() RequestRepository
	Reads() CommandReads
	DB() sqlstore.DBTX
}

type CommandReads interface {
	UserByID(ctx context.Context, id uuid.UUID) (*UserSnapshot, error)
	ItemByID(ctx context.Context, id uuid.UUID) (*ItemSnapshot, error)
	BookingByID(ctx context.Context, id uuid.UUID) (*BookingSnapshot, error)
	RequestByID(ctx context.Context, id uuid.UUID) (*RequestSnapshot, error)
	// FinishedBookingsCount feeds the comment eligibility gate. It counts
	// bookings of any status by the user on the item that ended before now.
	FinishedBookingsCount(ctx context.Context, itemID, bookerID uuid.UUID, before time.Time) (int64, error)
	OwnedItemsCount(ctx context.Context, ownerID uuid.UUID) (int64, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx sqlstore.DBTX, b *booking.Booking) (uuid.UUID, error)
	UpdateStatus(ctx context.Context, tx sqlstore.DBTX, bookingID uuid.UUID, status booking.Status) error
}

type ItemRepository interface {
	Create(ctx context.Context, tx sqlstore.DBTX, it *item.Item) (uuid.UUID, error)
	Update(ctx context.Context, tx sqlstore.DBTX, it *item.Item) error
	FindByID(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) (*item.Item, error)
}

type UserRepository interface {
	Create(ctx context.Context, tx sqlstore.DBTX, u *user.User) (uuid.UUID, error)
	Update(ctx context.Context, tx sqlstore.DBTX, u *user.User) error
	FindByID(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) (*user.User, error)
	Delete(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) error
}

type CommentRepository interface {
	Create(ctx context.Context, tx sqlstore.DBTX, c *comment.Comment) (uuid.UUID, error)
}

type RequestRepository interface {
	Create(ctx context.Context, tx sqlstore.DBTX, r *request.Request) (uuid.UUID, error)
}
