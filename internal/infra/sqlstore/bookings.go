package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createBooking = `
INSERT INTO bookings (id, item_id, booker_id, start_time, end_time, status)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

type CreateBookingParams struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	BookerID  uuid.UUID
	StartTime time.Time
	EndTime   time.Time
	Status    string
}

func (q *Queries) CreateBooking(ctx context.Context, db DBTX, arg CreateBookingParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createBooking,
		arg.ID, arg.ItemID, arg.BookerID, arg.StartTime, arg.EndTime, arg.Status)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

// The write is guarded on the current status. A decide that raced against an
// already-committed decision matches zero rows instead of overwriting it.
const updateBookingStatus = `
UPDATE bookings
SET status = $2, updated_at = now()
WHERE id = $1 AND status = $3
`

type UpdateBookingStatusParams struct {
	ID         uuid.UUID
	Status     string
	FromStatus string
}

func (q *Queries) UpdateBookingStatus(ctx context.Context, db DBTX, arg UpdateBookingStatusParams) (int64, error) {
	result, err := db.Exec(ctx, updateBookingStatus, arg.ID, arg.Status, arg.FromStatus)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected(), nil
}

const getBookingByID = `
SELECT b.id, b.item_id, i.name AS item_name, i.owner_id AS item_owner_id,
       b.booker_id, u.name AS booker_name,
       b.start_time, b.end_time, b.status, b.created_at, b.updated_at
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id
WHERE b.id = $1
`

type GetBookingByIDRow struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	ItemName    string
	ItemOwnerID uuid.UUID
	BookerID    uuid.UUID
	BookerName  string
	StartTime   pgtype.Timestamptz
	EndTime     pgtype.Timestamptz
	Status      string
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

func (q *Queries) GetBookingByID(ctx context.Context, db DBTX, id uuid.UUID) (GetBookingByIDRow, error) {
	row := db.QueryRow(ctx, getBookingByID, id)
	var i GetBookingByIDRow
	err := row.Scan(&i.ID, &i.ItemID, &i.ItemName, &i.ItemOwnerID,
		&i.BookerID, &i.BookerName,
		&i.StartTime, &i.EndTime, &i.Status, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getBookingSnapshot = `
SELECT b.id, b.item_id, i.owner_id AS item_owner_id, b.booker_id,
       b.status, b.start_time, b.end_time
FROM bookings b
JOIN items i ON i.id = b.item_id
WHERE b.id = $1
`

type GetBookingSnapshotRow struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	ItemOwnerID uuid.UUID
	BookerID    uuid.UUID
	Status      string
	StartTime   pgtype.Timestamptz
	EndTime     pgtype.Timestamptz
}

func (q *Queries) GetBookingSnapshot(ctx context.Context, db DBTX, id uuid.UUID) (GetBookingSnapshotRow, error) {
	row := db.QueryRow(ctx, getBookingSnapshot, id)
	var i GetBookingSnapshotRow
	err := row.Scan(&i.ID, &i.ItemID, &i.ItemOwnerID, &i.BookerID,
		&i.Status, &i.StartTime, &i.EndTime)
	return i, err
}

// Listings return every candidate newest-start-first; state filtering and
// paging happen above this layer.

const listBookingsByBooker = `
SELECT b.id, b.item_id, i.name AS item_name, i.owner_id AS item_owner_id,
       b.booker_id, u.name AS booker_name,
       b.start_time, b.end_time, b.status, b.created_at, b.updated_at
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id
WHERE b.booker_id = $1
ORDER BY b.start_time DESC, b.id DESC
`

func (q *Queries) ListBookingsByBooker(ctx context.Context, db DBTX, bookerID uuid.UUID) ([]GetBookingByIDRow, error) {
	rows, err := db.Query(ctx, listBookingsByBooker, bookerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingRows(rows)
}

const listBookingsByOwner = `
SELECT b.id, b.item_id, i.name AS item_name, i.owner_id AS item_owner_id,
       b.booker_id, u.name AS booker_name,
       b.start_time, b.end_time, b.status, b.created_at, b.updated_at
FROM bookings b
JOIN items i ON i.id = b.item_id
JOIN users u ON u.id = b.booker_id
WHERE i.owner_id = $1
ORDER BY b.start_time DESC, b.id DESC
`

func (q *Queries) ListBookingsByOwner(ctx context.Context, db DBTX, ownerID uuid.UUID) ([]GetBookingByIDRow, error) {
	rows, err := db.Query(ctx, listBookingsByOwner, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookingRows(rows)
}

func scanBookingRows(rows pgx.Rows) ([]GetBookingByIDRow, error) {
	var items []GetBookingByIDRow
	for rows.Next() {
		var i GetBookingByIDRow
		if err := rows.Scan(&i.ID, &i.ItemID, &i.ItemName, &i.ItemOwnerID,
			&i.BookerID, &i.BookerName,
			&i.StartTime, &i.EndTime, &i.Status, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

// Counts bookings of any status, the eligibility gate for commenting.
const countFinishedBookings = `
SELECT count(*)
FROM bookings
WHERE item_id = $1 AND booker_id = $2 AND end_time < $3
`

type CountFinishedBookingsParams struct {
	ItemID   uuid.UUID
	BookerID uuid.UUID
	Before   time.Time
}

func (q *Queries) CountFinishedBookings(ctx context.Context, db DBTX, arg CountFinishedBookingsParams) (int64, error) {
	row := db.QueryRow(ctx, countFinishedBookings, arg.ItemID, arg.BookerID, arg.Before)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const getLastBookingForItem = `
SELECT b.id, b.booker_id, b.start_time, b.end_time
FROM bookings b
WHERE b.item_id = $1 AND b.end_time < $2
ORDER BY b.end_time DESC
LIMIT 1
`

type NeighborBookingRow struct {
	ID        uuid.UUID
	BookerID  uuid.UUID
	StartTime pgtype.Timestamptz
	EndTime   pgtype.Timestamptz
}

func (q *Queries) GetLastBookingForItem(ctx context.Context, db DBTX, itemID uuid.UUID, now time.Time) (NeighborBookingRow, error) {
	row := db.QueryRow(ctx, getLastBookingForItem, itemID, now)
	var i NeighborBookingRow
	err := row.Scan(&i.ID, &i.BookerID, &i.StartTime, &i.EndTime)
	return i, err
}

const getNextBookingForItem = `
SELECT b.id, b.booker_id, b.start_time, b.end_time
FROM bookings b
WHERE b.item_id = $1 AND b.start_time > $2
ORDER BY b.start_time ASC
LIMIT 1
`

func (q *Queries) GetNextBookingForItem(ctx context.Context, db DBTX, itemID uuid.UUID, now time.Time) (NeighborBookingRow, error) {
	row := db.QueryRow(ctx, getNextBookingForItem, itemID, now)
	var i NeighborBookingRow
	err := row.Scan(&i.ID, &i.BookerID, &i.StartTime, &i.EndTime)
	return i, err
}
