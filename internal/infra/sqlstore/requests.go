package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const createRequest = `
INSERT INTO requests (id, requestor_id, description, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id
`

type CreateRequestParams struct {
	ID          uuid.UUID
	RequestorID uuid.UUID
	Description string
	CreatedAt   time.Time
}

func (q *Queries) CreateRequest(ctx context.Context, db DBTX, arg CreateRequestParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createRequest,
		arg.ID, arg.RequestorID, arg.Description, arg.CreatedAt)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const getRequestByID = `
SELECT id, requestor_id, description, created_at
FROM requests
WHERE id = $1
`

type RequestRow struct {
	ID          uuid.UUID
	RequestorID uuid.UUID
	Description string
	CreatedAt   pgtype.Timestamptz
}

func (q *Queries) GetRequestByID(ctx context.Context, db DBTX, id uuid.UUID) (RequestRow, error) {
	row := db.QueryRow(ctx, getRequestByID, id)
	var i RequestRow
	err := row.Scan(&i.ID, &i.RequestorID, &i.Description, &i.CreatedAt)
	return i, err
}

const listRequestsByRequestor = `
SELECT id, requestor_id, description, created_at
FROM requests
WHERE requestor_id = $1
ORDER BY created_at DESC, id DESC
`

func (q *Queries) ListRequestsByRequestor(ctx context.Context, db DBTX, requestorID uuid.UUID) ([]RequestRow, error) {
	rows, err := db.Query(ctx, listRequestsByRequestor, requestorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequestRows(rows)
}

const listRequestsOfOthers = `
SELECT id, requestor_id, description, created_at
FROM requests
WHERE requestor_id <> $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3
`

type ListRequestsOfOthersParams struct {
	RequestorID uuid.UUID
	Limit       int32
	Offset      int32
}

func (q *Queries) ListRequestsOfOthers(ctx context.Context, db DBTX, arg ListRequestsOfOthersParams) ([]RequestRow, error) {
	rows, err := db.Query(ctx, listRequestsOfOthers, arg.RequestorID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanRequestRows(rows)
}

func scanRequestRows(rows pgx.Rows) ([]RequestRow, error) {
	var items []RequestRow
	for rows.Next() {
		var i RequestRow
		if err := rows.Scan(&i.ID, &i.RequestorID, &i.Description, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
