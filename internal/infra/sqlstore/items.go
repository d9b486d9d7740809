package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createItem = `
INSERT INTO items (id, owner_id, request_id, name, description, available)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id
`

type CreateItemParams struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	RequestID   pgtype.UUID
	Name        string
	Description string
	Available   bool
}

func (q *Queries) CreateItem(ctx context.Context, db DBTX, arg CreateItemParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createItem,
		arg.ID, arg.OwnerID, arg.RequestID, arg.Name, arg.Description, arg.Available)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const updateItem = `
UPDATE items
SET name = $2, description = $3, available = $4, updated_at = now()
WHERE id = $1
`

type UpdateItemParams struct {
	ID          uuid.UUID
	Name        string
	Description string
	Available   bool
}

func (q *Queries) UpdateItem(ctx context.Context, db DBTX, arg UpdateItemParams) error {
	_, err := db.Exec(ctx, updateItem, arg.ID, arg.Name, arg.Description, arg.Available)
	return err
}

const getItemByID = `
SELECT id, owner_id, request_id, name, description, available, created_at, updated_at
FROM items
WHERE id = $1
`

type GetItemByIDRow struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	RequestID   pgtype.UUID
	Name        string
	Description string
	Available   bool
	CreatedAt   pgtype.Timestamptz
	UpdatedAt   pgtype.Timestamptz
}

func (q *Queries) GetItemByID(ctx context.Context, db DBTX, id uuid.UUID) (GetItemByIDRow, error) {
	row := db.QueryRow(ctx, getItemByID, id)
	var i GetItemByIDRow
	err := row.Scan(&i.ID, &i.OwnerID, &i.RequestID, &i.Name, &i.Description,
		&i.Available, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const getItemSnapshot = `
SELECT id, owner_id, name, available
FROM items
WHERE id = $1
`

type GetItemSnapshotRow struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Available bool
}

func (q *Queries) GetItemSnapshot(ctx context.Context, db DBTX, id uuid.UUID) (GetItemSnapshotRow, error) {
	row := db.QueryRow(ctx, getItemSnapshot, id)
	var i GetItemSnapshotRow
	err := row.Scan(&i.ID, &i.OwnerID, &i.Name, &i.Available)
	return i, err
}

const listItemsByOwner = `
SELECT id, owner_id, request_id, name, description, available, created_at, updated_at
FROM items
WHERE owner_id = $1
ORDER BY created_at ASC, id ASC
LIMIT $2 OFFSET $3
`

type ListItemsByOwnerParams struct {
	OwnerID uuid.UUID
	Limit   int32
	Offset  int32
}

func (q *Queries) ListItemsByOwner(ctx context.Context, db DBTX, arg ListItemsByOwnerParams) ([]GetItemByIDRow, error) {
	rows, err := db.Query(ctx, listItemsByOwner, arg.OwnerID, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetItemByIDRow
	for rows.Next() {
		var i GetItemByIDRow
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.RequestID, &i.Name, &i.Description,
			&i.Available, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const searchItems = `
SELECT id, owner_id, request_id, name, description, available, created_at, updated_at
FROM items
WHERE available = TRUE
  AND (name ILIKE '%' || $1 || '%' OR description ILIKE '%' || $1 || '%')
ORDER BY created_at ASC, id ASC
LIMIT $2 OFFSET $3
`

type SearchItemsParams struct {
	Text   string
	Limit  int32
	Offset int32
}

func (q *Queries) SearchItems(ctx context.Context, db DBTX, arg SearchItemsParams) ([]GetItemByIDRow, error) {
	rows, err := db.Query(ctx, searchItems, arg.Text, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetItemByIDRow
	for rows.Next() {
		var i GetItemByIDRow
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.RequestID, &i.Name, &i.Description,
			&i.Available, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

const countItemsByOwner = `
SELECT count(*)
FROM items
WHERE owner_id = $1
`

func (q *Queries) CountItemsByOwner(ctx context.Context, db DBTX, ownerID uuid.UUID) (int64, error) {
	row := db.QueryRow(ctx, countItemsByOwner, ownerID)
	var count int64
	err := row.Scan(&count)
	return count, err
}

const listItemsByRequests = `
SELECT id, owner_id, request_id, name, description, available, created_at, updated_at
FROM items
WHERE request_id = ANY($1::uuid[])
ORDER BY created_at ASC, id ASC
`

func (q *Queries) ListItemsByRequests(ctx context.Context, db DBTX, requestIDs []uuid.UUID) ([]GetItemByIDRow, error) {
	rows, err := db.Query(ctx, listItemsByRequests, requestIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetItemByIDRow
	for rows.Next() {
		var i GetItemByIDRow
		if err := rows.Scan(&i.ID, &i.OwnerID, &i.RequestID, &i.Name, &i.Description,
			&i.Available, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
