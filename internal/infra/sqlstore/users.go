package sqlstore

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createUser = `
INSERT INTO users (id, name, email)
VALUES ($1, $2, $3)
RETURNING id
`

type CreateUserParams struct {
	ID    uuid.UUID
	Name  string
	Email string
}

func (q *Queries) CreateUser(ctx context.Context, db DBTX, arg CreateUserParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createUser, arg.ID, arg.Name, arg.Email)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const updateUser = `
UPDATE users
SET name = $2, email = $3, updated_at = now()
WHERE id = $1
`

type UpdateUserParams struct {
	ID    uuid.UUID
	Name  string
	Email string
}

func (q *Queries) UpdateUser(ctx context.Context, db DBTX, arg UpdateUserParams) error {
	_, err := db.Exec(ctx, updateUser, arg.ID, arg.Name, arg.Email)
	return err
}

const deleteUser = `
DELETE FROM users
WHERE id = $1
`

func (q *Queries) DeleteUser(ctx context.Context, db DBTX, id uuid.UUID) error {
	_, err := db.Exec(ctx, deleteUser, id)
	return err
}

const getUserByID = `
SELECT id, name, email, created_at, updated_at
FROM users
WHERE id = $1
`

type GetUserByIDRow struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

func (q *Queries) GetUserByID(ctx context.Context, db DBTX, id uuid.UUID) (GetUserByIDRow, error) {
	row := db.QueryRow(ctx, getUserByID, id)
	var i GetUserByIDRow
	err := row.Scan(&i.ID, &i.Name, &i.Email, &i.CreatedAt, &i.UpdatedAt)
	return i, err
}

const listUsers = `
SELECT id, name, email, created_at, updated_at
FROM users
ORDER BY created_at ASC, id ASC
`

func (q *Queries) ListUsers(ctx context.Context, db DBTX) ([]GetUserByIDRow, error) {
	rows, err := db.Query(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []GetUserByIDRow
	for rows.Next() {
		var i GetUserByIDRow
		if err := rows.Scan(&i.ID, &i.Name, &i.Email, &i.CreatedAt, &i.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
