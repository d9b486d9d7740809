package sqlstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const createComment = `
INSERT INTO comments (id, item_id, author_id, text, created_at)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`

type CreateCommentParams struct {
	ID        uuid.UUID
	ItemID    uuid.UUID
	AuthorID  uuid.UUID
	Text      string
	CreatedAt time.Time
}

func (q *Queries) CreateComment(ctx context.Context, db DBTX, arg CreateCommentParams) (uuid.UUID, error) {
	row := db.QueryRow(ctx, createComment,
		arg.ID, arg.ItemID, arg.AuthorID, arg.Text, arg.CreatedAt)
	var id uuid.UUID
	err := row.Scan(&id)
	return id, err
}

const listCommentsByItem = `
SELECT c.id, c.item_id, c.author_id, u.name AS author_name, c.text, c.created_at
FROM comments c
JOIN users u ON u.id = c.author_id
WHERE c.item_id = $1
ORDER BY c.created_at ASC, c.id ASC
`

type CommentRow struct {
	ID         uuid.UUID
	ItemID     uuid.UUID
	AuthorID   uuid.UUID
	AuthorName string
	Text       string
	CreatedAt  pgtype.Timestamptz
}

func (q *Queries) ListCommentsByItem(ctx context.Context, db DBTX, itemID uuid.UUID) ([]CommentRow, error) {
	rows, err := db.Query(ctx, listCommentsByItem, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var items []CommentRow
	for rows.Next() {
		var i CommentRow
		if err := rows.Scan(&i.ID, &i.ItemID, &i.AuthorID, &i.AuthorName, &i.Text, &i.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
