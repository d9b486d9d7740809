package repository

import (
	"context"

	"lendshare/internal/domain/comment"
	"lendshare/internal/infra"
	"lendshare/internal/infra/sqlstore"

	"github.com/google/uuid"
)

type CommentWriteQueries interface {
	CreateComment(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateCommentParams) (uuid.UUID, error)
}

type CommentRepository struct {
	queries CommentWriteQueries
}

func NewCommentRepository(queries *sqlstore.Queries) *CommentRepository {
	return &CommentRepository{queries: queries}
}

func (r *CommentRepository) Create(ctx context.Context, tx sqlstore.DBTX, c *comment.Comment) (uuid.UUID, error) {
	params := sqlstore.CreateCommentParams{
		ID:        c.ID(),
		ItemID:    c.ItemID(),
		AuthorID:  c.AuthorID(),
		Text:      c.Text().String(),
		CreatedAt: c.CreatedAt(),
	}

	resultID, err := r.queries.CreateComment(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create comment", err)
	}

	return resultID, nil
}
