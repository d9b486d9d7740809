package readstore

import (
	"context"

	"lendshare/internal/infra"
	"lendshare/internal/infra/sqlstore"
	"lendshare/internal/pkg/pgconv"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserViewQueries interface {
	GetUserByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.GetUserByIDRow, error)
	ListUsers(ctx context.Context, db sqlstore.DBTX) ([]sqlstore.GetUserByIDRow, error)
}

type UserReadStore struct {
	queries UserViewQueries
	db      sqlstore.DBTX
}

func NewUserReadStore(queries *sqlstore.Queries, db sqlstore.DBTX) *UserReadStore {
	return &UserReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *UserReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.UserView, error) {
	row, err := r.queries.GetUserByID(ctx, r.db, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	return rowToUserView(row), nil
}

func (r *UserReadStore) List(ctx context.Context) ([]*queries.UserView, error) {
	rows, err := r.queries.ListUsers(ctx, r.db)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list users", err)
	}

	result := make([]*queries.UserView, len(rows))
	for i, row := range rows {
		result[i] = rowToUserView(row)
	}
	return result, nil
}

func rowToUserView(row sqlstore.GetUserByIDRow) *queries.UserView {
	return &queries.UserView{
		ID:        row.ID,
		Name:      row.Name,
		Email:     row.Email,
		CreatedAt: pgconv.TimeFromPgtype(row.CreatedAt),
	}
}
