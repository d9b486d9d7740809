package repository

import (
	"context"

	"lendshare/internal/domain/user"
	"lendshare/internal/infra"
	"lendshare/internal/infra/sqlstore"
	"lendshare/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type UserWriteQueries interface {
	CreateUser(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateUserParams) (uuid.UUID, error)
	UpdateUser(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UpdateUserParams) error
	DeleteUser(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) error
	GetUserByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.GetUserByIDRow, error)
}

type UserRepository struct {
	queries UserWriteQueries
}

func NewUserRepository(queries *sqlstore.Queries) *UserRepository {
	return &UserRepository{queries: queries}
}

func (r *UserRepository) Create(ctx context.Context, tx sqlstore.DBTX, u *user.User) (uuid.UUID, error) {
	params := sqlstore.CreateUserParams{
		ID:    u.ID(),
		Name:  u.Name().String(),
		Email: u.Email().String(),
	}

	resultID, err := r.queries.CreateUser(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create user", err)
	}

	return resultID, nil
}

func (r *UserRepository) Update(ctx context.Context, tx sqlstore.DBTX, u *user.User) error {
	params := sqlstore.UpdateUserParams{
		ID:    u.ID(),
		Name:  u.Name().String(),
		Email: u.Email().String(),
	}

	if err := r.queries.UpdateUser(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to update user", err)
	}

	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) (*user.User, error) {
	row, err := r.queries.GetUserByID(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}

	name, err := user.NewName(row.Name)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user name is invalid", err)
	}
	email, err := user.NewEmail(row.Email)
	if err != nil {
		return nil, infra.WrapRepoErr("stored user email is invalid", err)
	}

	return user.ReconstructUser(
		row.ID,
		name,
		email,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}

func (r *UserRepository) Delete(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) error {
	if err := r.queries.DeleteUser(ctx, tx, id); err != nil {
		return infra.WrapRepoErr("failed to delete user", err)
	}
	return nil
}
