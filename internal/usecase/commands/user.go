package commands

import (
	"context"

	domuser "lendshare/internal/domain/user"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/pkg/patch"
	"lendshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Name  string
	Email string
}

type UpdateUserRequest struct {
	Name  *string
	Email *string
}

type CreateUserResult struct {
	UserID uuid.UUID
}

type UserCommands interface {
	CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResult, error)
	UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) error
	DeleteUser(ctx context.Context, userID uuid.UUID) error
}

type userUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewUserUseCase(uow shared.UnitOfWork) UserCommands {
	return &userUseCaseImpl{uow: uow}
}

func (uc *userUseCaseImpl) CreateUser(ctx context.Context, req CreateUserRequest) (*CreateUserResult, error) {
	u, err := domuser.NewUser(req.Name, req.Email)
	if err != nil {
		return nil, errs.MarkValidation(err)
	}

	var createdID uuid.UUID
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, derr := tx.Users().Create(ctx, tx.DB(), u)
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		// Email uniqueness is enforced by the store; the duplicate-key kind
		// passes through for the handler to turn into a conflict.
		return nil, err
	}
	return &CreateUserResult{UserID: createdID}, nil
}

func (uc *userUseCaseImpl) UpdateUser(ctx context.Context, userID uuid.UUID, req UpdateUserRequest) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		u, derr := tx.Users().FindByID(ctx, tx.DB(), userID)
		if derr != nil {
			if infra.IsNotFound(derr) {
				return ErrUserNotFound
			}
			return derr
		}

		name := patch.Coalesce(req.Name, u.Name().String())
		email := patch.Coalesce(req.Email, u.Email().String())
		if derr = u.Rename(name); derr != nil {
			return errs.MarkValidation(derr)
		}
		if derr = u.ChangeEmail(email); derr != nil {
			return errs.MarkValidation(derr)
		}
		return tx.Users().Update(ctx, tx.DB(), u)
	})
}

func (uc *userUseCaseImpl) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().UserByID(ctx, userID); derr != nil {
			if infra.IsNotFound(derr) {
				return ErrUserNotFound
			}
			return derr
		}
		return tx.Users().Delete(ctx, tx.DB(), userID)
	})
}
