package commands

import (
	"context"

	domrequest "lendshare/internal/domain/request"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/shared"

	"github.com/google/uuid"
)

type CreateRequestRequest struct {
	Description string
}

type CreateRequestResult struct {
	RequestID uuid.UUID
}

type RequestCommands interface {
	CreateRequest(ctx context.Context, req CreateRequestRequest, actorID uuid.UUID) (*CreateRequestResult, error)
}

type requestUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewRequestUseCase(uow shared.UnitOfWork, clk clock.Clock) RequestCommands {
	return &requestUseCaseImpl{uow: uow, clock: clk}
}

func (uc *requestUseCaseImpl) CreateRequest(ctx context.Context, req CreateRequestRequest, actorID uuid.UUID) (*CreateRequestResult, error) {
	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().UserByID(ctx, actorID); derr != nil {
			if infra.IsNotFound(derr) {
				return ErrUserNotFound
			}
			return derr
		}

		r, derr := domrequest.NewRequest(actorID, req.Description, uc.clock.Now())
		if derr != nil {
			return errs.MarkValidation(derr)
		}

		id, derr := tx.Requests().Create(ctx, tx.DB(), r)
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateRequestResult{RequestID: createdID}, nil
}
