package commands

import (
	"context"
	"time"

	cr "github.com/cockroachdb/errors"

	domcomment "lendshare/internal/domain/comment"
	domitem "lendshare/internal/domain/item"
	"lendshare/internal/infra"
	"lendshare/internal/pkg/clock"
	"lendshare/internal/pkg/errs"
	"lendshare/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrRequestNotFound = errs.NotFound("request was not found")
	// Non-owners patching an item are told it does not exist.
	ErrItemNotOwned       = errs.NotFound("item was not found")
	ErrNoFinishedBookings = errs.Validation("no finished booking of this item")
)

type CreateItemRequest struct {
	Name        string
	Description string
	Available   bool
	RequestID   *uuid.UUID
}

type UpdateItemRequest struct {
	Name        *string
	Description *string
	Available   *bool
}

type AddCommentRequest struct {
	Text string
}

type CreateItemResult struct {
	ItemID uuid.UUID
}

type AddCommentResult struct {
	CommentID  uuid.UUID
	AuthorName string
	Text       string
	CreatedAt  time.Time
}

type ItemCommands interface {
	CreateItem(ctx context.Context, req CreateItemRequest, actorID uuid.UUID) (*CreateItemResult, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, req UpdateItemRequest, actorID uuid.UUID) error
	AddComment(ctx context.Context, itemID uuid.UUID, req AddCommentRequest, actorID uuid.UUID) (*AddCommentResult, error)
}

type itemUseCaseImpl struct {
	uow   shared.UnitOfWork
	clock clock.Clock
}

func NewItemUseCase(uow shared.UnitOfWork, clk clock.Clock) ItemCommands {
	return &itemUseCaseImpl{uow: uow, clock: clk}
}

func (uc *itemUseCaseImpl) CreateItem(ctx context.Context, req CreateItemRequest, actorID uuid.UUID) (*CreateItemResult, error) {
	var createdID uuid.UUID
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().UserByID(ctx, actorID); derr != nil {
			if infra.IsNotFound(derr) {
				return ErrUserNotFound
			}
			return derr
		}
		if req.RequestID != nil {
			if _, derr := tx.Reads().RequestByID(ctx, *req.RequestID); derr != nil {
				if infra.IsNotFound(derr) {
					return ErrRequestNotFound
				}
				return derr
			}
		}

		it, derr := domitem.NewItem(actorID, req.Name, req.Description, req.Available, req.RequestID)
		if derr != nil {
			return errs.MarkValidation(derr)
		}

		id, derr := tx.Items().Create(ctx, tx.DB(), it)
		if derr != nil {
			return derr
		}
		createdID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &CreateItemResult{ItemID: createdID}, nil
}

func (uc *itemUseCaseImpl) UpdateItem(ctx context.Context, itemID uuid.UUID, req UpdateItemRequest, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		it, derr := tx.Items().FindByID(ctx, tx.DB(), itemID)
		if derr != nil {
			if infra.IsNotFound(derr) {
				return ErrItemNotFound
			}
			return derr
		}
		if !it.IsOwnedBy(actorID) {
			return ErrItemNotOwned
		}
		if derr = it.ApplyPatch(req.Name, req.Description, req.Available); derr != nil {
			return errs.MarkValidation(derr)
		}
		return tx.Items().Update(ctx, tx.DB(), it)
	})
}

// AddComment gates on a finished booking by the author on the item. Any
// booking status counts as long as the window ended before now.
func (uc *itemUseCaseImpl) AddComment(ctx context.Context, itemID uuid.UUID, req AddCommentRequest, actorID uuid.UUID) (*AddCommentResult, error) {
	now := uc.clock.Now()

	var result AddCommentResult
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if _, derr := tx.Reads().ItemByID(ctx, itemID); derr != nil {
			if infra.IsNotFound(derr) {
				return ErrItemNotFound
			}
			return derr
		}
		author, derr := tx.Reads().UserByID(ctx, actorID)
		if derr != nil {
			if infra.IsNotFound(derr) {
				return ErrUserNotFound
			}
			return derr
		}
		count, derr := tx.Reads().FinishedBookingsCount(ctx, itemID, actorID, now)
		if derr != nil {
			return derr
		}
		if count == 0 {
			return ErrNoFinishedBookings
		}

		c, derr := domcomment.NewComment(itemID, actorID, req.Text, now)
		if derr != nil {
			return markCommentErr(derr)
		}

		id, derr := tx.Comments().Create(ctx, tx.DB(), c)
		if derr != nil {
			return derr
		}
		result = AddCommentResult{
			CommentID:  id,
			AuthorName: author.Name,
			Text:       c.Text().String(),
			CreatedAt:  c.CreatedAt(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func markCommentErr(err error) error {
	switch {
	case cr.Is(err, domcomment.ErrEmptyText), cr.Is(err, domcomment.ErrTextTooLong):
		return errs.MarkValidation(err)
	default:
		return err
	}
}
