package repository

import (
	"context"

	"lendshare/internal/domain/item"
	"lendshare/internal/infra"
	"lendshare/internal/infra/sqlstore"
	"lendshare/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type ItemWriteQueries interface {
	CreateItem(ctx context.Context, db sqlstore.DBTX, arg sqlstore.CreateItemParams) (uuid.UUID, error)
	UpdateItem(ctx context.Context, db sqlstore.DBTX, arg sqlstore.UpdateItemParams) error
	GetItemByID(ctx context.Context, db sqlstore.DBTX, id uuid.UUID) (sqlstore.GetItemByIDRow, error)
}

type ItemRepository struct {
	queries ItemWriteQueries
}

func NewItemRepository(queries *sqlstore.Queries) *ItemRepository {
	return &ItemRepository{queries: queries}
}

func (r *ItemRepository) Create(ctx context.Context, tx sqlstore.DBTX, it *item.Item) (uuid.UUID, error) {
	params := sqlstore.CreateItemParams{
		ID:          it.ID(),
		OwnerID:     it.OwnerID(),
		RequestID:   pgconv.UUIDPtrToPgtype(it.RequestID()),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
	}

	resultID, err := r.queries.CreateItem(ctx, tx, params)
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create item", err)
	}

	return resultID, nil
}

func (r *ItemRepository) Update(ctx context.Context, tx sqlstore.DBTX, it *item.Item) error {
	params := sqlstore.UpdateItemParams{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Available:   it.Available(),
	}

	if err := r.queries.UpdateItem(ctx, tx, params); err != nil {
		return infra.WrapRepoErr("failed to update item", err)
	}

	return nil
}

// FindByID loads the full aggregate for in-transaction mutation.
func (r *ItemRepository) FindByID(ctx context.Context, tx sqlstore.DBTX, id uuid.UUID) (*item.Item, error) {
	row, err := r.queries.GetItemByID(ctx, tx, id)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("item not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find item by ID", err)
	}

	return item.ReconstructItem(
		row.ID,
		row.OwnerID,
		pgconv.UUIDPtrFromPgtype(row.RequestID),
		row.Name,
		row.Description,
		row.Available,
		pgconv.TimeFromPgtype(row.CreatedAt),
		pgconv.TimeFromPgtype(row.UpdatedAt),
	), nil
}
