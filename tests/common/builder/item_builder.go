//go:build unit || e2e

package builder

import (
	"time"

	domitem "lendshare/internal/domain/item"
	reqdto "lendshare/internal/handler/dto/request"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type ItemBuilder struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	RequestID   *uuid.UUID
	Name        string
	Description string
	Available   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewItemBuilder() *ItemBuilder {
	now := time.Now()
	return &ItemBuilder{
		ID:          uuid.New(),
		OwnerID:     uuid.New(),
		Name:        "Cordless Drill",
		Description: "18V cordless drill with two batteries",
		Available:   true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (b *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ItemBuilder) BuildDomain() (*domitem.Item, error) {
	return domitem.NewItem(b.OwnerID, b.Name, b.Description, b.Available, b.RequestID)
}

func (b *ItemBuilder) BuildCreateRequestDTO() reqdto.CreateItemRequest {
	available := b.Available
	return reqdto.CreateItemRequest{
		Name:        b.Name,
		Description: b.Description,
		Available:   &available,
		RequestID:   b.RequestID,
	}
}

func (b *ItemBuilder) BuildUpdateRequestDTO() reqdto.UpdateItemRequest {
	name := b.Name
	description := b.Description
	available := b.Available
	return reqdto.UpdateItemRequest{
		Name:        &name,
		Description: &description,
		Available:   &available,
	}
}

func (b *ItemBuilder) BuildView() *queries.ItemView {
	return &queries.ItemView{
		ID:          b.ID,
		OwnerID:     b.OwnerID,
		RequestID:   b.RequestID,
		Name:        b.Name,
		Description: b.Description,
		Available:   b.Available,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

func (b *ItemBuilder) BuildDetailView() *queries.ItemDetailView {
	return &queries.ItemDetailView{
		ItemView: *b.BuildView(),
		Comments: []queries.CommentView{},
	}
}
