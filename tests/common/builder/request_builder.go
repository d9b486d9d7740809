//go:build unit || e2e

package builder

import (
	"time"

	reqdto "lendshare/internal/handler/dto/request"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type RequestBuilder struct {
	ID          uuid.UUID
	RequestorID uuid.UUID
	Description string
	CreatedAt   time.Time
}

func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{
		ID:          uuid.New(),
		RequestorID: uuid.New(),
		Description: "Looking for a tent for the weekend",
		CreatedAt:   time.Now(),
	}
}

func (b *RequestBuilder) With(mutate func(*RequestBuilder)) *RequestBuilder {
	mutate(b)
	return b
}

func (b *RequestBuilder) BuildCreateRequestDTO() reqdto.CreateRequestRequest {
	return reqdto.CreateRequestRequest{Description: b.Description}
}

func (b *RequestBuilder) BuildView() *queries.RequestView {
	return &queries.RequestView{
		ID:          b.ID,
		RequestorID: b.RequestorID,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
		Items:       []queries.RequestItemRef{},
	}
}
