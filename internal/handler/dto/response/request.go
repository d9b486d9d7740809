package response

import (
	"time"

	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type RequestResponse struct {
	ID          uuid.UUID             `json:"id"`
	Description string                `json:"description"`
	CreatedAt   time.Time             `json:"created"`
	Items       []RequestItemResponse `json:"items"`
}

type RequestItemResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uuid.UUID `json:"ownerId"`
	Available bool      `json:"available"`
}

func FromRequestView(v *queries.RequestView) *RequestResponse {
	resp := &RequestResponse{
		ID:          v.ID,
		Description: v.Description,
		CreatedAt:   v.CreatedAt,
		Items:       make([]RequestItemResponse, len(v.Items)),
	}
	for i, item := range v.Items {
		_ = copier.Copy(&resp.Items[i], &item)
	}
	return resp
}

func FromRequestViews(views []*queries.RequestView) []*RequestResponse {
	result := make([]*RequestResponse, len(views))
	for i, v := range views {
		result[i] = FromRequestView(v)
	}
	return result
}
