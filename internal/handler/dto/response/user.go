package response

import (
	"time"

	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

func FromUserView(v *queries.UserView) *UserResponse {
	var resp UserResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromUserViews(views []*queries.UserView) []*UserResponse {
	result := make([]*UserResponse, len(views))
	for i, v := range views {
		result[i] = FromUserView(v)
	}
	return result
}
