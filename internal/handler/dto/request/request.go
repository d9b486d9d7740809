package request

import (
	"lendshare/internal/usecase/commands"
)

type CreateRequestRequest struct {
	Description string `json:"description" binding:"required"`
}

func (r CreateRequestRequest) ToCommand() commands.CreateRequestRequest {
	return commands.CreateRequestRequest{Description: r.Description}
}
