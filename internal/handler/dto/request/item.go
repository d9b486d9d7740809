package request

import (
	"lendshare/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateItemRequest struct {
	Name        string     `json:"name" binding:"required"`
	Description string     `json:"description" binding:"required"`
	Available   *bool      `json:"available" binding:"required"`
	RequestID   *uuid.UUID `json:"request_id,omitempty"`
}

func (r CreateItemRequest) ToCommand() commands.CreateItemRequest {
	return commands.CreateItemRequest{
		Name:        r.Name,
		Description: r.Description,
		Available:   *r.Available,
		RequestID:   r.RequestID,
	}
}

type UpdateItemRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Available   *bool   `json:"available,omitempty"`
}

func (r UpdateItemRequest) ToCommand() commands.UpdateItemRequest {
	return commands.UpdateItemRequest{
		Name:        r.Name,
		Description: r.Description,
		Available:   r.Available,
	}
}

type AddCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

func (r AddCommentRequest) ToCommand() commands.AddCommentRequest {
	return commands.AddCommentRequest{Text: r.Text}
}

type SearchItemsQuery struct {
	Text string `form:"text"`
	From int    `form:"from,default=0"`
	Size int    `form:"size,default=10"`
}

type PageQuery struct {
	From int `form:"from,default=0"`
	Size int `form:"size,default=10"`
}
