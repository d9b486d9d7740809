package request

import (
	"time"

	"lendshare/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ItemID    uuid.UUID `json:"item_id" binding:"required"`
	StartTime time.Time `json:"start_time" binding:"required"`
	EndTime   time.Time `json:"end_time" binding:"required"`
}

func (r CreateBookingRequest) ToCommand() commands.CreateBookingRequest {
	return commands.CreateBookingRequest{
		ItemID:    r.ItemID,
		StartTime: r.StartTime,
		EndTime:   r.EndTime,
	}
}

// ListBookingsQuery covers both the booker and the owner listing. The state
// literal is validated downstream, not by binding, so unsupported values can
// carry the original input in the error.
type ListBookingsQuery struct {
	State string `form:"state,default=ALL"`
	From  int    `form:"from,default=0"`
	Size  int    `form:"size,default=10"`
}
