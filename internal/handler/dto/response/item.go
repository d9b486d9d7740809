package response

import (
	"time"

	"lendshare/internal/usecase/commands"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	OwnerID     uuid.UUID  `json:"ownerId"`
	RequestID   *uuid.UUID `json:"requestId,omitempty"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Available   bool       `json:"available"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

type ItemDetailResponse struct {
	ItemResponse
	LastBooking *BookingNeighborResponse `json:"lastBooking,omitempty"`
	NextBooking *BookingNeighborResponse `json:"nextBooking,omitempty"`
	Comments    []CommentResponse        `json:"comments"`
}

type BookingNeighborResponse struct {
	ID        uuid.UUID `json:"id"`
	BookerID  uuid.UUID `json:"bookerId"`
	StartTime time.Time `json:"start"`
	EndTime   time.Time `json:"end"`
}

type CommentResponse struct {
	ID         uuid.UUID `json:"id"`
	AuthorName string    `json:"authorName"`
	Text       string    `json:"text"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Field names line up with the view structs, so the flat parts map by copier
// and only the nested neighbors need hand-wiring.
func FromItemView(v *queries.ItemView) *ItemResponse {
	var resp ItemResponse
	_ = copier.Copy(&resp, v)
	return &resp
}

func FromItemViews(views []*queries.ItemView) []*ItemResponse {
	result := make([]*ItemResponse, len(views))
	for i, v := range views {
		result[i] = FromItemView(v)
	}
	return result
}

func FromItemDetailView(v *queries.ItemDetailView) *ItemDetailResponse {
	resp := &ItemDetailResponse{
		ItemResponse: *FromItemView(&v.ItemView),
		Comments:     make([]CommentResponse, len(v.Comments)),
	}
	if v.LastBooking != nil {
		resp.LastBooking = fromBookingRef(v.LastBooking)
	}
	if v.NextBooking != nil {
		resp.NextBooking = fromBookingRef(v.NextBooking)
	}
	for i, cv := range v.Comments {
		_ = copier.Copy(&resp.Comments[i], &cv)
	}
	return resp
}

func FromItemDetailViews(views []*queries.ItemDetailView) []*ItemDetailResponse {
	result := make([]*ItemDetailResponse, len(views))
	for i, v := range views {
		result[i] = FromItemDetailView(v)
	}
	return result
}

func fromBookingRef(ref *queries.BookingRef) *BookingNeighborResponse {
	var resp BookingNeighborResponse
	_ = copier.Copy(&resp, ref)
	return &resp
}

func FromAddCommentResult(r *commands.AddCommentResult) *CommentResponse {
	return &CommentResponse{
		ID:         r.CommentID,
		AuthorName: r.AuthorName,
		Text:       r.Text,
		CreatedAt:  r.CreatedAt,
	}
}
