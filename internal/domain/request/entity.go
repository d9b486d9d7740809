package request

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrEmptyDescription = errors.New("request description cannot be empty")

// Request is a bulletin-board entry asking for an item; items may later
// reference the request that spawned them.
type Request struct {
	id          uuid.UUID
	requestorID uuid.UUID
	description string
	createdAt   time.Time
}

func NewRequest(requestorID uuid.UUID, description string, now time.Time) (*Request, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}
	return &Request{
		id:          uuid.New(),
		requestorID: requestorID,
		description: description,
		createdAt:   now,
	}, nil
}

func ReconstructRequest(id, requestorID uuid.UUID, description string, createdAt time.Time) *Request {
	return &Request{
		id:          id,
		requestorID: requestorID,
		description: description,
		createdAt:   createdAt,
	}
}

func (r *Request) ID() uuid.UUID          { return r.id }
func (r *Request) RequestorID() uuid.UUID { return r.requestorID }
func (r *Request) Description() string    { return r.description }
func (r *Request) CreatedAt() time.Time   { return r.createdAt }
