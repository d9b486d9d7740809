package shared

import (
	"time"

	"github.com/google/uuid"
)

// Minimal snapshots for command-side validation reads.

type UserSnapshot struct {
	ID    uuid.UUID
	Name  string
	Email string
}

type ItemSnapshot struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Name      string
	Available bool
}

type BookingSnapshot struct {
	ID          uuid.UUID
	ItemID      uuid.UUID
	ItemOwnerID uuid.UUID
	BookerID    uuid.UUID
	Status      string
	StartTime   time.Time
	EndTime     time.Time
}

type RequestSnapshot struct {
	ID          uuid.UUID
	RequestorID uuid.UUID
	Description string
	CreatedAt   time.Time
}
