package comment

import (
	"time"

	"github.com/google/uuid"
)

// Comment is immutable feedback on an item. Who may create one is decided by
// the eligibility gate in the usecase layer, not here.
type Comment struct {
	id        uuid.UUID
	itemID    uuid.UUID
	authorID  uuid.UUID
	text      Text
	createdAt time.Time
}

func NewComment(itemID, authorID uuid.UUID, textValue string, now time.Time) (*Comment, error) {
	text, err := NewText(textValue)
	if err != nil {
		return nil, err
	}
	return &Comment{
		id:        uuid.New(),
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: now,
	}, nil
}

func ReconstructComment(id, itemID, authorID uuid.UUID, text Text, createdAt time.Time) *Comment {
	return &Comment{
		id:        id,
		itemID:    itemID,
		authorID:  authorID,
		text:      text,
		createdAt: createdAt,
	}
}

func (c *Comment) ID() uuid.UUID        { return c.id }
func (c *Comment) ItemID() uuid.UUID    { return c.itemID }
func (c *Comment) AuthorID() uuid.UUID  { return c.authorID }
func (c *Comment) Text() Text           { return c.text }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
