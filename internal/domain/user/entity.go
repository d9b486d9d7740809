package user

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	id        uuid.UUID
	name      Name
	email     Email
	createdAt time.Time
	updatedAt time.Time
}

func NewUser(nameValue, emailValue string) (*User, error) {
	name, err := NewName(nameValue)
	if err != nil {
		return nil, err
	}
	email, err := NewEmail(emailValue)
	if err != nil {
		return nil, err
	}
	return &User{
		id:    uuid.New(),
		name:  name,
		email: email,
	}, nil
}

func ReconstructUser(id uuid.UUID, name Name, email Email, createdAt, updatedAt time.Time) *User {
	return &User{
		id:        id,
		name:      name,
		email:     email,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

// Rename and ChangeEmail back the partial-field PATCH semantics: absent fields
// leave the current value untouched, so each setter validates independently.
func (u *User) Rename(nameValue string) error {
	name, err := NewName(nameValue)
	if err != nil {
		return err
	}
	u.name = name
	return nil
}

func (u *User) ChangeEmail(emailValue string) error {
	email, err := NewEmail(emailValue)
	if err != nil {
		return err
	}
	u.email = email
	return nil
}

func (u *User) ID() uuid.UUID        { return u.id }
func (u *User) Name() Name           { return u.name }
func (u *User) Email() Email         { return u.email }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
