//go:build unit || e2e

package builder

import (
	"time"

	domuser "lendshare/internal/domain/user"
	reqdto "lendshare/internal/handler/dto/request"
	"lendshare/internal/usecase/queries"

	"github.com/google/uuid"
)

type UserBuilder struct {
	ID        uuid.UUID
	Name      string
	Email     string
	CreatedAt time.Time
}

func NewUserBuilder() *UserBuilder {
	return &UserBuilder{
		ID:        uuid.New(),
		Name:      "Alice Lender",
		Email:     "alice@example.com",
		CreatedAt: time.Now(),
	}
}

func (b *UserBuilder) With(mutate func(*UserBuilder)) *UserBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *UserBuilder) BuildDomain() (*domuser.User, error) {
	return domuser.NewUser(b.Name, b.Email)
}

func (b *UserBuilder) BuildCreateRequestDTO() reqdto.CreateUserRequest {
	return reqdto.CreateUserRequest{
		Name:  b.Name,
		Email: b.Email,
	}
}

func (b *UserBuilder) BuildUpdateRequestDTO() reqdto.UpdateUserRequest {
	name := b.Name
	email := b.Email
	return reqdto.UpdateUserRequest{
		Name:  &name,
		Email: &email,
	}
}

func (b *UserBuilder) BuildView() *queries.UserView {
	return &queries.UserView{
		ID:        b.ID,
		Name:      b.Name,
		Email:     b.Email,
		CreatedAt: b.CreatedAt,
	}
}
