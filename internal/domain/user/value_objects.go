package user

import (
	"errors"
	"strings"
)

var (
	ErrEmptyName    = errors.New("name cannot be empty")
	ErrInvalidEmail = errors.New("invalid email address")
)

type Name struct {
	value string
}

func NewName(s string) (Name, error) {
	t := strings.TrimSpace(s)
	if t == "" {
		return Name{}, ErrEmptyName
	}
	return Name{value: t}, nil
}

func (n Name) String() string { return n.value }

type Email struct {
	value string
}

// NewEmail keeps the check deliberately loose; uniqueness is a storage policy,
// not a format rule.
func NewEmail(s string) (Email, error) {
	t := strings.TrimSpace(s)
	at := strings.Index(t, "@")
	if at <= 0 || at == len(t)-1 {
		return Email{}, ErrInvalidEmail
	}
	return Email{value: t}, nil
}

func (e Email) String() string { return e.value }
