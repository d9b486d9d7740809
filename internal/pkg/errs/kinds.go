package errs

import (
	"errors"

	cr "github.com/cockroachdb/errors"
)

// The public API distinguishes exactly two failure kinds: a referenced entity
// is absent or the actor may not see it (NotFound), or the input violates a
// policy (Validation). Usecase errors carry one of these marks so handlers can
// map them to a status code without enumerating every sentinel.
var (
	KindNotFound   = errors.New("not found")
	KindValidation = errors.New("validation")
)

func NotFound(msg string) error {
	return cr.Mark(cr.New(msg), KindNotFound)
}

func Validation(msg string) error {
	return cr.Mark(cr.New(msg), KindValidation)
}

func MarkNotFound(err error) error {
	if err == nil {
		return nil
	}
	return cr.Mark(err, KindNotFound)
}

func MarkValidation(err error) error {
	if err == nil {
		return nil
	}
	return cr.Mark(err, KindValidation)
}

func IsNotFound(err error) bool {
	return cr.Is(err, KindNotFound)
}

func IsValidation(err error) bool {
	return cr.Is(err, KindValidation)
}
