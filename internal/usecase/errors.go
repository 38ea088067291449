package usecase

import "github.com/cockroachdb/errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

func invalidInput(err error) error {
	return errors.Mark(errors.Wrap(err, "validation failed"), ErrInvalidInput)
}
