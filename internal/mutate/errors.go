package mutate

import (
	"errors"
	"fmt"
)

var (
	ErrBadColumnName  = errors.New("column name must start with a letter and use only letters, numbers and spaces")
	ErrDuplicateName  = errors.New("name already in use")
	ErrDuplicateID    = errors.New("derived id already in use")
	ErrMissingOptions = errors.New("select columns need at least one option")
	ErrNotDeletable   = errors.New("column is not deletable")
	ErrLastList       = errors.New("cannot delete the last list")
	ErrBadOperator    = errors.New("operator not valid for column type")
	ErrMissingValue   = errors.New("operator requires a value")
	ErrEmptyName      = errors.New("name must not be empty")
)

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}
