package registry

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrDirectoryAccess is returned by List when the descriptor directory
	// cannot be read.
	ErrDirectoryAccess = errors.New("unable to access integrations directory")
	// ErrNotFound is matched by *NotFoundError.
	ErrNotFound = errors.New("integration not found")
)

// NotFoundError is returned by Get for an unknown integration id.
type NotFoundError struct {
	ID    string
	Known []string
}

func (e *NotFoundError) Error() string {
	id, _ := json.Marshal(e.ID)
	known, _ := json.Marshal(e.Known)
	return fmt.Sprintf("cannot find integration having id=%s, available ones are: %s", id, known)
}

// Is makes errors.Is(err, ErrNotFound) hold.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}
