package types

import (
	"errors"
	"fmt"
	"strings"
)

// Lookup misses.
var (
	ErrUnknownQuery   = errors.New("unknown query")
	ErrPlayerNotFound = errors.New("player not found")
)

// PlayerNotFoundError carries close matches for a failed lookup.
// It matches ErrPlayerNotFound with errors.Is.
type PlayerNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *PlayerNotFoundError) Error() string {
	if len(e.Suggestions) == 0 {
		return fmt.Sprintf("%v: %q", ErrPlayerNotFound, e.Name)
	}
	return fmt.Sprintf("%v: %q (did you mean %s?)", ErrPlayerNotFound, e.Name, strings.Join(e.Suggestions, ", "))
}

// Is reports whether target is ErrPlayerNotFound.
func (e *PlayerNotFoundError) Is(target error) bool {
	return target == ErrPlayerNotFound
}
