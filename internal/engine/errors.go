package engine

import (
	"errors"
	"fmt"

	"github.com/4ast4orward/To-do-List/internal/model"
)

var ErrEmptyTitle = errors.New("title is required")

// TransitionError indicates a status change the task list does not allow.
// Only pending todos can be completed or skipped.
type TransitionError struct {
	ID   string
	From model.Status
	To   model.Status
}

func (e TransitionError) Error() string {
	if e.From == e.To {
		return fmt.Sprintf("todo %s is already %s", shortID(e.ID), e.From)
	}
	return fmt.Sprintf("todo %s cannot go from %s to %s", shortID(e.ID), e.From, e.To)
}

type NotFoundError struct {
	Ref string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("todo %q not found", e.Ref)
}

// AmbiguousError is returned when an id prefix matches more than one todo.
type AmbiguousError struct {
	Ref     string
	Matches int
}

func (e AmbiguousError) Error() string {
	return fmt.Sprintf("id prefix %q matches %d todos", e.Ref, e.Matches)
}

// ShortIDLen is the number of id characters shown in listings.
const ShortIDLen = 8

func shortID(id string) string {
	if len(id) > ShortIDLen {
		return id[:ShortIDLen]
	}
	return id
}

// ShortID returns the abbreviated form of a todo id used by the CLI.
func ShortID(id string) string { return shortID(id) }
