package engine

import (
	"context"
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

// Reschedule sets a new due date; a zero time removes the due date.
func (s *Service) Reschedule(ctx context.Context, ref string, due time.Time) (*model.Todo, error) {
	return s.edit(ctx, ref, func(t *model.Todo) error {
		t.DueDate = due
		return nil
	})
}

func (s *Service) Rename(ctx context.Context, ref string, title string) (*model.Todo, error) {
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	return s.edit(ctx, ref, func(t *model.Todo) error {
		t.Title = title
		return nil
	})
}

func (s *Service) Recategorize(ctx context.Context, ref string, categoryID string) (*model.Todo, error) {
	return s.edit(ctx, ref, func(t *model.Todo) error {
		t.CategoryID = model.NormalizeCategoryID(categoryID)
		return nil
	})
}

func (s *Service) edit(ctx context.Context, ref string, fn func(t *model.Todo) error) (*model.Todo, error) {
	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := findTodo(todos, ref)
	if err != nil {
		return nil, err
	}
	t := todos[idx]
	if err := fn(&t); err != nil {
		return nil, err
	}
	t.UpdatedAt = s.Now()
	todos[idx] = t
	if err := s.store.SaveTodos(ctx, todos); err != nil {
		return nil, err
	}
	return &t, nil
}

// Delete removes a todo from the list. Stats are cumulative and stay unchanged.
func (s *Service) Delete(ctx context.Context, ref string) (*model.Todo, error) {
	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := findTodo(todos, ref)
	if err != nil {
		return nil, err
	}
	removed := todos[idx]
	todos = append(todos[:idx], todos[idx+1:]...)
	if err := s.store.SaveTodos(ctx, todos); err != nil {
		return nil, err
	}
	return &removed, nil
}

// ClearCompleted drops completed todos from the list and returns how many were removed.
func (s *Service) ClearCompleted(ctx context.Context) (int, error) {
	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return 0, err
	}
	keep := todos[:0]
	for _, t := range todos {
		if t.Status != model.StatusCompleted {
			keep = append(keep, t)
		}
	}
	removed := len(todos) - len(keep)
	if removed == 0 {
		return 0, nil
	}
	if err := s.store.SaveTodos(ctx, keep); err != nil {
		return 0, err
	}
	return removed, nil
}

// ClearAll drops every todo. Stats are kept; use Reset to restore defaults.
func (s *Service) ClearAll(ctx context.Context) (int, error) {
	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return 0, err
	}
	if len(todos) == 0 {
		return 0, nil
	}
	if err := s.store.SaveTodos(ctx, nil); err != nil {
		return 0, err
	}
	return len(todos), nil
}
