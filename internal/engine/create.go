package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/4ast4orward/To-do-List/internal/model"
)

type AddTodoInput struct {
	Title       string
	Description string
	CategoryID  string
	DueDate     time.Time
}

func (s *Service) AddTodo(ctx context.Context, in AddTodoInput) (*model.Todo, error) {
	title, err := normalizeTitle(in.Title)
	if err != nil {
		return nil, err
	}

	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	t := model.Todo{
		ID:          uuid.New().String(),
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Status:      model.StatusPending,
		CategoryID:  model.NormalizeCategoryID(in.CategoryID),
		CreatedAt:   now,
		UpdatedAt:   now,
		DueDate:     in.DueDate,
	}
	todos = append(todos, t)
	if err := s.store.SaveTodos(ctx, todos); err != nil {
		return nil, err
	}
	s.log.Debug("todo added", "id", t.ID, "category", t.CategoryID)
	return &t, nil
}
