package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

type TransitionResult struct {
	Todo model.Todo
	Result
}

func (s *Service) Complete(ctx context.Context, ref string) (*TransitionResult, error) {
	return s.transition(ctx, ref, model.StatusCompleted)
}

func (s *Service) Skip(ctx context.Context, ref string) (*TransitionResult, error) {
	return s.transition(ctx, ref, model.StatusSkipped)
}

func (s *Service) transition(ctx context.Context, ref string, to model.Status) (*TransitionResult, error) {
	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := findTodo(todos, ref)
	if err != nil {
		return nil, err
	}
	t := todos[idx]
	if t.Status != model.StatusPending {
		return nil, TransitionError{ID: t.ID, From: t.Status, To: to}
	}

	stats, err := s.store.LoadStats(ctx)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	from := t.Status
	t.Status = to
	t.UpdatedAt = now
	t.CompletedAt = time.Time{}
	t.SkippedAt = time.Time{}
	switch to {
	case model.StatusCompleted:
		t.CompletedAt = now
	case model.StatusSkipped:
		t.SkippedAt = now
	}
	todos[idx] = t

	res := ApplyTransition(stats, todos, Event{Todo: t, From: from, At: now}, s.rules)

	rec := model.TransitionRecord{
		TodoID: t.ID,
		Title:  t.Title,
		Status: to,
		At:     now,
		Points: res.PointsAwarded,
	}
	for _, a := range res.Unlocked {
		rec.Unlocked = append(rec.Unlocked, a.ID)
	}
	if err := s.store.CommitTransition(ctx, res.Stats, todos, rec); err != nil {
		return nil, err
	}

	s.log.Debug("todo transition",
		"id", t.ID,
		"from", from,
		"to", to,
		"points", res.PointsAwarded,
		"streak", res.Stats.Streak,
		"momentum", res.Momentum.Multiplier,
	)
	for _, a := range res.Unlocked {
		s.log.Info("achievement unlocked", "id", a.ID, "title", a.Title)
	}

	return &TransitionResult{Todo: t, Result: res}, nil
}

type ReopenResult struct {
	Todo          model.Todo
	From          model.Status
	PointsRemoved int
	LevelBefore   int
	LevelAfter    int
	LevelDown     bool
}

// Reopen puts a completed or skipped todo back to pending. The points recorded
// for its last transition are deducted and the counters its completion or skip
// raised are decremented. Streaks and unlocked achievements are left as they are.
func (s *Service) Reopen(ctx context.Context, ref string) (*ReopenResult, error) {
	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return nil, err
	}
	idx, err := findTodo(todos, ref)
	if err != nil {
		return nil, err
	}
	t := todos[idx]
	if t.Status == model.StatusPending {
		return nil, TransitionError{ID: t.ID, From: t.Status, To: model.StatusPending}
	}

	stats, err := s.store.LoadStats(ctx)
	if err != nil {
		return nil, err
	}
	last, err := s.store.LastTransition(ctx, t.ID)
	if err != nil {
		return nil, err
	}

	next := stats.Clone()
	levelBefore := LevelForPoints(next.Points)
	removed := 0
	if last != nil && last.Status == t.Status {
		removed = last.Points
	}
	next.Points -= removed
	if next.Points < 0 {
		next.Points = 0
	}

	now := s.Now()
	from := t.Status
	switch from {
	case model.StatusCompleted:
		revertCompletion(&next, t, now)
	case model.StatusSkipped:
		if next.TotalSkipped > 0 {
			next.TotalSkipped--
		}
	}
	next.Level = LevelForPoints(next.Points)

	t.Status = model.StatusPending
	t.UpdatedAt = now
	t.CompletedAt = time.Time{}
	t.SkippedAt = time.Time{}
	todos[idx] = t

	rec := model.TransitionRecord{
		TodoID: t.ID,
		Title:  t.Title,
		Status: model.StatusPending,
		At:     now,
		Points: -removed,
	}
	if err := s.store.CommitTransition(ctx, next, todos, rec); err != nil {
		return nil, fmt.Errorf("reopen %s: %w", shortID(t.ID), err)
	}
	s.log.Debug("todo reopened", "id", t.ID, "from", from, "points_removed", removed)

	return &ReopenResult{
		Todo:          t,
		From:          from,
		PointsRemoved: removed,
		LevelBefore:   levelBefore,
		LevelAfter:    next.Level,
		LevelDown:     next.Level < levelBefore,
	}, nil
}

// revertCompletion undoes the tallies applyCompletion raised for t.
func revertCompletion(s *model.UserStats, t model.Todo, now time.Time) {
	dec := func(n *int) {
		if *n > 0 {
			*n--
		}
	}
	dec(&s.TotalCompleted)
	cat := model.NormalizeCategoryID(t.CategoryID)
	if s.TasksByCategory[cat] > 0 {
		s.TasksByCategory[cat]--
	}
	if t.CompletedAt.IsZero() {
		return
	}
	at := t.CompletedAt.In(now.Location())
	if isWeekend(at) {
		dec(&s.WeekendCompleted)
	}
	if t.HasDueDate() && at.Before(t.DueDate) {
		dec(&s.EarlyCompleted)
	}
	if !s.LastCompletionDay.IsZero() && StartOfDay(at).Equal(StartOfDay(s.LastCompletionDay.In(now.Location()))) {
		dec(&s.CompletedToday)
	}
}
