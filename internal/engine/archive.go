package engine

import (
	"context"
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

func sameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.In(a.Location()).Date()
	return ay == by && am == bm
}

// staleForMonth reports whether a finished todo belongs to an earlier month than now.
func staleForMonth(t model.Todo, now time.Time) bool {
	if t.Status == model.StatusPending {
		return false
	}
	at := t.FinishedAt()
	if at.IsZero() {
		at = t.CreatedAt
	}
	if at.IsZero() {
		return false
	}
	return !sameMonth(now, at)
}

type ArchiveResult struct {
	Archived  int
	LastReset time.Time
	// Ran is false when the archive already ran this month.
	Ran bool
}

// ArchiveStale moves todos finished in an earlier month into the archive.
// It runs at most once per calendar month unless force is set.
func (s *Service) ArchiveStale(ctx context.Context, force bool) (*ArchiveResult, error) {
	now := s.Now()
	last, err := s.store.LastReset(ctx)
	if err != nil {
		return nil, err
	}
	if !force && !last.IsZero() && sameMonth(now, last) {
		return &ArchiveResult{LastReset: last}, nil
	}

	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return nil, err
	}
	var keep, archived []model.Todo
	for _, t := range todos {
		if staleForMonth(t, now) {
			archived = append(archived, t)
			continue
		}
		keep = append(keep, t)
	}
	if err := s.store.ArchiveTodos(ctx, keep, archived, now); err != nil {
		return nil, err
	}
	if len(archived) > 0 {
		s.log.Info("archived finished todos", "count", len(archived), "previous_reset", last)
	}
	return &ArchiveResult{Archived: len(archived), LastReset: now, Ran: true}, nil
}

func (s *Service) Archived(ctx context.Context) ([]model.Todo, error) {
	return s.store.LoadArchive(ctx)
}

type MonthlySummary struct {
	Month     time.Time
	Completed int
	Skipped   int
	Pending   int
}

// MonthlySummary counts this month's completions and skips and all pending todos.
func (s *Service) MonthlySummary(ctx context.Context) (*MonthlySummary, error) {
	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return nil, err
	}
	now := s.Now()
	y, m, _ := now.Date()
	sum := &MonthlySummary{Month: time.Date(y, m, 1, 0, 0, 0, 0, now.Location())}
	for _, t := range todos {
		switch t.Status {
		case model.StatusPending:
			sum.Pending++
		case model.StatusCompleted:
			if !t.CompletedAt.IsZero() && sameMonth(now, t.CompletedAt) {
				sum.Completed++
			}
		case model.StatusSkipped:
			if !t.SkippedAt.IsZero() && sameMonth(now, t.SkippedAt) {
				sum.Skipped++
			}
		}
	}
	return sum, nil
}
