package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

const (
	KeyUserStats     = "todoApp_userStats"
	KeyTodos         = "todoApp_todos"
	KeyArchivedTodos = "todoApp_archivedTodos"
	KeyLastReset     = "todoApp_lastResetDate"
)

// Store keeps the JSON documents in the kv table and the transition log
// alongside them. Unreadable documents load as defaults and are logged.
type Store struct {
	db          *sql.DB
	kv          *KVRepo
	transitions *TransitionRepo
	log         *slog.Logger
}

func NewStore(db *sql.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		db:          db,
		kv:          NewKVRepo(db),
		transitions: NewTransitionRepo(db),
		log:         logger,
	}
}

func (s *Store) LoadStats(ctx context.Context) (model.UserStats, error) {
	raw, ok, err := s.kv.Get(ctx, KeyUserStats)
	if err != nil {
		return model.UserStats{}, err
	}
	if !ok {
		return model.DefaultStats(), nil
	}
	stats, err := DecodeStats([]byte(raw))
	if err != nil {
		s.log.Warn("stats unreadable, using defaults", "key", KeyUserStats, "err", err)
		return model.DefaultStats(), nil
	}
	return stats, nil
}

func (s *Store) SaveStats(ctx context.Context, stats model.UserStats) error {
	return putStats(ctx, s.kv, stats, time.Now())
}

func (s *Store) LoadTodos(ctx context.Context) ([]model.Todo, error) {
	return s.loadTodoList(ctx, KeyTodos)
}

func (s *Store) SaveTodos(ctx context.Context, todos []model.Todo) error {
	return putTodos(ctx, s.kv, KeyTodos, todos, time.Now())
}

func (s *Store) LoadArchive(ctx context.Context) ([]model.Todo, error) {
	return s.loadTodoList(ctx, KeyArchivedTodos)
}

func (s *Store) loadTodoList(ctx context.Context, key string) ([]model.Todo, error) {
	raw, ok, err := s.kv.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	todos, err := DecodeTodos([]byte(raw))
	if err != nil {
		s.log.Warn("todo list partly unreadable", "key", key, "kept", len(todos), "err", err)
	}
	return todos, nil
}

func (s *Store) CommitTransition(ctx context.Context, stats model.UserStats, todos []model.Todo, rec model.TransitionRecord) error {
	return s.inTx(ctx, "commit transition", func(r txRepos) error {
		if err := putStats(ctx, r.kv, stats, rec.At); err != nil {
			return err
		}
		if err := putTodos(ctx, r.kv, KeyTodos, todos, rec.At); err != nil {
			return err
		}
		_, err := r.transitions.Insert(ctx, rec)
		return err
	})
}

func (s *Store) LastTransition(ctx context.Context, todoID string) (*model.TransitionRecord, error) {
	return s.transitions.Last(ctx, todoID)
}

func (s *Store) ListTransitions(ctx context.Context, since time.Time, limit int) ([]model.TransitionRecord, error) {
	return s.transitions.ListSince(ctx, since, limit)
}

func (s *Store) LastReset(ctx context.Context) (time.Time, error) {
	raw, ok, err := s.kv.Get(ctx, KeyLastReset)
	if err != nil || !ok {
		return time.Time{}, err
	}
	t := parseTime(raw)
	if t.IsZero() {
		s.log.Warn("last reset date unreadable", "key", KeyLastReset, "value", raw)
	}
	return t, nil
}

func (s *Store) ArchiveTodos(ctx context.Context, keep, archived []model.Todo, resetAt time.Time) error {
	prev, err := s.LoadArchive(ctx)
	if err != nil {
		return err
	}
	return s.inTx(ctx, "archive", func(r txRepos) error {
		if len(archived) > 0 {
			if err := putTodos(ctx, r.kv, KeyTodos, keep, resetAt); err != nil {
				return err
			}
			if err := putTodos(ctx, r.kv, KeyArchivedTodos, append(prev, archived...), resetAt); err != nil {
				return err
			}
		}
		return r.kv.Put(ctx, KeyLastReset, formatTime(resetAt), resetAt)
	})
}

// Clear drops every stored document, including keys this version does not
// know, then writes default stats and empties the transition log.
func (s *Store) Clear(ctx context.Context) error {
	return s.inTx(ctx, "clear", func(r txRepos) error {
		keys, err := r.kv.Keys(ctx)
		if err != nil {
			return err
		}
		for _, key := range keys {
			if err := r.kv.Delete(ctx, key); err != nil {
				return err
			}
		}
		if err := putStats(ctx, r.kv, model.DefaultStats(), time.Now()); err != nil {
			return err
		}
		return r.transitions.DeleteAll(ctx)
	})
}

func putStats(ctx context.Context, kv *KVRepo, stats model.UserStats, at time.Time) error {
	data, err := EncodeStats(stats)
	if err != nil {
		return err
	}
	return kv.Put(ctx, KeyUserStats, string(data), at)
}

func putTodos(ctx context.Context, kv *KVRepo, key string, todos []model.Todo, at time.Time) error {
	data, err := EncodeTodos(todos)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return kv.Put(ctx, key, string(data), at)
}
