package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

type TransitionRepo struct {
	db dbtx
}

func NewTransitionRepo(db dbtx) *TransitionRepo {
	return &TransitionRepo{db: db}
}

func (r *TransitionRepo) Insert(ctx context.Context, rec model.TransitionRecord) (int64, error) {
	var unlocked *string
	if len(rec.Unlocked) > 0 {
		data, err := json.Marshal(rec.Unlocked)
		if err != nil {
			return 0, fmt.Errorf("marshal unlocked: %w", err)
		}
		s := string(data)
		unlocked = &s
	}
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transitions (todo_id, title, status, at_ms, points, unlocked)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.TodoID, rec.Title, string(rec.Status), rec.At.UnixMilli(), rec.Points, unlocked)
	if err != nil {
		return 0, fmt.Errorf("transition insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("transition last insert id: %w", err)
	}
	return id, nil
}

// ListSince returns transitions at or after since, newest first. limit <= 0 means no limit.
func (r *TransitionRepo) ListSince(ctx context.Context, since time.Time, limit int) ([]model.TransitionRecord, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, todo_id, title, status, at_ms, points, unlocked
		FROM transitions
		WHERE at_ms >= ?
		ORDER BY at_ms DESC, id DESC
		LIMIT ?
	`, sinceMillis(since), limit)
	if err != nil {
		return nil, fmt.Errorf("transition list: %w", err)
	}
	defer rows.Close()

	var out []model.TransitionRecord
	for rows.Next() {
		rec, err := scanTransition(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("transition rows: %w", err)
	}
	return out, nil
}

func (r *TransitionRepo) Last(ctx context.Context, todoID string) (*model.TransitionRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, todo_id, title, status, at_ms, points, unlocked
		FROM transitions
		WHERE todo_id = ?
		ORDER BY at_ms DESC, id DESC
		LIMIT 1
	`, todoID)
	rec, err := scanTransition(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return rec, nil
}

func (r *TransitionRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM transitions`); err != nil {
		return fmt.Errorf("transition delete: %w", err)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTransition(row scanner) (*model.TransitionRecord, error) {
	var (
		rec      model.TransitionRecord
		status   string
		atMillis int64
		unlocked sql.NullString
	)
	if err := row.Scan(&rec.ID, &rec.TodoID, &rec.Title, &status, &atMillis, &rec.Points, &unlocked); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("transition scan: %w", err)
	}
	rec.Status = model.ParseStatus(status)
	rec.At = time.UnixMilli(atMillis)
	if unlocked.Valid && unlocked.String != "" {
		if err := json.Unmarshal([]byte(unlocked.String), &rec.Unlocked); err != nil {
			return nil, fmt.Errorf("unmarshal unlocked: %w", err)
		}
	}
	return &rec, nil
}

func sinceMillis(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}
