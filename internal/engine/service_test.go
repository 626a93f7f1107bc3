package engine

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ast4orward/To-do-List/internal/model"
	"github.com/4ast4orward/To-do-List/internal/storage"
)

func newTestService(t *testing.T, now time.Time) (*Service, *FixedClock) {
	t.Helper()
	ctx := context.Background()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := storage.Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	clock := NewFixedClock(now)
	svc := NewService(storage.NewStore(db, logger), Options{Clock: clock, Logger: logger})
	return svc, clock
}

func addTodo(t *testing.T, svc *Service, title string, in AddTodoInput) *model.Todo {
	t.Helper()
	in.Title = title
	todo, err := svc.AddTodo(context.Background(), in)
	require.NoError(t, err)
	return todo
}

func TestService_AddTodo(t *testing.T) {
	svc, _ := newTestService(t, wed)
	ctx := context.Background()

	_, err := svc.AddTodo(ctx, AddTodoInput{Title: "   "})
	require.ErrorIs(t, err, ErrEmptyTitle)

	todo := addTodo(t, svc, "  Buy milk ", AddTodoInput{CategoryID: "Shopping"})
	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, "shopping", todo.CategoryID)
	assert.Equal(t, model.StatusPending, todo.Status)
	assert.Equal(t, wed, todo.CreatedAt)
	assert.NotEmpty(t, todo.ID)

	other := addTodo(t, svc, "Call mom", AddTodoInput{})
	assert.Equal(t, model.DefaultCategoryID, other.CategoryID)

	todos, err := svc.Todos(ctx, TodoFilter{})
	require.NoError(t, err)
	assert.Len(t, todos, 2)
}

func TestService_CompletePersists(t *testing.T) {
	svc, _ := newTestService(t, wed)
	ctx := context.Background()

	todo := addTodo(t, svc, "Write report", AddTodoInput{CategoryID: "work"})
	res, err := svc.Complete(ctx, todo.ID[:8])
	require.NoError(t, err)

	assert.Equal(t, model.StatusCompleted, res.Todo.Status)
	assert.Equal(t, wed, res.Todo.CompletedAt)
	assert.Equal(t, 17, res.PointsAwarded)
	assert.Equal(t, []string{"first_todo"}, unlockedIDs(res.Unlocked))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 17, stats.Points)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 1, stats.Streak)
	assert.Equal(t, 1, stats.TasksByCategory["work"])
	assert.True(t, stats.HasAchievement("first_todo"))

	hist, err := svc.History(ctx, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, todo.ID, hist[0].TodoID)
	assert.Equal(t, model.StatusCompleted, hist[0].Status)
	assert.Equal(t, 17, hist[0].Points)
	assert.Equal(t, []string{"first_todo"}, hist[0].Unlocked)

	_, err = svc.Complete(ctx, todo.ID)
	var terr TransitionError
	require.True(t, errors.As(err, &terr))
	assert.Equal(t, model.StatusCompleted, terr.From)

	_, err = svc.Skip(ctx, todo.ID)
	require.True(t, errors.As(err, &terr))
}

func TestService_NotFound(t *testing.T) {
	svc, _ := newTestService(t, wed)

	_, err := svc.Complete(context.Background(), "missing")
	var nf NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "missing", nf.Ref)
}

func TestFindTodo(t *testing.T) {
	todos := []model.Todo{{ID: "abc123"}, {ID: "abd456"}, {ID: "ab"}}

	idx, err := findTodo(todos, "abc")
	require.NoError(t, err)
	assert.Equal(t, 0, idx)

	idx, err = findTodo(todos, "ab")
	require.NoError(t, err)
	assert.Equal(t, 2, idx, "exact id wins over prefix matches")

	_, err = findTodo(todos[:2], "ab")
	var amb AmbiguousError
	require.True(t, errors.As(err, &amb))
	assert.Equal(t, 2, amb.Matches)

	_, err = findTodo(todos, " ")
	require.Error(t, err)
}

func TestService_StreakAcrossDays(t *testing.T) {
	mon := time.Date(2026, 10, 12, 18, 0, 0, 0, time.UTC)
	svc, clock := newTestService(t, mon)
	ctx := context.Background()

	complete := func() model.UserStats {
		todo := addTodo(t, svc, "daily", AddTodoInput{})
		res, err := svc.Complete(ctx, todo.ID)
		require.NoError(t, err)
		return res.Stats
	}

	assert.Equal(t, 1, complete().Streak)
	assert.Equal(t, 1, complete().Streak) // same day
	clock.Advance(24 * time.Hour)
	assert.Equal(t, 2, complete().Streak)
	clock.Advance(48 * time.Hour)
	s := complete()
	assert.Equal(t, 1, s.Streak)
	assert.Equal(t, 2, s.LongestStreak)
	assert.Equal(t, 4, s.TotalCompleted)
}

func TestService_SkipResetsStreak(t *testing.T) {
	svc, _ := newTestService(t, wed)
	ctx := context.Background()

	a := addTodo(t, svc, "a", AddTodoInput{})
	b := addTodo(t, svc, "b", AddTodoInput{})
	_, err := svc.Complete(ctx, a.ID)
	require.NoError(t, err)

	res, err := svc.Skip(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusSkipped, res.Todo.Status)
	assert.Equal(t, wed, res.Todo.SkippedAt)
	assert.Zero(t, res.Stats.Streak)
	assert.Equal(t, 1, res.Stats.TotalSkipped)
	assert.Equal(t, 1, res.Stats.LongestStreak)
}

func TestService_Reopen(t *testing.T) {
	svc, clock := newTestService(t, wed)
	ctx := context.Background()

	todo := addTodo(t, svc, "Write report", AddTodoInput{CategoryID: "work"})
	_, err := svc.Reopen(ctx, todo.ID)
	var terr TransitionError
	require.True(t, errors.As(err, &terr), "pending todos cannot be reopened")

	done, err := svc.Complete(ctx, todo.ID)
	require.NoError(t, err)

	clock.Advance(time.Hour)
	res, err := svc.Reopen(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusCompleted, res.From)
	assert.Equal(t, done.PointsAwarded, res.PointsRemoved)
	assert.Equal(t, model.StatusPending, res.Todo.Status)
	assert.True(t, res.Todo.CompletedAt.IsZero())

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Points)
	assert.Zero(t, stats.TotalCompleted)
	assert.Zero(t, stats.TasksByCategory["work"])
	assert.True(t, stats.HasAchievement("first_todo"), "achievements are kept")

	hist, err := svc.History(ctx, time.Time{}, 0)
	require.NoError(t, err)
	require.Len(t, hist, 2)
	assert.Equal(t, model.StatusPending, hist[0].Status)
	assert.Equal(t, -done.PointsAwarded, hist[0].Points)

	// completing again is allowed once reopened
	_, err = svc.Complete(ctx, todo.ID)
	require.NoError(t, err)
}

func TestService_ReopenRollsBackDailyTallies(t *testing.T) {
	sat := time.Date(2026, 10, 17, 14, 0, 0, 0, time.UTC)
	svc, clock := newTestService(t, sat)
	ctx := context.Background()

	todo := addTodo(t, svc, "Mow lawn", AddTodoInput{DueDate: sat.AddDate(0, 0, 2)})
	for i := 0; i < 5; i++ {
		res, err := svc.Complete(ctx, todo.ID)
		require.NoError(t, err)
		assert.NotContains(t, unlockedIDs(res.Unlocked), "task_streak_5")
		clock.Advance(time.Minute)
		_, err = svc.Reopen(ctx, todo.ID)
		require.NoError(t, err)
		clock.Advance(time.Minute)
	}

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalCompleted)
	assert.Zero(t, stats.CompletedToday)
	assert.Zero(t, stats.WeekendCompleted)
	assert.Zero(t, stats.EarlyCompleted)
	assert.False(t, stats.HasAchievement("task_streak_5"))

	res, err := svc.Complete(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.CompletedToday)
	assert.Equal(t, 1, res.Stats.WeekendCompleted)
	assert.Equal(t, 1, res.Stats.EarlyCompleted)
}

func TestService_ReopenKeepsOtherDaysTally(t *testing.T) {
	fri := time.Date(2026, 10, 16, 14, 0, 0, 0, time.UTC)
	svc, clock := newTestService(t, fri)
	ctx := context.Background()

	old := addTodo(t, svc, "yesterday", AddTodoInput{})
	_, err := svc.Complete(ctx, old.ID)
	require.NoError(t, err)

	clock.Advance(24 * time.Hour)
	today := addTodo(t, svc, "today", AddTodoInput{})
	_, err = svc.Complete(ctx, today.ID)
	require.NoError(t, err)

	_, err = svc.Reopen(ctx, old.ID)
	require.NoError(t, err)
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.CompletedToday, "only today's completions count toward today")
	assert.Equal(t, 1, stats.WeekendCompleted)
}

func TestService_LapsedStreakOnReads(t *testing.T) {
	mon := time.Date(2026, 10, 5, 18, 0, 0, 0, time.UTC)
	svc, clock := newTestService(t, mon)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		todo := addTodo(t, svc, "daily", AddTodoInput{})
		_, err := svc.Complete(ctx, todo.ID)
		require.NoError(t, err)
		if i < 4 {
			clock.Advance(24 * time.Hour)
		}
	}

	clock.Advance(24 * time.Hour)
	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, stats.Streak, "a streak survives until the day after the last completion ends")

	clock.Advance(9 * 24 * time.Hour)
	stats, err = svc.Stats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Streak)
	assert.Equal(t, 5, stats.LongestStreak)
	assert.Zero(t, stats.Momentum.StreakDays)

	m, err := svc.Momentum(ctx)
	require.NoError(t, err)
	assert.Zero(t, m.StreakDays)
	assert.InDelta(t, 1.0, m.Multiplier, 1e-9)

	list, err := svc.Challenges(ctx)
	require.NoError(t, err)
	streak := findChallenge(t, list, "streak_master")
	assert.Zero(t, streak.Progress)
	assert.False(t, streak.Completed)

	todo := addTodo(t, svc, "back at it", AddTodoInput{})
	res, err := svc.Complete(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Stats.Streak)
}

func TestService_TodosOrderingAndFilter(t *testing.T) {
	svc, clock := newTestService(t, wed)
	ctx := context.Background()

	undated := addTodo(t, svc, "undated", AddTodoInput{CategoryID: "work"})
	clock.Advance(time.Minute)
	late := addTodo(t, svc, "late", AddTodoInput{DueDate: wed.AddDate(0, 0, 5), CategoryID: "work"})
	clock.Advance(time.Minute)
	soon := addTodo(t, svc, "soon", AddTodoInput{DueDate: wed.AddDate(0, 0, 1)})
	clock.Advance(time.Minute)
	done := addTodo(t, svc, "done", AddTodoInput{DueDate: wed})
	_, err := svc.Complete(ctx, done.ID)
	require.NoError(t, err)

	todos, err := svc.Todos(ctx, TodoFilter{})
	require.NoError(t, err)
	ids := make([]string, 0, len(todos))
	for _, td := range todos {
		ids = append(ids, td.ID)
	}
	assert.Equal(t, []string{soon.ID, late.ID, undated.ID, done.ID}, ids)

	work, err := svc.Todos(ctx, TodoFilter{CategoryID: "work"})
	require.NoError(t, err)
	assert.Len(t, work, 2)

	completed, err := svc.Todos(ctx, TodoFilter{Status: model.StatusCompleted})
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, done.ID, completed[0].ID)
}

func TestService_Edits(t *testing.T) {
	svc, _ := newTestService(t, wed)
	ctx := context.Background()

	todo := addTodo(t, svc, "Buy milk", AddTodoInput{})

	due := wed.AddDate(0, 0, 2)
	got, err := svc.Reschedule(ctx, todo.ID, due)
	require.NoError(t, err)
	assert.Equal(t, due, got.DueDate)

	got, err = svc.Reschedule(ctx, todo.ID, time.Time{})
	require.NoError(t, err)
	assert.False(t, got.HasDueDate())

	_, err = svc.Rename(ctx, todo.ID, "")
	require.ErrorIs(t, err, ErrEmptyTitle)
	got, err = svc.Rename(ctx, todo.ID, "Buy oat milk")
	require.NoError(t, err)
	assert.Equal(t, "Buy oat milk", got.Title)

	got, err = svc.Recategorize(ctx, todo.ID, "Shopping")
	require.NoError(t, err)
	assert.Equal(t, "shopping", got.CategoryID)

	removed, err := svc.Delete(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, todo.ID, removed.ID)

	todos, err := svc.Todos(ctx, TodoFilter{})
	require.NoError(t, err)
	assert.Empty(t, todos)
}

func TestService_ClearKeepsStats(t *testing.T) {
	svc, _ := newTestService(t, wed)
	ctx := context.Background()

	a := addTodo(t, svc, "a", AddTodoInput{})
	addTodo(t, svc, "b", AddTodoInput{})
	_, err := svc.Complete(ctx, a.ID)
	require.NoError(t, err)

	n, err := svc.ClearCompleted(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = svc.ClearAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalCompleted)
}

func TestService_Reset(t *testing.T) {
	svc, _ := newTestService(t, wed)
	ctx := context.Background()

	a := addTodo(t, svc, "a", AddTodoInput{})
	_, err := svc.Complete(ctx, a.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx))

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.DefaultStats(), stats)

	todos, err := svc.Todos(ctx, TodoFilter{})
	require.NoError(t, err)
	assert.Empty(t, todos)

	hist, err := svc.History(ctx, time.Time{}, 0)
	require.NoError(t, err)
	assert.Empty(t, hist)
}

func TestService_ArchiveStale(t *testing.T) {
	sep := time.Date(2026, 9, 20, 12, 0, 0, 0, time.UTC)
	svc, clock := newTestService(t, sep)
	ctx := context.Background()

	old := addTodo(t, svc, "september", AddTodoInput{})
	_, err := svc.Complete(ctx, old.ID)
	require.NoError(t, err)
	pending := addTodo(t, svc, "still open", AddTodoInput{})

	clock.Set(wed)
	current := addTodo(t, svc, "october", AddTodoInput{})
	_, err = svc.Complete(ctx, current.ID)
	require.NoError(t, err)

	res, err := svc.ArchiveStale(ctx, false)
	require.NoError(t, err)
	assert.True(t, res.Ran)
	assert.Equal(t, 1, res.Archived)

	archived, err := svc.Archived(ctx)
	require.NoError(t, err)
	require.Len(t, archived, 1)
	assert.Equal(t, old.ID, archived[0].ID)

	todos, err := svc.Todos(ctx, TodoFilter{})
	require.NoError(t, err)
	assert.Len(t, todos, 2)
	assert.Equal(t, pending.ID, todos[0].ID)

	res, err = svc.ArchiveStale(ctx, false)
	require.NoError(t, err)
	assert.False(t, res.Ran, "runs once per month")

	sum, err := svc.MonthlySummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sum.Completed)
	assert.Equal(t, 1, sum.Pending)
	assert.Equal(t, time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), sum.Month)
}

func TestService_MomentumAndChallenges(t *testing.T) {
	svc, clock := newTestService(t, wed)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		todo := addTodo(t, svc, "t", AddTodoInput{})
		_, err := svc.Complete(ctx, todo.ID)
		require.NoError(t, err)
		clock.Advance(10 * time.Minute)
	}

	m, err := svc.Momentum(ctx)
	require.NoError(t, err)
	assert.Equal(t, 5, m.WeeklyTasks)
	assert.Equal(t, 2, m.Level)
	assert.InDelta(t, 1.3, m.Multiplier, 1e-9)

	list, err := svc.Challenges(ctx)
	require.NoError(t, err)
	assert.True(t, findChallenge(t, list, "productivity_sprint").Completed)

	board, err := svc.Achievements(ctx)
	require.NoError(t, err)
	assert.Len(t, board, len(Catalog()))
}
