package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ast4orward/To-do-List/internal/model"
)

func findChallenge(t *testing.T, list []ChallengeProgress, id string) ChallengeProgress {
	t.Helper()
	for _, c := range list {
		if c.ID == id {
			return c
		}
	}
	require.Failf(t, "challenge not found", "id %s", id)
	return ChallengeProgress{}
}

func TestEvaluateChallenges(t *testing.T) {
	now := time.Date(2026, 10, 14, 15, 0, 0, 0, time.UTC)
	at := func(h, m int) time.Time { return time.Date(2026, 10, 14, h, m, 0, 0, time.UTC) }
	done := func(cat string, when time.Time) model.Todo {
		return model.Todo{ID: when.String(), Status: model.StatusCompleted, CategoryID: cat, CompletedAt: when}
	}

	history := []model.Todo{
		done("work", at(8, 0)),
		done("personal", at(9, 0)),
		done("health", at(10, 30)),
		done("work", at(11, 0)),
		done("work", at(14, 0)),
		done("work", time.Date(2026, 10, 12, 10, 0, 0, 0, time.UTC)), // Monday
		done("work", time.Date(2026, 10, 9, 10, 0, 0, 0, time.UTC)),  // last week
		{ID: "p", Status: model.StatusPending},
	}
	stats := model.DefaultStats()
	stats.Streak = 7

	list := EvaluateChallenges(stats, history, now)
	require.Len(t, list, 5)

	warrior := findChallenge(t, list, "task_warrior")
	assert.Equal(t, ChallengeWeekly, warrior.Kind)
	assert.Equal(t, 6, warrior.Progress)
	assert.False(t, warrior.Completed)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), warrior.ExpiresAt)

	streak := findChallenge(t, list, "streak_master")
	assert.Equal(t, 5, streak.Progress)
	assert.True(t, streak.Completed)

	morning := findChallenge(t, list, "morning_rush")
	assert.Equal(t, 3, morning.Progress)
	assert.True(t, morning.Completed)
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), morning.ExpiresAt)

	explorer := findChallenge(t, list, "category_explorer")
	assert.Equal(t, 3, explorer.Progress)
	assert.True(t, explorer.Completed)

	sprint := findChallenge(t, list, "productivity_sprint")
	assert.Equal(t, 2, sprint.Progress)
	assert.False(t, sprint.Completed)
}

func TestEvaluateChallenges_Sprint(t *testing.T) {
	now := time.Date(2026, 10, 14, 20, 0, 0, 0, time.UTC)
	history := completions(5, time.Date(2026, 10, 14, 17, 0, 0, 0, time.UTC), 29*time.Minute)

	sprint := findChallenge(t, EvaluateChallenges(model.DefaultStats(), history, now), "productivity_sprint")
	assert.Equal(t, 5, sprint.Progress)
	assert.True(t, sprint.Completed)
}

func TestDensestWindow(t *testing.T) {
	assert.Zero(t, densestWindow(nil, time.Hour))

	// 30 minutes apart; a two hour window is exclusive at its end.
	done := completions(6, wed, 30*time.Minute)
	assert.Equal(t, 4, densestWindow(done, 2*time.Hour))
	assert.Equal(t, 1, densestWindow(done, 30*time.Minute))
}
