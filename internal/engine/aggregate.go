package engine

import (
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

// Event is a single status transition. Todo carries the post-transition state
// (status and timestamps already stamped).
type Event struct {
	Todo model.Todo
	From model.Status
	At   time.Time
}

type Result struct {
	Stats    model.UserStats
	Momentum model.MomentumStats

	// BasePoints is the calculator output before the momentum multiplier.
	BasePoints    int
	PointsAwarded int

	Unlocked []model.UnlockedAchievement

	LevelBefore int
	LevelAfter  int
	LevelUp     bool
}

// ApplyTransition is the stats reducer: it returns the aggregate that results
// from applying ev to stats. Counters are updated first; momentum, points and
// achievements are then derived from the updated counters. stats is not modified.
//
// history is the task list; the event's todo replaces any entry with the same id.
func ApplyTransition(stats model.UserStats, history []model.Todo, ev Event, rules Rules) Result {
	rules.ApplyDefaults()
	now := ev.At
	next := stats.Clone()
	if next.TasksByCategory == nil {
		next.TasksByCategory = map[string]int{}
	}
	if next.Level < 1 {
		next.Level = LevelForPoints(next.Points)
	}
	levelBefore := next.Level

	switch ev.Todo.Status {
	case model.StatusCompleted:
		applyCompletion(&next, ev.Todo, now, rules.StreakMode)
	case model.StatusSkipped:
		next.TotalSkipped++
		next.Streak = 0
		next.LastActive = now
	}

	momentum := CalculateMomentum(withEvent(history, ev.Todo), next, now)
	next.Momentum = momentum

	res := Result{Momentum: momentum, LevelBefore: levelBefore}
	if ev.Todo.Status == model.StatusCompleted {
		res.BasePoints = rules.Points(ev.Todo, now)
		res.PointsAwarded = res.BasePoints
		if !rules.IgnoreMomentum {
			res.PointsAwarded = ScalePoints(res.BasePoints, momentum.Multiplier)
		}
		next.Points += res.PointsAwarded
		if next.Points < 0 {
			next.Points = 0
		}
	}
	next.Level = LevelForPoints(next.Points)

	res.Unlocked = EvaluateAchievements(next, ev.Todo, now)
	next.Achievements = append(next.Achievements, res.Unlocked...)
	next.SchemaVersion = model.SchemaVersion

	res.Stats = next
	res.LevelAfter = next.Level
	res.LevelUp = res.LevelAfter > res.LevelBefore
	return res
}

func applyCompletion(s *model.UserStats, t model.Todo, now time.Time, mode StreakMode) {
	today := StartOfDay(now)
	sameDay := !s.LastCompletionDay.IsZero() && StartOfDay(s.LastCompletionDay.In(now.Location())).Equal(today)
	yesterday := !s.LastCompletionDay.IsZero() && StartOfDay(s.LastCompletionDay.In(now.Location())).AddDate(0, 0, 1).Equal(today)

	s.TotalCompleted++

	switch mode {
	case StreakPerCompletion:
		s.Streak++
	default:
		switch {
		case s.Streak > 0 && sameDay:
			// already counted today
		case s.Streak > 0 && yesterday:
			s.Streak++
		default:
			s.Streak = 1
		}
	}
	if s.Streak > s.LongestStreak {
		s.LongestStreak = s.Streak
	}

	if !sameDay {
		s.CompletedToday = 0
	}
	s.CompletedToday++

	cat := model.NormalizeCategoryID(t.CategoryID)
	s.TasksByCategory[cat]++

	if isWeekend(now) {
		s.WeekendCompleted++
	}
	if t.HasDueDate() && now.Before(t.DueDate) {
		s.EarlyCompleted++
	}

	s.LastCompletionDay = today
	s.LastActive = now
}

// EffectiveStreak is the streak as it stands at now. A daily streak lapses once
// a whole calendar day has passed without a completion; the stored value is
// only corrected on the next completion.
func EffectiveStreak(stats model.UserStats, now time.Time, mode StreakMode) int {
	if stats.Streak <= 0 {
		return 0
	}
	if mode == StreakPerCompletion || stats.LastCompletionDay.IsZero() {
		return stats.Streak
	}
	last := StartOfDay(stats.LastCompletionDay.In(now.Location()))
	if last.AddDate(0, 0, 1).Before(StartOfDay(now)) {
		return 0
	}
	return stats.Streak
}

func withEvent(history []model.Todo, t model.Todo) []model.Todo {
	out := make([]model.Todo, 0, len(history)+1)
	replaced := false
	for _, h := range history {
		if h.ID == t.ID && t.ID != "" {
			out = append(out, t)
			replaced = true
			continue
		}
		out = append(out, h)
	}
	if !replaced {
		out = append(out, t)
	}
	return out
}
