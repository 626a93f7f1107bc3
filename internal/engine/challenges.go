package engine

import (
	"sort"
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

type ChallengeKind string

const (
	ChallengeDaily  ChallengeKind = "daily"
	ChallengeWeekly ChallengeKind = "weekly"
)

const sprintWindow = 2 * time.Hour

// ChallengeInput is the data a challenge measures progress against.
type ChallengeInput struct {
	Stats   model.UserStats
	History []model.Todo
	Now     time.Time
}

// completedBetween returns completion times in [start, end), sorted ascending.
func (in ChallengeInput) completedBetween(start, end time.Time) []model.Todo {
	var out []model.Todo
	for _, t := range in.History {
		if t.Status != model.StatusCompleted || t.CompletedAt.IsZero() {
			continue
		}
		if within(t.CompletedAt.In(in.Now.Location()), start, end) {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt.Before(out[j].CompletedAt) })
	return out
}

func (in ChallengeInput) today() []model.Todo {
	start := StartOfDay(in.Now)
	return in.completedBetween(start, start.AddDate(0, 0, 1))
}

type ChallengeDef struct {
	ID          string
	Kind        ChallengeKind
	Title       string
	Description string
	Target      int
	Reward      int

	Progress func(in ChallengeInput) int
}

func builtinChallenges() []ChallengeDef {
	return []ChallengeDef{
		{
			ID:          "task_warrior",
			Kind:        ChallengeWeekly,
			Title:       "Task Warrior",
			Description: "Complete 20 tasks this week",
			Target:      20,
			Reward:      500,
			Progress: func(in ChallengeInput) int {
				start := StartOfWeek(in.Now)
				return len(in.completedBetween(start, start.AddDate(0, 0, 7)))
			},
		},
		{
			ID:          "streak_master",
			Kind:        ChallengeWeekly,
			Title:       "Streak Master",
			Description: "Maintain a 5-day streak",
			Target:      5,
			Reward:      300,
			Progress: func(in ChallengeInput) int {
				return in.Stats.Streak
			},
		},
		{
			ID:          "morning_rush",
			Kind:        ChallengeDaily,
			Title:       "Early Bird",
			Description: "Complete 3 tasks before noon",
			Target:      3,
			Reward:      50,
			Progress: func(in ChallengeInput) int {
				n := 0
				for _, t := range in.today() {
					if t.CompletedAt.In(in.Now.Location()).Hour() < 12 {
						n++
					}
				}
				return n
			},
		},
		{
			ID:          "category_explorer",
			Kind:        ChallengeDaily,
			Title:       "Category Explorer",
			Description: "Complete tasks from 3 different categories",
			Target:      3,
			Reward:      100,
			Progress: func(in ChallengeInput) int {
				seen := map[string]bool{}
				for _, t := range in.today() {
					seen[model.NormalizeCategoryID(t.CategoryID)] = true
				}
				return len(seen)
			},
		},
		{
			ID:          "productivity_sprint",
			Kind:        ChallengeDaily,
			Title:       "Productivity Champion",
			Description: "Complete 5 tasks within 2 hours",
			Target:      5,
			Reward:      200,
			Progress: func(in ChallengeInput) int {
				return densestWindow(in.today(), sprintWindow)
			},
		},
	}
}

// densestWindow returns the largest number of completions (sorted ascending)
// that fit inside any window of length d.
func densestWindow(done []model.Todo, d time.Duration) int {
	best := 0
	lo := 0
	for hi := range done {
		for done[hi].CompletedAt.Sub(done[lo].CompletedAt) >= d {
			lo++
		}
		if n := hi - lo + 1; n > best {
			best = n
		}
	}
	return best
}

type ChallengeProgress struct {
	ID          string
	Kind        ChallengeKind
	Title       string
	Description string
	Target      int
	Reward      int
	Progress    int
	Completed   bool
	ExpiresAt   time.Time
}

// EvaluateChallenges reports progress on the daily and weekly challenges.
// Progress is capped at the target.
func EvaluateChallenges(stats model.UserStats, history []model.Todo, now time.Time) []ChallengeProgress {
	in := ChallengeInput{Stats: stats, History: history, Now: now}
	defs := builtinChallenges()
	out := make([]ChallengeProgress, 0, len(defs))
	for _, def := range defs {
		p := def.Progress(in)
		if p > def.Target {
			p = def.Target
		}
		if p < 0 {
			p = 0
		}
		expires := StartOfDay(now).AddDate(0, 0, 1)
		if def.Kind == ChallengeWeekly {
			expires = StartOfWeek(now).AddDate(0, 0, 7)
		}
		out = append(out, ChallengeProgress{
			ID:          def.ID,
			Kind:        def.Kind,
			Title:       def.Title,
			Description: def.Description,
			Target:      def.Target,
			Reward:      def.Reward,
			Progress:    p,
			Completed:   p >= def.Target,
			ExpiresAt:   expires,
		})
	}
	return out
}
