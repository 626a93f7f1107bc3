package engine

import (
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

// Snapshot is what an unlock predicate sees: the already-updated stats and the
// todo whose transition triggered the evaluation.
type Snapshot struct {
	Stats   model.UserStats
	Trigger model.Todo
	Now     time.Time
}

func (s Snapshot) completed() bool {
	return s.Trigger.Status == model.StatusCompleted
}

func (s Snapshot) completedAt() time.Time {
	at := s.Trigger.FinishedAt()
	if at.IsZero() {
		return s.Now
	}
	return at.In(s.Now.Location())
}

// Achievement is one entry of the static catalog.
type Achievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Unlock      func(Snapshot) bool
}

const (
	WeekendWarriorTarget  = 5
	PerfectionistTarget   = 10
	BusyDayTarget         = 5
	TaskMasterTarget      = 50
	MomentumKingThreshold = 2.0
)

func catalog() []Achievement {
	return []Achievement{
		{
			ID: "first_todo", Title: "First Step", Description: "Complete your first todo", Icon: "🎯",
			Unlock: func(s Snapshot) bool { return s.Stats.TotalCompleted == 1 },
		},
		streakAchievement("streak_3", "Getting Started", "Keep a 3 day streak", "🌱", 3),
		streakAchievement("streak_7", "Momentum", "Keep a 7 day streak", "🔥", 7),
		{
			ID: "early_bird", Title: "Early Bird", Description: "Complete a task before 9 AM", Icon: "🌅",
			Unlock: func(s Snapshot) bool { return s.completed() && isEarlyBird(s.completedAt()) },
		},
		{
			ID: "night_owl", Title: "Night Owl", Description: "Complete a task after 10 PM", Icon: "🌙",
			Unlock: func(s Snapshot) bool { return s.completed() && isNightOwl(s.completedAt()) },
		},
		{
			ID: "weekend_warrior", Title: "Weekend Warrior", Description: "Complete 5 tasks on weekends", Icon: "🎮",
			Unlock: func(s Snapshot) bool {
				return s.completed() && isWeekend(s.completedAt()) && s.Stats.WeekendCompleted >= WeekendWarriorTarget
			},
		},
		{
			ID: "perfectionist", Title: "Perfectionist", Description: "Complete 10 tasks before their due date", Icon: "💎",
			Unlock: func(s Snapshot) bool {
				return s.completed() && s.Trigger.HasDueDate() && s.completedAt().Before(s.Trigger.DueDate) &&
					s.Stats.EarlyCompleted >= PerfectionistTarget
			},
		},
		categoryAchievement("category_master", "Category Master", "Complete tasks in all default categories", "🗂️"),
		categoryAchievement("category_pro", "Category Pro", "Spread your work across every category", "🧭"),
		{
			ID: "custom_category", Title: "Personal Touch", Description: "Complete a task in a custom category", Icon: "🎨",
			Unlock: func(s Snapshot) bool {
				id := s.Trigger.CategoryID
				return s.completed() && id != "" && !model.IsDefaultCategory(id)
			},
		},
		{
			ID: "task_streak_5", Title: "Busy Day", Description: "Complete 5 tasks in a single day", Icon: "🚀",
			Unlock: func(s Snapshot) bool { return s.Stats.CompletedToday >= BusyDayTarget },
		},
		{
			ID: "task_master", Title: "Task Master", Description: "Complete 50 tasks", Icon: "🏆",
			Unlock: func(s Snapshot) bool { return s.Stats.TotalCompleted >= TaskMasterTarget },
		},
		{
			ID: "momentum_king", Title: "Momentum King", Description: "Reach a 2x momentum multiplier", Icon: "👑",
			Unlock: func(s Snapshot) bool { return s.Stats.Momentum.Multiplier >= MomentumKingThreshold },
		},
	}
}

func streakAchievement(id, title, desc, icon string, days int) Achievement {
	return Achievement{
		ID: id, Title: title, Description: desc, Icon: icon,
		Unlock: func(s Snapshot) bool { return s.Stats.Streak >= days },
	}
}

func categoryAchievement(id, title, desc, icon string) Achievement {
	return Achievement{
		ID: id, Title: title, Description: desc, Icon: icon,
		Unlock: func(s Snapshot) bool { return s.Stats.ActiveCategories() >= len(model.DefaultCategories) },
	}
}

// Catalog returns the full achievement table in display order.
func Catalog() []Achievement {
	return catalog()
}

// EvaluateAchievements returns the achievements that unlock for the given
// snapshot. Ids already present in stats are never returned again.
func EvaluateAchievements(stats model.UserStats, trigger model.Todo, now time.Time) []model.UnlockedAchievement {
	snap := Snapshot{Stats: stats, Trigger: trigger, Now: now}
	var unlocked []model.UnlockedAchievement
	for _, a := range catalog() {
		if stats.HasAchievement(a.ID) {
			continue
		}
		if !a.Unlock(snap) {
			continue
		}
		unlocked = append(unlocked, model.UnlockedAchievement{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			UnlockedAt:  now,
		})
	}
	return unlocked
}

// AchievementStatus is a catalog entry with its earned state.
type AchievementStatus struct {
	ID          string
	Title       string
	Description string
	Icon        string
	Earned      bool
	UnlockedAt  time.Time
}

// AchievementBoard lists every catalog entry with whether stats has earned it.
func AchievementBoard(stats model.UserStats) []AchievementStatus {
	earned := make(map[string]time.Time, len(stats.Achievements))
	for _, a := range stats.Achievements {
		earned[a.ID] = a.UnlockedAt
	}
	all := catalog()
	out := make([]AchievementStatus, 0, len(all))
	for _, a := range all {
		at, ok := earned[a.ID]
		out = append(out, AchievementStatus{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			Earned:      ok,
			UnlockedAt:  at,
		})
	}
	return out
}

// CountEarned returns how many catalog achievements stats has unlocked.
func CountEarned(stats model.UserStats) int {
	n := 0
	for _, a := range AchievementBoard(stats) {
		if a.Earned {
			n++
		}
	}
	return n
}
