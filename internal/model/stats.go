package model

import "time"

// SchemaVersion is the version written with every stats document.
// Version 0 covers every shape that predates the field.
const SchemaVersion = 2

type MomentumStats struct {
	Level         int
	Multiplier    float64
	StreakDays    int
	WeeklyTasks   int
	LastWeekTasks int
	GrowthRate    float64
}

// BaseMomentum is the snapshot for a user with no recent activity.
func BaseMomentum() MomentumStats {
	return MomentumStats{Level: 1, Multiplier: 1.0}
}

type UnlockedAchievement struct {
	ID          string
	Title       string
	Description string
	Icon        string
	UnlockedAt  time.Time
}

// UserStats is the single cumulative aggregate for the user.
type UserStats struct {
	SchemaVersion int

	Points         int
	Level          int
	Streak         int
	LongestStreak  int
	TotalCompleted int
	TotalSkipped   int

	// Tallies backing event-driven achievements.
	WeekendCompleted int
	EarlyCompleted   int
	CompletedToday   int

	// LastCompletionDay is local midnight of the most recent completion.
	LastCompletionDay time.Time
	LastActive        time.Time

	Achievements    []UnlockedAchievement
	Momentum        MomentumStats
	TasksByCategory map[string]int
}

func DefaultStats() UserStats {
	return UserStats{
		SchemaVersion:   SchemaVersion,
		Level:           1,
		Momentum:        BaseMomentum(),
		TasksByCategory: map[string]int{},
	}
}

func (s UserStats) HasAchievement(id string) bool {
	for _, a := range s.Achievements {
		if a.ID == id {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no maps or slices with s.
func (s UserStats) Clone() UserStats {
	out := s
	out.Achievements = append([]UnlockedAchievement(nil), s.Achievements...)
	out.TasksByCategory = make(map[string]int, len(s.TasksByCategory))
	for k, v := range s.TasksByCategory {
		out.TasksByCategory[k] = v
	}
	return out
}

// ActiveCategories counts categories with at least one completed task.
func (s UserStats) ActiveCategories() int {
	n := 0
	for _, c := range s.TasksByCategory {
		if c > 0 {
			n++
		}
	}
	return n
}

// TransitionRecord is one entry of the append-only transition log.
type TransitionRecord struct {
	ID       int64
	TodoID   string
	Title    string
	Status   Status
	At       time.Time
	Points   int
	Unlocked []string
}
