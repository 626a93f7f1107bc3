package engine

import (
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

const (
	MaxMomentumLevel = 5

	// StreakBonusPerDay is added to the level multiplier for every streak day.
	StreakBonusPerDay = 0.1
	// MaxStreakBonus caps the streak part of the multiplier.
	MaxStreakBonus = 1.0
)

type momentumLevel struct {
	Threshold  int
	Multiplier float64
}

// momentumLevels is indexed by level; index 0 is unused.
var momentumLevels = [MaxMomentumLevel + 1]momentumLevel{
	{},
	{Threshold: 0, Multiplier: 1.0},
	{Threshold: 5, Multiplier: 1.2},
	{Threshold: 10, Multiplier: 1.5},
	{Threshold: 15, Multiplier: 2.0},
	{Threshold: 20, Multiplier: 2.5},
}

// MomentumLevelForWeek returns the highest level whose threshold weeklyTasks reaches.
func MomentumLevelForWeek(weeklyTasks int) int {
	for level := MaxMomentumLevel; level > 1; level-- {
		if weeklyTasks >= momentumLevels[level].Threshold {
			return level
		}
	}
	return 1
}

// MomentumThreshold returns the weekly completions needed for level.
func MomentumThreshold(level int) int {
	if level < 1 || level > MaxMomentumLevel {
		return 0
	}
	return momentumLevels[level].Threshold
}

func streakBonus(streakDays int) float64 {
	if streakDays <= 0 {
		return 0
	}
	b := float64(streakDays) * StreakBonusPerDay
	if b > MaxStreakBonus {
		return MaxStreakBonus
	}
	return b
}

// StartOfWeek returns Sunday 00:00 of the week containing t, in t's location.
func StartOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, t.Location())
}

// StartOfDay returns 00:00 of the day containing t, in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && t.Before(end)
}

// CalculateMomentum derives the weekly momentum snapshot from the task history
// and the current streak. Weeks start on Sunday in now's location.
func CalculateMomentum(history []model.Todo, stats model.UserStats, now time.Time) model.MomentumStats {
	weekStart := StartOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)
	lastWeekStart := weekStart.AddDate(0, 0, -7)

	weekly, lastWeek := 0, 0
	for _, t := range history {
		if t.Status != model.StatusCompleted || t.CompletedAt.IsZero() {
			continue
		}
		at := t.CompletedAt.In(now.Location())
		switch {
		case within(at, weekStart, weekEnd):
			weekly++
		case within(at, lastWeekStart, weekStart):
			lastWeek++
		}
	}

	streak := stats.Streak
	if streak < 0 {
		streak = 0
	}

	growth := 0.0
	if lastWeek > 0 {
		growth = float64(weekly-lastWeek) / float64(lastWeek) * 100
	}

	level := MomentumLevelForWeek(weekly)
	return model.MomentumStats{
		Level:         level,
		Multiplier:    momentumLevels[level].Multiplier + streakBonus(streak),
		StreakDays:    streak,
		WeeklyTasks:   weekly,
		LastWeekTasks: lastWeek,
		GrowthRate:    growth,
	}
}

type Growth string

const (
	GrowthIncreasing Growth = "increasing"
	GrowthDecreasing Growth = "decreasing"
)

// MomentumBenefits is the user-facing summary of a momentum snapshot.
type MomentumBenefits struct {
	PointMultiplier float64
	StreakBonus     float64
	// WeeklyProgress is the percentage of the top level's threshold reached.
	WeeklyProgress   float64
	Growth           Growth
	NextLevel        int
	NextThreshold    int
	TasksToNextLevel int
}

func BenefitsOf(m model.MomentumStats) MomentumBenefits {
	b := MomentumBenefits{
		PointMultiplier: m.Multiplier,
		StreakBonus:     streakBonus(m.StreakDays),
		WeeklyProgress:  float64(m.WeeklyTasks) / float64(momentumLevels[MaxMomentumLevel].Threshold) * 100,
		Growth:          GrowthIncreasing,
	}
	if m.GrowthRate < 0 {
		b.Growth = GrowthDecreasing
	}
	if m.Level >= 1 && m.Level < MaxMomentumLevel {
		b.NextLevel = m.Level + 1
		b.NextThreshold = momentumLevels[b.NextLevel].Threshold
		b.TasksToNextLevel = b.NextThreshold - m.WeeklyTasks
		if b.TasksToNextLevel < 0 {
			b.TasksToNextLevel = 0
		}
	}
	return b
}
