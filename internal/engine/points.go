package engine

import (
	"math"
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

const (
	// PointsPerLevelUnit is the scale of the level curve: level = floor(sqrt(points/100)) + 1.
	PointsPerLevelUnit = 100.0
)

// CalculatePoints computes the points for completing t at now with the default rules.
func CalculatePoints(t model.Todo, now time.Time) int {
	return DefaultRules().Points(t, now)
}

// Points computes the points for completing t at now. All bonuses are
// independent and additive; a zero due date or creation time skips its bonus.
func (r Rules) Points(t model.Todo, now time.Time) int {
	points := r.BasePoints

	if t.HasDueDate() && now.Before(t.DueDate) {
		daysEarly := int(math.Ceil(t.DueDate.Sub(now).Hours() / 24))
		bonus := daysEarly * r.EarlyBonusPerDay
		if bonus > r.EarlyBonusCap {
			bonus = r.EarlyBonusCap
		}
		points += bonus
	}

	if !t.CreatedAt.IsZero() {
		elapsed := now.Sub(t.CreatedAt)
		if elapsed >= 0 && elapsed < r.QuickWindow {
			points += r.QuickBonus
		}
	}

	if isWeekend(now) {
		points += r.WeekendBonus
	}
	if isEarlyBird(now) {
		points += r.EarlyBirdBonus
	}
	if isNightOwl(now) {
		points += r.NightOwlBonus
	}

	if points < 0 {
		return 0
	}
	return points
}

// ScalePoints applies a momentum multiplier to a base value, rounding to the
// nearest integer. Multipliers below 1 are treated as 1.
func ScalePoints(base int, multiplier float64) int {
	if multiplier < 1 || math.IsNaN(multiplier) || math.IsInf(multiplier, 0) {
		multiplier = 1
	}
	return int(math.Round(float64(base) * multiplier))
}

// LevelForPoints returns floor(sqrt(points/100)) + 1; level 1 is the floor.
func LevelForPoints(points int) int {
	if points <= 0 {
		return 1
	}
	return int(math.Floor(math.Sqrt(float64(points)/PointsPerLevelUnit))) + 1
}

// PointsForLevel returns the total points at which the given level starts.
func PointsForLevel(level int) int {
	if level <= 1 {
		return 0
	}
	return (level - 1) * (level - 1) * int(PointsPerLevelUnit)
}

func isWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	default:
		return false
	}
}

func isEarlyBird(t time.Time) bool { return t.Hour() < EarlyBirdHour }

func isNightOwl(t time.Time) bool { return t.Hour() >= NightOwlHour }
