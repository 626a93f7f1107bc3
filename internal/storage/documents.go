package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/4ast4orward/To-do-List/internal/model"
)

// Documents are JSON with ISO-8601 date strings. Decoding is tolerant: an
// unparsable date becomes the zero time, which the engine treats as missing.

type achievementDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title,omitempty"`
	Name        string `json:"name,omitempty"` // v0
	Description string `json:"description,omitempty"`
	Icon        string `json:"icon,omitempty"`
	UnlockedAt  string `json:"unlockedAt,omitempty"`
}

type momentumDoc struct {
	Level         int     `json:"level"`
	Multiplier    float64 `json:"multiplier"`
	StreakDays    int     `json:"streakDays"`
	WeeklyTasks   int     `json:"weeklyTasks"`
	LastWeekTasks int     `json:"lastWeekTasks"`
	GrowthRate    float64 `json:"growthRate"`
}

type statsDoc struct {
	SchemaVersion int `json:"schemaVersion"`

	Points         int `json:"points"`
	Level          int `json:"level"`
	Streak         int `json:"streak"`
	LongestStreak  int `json:"longestStreak"`
	TotalCompleted int `json:"totalCompleted"`
	TotalSkipped   int `json:"totalSkipped"`

	WeekendCompleted int `json:"weekendCompleted"`
	EarlyCompleted   int `json:"earlyCompleted"`
	CompletedToday   int `json:"completedToday"`

	LastCompletionDay string `json:"lastCompletionDay,omitempty"`
	LastActive        string `json:"lastActive,omitempty"`

	Achievements    []achievementDoc `json:"achievements"`
	Momentum        *momentumDoc     `json:"momentum,omitempty"`
	TasksByCategory map[string]int   `json:"tasksByCategory"`

	// v0 flat counters; read only.
	CompletedTasks *int `json:"completedTasks,omitempty"`
	SkippedTasks   *int `json:"skippedTasks,omitempty"`
	CurrentStreak  *int `json:"currentStreak,omitempty"`
}

type todoDoc struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Status      string `json:"status"`
	CategoryID  string `json:"categoryId"`
	Category    string `json:"category,omitempty"` // v0 display name
	CreatedAt   string `json:"createdAt,omitempty"`
	UpdatedAt   string `json:"updatedAt,omitempty"`
	DueDate     string `json:"dueDate,omitempty"`
	CompletedAt string `json:"completedAt,omitempty"`
	SkippedAt   string `json:"skippedAt,omitempty"`
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseTime(s string) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}

// EncodeStats serializes stats at the current schema version.
func EncodeStats(s model.UserStats) ([]byte, error) {
	doc := statsDoc{
		SchemaVersion:     model.SchemaVersion,
		Points:            s.Points,
		Level:             s.Level,
		Streak:            s.Streak,
		LongestStreak:     s.LongestStreak,
		TotalCompleted:    s.TotalCompleted,
		TotalSkipped:      s.TotalSkipped,
		WeekendCompleted:  s.WeekendCompleted,
		EarlyCompleted:    s.EarlyCompleted,
		CompletedToday:    s.CompletedToday,
		LastCompletionDay: formatTime(s.LastCompletionDay),
		LastActive:        formatTime(s.LastActive),
		Achievements:      make([]achievementDoc, 0, len(s.Achievements)),
		Momentum: &momentumDoc{
			Level:         s.Momentum.Level,
			Multiplier:    s.Momentum.Multiplier,
			StreakDays:    s.Momentum.StreakDays,
			WeeklyTasks:   s.Momentum.WeeklyTasks,
			LastWeekTasks: s.Momentum.LastWeekTasks,
			GrowthRate:    s.Momentum.GrowthRate,
		},
		TasksByCategory: s.TasksByCategory,
	}
	if doc.TasksByCategory == nil {
		doc.TasksByCategory = map[string]int{}
	}
	for _, a := range s.Achievements {
		doc.Achievements = append(doc.Achievements, achievementDoc{
			ID:          a.ID,
			Title:       a.Title,
			Description: a.Description,
			Icon:        a.Icon,
			UnlockedAt:  formatTime(a.UnlockedAt),
		})
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("marshal stats: %w", err)
	}
	return data, nil
}

// DecodeStats parses a stats document of any schema version into the
// canonical shape. Malformed JSON is an error; callers fall back to defaults.
func DecodeStats(data []byte) (model.UserStats, error) {
	var doc statsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return model.UserStats{}, fmt.Errorf("unmarshal stats: %w", err)
	}
	return normalizeStats(doc), nil
}

func normalizeStats(doc statsDoc) model.UserStats {
	if doc.SchemaVersion < 1 {
		if doc.CompletedTasks != nil && doc.TotalCompleted == 0 {
			doc.TotalCompleted = *doc.CompletedTasks
		}
		if doc.SkippedTasks != nil && doc.TotalSkipped == 0 {
			doc.TotalSkipped = *doc.SkippedTasks
		}
		if doc.CurrentStreak != nil && doc.Streak == 0 {
			doc.Streak = *doc.CurrentStreak
		}
	}

	s := model.DefaultStats()
	s.Points = nonNegative(doc.Points)
	s.Level = doc.Level
	if s.Level < 1 {
		s.Level = 1
	}
	s.Streak = nonNegative(doc.Streak)
	s.LongestStreak = nonNegative(doc.LongestStreak)
	if s.LongestStreak < s.Streak {
		s.LongestStreak = s.Streak
	}
	s.TotalCompleted = nonNegative(doc.TotalCompleted)
	s.TotalSkipped = nonNegative(doc.TotalSkipped)
	s.WeekendCompleted = nonNegative(doc.WeekendCompleted)
	s.EarlyCompleted = nonNegative(doc.EarlyCompleted)
	s.CompletedToday = nonNegative(doc.CompletedToday)
	s.LastCompletionDay = parseTime(doc.LastCompletionDay)
	s.LastActive = parseTime(doc.LastActive)

	if doc.Momentum != nil {
		m := model.MomentumStats{
			Level:         doc.Momentum.Level,
			Multiplier:    doc.Momentum.Multiplier,
			StreakDays:    nonNegative(doc.Momentum.StreakDays),
			WeeklyTasks:   nonNegative(doc.Momentum.WeeklyTasks),
			LastWeekTasks: nonNegative(doc.Momentum.LastWeekTasks),
			GrowthRate:    doc.Momentum.GrowthRate,
		}
		if m.Level < 1 {
			m.Level = 1
		}
		if m.Multiplier < 1 {
			m.Multiplier = 1
		}
		s.Momentum = m
	}

	for k, v := range doc.TasksByCategory {
		if v > 0 {
			s.TasksByCategory[k] = v
		}
	}

	seen := map[string]bool{}
	for _, a := range doc.Achievements {
		id := strings.TrimSpace(a.ID)
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		title := a.Title
		if title == "" {
			title = a.Name
		}
		s.Achievements = append(s.Achievements, model.UnlockedAchievement{
			ID:          id,
			Title:       title,
			Description: a.Description,
			Icon:        a.Icon,
			UnlockedAt:  parseTime(a.UnlockedAt),
		})
	}

	s.SchemaVersion = model.SchemaVersion
	return s
}

func nonNegative(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

func EncodeTodos(todos []model.Todo) ([]byte, error) {
	docs := make([]todoDoc, 0, len(todos))
	for _, t := range todos {
		docs = append(docs, todoDoc{
			ID:          t.ID,
			Title:       t.Title,
			Description: t.Description,
			Status:      string(t.Status),
			CategoryID:  t.CategoryID,
			CreatedAt:   formatTime(t.CreatedAt),
			UpdatedAt:   formatTime(t.UpdatedAt),
			DueDate:     formatTime(t.DueDate),
			CompletedAt: formatTime(t.CompletedAt),
			SkippedAt:   formatTime(t.SkippedAt),
		})
	}
	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("marshal todos: %w", err)
	}
	return data, nil
}

// DecodeTodos parses a todo list. A malformed list is an error; a malformed
// entry is dropped and reported in the joined error alongside the rest.
func DecodeTodos(data []byte) ([]model.Todo, error) {
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("unmarshal todos: %w", err)
	}

	var (
		out  []model.Todo
		errs []error
	)
	for i, raw := range raws {
		var doc todoDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			errs = append(errs, fmt.Errorf("todo %d: %w", i, err))
			continue
		}
		out = append(out, normalizeTodo(doc))
	}
	return out, errors.Join(errs...)
}

func normalizeTodo(doc todoDoc) model.Todo {
	t := model.Todo{
		ID:          strings.TrimSpace(doc.ID),
		Title:       strings.TrimSpace(doc.Title),
		Description: doc.Description,
		Status:      model.ParseStatus(doc.Status),
		CreatedAt:   parseTime(doc.CreatedAt),
		UpdatedAt:   parseTime(doc.UpdatedAt),
		DueDate:     parseTime(doc.DueDate),
		CompletedAt: parseTime(doc.CompletedAt),
		SkippedAt:   parseTime(doc.SkippedAt),
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	cat := doc.CategoryID
	if cat == "" {
		cat = doc.Category
	}
	t.CategoryID = model.NormalizeCategoryID(cat)

	switch t.Status {
	case model.StatusCompleted:
		if t.CompletedAt.IsZero() {
			t.CompletedAt = t.UpdatedAt
		}
		t.SkippedAt = time.Time{}
	case model.StatusSkipped:
		if t.SkippedAt.IsZero() {
			t.SkippedAt = t.UpdatedAt
		}
		t.CompletedAt = time.Time{}
	default:
		t.CompletedAt = time.Time{}
		t.SkippedAt = time.Time{}
	}
	return t
}
