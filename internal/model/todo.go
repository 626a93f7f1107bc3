package model

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusSkipped   Status = "skipped"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusCompleted, StatusSkipped:
		return true
	default:
		return false
	}
}

// ParseStatus maps user or stored input to a Status.
// Unknown values fall back to StatusPending.
func ParseStatus(input string) Status {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "completed", "complete", "done":
		return StatusCompleted
	case "skipped", "skip":
		return StatusSkipped
	default:
		return StatusPending
	}
}

// Todo is a single task. Zero-valued times mean "unset or invalid"; the engine
// treats them as missing and skips any bonus that depends on them.
type Todo struct {
	ID          string
	Title       string
	Description string
	Status      Status
	CategoryID  string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	DueDate     time.Time
	CompletedAt time.Time
	SkippedAt   time.Time
}

func (t Todo) HasDueDate() bool { return !t.DueDate.IsZero() }

// FinishedAt returns the moment the todo left pending, falling back to UpdatedAt.
func (t Todo) FinishedAt() time.Time {
	switch t.Status {
	case StatusCompleted:
		if !t.CompletedAt.IsZero() {
			return t.CompletedAt
		}
	case StatusSkipped:
		if !t.SkippedAt.IsZero() {
			return t.SkippedAt
		}
	default:
		return time.Time{}
	}
	return t.UpdatedAt
}

type Category struct {
	ID    string
	Name  string
	Color string
	Icon  string
}

// DefaultCategoryID is used when a todo is created without a category.
const DefaultCategoryID = "other"

var DefaultCategories = []Category{
	{ID: "work", Name: "Work", Color: "#4CAF50", Icon: "💼"},
	{ID: "personal", Name: "Personal", Color: "#2196F3", Icon: "👤"},
	{ID: "shopping", Name: "Shopping", Color: "#FF9800", Icon: "🛒"},
	{ID: "health", Name: "Health", Color: "#E91E63", Icon: "❤️"},
	{ID: "other", Name: "Other", Color: "#9E9E9E", Icon: "📌"},
}

func IsDefaultCategory(id string) bool {
	for _, c := range DefaultCategories {
		if c.ID == id {
			return true
		}
	}
	return false
}

func LookupCategory(id string) (Category, bool) {
	for _, c := range DefaultCategories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// NormalizeCategoryID lower-cases and trims a category id, defaulting to "other".
func NormalizeCategoryID(id string) string {
	id = strings.TrimSpace(strings.ToLower(id))
	if id == "" {
		return DefaultCategoryID
	}
	return id
}
