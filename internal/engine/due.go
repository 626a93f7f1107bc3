package engine

import (
	"math"
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

type DueState string

const (
	DueNone    DueState = ""
	DueOverdue DueState = "overdue"
	DueToday   DueState = "due_today"
	DueSoon    DueState = "due_soon"
)

// DueSoonDays is the furthest a due date may be, in calendar days, to count as soon.
const DueSoonDays = 3

type DueStatus struct {
	State DueState
	// Days is the number of calendar days until the due date for DueSoon.
	Days int
}

// DueStatusOf classifies a pending todo's due date against now. A date earlier
// today is still due today rather than overdue. Finished or undated todos have
// no due state.
func DueStatusOf(t model.Todo, now time.Time) DueStatus {
	if t.Status != model.StatusPending || !t.HasDueDate() {
		return DueStatus{}
	}
	due := t.DueDate.In(now.Location())
	today := StartOfDay(now)
	dueDay := StartOfDay(due)
	switch {
	case dueDay.Equal(today):
		return DueStatus{State: DueToday}
	case due.Before(now):
		return DueStatus{State: DueOverdue}
	}
	days := int(math.Round(dueDay.Sub(today).Hours() / 24))
	if days <= DueSoonDays {
		return DueStatus{State: DueSoon, Days: days}
	}
	return DueStatus{}
}
