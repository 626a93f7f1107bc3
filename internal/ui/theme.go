package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/model"
)

// Shared theme for the CLI and the board.

const (
	IconTodo    = "📝"
	IconSparkle = "✨"
	IconPlus    = "➕"
	IconDone    = "✅"
	IconSkip    = "⏭️"
	IconTrophy  = "🏆"
	IconBolt    = "⚡"
	IconFire    = "🔥"
	IconInfo    = "ℹ️"
	IconWarn    = "⚠️"
	IconError   = "🧨"
	IconBox     = "📦"
	IconTarget  = "🎯"
	IconScroll  = "📜"
	IconLock    = "🔒"
	IconClock   = "⏰"
)

var (
	cPrimary = lipgloss.Color("63")  // blue
	cAccent  = lipgloss.Color("205") // magenta
	cGood    = lipgloss.Color("42")  // green
	cWarn    = lipgloss.Color("214") // orange
	cBad     = lipgloss.Color("196") // red
	cMuted   = lipgloss.Color("244") // gray
	cGold    = lipgloss.Color("220") // gold
)

var (
	Title = lipgloss.NewStyle().Bold(true).Foreground(cAccent)
	H2    = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Muted = lipgloss.NewStyle().Foreground(cMuted)
	Key   = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	Good  = lipgloss.NewStyle().Bold(true).Foreground(cGood)
	Warn  = lipgloss.NewStyle().Bold(true).Foreground(cWarn)
	Bad   = lipgloss.NewStyle().Bold(true).Foreground(cBad)
	Gold  = lipgloss.NewStyle().Bold(true).Foreground(cGold)
	Dim   = lipgloss.NewStyle().Foreground(cMuted)

	Panel       = lipgloss.NewStyle().BorderStyle(lipgloss.RoundedBorder()).BorderForeground(cMuted).Padding(0, 1)
	PanelTitle  = lipgloss.NewStyle().Bold(true).Foreground(cPrimary)
	SelectedRow = lipgloss.NewStyle().Bold(true).Foreground(cGold).Background(cPrimary)

	BadgeLevelUp = lipgloss.NewStyle().Bold(true).Foreground(cGold).Render("LEVEL UP")
)

func Heading(icon string, title string) string {
	icon = strings.TrimSpace(icon)
	if icon != "" {
		icon += " "
	}
	return Title.Render(icon + title)
}

func LabelValue(label string, value any) string {
	return fmt.Sprintf("%s %v", Key.Render(label+":"), value)
}

func StatusText(status model.Status) string {
	switch status {
	case model.StatusCompleted:
		return Good.Render("completed")
	case model.StatusSkipped:
		return Muted.Render("skipped")
	case model.StatusPending:
		return Warn.Render("pending")
	default:
		return Muted.Render(string(status))
	}
}

func StatusIcon(status model.Status) string {
	switch status {
	case model.StatusCompleted:
		return IconDone
	case model.StatusSkipped:
		return IconSkip
	default:
		return "⬜"
	}
}

// CategoryLabel renders a category as "icon name"; unknown ids render as-is.
func CategoryLabel(id string) string {
	c, ok := model.LookupCategory(id)
	if !ok {
		return IconBox + " " + id
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Color)).Render(c.Icon + " " + c.Name)
}

// ProgressBar draws a fixed-width bar for value out of max.
func ProgressBar(value, max, width int) string {
	if width <= 0 {
		width = 10
	}
	filled := 0
	if max > 0 {
		filled = value * width / max
	}
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return Good.Render(strings.Repeat("█", filled)) + Dim.Render(strings.Repeat("░", width-filled))
}

// Multiplier formats a momentum multiplier like "x1.5".
func Multiplier(m float64) string {
	return fmt.Sprintf("x%.1f", m)
}

// DueText is the urgency label for a due state; empty when there is none.
func DueText(st engine.DueStatus) string {
	switch st.State {
	case engine.DueOverdue:
		return IconWarn + " Overdue"
	case engine.DueToday:
		return IconClock + " Due today"
	case engine.DueSoon:
		unit := "days"
		if st.Days == 1 {
			unit = "day"
		}
		return fmt.Sprintf("🕒 Due in %d %s", st.Days, unit)
	default:
		return ""
	}
}

func DueStyle(st engine.DueStatus) lipgloss.Style {
	switch st.State {
	case engine.DueOverdue:
		return Bad
	case engine.DueToday:
		return Warn
	case engine.DueSoon:
		return Gold
	default:
		return Muted
	}
}
