package engine

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// dueLayouts are tried in order for absolute due dates.
var dueLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
}

// ParseDue parses user input to a due date relative to now.
// Supported: "" (no due date), today, tomorrow, +Nd, +Nh, +Nw,
// RFC 3339, "YYYY-MM-DD HH:MM" and "YYYY-MM-DD" (end of that day).
func ParseDue(input string, now time.Time) (time.Time, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	switch s {
	case "", "none":
		return time.Time{}, nil
	case "today":
		return endOfDay(now), nil
	case "tomorrow":
		return endOfDay(now.AddDate(0, 0, 1)), nil
	}

	if strings.HasPrefix(s, "+") && len(s) >= 3 {
		n, err := strconv.Atoi(s[1 : len(s)-1])
		if err != nil || n < 0 {
			return time.Time{}, fmt.Errorf("invalid relative due date: %q", input)
		}
		switch s[len(s)-1] {
		case 'h':
			return now.Add(time.Duration(n) * time.Hour), nil
		case 'd':
			return now.AddDate(0, 0, n), nil
		case 'w':
			return now.AddDate(0, 0, 7*n), nil
		default:
			return time.Time{}, fmt.Errorf("invalid relative due date: %q", input)
		}
	}

	for _, layout := range dueLayouts {
		t, err := time.ParseInLocation(layout, strings.TrimSpace(input), now.Location())
		if err != nil {
			continue
		}
		if layout == "2006-01-02" {
			return endOfDay(t), nil
		}
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid due date: %q", input)
}

func endOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Minute)
}
