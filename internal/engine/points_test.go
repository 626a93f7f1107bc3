package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/4ast4orward/To-do-List/internal/model"
)

// Wednesday.
var wed = time.Date(2026, 10, 14, 14, 0, 0, 0, time.UTC)

func TestCalculatePoints(t *testing.T) {
	sat8 := time.Date(2026, 10, 17, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		todo model.Todo
		now  time.Time
		want int
	}{
		{
			name: "plain weekday afternoon",
			todo: model.Todo{},
			now:  wed,
			want: 10,
		},
		{
			name: "every bonus",
			todo: model.Todo{CreatedAt: sat8.Add(-time.Minute), DueDate: sat8.Add(72 * time.Hour)},
			now:  sat8,
			want: 29, // 10 + 6 early + 5 quick + 5 weekend + 3 early bird
		},
		{
			name: "partial day rounds up",
			todo: model.Todo{DueDate: wed.Add(36 * time.Hour)},
			now:  wed,
			want: 14,
		},
		{
			name: "early bonus capped at ten days",
			todo: model.Todo{DueDate: wed.AddDate(0, 0, 10)},
			now:  wed,
			want: 30,
		},
		{
			name: "early bonus cap holds past ten days",
			todo: model.Todo{DueDate: wed.AddDate(0, 0, 15)},
			now:  wed,
			want: 30,
		},
		{
			name: "overdue gets no early bonus",
			todo: model.Todo{DueDate: wed.Add(-time.Hour)},
			now:  wed,
			want: 10,
		},
		{
			name: "quick window is exclusive",
			todo: model.Todo{CreatedAt: wed.Add(-time.Hour)},
			now:  wed,
			want: 10,
		},
		{
			name: "night owl",
			todo: model.Todo{},
			now:  time.Date(2026, 10, 14, 22, 0, 0, 0, time.UTC),
			want: 13,
		},
		{
			name: "nine o'clock is no longer early",
			todo: model.Todo{},
			now:  time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
			want: 10,
		},
		{
			name: "sunday counts as weekend",
			todo: model.Todo{},
			now:  time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC),
			want: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculatePoints(tt.todo, tt.now))
		})
	}
}

func TestRules_CustomValues(t *testing.T) {
	r := DefaultRules()
	r.BasePoints = 20
	r.WeekendBonus = 0

	sat := time.Date(2026, 10, 17, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 20, r.Points(model.Todo{}, sat))
}

func TestScalePoints(t *testing.T) {
	assert.Equal(t, 10, ScalePoints(10, 1.0))
	assert.Equal(t, 17, ScalePoints(15, 1.1))
	assert.Equal(t, 35, ScalePoints(10, 3.5))
	assert.Equal(t, 10, ScalePoints(10, 0.5))
}

func TestLevelForPoints(t *testing.T) {
	cases := map[int]int{
		-5:  1,
		0:   1,
		99:  1,
		100: 2,
		399: 2,
		400: 3,
		900: 4,
	}
	for points, want := range cases {
		assert.Equal(t, want, LevelForPoints(points), "points=%d", points)
	}

	for level := 1; level <= 10; level++ {
		assert.Equal(t, level, LevelForPoints(PointsForLevel(level)))
		if level > 1 {
			assert.Equal(t, level-1, LevelForPoints(PointsForLevel(level)-1))
		}
	}
}
