package engine

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type StreakMode string

const (
	// StreakDaily counts distinct calendar days with at least one completion.
	StreakDaily StreakMode = "daily"
	// StreakPerCompletion adds one for every completed task.
	StreakPerCompletion StreakMode = "per_completion"
)

func (m StreakMode) IsValid() bool {
	switch m {
	case StreakDaily, StreakPerCompletion:
		return true
	default:
		return false
	}
}

func ParseStreakMode(input string) (StreakMode, error) {
	s := strings.TrimSpace(strings.ToLower(input))
	s = strings.ReplaceAll(s, "-", "_")
	m := StreakMode(s)
	if !m.IsValid() {
		return "", fmt.Errorf("invalid streak mode: %q", input)
	}
	return m, nil
}

const (
	DefaultBasePoints       = 10
	DefaultEarlyBonusPerDay = 2
	DefaultEarlyBonusCap    = 20
	DefaultQuickBonus       = 5
	DefaultQuickWindow      = time.Hour
	DefaultWeekendBonus     = 5
	DefaultEarlyBirdBonus   = 3
	DefaultNightOwlBonus    = 3

	// EarlyBirdHour is the first hour that no longer counts as early.
	EarlyBirdHour = 9
	// NightOwlHour is the first hour that counts as late.
	NightOwlHour = 22
)

// Rules holds the tunable numbers of the points engine. Zero values are
// replaced by defaults in ApplyDefaults, except bonuses that a YAML document
// sets to 0 explicitly: those stay disabled.
type Rules struct {
	BasePoints       int           `yaml:"base_points"`
	EarlyBonusPerDay int           `yaml:"early_bonus_per_day"`
	EarlyBonusCap    int           `yaml:"early_bonus_cap"`
	QuickBonus       int           `yaml:"quick_bonus"`
	QuickWindow      time.Duration `yaml:"quick_window"`
	WeekendBonus     int           `yaml:"weekend_bonus"`
	EarlyBirdBonus   int           `yaml:"early_bird_bonus"`
	NightOwlBonus    int           `yaml:"night_owl_bonus"`
	StreakMode       StreakMode    `yaml:"streak_mode"`
	// IgnoreMomentum awards the raw calculated points instead of scaling them
	// by the momentum multiplier.
	IgnoreMomentum bool `yaml:"ignore_momentum"`

	// explicit holds the yaml keys present in the decoded document.
	explicit map[string]bool
}

func (r *Rules) UnmarshalYAML(node *yaml.Node) error {
	type plain Rules
	var p plain
	if err := node.Decode(&p); err != nil {
		return err
	}
	*r = Rules(p)
	if node.Kind == yaml.MappingNode {
		r.explicit = make(map[string]bool, len(node.Content)/2)
		for i := 0; i+1 < len(node.Content); i += 2 {
			r.explicit[node.Content[i].Value] = true
		}
	}
	return nil
}

func DefaultRules() Rules {
	r := Rules{}
	r.ApplyDefaults()
	return r
}

func (r *Rules) ApplyDefaults() {
	if r.BasePoints <= 0 {
		r.BasePoints = DefaultBasePoints
	}
	if r.QuickWindow <= 0 {
		r.QuickWindow = DefaultQuickWindow
	}
	bonuses := []struct {
		key string
		v   *int
		def int
	}{
		{"early_bonus_per_day", &r.EarlyBonusPerDay, DefaultEarlyBonusPerDay},
		{"early_bonus_cap", &r.EarlyBonusCap, DefaultEarlyBonusCap},
		{"quick_bonus", &r.QuickBonus, DefaultQuickBonus},
		{"weekend_bonus", &r.WeekendBonus, DefaultWeekendBonus},
		{"early_bird_bonus", &r.EarlyBirdBonus, DefaultEarlyBirdBonus},
		{"night_owl_bonus", &r.NightOwlBonus, DefaultNightOwlBonus},
	}
	for _, b := range bonuses {
		if *b.v < 0 || (*b.v == 0 && !r.explicit[b.key]) {
			*b.v = b.def
		}
	}
	if !r.StreakMode.IsValid() {
		r.StreakMode = StreakDaily
	}
}
