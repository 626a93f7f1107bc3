package engine

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/4ast4orward/To-do-List/internal/model"
)

// Store is the persistence collaborator. Implementations degrade unreadable
// documents to defaults; errors returned here are storage failures.
type Store interface {
	LoadStats(ctx context.Context) (model.UserStats, error)
	SaveStats(ctx context.Context, stats model.UserStats) error
	LoadTodos(ctx context.Context) ([]model.Todo, error)
	SaveTodos(ctx context.Context, todos []model.Todo) error
	// CommitTransition saves stats and todos and appends rec, atomically.
	CommitTransition(ctx context.Context, stats model.UserStats, todos []model.Todo, rec model.TransitionRecord) error
	LastTransition(ctx context.Context, todoID string) (*model.TransitionRecord, error)
	ListTransitions(ctx context.Context, since time.Time, limit int) ([]model.TransitionRecord, error)

	LoadArchive(ctx context.Context) ([]model.Todo, error)
	LastReset(ctx context.Context) (time.Time, error)
	// ArchiveTodos replaces the task list with keep, appends archived to the
	// archive and records resetAt, atomically.
	ArchiveTodos(ctx context.Context, keep, archived []model.Todo, resetAt time.Time) error

	// Clear restores defaults: no todos, default stats, empty archive and log.
	Clear(ctx context.Context) error
}

type Options struct {
	Rules  Rules
	Clock  Clock
	Logger *slog.Logger
}

type Service struct {
	store Store
	rules Rules
	clock Clock
	log   *slog.Logger
}

func NewService(store Store, opts Options) *Service {
	opts.Rules.ApplyDefaults()
	if opts.Clock == nil {
		opts.Clock = RealClock{}
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	return &Service{
		store: store,
		rules: opts.Rules,
		clock: opts.Clock,
		log:   opts.Logger,
	}
}

func (s *Service) Rules() Rules   { return s.rules }
func (s *Service) Now() time.Time { return s.clock.Now() }

func normalizeTitle(title string) (string, error) {
	t := strings.TrimSpace(title)
	if t == "" {
		return "", ErrEmptyTitle
	}
	return t, nil
}

// findTodo resolves ref as an exact id or a unique id prefix.
func findTodo(todos []model.Todo, ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return -1, NotFoundError{Ref: ref}
	}
	match := -1
	matches := 0
	for i := range todos {
		if todos[i].ID == ref {
			return i, nil
		}
		if strings.HasPrefix(todos[i].ID, ref) {
			match = i
			matches++
		}
	}
	switch matches {
	case 0:
		return -1, NotFoundError{Ref: ref}
	case 1:
		return match, nil
	default:
		return -1, AmbiguousError{Ref: ref, Matches: matches}
	}
}

// Stats returns the stored stats as of now: level derived from points, a lapsed
// daily streak reported as 0 and momentum recomputed.
func (s *Service) Stats(ctx context.Context) (model.UserStats, error) {
	stats, err := s.currentStats(ctx)
	if err != nil {
		return model.UserStats{}, err
	}
	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return model.UserStats{}, err
	}
	stats.Momentum = CalculateMomentum(todos, stats, s.Now())
	return stats, nil
}

func (s *Service) currentStats(ctx context.Context) (model.UserStats, error) {
	stats, err := s.store.LoadStats(ctx)
	if err != nil {
		return model.UserStats{}, err
	}
	stats.Level = LevelForPoints(stats.Points)
	stats.Streak = EffectiveStreak(stats, s.Now(), s.rules.StreakMode)
	return stats, nil
}

type TodoFilter struct {
	CategoryID string
	Status     model.Status
}

// Todos lists todos pending first, then by due date (undated last), then by creation.
func (s *Service) Todos(ctx context.Context, f TodoFilter) ([]model.Todo, error) {
	all, err := s.store.LoadTodos(ctx)
	if err != nil {
		return nil, err
	}
	cat := strings.TrimSpace(strings.ToLower(f.CategoryID))
	var out []model.Todo
	for _, t := range all {
		if cat != "" && cat != "all" && t.CategoryID != cat {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		out = append(out, t)
	}
	SortTodos(out)
	return out, nil
}

func SortTodos(todos []model.Todo) {
	sort.SliceStable(todos, func(i, j int) bool {
		a, b := todos[i], todos[j]
		if (a.Status == model.StatusPending) != (b.Status == model.StatusPending) {
			return a.Status == model.StatusPending
		}
		if a.HasDueDate() != b.HasDueDate() {
			return a.HasDueDate()
		}
		if a.HasDueDate() && !a.DueDate.Equal(b.DueDate) {
			return a.DueDate.Before(b.DueDate)
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// Momentum recomputes the momentum snapshot for the current time.
func (s *Service) Momentum(ctx context.Context) (model.MomentumStats, error) {
	stats, err := s.currentStats(ctx)
	if err != nil {
		return model.MomentumStats{}, err
	}
	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return model.MomentumStats{}, err
	}
	return CalculateMomentum(todos, stats, s.Now()), nil
}

func (s *Service) Achievements(ctx context.Context) ([]AchievementStatus, error) {
	stats, err := s.store.LoadStats(ctx)
	if err != nil {
		return nil, err
	}
	return AchievementBoard(stats), nil
}

func (s *Service) Challenges(ctx context.Context) ([]ChallengeProgress, error) {
	stats, err := s.currentStats(ctx)
	if err != nil {
		return nil, err
	}
	todos, err := s.store.LoadTodos(ctx)
	if err != nil {
		return nil, err
	}
	return EvaluateChallenges(stats, todos, s.Now()), nil
}

func (s *Service) History(ctx context.Context, since time.Time, limit int) ([]model.TransitionRecord, error) {
	return s.store.ListTransitions(ctx, since, limit)
}

// Reset restores the default state.
func (s *Service) Reset(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return err
	}
	s.log.Info("state reset to defaults")
	return nil
}
