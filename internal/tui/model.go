package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/model"
	"github.com/4ast4orward/To-do-List/internal/ui"
)

// service is the part of engine.Service the board drives.
type service interface {
	Stats(ctx context.Context) (model.UserStats, error)
	Todos(ctx context.Context, f engine.TodoFilter) ([]model.Todo, error)
	Momentum(ctx context.Context) (model.MomentumStats, error)
	Complete(ctx context.Context, ref string) (*engine.TransitionResult, error)
	Skip(ctx context.Context, ref string) (*engine.TransitionResult, error)
	Now() time.Time
}

// filters cycles with tab; "" shows every category.
var filters = func() []string {
	out := []string{""}
	for _, c := range model.DefaultCategories {
		out = append(out, c.ID)
	}
	return out
}()

type boardModel struct {
	ctx context.Context
	svc service

	width  int
	height int

	stats    model.UserStats
	momentum model.MomentumStats
	todos    []model.Todo
	now      time.Time
	loaded   bool

	filter   int
	selected int

	lastLog string
	loading bool
	err     error
}

type loadedMsg struct {
	stats    model.UserStats
	momentum model.MomentumStats
	todos    []model.Todo
	now      time.Time
	err      error
}

type transitionMsg struct {
	res *engine.TransitionResult
	err error
}

func newBoardModel(ctx context.Context, svc service) boardModel {
	return boardModel{
		ctx:     ctx,
		svc:     svc,
		loading: true,
		lastLog: "Loaded.",
	}
}

func (m boardModel) Init() tea.Cmd {
	return m.loadCmd()
}

func (m boardModel) loadCmd() tea.Cmd {
	filter := engine.TodoFilter{CategoryID: filters[m.filter]}
	return func() tea.Msg {
		stats, err := m.svc.Stats(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		mom, err := m.svc.Momentum(m.ctx)
		if err != nil {
			return loadedMsg{err: err}
		}
		todos, err := m.svc.Todos(m.ctx, filter)
		if err != nil {
			return loadedMsg{err: err}
		}
		return loadedMsg{stats: stats, momentum: mom, todos: todos, now: m.svc.Now()}
	}
}

func (m boardModel) transitionCmd(id string, to model.Status) tea.Cmd {
	return func() tea.Msg {
		var (
			res *engine.TransitionResult
			err error
		)
		if to == model.StatusSkipped {
			res, err = m.svc.Skip(m.ctx, id)
		} else {
			res, err = m.svc.Complete(m.ctx, id)
		}
		return transitionMsg{res: res, err: err}
	}
}

func (m boardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case loadedMsg:
		m.loading = false
		m.err = msg.err
		if msg.err != nil {
			m.lastLog = "Load failed: " + msg.err.Error()
			return m, nil
		}
		m.loaded = true
		m.stats = msg.stats
		m.momentum = msg.momentum
		m.todos = msg.todos
		m.now = msg.now
		m.clampSelection()
		return m, nil
	case transitionMsg:
		if msg.err != nil {
			m.lastLog = "Failed: " + msg.err.Error()
			return m, nil
		}
		m.lastLog = describeResult(msg.res)
		return m, m.loadCmd()
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "r":
			m.loading = true
			m.lastLog = fmt.Sprintf("Refreshed at %s.", time.Now().Format("15:04:05"))
			return m, m.loadCmd()
		case "tab":
			m.filter = (m.filter + 1) % len(filters)
			m.selected = 0
			m.loading = true
			return m, m.loadCmd()
		case "up", "k":
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case "down", "j":
			if m.selected < len(m.todos)-1 {
				m.selected++
			}
			return m, nil
		case "c", " ":
			return m.act(model.StatusCompleted)
		case "s":
			return m.act(model.StatusSkipped)
		}
	}
	return m, nil
}

func (m boardModel) act(to model.Status) (tea.Model, tea.Cmd) {
	if m.selected < 0 || m.selected >= len(m.todos) {
		return m, nil
	}
	t := m.todos[m.selected]
	if t.Status != model.StatusPending {
		m.lastLog = fmt.Sprintf("Already %s.", t.Status)
		return m, nil
	}
	verb := "Completing"
	if to == model.StatusSkipped {
		verb = "Skipping"
	}
	m.lastLog = fmt.Sprintf("%s %s…", verb, engine.ShortID(t.ID))
	return m, m.transitionCmd(t.ID, to)
}

func (m *boardModel) clampSelection() {
	if m.selected >= len(m.todos) {
		m.selected = len(m.todos) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func describeResult(res *engine.TransitionResult) string {
	if res == nil {
		return ""
	}
	var b strings.Builder
	if res.Todo.Status == model.StatusSkipped {
		fmt.Fprintf(&b, "Skipped %q. Streak reset.", res.Todo.Title)
	} else {
		fmt.Fprintf(&b, "Completed %q: +%d pts", res.Todo.Title, res.PointsAwarded)
		if res.Momentum.Multiplier > 1 {
			fmt.Fprintf(&b, " (%s)", ui.Multiplier(res.Momentum.Multiplier))
		}
		if res.LevelUp {
			fmt.Fprintf(&b, " LEVEL UP %d → %d", res.LevelBefore, res.LevelAfter)
		}
	}
	for _, a := range res.Unlocked {
		fmt.Fprintf(&b, " %s %s", a.Icon, a.Title)
	}
	return b.String()
}

func (m boardModel) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit.\n"
	}

	header := m.renderHeader()
	sidebar := m.renderSidebar()
	main := m.renderMain()
	footer := m.renderFooter()

	leftW := 26
	if m.width > 0 {
		maxLeft := m.width / 2
		if maxLeft < leftW {
			leftW = maxLeft
		}
		if leftW < 18 {
			leftW = 18
		}
	}

	linesLeft := strings.Split(sidebar, "\n")
	linesRight := strings.Split(main, "\n")
	max := len(linesLeft)
	if len(linesRight) > max {
		max = len(linesRight)
	}

	var body strings.Builder
	for i := 0; i < max; i++ {
		l := ""
		r := ""
		if i < len(linesLeft) {
			l = linesLeft[i]
		}
		if i < len(linesRight) {
			r = linesRight[i]
		}
		body.WriteString(padRight(l, leftW))
		body.WriteString("  ")
		body.WriteString(r)
		body.WriteString("\n")
	}

	return header + "\n" + body.String() + footer
}

func (m boardModel) renderHeader() string {
	if !m.loaded {
		return "To-do | loading…"
	}
	lvl := engine.LevelForPoints(m.stats.Points)
	cur := engine.PointsForLevel(lvl)
	next := engine.PointsForLevel(lvl + 1)
	bar := progressBar(m.stats.Points-cur, next-cur, 30)
	return fmt.Sprintf("To-do | Level %d | %d pts %s", lvl, m.stats.Points, bar)
}

func (m boardModel) renderSidebar() string {
	if !m.loaded {
		return "Stats\n\nLoading…"
	}
	s := m.stats
	lines := []string{"Stats"}
	lines = append(lines, fmt.Sprintf("- streak %d (best %d)", s.Streak, s.LongestStreak))
	lines = append(lines, fmt.Sprintf("- done %d / skipped %d", s.TotalCompleted, s.TotalSkipped))
	lines = append(lines, fmt.Sprintf("- badges %d/%d", engine.CountEarned(s), len(engine.Catalog())))
	lines = append(lines, "")
	lines = append(lines, "Momentum")
	lines = append(lines, fmt.Sprintf("- level %d %s", m.momentum.Level, ui.Multiplier(m.momentum.Multiplier)))
	lines = append(lines, fmt.Sprintf("- this week %d", m.momentum.WeeklyTasks))
	if next := engine.MomentumThreshold(m.momentum.Level + 1); next > 0 {
		lines = append(lines, "- "+progressBar(m.momentum.WeeklyTasks, next, 14))
	}
	lines = append(lines, "")
	lines = append(lines, "Keys")
	lines = append(lines, "- ↑/↓ or j/k: move")
	lines = append(lines, "- c/space: complete")
	lines = append(lines, "- s: skip")
	lines = append(lines, "- tab: category")
	lines = append(lines, "- r: refresh")
	lines = append(lines, "- q: quit")
	return strings.Join(lines, "\n")
}

func (m boardModel) renderMain() string {
	if m.loading && !m.loaded {
		return "Loading…"
	}
	filter := filters[m.filter]
	if filter == "" {
		filter = "all"
	}
	out := []string{fmt.Sprintf("Todos [%s]", filter)}
	if len(m.todos) == 0 {
		out = append(out, "(empty)")
		return strings.Join(out, "\n")
	}
	for i, t := range m.todos {
		cursor := "  "
		if i == m.selected {
			cursor = "> "
		}
		due := ""
		if t.HasDueDate() {
			due = " due " + t.DueDate.Format("Jan 2 15:04")
			if text := ui.DueText(engine.DueStatusOf(t, m.now)); text != "" {
				due += " " + text
			}
		}
		out = append(out, fmt.Sprintf("%s%s %s [%s]%s", cursor, statusMark(t.Status), t.Title, t.CategoryID, due))
	}
	return strings.Join(out, "\n")
}

func (m boardModel) renderFooter() string {
	return "\n" + m.lastLog
}

func statusMark(s model.Status) string {
	switch s {
	case model.StatusCompleted:
		return "[x]"
	case model.StatusSkipped:
		return "[-]"
	default:
		return "[ ]"
	}
}

func progressBar(value int, total int, width int) string {
	if total <= 0 {
		total = 1
	}
	if width <= 3 {
		width = 3
	}
	if value < 0 {
		value = 0
	}
	if value > total {
		value = total
	}
	ratio := float64(value) / float64(total)
	filled := int(ratio * float64(width))
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func padRight(s string, width int) string {
	if width <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) >= width {
		return string(r[:width])
	}
	return s + strings.Repeat(" ", width-len(r))
}
