package root

import (
	"bytes"
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4ast4orward/To-do-List/internal/config"
	"github.com/4ast4orward/To-do-List/internal/model"
	"github.com/4ast4orward/To-do-List/internal/storage"
)

func run(t *testing.T, dbPath string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--db", dbPath}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func loadTodos(t *testing.T, dbPath string) []model.Todo {
	t.Helper()
	ctx := context.Background()
	db, err := storage.Open(ctx, dbPath)
	require.NoError(t, err)
	defer db.Close()
	todos, err := storage.NewStore(db, slog.Default()).LoadTodos(ctx)
	require.NoError(t, err)
	return todos
}

func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv(config.EnvConfig, "")
	t.Setenv(config.EnvDBPath, "")
	t.Setenv(config.EnvLogLevel, "error")
	return filepath.Join(t.TempDir(), "todo.db")
}

func TestCLI_AddCompleteStatus(t *testing.T) {
	dbPath := setupEnv(t)

	out, err := run(t, dbPath, "add", "Write", "report", "-c", "work", "--due", "+2d")
	require.NoError(t, err)
	assert.Contains(t, out, "Added")
	assert.Contains(t, out, "Write report")

	todos := loadTodos(t, dbPath)
	require.Len(t, todos, 1)
	assert.Equal(t, "work", todos[0].CategoryID)
	assert.True(t, todos[0].HasDueDate())

	out, err = run(t, dbPath, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Due in 2 days")

	out, err = run(t, dbPath, "done", todos[0].ID[:6])
	require.NoError(t, err)
	assert.Contains(t, out, "Completed")
	assert.Contains(t, out, "First Step")

	out, err = run(t, dbPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Completed: 1")

	out, err = run(t, dbPath, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "Write report")

	_, err = run(t, dbPath, "done", todos[0].ID)
	require.Error(t, err)
}

func TestCLI_SkipAndReopen(t *testing.T) {
	dbPath := setupEnv(t)

	_, err := run(t, dbPath, "add", "Gym")
	require.NoError(t, err)
	id := loadTodos(t, dbPath)[0].ID

	out, err := run(t, dbPath, "skip", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Skipped")

	out, err = run(t, dbPath, "reopen", id)
	require.NoError(t, err)
	assert.Contains(t, out, "Reopened")
	assert.Equal(t, model.StatusPending, loadTodos(t, dbPath)[0].Status)
}

func TestCLI_Edit(t *testing.T) {
	dbPath := setupEnv(t)

	_, err := run(t, dbPath, "add", "Buy mlk")
	require.NoError(t, err)
	id := loadTodos(t, dbPath)[0].ID

	_, err = run(t, dbPath, "edit", id)
	require.Error(t, err)

	out, err := run(t, dbPath, "edit", id[:6], "--title", "Buy milk", "-c", "Shopping")
	require.NoError(t, err)
	assert.Contains(t, out, "Updated")

	todo := loadTodos(t, dbPath)[0]
	assert.Equal(t, "Buy milk", todo.Title)
	assert.Equal(t, "shopping", todo.CategoryID)

	_, err = run(t, dbPath, "edit", id, "--title", "  ")
	require.Error(t, err)
}

func TestCLI_Errors(t *testing.T) {
	dbPath := setupEnv(t)

	_, err := run(t, dbPath, "add")
	require.EqualError(t, err, "title is required")

	_, err = run(t, dbPath, "done", "nope")
	require.Error(t, err)

	_, err = run(t, dbPath, "add", "x", "--due", "someday")
	require.Error(t, err)

	_, err = run(t, dbPath, "reset")
	require.Error(t, err)
}

func TestCLI_ClearAndReset(t *testing.T) {
	dbPath := setupEnv(t)

	for _, title := range []string{"a", "b"} {
		_, err := run(t, dbPath, "add", title)
		require.NoError(t, err)
	}
	_, err := run(t, dbPath, "done", loadTodos(t, dbPath)[0].ID)
	require.NoError(t, err)

	out, err := run(t, dbPath, "clear", "--completed")
	require.NoError(t, err)
	assert.Contains(t, out, "Cleared 1")
	assert.Len(t, loadTodos(t, dbPath), 1)

	_, err = run(t, dbPath, "reset", "--yes")
	require.NoError(t, err)
	assert.Empty(t, loadTodos(t, dbPath))

	out, err = run(t, dbPath, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Points: 0")
}

func TestCLI_ReadOnlyCommands(t *testing.T) {
	dbPath := setupEnv(t)

	for _, args := range [][]string{
		{"list"},
		{"achievements"},
		{"momentum"},
		{"challenges"},
		{"archive"},
	} {
		_, err := run(t, dbPath, args...)
		require.NoError(t, err, args)
	}
}
