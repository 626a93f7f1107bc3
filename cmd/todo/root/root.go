package root

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/4ast4orward/To-do-List/internal/ui"
)

const Version = "0.2.0"

type globalFlags struct {
	dbPath     string
	configPath string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "todo",
		Short:         "Gamified to-do list with points, streaks and achievements",
		Long:          "todo is a local-first CLI/TUI to-do list. Completing tasks earns points scaled by weekly momentum, keeps a streak alive and unlocks achievements.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	cmd.PersistentFlags().StringVar(&g.dbPath, "db", "", "SQLite database path (default ~/.todo.db, env TODO_DB_PATH)")
	cmd.PersistentFlags().StringVar(&g.configPath, "config", "", "YAML config file (env TODO_CONFIG)")
	cmd.PersistentFlags().BoolVarP(&g.verbose, "verbose", "v", false, "Debug logging to stderr")

	cmd.AddCommand(
		newAddCmd(g),
		newDoneCmd(g),
		newSkipCmd(g),
		newReopenCmd(g),
		newListCmd(g),
		newStatusCmd(g),
		newAchievementsCmd(g),
		newMomentumCmd(g),
		newChallengesCmd(g),
		newHistoryCmd(g),
		newRescheduleCmd(g),
		newEditCmd(g),
		newRmCmd(g),
		newClearCmd(g),
		newResetCmd(g),
		newArchiveCmd(g),
		newBoardCmd(g),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Bad.Render(ui.IconError+" "+err.Error()))
		os.Exit(1)
	}
}
