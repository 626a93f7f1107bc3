package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/ui"
)

func newReopenCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "reopen <id>",
		Aliases: []string{"restore"},
		Short:   "Put a completed or skipped todo back to pending",
		Long: `Put a todo back to pending by undoing its last transition.

This will:
- Deduct the points that were awarded
- Decrement the completed or skipped counter
- Reset the todo status to pending

Streaks and unlocked achievements are kept.`,
		Args: requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Reopen(ctx, args[0])
			if err != nil {
				return err
			}

			name := fmt.Sprintf("%s %s", ui.Key.Render(engine.ShortID(res.Todo.ID)), res.Todo.Title)
			line := fmt.Sprintf("%s %s %s", ui.Warn.Render("↩ Reopened"), name, ui.Muted.Render(fmt.Sprintf("(was %s, -%d pts)", res.From, res.PointsRemoved)))
			fmt.Fprintln(cmd.OutOrStdout(), line)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
			if res.LevelDown {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Level decreased"))
			}
			return nil
		},
	}

	return cmd
}
