package root

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/model"
	"github.com/4ast4orward/To-do-List/internal/ui"
)

func requireID(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return errors.New("id is required")
	}
	return nil
}

func newDoneCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"do"},
		Short:   "Complete a todo",
		Args:    requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Complete(ctx, args[0])
			if err != nil {
				return err
			}
			printTransition(cmd.OutOrStdout(), res)
			return nil
		},
	}

	return cmd
}

func newSkipCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "skip <id>",
		Short: "Skip a todo (resets the streak)",
		Args:  requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.Skip(ctx, args[0])
			if err != nil {
				return err
			}
			printTransition(cmd.OutOrStdout(), res)
			return nil
		},
	}

	return cmd
}

func printTransition(w io.Writer, res *engine.TransitionResult) {
	name := fmt.Sprintf("%s %s", ui.Key.Render(engine.ShortID(res.Todo.ID)), res.Todo.Title)
	if res.Todo.Status == model.StatusSkipped {
		fmt.Fprintf(w, "%s %s\n", ui.Warn.Render(ui.IconSkip+" Skipped"), name)
		fmt.Fprintln(w, ui.Muted.Render("Streak reset to 0."))
		return
	}

	fmt.Fprintf(w, "%s %s %s\n", ui.Good.Render(ui.IconDone+" Completed"), name, ui.Gold.Render(fmt.Sprintf("+%d pts", res.PointsAwarded)))
	if res.PointsAwarded != res.BasePoints {
		fmt.Fprintln(w, ui.Muted.Render(fmt.Sprintf("%d base %s momentum", res.BasePoints, ui.Multiplier(res.Momentum.Multiplier))))
	}
	fmt.Fprintln(w, ui.LabelValue("Streak", fmt.Sprintf("%s %d", ui.IconFire, res.Stats.Streak)))
	fmt.Fprintln(w, ui.LabelValue("Level", fmt.Sprintf("%d → %d", res.LevelBefore, res.LevelAfter)))
	if res.LevelUp {
		fmt.Fprintln(w, ui.BadgeLevelUp)
	}
	for _, a := range res.Unlocked {
		fmt.Fprintf(w, "%s %s %s %s\n", ui.Gold.Render(ui.IconTrophy+" Achievement"), a.Icon, a.Title, ui.Muted.Render(a.Description))
	}
}
