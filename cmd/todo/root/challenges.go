package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/ui"
)

func newChallengesCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "challenges",
		Short: "Show daily and weekly challenge progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			list, err := svc.Challenges(ctx)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, kind := range []engine.ChallengeKind{engine.ChallengeDaily, engine.ChallengeWeekly} {
				heading := "Daily quests"
				if kind == engine.ChallengeWeekly {
					heading = "Weekly challenges"
				}
				fmt.Fprintln(out, ui.Heading(ui.IconTarget, heading))
				for _, c := range list {
					if c.Kind != kind {
						continue
					}
					mark := ui.Muted.Render("•")
					if c.Completed {
						mark = ui.Good.Render(ui.IconDone)
					}
					fmt.Fprintf(out, "%s %s %s %d/%d %s\n",
						mark,
						ui.Key.Render(c.Title),
						ui.ProgressBar(c.Progress, c.Target, 10),
						c.Progress, c.Target,
						ui.Muted.Render(fmt.Sprintf("(%s, %d pts, ends %s)", c.Description, c.Reward, c.ExpiresAt.Format("Mon Jan 2"))),
					)
				}
				fmt.Fprintln(out, "")
			}
			return nil
		},
	}

	return cmd
}
