package root

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/ui"
)

func newStatusCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show points, level, streak and this month's summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			s, err := svc.Stats(ctx)
			if err != nil {
				return err
			}
			nextReq := engine.PointsForLevel(s.Level + 1)
			toNext := nextReq - s.Points
			if toNext < 0 {
				toNext = 0
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconSparkle, "Status"))
			fmt.Fprintln(out, ui.LabelValue("Level", s.Level))
			fmt.Fprintln(out, ui.LabelValue("Points", fmt.Sprintf("%d (next level at %d, %d to go)", s.Points, nextReq, toNext)))
			fmt.Fprintln(out, ui.LabelValue("Streak", fmt.Sprintf("%s %d (best %d)", ui.IconFire, s.Streak, s.LongestStreak)))
			fmt.Fprintln(out, ui.LabelValue("Completed", s.TotalCompleted))
			fmt.Fprintln(out, ui.LabelValue("Skipped", s.TotalSkipped))
			fmt.Fprintln(out, ui.LabelValue("Achievements", fmt.Sprintf("%d/%d", engine.CountEarned(s), len(engine.Catalog()))))
			fmt.Fprintln(out, "")

			if len(s.TasksByCategory) > 0 {
				fmt.Fprintln(out, ui.H2.Render("📊 By category"))
				cats := make([]string, 0, len(s.TasksByCategory))
				for c := range s.TasksByCategory {
					cats = append(cats, c)
				}
				sort.Strings(cats)
				for _, c := range cats {
					fmt.Fprintf(out, "- %s %d\n", ui.CategoryLabel(c), s.TasksByCategory[c])
				}
				fmt.Fprintln(out, "")
			}

			sum, err := svc.MonthlySummary(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, ui.H2.Render("🗓️ "+sum.Month.Format("January 2006")))
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("completed:"), sum.Completed)
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("skipped:"), sum.Skipped)
			fmt.Fprintf(out, "- %s %d\n", ui.Key.Render("pending:"), sum.Pending)
			return nil
		},
	}

	return cmd
}
