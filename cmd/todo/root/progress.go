package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/ui"
)

func newAchievementsCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements, earned and locked",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			board, err := svc.Achievements(ctx)
			if err != nil {
				return err
			}
			earned := 0
			for _, a := range board {
				if a.Earned {
					earned++
				}
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconTrophy, fmt.Sprintf("Achievements %d/%d", earned, len(board))))
			for _, a := range board {
				if a.Earned {
					when := ""
					if !a.UnlockedAt.IsZero() {
						when = " " + ui.Muted.Render(a.UnlockedAt.Format("2006-01-02"))
					}
					fmt.Fprintf(out, "%s %s %s%s\n", a.Icon, ui.Gold.Render(a.Title), a.Description, when)
					continue
				}
				fmt.Fprintf(out, "%s %s %s\n", ui.IconLock, ui.Muted.Render(a.Title), ui.Muted.Render(a.Description))
			}
			return nil
		},
	}

	return cmd
}

func newMomentumCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "momentum",
		Short: "Show this week's momentum and multiplier",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			m, err := svc.Momentum(ctx)
			if err != nil {
				return err
			}
			b := engine.BenefitsOf(m)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, ui.Heading(ui.IconBolt, fmt.Sprintf("Momentum level %d/%d", m.Level, engine.MaxMomentumLevel)))
			fmt.Fprintln(out, ui.LabelValue("Multiplier", ui.Multiplier(b.PointMultiplier)))
			fmt.Fprintln(out, ui.LabelValue("Streak bonus", fmt.Sprintf("+%.1f (%d days)", b.StreakBonus, m.StreakDays)))
			fmt.Fprintln(out, ui.LabelValue("This week", fmt.Sprintf("%d %s", m.WeeklyTasks, ui.ProgressBar(m.WeeklyTasks, engine.MomentumThreshold(engine.MaxMomentumLevel), 20))))
			fmt.Fprintln(out, ui.LabelValue("Last week", m.LastWeekTasks))

			growth := ui.Good.Render(fmt.Sprintf("↑ %.0f%%", m.GrowthRate))
			if b.Growth == engine.GrowthDecreasing {
				growth = ui.Bad.Render(fmt.Sprintf("↓ %.0f%%", m.GrowthRate))
			}
			fmt.Fprintln(out, ui.LabelValue("Growth", growth))
			if b.NextLevel > 0 {
				fmt.Fprintln(out, ui.Muted.Render(fmt.Sprintf("%d more this week for level %d", b.TasksToNextLevel, b.NextLevel)))
			} else {
				fmt.Fprintln(out, ui.Gold.Render("Top momentum level."))
			}
			return nil
		},
	}

	return cmd
}
