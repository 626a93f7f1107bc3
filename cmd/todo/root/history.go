package root

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/ui"
)

func newHistoryCmd(g *globalFlags) *cobra.Command {
	var limit int
	var days int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent completions, skips and reopens",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			var since time.Time
			if days > 0 {
				since = engine.StartOfDay(svc.Now()).AddDate(0, 0, -days+1)
			}
			recs, err := svc.History(ctx, since, limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(recs) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No history."))
				return nil
			}
			for _, r := range recs {
				pts := ""
				switch {
				case r.Points > 0:
					pts = ui.Gold.Render(fmt.Sprintf("+%d", r.Points))
				case r.Points < 0:
					pts = ui.Bad.Render(fmt.Sprintf("%d", r.Points))
				}
				line := fmt.Sprintf("%s %s %s %s %s",
					ui.Muted.Render(r.At.Format("2006-01-02 15:04")),
					ui.StatusText(r.Status),
					ui.Key.Render(engine.ShortID(r.TodoID)),
					r.Title,
					pts,
				)
				if len(r.Unlocked) > 0 {
					line += " " + ui.Muted.Render(ui.IconTrophy+" "+strings.Join(r.Unlocked, ", "))
				}
				fmt.Fprintln(out, strings.TrimRight(line, " "))
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum entries (0 = all)")
	cmd.Flags().IntVar(&days, "days", 0, "Only the last N days")

	return cmd
}
