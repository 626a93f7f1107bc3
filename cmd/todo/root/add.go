package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/ui"
)

func newAddCmd(g *globalFlags) *cobra.Command {
	var due string
	var category string
	var desc string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a todo",
		Long: `Add a pending todo.

--due accepts today, tomorrow, +3d, +2h, +1w, 2026-10-21, "2026-10-21 18:00" or RFC3339.
A bare date means the end of that day.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 || strings.TrimSpace(strings.Join(args, " ")) == "" {
				return errors.New("title is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			dueAt, err := engine.ParseDue(due, svc.Now())
			if err != nil {
				return err
			}
			t, err := svc.AddTodo(ctx, engine.AddTodoInput{
				Title:       strings.Join(args, " "),
				Description: desc,
				CategoryID:  category,
				DueDate:     dueAt,
			})
			if err != nil {
				return err
			}

			line := fmt.Sprintf("%s %s %s %s", ui.Good.Render(ui.IconPlus+" Added"), ui.Key.Render(engine.ShortID(t.ID)), t.Title, ui.CategoryLabel(t.CategoryID))
			fmt.Fprintln(cmd.OutOrStdout(), line)
			if t.HasDueDate() {
				fmt.Fprintln(cmd.OutOrStdout(), ui.LabelValue("Due", t.DueDate.Format("Mon Jan 2 15:04")))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&due, "due", "", "Due date")
	cmd.Flags().StringVarP(&category, "category", "c", "other", "Category (work|personal|shopping|health|other or custom)")
	cmd.Flags().StringVarP(&desc, "desc", "d", "", "Description")

	return cmd
}
