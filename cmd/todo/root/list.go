package root

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/model"
	"github.com/4ast4orward/To-do-List/internal/ui"
)

func newListCmd(g *globalFlags) *cobra.Command {
	var category string
	var status string
	var archived bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List todos (pending first, then by due date)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			var todos []model.Todo
			if archived {
				todos, err = svc.Archived(ctx)
				engine.SortTodos(todos)
			} else {
				f := engine.TodoFilter{CategoryID: category}
				if status != "" {
					f.Status = model.Status(status)
					if !f.Status.IsValid() {
						return fmt.Errorf("invalid status %q (pending|completed|skipped)", status)
					}
				}
				todos, err = svc.Todos(ctx, f)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(todos) == 0 {
				fmt.Fprintln(out, ui.Muted.Render("No todos."))
				return nil
			}
			now := svc.Now()
			for _, t := range todos {
				due := ""
				if t.HasDueDate() {
					st := engine.DueStatusOf(t, now)
					style := ui.DueStyle(st)
					due = " " + style.Render(ui.IconClock+" "+t.DueDate.Format("Mon Jan 2 15:04"))
					if text := ui.DueText(st); text != "" {
						due += " " + style.Render(text)
					}
				}
				fmt.Fprintf(out, "%s %s %s %s%s\n",
					ui.StatusIcon(t.Status),
					ui.Key.Render(engine.ShortID(t.ID)),
					t.Title,
					ui.CategoryLabel(t.CategoryID),
					due,
				)
				if t.Description != "" {
					fmt.Fprintf(out, "   %s\n", ui.Muted.Render(t.Description))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "Only this category")
	cmd.Flags().StringVarP(&status, "status", "s", "", "Only this status (pending|completed|skipped)")
	cmd.Flags().BoolVar(&archived, "archived", false, "List archived todos instead")

	return cmd
}
