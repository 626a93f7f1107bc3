package root

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/4ast4orward/To-do-List/internal/engine"
	"github.com/4ast4orward/To-do-List/internal/model"
	"github.com/4ast4orward/To-do-List/internal/ui"
)

func newRescheduleCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reschedule <id> <due>",
		Short: "Change or remove (none) a todo's due date",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) < 2 {
				return errors.New("id and due date are required")
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

			due, err := engine.ParseDue(strings.Join(args[1:], " "), svc.Now())
			if err != nil {
				return err
			}
			t, err := svc.Reschedule(ctx, args[0], due)
			if err != nil {
				return err
			}
			when := "no due date"
			if t.HasDueDate() {
				when = t.DueDate.Format("Mon Jan 2 15:04")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s → %s\n", ui.Good.Render(ui.IconClock+" Rescheduled"), ui.Key.Render(engine.ShortID(t.ID)), t.Title, when)
			return nil
		},
	}

	return cmd
}

func newEditCmd(g *globalFlags) *cobra.Command {
	var title string
	var category string

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Rename a todo or move it to another category",
		Args:  requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			renaming := cmd.Flags().Changed("title")
			moving := cmd.Flags().Changed("category")
			if !renaming && !moving {
				return errors.New("nothing to change; pass --title or --category")
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			var t *model.Todo
			if renaming {
				if t, err = svc.Rename(ctx, args[0], title); err != nil {
					return err
				}
			}
			if moving {
				if t, err = svc.Recategorize(ctx, args[0], category); err != nil {
					return err
				}
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s %s\n", ui.Good.Render("✏️ Updated"), ui.Key.Render(engine.ShortID(t.ID)), t.Title, ui.CategoryLabel(t.CategoryID))
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&category, "category", "c", "", "New category id")

	return cmd
}

func newRmCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo (stats are kept)",
		Args:    requireID,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			t, err := svc.Delete(ctx, args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", ui.Warn.Render("🗑️ Deleted"), ui.Key.Render(engine.ShortID(t.ID)), t.Title)
			return nil
		},
	}

	return cmd
}

func newClearCmd(g *globalFlags) *cobra.Command {
	var completed bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove all todos, or only completed ones (stats are kept)",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			var n int
			if completed {
				n, err = svc.ClearCompleted(ctx)
			} else {
				n, err = svc.ClearAll(ctx)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d todo(s)\n", ui.Warn.Render("🧹 Cleared"), n)
			return nil
		},
	}

	cmd.Flags().BoolVar(&completed, "completed", false, "Only remove completed todos")

	return cmd
}

func newResetCmd(g *globalFlags) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all todos, stats, achievements and history",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return errors.New("reset deletes everything; pass --yes to confirm")
			}
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			if err := svc.Reset(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), ui.Warn.Render(ui.IconWarn+" Reset to defaults."))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Confirm the reset")

	return cmd
}

func newArchiveCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Archive todos finished in earlier months",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			svc, cleanup, err := openService(ctx, g)
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := svc.ArchiveStale(ctx, true)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d todo(s)\n", ui.Good.Render(ui.IconBox+" Archived"), res.Archived)
			return nil
		},
	}

	return cmd
}
