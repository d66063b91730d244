package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"task-desk.com/task-desk/internal/board"
	"task-desk.com/task-desk/internal/http/validators"
	"task-desk.com/task-desk/internal/view"
	"task-desk.com/task-desk/pkg/constants"
	model "task-desk.com/task-desk/pkg/models"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Manage your tasks",
}

var tasksListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tasks with optional filter, search and sort",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCLI()
		if err != nil {
			return err
		}
		sess, err := c.session()
		if err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		search, _ := cmd.Flags().GetString("search")
		sortKey, _ := cmd.Flags().GetString("sort")
		dir, _ := cmd.Flags().GetString("dir")
		params, err := view.ParseParams(status, search, sortKey, dir)
		if err != nil {
			return err
		}

		b := board.New(c.api, board.WithParams(params), board.WithLogger(c.log))
		defer b.Close()

		if err := b.Load(sess.Context(cmd.Context())); err != nil {
			return c.signedOut(sess, err)
		}

		printTasks(cmd.OutOrStdout(), b.View())
		return nil
	},
}

var tasksShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCLI()
		if err != nil {
			return err
		}
		sess, err := c.session()
		if err != nil {
			return err
		}

		task, err := c.api.GetTask(sess.Context(cmd.Context()), args[0])
		if err != nil {
			return c.signedOut(sess, err)
		}

		printTask(cmd.OutOrStdout(), task)
		return nil
	},
}

var tasksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a task",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCLI()
		if err != nil {
			return err
		}

		in, err := taskInput(cmd, model.TaskInput{Status: constants.StatusPending})
		if err != nil {
			return err
		}

		sess, err := c.session()
		if err != nil {
			return err
		}

		b := board.New(c.api, board.WithLogger(c.log))
		defer b.Close()

		task, err := b.Create(sess.Context(cmd.Context()), in)
		if err != nil {
			return c.signedOut(sess, err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created task %s\n", task.ID)
		return nil
	},
}

var tasksUpdateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Edit a task; flags left out keep their current value",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCLI()
		if err != nil {
			return err
		}
		sess, err := c.session()
		if err != nil {
			return err
		}
		ctx := sess.Context(cmd.Context())

		current, err := c.api.GetTask(ctx, args[0])
		if err != nil {
			return c.signedOut(sess, err)
		}

		in, err := taskInput(cmd, current.Input())
		if err != nil {
			return err
		}

		b := board.New(c.api, board.WithLogger(c.log))
		defer b.Close()

		task, err := b.Update(ctx, args[0], in)
		if err != nil {
			return c.signedOut(sess, err)
		}

		printTask(cmd.OutOrStdout(), task)
		return nil
	},
}

var tasksDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a task",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCLI()
		if err != nil {
			return err
		}
		sess, err := c.session()
		if err != nil {
			return err
		}

		b := board.New(c.api, board.WithLogger(c.log))
		defer b.Close()

		res, err := b.Delete(sess.Context(cmd.Context()), args[0])
		if err != nil {
			return c.signedOut(sess, err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), res.Message)
		return nil
	},
}

// taskInput applies the --title, --description and --status flags that were
// set on top of base.
func taskInput(cmd *cobra.Command, base model.TaskInput) (model.TaskInput, error) {
	in := base
	flags := cmd.Flags()

	if flags.Changed("title") {
		in.Title, _ = flags.GetString("title")
	}
	if flags.Changed("description") {
		in.Description, _ = flags.GetString("description")
	}
	if flags.Changed("status") {
		v, _ := flags.GetString("status")
		status, ok := constants.ParseStatus(v)
		if !ok {
			return in, fmt.Errorf("unknown status %q", v)
		}
		in.Status = status
	}

	return in, validators.ValidateTaskRequest(&in)
}

func printTasks(out io.Writer, res view.Result) {
	if len(res.Tasks) == 0 {
		fmt.Fprintln(out, res.EmptyMessage)
	} else {
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tCREATED")
		for _, t := range res.Tasks {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", t.ID, t.Title, t.Status, formatTime(t.CreatedAt))
		}
		_ = w.Flush()
	}

	s := res.Stats
	fmt.Fprintf(out, "\nShowing %d of %d tasks (pending %d, in progress %d, completed %d)\n",
		res.Showing, s.Total, s.Pending, s.InProgress, s.Completed)
}

func printTask(out io.Writer, t *model.Task) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "ID\t%s\n", t.ID)
	fmt.Fprintf(w, "Title\t%s\n", t.Title)
	fmt.Fprintf(w, "Status\t%s\n", t.Status)
	if t.Description != "" {
		fmt.Fprintf(w, "Description\t%s\n", t.Description)
	}
	fmt.Fprintf(w, "Created\t%s\n", formatTime(t.CreatedAt))
	if t.Edited() {
		fmt.Fprintf(w, "Updated\t%s\n", formatTime(t.UpdatedAt))
	}
	_ = w.Flush()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}

func init() {
	tasksListCmd.Flags().String("status", view.FilterAll, "filter by status: all, pending, in-progress, completed")
	tasksListCmd.Flags().String("search", "", "case-insensitive match on title or description")
	tasksListCmd.Flags().String("sort", string(view.SortByCreatedAt), "sort key: title, status, createdAt, updatedAt")
	tasksListCmd.Flags().String("dir", string(view.Descending), "sort direction: asc or desc")

	for _, c := range []*cobra.Command{tasksAddCmd, tasksUpdateCmd} {
		c.Flags().String("title", "", "task title")
		c.Flags().String("description", "", "task description")
		c.Flags().String("status", "", "Pending, In Progress or Completed")
	}
	_ = tasksAddCmd.MarkFlagRequired("title")

	tasksCmd.AddCommand(tasksListCmd, tasksShowCmd, tasksAddCmd, tasksUpdateCmd, tasksDeleteCmd)
	rootCmd.AddCommand(tasksCmd)
}
