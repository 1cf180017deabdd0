package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/task"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence"
	"github.com/worktrack/worktrack/pkg/constants"
)

func newTasksCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Browse tasks",
	}
	cmd.AddCommand(newTasksListCmd(c), newTasksShowCmd(c))
	return cmd
}

func assignees(t task.Task) string {
	names := make([]string, 0, len(t.Assignees))
	for _, a := range t.Assignees {
		names = append(names, a.Name)
	}
	return strings.Join(names, ", ")
}

func dueDate(t task.Task) string {
	if t.DueDate.IsZero() {
		return ""
	}
	return t.DueDate.Format(constants.DateFormat)
}

func newTasksListCmd(c *cli) *cobra.Command {
	var (
		pages     pageFlags
		projectID int64
		search    string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the tasks of a project",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if projectID <= 0 {
				return usageError("--project is required")
			}
			if err := pages.validate(); err != nil {
				return err
			}
			api, ctx, err := c.client(cmd.Context())
			if err != nil {
				return err
			}
			items, total, err := persistence.NewTaskRepository(api).GetPaginated(ctx, &task.FindParams{
				Page:      pages.page,
				Limit:     pages.limit,
				Search:    search,
				ProjectID: projectID,
			})
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(items))
			for _, t := range items {
				rows = append(rows, []string{
					strconv.FormatInt(t.ID, 10),
					t.Title,
					string(t.Status),
					string(t.Priority),
					orDash(assignees(t)),
					orDash(dueDate(t)),
					strconv.Itoa(t.Progress) + "%",
				})
			}
			renderTable(c.out, []string{"ID", "Title", "Status", "Priority", "Assignees", "Due", "Progress"}, rows)
			renderFooter(c.out, len(items), total, pages.page)
			return nil
		},
	}
	pages.bind(cmd)
	cmd.Flags().Int64Var(&projectID, "project", 0, "project ID")
	cmd.Flags().StringVar(&search, "search", "", "match the title")
	return cmd
}

func newTasksShowCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one task with its description",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil || id <= 0 {
				return usageError("invalid task id %q", args[0])
			}
			api, ctx, err := c.client(cmd.Context())
			if err != nil {
				return err
			}
			t, err := persistence.NewTaskRepository(api).GetByID(ctx, id)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, titleStyle.Render(fmt.Sprintf("#%d %s", t.ID, t.Title)))
			fmt.Fprintln(c.out, mutedStyle.Render(strings.Join([]string{
				orDash(t.ProjectName),
				string(t.Status),
				string(t.Priority),
				"due " + orDash(dueDate(t)),
				"assigned to " + orDash(assignees(t)),
			}, " | ")))
			fmt.Fprintln(c.out)
			fmt.Fprintln(c.out, renderMarkdown(t.Description))
			return nil
		},
	}
}
