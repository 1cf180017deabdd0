package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/worktrack/worktrack/modules/projects/domain/aggregates/project"
	"github.com/worktrack/worktrack/modules/projects/infrastructure/persistence"
	"github.com/worktrack/worktrack/pkg/constants"
)

type pageFlags struct {
	page  int
	limit int
}

func (p *pageFlags) bind(cmd *cobra.Command) {
	cmd.Flags().IntVar(&p.page, "page", 1, "page number")
	cmd.Flags().IntVar(&p.limit, "limit", 25, "items per page")
}

func (p *pageFlags) validate() error {
	if p.page < 1 {
		return usageError("--page must be at least 1, got %d", p.page)
	}
	if p.limit < 1 || p.limit > 100 {
		return usageError("--limit must be between 1 and 100, got %d", p.limit)
	}
	return nil
}

func newProjectsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Browse projects",
	}
	cmd.AddCommand(newProjectsListCmd(c))
	return cmd
}

func newProjectsListCmd(c *cli) *cobra.Command {
	var (
		pages  pageFlags
		search string
		status string
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := pages.validate(); err != nil {
				return err
			}
			params := &project.FindParams{Page: pages.page, Limit: pages.limit, Search: search}
			if status != "" {
				st, err := project.NewStatus(status)
				if err != nil {
					return withCode(exitUsage, err)
				}
				params.Status = st
			}
			api, ctx, err := c.client(cmd.Context())
			if err != nil {
				return err
			}
			items, total, err := persistence.NewProjectRepository(api).GetPaginated(ctx, params)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(items))
			for _, p := range items {
				end := ""
				if !p.EndDate.IsZero() {
					end = p.EndDate.Format(constants.DateFormat)
				}
				rows = append(rows, []string{
					strconv.FormatInt(p.ID, 10),
					orDash(p.Code),
					p.Name,
					string(p.Status),
					orDash(p.ManagerName),
					strconv.Itoa(p.MembersCount),
					orDash(end),
				})
			}
			renderTable(c.out, []string{"ID", "Code", "Name", "Status", "Manager", "Members", "Ends"}, rows)
			renderFooter(c.out, len(items), total, pages.page)
			return nil
		},
	}
	pages.bind(cmd)
	cmd.Flags().StringVar(&search, "search", "", "match name or code")
	cmd.Flags().StringVar(&status, "status", "", "planned, active, on_hold or completed")
	return cmd
}
