package main

import (
	"fmt"
	"os"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-faster/errors"
	"github.com/spf13/cobra"

	"github.com/worktrack/worktrack/modules/timesheets/domain/aggregates/dailysheet"
	"github.com/worktrack/worktrack/modules/timesheets/infrastructure/persistence"
	"github.com/worktrack/worktrack/modules/timesheets/services"
)

func newTimesheetsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "timesheets",
		Short: "Work with timesheets",
	}
	cmd.AddCommand(newTimesheetsExportCmd(c))
	return cmd
}

func parseDay(flag, value string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, usageError("--%s must be YYYY-MM-DD, got %q", flag, value)
	}
	return t, nil
}

func newTimesheetsExportCmd(c *cli) *cobra.Command {
	var (
		from, to, out string
		userID        int64
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export entries between two dates to an xlsx workbook",
		Args:  exactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			start, err := parseDay("from", from)
			if err != nil {
				return err
			}
			end, err := parseDay("to", to)
			if err != nil {
				return err
			}
			if err := services.CheckRange(start, end); err != nil {
				return withCode(exitUsage, err)
			}
			if out == "" {
				out = fmt.Sprintf("timesheet-%s-%s.xlsx", from, to)
			}

			api, ctx, err := c.client(cmd.Context())
			if err != nil {
				return err
			}
			items, _, err := persistence.NewDailySheetRepository(api).List(ctx, &dailysheet.FindParams{
				UserID: userID,
				From:   start,
				To:     end,
				Page:   1,
				Limit:  services.ExportLimit,
			})
			if err != nil {
				return err
			}
			slices.SortStableFunc(items, func(a, b dailysheet.DailySheet) int {
				return a.Date.Compare(b.Date)
			})
			data, err := services.WriteWorkbook(items, services.DefaultExportLabels)
			if err != nil {
				return errors.Wrap(err, "write workbook")
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return errors.Wrapf(err, "write %s", out)
			}
			fmt.Fprintf(c.out, "%s entries written to %s (%s)\n",
				humanize.Comma(int64(len(items))), out, humanize.Bytes(uint64(len(data))))
			return nil
		},
	}
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringVar(&out, "out", "", "output file (default timesheet-<from>-<to>.xlsx)")
	cmd.Flags().Int64Var(&userID, "user", 0, "user ID (default: the token's user)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
