package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/calendar"
	"tableflip.dev/diary/pkg/runner/report"
)

func addCalendar(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	var months int

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal"},
		Short:   "Show which days of a month have entries.",
		Example: `
diary calendar
diary calendar --month 2024-01 --months 3
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			month, err := do.GetMonth(time.Now())
			if err != nil {
				return err
			}
			b, c, err := e.board()
			if err != nil {
				return output.HandleError(err)
			}
			cal := calendar.Calendar{
				Board:   b,
				Month:   month,
				Months:  months,
				JSON:    output.JSON,
				Printer: e.printer(false, c.FileURL),
			}
			return output.HandleError(cal.Do(context.Background()))
		},
	}

	options.AddMonthArgs(cmd, do)
	options.AddOutputArg(cmd, output)
	cmd.Flags().IntVar(&months, "months", 1, "Number of months to print.")

	topLevel.AddCommand(cmd)
}

func addReport(topLevel *cobra.Command) {
	do := &options.DateOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Summarize a month of entries.",
		Example: `
diary report
diary report --month 2024-05 --json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			month, err := do.GetMonth(time.Now())
			if err != nil {
				return err
			}
			c, err := e.authed()
			if err != nil {
				return output.HandleError(err)
			}
			r := report.Report{
				Service: newService(c),
				Month:   month,
				JSON:    output.JSON,
				Printer: e.printer(false, c.FileURL),
			}
			return output.HandleError(e.expired(r.Do(context.Background())))
		},
	}

	options.AddMonthArgs(cmd, do)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
