package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/list"
	"tableflip.dev/diary/pkg/runner/public"
	"tableflip.dev/diary/pkg/runner/show"
)

func addList(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	io := &options.IDOptions{}
	var cal, full bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List your entries, newest first.",
		Example: `
diary list
diary list --on today
diary list --month 2024-05 --calendar
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			day, err := do.Day(time.Now())
			if err != nil {
				return err
			}
			b, c, err := e.board()
			if err != nil {
				return output.HandleError(err)
			}
			l := list.List{
				Board:    b,
				On:       day,
				Calendar: cal,
				Full:     full,
				JSON:     output.JSON,
				Printer:  e.printer(io.ShowID, c.FileURL),
			}
			if do.Month != "" {
				m, err := do.GetMonth(time.Now())
				if err != nil {
					return err
				}
				l.Month = &m
			}
			return output.HandleError(l.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, do, "Only entries of this day.")
	options.AddMonthArgs(cmd, do)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVar(&cal, "calendar", false, "Print the month calendar above the list.")
	cmd.Flags().BoolVar(&full, "full", false, "Print every field of each entry.")

	topLevel.AddCommand(cmd)
}

func addPublic(topLevel *cobra.Command) {
	do := &options.DateOptions{}
	io := &options.IDOptions{}
	var full bool

	cmd := &cobra.Command{
		Use:   "public",
		Short: "List the entries everyone shared.",
		Example: `
diary public
diary public --on 2024-05-01 --full
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			day, err := do.Day(time.Now())
			if err != nil {
				return err
			}
			c := e.client()
			p := public.Public{
				Service: newService(c),
				On:      day,
				Full:    full,
				JSON:    output.JSON,
				Printer: e.printer(io.ShowID, c.FileURL),
			}
			return output.HandleError(p.Do(context.Background()))
		},
	}

	options.AddOnArgs(cmd, do, "Only entries of this day.")
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)
	cmd.Flags().BoolVar(&full, "full", false, "Print every field of each entry.")

	topLevel.AddCommand(cmd)
}

func addShow(topLevel *cobra.Command) {
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Print one of your entries in full.",
		Example: `
diary show 7f3c9a2e-1b4d-4c8e-9f0a-6d5e4c3b2a10
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			b, c, err := e.board()
			if err != nil {
				return output.HandleError(err)
			}
			s := show.Show{
				Board:   b,
				ID:      args[0],
				JSON:    output.JSON,
				Printer: e.printer(io.ShowID, c.FileURL),
			}
			return output.HandleError(s.Do(context.Background()))
		},
	}

	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
