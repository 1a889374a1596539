package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/entry"
	"tableflip.dev/diary/pkg/runner/add"
	"tableflip.dev/diary/pkg/runner/edit"
	"tableflip.dev/diary/pkg/runner/publish"
	"tableflip.dev/diary/pkg/runner/remove"
)

func addAdd(topLevel *cobra.Command) {
	do := &options.DraftOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "add [content]",
		Short: "Write a new entry.",
		Example: `
diary add "Walked to the lake." --weather sunny
diary add --date yesterday --gratitude "good coffee" --image lake.jpg
`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			date, err := options.ParseDay(do.Date, time.Now())
			if err != nil {
				return err
			}
			content := joinArgs(args)
			b, c, err := e.board()
			if err != nil {
				return output.HandleError(err)
			}
			a := add.Add{
				Board: b,
				Fill: func(d *entry.Draft) {
					if content != "" {
						d.Content = content
					}
					do.Apply(d, date)
				},
				Image:   do.Image,
				Audio:   do.Audio,
				JSON:    output.JSON,
				Printer: e.printer(io.ShowID, c.FileURL),
			}
			return output.HandleError(a.Do(context.Background()))
		},
	}

	options.AddDraftArgs(cmd, do, fieldSettings(), false)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addEdit(topLevel *cobra.Command) {
	do := &options.DraftOptions{}
	io := &options.IDOptions{}

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an entry. Only the given flags are changed.",
		Example: `
diary edit 7f3c9a2e --weather rainy
diary edit 7f3c9a2e --image new.png
diary edit 7f3c9a2e --clear-audio
`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: idCompletions,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			date, err := options.ParseDay(do.Date, time.Now())
			if err != nil {
				return err
			}
			b, c, err := e.board()
			if err != nil {
				return output.HandleError(err)
			}
			ed := edit.Edit{
				Board: b,
				ID:    args[0],
				Fill: func(d *entry.Draft) {
					do.Apply(d, date)
				},
				Image:   do.Image,
				Audio:   do.Audio,
				JSON:    output.JSON,
				Printer: e.printer(io.ShowID, c.FileURL),
			}
			return output.HandleError(ed.Do(context.Background()))
		},
	}

	options.AddDraftArgs(cmd, do, fieldSettings(), true)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addPublish(topLevel *cobra.Command) {
	var public, private bool

	cmd := &cobra.Command{
		Use:   "publish <id>",
		Short: "Share an entry on the public feed, or hide it again.",
		Long: options.Wrap80("Without flags the visibility is flipped. " +
			"--public and --private set it and do nothing when it already matches."),
		Example: `
diary publish 7f3c9a2e
diary publish 7f3c9a2e --private
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
			p := publish.Publish{
				Board:   b,
				ID:      args[0],
				JSON:    output.JSON,
				Printer: e.printer(false, c.FileURL),
			}
			switch {
			case public:
				p.Want = &public
			case private:
				want := false
				p.Want = &want
			}
			return output.HandleError(p.Do(context.Background()))
		},
	}

	cmd.Flags().BoolVar(&public, "public", false, "Make the entry public.")
	cmd.Flags().BoolVar(&private, "private", false, "Make the entry private.")
	cmd.MarkFlagsMutuallyExclusive("public", "private")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addDelete(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an entry. Its attachments stay on the server.",
		Example: `
diary delete 7f3c9a2e
diary delete 7f3c9a2e --yes
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
			r := remove.Remove{
				Board:   b,
				ID:      args[0],
				Printer: e.printer(false, c.FileURL),
			}
			if !co.Yes {
				if !options.Interactive() {
					return output.HandleError(errNeedsYes)
				}
				r.Confirm = options.Confirm
			}
			return output.HandleError(r.Do(context.Background()))
		},
	}

	options.AddConfirmArgs(cmd, co)
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
