package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/info"
	"tableflip.dev/diary/pkg/runner/key"
	"tableflip.dev/diary/pkg/runner/settings"
)

var errNeedsYes = errors.New("not a terminal, pass --yes to confirm")

func joinArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func addSettings(topLevel *cobra.Command) {
	s := &settings.Settings{}
	cmd := &cobra.Command{
		Use:   "settings [field=true|false ...]",
		Short: "Show or change which reflection fields are displayed.",
		Example: `
diary settings
diary settings gratitude=false learnings=true
diary settings --reset
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			s.Store = e.settings
			s.Set = args
			s.JSON = output.JSON
			s.Printer = e.printer(false, nil)
			return output.HandleError(s.Do(context.Background()))
		},
	}
	cmd.Flags().BoolVar(&s.Reset, "reset", false, "Restore the default fields first.")
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Print the weather glyphs and field icons",
		Example: `
diary key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{}
			err := k.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the configuration and the stored session.",
		Example: `
diary info
`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			e, err := loadEnv()
			if err != nil {
				return err
			}
			s := info.Info{
				Config:  e.cfg,
				Session: e.session,
			}
			err = s.Do(context.Background())
			return output.HandleError(err)
		},
	}

	topLevel.AddCommand(cmd)
}
