package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/runner/ui"
)

func addUI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
diary ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			b, c, err := e.board()
			if err != nil {
				return err
			}
			i := ui.UI{Board: b, Settings: e.settings.Load(), FileURL: c.FileURL}
			return i.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
