package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	goversion "go.hein.dev/go-version"
)

// Stamped at release with -ldflags "-X tableflip.dev/diary/pkg/commands.version=...".
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func addVersion(topLevel *cobra.Command) {
	var short bool
	format := goversion.YAML
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the diary build.",
		Example: `
diary version
diary version --short
diary version -o json
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if format != goversion.YAML && format != goversion.JSON {
				return fmt.Errorf("unknown output format %q, want yaml or json", format)
			}
			_, err := fmt.Fprint(cmd.OutOrStdout(), goversion.FuncWithOutput(short, version, commit, date, format))
			return err
		},
	}

	cmd.Flags().BoolVarP(&short, "short", "s", false, "Print just the version number.")
	cmd.Flags().StringVarP(&format, "output", "o", format, "Output format. One of 'yaml' or 'json'.")

	topLevel.AddCommand(cmd)
}
