package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
)

var (
	output = &options.OutputOptions{}
	global = &globalOptions{}
)

type globalOptions struct {
	Verbose bool
	Server  string
}

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "diary",
		Short: options.Wrap80("A diary on the command line, kept on a diary server."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&global.Verbose, "verbose", "v", false, "Log requests to stderr.")
	cmd.PersistentFlags().StringVar(&global.Server, "server", "", "Diary server URL, overrides the configured one.")

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addLogin(topLevel)
	addRegister(topLevel)
	addLogout(topLevel)
	addWhoAmI(topLevel)

	addList(topLevel)
	addPublic(topLevel)
	addShow(topLevel)
	addCalendar(topLevel)
	addReport(topLevel)

	addAdd(topLevel)
	addEdit(topLevel)
	addPublish(topLevel)
	addDelete(topLevel)

	addUI(topLevel)
	addSettings(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addCompletions(topLevel)
	addVersion(topLevel)
}
