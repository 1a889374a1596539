package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/diary/pkg/commands/options"
	"tableflip.dev/diary/pkg/runner/auth"
)

func prompter() auth.Prompter {
	if !options.Interactive() {
		return auth.Prompter{}
	}
	return auth.Prompter{Ask: options.Ask, Password: options.Password}
}

func addLogin(topLevel *cobra.Command) {
	l := &auth.Login{}
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and remember the session.",
		Example: `
diary login
diary login --email me@example.com
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			l.Client = e.client()
			l.Session = e.session
			l.Prompter = prompter()
			l.Printer = e.printer(false, nil)
			return output.HandleError(l.Do(context.Background()))
		},
	}
	cmd.Flags().StringVar(&l.Email, "email", "", "Account email.")
	cmd.Flags().StringVar(&l.Password, "password", "", "Account password. Prompted for when omitted.")

	topLevel.AddCommand(cmd)
}

func addRegister(topLevel *cobra.Command) {
	r := &auth.Register{}
	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in.",
		Example: `
diary register --email me@example.com --name Me
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			r.Client = e.client()
			r.Session = e.session
			r.Prompter = prompter()
			r.Printer = e.printer(false, nil)
			return output.HandleError(r.Do(context.Background()))
		},
	}
	cmd.Flags().StringVar(&r.Email, "email", "", "Account email.")
	cmd.Flags().StringVar(&r.DisplayName, "name", "", "Display name shown on public entries.")
	cmd.Flags().StringVar(&r.Password, "password", "", "Account password. Prompted for when omitted.")

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			l := auth.Logout{Session: e.session, Printer: e.printer(false, nil)}
			return output.HandleError(l.Do(context.Background()))
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoAmI(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in account.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := loadEnv()
			if err != nil {
				return err
			}
			c, err := e.authed()
			if err != nil {
				return output.HandleError(err)
			}
			w := auth.WhoAmI{
				Me:      c.Me,
				Session: e.session,
				JSON:    output.JSON,
				Printer: e.printer(false, nil),
			}
			return output.HandleError(w.Do(context.Background()))
		},
	}
	options.AddOutputArg(cmd, output)

	topLevel.AddCommand(cmd)
}
