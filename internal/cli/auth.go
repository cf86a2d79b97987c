package cli

import (
	"github.com/spf13/cobra"

	"ragchat/client/internal/model"
)

func newLoginCmd(deps Deps) *cobra.Command {
	var opts struct {
		Email    string
		Password string
	}
	cmd := &cobra.Command{
		Use:         "login",
		Short:       "Log in and remember the session",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{skipRestore: "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.Email == "" || opts.Password == "" {
				asker, ok := deps.Prompter.(credentialAsker)
				if !ok {
					return errNoCredentials
				}
				if err := asker.AskCredentials(&opts.Email, &opts.Password); err != nil {
					return err
				}
			}

			sess, err := deps.Client.Login(cmd.Context(), opts.Email, opts.Password)
			if err != nil {
				return err
			}
			newPrinter(cmd).Info("Logged in as %s (%s)", sess.User.Email, sess.User.Role)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "Account password")
	return cmd
}

func newLogoutCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := deps.Client.Logout(cmd.Context()); err != nil {
				return err
			}
			newPrinter(cmd).Info("Logged out.")
			return nil
		},
	}
}

func newWhoamiCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := newPrinter(cmd)
			sess := deps.Client.Session()
			if !sess.Authenticated() {
				p.Info("Not logged in.")
				return nil
			}
			p.Line("%s (%s)", sess.User.Email, sess.User.Role)
			if sess.RoleSource == model.RoleSourceProbe {
				p.Info("Role was guessed, the identity endpoint did not answer.")
			}
			return nil
		},
	}
}
