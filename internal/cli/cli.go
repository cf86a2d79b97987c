// Package cli is the command-line front end of the chat client. Each command
// restores the persisted session, drives the service layer and prints the result.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	app_errors "ragchat/client/internal/errors"
	"ragchat/client/internal/interfaces"
	"ragchat/client/internal/markdown"
	"ragchat/client/internal/service"
)

// skipRestore marks commands that run without revalidating the stored session.
const skipRestore = "skip-restore"

// Deps is everything the commands need.
type Deps struct {
	Client   *service.Client
	Admin    *service.AdminService
	Prompter interfaces.Prompter
	Renderer *markdown.Renderer
	// RunTUI starts the full-screen chat on the active thread. The chat command
	// falls back to the line mode when it is nil.
	RunTUI func(ctx context.Context) error
}

// NewRootCmd builds the command tree.
func NewRootCmd(deps Deps) *cobra.Command {
	root := &cobra.Command{
		Use:           "chatctl",
		Short:         "Client for the document chat backend",
		Version:       "1.0",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Annotations[skipRestore] == "true" {
				return nil
			}
			if _, err := deps.Client.Restore(cmd.Context()); err != nil {
				return fmt.Errorf("could not restore session: %w", err)
			}
			return nil
		},
	}

	root.AddCommand(newLoginCmd(deps))
	root.AddCommand(newLogoutCmd(deps))
	root.AddCommand(newWhoamiCmd(deps))
	root.AddCommand(newThreadsCmd(deps))
	root.AddCommand(newChatCmd(deps))
	root.AddCommand(newAdminCmd(deps))
	return root
}

// Execute runs the command tree and prints the error unless the prompter already
// showed one to the user.
func Execute(ctx context.Context, root *cobra.Command, prompter interfaces.Prompter, errOut io.Writer) error {
	err := root.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if sp, ok := prompter.(*SurveyPrompter); ok && sp.Alerted() {
		return err
	}
	errorColor.Fprintf(errOut, "Error: %s\n", app_errors.Reason(err))
	return err
}

var errNotLoggedIn = fmt.Errorf("%w: not logged in, run `chatctl login` first", app_errors.ErrAuth)

func requireLogin(deps Deps) error {
	if !deps.Client.Session().Authenticated() {
		return errNotLoggedIn
	}
	return nil
}

// withConfirmation installs a prompter that answers yes when yes is set, and
// returns a function restoring the previous one.
func withConfirmation(deps Deps, yes bool) func() {
	if !yes {
		return func() {}
	}
	deps.Client.SetPrompter(assumeYes{Prompter: deps.Prompter})
	return func() { deps.Client.SetPrompter(deps.Prompter) }
}

// cancelled reports a declined confirmation.
func cancelled(p *printer, done bool) {
	if !done {
		p.Info("Cancelled.")
	}
}
