package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

func newThreadsCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "threads",
		Aliases: []string{"t"},
		Short:   "Manage chat threads",
	}
	cmd.AddCommand(newThreadsListCmd(deps))
	cmd.AddCommand(newThreadsNewCmd(deps))
	cmd.AddCommand(newThreadsRenameCmd(deps))
	cmd.AddCommand(newThreadsDeleteCmd(deps))
	cmd.AddCommand(newThreadsShowCmd(deps))
	cmd.AddCommand(newThreadsSendCmd(deps))
	cmd.AddCommand(newThreadsCountCmd(deps))
	cmd.AddCommand(newThreadsDeleteMessageCmd(deps))
	return cmd
}

func newThreadsListCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List threads in server order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			threads, err := deps.Client.RefreshThreads(cmd.Context())
			if err != nil {
				return err
			}

			p := newPrinter(cmd)
			if len(threads) == 0 {
				p.Info("No threads yet. Create one with `chatctl threads new`.")
				return nil
			}
			active := deps.Client.ActiveThreadID()
			for _, t := range threads {
				p.Thread(t, t.ID == active)
			}
			return nil
		},
	}
}

func newThreadsNewCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "new",
		Short: "Create a thread",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			thread, err := deps.Client.CreateThread(cmd.Context())
			if err != nil {
				return err
			}
			newPrinter(cmd).Info("Created thread %s (%s)", thread.ID, thread.DisplayTitle())
			return nil
		},
	}
}

func newThreadsRenameCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "rename THREAD_ID TITLE...",
		Short: "Rename a thread",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			ctx := cmd.Context()
			if _, err := deps.Client.RefreshThreads(ctx); err != nil {
				return err
			}
			title := strings.Join(args[1:], " ")
			if err := deps.Client.RenameThread(ctx, args[0], title); err != nil {
				return err
			}
			newPrinter(cmd).Info("Renamed thread %s to %q", args[0], strings.TrimSpace(title))
			return nil
		},
	}
}

func newThreadsDeleteCmd(deps Deps) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete THREAD_ID",
		Short: "Delete a thread and its messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			defer withConfirmation(deps, yes)()

			deleted, err := deps.Client.DeleteThread(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := newPrinter(cmd)
			cancelled(p, deleted)
			if deleted {
				p.Info("Deleted thread %s", args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newThreadsShowCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "show THREAD_ID",
		Short: "Print a thread's messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			ctx := cmd.Context()
			if _, err := deps.Client.RefreshThreads(ctx); err != nil {
				return err
			}
			if err := deps.Client.SelectThread(ctx, args[0]); err != nil {
				return err
			}

			p := newPrinter(cmd)
			thread, _ := deps.Client.ActiveThread()
			p.Title(thread.HeaderTitle())
			messages := deps.Client.Messages()
			if len(messages) == 0 {
				p.Info("No messages yet.")
			}
			for _, m := range messages {
				p.Message(m, deps.Renderer)
			}
			return nil
		},
	}
}

func newThreadsSendCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "send THREAD_ID MESSAGE...",
		Short: "Send a message and print the answer",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := deps.Client.SelectThread(ctx, args[0]); err != nil {
				return err
			}
			before := len(deps.Client.Messages())
			if err := <-deps.Client.Send(ctx, args[0], strings.Join(args[1:], " ")); err != nil {
				return err
			}

			p := newPrinter(cmd)
			messages := deps.Client.Messages()
			for _, m := range messages[min(before, len(messages)):] {
				p.Message(m, deps.Renderer)
			}
			return nil
		},
	}
}

func newThreadsCountCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "count THREAD_ID",
		Short: "Print how many messages a thread holds",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			n, err := deps.Client.MessageCount(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newPrinter(cmd).Line("%d", n)
			return nil
		},
	}
}

func newThreadsDeleteMessageCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "delete-message THREAD_ID MESSAGE_ID",
		Short: "Delete a single message",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			ctx := cmd.Context()
			if err := deps.Client.SelectThread(ctx, args[0]); err != nil {
				return err
			}
			if err := deps.Client.DeleteMessage(ctx, args[1]); err != nil {
				return err
			}
			newPrinter(cmd).Info("Deleted message %s, %d left", args[1], len(deps.Client.Messages()))
			return nil
		},
	}
}
