package cli

import (
	"github.com/spf13/cobra"

	"ragchat/client/internal/service"
)

func newAdminCmd(deps Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage users and documents (admin only)",
	}

	users := &cobra.Command{Use: "users", Short: "Manage user accounts"}
	users.AddCommand(newUsersListCmd(deps))
	users.AddCommand(newUsersCreateCmd(deps))
	users.AddCommand(newUsersToggleCmd(deps))
	users.AddCommand(newUsersDeleteCmd(deps))
	users.AddCommand(newUsersHistoryCmd(deps))

	docs := &cobra.Command{Use: "documents", Aliases: []string{"docs"}, Short: "Manage knowledge-base documents"}
	docs.AddCommand(newDocumentsListCmd(deps))
	docs.AddCommand(newDocumentsUploadCmd(deps))
	docs.AddCommand(newDocumentsDeleteCmd(deps))

	cmd.AddCommand(users, docs)
	return cmd
}

func printUsers(cmd *cobra.Command, admin *service.AdminService) {
	p := newPrinter(cmd)
	for _, u := range admin.Users() {
		p.User(u)
	}
}

func printDocuments(cmd *cobra.Command, admin *service.AdminService) {
	p := newPrinter(cmd)
	docs := admin.Documents()
	if len(docs) == 0 {
		p.Info("No documents uploaded.")
	}
	for _, d := range docs {
		p.Document(d)
	}
}

func newUsersListCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			if _, err := deps.Admin.LoadUsers(cmd.Context()); err != nil {
				return err
			}
			printUsers(cmd, deps.Admin)
			return nil
		},
	}
}

func newUsersCreateCmd(deps Deps) *cobra.Command {
	var opts struct {
		Email    string
		Password string
	}
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a regular user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			user, err := deps.Admin.CreateUser(cmd.Context(), opts.Email, opts.Password)
			if err != nil {
				return err
			}
			newPrinter(cmd).Info("User %s created successfully.", user.Email)
			printUsers(cmd, deps.Admin)
			return nil
		},
	}
	cmd.Flags().StringVarP(&opts.Email, "email", "e", "", "Email of the new user")
	cmd.Flags().StringVarP(&opts.Password, "password", "p", "", "Initial password")
	return cmd
}

func newUsersToggleCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle USER_ID",
		Short: "Activate or deactivate a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			if err := deps.Admin.ToggleUserStatus(cmd.Context(), args[0]); err != nil {
				return err
			}
			newPrinter(cmd).Info("User status updated successfully.")
			printUsers(cmd, deps.Admin)
			return nil
		},
	}
}

func newUsersDeleteCmd(deps Deps) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete USER_ID",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			defer withConfirmation(deps, yes)()

			deleted, err := deps.Admin.DeleteUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := newPrinter(cmd)
			cancelled(p, deleted)
			if deleted {
				p.Info("User deleted successfully.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}

func newUsersHistoryCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "history USER_ID",
		Short: "Show a user's threads and messages",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			history, err := deps.Admin.UserChatHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			p := newPrinter(cmd)
			if len(history) == 0 {
				p.Info("No chat history.")
				return nil
			}
			for _, h := range history {
				p.Title("%s (%d messages)", h.DisplayTitle(), len(h.Messages))
				for _, m := range h.Messages {
					p.Line("[%s] %s", m.Role, service.Preview(m.Content))
				}
			}
			return nil
		},
	}
}

func newDocumentsListCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List uploaded documents",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			if _, err := deps.Admin.LoadDocuments(cmd.Context()); err != nil {
				return err
			}
			printDocuments(cmd, deps.Admin)
			return nil
		},
	}
}

func newDocumentsUploadCmd(deps Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload a .pdf or .docx file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			doc, err := deps.Admin.UploadDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			newPrinter(cmd).Info("Document %s uploaded successfully.", doc.Filename)
			printDocuments(cmd, deps.Admin)
			return nil
		},
	}
}

func newDocumentsDeleteCmd(deps Deps) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "delete DOC_ID",
		Short: "Delete a document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireLogin(deps); err != nil {
				return err
			}
			defer withConfirmation(deps, yes)()

			deleted, err := deps.Admin.DeleteDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			p := newPrinter(cmd)
			cancelled(p, deleted)
			if deleted {
				p.Info("Document deleted successfully.")
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Do not ask for confirmation")
	return cmd
}
