package cli_test

import (
	"bytes"
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ragchat/client/internal/backend"
	"ragchat/client/internal/backend/stubserver"
	"ragchat/client/internal/cli"
	"ragchat/client/internal/database"
	app_errors "ragchat/client/internal/errors"
	"ragchat/client/internal/interfaces/mocks"
	"ragchat/client/internal/markdown"
	"ragchat/client/internal/model"
	"ragchat/client/internal/repository"
	"ragchat/client/internal/service"
)

type cliEnv struct {
	stub     *stubserver.Backend
	deps     cli.Deps
	prompter *mocks.MockPrompter
}

func setupCLI(t *testing.T) cliEnv {
	t.Helper()
	stub := stubserver.New()
	stub.AddUser("a@b.com", "x", model.RoleUser)
	stub.AddUser("root@b.com", "secret", model.RoleAdmin)
	server := httptest.NewServer(stub.Handler())
	t.Cleanup(server.Close)

	db, err := database.InitDB(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	prompter := mocks.NewMockPrompter(t)
	client := service.NewClient(backend.NewClient(server.URL, 5*time.Second), repository.NewSQLiteRepository(db), prompter)
	renderer, err := markdown.NewRenderer(80, true)
	require.NoError(t, err)

	return cliEnv{
		stub:     stub,
		prompter: prompter,
		deps: cli.Deps{
			Client:   client,
			Admin:    service.NewAdminService(client),
			Prompter: prompter,
			Renderer: renderer,
		},
	}
}

// run executes one command line against a fresh command tree, the way separate
// invocations of the binary share only the state database.
func (e cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cli.NewRootCmd(e.deps)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func (e cliEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func TestCLI_Session(t *testing.T) {
	env := setupCLI(t)

	out := env.mustRun(t, "whoami")
	assert.Contains(t, out, "Not logged in.")

	_, err := env.run(t, "threads", "list")
	assert.ErrorIs(t, err, app_errors.ErrAuth)

	out = env.mustRun(t, "login", "--email", "a@b.com", "--password", "x")
	assert.Contains(t, out, "Logged in as a@b.com (user)")

	out = env.mustRun(t, "whoami")
	assert.Contains(t, out, "a@b.com (user)")

	out = env.mustRun(t, "logout")
	assert.Contains(t, out, "Logged out.")

	_, err = env.run(t, "threads", "list")
	assert.ErrorIs(t, err, app_errors.ErrAuth)
}

func TestCLI_LoginFailure(t *testing.T) {
	env := setupCLI(t)
	env.prompter.On("Alert", "Login failed: Incorrect email or password").Once()

	_, err := env.run(t, "login", "-e", "a@b.com", "-p", "nope")
	assert.ErrorIs(t, err, app_errors.ErrAuth)
}

func TestCLI_Threads(t *testing.T) {
	env := setupCLI(t)
	env.mustRun(t, "login", "-e", "a@b.com", "-p", "x")

	out := env.mustRun(t, "threads", "list")
	assert.Contains(t, out, "No threads yet.")

	env.stub.AddThread("a@b.com", "t1", "First")
	env.stub.AddMessage("t1", model.MessageRoleUser, "what is in the manual?")
	env.stub.AddMessage("t1", model.MessageRoleAssistant, "The manual covers **setup**.")

	out = env.mustRun(t, "threads", "new")
	assert.Contains(t, out, "Created thread")
	ids := env.stub.ThreadIDs()
	require.Len(t, ids, 2)
	newID := ids[0]

	out = env.mustRun(t, "threads", "list")
	assert.Contains(t, out, "* "+newID)
	assert.Contains(t, out, "  t1  First")

	out = env.mustRun(t, "threads", "rename", "t1", "Setup", "questions")
	assert.Contains(t, out, `Renamed thread t1 to "Setup questions"`)

	out = env.mustRun(t, "threads", "show", "t1")
	assert.Contains(t, out, "Setup questions")
	assert.Contains(t, out, "> what is in the manual?")
	assert.Contains(t, out, "setup")

	out = env.mustRun(t, "threads", "send", "t1", "and", "then?")
	assert.Contains(t, out, "> and then?")
	assert.Contains(t, out, "echo: and then?")

	out = env.mustRun(t, "threads", "count", "t1")
	assert.Equal(t, "4", strings.TrimSpace(out))

	first := env.stub.Messages("t1")[0]
	out = env.mustRun(t, "threads", "delete-message", "t1", first.ID)
	assert.Contains(t, out, "3 left")

	env.prompter.On("Confirm", "Are you sure you want to delete this thread?").Return(false).Once()
	out = env.mustRun(t, "threads", "delete", "t1")
	assert.Contains(t, out, "Cancelled.")
	assert.Len(t, env.stub.ThreadIDs(), 2)

	out = env.mustRun(t, "threads", "delete", "--yes", "t1")
	assert.Contains(t, out, "Deleted thread t1")
	assert.Equal(t, []string{newID}, env.stub.ThreadIDs())
}

func TestCLI_Admin(t *testing.T) {
	t.Run("Failure - Regular user is refused", func(t *testing.T) {
		env := setupCLI(t)
		env.mustRun(t, "login", "-e", "a@b.com", "-p", "x")
		env.prompter.On("Alert", "Access denied: Admin role required").Once()

		_, err := env.run(t, "admin", "users", "list")
		assert.ErrorIs(t, err, app_errors.ErrPermission)
		assert.Zero(t, env.stub.Calls("GET /admin/users"))
	})

	t.Run("Success - Users", func(t *testing.T) {
		env := setupCLI(t)
		env.mustRun(t, "login", "-e", "root@b.com", "-p", "secret")

		out := env.mustRun(t, "admin", "users", "create", "-e", "new@b.com", "-p", "pw")
		assert.Contains(t, out, "User new@b.com created successfully.")
		assert.Contains(t, out, "new@b.com")

		created, ok := env.stub.User("new@b.com")
		require.True(t, ok)
		assert.Equal(t, model.RoleUser, created.Role)

		out = env.mustRun(t, "admin", "users", "toggle", created.ID)
		assert.Contains(t, out, "inactive")

		env.stub.AddThread("new@b.com", "h1", "History")
		env.stub.AddMessage("h1", model.MessageRoleUser, strings.Repeat("a", 200))
		out = env.mustRun(t, "admin", "users", "history", created.ID)
		assert.Contains(t, out, "History (1 messages)")
		assert.Contains(t, out, strings.Repeat("a", 150)+"...")
		assert.NotContains(t, out, strings.Repeat("a", 151))

		env.prompter.On("Confirm", mock.Anything).Return(true).Once()
		out = env.mustRun(t, "admin", "users", "delete", created.ID)
		assert.Contains(t, out, "User deleted successfully.")
		_, ok = env.stub.User("new@b.com")
		assert.False(t, ok)
	})

	t.Run("Success - Documents", func(t *testing.T) {
		env := setupCLI(t)
		env.mustRun(t, "login", "-e", "root@b.com", "-p", "secret")

		out := env.mustRun(t, "admin", "docs", "list")
		assert.Contains(t, out, "No documents uploaded.")

		path := filepath.Join(t.TempDir(), "manual.pdf")
		require.NoError(t, os.WriteFile(path, []byte("%PDF-1.4\n%test\n"), 0600))
		out = env.mustRun(t, "admin", "documents", "upload", path)
		assert.Contains(t, out, "Document manual.pdf uploaded successfully.")
		assert.Contains(t, out, "manual.pdf")

		env.prompter.On("Alert", mock.Anything).Once()
		_, err := env.run(t, "admin", "docs", "upload", filepath.Join(t.TempDir(), "notes.txt"))
		assert.ErrorIs(t, err, app_errors.ErrValidation)

		out = env.mustRun(t, "admin", "docs", "list")
		id := strings.Fields(strings.TrimSpace(out))[0]
		out = env.mustRun(t, "admin", "docs", "delete", "-y", id)
		assert.Contains(t, out, "Document deleted successfully.")
	})
}

func TestExecute(t *testing.T) {
	env := setupCLI(t)
	root := cli.NewRootCmd(env.deps)
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"threads", "list"})

	err := cli.Execute(context.Background(), root, env.deps.Prompter, &errOut)
	assert.ErrorIs(t, err, app_errors.ErrAuth)
	assert.Contains(t, errOut.String(), "Error: ")
	assert.Contains(t, errOut.String(), "not logged in")
}

func TestCLI_ThreadsHelp(t *testing.T) {
	env := setupCLI(t)

	out := env.mustRun(t, "threads", "--help")
	assert.Contains(t, out, "List threads in server order")
	assert.NotContains(t, out, "newest first")
}
