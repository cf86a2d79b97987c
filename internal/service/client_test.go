package service_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ragchat/client/internal/backend"
	"ragchat/client/internal/backend/stubserver"
	"ragchat/client/internal/database"
	app_errors "ragchat/client/internal/errors"
	"ragchat/client/internal/interfaces/mocks"
	"ragchat/client/internal/model"
	"ragchat/client/internal/repository"
	"ragchat/client/internal/service"
)

const (
	testEmail    = "a@b.com"
	testPassword = "x"
)

// stubEnv is a client wired to an in-memory backend and a real state database.
type stubEnv struct {
	stub     *stubserver.Backend
	client   *service.Client
	prompter *mocks.MockPrompter
	state    repository.StateRepository
	url      string
}

// setupStubClient builds the environment. configure runs before the first request
// so that stub hooks can be installed without racing the server.
func setupStubClient(t *testing.T, configure func(*stubserver.Backend)) stubEnv {
	t.Helper()

	stub := stubserver.New()
	stub.AddUser(testEmail, testPassword, model.RoleUser)
	if configure != nil {
		configure(stub)
	}
	server := httptest.NewServer(stub.Handler())
	t.Cleanup(server.Close)

	db, err := database.InitDB(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	state := repository.NewSQLiteRepository(db)
	prompter := mocks.NewMockPrompter(t)
	client := service.NewClient(backend.NewClient(server.URL, 5*time.Second), state, prompter)

	return stubEnv{stub: stub, client: client, prompter: prompter, state: state, url: server.URL}
}

func login(t *testing.T, env stubEnv) model.Session {
	t.Helper()
	sess, err := env.client.Login(context.Background(), testEmail, testPassword)
	require.NoError(t, err)
	return sess
}

func threadIDs(threads []model.Thread) []string {
	ids := make([]string, 0, len(threads))
	for _, th := range threads {
		ids = append(ids, th.ID)
	}
	return ids
}

func TestClient_LoginScenario(t *testing.T) {
	ctx := context.Background()
	env := setupStubClient(t, func(b *stubserver.Backend) {
		b.Reply = func(string) string { return "hi there" }
	})

	sess := login(t, env)
	assert.NotEmpty(t, sess.Token)
	assert.True(t, sess.Authenticated())
	assert.Equal(t, model.RoleSourceIdentity, sess.RoleSource)
	assert.Equal(t, testEmail, sess.User.Email)

	env.stub.AddThread(testEmail, "t1", "Hi")
	threads, err := env.client.RefreshThreads(ctx)
	require.NoError(t, err)
	require.Len(t, threads, 1)
	assert.Equal(t, "t1", env.client.ActiveThreadID())

	require.NoError(t, <-env.client.Send(ctx, "t1", "hello"))

	messages := env.client.Messages()
	require.Len(t, messages, 2)
	assert.Equal(t, model.MessageRoleUser, messages[0].Role)
	assert.Equal(t, "hello", messages[0].Content)
	assert.False(t, messages[0].Optimistic())
	assert.Equal(t, model.MessageRoleAssistant, messages[1].Role)
	assert.Equal(t, "hi there", messages[1].Content)
}

func TestClient_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("Success - token is persisted", func(t *testing.T) {
		env := setupStubClient(t, nil)
		sess := login(t, env)

		stored, err := env.state.Get(ctx, repository.KeyAuthToken)
		require.NoError(t, err)
		assert.Equal(t, sess.Token, stored)
	})

	t.Run("Failure - Wrong password", func(t *testing.T) {
		env := setupStubClient(t, nil)
		env.prompter.On("Alert", "Login failed: Incorrect email or password").Once()

		_, err := env.client.Login(ctx, testEmail, "wrong")
		assert.ErrorIs(t, err, app_errors.ErrAuth)
		assert.False(t, env.client.Session().Authenticated())

		_, err = env.state.Get(ctx, repository.KeyAuthToken)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("Failure - Invalid email is rejected locally", func(t *testing.T) {
		env := setupStubClient(t, nil)
		env.prompter.On("Alert", mock.Anything).Once()

		_, err := env.client.Login(ctx, "not-an-email", testPassword)
		assert.ErrorIs(t, err, app_errors.ErrValidation)
		assert.Zero(t, env.stub.TotalCalls())
	})

	t.Run("Identity lookup failure falls back to probing", func(t *testing.T) {
		env := setupStubClient(t, func(b *stubserver.Backend) {
			b.DisableMe = true
			b.AddUser("root@b.com", "secret", model.RoleAdmin)
		})

		sess, err := env.client.Login(ctx, "root@b.com", "secret")
		require.NoError(t, err)
		assert.Equal(t, model.RoleSourceProbe, sess.RoleSource)
		assert.True(t, sess.IsAdmin())
		assert.Equal(t, 1, env.stub.Calls("GET /admin/users"))

		sess, err = env.client.Login(ctx, testEmail, testPassword)
		require.NoError(t, err)
		assert.Equal(t, model.RoleSourceProbe, sess.RoleSource)
		assert.False(t, sess.IsAdmin())
	})
}

func TestClient_SuccessfulCommandsLogNothingAtInfo(t *testing.T) {
	ctx := context.Background()
	defaultLogger := slog.Default()
	t.Cleanup(func() { slog.SetDefault(defaultLogger) })

	var buf bytes.Buffer
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))

	env := setupStubClient(t, nil)
	login(t, env)

	fresh := service.NewClient(backend.NewClient(env.url, 0), env.state, env.prompter)
	restored, err := fresh.Restore(ctx)
	require.NoError(t, err)
	require.True(t, restored)

	_, err = fresh.CreateThread(ctx)
	require.NoError(t, err)
	require.NoError(t, fresh.Logout(ctx))

	assert.Empty(t, buf.String())
}

func TestClient_Restore(t *testing.T) {
	ctx := context.Background()

	t.Run("Logout then restore yields an empty session", func(t *testing.T) {
		env := setupStubClient(t, nil)
		login(t, env)
		env.stub.AddThread(testEmail, "t1", "Hi")
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)
		env.client.SetDraft("unsent")

		require.NoError(t, env.client.Logout(ctx))

		restored, err := env.client.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, restored)
		sess := env.client.Session()
		assert.False(t, sess.Authenticated())
		assert.Empty(t, sess.ActiveThreadID)
		assert.Empty(t, env.client.Threads())
		assert.Empty(t, env.client.Messages())
		assert.Empty(t, env.client.Draft())
	})

	t.Run("Success - Valid token is reused", func(t *testing.T) {
		env := setupStubClient(t, nil)
		sess := login(t, env)

		fresh := service.NewClient(backend.NewClient(env.url, 0), env.state, env.prompter)
		restored, err := fresh.Restore(ctx)
		require.NoError(t, err)
		assert.True(t, restored)
		assert.Equal(t, sess.Token, fresh.Session().Token)
		assert.Equal(t, testEmail, fresh.Session().User.Email)
	})

	t.Run("Invalid token is discarded silently", func(t *testing.T) {
		env := setupStubClient(t, nil)
		require.NoError(t, env.state.Set(ctx, repository.KeyAuthToken, "expired"))

		restored, err := env.client.Restore(ctx)
		require.NoError(t, err)
		assert.False(t, restored)
		assert.False(t, env.client.Session().Authenticated())

		_, err = env.state.Get(ctx, repository.KeyAuthToken)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestClient_RefreshThreads(t *testing.T) {
	ctx := context.Background()
	env := setupStubClient(t, nil)
	login(t, env)

	t.Run("Empty list selects nothing", func(t *testing.T) {
		threads, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)
		assert.Empty(t, threads)
		assert.Empty(t, env.client.ActiveThreadID())
	})

	t.Run("View mirrors the server after every refresh", func(t *testing.T) {
		env.stub.AddThread(testEmail, "t3", "third")
		env.stub.AddThread(testEmail, "t2", "second")
		env.stub.AddThread(testEmail, "t1", "first")

		for i := 0; i < 3; i++ {
			threads, err := env.client.RefreshThreads(ctx)
			require.NoError(t, err)
			assert.Equal(t, env.stub.ThreadIDs(), threadIDs(threads))
			assert.Equal(t, env.stub.ThreadIDs(), threadIDs(env.client.Threads()))

			env.stub.AddThread(testEmail, "", "more")
		}
	})

	t.Run("Existing selection is kept", func(t *testing.T) {
		assert.Equal(t, "t1", env.client.ActiveThreadID())
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)
		assert.Equal(t, "t1", env.client.ActiveThreadID())
	})

	t.Run("Failure - Server error keeps the previous view", func(t *testing.T) {
		before := env.client.Threads()
		env.stub.Fail("GET /threads", http.StatusInternalServerError, "db down")
		defer env.stub.Recover("GET /threads")
		env.prompter.On("Alert", "Failed to load threads: db down").Once()

		_, err := env.client.RefreshThreads(ctx)
		assert.ErrorIs(t, err, app_errors.ErrServer)
		assert.Equal(t, before, env.client.Threads())
	})

	t.Run("Failure - Not logged in", func(t *testing.T) {
		anon := service.NewClient(backend.NewClient(env.url, 0), env.state, nil)
		_, err := anon.RefreshThreads(ctx)
		assert.ErrorIs(t, err, app_errors.ErrAuth)
	})
}

func TestClient_CreateThread(t *testing.T) {
	ctx := context.Background()
	env := setupStubClient(t, nil)
	login(t, env)
	env.stub.AddThread(testEmail, "old", "Old")
	env.stub.AddMessage("old", model.MessageRoleUser, "earlier")
	_, err := env.client.RefreshThreads(ctx)
	require.NoError(t, err)
	require.Len(t, env.client.Messages(), 1)

	thread, err := env.client.CreateThread(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, thread.ID)
	assert.Equal(t, thread.ID, env.client.ActiveThreadID())
	assert.Equal(t, []string{thread.ID, "old"}, threadIDs(env.client.Threads()))
	assert.Empty(t, env.client.Messages())
}

func TestClient_RenameThread(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		env := setupStubClient(t, nil)
		login(t, env)
		env.stub.AddThread(testEmail, "t1", "Hi")
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)

		require.NoError(t, env.client.RenameThread(ctx, "t1", "  Renamed  "))
		assert.Equal(t, "Renamed", env.client.Threads()[0].Title)
		assert.Equal(t, 2, env.stub.Calls("GET /threads"))
	})

	t.Run("Success - Long title is sent as is", func(t *testing.T) {
		env := setupStubClient(t, nil)
		login(t, env)
		env.stub.AddThread(testEmail, "t1", "Hi")
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)

		title := strings.Repeat("a", 250)
		require.NoError(t, env.client.RenameThread(ctx, "t1", title))
		assert.Equal(t, 1, env.stub.Calls("PATCH /threads/{threadID}"))
		assert.Equal(t, title, env.client.Threads()[0].Title)
	})

	t.Run("Blank title is ignored", func(t *testing.T) {
		env := setupStubClient(t, nil)
		login(t, env)
		env.stub.AddThread(testEmail, "t1", "Hi")
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)

		require.NoError(t, env.client.RenameThread(ctx, "t1", "   "))
		assert.Zero(t, env.stub.Calls("PATCH /threads/{threadID}"))
		assert.Equal(t, "Hi", env.client.Threads()[0].Title)
	})

	t.Run("Failure - Optimistic title is kept", func(t *testing.T) {
		env := setupStubClient(t, nil)
		login(t, env)
		env.stub.AddThread(testEmail, "t1", "Hi")
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)
		env.stub.Fail("PATCH /threads/{threadID}", http.StatusInternalServerError, "boom")
		env.prompter.On("Alert", "Failed to rename thread: boom").Once()

		err = env.client.RenameThread(ctx, "t1", "Renamed")
		assert.ErrorIs(t, err, app_errors.ErrServer)
		assert.Equal(t, "Renamed", env.client.Threads()[0].Title)
	})
}

func TestClient_DeleteThread(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T) stubEnv {
		env := setupStubClient(t, nil)
		login(t, env)
		env.stub.AddThread(testEmail, "t3", "three")
		env.stub.AddThread(testEmail, "t2", "two")
		env.stub.AddThread(testEmail, "t1", "one")
		env.stub.AddMessage("t1", model.MessageRoleUser, "hello")
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)
		require.Equal(t, "t1", env.client.ActiveThreadID())
		return env
	}

	t.Run("Deleting another thread keeps the selection", func(t *testing.T) {
		env := setup(t)
		env.prompter.On("Confirm", "Are you sure you want to delete this thread?").Return(true).Once()

		deleted, err := env.client.DeleteThread(ctx, "t2")
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Equal(t, "t1", env.client.ActiveThreadID())
		assert.Len(t, env.client.Messages(), 1)
		assert.Equal(t, []string{"t1", "t3"}, threadIDs(env.client.Threads()))
	})

	t.Run("Deleting the active thread clears the selection", func(t *testing.T) {
		env := setup(t)
		env.prompter.On("Confirm", mock.Anything).Return(true).Once()

		deleted, err := env.client.DeleteThread(ctx, "t1")
		require.NoError(t, err)
		assert.True(t, deleted)
		assert.Empty(t, env.client.ActiveThreadID())
		assert.Empty(t, env.client.Messages())
		assert.Equal(t, []string{"t2", "t3"}, threadIDs(env.client.Threads()))
	})

	t.Run("Declined confirmation sends nothing", func(t *testing.T) {
		env := setup(t)
		env.prompter.On("Confirm", mock.Anything).Return(false).Once()

		deleted, err := env.client.DeleteThread(ctx, "t1")
		require.NoError(t, err)
		assert.False(t, deleted)
		assert.Zero(t, env.stub.Calls("DELETE /threads/{threadID}"))
		assert.Equal(t, "t1", env.client.ActiveThreadID())
	})

	t.Run("Failure - Server refuses", func(t *testing.T) {
		env := setup(t)
		env.stub.Fail("DELETE /threads/{threadID}", http.StatusForbidden, "Not enough permissions")
		env.prompter.On("Confirm", mock.Anything).Return(true).Once()
		env.prompter.On("Alert", "Failed to delete thread: Not enough permissions").Once()

		deleted, err := env.client.DeleteThread(ctx, "t1")
		assert.ErrorIs(t, err, app_errors.ErrPermission)
		assert.False(t, deleted)
		assert.Equal(t, "t1", env.client.ActiveThreadID())
	})
}

func TestClient_Send(t *testing.T) {
	ctx := context.Background()

	t.Run("No active thread is a no-op", func(t *testing.T) {
		env := setupStubClient(t, nil)
		login(t, env)
		env.stub.AddThread(testEmail, "t1", "Hi")
		env.client.SetDraft("hello")

		for _, threadID := range []string{"", "t1"} {
			done := env.client.Send(ctx, threadID, "hello")
			_, open := <-done
			assert.False(t, open)
		}
		_, open := <-env.client.SubmitDraft(ctx)
		assert.False(t, open)

		assert.Zero(t, env.stub.Calls("POST /chat/{threadID}/message"))
		assert.Empty(t, env.client.Messages())
		assert.Equal(t, "hello", env.client.Draft())
	})

	t.Run("Blank text is a no-op", func(t *testing.T) {
		env := setupStubClient(t, nil)
		login(t, env)
		env.stub.AddThread(testEmail, "t1", "Hi")
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)
		env.client.SetDraft("   ")

		_, open := <-env.client.SubmitDraft(ctx)
		assert.False(t, open)
		assert.Zero(t, env.stub.Calls("POST /chat/{threadID}/message"))
		assert.Equal(t, "   ", env.client.Draft())
	})

	t.Run("Message is shown before the reply arrives", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		env := setupStubClient(t, func(b *stubserver.Backend) {
			b.BeforeReply = func(string, string) {
				close(entered)
				<-release
			}
		})
		login(t, env)
		env.stub.AddThread(testEmail, "t1", "Hi")
		env.stub.AddMessage("t1", model.MessageRoleUser, "earlier")
		env.stub.AddMessage("t1", model.MessageRoleAssistant, "answer")
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)
		before := len(env.client.Messages())
		env.client.SetDraft("hello")

		done := env.client.SubmitDraft(ctx)

		messages := env.client.Messages()
		require.Len(t, messages, before+1)
		last := messages[len(messages)-1]
		assert.Equal(t, model.MessageRoleUser, last.Role)
		assert.Equal(t, "hello", last.Content)
		assert.True(t, last.Optimistic())
		assert.Empty(t, env.client.Draft())

		<-entered
		assert.Len(t, env.client.Messages(), before+1)
		close(release)
		require.NoError(t, <-done)

		messages = env.client.Messages()
		require.Len(t, messages, before+2)
		users := 0
		for _, m := range messages[before:] {
			if m.Role == model.MessageRoleUser {
				users++
			}
		}
		assert.Equal(t, 1, users)
		assert.Equal(t, "hello", messages[before].Content)
		assert.Equal(t, model.MessageRoleAssistant, messages[before+1].Role)
		assert.Equal(t, "echo: hello", messages[before+1].Content)
	})

	t.Run("Server echo replaces the optimistic message", func(t *testing.T) {
		env := setupStubClient(t, func(b *stubserver.Backend) {
			b.EchoUserMessage = true
		})
		login(t, env)
		env.stub.AddThread(testEmail, "t1", "Hi")
		env.stub.AddDocument("manual.pdf")
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)

		require.NoError(t, <-env.client.Send(ctx, "t1", "  hello  "))

		stored := env.stub.Messages("t1")
		messages := env.client.Messages()
		require.Len(t, messages, 2)
		assert.Equal(t, stored[0].ID, messages[0].ID)
		assert.Equal(t, "hello", messages[0].Content)
		require.Len(t, messages[1].RetrievalRefs, 1)
		assert.Equal(t, "manual.pdf", messages[1].RetrievalRefs[0].Filename)
	})

	t.Run("Failure - Optimistic message is left in place", func(t *testing.T) {
		env := setupStubClient(t, nil)
		login(t, env)
		env.stub.AddThread(testEmail, "t1", "Hi")
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)
		env.stub.Fail("POST /chat/{threadID}/message", http.StatusInternalServerError, "model unavailable")
		env.prompter.On("Alert", "Failed to send message: model unavailable").Once()

		err = <-env.client.Send(ctx, "t1", "hello")
		assert.ErrorIs(t, err, app_errors.ErrServer)

		messages := env.client.Messages()
		require.Len(t, messages, 1)
		assert.True(t, messages[0].Optimistic())
		assert.Equal(t, "hello", messages[0].Content)
	})

	t.Run("Reply is dropped when the view was reloaded", func(t *testing.T) {
		entered := make(chan struct{})
		release := make(chan struct{})
		env := setupStubClient(t, func(b *stubserver.Backend) {
			b.BeforeReply = func(string, string) {
				close(entered)
				<-release
			}
		})
		login(t, env)
		env.stub.AddThread(testEmail, "t1", "Hi")
		_, err := env.client.RefreshThreads(ctx)
		require.NoError(t, err)

		done := env.client.Send(ctx, "t1", "hello")
		<-entered
		_, err = env.client.LoadMessages(ctx, "t1")
		require.NoError(t, err)
		close(release)
		require.NoError(t, <-done)

		messages := env.client.Messages()
		require.Len(t, messages, 1)
		assert.False(t, messages[0].Optimistic())
		assert.Equal(t, "hello", messages[0].Content)
	})
}

func TestClient_DeleteMessage(t *testing.T) {
	ctx := context.Background()
	env := setupStubClient(t, nil)
	login(t, env)
	env.stub.AddThread(testEmail, "t1", "Hi")
	msg := env.stub.AddMessage("t1", model.MessageRoleUser, "hello")
	env.stub.AddMessage("t1", model.MessageRoleAssistant, "hi")
	_, err := env.client.RefreshThreads(ctx)
	require.NoError(t, err)

	count, err := env.client.MessageCount(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, env.client.DeleteMessage(ctx, msg.ID))
	messages := env.client.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "hi", messages[0].Content)

	count, err = env.client.MessageCount(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
