package stubserver_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ragchat/client/internal/backend"
	"ragchat/client/internal/backend/stubserver"
	app_errors "ragchat/client/internal/errors"
	"ragchat/client/internal/model"
)

func TestBackend(t *testing.T) {
	stub := stubserver.New()
	stub.AddUser("a@b.com", "x", model.RoleUser)
	server := httptest.NewServer(stub.Handler())
	defer server.Close()

	client := backend.NewClient(server.URL, 0)
	ctx := context.Background()

	tok, err := client.Login(ctx, &backend.LoginRequest{Email: "a@b.com", Password: "x"})
	require.NoError(t, err)

	t.Run("Threads are listed newest first", func(t *testing.T) {
		first, err := client.CreateThread(ctx, tok.AccessToken)
		require.NoError(t, err)
		second, err := client.CreateThread(ctx, tok.AccessToken)
		require.NoError(t, err)

		threads, err := client.ListThreads(ctx, tok.AccessToken)
		require.NoError(t, err)
		require.Len(t, threads, 2)
		assert.Equal(t, second.ID, threads[0].ID)
		assert.Equal(t, first.ID, threads[1].ID)
	})

	t.Run("Calls are counted by route pattern", func(t *testing.T) {
		assert.Equal(t, 2, stub.Calls("POST /threads"))
		assert.Equal(t, 1, stub.Calls("POST /auth/login"))

		id := stub.ThreadIDs()[0]
		_, err := client.ListMessages(ctx, tok.AccessToken, id)
		require.NoError(t, err)
		assert.Equal(t, 1, stub.Calls("GET /chat/{threadID}/messages"))
	})

	t.Run("Injected failures carry detail", func(t *testing.T) {
		stub.Fail("GET /threads", http.StatusServiceUnavailable, "maintenance")
		_, err := client.ListThreads(ctx, tok.AccessToken)
		assert.ErrorIs(t, err, app_errors.ErrServer)
		assert.Equal(t, "maintenance", app_errors.Reason(err))

		stub.Recover("GET /threads")
		_, err = client.ListThreads(ctx, tok.AccessToken)
		assert.NoError(t, err)
	})

	t.Run("Admin routes require the admin role", func(t *testing.T) {
		_, err := client.ListUsers(ctx, tok.AccessToken)
		assert.ErrorIs(t, err, app_errors.ErrPermission)
	})

	t.Run("Unknown token is rejected", func(t *testing.T) {
		_, err := client.CurrentUser(ctx, "bogus")
		assert.ErrorIs(t, err, app_errors.ErrAuth)
	})
}
