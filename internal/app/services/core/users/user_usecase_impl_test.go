package users

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/app/services/shared/formsession"
	"mrchemist-admin-service/internal/app/services/shared/gateway"
	"mrchemist-admin-service/internal/app/services/shared/listcache"
	"mrchemist-admin-service/internal/app/services/shared/locker"
	"mrchemist-admin-service/internal/app/services/shared/notifications"
	"mrchemist-admin-service/internal/app/services/shared/redis/redistest"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type remoteCall struct {
	Method string
	Path   string
	Body   string
}

type fixture struct {
	usecase UserUsecase
	mu      sync.Mutex
	calls   []remoteCall
}

func (f *fixture) recorded() []remoteCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]remoteCall{}, f.calls...)
}

func newFixture(t *testing.T) *fixture {
	logger := zap.NewNop()
	repo := redistest.NewRepository(t)
	cfg := &config.InternalConfig{
		Draft: config.Draft{TTL: time.Hour, LockTTL: time.Minute},
		Cache: config.Cache{ListTTL: time.Minute, NotificationTTL: time.Hour},
	}
	f := &fixture{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		f.mu.Lock()
		f.calls = append(f.calls, remoteCall{Method: r.Method, Path: r.URL.Path, Body: string(body)})
		f.mu.Unlock()

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/users/get-by-id/u1":
			w.Write([]byte(`{"data":{"_id":"u1","name":"Budi","email":"budi@example.com","password":"$2b$hash"}}`))
		case r.Method == http.MethodPost && r.URL.Path == "/users/create-user":
			w.WriteHeader(http.StatusCreated)
			w.Write([]byte(`{"data":{"_id":"u2"}}`))
		case r.Method == http.MethodPatch && r.URL.Path == "/users/u1":
			w.Write([]byte(`{"data":{"_id":"u1"}}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"message":"not found"}`))
		}
	}))
	t.Cleanup(server.Close)

	f.usecase = NewUserUsecase(
		formsession.NewDraftStore[models.User](constvars.DraftKindUser, repo, locker.NewLockService(repo, logger), cfg, logger),
		gateway.NewRemoteGatewayWithClient(server.URL, server.Client(), nil, logger),
		notifications.NewNotificationService(repo, cfg, logger),
		listcache.NewListCache(repo, nil, cfg, logger),
		logger,
	)
	return f
}

func testContext() context.Context {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	return context.WithValue(ctx, constvars.CONTEXT_ADMIN_ID_KEY, "admin-1")
}

func ptr[T any](value T) *T {
	return &value
}

func TestUserUsecase_CreateFlow(t *testing.T) {
	t.Run("New Draft Defaults To Admin Role", func(t *testing.T) {
		f := newFixture(t)
		draft, err := f.usecase.CreateDraft(testContext())
		require.NoError(t, err)
		assert.Equal(t, models.UserRoleAdmin, draft.Document.(models.User).Role)
	})

	t.Run("Unknown Role Is Rejected", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		draft, err := f.usecase.CreateDraft(ctx)
		require.NoError(t, err)
		_, err = f.usecase.UpdateFields(ctx, draft.ID, &requests.UpdateUserFields{
			Name:  ptr("Budi"),
			Email: ptr("budi@example.com"),
			Role:  ptr("owner"),
		})
		require.NoError(t, err)

		_, err = f.usecase.Submit(ctx, draft.ID)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, http.StatusUnprocessableEntity, customErr.StatusCode)
		require.Len(t, customErr.FieldErrors, 1)
		assert.Equal(t, "role", customErr.FieldErrors[0].Field)
		assert.Equal(t, "must be one of [admin, editor]", customErr.FieldErrors[0].Message)
	})

	t.Run("Valid Draft Posts To Create User And Forgets Password", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		draft, err := f.usecase.CreateDraft(ctx)
		require.NoError(t, err)
		_, err = f.usecase.UpdateFields(ctx, draft.ID, &requests.UpdateUserFields{
			Name:     ptr("Budi"),
			Email:    ptr("budi@example.com"),
			Password: ptr("s3cret!"),
			Role:     ptr(models.UserRoleEditor),
		})
		require.NoError(t, err)

		result, err := f.usecase.Submit(ctx, draft.ID)
		require.NoError(t, err)

		calls := f.recorded()
		require.Len(t, calls, 1)
		assert.Equal(t, http.MethodPost, calls[0].Method)
		assert.Equal(t, "/users/create-user", calls[0].Path)
		assert.Equal(t, "s3cret!", gjson.Get(calls[0].Body, "password").String())
		assert.Equal(t, "editor", gjson.Get(calls[0].Body, "role").String())

		assert.Empty(t, result.Draft.Document.(models.User).Password)
		stored, err := f.usecase.FindDraft(ctx, draft.ID)
		require.NoError(t, err)
		assert.Empty(t, stored.Document.(models.User).Password)
	})
}

func TestUserUsecase_EditFlow(t *testing.T) {
	t.Run("Patch Leaves Password Out", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()

		draft, err := f.usecase.EditDraft(ctx, "u1")
		require.NoError(t, err)
		user := draft.Document.(models.User)
		assert.Empty(t, user.Password)
		assert.Equal(t, models.UserRoleAdmin, user.Role, "a missing role falls back to admin")

		_, err = f.usecase.UpdateFields(ctx, draft.ID, &requests.UpdateUserFields{Name: ptr("Budi S")})
		require.NoError(t, err)
		_, err = f.usecase.Submit(ctx, draft.ID)
		require.NoError(t, err)

		calls := f.recorded()
		require.Len(t, calls, 2)
		assert.Equal(t, "/users/get-by-id/u1", calls[0].Path)
		assert.Equal(t, http.MethodPatch, calls[1].Method)
		assert.Equal(t, "/users/u1", calls[1].Path)
		assert.Equal(t, "Budi S", gjson.Get(calls[1].Body, "name").String())
		assert.False(t, gjson.Get(calls[1].Body, "password").Exists())
	})

	t.Run("Password Cannot Be Set On Existing User", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		draft, err := f.usecase.EditDraft(ctx, "u1")
		require.NoError(t, err)

		_, err = f.usecase.UpdateFields(ctx, draft.ID, &requests.UpdateUserFields{Password: ptr("new")})
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, http.StatusBadRequest, customErr.StatusCode)
		assert.Equal(t, constvars.ErrClientPasswordOnEdit, customErr.ClientMessage)
	})
}
