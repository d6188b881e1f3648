package blogs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/app/services/shared/formsession"
	"mrchemist-admin-service/internal/app/services/shared/listcache"
	"mrchemist-admin-service/internal/app/services/shared/locker"
	"mrchemist-admin-service/internal/app/services/shared/notifications"
	"mrchemist-admin-service/internal/app/services/shared/redis/redistest"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) FindByID(ctx context.Context, resource, id string, out interface{}) error {
	args := m.Called(ctx, resource, id, out)
	if blog, ok := args.Get(0).(models.Blog); ok {
		*out.(*models.Blog) = blog
	}
	return args.Error(1)
}

func (m *mockGateway) Create(ctx context.Context, resource string, payload interface{}) (json.RawMessage, error) {
	args := m.Called(ctx, resource, payload)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockGateway) Update(ctx context.Context, resource, id string, payload interface{}) (json.RawMessage, error) {
	args := m.Called(ctx, resource, id, payload)
	raw, _ := args.Get(0).(json.RawMessage)
	return raw, args.Error(1)
}

func (m *mockGateway) Delete(ctx context.Context, resource, id string) error {
	return m.Called(ctx, resource, id).Error(0)
}

func (m *mockGateway) BatchDelete(ctx context.Context, resource string, ids []string) error {
	return m.Called(ctx, resource, ids).Error(0)
}

func (m *mockGateway) List(ctx context.Context, resource string, query requests.ListQuery) (*responses.ListResult, error) {
	args := m.Called(ctx, resource, query)
	result, _ := args.Get(0).(*responses.ListResult)
	return result, args.Error(1)
}

type mockReconciler struct {
	mock.Mock
}

func (m *mockReconciler) UploadStaged(ctx context.Context, files []requests.StagedFile) ([]string, error) {
	args := m.Called(ctx, files)
	urls, _ := args.Get(0).([]string)
	return urls, args.Error(1)
}

func (m *mockReconciler) CleanupOrphans(ctx context.Context, resource string, previous, current []string) {
	m.Called(ctx, resource, previous, current)
}

func (m *mockReconciler) Wait() {}

type mockLookup struct {
	mock.Mock
}

func (m *mockLookup) Options(ctx context.Context) ([]responses.TreatmentOption, error) {
	args := m.Called(ctx)
	options, _ := args.Get(0).([]responses.TreatmentOption)
	return options, args.Error(1)
}

func (m *mockLookup) Exists(ctx context.Context, treatmentID string) (bool, error) {
	args := m.Called(ctx, treatmentID)
	return args.Bool(0), args.Error(1)
}

func (m *mockLookup) Refresh(ctx context.Context) ([]responses.TreatmentOption, error) {
	args := m.Called(ctx)
	options, _ := args.Get(0).([]responses.TreatmentOption)
	return options, args.Error(1)
}

type fixture struct {
	usecase    BlogUsecase
	gateway    *mockGateway
	reconciler *mockReconciler
	lookup     *mockLookup
}

func newFixture(t *testing.T) *fixture {
	logger := zap.NewNop()
	repo := redistest.NewRepository(t)
	cfg := &config.InternalConfig{
		Draft: config.Draft{TTL: time.Hour, LockTTL: time.Minute},
		Cache: config.Cache{ListTTL: time.Minute, NotificationTTL: time.Hour},
	}
	f := &fixture{gateway: new(mockGateway), reconciler: new(mockReconciler), lookup: new(mockLookup)}
	f.lookup.On("Exists", mock.Anything, "t1").Return(true, nil).Maybe()

	f.usecase = NewBlogUsecase(
		formsession.NewDraftStore[models.Blog](constvars.DraftKindBlog, repo, locker.NewLockService(repo, logger), cfg, logger),
		f.gateway,
		f.reconciler,
		f.lookup,
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

func newValidDraft(t *testing.T, ctx context.Context, uc BlogUsecase) string {
	draft, err := uc.CreateDraft(ctx)
	require.NoError(t, err)
	_, err = uc.UpdateFields(ctx, draft.ID, &requests.UpdateBlogFields{
		Title:     ptr("Winter skin care"),
		Slug:      ptr("winter-skin-care"),
		Excerpt:   ptr("Keep your skin calm when it gets cold."),
		Content:   ptr("<p>Moisturise.</p>"),
		Treatment: ptr("t1"),
	})
	require.NoError(t, err)
	return draft.ID
}

func TestBlogUsecase_Submit(t *testing.T) {
	t.Run("Create Sends Uploaded URLs", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		draftID := newValidDraft(t, ctx, f.usecase)
		_, err := f.usecase.AppendElement(ctx, draftID, models.BlogArrayTags, json.RawMessage(`"winter"`))
		require.NoError(t, err)

		files := []requests.StagedFile{{Filename: "cover.png"}}
		og := requests.StagedFile{Filename: "og.png"}
		f.reconciler.On("UploadStaged", mock.Anything, []requests.StagedFile{files[0], og}).
			Return([]string{"https://cdn.test/cover.png", "https://cdn.test/og.png"}, nil).Once()
		f.gateway.On("Create", mock.Anything, constvars.ResourceBlogs, mock.MatchedBy(func(blog models.Blog) bool {
			return blog.Title == "Winter skin care" &&
				assert.ObjectsAreEqual([]string{"https://cdn.test/cover.png"}, blog.ImageURLs) &&
				blog.OpenGraphImageURL == "https://cdn.test/og.png" &&
				assert.ObjectsAreEqual([]string{"winter"}, blog.Tags) &&
				blog.IsPublished
		})).Return(json.RawMessage(`{"_id":"b1"}`), nil).Once()

		result, err := f.usecase.Submit(ctx, draftID, files, &og)
		require.NoError(t, err)
		assert.Equal(t, string(models.FormStateSucceeded), result.Draft.State)
		f.gateway.AssertExpectations(t)
		f.reconciler.AssertExpectations(t)
	})

	t.Run("Refused Blog Removes Fresh Uploads", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		draftID := newValidDraft(t, ctx, f.usecase)

		files := []requests.StagedFile{{Filename: "cover.png"}}
		f.reconciler.On("UploadStaged", mock.Anything, files).Return([]string{"https://cdn.test/cover.png"}, nil).Once()
		f.gateway.On("Create", mock.Anything, constvars.ResourceBlogs, mock.Anything).
			Return(nil, exceptions.ErrGatewayRequest(errors.New("conflict"), http.StatusConflict, "Slug already exists", http.MethodPost, "/blogs/create")).Once()
		f.reconciler.On("CleanupOrphans", mock.Anything, constvars.ResourceBlogs, []string{"https://cdn.test/cover.png"}, []string(nil)).Once()

		_, err := f.usecase.Submit(ctx, draftID, files, nil)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, http.StatusConflict, customErr.StatusCode)
		f.reconciler.AssertExpectations(t)

		found, err := f.usecase.FindDraft(ctx, draftID)
		require.NoError(t, err)
		assert.Equal(t, string(models.FormStateFailed), found.State)
		assert.Empty(t, found.Document.(models.Blog).ImageURLs)
	})

	t.Run("Edit Flow Cleans Replaced Open Graph Image", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		existing := models.Blog{
			ID: "b7", Title: "Old", Slug: "old", Excerpt: "Old excerpt", Content: "body", Treatment: "t1",
			ImageURLs: []string{"https://cdn.test/a.png"}, OpenGraphImageURL: "https://cdn.test/old-og.png", IsPublished: true,
		}
		f.gateway.On("FindByID", mock.Anything, constvars.ResourceBlogs, "b7", mock.Anything).Return(existing, nil).Once()

		draft, err := f.usecase.EditDraft(ctx, "b7")
		require.NoError(t, err)

		og := requests.StagedFile{Filename: "new-og.png"}
		f.reconciler.On("UploadStaged", mock.Anything, []requests.StagedFile{og}).Return([]string{"https://cdn.test/new-og.png"}, nil).Once()
		f.gateway.On("Update", mock.Anything, constvars.ResourceBlogs, "b7", mock.Anything).Return(json.RawMessage(`{"_id":"b7"}`), nil).Once()
		f.reconciler.On("CleanupOrphans", mock.Anything, constvars.ResourceBlogs,
			[]string{"https://cdn.test/a.png", "https://cdn.test/old-og.png"},
			[]string{"https://cdn.test/a.png", "https://cdn.test/new-og.png"},
		).Once()

		_, err = f.usecase.Submit(ctx, draft.ID, nil, &og)
		require.NoError(t, err)
		f.reconciler.AssertExpectations(t)
	})

	t.Run("Too Many Tags Are Rejected Before Upload", func(t *testing.T) {
		f := newFixture(t)
		ctx := testContext()
		draftID := newValidDraft(t, ctx, f.usecase)
		for i := 0; i < 11; i++ {
			_, err := f.usecase.AppendElement(ctx, draftID, models.BlogArrayTags, json.RawMessage(fmt.Sprintf(`"tag-%d"`, i)))
			require.NoError(t, err)
		}

		_, err := f.usecase.Submit(ctx, draftID, []requests.StagedFile{{Filename: "cover.png"}}, nil)
		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, http.StatusUnprocessableEntity, customErr.StatusCode)
		require.Len(t, customErr.FieldErrors, 1)
		assert.Equal(t, "tags", customErr.FieldErrors[0].Field)
		f.reconciler.AssertNotCalled(t, "UploadStaged", mock.Anything, mock.Anything)
	})
}

func TestBlogUsecase_Arrays(t *testing.T) {
	f := newFixture(t)
	ctx := testContext()
	draftID := newValidDraft(t, ctx, f.usecase)

	for _, tag := range []string{`"a"`, `"b"`, `"c"`} {
		_, err := f.usecase.AppendElement(ctx, draftID, models.BlogArrayTags, json.RawMessage(tag))
		require.NoError(t, err)
	}
	_, err := f.usecase.MoveElement(ctx, draftID, models.BlogArrayTags, 0, 2)
	require.NoError(t, err)
	draft, err := f.usecase.RemoveElement(ctx, draftID, models.BlogArrayTags, 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a"}, draft.Document.(models.Blog).Tags)

	_, err = f.usecase.MoveElement(ctx, draftID, models.BlogArrayTags, 1, 2)
	var customErr *exceptions.CustomError
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, http.StatusBadRequest, customErr.StatusCode)

	_, err = f.usecase.AppendElement(ctx, draftID, "variants", json.RawMessage(`"x"`))
	require.ErrorAs(t, err, &customErr)
	assert.Equal(t, constvars.ErrClientUnknownArrayField, customErr.ClientMessage)
}
