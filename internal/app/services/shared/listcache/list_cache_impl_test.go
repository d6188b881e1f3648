package listcache

import (
	"context"
	"errors"
	"testing"
	"time"

	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/app/services/shared/redis/redistest"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, event models.ListInvalidation) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func TestListCache(t *testing.T) {
	ctx := context.Background()
	cfg := &config.InternalConfig{Cache: config.Cache{ListTTL: time.Minute}}
	page1 := requests.ListQuery{Page: 1, Limit: 10}
	page2 := requests.ListQuery{Page: 2, Limit: 10}
	result := &responses.ListResult{Data: json.RawMessage(`[{"_id":"p1"}]`), Meta: &responses.ListMeta{Total: 1}}

	t.Run("Miss Then Hit", func(t *testing.T) {
		cache := NewListCache(redistest.NewRepository(t), nil, cfg, zap.NewNop())

		_, hit, err := cache.Get(ctx, constvars.ResourceProducts, page1)
		require.NoError(t, err)
		assert.False(t, hit)

		require.NoError(t, cache.Put(ctx, constvars.ResourceProducts, page1, result))

		cached, hit, err := cache.Get(ctx, constvars.ResourceProducts, page1)
		require.NoError(t, err)
		require.True(t, hit)
		assert.JSONEq(t, `[{"_id":"p1"}]`, string(cached.Data))
		assert.Equal(t, 1, cached.Meta.Total)

		_, hit, _ = cache.Get(ctx, constvars.ResourceProducts, page2)
		assert.False(t, hit, "different queries are cached separately")
	})

	t.Run("Invalidate Drops Every Page And Broadcasts", func(t *testing.T) {
		publisher := new(mockPublisher)
		publisher.On("Publish", mock.Anything, mock.MatchedBy(func(event models.ListInvalidation) bool {
			return event.Resource == constvars.ResourceProducts && len(event.EntityIDs) == 1 && event.EntityIDs[0] == "p1"
		})).Return(nil).Once()

		cache := NewListCache(redistest.NewRepository(t), publisher, cfg, zap.NewNop())
		require.NoError(t, cache.Put(ctx, constvars.ResourceProducts, page1, result))
		require.NoError(t, cache.Put(ctx, constvars.ResourceProducts, page2, result))
		require.NoError(t, cache.Put(ctx, constvars.ResourceBlogs, page1, result))

		cache.Invalidate(ctx, constvars.ResourceProducts, "p1")
		cache.Wait()

		for _, query := range []requests.ListQuery{page1, page2} {
			_, hit, err := cache.Get(ctx, constvars.ResourceProducts, query)
			require.NoError(t, err)
			assert.False(t, hit)
		}
		_, hit, _ := cache.Get(ctx, constvars.ResourceBlogs, page1)
		assert.True(t, hit, "other resources keep their cache")
		publisher.AssertExpectations(t)
	})

	t.Run("Publish Failure Is Swallowed", func(t *testing.T) {
		publisher := new(mockPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker down"))

		cache := NewListCache(redistest.NewRepository(t), publisher, cfg, zap.NewNop())
		assert.NotPanics(t, func() {
			cache.Invalidate(ctx, constvars.ResourceOrders)
			cache.Wait()
		})
		publisher.AssertNumberOfCalls(t, "Publish", 1)
	})

	t.Run("Invalidate Does Not Wait For The Broker", func(t *testing.T) {
		release := make(chan struct{})
		publisher := new(mockPublisher)
		publisher.On("Publish", mock.Anything, mock.Anything).Return(nil).Run(func(mock.Arguments) {
			<-release
		})

		cache := NewListCache(redistest.NewRepository(t), publisher, cfg, zap.NewNop())
		require.NoError(t, cache.Put(ctx, constvars.ResourceBlogs, page1, result))

		returned := make(chan struct{})
		go func() {
			cache.Invalidate(ctx, constvars.ResourceBlogs, "b1")
			close(returned)
		}()

		select {
		case <-returned:
		case <-time.After(time.Second):
			t.Fatal("Invalidate blocked on a slow publish")
		}
		_, hit, err := cache.Get(ctx, constvars.ResourceBlogs, page1)
		require.NoError(t, err)
		assert.False(t, hit, "the local purge happens before Invalidate returns")

		close(release)
		cache.Wait()
		publisher.AssertNumberOfCalls(t, "Publish", 1)
	})
}
