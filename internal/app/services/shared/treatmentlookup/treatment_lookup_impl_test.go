package treatmentlookup

import (
	"context"
	"testing"
	"time"

	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/services/shared/locker"
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

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) FindByID(ctx context.Context, resource, id string, out interface{}) error {
	return m.Called(ctx, resource, id, out).Error(0)
}

func (m *mockGateway) Create(ctx context.Context, resource string, payload interface{}) (json.RawMessage, error) {
	args := m.Called(ctx, resource, payload)
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *mockGateway) Update(ctx context.Context, resource, id string, payload interface{}) (json.RawMessage, error) {
	args := m.Called(ctx, resource, id, payload)
	return args.Get(0).(json.RawMessage), args.Error(1)
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

func treatmentList(body string) *responses.ListResult {
	return &responses.ListResult{Data: json.RawMessage(body)}
}

func TestTreatmentLookup(t *testing.T) {
	ctx := context.Background()
	cfg := &config.InternalConfig{Cache: config.Cache{TreatmentTTL: time.Minute, TreatmentCronSpec: "@every 1m"}}

	t.Run("Caches Projection", func(t *testing.T) {
		gateway := new(mockGateway)
		gateway.On("List", mock.Anything, constvars.ResourceTreatments, requests.ListQuery{}).
			Return(treatmentList(`[{"_id":"t1","name":"Acne","slug":"acne"},{"_id":"t2","name":"Hair Loss"}]`), nil).Once()

		lookup := NewTreatmentLookup(gateway, redistest.NewRepository(t), cfg, zap.NewNop())

		options, err := lookup.Options(ctx)
		require.NoError(t, err)
		assert.Equal(t, []responses.TreatmentOption{{ID: "t1", Name: "Acne"}, {ID: "t2", Name: "Hair Loss"}}, options)

		_, err = lookup.Options(ctx)
		require.NoError(t, err)
		gateway.AssertNumberOfCalls(t, "List", 1)
	})

	t.Run("Exists Refreshes On Unknown ID", func(t *testing.T) {
		gateway := new(mockGateway)
		gateway.On("List", mock.Anything, constvars.ResourceTreatments, requests.ListQuery{}).
			Return(treatmentList(`[{"_id":"t1","name":"Acne"}]`), nil).Once()
		gateway.On("List", mock.Anything, constvars.ResourceTreatments, requests.ListQuery{}).
			Return(treatmentList(`[{"_id":"t1","name":"Acne"},{"_id":"t9","name":"New"}]`), nil).Once()

		lookup := NewTreatmentLookup(gateway, redistest.NewRepository(t), cfg, zap.NewNop())

		exists, err := lookup.Exists(ctx, "t1")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = lookup.Exists(ctx, "t9")
		require.NoError(t, err)
		assert.True(t, exists, "a treatment created after caching is still found")

		exists, err = lookup.Exists(ctx, "")
		require.NoError(t, err)
		assert.False(t, exists)
	})

	t.Run("Worker Refreshes Under Leader Lock", func(t *testing.T) {
		gateway := new(mockGateway)
		gateway.On("List", mock.Anything, constvars.ResourceTreatments, requests.ListQuery{}).
			Return(treatmentList(`[]`), nil).Once()

		repo := redistest.NewRepository(t)
		lookup := NewTreatmentLookup(gateway, repo, cfg, zap.NewNop())
		lockService := locker.NewLockService(repo, zap.NewNop())
		worker := NewWorker(zap.NewNop(), cfg, lockService, lookup)

		worker.runOnce(ctx)
		gateway.AssertNumberOfCalls(t, "List", 1)

		acquired, _, err := lockService.TryLock(ctx, constvars.RedisKeyTreatmentLeaderLock, time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired, "leader lock is released after the run")
	})
}
