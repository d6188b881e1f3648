package notifications

import (
	"context"
	"errors"
	"testing"
	"time"

	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/services/shared/redis/redistest"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/exceptions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNotificationService(t *testing.T) {
	cfg := &config.InternalConfig{Cache: config.Cache{NotificationTTL: time.Hour}}
	service := NewNotificationService(redistest.NewRepository(t), cfg, zap.NewNop())

	adminCtx := context.WithValue(context.Background(), constvars.CONTEXT_ADMIN_ID_KEY, "admin-1")
	otherCtx := context.WithValue(context.Background(), constvars.CONTEXT_ADMIN_ID_KEY, "admin-2")

	service.Success(adminCtx, constvars.ResourceProducts, "Success", constvars.UpdateProductSuccessMessage)
	service.Error(adminCtx, constvars.ResourceProducts, "Error", exceptions.ErrAssetUpload(errors.New("timeout"), "a.png"))
	service.Error(otherCtx, constvars.ResourceBlogs, "Error", errors.New("plain failure"))

	t.Run("Drains In Order For One Admin", func(t *testing.T) {
		items, err := service.Drain(adminCtx, "admin-1")
		require.NoError(t, err)
		require.Len(t, items, 2)

		assert.Equal(t, constvars.NotificationLevelSuccess, items[0].Level)
		assert.Equal(t, constvars.UpdateProductSuccessMessage, items[0].Message)
		assert.Equal(t, constvars.NotificationLevelError, items[1].Level)
		assert.Equal(t, constvars.ErrClientUploadFailed, items[1].Message, "custom errors surface their client message")
		assert.NotEmpty(t, items[0].ID)
	})

	t.Run("Drain Empties The Queue", func(t *testing.T) {
		items, err := service.Drain(adminCtx, "admin-1")
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("Admins Are Isolated", func(t *testing.T) {
		items, err := service.Drain(otherCtx, "admin-2")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "plain failure", items[0].Message)
	})
}
