package notifications

import (
	"context"
	"errors"
	"fmt"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type notificationService struct {
	redisRepo contracts.RedisRepository
	ttl       time.Duration
	Log       *zap.Logger
}

func NewNotificationService(redisRepo contracts.RedisRepository, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.NotificationService {
	return &notificationService{
		redisRepo: redisRepo,
		ttl:       internalConfig.Cache.NotificationTTL,
		Log:       logger,
	}
}

func (s *notificationService) Success(ctx context.Context, resource, title, message string) {
	s.push(ctx, models.Notification{
		Level:    constvars.NotificationLevelSuccess,
		Title:    title,
		Message:  message,
		Resource: resource,
	})
}

// Error shows the client facing message of err when it carries one.
func (s *notificationService) Error(ctx context.Context, resource, title string, err error) {
	message := constvars.ErrClientSomethingWrongWithApplication
	var customErr *exceptions.CustomError
	if errors.As(err, &customErr) {
		message = customErr.ClientMessage
	} else if err != nil {
		message = err.Error()
	}

	s.push(ctx, models.Notification{
		Level:    constvars.NotificationLevelError,
		Title:    title,
		Message:  message,
		Resource: resource,
	})
}

func (s *notificationService) Drain(ctx context.Context, adminID string) ([]models.Notification, error) {
	values, err := s.redisRepo.DrainList(ctx, s.key(adminID))
	if err != nil {
		return nil, err
	}

	notifications := make([]models.Notification, 0, len(values))
	for _, value := range values {
		var notification models.Notification
		if err := json.Unmarshal([]byte(value), &notification); err != nil {
			s.Log.Warn("notificationService.Drain skipping malformed notification",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
				zap.Error(err),
			)
			continue
		}
		notifications = append(notifications, notification)
	}
	return notifications, nil
}

// push never fails the caller: a lost toast is logged and dropped.
func (s *notificationService) push(ctx context.Context, notification models.Notification) {
	notification.ID = uuid.NewString()
	notification.CreatedAt = time.Now().UTC()
	adminID := utils.GetAdminID(ctx)

	value, err := json.Marshal(notification)
	if err != nil {
		s.Log.Error("notificationService.push error marshaling notification", zap.Error(err))
		return
	}

	key := s.key(adminID)
	if err := s.redisRepo.PushToList(ctx, key, string(value)); err != nil {
		s.Log.Error("notificationService.push error pushing notification",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.String(constvars.LoggingAdminIDKey, adminID),
			zap.Error(err),
		)
		return
	}
	if s.ttl > 0 {
		if err := s.redisRepo.Expire(ctx, key, s.ttl); err != nil {
			s.Log.Warn("notificationService.push error setting expiry", zap.Error(err))
		}
	}
}

func (s *notificationService) key(adminID string) string {
	return fmt.Sprintf(constvars.RedisKeyNotificationsFormat, adminID)
}
