package contracts

import (
	"context"
	"mrchemist-admin-service/internal/app/models"
)

type NotificationService interface {
	Success(ctx context.Context, resource, title, message string)
	Error(ctx context.Context, resource, title string, err error)
	Drain(ctx context.Context, adminID string) ([]models.Notification, error)
}
