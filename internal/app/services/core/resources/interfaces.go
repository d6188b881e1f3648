package resources

import (
	"context"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
)

// ResourceUsecase serves the generic list views and deletions shared by every resource.
type ResourceUsecase interface {
	List(ctx context.Context, resource string, query requests.ListQuery) (*responses.ListResult, error)
	Delete(ctx context.Context, resource, entityID string) error
	BatchDelete(ctx context.Context, resource string, request *requests.BatchDelete) error
	TreatmentOptions(ctx context.Context) ([]responses.TreatmentOption, error)
	Notifications(ctx context.Context) ([]models.Notification, error)
}
