package users

import (
	"context"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
)

type UserUsecase interface {
	CreateDraft(ctx context.Context) (*responses.Draft, error)
	EditDraft(ctx context.Context, userID string) (*responses.Draft, error)
	FindDraft(ctx context.Context, draftID string) (*responses.Draft, error)
	DiscardDraft(ctx context.Context, draftID string) error
	UpdateFields(ctx context.Context, draftID string, request *requests.UpdateUserFields) (*responses.Draft, error)
	Submit(ctx context.Context, draftID string) (*responses.SubmitResult, error)
}
