package contracts

import (
	"context"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
)

type ListCache interface {
	Get(ctx context.Context, resource string, query requests.ListQuery) (*responses.ListResult, bool, error)
	Put(ctx context.Context, resource string, query requests.ListQuery, result *responses.ListResult) error
	// Invalidate drops every cached page of resource and broadcasts the change.
	Invalidate(ctx context.Context, resource string, entityIDs ...string)
}

type InvalidationPublisher interface {
	Publish(ctx context.Context, event models.ListInvalidation) error
}
