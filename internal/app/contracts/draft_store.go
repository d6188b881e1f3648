package contracts

import (
	"context"
	"mrchemist-admin-service/internal/app/models"
)

type DraftStore[T any] interface {
	Save(ctx context.Context, session *models.FormSession[T]) error
	Find(ctx context.Context, draftID string) (*models.FormSession[T], error)
	Delete(ctx context.Context, draftID string) error
	// WithLock runs fn while holding the single writer lock of the draft.
	WithLock(ctx context.Context, draftID string, fn func() error) error
}
