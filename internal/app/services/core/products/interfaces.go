package products

import (
	"context"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"

	"github.com/goccy/go-json"
)

type ProductUsecase interface {
	CreateDraft(ctx context.Context) (*responses.Draft, error)
	EditDraft(ctx context.Context, productID string) (*responses.Draft, error)
	FindDraft(ctx context.Context, draftID string) (*responses.Draft, error)
	DiscardDraft(ctx context.Context, draftID string) error
	UpdateFields(ctx context.Context, draftID string, request *requests.UpdateProductFields) (*responses.Draft, error)
	AppendElement(ctx context.Context, draftID, field string, raw json.RawMessage) (*responses.Draft, error)
	ReplaceElement(ctx context.Context, draftID, field string, index int, raw json.RawMessage) (*responses.Draft, error)
	RemoveElement(ctx context.Context, draftID, field string, index int) (*responses.Draft, error)
	MoveElement(ctx context.Context, draftID, field string, from, to int) (*responses.Draft, error)
	// Submit uploads files and openGraphImage before sending the product. openGraphImage may be nil.
	Submit(ctx context.Context, draftID string, files []requests.StagedFile, openGraphImage *requests.StagedFile) (*responses.SubmitResult, error)
}
