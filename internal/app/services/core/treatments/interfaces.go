package treatments

import (
	"context"
	"mrchemist-admin-service/internal/pkg/dto/requests"

	"github.com/goccy/go-json"
)

// TreatmentUsecase writes treatments directly, without a draft. logo may be nil.
type TreatmentUsecase interface {
	Create(ctx context.Context, request *requests.TreatmentForm, logo *requests.StagedFile) (json.RawMessage, error)
	Update(ctx context.Context, treatmentID string, request *requests.TreatmentForm, logo *requests.StagedFile) (json.RawMessage, error)
}
