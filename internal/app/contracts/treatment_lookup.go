package contracts

import (
	"context"
	"mrchemist-admin-service/internal/pkg/dto/responses"
)

type TreatmentLookup interface {
	Options(ctx context.Context) ([]responses.TreatmentOption, error)
	Exists(ctx context.Context, treatmentID string) (bool, error)
	Refresh(ctx context.Context) ([]responses.TreatmentOption, error)
}
