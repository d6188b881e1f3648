package consultations

import (
	"context"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
)

// ConsultationUsecase edits consultation drafts. Every operation names the draft and the indexes
// it works on explicitly.
type ConsultationUsecase interface {
	CreateDraft(ctx context.Context) (*responses.Draft, error)
	EditDraft(ctx context.Context, consultationID string) (*responses.Draft, error)
	FindDraft(ctx context.Context, draftID string) (*responses.Draft, error)
	DiscardDraft(ctx context.Context, draftID string) error
	UpdateHeader(ctx context.Context, draftID string, request *requests.UpdateConsultationHeader) (*responses.Draft, error)

	AddStep(ctx context.Context, draftID string) (*responses.Draft, error)
	UpdateStep(ctx context.Context, draftID string, stepIndex int, request *requests.UpdateStep) (*responses.Draft, error)
	RemoveStep(ctx context.Context, draftID string, stepIndex int) (*responses.Draft, error)
	MoveStep(ctx context.Context, draftID string, from, to int) (*responses.Draft, error)

	AddQuestion(ctx context.Context, draftID string, stepIndex int) (*responses.Draft, error)
	UpdateQuestion(ctx context.Context, draftID string, stepIndex, questionIndex int, request *requests.UpdateQuestion) (*responses.Draft, error)
	RemoveQuestion(ctx context.Context, draftID string, stepIndex, questionIndex int) (*responses.Draft, error)
	MoveQuestion(ctx context.Context, draftID string, stepIndex, from, to int) (*responses.Draft, error)
	SetConditionalBranch(ctx context.Context, draftID string, stepIndex, questionIndex int, branch, raw string) (*responses.Draft, error)

	AddOption(ctx context.Context, draftID string, stepIndex, questionIndex int) (*responses.Draft, error)
	UpdateOption(ctx context.Context, draftID string, stepIndex, questionIndex, optionIndex int, request *requests.UpdateOption) (*responses.Draft, error)
	RemoveOption(ctx context.Context, draftID string, stepIndex, questionIndex, optionIndex int) (*responses.Draft, error)
	MoveOption(ctx context.Context, draftID string, stepIndex, questionIndex, from, to int) (*responses.Draft, error)

	Submit(ctx context.Context, draftID string) (*responses.SubmitResult, error)
}
