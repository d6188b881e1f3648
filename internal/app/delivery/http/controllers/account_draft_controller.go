package controllers

import (
	"context"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// accountDraftUsecase is the draft surface of the customer and user forms, which carry no files.
type accountDraftUsecase interface {
	CreateDraft(ctx context.Context) (*responses.Draft, error)
	EditDraft(ctx context.Context, entityID string) (*responses.Draft, error)
	FindDraft(ctx context.Context, draftID string) (*responses.Draft, error)
	DiscardDraft(ctx context.Context, draftID string) error
	Submit(ctx context.Context, draftID string) (*responses.SubmitResult, error)
}

type accountDraftController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	name           string
	entityParam    string
	createMessage  string
	updateMessage  string
	usecase        accountDraftUsecase
}

func (ctrl *accountDraftController) CreateDraft(w http.ResponseWriter, r *http.Request) {
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, ctrl.name+".CreateDraft", constvars.StatusCreated, constvars.CreateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.usecase.CreateDraft(ctx)
		})
}

func (ctrl *accountDraftController) EditDraft(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, ctrl.entityParam)
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, ctrl.name+".EditDraft", constvars.StatusCreated, constvars.CreateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.usecase.EditDraft(ctx, entityID)
		})
}

func (ctrl *accountDraftController) FindDraft(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, ctrl.name+".FindDraft", constvars.StatusOK, constvars.FindDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.usecase.FindDraft(ctx, draftID)
		})
}

func (ctrl *accountDraftController) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	ctrl.Log.Info(ctrl.name+".DiscardDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	if err := ctrl.usecase.DiscardDraft(ctx, draftID); err != nil {
		ctrl.Log.Error(ctrl.name+".DiscardDraft error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DiscardDraftSuccessMessage, nil)
}

func (ctrl *accountDraftController) Submit(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	ctrl.Log.Info(ctrl.name+".Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.usecase.Submit(ctx, draftID)
	if err != nil {
		ctrl.Log.Error(ctrl.name+".Submit error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, submitMessage(result, ctrl.createMessage, ctrl.updateMessage), result)
}
