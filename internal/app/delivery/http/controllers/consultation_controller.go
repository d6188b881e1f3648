package controllers

import (
	"context"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/services/core/consultations"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ConsultationController struct {
	Log                 *zap.Logger
	ConsultationUsecase consultations.ConsultationUsecase
	InternalConfig      *config.InternalConfig
}

func NewConsultationController(logger *zap.Logger, consultationUsecase consultations.ConsultationUsecase, internalConfig *config.InternalConfig) *ConsultationController {
	return &ConsultationController{
		Log:                 logger,
		ConsultationUsecase: consultationUsecase,
		InternalConfig:      internalConfig,
	}
}

func (ctrl *ConsultationController) CreateDraft(w http.ResponseWriter, r *http.Request) {
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.CreateDraft", constvars.StatusCreated, constvars.CreateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.CreateDraft(ctx)
		})
}

func (ctrl *ConsultationController) EditDraft(w http.ResponseWriter, r *http.Request) {
	consultationID := chi.URLParam(r, constvars.URLParamConsultationID)
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.EditDraft", constvars.StatusCreated, constvars.CreateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.EditDraft(ctx, consultationID)
		})
}

func (ctrl *ConsultationController) FindDraft(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.FindDraft", constvars.StatusOK, constvars.FindDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.FindDraft(ctx, draftID)
		})
}

func (ctrl *ConsultationController) DiscardDraft(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	ctrl.Log.Info("ConsultationController.DiscardDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	if err := ctrl.ConsultationUsecase.DiscardDraft(ctx, draftID); err != nil {
		ctrl.Log.Error("ConsultationController.DiscardDraft error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DiscardDraftSuccessMessage, nil)
}

func (ctrl *ConsultationController) UpdateHeader(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	request := new(requests.UpdateConsultationHeader)
	if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.UpdateHeader", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.UpdateHeader(ctx, draftID, request)
		})
}

func (ctrl *ConsultationController) AddStep(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.AddStep", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.AddStep(ctx, draftID)
		})
}

func (ctrl *ConsultationController) UpdateStep(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	indexes, err := indexParams(r, constvars.URLParamStepIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request := new(requests.UpdateStep)
	if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.UpdateStep", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.UpdateStep(ctx, draftID, indexes[0], request)
		})
}

func (ctrl *ConsultationController) RemoveStep(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	indexes, err := indexParams(r, constvars.URLParamStepIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.RemoveStep", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.RemoveStep(ctx, draftID, indexes[0])
		})
}

func (ctrl *ConsultationController) MoveStep(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	indexes, err := indexParams(r, constvars.URLParamStepIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	to, err := decodeMoveTarget(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.MoveStep", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.MoveStep(ctx, draftID, indexes[0], to)
		})
}

func (ctrl *ConsultationController) AddQuestion(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	indexes, err := indexParams(r, constvars.URLParamStepIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.AddQuestion", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.AddQuestion(ctx, draftID, indexes[0])
		})
}

func (ctrl *ConsultationController) UpdateQuestion(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	indexes, err := indexParams(r, constvars.URLParamStepIndex, constvars.URLParamQuestionIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request := new(requests.UpdateQuestion)
	if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.UpdateQuestion", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.UpdateQuestion(ctx, draftID, indexes[0], indexes[1], request)
		})
}

func (ctrl *ConsultationController) RemoveQuestion(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	indexes, err := indexParams(r, constvars.URLParamStepIndex, constvars.URLParamQuestionIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.RemoveQuestion", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.RemoveQuestion(ctx, draftID, indexes[0], indexes[1])
		})
}

func (ctrl *ConsultationController) MoveQuestion(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	indexes, err := indexParams(r, constvars.URLParamStepIndex, constvars.URLParamQuestionIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	to, err := decodeMoveTarget(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.MoveQuestion", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.MoveQuestion(ctx, draftID, indexes[0], indexes[1], to)
		})
}

func (ctrl *ConsultationController) SetConditionalBranch(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	branch := chi.URLParam(r, constvars.URLParamBranch)
	indexes, err := indexParams(r, constvars.URLParamStepIndex, constvars.URLParamQuestionIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request := new(requests.SetConditionalBranch)
	if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.SetConditionalBranch", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.SetConditionalBranch(ctx, draftID, indexes[0], indexes[1], branch, request.Raw)
		})
}

func (ctrl *ConsultationController) AddOption(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	indexes, err := indexParams(r, constvars.URLParamStepIndex, constvars.URLParamQuestionIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.AddOption", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.AddOption(ctx, draftID, indexes[0], indexes[1])
		})
}

func (ctrl *ConsultationController) UpdateOption(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	indexes, err := indexParams(r, constvars.URLParamStepIndex, constvars.URLParamQuestionIndex, constvars.URLParamOptionIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	request := new(requests.UpdateOption)
	if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.UpdateOption", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.UpdateOption(ctx, draftID, indexes[0], indexes[1], indexes[2], request)
		})
}

func (ctrl *ConsultationController) RemoveOption(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	indexes, err := indexParams(r, constvars.URLParamStepIndex, constvars.URLParamQuestionIndex, constvars.URLParamOptionIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.RemoveOption", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.RemoveOption(ctx, draftID, indexes[0], indexes[1], indexes[2])
		})
}

func (ctrl *ConsultationController) MoveOption(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	indexes, err := indexParams(r, constvars.URLParamStepIndex, constvars.URLParamQuestionIndex, constvars.URLParamOptionIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	to, err := decodeMoveTarget(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ConsultationController.MoveOption", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ConsultationUsecase.MoveOption(ctx, draftID, indexes[0], indexes[1], indexes[2], to)
		})
}

func (ctrl *ConsultationController) Submit(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	ctrl.Log.Info("ConsultationController.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.ConsultationUsecase.Submit(ctx, draftID)
	if err != nil {
		ctrl.Log.Error("ConsultationController.Submit error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	message := submitMessage(result, constvars.CreateConsultationSuccessMessage, constvars.UpdateConsultationSuccessMessage)
	utils.BuildSuccessResponse(w, constvars.StatusOK, message, result)
}
