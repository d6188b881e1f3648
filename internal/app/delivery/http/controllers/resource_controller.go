package controllers

import (
	"context"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/services/core/resources"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ResourceController struct {
	Log             *zap.Logger
	ResourceUsecase resources.ResourceUsecase
	InternalConfig  *config.InternalConfig
}

func NewResourceController(logger *zap.Logger, resourceUsecase resources.ResourceUsecase, internalConfig *config.InternalConfig) *ResourceController {
	return &ResourceController{
		Log:             logger,
		ResourceUsecase: resourceUsecase,
		InternalConfig:  internalConfig,
	}
}

func (ctrl *ResourceController) List(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	resource := chi.URLParam(r, constvars.URLParamResource)
	query := utils.BuildListQuery(r)
	ctrl.Log.Info("ResourceController.List called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceKey, resource),
		zap.String(constvars.LoggingQueryKey, r.URL.RawQuery),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.ResourceUsecase.List(ctx, resource, query)
	if err != nil {
		ctrl.Log.Error("ResourceController.List error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponseWithMeta(w, constvars.StatusOK, constvars.FindResourcesSuccessMessage, result.Meta, result.Data)
}

func (ctrl *ResourceController) Delete(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	resource := chi.URLParam(r, constvars.URLParamResource)
	entityID := chi.URLParam(r, constvars.URLParamEntityID)
	ctrl.Log.Info("ResourceController.Delete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceKey, resource),
		zap.String(constvars.LoggingEntityIDKey, entityID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	if err := ctrl.ResourceUsecase.Delete(ctx, resource, entityID); err != nil {
		ctrl.Log.Error("ResourceController.Delete error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteResourceSuccessMessage, nil)
}

func (ctrl *ResourceController) BatchDelete(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	resource := chi.URLParam(r, constvars.URLParamResource)
	ctrl.Log.Info("ResourceController.BatchDelete called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingResourceKey, resource),
	)

	request := new(requests.BatchDelete)
	if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	if err := ctrl.ResourceUsecase.BatchDelete(ctx, resource, request); err != nil {
		ctrl.Log.Error("ResourceController.BatchDelete error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.BatchDeleteResourceSuccessMessage, nil)
}

func (ctrl *ResourceController) TreatmentOptions(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ResourceController.TreatmentOptions called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.ResourceUsecase.TreatmentOptions(ctx)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindTreatmentOptionsSuccess, result)
}

func (ctrl *ResourceController) Notifications(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("ResourceController.Notifications called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAdminIDKey, utils.GetAdminID(r.Context())),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.ResourceUsecase.Notifications(ctx)
	if err != nil {
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.FindNotificationsSuccessMessage, result)
}
