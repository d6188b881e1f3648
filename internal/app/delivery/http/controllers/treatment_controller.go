package controllers

import (
	"context"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/services/core/treatments"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type TreatmentController struct {
	Log              *zap.Logger
	TreatmentUsecase treatments.TreatmentUsecase
	InternalConfig   *config.InternalConfig
}

func NewTreatmentController(logger *zap.Logger, treatmentUsecase treatments.TreatmentUsecase, internalConfig *config.InternalConfig) *TreatmentController {
	return &TreatmentController{
		Log:              logger,
		TreatmentUsecase: treatmentUsecase,
		InternalConfig:   internalConfig,
	}
}

func (ctrl *TreatmentController) Create(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	ctrl.Log.Info("TreatmentController.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request, logo, err := ctrl.readTreatmentForm(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.TreatmentUsecase.Create(ctx, request, logo)
	if err != nil {
		ctrl.Log.Error("TreatmentController.Create error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateTreatmentSuccessMessage, result)
}

func (ctrl *TreatmentController) Update(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	treatmentID := chi.URLParam(r, constvars.URLParamTreatmentID)
	ctrl.Log.Info("TreatmentController.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, treatmentID),
	)

	request, logo, err := ctrl.readTreatmentForm(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.TreatmentUsecase.Update(ctx, treatmentID, request, logo)
	if err != nil {
		ctrl.Log.Error("TreatmentController.Update error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateTreatmentSuccessMessage, result)
}

// readTreatmentForm accepts either a JSON body or a multipart body carrying the JSON payload and
// an optional logo file.
func (ctrl *TreatmentController) readTreatmentForm(r *http.Request) (*requests.TreatmentForm, *requests.StagedFile, error) {
	request := new(requests.TreatmentForm)

	if !strings.HasPrefix(r.Header.Get(constvars.HeaderContentType), constvars.MIMEMultipartForm) {
		if err := decodeJSONBody(r, request); err != nil {
			return nil, nil, err
		}
		return request, nil, nil
	}

	if err := parseMultipart(r, ctrl.InternalConfig); err != nil {
		return nil, nil, err
	}

	payload := r.FormValue(constvars.FormFieldPayload)
	if payload == "" {
		return nil, nil, exceptions.ErrMissingFormField(nil, constvars.FormFieldPayload)
	}
	if err := json.Unmarshal([]byte(payload), request); err != nil {
		return nil, nil, exceptions.ErrCannotParseJSON(err)
	}

	logo, err := utils.ReadOptionalStagedFile(r.MultipartForm, constvars.FormFieldFile, maxUploadSizeInMB(ctrl.InternalConfig))
	if err != nil {
		return nil, nil, err
	}
	return request, logo, nil
}
