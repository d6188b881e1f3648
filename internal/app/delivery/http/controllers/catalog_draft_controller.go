package controllers

import (
	"context"
	"io"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// catalogDraftUsecase is the draft surface products and blogs share.
type catalogDraftUsecase interface {
	CreateDraft(ctx context.Context) (*responses.Draft, error)
	EditDraft(ctx context.Context, entityID string) (*responses.Draft, error)
	FindDraft(ctx context.Context, draftID string) (*responses.Draft, error)
	DiscardDraft(ctx context.Context, draftID string) error
	AppendElement(ctx context.Context, draftID, field string, raw json.RawMessage) (*responses.Draft, error)
	ReplaceElement(ctx context.Context, draftID, field string, index int, raw json.RawMessage) (*responses.Draft, error)
	RemoveElement(ctx context.Context, draftID, field string, index int) (*responses.Draft, error)
	MoveElement(ctx context.Context, draftID, field string, from, to int) (*responses.Draft, error)
	Submit(ctx context.Context, draftID string, files []requests.StagedFile, openGraphImage *requests.StagedFile) (*responses.SubmitResult, error)
}

// catalogDraftController holds the handlers ProductController and BlogController have in common.
type catalogDraftController struct {
	Log            *zap.Logger
	InternalConfig *config.InternalConfig
	name           string
	entityParam    string
	createMessage  string
	updateMessage  string
	usecase        catalogDraftUsecase
}

func (ctrl *catalogDraftController) CreateDraft(w http.ResponseWriter, r *http.Request) {
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, ctrl.name+".CreateDraft", constvars.StatusCreated, constvars.CreateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.usecase.CreateDraft(ctx)
		})
}

func (ctrl *catalogDraftController) EditDraft(w http.ResponseWriter, r *http.Request) {
	entityID := chi.URLParam(r, ctrl.entityParam)
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, ctrl.name+".EditDraft", constvars.StatusCreated, constvars.CreateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.usecase.EditDraft(ctx, entityID)
		})
}

func (ctrl *catalogDraftController) FindDraft(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, ctrl.name+".FindDraft", constvars.StatusOK, constvars.FindDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.usecase.FindDraft(ctx, draftID)
		})
}

func (ctrl *catalogDraftController) DiscardDraft(w http.ResponseWriter, r *http.Request) {
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

func (ctrl *catalogDraftController) AppendElement(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	field := chi.URLParam(r, constvars.URLParamField)
	raw, err := readRawElement(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, ctrl.name+".AppendElement", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.usecase.AppendElement(ctx, draftID, field, raw)
		})
}

func (ctrl *catalogDraftController) ReplaceElement(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	field := chi.URLParam(r, constvars.URLParamField)
	indexes, err := indexParams(r, constvars.URLParamIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	raw, err := readRawElement(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, ctrl.name+".ReplaceElement", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.usecase.ReplaceElement(ctx, draftID, field, indexes[0], raw)
		})
}

func (ctrl *catalogDraftController) RemoveElement(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	field := chi.URLParam(r, constvars.URLParamField)
	indexes, err := indexParams(r, constvars.URLParamIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, ctrl.name+".RemoveElement", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.usecase.RemoveElement(ctx, draftID, field, indexes[0])
		})
}

func (ctrl *catalogDraftController) MoveElement(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	field := chi.URLParam(r, constvars.URLParamField)
	indexes, err := indexParams(r, constvars.URLParamIndex)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	to, err := decodeMoveTarget(r)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, ctrl.name+".MoveElement", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.usecase.MoveElement(ctx, draftID, field, indexes[0], to)
		})
}

// Submit accepts multipart files and openGraphImageFile next to the draft id. A plain request
// without a multipart body submits without uploads.
func (ctrl *catalogDraftController) Submit(w http.ResponseWriter, r *http.Request) {
	requestID := utils.GetRequestID(r.Context())
	draftID := chi.URLParam(r, constvars.URLParamDraftID)

	if err := parseMultipart(r, ctrl.InternalConfig); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	files, err := utils.ReadStagedFiles(r.MultipartForm, constvars.FormFieldFiles, maxUploadSizeInMB(ctrl.InternalConfig))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	openGraphImage, err := utils.ReadOptionalStagedFile(r.MultipartForm, constvars.FormFieldOpenGraphImageFile, maxUploadSizeInMB(ctrl.InternalConfig))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info(ctrl.name+".Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
		zap.Int(constvars.LoggingFileCountKey, len(files)),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(ctrl.InternalConfig))
	defer cancel()

	result, err := ctrl.usecase.Submit(ctx, draftID, files, openGraphImage)
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

// readRawElement returns the request body as one JSON value for the array editors.
func readRawElement(r *http.Request) (json.RawMessage, error) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, exceptions.ErrReadBody(err)
	}
	if !json.Valid(body) {
		return nil, exceptions.ErrCannotParseJSON(nil)
	}
	return json.RawMessage(body), nil
}
