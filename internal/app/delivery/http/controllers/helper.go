package controllers

import (
	"context"
	"errors"
	"io"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const defaultRequestTimeout = 10 * time.Second

func requestTimeout(internalConfig *config.InternalConfig) time.Duration {
	if internalConfig == nil || internalConfig.App.RequestTimeoutInSeconds <= 0 {
		return defaultRequestTimeout
	}
	return time.Duration(internalConfig.App.RequestTimeoutInSeconds) * time.Second
}

func maxUploadSizeInMB(internalConfig *config.InternalConfig) int {
	if internalConfig == nil {
		return 0
	}
	return internalConfig.AssetHost.MaxUploadSizeInMB
}

func buildUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

// indexParams reads the named chi params as non-negative indexes, in order.
func indexParams(r *http.Request, names ...string) ([]int, error) {
	indexes := make([]int, 0, len(names))
	for _, name := range names {
		index, err := utils.ParseIndexParam(chi.URLParam(r, name))
		if err != nil {
			return nil, exceptions.ErrURLParamValidation(err, name)
		}
		indexes = append(indexes, index)
	}
	return indexes, nil
}

// decodeJSONBody treats an empty body as an empty object.
func decodeJSONBody(r *http.Request, dst interface{}) error {
	if r.Body == nil {
		return nil
	}
	err := json.NewDecoder(r.Body).Decode(dst)
	if err != nil && !errors.Is(err, io.EOF) {
		return exceptions.ErrCannotParseJSON(err)
	}
	return nil
}

func decodeMoveTarget(r *http.Request) (int, error) {
	request := new(requests.MoveElement)
	if err := decodeJSONBody(r, request); err != nil {
		return 0, err
	}
	if err := utils.ValidateStruct(request); err != nil {
		return 0, exceptions.ErrInputValidation(err)
	}
	return *request.To, nil
}

type draftOperation func(ctx context.Context) (*responses.Draft, error)

// serveDraft runs a draft operation under the request timeout and writes the resulting draft.
func serveDraft(log *zap.Logger, internalConfig *config.InternalConfig, w http.ResponseWriter, r *http.Request, name string, status int, message string, operation draftOperation) {
	requestID := utils.GetRequestID(r.Context())
	log.Info(name+" called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, chi.URLParam(r, constvars.URLParamDraftID)),
	)

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout(internalConfig))
	defer cancel()

	draft, err := operation(ctx)
	if err != nil {
		log.Error(name+" error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, status, message, draft)
}

func submitMessage(result *responses.SubmitResult, createMessage, updateMessage string) string {
	if result != nil && result.Draft.EntityID != "" {
		return updateMessage
	}
	return createMessage
}

func parseMultipart(r *http.Request, internalConfig *config.InternalConfig) error {
	limit := int64(32 << 20)
	if internalConfig != nil && internalConfig.App.RequestBodyLimitInMegabyte > 0 {
		limit = int64(internalConfig.App.RequestBodyLimitInMegabyte) << 20
	}
	if err := r.ParseMultipartForm(limit); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return exceptions.ErrCannotParseMultipartForm(err)
	}
	return nil
}
