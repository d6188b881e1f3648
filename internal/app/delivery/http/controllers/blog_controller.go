package controllers

import (
	"context"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/services/core/blogs"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type BlogController struct {
	catalogDraftController
	BlogUsecase blogs.BlogUsecase
}

func NewBlogController(logger *zap.Logger, blogUsecase blogs.BlogUsecase, internalConfig *config.InternalConfig) *BlogController {
	return &BlogController{
		catalogDraftController: catalogDraftController{
			Log:            logger,
			InternalConfig: internalConfig,
			name:           "BlogController",
			entityParam:    constvars.URLParamBlogID,
			createMessage:  constvars.CreateBlogSuccessMessage,
			updateMessage:  constvars.UpdateBlogSuccessMessage,
			usecase:        blogUsecase,
		},
		BlogUsecase: blogUsecase,
	}
}

func (ctrl *BlogController) UpdateFields(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	request := new(requests.UpdateBlogFields)
	if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "BlogController.UpdateFields", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.BlogUsecase.UpdateFields(ctx, draftID, request)
		})
}
