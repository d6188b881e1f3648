package controllers

import (
	"context"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/services/core/users"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type UserController struct {
	accountDraftController
	UserUsecase users.UserUsecase
}

func NewUserController(logger *zap.Logger, userUsecase users.UserUsecase, internalConfig *config.InternalConfig) *UserController {
	return &UserController{
		accountDraftController: accountDraftController{
			Log:            logger,
			InternalConfig: internalConfig,
			name:           "UserController",
			entityParam:    constvars.URLParamUserID,
			createMessage:  constvars.CreateUserSuccessMessage,
			updateMessage:  constvars.UpdateUserSuccessMessage,
			usecase:        userUsecase,
		},
		UserUsecase: userUsecase,
	}
}

func (ctrl *UserController) UpdateFields(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	request := new(requests.UpdateUserFields)
	if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "UserController.UpdateFields", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.UserUsecase.UpdateFields(ctx, draftID, request)
		})
}
