package controllers

import (
	"context"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/services/core/customers"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CustomerController struct {
	accountDraftController
	CustomerUsecase customers.CustomerUsecase
}

func NewCustomerController(logger *zap.Logger, customerUsecase customers.CustomerUsecase, internalConfig *config.InternalConfig) *CustomerController {
	return &CustomerController{
		accountDraftController: accountDraftController{
			Log:            logger,
			InternalConfig: internalConfig,
			name:           "CustomerController",
			entityParam:    constvars.URLParamCustomerID,
			createMessage:  constvars.CreateCustomerSuccessMessage,
			updateMessage:  constvars.UpdateCustomerSuccessMessage,
			usecase:        customerUsecase,
		},
		CustomerUsecase: customerUsecase,
	}
}

func (ctrl *CustomerController) UpdateFields(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	request := new(requests.UpdateCustomerFields)
	if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "CustomerController.UpdateFields", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.CustomerUsecase.UpdateFields(ctx, draftID, request)
		})
}
