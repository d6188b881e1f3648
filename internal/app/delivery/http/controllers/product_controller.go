package controllers

import (
	"context"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/services/core/products"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ProductController struct {
	catalogDraftController
	ProductUsecase products.ProductUsecase
}

func NewProductController(logger *zap.Logger, productUsecase products.ProductUsecase, internalConfig *config.InternalConfig) *ProductController {
	return &ProductController{
		catalogDraftController: catalogDraftController{
			Log:            logger,
			InternalConfig: internalConfig,
			name:           "ProductController",
			entityParam:    constvars.URLParamProductID,
			createMessage:  constvars.CreateProductSuccessMessage,
			updateMessage:  constvars.UpdateProductSuccessMessage,
			usecase:        productUsecase,
		},
		ProductUsecase: productUsecase,
	}
}

func (ctrl *ProductController) UpdateFields(w http.ResponseWriter, r *http.Request) {
	draftID := chi.URLParam(r, constvars.URLParamDraftID)
	request := new(requests.UpdateProductFields)
	if err := decodeJSONBody(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	serveDraft(ctrl.Log, ctrl.InternalConfig, w, r, "ProductController.UpdateFields", constvars.StatusOK, constvars.UpdateDraftSuccessMessage,
		func(ctx context.Context) (*responses.Draft, error) {
			return ctrl.ProductUsecase.UpdateFields(ctx, draftID, request)
		})
}
