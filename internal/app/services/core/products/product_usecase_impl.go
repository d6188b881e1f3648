package products

import (
	"context"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/app/services/shared/formsession"
	"mrchemist-admin-service/internal/app/services/shared/treatmentlookup"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/fieldarray"
	"mrchemist-admin-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type productSession = models.FormSession[models.Product]

type productUsecase struct {
	DraftStore      contracts.DraftStore[models.Product]
	Gateway         contracts.RemoteGateway
	Reconciler      contracts.AssetReconciler
	TreatmentLookup contracts.TreatmentLookup
	Notifications   contracts.NotificationService
	ListCache       contracts.ListCache
	Log             *zap.Logger
}

func NewProductUsecase(
	draftStore contracts.DraftStore[models.Product],
	gateway contracts.RemoteGateway,
	reconciler contracts.AssetReconciler,
	treatmentLookup contracts.TreatmentLookup,
	notifications contracts.NotificationService,
	listCache contracts.ListCache,
	logger *zap.Logger,
) ProductUsecase {
	return &productUsecase{
		DraftStore:      draftStore,
		Gateway:         gateway,
		Reconciler:      reconciler,
		TreatmentLookup: treatmentLookup,
		Notifications:   notifications,
		ListCache:       listCache,
		Log:             logger,
	}
}

func (uc *productUsecase) CreateDraft(ctx context.Context) (*responses.Draft, error) {
	uc.Log.Info("productUsecase.CreateDraft called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
	)

	session := models.NewFormSession(constvars.DraftKindProduct, utils.GetAdminID(ctx), models.NewProduct())
	if err := uc.DraftStore.Save(ctx, session); err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *productUsecase) EditDraft(ctx context.Context, productID string) (*responses.Draft, error) {
	uc.Log.Info("productUsecase.EditDraft called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingEntityIDKey, productID),
	)

	var product models.Product
	if err := uc.Gateway.FindByID(ctx, constvars.ResourceProducts, productID, &product); err != nil {
		return nil, err
	}
	product.Normalize()

	session := models.NewEditFormSession(constvars.DraftKindProduct, utils.GetAdminID(ctx), productID, product, product.Payload(), 0)
	if err := uc.DraftStore.Save(ctx, session); err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *productUsecase) FindDraft(ctx context.Context, draftID string) (*responses.Draft, error) {
	session, err := formsession.Load(ctx, uc.DraftStore, draftID)
	if err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func (uc *productUsecase) DiscardDraft(ctx context.Context, draftID string) error {
	return uc.DraftStore.WithLock(ctx, draftID, func() error {
		session, err := formsession.Load(ctx, uc.DraftStore, draftID)
		if err != nil {
			return err
		}
		if session.State == models.FormStateSubmitting {
			return formsession.TransitionError(&models.TransitionError{From: session.State, To: "discarded"})
		}
		return uc.DraftStore.Delete(ctx, draftID)
	})
}

func (uc *productUsecase) UpdateFields(ctx context.Context, draftID string, request *requests.UpdateProductFields) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *productSession) error {
		product := &session.Draft
		if request.Name != nil {
			product.Name = *request.Name
		}
		if request.Slug != nil {
			product.Slug = *request.Slug
		}
		if request.Description != nil {
			product.Description = *request.Description
		}
		if request.BasePrice != nil {
			product.BasePrice = *request.BasePrice
		}
		if request.ImageURLs != nil {
			product.ImageURLs = append([]string{}, (*request.ImageURLs)...)
		}
		if request.Treatment != nil {
			product.Treatment = *request.Treatment
		}
		if request.NeedConsultation != nil {
			product.NeedConsultation = *request.NeedConsultation
		}
		if request.IsActive != nil {
			product.IsActive = *request.IsActive
		}
		if request.MetaTitle != nil {
			product.MetaTitle = *request.MetaTitle
		}
		if request.MetaDescription != nil {
			product.MetaDescription = *request.MetaDescription
		}
		if request.OpenGraphImageURL != nil {
			product.OpenGraphImageURL = *request.OpenGraphImageURL
		}
		return nil
	})
}

func (uc *productUsecase) AppendElement(ctx context.Context, draftID, field string, raw json.RawMessage) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *productSession) error {
		product := &session.Draft
		if field == models.ProductArrayVariants {
			var variant models.Variant
			if err := json.Unmarshal(raw, &variant); err != nil {
				return exceptions.ErrCannotParseJSON(err)
			}
			product.Variants = fieldarray.Append(product.Variants, variant)
			return nil
		}

		list, err := stringArray(product, field)
		if err != nil {
			return err
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return exceptions.ErrCannotParseJSON(err)
		}
		*list = fieldarray.Append(*list, value)
		return nil
	})
}

func (uc *productUsecase) ReplaceElement(ctx context.Context, draftID, field string, index int, raw json.RawMessage) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *productSession) error {
		product := &session.Draft
		if field == models.ProductArrayVariants {
			var variant models.Variant
			if err := json.Unmarshal(raw, &variant); err != nil {
				return exceptions.ErrCannotParseJSON(err)
			}
			if err := fieldarray.Replace(product.Variants, index, variant); err != nil {
				return exceptions.ErrIndexOutOfRange(err, field)
			}
			return nil
		}

		list, err := stringArray(product, field)
		if err != nil {
			return err
		}
		var value string
		if err := json.Unmarshal(raw, &value); err != nil {
			return exceptions.ErrCannotParseJSON(err)
		}
		if err := fieldarray.Replace(*list, index, value); err != nil {
			return exceptions.ErrIndexOutOfRange(err, field)
		}
		return nil
	})
}

func (uc *productUsecase) RemoveElement(ctx context.Context, draftID, field string, index int) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *productSession) error {
		product := &session.Draft
		if field == models.ProductArrayVariants {
			variants, err := fieldarray.Remove(product.Variants, index)
			if err != nil {
				return exceptions.ErrIndexOutOfRange(err, field)
			}
			product.Variants = variants
			return nil
		}

		list, err := stringArray(product, field)
		if err != nil {
			return err
		}
		remaining, err := fieldarray.Remove(*list, index)
		if err != nil {
			return exceptions.ErrIndexOutOfRange(err, field)
		}
		*list = remaining
		return nil
	})
}

func (uc *productUsecase) MoveElement(ctx context.Context, draftID, field string, from, to int) (*responses.Draft, error) {
	return uc.edit(ctx, draftID, func(session *productSession) error {
		product := &session.Draft
		var err error
		if field == models.ProductArrayVariants {
			err = fieldarray.Move(product.Variants, from, to)
		} else {
			list, listErr := stringArray(product, field)
			if listErr != nil {
				return listErr
			}
			err = fieldarray.Move(*list, from, to)
		}
		if err != nil {
			return exceptions.ErrIndexOutOfRange(err, field)
		}
		return nil
	})
}

func (uc *productUsecase) Submit(ctx context.Context, draftID string, files []requests.StagedFile, openGraphImage *requests.StagedFile) (*responses.SubmitResult, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("productUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDraftIDKey, draftID),
		zap.Int(constvars.LoggingFileCountKey, len(files)),
	)

	session, response, err := formsession.Submit(ctx, uc.DraftStore, draftID, uc.validate, uc.sender(files, openGraphImage))
	if err != nil {
		if session != nil {
			uc.Log.Error("productUsecase.Submit error sending product",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingDraftIDKey, draftID),
				zap.Error(err),
			)
			uc.Notifications.Error(ctx, constvars.ResourceProducts, "Error", err)
		}
		return nil, err
	}

	message := constvars.CreateProductSuccessMessage
	entityID := session.EntityID
	if session.IsEditFlow() {
		message = constvars.UpdateProductSuccessMessage
		if session.Original != nil {
			uc.Reconciler.CleanupOrphans(ctx, constvars.ResourceProducts, session.Original.AssetURLs(), session.Draft.AssetURLs())
		}
	} else {
		entityID = gjson.GetBytes(response, "_id").String()
	}
	uc.Notifications.Success(ctx, constvars.ResourceProducts, "Success", message)
	uc.ListCache.Invalidate(ctx, constvars.ResourceProducts, entityID)

	return &responses.SubmitResult{Draft: *formsession.ToResponse(session), Response: response}, nil
}

func (uc *productUsecase) validate(ctx context.Context, session *productSession) ([]exceptions.FieldError, error) {
	fieldErrors, err := formsession.StructErrors(session.Draft)
	if err != nil {
		return nil, err
	}
	referenceErrors, err := treatmentlookup.CheckReference(ctx, uc.TreatmentLookup, session.Draft.Treatment)
	if err != nil {
		return nil, err
	}
	return append(fieldErrors, referenceErrors...), nil
}

// sender uploads the staged files as one batch, appends their URLs after the kept imageUrls and
// only then sends the product. Uploads of a batch whose product was refused are removed again.
func (uc *productUsecase) sender(files []requests.StagedFile, openGraphImage *requests.StagedFile) formsession.Sender[models.Product] {
	return func(ctx context.Context, session *productSession) (json.RawMessage, error) {
		staged := append([]requests.StagedFile{}, files...)
		if openGraphImage != nil {
			staged = append(staged, *openGraphImage)
		}

		uploaded, err := uc.Reconciler.UploadStaged(ctx, staged)
		if err != nil {
			return nil, err
		}
		product := &session.Draft
		product.ImageURLs = append(product.ImageURLs, uploaded[:len(files)]...)
		if openGraphImage != nil {
			product.OpenGraphImageURL = uploaded[len(files)]
		}

		var response json.RawMessage
		if session.IsEditFlow() {
			response, err = uc.Gateway.Update(ctx, constvars.ResourceProducts, session.EntityID, product.Payload())
		} else {
			response, err = uc.Gateway.Create(ctx, constvars.ResourceProducts, product.Payload())
		}
		if err != nil {
			uc.Reconciler.CleanupOrphans(ctx, constvars.ResourceProducts, uploaded, nil)
			return nil, err
		}
		return response, nil
	}
}

func (uc *productUsecase) edit(ctx context.Context, draftID string, mutate func(session *productSession) error) (*responses.Draft, error) {
	session, err := formsession.Edit(ctx, uc.DraftStore, draftID, mutate)
	if err != nil {
		return nil, err
	}
	return formsession.ToResponse(session), nil
}

func stringArray(product *models.Product, field string) (*[]string, error) {
	switch field {
	case models.ProductArrayKeyPoints:
		return &product.KeyPoints, nil
	case models.ProductArraySeoKeywords:
		return &product.SeoKeywords, nil
	}
	return nil, exceptions.ErrUnknownArrayField(nil, field)
}
