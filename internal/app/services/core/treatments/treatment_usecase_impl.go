package treatments

import (
	"context"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

type treatmentUsecase struct {
	Gateway         contracts.RemoteGateway
	Reconciler      contracts.AssetReconciler
	TreatmentLookup contracts.TreatmentLookup
	Notifications   contracts.NotificationService
	ListCache       contracts.ListCache
	Log             *zap.Logger
}

func NewTreatmentUsecase(
	gateway contracts.RemoteGateway,
	reconciler contracts.AssetReconciler,
	treatmentLookup contracts.TreatmentLookup,
	notifications contracts.NotificationService,
	listCache contracts.ListCache,
	logger *zap.Logger,
) TreatmentUsecase {
	return &treatmentUsecase{
		Gateway:         gateway,
		Reconciler:      reconciler,
		TreatmentLookup: treatmentLookup,
		Notifications:   notifications,
		ListCache:       listCache,
		Log:             logger,
	}
}

func (uc *treatmentUsecase) Create(ctx context.Context, request *requests.TreatmentForm, logo *requests.StagedFile) (json.RawMessage, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("treatmentUsecase.Create called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := validateForm(request); err != nil {
		return nil, err
	}

	treatment := buildTreatment(request)
	uploaded, err := uc.uploadLogo(ctx, logo, &treatment)
	if err != nil {
		uc.Notifications.Error(ctx, constvars.ResourceTreatments, "Error", err)
		return nil, err
	}

	response, err := uc.Gateway.Create(ctx, constvars.ResourceTreatments, treatment)
	if err != nil {
		uc.Log.Error("treatmentUsecase.Create error creating treatment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		uc.Reconciler.CleanupOrphans(ctx, constvars.ResourceTreatments, uploaded, nil)
		uc.Notifications.Error(ctx, constvars.ResourceTreatments, "Error", err)
		return nil, err
	}

	uc.afterWrite(ctx, gjson.GetBytes(response, "_id").String(), constvars.CreateTreatmentSuccessMessage)
	return response, nil
}

// Update replaces the treatment. A new logo file wins over the logoUrl of the form, and the logo
// the treatment no longer points at is removed once the update went through.
func (uc *treatmentUsecase) Update(ctx context.Context, treatmentID string, request *requests.TreatmentForm, logo *requests.StagedFile) (json.RawMessage, error) {
	requestID := utils.GetRequestID(ctx)
	uc.Log.Info("treatmentUsecase.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEntityIDKey, treatmentID),
	)

	if err := validateForm(request); err != nil {
		return nil, err
	}

	var previous models.Treatment
	if err := uc.Gateway.FindByID(ctx, constvars.ResourceTreatments, treatmentID, &previous); err != nil {
		return nil, err
	}

	treatment := buildTreatment(request)
	uploaded, err := uc.uploadLogo(ctx, logo, &treatment)
	if err != nil {
		uc.Notifications.Error(ctx, constvars.ResourceTreatments, "Error", err)
		return nil, err
	}

	response, err := uc.Gateway.Update(ctx, constvars.ResourceTreatments, treatmentID, treatment)
	if err != nil {
		uc.Log.Error("treatmentUsecase.Update error updating treatment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEntityIDKey, treatmentID),
			zap.Error(err),
		)
		uc.Reconciler.CleanupOrphans(ctx, constvars.ResourceTreatments, uploaded, nil)
		uc.Notifications.Error(ctx, constvars.ResourceTreatments, "Error", err)
		return nil, err
	}

	uc.Reconciler.CleanupOrphans(ctx, constvars.ResourceTreatments, []string{previous.LogoURL}, []string{treatment.LogoURL})
	uc.afterWrite(ctx, treatmentID, constvars.UpdateTreatmentSuccessMessage)
	return response, nil
}

func (uc *treatmentUsecase) uploadLogo(ctx context.Context, logo *requests.StagedFile, treatment *models.Treatment) ([]string, error) {
	if logo == nil {
		return nil, nil
	}
	uploaded, err := uc.Reconciler.UploadStaged(ctx, []requests.StagedFile{*logo})
	if err != nil {
		return nil, err
	}
	treatment.LogoURL = uploaded[0]
	return uploaded, nil
}

func (uc *treatmentUsecase) afterWrite(ctx context.Context, treatmentID, message string) {
	uc.Notifications.Success(ctx, constvars.ResourceTreatments, "Success", message)
	uc.ListCache.Invalidate(ctx, constvars.ResourceTreatments, treatmentID)
	if _, err := uc.TreatmentLookup.Refresh(ctx); err != nil {
		uc.Log.Warn("treatmentUsecase.afterWrite error refreshing treatment options",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}

func validateForm(request *requests.TreatmentForm) error {
	err := utils.ValidateStruct(request)
	if err == nil {
		return nil
	}
	if fieldErrors := exceptions.CollectFieldErrors(err); fieldErrors != nil {
		return exceptions.ErrDraftValidation(fieldErrors)
	}
	return exceptions.ErrInputValidation(err)
}

func buildTreatment(request *requests.TreatmentForm) models.Treatment {
	isActive := true
	if request.IsActive != nil {
		isActive = *request.IsActive
	}
	return models.Treatment{
		Name:        request.Name,
		Slug:        request.Slug,
		Description: request.Description,
		IsActive:    isActive,
		LogoURL:     request.LogoURL,
		QuestionsID: request.QuestionsID,
	}
}
