package resources

import (
	"context"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/app/models"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type resourceUsecase struct {
	Gateway         contracts.RemoteGateway
	ListCache       contracts.ListCache
	TreatmentLookup contracts.TreatmentLookup
	Notifier        contracts.NotificationService
	Log             *zap.Logger
}

func NewResourceUsecase(
	gateway contracts.RemoteGateway,
	listCache contracts.ListCache,
	treatmentLookup contracts.TreatmentLookup,
	notifier contracts.NotificationService,
	logger *zap.Logger,
) ResourceUsecase {
	return &resourceUsecase{
		Gateway:         gateway,
		ListCache:       listCache,
		TreatmentLookup: treatmentLookup,
		Notifier:        notifier,
		Log:             logger,
	}
}

// List serves a page from the cache and falls back to the remote API. Cache failures never fail
// the request.
func (uc *resourceUsecase) List(ctx context.Context, resource string, query requests.ListQuery) (*responses.ListResult, error) {
	requestID := utils.GetRequestID(ctx)
	if !constvars.ListableResources[resource] {
		return nil, exceptions.ErrUnknownResource(nil, resource)
	}

	cached, found, err := uc.ListCache.Get(ctx, resource, query)
	if err != nil {
		uc.Log.Warn("resourceUsecase.List cache unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceKey, resource),
			zap.Error(err),
		)
	}
	if found {
		uc.Log.Debug("resourceUsecase.List cache hit",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceKey, resource),
		)
		return cached, nil
	}

	result, err := uc.Gateway.List(ctx, resource, query)
	if err != nil {
		return nil, err
	}
	if err := uc.ListCache.Put(ctx, resource, query, result); err != nil {
		uc.Log.Warn("resourceUsecase.List error caching page",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingResourceKey, resource),
			zap.Error(err),
		)
	}
	return result, nil
}

func (uc *resourceUsecase) Delete(ctx context.Context, resource, entityID string) error {
	uc.Log.Info("resourceUsecase.Delete called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingResourceKey, resource),
		zap.String(constvars.LoggingEntityIDKey, entityID),
	)
	if !constvars.ListableResources[resource] {
		return exceptions.ErrUnknownResource(nil, resource)
	}

	if err := uc.Gateway.Delete(ctx, resource, entityID); err != nil {
		uc.Notifier.Error(ctx, resource, "Error", err)
		return err
	}
	uc.afterDelete(ctx, resource, entityID)
	uc.Notifier.Success(ctx, resource, "Success", constvars.DeleteResourceSuccessMessage)
	return nil
}

func (uc *resourceUsecase) BatchDelete(ctx context.Context, resource string, request *requests.BatchDelete) error {
	uc.Log.Info("resourceUsecase.BatchDelete called",
		zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
		zap.String(constvars.LoggingResourceKey, resource),
		zap.Int(constvars.LoggingCountKey, len(request.IDs)),
	)
	if !constvars.ListableResources[resource] {
		return exceptions.ErrUnknownResource(nil, resource)
	}
	if err := utils.ValidateStruct(request); err != nil {
		return exceptions.ErrInputValidation(err)
	}

	if err := uc.Gateway.BatchDelete(ctx, resource, request.IDs); err != nil {
		uc.Notifier.Error(ctx, resource, "Error", err)
		return err
	}
	uc.afterDelete(ctx, resource, request.IDs...)
	uc.Notifier.Success(ctx, resource, "Success", constvars.BatchDeleteResourceSuccessMessage)
	return nil
}

// afterDelete drops cached pages, and for treatments also the cached options so a deleted
// treatment stops passing reference checks.
func (uc *resourceUsecase) afterDelete(ctx context.Context, resource string, entityIDs ...string) {
	uc.ListCache.Invalidate(ctx, resource, entityIDs...)
	if resource != constvars.ResourceTreatments {
		return
	}
	if _, err := uc.TreatmentLookup.Refresh(ctx); err != nil {
		uc.Log.Warn("resourceUsecase.afterDelete error refreshing treatment options",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}

func (uc *resourceUsecase) TreatmentOptions(ctx context.Context) ([]responses.TreatmentOption, error) {
	return uc.TreatmentLookup.Options(ctx)
}

func (uc *resourceUsecase) Notifications(ctx context.Context) ([]models.Notification, error) {
	return uc.Notifier.Drain(ctx, utils.GetAdminID(ctx))
}
