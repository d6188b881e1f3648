package treatmentlookup

import (
	"context"
	"mrchemist-admin-service/internal/app/config"
	"mrchemist-admin-service/internal/app/contracts"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/dto/requests"
	"mrchemist-admin-service/internal/pkg/dto/responses"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type treatmentLookup struct {
	gateway   contracts.RemoteGateway
	redisRepo contracts.RedisRepository
	ttl       time.Duration
	Log       *zap.Logger
}

func NewTreatmentLookup(gateway contracts.RemoteGateway, redisRepo contracts.RedisRepository, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.TreatmentLookup {
	return &treatmentLookup{
		gateway:   gateway,
		redisRepo: redisRepo,
		ttl:       internalConfig.Cache.TreatmentTTL,
		Log:       logger,
	}
}

// Options serves the cached projection and falls back to the remote API on a miss.
func (l *treatmentLookup) Options(ctx context.Context) ([]responses.TreatmentOption, error) {
	raw, err := l.redisRepo.Get(ctx, constvars.RedisKeyTreatmentOptions)
	if err != nil {
		l.Log.Warn("treatmentLookup.Options cache unavailable, asking remote",
			zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
	if raw != "" {
		var options []responses.TreatmentOption
		if err := json.Unmarshal([]byte(raw), &options); err == nil {
			return options, nil
		}
	}
	return l.Refresh(ctx)
}

func (l *treatmentLookup) Exists(ctx context.Context, treatmentID string) (bool, error) {
	if treatmentID == "" {
		return false, nil
	}

	options, err := l.Options(ctx)
	if err != nil {
		return false, err
	}
	if containsID(options, treatmentID) {
		return true, nil
	}

	// The treatment may have been created after the cache was filled.
	options, err = l.Refresh(ctx)
	if err != nil {
		return false, err
	}
	return containsID(options, treatmentID), nil
}

func (l *treatmentLookup) Refresh(ctx context.Context) ([]responses.TreatmentOption, error) {
	requestID := utils.GetRequestID(ctx)
	l.Log.Info("treatmentLookup.Refresh called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	result, err := l.gateway.List(ctx, constvars.ResourceTreatments, requests.ListQuery{})
	if err != nil {
		return nil, err
	}

	options := make([]responses.TreatmentOption, 0)
	if len(result.Data) > 0 {
		if err := json.Unmarshal(result.Data, &options); err != nil {
			return nil, exceptions.ErrGatewayDecodeResponse(err, constvars.ResourceTreatments)
		}
	}

	if err := l.redisRepo.Set(ctx, constvars.RedisKeyTreatmentOptions, options, l.ttl); err != nil {
		l.Log.Warn("treatmentLookup.Refresh error caching options",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	return options, nil
}

func containsID(options []responses.TreatmentOption, treatmentID string) bool {
	for _, option := range options {
		if option.ID == treatmentID {
			return true
		}
	}
	return false
}

// CheckReference reports a field error on "treatment" when treatmentID is set but unknown. An empty
// id is left to the required rule.
func CheckReference(ctx context.Context, lookup contracts.TreatmentLookup, treatmentID string) ([]exceptions.FieldError, error) {
	if treatmentID == "" {
		return nil, nil
	}
	exists, err := lookup.Exists(ctx, treatmentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, nil
	}
	return []exceptions.FieldError{{
		Field:   "treatment",
		Message: constvars.CustomValidationErrorMessages["treatment_ref"],
	}}, nil
}
