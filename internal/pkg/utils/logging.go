package utils

import (
	"context"
	"time"

	"mrchemist-admin-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

func LogOperation(logger *zap.Logger, operation string, requestID string, fn func() error) error {
	start := time.Now()

	logger.Debug("Operation started",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOperationKey, operation),
	)

	err := fn()

	duration := time.Since(start)

	if err != nil {
		logger.Error("Operation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationKey, operation),
			zap.Duration(constvars.LoggingDurationKey, duration),
			zap.Bool(constvars.LoggingSuccessKey, false),
			zap.Error(err),
		)
		return err
	}

	logger.Info("Operation completed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingOperationKey, operation),
		zap.Duration(constvars.LoggingDurationKey, duration),
		zap.Bool(constvars.LoggingSuccessKey, true),
	)

	return nil
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string); ok {
		return requestID
	}
	return ""
}

func GetAdminID(ctx context.Context) string {
	if adminID, ok := ctx.Value(constvars.CONTEXT_ADMIN_ID_KEY).(string); ok && adminID != "" {
		return adminID
	}
	return constvars.AnonymousAdminID
}

func GetBearerToken(ctx context.Context) string {
	if token, ok := ctx.Value(constvars.CONTEXT_BEARER_TOKEN_KEY).(string); ok {
		return token
	}
	return ""
}

// DetachedContext keeps request scoped values but drops the deadline, for work that outlives the request.
func DetachedContext(ctx context.Context) context.Context {
	detached := context.Background()
	for _, key := range []constvars.ContextKey{constvars.CONTEXT_REQUEST_ID_KEY, constvars.CONTEXT_ADMIN_ID_KEY, constvars.CONTEXT_BEARER_TOKEN_KEY} {
		if value := ctx.Value(key); value != nil {
			detached = context.WithValue(detached, key, value)
		}
	}
	return detached
}
