package middlewares

import (
	"context"
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/exceptions"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// Authenticate verifies the admin bearer token issued by the Mr Chemist auth service. The raw
// token is kept in the context so gateway calls can forward it.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := utils.GetRequestID(r.Context())

		token, ok := utils.ExtractBearerToken(r.Header.Get(constvars.HeaderAuthorization))
		if !ok {
			if m.InternalConfig.JWT.Optional {
				next.ServeHTTP(w, r)
				return
			}
			m.Log.Warn("Middlewares.Authenticate bearer token missing",
				zap.String(constvars.LoggingRequestIDKey, requestID),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.WrapWithoutError(constvars.StatusUnauthorized, constvars.ErrClientNotAuthorized, constvars.ErrDevAuthTokenMissing))
			return
		}

		adminID, err := utils.ParseAdminJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			m.Log.Warn("Middlewares.Authenticate invalid bearer token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalid(err))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_ADMIN_ID_KEY, adminID)
		ctx = context.WithValue(ctx, constvars.CONTEXT_BEARER_TOKEN_KEY, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
