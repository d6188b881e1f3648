package middlewares

import (
	"mrchemist-admin-service/internal/pkg/constvars"
	"mrchemist-admin-service/internal/pkg/utils"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// RequestLogger writes one access line per request through logrus.
func (m *Middlewares) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rec, r)

		m.AccessLog.WithFields(logrus.Fields{
			constvars.LoggingRequestIDKey:  utils.GetRequestID(r.Context()),
			constvars.LoggingRemoteAddrKey: r.RemoteAddr,
			constvars.LoggingStatusCodeKey: rec.statusCode,
			constvars.LoggingDurationKey:   time.Since(start).String(),
		}).Infof("%s %s", r.Method, r.RequestURI)
	})
}
