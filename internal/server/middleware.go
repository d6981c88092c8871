package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lealre/comments-backend/internal/logx"
	"go.uber.org/zap"
)

type contextKey string

const requestIdKey contextKey = "requestId"

////////////////////////////////////////////////////////////////////////////
//  LOGGER MIDDLEWARE
////////////////////////////////////////////////////////////////////////////

// Creates a short request identifier, unique enough to follow one request in the logs
func generateRequestId() string {
	return uuid.NewString()[:8]
}

func RequestIdFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIdKey).(string)
	return id
}

// responseRecorder wraps http.ResponseWriter to capture status code
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
}

func (rr *responseRecorder) WriteHeader(statusCode int) {
	rr.statusCode = statusCode
	rr.ResponseWriter.WriteHeader(statusCode)
}

/*
RequestIdMiddleware creates a unique request ID for each request and stores it in the context.
Derives a logger carrying the request ID, method and path and stores it in the context.
- Logs when it receives a request
- Logs when it returns the response, with the duration and status code

The request ID is echoed in the X-Request-Id response header.
Handlers can retrieve the logger using logx.FromContext(r.Context()).
*/
func RequestIdMiddleware(base *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestId := generateRequestId()
			startTime := time.Now()

			logger := base.With(
				zap.String("requestId", requestId),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
			)

			logger.Info("Request received...")

			ctx := context.WithValue(r.Context(), requestIdKey, requestId)
			ctx = logx.WithLogger(ctx, logger)
			r = r.WithContext(ctx)

			w.Header().Set("X-Request-Id", requestId)
			recorder := &responseRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(recorder, r)

			logger.Info("Request completed",
				zap.Int("status", recorder.statusCode),
				zap.Duration("duration", time.Since(startTime)),
			)
		})
	}
}
