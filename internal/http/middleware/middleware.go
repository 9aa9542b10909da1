package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/felixge/httpsnoop"
	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"
	"golang.org/x/time/rate"

	"github.com/betterscore/scoreboard-service/internal/http/requestutil"
	"github.com/betterscore/scoreboard-service/internal/logging"
	"github.com/betterscore/scoreboard-service/internal/metrics"
)

const headerRequestID = "X-Request-ID"

type requestIDKey struct{}

// Logging tags each request with an ID, logs its completion, and records HTTP metrics.
func Logging(baseLogger *slog.Logger, recorder *metrics.Recorder) func(http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reqID := requestutil.SanitizeRequestID(r.Header.Get(headerRequestID))
			w.Header().Set(headerRequestID, reqID)

			logger := baseLogger.With(
				slog.String(logging.FieldRequestID, reqID),
				slog.String(logging.FieldMethod, r.Method),
				slog.String(logging.FieldPath, r.URL.Path),
				slog.String("client_ip", requestutil.ClientIP(r)),
			)

			ctx := logging.WithLogger(r.Context(), logger)
			ctx = withRequestID(ctx, reqID)
			r = r.WithContext(ctx)

			m := httpsnoop.CaptureMetrics(next, w, r)

			recorder.RecordHTTPRequest(r.Method, routePattern(r), m.Code, m.Duration)
			logger.Info("request complete",
				slog.Int(logging.FieldStatusCode, m.Code),
				slog.Int64(logging.FieldDurationMS, m.Duration.Milliseconds()),
			)
		})
	}
}

// RecoverPanic turns a handler panic into a 500 and logs it.
func RecoverPanic(baseLogger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					w.Header().Set("Connection", "close")
					logging.Error(logging.FromContext(r.Context(), baseLogger), "handler panicked", fmt.Errorf("%v", err))
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// CORS allows browser control panels served from origins to call the API.
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedOrigins: origins,
		AllowedHeaders: []string{"Content-Type", headerRequestID},
		ExposedHeaders: []string{headerRequestID},
	})
	return c.Handler
}

// RateLimit rejects requests beyond rps (with burst) with 429.
// A non-positive rps disables limiting.
func RateLimit(rps float64, burst int) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if rps <= 0 {
			return next
		}
		if burst < 1 {
			burst = 1
		}
		limiter := rate.NewLimiter(rate.Limit(rps), burst)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				w.Header().Set("Retry-After", "1")
				http.Error(w, "rate limit exceeded", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequestIDFromContext extracts the request ID stored by the logging middleware.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(requestIDKey{}).(string); ok {
		return val
	}
	return ""
}

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// routePattern keeps metric labels bounded to registered routes.
func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	return "unmatched"
}
