package httpx

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	apperrors "github.com/meridianbi/meridian-api/internal/errors"
	"github.com/meridianbi/meridian-api/internal/ports"
)

// Logging returns a middleware that logs HTTP requests and responses.
func Logging(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			const defaultHTTPStatus = 200
			ww := &respWriter{ResponseWriter: w, status: defaultHTTPStatus}
			next.ServeHTTP(ww, r)
			logger.Info("http",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", ww.status),
				slog.Duration("duration", time.Since(start)),
			)
		})
	}
}

type respWriter struct {
	http.ResponseWriter
	status int
}

func (w *respWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

// Recover returns a middleware that recovers from panics and logs them.
func Recover(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if err := recover(); err != nil {
					logger.Error("panic",
						slog.Any("error", err),
						slog.String("path", r.URL.Path),
						slog.String("method", r.Method),
						slog.String("stack", string(debug.Stack())))
					http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// RequireSession returns a middleware that resolves the caller's session from
// the session cookie and places it in the request context. Requests without a
// valid session get 401; sessions without a tenant association get 400, since
// every tenant-scoped query needs one.
func RequireSession(store ports.SessionStore, cookieName string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(cookieName)
			if err != nil || cookie.Value == "" {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: string(apperrors.ErrCodeUnauthenticated),
					Err:     errors.New("authentication required"),
				})
				return
			}

			session, err := store.Get(r.Context(), cookie.Value)
			if err != nil {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: string(apperrors.ErrCodeUnauthenticated),
					Err:     errors.New("authentication required"),
				})
				return
			}

			if !session.HasTenant() {
				WriteError(w, ErrorParams{
					Code:    http.StatusBadRequest,
					ErrCode: string(apperrors.ErrCodeTenantMissing),
					Err:     errors.New("session has no tenant association"),
				})
				return
			}

			ctx := SetSessionInContext(r.Context(), &session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// workerSecretHeader carries the shared secret on worker transition calls.
const workerSecretHeader = "X-Worker-Secret"

// RequireWorkerSecret returns a middleware guarding the internal worker
// endpoints with a shared secret. An empty configured secret disables the
// endpoints entirely rather than leaving them open.
func RequireWorkerSecret(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := r.Header.Get(workerSecretHeader)
			if secret == "" || subtle.ConstantTimeCompare([]byte(presented), []byte(secret)) != 1 {
				WriteError(w, ErrorParams{
					Code:    http.StatusUnauthorized,
					ErrCode: string(apperrors.ErrCodeUnauthenticated),
					Err:     errors.New("worker authentication required"),
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
