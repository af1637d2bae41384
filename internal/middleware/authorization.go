package middleware

import (
	"net/http"

	"go.uber.org/zap"
)

// RequireAuthenticated rejects anonymous requests with 403 before the handler runs,
// so nothing is written for them. It must be mounted after Authenticate.
func RequireAuthenticated(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := GetUser(r.Context()); ok {
				next.ServeHTTP(w, r)
				return
			}

			message := msgCredentialsNotProvided
			if reason, rejected := authFailure(r.Context()); rejected {
				message = reason
			}

			logger.Warn("Unauthenticated request to protected endpoint",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("reason", message),
			)
			RespondWithError(w, http.StatusForbidden, message)
		})
	}
}
