package middleware

import (
	"context"
	"net/http"
	"strings"

	"catalog-api/internal/domain"

	"go.uber.org/zap"
)

type contextKey string

const authFailureKey contextKey = "auth_failure"

const (
	msgCredentialsNotProvided = "authentication credentials were not provided"
	msgInvalidToken           = "invalid token"
	msgInvalidHeader          = "invalid authorization header format"
)

// IdentityResolver maps a bearer token to the user it identifies
type IdentityResolver interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

// Authenticate resolves an optional bearer token into the acting user.
// Requests without credentials pass through anonymously; rejected credentials
// also pass through, but the reason is kept for RequireAuthenticated to report.
func Authenticate(resolver IdentityResolver, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				next.ServeHTTP(w, r)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
				logger.Debug("Invalid authorization header format")
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authFailureKey, msgInvalidHeader)))
				return
			}

			user, err := resolver.Authenticate(r.Context(), parts[1])
			if err != nil {
				logger.Debug("Token validation failed", zap.Error(err))
				next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), authFailureKey, msgInvalidToken)))
				return
			}

			logger.Debug("User authenticated",
				zap.String("user_id", user.ID.String()),
				zap.String("username", user.Username),
			)

			next.ServeHTTP(w, r.WithContext(domain.WithActor(r.Context(), user)))
		})
	}
}

// GetUser extracts the authenticated user from request context
func GetUser(ctx context.Context) (*domain.User, bool) {
	return domain.ActorFromContext(ctx)
}

// authFailure reports why credentials on this request were rejected, if they were
func authFailure(ctx context.Context) (string, bool) {
	reason, ok := ctx.Value(authFailureKey).(string)
	return reason, ok
}
