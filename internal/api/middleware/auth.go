package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/arogyapath/backend/internal/domain/entities"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

type contextKey string

const userContextKey contextKey = "auth.user"

// TokenVerifier resolves a bearer token to the user it names.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (*entities.User, error)
}

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (*entities.User, bool) {
	user, ok := ctx.Value(userContextKey).(*entities.User)
	return user, ok
}

// AuthMiddleware guards routes behind bearer-token authentication. A missing
// header is unauthorized; a token that fails verification is forbidden; a
// valid token whose user no longer exists is unauthorized again.
func AuthMiddleware(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				authError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			token := strings.TrimPrefix(header, "Bearer ")
			user, err := verifier.VerifyToken(r.Context(), token)
			if err != nil {
				var appErr *apperrors.AppError
				if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeForbidden {
					authError(w, http.StatusForbidden, appErr.Message)
					return
				}
				authError(w, http.StatusUnauthorized, "invalid credentials")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func authError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
