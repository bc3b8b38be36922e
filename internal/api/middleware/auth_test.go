package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyapath/backend/internal/api/middleware"
	"github.com/arogyapath/backend/internal/domain/entities"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

type stubVerifier struct {
	user *entities.User
	err  error
}

func (s *stubVerifier) VerifyToken(ctx context.Context, token string) (*entities.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.user, nil
}

func protected(verifier middleware.TokenVerifier) http.Handler {
	return middleware.AuthMiddleware(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func TestAuthMiddleware_MissingHeader(t *testing.T) {
	handler := protected(&stubVerifier{})

	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_InvalidToken(t *testing.T) {
	handler := protected(&stubVerifier{err: apperrors.NewForbiddenError("invalid or expired token")})

	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAuthMiddleware_DeletedUser(t *testing.T) {
	handler := protected(&stubVerifier{err: apperrors.NewUnauthorizedError("user no longer exists")})

	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer valid-but-orphaned")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	user := &entities.User{ID: "user-1", Email: "a@b.com"}

	var seen *entities.User
	handler := middleware.AuthMiddleware(&stubVerifier{user: user})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen, _ = middleware.UserFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, seen)
	assert.Equal(t, "user-1", seen.ID)
}
