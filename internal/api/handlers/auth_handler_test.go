package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arogyapath/backend/internal/api/handlers"
	"github.com/arogyapath/backend/internal/application/services"
	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/pkg/config"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

type stubUserRepo struct {
	byID    map[string]*entities.User
	byEmail map[string]*entities.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{
		byID:    map[string]*entities.User{},
		byEmail: map[string]*entities.User{},
	}
}

func (s *stubUserRepo) Create(ctx context.Context, user *entities.User) error {
	if _, exists := s.byEmail[user.Email]; exists {
		return apperrors.NewConflictError("email already registered")
	}
	s.byID[user.ID] = user
	s.byEmail[user.Email] = user
	return nil
}

func (s *stubUserRepo) GetByID(ctx context.Context, id string) (*entities.User, error) {
	if user, ok := s.byID[id]; ok {
		return user, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with id %s not found", id))
}

func (s *stubUserRepo) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, apperrors.NewNotFoundError(fmt.Sprintf("user with email %s not found", email))
}

func (s *stubUserRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(s.byID)), nil
}

func newAuthHandler() (*handlers.AuthHandler, *services.AuthService) {
	service := services.NewAuthService(newStubUserRepo(), &config.JWTConfig{
		Secret:      "test-secret",
		ExpiryHours: 168,
	})
	return handlers.NewAuthHandler(service), service
}

func TestAuthHandler_Signup(t *testing.T) {
	handler, _ := newAuthHandler()

	body := `{"email":"asha@example.com","password":"secret123","firstName":"Asha","lastName":"Verma"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Token string `json:"token"`
		User  struct {
			Email     string `json:"email"`
			FirstName string `json:"firstName"`
			LastName  string `json:"lastName"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.NotEmpty(t, response.Token)
	assert.Equal(t, "asha@example.com", response.User.Email)
	assert.Equal(t, "Asha", response.User.FirstName)
	assert.Equal(t, "Verma", response.User.LastName)
	// The password hash never appears in a response.
	assert.NotContains(t, w.Body.String(), "password")
}

func TestAuthHandler_Signup_MissingNames(t *testing.T) {
	handler, _ := newAuthHandler()

	body := `{"email":"noname@example.com","password":"secret123"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Signup_ShortPassword(t *testing.T) {
	handler, _ := newAuthHandler()

	body := `{"email":"asha@example.com","password":"short","firstName":"Asha","lastName":"Verma"}`
	req := httptest.NewRequest("POST", "/api/auth/signup", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Signup(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	handler, service := newAuthHandler()

	_, err := service.Signup(context.Background(), services.SignupInput{
		Email:     "asha@example.com",
		Password:  "secret123",
		FirstName: "Asha",
		LastName:  "Verma",
	})
	require.NoError(t, err)

	body := `{"email":"asha@example.com","password":"wrong"}`
	req := httptest.NewRequest("POST", "/api/auth/login", strings.NewReader(body))
	w := httptest.NewRecorder()

	handler.Login(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_Profile_NoUser(t *testing.T) {
	handler, _ := newAuthHandler()

	req := httptest.NewRequest("GET", "/api/auth/profile", nil)
	w := httptest.NewRecorder()

	handler.Profile(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
