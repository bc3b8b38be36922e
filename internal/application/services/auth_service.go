package services

import (
	"context"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/arogyapath/backend/internal/domain/entities"
	"github.com/arogyapath/backend/internal/domain/repositories"
	"github.com/arogyapath/backend/pkg/config"
	apperrors "github.com/arogyapath/backend/pkg/errors"
)

const minPasswordLength = 6

// SignupInput is the registration request payload.
type SignupInput struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Phone     string `json:"phone"`
}

// AuthResult pairs a user with a freshly issued token.
type AuthResult struct {
	Token string         `json:"token"`
	User  *entities.User `json:"user"`
}

// AuthService handles registration, login and token verification. Tokens
// are HS256 JWTs carrying the user ID as subject.
type AuthService struct {
	repo   repositories.UserRepository
	secret []byte
	expiry time.Duration
}

// NewAuthService creates a new auth service.
func NewAuthService(repo repositories.UserRepository, cfg *config.JWTConfig) *AuthService {
	return &AuthService{
		repo:   repo,
		secret: []byte(cfg.Secret),
		expiry: time.Duration(cfg.ExpiryHours) * time.Hour,
	}
}

// UserCount returns the number of registered users.
func (s *AuthService) UserCount(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// Signup registers a new user. All of first name, last name, email and
// password are required; emails are stored lowercased and must be unique;
// passwords must be at least six characters.
func (s *AuthService) Signup(ctx context.Context, input SignupInput) (*AuthResult, error) {
	firstName := strings.TrimSpace(input.FirstName)
	lastName := strings.TrimSpace(input.LastName)
	if firstName == "" || lastName == "" {
		return nil, apperrors.NewValidationError("first and last name are required")
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperrors.NewValidationError("a valid email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, apperrors.NewValidationError("password must be at least 6 characters")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to hash password", err)
	}

	user := &entities.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        strings.TrimSpace(input.Phone),
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login authenticates by email and password. Unknown email and wrong
// password both map to the same unauthorized error.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			return nil, apperrors.NewUnauthorizedError("invalid credentials")
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, apperrors.NewUnauthorizedError("invalid credentials")
	}

	return s.issueToken(user)
}

// VerifyToken parses and validates a token, then loads the user it names.
// A valid token for a deleted user fails verification.
func (s *AuthService) VerifyToken(ctx context.Context, tokenString string) (*entities.User, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.NewForbiddenError("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.NewForbiddenError("invalid or expired token")
	}

	subject, err := token.Claims.GetSubject()
	if err != nil || subject == "" {
		return nil, apperrors.NewForbiddenError("token has no subject")
	}

	user, err := s.repo.GetByID(ctx, subject)
	if err != nil {
		if appErr, ok := err.(*apperrors.AppError); ok && appErr.Type == apperrors.ErrorTypeNotFound {
			return nil, apperrors.NewUnauthorizedError("user no longer exists")
		}
		return nil, err
	}

	return user, nil
}

func (s *AuthService) issueToken(user *entities.User) (*AuthResult, error) {
	now := time.Now().UTC()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   user.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to sign token", err)
	}

	return &AuthResult{Token: signed, User: user}, nil
}
