package repositories

import (
	"context"

	"github.com/arogyapath/backend/internal/domain/entities"
)

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// GetByEmail retrieves a user by lowercased email
	GetByEmail(ctx context.Context, email string) (*entities.User, error)

	// Count returns the number of registered users
	Count(ctx context.Context) (int64, error)
}
