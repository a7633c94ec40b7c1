package repository

import (
	"context"

	"github.com/simseulnyang/webooks-back-joongobooks-v2/internal/domain"
)

// UserRepository doubles as the user directory: account storage for auth and
// identity/display lookups for presentation.
type UserRepository interface {
	// FindByID returns the user or ErrUserNotFound.
	FindByID(ctx context.Context, id uint) (*domain.User, error)

	// FindByEmail returns the user or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)

	// Save creates the user, or updates it when ID is already set.
	// Returns ErrDuplicateEntry on an email collision.
	Save(ctx context.Context, user *domain.User) error

	// DisplayName resolves the username shown alongside a user's events.
	DisplayName(ctx context.Context, id uint) (string, error)
}
