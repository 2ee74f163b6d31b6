package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// UserRepository defines the interface for credential persistence. Usernames
// are unique; there is no update or delete.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
