package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, error)
}
