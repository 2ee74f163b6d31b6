package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// CatalogCache caches the full product listing. It is an optional
// collaborator: callers must degrade to the repository when it errors.
type CatalogCache interface {
	// GetList returns the cached listing and whether it was present.
	GetList(ctx context.Context) ([]domain.Product, bool, error)
	SetList(ctx context.Context, products []domain.Product) error
	Invalidate(ctx context.Context) error
}
