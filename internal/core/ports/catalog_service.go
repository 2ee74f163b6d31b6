package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// CreateProductInput carries the data needed to create a product. Price is a
// pointer so an absent price can be distinguished from a zero price.
type CreateProductInput struct {
	Name  string
	Price *float64
}

// ProductPatch is a partial update: only non-nil fields change.
type ProductPatch struct {
	Name  *string
	Price *float64
}

// CatalogService defines use-case operations over the product catalog.
// Mutations require a seller identity; List is public.
type CatalogService interface {
	Create(ctx context.Context, identity domain.Identity, input CreateProductInput) (*domain.Product, error)
	Update(ctx context.Context, identity domain.Identity, id int64, patch ProductPatch) (*domain.Product, error)
	Delete(ctx context.Context, identity domain.Identity, id int64) error
	List(ctx context.Context) ([]domain.Product, error)
}
