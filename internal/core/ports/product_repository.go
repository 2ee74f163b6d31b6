package ports

import (
	"context"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
)

// ProductRepository defines persistence operations for products. The
// repository owns id assignment: Insert draws from a monotonically increasing
// counter so ids are never reused after deletion.
type ProductRepository interface {
	Insert(ctx context.Context, name string, price float64, seller string) (*domain.Product, error)
	// Update applies patch atomically and returns the updated product, or
	// domain.ErrProductNotFound when id is unknown.
	Update(ctx context.Context, id int64, patch ProductPatch) (*domain.Product, error)
	// Delete removes a product. Deleting an unknown id is a no-op.
	Delete(ctx context.Context, id int64) error
	// List returns all products ordered by ascending id.
	List(ctx context.Context) ([]domain.Product, error)
}
