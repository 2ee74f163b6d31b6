package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

type ProductRepository struct {
	mu       sync.Mutex
	products map[int64]domain.Product
	lastID   int64
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: make(map[int64]domain.Product)}
}

// Insert assigns the next id from the counter and stores the product. The
// counter only moves forward, so ids are never reused after deletions.
func (r *ProductRepository) Insert(_ context.Context, name string, price float64, seller string) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.lastID++
	product := domain.Product{
		ID:     r.lastID,
		Name:   name,
		Price:  price,
		Seller: seller,
	}
	r.products[product.ID] = product
	return &product, nil
}

func (r *ProductRepository) Update(_ context.Context, id int64, patch ports.ProductPatch) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	product, ok := r.products[id]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	if patch.Name != nil {
		product.Name = *patch.Name
	}
	if patch.Price != nil {
		product.Price = *patch.Price
	}
	r.products[id] = product
	return &product, nil
}

func (r *ProductRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, id)
	return nil
}

func (r *ProductRepository) List(_ context.Context) ([]domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	products := make([]domain.Product, 0, len(r.products))
	for _, p := range r.products {
		products = append(products, p)
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}
