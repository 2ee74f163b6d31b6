package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/marketsquare/marketplace-api/internal/core/domain"
	"github.com/marketsquare/marketplace-api/internal/core/ports"
)

// CatalogService implements product CRUD with seller-only mutations. Cache
// and audit are optional collaborators: a nil cache means every list hits the
// repository, a nil audit sink means mutations are not recorded.
type CatalogService struct {
	repo   ports.ProductRepository
	cache  ports.CatalogCache
	audit  ports.AuditSink
	logger zerolog.Logger
}

func NewCatalogService(repo ports.ProductRepository, cache ports.CatalogCache, audit ports.AuditSink, logger zerolog.Logger) *CatalogService {
	return &CatalogService{repo: repo, cache: cache, audit: audit, logger: logger}
}

func (s *CatalogService) Create(ctx context.Context, identity domain.Identity, input ports.CreateProductInput) (*domain.Product, error) {
	// Role check comes first: a non-seller is rejected regardless of payload.
	if !identity.CanMutateCatalog() {
		return nil, domain.ErrForbidden
	}
	if input.Name == "" || input.Price == nil || *input.Price < 0 {
		return nil, domain.ErrInvalidInput
	}

	product, err := s.repo.Insert(ctx, input.Name, *input.Price, identity.Username)
	if err != nil {
		s.logger.Error().Err(err).Str("seller", identity.Username).Msg("failed to create product")
		return nil, err
	}

	s.invalidateCache(ctx)
	s.submitAudit(identity, ports.AuditActionCreate, product.ID)

	s.logger.Info().Int64("product_id", product.ID).Str("seller", identity.Username).Msg("product created")
	return product, nil
}

func (s *CatalogService) Update(ctx context.Context, identity domain.Identity, id int64, patch ports.ProductPatch) (*domain.Product, error) {
	if !identity.CanMutateCatalog() {
		return nil, domain.ErrForbidden
	}

	product, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(ctx)
	s.submitAudit(identity, ports.AuditActionUpdate, id)

	s.logger.Info().Int64("product_id", id).Str("seller", identity.Username).Msg("product updated")
	return product, nil
}

// Delete removes a product. Deleting an unknown id succeeds (idempotent).
func (s *CatalogService) Delete(ctx context.Context, identity domain.Identity, id int64) error {
	if !identity.CanMutateCatalog() {
		return domain.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateCache(ctx)
	s.submitAudit(identity, ports.AuditActionDelete, id)

	s.logger.Info().Int64("product_id", id).Str("seller", identity.Username).Msg("product deleted")
	return nil
}

func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	if s.cache != nil {
		products, hit, err := s.cache.GetList(ctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("cache read failed, falling back to repository")
		} else if hit {
			return products, nil
		}
	}

	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.SetList(ctx, products); err != nil {
			s.logger.Warn().Err(err).Msg("failed to populate catalog cache")
		}
	}
	return products, nil
}

func (s *CatalogService) invalidateCache(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate catalog cache")
	}
}

func (s *CatalogService) submitAudit(identity domain.Identity, action string, productID int64) {
	if s.audit == nil {
		return
	}
	s.audit.Submit(ports.AuditEntry{
		Actor:     identity.Username,
		Action:    action,
		ProductID: productID,
		Timestamp: time.Now().UTC(),
	})
}
