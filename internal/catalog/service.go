package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/domain"
	"github.com/warungmanto/storefront/pkg/errors"
)

const (
	relatedPerPage = 5
	relatedLimit   = 4
)

// Source is the product API as seen by the service
type Source interface {
	FetchProducts(ctx context.Context, q ProductQuery) (*domain.ProductsPage, error)
	FetchProduct(ctx context.Context, id string) (*domain.Product, error)
	FetchCategories(ctx context.Context) ([]domain.Category, error)
}

// Service turns product API failures into empty results
type Service struct {
	source Source
	logger *zap.Logger
}

func NewService(source Source, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// Products returns a page of products, or an empty page when the API is unavailable
func (s *Service) Products(ctx context.Context, q ProductQuery) domain.ProductsPage {
	page, err := s.source.FetchProducts(ctx, q)
	if err != nil || page == nil {
		s.logger.Warn("Serving empty product list", zap.Error(err), zap.String("search", q.Search), zap.String("category_id", q.CategoryID))
		return emptyPage(q)
	}
	if page.Products == nil {
		page.Products = []domain.Product{}
	}
	for i := range page.Products {
		if page.Products[i].PricingTiers == nil {
			page.Products[i].PricingTiers = []domain.PricingTier{}
		}
	}
	return *page
}

// Categories returns all categories, or none when the API is unavailable
func (s *Service) Categories(ctx context.Context) []domain.Category {
	cats, err := s.source.FetchCategories(ctx)
	if err != nil {
		s.logger.Warn("Serving empty category list", zap.Error(err))
		return []domain.Category{}
	}
	if cats == nil {
		return []domain.Category{}
	}
	return cats
}

// Product returns one product; ok is false when it is missing or the API failed
func (s *Service) Product(ctx context.Context, id string) (*domain.Product, bool) {
	p, err := s.source.FetchProduct(ctx, id)
	if err != nil {
		if _, isNotFound := err.(*errors.ErrNotFound); !isNotFound {
			s.logger.Warn("Product lookup failed", zap.Error(err), zap.String("product_id", id))
		}
		return nil, false
	}
	if p.PricingTiers == nil {
		p.PricingTiers = []domain.PricingTier{}
	}
	return p, true
}

// Related returns up to four products from the first page, excluding excludeID
func (s *Service) Related(ctx context.Context, excludeID string) []domain.Product {
	page := s.Products(ctx, ProductQuery{PerPage: relatedPerPage})
	out := make([]domain.Product, 0, relatedLimit)
	for _, p := range page.Products {
		if p.ID == excludeID {
			continue
		}
		out = append(out, p)
		if len(out) == relatedLimit {
			break
		}
	}
	return out
}

func emptyPage(q ProductQuery) domain.ProductsPage {
	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = defaultPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	return domain.ProductsPage{Products: []domain.Product{}, Total: 0, Page: page, PerPage: perPage}
}
