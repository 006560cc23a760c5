package catalog

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"

	"github.com/warungmanto/storefront/internal/domain"
	"github.com/warungmanto/storefront/pkg/errors"
)

type fakeSource struct {
	page    *domain.ProductsPage
	product *domain.Product
	cats    []domain.Category
	err     error
}

func (f *fakeSource) FetchProducts(ctx context.Context, q ProductQuery) (*domain.ProductsPage, error) {
	return f.page, f.err
}

func (f *fakeSource) FetchProduct(ctx context.Context, id string) (*domain.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.product == nil || f.product.ID != id {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}
	return f.product, nil
}

func (f *fakeSource) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	return f.cats, f.err
}

func TestService_DegradesToEmpty(t *testing.T) {
	svc := NewService(&fakeSource{err: stderrors.New("connection refused")}, zaptest.NewLogger(t))
	ctx := context.Background()

	page := svc.Products(ctx, ProductQuery{Page: 3})
	assert.Empty(t, page.Products)
	assert.NotNil(t, page.Products)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 20, page.PerPage)

	cats := svc.Categories(ctx)
	assert.Empty(t, cats)
	assert.NotNil(t, cats)

	_, ok := svc.Product(ctx, "p1")
	assert.False(t, ok)

	assert.Empty(t, svc.Related(ctx, "p1"))
}

func TestService_NormalizesTiers(t *testing.T) {
	src := &fakeSource{
		page:    &domain.ProductsPage{Products: []domain.Product{{ID: "p1"}}},
		product: &domain.Product{ID: "p1"},
	}
	svc := NewService(src, nil)

	page := svc.Products(context.Background(), ProductQuery{})
	assert.NotNil(t, page.Products[0].PricingTiers)

	p, ok := svc.Product(context.Background(), "p1")
	assert.True(t, ok)
	assert.NotNil(t, p.PricingTiers)
}

func TestService_Related(t *testing.T) {
	products := []domain.Product{{ID: "a"}, {ID: "b"}, {ID: "c"}, {ID: "d"}, {ID: "e"}}
	svc := NewService(&fakeSource{page: &domain.ProductsPage{Products: products}}, nil)

	related := svc.Related(context.Background(), "b")
	ids := make([]string, 0, len(related))
	for _, p := range related {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"a", "c", "d", "e"}, ids)

	related = svc.Related(context.Background(), "zzz")
	assert.Len(t, related, 4)
}
