package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/warungmanto/storefront/pkg/errors"
)

const productsBody = `{"data":{"products":[
	{"id":"p1","name":"Beras","description":null,"unit":"kg","base_price":15000,"image_url":null,
	 "category":{"id":"c1","name":"Sembako"},
	 "pricing_tiers":[{"name":"Grosir","min_quantity":10,"max_quantity":null,"price":14000}]}
],"total":1,"page":2,"per_page":5}}`

func newAPI(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", "/public/", time.Second, zaptest.NewLogger(t))
}

func TestFetchProducts(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(productsBody))
	})

	page, err := c.FetchProducts(context.Background(), ProductQuery{Search: "beras", CategoryID: "c1", Page: 2, PerPage: 5})
	require.NoError(t, err)

	assert.Equal(t, "/public/products", gotPath)
	assert.Equal(t, []string{"beras"}, gotQuery["search"])
	assert.Equal(t, []string{"c1"}, gotQuery["category_id"])
	assert.Equal(t, []string{"2"}, gotQuery["page"])
	assert.Equal(t, []string{"5"}, gotQuery["per_page"])

	require.Len(t, page.Products, 1)
	p := page.Products[0]
	assert.Equal(t, "Beras", p.Name)
	assert.Equal(t, 15000.0, p.BasePrice)
	require.NotNil(t, p.Category)
	assert.Equal(t, "Sembako", p.Category.Name)
	require.Len(t, p.PricingTiers, 1)
	assert.Nil(t, p.PricingTiers[0].MaxQuantity)
	assert.Equal(t, "Grosir", *p.PricingTiers[0].Name)
	assert.Equal(t, 2, page.Page)
}

func TestFetchProducts_DefaultPaging(t *testing.T) {
	var gotQuery map[string][]string
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`{"data":{"products":[],"total":0,"page":1,"per_page":20}}`))
	})

	_, err := c.FetchProducts(context.Background(), ProductQuery{})
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, gotQuery["page"])
	assert.Equal(t, []string{"20"}, gotQuery["per_page"])
	assert.NotContains(t, gotQuery, "search")
	assert.NotContains(t, gotQuery, "category_id")
}

func TestFetchProducts_UpstreamError(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	})

	_, err := c.FetchProducts(context.Background(), ProductQuery{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestFetchProducts_BadJSON(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	})
	_, err := c.FetchProducts(context.Background(), ProductQuery{})
	assert.Error(t, err)
}

func TestFetchProduct(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/public/products/p1":
			w.Write([]byte(`{"data":{"id":"p1","name":"Beras","unit":"kg","base_price":15000,"pricing_tiers":[]}}`))
		case "/public/products/null":
			w.Write([]byte(`{"data":null}`))
		default:
			http.NotFound(w, r)
		}
	})

	p, err := c.FetchProduct(context.Background(), "p1")
	require.NoError(t, err)
	assert.Equal(t, "Beras", p.Name)

	_, err = c.FetchProduct(context.Background(), "missing")
	_, isNotFound := err.(*errors.ErrNotFound)
	assert.True(t, isNotFound)

	_, err = c.FetchProduct(context.Background(), "null")
	_, isNotFound = err.(*errors.ErrNotFound)
	assert.True(t, isNotFound)
}

func TestFetchCategories(t *testing.T) {
	c := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/public/categories", r.URL.Path)
		w.Write([]byte(`{"data":[{"id":"c1","name":"Sembako","description":null},{"id":"c2","name":"Minuman","description":"Dingin"}]}`))
	})

	cats, err := c.FetchCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, cats, 2)
	assert.Nil(t, cats[0].Description)
	assert.Equal(t, "Dingin", *cats[1].Description)
}

func TestNewClient_NoPrefix(t *testing.T) {
	c := NewClient("https://api.example/", "", 0, nil)
	assert.Equal(t, "https://api.example", c.baseURL)
}
