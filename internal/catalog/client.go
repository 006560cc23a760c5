package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/warungmanto/storefront/internal/domain"
	"github.com/warungmanto/storefront/pkg/errors"
)

const (
	defaultPage    = 1
	defaultPerPage = 20
	serviceName    = "product api"
)

// ProductQuery filters the product listing
type ProductQuery struct {
	Search     string
	CategoryID string
	Page       int
	PerPage    int
}

// Client calls the remote product API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a product API client. pathPrefix is prepended to every path (e.g. "/public").
func NewClient(baseURL, pathPrefix string, timeout time.Duration, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	prefix := strings.Trim(pathPrefix, "/")
	base := strings.TrimSuffix(baseURL, "/")
	if prefix != "" {
		base += "/" + prefix
	}
	return &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// envelope is the {"data": ...} wrapper around every response
type envelope[T any] struct {
	Data T `json:"data"`
}

// FetchProducts fetches one page of products
func (c *Client) FetchProducts(ctx context.Context, q ProductQuery) (*domain.ProductsPage, error) {
	params := url.Values{}
	if q.Search != "" {
		params.Set("search", q.Search)
	}
	if q.CategoryID != "" {
		params.Set("category_id", q.CategoryID)
	}
	page, perPage := q.Page, q.PerPage
	if page < 1 {
		page = defaultPage
	}
	if perPage < 1 {
		perPage = defaultPerPage
	}
	params.Set("page", strconv.Itoa(page))
	params.Set("per_page", strconv.Itoa(perPage))

	var out envelope[domain.ProductsPage]
	if err := c.get(ctx, "/products", params, &out); err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}
	return &out.Data, nil
}

// FetchProduct fetches a single product by id
func (c *Client) FetchProduct(ctx context.Context, id string) (*domain.Product, error) {
	var out envelope[*domain.Product]
	if err := c.get(ctx, "/products/"+url.PathEscape(id), nil, &out); err != nil {
		if _, isNotFound := err.(*errors.ErrNotFound); isNotFound {
			return nil, &errors.ErrNotFound{Resource: "product", ID: id}
		}
		return nil, fmt.Errorf("fetch product %s: %w", id, err)
	}
	if out.Data == nil {
		return nil, &errors.ErrNotFound{Resource: "product", ID: id}
	}
	return out.Data, nil
}

// FetchCategories fetches every category
func (c *Client) FetchCategories(ctx context.Context) ([]domain.Category, error) {
	var out envelope[[]domain.Category]
	if err := c.get(ctx, "/categories", nil, &out); err != nil {
		return nil, fmt.Errorf("fetch categories: %w", err)
	}
	return out.Data, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dst interface{}) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return err
	}
	if len(params) > 0 {
		u.RawQuery = params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Product API request failed", zap.Error(err), zap.String("path", path))
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return &errors.ErrNotFound{Resource: "path", ID: path}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &errors.ErrUpstream{Service: serviceName, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
