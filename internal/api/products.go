package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/MichalMitros/crm-console/internal/filter"
	"github.com/MichalMitros/crm-console/internal/platform/models"
)

// ListProducts returns all products.
func (c *Client) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, request{
		endpoint: "products.list",
		method:   http.MethodGet,
		path:     "/products",
	}, &products)
	if err != nil {
		return nil, err
	}

	return nonNil(products), nil
}

// GetProduct returns product with provided id.
func (c *Client) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	err := c.do(ctx, request{
		endpoint: "products.get",
		method:   http.MethodGet,
		path:     "/products/" + url.PathEscape(id),
	}, &product)
	if err != nil {
		return nil, err
	}

	return &product, nil
}

// ProductsByCategory returns all products from provided category.
func (c *Client) ProductsByCategory(ctx context.Context, category string) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, request{
		endpoint: "products.category",
		method:   http.MethodGet,
		path:     "/products/category/" + url.PathEscape(category),
	}, &products)
	if err != nil {
		return nil, err
	}

	return nonNil(products), nil
}

// SearchProducts returns provided page of products matching the filter.
func (c *Client) SearchProducts(ctx context.Context, f filter.Filter, page int) ([]models.Product, error) {
	var products []models.Product
	err := c.do(ctx, request{
		endpoint: "products.search",
		method:   http.MethodGet,
		path:     "/products/search",
		query:    f.SearchQuery(page),
	}, &products)
	if err != nil {
		return nil, err
	}

	return nonNil(products), nil
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
