package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/clothsy/storefront/internal/models"
)

// ProductsAPI covers the catalog list and the seller upload endpoint.
type ProductsAPI struct {
	client *Client
}

func (p ProductsAPI) List(ctx context.Context, filter models.ProductFilter) (*models.ProductListResponse, error) {

	var resp models.ProductListResponse
	if err := p.client.do(ctx, http.MethodGet, filter.Query(), nil, &resp, "products"); err != nil {
		return nil, err
	}

	return &resp, nil
}

func (p ProductsAPI) Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error) {

	var resp models.Product
	if err := p.client.do(ctx, http.MethodPost, nil, req, &resp, "products"); err != nil {
		return nil, err
	}

	return &resp, nil
}

// CategoriesAPI lists categories, optionally narrowed to a gender.
type CategoriesAPI struct {
	client *Client
}

func (c CategoriesAPI) List(ctx context.Context, gender string) ([]models.Category, error) {

	var query url.Values

	if gender != "" {
		query = url.Values{"gender": []string{gender}}
	}

	var categories []models.Category
	if err := c.client.do(ctx, http.MethodGet, query, nil, &categories, "categories"); err != nil {
		return nil, err
	}

	return categories, nil
}
