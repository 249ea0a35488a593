package api

import (
	"context"
	"net/http"

	"github.com/clothsy/storefront/internal/models"
)

// CartAPI covers the authenticated cart resource.
type CartAPI struct {
	client *Client
}

func (c CartAPI) Get(ctx context.Context) ([]models.CartItem, error) {

	var resp models.CartResponse
	if err := c.client.do(ctx, http.MethodGet, nil, nil, &resp, "cart"); err != nil {
		return nil, err
	}

	return resp.Items, nil
}

func (c CartAPI) Add(ctx context.Context, req *models.AddCartItemRequest) error {
	return c.client.do(ctx, http.MethodPost, nil, req, nil, "cart")
}

func (c CartAPI) Update(ctx context.Context, itemID string, req *models.UpdateCartItemRequest) error {
	return c.client.do(ctx, http.MethodPut, nil, req, nil, "cart", itemID)
}

func (c CartAPI) Remove(ctx context.Context, itemID string) error {
	return c.client.do(ctx, http.MethodDelete, nil, nil, nil, "cart", itemID)
}

// WishlistAPI covers the authenticated wishlist resource. Removal is keyed by
// product ID, mirroring how the product card calls it.
type WishlistAPI struct {
	client *Client
}

func (w WishlistAPI) Get(ctx context.Context) ([]models.WishlistItem, error) {

	var items []models.WishlistItem
	if err := w.client.do(ctx, http.MethodGet, nil, nil, &items, "wishlist"); err != nil {
		return nil, err
	}

	return items, nil
}

func (w WishlistAPI) Add(ctx context.Context, req *models.AddWishlistItemRequest) error {
	return w.client.do(ctx, http.MethodPost, nil, req, nil, "wishlist")
}

func (w WishlistAPI) Remove(ctx context.Context, productID string) error {
	return w.client.do(ctx, http.MethodDelete, nil, nil, nil, "wishlist", productID)
}
