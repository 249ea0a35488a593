package views

import (
	"context"
	"sync"

	"github.com/clothsy/storefront/internal/errors"
	"github.com/clothsy/storefront/internal/models"
	"github.com/clothsy/storefront/internal/notify"
	service "github.com/clothsy/storefront/internal/services"
)

// ProductCard is the interactive card for one product: a wishlist toggle and
// a quick add-to-cart. Display values are derived per call, never stored.
type ProductCard struct {
	product  models.Product
	session  *service.SessionService
	cart     *service.CartService
	wishlist *service.WishlistService
	notifier notify.Notifier

	mu          sync.Mutex
	inWishlist  bool
	togglingNow bool
}

func NewProductCard(product models.Product, wishlisted bool,
	session *service.SessionService, cart *service.CartService,
	wishlist *service.WishlistService, notifier notify.Notifier) *ProductCard {

	return &ProductCard{
		product:    product,
		inWishlist: wishlisted,
		session:    session,
		cart:       cart,
		wishlist:   wishlist,
		notifier:   notifier,
	}
}

// ToggleWishlist flips the saved state optimistically and calls the API. If
// the call fails the flag is reverted so the card never drifts from server
// truth. A second toggle while one is in flight is ignored.
func (c *ProductCard) ToggleWishlist(ctx context.Context) errors.Outcome {

	if !c.session.IsAuthenticated() {
		c.notifier.Error("Please login to add to wishlist")

		return errors.Fail("Please login to add to wishlist")
	}

	c.mu.Lock()
	if c.togglingNow {
		c.mu.Unlock()

		return errors.FailSilent()
	}

	c.togglingNow = true
	removing := c.inWishlist
	c.inWishlist = !removing
	c.mu.Unlock()

	var outcome errors.Outcome

	if removing {
		outcome = c.wishlist.Remove(ctx, c.product.ID)
	} else {
		outcome = c.wishlist.Add(ctx, c.product.ID)
	}

	c.mu.Lock()
	if outcome.Failed() {
		c.inWishlist = removing
	}

	c.togglingNow = false
	c.mu.Unlock()

	return outcome
}

// AddResult tells the caller what happened on a quick add. A non-empty
// Redirect means the card sent the user to the product detail page instead of
// adding, because variant selection cannot happen from the card.
type AddResult struct {
	Redirect string
	Outcome  errors.Outcome
}

func (c *ProductCard) AddToCart(ctx context.Context) AddResult {

	if !c.session.IsAuthenticated() {
		c.notifier.Error("Please login to add to cart")

		return AddResult{Outcome: errors.Fail("Please login to add to cart")}
	}

	if c.product.HasSizes() {
		return AddResult{
			Redirect: "/products/" + c.product.ID,
			Outcome:  errors.Ok(),
		}
	}

	return AddResult{Outcome: c.cart.Add(ctx, c.product.ID, 1, "", "")}
}

func (c *ProductCard) InWishlist() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.inWishlist
}

func (c *ProductCard) Busy() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.togglingNow
}

func (c *ProductCard) DiscountPercent() int {
	return c.product.DiscountPercent()
}

func (c *ProductCard) AverageRating() float64 {
	return c.product.AverageRating()
}

func (c *ProductCard) Product() models.Product {
	return c.product
}
