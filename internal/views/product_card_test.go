package views_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/clothsy/storefront/internal/api"
	"github.com/clothsy/storefront/internal/config"
	"github.com/clothsy/storefront/internal/models"
	service "github.com/clothsy/storefront/internal/services"
	"github.com/clothsy/storefront/internal/testutils"
	"github.com/clothsy/storefront/internal/token"
	"github.com/clothsy/storefront/internal/views"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cardStack struct {
	fake     *testutils.FakeAPI
	notifier *testutils.NotifyRecorder
	session  *service.SessionService
	cart     *service.CartService
	wishlist *service.WishlistService
}

func newCardStack(t *testing.T) *cardStack {
	t.Helper()

	fake := testutils.NewFakeAPI(t)
	tokens := token.NewStore(filepath.Join(t.TempDir(), "token"), 7*24*time.Hour)

	client, err := api.New(&config.API{BaseURL: fake.Server.URL, Timeout: 5 * time.Second}, tokens)
	require.NoError(t, err)

	notifier := &testutils.NotifyRecorder{}
	session := service.NewSessionService(client, tokens, notifier)
	cart := service.NewCartService(client, session, notifier)
	wishlist := service.NewWishlistService(client, session, notifier)

	return &cardStack{
		fake:     fake,
		notifier: notifier,
		session:  session,
		cart:     cart,
		wishlist: wishlist,
	}
}

func (s *cardStack) login(t *testing.T) {
	t.Helper()

	s.fake.SeedUser(models.User{ID: "u1", Name: "Asha", Email: "asha@example.com"}, "secret1")
	require.True(t, s.session.Login(context.Background(), "asha@example.com", "secret1").Success)
}

func (s *cardStack) card(product models.Product, wishlisted bool) *views.ProductCard {
	return views.NewProductCard(product, wishlisted, s.session, s.cart, s.wishlist, s.notifier)
}

func floatPtr(v float64) *float64 {
	return &v
}

func TestToggleWishlist(t *testing.T) {
	ctx := context.Background()

	t.Run("unauthenticated toggle makes no network call", func(t *testing.T) {
		// Arrange
		s := newCardStack(t)
		card := s.card(models.Product{ID: "p1", Price: 500}, false)

		// Act
		outcome := card.ToggleWishlist(ctx)

		// Assert
		assert.False(t, outcome.Success)
		assert.Zero(t, s.fake.Requests())
		assert.False(t, card.InWishlist())
		assert.Contains(t, s.notifier.Errors(), "Please login to add to wishlist")
	})

	t.Run("toggle on adds, toggle off removes", func(t *testing.T) {
		// Arrange
		s := newCardStack(t)
		s.login(t)
		s.fake.SeedProducts(models.Product{ID: "p1", Price: 500})
		card := s.card(models.Product{ID: "p1", Price: 500}, false)

		// Act
		on := card.ToggleWishlist(ctx)

		// Assert
		assert.True(t, on.Success)
		assert.True(t, card.InWishlist())
		require.Len(t, s.fake.WishlistItems(), 1)

		// Act
		off := card.ToggleWishlist(ctx)

		// Assert
		assert.True(t, off.Success)
		assert.False(t, card.InWishlist())
		assert.Empty(t, s.fake.WishlistItems())
	})

	t.Run("failed toggle reverts the optimistic flip", func(t *testing.T) {
		// Arrange
		s := newCardStack(t)
		s.login(t)
		s.fake.FailWishlist = true
		card := s.card(models.Product{ID: "p1", Price: 500}, false)

		// Act
		outcome := card.ToggleWishlist(ctx)

		// Assert: the card matches server truth again
		assert.False(t, outcome.Success)
		assert.False(t, card.InWishlist())
		assert.False(t, card.Busy())
	})

	t.Run("failed un-toggle reverts to wishlisted", func(t *testing.T) {
		// Arrange
		s := newCardStack(t)
		s.login(t)
		s.fake.FailWishlist = true
		card := s.card(models.Product{ID: "p1", Price: 500}, true)

		// Act
		outcome := card.ToggleWishlist(ctx)

		// Assert
		assert.False(t, outcome.Success)
		assert.True(t, card.InWishlist())
	})
}

func TestAddToCartFromCard(t *testing.T) {
	ctx := context.Background()

	t.Run("product without variants goes straight to the cart", func(t *testing.T) {
		// Arrange
		s := newCardStack(t)
		s.login(t)
		s.fake.SeedProducts(models.Product{ID: "p1", Price: 500})
		card := s.card(models.Product{ID: "p1", Price: 500}, false)

		// Act
		result := card.AddToCart(ctx)

		// Assert
		assert.Empty(t, result.Redirect)
		assert.True(t, result.Outcome.Success)
		assert.Equal(t, 1, s.cart.Count())
	})

	t.Run("product with sizes redirects instead of adding", func(t *testing.T) {
		// Arrange
		s := newCardStack(t)
		s.login(t)
		product := models.Product{ID: "p1", Price: 500, Sizes: []string{"S", "M", "L"}}
		card := s.card(product, false)
		before := s.fake.Requests()

		// Act
		result := card.AddToCart(ctx)

		// Assert: variant selection cannot happen from the card
		assert.Equal(t, "/products/p1", result.Redirect)
		assert.Equal(t, before, s.fake.Requests())
		assert.Zero(t, s.cart.Count())
	})

	t.Run("unauthenticated add prompts for login", func(t *testing.T) {
		// Arrange
		s := newCardStack(t)
		card := s.card(models.Product{ID: "p1", Price: 500}, false)

		// Act
		result := card.AddToCart(ctx)

		// Assert
		assert.False(t, result.Outcome.Success)
		assert.Zero(t, s.fake.Requests())
	})
}

func TestCardDerivedValues(t *testing.T) {

	s := newCardStack(t)

	t.Run("discount percent", func(t *testing.T) {
		card := s.card(models.Product{ID: "p1", Price: 1000, DiscountPrice: floatPtr(750)}, false)

		assert.Equal(t, 25, card.DiscountPercent())
	})

	t.Run("average rating", func(t *testing.T) {
		card := s.card(models.Product{
			ID:      "p1",
			Price:   1000,
			Reviews: []models.Review{{Rating: 4}, {Rating: 5}, {Rating: 3}},
		}, false)

		assert.Equal(t, 4.0, card.AverageRating())
	})
}
