package main

import (
	"bytes"
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

func newTestRepl(t *testing.T) (*repl, *testutils.FakeAPI, *bytes.Buffer) {
	t.Helper()

	fake := testutils.NewFakeAPI(t)
	tokens := token.NewStore(filepath.Join(t.TempDir(), "token"), 7*24*time.Hour)

	client, err := api.New(&config.API{BaseURL: fake.Server.URL, Timeout: 5 * time.Second}, tokens)
	require.NoError(t, err)

	notifier := &testutils.NotifyRecorder{}
	session := service.NewSessionService(client, tokens, notifier)
	cart := service.NewCartService(client, session, notifier)
	wishlist := service.NewWishlistService(client, session, notifier)

	out := &bytes.Buffer{}

	return &repl{
		session:  session,
		cart:     cart,
		wishlist: wishlist,
		catalog:  service.NewCatalogService(client),
		seller:   service.NewSellerService(client, session, notifier),
		header:   views.NewHeader(session, cart),
		out:      out,
	}, fake, out
}

func TestCartPageRequiresLogin(t *testing.T) {

	// Arrange
	r, fake, out := newTestRepl(t)

	// Act
	r.showCart(context.Background())

	// Assert
	assert.Zero(t, fake.Requests(), "a logged-out cart page must not hit the API")
	assert.Contains(t, out.String(), "You need to login to view your cart")
}

func TestWishlistPageRequiresLogin(t *testing.T) {

	// Arrange
	r, fake, out := newTestRepl(t)

	// Act
	r.showWishlist(context.Background())

	// Assert
	assert.Zero(t, fake.Requests(), "a logged-out wishlist page must not hit the API")
	assert.Contains(t, out.String(), "You need to login to view your wishlist")
}

func TestCartPageListsItemsWhenLoggedIn(t *testing.T) {

	// Arrange
	r, fake, out := newTestRepl(t)
	fake.SeedUser(models.User{ID: "u1", Name: "Asha", Email: "asha@example.com", Role: models.RoleUser}, "secret123")
	fake.SeedCartItem(models.CartItem{
		ID:       "ci1",
		Quantity: 2,
		Product:  models.Product{ID: "p1", Name: "Linen Shirt", Price: 1200},
	})

	outcome := r.session.Login(context.Background(), "asha@example.com", "secret123")
	require.True(t, outcome.Success)

	// Act
	r.showCart(context.Background())

	// Assert
	assert.Contains(t, out.String(), "Linen Shirt")
	assert.Contains(t, out.String(), "(2 items)")
}
