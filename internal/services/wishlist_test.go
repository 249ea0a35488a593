package service_test

import (
	"context"
	"testing"

	"github.com/clothsy/storefront/internal/models"
	service "github.com/clothsy/storefront/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loggedInWishlist(t *testing.T) (*stack, *service.WishlistService) {
	t.Helper()

	s := newStack(t)
	s.fake.SeedUser(models.User{ID: "u1", Name: "Asha", Email: "asha@example.com"}, "secret1")

	session := service.NewSessionService(s.client, s.tokens, s.notifier)
	wishlist := service.NewWishlistService(s.client, session, s.notifier)

	require.True(t, session.Login(context.Background(), "asha@example.com", "secret1").Success)

	return s, wishlist
}

func TestWishlistAddRemove(t *testing.T) {
	ctx := context.Background()

	// Arrange
	s, wishlist := loggedInWishlist(t)
	s.fake.SeedProducts(testProduct("p1", 500))

	// Act
	added := wishlist.Add(ctx, "p1")

	// Assert
	assert.True(t, added.Success)
	assert.True(t, wishlist.Contains("p1"))
	assert.Equal(t, s.fake.WishlistItems(), wishlist.Items())
	assert.Contains(t, s.notifier.Successes(), "Added to wishlist")

	// Act
	removed := wishlist.Remove(ctx, "p1")

	// Assert
	assert.True(t, removed.Success)
	assert.False(t, wishlist.Contains("p1"))
	assert.Empty(t, wishlist.Items())
	assert.Contains(t, s.notifier.Successes(), "Removed from wishlist")
}

func TestWishlistUnauthenticated(t *testing.T) {
	ctx := context.Background()

	// Arrange
	s := newStack(t)
	session := service.NewSessionService(s.client, s.tokens, s.notifier)
	wishlist := service.NewWishlistService(s.client, session, s.notifier)

	// Act
	outcome := wishlist.Add(ctx, "p1")

	// Assert
	assert.False(t, outcome.Success)
	assert.Zero(t, s.fake.Requests(), "no network call without a session")
	assert.Contains(t, s.notifier.Errors(), "Please login to add to wishlist")
}

func TestWishlistRefreshFailure(t *testing.T) {
	ctx := context.Background()

	// Arrange
	s, wishlist := loggedInWishlist(t)
	s.fake.SeedProducts(testProduct("p1", 500))
	require.True(t, wishlist.Add(ctx, "p1").Success)

	s.fake.FailWishlist = true

	// Act
	outcome := wishlist.Refresh(ctx)

	// Assert
	assert.False(t, outcome.Success)
	assert.True(t, outcome.Recovered)
	assert.True(t, wishlist.Contains("p1"), "stale snapshot survives a failed refresh")
	assert.Empty(t, s.notifier.Errors(), "read failures stay silent")
}

func TestWishlistMutationFailure(t *testing.T) {
	ctx := context.Background()

	// Arrange
	s, wishlist := loggedInWishlist(t)
	s.fake.FailWishlist = true
	s.notifier.Reset()

	// Act
	outcome := wishlist.Add(ctx, "p1")

	// Assert
	assert.False(t, outcome.Success)
	assert.False(t, outcome.Recovered, "mutations fail loudly")
	assert.NotEmpty(t, s.notifier.Errors())
}
