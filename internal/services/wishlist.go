package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/clothsy/storefront/internal/api"
	"github.com/clothsy/storefront/internal/errors"
	"github.com/clothsy/storefront/internal/models"
	"github.com/clothsy/storefront/internal/notify"
)

// WishlistService tracks the user's saved products. Entries are fetched fresh
// per page view; mutations follow the same refetch discipline as the cart.
type WishlistService struct {
	api      *api.Client
	session  *SessionService
	notifier notify.Notifier

	mu    sync.RWMutex
	items []models.WishlistItem
}

func NewWishlistService(apiClient *api.Client, session *SessionService, notifier notify.Notifier) *WishlistService {
	return &WishlistService{
		api:      apiClient,
		session:  session,
		notifier: notifier,
	}
}

// Refresh fails silently: the wishlist page falls back to an empty or stale
// render, never an error screen.
func (s *WishlistService) Refresh(ctx context.Context) errors.Outcome {

	if !s.session.IsAuthenticated() {
		return errors.FailSilent()
	}

	items, err := s.api.Wishlist.Get(ctx)
	if err != nil {
		slog.Error("failed to fetch wishlist", slog.String("error", err.Error()))

		return errors.FailSilent()
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	return errors.Ok()
}

func (s *WishlistService) Add(ctx context.Context, productID string) errors.Outcome {

	if !s.session.IsAuthenticated() {
		s.notifier.Error("Please login to add to wishlist")

		return errors.Fail("Please login to add to wishlist")
	}

	if err := s.api.Wishlist.Add(ctx, &models.AddWishlistItemRequest{ProductID: productID}); err != nil {
		message := errors.UserMessage(err, "Failed to update wishlist")
		s.notifier.Error(message)

		return errors.Fail(message)
	}

	s.Refresh(ctx)
	s.notifier.Success("Added to wishlist")

	return errors.Ok()
}

func (s *WishlistService) Remove(ctx context.Context, productID string) errors.Outcome {

	if !s.session.IsAuthenticated() {
		s.notifier.Error("Please login to add to wishlist")

		return errors.Fail("Please login to add to wishlist")
	}

	if err := s.api.Wishlist.Remove(ctx, productID); err != nil {
		message := errors.UserMessage(err, "Failed to update wishlist")
		s.notifier.Error(message)

		return errors.Fail(message)
	}

	s.Refresh(ctx)
	s.notifier.Success("Removed from wishlist")

	return errors.Ok()
}

// Contains reports membership against the current snapshot.
func (s *WishlistService) Contains(productID string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.items {
		if s.items[i].ProductID == productID {
			return true
		}
	}

	return false
}

// Items returns a copy of the current snapshot.
func (s *WishlistService) Items() []models.WishlistItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.WishlistItem, len(s.items))
	copy(items, s.items)

	return items
}
