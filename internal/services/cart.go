package service

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/clothsy/storefront/internal/api"
	"github.com/clothsy/storefront/internal/errors"
	"github.com/clothsy/storefront/internal/models"
	"github.com/clothsy/storefront/internal/notify"
)

// CartService mirrors the remote cart. It never edits the snapshot locally:
// every mutation goes to the API and is followed by a full refetch, so the
// in-memory list always equals what an independent fetch would return.
type CartService struct {
	api      *api.Client
	session  *SessionService
	notifier notify.Notifier

	mu    sync.RWMutex
	items []models.CartItem

	busy atomic.Bool
}

func NewCartService(apiClient *api.Client, session *SessionService, notifier notify.Notifier) *CartService {

	s := &CartService{
		api:      apiClient,
		session:  session,
		notifier: notifier,
	}

	// one refresh on the logged-out -> logged-in edge, nothing on logout
	session.Subscribe(func(authenticated bool) {
		if authenticated {
			s.Refresh(context.Background())
		}
	})

	return s
}

// Refresh replaces the snapshot with the server's cart. On failure the prior
// snapshot stays visible; a transient fetch error must not blank the cart.
func (s *CartService) Refresh(ctx context.Context) errors.Outcome {

	items, err := s.api.Cart.Get(ctx)
	if err != nil {
		slog.Error("failed to fetch cart", slog.String("error", err.Error()))

		return errors.FailSilent()
	}

	s.mu.Lock()
	s.items = items
	s.mu.Unlock()

	return errors.Ok()
}

func (s *CartService) Add(ctx context.Context, productID string, quantity int, size, color string) errors.Outcome {

	if !s.session.IsAuthenticated() {
		s.notifier.Error("Please login to add to cart")

		return errors.Fail("Please login to add to cart")
	}

	if quantity < 1 {
		return errors.Fail("Quantity must be at least 1")
	}

	s.busy.Store(true)
	defer s.busy.Store(false)

	req := &models.AddCartItemRequest{
		ProductID: productID,
		Quantity:  quantity,
		Size:      size,
		Color:     color,
	}

	if err := s.api.Cart.Add(ctx, req); err != nil {
		message := errors.UserMessage(err, "Failed to add to cart")
		s.notifier.Error(message)

		return errors.Fail(message)
	}

	s.Refresh(ctx)
	s.notifier.Success("Item added to cart!")

	return errors.Ok()
}

// UpdateQuantity changes a line's quantity. Quantities below 1 are rejected
// before any network call; removal goes through Remove.
func (s *CartService) UpdateQuantity(ctx context.Context, itemID string, quantity int) errors.Outcome {

	if !s.session.IsAuthenticated() {
		s.notifier.Error("Please login to update your cart")

		return errors.Fail("Please login to update your cart")
	}

	if quantity < 1 {
		return errors.Fail("Quantity must be at least 1")
	}

	s.busy.Store(true)
	defer s.busy.Store(false)

	if err := s.api.Cart.Update(ctx, itemID, &models.UpdateCartItemRequest{Quantity: quantity}); err != nil {
		s.notifier.Error("Failed to update quantity")

		return errors.Fail("Failed to update quantity")
	}

	s.Refresh(ctx)

	return errors.Ok()
}

func (s *CartService) Remove(ctx context.Context, itemID string) errors.Outcome {

	if !s.session.IsAuthenticated() {
		s.notifier.Error("Please login to update your cart")

		return errors.Fail("Please login to update your cart")
	}

	s.busy.Store(true)
	defer s.busy.Store(false)

	if err := s.api.Cart.Remove(ctx, itemID); err != nil {
		s.notifier.Error("Failed to remove item")

		return errors.Fail("Failed to remove item")
	}

	s.Refresh(ctx)
	s.notifier.Success("Item removed from cart")

	return errors.Ok()
}

// Items returns a copy of the current snapshot.
func (s *CartService) Items() []models.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]models.CartItem, len(s.items))
	copy(items, s.items)

	return items
}

// Total is computed fresh on every read, never cached.
func (s *CartService) Total() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.CartTotal(s.items)
}

// Count is the sum of line quantities, computed fresh on every read.
func (s *CartService) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return models.CartCount(s.items)
}

func (s *CartService) Busy() bool {
	return s.busy.Load()
}
