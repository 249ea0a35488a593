package views

import (
	"fmt"

	service "github.com/clothsy/storefront/internal/services"
)

// Header is the read-only strip above every page: greeting plus cart badge.
// It holds no state of its own.
type Header struct {
	session *service.SessionService
	cart    *service.CartService
}

func NewHeader(session *service.SessionService, cart *service.CartService) *Header {
	return &Header{session: session, cart: cart}
}

func (h *Header) Greeting() string {
	user := h.session.User()
	if user == nil {
		return "Sign in"
	}

	return "Hello, " + user.Name
}

func (h *Header) CartBadge() string {
	return fmt.Sprintf("Bag (%d)", h.cart.Count())
}

// ShowSellerDashboard reports whether the seller dashboard link is visible.
func (h *Header) ShowSellerDashboard() bool {
	user := h.session.User()

	return user.IsSeller()
}
