package models

type CartItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Quantity  int     `json:"quantity"`
	Size      string  `json:"size,omitempty"`
	Color     string  `json:"color,omitempty"`
	Product   Product `json:"product"`
}

// UnitPrice is the discounted price when one exists, else the list price.
func (i *CartItem) UnitPrice() float64 {
	return i.Product.EffectivePrice()
}

func (i *CartItem) LineTotal() float64 {
	return i.UnitPrice() * float64(i.Quantity)
}

// CartTotal sums line totals over a cart snapshot.
func CartTotal(items []CartItem) float64 {
	var total float64

	for i := range items {
		total += items[i].LineTotal()
	}

	return total
}

// CartCount sums quantities over a cart snapshot.
func CartCount(items []CartItem) int {
	var count int

	for i := range items {
		count += items[i].Quantity
	}

	return count
}

type CartResponse struct {
	Items []CartItem `json:"items"`
}

type AddCartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Size      string `json:"size,omitempty"`
	Color     string `json:"color,omitempty"`
}

type UpdateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"required,min=1"`
}
