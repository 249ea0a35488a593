package models

type WishlistItem struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Product   Product `json:"product"`
}

type AddWishlistItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
}
