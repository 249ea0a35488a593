package models

import (
	"math"
	"net/url"
	"strconv"
	"time"
)

type Review struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	Rating int    `json:"rating"`
	Text   string `json:"text,omitempty"`
}

type Product struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	Brand         string    `json:"brand,omitempty"`
	Gender        string    `json:"gender,omitempty"`
	Price         float64   `json:"price"`
	DiscountPrice *float64  `json:"discountPrice,omitempty"`
	Stock         int       `json:"stock"`
	ImageURL      string    `json:"imageUrl,omitempty"`
	Images        []string  `json:"images,omitempty"`
	Sizes         []string  `json:"size,omitempty"`
	Colors        []string  `json:"color,omitempty"`
	CategoryID    string    `json:"categoryId,omitempty"`
	SellerID      string    `json:"sellerId,omitempty"`
	IsFeatured    bool      `json:"isFeatured,omitempty"`
	Reviews       []Review  `json:"reviews,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// EffectivePrice is the price a buyer actually pays.
func (p *Product) EffectivePrice() float64 {
	if p.DiscountPrice != nil {
		return *p.DiscountPrice
	}

	return p.Price
}

// DiscountPercent returns the rounded discount percentage, or 0 when the
// product has no discount price.
func (p *Product) DiscountPercent() int {
	if p.DiscountPrice == nil || p.Price <= 0 {
		return 0
	}

	return int(math.Round((p.Price - *p.DiscountPrice) / p.Price * 100))
}

// AverageRating is the mean review rating rounded to one decimal, 0 when the
// product has no reviews.
func (p *Product) AverageRating() float64 {
	if len(p.Reviews) == 0 {
		return 0
	}

	var sum int
	for _, review := range p.Reviews {
		sum += review.Rating
	}

	avg := float64(sum) / float64(len(p.Reviews))

	return math.Round(avg*10) / 10
}

func (p *Product) HasSizes() bool {
	return len(p.Sizes) > 0
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total,omitempty"`
	Page     int       `json:"page,omitempty"`
}

// ProductFilter is the query surface of the product list endpoint.
type ProductFilter struct {
	Gender     string
	Category   string
	Brand      string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string
	Page       int
	Limit      int
	IsFeatured bool
}

func (f ProductFilter) Query() url.Values {
	q := url.Values{}

	if f.Gender != "" {
		q.Set("gender", f.Gender)
	}

	if f.Category != "" {
		q.Set("category", f.Category)
	}

	if f.Brand != "" {
		q.Set("brand", f.Brand)
	}

	if f.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}

	if f.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}

	if f.SortBy != "" {
		q.Set("sortBy", f.SortBy)
	}

	if f.Page > 0 {
		q.Set("page", strconv.Itoa(f.Page))
	}

	if f.Limit > 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}

	if f.IsFeatured {
		q.Set("isFeatured", "true")
	}

	return q
}

// CreateProductRequest is the seller upload payload. The image travels as a
// base64 data URL, not a binary upload.
type CreateProductRequest struct {
	Name         string  `json:"name" validate:"required,min=3,max=200"`
	Description  string  `json:"description,omitempty"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	Stock        int     `json:"stock" validate:"gte=0"`
	CategoryID   string  `json:"categoryId" validate:"required"`
	ImageDataURL string  `json:"imageUrl,omitempty"`
	Brand        string  `json:"brand,omitempty"`
	Gender       string  `json:"gender,omitempty" validate:"omitempty,oneof=MEN WOMEN KIDS UNISEX"`
}
