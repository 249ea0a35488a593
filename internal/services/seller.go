package service

import (
	"context"
	"encoding/base64"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/clothsy/storefront/internal/api"
	"github.com/clothsy/storefront/internal/errors"
	"github.com/clothsy/storefront/internal/models"
	"github.com/clothsy/storefront/internal/notify"
	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// SellerService drives the seller dashboard: product upload and the seller's
// own product list. Uploads carry the image inline as a base64 data URL.
type SellerService struct {
	api       *api.Client
	session   *SessionService
	notifier  notify.Notifier
	validate  *validator.Validate
	sanitizer *bluemonday.Policy

	busy atomic.Bool
}

func NewSellerService(apiClient *api.Client, session *SessionService, notifier notify.Notifier) *SellerService {
	return &SellerService{
		api:       apiClient,
		session:   session,
		notifier:  notifier,
		validate:  validator.New(),
		sanitizer: bluemonday.StrictPolicy(),
	}
}

func (s *SellerService) CreateProduct(ctx context.Context, req *models.CreateProductRequest) errors.Outcome {

	user := s.session.User()

	if user == nil {
		s.notifier.Error("Please login first")

		return errors.Fail("Please login first")
	}

	if !user.IsSeller() {
		s.notifier.Error("Only sellers can upload products")

		return errors.Fail("Only sellers can upload products")
	}

	s.busy.Store(true)
	defer s.busy.Store(false)

	// seller-typed text goes out clean
	req.Name = s.sanitizer.Sanitize(req.Name)
	req.Description = s.sanitizer.Sanitize(req.Description)
	req.Brand = s.sanitizer.Sanitize(req.Brand)

	if err := s.validate.Struct(req); err != nil {
		s.notifier.Error("Please fill required fields (name, price, category)")

		return errors.Fail("Please fill required fields (name, price, category)")
	}

	if req.ImageDataURL != "" && !validDataURL(req.ImageDataURL) {
		s.notifier.Error("Product image must be a valid image")

		return errors.Fail("Product image must be a valid image")
	}

	if _, err := s.api.Products.Create(ctx, req); err != nil {
		message := errors.UserMessage(err, "Failed to create product")
		s.notifier.Error(message)

		return errors.Fail(message)
	}

	s.notifier.Success("Product uploaded successfully")

	return errors.Ok()
}

// MyProducts lists the seller's own uploads: the catalog endpoint has no
// seller filter, so the narrowing happens client-side.
func (s *SellerService) MyProducts(ctx context.Context) []models.Product {

	user := s.session.User()
	if user == nil {
		return nil
	}

	resp, err := s.api.Products.List(ctx, models.ProductFilter{Limit: 50})
	if err != nil {
		slog.Error("failed to load seller products", slog.String("error", err.Error()))

		return nil
	}

	var mine []models.Product

	for _, p := range resp.Products {
		if p.SellerID == user.ID {
			mine = append(mine, p)
		}
	}

	return mine
}

func (s *SellerService) Busy() bool {
	return s.busy.Load()
}

// validDataURL accepts "data:image/<subtype>;base64,<payload>" with a
// decodable payload.
func validDataURL(value string) bool {

	if !strings.HasPrefix(value, "data:image/") {
		return false
	}

	rest, ok := strings.CutPrefix(value, "data:")
	if !ok {
		return false
	}

	meta, payload, ok := strings.Cut(rest, ",")
	if !ok || !strings.HasSuffix(meta, ";base64") || payload == "" {
		return false
	}

	_, err := base64.StdEncoding.DecodeString(payload)

	return err == nil
}
