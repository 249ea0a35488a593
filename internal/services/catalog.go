package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/clothsy/storefront/internal/api"
	"github.com/clothsy/storefront/internal/models"
)

const homeProductLimit = 8

// CatalogService runs the page-level loaders: each page issues its fetches
// concurrently, waits for all of them, and renders an empty state when any
// fails. Errors are logged, never surfaced to the caller.
type CatalogService struct {
	api *api.Client
}

func NewCatalogService(apiClient *api.Client) *CatalogService {
	return &CatalogService{api: apiClient}
}

type HomeData struct {
	Featured   []models.Product
	Categories []models.Category
}

// LoadHome fetches featured products, recent products and categories in
// parallel, then merges featured with recent (deduplicated by ID) up to the
// home page's product limit.
func (s *CatalogService) LoadHome(ctx context.Context) HomeData {

	var (
		wg       sync.WaitGroup
		featured []models.Product
		recent   []models.Product
		cats     []models.Category

		featuredErr, recentErr, catErr error
	)

	wg.Add(3)

	go func() {
		defer wg.Done()

		resp, err := s.api.Products.List(ctx, models.ProductFilter{Limit: homeProductLimit, IsFeatured: true})
		if err != nil {
			featuredErr = err

			return
		}

		featured = resp.Products
	}()

	go func() {
		defer wg.Done()

		resp, err := s.api.Products.List(ctx, models.ProductFilter{Limit: homeProductLimit})
		if err != nil {
			recentErr = err

			return
		}

		recent = resp.Products
	}()

	go func() {
		defer wg.Done()

		categories, err := s.api.Categories.List(ctx, "")
		if err != nil {
			catErr = err

			return
		}

		cats = categories
	}()

	wg.Wait()

	for _, err := range []error{featuredErr, recentErr, catErr} {
		if err != nil {
			slog.Error("failed to load home page data", slog.String("error", err.Error()))

			return HomeData{}
		}
	}

	return HomeData{
		Featured:   mergeByID(featured, recent, homeProductLimit),
		Categories: cats,
	}
}

type GenderData struct {
	Products   []models.Product
	Categories []models.Category
}

// LoadGender fetches the gender page's product list and its category strip
// concurrently. Filter gender is forced to the page's gender.
func (s *CatalogService) LoadGender(ctx context.Context, gender string, filter models.ProductFilter) GenderData {

	filter.Gender = gender
	if filter.Limit == 0 {
		filter.Limit = 20
	}

	var (
		wg   sync.WaitGroup
		prod []models.Product
		cats []models.Category

		prodErr, catErr error
	)

	wg.Add(2)

	go func() {
		defer wg.Done()

		resp, err := s.api.Products.List(ctx, filter)
		if err != nil {
			prodErr = err

			return
		}

		prod = resp.Products
	}()

	go func() {
		defer wg.Done()

		categories, err := s.api.Categories.List(ctx, gender)
		if err != nil {
			catErr = err

			return
		}

		cats = categories
	}()

	wg.Wait()

	if prodErr != nil || catErr != nil {
		for _, err := range []error{prodErr, catErr} {
			if err != nil {
				slog.Error("failed to load gender page data",
					slog.String("gender", gender), slog.String("error", err.Error()))
			}
		}

		return GenderData{}
	}

	return GenderData{Products: prod, Categories: cats}
}

// mergeByID appends extras to base, skipping IDs already present, capped at limit.
func mergeByID(base, extra []models.Product, limit int) []models.Product {

	seen := make(map[string]struct{}, len(base))
	for _, p := range base {
		seen[p.ID] = struct{}{}
	}

	merged := base

	for _, p := range extra {
		if _, ok := seen[p.ID]; ok {
			continue
		}

		merged = append(merged, p)
		seen[p.ID] = struct{}{}
	}

	if len(merged) > limit {
		merged = merged[:limit]
	}

	return merged
}
