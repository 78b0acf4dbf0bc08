// Package service implements the storefront use cases on top of the upstream
// clients, the response cache, and the event producer.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/Ricciar/grape-ceramics/internal/cache"
	"github.com/Ricciar/grape-ceramics/internal/domain"
)

// CommerceClient is the slice of the upstream commerce API the catalog needs.
type CommerceClient interface {
	ListProducts(ctx context.Context, page, perPage int) ([]domain.Product, int, error)
	GetProduct(ctx context.Context, id int) (*domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
}

// ProductPage is one page of products plus the upstream's total page count.
type ProductPage struct {
	Products   []domain.Product `json:"products"`
	TotalPages int              `json:"total_pages"`
}

// CatalogService serves product and category reads through the TTL cache.
// The unfiltered upstream page is what gets cached, so the shop and course
// views share one upstream fetch.
type CatalogService struct {
	client CommerceClient
	cache  cache.Store
	logger *slog.Logger
}

// NewCatalogService creates the catalog service.
func NewCatalogService(client CommerceClient, store cache.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{client: client, cache: store, logger: logger}
}

// GetProducts returns one page of shop products, with course products
// filtered out. TotalPages is the upstream's count for the unfiltered page.
func (s *CatalogService) GetProducts(ctx context.Context, page, perPage int) (*ProductPage, error) {
	full, err := s.productPage(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	goods := make([]domain.Product, 0, len(full.Products))
	for _, p := range full.Products {
		if !p.IsCourse() {
			goods = append(goods, p)
		}
	}
	return &ProductPage{Products: goods, TotalPages: full.TotalPages}, nil
}

// GetCourses returns the course products from one upstream page.
func (s *CatalogService) GetCourses(ctx context.Context, page, perPage int) (*ProductPage, error) {
	full, err := s.productPage(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	courses := make([]domain.Product, 0)
	for _, p := range full.Products {
		if p.IsCourse() {
			courses = append(courses, p)
		}
	}
	return &ProductPage{Products: courses, TotalPages: full.TotalPages}, nil
}

// GetProduct returns a single product by id.
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	key := fmt.Sprintf("product:%d", id)

	var p domain.Product
	if fromCache(ctx, s.cache, s.logger, key, &p) {
		return &p, nil
	}

	fresh, err := s.client.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	toCache(ctx, s.cache, s.logger, key, fresh)
	return fresh, nil
}

// GetCategories returns all product categories.
func (s *CatalogService) GetCategories(ctx context.Context) ([]domain.Category, error) {
	const key = "categories"

	var cached []domain.Category
	if fromCache(ctx, s.cache, s.logger, key, &cached) {
		return cached, nil
	}

	categories, err := s.client.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	toCache(ctx, s.cache, s.logger, key, categories)
	return categories, nil
}

// productPage fetches one unfiltered upstream product page through the cache.
func (s *CatalogService) productPage(ctx context.Context, page, perPage int) (*ProductPage, error) {
	key := fmt.Sprintf("products:%d:%d", page, perPage)

	var cached ProductPage
	if fromCache(ctx, s.cache, s.logger, key, &cached) {
		return &cached, nil
	}

	products, totalPages, err := s.client.ListProducts(ctx, page, perPage)
	if err != nil {
		return nil, err
	}

	fresh := &ProductPage{Products: products, TotalPages: totalPages}
	toCache(ctx, s.cache, s.logger, key, fresh)
	return fresh, nil
}

// fromCache loads and decodes a cached value. Decode failures and backend
// errors count as misses: the cache must never take a read down.
func fromCache(ctx context.Context, store cache.Store, logger *slog.Logger, key string, target any) bool {
	data, err := store.Get(ctx, key)
	if err != nil {
		if err != cache.ErrMiss {
			logger.WarnContext(ctx, "cache read failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
		return false
	}
	if err := json.Unmarshal(data, target); err != nil {
		logger.WarnContext(ctx, "cache entry corrupt",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return false
	}
	return true
}

// toCache encodes and stores a value. Failures are logged and ignored.
func toCache(ctx context.Context, store cache.Store, logger *slog.Logger, key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.WarnContext(ctx, "cache encode failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		return
	}
	if err := store.Set(ctx, key, data); err != nil {
		logger.WarnContext(ctx, "cache write failed",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
	}
}
