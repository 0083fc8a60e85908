package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/pkg/config"
)

// Resource keys used by the typed accessors.
const (
	keyProducts   = "products"
	keyCategories = "categories"
	keyBrands     = "brands"
)

type catalogClient interface {
	ListProducts(ctx context.Context) (*api.ProductList, error)
	ListProductsByBrand(ctx context.Context, brandID string) (*api.ProductList, error)
	GetProduct(ctx context.Context, productID string) (*api.Product, error)
	ListCategories(ctx context.Context) (*api.CategoryList, error)
	ListBrands(ctx context.Context) (*api.BrandList, error)
	GetBrand(ctx context.Context, brandID string) (*api.Brand, error)
}

// Store is the typed catalog query layer: products, categories, and brands
// served through the cache. Product listings default to always-stale while
// taxonomies stay fresh for the session, reflecting how rarely they change.
type Store struct {
	client            catalogClient
	cache             *Cache
	productFreshness  time.Duration
	taxonomyFreshness time.Duration
}

// NewStore builds a catalog store over the collaborator client.
func NewStore(client catalogClient, cache *Cache, cfg config.CatalogConfig) (*Store, error) {
	if client == nil {
		return nil, fmt.Errorf("catalog client is required")
	}
	if cache == nil {
		return nil, fmt.Errorf("cache is required")
	}
	return &Store{
		client:            client,
		cache:             cache,
		productFreshness:  cfg.ProductFreshness,
		taxonomyFreshness: cfg.TaxonomyFreshness,
	}, nil
}

// Products returns the product catalog.
func (s *Store) Products(ctx context.Context) ([]api.Product, error) {
	value, err := s.cache.Get(ctx, keyProducts, s.productFreshness, func(ctx context.Context) (any, error) {
		list, err := s.client.ListProducts(ctx)
		if err != nil {
			return nil, err
		}
		return list.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]api.Product), nil
}

// ProductsByBrand returns the products of a single brand.
func (s *Store) ProductsByBrand(ctx context.Context, brandID string) ([]api.Product, error) {
	key := keyProducts + ":brand:" + brandID
	value, err := s.cache.Get(ctx, key, s.productFreshness, func(ctx context.Context) (any, error) {
		list, err := s.client.ListProductsByBrand(ctx, brandID)
		if err != nil {
			return nil, err
		}
		return list.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]api.Product), nil
}

// Product returns a single product.
func (s *Store) Product(ctx context.Context, productID string) (*api.Product, error) {
	key := "product:" + productID
	value, err := s.cache.Get(ctx, key, s.productFreshness, func(ctx context.Context) (any, error) {
		return s.client.GetProduct(ctx, productID)
	})
	if err != nil {
		return nil, err
	}
	return value.(*api.Product), nil
}

// Categories returns the category taxonomy.
func (s *Store) Categories(ctx context.Context) ([]api.Category, error) {
	value, err := s.cache.Get(ctx, keyCategories, s.taxonomyFreshness, func(ctx context.Context) (any, error) {
		list, err := s.client.ListCategories(ctx)
		if err != nil {
			return nil, err
		}
		return list.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]api.Category), nil
}

// Brands returns the brand taxonomy.
func (s *Store) Brands(ctx context.Context) ([]api.Brand, error) {
	value, err := s.cache.Get(ctx, keyBrands, s.taxonomyFreshness, func(ctx context.Context) (any, error) {
		list, err := s.client.ListBrands(ctx)
		if err != nil {
			return nil, err
		}
		return list.Data, nil
	})
	if err != nil {
		return nil, err
	}
	return value.([]api.Brand), nil
}

// Brand returns a single brand.
func (s *Store) Brand(ctx context.Context, brandID string) (*api.Brand, error) {
	key := "brand:" + brandID
	value, err := s.cache.Get(ctx, key, s.taxonomyFreshness, func(ctx context.Context) (any, error) {
		return s.client.GetBrand(ctx, brandID)
	})
	if err != nil {
		return nil, err
	}
	return value.(*api.Brand), nil
}
