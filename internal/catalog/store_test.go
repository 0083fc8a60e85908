package catalog

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront-sync/internal/api"
	"github.com/angelmondragon/storefront-sync/pkg/config"
)

type stubCatalogClient struct {
	listProducts        int
	listProductsByBrand map[string]int
	getProduct          map[string]int
	listCategories      int
	listBrands          int
	getBrand            map[string]int
}

func newStubCatalogClient() *stubCatalogClient {
	return &stubCatalogClient{
		listProductsByBrand: map[string]int{},
		getProduct:          map[string]int{},
		getBrand:            map[string]int{},
	}
}

func (s *stubCatalogClient) ListProducts(ctx context.Context) (*api.ProductList, error) {
	s.listProducts++
	return &api.ProductList{Data: []api.Product{{ID: "p1", Title: "Desk Lamp"}}}, nil
}

func (s *stubCatalogClient) ListProductsByBrand(ctx context.Context, brandID string) (*api.ProductList, error) {
	s.listProductsByBrand[brandID]++
	return &api.ProductList{Data: []api.Product{{ID: "p2", Title: "Brand Lamp"}}}, nil
}

func (s *stubCatalogClient) GetProduct(ctx context.Context, productID string) (*api.Product, error) {
	s.getProduct[productID]++
	return &api.Product{ID: productID, Title: "Desk Lamp"}, nil
}

func (s *stubCatalogClient) ListCategories(ctx context.Context) (*api.CategoryList, error) {
	s.listCategories++
	return &api.CategoryList{Data: []api.Category{{ID: "c1", Name: "Lighting"}}}, nil
}

func (s *stubCatalogClient) ListBrands(ctx context.Context) (*api.BrandList, error) {
	s.listBrands++
	return &api.BrandList{Data: []api.Brand{{ID: "b1", Name: "Lumen"}}}, nil
}

func (s *stubCatalogClient) GetBrand(ctx context.Context, brandID string) (*api.Brand, error) {
	s.getBrand[brandID]++
	return &api.Brand{ID: brandID, Name: "Lumen"}, nil
}

func newTestStore(t *testing.T, client catalogClient, cfg config.CatalogConfig) *Store {
	t.Helper()
	cache := NewCache(CacheOptions{})
	t.Cleanup(cache.Close)
	store, err := NewStore(client, cache, cfg)
	if err != nil {
		t.Fatalf("new store: %v", err)
	}
	return store
}

func TestStoreProductsAlwaysStaleByDefault(t *testing.T) {
	client := newStubCatalogClient()
	store := newTestStore(t, client, config.CatalogConfig{
		ProductFreshness:  AlwaysStale,
		TaxonomyFreshness: SessionFresh,
	})

	for i := 0; i < 2; i++ {
		products, err := store.Products(context.Background())
		if err != nil {
			t.Fatalf("products: %v", err)
		}
		if len(products) != 1 || products[0].ID != "p1" {
			t.Fatalf("unexpected products %+v", products)
		}
	}
	if client.listProducts != 2 {
		t.Fatalf("stale-by-default products should refetch per read, got %d calls", client.listProducts)
	}
}

func TestStoreTaxonomiesFreshForSession(t *testing.T) {
	client := newStubCatalogClient()
	store := newTestStore(t, client, config.CatalogConfig{
		ProductFreshness:  AlwaysStale,
		TaxonomyFreshness: SessionFresh,
	})

	for i := 0; i < 3; i++ {
		if _, err := store.Categories(context.Background()); err != nil {
			t.Fatalf("categories: %v", err)
		}
		if _, err := store.Brands(context.Background()); err != nil {
			t.Fatalf("brands: %v", err)
		}
	}
	if client.listCategories != 1 || client.listBrands != 1 {
		t.Fatalf("taxonomies should fetch once per session, got %d categories and %d brands calls",
			client.listCategories, client.listBrands)
	}
}

func TestStoreKeysAreScopedPerResource(t *testing.T) {
	client := newStubCatalogClient()
	store := newTestStore(t, client, config.CatalogConfig{
		ProductFreshness:  SessionFresh,
		TaxonomyFreshness: SessionFresh,
	})

	if _, err := store.Products(context.Background()); err != nil {
		t.Fatalf("products: %v", err)
	}
	if _, err := store.ProductsByBrand(context.Background(), "b1"); err != nil {
		t.Fatalf("products by brand: %v", err)
	}
	if _, err := store.ProductsByBrand(context.Background(), "b2"); err != nil {
		t.Fatalf("products by brand: %v", err)
	}
	if _, err := store.Product(context.Background(), "p1"); err != nil {
		t.Fatalf("product: %v", err)
	}
	if _, err := store.Brand(context.Background(), "b1"); err != nil {
		t.Fatalf("brand: %v", err)
	}

	if client.listProducts != 1 {
		t.Fatalf("unexpected product list calls: %d", client.listProducts)
	}
	if client.listProductsByBrand["b1"] != 1 || client.listProductsByBrand["b2"] != 1 {
		t.Fatalf("brand listings should cache per brand: %v", client.listProductsByBrand)
	}
	if client.getProduct["p1"] != 1 {
		t.Fatalf("unexpected product detail calls: %v", client.getProduct)
	}
	if client.getBrand["b1"] != 1 {
		t.Fatalf("unexpected brand detail calls: %v", client.getBrand)
	}
}
