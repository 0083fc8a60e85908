package wishlist

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront-sync/internal/api"
	pkgerrors "github.com/angelmondragon/storefront-sync/pkg/errors"
	"github.com/angelmondragon/storefront-sync/pkg/logger"
)

type stubWishlistClient struct {
	products []api.Product

	getWishlist func(ctx context.Context) (*api.WishlistResponse, error)
	addItem     func(ctx context.Context, productID string) (*api.WishlistMutationResponse, error)
	removeItem  func(ctx context.Context, productID string) (*api.WishlistMutationResponse, error)
}

func (s *stubWishlistClient) ids() []string {
	ids := make([]string, 0, len(s.products))
	for _, p := range s.products {
		ids = append(ids, p.ID)
	}
	return ids
}

func (s *stubWishlistClient) GetWishlist(ctx context.Context) (*api.WishlistResponse, error) {
	if s.getWishlist != nil {
		return s.getWishlist(ctx)
	}
	return &api.WishlistResponse{Status: "success", Count: len(s.products), Data: s.products}, nil
}

func (s *stubWishlistClient) AddWishlistItem(ctx context.Context, productID string) (*api.WishlistMutationResponse, error) {
	if s.addItem != nil {
		return s.addItem(ctx, productID)
	}
	for _, p := range s.products {
		if p.ID == productID {
			return &api.WishlistMutationResponse{Status: "success", Data: s.ids()}, nil
		}
	}
	s.products = append(s.products, api.Product{ID: productID, Title: "product " + productID})
	return &api.WishlistMutationResponse{Status: "success", Data: s.ids()}, nil
}

func (s *stubWishlistClient) RemoveWishlistItem(ctx context.Context, productID string) (*api.WishlistMutationResponse, error) {
	if s.removeItem != nil {
		return s.removeItem(ctx, productID)
	}
	kept := s.products[:0]
	for _, p := range s.products {
		if p.ID != productID {
			kept = append(kept, p)
		}
	}
	s.products = kept
	return &api.WishlistMutationResponse{Status: "success", Data: s.ids()}, nil
}

type stubTokens struct {
	token string
}

func (s *stubTokens) Token() string { return s.token }

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "wishlist-test", Level: logger.ParseLevel("error")})
}

func newTestStore(t *testing.T, client wishlistClient, tokens tokenSource) *Store {
	t.Helper()
	store, err := NewStore(client, tokens, testLogger())
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	return store
}

func TestRefreshWithoutTokenYieldsEmptySet(t *testing.T) {
	fetched := false
	client := &stubWishlistClient{
		getWishlist: func(ctx context.Context) (*api.WishlistResponse, error) {
			fetched = true
			return nil, nil
		},
	}
	store := newTestStore(t, client, &stubTokens{})

	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if fetched {
		t.Fatalf("no fetch should happen without a token")
	}
	if store.Len() != 0 {
		t.Fatalf("expected empty wishlist, got %d members", store.Len())
	}
}

func TestAddThenIsMember(t *testing.T) {
	client := &stubWishlistClient{}
	store := newTestStore(t, client, &stubTokens{token: "tok"})

	if err := store.Add(context.Background(), "p1"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !store.IsMember("p1") {
		t.Fatalf("IsMember must reflect the add once the call returns")
	}
	if store.IsMember("p2") {
		t.Fatalf("unexpected member p2")
	}
}

func TestSnapshotNeverHoldsDuplicates(t *testing.T) {
	client := &stubWishlistClient{
		products: []api.Product{{ID: "p1"}, {ID: "p2"}, {ID: "p1"}},
	}
	store := newTestStore(t, client, &stubTokens{token: "tok"})
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	if store.Len() != 2 {
		t.Fatalf("duplicates must collapse, got %d members", store.Len())
	}
	seen := map[string]bool{}
	for _, item := range store.Items() {
		if seen[item.ID] {
			t.Fatalf("duplicate id %s in items", item.ID)
		}
		seen[item.ID] = true
	}
}

func TestRemoveUsesServerAcknowledgment(t *testing.T) {
	client := &stubWishlistClient{products: []api.Product{{ID: "p1"}, {ID: "p2"}}}
	store := newTestStore(t, client, &stubTokens{token: "tok"})
	store.Refresh(context.Background())

	// The server keeps p1 despite the remove request; the local set follows
	// the acknowledgment, not the intent.
	client.removeItem = func(ctx context.Context, productID string) (*api.WishlistMutationResponse, error) {
		return &api.WishlistMutationResponse{Status: "success", Data: []string{"p1"}}, nil
	}
	if err := store.Remove(context.Background(), "p2"); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if !store.IsMember("p1") || store.IsMember("p2") {
		t.Fatalf("set must mirror the acknowledgment, items %+v", store.Items())
	}
}

func TestRemoveFailureKeepsMember(t *testing.T) {
	client := &stubWishlistClient{products: []api.Product{{ID: "p1"}}}
	store := newTestStore(t, client, &stubTokens{token: "tok"})
	store.Refresh(context.Background())

	client.removeItem = func(ctx context.Context, productID string) (*api.WishlistMutationResponse, error) {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "upstream down")
	}

	err := store.Remove(context.Background(), "p1")
	if !pkgerrors.IsCode(err, pkgerrors.CodeDependency) {
		t.Fatalf("expected DEPENDENCY_ERROR, got %v", err)
	}
	if !store.IsMember("p1") {
		t.Fatalf("member must remain after a failed remove")
	}
}

func TestRefreshAfterLogoutEmptiesSet(t *testing.T) {
	tokens := &stubTokens{token: "tok"}
	client := &stubWishlistClient{products: []api.Product{{ID: "p1"}}}
	store := newTestStore(t, client, tokens)
	store.Refresh(context.Background())
	if store.Len() != 1 {
		t.Fatalf("seed failed")
	}

	tokens.token = ""
	if err := store.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh after logout: %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("wishlist should empty after logout")
	}
}
